package feed

import "bio_showcase/internal/domain/models"

type Orientation string

const (
	Landscape Orientation = "landscape"
	Portrait  Orientation = "portrait"
	Unknown   Orientation = "unknown"
)

// Classify treats square images as portrait.
func Classify(width, height int) Orientation {
	if width <= 0 || height <= 0 {
		return Unknown
	}
	if float64(width)/float64(height) > 1 {
		return Landscape
	}
	return Portrait
}

// FrameFit tells a frame how to contain an image without cropping it.
type FrameFit struct {
	Orientation Orientation `json:"orientation"`
	AspectRatio float64     `json:"aspectRatio,omitempty"`
	Width       string      `json:"width"`
	Height      string      `json:"height"`
	ObjectFit   string      `json:"objectFit"`
}

func FitFor(width, height int) FrameFit {
	fit := FrameFit{
		Orientation: Classify(width, height),
		Width:       "100%",
		Height:      "100%",
		ObjectFit:   "contain",
	}

	switch fit.Orientation {
	case Landscape:
		fit.Height = "auto"
	case Portrait:
		fit.Width = "auto"
	}
	if fit.Orientation != Unknown {
		fit.AspectRatio = float64(width) / float64(height)
	}

	return fit
}

// FitForEntry reports false when the entry carries no dimensions.
func FitForEntry(e models.MediaEntry) (FrameFit, bool) {
	if e.Width == nil || e.Height == nil {
		return FrameFit{}, false
	}
	fit := FitFor(*e.Width, *e.Height)
	return fit, fit.Orientation != Unknown
}
