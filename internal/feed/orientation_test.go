package feed

import (
	"testing"

	"bio_showcase/internal/domain/models"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		want Orientation
	}{
		{"landscape", 1600, 900, Landscape},
		{"portrait", 900, 1600, Portrait},
		{"square", 500, 500, Portrait},
		{"zero width", 0, 500, Unknown},
		{"negative height", 500, -1, Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.w, tt.h))
		})
	}
}

func TestFitFor(t *testing.T) {
	assert.Equal(t, FrameFit{
		Orientation: Landscape,
		AspectRatio: 2,
		Width:       "100%",
		Height:      "auto",
		ObjectFit:   "contain",
	}, FitFor(200, 100))

	assert.Equal(t, FrameFit{
		Orientation: Portrait,
		AspectRatio: 0.5,
		Width:       "auto",
		Height:      "100%",
		ObjectFit:   "contain",
	}, FitFor(100, 200))

	assert.Equal(t, "contain", FitFor(0, 0).ObjectFit)
}

func TestFitForEntry(t *testing.T) {
	_, ok := FitForEntry(models.MediaEntry{})
	assert.False(t, ok)

	w, h := 0, 10
	_, ok = FitForEntry(models.MediaEntry{Width: &w, Height: &h})
	assert.False(t, ok)

	w = 30
	fit, ok := FitForEntry(models.MediaEntry{Width: &w, Height: &h})
	assert.True(t, ok)
	assert.Equal(t, Landscape, fit.Orientation)
}
