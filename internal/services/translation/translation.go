// Package translation switches the site language. The page translator reads
// its target language from the googtrans cookie; the feed never consults it.
package translation

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

var ErrUnsupportedLanguage = errors.New("unsupported language")

const (
	CookieName   = "googtrans"
	baseLanguage = "en"
)

type CookieService struct {
	languages []string
	supported map[string]struct{}
	maxAge    time.Duration
}

func NewCookieService(languages []string, maxAge time.Duration) *CookieService {
	s := &CookieService{
		supported: make(map[string]struct{}, len(languages)+1),
		maxAge:    maxAge,
	}
	for _, code := range append([]string{baseLanguage}, languages...) {
		code = normalize(code)
		if _, dup := s.supported[code]; dup || code == "" {
			continue
		}
		s.supported[code] = struct{}{}
		s.languages = append(s.languages, code)
	}
	return s
}

func (s *CookieService) Languages() []string {
	return append([]string(nil), s.languages...)
}

// SetLanguage returns the cookie to send. Switching back to the base language
// expires the cookie.
func (s *CookieService) SetLanguage(code string) (*http.Cookie, error) {
	code = normalize(code)
	if _, ok := s.supported[code]; !ok {
		return nil, ErrUnsupportedLanguage
	}

	cookie := &http.Cookie{
		Name:     CookieName,
		Value:    "/" + baseLanguage + "/" + code,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	}
	if code == baseLanguage {
		cookie.Value = ""
		cookie.MaxAge = -1
		return cookie, nil
	}
	cookie.MaxAge = int(s.maxAge.Seconds())
	return cookie, nil
}

func normalize(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
