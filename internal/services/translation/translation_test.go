package translation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCookieService_SetLanguage(t *testing.T) {
	s := NewCookieService([]string{"ru", " KK ", "ru", ""}, 24*time.Hour)

	assert.Equal(t, []string{"en", "ru", "kk"}, s.Languages())

	tests := []struct {
		name       string
		code       string
		wantValue  string
		wantMaxAge int
		wantErr    error
	}{
		{name: "switch", code: "ru", wantValue: "/en/ru", wantMaxAge: 86400},
		{name: "case insensitive", code: "KK", wantValue: "/en/kk", wantMaxAge: 86400},
		{name: "base language clears", code: "en", wantValue: "", wantMaxAge: -1},
		{name: "unsupported", code: "fr", wantErr: ErrUnsupportedLanguage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cookie, err := s.SetLanguage(tt.code)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, CookieName, cookie.Name)
			assert.Equal(t, tt.wantValue, cookie.Value)
			assert.Equal(t, tt.wantMaxAge, cookie.MaxAge)
			assert.Equal(t, "/", cookie.Path)
		})
	}
}
