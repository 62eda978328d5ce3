package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCookies(t *testing.T) {
	cfg := CookieConfig{Name: "sid", Secure: true}

	t.Run("set cookie carries the session id", func(t *testing.T) {
		w := httptest.NewRecorder()

		SetCookie(w, cfg, Session{Id: "abc", ExpiresAt: time.Now().Add(time.Hour)})

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "sid", cookies[0].Name)
		assert.Equal(t, "abc", cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
		assert.True(t, cookies[0].Secure)
	})

	t.Run("clear cookie expires it", func(t *testing.T) {
		w := httptest.NewRecorder()

		ClearCookie(w, cfg)

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "", cookies[0].Value)
		assert.Equal(t, -1, cookies[0].MaxAge)
	})

	t.Run("id is read from cookie before header", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set(HeaderName, "from-header")
		assert.Equal(t, "from-header", IdFromRequest(r, cfg))

		r.AddCookie(&http.Cookie{Name: "sid", Value: "from-cookie"})
		assert.Equal(t, "from-cookie", IdFromRequest(r, cfg))
	})

	t.Run("default cookie name", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: "v"})
		assert.Equal(t, "v", IdFromRequest(r, CookieConfig{}))
	})
}
