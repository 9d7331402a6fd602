package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlashIsReadOnce(t *testing.T) {
	m := NewManager(false)

	mux := http.NewServeMux()
	mux.HandleFunc("/put", func(w http.ResponseWriter, r *http.Request) {
		m.PutFlash(r.Context(), Flash{Message: "invalid credentials", Identifier: "ann"})
	})
	mux.HandleFunc("/pop", func(w http.ResponseWriter, r *http.Request) {
		f, ok := m.PopFlash(r.Context())
		if !ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		_, _ = w.Write([]byte(f.Identifier + ":" + f.Message))
	})
	handler := m.LoadAndSave(mux)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/put", nil))
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "ihf_session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.False(t, cookies[0].Secure)

	pop := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/pop", nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	first := pop()
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "ann:invalid credentials", first.Body.String())

	second := pop()
	assert.Equal(t, http.StatusNoContent, second.Code)
}

func TestSecureCookie(t *testing.T) {
	m := NewManager(true)
	assert.True(t, m.Cookie.Secure)
}
