package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rahul4469/compiler-craft/context"
)

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(RequestLogger(zap.New(core)))
	r.Get("/ok", func(w http.ResponseWriter, r *http.Request) {
		context.ContextGetLogger(r.Context()).Info("inside handler")
		w.Write([]byte("hi"))
	})
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	inside := logs.FilterMessage("inside handler").All()
	require.Len(t, inside, 1)
	assert.NotEmpty(t, inside[0].ContextMap()["request_id"])

	ok := logs.FilterMessage("Request").All()
	require.Len(t, ok, 1)
	assert.EqualValues(t, http.StatusOK, ok[0].ContextMap()["status"])
	assert.EqualValues(t, 2, ok[0].ContextMap()["bytes"])

	failed := logs.FilterMessage("Request failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, zapcore.ErrorLevel, failed[0].Level)
}

func TestCSRF(t *testing.T) {
	r := chi.NewRouter()
	r.Use(CSRF(CSRFConfig{Secret: strings.Repeat("k", 32)}))
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(csrf.Token(r)))
	})
	r.Post("/api/analyze", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	server := httptest.NewServer(r)
	defer server.Close()

	resp, err := http.Get(server.URL + "/")
	require.NoError(t, err)
	token, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	cookies := resp.Cookies()
	require.NotEmpty(t, cookies)

	t.Run("missing token", func(t *testing.T) {
		resp, err := http.Post(server.URL+"/api/analyze", "application/json", strings.NewReader("{}"))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(body), `"error"`)
	})

	t.Run("valid token", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, server.URL+"/api/analyze", strings.NewReader("{}"))
		req.Header.Set("X-CSRF-Token", string(token))
		for _, c := range cookies {
			req.AddCookie(c)
		}

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}
