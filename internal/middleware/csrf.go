package middleware

import (
	"net/http"

	"github.com/gorilla/csrf"
)

// CSRFConfig configures CSRF protection for the browser UI.
type CSRFConfig struct {
	Secret         string
	Secure         bool
	TrustedOrigins []string
}

// CSRF returns the gorilla/csrf protection middleware. Outside production
// the server runs over plain HTTP, so requests are marked as plaintext
// before the origin check runs.
func CSRF(cfg CSRFConfig) func(http.Handler) http.Handler {
	protect := csrf.Protect(
		[]byte(cfg.Secret),
		csrf.Secure(cfg.Secure),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.TrustedOrigins(cfg.TrustedOrigins),
		csrf.RequestHeader("X-CSRF-Token"),
		csrf.ErrorHandler(http.HandlerFunc(csrfFailure)),
	)

	return func(next http.Handler) http.Handler {
		protected := protect(next)
		if cfg.Secure {
			return protected
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			protected.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
		})
	}
}

func csrfFailure(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	w.Write([]byte(`{"error":"Invalid or missing CSRF token. Reload the page and try again."}` + "\n"))
}
