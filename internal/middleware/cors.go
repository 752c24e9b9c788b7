package middleware

import (
	"net/http"
	"strings"

	"github.com/jaekwang-park/task-scheduler-api/internal/config"
)

const allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"

// CORS answers preflight requests and stamps allow headers for origins in the
// configured allowlist. Requests from other origins pass through without CORS
// headers, which the browser then blocks.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if origin != "" && cfg.OriginAllowed(origin) {
				if cfg.AllowAll {
					w.Header().Set("Access-Control-Allow-Origin", "*")
				} else {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Add("Vary", "Origin")
				}
				w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
				w.Header().Set("Access-Control-Allow-Headers",
					strings.Join([]string{"Origin", "X-Requested-With", "Content-Type", "Accept", "Authorization"}, ", "))
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
