package chi

import (
	"net/http"
	"strconv"
)

const (
	corsAllowHeaders = "Content-Type, Authorization, Accept, Origin, X-Requested-With"
	corsAllowMethods = "GET, POST, OPTIONS"
)

// CORSMiddleware allows browser calls from the listed origins only.
// Preflight requests are answered with 204 and never reach the handlers.
func CORSMiddleware(allowedOrigins []string, maxAgeSec int) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o != "" {
			allowed[o] = struct{}{}
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" {
				w.Header().Add("Vary", "Origin")
				if _, ok := allowed[origin]; ok {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Set("Access-Control-Allow-Headers", corsAllowHeaders)
					w.Header().Set("Access-Control-Allow-Methods", corsAllowMethods)
					if maxAgeSec > 0 {
						w.Header().Set("Access-Control-Max-Age", strconv.Itoa(maxAgeSec))
					}
				}
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
