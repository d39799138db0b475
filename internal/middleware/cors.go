package middleware

import (
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
)

const (
	corsAllowHeaders = "Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, X-FITLOG-TOKEN, MCP-Protocol-Version, MCP-Session-Id"
	corsAllowMethods = "POST, GET, OPTIONS, PUT, PATCH, DELETE"
)

// Cors lets browsers in from the allowed origins only. Requests without an
// Origin (curl, the CLI, MCP clients) are not cross-origin and pass as they are.
func Cors(allowedOrigins []string) func(next http.Handler) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[strings.TrimRight(origin, "/")] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			switch {
			case origin == "":
			case allowed[origin],
				// avatars are embedded as plain images
				strings.HasPrefix(r.URL.Path, "/avatars/"):
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Headers", corsAllowHeaders)
				w.Header().Set("Access-Control-Allow-Methods", corsAllowMethods)
				w.Header().Add("Vary", "Origin")
			default:
				log.Warnf("CORS: origin not allowed for path [%s] and origin [%s]", r.URL.Path, origin)
				w.WriteHeader(http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
