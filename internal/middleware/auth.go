package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"portfolio/internal/auth"
	"portfolio/internal/httputil"
)

// AdminAuth requires a bearer JWT whose application role equals adminRole.
// Missing or invalid tokens get 401, valid tokens without the role get 403.
func AdminAuth(verifier auth.JWTVerifier, adminRole string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := verifier.VerifyToken(strings.TrimSpace(token))
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			if claims.AppRole() != adminRole {
				logger.Warn("admin access denied",
					"user_id", claims.GetUserID(),
					"role", claims.AppRole(),
					"path", r.URL.Path,
				)
				httputil.RespondError(w, http.StatusForbidden, "admin role required")
				return
			}

			r = httputil.WithUserID(r, claims.GetUserID())
			r = httputil.WithEmail(r, claims.Email)
			next.ServeHTTP(w, r)
		})
	}
}
