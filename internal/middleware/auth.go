package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/umangsailor/bucket-gateway/internal/response"
)

// DocsCredentials gate the API documentation.
type DocsCredentials struct {
	User     string
	Password string
	// JWTSecret, when set, also admits requests bearing an HS256 token signed with it.
	JWTSecret string
}

// RequireDocsAuth returns middleware that admits HTTP basic credentials
// matching creds, or a valid Bearer token when creds.JWTSecret is set.
// Rejections carry a basic-auth challenge so browsers prompt for a login.
func RequireDocsAuth(creds DocsCredentials) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user, pass, ok := r.BasicAuth(); ok && creds.matches(user, pass) {
				next.ServeHTTP(w, r)
				return
			}

			if creds.JWTSecret != "" {
				if token, ok := bearerToken(r); ok && validToken(token, creds.JWTSecret) {
					next.ServeHTTP(w, r)
					return
				}
			}

			w.Header().Set("WWW-Authenticate", `Basic realm="api-docs"`)
			response.Unauthorized(w, "unauthorized")
		})
	}
}

func (c DocsCredentials) matches(user, pass string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(c.User)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(c.Password)) == 1
	return userOK && passOK
}

func bearerToken(r *http.Request) (string, bool) {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// validToken verifies an HMAC-signed JWT, including its exp claim when present.
func validToken(raw, secret string) bool {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	return err == nil && token.Valid
}
