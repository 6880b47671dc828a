package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer signs and verifies bearer tokens with a shared secret. The secret
// comes from configuration at startup; nothing here reads the environment.
type Issuer struct {
	secret []byte
}

// NewIssuer creates an Issuer around the given signing secret.
func NewIssuer(secret []byte) *Issuer {
	return &Issuer{secret: secret}
}

// Claims is the verified content of a token.
type Claims struct {
	UserID   string
	IssuedAt time.Time
}

// contextKey keeps the claims context value private to this package.
type contextKey string

const UserClaimsKey = contextKey("userClaims")

// Issue creates a signed token for the given user id. The payload is the
// subject id plus an issued-at timestamp in epoch milliseconds; tokens carry
// no expiry.
func (i *Issuer) Issue(userID string) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": time.Now().UnixMilli(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Verify parses and validates a token string. A token is accepted iff its
// signature matches the shared secret and its payload carries a subject id.
func (i *Issuer) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type %T", token.Claims)
	}
	sub, _ := mapClaims["sub"].(string)
	if sub == "" {
		return nil, errors.New("token has no subject")
	}

	claims := &Claims{UserID: sub}
	if iat, ok := mapClaims["iat"].(float64); ok {
		claims.IssuedAt = time.UnixMilli(int64(iat))
	}
	return claims, nil
}

// Middleware protects routes by requiring a verifiable token.
func (i *Issuer) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var tokenStr string

			// 1. Try to get the token from the Authorization header
			if rest, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
				tokenStr = rest
			}

			// 2. If not in header, fall back to the cookie
			if tokenStr == "" {
				cookie, err := r.Cookie("token")
				if err != nil {
					http.Error(w, "Missing auth token", http.StatusUnauthorized)
					return
				}
				tokenStr = cookie.Value
			}

			// 3. Validate the token
			claims, err := i.Verify(tokenStr)
			if err != nil {
				http.Error(w, "Invalid auth token", http.StatusUnauthorized)
				return
			}

			// 4. Pass claims down via context
			ctx := context.WithValue(r.Context(), UserClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
