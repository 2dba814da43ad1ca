package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sevy33/permissions-in-go/pkg/identity"
)

const issuer = "permctl"

// Paths served without a token. Entries ending in "/" match as prefixes.
var publicPaths = []string{"/", "/health", "/metrics", "/export/"}

// TokenGate is middleware that requires an HS256 bearer token on admin
// routes. A gate without a secret lets every request through.
type TokenGate struct {
	secret []byte
}

// NewTokenGate creates a gate; an empty secret disables it
func NewTokenGate(secret string) *TokenGate {
	return &TokenGate{secret: []byte(secret)}
}

// Enabled reports whether tokens are required
func (g *TokenGate) Enabled() bool {
	return g != nil && len(g.secret) > 0
}

// IssueToken signs a token for subject that expires after ttl
func IssueToken(secret, subject string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("admin token secret is not configured")
	}
	if subject == "" {
		return "", errors.New("subject is required")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Verify parses tokenString and checks signature, issuer and expiry
func (g *TokenGate) Verify(tokenString string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return g.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// Subject returns the token subject stored by the gate, if any
func Subject(ctx context.Context) string {
	if id, ok := identity.Get(ctx); ok {
		return id.Subject
	}
	return ""
}

func isPublic(path string) bool {
	for _, p := range publicPaths {
		if p == path {
			return true
		}
		if p != "/" && strings.HasSuffix(p, "/") && strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="permctl"`)
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// Middleware returns an HTTP middleware that validates bearer tokens
func (g *TokenGate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !g.Enabled() || r.Method == http.MethodOptions || isPublic(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			unauthorized(w, "Authorization missing")
			return
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || tokenString == "" {
			unauthorized(w, "Malformed authorization header")
			return
		}

		claims, err := g.Verify(tokenString)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				unauthorized(w, "Token expired")
				return
			}
			unauthorized(w, fmt.Sprintf("Invalid token: %v", err))
			return
		}

		id := identity.FromClaims(claims).WithRemoteIP(identity.RemoteIP(r))
		next.ServeHTTP(w, r.WithContext(identity.Set(r.Context(), id)))
	})
}
