package identity

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

const (
	// Key is the context key for Identity.
	Key ContextKey = "identity"
)

// Identity is the operator behind a request.
type Identity struct {
	// Token claims; zero when the request carried no token
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time

	RemoteIP net.IP
}

// FromClaims creates an Identity from verified token claims.
func FromClaims(claims *jwt.RegisteredClaims) *Identity {
	id := &Identity{Subject: claims.Subject}
	if claims.IssuedAt != nil {
		id.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}
	return id
}

// WithRemoteIP sets the remote IP address.
func (i *Identity) WithRemoteIP(ip net.IP) *Identity {
	i.RemoteIP = ip
	return i
}

// Anonymous reports whether no token subject is known.
func (i *Identity) Anonymous() bool {
	return i.Subject == ""
}

// RemoteAddr returns the remote IP as a string, or "" when unknown.
func (i *Identity) RemoteAddr() string {
	if i.RemoteIP == nil {
		return ""
	}
	return i.RemoteIP.String()
}

// RemoteIP extracts the client address from r. The first X-Forwarded-For
// entry wins over the connection address.
func RemoteIP(r *http.Request) net.IP {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return net.ParseIP(host)
}

// FromRequest returns the Identity stored on r, or an anonymous one
// carrying the remote address.
func FromRequest(r *http.Request) *Identity {
	if id, ok := Get(r.Context()); ok {
		return id
	}
	return (&Identity{}).WithRemoteIP(RemoteIP(r))
}

// Get retrieves Identity from context.
func Get(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(Key).(*Identity)
	return id, ok
}

// Set stores Identity in context.
func Set(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, Key, id)
}
