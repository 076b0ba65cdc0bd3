// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file resolves the acting user. A request carries identity either as an
// HS256 bearer token whose "sub" claim is the user id, or (development only)
// as a plain X-User-ID header. The resolved id is stored under the "userID"
// Gin context key, where handlers and the access logger pick it up.
//
//   - OptionalAuth() resolves identity when present and never rejects. A
//     malformed or expired token is treated as anonymous.
//   - RequireAuth() rejects requests without a valid identity with a JSON 401.
package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// UserIDKey is the Gin context key holding the authenticated user id.
	UserIDKey = "userID"
	// DevUserHeader carries a raw user id when AuthOptions.DevHeader is set.
	DevUserHeader = "X-User-ID"
)

// ErrNoIdentity is returned by Authenticator.Resolve when the request carries
// no credentials at all.
var ErrNoIdentity = errors.New("no identity")

// AuthOptions configures identity resolution.
type AuthOptions struct {
	Secret    []byte // HMAC key; empty disables bearer tokens
	Issuer    string // required "iss" when non-empty
	DevHeader bool   // trust X-User-ID verbatim
	Leeway    time.Duration
}

// Authenticator turns request credentials into a user id.
type Authenticator struct {
	opts   AuthOptions
	parser *jwt.Parser
}

// NewAuthenticator builds an Authenticator. Only HS256 tokens are accepted.
func NewAuthenticator(opts AuthOptions) *Authenticator {
	popts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(opts.Leeway),
	}
	if opts.Issuer != "" {
		popts = append(popts, jwt.WithIssuer(opts.Issuer))
	}
	return &Authenticator{opts: opts, parser: jwt.NewParser(popts...)}
}

// Resolve returns the user id carried by r. It returns ErrNoIdentity when r
// has neither a bearer token nor an accepted dev header.
func (a *Authenticator) Resolve(r *http.Request) (string, error) {
	if tok := bearer(r.Header.Get("Authorization")); tok != "" {
		return a.parse(tok)
	}
	if a.opts.DevHeader {
		if id := strings.TrimSpace(r.Header.Get(DevUserHeader)); id != "" {
			return id, nil
		}
	}
	return "", ErrNoIdentity
}

func (a *Authenticator) parse(tok string) (string, error) {
	if len(a.opts.Secret) == 0 {
		return "", errors.New("bearer tokens are not configured")
	}
	claims := jwt.RegisteredClaims{}
	_, err := a.parser.ParseWithClaims(tok, &claims, func(*jwt.Token) (any, error) {
		return a.opts.Secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return "", errors.New("invalid token: missing sub")
	}
	return claims.Subject, nil
}

// OptionalAuth stores the user id when one can be resolved and continues
// either way.
func OptionalAuth(a *Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, err := a.Resolve(c.Request); err == nil {
			c.Set(UserIDKey, id)
		} else if !errors.Is(err, ErrNoIdentity) {
			LoggerFrom(c).Debug().Err(err).Msg("ignoring credentials")
		}
		c.Next()
	}
}

// RequireAuth aborts with 401 unless a user id can be resolved.
func RequireAuth(a *Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := a.Resolve(c.Request)
		if err != nil {
			rid, _ := c.Get(requestIDKey)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"request_id": asString(rid),
				"code":       "unauthorized",
				"message":    "authentication required",
			})
			return
		}
		c.Set(UserIDKey, id)
		c.Next()
	}
}

// UserID returns the resolved user id, or "" for anonymous requests.
func UserID(c *gin.Context) string {
	v, _ := c.Get(UserIDKey)
	return asString(v)
}

func bearer(h string) string {
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
