package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/contentforge/contentforge/internal/identity"
)

// Token is the minimal interface for a verified token that can expose claims.
type Token interface {
	Claims(v interface{}) error
}

// Verifier is the minimal interface the identity middleware depends on.
type Verifier interface {
	Verify(ctx context.Context, raw string) (Token, error)
}

const callerKey = "caller"

// Identity returns a middleware that resolves the caller identity from a
// Bearer token when one is present and verifiable. It never aborts:
// write paths fall back to the UNAUTH sentinel and the identity-requiring
// read path rejects anonymous callers itself.
func Identity(ver Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := identity.Anonymous()
		if raw := bearerToken(c.GetHeader("Authorization")); raw != "" && ver != nil {
			if token, err := ver.Verify(c.Request.Context(), raw); err == nil {
				var claims struct {
					Sub string `json:"sub"`
				}
				if err := token.Claims(&claims); err == nil && claims.Sub != "" {
					caller = identity.Caller{Subject: claims.Sub, Authenticated: true}
				}
			}
		}
		c.Set(callerKey, caller)
		c.Next()
	}
}

// CallerFrom returns the resolved caller, or the anonymous caller when the
// identity middleware did not run.
func CallerFrom(c *gin.Context) identity.Caller {
	if v, ok := c.Get(callerKey); ok {
		if caller, ok := v.(identity.Caller); ok {
			return caller
		}
	}
	return identity.Anonymous()
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}
