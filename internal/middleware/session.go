// File: internal/middleware/session.go
package middleware

import (
	"giraffeql_web/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// SessionTokenKey is the context key for the raw token read from the request
	SessionTokenKey = "sessionToken"
	// SessionInputKey is the context key for the resolved session.Input
	SessionInputKey = "sessionInput"
)

// SessionResolver creates a Gin middleware that reads the session token from
// the authorization cookie or token query parameter and resolves it once per
// request. It never aborts: an unresolved session is an anonymous one.
func SessionResolver(resolver session.Resolver, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := session.TokenFromRequest(c.Request)
		in := resolver.Resolve(c.Request.Context(), token)
		if token != "" && in.Authorization == nil {
			logger.Debug("Session token not accepted", zap.String("path", c.Request.URL.Path))
		}
		c.Set(SessionTokenKey, token)
		c.Set(SessionInputKey, in)
		c.Next()
	}
}

// GetSessionFromContext returns the token and resolved input stored by
// SessionResolver. Without the middleware it reports an anonymous session.
func GetSessionFromContext(c *gin.Context) (string, session.Input) {
	in, _ := c.Get(SessionInputKey)
	input, _ := in.(session.Input)
	return c.GetString(SessionTokenKey), input
}
