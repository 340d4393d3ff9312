package session

import (
	"context"
	"errors"
	"net/http"

	"giraffeql_web/internal/profile"

	"go.uber.org/zap"
)

// Input is what a view receives on page load: the token (nil when absent or
// rejected) and the user it resolved to (nil when the lookup yielded nothing).
type Input struct {
	Authorization *string
	User          *profile.User
}

// Token returns the authorization value, or "" when there is none.
func (in Input) Token() string {
	if in.Authorization == nil {
		return ""
	}
	return *in.Authorization
}

// Resolver turns a raw token into a session Input.
type Resolver interface {
	Resolve(ctx context.Context, token string) Input
}

// Fetcher loads the user a token belongs to.
type Fetcher interface {
	Fetch(ctx context.Context, authorization string) (*profile.User, error)
}

// HTTPResolver resolves sessions against the profile backend.
type HTTPResolver struct {
	fetcher Fetcher
	logger  *zap.Logger
}

// NewHTTPResolver creates a resolver that looks tokens up through fetcher.
func NewHTTPResolver(fetcher Fetcher, logger *zap.Logger) *HTTPResolver {
	return &HTTPResolver{fetcher: fetcher, logger: logger.Named("SessionResolver")}
}

// Resolve never fails: a rejected token comes back without authorization, any
// other failure keeps the token but carries no user.
func (r *HTTPResolver) Resolve(ctx context.Context, token string) Input {
	if token == "" {
		return Input{}
	}

	u, err := r.fetcher.Fetch(ctx, token)
	if err != nil {
		var se *profile.StatusError
		if errors.As(err, &se) && (se.StatusCode == http.StatusUnauthorized || se.StatusCode == http.StatusForbidden) {
			r.logger.Info("Session token rejected by profile backend", zap.Int("status", se.StatusCode))
			return Input{}
		}
		r.logger.Warn("Session lookup failed", zap.Error(err))
		return Input{Authorization: &token}
	}
	return Input{Authorization: &token, User: u}
}

// TokenFromRequest reads the session token from the authorization cookie,
// falling back to the token query parameter.
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	return r.URL.Query().Get(TokenQueryParam)
}
