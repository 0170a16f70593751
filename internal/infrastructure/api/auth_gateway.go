package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/taskflow/taskflow-go/internal/core/domain"
)

// AuthGateway implements ports.AuthGateway over the remote auth endpoints.
type AuthGateway struct {
	c *Client
}

func NewAuthGateway(c *Client) *AuthGateway {
	return &AuthGateway{c: c}
}

// Login posts credentials to /auth/login. The endpoint answers with a single
// flat payload of {token, ...profile fields}; the token is split out and the
// remainder becomes the profile. Rejections come back as *domain.AuthError
// carrying the server's message.
func (g *AuthGateway) Login(ctx context.Context, creds domain.Credentials) (string, *domain.UserProfile, error) {
	var raw map[string]any
	err := g.c.do(ctx, requestOpts{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   creds,
		out:    &raw,
	})
	if err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) {
			return "", nil, domain.NewAuthError(httpErr.Message, err)
		}
		return "", nil, err
	}

	token, _ := raw["token"].(string)
	if token == "" {
		return "", nil, errors.New("api: login response missing token")
	}
	delete(raw, "token")

	return token, profileFromMap(raw), nil
}

// Logout posts to /auth/logout with the current bearer token. The response
// body is irrelevant to callers; only transport or status failures surface.
func (g *AuthGateway) Logout(ctx context.Context) error {
	return g.c.do(ctx, requestOpts{
		method: http.MethodPost,
		path:   "/auth/logout",
		authed: true,
	})
}

// CurrentUser resolves the stored bearer token via /auth/me, which returns
// the profile as a flat object.
func (g *AuthGateway) CurrentUser(ctx context.Context) (*domain.UserProfile, error) {
	var raw map[string]any
	err := g.c.do(ctx, requestOpts{
		method: http.MethodGet,
		path:   "/auth/me",
		out:    &raw,
		authed: true,
	})
	if err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusUnauthorized {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	return profileFromMap(raw), nil
}

// profileFromMap lifts the known profile fields out of a flat server payload
// and keeps everything else in Extra. A missing role becomes RoleUnknown so
// downstream code never branches on its presence.
func profileFromMap(raw map[string]any) *domain.UserProfile {
	p := &domain.UserProfile{Role: domain.RoleUnknown}
	for k, v := range raw {
		s, isString := v.(string)
		switch k {
		case "id", "_id":
			if isString {
				p.ID = s
				continue
			}
		case "name":
			if isString {
				p.Name = s
				continue
			}
		case "email":
			if isString {
				p.Email = s
				continue
			}
		case "role":
			if isString && s != "" {
				p.Role = s
				continue
			}
		}
		if p.Extra == nil {
			p.Extra = make(map[string]any)
		}
		p.Extra[k] = v
	}
	return p
}
