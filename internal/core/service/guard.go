package service

import (
	"github.com/taskflow/taskflow-go/internal/core/domain"
	"github.com/taskflow/taskflow-go/internal/metrics"
)

// GuardAction is the outcome of a route guard evaluation.
type GuardAction int

const (
	// GuardRender grants access to the protected view.
	GuardRender GuardAction = iota
	// GuardShowLoading defers rendering while the session is still resolving.
	// No redirect is issued, avoiding a flash-redirect while boot is in flight.
	GuardShowLoading
	// GuardRedirectLogin sends an unauthenticated visitor to the login view,
	// carrying the originally requested path.
	GuardRedirectLogin
	// GuardRedirectDefault sends an authenticated user lacking a required role
	// to the default landing view.
	GuardRedirectDefault
)

func (a GuardAction) String() string {
	switch a {
	case GuardRender:
		return "render"
	case GuardShowLoading:
		return "loading"
	case GuardRedirectLogin:
		return "redirect_login"
	case GuardRedirectDefault:
		return "redirect_default"
	default:
		return "unknown"
	}
}

// GuardDecision is the result of a single guard evaluation. Target is the
// redirect destination for the redirect actions; ReturnTo carries the
// originally requested path so the caller can come back after login.
type GuardDecision struct {
	Action   GuardAction
	Target   string
	ReturnTo string
}

const (
	defaultLoginPath   = "/login"
	defaultLandingPath = "/dashboard"
)

// RouteGuard decides whether a protected view may render for a given session
// snapshot. It holds only configuration: Decide is pure and must be
// re-evaluated on every navigation. It never caches a decision.
type RouteGuard struct {
	LoginPath   string
	DefaultPath string
}

// NewRouteGuard returns a guard with the dashboard's standard paths.
func NewRouteGuard() RouteGuard {
	return RouteGuard{LoginPath: defaultLoginPath, DefaultPath: defaultLandingPath}
}

// Decide evaluates access to requestedPath given the current snapshot and an
// optional set of required roles (nil or empty means any authenticated user).
// Precedence: loading, then authentication, then role match.
func (g RouteGuard) Decide(snap domain.SessionSnapshot, requiredRoles []string, requestedPath string) GuardDecision {
	d := g.decide(snap, requiredRoles, requestedPath)
	metrics.GuardDecisionsTotal.WithLabelValues(d.Action.String()).Inc()
	return d
}

func (g RouteGuard) decide(snap domain.SessionSnapshot, requiredRoles []string, requestedPath string) GuardDecision {
	if snap.Loading {
		return GuardDecision{Action: GuardShowLoading}
	}

	if !snap.IsAuthenticated {
		return GuardDecision{
			Action:   GuardRedirectLogin,
			Target:   g.loginPath(),
			ReturnTo: requestedPath,
		}
	}

	if len(requiredRoles) > 0 && !snap.User.HasAnyRole(requiredRoles...) {
		return GuardDecision{Action: GuardRedirectDefault, Target: g.defaultPath()}
	}

	return GuardDecision{Action: GuardRender}
}

func (g RouteGuard) loginPath() string {
	if g.LoginPath == "" {
		return defaultLoginPath
	}
	return g.LoginPath
}

func (g RouteGuard) defaultPath() string {
	if g.DefaultPath == "" {
		return defaultLandingPath
	}
	return g.DefaultPath
}
