package cli

import (
	"context"

	"github.com/learnpath/lmscli/internal/client/models"
	"github.com/learnpath/lmscli/internal/client/services"
)

// access is the level a screen requires before it renders.
type access int

const (
	accessPublic access = iota
	accessStudent
	accessAdmin
)

// decision is the outcome of resolving access for a screen. Exactly one of
// allowed / redirect applies: either the screen may render, or the caller
// must navigate to redirect without rendering anything.
type decision struct {
	allowed  bool
	redirect string
}

// decide resolves whether the given identity may enter a screen of the
// required level.
//
// Rules:
//   - public screens are always allowed
//   - no identity on a protected screen redirects to the login screen
//   - a student on an admin screen redirects to the student dashboard
//   - an admin on a student screen redirects to the admin dashboard
func decide(required access, user models.User, authenticated bool) decision {
	switch {
	case required == accessPublic:
		return decision{allowed: true}
	case !authenticated:
		return decision{redirect: services.RouteLogin}
	case required == accessAdmin && user.Role != models.RoleAdmin:
		return decision{redirect: services.RouteStudentHome}
	case required == accessStudent && user.Role == models.RoleAdmin:
		return decision{redirect: services.RouteAdminHome}
	default:
		return decision{allowed: true}
	}
}

// guard resolves access for the current identity and performs the redirect
// when entry is denied. An empty session with a stored token is first
// reconciled against the server. Callers render content only on a true
// return, so protected output is never produced before the decision is made.
func (a *App) guard(ctx context.Context, required access) bool {
	user, authenticated := a.sessions.Current()
	if !authenticated && required != accessPublic {
		if err := a.auth.WhoAmI(ctx); err != nil {
			a.log.Warn(ctx, "resolving stored session", "error", err)
		}
		user, authenticated = a.sessions.Current()
	}

	d := decide(required, user, authenticated)
	if d.allowed {
		return true
	}

	a.Navigate(d.redirect)
	if d.redirect == services.RouteLogin {
		printlnFn("You need to log in first.")
	} else {
		printlnFn("That area is not available for your account, taking you to " + d.redirect + ".")
	}
	return false
}
