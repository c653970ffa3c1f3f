package cli

import (
	"context"

	"github.com/learnpath/lmscli/internal/client/services"
)

// Dashboard renders the student dashboard. Admins are redirected to their
// own back office instead.
func (a *App) Dashboard(ctx context.Context) error {
	if !a.guard(ctx, accessStudent) {
		return nil
	}
	a.Navigate(services.RouteStudentHome)

	a.renderSection(ctx, "dashboard", func() error {
		user, ok := a.sessions.Current()
		if !ok {
			return nil
		}
		printlnFn("Dashboard for " + user.Name)
		if user.Enrolled {
			printlnFn("Enrollment: active. Your course modules are unlocked.")
		} else {
			printlnFn("Enrollment: none. Type 'enroll' to join the course.")
		}
		return nil
	})
	return nil
}

// Admin renders the admin back office. Students are redirected to the
// student dashboard instead.
func (a *App) Admin(ctx context.Context) error {
	if !a.guard(ctx, accessAdmin) {
		return nil
	}
	a.Navigate(services.RouteAdminHome)

	a.renderSection(ctx, "admin", func() error {
		user, ok := a.sessions.Current()
		if !ok {
			return nil
		}
		printlnFn("Admin back office. Signed in as " + user.Email + ".")
		return nil
	})
	return nil
}
