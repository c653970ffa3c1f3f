package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/learnpath/lmscli/internal/client/api"
)

// displayError extracts the user-facing message from an error. Server
// responses carry a normalized message; anything else is shown as-is.
func displayError(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// failIfUnauthorized funnels a 401 from any backend call into a forced
// logout: stored credentials and the session are cleared and the user
// lands back on the login screen. Reports whether the error was a 401.
func (a *App) failIfUnauthorized(ctx context.Context, err error) bool {
	if !api.IsUnauthorized(err) {
		return false
	}
	a.auth.ForceLogout(ctx)
	printlnFn("Your session has expired, please log in again.")
	return true
}

// renderSection runs a screen section and contains any failure to it. A
// panicking or failing section reports itself and invites a retry; the rest
// of the app keeps running. A 401 is not a section failure and tears the
// session down instead.
func (a *App) renderSection(ctx context.Context, name string, render func() error) {
	defer func() {
		if r := recover(); r != nil {
			printlnFn(fmt.Sprintf("The %s section failed to load (%v). Run the command again to retry.", name, r))
		}
	}()
	if err := render(); err != nil {
		if a.failIfUnauthorized(ctx, err) {
			return
		}
		printlnFn(fmt.Sprintf("The %s section failed to load: %s. Run the command again to retry.", name, displayError(err)))
	}
}
