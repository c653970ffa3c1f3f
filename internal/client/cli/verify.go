package cli

import (
	"context"
	"strings"

	"github.com/learnpath/lmscli/internal/client/services"
)

// Verify resolves a certificate short code and navigates to the resulting
// verification screen. Public screen: no login required.
func (a *App) Verify(ctx context.Context, shortCode string) error {
	path := a.certificates.ResolveShortCode(ctx, shortCode)
	a.Navigate(path)

	switch path {
	case services.RouteVerifyInvalid:
		printlnFn("That does not look like a certificate code.")
	case services.RouteVerifyNotFound:
		printlnFn("No certificate found for that code.")
	case services.RouteVerifyFailed:
		printlnFn("Verification is unavailable right now, please try again.")
	default:
		printlnFn("Certificate verified: " + strings.TrimPrefix(path, services.RouteVerifyPrefix))
	}
	return nil
}
