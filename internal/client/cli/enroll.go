package cli

import (
	"context"

	"github.com/learnpath/lmscli/internal/netx"
)

// openBrowser is a test seam for the browser hand-off.
var openBrowser = netx.OpenBrowser

// Enroll starts the paid enrollment flow and hands the user over to the
// payment gateway in their browser. Requires a logged-in student.
func (a *App) Enroll(ctx context.Context) error {
	if !a.guard(ctx, accessStudent) {
		return nil
	}

	if user, ok := a.sessions.Current(); ok && user.Enrolled {
		printlnFn("You are already enrolled.")
		return nil
	}

	enr, err := a.enrollment.Initiate(ctx)
	if err != nil {
		if a.failIfUnauthorized(ctx, err) {
			return err
		}
		printlnFn("Could not start enrollment: " + displayError(err))
		return err
	}

	printlnFn("Order " + enr.OrderID + " created. Complete the payment in your browser:")
	printlnFn(enr.PaymentURL)
	if err := openBrowser(enr.PaymentURL); err != nil {
		a.log.Warn(ctx, "opening browser", "error", err)
		printlnFn("Could not open the browser automatically, use the link above.")
	}
	return nil
}
