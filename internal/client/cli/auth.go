package cli

import (
	"context"
	"os"

	"github.com/learnpath/lmscli/internal/client/services"
	"github.com/learnpath/lmscli/internal/common"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getMultiline = GetMultiline

// Login prompts for credentials and authenticates. On success the auth
// controller persists the tokens, arms the refresh scheduler and navigates
// to the role-appropriate dashboard. On failure the server's message is
// shown inline and nothing about the current session changes.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Login(ctx, email, string(password)); err != nil {
		printlnFn("Login failed: " + displayError(err))
		return err
	}

	printlnFn("Logged in. You are now at " + a.CurrentRoute())
	return nil
}

// Register prompts for the registration form and creates an account. No
// tokens are issued; on success the user lands on the check-email screen.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter full name", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	imagePath, err := getSimpleText(a.reader, "Path to profile image (optional, Enter to skip)", os.Stdout)
	if err != nil {
		return err
	}

	in := services.RegisterInput{
		Name:      name,
		Email:     email,
		Password:  string(password),
		ImagePath: imagePath,
	}
	if err := a.auth.Register(ctx, in); err != nil {
		printlnFn("Registration failed: " + displayError(err))
		return err
	}

	printlnFn("Account created. Check your inbox for the verification email.")
	return nil
}

// Logout ends the session and returns to the login screen.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		printlnFn("Logout failed: " + displayError(err))
		return err
	}
	printlnFn("Logged out.")
	return nil
}

// WhoAmI reconciles the local session against the server and prints the
// resulting identity.
func (a *App) WhoAmI(ctx context.Context) error {
	if err := a.auth.WhoAmI(ctx); err != nil {
		printlnFn(displayError(err))
		return err
	}

	user, ok := a.sessions.Current()
	if !ok {
		printlnFn("Not logged in.")
		return nil
	}
	printlnFn("Logged in as " + user.Name + " <" + user.Email + "> (" + string(user.Role) + ")")
	return nil
}

// ForgotPassword requests a password reset email.
func (a *App) ForgotPassword(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter the account email", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.auth.ForgotPassword(ctx, email); err != nil {
		printlnFn("Request failed: " + displayError(err))
		return err
	}
	printlnFn("If that address has an account, a reset link is on its way.")
	return nil
}

// ResetPassword completes a password reset using the emailed token.
func (a *App) ResetPassword(ctx context.Context) error {
	token, err := getSimpleText(a.reader, "Enter the reset token from the email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.ResetPassword(ctx, token, string(password)); err != nil {
		printlnFn("Reset failed: " + displayError(err))
		return err
	}
	printlnFn("Password updated. You can log in with the new password now.")
	return nil
}
