// Package services contains the application services of the LearnPath CLI.
// This file defines the auth flow controller: login, registration, logout,
// password recovery, and reconciliation of the local session against
// server truth.
package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/learnpath/lmscli/internal/client/api"
	"github.com/learnpath/lmscli/internal/client/models"
	"github.com/learnpath/lmscli/internal/client/repositories/credentials"
	"github.com/learnpath/lmscli/internal/client/retry"
	"github.com/learnpath/lmscli/internal/client/session"
	"github.com/learnpath/lmscli/internal/common"
	"github.com/learnpath/lmscli/internal/logging"
)

// RefreshScheduler is the slice of the session scheduler the controller
// drives: armed on login, disarmed on logout.
type RefreshScheduler interface {
	Arm(accessToken string)
	Disarm()
}

// RegisterInput is the validated registration form.
type RegisterInput struct {
	Name      string `validate:"required,min=2,max=100"`
	Email     string `validate:"required,email"`
	Password  string `validate:"required,min=8,max=128"`
	ImagePath string `validate:"omitempty,filepath"`
}

// AuthController orchestrates the session lifecycle. All store mutations
// funnel through it (or through the scheduler it owns a handle to), which
// keeps the single-writer discipline checkable in one place.
type AuthController struct {
	api       api.Client
	creds     credentials.Store
	sessions  *session.Store
	scheduler RefreshScheduler
	nav       Navigator
	validate  *validator.Validate
	log       logging.Logger
}

func NewAuthController(
	apiClient api.Client,
	creds credentials.Store,
	sessions *session.Store,
	scheduler RefreshScheduler,
	nav Navigator,
	log logging.Logger,
) *AuthController {
	return &AuthController{
		api:       apiClient,
		creds:     creds,
		sessions:  sessions,
		scheduler: scheduler,
		nav:       nav,
		validate:  validator.New(),
		log:       log,
	}
}

// homeFor maps a role to its dashboard route.
func homeFor(role models.Role) string {
	if role == models.RoleAdmin {
		return RouteAdminHome
	}
	return RouteStudentHome
}

// Login authenticates, persists the token pair, populates the session,
// arms the refresh scheduler and navigates to the role-appropriate
// dashboard. On failure nothing is mutated and the server's message is
// returned for inline display.
func (c *AuthController) Login(ctx context.Context, email, password string) error {
	var result *api.LoginResult
	err := retry.Do(ctx, retry.Writes, func(ctx context.Context) error {
		var callErr error
		result, callErr = c.api.Login(ctx, email, password)
		return callErr
	})
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	if err := c.creds.Save(ctx, result.Tokens); err != nil {
		return fmt.Errorf("persisting credentials: %w", err)
	}
	c.sessions.SetUser(&result.User)
	c.scheduler.Arm(result.Tokens.AccessToken)

	c.log.Info(ctx, "logged in", "user", result.User.ID, "role", result.User.Role)
	c.nav.Navigate(homeFor(result.User.Role))
	return nil
}

// Register creates an account and navigates to the email-verification
// waiting screen. No tokens are issued at this step; the caller stays
// unauthenticated until verification.
func (c *AuthController) Register(ctx context.Context, in RegisterInput) error {
	if err := c.validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %w", common.ErrValidation, err)
	}

	err := retry.Do(ctx, retry.Writes, func(ctx context.Context) error {
		return c.api.Register(ctx, api.RegisterRequest{
			Name:      in.Name,
			Email:     in.Email,
			Password:  in.Password,
			ImagePath: in.ImagePath,
		})
	})
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}

	c.nav.Navigate(RouteCheckEmail)
	return nil
}

// WhoAmI reconciles the local session with server truth. It is a no-op
// without a stored access token. A 401 means the stored credentials are
// dead and forces a logout; any other failure is non-fatal and keeps the
// last known identity.
func (c *AuthController) WhoAmI(ctx context.Context) error {
	token, err := c.creds.AccessToken(ctx)
	if err != nil {
		return fmt.Errorf("reading stored token: %w", err)
	}
	if token == "" {
		return nil
	}

	var user *models.User
	err = retry.Do(ctx, retry.Reads, func(ctx context.Context) error {
		var callErr error
		user, callErr = c.api.Me(ctx)
		return callErr
	})
	if err != nil {
		if api.IsUnauthorized(err) {
			c.ForceLogout(ctx)
			return fmt.Errorf("whoami: %w", common.ErrUnauthorized)
		}
		c.log.Warn(ctx, "whoami failed, keeping last known identity", "error", err)
		return nil
	}

	c.sessions.SetUser(user)
	c.scheduler.Arm(token)
	return nil
}

// Logout clears the session and durable credentials and navigates to the
// login screen.
func (c *AuthController) Logout(ctx context.Context) error {
	c.scheduler.Disarm()
	if err := c.creds.Clear(ctx); err != nil {
		return fmt.Errorf("clearing credentials: %w", err)
	}
	c.sessions.Clear()
	c.nav.Navigate(RouteLogin)
	return nil
}

// ForceLogout is the 401 funnel: identical to Logout but never fails the
// caller, since it runs inside unrelated operations.
func (c *AuthController) ForceLogout(ctx context.Context) {
	c.scheduler.Disarm()
	if err := c.creds.Clear(ctx); err != nil {
		c.log.Error(ctx, "clearing credentials on forced logout", "error", err)
	}
	c.sessions.Clear()
	c.nav.Navigate(RouteLogin)
}

// ForgotPassword requests a reset email.
func (c *AuthController) ForgotPassword(ctx context.Context, email string) error {
	err := retry.Do(ctx, retry.Writes, func(ctx context.Context) error {
		return c.api.ForgotPassword(ctx, email)
	})
	if err != nil {
		return fmt.Errorf("forgot password: %w", err)
	}
	return nil
}

// ResetPassword completes a reset with the emailed token.
func (c *AuthController) ResetPassword(ctx context.Context, token, newPassword string) error {
	err := retry.Do(ctx, retry.Writes, func(ctx context.Context) error {
		return c.api.ResetPassword(ctx, token, newPassword)
	})
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	return nil
}
