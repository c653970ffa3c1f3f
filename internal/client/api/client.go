// Package api implements the REST client for the LearnPath backend.
// It owns request construction, bearer-token injection and error
// normalization; retrying is the caller's concern (see internal/client/retry).
package api

import (
	"context"

	"github.com/learnpath/lmscli/internal/client/models"
)

// LoginResult is the body of a successful POST /auth/login.
type LoginResult struct {
	Tokens models.TokenPair
	User   models.User
}

// RegisterRequest is the multipart payload of POST /auth/register.
// ImagePath, when non-empty, names a local file uploaded as the profile image.
type RegisterRequest struct {
	Name      string
	Email     string
	Password  string
	ImagePath string
}

// Client defines every backend operation the application performs.
//
// Contract:
//   - Each method issues exactly one HTTP request; no method retries.
//   - Failures carry a *APIError when the server responded at all.
//   - All methods honor context cancellation/timeouts.
type Client interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Register(ctx context.Context, req RegisterRequest) error
	Me(ctx context.Context) (*models.User, error)
	Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error

	Courses(ctx context.Context) ([]models.Course, error)
	PublicModules(ctx context.Context) ([]models.Module, error)
	Reviews(ctx context.Context) ([]models.Review, error)
	PostReview(ctx context.Context, in models.ReviewInput) error
	InitiateEnrollment(ctx context.Context) (*models.Enrollment, error)
	LookupCertificate(ctx context.Context, shortCode string) (*models.CertificateLookup, error)
}
