package services

import (
	"context"
	"io"
	"log/slog"

	"github.com/learnpath/lmscli/internal/client/api"
	"github.com/learnpath/lmscli/internal/client/models"
	"github.com/learnpath/lmscli/internal/logging"
)

// fakeAPI implements api.Client for unit tests. Zero values mean success
// with empty results; set the *Err fields to simulate failures.
type fakeAPI struct {
	LoginRet *api.LoginResult
	LoginErr error

	RegisterErr   error
	RegisterCalls int
	LastRegister  api.RegisterRequest

	MeRet *models.User
	MeErr error

	RefreshRet *models.TokenPair
	RefreshErr error

	ForgotErr error
	ResetErr  error

	CoursesRet []models.Course
	CoursesErr error

	ModulesRet []models.Module
	ModulesErr error

	ReviewsRet []models.Review
	ReviewsErr error

	PostReviewErr   error
	LastReview      models.ReviewInput
	PostReviewCalls int

	EnrollRet *models.Enrollment
	EnrollErr error

	LookupRet  *models.CertificateLookup
	LookupErr  error
	LastLookup string
}

func (f *fakeAPI) Login(_ context.Context, email, password string) (*api.LoginResult, error) {
	return f.LoginRet, f.LoginErr
}

func (f *fakeAPI) Register(_ context.Context, req api.RegisterRequest) error {
	f.RegisterCalls++
	f.LastRegister = req
	return f.RegisterErr
}

func (f *fakeAPI) Me(_ context.Context) (*models.User, error) {
	return f.MeRet, f.MeErr
}

func (f *fakeAPI) Refresh(_ context.Context, _ string) (*models.TokenPair, error) {
	return f.RefreshRet, f.RefreshErr
}

func (f *fakeAPI) ForgotPassword(_ context.Context, _ string) error { return f.ForgotErr }

func (f *fakeAPI) ResetPassword(_ context.Context, _, _ string) error { return f.ResetErr }

func (f *fakeAPI) Courses(_ context.Context) ([]models.Course, error) {
	return f.CoursesRet, f.CoursesErr
}

func (f *fakeAPI) PublicModules(_ context.Context) ([]models.Module, error) {
	return f.ModulesRet, f.ModulesErr
}

func (f *fakeAPI) Reviews(_ context.Context) ([]models.Review, error) {
	return f.ReviewsRet, f.ReviewsErr
}

func (f *fakeAPI) PostReview(_ context.Context, in models.ReviewInput) error {
	f.PostReviewCalls++
	f.LastReview = in
	return f.PostReviewErr
}

func (f *fakeAPI) InitiateEnrollment(_ context.Context) (*models.Enrollment, error) {
	return f.EnrollRet, f.EnrollErr
}

func (f *fakeAPI) LookupCertificate(_ context.Context, shortCode string) (*models.CertificateLookup, error) {
	f.LastLookup = shortCode
	return f.LookupRet, f.LookupErr
}

// recordingNav captures every redirect request.
type recordingNav struct {
	paths []string
}

func (n *recordingNav) Navigate(path string) {
	n.paths = append(n.paths, path)
}

func (n *recordingNav) last() string {
	if len(n.paths) == 0 {
		return ""
	}
	return n.paths[len(n.paths)-1]
}

// fakeScheduler records Arm/Disarm transitions.
type fakeScheduler struct {
	armedWith []string
	disarms   int
}

func (s *fakeScheduler) Arm(accessToken string) { s.armedWith = append(s.armedWith, accessToken) }
func (s *fakeScheduler) Disarm()                { s.disarms++ }

// memCreds is an in-memory credentials.Store.
type memCreds struct {
	pair    models.TokenPair
	saves   int
	cleared bool
}

func (m *memCreds) Pair(_ context.Context) (models.TokenPair, error) { return m.pair, nil }

func (m *memCreds) Save(_ context.Context, pair models.TokenPair) error {
	m.pair = pair
	m.saves++
	return nil
}

func (m *memCreds) Clear(_ context.Context) error {
	m.pair = models.TokenPair{}
	m.cleared = true
	return nil
}

func (m *memCreds) AccessToken(_ context.Context) (string, error) {
	return m.pair.AccessToken, nil
}

func quietLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
