package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/learnpath/lmscli/internal/client/api"
	"github.com/learnpath/lmscli/internal/client/config"
	"github.com/learnpath/lmscli/internal/client/models"
	"github.com/learnpath/lmscli/internal/client/repositories/credentials"
	"github.com/learnpath/lmscli/internal/client/services"
	"github.com/learnpath/lmscli/internal/client/session"
	"github.com/learnpath/lmscli/internal/client/storage"
	"github.com/learnpath/lmscli/internal/logging"
)

// The service interfaces below describe what the command handlers consume.
// The concrete services satisfy them; tests substitute lightweight stubs.
type authService interface {
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, in services.RegisterInput) error
	WhoAmI(ctx context.Context) error
	Logout(ctx context.Context) error
	ForceLogout(ctx context.Context)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type catalogService interface {
	Courses(ctx context.Context) ([]models.Course, error)
	PublicModules(ctx context.Context) ([]models.Module, error)
	Reviews(ctx context.Context) ([]models.Review, error)
	PostReview(ctx context.Context, in models.ReviewInput) error
}

type enrollmentService interface {
	Initiate(ctx context.Context) (*models.Enrollment, error)
}

type certificateService interface {
	ResolveShortCode(ctx context.Context, shortCode string) string
}

// App is the interactive client. It owns the service layer and acts as the
// Navigator for every redirect the services request.
type App struct {
	config       *config.Config
	auth         authService
	catalog      catalogService
	enrollment   enrollmentService
	certificates certificateService
	sessions     *session.Store
	scheduler    *session.Scheduler
	db           *sql.DB
	log          logging.Logger
	reader       *bufio.Reader

	routeMu sync.Mutex
	route   string
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()
	log := logging.New()

	db, err := storage.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	creds := credentials.NewSQLiteStore(db)
	apiClient := api.NewHTTPClient(c.BaseURL, c.RequestTimeout, creds, log)
	sessions := session.NewStore()
	scheduler := session.NewScheduler(apiClient, creds, sessions, c.RefreshLead, log)

	app := &App{
		config:       c,
		catalog:      services.NewCatalogService(apiClient),
		enrollment:   services.NewEnrollmentService(apiClient),
		certificates: services.NewCertificateService(apiClient),
		sessions:     sessions,
		scheduler:    scheduler,
		db:           db,
		log:          log,
		reader:       bufio.NewReader(os.Stdin),
		route:        services.RouteLogin,
	}
	app.auth = services.NewAuthController(apiClient, creds, sessions, scheduler, app, log)

	// A failed background refresh evicts the session; land the user back
	// on the login screen when that happens.
	scheduler.SetEvictHandler(func() {
		app.Navigate(services.RouteLogin)
		printlnFn("Your session has expired, please log in again.")
	})

	return app, nil
}

// Navigate switches the current screen. It satisfies services.Navigator and
// may be called from the scheduler's goroutine.
func (a *App) Navigate(path string) {
	a.routeMu.Lock()
	defer a.routeMu.Unlock()
	a.route = path
}

// CurrentRoute returns the active screen identifier.
func (a *App) CurrentRoute() string {
	a.routeMu.Lock()
	defer a.routeMu.Unlock()
	return a.route
}

func (a *App) isLoggedIn() bool {
	return a.sessions.IsAuthenticated()
}

// getStatus renders the prompt segment: current route plus, when logged in,
// the account email.
func (a *App) getStatus() string {
	if user, ok := a.sessions.Current(); ok {
		return fmt.Sprintf("%s %s", user.Email, a.CurrentRoute())
	}
	return a.CurrentRoute()
}

// Run restores any persisted session and enters the REPL. It blocks until
// the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	printlnFn("Welcome to LearnPath CLI (type 'help' for commands)")

	// Reconcile a previously stored token against server truth before
	// showing the first prompt.
	if err := a.auth.WhoAmI(ctx); err != nil {
		a.log.Warn(ctx, "session restore failed", "error", err)
	}
	if user, ok := a.sessions.Current(); ok {
		printlnFn("Welcome back, " + user.Name + "!")
		if user.IsAdmin() {
			a.Navigate(services.RouteAdminHome)
		} else {
			a.Navigate(services.RouteStudentHome)
		}
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

// Close releases resources held by the app.
func (a *App) Close() {
	a.scheduler.Disarm()
	if a.db != nil {
		_ = a.db.Close()
	}
}
