package session

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/learnpath/lmscli/internal/client/models"
	"github.com/learnpath/lmscli/internal/client/repositories/credentials"
	"github.com/learnpath/lmscli/internal/common"
	"github.com/learnpath/lmscli/internal/logging"
)

// afterFunc is a test seam for time.AfterFunc.
var afterFunc = time.AfterFunc

const (
	// defaultAccessTTL is assumed when the access token carries no
	// readable expiry.
	defaultAccessTTL = 24 * time.Hour

	// defaultRefreshLead is how long before expiry the refresh runs when
	// the config does not say otherwise.
	defaultRefreshLead = 5 * time.Minute

	// minDelay guards against arming in the past for tokens that are
	// already expired or about to.
	minDelay = time.Minute

	refreshTimeout = 30 * time.Second
)

// RefreshClient is the single backend operation the scheduler needs.
type RefreshClient interface {
	Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error)
}

// Scheduler proactively renews the access token before it expires.
//
// It is a two-state machine: Idle (no session, no timer) and Scheduled
// (exactly one pending timer). Arm moves it to Scheduled, stopping any
// previous timer first, so re-login cycles can never leak a second timer.
// A successful refresh re-arms from its own completion time; a failed one
// tears the whole session down and returns to Idle.
type Scheduler struct {
	client   RefreshClient
	creds    credentials.Store
	sessions *Store
	lead     time.Duration
	log      logging.Logger

	mu    sync.Mutex
	timer *time.Timer
	gen   uint64

	// onEvict, when set, is invoked after a failed refresh has cleared
	// the session (the UI uses it to navigate back to login).
	onEvict func()
}

// NewScheduler builds an idle scheduler. lead is how long before expiry a
// refresh runs; zero or negative selects the 5 minute default.
func NewScheduler(client RefreshClient, creds credentials.Store, sessions *Store, lead time.Duration, log logging.Logger) *Scheduler {
	if lead <= 0 {
		lead = defaultRefreshLead
	}
	return &Scheduler{client: client, creds: creds, sessions: sessions, lead: lead, log: log}
}

// SetEvictHandler registers the forced-logout callback. Must be called
// before the first Arm.
func (s *Scheduler) SetEvictHandler(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onEvict = fn
}

// Arm transitions to Scheduled, computing the delay from the access
// token's expiry when it is a readable JWT and falling back to the
// documented 24h token lifetime otherwise.
func (s *Scheduler) Arm(accessToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.armLocked(accessToken)
}

// Disarm cancels any pending timer and transitions to Idle. In-flight
// refreshes that complete afterwards are discarded.
func (s *Scheduler) Disarm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
}

// Scheduled reports whether a refresh timer is pending.
func (s *Scheduler) Scheduled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

func (s *Scheduler) armLocked(accessToken string) {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.gen++
	gen := s.gen
	delay := refreshDelay(accessToken, s.lead)
	s.timer = afterFunc(delay, func() { s.fire(gen) })
	s.log.Debug(context.Background(), "refresh timer armed", "delay", delay)
}

// refreshDelay derives the timer delay from the token's exp claim. The
// claim is read without signature verification; the client holds no keys
// and only needs the timestamp.
func refreshDelay(accessToken string, lead time.Duration) time.Duration {
	claims := jwt.RegisteredClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(accessToken, &claims)
	if err != nil || claims.ExpiresAt == nil {
		return defaultAccessTTL - lead
	}
	delay := time.Until(claims.ExpiresAt.Time) - lead
	if delay < minDelay {
		return minDelay
	}
	return delay
}

// fire runs one refresh cycle. gen pins the cycle to the timer that
// started it: if the session was torn down or re-armed in the meantime,
// the result is dropped instead of resurrecting cleared state.
func (s *Scheduler) fire(gen uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	pair, err := s.creds.Pair(ctx)
	if err == nil && pair.RefreshToken == "" {
		err = common.ErrNoRefreshToken
	}

	var renewed *models.TokenPair
	if err == nil {
		renewed, err = s.client.Refresh(ctx, pair.RefreshToken)
	}

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}

	if err != nil {
		s.teardownLocked(ctx, err)
		return
	}

	// Servers that do not rotate refresh tokens omit them from the
	// response; keep the old one in that case.
	if renewed.RefreshToken == "" {
		renewed.RefreshToken = pair.RefreshToken
	}
	if saveErr := s.creds.Save(ctx, *renewed); saveErr != nil {
		// Without durable storage the next start would sign requests
		// with the stale pair; treat it like a failed refresh.
		s.teardownLocked(ctx, saveErr)
		return
	}
	s.armLocked(renewed.AccessToken)
	s.mu.Unlock()

	s.log.Info(ctx, "access token refreshed")
}

// teardownLocked ends the session after a failed cycle and returns the
// scheduler to Idle. The caller holds mu; it is released here.
func (s *Scheduler) teardownLocked(ctx context.Context, err error) {
	s.timer = nil
	s.gen++
	evict := s.onEvict
	s.mu.Unlock()

	s.log.Warn(ctx, "token refresh failed, session evicted", "error", err)
	if clearErr := s.creds.Clear(ctx); clearErr != nil {
		s.log.Error(ctx, "clearing credentials", "error", clearErr)
	}
	s.sessions.Clear()
	if evict != nil {
		evict()
	}
}
