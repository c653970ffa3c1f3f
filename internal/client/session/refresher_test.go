package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/learnpath/lmscli/internal/client/models"
	"github.com/learnpath/lmscli/internal/logging"
)

// ---- seams & fakes ----

type armedTimer struct {
	delay time.Duration
	fn    func()
}

// stubTimers replaces afterFunc so tests control when timers fire.
func stubTimers(t *testing.T) *[]armedTimer {
	t.Helper()
	orig := afterFunc
	t.Cleanup(func() { afterFunc = orig })

	var armed []armedTimer
	ptr := &armed
	afterFunc = func(d time.Duration, fn func()) *time.Timer {
		*ptr = append(*ptr, armedTimer{delay: d, fn: fn})
		return time.AfterFunc(time.Hour, func() {}) // inert, only Stop is used
	}
	return ptr
}

type memCreds struct {
	mu      sync.Mutex
	pair    models.TokenPair
	saves   int
	saveErr error
	cleared bool
}

func (m *memCreds) Pair(_ context.Context) (models.TokenPair, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pair, nil
}

func (m *memCreds) Save(_ context.Context, pair models.TokenPair) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.pair = pair
	m.saves++
	return nil
}

func (m *memCreds) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pair = models.TokenPair{}
	m.cleared = true
	return nil
}

func (m *memCreds) AccessToken(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pair.AccessToken, nil
}

type fakeRefresher struct {
	mu       sync.Mutex
	gotToken string
	calls    int

	ret *models.TokenPair
	err error

	block chan struct{} // when non-nil, Refresh waits for it
}

func (f *fakeRefresher) Refresh(_ context.Context, refreshToken string) (*models.TokenPair, error) {
	f.mu.Lock()
	f.gotToken = refreshToken
	f.calls++
	block := f.block
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	if f.err != nil {
		return nil, f.err
	}
	pair := *f.ret
	return &pair, nil
}

func quietLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestScheduler(client *fakeRefresher, creds *memCreds) (*Scheduler, *Store) {
	sessions := NewStore()
	return NewScheduler(client, creds, sessions, 0, quietLogger()), sessions
}

// ---- tests ----

func TestArm_OpaqueTokenUsesDefaultOffset(t *testing.T) {
	timers := stubTimers(t)
	s, _ := newTestScheduler(&fakeRefresher{}, &memCreds{})

	s.Arm("opaque-access-token")

	require.Len(t, *timers, 1)
	require.Equal(t, 24*time.Hour-5*time.Minute, (*timers)[0].delay)
	require.True(t, s.Scheduled())
}

func TestArm_ConfiguredLeadShiftsDelay(t *testing.T) {
	timers := stubTimers(t)
	s := NewScheduler(&fakeRefresher{}, &memCreds{}, NewStore(), 10*time.Minute, quietLogger())

	s.Arm("opaque-access-token")

	require.Len(t, *timers, 1)
	require.Equal(t, 24*time.Hour-10*time.Minute, (*timers)[0].delay)
}

func TestArm_JWTExpiryDrivesDelay(t *testing.T) {
	timers := stubTimers(t)
	s, _ := newTestScheduler(&fakeRefresher{}, &memCreds{})

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("test-key"))
	require.NoError(t, err)

	s.Arm(token)

	require.Len(t, *timers, 1)
	delay := (*timers)[0].delay
	require.InDelta(t, (55 * time.Minute).Seconds(), delay.Seconds(), 5)
}

func TestArm_ExpiredJWTRefreshesSoon(t *testing.T) {
	timers := stubTimers(t)
	s, _ := newTestScheduler(&fakeRefresher{}, &memCreds{})

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}).SignedString([]byte("test-key"))
	require.NoError(t, err)

	s.Arm(token)
	require.Equal(t, minDelay, (*timers)[0].delay)
}

func TestFire_SuccessRotatesAndRearms(t *testing.T) {
	timers := stubTimers(t)
	creds := &memCreds{pair: models.TokenPair{AccessToken: "old-a", RefreshToken: "old-r"}}
	client := &fakeRefresher{ret: &models.TokenPair{AccessToken: "new-a", RefreshToken: "new-r"}}
	s, sessions := newTestScheduler(client, creds)
	sessions.SetUser(&models.User{ID: "u1"})

	s.Arm("old-a")
	(*timers)[0].fn()

	require.Equal(t, "old-r", client.gotToken)
	require.Equal(t, models.TokenPair{AccessToken: "new-a", RefreshToken: "new-r"}, creds.pair)
	require.True(t, sessions.IsAuthenticated())

	// The chain re-arms from completion time with the default offset again.
	require.Len(t, *timers, 2)
	require.Equal(t, 24*time.Hour-5*time.Minute, (*timers)[1].delay)
	require.True(t, s.Scheduled())
}

func TestFire_KeepsOldRefreshTokenWhenNotRotated(t *testing.T) {
	timers := stubTimers(t)
	creds := &memCreds{pair: models.TokenPair{AccessToken: "old-a", RefreshToken: "old-r"}}
	client := &fakeRefresher{ret: &models.TokenPair{AccessToken: "new-a"}}
	s, _ := newTestScheduler(client, creds)

	s.Arm("old-a")
	(*timers)[0].fn()

	require.Equal(t, "new-a", creds.pair.AccessToken)
	require.Equal(t, "old-r", creds.pair.RefreshToken)
}

func TestFire_FailureEvictsSession(t *testing.T) {
	timers := stubTimers(t)
	creds := &memCreds{pair: models.TokenPair{AccessToken: "a", RefreshToken: "r"}}
	client := &fakeRefresher{err: errors.New("refresh token rejected")}
	s, sessions := newTestScheduler(client, creds)
	sessions.SetUser(&models.User{ID: "u1"})

	evicted := false
	s.SetEvictHandler(func() { evicted = true })

	s.Arm("a")
	(*timers)[0].fn()

	require.True(t, creds.cleared)
	require.False(t, sessions.IsAuthenticated())
	require.True(t, evicted)
	require.False(t, s.Scheduled())
	require.Len(t, *timers, 1, "no further timer after a failed refresh")
}

func TestFire_PersistFailureEvictsSession(t *testing.T) {
	timers := stubTimers(t)
	creds := &memCreds{
		pair:    models.TokenPair{AccessToken: "a", RefreshToken: "r"},
		saveErr: errors.New("database is locked"),
	}
	client := &fakeRefresher{ret: &models.TokenPair{AccessToken: "new-a", RefreshToken: "new-r"}}
	s, sessions := newTestScheduler(client, creds)
	sessions.SetUser(&models.User{ID: "u1"})

	evicted := false
	s.SetEvictHandler(func() { evicted = true })

	s.Arm("a")
	(*timers)[0].fn()

	// A pair that cannot be persisted must not keep the session alive on
	// the renewed in-memory token.
	require.True(t, creds.cleared)
	require.False(t, sessions.IsAuthenticated())
	require.True(t, evicted)
	require.False(t, s.Scheduled())
	require.Len(t, *timers, 1, "no re-arm when the refreshed pair was not stored")
}

func TestFire_MissingRefreshTokenTearsDown(t *testing.T) {
	timers := stubTimers(t)
	creds := &memCreds{pair: models.TokenPair{AccessToken: "a"}}
	client := &fakeRefresher{ret: &models.TokenPair{AccessToken: "x"}}
	s, sessions := newTestScheduler(client, creds)
	sessions.SetUser(&models.User{ID: "u1"})

	s.Arm("a")
	(*timers)[0].fn()

	require.Equal(t, 0, client.calls, "no refresh call without a refresh token")
	require.True(t, creds.cleared)
	require.False(t, sessions.IsAuthenticated())
}

func TestDisarm_CancelsPendingCycle(t *testing.T) {
	timers := stubTimers(t)
	creds := &memCreds{pair: models.TokenPair{AccessToken: "a", RefreshToken: "r"}}
	client := &fakeRefresher{ret: &models.TokenPair{AccessToken: "new-a", RefreshToken: "new-r"}}
	s, sessions := newTestScheduler(client, creds)
	sessions.SetUser(&models.User{ID: "u1"})

	s.Arm("a")
	s.Disarm()
	require.False(t, s.Scheduled())

	// A stale timer callback firing after Disarm must not write anything.
	(*timers)[0].fn()
	require.Equal(t, 0, creds.saves)
	require.Len(t, *timers, 1)
}

func TestRearm_InvalidatesPreviousTimer(t *testing.T) {
	timers := stubTimers(t)
	creds := &memCreds{pair: models.TokenPair{AccessToken: "a", RefreshToken: "r"}}
	client := &fakeRefresher{ret: &models.TokenPair{AccessToken: "new-a", RefreshToken: "new-r"}}
	s, _ := newTestScheduler(client, creds)

	s.Arm("a")
	s.Arm("a") // reentrant arm replaces the first timer

	(*timers)[0].fn() // stale generation
	require.Equal(t, 0, creds.saves)

	(*timers)[1].fn() // live generation
	require.Equal(t, 1, creds.saves)
}

func TestFire_LateCompletionAfterDisarmIsDiscarded(t *testing.T) {
	timers := stubTimers(t)
	creds := &memCreds{pair: models.TokenPair{AccessToken: "a", RefreshToken: "r"}}
	client := &fakeRefresher{
		ret:   &models.TokenPair{AccessToken: "new-a", RefreshToken: "new-r"},
		block: make(chan struct{}),
	}
	s, sessions := newTestScheduler(client, creds)
	sessions.SetUser(&models.User{ID: "u1"})

	s.Arm("a")

	done := make(chan struct{})
	go func() {
		(*timers)[0].fn()
		close(done)
	}()

	// Wait for the refresh call to be in flight, then log out underneath it.
	require.Eventually(t, func() bool {
		client.mu.Lock()
		defer client.mu.Unlock()
		return client.calls == 1
	}, time.Second, time.Millisecond)

	s.Disarm()
	sessions.Clear()
	close(client.block)
	<-done

	require.Equal(t, 0, creds.saves, "late refresh result must be dropped")
	require.False(t, sessions.IsAuthenticated())
	require.False(t, s.Scheduled())
}
