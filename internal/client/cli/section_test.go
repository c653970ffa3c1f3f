package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnpath/lmscli/internal/client/api"
	"github.com/learnpath/lmscli/internal/client/models"
	"github.com/learnpath/lmscli/internal/client/services"
	"github.com/learnpath/lmscli/internal/client/session"
)

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, fmt.Sprintln(a...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func sectionApp() *App {
	a := &App{sessions: session.NewStore(), route: services.RouteStudentHome}
	a.auth = &fakeAuth{sessions: a.sessions, nav: a}
	return a
}

func TestRenderSection_Success(t *testing.T) {
	lines := captureOutput(t)

	sectionApp().renderSection(context.Background(), "dashboard", func() error {
		printlnFn("content")
		return nil
	})

	require.Len(t, *lines, 1)
	assert.Contains(t, (*lines)[0], "content")
}

func TestRenderSection_ErrorIsContained(t *testing.T) {
	lines := captureOutput(t)

	sectionApp().renderSection(context.Background(), "reviews", func() error {
		return errors.New("backend down")
	})

	require.Len(t, *lines, 1)
	assert.Contains(t, (*lines)[0], "reviews section failed")
	assert.Contains(t, (*lines)[0], "retry")
}

func TestRenderSection_PanicIsContained(t *testing.T) {
	lines := captureOutput(t)

	require.NotPanics(t, func() {
		sectionApp().renderSection(context.Background(), "courses", func() error {
			panic("nil dereference somewhere deep")
		})
	})

	require.Len(t, *lines, 1)
	assert.Contains(t, (*lines)[0], "courses section failed")
}

func TestRenderSection_401TearsSessionDown(t *testing.T) {
	lines := captureOutput(t)

	a := sectionApp()
	a.sessions.SetUser(&models.User{ID: "u1", Email: "alice@example.org", Role: models.RoleStudent})
	a.renderSection(context.Background(), "dashboard", func() error {
		return &api.APIError{StatusCode: http.StatusUnauthorized, Message: "Token expired"}
	})

	assert.False(t, a.sessions.IsAuthenticated())
	assert.Equal(t, services.RouteLogin, a.CurrentRoute())
	require.NotEmpty(t, *lines)
	assert.Contains(t, (*lines)[len(*lines)-1], "session has expired")
}

func TestDisplayError(t *testing.T) {
	apiErr := &api.APIError{StatusCode: http.StatusConflict, Code: "conflict", Message: "email already registered"}

	t.Run("server message wins", func(t *testing.T) {
		wrapped := fmt.Errorf("register: %w", apiErr)
		assert.Equal(t, "email already registered", displayError(wrapped))
	})

	t.Run("plain errors pass through", func(t *testing.T) {
		err := errors.New("dial tcp: connection refused")
		assert.True(t, strings.Contains(displayError(err), "connection refused"))
	})
}
