package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	ForgotPassword(ctx context.Context) error
	ResetPassword(ctx context.Context) error
	Courses(ctx context.Context) error
	Modules(ctx context.Context) error
	Reviews(ctx context.Context) error
	AddReview(ctx context.Context) error
	Enroll(ctx context.Context) error
	Verify(ctx context.Context, shortCode string) error
	Dashboard(ctx context.Context) error
	Admin(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the LearnPath CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Always:
//	  - help             — show available commands
//	  - courses          — list the course catalog
//	  - modules          — list publicly visible modules
//	  - reviews          — list published reviews
//	  - verify <code>    — verify a certificate short code
//	  - exit | quit      — leave the program
//
//	Not logged in:
//	  - register         — create an account
//	  - login            — authenticate
//	  - forgot           — request a password reset email
//	  - reset            — complete a password reset
//
//	Logged in:
//	  - whoami           — show the current identity
//	  - dashboard        — open your dashboard
//	  - admin            — open the admin back office
//	  - enroll           — start course enrollment
//	  - review           — post a course review
//	  - logout           — log out
//
// Any errors returned by command handlers are ignored here; handlers print
// their own messages. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("lms %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			printlnFn("Available commands: courses, modules, reviews, verify <code>, exit")
			if a.isLoggedIn() {
				printlnFn("Session commands: whoami, dashboard, admin, enroll, review, logout")
			} else {
				printlnFn("Account commands: register, login, forgot, reset")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "forgot":
			_ = a.ForgotPassword(ctx)

		case "reset":
			_ = a.ResetPassword(ctx)

		case "courses":
			_ = a.Courses(ctx)

		case "modules":
			_ = a.Modules(ctx)

		case "reviews":
			_ = a.Reviews(ctx)

		case "review":
			_ = a.AddReview(ctx)

		case "enroll":
			_ = a.Enroll(ctx)

		case "verify":
			if len(args) == 0 {
				printlnFn("Usage: verify <code>")
				continue
			}
			_ = a.Verify(ctx, args[0])

		case "dashboard":
			_ = a.Dashboard(ctx)

		case "admin":
			_ = a.Admin(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
