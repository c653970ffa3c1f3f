// Package cli provides the interactive LearnPath command-line client.
//
// It wires configuration, local credential storage, the REST client, the
// session store and the token refresh scheduler into an interactive REPL.
// Routes are modelled as screen identifiers; commands that map to protected
// screens pass through an access guard before any content is rendered.
//
// Key features:
//   - Login / Register / Logout, password recovery
//   - Catalog browsing: courses, public modules, reviews
//   - Enrollment initiation with a browser hand-off to the payment gateway
//   - Certificate short-code verification
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, Guard decisions in guard.go, and runREPL for details.
package cli
