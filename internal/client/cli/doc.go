// Package cli provides the interactive BiteCart command-line client.
//
// It wires configuration, local session storage, the REST gateway, and an
// interactive REPL organized around tabs. Typical flow: restore the persisted
// session on startup, then execute user commands against the session store.
//
// Key features:
//   - Signup / OTP verification / Login / Logout / password recovery
//   - Menu browsing (public), cart and favorites management
//   - Order placement and order history with a status filter
//   - Administrative tab: users, all orders, menu editing, contact messages
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, runREPL, and SwitchTab for details.
package cli
