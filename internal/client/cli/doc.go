// Package cli provides the interactive Loopa Pro console.
//
// It wires configuration, the local credential store, the backend client,
// the session and its bootstrapper, and an interactive REPL. Typical flow:
// restore the stored session in the background, optionally serve the local
// web console, then execute operator commands until exit.
//
// Commands:
//   - login [email]   request a magic link
//   - verify [token]  redeem a magic-link token
//   - whoami          show the signed-in operator
//   - menu            list the areas the operator may open
//   - open <path>     navigate, following guard redirects
//   - logout          clear the session and the stored credential
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
