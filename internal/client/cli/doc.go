// Package cli provides the interactive devconnector command-line client.
//
// It wires configuration, the HTTP API client and the session/post services
// into a small REPL. Typical flow: log in (or register), then browse and
// write posts.
//
// Commands:
//   - register / login / logout / me
//   - posts, show <id>, post, delete <id>
//   - like <id>, unlike <id>, comment <id>
//   - profile (show), editprofile, avatar <file>
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
