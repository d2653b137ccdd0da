// Package cli provides the interactive ContactDesk command-line client.
//
// It wires configuration, the persisted session store, the REST API client,
// the live update channel, and an interactive REPL. Typical flow: restore
// the previous session (reconnecting the push channel if one was saved),
// then execute user commands while change notifications from other devices
// are printed as they arrive.
//
// Key features:
//   - Login / Logout / Register
//   - List contacts, add, edit, delete
//   - Per-field edit history of a contact
//   - Live contact updates pushed from the server
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
