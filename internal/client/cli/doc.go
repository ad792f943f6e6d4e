// Package cli provides the interactive RetailMediaAI command-line client.
//
// It wires configuration, the local profile store, the server API client and
// an interactive REPL. Account commands (register, login, forgot, reset) work
// signed out; everything else needs a session.
//
// Key features:
//   - Register with an emailed code, login by email or linked phone number
//   - Profile and theme settings
//   - Creatives: add, list, show, delete, export, share
//   - Image prompt URLs and the autosaved draft
//   - Weekly usage and the emailed report
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
