// Package cli provides the interactive SlabVault command-line client.
//
// It wires configuration, the local session cache, the REST API client and
// the submission services into an interactive REPL. Typical flow: restore the
// cached session, prompt for credentials when needed, and execute user
// commands.
//
// Key features:
//   - Register / Login / Logout, with forgot/reset password flows
//   - Build a submission: add, edit and soft-delete cards
//   - Review and pay (immediately or later)
//   - Dashboard: vault, paid submissions, metrics
//   - Admin workbench: paginated submissions, analytics, local refinement,
//     optimistic status changes
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
