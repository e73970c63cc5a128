// Package credential holds the process-wide local identity of the console
// client.
//
// This package provides two in-memory holders:
//
//   - store.go: Store, the current session token and its expiry
//   - account.go: AccountStore, the signed-in user's display identity
//
// Both are created empty at startup, mutated only through their Set/Update
// and Clear methods, and torn down on process exit. Nothing is persisted.
package credential
