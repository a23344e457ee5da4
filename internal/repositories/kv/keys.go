// Package kv persists the ledger document, the user directory and the current session
// as JSON values in a KeyValueStore.
package kv

// Storage keys. These are part of the persisted format and must not change.
const (
	StateKey   = "finance_dashboard_state"
	UsersKey   = "finance_dashboard_users"
	SessionKey = "finance_dashboard_auth"
)
