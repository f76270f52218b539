package session

import "time"

// Store abstracts where the auth cookies live so the session can be backed by the
// browser cookie jar (default) or by memory in tests and tooling.
type Store interface {
	// Get returns the value for name. Returns false if the value does not
	// exist or its expiry has passed.
	Get(name string) (string, bool)
	// Set writes value for name, expiring at expiresAt.
	Set(name, value string, expiresAt time.Time)
	// Clear removes name. Clearing an absent value is a no-op.
	Clear(name string)
}
