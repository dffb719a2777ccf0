package llm

import "errors"

// Sentinel errors for provider failure classes. Providers wrap these so
// callers can pick a recovery strategy with errors.Is.
var (
	// ErrRateLimited means the upstream model rejected the call for quota
	// or rate reasons. Callers should surface this to the client.
	ErrRateLimited = errors.New("llm: rate limited")

	// ErrAuth means the credentials are missing or rejected. Callers may
	// fall back to canned responses.
	ErrAuth = errors.New("llm: authentication failed")

	// ErrService covers upstream 5xx and transport failures.
	ErrService = errors.New("llm: service error")

	// ErrNotConfigured is returned by Chat/Generate when the provider has
	// no usable credentials.
	ErrNotConfigured = errors.New("llm: provider not configured")
)
