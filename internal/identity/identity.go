package identity

// Unauthenticated is the sentinel owner value used on write paths when no
// caller identity can be resolved.
const Unauthenticated = "UNAUTH"

// Caller is the resolved identity of the requester, threaded explicitly
// into service operations. The HTTP layer sources it from whatever
// transport-level authentication is configured (OIDC, local JWT, none).
type Caller struct {
	Subject       string
	Authenticated bool
}

// Anonymous returns the caller used when no verifiable identity is present.
func Anonymous() Caller {
	return Caller{}
}

// Owner returns the owner id to stamp on created records: the authenticated
// subject when available, fallback otherwise, or the UNAUTH sentinel.
func (c Caller) Owner(fallback string) string {
	if c.Authenticated && c.Subject != "" {
		return c.Subject
	}
	if fallback != "" {
		return fallback
	}
	return Unauthenticated
}
