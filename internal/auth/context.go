package auth

// Gin context keys set by the JWT middleware. They live here rather than in
// the middleware package so handlers can read them without a cycle.
const (
	// ContextProfileID is the key for the authenticated profile ID.
	ContextProfileID = "profile_id"
	// ContextEmail is the key for the authenticated email.
	ContextEmail = "profile_email"
)
