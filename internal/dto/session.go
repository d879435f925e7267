package dto

// Session cookie layout shared by the auth controller and the route guards.
const (
	SessionName     = "pollify_session"
	SessionUserID   = "user_id"
	SessionUsername = "username"
	SessionIsAdmin  = "is_admin"
)

// UserIDContextKey carries the authenticated user's id through the echo context.
const UserIDContextKey = "user_id"
