package models

const (
	SessionCookie = "session_id"
	ContextToken  = "session_token"
	ContextUser   = "username"
)

// Values for the ?error= query parameter on the index page.
const (
	ErrorInvalidUsername = "invalid_username"
	ErrorJoinFailed      = "join_failed"
	ErrorLeaveFailed     = "leave_failed"
)
