package types

const (
	ErrInvalidInput  = "Invalid input"
	ErrDatabaseError = "Database error"
	ErrUnauthorized  = "Unauthorized access"
	ErrNotFound      = "Not found"
	ErrInternalError = "Internal server error"
)
