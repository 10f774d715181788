package apperror

import "net/http"

// Cross-cutting errors raised by the middleware chain. Domain errors
// live in each module's own errors package.
var (
	ErrForbidden = New(
		CodeForbidden,
		"You do not have permission to access this resource",
		http.StatusForbidden,
	)

	ErrUnauthorized = New(
		CodeUnauthorized,
		"Authentication is required",
		http.StatusUnauthorized,
	)
)
