package common

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors double as the API-facing messages, so handlers can pass
// err.Error() straight through for client errors.
var (
	ErrNotFound           = errors.New("requested resource not found")
	ErrUnauthorized       = errors.New("unauthorized access")
	ErrBadRequest         = errors.New("bad request")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrLoginFieldsMissing = errors.New("Username and password are required")
	ErrUserNameRequired   = errors.New("User name is required")
	ErrUserExists         = errors.New("User already exists")
	ErrUserParamRequired  = errors.New("user query param is required")
	ErrAttemptFields      = errors.New("Missing required fields: user, problem_id, date, status")
	ErrInvalidStatus      = errors.New("Invalid status")
	ErrProblemNotFound    = errors.New("Problem ID does not exist")
)

// HTTPStatusFromError maps domain errors to HTTP status codes. Duplicate
// resources map to 400, matching the public API contract.
func HTTPStatusFromError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, ErrLoginFieldsMissing),
		errors.Is(err, ErrUserNameRequired),
		errors.Is(err, ErrUserExists),
		errors.Is(err, ErrUserParamRequired),
		errors.Is(err, ErrAttemptFields),
		errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrProblemNotFound):
		return http.StatusBadRequest
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique violation
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}
