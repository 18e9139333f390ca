package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"not found", ErrNotFound, http.StatusNotFound},
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized},
		{"invalid credentials", ErrInvalidCredentials, http.StatusUnauthorized},
		{"bad request", ErrBadRequest, http.StatusBadRequest},
		{"missing login fields", ErrLoginFieldsMissing, http.StatusBadRequest},
		{"duplicate user", ErrUserExists, http.StatusBadRequest},
		{"missing attempt fields", ErrAttemptFields, http.StatusBadRequest},
		{"invalid status", ErrInvalidStatus, http.StatusBadRequest},
		{"unknown problem", ErrProblemNotFound, http.StatusBadRequest},
		{"wrapped sentinel", fmt.Errorf("context: %w", ErrNotFound), http.StatusNotFound},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
		{"unique violation", &pgconn.PgError{Code: "23505"}, http.StatusBadRequest},
		{"other pg error", &pgconn.PgError{Code: "23503"}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatusFromError(tt.err))
		})
	}
}
