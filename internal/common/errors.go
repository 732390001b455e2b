package common

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound       = errors.New("requested resource not found")
	ErrBadRequest     = errors.New("bad request")
	ErrValidation     = errors.New("validation failed")
	ErrInternalServer = errors.New("internal server error")

	// Credential and session failures. The messages are what clients see.
	ErrUserAlreadyExists = errors.New("User already exists")
	ErrInvalidUser       = errors.New("Invalid User")
	ErrInvalidPassword   = errors.New("Invalid Password")
	ErrMissingToken      = errors.New("missing JWT token")
	ErrInvalidToken      = errors.New("Invalid JWT Token")

	ErrTeacherNotFound = fmt.Errorf("Teacher not found: %w", ErrNotFound)
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// IsUniqueViolation reports whether err carries a PostgreSQL unique constraint failure.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// HTTPStatusFromError maps domain errors to HTTP status codes.
func HTTPStatusFromError(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrMissingToken), errors.Is(err, ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, ErrUserAlreadyExists),
		errors.Is(err, ErrInvalidUser),
		errors.Is(err, ErrInvalidPassword),
		errors.Is(err, ErrBadRequest),
		errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// PublicMessage returns the text a client may see for err. Anything that is
// not a known domain error collapses to a generic message.
func PublicMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingToken), errors.Is(err, ErrInvalidToken):
		// Callers must not be able to tell the two apart.
		return ErrInvalidToken.Error()
	case errors.Is(err, ErrUserAlreadyExists):
		return ErrUserAlreadyExists.Error()
	case errors.Is(err, ErrInvalidUser):
		return ErrInvalidUser.Error()
	case errors.Is(err, ErrInvalidPassword):
		return ErrInvalidPassword.Error()
	case errors.Is(err, ErrTeacherNotFound):
		return "Teacher not found"
	case errors.Is(err, ErrBadRequest), errors.Is(err, ErrValidation), errors.Is(err, ErrNotFound):
		return err.Error()
	}
	return ErrInternalServer.Error()
}

// Errorf creates a new error with formatting, useful for wrapping.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
