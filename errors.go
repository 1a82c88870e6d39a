package devconnect

import (
	"strings"

	"github.com/goliatone/go-errors"
)

// ErrNoToken is returned when a protected request carries no token
var ErrNoToken = errors.New("No token, authorization denied", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("TOKEN_MISSING")

// ErrTokenInvalid is returned for tokens that fail signature or claim checks
var ErrTokenInvalid = errors.New("Token is not valid", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("TOKEN_INVALID")

// ErrTokenExpired is returned for tokens past their exp claim
var ErrTokenExpired = errors.New("Token is not valid", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("TOKEN_EXPIRED")

// ErrTokenMalformed is returned when the token cannot be parsed
var ErrTokenMalformed = errors.New("Token is not valid", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("TOKEN_MALFORMED")

// ErrInvalidCredentials is the single login failure. It does not tell
// unknown emails apart from wrong passwords.
var ErrInvalidCredentials = errors.NewValidation("Invalid Credentials",
	errors.FieldError{Message: "Invalid Credentials"},
).WithTextCode("INVALID_CREDENTIALS")

// ErrUserExists is returned when registering an email already in use
var ErrUserExists = errors.NewValidation("User already exists",
	errors.FieldError{Message: "User already exists"},
).WithTextCode("USER_EXISTS")

// ErrUserNotFound is returned when a token references a deleted user
var ErrUserNotFound = errors.New("User not found", errors.CategoryNotFound).
	WithTextCode("USER_NOT_FOUND")

// ErrMismatchedHashAndPassword password does not match stored hash
var ErrMismatchedHashAndPassword = errors.New("password mismatch", errors.CategoryAuth).
	WithTextCode("PASSWORD_MISMATCH")

// ErrNoEmptyString password can not be empty
var ErrNoEmptyString = errors.New("password can not be empty", errors.CategoryBadInput).
	WithTextCode("EMPTY_PASSWORD")

// ErrPasswordTooLong is returned for passwords bcrypt refuses to hash
var ErrPasswordTooLong = errors.NewValidation("Password must be at most 72 bytes",
	errors.FieldError{Field: "password", Message: "Password must be at most 72 bytes"},
).WithTextCode("PASSWORD_TOO_LONG")

// ErrUnableToDecodeSession unable to decode claims from token
var ErrUnableToDecodeSession = errors.New("unable to decode session", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized)

// NewRecordNotFound builds the error stores return for missing records.
func NewRecordNotFound(message string) *errors.Error {
	if message == "" {
		message = "record not found"
	}
	return errors.New(message, errors.CategoryNotFound).
		WithTextCode("RECORD_NOT_FOUND")
}

// IsRecordNotFound reports whether err is a not found error
func IsRecordNotFound(err error) bool {
	return errors.HasCategory(err, errors.CategoryNotFound)
}

// NewDuplicateRecord builds the error stores return on unique violations.
func NewDuplicateRecord(source error, message string) *errors.Error {
	err := errors.New(message, errors.CategoryConflict).
		WithTextCode("DUPLICATE_RECORD")
	err.Source = source
	return err
}

// IsDuplicateRecord reports whether err is a unique constraint violation
func IsDuplicateRecord(err error) bool {
	return errors.HasCategory(err, errors.CategoryConflict)
}

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenExpired) {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenMalformed) {
		return true
	}
	return strings.Contains(err.Error(), "token is malformed")
}
