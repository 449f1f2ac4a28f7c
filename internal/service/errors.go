package service

import "errors"

// Sentinel errors returned by the service layer. Callers should match with
// [errors.Is].
var (
	// ErrInvalidDataProvided is returned when a request body is not a JSON
	// object or is otherwise unusable.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrTokenIsExpired is returned by strict bearer verification when the
	// JWT's exp claim is in the past.
	ErrTokenIsExpired = errors.New("token is expired")

	// ErrInvalidToken is returned by strict bearer verification when the
	// token cannot be parsed, carries a wrong signature, or names a wrong
	// issuer.
	ErrInvalidToken = errors.New("token is invalid")

	// ErrWrongCredentials is returned by strict basic verification when the
	// login is unknown or the password does not match the stored hash.
	ErrWrongCredentials = errors.New("wrong credentials")
)
