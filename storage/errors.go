package storage

import "errors"

// Common storage service errors
var (
	// ErrDuplicateEmail is returned when registering an email already in use
	ErrDuplicateEmail = errors.New("user with this email already exists")

	// ErrUserNotFound is returned when login references an unknown email
	ErrUserNotFound = errors.New("user not found")

	// ErrRecordNotFound is returned when an update targets a non-existent record id
	ErrRecordNotFound = errors.New("record not found")

	// ErrInvalidEmail is returned when registration is given a malformed email
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrInvalidCredentials is returned on login when credential checking is
	// enabled and the password does not match
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrImportParse is returned when import data is not a valid export document
	ErrImportParse = errors.New("import data is not valid JSON")
)
