package domain

import (
	"errors"
	"fmt"
)

// Error is a domain error carrying a stable code that adapters translate
// into user-facing messages.
type Error struct {
	code string
	msg  string
}

func (e *Error) Error() string { return e.msg }

// Code returns the stable identifier of the error.
func (e *Error) Code() string { return e.code }

func newError(code, msg string) *Error {
	return &Error{code: code, msg: msg}
}

// Domain errors.
var (
	ErrParticipantNotFound = newError("participant_not_found", "participant not found")
	ErrParticipantExists   = newError("participant_exists", "a participant with this phone is already registered")
	ErrRegistrationFull    = newError("registration_full", "registration limit reached")
	ErrMissingField        = newError("invalid_field", "all fields are required")
	ErrInvalidSex          = newError("invalid_sex", "sex must be Masculino or Femenino")
	ErrInvalidPhone        = newError("invalid_phone", "phone must have at least 10 digits")
	ErrInvalidSector       = newError("invalid_sector", "unknown profession sector")
	ErrInvalidLookup       = newError("invalid_lookup", "lookup kind and value are required")
	ErrInvalidNumber       = newError("invalid_number", "participant number must be numeric")
	ErrEmptySelection      = newError("empty_selection", "at least one participant id is required")
	ErrInvalidCredentials  = newError("invalid_credentials", "invalid credentials")
	ErrBibRender           = newError("image", "bib image could not be generated")
)

// DuplicatePhoneError reports which participant already owns a phone number.
type DuplicatePhoneError struct {
	ExistingName string
}

func (e *DuplicatePhoneError) Error() string {
	return fmt.Sprintf("%s: %s", ErrParticipantExists.msg, e.ExistingName)
}

func (e *DuplicatePhoneError) Unwrap() error { return ErrParticipantExists }

// RegistrationFullError reports the capacity that was reached.
type RegistrationFullError struct {
	Limit int
}

func (e *RegistrationFullError) Error() string {
	return fmt.Sprintf("%s (%d)", ErrRegistrationFull.msg, e.Limit)
}

func (e *RegistrationFullError) Unwrap() error { return ErrRegistrationFull }

// Code extracts the domain error code from err, or "" when err is not a domain error.
func Code(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.code
	}
	return ""
}
