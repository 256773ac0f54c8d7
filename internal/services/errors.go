package services

import (
	"errors"
	"strings"
)

// DuplicateKeyError reports a failed uniqueness precondition (production
// number or offer number collision). It is returned as a value, not
// panicked: form handlers attach Message to the input named by Field.
type DuplicateKeyError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *DuplicateKeyError) Error() string {
	return e.Message
}

// IsDuplicateKey reports whether err is (or wraps) a DuplicateKeyError.
func IsDuplicateKey(err error) bool {
	var dup *DuplicateKeyError
	return errors.As(err, &dup)
}

// translateUniqueViolation maps a storage-level unique index rejection to
// the field-level DuplicateKeyError. The pre-checks in the mutation
// services are only a user-experience shortcut; the unique index is the
// authoritative guard, so a violation can still surface here on a race.
func translateUniqueViolation(err error, field, message string) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	// Postgres: SQLSTATE 23505, MySQL: Error 1062 "Duplicate entry".
	if strings.Contains(msg, "23505") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "1062") {
		return &DuplicateKeyError{Field: field, Message: message}
	}
	return err
}
