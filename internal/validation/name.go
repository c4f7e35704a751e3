package validation

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

const maxNameLength = 60

var (
	ErrNameRequired = errors.New("name is required")
	ErrNameTooLong  = errors.New("name is too long (max 60 characters)")
	ErrNameInvalid  = errors.New("name cannot contain @ or control characters")
)

// ValidateName checks a member's display name. Members sign in with either
// their name or their email, so a name must never look like an email.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrNameRequired
	}
	if utf8.RuneCountInString(trimmed) > maxNameLength {
		return ErrNameTooLong
	}
	if strings.ContainsRune(trimmed, '@') || strings.ContainsFunc(trimmed, unicode.IsControl) {
		return ErrNameInvalid
	}
	return nil
}
