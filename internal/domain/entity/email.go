package entity

import (
	"strings"

	"github.com/oksasatya/go-user-management/internal/domain/apperrors"
)

// Email is a validated, normalized email address. Construction is the
// validation gate: an Email value can only exist in a valid state.
type Email struct {
	value string
}

// NewEmail normalizes raw (trim + lowercase) and validates the basic
// local@domain shape: a non-empty local part before the first '@' and a
// domain containing at least one '.'.
func NewEmail(raw string) (Email, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if !validEmail(normalized) {
		return Email{}, apperrors.InvalidEmail(raw)
	}
	return Email{value: normalized}, nil
}

func validEmail(s string) bool {
	at := strings.Index(s, "@")
	if at <= 0 {
		return false
	}
	domain := s[at+1:]
	if domain == "" || strings.ContainsAny(s, " \t") {
		return false
	}
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}

// String returns the normalized address.
func (e Email) String() string { return e.value }
