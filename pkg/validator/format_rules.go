package validator

import (
	"net/mail"
	"strings"
)

// ValidEmail checks value is a bare RFC 5322 address with a dotted domain.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			value = strings.TrimSpace(value)
			addr, err := mail.ParseAddress(value)
			if err != nil || addr.Address != value {
				return false
			}
			at := strings.LastIndexByte(value, '@')
			return at > 0 && strings.Contains(value[at+1:], ".")
		},
		Error: newError(field, "must be a valid email address", "validation.email", nil),
	}
}
