package validate

import (
	"regexp"
	"strings"
)

var (
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	rePhone = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{2,19}$`)
)

// ID validates a simple resource identifier (product ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Lang narrows a requested locale to the supported set, defaulting to ru.
func Lang(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "uz" || s == "ru" {
		return s
	}
	return "ru"
}

// Phone checks the rough shape of a phone number. Submission stays
// permissive: a failed match is only logged, the trimmed text is stored
// as-is.
func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, rePhone.MatchString(s)
}
