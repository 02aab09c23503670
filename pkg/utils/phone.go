package utils

import (
	"regexp"
	"strings"
)

var mobilePattern = regexp.MustCompile(`^[6-9][0-9]{9}$`)

// NormalizePhone strips spaces, dashes and a leading +91 or 0 from an Indian
// mobile number.
func NormalizePhone(s string) string {
	s = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(s, "+91"):
		s = s[3:]
	case len(s) == 12 && strings.HasPrefix(s, "91"):
		s = s[2:]
	case len(s) == 11 && strings.HasPrefix(s, "0"):
		s = s[1:]
	}
	return s
}

// IsValidPhone reports whether s is a 10 digit mobile number starting with 6-9
func IsValidPhone(s string) bool {
	return mobilePattern.MatchString(s)
}
