package normalize

import "strings"

// Unknown is rendered in place of any display name that cannot be resolved.
const Unknown = "Unknown"

// Coalesce returns the first non-blank value, or Unknown.
func Coalesce(values ...*string) string {
	for _, v := range values {
		if v != nil && strings.TrimSpace(*v) != "" {
			return strings.TrimSpace(*v)
		}
	}
	return Unknown
}

// FullName joins first and last name. With only one of them present that
// one is used; with neither the result is Unknown.
func FullName(first, last *string) string {
	f, l := trimmed(first), trimmed(last)
	switch {
	case f != "" && l != "":
		return f + " " + l
	case f != "":
		return f
	case l != "":
		return l
	}
	return Unknown
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
