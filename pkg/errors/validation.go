package errors

import (
	"strings"
	"unicode"
)

const maxKeyLen = 256

// ValidateProjectKey checks a "name@releaseLine" project key taken from
// user input. Scoped npm names such as "@rokucommunity/bslint@master" are
// accepted.
func ValidateProjectKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidKey, "project key cannot be empty")
	}
	if len(key) > maxKeyLen {
		return New(ErrCodeInvalidKey, "project key too long (max %d characters)", maxKeyLen)
	}
	for _, r := range key {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidKey, "project key contains invalid characters")
		}
	}
	for _, pattern := range []string{"..", "//", "\\"} {
		if strings.Contains(key, pattern) {
			return New(ErrCodeInvalidKey, "project key contains invalid characters: %q", pattern)
		}
	}

	at := strings.LastIndex(key, "@")
	if at <= 0 || at == len(key)-1 {
		return New(ErrCodeInvalidKey, "project key %q must have the form name@releaseLine", key)
	}
	return nil
}

// ValidateFormat checks that format is one of allowed.
func ValidateFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", format, strings.Join(allowed, ", "))
}
