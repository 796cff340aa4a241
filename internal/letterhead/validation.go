package letterhead

import (
	"fmt"
	"regexp"
	"strings"
)

// heightPattern accepts a non-negative CSS length with an explicit unit.
var heightPattern = regexp.MustCompile(`^\d+(\.\d+)?(mm|cm|in|px|pt)$`)

// NormalizeKey lowercases and trims a template key.
func NormalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// ValidateKey checks that a key is safe for use as a directory name.
// Returns ErrInvalidKey if the key is empty or contains path separators,
// dots, or null bytes.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidKey)
	}
	if strings.ContainsAny(key, "/\\.\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

func validateHeight(field, value string) error {
	if !heightPattern.MatchString(value) {
		return fmt.Errorf("%w: %s %q must be a length like 30mm", ErrInvalidManifest, field, value)
	}
	return nil
}
