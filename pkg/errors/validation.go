package errors

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
)

// attributeNameRegex matches attribute names such as "imagesdir",
// "table-caption" or "source_language", optionally with the trailing "!"
// that marks an explicit unset.
var attributeNameRegex = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_-]*!?$`)

// ValidateAttributeName validates a document attribute name supplied on
// the command line or in a config file.
func ValidateAttributeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidAttribute, "attribute name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidAttribute, "attribute name too long (max 128 characters)")
	}

	if !attributeNameRegex.MatchString(name) {
		return New(ErrCodeInvalidAttribute, "invalid attribute name: %q", name)
	}

	return nil
}

// ParseAttribute splits a "key=value" assignment. A bare "key" sets the
// attribute to the empty string; "key!" unsets it.
func ParseAttribute(s string) (key, value string, err error) {
	key, value, _ = strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if err := ValidateAttributeName(key); err != nil {
		return "", "", err
	}
	if strings.HasSuffix(key, "!") && value != "" {
		return "", "", New(ErrCodeInvalidAttribute, "unset attribute %q cannot have a value", key)
	}
	return key, value, nil
}

// ValidateFormat reports an error unless format is one of allowed.
func ValidateFormat(format string, allowed []string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	if !slices.Contains(allowed, format) {
		return New(ErrCodeInvalidFormat, "unknown format %q (want one of %s)", format, strings.Join(allowed, ", "))
	}
	return nil
}

// ValidatePath validates a relative file path, e.g. an image target or
// an artifact name inside an output directory.
// It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	// Must not be absolute path
	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	// Check for path traversal
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	// No backslashes (potential Windows path injection)
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateURL validates a cache backend URL.
// It ensures the URL uses a Redis scheme.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidConfig, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "redis://") && !strings.HasPrefix(rawURL, "rediss://") {
		return New(ErrCodeInvalidConfig, "URL must use redis or rediss scheme")
	}

	return nil
}
