package errors

import (
	"strings"
	"unicode"
)

// ValidateLabel validates a node label before it reaches a renderer.
// Labels travel into DOT sources and SVG text verbatim, so control
// characters are rejected outright.
//
// The validation rules are intentionally conservative:
//   - Empty labels are allowed (nodes fall back to their index)
//   - No control characters
//   - No null bytes
//   - Maximum length of 256 characters
func ValidateLabel(label string) error {
	if len(label) > 256 {
		return New(ErrCodeInvalidInput, "label too long (max 256 characters)")
	}

	for _, r := range label {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "label contains invalid control characters")
		}
	}

	return nil
}

// ValidateFilePath validates a dataset or artifact path supplied on the
// command line. Absolute paths are fine, this is a local tool writing
// where the user points it; the checks guard against garbage that would
// corrupt shell output or the filesystem.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateFilePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

// brokerSchemes lists the URL schemes the event broker accepts.
var brokerSchemes = []string{"nats://", "tls://", "ws://", "wss://"}

// ValidateBrokerURL validates an event broker URL.
func ValidateBrokerURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "broker URL cannot be empty")
	}

	for _, scheme := range brokerSchemes {
		if strings.HasPrefix(rawURL, scheme) {
			return nil
		}
	}
	return New(ErrCodeInvalidInput, "broker URL must use a nats, tls, ws or wss scheme")
}
