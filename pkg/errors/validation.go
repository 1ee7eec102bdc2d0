package errors

import (
	"strings"
	"unicode"
)

// ValidateItemKey validates an item key for safety and correctness.
// Keys travel through cache keys, store documents, and URL path segments,
// so the rules are intentionally conservative:
//   - No empty keys
//   - No control characters or null bytes
//   - No path separators
//   - Maximum length of 256 characters
func ValidateItemKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidKey, "item key cannot be empty")
	}

	if len(key) > 256 {
		return New(ErrCodeInvalidKey, "item key too long (max 256 characters)")
	}

	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidKey, "item key contains invalid control characters")
		}
	}

	if strings.ContainsAny(key, "/\\") {
		return New(ErrCodeInvalidKey, "item key cannot contain path separators")
	}

	return nil
}

// ValidateSessionID validates a session identifier.
// Session IDs are minted by the server as UUIDs; anything arriving from a
// client still gets checked before reaching a storage backend.
func ValidateSessionID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "session id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "session id too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "session id contains invalid characters")
		}
	}

	return nil
}
