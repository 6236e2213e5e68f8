package errors

import (
	"unicode"
)

// MaxIDLength is the maximum accepted length for task and dependency
// identifiers. Identifiers come from external collaborative documents, so
// the limit is deliberately generous but bounded.
const MaxIDLength = 256

// ValidateID validates a task or dependency identifier.
// It rejects identifiers that could break cache keys or log output.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters
//   - Maximum length of 256 characters
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "identifier cannot be empty")
	}

	if len(id) > MaxIDLength {
		return New(ErrCodeInvalidInput, "identifier too long (max %d characters)", MaxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "identifier contains invalid control characters")
		}
	}

	return nil
}

// ValidateRowCount validates a row count for the row position optimizer.
// Row counts map to physical display tracks (staff lines), so values must
// be small positive integers.
func ValidateRowCount(rowCount int) error {
	if rowCount < 1 {
		return New(ErrCodeInvalidOptions, "row count must be at least 1, got %d", rowCount)
	}
	if rowCount > 64 {
		return New(ErrCodeInvalidOptions, "row count too large (max 64), got %d", rowCount)
	}
	return nil
}

// ValidateMaxParallel validates a resource leveling concurrency bound.
func ValidateMaxParallel(maxParallel int) error {
	if maxParallel < 1 {
		return New(ErrCodeInvalidOptions, "max parallel must be at least 1, got %d", maxParallel)
	}
	return nil
}
