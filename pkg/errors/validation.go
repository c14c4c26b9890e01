package errors

import (
	"strings"
	"unicode"
)

// maxGuestNameLength bounds guest names read from problem files.
const maxGuestNameLength = 128

// ValidateGuestName validates a guest name read from a problem file.
//
// The core packages treat blank names as "no such guest" and silently ignore
// them. Problem files are stricter: a blank or malformed name there is almost
// always a typo, so loaders reject it up front.
//
// Validation rules:
//   - Not empty or whitespace-only
//   - Maximum length of 128 characters
//   - No control characters
func ValidateGuestName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "guest name cannot be blank")
	}

	if len(name) > maxGuestNameLength {
		return New(ErrCodeInvalidInput, "guest name too long (max %d characters)", maxGuestNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "guest name %q contains control characters", name)
		}
	}

	return nil
}

// ValidateGuestList validates every name in guests and rejects duplicates.
func ValidateGuestList(guests []string) error {
	seen := make(map[string]struct{}, len(guests))
	for _, g := range guests {
		if err := ValidateGuestName(g); err != nil {
			return err
		}
		if _, dup := seen[g]; dup {
			return New(ErrCodeInvalidProblem, "guest %q listed more than once", g)
		}
		seen[g] = struct{}{}
	}
	return nil
}

// Upper bounds on problem dimensions read from files.
const (
	MaxTables        = 1000
	MaxSeatsPerTable = 1000
)

// ValidateProblemShape checks the table dimensions of a problem.
// Zero tables or zero seats is allowed (the problem is vacuously solvable);
// negative values and values above [MaxTables] or [MaxSeatsPerTable] are not.
func ValidateProblemShape(tables, seats int) error {
	if tables < 0 {
		return New(ErrCodeInvalidProblem, "table count cannot be negative: %d", tables)
	}
	if tables > MaxTables {
		return New(ErrCodeInvalidProblem, "table count %d exceeds the limit of %d", tables, MaxTables)
	}
	if seats < 0 {
		return New(ErrCodeInvalidProblem, "seats per table cannot be negative: %d", seats)
	}
	if seats > MaxSeatsPerTable {
		return New(ErrCodeInvalidProblem, "seats per table %d exceeds the limit of %d", seats, MaxSeatsPerTable)
	}
	return nil
}
