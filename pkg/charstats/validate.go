package charstats

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// ParseStat parses raw text as the value of a numeric field and checks it
// against the field's configured bounds. It returns NotANumberError when the
// text is not an integer and OutOfRangeError when it falls outside the bounds.
func ParseStat(f Field, raw string) (int, error) {
	spec, ok := SpecFor(f)
	if !ok {
		return 0, ErrUnknownField
	}

	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &NotANumberError{Field: f, Input: raw}
	}

	if value < spec.Min || value > spec.Max {
		return 0, &OutOfRangeError{Field: f, Value: value, Min: spec.Min, Max: spec.Max}
	}

	return value, nil
}

// ValidateName checks the character name against the length cap. Empty names
// are rejected; whitespace-only input counts as empty.
func ValidateName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", ErrEmptyName
	}
	if n := utf8.RuneCountInString(name); n > MaxNameRunes {
		return "", &NameTooLongError{Length: n, Max: MaxNameRunes}
	}
	return name, nil
}

// CheckBudget verifies the aggregate budget once all six numeric attributes
// are known. It returns BudgetExceededError when total is above MaxStatTotal.
func CheckBudget(total int) error {
	if total > MaxStatTotal {
		return &BudgetExceededError{Total: total}
	}
	return nil
}
