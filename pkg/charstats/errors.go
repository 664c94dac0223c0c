package charstats

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownField is returned when a value is parsed for a field the
	// static table does not define.
	ErrUnknownField = errors.New("unknown attribute field")

	// ErrEmptyName is returned when the character name is empty.
	ErrEmptyName = errors.New("character name is empty")
)

// NotANumberError indicates the raw text could not be parsed as an integer.
type NotANumberError struct {
	Field Field
	Input string
}

func (e *NotANumberError) Error() string {
	return fmt.Sprintf("%s: %q is not a number", e.Field, e.Input)
}

// OutOfRangeError indicates a parsed value outside the field's bounds.
type OutOfRangeError struct {
	Field Field
	Value int
	Min   int
	Max   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s: %d is out of range [%d,%d]", e.Field, e.Value, e.Min, e.Max)
}

// NameTooLongError indicates a character name above the rune cap.
type NameTooLongError struct {
	Length int
	Max    int
}

func (e *NameTooLongError) Error() string {
	return fmt.Sprintf("name is %d runes, max %d", e.Length, e.Max)
}

// BudgetExceededError indicates the six numeric attributes sum above the budget.
type BudgetExceededError struct {
	Total int
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("stat total %d exceeds budget %d", e.Total, MaxStatTotal)
}

func IsNotANumber(err error) bool {
	var e *NotANumberError
	return errors.As(err, &e)
}

func IsOutOfRange(err error) bool {
	var e *OutOfRangeError
	return errors.As(err, &e)
}

func IsBudgetExceeded(err error) bool {
	var e *BudgetExceededError
	return errors.As(err, &e)
}
