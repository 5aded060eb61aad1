package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInput is wrapped by every InputError
var ErrInput = errors.New("invalid input")

// InputError reports text from the input boundary that is not a "row col" pair
type InputError struct {
	Input  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input %q: %s", e.Input, e.Reason)
}

func (e *InputError) Unwrap() error { return ErrInput }

// ParsePick reads "row col" (space or comma separated) into two integers
func ParsePick(line string) (int, int, error) {
	fields := strings.Fields(strings.ReplaceAll(line, ",", " "))
	if len(fields) != 2 {
		return 0, 0, &InputError{Input: line, Reason: "enter a row and a column, e.g. 0 1"}
	}
	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, &InputError{Input: line, Reason: "row is not a number"}
	}
	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, &InputError{Input: line, Reason: "column is not a number"}
	}
	return row, col, nil
}
