package ident

import "fmt"

// FormatError is returned when the input is neither an ISBN nor an ISMN:
// it has the wrong characters, the wrong number of digits, or separators in
// places they aren't allowed.
type FormatError struct {
	Input string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%q is not a valid ISBN or ISMN (check hyphenation, "+
		"characters, and length: 9 digits plus an optional check character, "+
		"or 'M' plus 8 digits and an optional check digit)", e.Input)
}

// ChecksumMismatch is returned when the input's check character doesn't
// match the one computed from its digits.
type ChecksumMismatch struct {
	Input    string
	Kind     Kind
	Supplied byte
	Expected byte
}

func (e *ChecksumMismatch) Error() string {
	return fmt.Sprintf("for %s %s, check digit %c is wrong; it should be %c",
		e.Kind, e.Input, e.Supplied, e.Expected)
}

// InternalError indicates a defect in the parser itself: input that passed
// format validation but can't be processed. It should never be returned.
type InternalError struct {
	Input  string
	Reason string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error parsing %q (%s); please report this as a bug",
		e.Input, e.Reason)
}
