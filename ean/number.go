package ean

import (
	"fmt"
	"strings"

	"github.com/intel/rsp-sw-toolkit-im-suite-bookland/checksum"
	"github.com/intel/rsp-sw-toolkit-im-suite-bookland/ident"
	"github.com/pkg/errors"
)

// Bookland prefixes.
const (
	ISBNPrefix = "978"
	ISMNPrefix = "979"
)

// Number is a 13-digit EAN-13 number: a 3-digit prefix, a 9-digit body, and
// a check digit computed over the first 12.
type Number struct {
	Prefix string
	Body   string
	Check  byte
}

// Derive returns the Bookland EAN-13 number for an ISBN or ISMN.
//
// An ISBN's first 9 digits follow the 978 prefix. An ISMN gets the 979 prefix
// and its 'M' becomes 0 (not the 3 used in the ISMN's own checksum), followed
// by its 8 digits. The identifier's check character is dropped: the EAN-13
// check digit is always computed.
func Derive(id ident.Identifier) (Number, error) {
	digits := id.Digits()
	if len(digits) != ident.NumDigits {
		return Number{}, errors.Errorf("can't derive an EAN-13 number from "+
			"invalid identifier %q", id.Raw())
	}

	var n Number
	switch id.Kind() {
	case ident.ISBN:
		n.Prefix, n.Body = ISBNPrefix, digits[:9]
	case ident.ISMN:
		n.Prefix, n.Body = ISMNPrefix, "0"+digits[1:9]
	default:
		return Number{}, errors.Errorf("can't derive an EAN-13 number from %s %q",
			id.Kind(), id.Raw())
	}

	c, err := computeCheck(n.Prefix + n.Body)
	if err != nil {
		return Number{}, errors.Wrapf(err, "unable to derive EAN-13 number for %s", id)
	}
	n.Check = c
	return n, nil
}

// ChecksumMismatch is returned by ParseNumber when a 13-digit number's check
// digit is wrong.
type ChecksumMismatch struct {
	Input    string
	Supplied byte
	Expected byte
}

func (e *ChecksumMismatch) Error() string {
	return fmt.Sprintf("for EAN-13 %s, check digit %c is wrong; it should be %c",
		e.Input, e.Supplied, e.Expected)
}

// ParseNumber parses a plain EAN-13 number, which may contain hyphens or
// spaces. Given 12 digits, it computes the check digit; given 13, it verifies
// it.
func ParseNumber(s string) (Number, error) {
	digits := strings.NewReplacer("-", "", " ", "").Replace(s)
	for i := 0; i < len(digits); i++ {
		if !isDigit(digits[i]) {
			return Number{}, errors.Errorf("EAN-13 %q: %q is not a digit", s, digits[i])
		}
	}

	switch len(digits) {
	case EAN13.Length, EAN13.Length - 1:
	default:
		return Number{}, errors.Errorf("EAN-13 %q has %d digits; expected 12 or 13",
			s, len(digits))
	}

	c, err := computeCheck(digits[:12])
	if err != nil {
		return Number{}, err
	}
	if len(digits) == EAN13.Length && digits[12] != c {
		return Number{}, &ChecksumMismatch{Input: s, Supplied: digits[12], Expected: c}
	}
	return Number{Prefix: digits[:3], Body: digits[3:12], Check: c}, nil
}

func computeCheck(twelve string) (byte, error) {
	d, err := checksum.Digits(twelve)
	if err != nil {
		return 0, err
	}
	z, err := checksum.EAN.Compute(d)
	if err != nil {
		return 0, err
	}
	return checksum.Char(z), nil
}

// String returns all 13 digits.
func (n Number) String() string {
	return n.Prefix + n.Body + string(n.Check)
}

// Leading returns the first digit, which selects the parity row but isn't
// drawn as bars. It's printed to the left of the symbol.
func (n Number) Leading() string {
	return n.Prefix[:1]
}

// Left returns the 6 digits printed under the left half.
func (n Number) Left() string {
	return n.String()[1:7]
}

// Right returns the 6 digits printed under the right half, ending with the
// check digit.
func (n Number) Right() string {
	return n.String()[7:13]
}

// Parity returns the 12-character parity row for the left and right halves,
// selected by the leading digit.
func (n Number) Parity() string {
	return EAN13Parity[n.Prefix[0]-'0']
}

// Pattern returns the number's 95-module EAN-13 pattern.
func (n Number) Pattern() (string, error) {
	return EAN13.Pattern(n.String())
}
