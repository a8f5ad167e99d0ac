package ean

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/intel/rsp-sw-toolkit-im-suite-bookland/checksum"
	"github.com/intel/rsp-sw-toolkit-im-suite-bookland/ident"
)

// AddOnLength is the number of digits in a UPC-5 add-on.
const AddOnLength = 5

// AddOn is a 5-digit supplemental code, usually a price: the first digit is
// a currency (5 for US dollars, for instance) and the rest an amount. 90000
// means no suggested price.
//
// The zero value is not a valid AddOn; use ParseAddOn.
type AddOn struct {
	digits string
}

// InvalidAddOnCode reports an add-on that can't be encoded.
type InvalidAddOnCode struct {
	Input string
	// Byte offset of the first offending character, or -1 if the problem
	// isn't a single character.
	Position int
	Char     rune
	Reason   string
}

func (e *InvalidAddOnCode) Error() string {
	if e.Position >= 0 {
		return fmt.Sprintf("add-on code %q is wrong: the character %q is not allowed; "+
			"it should contain %d digits and nothing else, or be blank to suppress it",
			e.Input, e.Char, AddOnLength)
	}
	return fmt.Sprintf("add-on code %q is wrong: %s", e.Input, e.Reason)
}

// IsBlank returns true if s is empty or only spaces, which suppresses the
// add-on.
func IsBlank(s string) bool {
	return strings.Trim(s, " ") == ""
}

// ParseAddOn validates s as exactly 5 decimal digits.
func ParseAddOn(s string) (AddOn, error) {
	for i := 0; i < len(s); {
		if isDigit(s[i]) {
			i++
			continue
		}
		c, _ := utf8.DecodeRuneInString(s[i:])
		return AddOn{}, &InvalidAddOnCode{Input: s, Position: i, Char: c}
	}
	if len(s) != AddOnLength {
		return AddOn{}, &InvalidAddOnCode{Input: s, Position: -1,
			Reason: fmt.Sprintf("it should have exactly %d digits", AddOnLength)}
	}
	return AddOn{digits: s}, nil
}

// AddOnFor parses the add-on to print with id. It returns false if s is
// blank. Only ISBNs may have an add-on.
func AddOnFor(id ident.Identifier, s string) (AddOn, bool, error) {
	if IsBlank(s) {
		return AddOn{}, false, nil
	}
	if id.Kind() != ident.ISBN {
		return AddOn{}, false, &InvalidAddOnCode{Input: s, Position: -1,
			Reason: fmt.Sprintf("add-on codes are only allowed with an ISBN, not %s %s",
				id.Kind(), id)}
	}
	a, err := ParseAddOn(s)
	if err != nil {
		return AddOn{}, false, err
	}
	return a, true, nil
}

// String returns the 5 digits.
func (a AddOn) String() string {
	return a.digits
}

// Residue returns the add-on's checksum, sum(digit*weight) mod 10 with
// weights 3, 9, 3, 9, 3. It isn't printed; it selects the parity row.
func (a AddOn) Residue() int {
	d, err := checksum.Digits(a.digits)
	if err != nil {
		panic(err)
	}
	r, err := checksum.AddOn.Residue(d)
	if err != nil {
		panic(err)
	}
	return r
}

// Parity returns the add-on's 5-character parity row.
func (a AddOn) Parity() string {
	return UPC5Parity[a.Residue()]
}

// Pattern returns the add-on's 47-module UPC-5 pattern.
func (a AddOn) Pattern() (string, error) {
	return UPC5.Pattern(a.digits)
}
