package ean

import (
	"github.com/intel/rsp-sw-toolkit-im-suite-bookland/checksum"
	"github.com/intel/rsp-sw-toolkit-im-suite-bookland/modules"
	"github.com/pkg/errors"
)

// CodeLength is the number of modules encoding a single digit.
const CodeLength = 7

// Table maps a parity character to the 7-module codes for digits 0-9.
type Table map[byte][10]string

// Code returns the code for digit d in the column named by parity.
func (t Table) Code(parity byte, d int) (string, bool) {
	col, ok := t[parity]
	if !ok || d < 0 || d > 9 {
		return "", false
	}
	return col[d], true
}

var (
	// EAN13Codes holds the three EAN-13 character sets. A and B encode the
	// left half (A has odd parity, B even); C, the right half.
	EAN13Codes = Table{
		'A': {"0001101", "0011001", "0010011", "0111101", "0100011",
			"0110001", "0101111", "0111011", "0110111", "0001011"},
		'B': {"0100111", "0110011", "0011011", "0100001", "0011101",
			"0111001", "0000101", "0010001", "0001001", "0010111"},
		'C': {"1110010", "1100110", "1101100", "1000010", "1011100",
			"1001110", "1010000", "1000100", "1001000", "1110100"},
	}

	// UPCACodes holds the UPC-A odd (left) and even (right) sets, which are
	// EAN-13's A and C sets.
	UPCACodes = Table{
		'O': EAN13Codes['A'],
		'E': EAN13Codes['C'],
	}

	// UPC5Codes holds the add-on's odd and even sets, which are EAN-13's A
	// and B sets.
	UPC5Codes = Table{
		'O': EAN13Codes['A'],
		'E': EAN13Codes['B'],
	}

	// EAN13Parity is indexed by the leading digit of an EAN-13 number. The
	// leading digit isn't drawn as bars; it's conveyed by the mix of A and B
	// codes on the left half.
	EAN13Parity = []string{
		"AAAAAACCCCCC", "AABABBCCCCCC", "AABBABCCCCCC", "AABBBACCCCCC",
		"ABAABBCCCCCC", "ABBAABCCCCCC", "ABBBAACCCCCC", "ABABABCCCCCC",
		"ABABBACCCCCC", "ABBABACCCCCC",
	}

	// UPCAParity has a single row; UPC-A has no leading digit.
	UPCAParity = []string{"OOOOOOEEEEEE"}

	// UPC5Parity is indexed by the add-on's checksum residue.
	UPC5Parity = []string{
		"EEOOO", "EOEOO", "EOOEO", "EOOOE", "OEEOO",
		"OOEEO", "OOOEE", "OEOEO", "OEOOE", "OOEOE",
	}
)

// Guard and separator patterns. 'L' marks a guard module, which is drawn
// taller than digit modules.
const (
	EAN13Guard   = "L0L"
	EAN13Center  = "0L0L0"
	UPC5Guard    = "1011"
	UPC5Separate = "01"
)

// Family describes one symbology: how many digits its numbers have, how a
// number selects its parity row, which codes it draws, and how those codes
// are spliced together with guards. Families are values; the package
// defines UPCA, EAN13 and UPC5.
type Family struct {
	Name    string
	Length  int // digits in a complete number, including any check digit
	Modules int // modules in the finished pattern
	Codes   Table
	Parity  []string
	Scheme  checksum.Scheme // for the check digit or, for UPC5, the parity row
	Layout  modules.Exploder

	// split returns the parity row for number and the digits drawn as bars.
	split func(f Family, number string) (row int, drawn string, err error)
	// assemble splices guards and separators around the concatenated codes.
	assemble func(codes string) string
	// join is the inverse of split, given the parity of the drawn digits.
	join func(f Family, parity, drawn string) (string, error)
}

var (
	// EAN13 encodes a 13-digit number. The leading digit selects the parity
	// row; the other 12 are drawn.
	EAN13 = Family{
		Name:     "EAN-13",
		Length:   13,
		Modules:  95,
		Codes:    EAN13Codes,
		Parity:   EAN13Parity,
		Scheme:   checksum.EAN,
		Layout:   modules.MustExploder(ean13Layout),
		split:    splitLeading,
		assemble: assembleEAN13,
		join:     joinLeading,
	}

	// UPCA encodes a 12-digit UPC-A number. The bars are identical to the
	// EAN-13 number with a leading 0.
	UPCA = Family{
		Name:     "UPC-A",
		Length:   12,
		Modules:  95,
		Codes:    UPCACodes,
		Parity:   UPCAParity,
		Scheme:   checksum.Scheme{Name: "UPC-A", Weights: []int{3, 1, 3, 1, 3, 1, 3, 1, 3, 1, 3}, Modulus: 10},
		Layout:   modules.MustExploder(ean13Layout),
		split:    splitAll,
		assemble: assembleEAN13,
		join:     joinAll,
	}

	// UPC5 encodes a 5-digit add-on. Its checksum residue selects the parity
	// row and isn't drawn.
	UPC5 = Family{
		Name:     "UPC-5",
		Length:   5,
		Modules:  47,
		Codes:    UPC5Codes,
		Parity:   UPC5Parity,
		Scheme:   checksum.AddOn,
		Layout:   modules.MustExploder(upc5Layout),
		split:    splitResidue,
		assemble: assembleUPC5,
		join:     joinResidue,
	}
)

// Field widths of each layout: guards, 7-module digits, and separators.
const (
	ean13Layout = "3.7.7.7.7.7.7.5.7.7.7.7.7.7.3"
	upc5Layout  = "4.7.2.7.2.7.2.7.2.7"
)

func (f Family) String() string {
	return f.Name
}

// Pattern returns the module pattern for number, which must have exactly
// f.Length decimal digits. Check digits aren't verified here; see
// ParseNumber.
func (f Family) Pattern(number string) (string, error) {
	if len(number) != f.Length {
		return "", errors.Errorf("%s numbers have %d digits, but %q has %d",
			f.Name, f.Length, number, len(number))
	}
	row, drawn, err := f.split(f, number)
	if err != nil {
		return "", err
	}
	if row < 0 || row >= len(f.Parity) {
		return "", errors.Errorf("%s parity row %d is out of range", f.Name, row)
	}

	codes, err := Encode(drawn, f.Parity[row], f.Codes)
	if err != nil {
		return "", errors.Wrapf(err, "unable to encode %s %s", f.Name, number)
	}

	p := f.assemble(codes)
	if len(p) != f.Modules {
		return "", errors.Errorf("%s pattern for %s has %d modules, but must have %d",
			f.Name, number, len(p), f.Modules)
	}
	return p, nil
}

// ParityRow returns the parity row that number selects.
func (f Family) ParityRow(number string) (string, error) {
	row, _, err := f.split(f, number)
	if err != nil {
		return "", err
	}
	if row < 0 || row >= len(f.Parity) {
		return "", errors.Errorf("%s parity row %d is out of range", f.Name, row)
	}
	return f.Parity[row], nil
}

func splitLeading(f Family, number string) (int, string, error) {
	if number == "" || !isDigit(number[0]) {
		return 0, "", errors.Errorf("%s number %q must start with a digit", f.Name, number)
	}
	return int(number[0] - '0'), number[1:], nil
}

func splitAll(f Family, number string) (int, string, error) {
	return 0, number, nil
}

func splitResidue(f Family, number string) (int, string, error) {
	d, err := checksum.Digits(number)
	if err != nil {
		return 0, "", errors.Wrapf(err, "invalid %s digits", f.Name)
	}
	r, err := f.Scheme.Residue(d)
	if err != nil {
		return 0, "", err
	}
	return r, number, nil
}

func joinLeading(f Family, parity, drawn string) (string, error) {
	for row, p := range f.Parity {
		if p == parity {
			return string(byte('0'+row)) + drawn, nil
		}
	}
	return "", errors.Errorf("%s parity %s doesn't match any leading digit", f.Name, parity)
}

func joinAll(f Family, parity, drawn string) (string, error) {
	if parity != f.Parity[0] {
		return "", errors.Errorf("%s parity should be %s, but is %s",
			f.Name, f.Parity[0], parity)
	}
	return drawn, nil
}

func joinResidue(f Family, parity, drawn string) (string, error) {
	row, _, err := splitResidue(f, drawn)
	if err != nil {
		return "", err
	}
	if f.Parity[row] != parity {
		return "", errors.Errorf("%s %s should have parity %s, but has %s",
			f.Name, drawn, f.Parity[row], parity)
	}
	return drawn, nil
}

func assembleEAN13(codes string) string {
	half := len(codes) / 2
	return EAN13Guard + codes[:half] + EAN13Center + codes[half:] + EAN13Guard
}

func assembleUPC5(codes string) string {
	p := UPC5Guard
	for i := 0; i < len(codes); i += CodeLength {
		if i > 0 {
			p += UPC5Separate
		}
		end := i + CodeLength
		if end > len(codes) {
			end = len(codes)
		}
		p += codes[i:end]
	}
	return p
}

// Encode concatenates the codes for each digit, taking digit i's code from
// the column of table named by parity[i].
func Encode(digits, parity string, table Table) (string, error) {
	if len(digits) != len(parity) {
		return "", errors.Errorf("have %d digits but %d parity characters",
			len(digits), len(parity))
	}
	b := make([]byte, 0, len(digits)*CodeLength)
	for i := 0; i < len(digits); i++ {
		if !isDigit(digits[i]) {
			return "", errors.Errorf("character %d of %q is not a digit", i, digits)
		}
		code, ok := table.Code(parity[i], int(digits[i]-'0'))
		if !ok {
			return "", errors.Errorf("no code column for parity %q at position %d",
				parity[i], i)
		}
		b = append(b, code...)
	}
	return string(b), nil
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
