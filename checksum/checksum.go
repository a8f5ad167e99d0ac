// Package checksum computes the weighted modular check digits shared by the
// ISBN, ISMN, EAN-13/UPC-A and UPC-5 numbering schemes.
//
// Every scheme works the same way: each digit is multiplied by the weight in
// its position, the products are summed, and the check digit is the additive
// inverse of that sum modulo the scheme's modulus. Only the weights and the
// modulus differ, so a scheme is fully described by a Scheme value.
package checksum

import (
	"fmt"

	"github.com/pkg/errors"
)

// Scheme is a weight vector and modulus pair.
type Scheme struct {
	Name    string
	Weights []int
	Modulus int
}

var (
	// ISBN weights the nine body digits 10 down to 2; its check "digit" may
	// be 10, which ISBNs write as 'X'.
	ISBN = Scheme{Name: "ISBN", Weights: []int{10, 9, 8, 7, 6, 5, 4, 3, 2}, Modulus: 11}

	// ISMN treats the leading 'M' as a 3 and alternates weights 3 and 1.
	ISMN = Scheme{Name: "ISMN", Weights: []int{3, 1, 3, 1, 3, 1, 3, 1, 3}, Modulus: 10}

	// EAN covers EAN-13 and UPC-A: the first 12 digits, alternating 1 and 3.
	EAN = Scheme{Name: "EAN-13", Weights: []int{1, 3, 1, 3, 1, 3, 1, 3, 1, 3, 1, 3}, Modulus: 10}

	// AddOn is the 5-digit supplemental's checksum. It is never printed; its
	// Residue selects the add-on's parity pattern.
	AddOn = Scheme{Name: "UPC-5", Weights: []int{3, 9, 3, 9, 3}, Modulus: 10}
)

// InvariantViolation reports a checksum that can't be computed, either
// because the input doesn't fit the scheme or because the result fell outside
// [0, modulus). Given valid inputs it should never happen.
type InvariantViolation struct {
	Scheme string
	Reason string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("%s checksum invariant violated: %s", e.Scheme, e.Reason)
}

// Sum returns the weighted sum of digits over the first len(weights) digits.
//
// It returns an error if there are fewer digits than weights or a digit is
// outside [0, 9].
func Sum(digits, weights []int) (int, error) {
	if len(digits) < len(weights) {
		return 0, errors.Errorf("need at least %d digits, but have %d",
			len(weights), len(digits))
	}
	sum := 0
	for i, w := range weights {
		if digits[i] < 0 || digits[i] > 9 {
			return 0, errors.Errorf("digit %d is %d, which is not in [0,9]",
				i, digits[i])
		}
		sum += digits[i] * w
	}
	return sum, nil
}

// Compute returns the check digit of digits for the given weights and
// modulus: (modulus - sum%modulus) % modulus.
func Compute(digits, weights []int, modulus int) (int, error) {
	return Scheme{Weights: weights, Modulus: modulus}.Compute(digits)
}

// Residue returns sum%modulus, without the additive inverse.
func Residue(digits, weights []int, modulus int) (int, error) {
	return Scheme{Weights: weights, Modulus: modulus}.Residue(digits)
}

// Compute returns the check digit of digits under this scheme.
func (s Scheme) Compute(digits []int) (int, error) {
	r, err := s.Residue(digits)
	if err != nil {
		return 0, err
	}

	// mod m additive inverse
	z := (s.Modulus - r) % s.Modulus
	if z < 0 || z >= s.Modulus {
		return 0, &InvariantViolation{Scheme: s.name(),
			Reason: fmt.Sprintf("check value %d is outside [0,%d)", z, s.Modulus)}
	}
	return z, nil
}

// Residue returns the weighted sum of digits modulo the scheme's modulus.
func (s Scheme) Residue(digits []int) (int, error) {
	if s.Modulus <= 0 {
		return 0, &InvariantViolation{Scheme: s.name(),
			Reason: fmt.Sprintf("modulus must be positive, but is %d", s.Modulus)}
	}
	sum, err := Sum(digits, s.Weights)
	if err != nil {
		return 0, &InvariantViolation{Scheme: s.name(), Reason: err.Error()}
	}
	return sum % s.Modulus, nil
}

// Verify returns true if check is the check digit of digits.
func (s Scheme) Verify(digits []int, check int) bool {
	z, err := s.Compute(digits)
	return err == nil && z == check
}

func (s Scheme) name() string {
	if s.Name == "" {
		return "weighted"
	}
	return s.Name
}

// Digits converts a string of decimal digits to their integer values.
func Digits(s string) ([]int, error) {
	d := make([]int, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return nil, errors.Errorf("%q: character %d (%q) is not a decimal digit",
				s, i, s[i])
		}
		d[i] = int(s[i] - '0')
	}
	return d, nil
}

// Char returns the printed form of a check value: '0'-'9', or 'X' for 10.
func Char(z int) byte {
	if z == 10 {
		return 'X'
	}
	return byte('0' + z)
}
