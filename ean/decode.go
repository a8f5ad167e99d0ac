package ean

import (
	"io"
	"strings"

	"github.com/pkg/errors"
)

type codeEntry struct {
	digit, parity byte
}

// Decode reverses Pattern: it reads pattern field by field, checks every
// guard and separator, looks up each digit code, and recovers the number
// from the digits and their parity. An EAN-13 leading digit is recovered
// from the parity row; a UPC-5 parity row must match the add-on's checksum.
func (f Family) Decode(pattern string) (string, error) {
	r, err := f.Layout.NewReader(pattern)
	if err != nil {
		return "", errors.Wrapf(err, "can't decode %s pattern", f.Name)
	}

	// the fields of any pattern's guards are the same, so take them from a
	// pattern of blank codes
	numCodes := f.codeModules() / CodeLength
	guards, err := f.Layout.Explode(f.assemble(strings.Repeat("0", numCodes*CodeLength)))
	if err != nil {
		return "", errors.Wrapf(err, "bad %s layout", f.Name)
	}

	codes := map[string]codeEntry{}
	for parity, col := range f.Codes {
		for d, code := range col {
			codes[code] = codeEntry{digit: byte('0' + d), parity: parity}
		}
	}

	drawn := make([]byte, 0, numCodes)
	parity := make([]byte, 0, numCodes)
	for {
		i := r.Field()
		field, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		if f.Layout.Field(i).Length() != CodeLength {
			if field != guards[i] {
				return "", errors.Errorf("%s field %d should be %s, but is %s",
					f.Name, i, guards[i], field)
			}
			continue
		}

		e, ok := codes[field]
		if !ok {
			return "", errors.Errorf("%s field %d (%s) is not a digit code",
				f.Name, i, field)
		}
		drawn = append(drawn, e.digit)
		parity = append(parity, e.parity)
	}

	return f.join(f, string(parity), string(drawn))
}

// codeModules returns the number of modules in the pattern used by digits.
func (f Family) codeModules() int {
	n := 0
	for i := 0; i < f.Layout.NumFields(); i++ {
		if f.Layout.Field(i).Length() == CodeLength {
			n += CodeLength
		}
	}
	return n
}
