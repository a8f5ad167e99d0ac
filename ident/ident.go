package ident

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/intel/rsp-sw-toolkit-im-suite-bookland/checksum"
	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// NumDigits is the length of a complete ISBN or ISMN, including the check
// character.
const NumDigits = 10

// Kind distinguishes ISBNs from ISMNs.
type Kind int

const (
	ISBN = Kind(iota + 1)
	ISMN
)

func (k Kind) String() string {
	switch k {
	case ISBN:
		return "ISBN"
	case ISMN:
		return "ISMN"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Scheme returns the checksum scheme used for the Kind's check character.
func (k Kind) Scheme() checksum.Scheme {
	if k == ISMN {
		return checksum.ISMN
	}
	return checksum.ISBN
}

var (
	// ISMNs allow a space or hyphen in almost any position; whether the
	// hyphenation is sensible is not checked, only the checksum.
	ismnRegex = regexp.MustCompile(`^M( |-)?\d(( |-)?\d){7}(-| )?\d?$`)
	isbnRegex = regexp.MustCompile(`^\d-?\d(-?\d){7}-?(\d|X)?$`)

	separators = strings.NewReplacer("-", "", " ", "")
	upper      = cases.Upper(language.Und)
)

// Identifier is a validated ISBN or ISMN with its check character.
//
// The zero value is not a valid Identifier; use Parse.
type Identifier struct {
	raw     string
	kind    Kind
	display string // upper case, hyphenated as given, check character included
	digits  string // separators removed, ISMN 'M' replaced by '3'
	// completed is true if the check character was computed by Parse rather
	// than supplied by the caller.
	completed bool
}

// Parse validates s as an ISBN or ISMN and returns its Identifier.
//
// If s includes a check character, it must match the computed value, or
// Parse returns a *ChecksumMismatch. If s omits it, Parse computes it and
// appends it to the display form, preceded by a hyphen unless s already ends
// with one. If s matches neither form, Parse returns a *FormatError.
func Parse(s string) (Identifier, error) {
	id := Identifier{raw: s}
	normal := Normalize(s)

	switch {
	case ismnRegex.MatchString(normal):
		id.kind = ISMN
		id.digits = "3" + separators.Replace(normal[1:])
	case isbnRegex.MatchString(normal):
		id.kind = ISBN
		id.digits = separators.Replace(normal)
	default:
		return Identifier{}, &FormatError{Input: s}
	}
	id.display = normal

	body, err := checksum.Digits(id.digits[:NumDigits-1])
	if err != nil {
		// the regexes only admit digits in these positions
		return Identifier{}, &InternalError{Input: s, Reason: err.Error()}
	}
	z, err := id.kind.Scheme().Compute(body)
	if err != nil {
		return Identifier{}, errors.Wrapf(err, "unable to compute %s check digit for %q",
			id.kind, s)
	}
	expected := checksum.Char(z)

	switch len(id.digits) {
	case NumDigits:
		supplied := id.digits[NumDigits-1]
		if supplied != expected {
			return Identifier{}, &ChecksumMismatch{
				Input:    s,
				Kind:     id.kind,
				Supplied: supplied,
				Expected: expected,
			}
		}
	case NumDigits - 1:
		id.digits += string(expected)
		if !strings.HasSuffix(id.display, "-") {
			id.display += "-"
		}
		id.display += string(expected)
		id.completed = true
	default:
		return Identifier{}, &InternalError{Input: s,
			Reason: fmt.Sprintf("%d digits after removing separators", len(id.digits))}
	}

	return id, nil
}

// MustParse is like Parse, but panics if s isn't valid.
func MustParse(s string) Identifier {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

// Normalize folds compatibility characters (such as full-width digits) to
// their ASCII equivalents and upper-cases s.
func Normalize(s string) string {
	return upper.String(norm.NFKC.String(s))
}

// Kind returns whether this is an ISBN or an ISMN.
func (id Identifier) Kind() Kind {
	return id.kind
}

// Raw returns the string given to Parse.
func (id Identifier) Raw() string {
	return id.raw
}

// Digits returns the 10 checksum characters: separators removed, an ISMN's
// 'M' replaced by '3', and the check character last.
func (id Identifier) Digits() string {
	return id.digits
}

// CheckDigit returns the check character: '0'-'9', or 'X' for some ISBNs.
func (id Identifier) CheckDigit() byte {
	return id.digits[NumDigits-1]
}

// Completed returns true if Parse computed the check character because the
// input omitted it.
func (id Identifier) Completed() bool {
	return id.completed
}

// String returns the display form, e.g. "1-56592-197-6" or "M-2306-7118-7".
func (id Identifier) String() string {
	return id.display
}

// Label returns the text printed above the symbol, e.g. "ISBN 1-56592-197-6".
func (id Identifier) Label() string {
	return fmt.Sprintf("%s %s", id.kind, id.display)
}

// URN returns the identifier as a URN, e.g. "urn:isbn:1-56592-197-6".
//
// The ISBN namespace is defined by RFC 3187; the ISMN form follows the same
// pattern.
func (id Identifier) URN() string {
	return fmt.Sprintf("urn:%s:%s", strings.ToLower(id.kind.String()), id.display)
}
