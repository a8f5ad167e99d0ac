// Package modules splits symbol patterns into their fields.
//
// A pattern is a string of module characters, one per module of the symbol
// (see package bars for what those characters mean). Every part of a symbol
// has a fixed width: an EAN-13 guard is 3 modules, a digit is 7, the center
// guard is 5, and so on. An Exploder built from those widths breaks a
// pattern back into the parts that produced it, which is how package ean
// decodes its own output.
package modules

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Extractor extracts a fixed run of modules from a pattern.
//
// Create a new one with New(start, length), then use Extract(pattern).
// Extractors are values and are safe for concurrent use.
type Extractor struct {
	start, length int
}

// New returns an Extractor for length modules beginning at the 0-indexed
// module start.
//
// It panics if start is negative, length is less than 1, or their sum
// overflows.
func New(start, length int) Extractor {
	if start < 0 || length < 1 {
		panic(fmt.Sprintf("illegal start (%d) or length (%d)", start, length))
	}
	if start+length < 0 {
		panic(fmt.Sprintf("cannot handle such a large start (%d) and length (%d)",
			start, length))
	}
	return Extractor{start: start, length: length}
}

// Start returns the index of the first module this extracts.
func (ex Extractor) Start() int {
	return ex.start
}

// Length returns the number of modules this extracts.
func (ex Extractor) Length() int {
	return ex.length
}

// End returns the index just past the last module this extracts.
func (ex Extractor) End() int {
	return ex.start + ex.length
}

// Extract returns the extractor's modules from pattern.
//
// It panics if pattern is too short; an Exploder checks that first.
func (ex Extractor) Extract(pattern string) string {
	if len(pattern) < ex.End() {
		panic(fmt.Sprintf("cannot extract modules [%d:%d] from a pattern "+
			"with only %d modules", ex.start, ex.End(), len(pattern)))
	}
	return pattern[ex.start:ex.End()]
}

// Exploder breaks a pattern into consecutive fields of predefined widths.
type Exploder struct {
	length     int // sum of all widths
	extractors []Extractor
}

// NewExploder returns an Exploder for consecutive fields of the given widths.
func NewExploder(widths []int) (Exploder, error) {
	exp := Exploder{}
	if err := exp.SetWidths(widths); err != nil {
		return exp, err
	}
	return exp, nil
}

// SetWidths sets the exploder's field widths.
func (exp *Exploder) SetWidths(widths []int) error {
	if len(widths) == 0 {
		return errors.New("widths slice is empty")
	}

	length := 0
	extractors := make([]Extractor, len(widths))
	for i, w := range widths {
		if w <= 0 {
			return errors.Errorf("widths must be >0, but width %d is %d", i, w)
		}
		extractors[i] = New(length, w)
		length += w
	}
	exp.length = length
	exp.extractors = extractors
	return nil
}

// Explode returns the pattern's fields, in order.
//
// The pattern must be exactly as long as the sum of the widths.
func (exp Exploder) Explode(pattern string) ([]string, error) {
	if len(pattern) != exp.length {
		return nil, errors.Errorf("invalid pattern length %d; expected %d modules",
			len(pattern), exp.length)
	}

	fields := make([]string, len(exp.extractors))
	for i, ex := range exp.extractors {
		fields[i] = ex.Extract(pattern)
	}
	return fields, nil
}

// Length returns the sum of the exploder's widths.
func (exp Exploder) Length() int {
	return exp.length
}

// NumFields returns the number of fields this exploder has.
func (exp Exploder) NumFields() int {
	return len(exp.extractors)
}

// Field returns the extractor for field i.
func (exp Exploder) Field(i int) Extractor {
	return exp.extractors[i]
}

// Reader uses an Exploder to return consecutive fields from a pattern.
type Reader struct {
	exp     Exploder
	field   int
	pattern string
}

// NewReader creates a new Reader around pattern.
func (exp Exploder) NewReader(pattern string) (*Reader, error) {
	r := &Reader{exp: exp}
	return r, r.SetPattern(pattern)
}

// SetPattern changes the reader's pattern, resetting it in the process.
func (r *Reader) SetPattern(pattern string) error {
	if len(pattern) != r.exp.length {
		return errors.Errorf("this exploder needs exactly %d modules, "+
			"but the pattern has %d", r.exp.length, len(pattern))
	}
	r.pattern = pattern
	r.field = 0
	return nil
}

// Next returns the current field and advances to the next one. After all
// fields have been read, it returns "", io.EOF until SetPattern.
func (r *Reader) Next() (string, error) {
	if r.field >= r.exp.NumFields() {
		return "", io.EOF
	}
	f := r.exp.extractors[r.field].Extract(r.pattern)
	r.field++
	return f, nil
}

// Field returns the index of the field the next call to Next will return.
func (r *Reader) Field() int {
	return r.field
}

// SplitWidths validates and converts a delimited list of widths, such as a
// symbol layout written as "3.7.7.5":
//     w, err := SplitWidths("3.7.7.5", ".")
//     if err != nil {
//         return err
//     }
//     NewExploder(w)
func SplitWidths(conf, delim string) ([]int, error) {
	var r []int
	for i, wStr := range strings.Split(conf, delim) {
		wStr = strings.TrimSpace(wStr)
		if wStr == "" {
			return nil, errors.Errorf("width %d is empty", i)
		}
		w, err := strconv.Atoi(wStr)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to convert width %d", i)
		}
		r = append(r, w)
	}
	return r, nil
}

// MustExploder is like NewExploder applied to SplitWidths(conf, "."), but
// panics on error. It's meant for package-level layouts.
func MustExploder(conf string) Exploder {
	w, err := SplitWidths(conf, ".")
	if err != nil {
		panic(err)
	}
	exp, err := NewExploder(w)
	if err != nil {
		panic(err)
	}
	return exp
}
