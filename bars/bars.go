// Package bars run-length encodes symbol patterns into the bars the drawing
// emitter strokes.
//
// A pattern has one character per module: '0' is a white (space) module,
// '1' is an ordinary black module, and 'L' is a black guard module, which is
// drawn taller than the digit bars. Compress groups adjacent equal modules
// into a Bar. Guard and ordinary black modules never group together, even
// though both are black: each bar is stroked separately, so a guard run and
// a digit run are kept as distinct strokes at their own heights.
package bars

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Kind identifies what a run of modules draws.
type Kind int

const (
	White = Kind(iota)
	Black
	Guard
)

var (
	kindChars  = [...]byte{White: '0', Black: '1', Guard: 'L'}
	kindTokens = [...]string{White: "W", Black: "B", Guard: "L"}
)

// KindOf returns the Kind for a pattern character.
func KindOf(c byte) (Kind, bool) {
	switch c {
	case '0':
		return White, true
	case '1':
		return Black, true
	case 'L':
		return Guard, true
	}
	return 0, false
}

// Char returns the pattern character for the Kind.
func (k Kind) Char() byte {
	return kindChars[k]
}

// Token returns the name of the drawing procedure for the Kind: W, B, or L.
func (k Kind) Token() string {
	return kindTokens[k]
}

func (k Kind) String() string {
	switch k {
	case White:
		return "White"
	case Black:
		return "Black"
	case Guard:
		return "Guard"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsBlack returns true for both ordinary and guard bars.
func (k Kind) IsBlack() bool {
	return k == Black || k == Guard
}

// Bar is a maximal run of modules of the same Kind.
type Bar struct {
	Kind  Kind
	Width int
}

// String returns the bar as it's written in the drawing, e.g. "3 B".
func (b Bar) String() string {
	return fmt.Sprintf("%d %s", b.Width, b.Kind.Token())
}

// Pattern returns the modules the bar covers, e.g. "111" for a 3-module
// black bar.
func (b Bar) Pattern() string {
	return strings.Repeat(string(b.Kind.Char()), b.Width)
}

// InvalidModuleChar reports a character in a pattern that isn't a module.
// Encoders only produce '0', '1', and 'L', so it indicates a defect in
// whatever built the pattern.
type InvalidModuleChar struct {
	Pattern  string
	Position int
	Char     byte
}

func (e *InvalidModuleChar) Error() string {
	return fmt.Sprintf("invalid module character %q at position %d of pattern %q; "+
		"only '0', '1', and 'L' are allowed", e.Char, e.Position, e.Pattern)
}

// Compress returns the shortest sequence of bars that covers pattern, in
// order. Adjacent bars always have different kinds; in particular, 'L' and
// '1' are different kinds and never share a bar.
//
// An empty pattern returns no bars. Any character other than '0', '1', or
// 'L' returns an *InvalidModuleChar.
func Compress(pattern string) ([]Bar, error) {
	var bars []Bar
	for i := 0; i < len(pattern); i++ {
		k, ok := KindOf(pattern[i])
		if !ok {
			return nil, &InvalidModuleChar{Pattern: pattern, Position: i, Char: pattern[i]}
		}
		if n := len(bars); n > 0 && bars[n-1].Kind == k {
			bars[n-1].Width++
			continue
		}
		bars = append(bars, Bar{Kind: k, Width: 1})
	}
	return bars, nil
}

// MustCompress is like Compress, but panics if the pattern is invalid.
func MustCompress(pattern string) []Bar {
	bars, err := Compress(pattern)
	if err != nil {
		panic(err)
	}
	return bars
}

// Expand returns the pattern covered by bars; it is the inverse of Compress.
func Expand(bars []Bar) string {
	var sb strings.Builder
	for _, b := range bars {
		sb.WriteString(b.Pattern())
	}
	return sb.String()
}

// Width returns the total number of modules covered by bars.
func Width(bars []Bar) int {
	w := 0
	for _, b := range bars {
		w += b.Width
	}
	return w
}

// Validate checks that bars are a valid compression: every width is at least
// 1 and no two adjacent bars have the same kind.
func Validate(bars []Bar) error {
	for i, b := range bars {
		if b.Width < 1 {
			return errors.Errorf("bar %d (%s) has width %d", i, b.Kind, b.Width)
		}
		if i > 0 && bars[i-1].Kind == b.Kind {
			return errors.Errorf("bars %d and %d are both %s", i-1, i, b.Kind)
		}
	}
	return nil
}
