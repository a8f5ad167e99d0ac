// Package eps writes Bookland symbols as Encapsulated PostScript.
//
// A Document is built up line by line: the header with its font and
// drawing procedures, then each symbol's bars and text, then the trailer.
// As symbols are placed, the document's canvas accumulates their bounding
// boxes, and the header's %%BoundingBox comment is filled in from it when
// the lines are read.
//
// Bars are drawn by three procedures, each taking a width in modules:
//     n W - move right over n modules of space
//     n B - stroke a bar n modules wide
//     n L - stroke a guard bar n modules wide, extending below the others
package eps

import (
	"fmt"
	"io"
	"strings"

	"github.com/intel/rsp-sw-toolkit-im-suite-bookland/bars"
	"github.com/intel/rsp-sw-toolkit-im-suite-bookland/ean"
	"github.com/intel/rsp-sw-toolkit-im-suite-bookland/geometry"
	"github.com/pkg/errors"
	"seehuhn.de/go/geom/rect"
)

// NumFormat formats every non-integer number in the drawing.
const NumFormat = "%.6f"

// DefaultFont is used for all text unless the caller overrides it. Any
// font will do for the identifier, but the digits under the bars are meant
// to be OCR-B.
const DefaultFont = "OCRB"

// Names of the procedures that select each font.
const (
	EAN13FontProc = "ean13font"
	ISBNFontProc  = "isbnfont"
	UPC5FontProc  = "upc5font"
)

const bboxPlaceholder = "%%BoundingBox: (atend)"

// Fonts names the PostScript font for each piece of text.
type Fonts struct {
	EAN13 string // digits under the main symbol
	ISBN  string // identifier above the main symbol
	UPC5  string // add-on digits
}

// DefaultFonts returns DefaultFont for everything.
func DefaultFonts() Fonts {
	return UniformFonts(DefaultFont)
}

// UniformFonts returns font for everything.
func UniformFonts(font string) Fonts {
	return Fonts{EAN13: font, ISBN: font, UPC5: font}
}

// ValidateFontName returns an error if name can't be used as a PostScript
// name literal.
func ValidateFontName(name string) error {
	if name == "" {
		return errors.New("font name is empty")
	}
	if i := strings.IndexAny(name, " \t\r\n\f\x00()<>[]{}/%"); i >= 0 {
		return errors.Errorf("font name %q can't contain %q", name, name[i])
	}
	return nil
}

// Document is an EPS file under construction.
//
// A Document belongs to a single request and isn't safe for concurrent use.
type Document struct {
	lines  []string
	canvas *geometry.Canvas
	bboxAt int // index of the %%BoundingBox line, or -1
}

// New returns an empty document with a fresh canvas.
func New() *Document {
	return &Document{canvas: geometry.NewCanvas(), bboxAt: -1}
}

// Emit appends lines to the document. A line with embedded newlines is
// split, so every entry of Lines is a single line.
func (d *Document) Emit(lines ...string) {
	for _, l := range lines {
		d.lines = append(d.lines, strings.Split(l, "\n")...)
	}
}

// Comment appends each line as a PostScript comment.
func (d *Document) Comment(lines ...string) {
	d.comment("% ", lines)
}

var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// comment prefixes every line of text, including lines embedded in it, so
// no part of the text is left outside the comment.
func (d *Document) comment(prefix string, text []string) {
	for _, t := range text {
		for _, l := range strings.Split(lineBreaks.Replace(t), "\n") {
			d.lines = append(d.lines, prefix+l)
		}
	}
}

func oneLine(s string) string {
	return strings.ReplaceAll(lineBreaks.Replace(s), "\n", " ")
}

// Header writes the DSC header, the comment block, the font selection
// procedures and the drawing procedures, and moves to the canvas origin.
// Each line of each comment is prefixed with "%  ". Line breaks in the
// title and creator become spaces.
func (d *Document) Header(title, creator string, comments []string, fonts Fonts) {
	d.Emit(
		"%!PS-Adobe-2.0 EPSF-1.2",
		"%%Creator: "+oneLine(creator),
		"%%Title: "+oneLine(title),
	)
	d.bboxAt = len(d.lines)
	d.Emit(bboxPlaceholder, "%%EndComments")
	d.comment("%  ", comments)

	d.Emit(
		"",
		"% These font names might be different on your system:",
		fmt.Sprintf("/%s { /%s findfont 10 scalefont setfont } def", EAN13FontProc, fonts.EAN13),
		fmt.Sprintf("/%s { /%s findfont 8 scalefont setfont } def", ISBNFontProc, fonts.ISBN),
		fmt.Sprintf("/%s { /%s findfont 14 scalefont setfont } def", UPC5FontProc, fonts.UPC5),
		"",
	)
	d.Emit(procedures...)

	o := d.canvas.Origin()
	d.Emit(fmt.Sprintf("%d %d translate", int(o.X), int(o.Y)), "0 0 moveto")
}

// Fonts differ in size and spacing between implementations, so text is
// scaled to fit the width it's meant to span.
var procedures = []string{
	"% usage: width string font fitstring",
	"% set font, scaled so that string exactly fits width; leave string on stack",
	"/fitstring { dup findfont 1 scalefont setfont % w s f",
	"3 1 roll % f w s",
	"dup stringwidth pop % f w s sw",
	"3 2 roll exch div % f s x",
	"3 2 roll findfont exch scalefont setfont",
	"} def",
	"/barHeight { 72 } def",
	"/nextModule { moduleWidth 0 rmoveto } def",
	"/topcentershow {dup stringwidth pop neg 2 div -9 rmoveto show} def",
	"/toprightshow {dup stringwidth pop neg -9 rmoveto show} def",
	"/bottomcentershow {dup stringwidth pop neg 2 div 0 rmoveto show} def",
	"/bottomrightshow {dup stringwidth pop neg 0 rmoveto show} def",
	"/W { moduleWidth mul 0 rmoveto } def",
	"/B { dup moduleWidth mul 2 div 0 rmoveto",
	"dup moduleWidth mul barWidthReduction sub setlinewidth",
	"0 barHeight rlineto 0 barHeight neg rmoveto",
	"currentpoint stroke moveto",
	"moduleWidth mul 2 div 0 rmoveto } def",
	"/L { dup moduleWidth mul 2 div 0 rmoveto",
	"dup moduleWidth mul barWidthReduction sub setlinewidth",
	"0 -5 rmoveto 0 5 rlineto",
	"0 barHeight rlineto 0 barHeight neg rmoveto",
	"currentpoint stroke moveto",
	"moduleWidth mul 2 div 0 rmoveto } def",
}

// SelectFont calls one of the font procedures, e.g. EAN13FontProc.
func (d *Document) SelectFont(proc string) {
	d.Emit(proc)
}

// Symbol draws a symbol's bars at the current origin and adds its bounding
// box to the canvas. The pattern is recorded in a comment. If
// defineReduction is false, the bar-width reduction of the previous symbol
// stays in effect.
func (d *Document) Symbol(sym geometry.Symbol, pattern string, bs []bars.Bar, defineReduction bool) {
	d.Comment("Bits:", pattern)
	d.Emit("/moduleWidth { " + Num(sym.ModuleWidth) + " 72 mul } def")
	if defineReduction {
		d.Emit("/barWidthReduction { " + Num(sym.BarWidthReduction) + " 72 mul } def")
	}
	d.Emit("/barHeight { " + Num(sym.ModuleHeight) + " 72 mul } def")

	d.Emit("0 0 moveto")
	for _, b := range bs {
		d.Emit(b.String())
	}
	d.Emit("stroke")

	d.canvas.Place(sym)
}

// EAN13Digits prints the number under the main symbol: the leading digit to
// the left of the bars, and each half centered under its half of the bars.
func (d *Document) EAN13Digits(n ean.Number, font string) {
	// 24 modules is the center of the left digits (3 + 6*7/2); 70 is the
	// center of the right digits (3 + 6*7 + 4 + 6*7/2). The leading digit
	// sits 5 points clear of the left guard.
	d.Comment(
		"Left digits first; the font stays scaled for the other digits.",
		"EAN-13 left digits:",
	)
	d.Emit(
		"moduleWidth 24 mul 0 moveto",
		"moduleWidth 40 mul "+String(n.Left()),
		"/"+font+" fitstring topcentershow",
	)
	d.Comment("EAN-13 leading digit:")
	d.Emit("-5 0 moveto " + String(n.Leading()) + " toprightshow")
	d.Comment("EAN-13 right digits:")
	d.Emit(
		"moduleWidth 70 mul 0 moveto",
		"moduleWidth 40 mul "+String(n.Right())+" topcentershow",
	)
}

// TextAbove prints text centered over the symbol, fitted to its width, with
// gap points between the bars and the baseline.
func (d *Document) TextAbove(sym geometry.Symbol, text, font string, gap int) {
	d.Emit(
		Num(sym.PatternWidth())+" 72 mul dup 2 div",
		fmt.Sprintf("%s 72 mul %d add moveto", Num(sym.ModuleHeight), gap),
		String(text)+" /"+font+" fitstring bottomcentershow",
	)
}

// QuietZoneMarker prints a '>' just past the top right of the symbol, to
// keep other print out of the quiet zone.
func (d *Document) QuietZoneMarker(sym geometry.Symbol, font string) {
	d.Emit(
		Num(sym.PatternWidth())+" 72 mul",
		Num(sym.ModuleHeight)+" 72 mul 2 add moveto",
		"/"+font+" (>) show",
	)
}

// Translate moves the origin by (dx, dy) points.
func (d *Document) Translate(dx, dy float64) {
	d.canvas.Translate(dx, dy)
	d.Emit(Num(dx) + " " + Num(dy) + " translate 0 0 moveto")
}

// Trailer ends the drawing.
func (d *Document) Trailer() {
	d.Emit("stroke", "showpage", "%%EOF")
}

// Lines returns the document's lines, with the bounding box filled in.
func (d *Document) Lines() []string {
	lines := make([]string, len(d.lines))
	copy(lines, d.lines)
	if d.bboxAt >= 0 {
		llx, lly, urx, ury := d.IntBox()
		lines[d.bboxAt] = fmt.Sprintf("%%%%BoundingBox: %d %d %d %d", llx, lly, urx, ury)
	}
	return lines
}

// IntBox returns the bounding box as written in the %%BoundingBox comment.
func (d *Document) IntBox() (llx, lly, urx, ury int) {
	return d.canvas.IntBox()
}

// BoundingBox returns the extent of everything placed, in points.
func (d *Document) BoundingBox() rect.Rect {
	return d.canvas.Box()
}

// WriteTo writes the document's lines to w, each followed by a newline.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, l := range d.Lines() {
		n, err := io.WriteString(w, l+"\n")
		total += int64(n)
		if err != nil {
			return total, errors.Wrap(err, "unable to write EPS")
		}
	}
	return total, nil
}

// Num formats f with NumFormat.
func Num(f float64) string {
	return fmt.Sprintf(NumFormat, f)
}

var stringEscaper = strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)

// String returns s as a PostScript string literal.
func String(s string) string {
	return "(" + stringEscaper.Replace(s) + ")"
}
