// Package bookland generates Bookland EAN barcodes: the EAN-13 symbol
// printed on books and sheet music, derived from an ISBN or ISMN, and an
// optional 5-digit add-on symbol for the price.
//
// Generate validates its input completely before drawing anything, and
// returns the finished drawing as EPS lines:
//     doc, err := bookland.Generate("1-56592-197-6", "90000", bookland.DefaultOptions())
//     if err != nil {
//         return err
//     }
//     _, err = doc.WriteTo(os.Stdout)
//
// Every call builds its own Document, so calls may run concurrently.
package bookland

import (
	"fmt"
	"io"
	"math"

	"github.com/intel/rsp-sw-toolkit-im-suite-bookland/bars"
	"github.com/intel/rsp-sw-toolkit-im-suite-bookland/ean"
	"github.com/intel/rsp-sw-toolkit-im-suite-bookland/eps"
	"github.com/intel/rsp-sw-toolkit-im-suite-bookland/geometry"
	"github.com/intel/rsp-sw-toolkit-im-suite-bookland/ident"
	"github.com/intel/rsp-sw-toolkit-im-suite-bookland/internal/logging"
	"github.com/pkg/errors"
	"seehuhn.de/go/geom/rect"
)

// Version is recorded in the EPS Creator comment.
const Version = "1.0.0"

// DefaultAddOn is the add-on the command prints for an ISBN when none is
// given. It means no suggested price.
const DefaultAddOn = "90000"

// Options configure the drawing. None of them affect the encoded numbers.
type Options struct {
	// Font replaces the default font for all text, if not empty.
	Font string
	// HeightMultiplier scales the bar heights.
	HeightMultiplier float64
	// BarWidthReduction is subtracted from the width of every bar, in
	// inches, to compensate for ink spreading on press.
	BarWidthReduction float64
	// QuietZone draws a '>' to the right of the add-on, marking its quiet
	// zone. It has no effect without an add-on.
	QuietZone bool
	// CommandLine is recorded in the EPS comments.
	CommandLine string
}

// DefaultOptions returns the options for a standard size symbol.
func DefaultOptions() Options {
	return Options{HeightMultiplier: 1}
}

// Validate returns an error if the options can't produce a drawing.
func (o Options) Validate() error {
	if !(o.HeightMultiplier > 0) || math.IsInf(o.HeightMultiplier, 0) {
		return errors.Errorf("height multiplier must be positive and finite, but is %v",
			o.HeightMultiplier)
	}
	if !(o.BarWidthReduction >= 0) || math.IsInf(o.BarWidthReduction, 0) {
		return errors.Errorf("bar width reduction must be finite and not negative, but is %v",
			o.BarWidthReduction)
	}
	if o.Font != "" {
		if err := eps.ValidateFontName(o.Font); err != nil {
			return err
		}
	}
	return nil
}

// Fonts returns the fonts to draw with.
func (o Options) Fonts() eps.Fonts {
	if o.Font != "" {
		return eps.UniformFonts(o.Font)
	}
	return eps.DefaultFonts()
}

// Symbol is one encoded symbol of a Document.
type Symbol struct {
	Family   ean.Family
	Number   string
	Pattern  string
	Bars     []bars.Bar
	Geometry geometry.Symbol
}

// Document is a generated barcode: the encoded symbols and their drawing.
type Document struct {
	Identifier ident.Identifier
	Number     ean.Number
	// AddOn is nil if there's no add-on symbol.
	AddOn   *ean.AddOn
	Symbols []Symbol

	eps *eps.Document
}

// Check validates an ISBN or ISMN, completing its check digit if it's
// missing, without drawing anything.
func Check(isbn string) (ident.Identifier, error) {
	return ident.Parse(isbn)
}

// Generate draws the Bookland symbol for isbn, which may be an ISBN or an
// ISMN, followed by an add-on symbol for addOn unless it's blank. Only an
// ISBN may have an add-on.
//
// Errors identifying bad input are returned as is: *ident.FormatError,
// *ident.ChecksumMismatch or *ean.InvalidAddOnCode. Nothing is drawn unless
// all the input is valid.
func Generate(isbn, addOn string, opts Options) (*Document, error) {
	if err := opts.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid options")
	}

	id, err := ident.Parse(isbn)
	if err != nil {
		return nil, err
	}
	a, hasAddOn, err := ean.AddOnFor(id, addOn)
	if err != nil {
		return nil, err
	}

	n, err := ean.Derive(id)
	if err != nil {
		return nil, err
	}

	doc := &Document{Identifier: id, Number: n}
	main, err := encode(ean.EAN13, n.String(),
		geometry.EAN13(opts.HeightMultiplier, opts.BarWidthReduction))
	if err != nil {
		return nil, err
	}
	doc.Symbols = append(doc.Symbols, main)

	if hasAddOn {
		doc.AddOn = &a
		sup, err := encode(ean.UPC5, a.String(),
			geometry.UPC5(opts.HeightMultiplier, opts.BarWidthReduction))
		if err != nil {
			return nil, err
		}
		doc.Symbols = append(doc.Symbols, sup)
	} else if opts.QuietZone {
		logging.Warn("quiet_zone_ignored", "input", isbn, "reason", "no add-on symbol")
	}

	doc.draw(opts)
	llx, lly, urx, ury := doc.eps.IntBox()
	logging.Debug("document_generated", "input", isbn, "identifier", id.Label(),
		"symbols", len(doc.Symbols), "bounding_box", []int{llx, lly, urx, ury})
	return doc, nil
}

func encode(f ean.Family, number string, g geometry.Symbol) (Symbol, error) {
	p, err := f.Pattern(number)
	if err != nil {
		return Symbol{}, errors.Wrapf(err, "unable to encode %s %s", f, number)
	}
	bs, err := bars.Compress(p)
	if err != nil {
		return Symbol{}, errors.Wrapf(err, "unable to draw %s %s", f, number)
	}
	row, err := f.ParityRow(number)
	if err != nil {
		return Symbol{}, err
	}

	logging.SymbolEncoded(f.Name, number, row, len(p), len(bs))
	return Symbol{Family: f, Number: number, Pattern: p, Bars: bs, Geometry: g}, nil
}

func (doc *Document) draw(opts Options) {
	fonts := opts.Fonts()
	id := doc.Identifier

	comments := []string{
		"",
		fmt.Sprintf("Bookland EAN-13 %s for %s", doc.Number, id.Label()),
		"Check the symbol with a scanner before going to press.",
		"",
		"Command line: " + opts.CommandLine,
		"",
	}

	d := eps.New()
	d.Header(id.String(), "bookland "+Version, comments, fonts)

	main := doc.Symbols[0]
	d.SelectFont(eps.EAN13FontProc)
	d.Symbol(main.Geometry, main.Pattern, main.Bars, true)
	d.EAN13Digits(doc.Number, fonts.EAN13)
	d.SelectFont(eps.ISBNFontProc)
	d.TextAbove(main.Geometry, id.Label(), fonts.ISBN, 3)

	if doc.AddOn != nil {
		sup := doc.Symbols[1]
		d.Translate(main.Geometry.AddOnOffset(), 0)
		d.Symbol(sup.Geometry, sup.Pattern, sup.Bars, false)
		d.SelectFont(eps.UPC5FontProc)
		d.TextAbove(sup.Geometry, doc.AddOn.String(), fonts.UPC5, 2)
		if opts.QuietZone {
			d.QuietZoneMarker(sup.Geometry, fonts.UPC5)
		}
	} else {
		d.Comment("No add-on symbol")
	}

	d.Trailer()
	doc.eps = d
}

// Lines returns the EPS drawing, one line per entry.
func (doc *Document) Lines() []string {
	return doc.eps.Lines()
}

// BoundingBox returns the extent of the drawing in points.
func (doc *Document) BoundingBox() rect.Rect {
	return doc.eps.BoundingBox()
}

// WriteTo writes the EPS drawing to w.
func (doc *Document) WriteTo(w io.Writer) (int64, error) {
	return doc.eps.WriteTo(w)
}
