// Package geometry sizes and places the symbols of a Bookland barcode.
//
// Dimensions of a Symbol are in inches, as the drawing defines them;
// bounding boxes and offsets are in PostScript points, 72 to the inch.
package geometry

import (
	"math"

	"github.com/intel/rsp-sw-toolkit-im-suite-bookland/ean"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

const (
	// PointsPerInch converts the symbol's inches to drawing points.
	PointsPerInch = 72

	// ModuleWidth is the width of one module, in inches.
	ModuleWidth = 0.0130

	// Bar heights as multiples of an inch, before the caller's multiplier.
	EAN13Height = 1.00
	UPC5Height  = 0.852

	// AddOnModules is the distance, in modules, from the main symbol's
	// origin to the add-on's: 95 modules of symbol plus 10 of separation.
	AddOnModules = 105
)

// Origin is where the first symbol is placed on a canvas, in points.
var Origin = vec.Vec2{X: 100, Y: 100}

// Symbol holds the physical dimensions of one symbol.
type Symbol struct {
	Name              string
	Modules           int
	ModuleWidth       float64 // inches
	ModuleHeight      float64 // inches; the height of the bars
	BarWidthReduction float64 // inches, subtracted from every bar's width

	// margins are added around the pattern's extent to get the bounding box
	margins rect.Rect
}

// EAN13 returns the main symbol's geometry.
func EAN13(heightMultiplier, barWidthReduction float64) Symbol {
	return Symbol{
		Name:              ean.EAN13.Name,
		Modules:           ean.EAN13.Modules,
		ModuleWidth:       ModuleWidth,
		ModuleHeight:      EAN13Height * heightMultiplier,
		BarWidthReduction: barWidthReduction,
		margins:           rect.Rect{LLx: -12, LLy: -10, URx: 10, URy: 12},
	}
}

// UPC5 returns the add-on's geometry. Its margin includes the quiet zone to
// its right, whether or not the '>' marker is drawn there.
func UPC5(heightMultiplier, barWidthReduction float64) Symbol {
	return Symbol{
		Name:              ean.UPC5.Name,
		Modules:           ean.UPC5.Modules,
		ModuleWidth:       ModuleWidth,
		ModuleHeight:      UPC5Height * heightMultiplier,
		BarWidthReduction: barWidthReduction,
		margins:           rect.Rect{LLx: -10, LLy: -10, URx: 10, URy: 10},
	}
}

// PatternWidth returns the width of the symbol's bars in inches.
func (s Symbol) PatternWidth() float64 {
	return float64(s.Modules) * s.ModuleWidth
}

// BoundingBox returns the symbol's extent in points, relative to its origin
// at the lower left of its bars.
func (s Symbol) BoundingBox() rect.Rect {
	return rect.Rect{
		LLx: s.margins.LLx,
		LLy: s.margins.LLy,
		URx: s.PatternWidth()*PointsPerInch + s.margins.URx,
		URy: s.ModuleHeight*PointsPerInch + s.margins.URy,
	}
}

// AddOnOffset returns how far, in points, the add-on is placed to the right
// of a symbol with this module width.
func (s Symbol) AddOnOffset() float64 {
	return s.ModuleWidth * PointsPerInch * AddOnModules
}

// Accumulate returns the smallest box containing both canvas and box
// translated by offset.
func Accumulate(canvas, box rect.Rect, offset vec.Vec2) rect.Rect {
	return rect.Rect{
		LLx: math.Min(canvas.LLx, offset.X+box.LLx),
		LLy: math.Min(canvas.LLy, offset.Y+box.LLy),
		URx: math.Max(canvas.URx, offset.X+box.URx),
		URy: math.Max(canvas.URy, offset.Y+box.URy),
	}
}

// Contains returns true if inner lies entirely within outer.
func Contains(outer, inner rect.Rect) bool {
	return outer.LLx <= inner.LLx && outer.LLy <= inner.LLy &&
		inner.URx <= outer.URx && inner.URy <= outer.URy
}

// Canvas tracks the current drawing origin and the bounding box of all the
// symbols placed so far. Its box only grows.
//
// A Canvas belongs to a single document and isn't safe for concurrent use.
type Canvas struct {
	origin vec.Vec2
	box    rect.Rect
}

// NewCanvas returns a canvas with its origin at Origin and an empty box
// there.
func NewCanvas() *Canvas {
	return &Canvas{
		origin: Origin,
		box:    rect.Rect{LLx: Origin.X, LLy: Origin.Y, URx: Origin.X, URy: Origin.Y},
	}
}

// Origin returns the current origin.
func (c *Canvas) Origin() vec.Vec2 {
	return c.origin
}

// Translate moves the origin by (dx, dy) points.
func (c *Canvas) Translate(dx, dy float64) {
	c.origin = vec.Vec2{X: c.origin.X + dx, Y: c.origin.Y + dy}
}

// Place grows the canvas's box to include a symbol drawn at the current
// origin.
func (c *Canvas) Place(s Symbol) {
	c.Add(s.BoundingBox())
}

// Add grows the canvas's box to include box, relative to the current origin.
func (c *Canvas) Add(box rect.Rect) {
	c.box = Accumulate(c.box, box, c.origin)
}

// Box returns the accumulated bounding box.
func (c *Canvas) Box() rect.Rect {
	return c.box
}

// IntBox returns the accumulated box rounded outward to whole points, as
// the EPS BoundingBox comment requires.
func (c *Canvas) IntBox() (llx, lly, urx, ury int) {
	return int(math.Floor(c.box.LLx)), int(math.Floor(c.box.LLy)),
		int(math.Ceil(c.box.URx)), int(math.Ceil(c.box.URy))
}
