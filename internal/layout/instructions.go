// Package layout converts a prescription draft into positioned draw
// instructions across one or more fixed-size pages. It owns all coordinate
// arithmetic: text wrapping, section measurement, pagination and the footer
// pass. Serialization of the instruction stream is left to the pdfenc
// subpackage.
//
// Units are millimetres with the origin at the top-left corner of the page;
// TextRun Y coordinates are baselines.
package layout

import "image"

// Document is the fully laid out result of rendering a draft.
type Document struct {
	PageWidth  float64
	PageHeight float64
	Pages      []Page
}

// Page holds the draw instructions of a single page, in paint order.
type Page struct {
	Instructions []Instruction
}

// Instruction is one positioned drawing primitive.
type Instruction interface {
	isInstruction()
}

// Font selects one of the built-in document faces.
type Font string

const (
	FontRegular Font = "Helvetica"
	FontBold    Font = "Helvetica-Bold"
)

// Color is an opaque RGB color.
type Color struct {
	R, G, B uint8
}

var (
	colorBlack     = Color{0, 0, 0}
	colorGray      = Color{100, 100, 100}
	colorRuleGray  = Color{200, 200, 200}
	colorHeaderBG  = Color{240, 240, 240}
	colorTableHead = Color{220, 220, 220}
	colorTableAlt  = Color{248, 248, 248}
	colorWatermark = Color{225, 225, 225}
)

// TextRun draws a single line of text with its baseline at (X, Y).
type TextRun struct {
	X, Y  float64
	Text  string
	Font  Font
	Size  float64 // points
	Color Color
}

// FilledRect draws a filled rectangle with its top-left corner at (X, Y).
type FilledRect struct {
	X, Y, W, H float64
	Color      Color
}

// Rule draws a stroked line from (X1, Y1) to (X2, Y2).
type Rule struct {
	X1, Y1, X2, Y2 float64
	Width          float64 // stroke width in mm
	Color          Color
}

// ImageBox draws a decoded image scaled into the W×H box at (X, Y).
type ImageBox struct {
	X, Y, W, H float64
	Image      *image.RGBA
}

func (TextRun) isInstruction()    {}
func (FilledRect) isInstruction() {}
func (Rule) isInstruction()       {}
func (ImageBox) isInstruction()   {}
