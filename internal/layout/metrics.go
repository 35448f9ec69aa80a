package layout

// Glyph advance widths for the two built-in faces, in 1/1000 of the font
// size, covering the printable ASCII range 0x20-0x7E. These are the standard
// Helvetica AFM values; the PDF encoder uses the same core fonts, so wrap
// arithmetic here matches the rendered output exactly.

var helveticaWidths = [95]int{
	278, 278, 355, 556, 556, 889, 667, 191, 333, 333, 389, 584, 278, 333, 278, 278,
	556, 556, 556, 556, 556, 556, 556, 556, 556, 556, 278, 278, 584, 584, 584, 556,
	1015, 667, 667, 722, 722, 667, 611, 778, 722, 278, 500, 667, 556, 833, 722, 778,
	667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611, 278, 278, 278, 469, 556,
	333, 556, 556, 500, 556, 556, 278, 556, 556, 222, 222, 500, 222, 833, 556, 556,
	556, 556, 333, 500, 278, 556, 500, 722, 500, 500, 500, 334, 260, 334, 584,
}

var helveticaBoldWidths = [95]int{
	278, 333, 474, 556, 556, 889, 722, 238, 333, 333, 389, 584, 278, 333, 278, 278,
	556, 556, 556, 556, 556, 556, 556, 556, 556, 556, 333, 333, 584, 584, 584, 611,
	975, 722, 722, 722, 722, 667, 611, 778, 722, 278, 556, 722, 611, 833, 722, 778,
	667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611, 333, 278, 333, 584, 556,
	333, 556, 611, 556, 611, 556, 333, 611, 611, 278, 278, 556, 278, 889, 611, 611,
	611, 611, 389, 556, 333, 611, 556, 778, 556, 556, 500, 389, 280, 389, 584,
}

// Bullet glyph width (WinAnsi 0x95) per the AFM, same for both faces.
const bulletWidth = 350

// fallbackWidth is used for runes outside the encodable set; 556 is the
// Helvetica digit/lowercase average.
const fallbackWidth = 556

const mmPerPoint = 25.4 / 72.0

func glyphWidth(r rune, font Font) int {
	if r == '•' {
		return bulletWidth
	}
	if r < 0x20 || r > 0x7E {
		return fallbackWidth
	}
	if font == FontBold {
		return helveticaBoldWidths[r-0x20]
	}
	return helveticaWidths[r-0x20]
}

// TextWidth returns the rendered width of s in millimetres at the given font
// size (points).
func TextWidth(s string, font Font, size float64) float64 {
	total := 0
	for _, r := range s {
		total += glyphWidth(r, font)
	}
	return float64(total) / 1000.0 * size * mmPerPoint
}
