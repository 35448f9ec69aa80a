// Package pdfenc serializes a laid-out document into PDF 1.4 bytes.
//
// The encoder is deliberately small: two core Helvetica faces with WinAnsi
// encoding, flate-compressed content streams, raw RGB image XObjects and a
// classic xref table. It embeds no timestamps or generated identifiers, so
// encoding the same document twice yields identical bytes.
package pdfenc

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/mrsinham/rxforge/internal/layout"
)

// RenderError reports a failure to serialize a laid-out document. Layout
// itself cannot fail; this is the only error surface of the render path.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return "serializing document: " + e.Err.Error()
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

const ptPerMM = 72.0 / 25.4

// Encode serializes the document into a complete PDF file.
func Encode(doc *layout.Document) ([]byte, error) {
	enc := &encoder{doc: doc}
	out, err := enc.encode()
	if err != nil {
		return nil, &RenderError{Err: err}
	}
	return out, nil
}

type encoder struct {
	doc *layout.Document

	buf     bytes.Buffer
	offsets []int // offsets[i] = byte offset of object i+1
}

// Fixed object numbers; images and pages follow.
const (
	objCatalog  = 1
	objPages    = 2
	objFontReg  = 3
	objFontBold = 4
	objFirstImg = 5
)

func (e *encoder) encode() ([]byte, error) {
	pageW := e.doc.PageWidth * ptPerMM
	pageH := e.doc.PageHeight * ptPerMM

	// Collect images document-wide and assign object numbers.
	var images []*image.RGBA
	imageObj := map[*image.RGBA]int{}
	for _, page := range e.doc.Pages {
		for _, in := range page.Instructions {
			if ib, ok := in.(layout.ImageBox); ok {
				if _, seen := imageObj[ib.Image]; !seen {
					imageObj[ib.Image] = objFirstImg + len(images)
					images = append(images, ib.Image)
				}
			}
		}
	}

	firstPageObj := objFirstImg + len(images)
	numObjects := firstPageObj + 2*len(e.doc.Pages) - 1

	e.buf.WriteString("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")
	e.offsets = make([]int, numObjects)

	// 1: catalog
	e.beginObj(objCatalog)
	e.buf.WriteString("<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")

	// 2: page tree
	e.beginObj(objPages)
	var kids []string
	for i := range e.doc.Pages {
		kids = append(kids, fmt.Sprintf("%d 0 R", firstPageObj+2*i))
	}
	fmt.Fprintf(&e.buf, "<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n",
		strings.Join(kids, " "), len(e.doc.Pages))

	// 3, 4: fonts
	e.beginObj(objFontReg)
	e.buf.WriteString("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>\nendobj\n")
	e.beginObj(objFontBold)
	e.buf.WriteString("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica-Bold /Encoding /WinAnsiEncoding >>\nendobj\n")

	// Image XObjects.
	for i, img := range images {
		data, err := deflateRGB(img)
		if err != nil {
			return nil, err
		}
		e.beginObj(objFirstImg + i)
		bounds := img.Bounds()
		fmt.Fprintf(&e.buf,
			"<< /Type /XObject /Subtype /Image /Width %d /Height %d /ColorSpace /DeviceRGB /BitsPerComponent 8 /Filter /FlateDecode /Length %d >>\nstream\n",
			bounds.Dx(), bounds.Dy(), len(data))
		e.buf.Write(data)
		e.buf.WriteString("\nendstream\nendobj\n")
	}

	// Pages and their content streams.
	for i, page := range e.doc.Pages {
		pageObj := firstPageObj + 2*i
		contentObj := pageObj + 1

		content, err := e.contentStream(page, pageH)
		if err != nil {
			return nil, err
		}

		e.beginObj(pageObj)
		var xobjects string
		if len(images) > 0 {
			var entries []string
			for j, img := range images {
				entries = append(entries, fmt.Sprintf("/Im%d %d 0 R", j+1, imageObj[img]))
			}
			xobjects = " /XObject << " + strings.Join(entries, " ") + " >>"
		}
		fmt.Fprintf(&e.buf,
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %s %s] /Resources << /Font << /F1 3 0 R /F2 4 0 R >>%s >> /Contents %d 0 R >>\nendobj\n",
			num(pageW), num(pageH), xobjects, contentObj)

		e.beginObj(contentObj)
		fmt.Fprintf(&e.buf, "<< /Length %d /Filter /FlateDecode >>\nstream\n", len(content))
		e.buf.Write(content)
		e.buf.WriteString("\nendstream\nendobj\n")
	}

	// xref table and trailer.
	xrefOffset := e.buf.Len()
	fmt.Fprintf(&e.buf, "xref\n0 %d\n0000000000 65535 f \n", numObjects+1)
	for _, off := range e.offsets {
		fmt.Fprintf(&e.buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&e.buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		numObjects+1, xrefOffset)

	return e.buf.Bytes(), nil
}

func (e *encoder) beginObj(n int) {
	e.offsets[n-1] = e.buf.Len()
	fmt.Fprintf(&e.buf, "%d 0 obj\n", n)
}

// contentStream builds and compresses the drawing operations for one page.
// Layout coordinates are top-left-origin millimetres; PDF user space is
// bottom-left-origin points, so every Y flips here.
func (e *encoder) contentStream(page layout.Page, pageH float64) ([]byte, error) {
	imageIndex := e.imageIndexes()

	var ops strings.Builder
	for _, in := range page.Instructions {
		switch in := in.(type) {
		case layout.FilledRect:
			fmt.Fprintf(&ops, "%s rg\n", rgb(in.Color))
			fmt.Fprintf(&ops, "%s %s %s %s re\nf\n",
				num(in.X*ptPerMM),
				num(pageH-(in.Y+in.H)*ptPerMM),
				num(in.W*ptPerMM),
				num(in.H*ptPerMM))

		case layout.Rule:
			fmt.Fprintf(&ops, "%s RG\n%s w\n", rgb(in.Color), num(in.Width*ptPerMM))
			fmt.Fprintf(&ops, "%s %s m\n%s %s l\nS\n",
				num(in.X1*ptPerMM), num(pageH-in.Y1*ptPerMM),
				num(in.X2*ptPerMM), num(pageH-in.Y2*ptPerMM))

		case layout.TextRun:
			font := "/F1"
			if in.Font == layout.FontBold {
				font = "/F2"
			}
			fmt.Fprintf(&ops, "BT\n%s %s Tf\n%s rg\n%s %s Td\n(%s) Tj\nET\n",
				font, num(in.Size),
				rgb(in.Color),
				num(in.X*ptPerMM), num(pageH-in.Y*ptPerMM),
				escapeText(in.Text))

		case layout.ImageBox:
			fmt.Fprintf(&ops, "q\n%s 0 0 %s %s %s cm\n/Im%d Do\nQ\n",
				num(in.W*ptPerMM), num(in.H*ptPerMM),
				num(in.X*ptPerMM), num(pageH-(in.Y+in.H)*ptPerMM),
				imageIndex[in.Image])
		}
	}

	return deflate([]byte(ops.String()))
}

// imageIndexes maps each distinct image in the document to its /ImN resource
// number, mirroring the order used when the XObjects were written.
func (e *encoder) imageIndexes() map[*image.RGBA]int {
	index := map[*image.RGBA]int{}
	n := 1
	for _, page := range e.doc.Pages {
		for _, in := range page.Instructions {
			if ib, ok := in.(layout.ImageBox); ok {
				if _, seen := index[ib.Image]; !seen {
					index[ib.Image] = n
					n++
				}
			}
		}
	}
	return index
}

// num formats a coordinate with two decimals, trimming trailing zeros so the
// output stays compact and stable.
func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}

func rgb(c layout.Color) string {
	return fmt.Sprintf("%s %s %s",
		num(float64(c.R)/255),
		num(float64(c.G)/255),
		num(float64(c.B)/255))
}

// escapeText converts a string to a WinAnsi-encoded PDF string literal.
// The bullet glyph maps to its WinAnsi code point; anything else outside
// printable ASCII degrades to '?'.
func escapeText(s string) string {
	var out []byte
	for _, r := range s {
		switch {
		case r == '(' || r == ')' || r == '\\':
			out = append(out, '\\', byte(r))
		case r == '•':
			out = append(out, 0x95)
		case r == '—':
			out = append(out, 0x97)
		case r >= 0x20 && r <= 0x7E:
			out = append(out, byte(r))
		default:
			out = append(out, '?')
		}
	}
	return string(out)
}

func deflate(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, fmt.Errorf("compressing stream: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compressing stream: %w", err)
	}
	return buf.Bytes(), nil
}

// deflateRGB strips the alpha channel and compresses raw RGB rows.
func deflateRGB(img *image.RGBA) ([]byte, error) {
	bounds := img.Bounds()
	raw := make([]byte, 0, bounds.Dx()*bounds.Dy()*3)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := img.Pix[(y-bounds.Min.Y)*img.Stride : (y-bounds.Min.Y)*img.Stride+bounds.Dx()*4]
		for x := 0; x < bounds.Dx(); x++ {
			raw = append(raw, row[x*4], row[x*4+1], row[x*4+2])
		}
	}
	return deflate(raw)
}
