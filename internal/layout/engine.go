package layout

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"time"

	xdraw "golang.org/x/image/draw"

	"github.com/mrsinham/rxforge/internal/prescription"
)

// HeaderStyle selects how the top of the first page is rendered.
type HeaderStyle int

const (
	// HeaderStyleImage renders the clinic letterhead image, full content
	// width, aspect ratio preserved. Falls back to HeaderStyleText when the
	// draft carries no decodable image.
	HeaderStyleImage HeaderStyle = iota
	// HeaderStyleText renders a centered text letterhead from the clinic
	// fields.
	HeaderStyleText
	// HeaderStyleNone suppresses the letterhead entirely.
	HeaderStyleNone
)

// Options parameterizes the engine. The zero value is not useful; start from
// DefaultOptions.
type Options struct {
	PageWidth  float64 // mm
	PageHeight float64 // mm
	Margin     float64 // mm, all four sides

	HeaderStyle HeaderStyle

	// InlineMedications renders medications as numbered lines instead of the
	// default table.
	InlineMedications bool

	// Watermark stamps a large "PREVIEW" across every page, underneath the
	// content.
	Watermark bool
}

// DefaultOptions returns A4 portrait with 15mm margins, image letterhead and
// the medication table.
func DefaultOptions() Options {
	return Options{
		PageWidth:   210,
		PageHeight:  297,
		Margin:      15,
		HeaderStyle: HeaderStyleImage,
	}
}

const (
	lineHeight   = 5.0  // mm per 10pt body line
	sectionGap   = 5.0  // mm between sections
	bottomZone   = 20.0 // mm reserved at the page bottom (margin + footer)
	baselineDrop = 4.0  // mm from a line's top edge to its baseline
)

// Engine lays out prescription drafts. It is stateless across Render calls
// and safe to reuse.
type Engine struct {
	opts Options
}

// NewEngine returns an engine with the given options.
func NewEngine(opts Options) *Engine {
	if opts.PageWidth <= 0 || opts.PageHeight <= 0 {
		def := DefaultOptions()
		opts.PageWidth = def.PageWidth
		opts.PageHeight = def.PageHeight
	}
	return &Engine{opts: opts}
}

// Render lays out the draft into a paginated document. It is a pure function
// of (draft, options): identical inputs produce identical documents. Layout
// itself cannot fail; a missing or undecodable header image is skipped.
func (e *Engine) Render(draft prescription.Draft) *Document {
	st := &layoutState{
		opts: e.opts,
		doc: &Document{
			PageWidth:  e.opts.PageWidth,
			PageHeight: e.opts.PageHeight,
		},
		cursorY: e.opts.Margin,
	}

	e.renderHeader(st, draft)
	e.renderDoctorBlock(st, draft)
	e.renderPatientBlock(st, draft)
	e.renderSymptomsDiagnosis(st, draft)
	e.renderMedications(st, draft)
	e.renderBulletSection(st, "Advice", draft.Advice)
	if len(draft.LabTests) > 0 {
		e.renderBulletSection(st, "Laboratory Tests", draft.LabTests)
	}
	if draft.FollowUpDate != nil {
		e.renderFollowUp(st, *draft.FollowUpDate)
	}
	if draft.Notes != "" {
		e.renderNotes(st, draft.Notes)
	}
	e.renderSignature(st, draft)

	st.flushPage()
	e.finishPages(st.doc)

	return st.doc
}

// layoutState tracks the vertical cursor and accumulates finished pages.
// It lives for a single Render call.
type layoutState struct {
	opts    Options
	doc     *Document
	page    Page
	cursorY float64
}

func (st *layoutState) contentWidth() float64 {
	return st.opts.PageWidth - 2*st.opts.Margin
}

func (st *layoutState) limit() float64 {
	return st.opts.PageHeight - bottomZone
}

// ensure starts a new page if height mm of content would cross into the
// bottom zone.
func (st *layoutState) ensure(height float64) {
	if st.cursorY+height > st.limit() {
		st.flushPage()
		st.cursorY = st.opts.Margin
	}
}

func (st *layoutState) flushPage() {
	st.doc.Pages = append(st.doc.Pages, st.page)
	st.page = Page{}
}

func (st *layoutState) add(in Instruction) {
	st.page.Instructions = append(st.page.Instructions, in)
}

func (st *layoutState) text(x, y float64, s string, font Font, size float64, c Color) {
	st.add(TextRun{X: x, Y: y, Text: s, Font: font, Size: size, Color: c})
}

// textRight draws s with its right edge at x.
func (st *layoutState) textRight(x, y float64, s string, font Font, size float64, c Color) {
	st.text(x-TextWidth(s, font, size), y, s, font, size, c)
}

// textCentered draws s centered on the page.
func (st *layoutState) textCentered(y float64, s string, font Font, size float64, c Color) {
	st.text(st.opts.PageWidth/2-TextWidth(s, font, size)/2, y, s, font, size, c)
}

// sectionTitle emits a bold 11pt section heading and advances the cursor,
// guaranteeing at least one body line fits below it on the same page.
func (st *layoutState) sectionTitle(title string) {
	st.ensure(10 + lineHeight)
	st.text(st.opts.Margin, st.cursorY+5, title, FontBold, 11, colorBlack)
	st.cursorY += 10
}

// bulletList emits a wrapped bulleted list at x, paginating per line, and
// returns nothing; the cursor advances by the consumed height.
func (st *layoutState) bulletList(items []string, x, maxWidth float64) {
	for _, item := range items {
		lines, indent := wrapBullet(item, FontRegular, 10, maxWidth)
		for i, line := range lines {
			st.ensure(lineHeight)
			lx := x
			if i > 0 {
				lx += indent
			}
			st.text(lx, st.cursorY+baselineDrop, line, FontRegular, 10, colorBlack)
			st.cursorY += lineHeight
		}
	}
}

func (e *Engine) renderHeader(st *layoutState, draft prescription.Draft) {
	style := e.opts.HeaderStyle
	if style == HeaderStyleNone {
		return
	}

	if style == HeaderStyleImage {
		if img, ok := decodeHeaderImage(draft.Doctor.Clinic.HeaderImage); ok {
			w := st.contentWidth()
			bounds := img.Bounds()
			h := w * float64(bounds.Dy()) / float64(bounds.Dx())
			st.add(ImageBox{X: e.opts.Margin, Y: st.cursorY, W: w, H: h, Image: img})
			st.cursorY += h + 10
			return
		}
		// No usable image; fall through to the text letterhead.
	}

	clinic := draft.Doctor.Clinic
	st.textCentered(st.cursorY+6, clinic.Name, FontBold, 14, colorBlack)
	st.textCentered(st.cursorY+12, clinic.Address, FontRegular, 9, colorGray)
	contact := "Phone: " + clinic.Phone
	if clinic.Email != "" {
		contact += "  |  Email: " + clinic.Email
	}
	st.textCentered(st.cursorY+17, contact, FontRegular, 9, colorGray)
	st.add(Rule{
		X1: e.opts.Margin, Y1: st.cursorY + 20,
		X2: e.opts.PageWidth - e.opts.Margin, Y2: st.cursorY + 20,
		Width: 0.4, Color: colorRuleGray,
	})
	st.cursorY += 25
}

func (e *Engine) renderDoctorBlock(st *layoutState, draft prescription.Draft) {
	doctor := draft.Doctor
	st.ensure(20)

	st.text(e.opts.Margin, st.cursorY+5, doctor.Name, FontBold, 12, colorBlack)
	st.text(e.opts.Margin, st.cursorY+10, doctor.Specialization, FontRegular, 10, colorBlack)
	st.text(e.opts.Margin, st.cursorY+14.5, "License No: "+doctor.LicenseNumber, FontRegular, 9, colorGray)

	// The text letterhead already shows the clinic; otherwise put it on the
	// right side of the doctor block.
	if e.opts.HeaderStyle != HeaderStyleText {
		right := e.opts.PageWidth - e.opts.Margin
		clinic := doctor.Clinic
		st.textRight(right, st.cursorY+5, clinic.Name, FontBold, 10, colorBlack)
		st.textRight(right, st.cursorY+10, clinic.Phone, FontRegular, 9, colorGray)
		if clinic.Email != "" {
			st.textRight(right, st.cursorY+14.5, clinic.Email, FontRegular, 9, colorGray)
		}
	}

	st.add(Rule{
		X1: e.opts.Margin, Y1: st.cursorY + 17,
		X2: e.opts.PageWidth - e.opts.Margin, Y2: st.cursorY + 17,
		Width: 0.2, Color: colorRuleGray,
	})
	st.cursorY += 17 + sectionGap
}

func (e *Engine) renderPatientBlock(st *layoutState, draft prescription.Draft) {
	const boxHeight = 25
	st.ensure(boxHeight + sectionGap)

	margin := e.opts.Margin
	y := st.cursorY
	right := e.opts.PageWidth - margin

	st.add(Rule{X1: margin, Y1: y, X2: right, Y2: y, Width: 0.2, Color: colorRuleGray})
	st.add(Rule{X1: margin, Y1: y + boxHeight, X2: right, Y2: y + boxHeight, Width: 0.2, Color: colorRuleGray})
	st.add(Rule{X1: margin, Y1: y, X2: margin, Y2: y + boxHeight, Width: 0.2, Color: colorRuleGray})
	st.add(Rule{X1: right, Y1: y, X2: right, Y2: y + boxHeight, Width: 0.2, Color: colorRuleGray})

	patient := draft.Patient
	st.text(margin+5, y+8, "Patient Information", FontBold, 11, colorBlack)
	st.text(margin+5, y+15, "Name: "+patient.Name, FontRegular, 10, colorBlack)
	ageGender := fmt.Sprintf("Age/Gender: %d years / %s", patient.Age, patient.Gender.Display())
	st.text(margin+5, y+20, ageGender, FontRegular, 10, colorBlack)
	if patient.Contact != "" {
		st.textRight(right-5, y+15, "Contact: "+patient.Contact, FontRegular, 10, colorBlack)
	}
	st.textRight(right-5, y+20, "Date: "+prescription.FormatDate(draft.VisitDate), FontRegular, 10, colorBlack)

	st.cursorY += boxHeight + sectionGap
}

func (e *Engine) renderSymptomsDiagnosis(st *layoutState, draft prescription.Draft) {
	margin := e.opts.Margin
	colWidth := (st.contentWidth() - 10) / 2
	textWidth := colWidth - 10

	leftLines := bulletLines(draft.Symptoms, textWidth)
	rightLines := bulletLines(draft.Diagnosis, textWidth)

	leftHeight := 15 + float64(countLines(leftLines))*lineHeight
	rightHeight := 15 + float64(countLines(rightLines))*lineHeight
	total := maxf(leftHeight, rightHeight)

	// Both columns must start at the same cursor; the section moves to a new
	// page as a unit.
	st.ensure(total + sectionGap)
	y := st.cursorY

	e.renderColumn(st, "Symptoms", leftLines, margin, y, colWidth)
	e.renderColumn(st, "Diagnosis", rightLines, margin+colWidth+10, y, colWidth)

	st.cursorY += total + sectionGap
}

// renderColumn emits one header-and-bullets column of the two-column section.
func (e *Engine) renderColumn(st *layoutState, title string, items [][]string, x, y, colWidth float64) {
	st.add(FilledRect{X: x, Y: y, W: colWidth, H: 8, Color: colorHeaderBG})
	st.text(x+5, y+6, title, FontBold, 11, colorBlack)

	lineY := y + 15
	for _, lines := range items {
		indent := TextWidth("• ", FontRegular, 10)
		for i, line := range lines {
			lx := x + 5
			if i > 0 {
				lx += indent
			}
			st.text(lx, lineY, line, FontRegular, 10, colorBlack)
			lineY += lineHeight
		}
	}
}

// bulletLines pre-wraps items for column layout; each element holds the
// wrapped lines of one item, prefix included on the first.
func bulletLines(items []string, maxWidth float64) [][]string {
	out := make([][]string, 0, len(items))
	for _, item := range items {
		lines, _ := wrapBullet(item, FontRegular, 10, maxWidth)
		out = append(out, lines)
	}
	return out
}

func countLines(items [][]string) int {
	n := 0
	for _, lines := range items {
		n += len(lines)
	}
	return n
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// Medication table column offsets from the left margin.
const (
	colName     = 5.0
	colDosage   = 75.0
	colFreq     = 115.0
	colDuration = 155.0
)

func (e *Engine) renderMedications(st *layoutState, draft prescription.Draft) {
	st.sectionTitle("Medications")

	if e.opts.InlineMedications {
		e.renderMedicationsInline(st, draft.Medications)
	} else {
		e.renderMedicationsTable(st, draft.Medications)
	}
	st.cursorY += sectionGap
}

func (e *Engine) renderMedicationsTable(st *layoutState, meds []prescription.MedicationEntry) {
	e.emitMedicationTableHead(st)

	for i, med := range meds {
		rowHeight := 10.0
		if med.Instructions != "" {
			rowHeight = 15
		}

		if st.cursorY+rowHeight > st.limit() {
			st.flushPage()
			st.cursorY = e.opts.Margin
			e.emitMedicationTableHead(st)
		}

		margin := e.opts.Margin
		y := st.cursorY
		if i%2 == 0 {
			st.add(FilledRect{X: margin, Y: y, W: st.contentWidth(), H: rowHeight, Color: colorTableAlt})
		}

		st.text(margin+colName, y+6, med.Name, FontRegular, 10, colorBlack)
		st.text(margin+colDosage, y+6, med.Dosage, FontRegular, 10, colorBlack)
		st.text(margin+colFreq, y+6, med.Frequency, FontRegular, 10, colorBlack)
		st.text(margin+colDuration, y+6, med.Duration, FontRegular, 10, colorBlack)

		if med.Instructions != "" {
			note := "Route: " + med.Route + "  •  " + med.Instructions
			st.text(margin+colName, y+11.5, note, FontRegular, 8.5, colorGray)
		}

		st.cursorY += rowHeight
	}
}

func (e *Engine) emitMedicationTableHead(st *layoutState) {
	st.ensure(10 + lineHeight)

	margin := e.opts.Margin
	y := st.cursorY
	st.add(FilledRect{X: margin, Y: y, W: st.contentWidth(), H: 10, Color: colorTableHead})
	st.text(margin+colName, y+6, "Medicine Name", FontBold, 10, colorBlack)
	st.text(margin+colDosage, y+6, "Dosage", FontBold, 10, colorBlack)
	st.text(margin+colFreq, y+6, "Frequency", FontBold, 10, colorBlack)
	st.text(margin+colDuration, y+6, "Duration", FontBold, 10, colorBlack)
	st.cursorY += 10
}

func (e *Engine) renderMedicationsInline(st *layoutState, meds []prescription.MedicationEntry) {
	margin := e.opts.Margin
	width := st.contentWidth() - 10

	for i, med := range meds {
		line := fmt.Sprintf("%d. %s %s — %s, %s, %s",
			i+1, med.Name, med.Dosage, med.Frequency, med.Route, med.Duration)
		for _, wrapped := range Wrap(line, FontRegular, 10, width) {
			st.ensure(lineHeight)
			st.text(margin+5, st.cursorY+baselineDrop, wrapped, FontRegular, 10, colorBlack)
			st.cursorY += lineHeight
		}
		if med.Instructions != "" {
			for _, wrapped := range Wrap(med.Instructions, FontRegular, 8.5, width-10) {
				st.ensure(lineHeight)
				st.text(margin+10, st.cursorY+baselineDrop, wrapped, FontRegular, 8.5, colorGray)
				st.cursorY += lineHeight
			}
		}
	}
}

func (e *Engine) renderBulletSection(st *layoutState, title string, items []string) {
	st.sectionTitle(title)
	st.bulletList(items, e.opts.Margin+5, st.contentWidth()-10)
	st.cursorY += sectionGap
}

func (e *Engine) renderFollowUp(st *layoutState, date time.Time) {
	st.sectionTitle("Follow-up")
	st.ensure(lineHeight)
	st.text(e.opts.Margin+5, st.cursorY+baselineDrop,
		"Date: "+prescription.FormatDate(date), FontRegular, 10, colorBlack)
	st.cursorY += lineHeight + sectionGap
}

func (e *Engine) renderNotes(st *layoutState, notes string) {
	st.sectionTitle("Notes")
	for _, line := range Wrap(notes, FontRegular, 10, st.contentWidth()-10) {
		st.ensure(lineHeight)
		st.text(e.opts.Margin+5, st.cursorY+baselineDrop, line, FontRegular, 10, colorBlack)
		st.cursorY += lineHeight
	}
	st.cursorY += sectionGap
}

func (e *Engine) renderSignature(st *layoutState, draft prescription.Draft) {
	const sigHeight = 18
	// The signature flows to a new page rather than being squeezed.
	st.ensure(sigHeight)

	margin := e.opts.Margin
	right := e.opts.PageWidth - margin
	y := st.cursorY + 3

	st.add(Rule{X1: margin, Y1: y, X2: right, Y2: y, Width: 0.2, Color: colorRuleGray})
	st.text(margin+5, y+10, "Doctor's Signature", FontRegular, 10, colorBlack)
	st.textRight(right-5, y+10, "Date: "+prescription.FormatDate(draft.VisitDate), FontRegular, 10, colorBlack)

	st.cursorY += sigHeight
}

// finishPages runs the post-layout pass: the per-page "Page i of N" footer
// (N is only known once layout is complete) and the optional watermark,
// prepended so it paints underneath the content.
func (e *Engine) finishPages(doc *Document) {
	total := len(doc.Pages)
	for i := range doc.Pages {
		page := &doc.Pages[i]

		if e.opts.Watermark {
			w := TextWidth("PREVIEW", FontBold, 52)
			wm := TextRun{
				X:     e.opts.PageWidth/2 - w/2,
				Y:     e.opts.PageHeight / 2,
				Text:  "PREVIEW",
				Font:  FontBold,
				Size:  52,
				Color: colorWatermark,
			}
			page.Instructions = append([]Instruction{wm}, page.Instructions...)
		}

		footer := fmt.Sprintf("Page %d of %d", i+1, total)
		x := e.opts.PageWidth - e.opts.Margin - TextWidth(footer, FontRegular, 8)
		page.Instructions = append(page.Instructions, TextRun{
			X: x, Y: e.opts.PageHeight - 5,
			Text: footer, Font: FontRegular, Size: 8, Color: colorGray,
		})
	}
}

// maxHeaderImagePixels caps the stored letterhead resolution; anything wider
// is resampled down before embedding.
const maxHeaderImagePixels = 1600

// decodeHeaderImage decodes raw letterhead bytes into RGBA, downscaling
// oversized images. A nil slice or a decode failure returns ok=false; the
// caller skips the section.
func decodeHeaderImage(data []byte) (*image.RGBA, bool) {
	if len(data) == 0 {
		return nil, false
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, false
	}

	bounds := src.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, false
	}

	width, height := bounds.Dx(), bounds.Dy()
	if width > maxHeaderImagePixels {
		height = height * maxHeaderImagePixels / width
		if height < 1 {
			height = 1
		}
		width = maxHeaderImagePixels
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), src, bounds, xdraw.Src, nil)
	return dst, true
}
