package layout

import (
	"math"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/charmbracelet/log"
)

// defaultLineHeight is the multiplier applied when a caller passes none.
const defaultLineHeight = 1.2

// FontSpec identifies a font face for measurement. SizePt is in points.
type FontSpec struct {
	Family string
	SizePt float64
	Bold   bool
	Italic bool
}

// Measurer reports the rendered width of a string in CSS pixels for one
// concrete font face.
type Measurer interface {
	TextWidth(s string) float64
}

// FaceSource resolves a FontSpec to a Measurer. The canvas-backed registry
// in the fonts package is the production implementation; tests substitute
// fixed-width stubs.
type FaceSource interface {
	Face(spec FontSpec) (Measurer, error)
}

// TextMeasure is the measurement service. A face that fails to resolve
// degrades to a crude per-rune estimate instead of failing the measurement;
// pagination must never crash on a missing font.
type TextMeasure struct {
	faces FaceSource
	log   *log.Logger

	warnOnce sync.Once
}

// NewTextMeasure wires a measurement service over a face source.
func NewTextMeasure(faces FaceSource, logger *log.Logger) *TextMeasure {
	if logger == nil {
		logger = log.Default()
	}
	return &TextMeasure{faces: faces, log: logger}
}

// LinePx is the height of a single text line in pixels:
// ceil(fontSizePt × 4/3) × lineHeight.
func LinePx(sizePt, lineHeight float64) float64 {
	if lineHeight <= 0 {
		lineHeight = defaultLineHeight
	}
	return math.Ceil(sizePt*PxPerPt) * lineHeight
}

// MeasureTextHeight returns the wrapped height of text in pixels at the
// given maximum width. Empty or whitespace-only text measures zero. The
// same wrap rule drives the PDF renderer's line splitting, so line counts
// agree between preview and PDF for identical input.
func (t *TextMeasure) MeasureTextHeight(text string, maxWidthPx float64, spec FontSpec, lineHeight float64) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	m := t.measurer(spec)
	lines := WrapLines(m, text, maxWidthPx)
	return float64(len(lines)) * LinePx(spec.SizePt, lineHeight)
}

// WrapText exposes the wrapped lines for a spec, for renderers that draw
// line by line with the same breaks the planner measured.
func (t *TextMeasure) WrapText(text string, maxWidthPx float64, spec FontSpec) []string {
	return WrapLines(t.measurer(spec), text, maxWidthPx)
}

func (t *TextMeasure) measurer(spec FontSpec) Measurer {
	if t.faces != nil {
		m, err := t.faces.Face(spec)
		if err == nil {
			return m
		}
		t.warnOnce.Do(func() {
			t.log.Warn("font face unavailable, falling back to heuristic widths", "family", spec.Family, "err", err)
		})
	}
	return heuristicMeasurer{sizePx: PxFromPt(spec.SizePt)}
}

// WrapLines performs the shared greedy word wrap: words accumulate into a
// line while the candidate line stays within maxWidth; the overflowing word
// starts the next line. A single word wider than maxWidth is placed alone
// on its own line, unsplit. Explicit newlines force breaks.
func WrapLines(m Measurer, text string, maxWidthPx float64) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if maxWidthPx <= 0 {
		maxWidthPx = math.MaxFloat64
	}

	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			continue
		}
		current := words[0]
		for _, word := range words[1:] {
			candidate := current + " " + word
			if m.TextWidth(candidate) <= maxWidthPx {
				current = candidate
				continue
			}
			lines = append(lines, current)
			current = word
		}
		lines = append(lines, current)
	}
	return lines
}

// heuristicMeasurer approximates widths when no real face is available:
// roughly half an em per rune. Keeps pagination running with degraded
// accuracy rather than aborting.
type heuristicMeasurer struct {
	sizePx float64
}

func (h heuristicMeasurer) TextWidth(s string) float64 {
	return 0.5 * h.sizePx * float64(utf8.RuneCountInString(s))
}
