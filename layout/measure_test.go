package layout

import (
	"errors"
	"math"
	"strings"
	"testing"
	"unicode/utf8"
)

// fixedWidthFace gives every rune the same width so wrap behavior is exact.
type fixedWidthFace struct {
	perRune float64
}

func (f fixedWidthFace) TextWidth(s string) float64 {
	return f.perRune * float64(utf8.RuneCountInString(s))
}

type stubFaces struct {
	perRune float64
	err     error
}

func (s stubFaces) Face(spec FontSpec) (Measurer, error) {
	if s.err != nil {
		return nil, s.err
	}
	return fixedWidthFace{perRune: s.perRune}, nil
}

func newTestMeasure(perRune float64) *TextMeasure {
	return NewTextMeasure(stubFaces{perRune: perRune}, nil)
}

func TestLinePx(t *testing.T) {
	// ceil(12 × 4/3) × 1.2 = 16 × 1.2
	if got := LinePx(12, 0); math.Abs(got-19.2) > 1e-9 {
		t.Fatalf("LinePx(12, default) expected 19.2, got %g", got)
	}
	if got := LinePx(12, 1.0); math.Abs(got-16) > 1e-9 {
		t.Fatalf("LinePx(12, 1.0) expected 16, got %g", got)
	}
	// 10pt → 13.33px, ceiled to 14
	if got := LinePx(10, 1.0); math.Abs(got-14) > 1e-9 {
		t.Fatalf("LinePx(10, 1.0) expected 14, got %g", got)
	}
}

func TestMeasureTextHeightEmpty(t *testing.T) {
	m := newTestMeasure(10)
	spec := FontSpec{Family: "Test", SizePt: 12}
	for _, text := range []string{"", "   ", "\n\t "} {
		if got := m.MeasureTextHeight(text, 500, spec, 0); got != 0 {
			t.Fatalf("whitespace text %q must measure 0, got %g", text, got)
		}
	}
}

func TestMeasureTextHeightWrapCount(t *testing.T) {
	m := newTestMeasure(10) // every rune is 10px
	spec := FontSpec{Family: "Test", SizePt: 12}
	line := LinePx(12, 0)

	// "aaaa bbbb" is 90px: fits one 100px line
	if got := m.MeasureTextHeight("aaaa bbbb", 100, spec, 0); math.Abs(got-line) > 1e-9 {
		t.Fatalf("expected one line (%g), got %g", line, got)
	}
	// at 80px the words no longer join
	if got := m.MeasureTextHeight("aaaa bbbb", 80, spec, 0); math.Abs(got-2*line) > 1e-9 {
		t.Fatalf("expected two lines (%g), got %g", 2*line, got)
	}
}

func TestMeasureTextHeightMonotonicInLength(t *testing.T) {
	m := newTestMeasure(10)
	spec := FontSpec{Family: "Test", SizePt: 12}
	words := []string{"alpha", "beta", "gamma", "delta", "epsilon", "zeta"}

	prev := 0.0
	for i := 1; i <= len(words); i++ {
		text := strings.Join(words[:i], " ")
		got := m.MeasureTextHeight(text, 120, spec, 0)
		if got < prev {
			t.Fatalf("height decreased when text grew: %q → %g after %g", text, got, prev)
		}
		prev = got
	}
}

func TestMeasureTextHeightMonotonicInWidth(t *testing.T) {
	m := newTestMeasure(10)
	spec := FontSpec{Family: "Test", SizePt: 12}
	text := "one two three four five six seven eight"

	prev := math.Inf(1)
	for _, width := range []float64{60, 100, 150, 250, 500} {
		got := m.MeasureTextHeight(text, width, spec, 0)
		if got > prev {
			t.Fatalf("height increased when width grew to %g: %g after %g", width, got, prev)
		}
		prev = got
	}
}

func TestWrapLinesOverwideWord(t *testing.T) {
	m := fixedWidthFace{perRune: 10}
	lines := WrapLines(m, "hi incomprehensibilities ok", 100)
	want := []string{"hi", "incomprehensibilities", "ok"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %v", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestWrapLinesExplicitNewline(t *testing.T) {
	m := fixedWidthFace{perRune: 1}
	lines := WrapLines(m, "a b\nc d", 1000)
	if len(lines) != 2 || lines[0] != "a b" || lines[1] != "c d" {
		t.Fatalf("explicit newline must force a break, got %v", lines)
	}
}

func TestMeasureFallsBackToHeuristic(t *testing.T) {
	m := NewTextMeasure(stubFaces{err: errors.New("font missing")}, nil)
	spec := FontSpec{Family: "Missing", SizePt: 12}

	got := m.MeasureTextHeight("hello world", 10_000, spec, 0)
	if got <= 0 {
		t.Fatalf("heuristic fallback must still measure, got %g", got)
	}
	if got != LinePx(12, 0) {
		t.Fatalf("short text should fit one heuristic line, got %g", got)
	}
}
