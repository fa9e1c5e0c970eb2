package layout

import (
	"math"
	"reflect"
	"testing"

	"github.com/menuforge/menuforge/menu"
)

func TestStandardizeDimensionsParity(t *testing.T) {
	l := menu.DefaultPrintLayout()
	d := StandardizeDimensions(&l)

	for i, pair := range d.FontSizePairs() {
		cssPx, pdfPt := pair[0], pair[1]
		if pdfPt <= 0 {
			t.Fatalf("pair %d: pdf size must be positive, got %g", i, pdfPt)
		}
		if diff := math.Abs(cssPx/PxPerPt - pdfPt); diff > 1e-9 {
			t.Fatalf("pair %d: css/1.333 != pdf: css=%g pdf=%g diff=%g", i, cssPx, pdfPt, diff)
		}
	}
}

func TestStandardizeDimensionsDefaults(t *testing.T) {
	var l menu.PrintLayout // everything unset
	d := StandardizeDimensions(&l)

	if d.PDF.Category != menu.DefaultCategoryFontSize {
		t.Fatalf("empty layout should take the default category size %g, got %g",
			menu.DefaultCategoryFontSize, d.PDF.Category)
	}
	if d.PDFContentMargins.Top <= 0 || d.PDFContentMargins.Left <= 0 {
		t.Fatalf("empty layout should take default margins, got %+v", d.PDFContentMargins)
	}
	for i, pair := range d.FontSizePairs() {
		if pair[1] <= 0 {
			t.Fatalf("pair %d: no defaulted size may be zero", i)
		}
	}
	if d.Icons.NotePx != d.Icons.NoteMm*PxPerMm {
		t.Fatalf("icon px/mm views diverge: %g != %g*%g", d.Icons.NotePx, d.Icons.NoteMm, PxPerMm)
	}
}

func TestStandardizeDimensionsDoesNotMutateInput(t *testing.T) {
	var l menu.PrintLayout
	before := l
	StandardizeDimensions(&l)
	if !reflect.DeepEqual(l, before) {
		t.Fatal("StandardizeDimensions mutated its input")
	}
}

func TestStandardizeDimensionsMarginViews(t *testing.T) {
	l := menu.DefaultPrintLayout()
	l.Page.ContentMargins = menu.Margins{Top: 10, Right: 12, Bottom: 14, Left: 16}
	d := StandardizeDimensions(&l)

	if d.PDFContentMargins != l.Page.ContentMargins {
		t.Fatalf("pdf margins should pass through in mm: %+v", d.PDFContentMargins)
	}
	if math.Abs(d.CSSContentMargins.Top-10*PxPerMm) > 1e-9 {
		t.Fatalf("css top margin expected %g, got %g", 10*PxPerMm, d.CSSContentMargins.Top)
	}
}

func TestContentPageMarginsOddEven(t *testing.T) {
	l := menu.DefaultPrintLayout()
	l.Page.UseDistinctMarginsForPages = true
	l.Page.OddMargins = menu.Margins{Top: 20, Right: 10, Bottom: 20, Left: 25}
	l.Page.EvenMargins = menu.Margins{Top: 20, Right: 25, Bottom: 20, Left: 10}

	if got := ContentPageMargins(&l, 1); got != l.Page.OddMargins {
		t.Fatalf("page 1 should use odd margins, got %+v", got)
	}
	if got := ContentPageMargins(&l, 2); got != l.Page.EvenMargins {
		t.Fatalf("page 2 should use even margins, got %+v", got)
	}
	if got := ContentPageMargins(&l, 3); got != l.Page.OddMargins {
		t.Fatalf("page 3 should use odd margins, got %+v", got)
	}

	l.Page.UseDistinctMarginsForPages = false
	if got := ContentPageMargins(&l, 2); got != l.Page.ContentMargins {
		t.Fatalf("without the distinct flag every page uses content margins, got %+v", got)
	}
}

func TestAllergensPageMarginsOddEven(t *testing.T) {
	l := menu.DefaultPrintLayout()
	l.Page.UseDistinctMarginsForAllergensPages = true
	l.Page.OddAllergensMargins = menu.Margins{Top: 15, Right: 10, Bottom: 15, Left: 20}
	l.Page.EvenAllergensMargins = menu.Margins{Top: 15, Right: 20, Bottom: 15, Left: 10}

	if got := AllergensPageMargins(&l, 1); got != l.Page.OddAllergensMargins {
		t.Fatalf("allergens page 1 should use odd margins, got %+v", got)
	}
	if got := AllergensPageMargins(&l, 2); got != l.Page.EvenAllergensMargins {
		t.Fatalf("allergens page 2 should use even margins, got %+v", got)
	}
}
