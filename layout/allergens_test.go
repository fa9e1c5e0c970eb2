package layout

import (
	"fmt"
	"strings"
	"testing"

	"github.com/menuforge/menuforge/menu"
)

// fixedLegend reports constant legend block heights in mm.
type fixedLegend struct {
	title    float64
	header   float64
	allergen float64
	feature  float64
}

func (f fixedLegend) TitleBlock(float64) float64                   { return f.title }
func (f fixedLegend) FeaturesHeader(float64) float64               { return f.header }
func (f fixedLegend) Allergen(menu.Allergen, float64) float64      { return f.allergen }
func (f fixedLegend) Feature(menu.ProductFeature, float64) float64 { return f.feature }

func makeAllergens(n int) []menu.Allergen {
	out := make([]menu.Allergen, n)
	for i := range out {
		out[i] = menu.Allergen{ID: fmt.Sprintf("a%d", i+1), Number: i + 1, Title: fmt.Sprintf("Allergen %d", i+1)}
	}
	return out
}

func makeFeatures(n int) []menu.ProductFeature {
	out := make([]menu.ProductFeature, n)
	for i := range out {
		out[i] = menu.ProductFeature{ID: fmt.Sprintf("f%d", i+1), Title: fmt.Sprintf("Feature %d", i+1)}
	}
	return out
}

func TestPaginateAllergensEmpty(t *testing.T) {
	pages := PaginateAllergens(AllergensInput{
		Layout: testLayout(),
		Legend: fixedLegend{title: 20, allergen: 10, feature: 10},
	})
	if pages != nil {
		t.Fatalf("no legend content must yield nil, got %d pages", len(pages))
	}
}

func TestPaginateAllergensTitleOnFirstPageOnly(t *testing.T) {
	// usable = 297 - 40 = 257mm; title 20 + 12 allergens of 20mm overflow
	// onto a second page.
	pages := PaginateAllergens(AllergensInput{
		Allergens: makeAllergens(12),
		Layout:    testLayout(),
		Legend:    fixedLegend{title: 20, allergen: 20},
	})
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}
	if !pages[0].ShowTitleAndDescription {
		t.Fatal("first page must carry the title block")
	}
	if pages[1].ShowTitleAndDescription {
		t.Fatal("continuation page must not repeat the title block")
	}
	total := 0
	for i, pg := range pages {
		if pg.PageNumber != i+1 {
			t.Fatalf("page %d numbered %d", i, pg.PageNumber)
		}
		total += len(pg.Allergens)
	}
	if total != 12 {
		t.Fatalf("expected all 12 allergens placed, got %d", total)
	}
}

func TestPaginateAllergensEntriesAtomic(t *testing.T) {
	pages := PaginateAllergens(AllergensInput{
		Allergens: makeAllergens(12),
		Layout:    testLayout(),
		Legend:    fixedLegend{title: 20, allergen: 20},
	})
	// 20 + 11×20 = 240 fits; the twelfth would reach 260 > 257.
	if got := len(pages[0].Allergens); got != 11 {
		t.Fatalf("expected 11 allergens on page one, got %d", got)
	}
	if got := len(pages[1].Allergens); got != 1 {
		t.Fatalf("expected the overflowing allergen whole on page two, got %d", got)
	}
	if pages[1].Allergens[0].Number != 12 {
		t.Fatalf("overflow carried allergen %d, want 12", pages[1].Allergens[0].Number)
	}
}

func TestPaginateAllergensFeaturesFlag(t *testing.T) {
	pages := PaginateAllergens(AllergensInput{
		Allergens: makeAllergens(11),
		Features:  makeFeatures(3),
		Layout:    testLayout(),
		Legend:    fixedLegend{title: 20, header: 15, allergen: 20, feature: 20},
	})
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}
	if pages[0].HasProductFeatures {
		t.Fatal("a page with allergens must not be flagged features-only")
	}
	if !pages[1].HasProductFeatures {
		t.Fatal("a page holding only features must be flagged")
	}
	if len(pages[1].Features) != 3 || len(pages[1].Allergens) != 0 {
		t.Fatalf("features must land together on page two, got %+v", pages[1])
	}
}

func TestPaginateAllergensHeaderMovesWithFirstFeature(t *testing.T) {
	// 20 + 11×20 = 240mm used on page one. Charging the 7mm header there
	// would strand it: the first 21mm feature already overflows, and the
	// header drawn with it on page two would push the total drawn height
	// to 259mm against 257 usable. The header is charged together with
	// the first feature instead, so page two holds header + 11 features
	// (238mm) and the twelfth moves to page three.
	pages := PaginateAllergens(AllergensInput{
		Allergens: makeAllergens(11),
		Features:  makeFeatures(12),
		Layout:    testLayout(),
		Legend:    fixedLegend{title: 20, header: 7, allergen: 20, feature: 21},
	})
	if len(pages) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(pages))
	}
	if got := len(pages[1].Features); got != 11 {
		t.Fatalf("expected 11 features on page two, got %d", got)
	}
	if got := len(pages[2].Features); got != 1 {
		t.Fatalf("expected the overflowing feature on page three, got %d", got)
	}
}

func TestLegendTitleBlockTracksAuthoredText(t *testing.T) {
	meas := newTestMeasure(8)
	widthPx := (PageWidthMm - 30) * PxPerMm

	short := testLayout()
	short.Allergens.DescriptionText = "Breve"
	long := testLayout()
	long.Allergens.DescriptionText = strings.Repeat("sostanze o prodotti che provocano allergie ", 100)

	hShort := NewLegendMeasurer(short, meas).TitleBlock(widthPx)
	hLong := NewLegendMeasurer(long, meas).TitleBlock(widthPx)
	if hLong <= hShort {
		t.Fatalf("title block reserved %gmm for the long description and %gmm for the short one; the reservation must follow the wrapped text", hLong, hShort)
	}

	hidden := testLayout()
	hidden.Allergens.Title.Visible = false
	hidden.Allergens.Description.Visible = false
	if got := NewLegendMeasurer(hidden, meas).TitleBlock(widthPx); got != 0 {
		t.Fatalf("hidden title and description must reserve nothing, got %gmm", got)
	}
}

func TestPaginateAllergensFeaturesOnly(t *testing.T) {
	pages := PaginateAllergens(AllergensInput{
		Features: makeFeatures(2),
		Layout:   testLayout(),
		Legend:   fixedLegend{title: 20, header: 15, feature: 10},
	})
	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}
	pg := pages[0]
	if !pg.ShowTitleAndDescription {
		t.Fatal("first page still carries the title block")
	}
	if !pg.HasProductFeatures {
		t.Fatal("a features-only legend page must be flagged")
	}
	if len(pg.Features) != 2 {
		t.Fatalf("expected both features placed, got %d", len(pg.Features))
	}
}
