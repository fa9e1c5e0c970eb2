package layout

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/menuforge/menuforge/menu"
)

// fixedBlocks reports constant block heights in mm, with optional
// per-product overrides keyed by title.
type fixedBlocks struct {
	header    float64
	product   float64
	reserve   float64
	overrides map[string]float64
}

func (f fixedBlocks) CategoryHeader(menu.Category, []menu.CategoryNote, float64) float64 {
	return f.header
}

func (f fixedBlocks) Product(p menu.Product, _ float64) float64 {
	if h, ok := f.overrides[p.Title]; ok {
		return h
	}
	return f.product
}

func (f fixedBlocks) ServiceReserve() float64 { return f.reserve }

func testLayout() *menu.PrintLayout {
	l := menu.DefaultPrintLayout()
	l.Spacing.BetweenCategories = 8
	l.Spacing.BetweenProducts = 4
	return &l
}

func makeProducts(category string, n int) []menu.Product {
	out := make([]menu.Product, n)
	for i := range out {
		out[i] = menu.Product{
			ID:         fmt.Sprintf("%s-p%d", category, i+1),
			CategoryID: category,
			Title:      fmt.Sprintf("%s product %d", category, i+1),
			IsActive:   true,
		}
	}
	return out
}

func makeInput(blocks BlockMeasurer, cats ...menu.Category) PaginateInput {
	byCat := make(map[string][]menu.Product)
	for _, c := range cats {
		byCat[c.ID] = makeProducts(c.ID, 10)
	}
	return PaginateInput{
		Categories:         cats,
		ProductsByCategory: byCat,
		Layout:             testLayout(),
		Blocks:             blocks,
	}
}

func collectProductIDs(pages []PageContent) []string {
	var ids []string
	for _, pg := range pages {
		for _, sl := range pg.Categories {
			for _, pr := range sl.Products {
				ids = append(ids, pr.ID)
			}
		}
	}
	return ids
}

func TestPaginateSinglePageFit(t *testing.T) {
	blocks := fixedBlocks{header: 10, product: 10, reserve: 7}
	cat := menu.Category{ID: "antipasti", Title: "Antipasti", IsActive: true}
	in := makeInput(blocks, cat)
	in.ProductsByCategory["antipasti"] = makeProducts("antipasti", 5)

	pages := Paginate(in)
	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}
	pg := pages[0]
	if pg.PageNumber != 1 {
		t.Fatalf("page number = %d, want 1", pg.PageNumber)
	}
	if len(pg.Categories) != 1 || pg.Categories[0].IsRepeatedTitle {
		t.Fatalf("expected a single fresh category slice, got %+v", pg.Categories)
	}
	if got := len(pg.Categories[0].Products); got != 5 {
		t.Fatalf("expected 5 products on the page, got %d", got)
	}
}

func TestPaginateCategorySplitsWithRepeatedTitle(t *testing.T) {
	// usable = 297 - 20 - 20 - 7 = 250mm; header 10 + five 40mm products
	// with 4mm gaps fill 226mm, the sixth forces page two.
	blocks := fixedBlocks{header: 10, product: 40, reserve: 7}
	cat := menu.Category{ID: "primi", Title: "Primi", IsActive: true}

	pages := Paginate(makeInput(blocks, cat))
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}
	first, second := pages[0].Categories[0], pages[1].Categories[0]
	if first.IsRepeatedTitle {
		t.Fatal("first slice must not be marked as a repeated title")
	}
	if !second.IsRepeatedTitle {
		t.Fatal("continuation slice must be marked as a repeated title")
	}
	if len(first.Products) != 5 || len(second.Products) != 5 {
		t.Fatalf("expected a 5/5 split, got %d/%d", len(first.Products), len(second.Products))
	}
	if second.Category.ID != cat.ID {
		t.Fatalf("continuation carries category %q, want %q", second.Category.ID, cat.ID)
	}
}

func TestPaginateOversizedProductAlone(t *testing.T) {
	blocks := fixedBlocks{
		header:    10,
		product:   20,
		reserve:   7,
		overrides: map[string]float64{"mare huge": 400},
	}
	cat := menu.Category{ID: "mare", Title: "Mare", IsActive: true}
	in := makeInput(blocks, cat)
	in.ProductsByCategory["mare"] = []menu.Product{
		{ID: "a", CategoryID: "mare", Title: "mare small", IsActive: true},
		{ID: "b", CategoryID: "mare", Title: "mare huge", IsActive: true},
		{ID: "c", CategoryID: "mare", Title: "mare tail", IsActive: true},
	}

	pages := Paginate(in)
	if len(pages) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(pages))
	}
	huge := pages[1].Categories[0]
	if !huge.IsRepeatedTitle || len(huge.Products) != 1 || huge.Products[0].ID != "b" {
		t.Fatalf("oversized product must land alone on a continuation page, got %+v", huge)
	}
	tail := pages[2].Categories[0]
	if len(tail.Products) != 1 || tail.Products[0].ID != "c" {
		t.Fatalf("following product must open the next page, got %+v", tail)
	}
	if got := collectProductIDs(pages); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("product order changed: %v", got)
	}
}

func TestPaginatePreservesOrderAndLosesNothing(t *testing.T) {
	blocks := fixedBlocks{header: 12, product: 31, reserve: 5}
	cats := []menu.Category{
		{ID: "c1", Title: "One", IsActive: true},
		{ID: "c2", Title: "Two", IsActive: true},
		{ID: "c3", Title: "Three", IsActive: true},
	}
	in := makeInput(blocks, cats...)

	pages := Paginate(in)
	var want []string
	for _, c := range cats {
		for _, p := range in.ProductsByCategory[c.ID] {
			want = append(want, p.ID)
		}
	}
	if got := collectProductIDs(pages); !reflect.DeepEqual(got, want) {
		t.Fatalf("flattened output differs from input\n got %v\nwant %v", got, want)
	}
	for i, pg := range pages {
		if pg.PageNumber != i+1 {
			t.Fatalf("page %d numbered %d", i, pg.PageNumber)
		}
		if len(pg.Categories) == 0 {
			t.Fatalf("page %d emitted with no content", pg.PageNumber)
		}
	}
}

func TestPaginateDeterministic(t *testing.T) {
	blocks := fixedBlocks{header: 15, product: 27, reserve: 6}
	in := makeInput(blocks,
		menu.Category{ID: "c1", Title: "One", IsActive: true},
		menu.Category{ID: "c2", Title: "Two", IsActive: true},
	)
	first := Paginate(in)
	second := Paginate(in)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("repeated pagination of equal input produced different pages")
	}
}

func TestPaginateSkipsInactive(t *testing.T) {
	blocks := fixedBlocks{header: 10, product: 10, reserve: 0}
	active := menu.Category{ID: "on", Title: "On", IsActive: true}
	inactive := menu.Category{ID: "off", Title: "Off", IsActive: false}
	in := makeInput(blocks, active, inactive)
	in.ProductsByCategory["on"] = []menu.Product{
		{ID: "keep", CategoryID: "on", Title: "keep", IsActive: true},
		{ID: "drop", CategoryID: "on", Title: "drop", IsActive: false},
	}

	pages := Paginate(in)
	if len(pages) != 1 || len(pages[0].Categories) != 1 {
		t.Fatalf("inactive category leaked into output: %+v", pages)
	}
	if got := collectProductIDs(pages); !reflect.DeepEqual(got, []string{"keep"}) {
		t.Fatalf("inactive product leaked into output: %v", got)
	}
}

func TestPaginateServiceReserveShrinksPage(t *testing.T) {
	cat := menu.Category{ID: "c", Title: "C", IsActive: true}

	withReserve := Paginate(makeInput(fixedBlocks{header: 10, product: 40, reserve: 100}, cat))
	without := Paginate(makeInput(fixedBlocks{header: 10, product: 40, reserve: 0}, cat))
	if len(withReserve) <= len(without) {
		t.Fatalf("reserve must cost capacity: %d pages with, %d without", len(withReserve), len(without))
	}
}

func TestPaginateEmptyInput(t *testing.T) {
	pages := Paginate(PaginateInput{
		Layout: testLayout(),
		Blocks: fixedBlocks{header: 10, product: 10},
	})
	if len(pages) != 0 {
		t.Fatalf("no content must yield no pages, got %d", len(pages))
	}
}

func TestFormatPrice(t *testing.T) {
	cases := map[float64]string{
		0:     "€ 0,00",
		2.5:   "€ 2,50",
		12.99: "€ 12,99",
	}
	for v, want := range cases {
		if got := FormatPrice(v); got != want {
			t.Fatalf("FormatPrice(%g) = %q, want %q", v, got, want)
		}
	}
}

func TestAllergenLine(t *testing.T) {
	if got := AllergenLine(nil); got != "" {
		t.Fatalf("no allergens must yield empty line, got %q", got)
	}
	allergens := []menu.Allergen{{Number: 1}, {Number: 7}, {Number: 3}}
	if got := AllergenLine(allergens); got != "Allergeni: 1, 7, 3" {
		t.Fatalf("AllergenLine = %q", got)
	}
}

func TestProductHeightTracksDescription(t *testing.T) {
	meas := newTestMeasure(8)
	blocks := NewBlockMeasurer(testLayout(), meas)
	widthPx := (PageWidthMm - 30) * PxPerMm

	bare := menu.Product{ID: "p1", Title: "Bruschetta", PriceStandard: 6.5, IsActive: true}
	withDesc := bare
	withDesc.Description = strings.Repeat("pomodoro fresco, basilico e olio ", 40)

	hBare := blocks.Product(bare, widthPx)
	hDesc := blocks.Product(withDesc, widthPx)
	if hDesc <= hBare {
		t.Fatalf("product with a long description measured %gmm, without %gmm", hDesc, hBare)
	}

	hidden := testLayout()
	hidden.Elements.Description.Visible = false
	if got := NewBlockMeasurer(hidden, meas).Product(withDesc, widthPx); got != hBare {
		t.Fatalf("hidden description must contribute nothing: got %gmm, want %gmm", got, hBare)
	}
}

func TestCategoryHeaderCountsNotes(t *testing.T) {
	meas := newTestMeasure(8)
	blocks := NewBlockMeasurer(testLayout(), meas)
	widthPx := (PageWidthMm - 30) * PxPerMm

	c := menu.Category{ID: "c1", Title: "Antipasti"}
	plain := blocks.CategoryHeader(c, nil, widthPx)
	if plain <= 0 {
		t.Fatalf("category header measured %gmm", plain)
	}
	notes := []menu.CategoryNote{{
		ID:    "n1",
		Title: "Surgelati",
		Text:  "Alcuni prodotti possono essere surgelati all'origine.",
	}}
	if withNote := blocks.CategoryHeader(c, notes, widthPx); withNote <= plain {
		t.Fatalf("header with a note measured %gmm, without %gmm", withNote, plain)
	}
}

func TestServiceReserveFollowsVisibility(t *testing.T) {
	meas := newTestMeasure(8)
	if got := NewBlockMeasurer(testLayout(), meas).ServiceReserve(); got <= 0 {
		t.Fatalf("visible service line must reserve space, got %gmm", got)
	}
	l := testLayout()
	l.ServicePrice.Visible = false
	if got := NewBlockMeasurer(l, meas).ServiceReserve(); got != 0 {
		t.Fatalf("hidden service line must reserve nothing, got %gmm", got)
	}
}
