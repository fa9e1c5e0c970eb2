package htmlpreview

import (
	"fmt"
	"strings"
	"testing"

	"github.com/menuforge/menuforge/layout"
	"github.com/menuforge/menuforge/menu"
)

func sampleDocument() *layout.Document {
	l := menu.DefaultPrintLayout()
	return &layout.Document{
		Layout:     &l,
		Dimensions: layout.StandardizeDimensions(&l),
		Cover:      layout.CoverContent{Title: "Trattoria", Subtitle: "Cucina casalinga"},
		Pages: []layout.PageContent{
			{
				PageNumber:    1,
				Margins:       menu.Margins{Top: 20, Right: 15, Bottom: 20, Left: 15},
				ServiceCharge: 2.5,
				Categories: []layout.CategorySlice{
					{
						Category: menu.Category{ID: "c1", Title: "Antipasti"},
						Notes:    []menu.CategoryNote{{Title: "Surgelati", Text: "In mancanza di fresco"}},
						Products: []menu.Product{
							{Title: "Bruschetta", PriceStandard: 6.5, Description: "Pane e pomodoro", IsActive: true},
						},
					},
				},
			},
			{
				PageNumber: 2,
				Margins:    menu.Margins{Top: 20, Right: 15, Bottom: 20, Left: 15},
				Categories: []layout.CategorySlice{
					{
						Category:        menu.Category{ID: "c1", Title: "Antipasti"},
						IsRepeatedTitle: true,
						Products: []menu.Product{
							{Title: "Tagliere", PriceStandard: 12, IsActive: true},
						},
					},
				},
			},
		},
		AllergensPages: []layout.AllergensPage{
			{
				PageNumber:              1,
				Margins:                 menu.Margins{Top: 20, Right: 15, Bottom: 20, Left: 15},
				ShowTitleAndDescription: true,
				Allergens:               []menu.Allergen{{Number: 1, Title: "Glutine"}},
			},
		},
	}
}

func TestRenderPageDivs(t *testing.T) {
	html, err := New(Options{}).Render(sampleDocument())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	out := string(html)

	// content pages then legend pages, numbered continuously
	for n := 1; n <= 3; n++ {
		marker := fmt.Sprintf(`data-page-preview="%d"`, n)
		if !strings.Contains(out, marker) {
			t.Fatalf("output missing %s", marker)
		}
	}
	if strings.Contains(out, `data-page-preview="4"`) {
		t.Fatal("unexpected fourth page")
	}
	if got := strings.Count(out, `class="page"`); got != 3 {
		t.Fatalf("expected 3 page divs, got %d", got)
	}
}

func TestRenderContent(t *testing.T) {
	html, err := New(Options{}).Render(sampleDocument())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	out := string(html)

	for _, want := range []string{
		"Antipasti",
		"Bruschetta",
		"€ 6,50",
		"Surgelati",
		"Glutine",
		"Servizio e coperto",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q", want)
		}
	}
	// the repeated category title on page two is suppressed
	if got := strings.Count(out, ">Antipasti<"); got != 1 {
		t.Fatalf("category title must render once, got %d", got)
	}
}

func TestRenderMarginOverlay(t *testing.T) {
	doc := sampleDocument()

	plain, err := New(Options{}).Render(doc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(plain), `class="margin-overlay"`) {
		t.Fatal("overlay rendered without the option")
	}

	overlaid, err := New(Options{MarginOverlay: true}).Render(doc)
	if err != nil {
		t.Fatalf("render with overlay: %v", err)
	}
	if !strings.Contains(string(overlaid), `class="margin-overlay"`) {
		t.Fatal("overlay missing with the option set")
	}
}

func TestRenderHiddenElements(t *testing.T) {
	doc := sampleDocument()
	doc.Layout.Elements.Description.Visible = false

	html, err := New(Options{}).Render(doc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(html), "Pane e pomodoro") {
		t.Fatal("hidden description must not render")
	}
}

func TestRenderEventsScript(t *testing.T) {
	doc := sampleDocument()

	html, err := New(Options{EventsPath: "/events"}).Render(doc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(html), "EventSource") {
		t.Fatal("live-reload script missing with EventsPath set")
	}

	html, err = New(Options{}).Render(doc)
	if err != nil {
		t.Fatalf("render without events: %v", err)
	}
	if strings.Contains(string(html), "EventSource") {
		t.Fatal("live-reload script rendered without EventsPath")
	}
}

func TestRenderNilDocument(t *testing.T) {
	if _, err := New(Options{}).Render(nil); err == nil {
		t.Fatal("nil document must error")
	}
}

func TestRenderServiceLinePinnedToMargins(t *testing.T) {
	doc := sampleDocument()
	doc.Pages[0].Margins = menu.Margins{Top: 10, Right: 12, Bottom: 30, Left: 14}
	html, err := New(Options{}).Render(doc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	out := string(html)
	if !strings.Contains(out, `class="service-line" style="left: 14mm; right: 12mm; bottom: 30mm;"`) {
		t.Fatal("service line must sit on the page's own bottom margin")
	}
	if strings.Contains(out, "bottom: 6mm") {
		t.Fatal("service line offset must come from the margins, not a fixed constant")
	}
}
