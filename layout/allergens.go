package layout

import "github.com/menuforge/menuforge/menu"

// Legend pagination: a flat list of allergens followed by a flat list of
// product features, greedily packed like the content pages. Entries are
// atomic. The section title and description render on the first page only.

// LegendMeasurer reports legend block heights in millimeters.
type LegendMeasurer interface {
	// TitleBlock is the height of the legend title plus description,
	// charged on the first page only.
	TitleBlock(widthPx float64) float64
	// FeaturesHeader is the height of the features section title.
	FeaturesHeader(widthPx float64) float64
	Allergen(a menu.Allergen, widthPx float64) float64
	Feature(f menu.ProductFeature, widthPx float64) float64
}

// AllergensInput bundles the legend paginator's input.
type AllergensInput struct {
	Allergens []menu.Allergen
	Features  []menu.ProductFeature
	Layout    *menu.PrintLayout
	Measure   *TextMeasure

	// Legend overrides measurement-backed heights when non-nil.
	Legend LegendMeasurer
}

// PaginateAllergens packs the allergens legend and the features legend
// into A4 pages. The first page carries the title/description block; a
// page holding only features is flagged HasProductFeatures.
func PaginateAllergens(in AllergensInput) []AllergensPage {
	legend := in.Legend
	if legend == nil {
		legend = NewLegendMeasurer(in.Layout, in.Measure)
	}
	if len(in.Allergens) == 0 && len(in.Features) == 0 {
		return nil
	}

	p := &legendPaginator{layout: in.Layout, legend: legend}
	p.openPage()
	p.cursorMm += legend.TitleBlock(p.widthPx)
	p.page().ShowTitleAndDescription = true

	for _, a := range in.Allergens {
		h := legend.Allergen(a, p.widthPx)
		if p.cursorMm+h > p.usableMm && p.pageHasEntries() {
			p.openPage()
			h = legend.Allergen(a, p.widthPx)
		}
		p.cursorMm += h
		pg := p.page()
		pg.Allergens = append(pg.Allergens, a)
	}

	if len(in.Features) > 0 {
		// The header renders on the page the first feature lands on, so it
		// is charged together with that feature: when the pair overflows,
		// both move to the next page and the header is re-measured there.
		header := legend.FeaturesHeader(p.widthPx)
		first := legend.Feature(in.Features[0], p.widthPx)
		if p.cursorMm+header+first > p.usableMm && p.pageHasEntries() {
			p.openPage()
			header = legend.FeaturesHeader(p.widthPx)
		}
		p.cursorMm += header
		for _, f := range in.Features {
			h := legend.Feature(f, p.widthPx)
			if p.cursorMm+h > p.usableMm && p.pageHasEntries() {
				p.openPage()
				h = legend.Feature(f, p.widthPx)
			}
			p.cursorMm += h
			pg := p.page()
			pg.Features = append(pg.Features, f)
		}
	}

	pages := p.pages
	for len(pages) > 0 && pageEmpty(pages[len(pages)-1]) {
		pages = pages[:len(pages)-1]
	}
	for i := range pages {
		pages[i].HasProductFeatures = len(pages[i].Allergens) == 0 && len(pages[i].Features) > 0
	}
	return pages
}

type legendPaginator struct {
	layout *menu.PrintLayout
	legend LegendMeasurer

	pages    []AllergensPage
	cursorMm float64
	usableMm float64
	widthPx  float64
}

func (p *legendPaginator) openPage() {
	num := len(p.pages) + 1
	margins := AllergensPageMargins(p.layout, num)
	p.pages = append(p.pages, AllergensPage{PageNumber: num, Margins: margins})
	p.cursorMm = 0
	p.usableMm = PageHeightMm - margins.Top - margins.Bottom
	p.widthPx = (PageWidthMm - margins.Left - margins.Right) * PxPerMm
}

func (p *legendPaginator) page() *AllergensPage { return &p.pages[len(p.pages)-1] }

func (p *legendPaginator) pageHasEntries() bool {
	pg := p.page()
	return len(pg.Allergens) > 0 || len(pg.Features) > 0 || pg.ShowTitleAndDescription
}

func pageEmpty(pg AllergensPage) bool {
	return len(pg.Allergens) == 0 && len(pg.Features) == 0 && !pg.ShowTitleAndDescription
}

// styleLegend is the production LegendMeasurer.
type styleLegend struct {
	layout *menu.PrintLayout
	dims   Dimensions
	meas   *TextMeasure
}

// NewLegendMeasurer builds the measurement-backed legend measurer.
func NewLegendMeasurer(l *menu.PrintLayout, meas *TextMeasure) LegendMeasurer {
	return &styleLegend{layout: l, dims: StandardizeDimensions(l), meas: meas}
}

func (b *styleLegend) TitleBlock(widthPx float64) float64 {
	cfg := b.layout.Allergens
	px := 0.0
	mm := 0.0
	if cfg.Title.Visible {
		px += b.meas.MeasureTextHeight(cfg.TitleText, widthPx, spec(cfg.Title, b.dims.PDF.LegendTitle), 0)
		mm += cfg.Title.Margin.Top + cfg.Title.Margin.Bottom
	}
	if cfg.Description.Visible {
		px += b.meas.MeasureTextHeight(cfg.DescriptionText, widthPx, spec(cfg.Description, b.dims.PDF.LegendDesc), 0)
		mm += cfg.Description.Margin.Top + cfg.Description.Margin.Bottom
	}
	return MmFromPx(px) + mm
}

func (b *styleLegend) FeaturesHeader(widthPx float64) float64 {
	cfg := b.layout.ProductFeatures
	if !cfg.SectionTitle.Visible {
		return 0
	}
	px := b.meas.MeasureTextHeight(cfg.SectionTitleText, widthPx, spec(cfg.SectionTitle, b.dims.PDF.LegendTitle), 0)
	return MmFromPx(px) + cfg.SectionTitle.Margin.Top + cfg.SectionTitle.Margin.Bottom
}

func (b *styleLegend) Allergen(a menu.Allergen, widthPx float64) float64 {
	cfg := b.layout.Allergens
	st := spec(cfg.Item, b.dims.PDF.LegendItem)
	px := b.meas.MeasureTextHeight(a.Title, widthPx, st, 0)
	if a.Description != "" {
		px += b.meas.MeasureTextHeight(a.Description, widthPx, st, 0)
	}
	if a.IconURL != "" && px < b.dims.Icons.AllergenPx {
		px = b.dims.Icons.AllergenPx
	}
	return MmFromPx(px) + cfg.Item.Margin.Top + cfg.Item.Margin.Bottom
}

func (b *styleLegend) Feature(f menu.ProductFeature, widthPx float64) float64 {
	cfg := b.layout.ProductFeatures
	px := b.meas.MeasureTextHeight(f.Title, widthPx, spec(cfg.ItemTitle, b.dims.PDF.LegendItem), 0)
	if f.IconURL != "" && px < b.dims.Icons.FeaturePx {
		px = b.dims.Icons.FeaturePx
	}
	return MmFromPx(px) + cfg.ItemTitle.Margin.Top + cfg.ItemTitle.Margin.Bottom
}
