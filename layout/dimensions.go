package layout

import "github.com/menuforge/menuforge/menu"

// The dimension standardizer converts the user-entered layout units into one
// canonical set of measurements shared by every renderer. Each semantic
// quantity is held twice: once in CSS pixels for the HTML surfaces and once
// in points/millimeters for the PDF surface, both derived from the same
// stored number in a single pass. Renderers never re-derive a size from raw
// layout fields.

// FontSizes lists every text element's font size in one unit system.
type FontSizes struct {
	Category      float64 `json:"category"`
	Title         float64 `json:"title"`
	Description   float64 `json:"description"`
	DescriptionEN float64 `json:"descriptionEng"`
	Price         float64 `json:"price"`
	Suffix        float64 `json:"suffix"`
	PriceVariants float64 `json:"priceVariants"`
	AllergensList float64 `json:"allergensList"`
	NoteTitle     float64 `json:"noteTitle"`
	NoteText      float64 `json:"noteText"`
	ServicePrice  float64 `json:"servicePrice"`
	CoverTitle    float64 `json:"coverTitle"`
	CoverSubtitle float64 `json:"coverSubtitle"`
	LegendTitle   float64 `json:"legendTitle"`
	LegendDesc    float64 `json:"legendDesc"`
	LegendItem    float64 `json:"legendItem"`
}

// MarginsPx is a margin set in CSS pixels.
type MarginsPx struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// IconSizes carries icon square sizes in both unit systems.
type IconSizes struct {
	NoteMm     float64 `json:"noteMm"`
	NotePx     float64 `json:"notePx"`
	AllergenMm float64 `json:"allergenMm"`
	AllergenPx float64 `json:"allergenPx"`
	FeatureMm  float64 `json:"featureMm"`
	FeaturePx  float64 `json:"featurePx"`
}

// SpacingMm is the inter-element spacing, canonical in millimeters.
type SpacingMm struct {
	BetweenCategories float64 `json:"betweenCategories"`
	BetweenProducts   float64 `json:"betweenProducts"`
}

// Dimensions is the derived, unit-reconciled view of a PrintLayout. It is
// recomputed as a whole on every layout change; the css and pdf views can
// never diverge because both come out of the same pass.
type Dimensions struct {
	CSS FontSizes `json:"css"` // px
	PDF FontSizes `json:"pdf"` // pt

	CSSContentMargins MarginsPx    `json:"cssMargins"`
	PDFContentMargins menu.Margins `json:"pdfMargins"` // mm

	Icons   IconSizes `json:"icons"`
	Spacing SpacingMm `json:"spacing"`
}

// StandardizeDimensions derives the canonical dimension set from a layout.
// Pure and deterministic: the input is defaulted first, so every field has
// a defined value and no conversion sees a zero.
func StandardizeDimensions(l *menu.PrintLayout) Dimensions {
	cfg := *l
	menu.ApplyDefaults(&cfg)

	pt := FontSizes{
		Category:      cfg.Elements.Category.FontSize,
		Title:         cfg.Elements.Title.FontSize,
		Description:   cfg.Elements.Description.FontSize,
		DescriptionEN: cfg.Elements.DescriptionEN.FontSize,
		Price:         cfg.Elements.Price.FontSize,
		Suffix:        cfg.Elements.Suffix.FontSize,
		PriceVariants: cfg.Elements.PriceVariants.FontSize,
		AllergensList: cfg.Elements.AllergensList.FontSize,
		NoteTitle:     cfg.CategoryNotes.Title.FontSize,
		NoteText:      cfg.CategoryNotes.Text.FontSize,
		ServicePrice:  cfg.ServicePrice.FontSize,
		CoverTitle:    cfg.Cover.Title.FontSize,
		CoverSubtitle: cfg.Cover.Subtitle.FontSize,
		LegendTitle:   cfg.Allergens.Title.FontSize,
		LegendDesc:    cfg.Allergens.Description.FontSize,
		LegendItem:    cfg.Allergens.Item.FontSize,
	}

	d := Dimensions{
		PDF: pt,
		CSS: FontSizes{
			Category:      PxFromPt(pt.Category),
			Title:         PxFromPt(pt.Title),
			Description:   PxFromPt(pt.Description),
			DescriptionEN: PxFromPt(pt.DescriptionEN),
			Price:         PxFromPt(pt.Price),
			Suffix:        PxFromPt(pt.Suffix),
			PriceVariants: PxFromPt(pt.PriceVariants),
			AllergensList: PxFromPt(pt.AllergensList),
			NoteTitle:     PxFromPt(pt.NoteTitle),
			NoteText:      PxFromPt(pt.NoteText),
			ServicePrice:  PxFromPt(pt.ServicePrice),
			CoverTitle:    PxFromPt(pt.CoverTitle),
			CoverSubtitle: PxFromPt(pt.CoverSubtitle),
			LegendTitle:   PxFromPt(pt.LegendTitle),
			LegendDesc:    PxFromPt(pt.LegendDesc),
			LegendItem:    PxFromPt(pt.LegendItem),
		},
		PDFContentMargins: cfg.Page.ContentMargins,
		CSSContentMargins: MarginsPx{
			Top:    cfg.Page.ContentMargins.Top * PxPerMm,
			Right:  cfg.Page.ContentMargins.Right * PxPerMm,
			Bottom: cfg.Page.ContentMargins.Bottom * PxPerMm,
			Left:   cfg.Page.ContentMargins.Left * PxPerMm,
		},
		Icons: IconSizes{
			NoteMm:     cfg.CategoryNotes.IconSizeMm,
			NotePx:     cfg.CategoryNotes.IconSizeMm * PxPerMm,
			AllergenMm: cfg.Allergens.IconSizeMm,
			AllergenPx: cfg.Allergens.IconSizeMm * PxPerMm,
			FeatureMm:  cfg.ProductFeatures.IconSizeMm,
			FeaturePx:  cfg.ProductFeatures.IconSizeMm * PxPerMm,
		},
		Spacing: SpacingMm{
			BetweenCategories: cfg.Spacing.BetweenCategories,
			BetweenProducts:   cfg.Spacing.BetweenProducts,
		},
	}
	return d
}

// FontSizePairs returns matching (css, pdf) values for every standardized
// font size, in a fixed order. Used to verify the parity invariant
// css = pdf × 4/3.
func (d Dimensions) FontSizePairs() [][2]float64 {
	c, p := d.CSS, d.PDF
	return [][2]float64{
		{c.Category, p.Category},
		{c.Title, p.Title},
		{c.Description, p.Description},
		{c.DescriptionEN, p.DescriptionEN},
		{c.Price, p.Price},
		{c.Suffix, p.Suffix},
		{c.PriceVariants, p.PriceVariants},
		{c.AllergensList, p.AllergensList},
		{c.NoteTitle, p.NoteTitle},
		{c.NoteText, p.NoteText},
		{c.ServicePrice, p.ServicePrice},
		{c.CoverTitle, p.CoverTitle},
		{c.CoverSubtitle, p.CoverSubtitle},
		{c.LegendTitle, p.LegendTitle},
		{c.LegendDesc, p.LegendDesc},
		{c.LegendItem, p.LegendItem},
	}
}

// ContentPageMargins resolves the margin set for a content page number,
// honoring the odd/even distinction when enabled. Page numbers start at 1.
func ContentPageMargins(l *menu.PrintLayout, pageNumber int) menu.Margins {
	if l.Page.UseDistinctMarginsForPages {
		if pageNumber%2 == 1 {
			return l.Page.OddMargins
		}
		return l.Page.EvenMargins
	}
	return l.Page.ContentMargins
}

// AllergensPageMargins resolves the margin set for an allergens page number.
func AllergensPageMargins(l *menu.PrintLayout, pageNumber int) menu.Margins {
	if l.Page.UseDistinctMarginsForAllergensPages {
		if pageNumber%2 == 1 {
			return l.Page.OddAllergensMargins
		}
		return l.Page.EvenAllergensMargins
	}
	return l.Page.AllergensMargins
}
