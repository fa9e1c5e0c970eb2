package layout

import (
	"fmt"
	"strings"

	"github.com/menuforge/menuforge/menu"
)

// Greedy-fill pagination over a single vertical axis. Content blocks are
// atomic: a product never splits across pages, and neither does a category
// title together with its notes. Order is never altered.

// PriceGapPx is the horizontal gap between a product title and its price
// column, in px. The block measurer and the PDF renderer share it so the
// title wrap width they compute is the same.
const PriceGapPx = 8.0

// BlockMeasurer reports block heights in millimeters for the pagination
// engine. The production implementation measures real wrapped text through
// the measurement service; tests substitute fixed heights.
type BlockMeasurer interface {
	// CategoryHeader is the height of a category title plus its notes.
	CategoryHeader(c menu.Category, notes []menu.CategoryNote, widthPx float64) float64
	// Product is the height of one full product block.
	Product(p menu.Product, widthPx float64) float64
	// ServiceReserve is the footer space held back on every page for the
	// service-charge line.
	ServiceReserve() float64
}

// PaginateInput bundles everything the engine consumes. Inputs are read
// only; repeated calls with equal input yield identical output.
type PaginateInput struct {
	Categories         []menu.Category
	ProductsByCategory map[string][]menu.Product
	Notes              []menu.CategoryNote
	NoteRelations      []menu.NoteRelation
	ServiceCharge      float64
	Layout             *menu.PrintLayout
	Measure            *TextMeasure

	// Blocks overrides the measurement-backed block heights when non-nil.
	Blocks BlockMeasurer
}

// Paginate packs active categories and their products into A4 content
// pages. See the package comment for the atomicity and ordering rules.
func Paginate(in PaginateInput) []PageContent {
	blocks := in.Blocks
	if blocks == nil {
		blocks = NewBlockMeasurer(in.Layout, in.Measure)
	}
	notesByCategory := indexNotes(in.Notes, in.NoteRelations)

	p := &paginator{
		layout:        in.Layout,
		blocks:        blocks,
		serviceCharge: in.ServiceCharge,
	}

	for _, cat := range in.Categories {
		if !cat.IsActive {
			continue
		}
		products := activeProducts(in.ProductsByCategory[cat.ID])
		notes := notesByCategory[cat.ID]
		if len(products) == 0 && len(notes) == 0 && cat.Title == "" {
			continue
		}
		p.placeCategory(cat, notes, products)
	}

	return p.finish()
}

type paginator struct {
	layout        *menu.PrintLayout
	blocks        BlockMeasurer
	serviceCharge float64

	pages    []PageContent
	cursorMm float64
	usableMm float64
	widthPx  float64
}

// openPage starts the next content page, resolving its odd/even margin set
// and holding back the service-charge reserve.
func (p *paginator) openPage() {
	num := len(p.pages) + 1
	margins := ContentPageMargins(p.layout, num)
	p.pages = append(p.pages, PageContent{
		PageNumber:    num,
		Margins:       margins,
		ServiceCharge: p.serviceCharge,
	})
	p.cursorMm = 0
	p.usableMm = PageHeightMm - margins.Top - margins.Bottom - p.blocks.ServiceReserve()
	p.widthPx = (PageWidthMm - margins.Left - margins.Right) * PxPerMm
}

func (p *paginator) page() *PageContent {
	if len(p.pages) == 0 {
		p.openPage()
	}
	return &p.pages[len(p.pages)-1]
}

func (p *paginator) remaining() float64 { return p.usableMm - p.cursorMm }

func (p *paginator) pageHasContent() bool {
	pg := p.page()
	return len(pg.Categories) > 0
}

func (p *paginator) placeCategory(cat menu.Category, notes []menu.CategoryNote, products []menu.Product) {
	pg := p.page()

	// spacing after the previous completed section
	gap := 0.0
	if p.pageHasContent() {
		gap = p.layout.Spacing.BetweenCategories
	}

	header := p.blocks.CategoryHeader(cat, notes, p.widthPx)
	if gap+header > p.remaining() && p.pageHasContent() {
		p.openPage()
		pg = p.page()
		gap = 0
		header = p.blocks.CategoryHeader(cat, notes, p.widthPx)
	}
	p.cursorMm += gap + header
	pg.Categories = append(pg.Categories, CategorySlice{
		Category: cat,
		Notes:    notes,
	})

	for _, prod := range products {
		p.placeProduct(cat, prod)
	}
}

func (p *paginator) placeProduct(cat menu.Category, prod menu.Product) {
	pg := p.page()
	slice := &pg.Categories[len(pg.Categories)-1]

	gap := 0.0
	if len(slice.Products) > 0 {
		gap = p.layout.Spacing.BetweenProducts
	}
	h := p.blocks.Product(prod, p.widthPx)

	if gap+h > p.remaining() {
		// An oversized block that would not fit even on an empty page is
		// still emitted, alone, rather than looping or truncating.
		if p.cursorMm > 0 || p.pageHasContent() {
			p.openPage()
			pg = p.page()
			pg.Categories = append(pg.Categories, CategorySlice{
				Category:        cat,
				IsRepeatedTitle: true,
			})
			slice = &pg.Categories[len(pg.Categories)-1]
			h = p.blocks.Product(prod, p.widthPx)
		}
		gap = 0
	}
	p.cursorMm += gap + h
	slice.Products = append(slice.Products, prod)
}

// finish drops a trailing page with no placed content; such a page is
// never emitted.
func (p *paginator) finish() []PageContent {
	for len(p.pages) > 0 && len(p.pages[len(p.pages)-1].Categories) == 0 {
		p.pages = p.pages[:len(p.pages)-1]
	}
	return p.pages
}

func activeProducts(all []menu.Product) []menu.Product {
	out := make([]menu.Product, 0, len(all))
	for _, pr := range all {
		if pr.IsActive {
			out = append(out, pr)
		}
	}
	return out
}

func indexNotes(notes []menu.CategoryNote, rels []menu.NoteRelation) map[string][]menu.CategoryNote {
	byID := make(map[string]menu.CategoryNote, len(notes))
	for _, n := range notes {
		byID[n.ID] = n
	}
	out := make(map[string][]menu.CategoryNote)
	for _, rel := range rels {
		if n, ok := byID[rel.NoteID]; ok {
			out[rel.CategoryID] = append(out[rel.CategoryID], n)
		}
	}
	return out
}

// styleBlocks is the production BlockMeasurer: it measures real wrapped
// text with the measurement service against the standardized dimensions.
type styleBlocks struct {
	layout *menu.PrintLayout
	dims   Dimensions
	meas   *TextMeasure
}

// NewBlockMeasurer builds the measurement-backed block measurer used by
// Paginate when no override is supplied.
func NewBlockMeasurer(l *menu.PrintLayout, meas *TextMeasure) BlockMeasurer {
	return &styleBlocks{layout: l, dims: StandardizeDimensions(l), meas: meas}
}

func spec(s menu.StyleBlock, sizePt float64) FontSpec {
	return FontSpec{Family: s.FontFamily, SizePt: sizePt, Bold: s.Bold(), Italic: s.Italic()}
}

func (b *styleBlocks) CategoryHeader(c menu.Category, notes []menu.CategoryNote, widthPx float64) float64 {
	el := b.layout.Elements
	px := 0.0
	mm := 0.0
	if el.Category.Visible {
		px += b.meas.MeasureTextHeight(c.Title, widthPx, spec(el.Category, b.dims.PDF.Category), 0)
		mm += el.Category.Margin.Top + el.Category.Margin.Bottom
	}
	nc := b.layout.CategoryNotes
	for _, n := range notes {
		notePx := 0.0
		if nc.Title.Visible {
			notePx += b.meas.MeasureTextHeight(n.Title, widthPx, spec(nc.Title, b.dims.PDF.NoteTitle), 0)
		}
		if nc.Text.Visible {
			notePx += b.meas.MeasureTextHeight(n.Text, widthPx, spec(nc.Text, b.dims.PDF.NoteText), 0)
		}
		if n.IconURL != "" && notePx < b.dims.Icons.NotePx {
			notePx = b.dims.Icons.NotePx
		}
		px += notePx
		mm += nc.Title.Margin.Top + nc.Text.Margin.Bottom
	}
	return MmFromPx(px) + mm
}

func (b *styleBlocks) Product(p menu.Product, widthPx float64) float64 {
	el := b.layout.Elements
	px := 0.0
	mm := 0.0

	// Title row: the price sits on the title line, so the row height is
	// the taller of the wrapped title and the single price line.
	if el.Title.Visible {
		priceW := 0.0
		if el.Price.Visible {
			priceW = b.meas.measurer(spec(el.Price, b.dims.PDF.Price)).TextWidth(FormatPrice(p.PriceStandard)) + PriceGapPx
		}
		titleWidth := widthPx - priceW
		if titleWidth < widthPx/2 {
			titleWidth = widthPx / 2
		}
		row := b.meas.MeasureTextHeight(p.Title, titleWidth, spec(el.Title, b.dims.PDF.Title), 0)
		if el.Price.Visible {
			if priceRow := LinePx(b.dims.PDF.Price, 0); priceRow > row {
				row = priceRow
			}
		}
		px += row
		mm += el.Title.Margin.Top + el.Title.Margin.Bottom
	}

	if el.Description.Visible && p.Description != "" {
		px += b.meas.MeasureTextHeight(p.Description, widthPx, spec(el.Description, b.dims.PDF.Description), 0)
		mm += el.Description.Margin.Top + el.Description.Margin.Bottom
	}
	if el.DescriptionEN.Visible && p.DescriptionEN != "" {
		px += b.meas.MeasureTextHeight(p.DescriptionEN, widthPx, spec(el.DescriptionEN, b.dims.PDF.DescriptionEN), 0)
		mm += el.DescriptionEN.Margin.Top + el.DescriptionEN.Margin.Bottom
	}
	if el.Suffix.Visible && p.HasPriceSuffix && p.PriceSuffix != "" {
		px += LinePx(b.dims.PDF.Suffix, 0)
		mm += el.Suffix.Margin.Top + el.Suffix.Margin.Bottom
	}
	if el.PriceVariants.Visible && p.HasMultiplePrices {
		if p.PriceVariant1Name != "" {
			px += LinePx(b.dims.PDF.PriceVariants, 0)
		}
		if p.PriceVariant2Name != "" {
			px += LinePx(b.dims.PDF.PriceVariants, 0)
		}
		mm += el.PriceVariants.Margin.Top + el.PriceVariants.Margin.Bottom
	}
	if len(p.Features) > 0 {
		px += b.dims.Icons.FeaturePx
	}
	if el.AllergensList.Visible && len(p.Allergens) > 0 {
		px += b.meas.MeasureTextHeight(AllergenLine(p.Allergens), widthPx, spec(el.AllergensList, b.dims.PDF.AllergensList), 0)
		mm += el.AllergensList.Margin.Top + el.AllergensList.Margin.Bottom
	}
	return MmFromPx(px) + mm
}

func (b *styleBlocks) ServiceReserve() float64 {
	if !b.layout.ServicePrice.Visible {
		return 0
	}
	s := b.layout.ServicePrice
	return MmFromPx(LinePx(b.dims.PDF.ServicePrice, 0)) + s.Margin.Top + s.Margin.Bottom
}

// FormatPrice renders a price the way every surface prints it.
func FormatPrice(v float64) string {
	return strings.Replace(fmt.Sprintf("€ %.2f", v), ".", ",", 1)
}

// AllergenLine builds the per-product allergen reference line from the
// declared allergen numbers, in declaration order.
func AllergenLine(allergens []menu.Allergen) string {
	if len(allergens) == 0 {
		return ""
	}
	nums := make([]string, len(allergens))
	for i, a := range allergens {
		nums[i] = fmt.Sprintf("%d", a.Number)
	}
	return "Allergeni: " + strings.Join(nums, ", ")
}
