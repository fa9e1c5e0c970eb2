package htmlpreview

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"

	"github.com/menuforge/menuforge/layout"
	"github.com/menuforge/menuforge/menu"
	"github.com/menuforge/menuforge/renderer"
)

// Renderer produces the scrollable HTML preview: one 210mm×297mm div per
// paginated page, carrying a data-page-preview attribute. All font sizes
// come from the standardized css view, so the preview and the PDF derive
// from the same numbers.
type Renderer struct {
	opts Options
	tmpl *template.Template
}

var _ renderer.Renderer = (*Renderer)(nil)

// Options configures the preview output.
type Options struct {
	// WebfontURL is injected as a stylesheet link when set. Loading is
	// fire-and-forget: a dead URL degrades the preview typeface only.
	WebfontURL string
	// MarginOverlay draws the content margins as a dashed box. Purely
	// visual; it never affects element heights.
	MarginOverlay bool
	// EventsPath, when set, embeds a script that reloads the preview on
	// layout-updated server events.
	EventsPath string
}

func New(opts Options) *Renderer {
	return &Renderer{
		opts: opts,
		tmpl: template.Must(template.New("preview").Parse(previewTemplate)),
	}
}

func (r *Renderer) Render(doc *layout.Document) ([]byte, error) {
	if doc == nil || doc.Layout == nil {
		return nil, errors.New("no document to render")
	}
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, buildView(doc, r.opts)); err != nil {
		return nil, fmt.Errorf("render preview: %w", err)
	}
	return buf.Bytes(), nil
}

type view struct {
	Title         string
	WebfontURL    string
	EventsPath    string
	MarginOverlay bool
	Style         template.CSS
	Pages         []pageView
	LegendPages   []legendPageView
}

type pageView struct {
	Number           int
	PagePadding      template.CSS
	OverlayBox       template.CSS
	Slices           []sliceView
	ServiceLine      string
	ServiceLineStyle template.CSS
}

type sliceView struct {
	Title           string
	IsRepeatedTitle bool
	Notes           []noteView
	Products        []productView
}

type noteView struct {
	Title   string
	Text    string
	IconURL string
}

type productView struct {
	Title         string
	Price         string
	Description   string
	DescriptionEN string
	Suffix        string
	Variants      []string
	Label         *labelView
	Features      []iconView
	Allergens     string
}

type labelView struct {
	Title string
	Color string
}

type iconView struct {
	Title   string
	IconURL string
}

type legendPageView struct {
	Number             int
	PagePadding        template.CSS
	OverlayBox         template.CSS
	ShowHeader         bool
	HeaderTitle        string
	HeaderText         string
	Allergens          []legendItemView
	Features           []iconView
	ShowFeaturesHeader bool
	FeaturesHeader     string
}

type legendItemView struct {
	Number      int
	Title       string
	Description string
	IconURL     string
}

func buildView(doc *layout.Document, opts Options) view {
	l := doc.Layout
	v := view{
		Title:         doc.Meta.Title,
		WebfontURL:    opts.WebfontURL,
		EventsPath:    opts.EventsPath,
		MarginOverlay: opts.MarginOverlay,
		Style:         stylesheet(doc),
	}

	number := 0
	for _, page := range doc.Pages {
		number++
		pv := pageView{
			Number:      number,
			PagePadding: paddingCSS(page.Margins),
			OverlayBox:  overlayCSS(page.Margins),
		}
		if page.ServiceCharge > 0 && l.ServicePrice.Visible {
			pv.ServiceLine = "Servizio e coperto " + layout.FormatPrice(page.ServiceCharge)
			pv.ServiceLineStyle = serviceLineCSS(page.Margins)
		}
		for _, slice := range page.Categories {
			sv := sliceView{
				Title:           slice.Category.Title,
				IsRepeatedTitle: slice.IsRepeatedTitle,
			}
			for _, n := range slice.Notes {
				sv.Notes = append(sv.Notes, noteView{Title: n.Title, Text: n.Text, IconURL: n.IconURL})
			}
			for _, p := range slice.Products {
				sv.Products = append(sv.Products, buildProduct(l, p))
			}
			pv.Slices = append(pv.Slices, sv)
		}
		v.Pages = append(v.Pages, pv)
	}

	featuresStarted := false
	for _, page := range doc.AllergensPages {
		number++
		lp := legendPageView{
			Number:      number,
			PagePadding: paddingCSS(page.Margins),
			OverlayBox:  overlayCSS(page.Margins),
		}
		if page.ShowTitleAndDescription {
			lp.ShowHeader = true
			lp.HeaderTitle = l.Allergens.TitleText
			lp.HeaderText = l.Allergens.DescriptionText
		}
		for _, a := range page.Allergens {
			lp.Allergens = append(lp.Allergens, legendItemView{
				Number:      a.Number,
				Title:       a.Title,
				Description: a.Description,
				IconURL:     a.IconURL,
			})
		}
		if len(page.Features) > 0 && !featuresStarted {
			featuresStarted = true
			lp.ShowFeaturesHeader = true
			lp.FeaturesHeader = l.ProductFeatures.SectionTitleText
		}
		for _, f := range page.Features {
			lp.Features = append(lp.Features, iconView{Title: f.Title, IconURL: f.IconURL})
		}
		v.LegendPages = append(v.LegendPages, lp)
	}
	return v
}

func buildProduct(l *menu.PrintLayout, p menu.Product) productView {
	el := l.Elements
	pv := productView{Title: p.Title}
	if el.Price.Visible {
		pv.Price = layout.FormatPrice(p.PriceStandard)
	}
	if el.Description.Visible {
		pv.Description = p.Description
	}
	if el.DescriptionEN.Visible {
		pv.DescriptionEN = p.DescriptionEN
	}
	if el.Suffix.Visible && p.HasPriceSuffix {
		pv.Suffix = p.PriceSuffix
	}
	if el.PriceVariants.Visible && p.HasMultiplePrices {
		if p.PriceVariant1Name != "" {
			pv.Variants = append(pv.Variants, p.PriceVariant1Name+" "+layout.FormatPrice(p.PriceVariant1))
		}
		if p.PriceVariant2Name != "" {
			pv.Variants = append(pv.Variants, p.PriceVariant2Name+" "+layout.FormatPrice(p.PriceVariant2))
		}
	}
	if p.Label != nil {
		pv.Label = &labelView{Title: p.Label.Title, Color: p.Label.Color}
	}
	for _, f := range p.Features {
		pv.Features = append(pv.Features, iconView{Title: f.Title, IconURL: f.IconURL})
	}
	if el.AllergensList.Visible && len(p.Allergens) > 0 {
		pv.Allergens = layout.AllergenLine(p.Allergens)
	}
	return pv
}

func paddingCSS(m menu.Margins) template.CSS {
	return template.CSS(fmt.Sprintf("padding: %gmm %gmm %gmm %gmm;", m.Top, m.Right, m.Bottom, m.Left))
}

// overlayCSS positions the dashed margin box over the page. Absolute
// positioning keeps it out of the flow entirely.
func overlayCSS(m menu.Margins) template.CSS {
	return template.CSS(fmt.Sprintf("top: %gmm; right: %gmm; bottom: %gmm; left: %gmm;", m.Top, m.Right, m.Bottom, m.Left))
}

// serviceLineCSS pins the service line to the reserved band directly
// above the bottom margin, matching where the PDF surface draws it.
func serviceLineCSS(m menu.Margins) template.CSS {
	return template.CSS(fmt.Sprintf("left: %gmm; right: %gmm; bottom: %gmm;", m.Left, m.Right, m.Bottom))
}

// stylesheet emits the per-document CSS from the standardized dimensions
// and the layout's style blocks. Sizes come from Dimensions.CSS only.
func stylesheet(doc *layout.Document) template.CSS {
	l := doc.Layout
	css := doc.Dimensions.CSS
	icons := doc.Dimensions.Icons
	var b bytes.Buffer

	rule := func(selector string, st menu.StyleBlock, sizePx float64) {
		fmt.Fprintf(&b, "%s {", selector)
		fmt.Fprintf(&b, " font-size: %.2fpx;", sizePx)
		if st.FontFamily != "" {
			fmt.Fprintf(&b, " font-family: %q, sans-serif;", st.FontFamily)
		}
		if st.Bold() {
			b.WriteString(" font-weight: 700;")
		}
		if st.Italic() {
			b.WriteString(" font-style: italic;")
		}
		if st.FontColor != "" {
			fmt.Fprintf(&b, " color: %s;", st.FontColor)
		}
		if st.Alignment != "" {
			fmt.Fprintf(&b, " text-align: %s;", st.Alignment)
		}
		if !st.Margin.IsZero() {
			fmt.Fprintf(&b, " margin: %gmm %gmm %gmm %gmm;",
				st.Margin.Top, st.Margin.Right, st.Margin.Bottom, st.Margin.Left)
		}
		if !st.Visible {
			b.WriteString(" display: none;")
		}
		b.WriteString(" }\n")
	}

	rule(".category-title", l.Elements.Category, css.Category)
	rule(".product-title", l.Elements.Title, css.Title)
	rule(".product-price", l.Elements.Price, css.Price)
	rule(".product-desc", l.Elements.Description, css.Description)
	rule(".product-desc-en", l.Elements.DescriptionEN, css.DescriptionEN)
	rule(".product-suffix", l.Elements.Suffix, css.Suffix)
	rule(".product-variant", l.Elements.PriceVariants, css.PriceVariants)
	rule(".product-allergens", l.Elements.AllergensList, css.AllergensList)
	rule(".note-title", l.CategoryNotes.Title, css.NoteTitle)
	rule(".note-text", l.CategoryNotes.Text, css.NoteText)
	rule(".service-line", l.ServicePrice, css.ServicePrice)
	rule(".legend-title", l.Allergens.Title, css.LegendTitle)
	rule(".legend-desc", l.Allergens.Description, css.LegendDesc)
	rule(".legend-item", l.Allergens.Item, css.LegendItem)
	rule(".features-title", l.ProductFeatures.SectionTitle, css.LegendTitle)
	rule(".feature-item", l.ProductFeatures.ItemTitle, css.LegendItem)

	fmt.Fprintf(&b, ".note-icon { width: %.2fpx; height: %.2fpx; }\n", icons.NotePx, icons.NotePx)
	fmt.Fprintf(&b, ".legend-icon { width: %.2fpx; height: %.2fpx; }\n", icons.AllergenPx, icons.AllergenPx)
	fmt.Fprintf(&b, ".feature-icon { width: %.2fpx; height: %.2fpx; }\n", icons.FeaturePx, icons.FeaturePx)
	fmt.Fprintf(&b, ".category + .category { margin-top: %gmm; }\n", doc.Dimensions.Spacing.BetweenCategories)
	fmt.Fprintf(&b, ".product + .product { margin-top: %gmm; }\n", doc.Dimensions.Spacing.BetweenProducts)

	return template.CSS(b.String())
}
