package canvaspdf

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/menuforge/menuforge/fonts"
	"github.com/menuforge/menuforge/layout"
	"github.com/menuforge/menuforge/menu"
	"github.com/menuforge/menuforge/renderer"
)

// Vertical composition of the first cover page, in mm.
const (
	coverLogoOffsetMm = 30.0
	coverGapMm        = 12.0
)

// gap between an inline icon and the text that follows it, in mm
const iconTextGapMm = 2.0

// Renderer draws a paginated document into a PDF via
// github.com/tdewolff/canvas. Coordinates are mm with the origin at the
// top-left corner of each A4 page. Text is advanced with the same wrap
// breaks and line heights the pagination engine measured, so the drawn
// content stays inside the usable area the planner reserved.
type Renderer struct {
	fonts *fonts.Registry
	log   *log.Logger
	icons *iconCache
}

var _ renderer.Renderer = (*Renderer)(nil)

// Options configures the PDF renderer.
type Options struct {
	Fonts   *fonts.Registry
	Logger  *log.Logger
	BaseDir string       // resolves relative icon and logo paths
	Client  *http.Client // fetches http(s) icon sources
}

// New creates a PDF renderer. Zero-value options fall back to the default
// font registry and logger.
func New(opts Options) *Renderer {
	if opts.Fonts == nil {
		opts.Fonts = fonts.Default()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Renderer{
		fonts: opts.Fonts,
		log:   opts.Logger,
		icons: newIconCache(opts.BaseDir, opts.Client),
	}
}

// Render produces the complete PDF: two cover pages, the content pages and
// the allergens legend pages, in that order. The document is a snapshot; the
// caller must not mutate it while Render runs.
func (r *Renderer) Render(doc *layout.Document) ([]byte, error) {
	if doc == nil || doc.Layout == nil {
		return nil, errors.New("no document to render")
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, layout.PageWidthMm, layout.PageHeightMm, nil)
	r.applyMeta(writer, doc.Meta)

	pages := 0
	emit := func(draw func(*canvas.Context) error) error {
		if pages > 0 {
			writer.NewPage(layout.PageWidthMm, layout.PageHeightMm)
		}
		pages++
		c := canvas.New(layout.PageWidthMm, layout.PageHeightMm)
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV)
		if draw != nil {
			if err := draw(ctx); err != nil {
				return err
			}
		}
		c.RenderTo(writer)
		return nil
	}

	if err := emit(func(ctx *canvas.Context) error {
		return r.drawCover(ctx, doc)
	}); err != nil {
		return nil, err
	}
	// second cover page stays blank
	if err := emit(nil); err != nil {
		return nil, err
	}

	for _, page := range doc.Pages {
		if err := emit(func(ctx *canvas.Context) error {
			return r.drawContentPage(ctx, doc, page)
		}); err != nil {
			return nil, fmt.Errorf("content page %d: %w", page.PageNumber, err)
		}
	}

	featuresStarted := false
	for _, page := range doc.AllergensPages {
		withHeader := !featuresStarted && len(page.Features) > 0
		if withHeader {
			featuresStarted = true
		}
		if err := emit(func(ctx *canvas.Context) error {
			return r.drawAllergensPage(ctx, doc, page, withHeader)
		}); err != nil {
			return nil, fmt.Errorf("allergens page %d: %w", page.PageNumber, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) applyMeta(writer *pdf.PDF, meta layout.DocumentMeta) {
	if writer == nil {
		return
	}
	keywords := strings.Join(meta.Keywords, ", ")
	writer.SetInfo(meta.Title, meta.Subject, keywords, meta.Author, meta.Creator)
}

func (r *Renderer) drawCover(ctx *canvas.Context, doc *layout.Document) error {
	l := doc.Layout
	p := r.painter(ctx, doc, l.Page.CoverMargins)
	p.cursor += coverLogoOffsetMm

	if doc.Cover.LogoURL != "" {
		w := l.Cover.LogoWidthMm
		x := p.left + (p.widthMm-w)/2
		if h, ok := r.drawImage(ctx, doc.Cover.LogoURL, x, p.cursor, w); ok {
			p.cursor += h + coverGapMm
		}
	}
	if p.cursor < layout.PageHeightMm/3 {
		p.cursor = layout.PageHeightMm / 3
	}

	if l.Cover.Title.Visible {
		p.cursor += l.Cover.Title.Margin.Top
		if err := p.text(doc.Cover.Title, l.Cover.Title, p.dims.PDF.CoverTitle); err != nil {
			return err
		}
		p.cursor += l.Cover.Title.Margin.Bottom
	}
	if l.Cover.Subtitle.Visible {
		p.cursor += l.Cover.Subtitle.Margin.Top
		if err := p.text(doc.Cover.Subtitle, l.Cover.Subtitle, p.dims.PDF.CoverSubtitle); err != nil {
			return err
		}
		p.cursor += l.Cover.Subtitle.Margin.Bottom
	}
	return nil
}

func (r *Renderer) drawContentPage(ctx *canvas.Context, doc *layout.Document, page layout.PageContent) error {
	p := r.painter(ctx, doc, page.Margins)

	for i, slice := range page.Categories {
		if i > 0 {
			p.cursor += p.dims.Spacing.BetweenCategories
		}
		if !slice.IsRepeatedTitle {
			if err := p.categoryHeader(slice); err != nil {
				return err
			}
		}
		for j, prod := range slice.Products {
			if j > 0 {
				p.cursor += p.dims.Spacing.BetweenProducts
			}
			if err := p.product(prod); err != nil {
				return err
			}
		}
	}

	if page.ServiceCharge > 0 && doc.Layout.ServicePrice.Visible {
		return p.serviceLine(page)
	}
	return nil
}

func (r *Renderer) drawAllergensPage(ctx *canvas.Context, doc *layout.Document, page layout.AllergensPage, withFeaturesHeader bool) error {
	p := r.painter(ctx, doc, page.Margins)
	a := doc.Layout.Allergens

	if page.ShowTitleAndDescription {
		if a.Title.Visible {
			p.cursor += a.Title.Margin.Top
			if err := p.text(a.TitleText, a.Title, p.dims.PDF.LegendTitle); err != nil {
				return err
			}
			p.cursor += a.Title.Margin.Bottom
		}
		if a.Description.Visible {
			p.cursor += a.Description.Margin.Top
			if err := p.text(a.DescriptionText, a.Description, p.dims.PDF.LegendDesc); err != nil {
				return err
			}
			p.cursor += a.Description.Margin.Bottom
		}
	}

	for _, al := range page.Allergens {
		p.cursor += a.Item.Margin.Top
		top := p.cursor
		textX := p.left
		if al.IconURL != "" {
			r.drawIcon(ctx, al.IconURL, p.left, top, p.dims.Icons.AllergenMm)
			textX += p.dims.Icons.AllergenMm + iconTextGapMm
		}
		title := fmt.Sprintf("%d. %s", al.Number, al.Title)
		if err := p.textAt(title, a.Item, p.dims.PDF.LegendItem, textX); err != nil {
			return err
		}
		if al.Description != "" {
			if err := p.textAt(al.Description, a.Item, p.dims.PDF.LegendItem, textX); err != nil {
				return err
			}
		}
		if al.IconURL != "" && p.cursor-top < p.dims.Icons.AllergenMm {
			p.cursor = top + p.dims.Icons.AllergenMm
		}
		p.cursor += a.Item.Margin.Bottom
	}

	if len(page.Features) == 0 {
		return nil
	}
	pf := doc.Layout.ProductFeatures
	if withFeaturesHeader && pf.SectionTitle.Visible {
		p.cursor += pf.SectionTitle.Margin.Top
		if err := p.text(pf.SectionTitleText, pf.SectionTitle, p.dims.PDF.LegendTitle); err != nil {
			return err
		}
		p.cursor += pf.SectionTitle.Margin.Bottom
	}
	for _, f := range page.Features {
		p.cursor += pf.ItemTitle.Margin.Top
		top := p.cursor
		textX := p.left
		if f.IconURL != "" {
			r.drawIcon(ctx, f.IconURL, p.left, top, p.dims.Icons.FeatureMm)
			textX += p.dims.Icons.FeatureMm + iconTextGapMm
		}
		if err := p.textAt(f.Title, pf.ItemTitle, p.dims.PDF.LegendItem, textX); err != nil {
			return err
		}
		if f.IconURL != "" && p.cursor-top < p.dims.Icons.FeatureMm {
			p.cursor = top + p.dims.Icons.FeatureMm
		}
		p.cursor += pf.ItemTitle.Margin.Bottom
	}
	return nil
}

// painter tracks the vertical cursor while drawing one page. All positions
// are mm from the page's top-left corner.
type painter struct {
	r    *Renderer
	ctx  *canvas.Context
	doc  *layout.Document
	dims layout.Dimensions

	left    float64
	widthMm float64
	widthPx float64
	cursor  float64
}

func (r *Renderer) painter(ctx *canvas.Context, doc *layout.Document, margins menu.Margins) *painter {
	width := layout.PageWidthMm - margins.Left - margins.Right
	return &painter{
		r:       r,
		ctx:     ctx,
		doc:     doc,
		dims:    doc.Dimensions,
		left:    margins.Left,
		widthMm: width,
		widthPx: width * layout.PxPerMm,
		cursor:  margins.Top,
	}
}

func (p *painter) categoryHeader(slice layout.CategorySlice) error {
	el := p.doc.Layout.Elements
	if el.Category.Visible {
		p.cursor += el.Category.Margin.Top
		if err := p.text(slice.Category.Title, el.Category, p.dims.PDF.Category); err != nil {
			return err
		}
		p.cursor += el.Category.Margin.Bottom
	}

	nc := p.doc.Layout.CategoryNotes
	for _, n := range slice.Notes {
		p.cursor += nc.Title.Margin.Top
		top := p.cursor
		textX := p.left
		if n.IconURL != "" {
			p.r.drawIcon(p.ctx, n.IconURL, p.left, top, p.dims.Icons.NoteMm)
			textX += p.dims.Icons.NoteMm + iconTextGapMm
		}
		if nc.Title.Visible {
			if err := p.textAt(n.Title, nc.Title, p.dims.PDF.NoteTitle, textX); err != nil {
				return err
			}
		}
		if nc.Text.Visible {
			if err := p.textAt(n.Text, nc.Text, p.dims.PDF.NoteText, textX); err != nil {
				return err
			}
		}
		if n.IconURL != "" && p.cursor-top < p.dims.Icons.NoteMm {
			p.cursor = top + p.dims.Icons.NoteMm
		}
		p.cursor += nc.Text.Margin.Bottom
	}
	return nil
}

func (p *painter) product(pr menu.Product) error {
	el := p.doc.Layout.Elements

	if el.Title.Visible {
		p.cursor += el.Title.Margin.Top
		top := p.cursor

		price := layout.FormatPrice(pr.PriceStandard)
		priceW := 0.0
		if el.Price.Visible {
			_, pm, err := p.face(el.Price, p.dims.PDF.Price)
			if err != nil {
				return err
			}
			priceW = pm.TextWidth(price) + layout.PriceGapPx
		}
		titleWidthPx := p.widthPx - priceW
		if titleWidthPx < p.widthPx/2 {
			titleWidthPx = p.widthPx / 2
		}

		face, m, err := p.face(el.Title, p.dims.PDF.Title)
		if err != nil {
			return err
		}
		lines := layout.WrapLines(m, pr.Title, titleWidthPx)
		lineMm := layout.MmFromPx(layout.LinePx(p.dims.PDF.Title, 0))
		ascent := face.Metrics().Ascent
		for i, line := range lines {
			p.ctx.DrawText(p.left, top+float64(i)*lineMm+ascent, canvas.NewTextLine(face, line, canvas.Left))
		}
		rowPx := float64(len(lines)) * layout.LinePx(p.dims.PDF.Title, 0)

		if el.Price.Visible {
			pface, _, err := p.face(el.Price, p.dims.PDF.Price)
			if err != nil {
				return err
			}
			p.ctx.DrawText(p.left+p.widthMm, top+pface.Metrics().Ascent, canvas.NewTextLine(pface, price, canvas.Right))
			if lp := layout.LinePx(p.dims.PDF.Price, 0); lp > rowPx {
				rowPx = lp
			}
		}

		p.cursor = top + layout.MmFromPx(rowPx)
		p.cursor += el.Title.Margin.Bottom
	}

	if el.Description.Visible && pr.Description != "" {
		p.cursor += el.Description.Margin.Top
		if err := p.text(pr.Description, el.Description, p.dims.PDF.Description); err != nil {
			return err
		}
		p.cursor += el.Description.Margin.Bottom
	}
	if el.DescriptionEN.Visible && pr.DescriptionEN != "" {
		p.cursor += el.DescriptionEN.Margin.Top
		if err := p.text(pr.DescriptionEN, el.DescriptionEN, p.dims.PDF.DescriptionEN); err != nil {
			return err
		}
		p.cursor += el.DescriptionEN.Margin.Bottom
	}
	if el.Suffix.Visible && pr.HasPriceSuffix && pr.PriceSuffix != "" {
		p.cursor += el.Suffix.Margin.Top
		if err := p.line(pr.PriceSuffix, el.Suffix, p.dims.PDF.Suffix, canvas.Right); err != nil {
			return err
		}
		p.cursor += el.Suffix.Margin.Bottom
	}
	if el.PriceVariants.Visible && pr.HasMultiplePrices {
		p.cursor += el.PriceVariants.Margin.Top
		if pr.PriceVariant1Name != "" {
			v := pr.PriceVariant1Name + " " + layout.FormatPrice(pr.PriceVariant1)
			if err := p.line(v, el.PriceVariants, p.dims.PDF.PriceVariants, canvas.Right); err != nil {
				return err
			}
		}
		if pr.PriceVariant2Name != "" {
			v := pr.PriceVariant2Name + " " + layout.FormatPrice(pr.PriceVariant2)
			if err := p.line(v, el.PriceVariants, p.dims.PDF.PriceVariants, canvas.Right); err != nil {
				return err
			}
		}
		p.cursor += el.PriceVariants.Margin.Bottom
	}
	if len(pr.Features) > 0 {
		x := p.left
		for _, f := range pr.Features {
			if f.IconURL == "" {
				continue
			}
			p.r.drawIcon(p.ctx, f.IconURL, x, p.cursor, p.dims.Icons.FeatureMm)
			x += p.dims.Icons.FeatureMm + iconTextGapMm
		}
		p.cursor += p.dims.Icons.FeatureMm
	}
	if el.AllergensList.Visible && len(pr.Allergens) > 0 {
		p.cursor += el.AllergensList.Margin.Top
		if err := p.text(layout.AllergenLine(pr.Allergens), el.AllergensList, p.dims.PDF.AllergensList); err != nil {
			return err
		}
		p.cursor += el.AllergensList.Margin.Bottom
	}
	return nil
}

// serviceLine draws the service-charge footer inside the reserve the
// pagination engine held back at the bottom of every content page.
func (p *painter) serviceLine(page layout.PageContent) error {
	st := p.doc.Layout.ServicePrice
	reserve := layout.MmFromPx(layout.LinePx(p.dims.PDF.ServicePrice, 0)) + st.Margin.Top + st.Margin.Bottom
	p.cursor = layout.PageHeightMm - page.Margins.Bottom - reserve + st.Margin.Top
	text := "Servizio e coperto " + layout.FormatPrice(page.ServiceCharge)
	return p.text(text, st, p.dims.PDF.ServicePrice)
}

func (p *painter) face(st menu.StyleBlock, sizePt float64) (*canvas.FontFace, layout.Measurer, error) {
	fs := fontSpec(st, sizePt)
	face, err := p.r.fonts.CanvasFace(fs, parseColor(st.FontColor))
	if err != nil {
		return nil, nil, fmt.Errorf("font %q: %w", fs.Family, err)
	}
	m, err := p.r.fonts.Face(fs)
	if err != nil {
		return nil, nil, fmt.Errorf("font %q: %w", fs.Family, err)
	}
	return face, m, nil
}

func (p *painter) text(text string, st menu.StyleBlock, sizePt float64) error {
	return p.textAt(text, st, sizePt, p.left)
}

// textAt draws wrapped text starting at x. The wrap width is always the full
// content width the planner measured against; an icon indent shifts the
// start position only.
func (p *painter) textAt(text string, st menu.StyleBlock, sizePt, x float64) error {
	face, m, err := p.face(st, sizePt)
	if err != nil {
		return err
	}
	lines := layout.WrapLines(m, text, p.widthPx)
	if len(lines) == 0 {
		return nil
	}
	lineMm := layout.MmFromPx(layout.LinePx(sizePt, 0))
	ascent := face.Metrics().Ascent
	align, anchor := textAnchor(st.Alignment, x, p.left+p.widthMm-x)
	for _, line := range lines {
		p.ctx.DrawText(anchor, p.cursor+ascent, canvas.NewTextLine(face, line, align))
		p.cursor += lineMm
	}
	return nil
}

// line draws a single unwrapped line with an explicit alignment.
func (p *painter) line(text string, st menu.StyleBlock, sizePt float64, align canvas.TextAlign) error {
	face, _, err := p.face(st, sizePt)
	if err != nil {
		return err
	}
	anchor := p.left
	switch align {
	case canvas.Center:
		anchor = p.left + p.widthMm/2
	case canvas.Right:
		anchor = p.left + p.widthMm
	}
	p.ctx.DrawText(anchor, p.cursor+face.Metrics().Ascent, canvas.NewTextLine(face, text, align))
	p.cursor += layout.MmFromPx(layout.LinePx(sizePt, 0))
	return nil
}

func fontSpec(st menu.StyleBlock, sizePt float64) layout.FontSpec {
	return layout.FontSpec{Family: st.FontFamily, SizePt: sizePt, Bold: st.Bold(), Italic: st.Italic()}
}

func textAnchor(alignment string, x, widthMm float64) (canvas.TextAlign, float64) {
	switch strings.ToLower(alignment) {
	case "center":
		return canvas.Center, x + widthMm/2
	case "right", "end":
		return canvas.Right, x + widthMm
	default:
		return canvas.Left, x
	}
}

func parseColor(s string) color.Color {
	if s == "" {
		return canvas.Black
	}
	return canvas.Hex(s)
}
