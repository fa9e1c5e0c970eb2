// Package compose runs the full print pipeline: fetch the dataset and the
// active layout from the store, standardize dimensions, paginate content
// and legend, and hand the resulting document to a renderer. Every surface
// (preview, PDF, browser print, debug dump) goes through BuildDocument so
// they can never disagree about pagination.
package compose

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/menuforge/menuforge/fonts"
	"github.com/menuforge/menuforge/layout"
	"github.com/menuforge/menuforge/menu"
	"github.com/menuforge/menuforge/store"
)

const pdfCreator = "menuforge"

// Pipeline bundles the collaborators BuildDocument needs.
type Pipeline struct {
	Store  *store.Store
	Fonts  *fonts.Registry
	Logger *log.Logger
}

func New(st *store.Store, reg *fonts.Registry, logger *log.Logger) *Pipeline {
	if reg == nil {
		reg = fonts.Default()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Pipeline{Store: st, Fonts: reg, Logger: logger}
}

// BuildDocument assembles the complete renderer input from current store
// state. The returned document is a self-contained snapshot: later store
// writes do not affect it. store.ErrNoActiveLayout passes through untouched
// so callers can render their placeholder.
func (p *Pipeline) BuildDocument(ctx context.Context) (*layout.Document, error) {
	l, err := p.Store.ActiveLayout(ctx)
	if err != nil {
		return nil, err
	}
	menu.ApplyDefaults(l)

	categories, err := p.Store.ActiveCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	products, err := p.Store.ProductsByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	notes, err := p.Store.Notes(ctx)
	if err != nil {
		return nil, fmt.Errorf("load notes: %w", err)
	}
	relations, err := p.Store.NoteRelations(ctx)
	if err != nil {
		return nil, fmt.Errorf("load note relations: %w", err)
	}
	allergens, err := p.Store.Allergens(ctx)
	if err != nil {
		return nil, fmt.Errorf("load allergens: %w", err)
	}
	features, err := p.Store.Features(ctx)
	if err != nil {
		return nil, fmt.Errorf("load features: %w", err)
	}
	settings, err := p.Store.SiteSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	measure := layout.NewTextMeasure(p.Fonts, p.Logger)

	doc := &layout.Document{
		Pages: layout.Paginate(layout.PaginateInput{
			Categories:         categories,
			ProductsByCategory: products,
			Notes:              notes,
			NoteRelations:      relations,
			ServiceCharge:      settings.ServiceCharge,
			Layout:             l,
			Measure:            measure,
		}),
		AllergensPages: layout.PaginateAllergens(layout.AllergensInput{
			Allergens: allergens,
			Features:  features,
			Layout:    l,
			Measure:   measure,
		}),
		Dimensions: layout.StandardizeDimensions(l),
		Cover:      coverContent(l, settings),
		Layout:     l,
		Meta: layout.DocumentMeta{
			Title:   settings.CoverTitle,
			Subject: "Menu",
			Creator: pdfCreator,
		},
	}
	p.Logger.Debug("document built",
		"pages", len(doc.Pages),
		"allergenPages", len(doc.AllergensPages),
		"layout", l.ID)
	return doc, nil
}

// coverContent prefers explicit layout cover texts and falls back to the
// site settings.
func coverContent(l *menu.PrintLayout, st menu.SiteSettings) layout.CoverContent {
	c := layout.CoverContent{
		Title:    l.Cover.TitleText,
		Subtitle: l.Cover.SubtitleText,
		LogoURL:  st.LogoURL,
	}
	if c.Title == "" {
		c.Title = st.CoverTitle
	}
	if c.Subtitle == "" {
		c.Subtitle = st.CoverSubtitle
	}
	return c
}
