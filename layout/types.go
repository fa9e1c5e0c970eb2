package layout

import "github.com/menuforge/menuforge/menu"

// This file defines the pagination output shared by every renderer and the
// debug JSON dump.

// A4 page size in millimeters. The whole document uses A4 throughout.
const (
	PageWidthMm  = 210.0
	PageHeightMm = 297.0
)

// CategorySlice is the portion of one category assigned to a single page.
// When IsRepeatedTitle is set, the category's title and notes were already
// rendered on an earlier page and must be suppressed here; only the
// spillover products render.
type CategorySlice struct {
	Category        menu.Category       `json:"category"`
	Notes           []menu.CategoryNote `json:"notes,omitempty"`
	Products        []menu.Product      `json:"products"`
	IsRepeatedTitle bool                `json:"isRepeatedTitle"`
}

// PageContent is one paginated A4 content page. Concatenating all pages'
// product lists per category reproduces the category's original product
// list with no gaps, duplicates or reordering.
type PageContent struct {
	PageNumber    int             `json:"pageNumber"`
	Margins       menu.Margins    `json:"margins"`
	Categories    []CategorySlice `json:"categories"`
	ServiceCharge float64         `json:"serviceCharge"`
}

// AllergensPage is one page of the allergens/features legend. The section
// title and description render on the first page only. HasProductFeatures
// marks a page that holds only feature entries (allergens exhausted).
type AllergensPage struct {
	PageNumber              int                   `json:"pageNumber"`
	Margins                 menu.Margins          `json:"margins"`
	ShowTitleAndDescription bool                  `json:"showTitleAndDescription"`
	Allergens               []menu.Allergen       `json:"allergens,omitempty"`
	Features                []menu.ProductFeature `json:"features,omitempty"`
	HasProductFeatures      bool                  `json:"hasProductFeatures"`
}

// CoverContent is the material for the two cover pages.
type CoverContent struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	LogoURL  string `json:"logoUrl,omitempty"`
}

// DocumentMeta holds PDF metadata.
type DocumentMeta struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords,omitempty"`
}

// Document is the complete renderer input: the paginated pages together
// with the standardized dimensions they were measured against. Renderers
// consume only this structure; none may read raw PrintLayout fields that
// have a Dimensions equivalent.
type Document struct {
	Pages          []PageContent     `json:"pages"`
	AllergensPages []AllergensPage   `json:"allergensPages"`
	Dimensions     Dimensions        `json:"dimensions"`
	Cover          CoverContent      `json:"cover"`
	Layout         *menu.PrintLayout `json:"-"`
	Meta           DocumentMeta      `json:"meta"`
}
