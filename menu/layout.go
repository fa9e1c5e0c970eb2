package menu

import "encoding/json"

// This file defines the user-authored print-layout configuration. Every
// numeric style field resolves to a defined value after ApplyDefaults; no
// style lookup may be undefined at render time.

// Margins is a top/right/bottom/left set in millimeters.
type Margins struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// IsZero reports whether no side has been set.
func (m Margins) IsZero() bool {
	return m.Top == 0 && m.Right == 0 && m.Bottom == 0 && m.Left == 0
}

// StyleBlock is the reusable font/color/alignment/margin/visibility shape
// applied to any single text element. FontSize is in points.
type StyleBlock struct {
	FontFamily string  `json:"fontFamily"`
	FontSize   float64 `json:"fontSize"`
	FontStyle  string  `json:"fontStyle"` // normal | bold | italic | bold italic
	FontColor  string  `json:"fontColor"`
	Alignment  string  `json:"alignment"` // left | center | right
	Margin     Margins `json:"margin"`
	Visible    bool    `json:"visible"`
}

// UnmarshalJSON decodes a style block with visibility defaulting to true.
// Hand-authored layout JSON routinely omits the visible key; only an
// explicit false hides an element.
func (s *StyleBlock) UnmarshalJSON(data []byte) error {
	type styleBlock StyleBlock
	tmp := styleBlock(*s)
	tmp.Visible = true
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*s = StyleBlock(tmp)
	return nil
}

// DecodePrintLayout decodes a stored or hand-authored layout document on
// top of the default layout, so blocks missing from the document keep the
// default values instead of collapsing to the invisible zero block.
func DecodePrintLayout(data []byte) (PrintLayout, error) {
	l := DefaultPrintLayout()
	if err := json.Unmarshal(data, &l); err != nil {
		return PrintLayout{}, err
	}
	return l, nil
}

// Bold reports whether the style's weight is bold.
func (s StyleBlock) Bold() bool {
	return s.FontStyle == "bold" || s.FontStyle == "bold italic"
}

// Italic reports whether the style slants.
func (s StyleBlock) Italic() bool {
	return s.FontStyle == "italic" || s.FontStyle == "bold italic"
}

// PageConfig holds the per-page-kind margin sets. When
// UseDistinctMarginsForPages is set, content pages alternate between
// OddMargins and EvenMargins by page number; same for allergens pages.
type PageConfig struct {
	CoverMargins     Margins `json:"coverMargins"`
	ContentMargins   Margins `json:"contentMargins"`
	AllergensMargins Margins `json:"allergensMargins"`

	UseDistinctMarginsForPages bool    `json:"useDistinctMarginsForPages"`
	OddMargins                 Margins `json:"oddMargins"`
	EvenMargins                Margins `json:"evenMargins"`

	UseDistinctMarginsForAllergensPages bool    `json:"useDistinctMarginsForAllergensPages"`
	OddAllergensMargins                 Margins `json:"oddAllergensMargins"`
	EvenAllergensMargins                Margins `json:"evenAllergensMargins"`
}

// CoverConfig styles the first cover page. TitleText and SubtitleText
// override the site settings when set.
type CoverConfig struct {
	LogoWidthMm  float64    `json:"logoWidthMm"`
	TitleText    string     `json:"titleText,omitempty"`
	SubtitleText string     `json:"subtitleText,omitempty"`
	Title        StyleBlock `json:"title"`
	Subtitle     StyleBlock `json:"subtitle"`
}

// ElementStyles is the per-field style for product rows.
type ElementStyles struct {
	Category      StyleBlock `json:"category"`
	Title         StyleBlock `json:"title"`
	Description   StyleBlock `json:"description"`
	DescriptionEN StyleBlock `json:"descriptionEng"`
	Price         StyleBlock `json:"price"`
	Suffix        StyleBlock `json:"suffix"`
	PriceVariants StyleBlock `json:"priceVariants"`
	AllergensList StyleBlock `json:"allergensList"`
}

// CategoryNotesConfig styles the note block under a category title.
type CategoryNotesConfig struct {
	IconSizeMm float64    `json:"iconSizeMm"`
	Title      StyleBlock `json:"title"`
	Text       StyleBlock `json:"text"`
}

// AllergensConfig styles the allergens legend pages. TitleText and
// DescriptionText are the authored legend heading contents.
type AllergensConfig struct {
	TitleText       string     `json:"titleText"`
	DescriptionText string     `json:"descriptionText"`
	Title           StyleBlock `json:"title"`
	Description     StyleBlock `json:"description"`
	Item            StyleBlock `json:"item"`
	IconSizeMm      float64    `json:"iconSizeMm"`
}

// ProductFeaturesConfig styles the features legend section.
type ProductFeaturesConfig struct {
	SectionTitleText string     `json:"sectionTitleText"`
	SectionTitle     StyleBlock `json:"sectionTitle"`
	IconSizeMm       float64    `json:"iconSizeMm"`
	ItemTitle        StyleBlock `json:"itemTitle"`
}

// SpacingConfig is the inter-element spacing in millimeters.
type SpacingConfig struct {
	BetweenCategories float64 `json:"betweenCategories"`
	BetweenProducts   float64 `json:"betweenProducts"`
}

// PrintLayout is the full user-configurable style document driving all
// renderers. Exactly one layout is active at a time.
type PrintLayout struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`

	Page            PageConfig            `json:"page"`
	Cover           CoverConfig           `json:"cover"`
	Elements        ElementStyles         `json:"elements"`
	CategoryNotes   CategoryNotesConfig   `json:"categoryNotes"`
	Allergens       AllergensConfig       `json:"allergens"`
	ProductFeatures ProductFeaturesConfig `json:"productFeatures"`
	ServicePrice    StyleBlock            `json:"servicePrice"`
	Spacing         SpacingConfig         `json:"spacing"`
}
