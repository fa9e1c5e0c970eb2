// Package menu defines the domain records consumed by the pagination and
// rendering pipeline: categories, products, allergens, features, notes and
// the print-layout configuration.
package menu

// Category groups products on the printed menu. Only active categories are
// paginated, ordered by DisplayOrder.
type Category struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	ImageURL     string `json:"image_url,omitempty"`
	DisplayOrder int    `json:"display_order"`
	IsActive     bool   `json:"is_active"`
}

// Product belongs to exactly one category. Allergens, features and the
// optional label are resolved onto the record before it reaches the
// pagination engine.
type Product struct {
	ID                string           `json:"id"`
	CategoryID        string           `json:"category_id"`
	Title             string           `json:"title"`
	Description       string           `json:"description,omitempty"`
	DescriptionEN     string           `json:"description_en,omitempty"`
	PriceStandard     float64          `json:"price_standard"`
	HasMultiplePrices bool             `json:"has_multiple_prices"`
	PriceVariant1Name string           `json:"price_variant_1_name,omitempty"`
	PriceVariant1     float64          `json:"price_variant_1_value,omitempty"`
	PriceVariant2Name string           `json:"price_variant_2_name,omitempty"`
	PriceVariant2     float64          `json:"price_variant_2_value,omitempty"`
	HasPriceSuffix    bool             `json:"has_price_suffix"`
	PriceSuffix       string           `json:"price_suffix,omitempty"`
	Allergens         []Allergen       `json:"allergens,omitempty"`
	Features          []ProductFeature `json:"features,omitempty"`
	Label             *ProductLabel    `json:"label,omitempty"`
	DisplayOrder      int              `json:"display_order"`
	IsActive          bool             `json:"is_active"`
}

// Allergen is a legally mandated declaration entry. Number is the printed
// reference used in the per-product allergen line.
type Allergen struct {
	ID          string `json:"id"`
	Number      int    `json:"number"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	IconURL     string `json:"icon_url,omitempty"`
}

// ProductFeature is a badge such as "vegan" or "house special", rendered as
// an icon row under the product and listed in the features legend.
type ProductFeature struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	IconURL      string `json:"icon_url,omitempty"`
	DisplayOrder int    `json:"display_order"`
}

// ProductLabel is a short highlight tag ("new", "chef's pick").
type ProductLabel struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Color string `json:"color,omitempty"`
}

// CategoryNote is a remark rendered right after a category title, before the
// category's products. Attachment is via NoteRelation.
type CategoryNote struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Text    string `json:"text"`
	IconURL string `json:"icon_url,omitempty"`
}

// NoteRelation attaches a note to a category.
type NoteRelation struct {
	NoteID     string `json:"note_id"`
	CategoryID string `json:"category_id"`
}

// SiteSettings is the keyed settings blob consumed at the interface boundary.
// Only the fields the print pipeline needs are modeled.
type SiteSettings struct {
	ServiceCharge float64 `json:"service_charge"`
	CoverTitle    string  `json:"cover_title"`
	CoverSubtitle string  `json:"cover_subtitle"`
	LogoURL       string  `json:"logo_url,omitempty"`
}
