package menu

// Per-field defaults. A stored layout may be partial; ApplyDefaults fills
// every zero numeric field and empty string so that downstream unit
// conversion never sees an unset value.

const (
	defaultFontFamily = "Inter"
	defaultFontColor  = "#1e1e1e"

	DefaultCategoryFontSize      = 16.0 // pt
	DefaultTitleFontSize         = 12.0
	DefaultDescriptionFontSize   = 10.0
	DefaultDescriptionENFontSize = 9.0
	DefaultPriceFontSize         = 12.0
	DefaultSuffixFontSize        = 9.0
	DefaultPriceVariantsFontSize = 10.0
	DefaultAllergensListFontSize = 8.0
	DefaultNoteTitleFontSize     = 10.0
	DefaultNoteTextFontSize      = 9.0
	DefaultServicePriceFontSize  = 9.0
	DefaultCoverTitleFontSize    = 28.0
	DefaultCoverSubtitleFontSize = 14.0
	DefaultLegendTitleFontSize   = 16.0
	DefaultLegendDescFontSize    = 10.0
	DefaultLegendItemFontSize    = 9.0

	DefaultIconSizeMm          = 5.0
	DefaultLogoWidthMm         = 60.0
	DefaultBetweenCategoriesMm = 8.0
	DefaultBetweenProductsMm   = 4.0
)

var defaultMargins = Margins{Top: 20, Right: 15, Bottom: 20, Left: 15}

func defaultStyle(sizePt float64) StyleBlock {
	return StyleBlock{
		FontFamily: defaultFontFamily,
		FontSize:   sizePt,
		FontStyle:  "normal",
		FontColor:  defaultFontColor,
		Alignment:  "left",
		Visible:    true,
	}
}

// DefaultPrintLayout returns a complete layout with every field set. New
// layouts are created from this document and edited from there.
func DefaultPrintLayout() PrintLayout {
	l := PrintLayout{
		Name: "Default",
		Page: PageConfig{
			CoverMargins:     defaultMargins,
			ContentMargins:   defaultMargins,
			AllergensMargins: defaultMargins,
			OddMargins:       defaultMargins,
			EvenMargins:      defaultMargins,
		},
		Cover: CoverConfig{
			LogoWidthMm: DefaultLogoWidthMm,
			Title:       defaultStyle(DefaultCoverTitleFontSize),
			Subtitle:    defaultStyle(DefaultCoverSubtitleFontSize),
		},
		Elements: ElementStyles{
			Category:      defaultStyle(DefaultCategoryFontSize),
			Title:         defaultStyle(DefaultTitleFontSize),
			Description:   defaultStyle(DefaultDescriptionFontSize),
			DescriptionEN: defaultStyle(DefaultDescriptionENFontSize),
			Price:         defaultStyle(DefaultPriceFontSize),
			Suffix:        defaultStyle(DefaultSuffixFontSize),
			PriceVariants: defaultStyle(DefaultPriceVariantsFontSize),
			AllergensList: defaultStyle(DefaultAllergensListFontSize),
		},
		CategoryNotes: CategoryNotesConfig{
			IconSizeMm: DefaultIconSizeMm,
			Title:      defaultStyle(DefaultNoteTitleFontSize),
			Text:       defaultStyle(DefaultNoteTextFontSize),
		},
		Allergens: AllergensConfig{
			TitleText:       "Allergeni",
			DescriptionText: "Elenco delle sostanze o prodotti che provocano allergie o intolleranze presenti nei nostri piatti.",
			Title:           defaultStyle(DefaultLegendTitleFontSize),
			Description:     defaultStyle(DefaultLegendDescFontSize),
			Item:            defaultStyle(DefaultLegendItemFontSize),
			IconSizeMm:      DefaultIconSizeMm,
		},
		ProductFeatures: ProductFeaturesConfig{
			SectionTitleText: "Caratteristiche",
			SectionTitle:     defaultStyle(DefaultLegendTitleFontSize),
			IconSizeMm:       DefaultIconSizeMm,
			ItemTitle:        defaultStyle(DefaultLegendItemFontSize),
		},
		ServicePrice: defaultStyle(DefaultServicePriceFontSize),
		Spacing: SpacingConfig{
			BetweenCategories: DefaultBetweenCategoriesMm,
			BetweenProducts:   DefaultBetweenProductsMm,
		},
	}
	l.Cover.Title.Alignment = "center"
	l.Cover.Subtitle.Alignment = "center"
	l.Elements.Category.FontStyle = "bold"
	l.Elements.Title.FontStyle = "bold"
	l.Elements.DescriptionEN.FontStyle = "italic"
	l.ServicePrice.Alignment = "center"
	return l
}

// ApplyDefaults fills unset fields of l in place. Zero font sizes, empty
// families/colors/alignments and zero margin sets fall back to the default
// layout's values. Visibility is left as stored; DecodePrintLayout already
// resolves it for document input.
func ApplyDefaults(l *PrintLayout) {
	d := DefaultPrintLayout()

	fillMargins(&l.Page.CoverMargins, d.Page.CoverMargins)
	fillMargins(&l.Page.ContentMargins, d.Page.ContentMargins)
	fillMargins(&l.Page.AllergensMargins, d.Page.AllergensMargins)
	fillMargins(&l.Page.OddMargins, l.Page.ContentMargins)
	fillMargins(&l.Page.EvenMargins, l.Page.ContentMargins)
	fillMargins(&l.Page.OddAllergensMargins, l.Page.AllergensMargins)
	fillMargins(&l.Page.EvenAllergensMargins, l.Page.AllergensMargins)

	if l.Cover.LogoWidthMm <= 0 {
		l.Cover.LogoWidthMm = d.Cover.LogoWidthMm
	}
	fillStyle(&l.Cover.Title, d.Cover.Title)
	fillStyle(&l.Cover.Subtitle, d.Cover.Subtitle)

	fillStyle(&l.Elements.Category, d.Elements.Category)
	fillStyle(&l.Elements.Title, d.Elements.Title)
	fillStyle(&l.Elements.Description, d.Elements.Description)
	fillStyle(&l.Elements.DescriptionEN, d.Elements.DescriptionEN)
	fillStyle(&l.Elements.Price, d.Elements.Price)
	fillStyle(&l.Elements.Suffix, d.Elements.Suffix)
	fillStyle(&l.Elements.PriceVariants, d.Elements.PriceVariants)
	fillStyle(&l.Elements.AllergensList, d.Elements.AllergensList)

	if l.CategoryNotes.IconSizeMm <= 0 {
		l.CategoryNotes.IconSizeMm = d.CategoryNotes.IconSizeMm
	}
	fillStyle(&l.CategoryNotes.Title, d.CategoryNotes.Title)
	fillStyle(&l.CategoryNotes.Text, d.CategoryNotes.Text)

	if l.Allergens.TitleText == "" {
		l.Allergens.TitleText = d.Allergens.TitleText
	}
	if l.Allergens.DescriptionText == "" {
		l.Allergens.DescriptionText = d.Allergens.DescriptionText
	}
	fillStyle(&l.Allergens.Title, d.Allergens.Title)
	fillStyle(&l.Allergens.Description, d.Allergens.Description)
	fillStyle(&l.Allergens.Item, d.Allergens.Item)
	if l.Allergens.IconSizeMm <= 0 {
		l.Allergens.IconSizeMm = d.Allergens.IconSizeMm
	}

	if l.ProductFeatures.SectionTitleText == "" {
		l.ProductFeatures.SectionTitleText = d.ProductFeatures.SectionTitleText
	}
	fillStyle(&l.ProductFeatures.SectionTitle, d.ProductFeatures.SectionTitle)
	if l.ProductFeatures.IconSizeMm <= 0 {
		l.ProductFeatures.IconSizeMm = d.ProductFeatures.IconSizeMm
	}
	fillStyle(&l.ProductFeatures.ItemTitle, d.ProductFeatures.ItemTitle)

	fillStyle(&l.ServicePrice, d.ServicePrice)

	if l.Spacing.BetweenCategories <= 0 {
		l.Spacing.BetweenCategories = d.Spacing.BetweenCategories
	}
	if l.Spacing.BetweenProducts <= 0 {
		l.Spacing.BetweenProducts = d.Spacing.BetweenProducts
	}
}

func fillMargins(m *Margins, def Margins) {
	if m.IsZero() {
		*m = def
	}
}

func fillStyle(s *StyleBlock, def StyleBlock) {
	if s.FontFamily == "" {
		s.FontFamily = def.FontFamily
	}
	if s.FontSize <= 0 {
		s.FontSize = def.FontSize
	}
	if s.FontStyle == "" {
		s.FontStyle = def.FontStyle
	}
	if s.FontColor == "" {
		s.FontColor = def.FontColor
	}
	if s.Alignment == "" {
		s.Alignment = def.Alignment
	}
}
