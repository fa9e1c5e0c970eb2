package menudsl

import (
	"fmt"

	"github.com/menuforge/menuforge/menu"
	"github.com/menuforge/menuforge/store"
)

// Build converts a parsed seed file into a complete dataset. Display order
// follows declaration order; allergen references resolve by number and
// feature/label references by title, with unknown references rejected here
// rather than at insert time.
func Build(f *File) (store.MenuSet, error) {
	var set store.MenuSet

	allergens := map[int]bool{}
	features := map[string]bool{}
	labels := map[string]bool{}
	notes := map[string]menu.CategoryNote{}

	for _, e := range f.Entries {
		switch {
		case e.Settings != nil:
			st, err := buildSettings(e.Settings)
			if err != nil {
				return set, err
			}
			set.Settings = st

		case e.Allergen != nil:
			a := menu.Allergen{Number: e.Allergen.Number, Title: string(e.Allergen.Title)}
			for _, p := range e.Allergen.Props {
				switch p.Key {
				case "description":
					a.Description = p.Value.str()
				case "icon":
					a.IconURL = p.Value.str()
				default:
					return set, fmt.Errorf("%s: unknown allergen key %q", p.Pos, p.Key)
				}
			}
			if allergens[a.Number] {
				return set, fmt.Errorf("%s: duplicate allergen %d", e.Allergen.Pos, a.Number)
			}
			allergens[a.Number] = true
			set.Allergens = append(set.Allergens, a)

		case e.Feature != nil:
			ft := menu.ProductFeature{Title: string(e.Feature.Title), DisplayOrder: len(set.Features)}
			for _, p := range e.Feature.Props {
				switch p.Key {
				case "icon":
					ft.IconURL = p.Value.str()
				default:
					return set, fmt.Errorf("%s: unknown feature key %q", p.Pos, p.Key)
				}
			}
			features[ft.Title] = true
			set.Features = append(set.Features, ft)

		case e.Label != nil:
			lb := menu.ProductLabel{Title: string(e.Label.Title)}
			for _, p := range e.Label.Props {
				switch p.Key {
				case "color":
					lb.Color = p.Value.str()
				default:
					return set, fmt.Errorf("%s: unknown label key %q", p.Pos, p.Key)
				}
			}
			labels[lb.Title] = true
			set.Labels = append(set.Labels, lb)

		case e.Note != nil:
			n := menu.CategoryNote{ID: "note-" + string(e.Note.Title), Title: string(e.Note.Title)}
			for _, p := range e.Note.Props {
				switch p.Key {
				case "text":
					n.Text = p.Value.str()
				case "icon":
					n.IconURL = p.Value.str()
				default:
					return set, fmt.Errorf("%s: unknown note key %q", p.Pos, p.Key)
				}
			}
			notes[n.Title] = n
			set.Notes = append(set.Notes, n)

		case e.Category != nil:
			if err := buildCategory(&set, e.Category, allergens, features, labels, notes); err != nil {
				return set, err
			}
		}
	}
	return set, nil
}

func buildSettings(decl *SettingsDecl) (*menu.SiteSettings, error) {
	st := &menu.SiteSettings{}
	for _, p := range decl.Props {
		switch p.Key {
		case "service-charge":
			st.ServiceCharge = p.Value.num()
		case "cover-title":
			st.CoverTitle = p.Value.str()
		case "cover-subtitle":
			st.CoverSubtitle = p.Value.str()
		case "logo":
			st.LogoURL = p.Value.str()
		default:
			return nil, fmt.Errorf("%s: unknown settings key %q", p.Pos, p.Key)
		}
	}
	return st, nil
}

func buildCategory(set *store.MenuSet, decl *CategoryDecl, allergens map[int]bool, features, labels map[string]bool, notes map[string]menu.CategoryNote) error {
	cat := menu.Category{
		ID:           fmt.Sprintf("cat-%d", len(set.Categories)+1),
		Title:        string(decl.Title),
		DisplayOrder: len(set.Categories),
		IsActive:     true,
	}

	var products []menu.Product
	for _, item := range decl.Items {
		switch {
		case item.Inactive:
			cat.IsActive = false

		case item.NoteRef != nil:
			n, ok := notes[string(item.NoteRef.Title)]
			if !ok {
				return fmt.Errorf("%s: category %q references unknown note %q", decl.Pos, cat.Title, item.NoteRef.Title)
			}
			set.NoteRelations = append(set.NoteRelations, menu.NoteRelation{NoteID: n.ID, CategoryID: cat.ID})

		case item.Prop != nil:
			switch item.Prop.Key {
			case "description":
				cat.Description = item.Prop.Value.str()
			case "image":
				cat.ImageURL = item.Prop.Value.str()
			default:
				return fmt.Errorf("%s: unknown category key %q", item.Prop.Pos, item.Prop.Key)
			}

		case item.Product != nil:
			prod, err := buildProduct(item.Product, cat.ID, len(products), allergens, features, labels)
			if err != nil {
				return err
			}
			products = append(products, prod)
		}
	}

	set.Categories = append(set.Categories, cat)
	set.Products = append(set.Products, products...)
	return nil
}

func buildProduct(decl *ProductDecl, categoryID string, order int, allergens map[int]bool, features, labels map[string]bool) (menu.Product, error) {
	p := menu.Product{
		CategoryID:   categoryID,
		Title:        string(decl.Title),
		DisplayOrder: order,
		IsActive:     true,
	}

	for _, item := range decl.Items {
		switch {
		case item.Inactive:
			p.IsActive = false

		case item.Variants != nil:
			entries := item.Variants.Entries
			if len(entries) == 0 || len(entries) > 2 {
				return p, fmt.Errorf("%s: product %q needs 1 or 2 price variants", decl.Pos, p.Title)
			}
			p.HasMultiplePrices = true
			p.PriceVariant1Name = string(entries[0].Name)
			p.PriceVariant1 = entries[0].Price
			if len(entries) == 2 {
				p.PriceVariant2Name = string(entries[1].Name)
				p.PriceVariant2 = entries[1].Price
			}

		case item.Prop != nil:
			prop := item.Prop
			switch prop.Key {
			case "price":
				p.PriceStandard = prop.Value.num()
			case "description":
				p.Description = prop.Value.str()
			case "description-en":
				p.DescriptionEN = prop.Value.str()
			case "suffix":
				p.HasPriceSuffix = true
				p.PriceSuffix = prop.Value.str()
			case "allergens":
				for _, v := range prop.Value.list() {
					num := int(v.num())
					if !allergens[num] {
						return p, fmt.Errorf("%s: product %q references unknown allergen %d", prop.Pos, p.Title, num)
					}
					p.Allergens = append(p.Allergens, menu.Allergen{Number: num})
				}
			case "features":
				for _, v := range prop.Value.list() {
					title := v.str()
					if !features[title] {
						return p, fmt.Errorf("%s: product %q references unknown feature %q", prop.Pos, p.Title, title)
					}
					p.Features = append(p.Features, menu.ProductFeature{Title: title})
				}
			case "label":
				title := prop.Value.str()
				if !labels[title] {
					return p, fmt.Errorf("%s: product %q references unknown label %q", prop.Pos, p.Title, title)
				}
				p.Label = &menu.ProductLabel{Title: title}
			default:
				return p, fmt.Errorf("%s: unknown product key %q", prop.Pos, prop.Key)
			}
		}
	}
	return p, nil
}

func (v *Value) str() string {
	if v == nil || v.Str == nil {
		return ""
	}
	return string(*v.Str)
}

func (v *Value) num() float64 {
	if v == nil || v.Num == nil {
		return 0
	}
	return *v.Num
}

func (v *Value) list() []*Value {
	if v == nil || v.List == nil {
		return nil
	}
	return v.List.Items
}
