package menudsl

import (
	"strings"
	"testing"
)

const sampleSeed = `
// trattoria seed
menu "Trattoria" {
	settings {
		service-charge: 2.50
		cover-title: "Trattoria da Mario"
		cover-subtitle: "Cucina casalinga"
		logo: "logo.png"
	}

	allergen 1 "Glutine" {
		description: "Cereali contenenti glutine"
		icon: "gluten.png"
	}
	allergen 7 "Latte"

	feature "Vegetariano" { icon: "veg.png" }
	label "Novità" { color: "#cc0000" }

	note "Surgelati" {
		text: "In mancanza di prodotto fresco"
		icon: "frozen.png"
	}

	category "Antipasti" {
		description: "Per iniziare"
		note "Surgelati"

		product "Bruschetta" {
			price: 6.50
			description: "Pane, pomodoro, basilico"
			description-en: "Bread, tomato, basil"
			allergens: [1]
			features: ["Vegetariano"]
			label: "Novità"
		}

		product "Tagliere" {
			suffix: "al hg"
			variants {
				"Piccolo" 12
				"Grande" 22.50
			}
			allergens: [1, 7]
		}

		product "Fuori menu" {
			price: 5
			inactive
		}
	}

	category "Vecchia carta" {
		inactive
	}
}
`

func TestParseAndBuildSeed(t *testing.T) {
	f, err := ParseString(sampleSeed)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if f.Name != "Trattoria" {
		t.Fatalf("menu name = %q", f.Name)
	}

	set, err := Build(f)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if set.Settings == nil || set.Settings.ServiceCharge != 2.5 {
		t.Fatalf("settings not built: %+v", set.Settings)
	}
	if set.Settings.CoverTitle != "Trattoria da Mario" || set.Settings.LogoURL != "logo.png" {
		t.Fatalf("settings fields wrong: %+v", set.Settings)
	}

	if len(set.Allergens) != 2 {
		t.Fatalf("expected 2 allergens, got %d", len(set.Allergens))
	}
	if a := set.Allergens[0]; a.Number != 1 || a.Title != "Glutine" || a.Description == "" || a.IconURL != "gluten.png" {
		t.Fatalf("allergen 1 built wrong: %+v", a)
	}
	if len(set.Features) != 1 || set.Features[0].IconURL != "veg.png" {
		t.Fatalf("feature built wrong: %+v", set.Features)
	}
	if len(set.Labels) != 1 || set.Labels[0].Color != "#cc0000" {
		t.Fatalf("label built wrong: %+v", set.Labels)
	}
	if len(set.Notes) != 1 || set.Notes[0].Text == "" {
		t.Fatalf("note built wrong: %+v", set.Notes)
	}

	if len(set.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(set.Categories))
	}
	antipasti := set.Categories[0]
	if antipasti.Title != "Antipasti" || !antipasti.IsActive || antipasti.Description != "Per iniziare" {
		t.Fatalf("category built wrong: %+v", antipasti)
	}
	if set.Categories[1].IsActive {
		t.Fatal("category marked inactive must build inactive")
	}
	if len(set.NoteRelations) != 1 || set.NoteRelations[0].CategoryID != antipasti.ID {
		t.Fatalf("note relation wrong: %+v", set.NoteRelations)
	}

	if len(set.Products) != 3 {
		t.Fatalf("expected 3 products, got %d", len(set.Products))
	}
	bruschetta := set.Products[0]
	if bruschetta.PriceStandard != 6.5 || bruschetta.DescriptionEN != "Bread, tomato, basil" {
		t.Fatalf("product built wrong: %+v", bruschetta)
	}
	if len(bruschetta.Allergens) != 1 || bruschetta.Allergens[0].Number != 1 {
		t.Fatalf("product allergens wrong: %+v", bruschetta.Allergens)
	}
	if len(bruschetta.Features) != 1 || bruschetta.Features[0].Title != "Vegetariano" {
		t.Fatalf("product features wrong: %+v", bruschetta.Features)
	}
	if bruschetta.Label == nil || bruschetta.Label.Title != "Novità" {
		t.Fatalf("product label wrong: %+v", bruschetta.Label)
	}

	tagliere := set.Products[1]
	if !tagliere.HasMultiplePrices || tagliere.PriceVariant1Name != "Piccolo" || tagliere.PriceVariant2 != 22.5 {
		t.Fatalf("variants built wrong: %+v", tagliere)
	}
	if !tagliere.HasPriceSuffix || tagliere.PriceSuffix != "al hg" {
		t.Fatalf("suffix built wrong: %+v", tagliere)
	}
	if len(tagliere.Allergens) != 2 || tagliere.Allergens[1].Number != 7 {
		t.Fatalf("variant product allergens wrong: %+v", tagliere.Allergens)
	}

	if set.Products[2].IsActive {
		t.Fatal("inactive product must build inactive")
	}
	for i, p := range set.Products {
		if p.DisplayOrder != i {
			t.Fatalf("product %d display order = %d", i, p.DisplayOrder)
		}
	}
}

func TestBuildRejectsUnknownReferences(t *testing.T) {
	cases := map[string]string{
		"unknown allergen": `menu "m" {
			category "c" { product "p" { allergens: [4] } }
		}`,
		"unknown feature": `menu "m" {
			category "c" { product "p" { features: ["Nope"] } }
		}`,
		"unknown label": `menu "m" {
			category "c" { product "p" { label: "Nope" } }
		}`,
		"unknown note": `menu "m" {
			category "c" { note "Nope" }
		}`,
	}
	for name, src := range cases {
		f, err := ParseString(src)
		if err != nil {
			t.Fatalf("%s: parse: %v", name, err)
		}
		if _, err := Build(f); err == nil || !strings.Contains(err.Error(), "unknown") {
			t.Fatalf("%s: expected unknown-reference error, got %v", name, err)
		}
	}
}

func TestBuildRejectsDuplicateAllergen(t *testing.T) {
	f, err := ParseString(`menu "m" {
		allergen 1 "Glutine"
		allergen 1 "Latte"
	}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := Build(f); err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate-allergen error, got %v", err)
	}
}

func TestParseRejectsMalformedInput(t *testing.T) {
	for _, src := range []string{
		`menu "m" {`,
		`category "c" {}`,
		`menu "m" { product "loose" {} }`,
	} {
		if _, err := ParseString(src); err == nil {
			t.Fatalf("expected parse error for %q", src)
		}
	}
}

func TestParseComments(t *testing.T) {
	f, err := ParseString(`
# hash comment
menu "m" { // trailing
	allergen 1 "Glutine" # another
}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(f.Entries) != 1 || f.Entries[0].Allergen == nil {
		t.Fatalf("comments must be elided, got %+v", f.Entries)
	}
}
