package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/menuforge/menuforge/menu"
)

// ActiveCategories returns the active categories in display order.
func (s *Store) ActiveCategories(ctx context.Context) ([]menu.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, image_url, display_order, is_active
		FROM categories WHERE is_active = 1
		ORDER BY display_order, title`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var out []menu.Category
	for rows.Next() {
		var c menu.Category
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.ImageURL, &c.DisplayOrder, &c.IsActive); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ProductsByCategory returns every active product grouped by category, in
// display order, with allergens, features and the optional label resolved.
func (s *Store) ProductsByCategory(ctx context.Context) (map[string][]menu.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.category_id, p.title, p.description, p.description_en,
		       p.price_standard, p.has_multiple_prices,
		       p.price_variant1_name, p.price_variant1,
		       p.price_variant2_name, p.price_variant2,
		       p.has_price_suffix, p.price_suffix,
		       p.display_order, p.is_active,
		       l.id, l.title, l.color
		FROM products p
		LEFT JOIN product_labels l ON l.id = p.label_id
		WHERE p.is_active = 1
		ORDER BY p.category_id, p.display_order, p.title`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]menu.Product)
	index := make(map[string]*menu.Product)
	for rows.Next() {
		var p menu.Product
		var labelID, labelTitle, labelColor sql.NullString
		if err := rows.Scan(
			&p.ID, &p.CategoryID, &p.Title, &p.Description, &p.DescriptionEN,
			&p.PriceStandard, &p.HasMultiplePrices,
			&p.PriceVariant1Name, &p.PriceVariant1,
			&p.PriceVariant2Name, &p.PriceVariant2,
			&p.HasPriceSuffix, &p.PriceSuffix,
			&p.DisplayOrder, &p.IsActive,
			&labelID, &labelTitle, &labelColor,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		if labelID.Valid {
			p.Label = &menu.ProductLabel{ID: labelID.String, Title: labelTitle.String, Color: labelColor.String}
		}
		out[p.CategoryID] = append(out[p.CategoryID], p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// index after the appends settle so the pointers stay valid
	for cid := range out {
		list := out[cid]
		for i := range list {
			index[list[i].ID] = &list[i]
		}
	}

	if err := s.attachAllergens(ctx, index); err != nil {
		return nil, err
	}
	if err := s.attachFeatures(ctx, index); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) attachAllergens(ctx context.Context, products map[string]*menu.Product) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT pa.product_id, a.id, a.number, a.title, a.description, a.icon_url
		FROM product_allergens pa
		JOIN allergens a ON a.id = pa.allergen_id
		ORDER BY pa.product_id, a.number`)
	if err != nil {
		return fmt.Errorf("query product allergens: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var productID string
		var a menu.Allergen
		if err := rows.Scan(&productID, &a.ID, &a.Number, &a.Title, &a.Description, &a.IconURL); err != nil {
			return fmt.Errorf("scan product allergen: %w", err)
		}
		if p, ok := products[productID]; ok {
			p.Allergens = append(p.Allergens, a)
		}
	}
	return rows.Err()
}

func (s *Store) attachFeatures(ctx context.Context, products map[string]*menu.Product) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT pf.product_id, f.id, f.title, f.icon_url, f.display_order
		FROM product_feature_relations pf
		JOIN product_features f ON f.id = pf.feature_id
		ORDER BY pf.product_id, f.display_order`)
	if err != nil {
		return fmt.Errorf("query product features: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var productID string
		var f menu.ProductFeature
		if err := rows.Scan(&productID, &f.ID, &f.Title, &f.IconURL, &f.DisplayOrder); err != nil {
			return fmt.Errorf("scan product feature: %w", err)
		}
		if p, ok := products[productID]; ok {
			p.Features = append(p.Features, f)
		}
	}
	return rows.Err()
}

// Notes returns all category notes.
func (s *Store) Notes(ctx context.Context) ([]menu.CategoryNote, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, text, icon_url FROM category_notes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()
	var out []menu.CategoryNote
	for rows.Next() {
		var n menu.CategoryNote
		if err := rows.Scan(&n.ID, &n.Title, &n.Text, &n.IconURL); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// NoteRelations returns every note attachment.
func (s *Store) NoteRelations(ctx context.Context) ([]menu.NoteRelation, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT note_id, category_id FROM category_note_relations`)
	if err != nil {
		return nil, fmt.Errorf("query note relations: %w", err)
	}
	defer rows.Close()
	var out []menu.NoteRelation
	for rows.Next() {
		var r menu.NoteRelation
		if err := rows.Scan(&r.NoteID, &r.CategoryID); err != nil {
			return nil, fmt.Errorf("scan note relation: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Allergens returns the full legend, ordered by declaration number.
func (s *Store) Allergens(ctx context.Context) ([]menu.Allergen, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, number, title, description, icon_url FROM allergens ORDER BY number`)
	if err != nil {
		return nil, fmt.Errorf("query allergens: %w", err)
	}
	defer rows.Close()
	var out []menu.Allergen
	for rows.Next() {
		var a menu.Allergen
		if err := rows.Scan(&a.ID, &a.Number, &a.Title, &a.Description, &a.IconURL); err != nil {
			return nil, fmt.Errorf("scan allergen: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Features returns the feature legend in display order.
func (s *Store) Features(ctx context.Context) ([]menu.ProductFeature, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, icon_url, display_order FROM product_features ORDER BY display_order, title`)
	if err != nil {
		return nil, fmt.Errorf("query features: %w", err)
	}
	defer rows.Close()
	var out []menu.ProductFeature
	for rows.Next() {
		var f menu.ProductFeature
		if err := rows.Scan(&f.ID, &f.Title, &f.IconURL, &f.DisplayOrder); err != nil {
			return nil, fmt.Errorf("scan feature: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// MenuSet is a complete menu dataset as produced by the seed importer.
// Products reference allergens by number and features/labels by title;
// ReplaceMenu resolves those references while inserting.
type MenuSet struct {
	Categories    []menu.Category
	Products      []menu.Product
	Notes         []menu.CategoryNote
	NoteRelations []menu.NoteRelation
	Allergens     []menu.Allergen
	Features      []menu.ProductFeature
	Labels        []menu.ProductLabel
	Settings      *menu.SiteSettings
}

// ReplaceMenu swaps the whole menu dataset in one transaction. Existing
// menu rows are removed; layouts and settings survive unless the set
// carries new settings.
func (s *Store) ReplaceMenu(ctx context.Context, set MenuSet) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{
		"product_allergens", "product_feature_relations", "category_note_relations",
		"products", "category_notes", "categories",
		"allergens", "product_features", "product_labels",
	} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	allergenByNumber := make(map[int]string, len(set.Allergens))
	for i := range set.Allergens {
		a := &set.Allergens[i]
		ensureID(&a.ID)
		allergenByNumber[a.Number] = a.ID
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO allergens (id, number, title, description, icon_url) VALUES (?, ?, ?, ?, ?)`,
			a.ID, a.Number, a.Title, a.Description, a.IconURL); err != nil {
			return fmt.Errorf("insert allergen %d: %w", a.Number, err)
		}
	}

	featureByTitle := make(map[string]string, len(set.Features))
	for i := range set.Features {
		f := &set.Features[i]
		ensureID(&f.ID)
		featureByTitle[f.Title] = f.ID
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO product_features (id, title, icon_url, display_order) VALUES (?, ?, ?, ?)`,
			f.ID, f.Title, f.IconURL, f.DisplayOrder); err != nil {
			return fmt.Errorf("insert feature %q: %w", f.Title, err)
		}
	}

	labelByTitle := make(map[string]string, len(set.Labels))
	for i := range set.Labels {
		l := &set.Labels[i]
		ensureID(&l.ID)
		labelByTitle[l.Title] = l.ID
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO product_labels (id, title, color) VALUES (?, ?, ?)`,
			l.ID, l.Title, l.Color); err != nil {
			return fmt.Errorf("insert label %q: %w", l.Title, err)
		}
	}

	for i := range set.Categories {
		c := &set.Categories[i]
		ensureID(&c.ID)
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO categories (id, title, description, image_url, display_order, is_active)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			c.ID, c.Title, c.Description, c.ImageURL, c.DisplayOrder, c.IsActive); err != nil {
			return fmt.Errorf("insert category %q: %w", c.Title, err)
		}
	}

	for i := range set.Notes {
		n := &set.Notes[i]
		ensureID(&n.ID)
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO category_notes (id, title, text, icon_url) VALUES (?, ?, ?, ?)`,
			n.ID, n.Title, n.Text, n.IconURL); err != nil {
			return fmt.Errorf("insert note %q: %w", n.Title, err)
		}
	}
	for _, rel := range set.NoteRelations {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO category_note_relations (note_id, category_id) VALUES (?, ?)`,
			rel.NoteID, rel.CategoryID); err != nil {
			return fmt.Errorf("insert note relation: %w", err)
		}
	}

	for i := range set.Products {
		p := &set.Products[i]
		ensureID(&p.ID)
		var labelID any
		if p.Label != nil {
			id, ok := labelByTitle[p.Label.Title]
			if !ok {
				return fmt.Errorf("product %q references unknown label %q", p.Title, p.Label.Title)
			}
			labelID = id
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO products (id, category_id, title, description, description_en,
			   price_standard, has_multiple_prices,
			   price_variant1_name, price_variant1, price_variant2_name, price_variant2,
			   has_price_suffix, price_suffix, label_id, display_order, is_active)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.CategoryID, p.Title, p.Description, p.DescriptionEN,
			p.PriceStandard, p.HasMultiplePrices,
			p.PriceVariant1Name, p.PriceVariant1, p.PriceVariant2Name, p.PriceVariant2,
			p.HasPriceSuffix, p.PriceSuffix, labelID, p.DisplayOrder, p.IsActive); err != nil {
			return fmt.Errorf("insert product %q: %w", p.Title, err)
		}
		for _, a := range p.Allergens {
			id, ok := allergenByNumber[a.Number]
			if !ok {
				return fmt.Errorf("product %q references unknown allergen %d", p.Title, a.Number)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO product_allergens (product_id, allergen_id) VALUES (?, ?)`,
				p.ID, id); err != nil {
				return fmt.Errorf("insert product allergen: %w", err)
			}
		}
		for _, f := range p.Features {
			id, ok := featureByTitle[f.Title]
			if !ok {
				return fmt.Errorf("product %q references unknown feature %q", p.Title, f.Title)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO product_feature_relations (product_id, feature_id) VALUES (?, ?)`,
				p.ID, id); err != nil {
				return fmt.Errorf("insert product feature: %w", err)
			}
		}
	}

	if set.Settings != nil {
		if err := saveSettingsTx(ctx, tx, *set.Settings); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func ensureID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}
