package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/menuforge/menuforge/menu"
)

const settingsKey = "site"

// ActiveLayout returns the single active print layout, fully decoded.
// ErrNoActiveLayout when none is marked active.
func (s *Store) ActiveLayout(ctx context.Context) (*menu.PrintLayout, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, config FROM print_layouts WHERE is_active = 1 LIMIT 1`)
	return scanLayout(row, true)
}

// Layout returns one layout by id.
func (s *Store) Layout(ctx context.Context, id string) (*menu.PrintLayout, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, config FROM print_layouts WHERE id = ?`, id)
	l, err := scanLayout(row, false)
	if err != nil {
		return nil, err
	}
	var active bool
	if err := s.db.QueryRowContext(ctx,
		`SELECT is_active FROM print_layouts WHERE id = ?`, id).Scan(&active); err == nil {
		l.IsActive = active
	}
	return l, nil
}

func scanLayout(row *sql.Row, activeLookup bool) (*menu.PrintLayout, error) {
	var id, name, config string
	if err := row.Scan(&id, &name, &config); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if activeLookup {
				return nil, ErrNoActiveLayout
			}
			return nil, fmt.Errorf("layout not found")
		}
		return nil, fmt.Errorf("scan layout: %w", err)
	}
	l, err := menu.DecodePrintLayout([]byte(config))
	if err != nil {
		return nil, fmt.Errorf("decode layout %s: %w", id, err)
	}
	l.ID = id
	l.Name = name
	if activeLookup {
		l.IsActive = true
	}
	return &l, nil
}

// Layouts lists all stored layouts (config decoded).
func (s *Store) Layouts(ctx context.Context) ([]menu.PrintLayout, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, is_active, config FROM print_layouts ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query layouts: %w", err)
	}
	defer rows.Close()
	var out []menu.PrintLayout
	for rows.Next() {
		var id, name, config string
		var active bool
		if err := rows.Scan(&id, &name, &active, &config); err != nil {
			return nil, fmt.Errorf("scan layout: %w", err)
		}
		l, err := menu.DecodePrintLayout([]byte(config))
		if err != nil {
			return nil, fmt.Errorf("decode layout %s: %w", id, err)
		}
		l.ID = id
		l.Name = name
		l.IsActive = active
		out = append(out, l)
	}
	return out, rows.Err()
}

// SaveLayout upserts a layout. A save to the active layout publishes a
// change event so open previews re-paginate.
func (s *Store) SaveLayout(ctx context.Context, l *menu.PrintLayout) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	config, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO print_layouts (id, name, is_active, config) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, config = excluded.config`,
		l.ID, l.Name, l.IsActive, string(config))
	if err != nil {
		return fmt.Errorf("save layout %s: %w", l.ID, err)
	}
	var active bool
	if err := s.db.QueryRowContext(ctx,
		`SELECT is_active FROM print_layouts WHERE id = ?`, l.ID).Scan(&active); err == nil && active {
		s.broker.Publish(LayoutUpdated{LayoutID: l.ID, At: time.Now()})
	}
	return nil
}

// ActivateLayout marks one layout active, clears the flag everywhere else
// and publishes the change.
func (s *Store) ActivateLayout(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("activate layout: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `UPDATE print_layouts SET is_active = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("activate layout %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("layout %s not found", id)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE print_layouts SET is_active = 0 WHERE id != ?`, id); err != nil {
		return fmt.Errorf("deactivate layouts: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("activate layout %s: %w", id, err)
	}
	s.broker.Publish(LayoutUpdated{LayoutID: id, At: time.Now()})
	return nil
}

// SiteSettings returns the settings blob; a missing row yields the zero
// value, not an error.
func (s *Store) SiteSettings(ctx context.Context) (menu.SiteSettings, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM site_settings WHERE key = ?`, settingsKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return menu.SiteSettings{}, nil
	}
	if err != nil {
		return menu.SiteSettings{}, fmt.Errorf("query settings: %w", err)
	}
	var st menu.SiteSettings
	if err := json.Unmarshal([]byte(value), &st); err != nil {
		return menu.SiteSettings{}, fmt.Errorf("decode settings: %w", err)
	}
	return st, nil
}

// SaveSiteSettings stores the settings blob.
func (s *Store) SaveSiteSettings(ctx context.Context, st menu.SiteSettings) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	defer tx.Rollback()
	if err := saveSettingsTx(ctx, tx, st); err != nil {
		return err
	}
	return tx.Commit()
}

func saveSettingsTx(ctx context.Context, tx *sql.Tx, st menu.SiteSettings) error {
	value, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO site_settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		settingsKey, string(value)); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// ServiceCharge is a convenience accessor over the settings blob.
func (s *Store) ServiceCharge(ctx context.Context) (float64, error) {
	st, err := s.SiteSettings(ctx)
	if err != nil {
		return 0, err
	}
	return st.ServiceCharge, nil
}
