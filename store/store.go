// Package store is the persistence collaborator: a sqlite database holding
// the menu records, the print layouts and the site settings, plus an
// in-process broker for layout-change notifications. The layout engine
// itself never touches the store; everything crosses the boundary as plain
// menu types.
package store

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNoActiveLayout is returned when no print layout is marked active.
var ErrNoActiveLayout = errors.New("no active print layout")

// Store wraps the sqlite handle and the change broker.
type Store struct {
	db     *sql.DB
	broker *Broker
}

// Open opens (creating if needed) the sqlite database at path and applies
// the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db, broker: NewBroker()}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Broker exposes the layout-change broker for subscribers.
func (s *Store) Broker() *Broker { return s.broker }

const schema = `
CREATE TABLE IF NOT EXISTS categories (
	id            TEXT PRIMARY KEY,
	title         TEXT NOT NULL,
	description   TEXT NOT NULL DEFAULT '',
	image_url     TEXT NOT NULL DEFAULT '',
	display_order INTEGER NOT NULL DEFAULT 0,
	is_active     INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS product_labels (
	id    TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	color TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS products (
	id                  TEXT PRIMARY KEY,
	category_id         TEXT NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
	title               TEXT NOT NULL,
	description         TEXT NOT NULL DEFAULT '',
	description_en      TEXT NOT NULL DEFAULT '',
	price_standard      REAL NOT NULL DEFAULT 0,
	has_multiple_prices INTEGER NOT NULL DEFAULT 0,
	price_variant1_name TEXT NOT NULL DEFAULT '',
	price_variant1      REAL NOT NULL DEFAULT 0,
	price_variant2_name TEXT NOT NULL DEFAULT '',
	price_variant2      REAL NOT NULL DEFAULT 0,
	has_price_suffix    INTEGER NOT NULL DEFAULT 0,
	price_suffix        TEXT NOT NULL DEFAULT '',
	label_id            TEXT REFERENCES product_labels(id),
	display_order       INTEGER NOT NULL DEFAULT 0,
	is_active           INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS allergens (
	id          TEXT PRIMARY KEY,
	number      INTEGER NOT NULL,
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	icon_url    TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS product_features (
	id            TEXT PRIMARY KEY,
	title         TEXT NOT NULL,
	icon_url      TEXT NOT NULL DEFAULT '',
	display_order INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS product_allergens (
	product_id  TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
	allergen_id TEXT NOT NULL REFERENCES allergens(id) ON DELETE CASCADE,
	PRIMARY KEY (product_id, allergen_id)
);

CREATE TABLE IF NOT EXISTS product_feature_relations (
	product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
	feature_id TEXT NOT NULL REFERENCES product_features(id) ON DELETE CASCADE,
	PRIMARY KEY (product_id, feature_id)
);

CREATE TABLE IF NOT EXISTS category_notes (
	id       TEXT PRIMARY KEY,
	title    TEXT NOT NULL,
	text     TEXT NOT NULL DEFAULT '',
	icon_url TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS category_note_relations (
	note_id     TEXT NOT NULL REFERENCES category_notes(id) ON DELETE CASCADE,
	category_id TEXT NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
	PRIMARY KEY (note_id, category_id)
);

CREATE TABLE IF NOT EXISTS print_layouts (
	id        TEXT PRIMARY KEY,
	name      TEXT NOT NULL,
	is_active INTEGER NOT NULL DEFAULT 0,
	config    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS site_settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`
