// Package menudsl parses the textual menu seed format. A seed file carries
// the complete dataset of one menu: settings, allergen and feature legends,
// labels, notes, categories and products. `cli import` loads a parsed file
// into the store in one transaction.
package menudsl

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	menuLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "Comment", Pattern: `//[^\n]*|#[^\n]*`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Number", Pattern: `\d+(?:\.\d+)?`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Punct", Pattern: `[{}\[\]:,]`},
	})

	fileParser = participle.MustBuild[File](
		participle.Lexer(menuLexer),
		participle.Elide("Whitespace", "Comment"),
	)
)

// File is the root AST node for a menu seed file.
type File struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Name    StringLiteral  `parser:"'menu' @String"`
	Entries []*Entry       `parser:"'{' @@* '}'"`
}

// Entry is one top-level declaration inside the menu block.
type Entry struct {
	Settings *SettingsDecl `parser:"  @@"`
	Allergen *AllergenDecl `parser:"| @@"`
	Feature  *FeatureDecl  `parser:"| @@"`
	Label    *LabelDecl    `parser:"| @@"`
	Note     *NoteDecl     `parser:"| @@"`
	Category *CategoryDecl `parser:"| @@"`
}

// SettingsDecl carries the site settings block.
type SettingsDecl struct {
	Props []*Prop `parser:"'settings' '{' @@* '}'"`
}

// AllergenDecl declares one legend entry by its printed number.
type AllergenDecl struct {
	Pos    lexer.Position `parser:"" json:"-"`
	Number int            `parser:"'allergen' @Number"`
	Title  StringLiteral  `parser:"@String"`
	Props  []*Prop        `parser:"( '{' @@* '}' )?"`
}

// FeatureDecl declares one feature badge.
type FeatureDecl struct {
	Title StringLiteral `parser:"'feature' @String"`
	Props []*Prop       `parser:"( '{' @@* '}' )?"`
}

// LabelDecl declares one product label.
type LabelDecl struct {
	Title StringLiteral `parser:"'label' @String"`
	Props []*Prop       `parser:"( '{' @@* '}' )?"`
}

// NoteDecl declares note content; categories attach it by title.
type NoteDecl struct {
	Title StringLiteral `parser:"'note' @String"`
	Props []*Prop       `parser:"'{' @@* '}'"`
}

// CategoryDecl declares a category with its notes and products, in print
// order.
type CategoryDecl struct {
	Pos   lexer.Position  `parser:"" json:"-"`
	Title StringLiteral   `parser:"'category' @String"`
	Items []*CategoryItem `parser:"'{' @@* '}'"`
}

// CategoryItem is one statement in a category body. A bare `note "Title"`
// attaches a declared note; property assignments configure the category
// itself.
type CategoryItem struct {
	Product  *ProductDecl `parser:"  @@"`
	NoteRef  *NoteRef     `parser:"| @@"`
	Inactive bool         `parser:"| @'inactive'"`
	Prop     *Prop        `parser:"| @@"`
}

// NoteRef attaches a top-level note to the enclosing category.
type NoteRef struct {
	Title StringLiteral `parser:"'note' @String"`
}

// ProductDecl declares one product.
type ProductDecl struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Title StringLiteral  `parser:"'product' @String"`
	Items []*ProductItem `parser:"'{' @@* '}'"`
}

// ProductItem is one statement in a product body.
type ProductItem struct {
	Variants *VariantsDecl `parser:"  @@"`
	Inactive bool          `parser:"| @'inactive'"`
	Prop     *Prop         `parser:"| @@"`
}

// VariantsDecl lists named price variants in order.
type VariantsDecl struct {
	Entries []*Variant `parser:"'variants' '{' @@* '}'"`
}

// Variant is one named price.
type Variant struct {
	Name  StringLiteral `parser:"@String"`
	Price float64       `parser:"@Number"`
}

// Prop is a `key: value` assignment.
type Prop struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Key   string         `parser:"@Ident ':'"`
	Value *Value         `parser:"@@"`
}

// Value is a property value: string, number or a bracketed list.
type Value struct {
	Str  *StringLiteral `parser:"  @String"`
	Num  *float64       `parser:"| @Number"`
	List *ListValue     `parser:"| @@"`
}

// ListValue captures `[ ... ]` lists.
type ListValue struct {
	Items []*Value `parser:"'[' ( @@ ( ',' @@ )* )? ']'"`
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse parses a seed file from an io.Reader.
func Parse(name string, r io.Reader) (*File, error) {
	return fileParser.Parse(name, r)
}

// ParseString parses a seed file from a string.
func ParseString(input string) (*File, error) {
	return fileParser.ParseString("", input)
}
