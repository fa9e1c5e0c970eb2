package menu

import (
	"encoding/json"
	"testing"
)

func TestStyleBlockDecodeDefaultsVisible(t *testing.T) {
	var s StyleBlock
	if err := json.Unmarshal([]byte(`{"fontFamily":"Inter","fontSize":12}`), &s); err != nil {
		t.Fatal(err)
	}
	if !s.Visible {
		t.Fatal("a style without a visible key must decode as visible")
	}
	if s.FontFamily != "Inter" || s.FontSize != 12 {
		t.Fatalf("decoded style %+v", s)
	}

	if err := json.Unmarshal([]byte(`{"fontFamily":"Inter","visible":false}`), &s); err != nil {
		t.Fatal(err)
	}
	if s.Visible {
		t.Fatal("an explicit visible: false must survive decoding")
	}
}

func TestDecodePrintLayoutDefaultsVisible(t *testing.T) {
	raw := `{"name":"Carta","elements":{"title":{"fontSize":14},"description":{"visible":false}}}`
	l, err := DecodePrintLayout([]byte(raw))
	if err != nil {
		t.Fatal(err)
	}
	if l.Name != "Carta" {
		t.Fatalf("decoded name %q", l.Name)
	}
	if !l.Elements.Title.Visible {
		t.Fatal("nested style without a visible key must decode as visible")
	}
	if l.Elements.Title.FontSize != 14 {
		t.Fatalf("authored font size lost, got %g", l.Elements.Title.FontSize)
	}
	if l.Elements.Title.FontFamily == "" {
		t.Fatal("partial block must keep the default font family")
	}
	if l.Elements.Description.Visible {
		t.Fatal("explicit visible: false must survive decoding")
	}
	// Blocks missing from the document keep the default layout's values.
	if !l.Elements.Price.Visible {
		t.Fatal("omitted style blocks must stay visible")
	}
	if l.ServicePrice.FontFamily == "" {
		t.Fatal("omitted blocks must keep the default fonts")
	}
}

func TestDecodePrintLayoutRejectsMalformed(t *testing.T) {
	if _, err := DecodePrintLayout([]byte(`{"name":`)); err == nil {
		t.Fatal("malformed layout document must fail to decode")
	}
}
