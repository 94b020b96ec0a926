package menu

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestEntryJSON(t *testing.T) {
	var layers []Layer
	doc := `[{"id":1,"name":"Home","color":"#AEAEAE","isBaseLayer":true,"items":["org.gnome.Nautilus",2]}]`
	if err := json.Unmarshal([]byte(doc), &layers); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	items := layers[0].Items
	if items[0] != AppRef("org.gnome.Nautilus") {
		t.Fatalf("expected app ref, got %+v", items[0])
	}
	if items[1] != LayerLink(2) {
		t.Fatalf("expected layer link, got %+v", items[1])
	}
	out, err := json.Marshal(layers)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != doc {
		t.Fatalf("expected %s, got %s", doc, out)
	}
}

func TestEntryJSONRejectsObjects(t *testing.T) {
	var e Entry
	if err := json.Unmarshal([]byte(`{"pkg":"x"}`), &e); err == nil {
		t.Fatalf("expected error for object entry")
	}
}

func TestParseLayersYAML(t *testing.T) {
	doc := `
- id: 1
  name: Home
  color: "#AEAEAE"
  isBaseLayer: true
  items: [org.mozilla.firefox, 2, "3"]
- id: 2
  name: Second
  color: "#EAEAEA"
  items:
    - 1
`
	layers, err := ParseLayers([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(layers) != 2 {
		t.Fatalf("expected 2 layers, got %d", len(layers))
	}
	want := []Entry{AppRef("org.mozilla.firefox"), LayerLink(2), AppRef("3")}
	for i, e := range want {
		if layers[0].Items[i] != e {
			t.Fatalf("item %d: expected %+v, got %+v", i, e, layers[0].Items[i])
		}
	}
	if !layers[0].IsBaseLayer || layers[1].IsBaseLayer {
		t.Fatalf("base layer flags not decoded: %+v", layers)
	}
}

func TestParseLayersAcceptsEditorJSON(t *testing.T) {
	text, err := FormatLayers(DefaultLayers())
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	layers, err := ParseLayers([]byte(text))
	if err != nil {
		t.Fatalf("parse editor text: %v", err)
	}
	if len(layers) != 2 || len(layers[0].Items) != 11 || layers[0].Items[10] != LayerLink(2) {
		t.Fatalf("unexpected layers %+v", layers)
	}
}

func TestValidate(t *testing.T) {
	valid := func() []Layer { return DefaultLayers() }
	cases := []struct {
		name    string
		mutate  func([]Layer) []Layer
		message string
	}{
		{"empty", func([]Layer) []Layer { return nil }, "at least one layer"},
		{"reserved id", func(l []Layer) []Layer { l[1].ID = BrowserActionsLayerID; return l }, "reserved"},
		{"zero id", func(l []Layer) []Layer { l[1].ID = 0; return l }, "layers → 1 → id"},
		{"duplicate id", func(l []Layer) []Layer { l[1].ID = 1; return l }, "duplicate id 1"},
		{"empty name", func(l []Layer) []Layer { l[0].Name = " "; return l }, "layers → 0 → name"},
		{"bad color", func(l []Layer) []Layer { l[0].Color = "AEAEAE"; return l }, "layers → 0 → color"},
		{"long color", func(l []Layer) []Layer { l[0].Color = "#AABBCCDDE"; return l }, "color"},
		{"non-hex color", func(l []Layer) []Layer { l[0].Color = "#ZZZZZZ"; return l }, "layers → 0 → color"},
		{"short color", func(l []Layer) []Layer { l[0].Color = "#AB"; return l }, "color"},
		{"two bases", func(l []Layer) []Layer { l[1].IsBaseLayer = true; return l }, "maximum of one base layer"},
		{"empty package", func(l []Layer) []Layer { l[1].Items[1] = AppRef(""); return l }, "layers → 1 → items → 1"},
		{"bad link", func(l []Layer) []Layer { l[1].Items[0] = LayerLink(0); return l }, "layer link"},
	}
	if err := Validate(valid()); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.mutate(valid()))
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.message) {
				t.Fatalf("expected %q in %q", tc.message, err.Error())
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %T", err)
			}
		})
	}
}

func TestValidateAllowsMissingBase(t *testing.T) {
	layers := DefaultLayers()
	layers[0].IsBaseLayer = false
	if err := Validate(layers); err != nil {
		t.Fatalf("expected config without base layer to validate, got %v", err)
	}
	if got := BaseLayerID(layers); got != 1 {
		t.Fatalf("expected fallback base 1, got %d", got)
	}
	layers[1].IsBaseLayer = true
	if got := BaseLayerID(layers); got != 2 {
		t.Fatalf("expected base 2, got %d", got)
	}
}

func TestValidateBrowserActions(t *testing.T) {
	if err := ValidateBrowserActions(DefaultBrowserActions()); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	err := ValidateBrowserActions([]BrowserAction{{URL: "not a url", Label: ""}})
	if err == nil || !strings.Contains(err.Error(), "browser-actions → 0 → url") || !strings.Contains(err.Error(), "label") {
		t.Fatalf("expected url and label errors, got %v", err)
	}
}
