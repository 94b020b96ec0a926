package menu

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// BrowserActionsLayerID is reserved for the synthesized browser actions layer.
const BrowserActionsLayerID = 9191

// EntryKind discriminates layer entries.
type EntryKind int

const (
	EntryApp EntryKind = iota
	EntryLink
)

// Entry is one slot of a layer: an app reference or a link to another layer.
// It serialises as a bare string (package) or a bare number (layer id).
type Entry struct {
	Kind    EntryKind
	Package string
	Layer   int
}

// AppRef references an installed application.
func AppRef(pkg string) Entry {
	return Entry{Kind: EntryApp, Package: pkg}
}

// LayerLink references another layer by id.
func LayerLink(id int) Entry {
	return Entry{Kind: EntryLink, Layer: id}
}

func (e Entry) String() string {
	if e.Kind == EntryLink {
		return strconv.Itoa(e.Layer)
	}
	return e.Package
}

func (e Entry) MarshalJSON() ([]byte, error) {
	if e.Kind == EntryLink {
		return json.Marshal(e.Layer)
	}
	return json.Marshal(e.Package)
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var pkg string
		if err := json.Unmarshal(data, &pkg); err != nil {
			return err
		}
		*e = AppRef(pkg)
		return nil
	}
	var id int
	if err := json.Unmarshal(data, &id); err != nil {
		return fmt.Errorf("layer entry must be a package name or a layer id: %s", data)
	}
	*e = LayerLink(id)
	return nil
}

func (e Entry) MarshalYAML() (interface{}, error) {
	if e.Kind == EntryLink {
		return e.Layer, nil
	}
	return e.Package, nil
}

func (e *Entry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: layer entry must be a package name or a layer id", node.Line)
	}
	if node.ShortTag() == "!!int" {
		id, err := strconv.Atoi(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*e = LayerLink(id)
		return nil
	}
	*e = AppRef(node.Value)
	return nil
}

// Layer is one ring of the menu.
type Layer struct {
	ID          int     `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Color       string  `json:"color" yaml:"color"`
	IsBaseLayer bool    `json:"isBaseLayer,omitempty" yaml:"isBaseLayer,omitempty"`
	Items       []Entry `json:"items" yaml:"items"`
}

// Clone returns a copy that shares no slices with l.
func (l Layer) Clone() Layer {
	out := l
	out.Items = append([]Entry(nil), l.Items...)
	return out
}

// CloneLayers deep-copies a layer slice.
func CloneLayers(layers []Layer) []Layer {
	if layers == nil {
		return nil
	}
	out := make([]Layer, len(layers))
	for i, l := range layers {
		out[i] = l.Clone()
	}
	return out
}

// ValidationError locates a single schema violation.
type ValidationError struct {
	Path    []string
	Message string
}

func (e *ValidationError) Error() string {
	if len(e.Path) == 0 {
		return e.Message
	}
	return strings.Join(e.Path, " → ") + ": " + e.Message
}

func invalid(msg string, path ...string) error {
	return &ValidationError{Path: append([]string{"layers"}, path...), Message: msg}
}

// Validate checks a layer configuration. All violations are returned joined.
// A configuration without a base layer is accepted; layer 1 acts as base.
func Validate(layers []Layer) error {
	if len(layers) == 0 {
		return &ValidationError{Message: "at least one layer must be defined"}
	}
	var errs []error
	seen := make(map[int]int, len(layers))
	bases := 0
	for i, layer := range layers {
		idx := strconv.Itoa(i)
		switch {
		case layer.ID < 1:
			errs = append(errs, invalid("id must be at least 1", idx, "id"))
		case layer.ID == BrowserActionsLayerID:
			errs = append(errs, invalid(fmt.Sprintf("layer id %d is reserved, please use something else", BrowserActionsLayerID), idx, "id"))
		}
		if prev, dup := seen[layer.ID]; dup {
			errs = append(errs, invalid(fmt.Sprintf("duplicate id %d (also used by layer %d)", layer.ID, prev), idx, "id"))
		} else {
			seen[layer.ID] = i
		}
		if strings.TrimSpace(layer.Name) == "" {
			errs = append(errs, invalid("name must not be empty", idx, "name"))
		}
		if !isHexColor(layer.Color) {
			errs = append(errs, invalid("color must be a hex colour such as #AEAEAE", idx, "color"))
		}
		if layer.IsBaseLayer {
			bases++
		}
		for j, entry := range layer.Items {
			path := []string{idx, "items", strconv.Itoa(j)}
			switch entry.Kind {
			case EntryApp:
				if strings.TrimSpace(entry.Package) == "" {
					errs = append(errs, invalid("package name must not be empty", path...))
				}
			case EntryLink:
				if entry.Layer < 1 {
					errs = append(errs, invalid("layer link must be at least 1", path...))
				}
			}
		}
	}
	if bases > 1 {
		errs = append(errs, &ValidationError{Message: "there must be a maximum of one base layer"})
	}
	return errors.Join(errs...)
}

// BaseLayerID returns the id of the base layer, falling back to 1.
func BaseLayerID(layers []Layer) int {
	for _, layer := range layers {
		if layer.IsBaseLayer {
			return layer.ID
		}
	}
	return 1
}

// ParseLayers decodes a JSON or YAML document and validates it.
func ParseLayers(data []byte) ([]Layer, error) {
	var layers []Layer
	if err := yaml.Unmarshal(data, &layers); err != nil {
		return nil, fmt.Errorf("decode layers: %w", err)
	}
	if err := Validate(layers); err != nil {
		return nil, err
	}
	return layers, nil
}

// FormatLayers renders layers as indented JSON for the editor.
func FormatLayers(layers []Layer) (string, error) {
	if layers == nil {
		layers = []Layer{}
	}
	data, err := json.MarshalIndent(layers, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// isHexColor accepts "#" followed by 3 to 8 hex digits.
func isHexColor(s string) bool {
	digits, ok := strings.CutPrefix(s, "#")
	if !ok || len(digits) < 3 || len(digits) > 8 {
		return false
	}
	for _, r := range digits {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}
