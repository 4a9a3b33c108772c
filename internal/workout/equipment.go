package workout

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed equipment.yaml
var defaultEquipmentYAML []byte

// EquipmentCategory groups concrete equipment under a label shown to the user, e.g. "Free Weights".
type EquipmentCategory struct {
	Name    string   `json:"name" yaml:"name"`
	Members []string `json:"members" yaml:"members"`
}

type equipmentFile struct {
	Categories []EquipmentCategory `yaml:"categories"`
}

// LoadEquipmentCategories decodes a YAML equipment-category table.
func LoadEquipmentCategories(r io.Reader) ([]EquipmentCategory, error) {
	var f equipmentFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode equipment categories: %w", err)
	}
	for i, c := range f.Categories {
		if strings.TrimSpace(c.Name) == "" {
			return nil, fmt.Errorf("equipment category %d has no name", i)
		}
	}
	return f.Categories, nil
}

// DefaultEquipmentCategories returns the built-in equipment-category table.
func DefaultEquipmentCategories() []EquipmentCategory {
	categories, err := LoadEquipmentCategories(bytes.NewReader(defaultEquipmentYAML))
	if err != nil {
		panic(fmt.Sprintf("embedded equipment.yaml is invalid: %v", err))
	}
	return categories
}

// EquipmentResolver expands category names into concrete equipment and matches exercise requirements.
type EquipmentResolver struct {
	categories map[string][]string
	names      []string
}

// NewEquipmentResolver constructs a resolver owning the given category table.
func NewEquipmentResolver(categories []EquipmentCategory) *EquipmentResolver {
	r := &EquipmentResolver{
		categories: make(map[string][]string, len(categories)),
		names:      make([]string, 0, len(categories)),
	}
	for _, c := range categories {
		if _, ok := r.categories[c.Name]; !ok {
			r.names = append(r.names, c.Name)
		}
		r.categories[c.Name] = append(r.categories[c.Name], c.Members...)
	}
	return r
}

// CategoryNames returns the category labels in table order.
func (r *EquipmentResolver) CategoryNames() []string {
	return append([]string(nil), r.names...)
}

// Expand returns the owned items plus every member of any owned category. Unknown items pass through.
func (r *EquipmentResolver) Expand(owned []string) map[string]struct{} {
	expanded := make(map[string]struct{}, len(owned))
	for _, item := range owned {
		expanded[item] = struct{}{}
		for _, member := range r.categories[item] {
			expanded[member] = struct{}{}
		}
	}
	return expanded
}

// HasEquipment reports whether the requirement is satisfied by the expanded equipment set.
//
// Bodyweight is always satisfied. Otherwise the requirement and an owned item match when either is a
// case-sensitive substring of the other, so "Barbell + Bench" matches an owned "Barbell".
func HasEquipment(requirement string, expanded map[string]struct{}) bool {
	if requirement == EquipmentBodyweight {
		return true
	}
	for item := range expanded {
		// An empty item is a substring of everything and would match any requirement.
		if item == "" {
			continue
		}
		if strings.Contains(requirement, item) || strings.Contains(item, requirement) {
			return true
		}
	}
	return false
}
