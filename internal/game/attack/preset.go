package attack

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Preset is a named attack formula loaded from YAML.
type Preset struct {
	Name        string `yaml:"name"`
	Formula     string `yaml:"formula"`
	Description string `yaml:"description"`
}

type presetFile struct {
	Presets []Preset `yaml:"presets"`
}

// PresetRegistry holds presets keyed by name.
type PresetRegistry struct {
	presets map[string]Preset
}

// NewPresetRegistry creates an empty PresetRegistry.
func NewPresetRegistry() *PresetRegistry {
	return &PresetRegistry{presets: make(map[string]Preset)}
}

// Register validates p and adds it to the registry.
//
// Postcondition: on error the registry is unchanged.
func (r *PresetRegistry) Register(p Preset) error {
	if p.Name == "" {
		return fmt.Errorf("preset name must not be empty")
	}
	if _, dup := r.presets[p.Name]; dup {
		return fmt.Errorf("duplicate preset %q", p.Name)
	}
	if _, err := ParseAttack(p.Formula); err != nil {
		return fmt.Errorf("preset %q: %w", p.Name, err)
	}
	r.presets[p.Name] = p
	return nil
}

// Get returns the preset named name, or (Preset{}, false) if not found.
func (r *PresetRegistry) Get(name string) (Preset, bool) {
	p, ok := r.presets[name]
	return p, ok
}

// All returns every preset sorted by name.
func (r *PresetRegistry) All() []Preset {
	out := make([]Preset, 0, len(r.presets))
	for _, p := range r.presets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Expand replaces every token naming a preset with the preset's formula.
// Other tokens are returned unchanged.
func (r *PresetRegistry) Expand(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		if p, ok := r.presets[tok]; ok {
			out[i] = p.Formula
			continue
		}
		out[i] = tok
	}
	return out
}

// ParsePresets decodes a YAML preset document.
//
// Postcondition: Returns a populated registry, or an error naming the first
// invalid or duplicate preset.
func ParsePresets(data []byte) (*PresetRegistry, error) {
	var file presetFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decoding presets: %w", err)
	}
	reg := NewPresetRegistry()
	for _, p := range file.Presets {
		if err := reg.Register(p); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// LoadPresets reads and decodes the preset file at path.
//
// Precondition: path must name a readable YAML file.
func LoadPresets(path string) (*PresetRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading presets %q: %w", path, err)
	}
	reg, err := ParsePresets(data)
	if err != nil {
		return nil, fmt.Errorf("loading presets %q: %w", path, err)
	}
	return reg, nil
}
