// Package card maps invitation data onto one of a fixed set of visual
// card templates. The registry is static data loaded once at process
// start; the renderer is a pure function over (data, template config).
package card

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Category classifies a template as freely available or premium-only.
type Category string

const (
	// CategoryFree templates are available to every account.
	CategoryFree Category = "Free"
	// CategoryPremium templates require a premium account.
	CategoryPremium Category = "Premium"
)

// Layout selects how the details block (date/time/hall/location) is
// arranged on the card.
type Layout string

const (
	// LayoutInline presents details as a single inline row.
	LayoutInline Layout = "inline"
	// LayoutGrid presents details as a card grid.
	LayoutGrid Layout = "grid"
	// LayoutStacked presents details as a stacked list.
	LayoutStacked Layout = "stacked"
)

// DefaultTemplateID is the designated fallback template. Resolve
// returns its config for any unknown or empty identifier.
const DefaultTemplateID = "classic_royale"

// Config is a static, immutable entry in the template registry.
type Config struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	Category Category `yaml:"category"`
	// Presentation directives consumed only by the renderer.
	Layout      Layout   `yaml:"layout"`
	Header      string   `yaml:"header"`
	Glyph       string   `yaml:"glyph"`
	Message     string   `yaml:"message"`
	Decorations []string `yaml:"decorations"`
}

// Registry exposes the fixed template catalog and resolves identifiers
// to configs. The catalog order is the render and selection order.
type Registry struct {
	configs []Config
	byID    map[string]Config
	def     Config
}

//go:embed catalog.yaml
var catalogYAML []byte

type catalogFile struct {
	Templates []Config `yaml:"templates"`
}

// NewRegistry builds a registry from the embedded catalog.
func NewRegistry() (*Registry, error) {
	var file catalogFile
	if err := yaml.Unmarshal(catalogYAML, &file); err != nil {
		return nil, fmt.Errorf("parsing template catalog: %w", err)
	}
	if len(file.Templates) == 0 {
		return nil, fmt.Errorf("template catalog is empty")
	}

	r := &Registry{
		configs: file.Templates,
		byID:    make(map[string]Config, len(file.Templates)),
	}
	for _, cfg := range file.Templates {
		r.byID[cfg.ID] = cfg
	}

	def, ok := r.byID[DefaultTemplateID]
	if !ok {
		return nil, fmt.Errorf("template catalog is missing the default template %q", DefaultTemplateID)
	}
	r.def = def
	return r, nil
}

// defaultRegistry is built once at process start. The catalog is
// compiled in, so a failure here is a programming error.
var defaultRegistry = mustRegistry()

func mustRegistry() *Registry {
	r, err := NewRegistry()
	if err != nil {
		panic("card: " + err.Error())
	}
	return r
}

// DefaultRegistry returns the process-wide registry over the embedded
// catalog.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// List returns the full catalog in stable order. The returned slice is
// a copy; the catalog itself is never mutated at runtime.
func (r *Registry) List() []Config {
	out := make([]Config, len(r.configs))
	copy(out, r.configs)
	return out
}

// Resolve returns the config for the given identifier, or the default
// config when the identifier is empty or unknown. Resolution is total:
// the renderer never receives "no template".
func (r *Registry) Resolve(id string) Config {
	if cfg, ok := r.byID[id]; ok {
		return cfg
	}
	return r.def
}
