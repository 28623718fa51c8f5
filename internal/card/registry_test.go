package card

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestRegistryCatalog(t *testing.T) {
	reg, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}

	list := reg.List()
	if len(list) != 4 {
		t.Fatalf("expected 4 templates, got %d", len(list))
	}

	wantIDs := []string{"classic_royale", "golden_ornament", "floral_breeze", "midnight_pearl"}
	for i, id := range wantIDs {
		if list[i].ID != id {
			t.Errorf("catalog position %d: expected %q, got %q", i, id, list[i].ID)
		}
	}

	for _, cfg := range list {
		if cfg.Name == "" {
			t.Errorf("template %q has no display name", cfg.ID)
		}
		if cfg.Category != CategoryFree && cfg.Category != CategoryPremium {
			t.Errorf("template %q has unknown category %q", cfg.ID, cfg.Category)
		}
		if cfg.Layout != LayoutInline && cfg.Layout != LayoutGrid && cfg.Layout != LayoutStacked {
			t.Errorf("template %q has unknown layout %q", cfg.ID, cfg.Layout)
		}
	}
}

func TestResolveKnownIdentifiers(t *testing.T) {
	reg := DefaultRegistry()
	for _, cfg := range reg.List() {
		resolved := reg.Resolve(cfg.ID)
		if resolved.ID != cfg.ID {
			t.Errorf("Resolve(%q) returned %q", cfg.ID, resolved.ID)
		}
	}
}

// **Feature: template-registry, Property: resolution totality**
// *For any* identifier string, including empty and garbage input,
// Resolve returns a usable catalog entry, never a zero config.
func TestResolveIsTotal(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)
	reg := DefaultRegistry()

	properties.Property("any identifier resolves to a catalog entry", prop.ForAll(
		func(id string) bool {
			cfg := reg.Resolve(id)
			if cfg.ID == "" || cfg.Name == "" {
				return false
			}
			// Unknown identifiers land on the designated default.
			if _, known := reg.byID[id]; !known {
				return cfg.ID == DefaultTemplateID
			}
			return cfg.ID == id
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
