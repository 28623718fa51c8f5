package card

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestRenderEmptyRecordUsesPlaceholders(t *testing.T) {
	rendered, err := Render(Data{}, DefaultRegistry().Resolve(""))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	view := rendered.View
	if view.GroomName != PlaceholderGroomName {
		t.Errorf("groom name = %q, want placeholder %q", view.GroomName, PlaceholderGroomName)
	}
	if view.BrideName != PlaceholderBrideName {
		t.Errorf("bride name = %q, want placeholder %q", view.BrideName, PlaceholderBrideName)
	}
	if view.Hall != PlaceholderHall {
		t.Errorf("hall = %q, want placeholder %q", view.Hall, PlaceholderHall)
	}
	if view.Location != PlaceholderLocation {
		t.Errorf("location = %q, want placeholder %q", view.Location, PlaceholderLocation)
	}
	if view.GroomPicture != PlaceholderPortrait || view.BridePicture != PlaceholderPortrait {
		t.Errorf("portraits = (%q, %q), want placeholder", view.GroomPicture, view.BridePicture)
	}

	// An empty record still renders the default date.
	if view.Day == "" || view.Month == "" {
		t.Errorf("date display = (%q, %q), want non-empty", view.Day, view.Month)
	}
}

func TestRenderFullNames(t *testing.T) {
	data := Data{
		GroomName:     "Sanjar",
		GroomLastname: "Qodirov",
		BrideName:     "Malika",
	}
	rendered, err := Render(data, DefaultRegistry().Resolve("classic_royale"))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if rendered.View.GroomName != "Sanjar Qodirov" {
		t.Errorf("groom name = %q, want %q", rendered.View.GroomName, "Sanjar Qodirov")
	}
	if rendered.View.BrideName != "Malika" {
		t.Errorf("bride name = %q, want %q", rendered.View.BrideName, "Malika")
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	data := Data{GroomName: "Sanjar", BrideName: "Malika", Date: "2026-08-28", Time: "18:00"}
	cfg := DefaultRegistry().Resolve("floral_breeze")

	first, err := Render(data, cfg)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	second, err := Render(data, cfg)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if first.HTML() != second.HTML() {
		t.Error("two renders of the same inputs produced different markup")
	}
}

func TestCaptureWritesMarkup(t *testing.T) {
	rendered, err := Render(Data{GroomName: "Sanjar", BrideName: "Malika"}, DefaultRegistry().Resolve(""))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	var buf bytes.Buffer
	if err := rendered.Capture(&buf); err != nil {
		t.Fatalf("Capture failed: %v", err)
	}
	if buf.String() != rendered.HTML() {
		t.Error("captured bytes differ from rendered markup")
	}
	if !strings.Contains(buf.String(), "Sanjar") {
		t.Error("captured markup is missing the groom name")
	}
}

// **Feature: card-rendering, Property: no blank card regions**
// *For any* invitation data, including records with every field empty,
// every region of the rendered view carries a displayable value.
func TestRenderedViewNeverBlank(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)
	reg := DefaultRegistry()

	maybeEmpty := gen.OneGenOf(gen.Const(""), gen.AlphaString())

	properties.Property("every view field is populated", prop.ForAll(
		func(groom, bride, hall, location, text, templateID string) bool {
			rendered, err := Render(Data{
				GroomName: groom,
				BrideName: bride,
				Hall:      hall,
				Location:  location,
				Text:      text,
			}, reg.Resolve(templateID))
			if err != nil {
				return false
			}

			v := rendered.View
			for _, field := range []string{
				v.TemplateID, v.TemplateName, v.Layout, v.Header,
				v.GroomName, v.BrideName, v.Glyph, v.Message,
				v.Day, v.Month, v.Time, v.Hall, v.Location,
				v.GroomPicture, v.BridePicture,
			} {
				if field == "" {
					return false
				}
			}
			return true
		},
		maybeEmpty, maybeEmpty, maybeEmpty, maybeEmpty, maybeEmpty,
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

// **Feature: card-rendering, Property: template swap changes layout only**
// *For any* invitation data, swapping the template never changes which
// data values are displayed, only their presentation.
func TestTemplateSwapPreservesData(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)
	reg := DefaultRegistry()

	properties.Property("data survives template swaps", prop.ForAll(
		func(groom, bride, hall string, a, b int) bool {
			catalog := reg.List()
			data := Data{GroomName: groom, BrideName: bride, Hall: hall, Date: "2026-08-28", Time: "18:00"}

			first, err := Render(data, catalog[a%len(catalog)])
			if err != nil {
				return false
			}
			second, err := Render(data, catalog[b%len(catalog)])
			if err != nil {
				return false
			}

			return first.View.GroomName == second.View.GroomName &&
				first.View.BrideName == second.View.BrideName &&
				first.View.Hall == second.View.Hall &&
				first.View.Day == second.View.Day &&
				first.View.Month == second.View.Month &&
				first.View.Time == second.View.Time
		},
		gen.AlphaString(), gen.AlphaString(), gen.AlphaString(),
		gen.IntRange(0, 3), gen.IntRange(0, 3),
	))

	properties.TestingRun(t)
}
