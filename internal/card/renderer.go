package card

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
)

// Fallback display values. Every field of the card has a defined
// fallback so the card is fully renderable even from an empty record,
// which is exactly what the template gallery previews do.
const (
	PlaceholderGroomName = "Jasur"
	PlaceholderBrideName = "Gulnora"
	PlaceholderDate      = "2025-06-15"
	PlaceholderTime      = "18:00"
	PlaceholderHall      = "Navruz to'yxonasi"
	PlaceholderLocation  = "Manzil ko'rsatilmagan"
	PlaceholderPortrait  = "/assets/silhouette.svg"
)

// Data is the invitation-shaped input to the renderer. Any subset of
// fields may be empty; the renderer substitutes fallbacks.
type Data struct {
	GroomName       string
	GroomLastname   string
	BrideName       string
	BrideLastname   string
	Date            string
	Time            string
	Location        string
	Hall            string
	Text            string
	GroomPictureURL string
	BridePictureURL string
}

// View is the fully-populated view model for one rendered card. No
// field is ever empty: swapping the template changes layout only,
// never which data is shown.
type View struct {
	TemplateID   string
	TemplateName string
	Layout       string
	Decorations  []string

	Header       string
	GroomName    string
	BrideName    string
	Glyph        string
	Message      string
	Day          string
	Month        string
	Time         string
	Hall         string
	Location     string
	GroomPicture string
	BridePicture string
}

// Card is the rendered result: the view model plus its HTML form.
type Card struct {
	View View
	html []byte
}

// HTML returns the rendered card markup.
func (c *Card) HTML() string {
	return string(c.html)
}

// Capture writes the rendered card into an external capture handle.
// The renderer has no awareness of what the sink does with the bytes
// (rasterization, download, archival).
func (c *Card) Capture(w io.Writer) error {
	if _, err := w.Write(c.html); err != nil {
		return fmt.Errorf("capturing card: %w", err)
	}
	return nil
}

//go:embed templates/card.tmpl
var templateFS embed.FS

var cardTemplate = template.Must(template.ParseFS(templateFS, "templates/card.tmpl"))

// Render deterministically maps invitation data and a resolved
// template config to a card. It is a pure function: same inputs, same
// card.
func Render(data Data, cfg Config) (*Card, error) {
	view := buildView(data, cfg)

	var buf bytes.Buffer
	if err := cardTemplate.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("rendering card template %q: %w", cfg.ID, err)
	}

	return &Card{View: view, html: buf.Bytes()}, nil
}

// RenderWithRegistry resolves the template identifier through the
// registry and renders. Unknown identifiers fall back to the default
// template, same as Registry.Resolve.
func RenderWithRegistry(data Data, templateID string, reg *Registry) (*Card, error) {
	return Render(data, reg.Resolve(templateID))
}

func buildView(data Data, cfg Config) View {
	view := View{
		TemplateID:   cfg.ID,
		TemplateName: cfg.Name,
		Layout:       string(cfg.Layout),
		Decorations:  cfg.Decorations,
		Header:       cfg.Header,
		Glyph:        cfg.Glyph,
		GroomName:    fullName(data.GroomName, data.GroomLastname, PlaceholderGroomName),
		BrideName:    fullName(data.BrideName, data.BrideLastname, PlaceholderBrideName),
		Message:      fallback(data.Text, cfg.Message),
		Time:         fallback(data.Time, PlaceholderTime),
		Hall:         fallback(data.Hall, PlaceholderHall),
		Location:     fallback(data.Location, PlaceholderLocation),
		GroomPicture: fallback(data.GroomPictureURL, PlaceholderPortrait),
		BridePicture: fallback(data.BridePictureURL, PlaceholderPortrait),
	}

	day, month, ok := DecomposeDate(data.Date)
	if !ok {
		day, month, _ = DecomposeDate(PlaceholderDate)
	}
	view.Day = day
	view.Month = month

	return view
}

func fallback(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

func fullName(first, last, def string) string {
	switch {
	case first == "" && last == "":
		return def
	case last == "":
		return first
	case first == "":
		return last
	}
	return first + " " + last
}
