package content

import (
	"bytes"
	"fmt"

	"cms-backend/internal/domain"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer converts Markdown rich-text to sanitized HTML for read-side
// responses. Editors may also paste raw HTML, so rendering is permissive
// and sanitization happens after.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithUnsafe(),
		),
	)

	return &Renderer{
		md:     md,
		policy: bluemonday.UGCPolicy(),
	}
}

func (r *Renderer) Render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return r.policy.Sanitize(buf.String()), nil
}

// RenderFields renders every rich-text field of an entity, keyed by field
// name then locale.
func (r *Renderer) RenderFields(entity domain.Entity) (map[string]domain.LocalizedText, error) {
	rendered := make(map[string]domain.LocalizedText)
	for _, field := range entity.ContentFields() {
		if len(field.Values) == 0 {
			continue
		}
		out := make(domain.LocalizedText, len(field.Values))
		for locale, value := range field.Values {
			htmlValue, err := r.Render(value)
			if err != nil {
				return nil, fmt.Errorf("field %s locale %s: %w", field.Name, locale, err)
			}
			out[locale] = htmlValue
		}
		rendered[field.Name] = out
	}
	return rendered, nil
}
