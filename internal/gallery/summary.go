package gallery

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Summary builds a markdown digest of the gallery view, one section per set.
func Summary(v View) string {
	var result strings.Builder

	result.WriteString("# Sticker sets\n\n")

	if v.Empty() {
		result.WriteString("No sticker sets yet.\n")
		return result.String()
	}

	for _, card := range v.Cards {
		result.WriteString(fmt.Sprintf("## %s\n\n", card.Title))
		result.WriteString(fmt.Sprintf("- **ID:** `%d`\n", card.ID))
		result.WriteString(fmt.Sprintf("- **Name:** `%s`\n", card.Name))
		if !card.CreatedAt.IsZero() {
			result.WriteString(fmt.Sprintf("- **Created:** %s\n", card.CreatedAt.Format("2006-01-02")))
		}
		result.WriteString(fmt.Sprintf("- **Stickers:** %d\n", card.Count))

		var glyphs []string
		for _, slot := range card.Slots {
			if slot.Placeholder {
				continue
			}
			glyphs = append(glyphs, slot.Descriptor.Glyph)
		}
		if len(glyphs) > 0 {
			result.WriteString(fmt.Sprintf("- **Preview:** %s\n", strings.Join(glyphs, " ")))
		}
		result.WriteString("\n")
	}

	return result.String()
}

// SummaryHTML renders the markdown digest as HTML for the page shell.
func SummaryHTML(v View) string {
	extensions := parser.CommonExtensions | parser.AutoHeadingIDs
	p := parser.NewWithExtensions(extensions)

	doc := p.Parse([]byte(Summary(v)))

	htmlFlags := html.CommonFlags | html.HrefTargetBlank
	renderer := html.NewRenderer(html.RendererOptions{Flags: htmlFlags})

	return string(markdown.Render(doc, renderer))
}
