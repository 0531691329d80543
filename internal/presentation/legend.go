package presentation

import (
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// LegendMarkdown explains the tiers under the distribution chart.
const LegendMarkdown = `### Legend for Percentage Deviation:
- **Green**: Percentage deviations between **-2% and +2%**, indicating a very small deviation from the expected values.
- **Orange**: Percentage deviations between **-5% and +5%**, representing a moderate but acceptable deviation.
- **Red**: Percentage deviations greater than **5% or less than -5%**, suggesting significant discrepancies that require attention.
`

// LegendHTML renders LegendMarkdown.
func LegendHTML() string {
	return RenderMarkdown(LegendMarkdown)
}

// RenderMarkdown converts markdown to HTML with common extensions.
func RenderMarkdown(md string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	r := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return string(markdown.ToHTML([]byte(md), p, r))
}
