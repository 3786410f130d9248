// Package goquery implements tshiau.Renderer using CSS selector extraction.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/wrlin/tshiau"
	"github.com/wrlin/tshiau/htmltomarkdown"
)

// resultSelector matches the list of dictionary senses on a sutian result
// page. Pages without this node carry no entry for the queried key.
const resultSelector = "ol.text-secondary"

// Ensure Renderer implements tshiau.Renderer at compile time.
var _ tshiau.Renderer = (*Renderer)(nil)

// Renderer extracts the dictionary result list from a fetched page and
// converts it to markdown. An empty result means the page has no entry.
type Renderer struct {
	converter *htmltomarkdown.Converter
}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{converter: htmltomarkdown.NewConverter()}
}

// Render returns the markdown for the entry on the page, or an empty string
// when the page contains no dictionary results.
func (r *Renderer) Render(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", tshiau.Errorf(tshiau.EINVALID, "failed to parse HTML: %v", err)
	}

	sel := doc.Find(resultSelector).First()
	if sel.Length() == 0 {
		return "", nil
	}

	inner, err := sel.Html()
	if err != nil {
		return "", tshiau.Errorf(tshiau.EINTERNAL, "failed to serialize result node: %v", err)
	}
	if strings.TrimSpace(inner) == "" {
		return "", nil
	}

	md, err := r.converter.Convert("<ol>" + inner + "</ol>")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(md), nil
}
