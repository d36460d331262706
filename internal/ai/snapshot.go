package ai

import (
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
)

const (
	// maxMarkdownLen caps the page content sent to the provider
	maxMarkdownLen = 6000
	// maxElements caps the interactive element inventory
	maxElements = 120
)

// PageSnapshot is the page context handed to the inference provider with each
// instruction: the page URL, the readable content condensed to markdown, and
// an inventory of interactive elements with stable selectors.
type PageSnapshot struct {
	URL      string
	Markdown string
	Elements []ElementRef
}

// ElementRef describes one interactive element on the page
type ElementRef struct {
	Selector string // CSS selector the deterministic surface can act on
	Tag      string
	Type     string // input type, when the element is an input
	Label    string // visible text, placeholder or name
}

// BuildSnapshot condenses raw page HTML into a PageSnapshot
func BuildSnapshot(pageURL, html string) (*PageSnapshot, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page HTML: %w", err)
	}

	// Scripts and styles carry no automation signal
	doc.Find("script, style, noscript").Remove()

	bodyHTML, err := doc.Find("body").Html()
	if err != nil {
		bodyHTML = html
	}

	converter := md.NewConverter("", true, nil)
	markdown, err := converter.ConvertString(bodyHTML)
	if err != nil {
		return nil, fmt.Errorf("failed to convert page to markdown: %w", err)
	}
	markdown = strings.TrimSpace(markdown)
	if len(markdown) > maxMarkdownLen {
		markdown = markdown[:maxMarkdownLen] + "\n...(truncated)"
	}

	return &PageSnapshot{
		URL:      pageURL,
		Markdown: markdown,
		Elements: collectElements(doc),
	}, nil
}

// collectElements builds the interactive element inventory
func collectElements(doc *goquery.Document) []ElementRef {
	var elements []ElementRef

	doc.Find("a, button, input, select, textarea, [role=button]").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if len(elements) >= maxElements {
			return false
		}

		ref := ElementRef{
			Tag: goquery.NodeName(sel),
		}

		if id, ok := sel.Attr("id"); ok && id != "" {
			ref.Selector = "#" + id
		} else if name, ok := sel.Attr("name"); ok && name != "" {
			ref.Selector = fmt.Sprintf(`%s[name=%q]`, ref.Tag, name)
		} else {
			// No stable handle; the provider cannot address it reliably
			return true
		}

		if t, ok := sel.Attr("type"); ok {
			ref.Type = t
		}

		ref.Label = strings.TrimSpace(sel.Text())
		if ref.Label == "" {
			if placeholder, ok := sel.Attr("placeholder"); ok {
				ref.Label = placeholder
			} else if name, ok := sel.Attr("name"); ok {
				ref.Label = name
			}
		}
		if len(ref.Label) > 80 {
			ref.Label = ref.Label[:80]
		}

		elements = append(elements, ref)
		return true
	})

	return elements
}

// Describe renders the snapshot as prompt text
func (s *PageSnapshot) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Current page URL: %s\n\n", s.URL)
	b.WriteString("Interactive elements (selector | tag | label):\n")
	for _, el := range s.Elements {
		tag := el.Tag
		if el.Type != "" {
			tag = fmt.Sprintf("%s[type=%s]", el.Tag, el.Type)
		}
		fmt.Fprintf(&b, "- %s | %s | %s\n", el.Selector, tag, el.Label)
	}
	b.WriteString("\nPage content (markdown):\n")
	b.WriteString(s.Markdown)
	return b.String()
}
