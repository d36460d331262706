package scenarios

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// parseDoc parses serialized page HTML
func parseDoc(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page HTML: %w", err)
	}
	return doc, nil
}

// TableRows returns the text of each populated row in the records table.
// Rows whose cells are all empty are demo-site padding and are dropped.
func TableRows(html, rowSelector string) ([]string, error) {
	doc, err := parseDoc(html)
	if err != nil {
		return nil, err
	}

	var rows []string
	doc.Find(rowSelector).Each(func(i int, sel *goquery.Selection) {
		var cells []string
		sel.Find("td, [role=gridcell]").Each(func(j int, cell *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})
		if len(cells) == 0 {
			// Row selector matched the row element itself
			text := strings.TrimSpace(sel.Text())
			if text != "" {
				rows = append(rows, text)
			}
			return
		}
		joined := strings.Join(cells, " ")
		if strings.TrimSpace(joined) != "" {
			rows = append(rows, joined)
		}
	})
	return rows, nil
}

// ButtonLabels returns the visible label of every button on the page
func ButtonLabels(html string) ([]string, error) {
	doc, err := parseDoc(html)
	if err != nil {
		return nil, err
	}

	var labels []string
	doc.Find("button").Each(func(i int, sel *goquery.Selection) {
		label := strings.TrimSpace(sel.Text())
		if label != "" {
			labels = append(labels, label)
		}
	})
	return labels, nil
}
