package results

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/specto/internal/models"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// ReportWriter renders a completed run as a markdown summary and a PDF copy
// in the configured results directory.
type ReportWriter struct {
	dir    string
	logger arbor.ILogger
}

// NewReportWriter creates a report writer targeting dir.
func NewReportWriter(dir string, logger arbor.ILogger) *ReportWriter {
	return &ReportWriter{dir: dir, logger: logger}
}

// WriteReport writes run_<id>.md and run_<id>.pdf and returns their paths.
func (w *ReportWriter) WriteReport(run *models.RunRecord) (mdPath, pdfPath string, err error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", "", fmt.Errorf("failed to create results directory: %w", err)
	}

	markdown := BuildMarkdown(run)

	mdPath = filepath.Join(w.dir, run.ID+".md")
	if err := os.WriteFile(mdPath, []byte(markdown), 0644); err != nil {
		return "", "", fmt.Errorf("failed to write markdown report: %w", err)
	}

	pdfBytes, err := ConvertMarkdownToPDF(markdown)
	if err != nil {
		return "", "", err
	}
	pdfPath = filepath.Join(w.dir, run.ID+".pdf")
	if err := os.WriteFile(pdfPath, pdfBytes, 0644); err != nil {
		return "", "", fmt.Errorf("failed to write PDF report: %w", err)
	}

	w.logger.Info().Str("run_id", run.ID).Str("pdf", pdfPath).Msg("Run report written")
	return mdPath, pdfPath, nil
}

// BuildMarkdown renders a run record as a markdown report.
func BuildMarkdown(run *models.RunRecord) string {
	passed, failed, skipped := run.Counts()

	var b strings.Builder
	fmt.Fprintf(&b, "# Run Report %s\n\n", run.ID)
	fmt.Fprintf(&b, "- **Surface**: %s\n", run.Surface)
	fmt.Fprintf(&b, "- **Target**: %s\n", run.TargetURL)
	fmt.Fprintf(&b, "- **Started**: %s\n", run.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "- **Duration**: %s\n", run.Duration.Round(time.Millisecond))
	fmt.Fprintf(&b, "- **Result**: %d passed, %d failed, %d skipped\n\n", passed, failed, skipped)

	b.WriteString("## Scenarios\n\n")
	b.WriteString("| Scenario | Status | Duration | Detail |\n")
	b.WriteString("| --- | --- | --- | --- |\n")
	for _, s := range run.Scenarios {
		detail := s.Result
		if s.Error != "" {
			detail = s.Error
		}
		detail = strings.ReplaceAll(detail, "|", "/")
		detail = strings.ReplaceAll(detail, "\n", " ")
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", s.Name, s.Status, s.Duration.Round(time.Millisecond), detail)
	}

	return b.String()
}

// ConvertMarkdownToPDF renders markdown report content as PDF bytes.
func ConvertMarkdownToPDF(markdown string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 10)
	pdf.AddPage()
	pdf.SetFont("Arial", "", 9)

	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	source := []byte(markdown)
	doc := md.Parser().Parse(text.NewReader(source))

	r := &reportRenderer{pdf: pdf, source: source}
	if err := ast.Walk(doc, r.walk); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF output: %w", err)
	}
	return buf.Bytes(), nil
}

type reportRenderer struct {
	pdf    *fpdf.Fpdf
	source []byte
	bold   bool
}

func (r *reportRenderer) walk(n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node := n.(type) {
	case *ast.Heading:
		if entering {
			r.pdf.Ln(5)
			size := 14.0
			if node.Level > 1 {
				size = 12
			}
			r.pdf.SetFont("Arial", "B", size)
		} else {
			r.pdf.Ln(6)
			r.resetFont()
		}
	case *ast.Paragraph:
		if !entering {
			r.pdf.Ln(6)
		}
	case *ast.Text:
		if entering {
			r.pdf.Write(5, string(node.Text(r.source)))
		}
	case *ast.Emphasis:
		r.bold = entering && node.Level == 2
		r.resetFont()
	case *ast.ListItem:
		if entering {
			r.pdf.Ln(5)
			r.pdf.SetX(14)
			r.pdf.Write(5, "- ")
		}
	case *ast.List:
		if !entering {
			r.pdf.Ln(5)
		}
	case *extast.Table:
		if entering {
			r.renderTable(node)
			return ast.WalkSkipChildren, nil
		}
	}
	return ast.WalkContinue, nil
}

func (r *reportRenderer) resetFont() {
	style := ""
	if r.bold {
		style = "B"
	}
	r.pdf.SetFont("Arial", style, 9)
}

func (r *reportRenderer) renderTable(n *extast.Table) {
	var rows [][]string
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch row := child.(type) {
		case *extast.TableHeader:
			for tr := row.FirstChild(); tr != nil; tr = tr.NextSibling() {
				// Some goldmark versions nest a TableRow under the header,
				// others put cells directly on it.
				if cells, ok := tr.(*extast.TableRow); ok {
					rows = append(rows, r.cellValues(cells))
				}
			}
			if len(rows) == 0 {
				rows = append(rows, r.cellValues(row))
			}
		case *extast.TableRow:
			rows = append(rows, r.cellValues(row))
		}
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return
	}

	r.pdf.Ln(3)
	width := 185.0 / float64(len(rows[0]))
	for i, row := range rows {
		if i == 0 {
			r.pdf.SetFont("Arial", "B", 8)
			r.pdf.SetFillColor(230, 230, 230)
		} else {
			r.pdf.SetFont("Arial", "", 8)
			r.pdf.SetFillColor(255, 255, 255)
		}
		for _, cell := range row {
			for r.pdf.GetStringWidth(cell) > width-2 && len(cell) > 3 {
				cell = cell[:len(cell)-1]
			}
			r.pdf.CellFormat(width, 6, cell, "1", 0, "L", i == 0, 0, "")
		}
		r.pdf.Ln(6)
	}
	r.pdf.Ln(3)
	r.resetFont()
}

func (r *reportRenderer) cellValues(n ast.Node) []string {
	var row []string
	for cell := n.FirstChild(); cell != nil; cell = cell.NextSibling() {
		if _, ok := cell.(*extast.TableCell); ok {
			row = append(row, string(cell.Text(r.source)))
		}
	}
	return row
}
