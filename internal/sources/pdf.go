package sources

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractPDFText pulls the plain text out of a PDF byte slice, page by
// page. Pages that fail to decode are skipped rather than failing the
// whole document.
func ExtractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	var b strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}

	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", fmt.Errorf("pdf contains no extractable text (%d pages)", numPages)
	}
	return out, nil
}

// ExtractPDFLinks collects the URI annotations embedded in a PDF. Many
// resume builders hide the real profile URLs behind short display text, so
// the annotation targets matter more than the visible text.
func ExtractPDFLinks(data []byte) []string {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var links []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		annots := page.V.Key("Annots")
		if annots.IsNull() {
			continue
		}
		for j := 0; j < annots.Len(); j++ {
			uri := annots.Index(j).Key("A").Key("URI")
			if uri.IsNull() {
				continue
			}
			u := uri.RawString()
			if u == "" || seen[u] {
				continue
			}
			seen[u] = true
			links = append(links, u)
		}
	}
	return links
}
