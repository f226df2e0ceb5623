package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// PDFParser extracts page text from PDF files and regroups it into
// paragraphs, joining the lines of each paragraph with spaces.
type PDFParser struct{}

// Parse implements Parser.
func (p *PDFParser) Parse(r io.Reader, filename string) (*Document, error) {
	// ledongthuc/pdf needs a file it can seek in.
	path, cleanup, err := spool(r, "doclint-*.pdf")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	raw, err := extractPDFText(path)
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}
	return &Document{
		Name:       filename,
		Title:      titleOf(filename),
		Format:     FormatPDF,
		Paragraphs: Split(joinPDFLines(raw)),
	}, nil
}

func extractPDFText(path string) (string, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		pages = append(pages, text)
	}
	return strings.Join(pages, "\n"), nil
}

// joinPDFLines rebuilds paragraphs from extracted text: blank lines end a
// paragraph and the remaining lines are trimmed and joined with spaces.
func joinPDFLines(raw string) string {
	var paragraphs []string
	var buffer []string
	for _, line := range strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			if len(buffer) > 0 {
				paragraphs = append(paragraphs, strings.Join(buffer, " "))
				buffer = buffer[:0]
			}
			continue
		}
		buffer = append(buffer, line)
	}
	if len(buffer) > 0 {
		paragraphs = append(paragraphs, strings.Join(buffer, " "))
	}
	return strings.Join(paragraphs, "\n\n")
}

// spool copies r into a temporary file and returns its path together with a
// function that removes it.
func spool(r io.Reader, pattern string) (string, func(), error) {
	tmp, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", nil, fmt.Errorf("create temp file: %w", err)
	}
	cleanup := func() { os.Remove(tmp.Name()) }

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		cleanup()
		return "", nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("close temp file: %w", err)
	}
	return tmp.Name(), cleanup, nil
}
