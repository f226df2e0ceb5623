// Package parser extracts plain paragraphs from uploaded or local documents.
package parser

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned when a document cannot be read as text.
var ErrUnsupportedFormat = errors.New("unsupported format")

var lookPath = exec.LookPath

// Paragraph is one block of prose. StartLine is the 1-based line of the
// block in the extracted text, or 0 when the format has no line structure.
type Paragraph struct {
	Text      string
	StartLine int
}

// Document is the result of parsing one file.
type Document struct {
	Name        string
	Title       string
	Format      Format
	Paragraphs  []Paragraph
	Frontmatter map[string]interface{} // YAML frontmatter from markdown files
}

// Texts returns the paragraph texts in document order.
func (d *Document) Texts() []string {
	out := make([]string, len(d.Paragraphs))
	for i, p := range d.Paragraphs {
		out[i] = p.Text
	}
	return out
}

// Format identifies how a file is decoded.
type Format int

const (
	// FormatText is plain UTF-8 text, also used for unknown extensions
	FormatText Format = iota
	FormatMarkdown
	FormatAsciiDoc
	FormatHTML
	FormatPDF
	FormatDOCX
	// FormatDOC is the legacy binary Word format, read through antiword
	FormatDOC
)

func (f Format) String() string {
	switch f {
	case FormatMarkdown:
		return "markdown"
	case FormatAsciiDoc:
		return "asciidoc"
	case FormatHTML:
		return "html"
	case FormatPDF:
		return "pdf"
	case FormatDOCX:
		return "docx"
	case FormatDOC:
		return "doc"
	default:
		return "text"
	}
}

// Parser converts raw document bytes into paragraphs.
type Parser interface {
	Parse(r io.Reader, filename string) (*Document, error)
}

// FormatOf returns the Format for a filename, by extension.
func FormatOf(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown":
		return FormatMarkdown
	case ".adoc", ".asciidoc":
		return FormatAsciiDoc
	case ".html", ".htm":
		return FormatHTML
	case ".pdf":
		return FormatPDF
	case ".docx":
		return FormatDOCX
	case ".doc":
		return FormatDOC
	default:
		return FormatText
	}
}

// ForFile returns the parser for a filename. Unknown extensions are read as
// text. Legacy .doc files need antiword on PATH.
func ForFile(filename string) (Parser, error) {
	switch FormatOf(filename) {
	case FormatMarkdown:
		return &MarkdownParser{}, nil
	case FormatHTML:
		return &HTMLParser{}, nil
	case FormatPDF:
		return &PDFParser{}, nil
	case FormatDOCX:
		return &DOCXParser{}, nil
	case FormatDOC:
		path, err := lookPath("antiword")
		if err != nil {
			return nil, fmt.Errorf("%w: .doc requires antiword", ErrUnsupportedFormat)
		}
		return &DOCParser{Antiword: path}, nil
	case FormatAsciiDoc:
		return &TextParser{Format: FormatAsciiDoc}, nil
	default:
		return &TextParser{}, nil
	}
}

// Parse reads the document from r, choosing the parser from filename.
func Parse(r io.Reader, filename string) (*Document, error) {
	p, err := ForFile(filename)
	if err != nil {
		return nil, err
	}
	doc, err := p.Parse(r, filename)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	return doc, nil
}

// ParseFile reads and parses a file from disk.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f, path)
}

// Split trims text and splits it on "\n\n", recording the line each chunk
// starts on. Chunks are kept as-is so that line numbers computed inside a
// chunk can be rebased onto StartLine; blank chunks are dropped.
func Split(text string) []Paragraph {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	line := 1 + strings.Count(text[:strings.Index(text, trimmed)], "\n")

	var out []Paragraph
	for _, chunk := range strings.Split(trimmed, "\n\n") {
		if strings.TrimSpace(chunk) != "" {
			out = append(out, Paragraph{Text: chunk, StartLine: line})
		}
		line += strings.Count(chunk, "\n") + 2
	}
	return out
}

func titleOf(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ParseFrontmatter extracts YAML frontmatter from content between ---
// delimiters. It returns the parsed frontmatter, the remaining content and
// the number of lines removed.
func ParseFrontmatter(content []byte) (map[string]interface{}, []byte, int) {
	s := string(content)
	if !strings.HasPrefix(s, "---") {
		return nil, content, 0
	}

	rest := s[3:]
	endIdx := strings.Index(rest, "\n---")
	if endIdx == -1 {
		return nil, content, 0
	}

	var frontmatter map[string]interface{}
	if err := yaml.Unmarshal([]byte(strings.TrimSpace(rest[:endIdx])), &frontmatter); err != nil {
		return nil, content, 0
	}

	remaining := rest[endIdx+4:]
	if i := strings.IndexByte(remaining, '\n'); i >= 0 && strings.TrimSpace(remaining[:i]) == "" {
		remaining = remaining[i+1:]
	} else if strings.TrimSpace(remaining) == "" {
		remaining = ""
	}
	removed := s[:len(s)-len(remaining)]
	return frontmatter, []byte(remaining), strings.Count(removed, "\n")
}
