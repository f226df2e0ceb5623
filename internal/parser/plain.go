package parser

import (
	"fmt"
	"io"
	"strings"
)

// TextParser reads plain text, AsciiDoc and files of unknown type. Invalid
// UTF-8 sequences are replaced rather than rejected.
type TextParser struct {
	Format Format
}

// Parse implements Parser.
func (p *TextParser) Parse(r io.Reader, filename string) (*Document, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read text: %w", err)
	}
	return &Document{
		Name:       filename,
		Title:      titleOf(filename),
		Format:     p.Format,
		Paragraphs: Split(decode(content)),
	}, nil
}

func decode(content []byte) string {
	s := strings.ToValidUTF8(string(content), "�")
	return strings.ReplaceAll(s, "\r\n", "\n")
}
