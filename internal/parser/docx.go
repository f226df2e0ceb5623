package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/fumiama/go-docx"
)

// DOCXParser turns every non-empty Word paragraph into a Paragraph.
type DOCXParser struct{}

// Parse implements Parser.
func (p *DOCXParser) Parse(r io.Reader, filename string) (*Document, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read docx: %w", err)
	}
	doc, err := docx.Parse(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	out := &Document{
		Name:   filename,
		Title:  titleOf(filename),
		Format: FormatDOCX,
	}
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		if t := docxParagraphText(para); t != "" {
			out.Paragraphs = append(out.Paragraphs, Paragraph{Text: t})
		}
	}
	return out, nil
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

// DOCParser reads legacy .doc files through the antiword utility.
type DOCParser struct {
	Antiword string
	Timeout  time.Duration
}

// Parse implements Parser.
func (p *DOCParser) Parse(r io.Reader, filename string) (*Document, error) {
	path, cleanup, err := spool(r, "doclint-*.doc")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	timeout := p.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, p.Antiword, path)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("antiword: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return &Document{
		Name:       filename,
		Title:      titleOf(filename),
		Format:     FormatDOC,
		Paragraphs: Split(decode(out)),
	}, nil
}
