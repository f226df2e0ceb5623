package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser turns each heading, paragraph and list item of a markdown
// file into a Paragraph. Code blocks and raw HTML are skipped.
type MarkdownParser struct{}

// Parse implements Parser.
func (p *MarkdownParser) Parse(r io.Reader, filename string) (*Document, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read markdown: %w", err)
	}
	source := []byte(decode(content))

	frontmatter, body, skipped := ParseFrontmatter(source)

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(body))

	title := titleOf(filename)
	if t, ok := frontmatter["title"].(string); ok && t != "" {
		title = t
	}
	return &Document{
		Name:        filename,
		Title:       title,
		Format:      FormatMarkdown,
		Paragraphs:  markdownBlocks(doc, body, skipped),
		Frontmatter: frontmatter,
	}, nil
}

// markdownBlocks walks the AST and collects text blocks. lineOffset is added
// to every start line to account for stripped frontmatter.
func markdownBlocks(doc ast.Node, source []byte, lineOffset int) []Paragraph {
	var out []Paragraph
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindFencedCodeBlock, ast.KindCodeBlock, ast.KindHTMLBlock:
			return ast.WalkSkipChildren, nil
		case ast.KindHeading, ast.KindParagraph, ast.KindTextBlock:
			t := strings.TrimSpace(inlineText(n, source))
			if t == "" {
				return ast.WalkSkipChildren, nil
			}
			line := 0
			if n.Lines().Len() > 0 {
				seg := n.Lines().At(0)
				line = bytes.Count(source[:seg.Start], []byte("\n")) + 1 + lineOffset
			}
			out = append(out, Paragraph{Text: t, StartLine: line})
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return out
}

// inlineText renders the inline children of a block as plain text, keeping
// soft line breaks as newlines so line numbers inside the block hold.
func inlineText(block ast.Node, source []byte) string {
	var buf strings.Builder
	_ = ast.Walk(block, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Text:
			buf.Write(node.Segment.Value(source))
			if node.SoftLineBreak() || node.HardLineBreak() {
				buf.WriteByte('\n')
			}
		case *ast.String:
			buf.Write(node.Value)
		case *ast.AutoLink:
			buf.Write(node.URL(source))
			return ast.WalkSkipChildren, nil
		case *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}
