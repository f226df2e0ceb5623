// Package position maps byte offsets within a block of text to 1-based line
// numbers.
package position

import "strings"

// LineNumberOf returns the 1-based line containing offset: the number of
// newlines in text[:offset] plus one. Offsets outside the text are clamped.
func LineNumberOf(text string, offset int) int {
	if offset < 0 {
		offset = 0
	}
	if offset > len(text) {
		offset = len(text)
	}
	return strings.Count(text[:offset], "\n") + 1
}

// Locator numbers lines of a paragraph relative to the document it came from.
// BaseLine is the document line on which Text starts; zero is treated as one.
type Locator struct {
	Text     string
	BaseLine int
}

// Line returns the document line for an offset into l.Text.
func (l Locator) Line(offset int) int {
	base := l.BaseLine
	if base < 1 {
		base = 1
	}
	return LineNumberOf(l.Text, offset) + base - 1
}

// Rebase converts a paragraph-relative line number into a document line.
func (l Locator) Rebase(line int) int {
	base := l.BaseLine
	if base < 1 {
		base = 1
	}
	return line + base - 1
}
