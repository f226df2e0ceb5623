package position

import "testing"

func TestLineNumberOf(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		offset int
		want   int
	}{
		{"start", "See the catalogue.", 0, 1},
		{"single line", "See the catalogue.", 8, 1},
		{"after newline", "one\ntwo\nthree", 4, 2},
		{"on newline", "one\ntwo", 3, 1},
		{"third line", "one\ntwo\nthree", 10, 3},
		{"negative offset", "one\ntwo", -5, 1},
		{"past end", "one\ntwo\n", 100, 3},
		{"empty", "", 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LineNumberOf(tt.text, tt.offset); got != tt.want {
				t.Errorf("LineNumberOf(%q, %d) = %d, want %d", tt.text, tt.offset, got, tt.want)
			}
		})
	}
}

func TestLocator(t *testing.T) {
	l := Locator{Text: "first\nsecond", BaseLine: 10}
	if got := l.Line(0); got != 10 {
		t.Errorf("Line(0) = %d, want 10", got)
	}
	if got := l.Line(7); got != 11 {
		t.Errorf("Line(7) = %d, want 11", got)
	}
	if got := l.Rebase(2); got != 11 {
		t.Errorf("Rebase(2) = %d, want 11", got)
	}

	zero := Locator{Text: "a\nb"}
	if got := zero.Line(2); got != 2 {
		t.Errorf("zero base Line(2) = %d, want 2", got)
	}
}
