package review

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"suggestions": []}`, `{"suggestions": []}`},
		{"json fence", "Here you go:\n```json\n{\"a\": 1}\n```\n", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounded", `Sure! {"a": 1} Hope that helps.`, `{"a": 1}`},
		{"no json", "nothing here", "nothing here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractJSON(tt.in); got != tt.want {
				t.Errorf("ExtractJSON(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLLMRuleCheck(t *testing.T) {
	var prompt string
	r := &LLMRule{
		complete: func(_ context.Context, p string) (string, error) {
			prompt = p
			return "```json\n{\"suggestions\": [{\"line\": 2, \"message\": \"Split this sentence.\"}, {\"message\": \"Define API.\"}, {\"line\": 1, \"message\": \" \"}]}\n```", nil
		},
		timeout: 0,
	}

	got, err := r.Check("First line.\nSecond line uses the API.", nil)
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	want := []string{"Line 2: Split this sentence.", "Define API."}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("Check() = %q, want %q", got, want)
	}
	if !strings.Contains(prompt, "Second line uses the API.") {
		t.Error("prompt does not contain the paragraph")
	}
}

func TestLLMRuleErrors(t *testing.T) {
	failing := &LLMRule{complete: func(context.Context, string) (string, error) {
		return "", errors.New("rate limited")
	}}
	if _, err := failing.Check("Some text.", nil); err == nil {
		t.Error("expected completion error")
	}

	garbage := &LLMRule{complete: func(context.Context, string) (string, error) {
		return "I cannot help with that.", nil
	}}
	if _, err := garbage.Check("Some text.", nil); err == nil {
		t.Error("expected parse error")
	}

	var missing *LLMRule
	if _, err := missing.Check("Some text.", nil); err == nil {
		t.Error("expected error from nil rule")
	}
}

func TestNewWithoutKey(t *testing.T) {
	if New("", "") != nil {
		t.Error("New with empty key should return nil")
	}
}

func TestConfigRequiresAI(t *testing.T) {
	r := New("test-key", "")
	if r == nil {
		t.Fatal("New returned nil")
	}
	if !r.Config().RequiresAI {
		t.Error("RequiresAI = false, want true")
	}
	if r.Name() != "llm-review" {
		t.Errorf("Name() = %q", r.Name())
	}
}

func TestCheckContextCancelled(t *testing.T) {
	r := &LLMRule{
		complete: func(ctx context.Context, _ string) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		},
		timeout: time.Minute,
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.CheckContext(ctx, "Some text.", nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("CheckContext() error = %v, want context.Canceled", err)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"short", "abc", 5, "abc"},
		{"ascii", "abcdef", 3, "abc..."},
		{"inside a rune", "ab€cd", 3, "ab..."},
		{"rune boundary", "ab€cd", 5, "ab€..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.in, tt.n)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("truncate(%q, %d) produced invalid UTF-8", tt.in, tt.n)
			}
		})
	}
}
