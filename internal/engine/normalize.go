package engine

import "strings"

// StripLinePrefix removes a leading "Line N:" tag, matched case-insensitively
// up to the first colon, and trims the remainder. Other messages are
// returned unchanged.
func StripLinePrefix(msg string) string {
	if !strings.HasPrefix(strings.ToLower(msg), "line ") {
		return msg
	}
	i := strings.Index(msg, ":")
	if i < 0 {
		return msg
	}
	return strings.TrimSpace(msg[i+1:])
}

// Normalize applies StripLinePrefix to every suggestion, keeping order.
func Normalize(suggestions []string) []string {
	out := make([]string, len(suggestions))
	for i, s := range suggestions {
		out[i] = StripLinePrefix(s)
	}
	return out
}
