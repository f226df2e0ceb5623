// Package feedback stores free-form notes submitted by users of the HTTP
// service. Entries are append-only.
package feedback

import (
	"context"
	"errors"
	"time"
)

// ErrEmpty is returned when an entry has no text.
var ErrEmpty = errors.New("feedback: empty text")

// Entry is one stored note.
type Entry struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists entries in submission order.
type Store interface {
	Add(ctx context.Context, text string) (Entry, error)
	List(ctx context.Context) ([]Entry, error)
	Close() error
}

// Open returns a SQLiteStore for path, or a MemoryStore when path is empty.
func Open(path string) (Store, error) {
	if path == "" {
		return NewMemoryStore(), nil
	}
	return OpenSQLite(path)
}

// Texts returns the text of each entry, in order.
func Texts(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Text
	}
	return out
}

var now = func() time.Time { return time.Now().UTC() }
