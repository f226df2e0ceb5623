package feedback

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"sync"
	"testing"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()
	sqlite, err := OpenSQLite(filepath.Join(t.TempDir(), "feedback.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })
	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": sqlite,
	}
}

func TestStoreAddList(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			list, err := s.List(ctx)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if list == nil || len(list) != 0 {
				t.Fatalf("List() on empty store = %v, want empty non-nil", list)
			}

			for _, text := range []string{"first", "second", "third"} {
				e, err := s.Add(ctx, text)
				if err != nil {
					t.Fatalf("Add(%q) error = %v", text, err)
				}
				if e.Text != text || e.ID == 0 || e.CreatedAt.IsZero() {
					t.Errorf("Add(%q) = %+v", text, e)
				}
			}

			list, err = s.List(ctx)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			got := Texts(list)
			want := []string{"first", "second", "third"}
			if len(got) != len(want) {
				t.Fatalf("List() = %q, want %q", got, want)
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("entry %d = %q, want %q", i, got[i], want[i])
				}
			}
		})
	}
}

func TestStoreRejectsEmpty(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Add(context.Background(), ""); !errors.Is(err, ErrEmpty) {
				t.Errorf("Add(\"\") error = %v, want ErrEmpty", err)
			}
		})
	}
}

func TestSQLitePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.db")
	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	if _, err := s.Add(context.Background(), "kept"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	s, err = OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer s.Close()
	list, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 1 || list[0].Text != "kept" || list[0].ID != 1 {
		t.Errorf("List() after reopen = %+v", list)
	}
}

func TestOpenSQLiteError(t *testing.T) {
	orig := openDB
	openDB = func(string, string) (*sql.DB, error) { return nil, errors.New("boom") }
	defer func() { openDB = orig }()

	if _, err := OpenSQLite("ignored.db"); err == nil {
		t.Fatal("expected error from failing driver")
	}
}

func TestOpen(t *testing.T) {
	s, err := Open("")
	if err != nil {
		t.Fatalf("Open(\"\") error = %v", err)
	}
	if _, ok := s.(*MemoryStore); !ok {
		t.Errorf("Open(\"\") = %T, want *MemoryStore", s)
	}

	s, err = Open(filepath.Join(t.TempDir(), "f.db"))
	if err != nil {
		t.Fatalf("Open(path) error = %v", err)
	}
	defer s.Close()
	if _, ok := s.(*SQLiteStore); !ok {
		t.Errorf("Open(path) = %T, want *SQLiteStore", s)
	}
}

func TestMemoryStoreConcurrentAdd(t *testing.T) {
	s := NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Add(context.Background(), "note"); err != nil {
				t.Errorf("Add() error = %v", err)
			}
		}()
	}
	wg.Wait()

	list, _ := s.List(context.Background())
	if len(list) != 50 {
		t.Fatalf("got %d entries, want 50", len(list))
	}
	for i, e := range list {
		if e.ID != int64(i+1) {
			t.Errorf("entry %d has id %d", i, e.ID)
		}
	}
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewMemoryStore()
	if _, err := s.Add(ctx, "x"); !errors.Is(err, context.Canceled) {
		t.Errorf("Add() error = %v, want context.Canceled", err)
	}
}
