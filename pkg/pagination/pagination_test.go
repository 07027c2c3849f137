package pagination

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestCursorRoundTrip(t *testing.T) {
	want := Cursor{CreatedAt: time.Date(2026, 3, 1, 10, 30, 0, 123000, time.UTC), ID: uuid.New()}

	got, err := ParseCursor(EncodeCursor(want))
	if err != nil {
		t.Fatalf("ParseCursor: %v", err)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) || got.ID != want.ID {
		t.Fatalf("cursor mismatch: got %+v want %+v", got, want)
	}
}

func TestParseCursorRejectsGarbage(t *testing.T) {
	if c, err := ParseCursor(""); err != nil || c != nil {
		t.Fatalf("empty cursor should be nil, got %v %v", c, err)
	}
	for _, raw := range []string{"%%%", "bm9waXBl", "MjAyNnxub3QtYS11dWlk"} {
		if _, err := ParseCursor(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestNormalizeLimit(t *testing.T) {
	cases := map[int]int{0: DefaultLimit, -4: DefaultLimit, 10: 10, 500: MaxLimit}
	for in, want := range cases {
		if got := NormalizeLimit(in); got != want {
			t.Fatalf("NormalizeLimit(%d) = %d, want %d", in, got, want)
		}
	}
	if LimitWithBuffer(10) != 11 {
		t.Fatalf("expected buffer of one")
	}
}

type row struct {
	id uuid.UUID
	at time.Time
}

func TestTrim(t *testing.T) {
	now := time.Now().UTC()
	rows := []row{{uuid.New(), now}, {uuid.New(), now.Add(-time.Second)}, {uuid.New(), now.Add(-2 * time.Second)}}
	key := func(r row) Cursor { return Cursor{CreatedAt: r.at, ID: r.id} }

	page, next := Trim(rows, 2, key)
	if len(page) != 2 || next == "" {
		t.Fatalf("expected two rows and a cursor, got %d %q", len(page), next)
	}
	c, err := ParseCursor(next)
	if err != nil || c.ID != rows[1].id {
		t.Fatalf("cursor should point at last returned row: %v %v", c, err)
	}

	page, next = Trim(rows, 3, key)
	if len(page) != 3 || next != "" {
		t.Fatalf("expected final page, got %d %q", len(page), next)
	}
}
