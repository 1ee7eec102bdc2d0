package collection

import (
	"errors"
	"strings"
	"testing"

	"github.com/matzehuels/cardwall/pkg/geometry"
)

func TestNewList(t *testing.T) {
	tests := []struct {
		name    string
		items   []Item
		wantErr error
		wantLen int
	}{
		{
			name:    "empty",
			items:   nil,
			wantLen: 0,
		},
		{
			name:    "ordered items",
			items:   []Item{{Key: "a"}, {Key: "b"}, {Key: "c"}},
			wantLen: 3,
		},
		{
			name:    "empty key rejected",
			items:   []Item{{Key: "a"}, {}},
			wantErr: ErrEmptyKey,
		},
		{
			name:    "duplicate key rejected",
			items:   []Item{{Key: "a"}, {Key: "a"}},
			wantErr: ErrDuplicateKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := NewList(tt.items...)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewList() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewList() error = %v", err)
			}
			if l.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", l.Len(), tt.wantLen)
			}
		})
	}
}

func TestListAppendLeavesListUnchangedOnError(t *testing.T) {
	l, err := NewList(Item{Key: "a"})
	if err != nil {
		t.Fatalf("NewList: %v", err)
	}

	if err := l.Append(Item{Key: "b"}, Item{Key: "a"}); !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("Append() error = %v, want %v", err, ErrDuplicateKey)
	}
	if l.Len() != 1 {
		t.Errorf("Len() = %d after failed append, want 1", l.Len())
	}
	if _, ok := l.Item("b"); ok {
		t.Error("item b present after failed append")
	}
}

func TestListOrderAndLookup(t *testing.T) {
	l, err := NewList(Item{Key: "first"}, Item{Key: "second"}, Item{Key: "third"})
	if err != nil {
		t.Fatalf("NewList: %v", err)
	}

	keys := l.Keys()
	want := []Key{"first", "second", "third"}
	for i, k := range want {
		if keys[i] != k {
			t.Errorf("Keys()[%d] = %q, want %q", i, keys[i], k)
		}
	}

	if _, ok := l.Item("second"); !ok {
		t.Error("Item(second) not found")
	}
	if _, ok := l.Item("missing"); ok {
		t.Error("Item(missing) found, want absent")
	}
}

func TestListRemove(t *testing.T) {
	l, err := NewList(Item{Key: "a"}, Item{Key: "b"}, Item{Key: "c"})
	if err != nil {
		t.Fatalf("NewList: %v", err)
	}

	if !l.Remove("b") {
		t.Fatal("Remove(b) = false, want true")
	}
	if l.Remove("b") {
		t.Error("second Remove(b) = true, want false")
	}

	keys := l.Keys()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "c" {
		t.Errorf("Keys() = %v after remove, want [a c]", keys)
	}

	// Index must stay consistent after the shift.
	if it, ok := l.Item("c"); !ok || it.Key != "c" {
		t.Errorf("Item(c) = %v, %v after remove, want item c", it, ok)
	}
}

func TestListClone(t *testing.T) {
	orig, err := NewList(Item{Key: "a"}, Item{Key: "b"})
	if err != nil {
		t.Fatalf("NewList: %v", err)
	}

	clone := orig.Clone()
	if !clone.Remove("a") {
		t.Fatal("Remove(a) on clone failed")
	}

	if orig.Len() != 2 {
		t.Errorf("original Len() = %d after clone mutation, want 2", orig.Len())
	}
	if clone.Len() != 1 {
		t.Errorf("clone Len() = %d, want 1", clone.Len())
	}
}

func TestItemHasSize(t *testing.T) {
	tests := []struct {
		name string
		item Item
		want bool
	}{
		{name: "nil size", item: Item{Key: "a"}, want: false},
		{name: "full size", item: Item{Key: "a", Size: &geometry.Size{Width: 400, Height: 300}}, want: true},
		{name: "zero width", item: Item{Key: "a", Size: &geometry.Size{Height: 300}}, want: false},
		{name: "zero height", item: Item{Key: "a", Size: &geometry.Size{Width: 400}}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.HasSize(); got != tt.want {
				t.Errorf("HasSize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDiff(t *testing.T) {
	next, err := NewList(Item{Key: "b"}, Item{Key: "d"})
	if err != nil {
		t.Fatalf("NewList: %v", err)
	}

	removed := Diff([]Key{"a", "b", "c", "d"}, next)
	if len(removed) != 2 || removed[0] != "a" || removed[1] != "c" {
		t.Errorf("Diff() = %v, want [a c]", removed)
	}

	if got := Diff(nil, next); got != nil {
		t.Errorf("Diff(nil, next) = %v, want nil", got)
	}
}

func TestReadWriteRoundTrip(t *testing.T) {
	in := `{
  "items": [
    {"key": "a", "size": {"width": 400, "height": 300}},
    {"key": "b", "meta": {"title": "Second"}},
    {"key": "c"}
  ]
}`

	l, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if l.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", l.Len())
	}

	a, _ := l.Item("a")
	if !a.HasSize() || a.Size.Width != 400 || a.Size.Height != 300 {
		t.Errorf("item a size = %v, want 400x300", a.Size)
	}
	b, _ := l.Item("b")
	if b.Meta["title"] != "Second" {
		t.Errorf("item b meta title = %v, want Second", b.Meta["title"])
	}

	var out strings.Builder
	if err := Write(l, &out); err != nil {
		t.Fatalf("Write: %v", err)
	}
	reread, err := Read(strings.NewReader(out.String()))
	if err != nil {
		t.Fatalf("re-Read: %v", err)
	}
	if reread.Len() != l.Len() {
		t.Errorf("round trip Len() = %d, want %d", reread.Len(), l.Len())
	}
	for i, k := range l.Keys() {
		if reread.Keys()[i] != k {
			t.Errorf("round trip Keys()[%d] = %q, want %q", i, reread.Keys()[i], k)
		}
	}
}

func TestReadRejectsDuplicateKeys(t *testing.T) {
	in := `{"items": [{"key": "a"}, {"key": "a"}]}`
	if _, err := Read(strings.NewReader(in)); !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("Read() error = %v, want %v", err, ErrDuplicateKey)
	}
}

func TestImportExportJSON(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/items.json"

	l, err := NewList(
		Item{Key: "a", Size: &geometry.Size{Width: 640, Height: 480}},
		Item{Key: "b"},
	)
	if err != nil {
		t.Fatalf("NewList: %v", err)
	}

	if err := ExportJSON(l, path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	got, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if got.Len() != 2 {
		t.Errorf("imported Len() = %d, want 2", got.Len())
	}

	if _, err := ImportJSON(dir + "/missing.json"); err == nil {
		t.Error("ImportJSON(missing) error = nil, want error")
	}
}
