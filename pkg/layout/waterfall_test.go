package layout

import (
	"reflect"
	"testing"

	"github.com/matzehuels/cardwall/pkg/collection"
	"github.com/matzehuels/cardwall/pkg/errors"
	"github.com/matzehuels/cardwall/pkg/geometry"
	"github.com/matzehuels/cardwall/pkg/snapshot"
)

func mustWaterfall(t *testing.T, cfg Config) *Waterfall {
	t.Helper()
	w, err := NewWaterfall(cfg)
	if err != nil {
		t.Fatalf("NewWaterfall: %v", err)
	}
	return w
}

func mustItems(t *testing.T, items ...collection.Item) *collection.List {
	t.Helper()
	l, err := collection.NewList(items...)
	if err != nil {
		t.Fatalf("NewList: %v", err)
	}
	return l
}

// bare returns an item with no intrinsic size.
func bare(key string) collection.Item {
	return collection.Item{Key: collection.Key(key)}
}

// sized returns an item with an intrinsic size hint.
func sized(key string, w, h float64) collection.Item {
	return collection.Item{Key: collection.Key(key), Size: &geometry.Size{Width: w, Height: h}}
}

func TestWaterfallColumnCount(t *testing.T) {
	tests := []struct {
		name       string
		cfg        Config
		viewportW  float64
		numColumns int
	}{
		{"narrow viewport clamps to one", Config{}, 100, 1},
		{"one unit fits", Config{}, 500, 1},
		{"two units", Config{}, 560, 2},
		{"three units", Config{}, 800, 3},
		{"six units", Config{}, 1600, 6},
		{"max columns caps", Config{MaxColumns: 4}, 1600, 4},
		{"zero viewport clamps to one", Config{}, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := mustWaterfall(t, tt.cfg)
			w.Validate(Input{Viewport: geometry.Size{Width: tt.viewportW, Height: 600}}, Invalidation{})
			if got := w.NumColumns(); got != tt.numColumns {
				t.Errorf("NumColumns() = %d, want %d", got, tt.numColumns)
			}
		})
	}
}

func TestWaterfallColumnMetrics(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		viewportW float64
		itemWidth float64
		spacing   float64
	}{
		// 800: three columns, rounded width 235 clamps up to the 240
		// minimum, the 32px leftover splits into two 16px gaps.
		{"default 800", Config{}, 800, 240, 16},
		// 796: clamping still wins, squeezing the gaps below the minimum.
		{"spacing below minimum", Config{}, 796, 240, 14},
		// Width cap bites, leftover widens the gaps instead.
		{"max width caps", Config{MaxItemSize: geometry.Size{Width: 250}}, 900, 250, 51},
		{"two columns capped", Config{MaxColumns: 2}, 800, 364, 24},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := mustWaterfall(t, tt.cfg)
			w.Validate(Input{Viewport: geometry.Size{Width: tt.viewportW, Height: 600}}, Invalidation{})
			if got := w.ItemWidth(); got != tt.itemWidth {
				t.Errorf("ItemWidth() = %g, want %g", got, tt.itemWidth)
			}
			if got := w.HorizontalSpacing(); got != tt.spacing {
				t.Errorf("HorizontalSpacing() = %g, want %g", got, tt.spacing)
			}
		})
	}
}

// Four square cards in an 800px viewport: three columns fill left to
// right, the fourth card wraps back to the first column.
func TestWaterfallPlacement(t *testing.T) {
	w := mustWaterfall(t, Config{})
	col := mustItems(t, bare("a"), bare("b"), bare("c"), bare("d"))
	w.Validate(Input{Collection: col, Viewport: geometry.Size{Width: 800, Height: 600}}, Invalidation{})

	want := map[collection.Key]geometry.Rect{
		"a": {X: 24, Y: 24, Width: 240, Height: 240},
		"b": {X: 280, Y: 24, Width: 240, Height: 240},
		"c": {X: 536, Y: 24, Width: 240, Height: 240},
		"d": {X: 24, Y: 288, Width: 240, Height: 240},
	}
	for key, rect := range want {
		e, ok := w.Entry(key)
		if !ok {
			t.Fatalf("Entry(%q) missing", key)
		}
		if e.Rect != rect {
			t.Errorf("Entry(%q).Rect = %+v, want %+v", key, e.Rect, rect)
		}
		if !e.Estimated {
			t.Errorf("Entry(%q).Estimated = false, want true", key)
		}
	}
	if got, want := w.ContentSize(), (geometry.Size{Width: 800, Height: 552}); got != want {
		t.Errorf("ContentSize() = %+v, want %+v", got, want)
	}
}

func TestWaterfallEqualHeightBalance(t *testing.T) {
	items := make([]collection.Item, 12)
	for i := range items {
		items[i] = bare(string(rune('a' + i)))
	}
	w := mustWaterfall(t, Config{})
	w.Validate(Input{Collection: mustItems(t, items...), Viewport: geometry.Size{Width: 800, Height: 600}}, Invalidation{})

	// Equal heights fill round-robin: card i lands in column i%3.
	for i, it := range items {
		e, ok := w.Entry(it.Key)
		if !ok {
			t.Fatalf("Entry(%q) missing", it.Key)
		}
		wantX := 24 + float64(i%3)*256
		wantY := 24 + float64(i/3)*264
		if e.Rect.X != wantX || e.Rect.Y != wantY {
			t.Errorf("Entry(%q) at (%g, %g), want (%g, %g)", it.Key, e.Rect.X, e.Rect.Y, wantX, wantY)
		}
	}
	if got, want := w.ContentSize(), (geometry.Size{Width: 800, Height: 1080}); got != want {
		t.Errorf("ContentSize() = %+v, want %+v", got, want)
	}
}

func TestWaterfallIntrinsicHeights(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		item   collection.Item
		height float64
	}{
		// round(400·240/300) = 320, plus 56 padding.
		{"aspect scaled", Config{}, sized("a", 400, 300), 376},
		// round(100·240/400) = 60 clamps up to the 136 minimum.
		{"clamped to min height", Config{}, sized("a", 100, 400), 192},
		// round(400·240/100) = 960 clamps down to the 200 cap.
		{"clamped to max height", Config{MaxItemSize: geometry.Size{Height: 200}}, sized("a", 400, 100), 256},
		// No intrinsic size falls back to a square card, no padding.
		{"square fallback", Config{}, bare("a"), 240},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := mustWaterfall(t, tt.cfg)
			w.Validate(Input{Collection: mustItems(t, tt.item), Viewport: geometry.Size{Width: 800, Height: 600}}, Invalidation{})
			e, ok := w.Entry("a")
			if !ok {
				t.Fatal("Entry(a) missing")
			}
			if e.Rect.Height != tt.height {
				t.Errorf("height = %g, want %g", e.Rect.Height, tt.height)
			}
			if !e.Estimated {
				t.Error("Estimated = false, want true")
			}
		})
	}
}

// Cards steer to the shortest column, leftmost on ties.
func TestWaterfallShortestColumn(t *testing.T) {
	w := mustWaterfall(t, Config{})
	// 560px viewport gives two 244px columns with 24px spacing.
	// a is tall (544), b short (192), so c lands under b.
	col := mustItems(t, sized("a", 488, 244), sized("b", 122, 244), bare("c"))
	w.Validate(Input{Collection: col, Viewport: geometry.Size{Width: 560, Height: 600}}, Invalidation{})

	if got := w.ItemWidth(); got != 244 {
		t.Fatalf("ItemWidth() = %g, want 244", got)
	}
	c, ok := w.Entry("c")
	if !ok {
		t.Fatal("Entry(c) missing")
	}
	if wantX := 24 + 244 + 24.0; c.Rect.X != wantX {
		t.Errorf("c.X = %g, want %g (second column)", c.Rect.X, wantX)
	}
	if wantY := 24 + 192 + 24.0; c.Rect.Y != wantY {
		t.Errorf("c.Y = %g, want %g (below b)", c.Rect.Y, wantY)
	}
}

func TestWaterfallValidateIdempotent(t *testing.T) {
	w := mustWaterfall(t, Config{})
	col := mustItems(t, sized("a", 400, 300), bare("b"), bare("c"))
	in := Input{Collection: col, Viewport: geometry.Size{Width: 800, Height: 600}, Loading: true}

	w.Validate(in, Invalidation{})
	first := w.Entries()
	size := w.ContentSize()

	for i := 0; i < 3; i++ {
		w.Validate(in, Invalidation{})
	}
	if !reflect.DeepEqual(w.Entries(), first) {
		t.Errorf("entries changed across repeated Validate: %+v != %+v", w.Entries(), first)
	}
	if w.ContentSize() != size {
		t.Errorf("ContentSize() = %+v, want %+v", w.ContentSize(), size)
	}
}

func TestWaterfallCacheEviction(t *testing.T) {
	w := mustWaterfall(t, Config{})
	in := Input{Collection: mustItems(t, bare("a"), bare("b"), bare("c")), Viewport: geometry.Size{Width: 800, Height: 600}}
	w.Validate(in, Invalidation{})

	for _, key := range []collection.Key{"a", "b", "c"} {
		if _, ok := w.Entry(key); !ok {
			t.Fatalf("Entry(%q) missing after build", key)
		}
	}

	in.Collection = mustItems(t, bare("a"), bare("c"))
	w.Validate(in, Invalidation{})

	if _, ok := w.Entry("b"); ok {
		t.Error("Entry(b) still present after removal")
	}
	// c slides into b's old slot.
	c, _ := w.Entry("c")
	if want := (geometry.Rect{X: 280, Y: 24, Width: 240, Height: 240}); c.Rect != want {
		t.Errorf("c.Rect = %+v, want %+v", c.Rect, want)
	}
}

func TestWaterfallStateEntries(t *testing.T) {
	tests := []struct {
		name        string
		items       []collection.Item
		loading     bool
		viewport    geometry.Size
		loader      *geometry.Rect
		placeholder *geometry.Rect
		contentH    float64
	}{
		{
			name:     "idle with items has neither",
			items:    []collection.Item{bare("a")},
			viewport: geometry.Size{Width: 800, Height: 600},
			contentH: 288,
		},
		{
			name:     "loading with items appends band",
			items:    []collection.Item{bare("a")},
			loading:  true,
			viewport: geometry.Size{Width: 800, Height: 600},
			loader:   &geometry.Rect{X: 0, Y: 288, Width: 800, Height: 60},
			contentH: 348,
		},
		{
			name:     "loading empty fills viewport",
			loading:  true,
			viewport: geometry.Size{Width: 800, Height: 600},
			loader:   &geometry.Rect{X: 0, Y: 0, Width: 800, Height: 600},
			contentH: 600,
		},
		{
			name:     "loading empty without viewport height",
			loading:  true,
			viewport: geometry.Size{Width: 800},
			loader:   &geometry.Rect{X: 0, Y: 0, Width: 800, Height: 60},
			contentH: 60,
		},
		{
			name:        "empty idle shows placeholder",
			viewport:    geometry.Size{Width: 800, Height: 600},
			placeholder: &geometry.Rect{X: 0, Y: 0, Width: 800, Height: 600},
			contentH:    600,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := mustWaterfall(t, Config{})
			w.Validate(Input{
				Collection: mustItems(t, tt.items...),
				Viewport:   tt.viewport,
				Loading:    tt.loading,
			}, Invalidation{})

			loader, hasLoader := w.Entry(KeyLoader)
			if (tt.loader != nil) != hasLoader {
				t.Fatalf("loader present = %v, want %v", hasLoader, tt.loader != nil)
			}
			if tt.loader != nil && loader.Rect != *tt.loader {
				t.Errorf("loader.Rect = %+v, want %+v", loader.Rect, *tt.loader)
			}

			ph, hasPh := w.Entry(KeyPlaceholder)
			if (tt.placeholder != nil) != hasPh {
				t.Fatalf("placeholder present = %v, want %v", hasPh, tt.placeholder != nil)
			}
			if tt.placeholder != nil && ph.Rect != *tt.placeholder {
				t.Errorf("placeholder.Rect = %+v, want %+v", ph.Rect, *tt.placeholder)
			}

			if got := w.ContentSize().Height; got != tt.contentH {
				t.Errorf("ContentSize().Height = %g, want %g", got, tt.contentH)
			}
		})
	}
}

// The loader disappears once loading stops, the placeholder once items
// arrive or loading resumes.
func TestWaterfallStateEntryLifecycle(t *testing.T) {
	w := mustWaterfall(t, Config{})
	viewport := geometry.Size{Width: 800, Height: 600}

	w.Validate(Input{Viewport: viewport, Loading: true}, Invalidation{})
	if _, ok := w.Entry(KeyLoader); !ok {
		t.Fatal("loader missing while loading")
	}

	w.Validate(Input{Viewport: viewport}, Invalidation{})
	if _, ok := w.Entry(KeyLoader); ok {
		t.Error("loader still present after loading stopped")
	}
	if _, ok := w.Entry(KeyPlaceholder); !ok {
		t.Fatal("placeholder missing for empty idle collection")
	}

	w.Validate(Input{Collection: mustItems(t, bare("a")), Viewport: viewport}, Invalidation{})
	if _, ok := w.Entry(KeyPlaceholder); ok {
		t.Error("placeholder still present after items arrived")
	}
}

func TestWaterfallUpdateItemSize(t *testing.T) {
	build := func(t *testing.T) *Waterfall {
		w := mustWaterfall(t, Config{})
		col := mustItems(t, bare("a"), bare("b"), bare("c"), bare("d"))
		w.Validate(Input{Collection: col, Viewport: geometry.Size{Width: 800, Height: 600}}, Invalidation{})
		return w
	}

	t.Run("unknown key is ignored", func(t *testing.T) {
		w := build(t)
		if w.UpdateItemSize("nope", geometry.Size{Width: 240, Height: 300}) {
			t.Error("UpdateItemSize(unknown) = true, want false")
		}
	})

	t.Run("absent size is ignored", func(t *testing.T) {
		w := build(t)
		if w.UpdateItemSize("a", geometry.Size{}) {
			t.Error("UpdateItemSize(zero size) = true, want false")
		}
	})

	t.Run("equal height leaves entry untouched", func(t *testing.T) {
		w := build(t)
		before, _ := w.Entry("a")
		if w.UpdateItemSize("a", geometry.Size{Width: 240, Height: before.Rect.Height}) {
			t.Error("UpdateItemSize(equal height) = true, want false")
		}
		after, _ := w.Entry("a")
		if after != before {
			t.Errorf("entry changed on no-op: %+v != %+v", after, before)
		}
		if !after.Estimated {
			t.Error("Estimated cleared by no-op update")
		}
	})

	t.Run("new height replaces entry", func(t *testing.T) {
		w := build(t)
		before, _ := w.Entry("a")
		if !w.UpdateItemSize("a", geometry.Size{Width: 240, Height: 317}) {
			t.Fatal("UpdateItemSize = false, want true")
		}
		after, _ := w.Entry("a")
		if after.Rect.Height != 317 {
			t.Errorf("height = %g, want 317", after.Rect.Height)
		}
		if after.Estimated {
			t.Error("Estimated still set after measurement")
		}
		if after.Rect.X != before.Rect.X || after.Rect.Y != before.Rect.Y || after.Rect.Width != before.Rect.Width {
			t.Errorf("position changed without Validate: %+v", after.Rect)
		}
	})

	t.Run("validate re-balances with measured height", func(t *testing.T) {
		w := build(t)
		w.UpdateItemSize("a", geometry.Size{Width: 240, Height: 100})
		w.Validate(Input{
			Collection: mustItems(t, bare("a"), bare("b"), bare("c"), bare("d")),
			Viewport:   geometry.Size{Width: 800, Height: 600},
		}, Invalidation{})

		// Column 0 is now the shortest by far, d stays there at a's new bottom.
		d, _ := w.Entry("d")
		if want := 24 + 100 + 24.0; d.Rect.Y != want {
			t.Errorf("d.Y = %g, want %g", d.Rect.Y, want)
		}
		a, _ := w.Entry("a")
		if a.Estimated {
			t.Error("measured height downgraded without a resize")
		}
	})
}

func TestWaterfallResizeDowngradesHeights(t *testing.T) {
	w := mustWaterfall(t, Config{})
	in := Input{Collection: mustItems(t, bare("a")), Viewport: geometry.Size{Width: 800, Height: 600}}
	w.Validate(in, Invalidation{})
	w.UpdateItemSize("a", geometry.Size{Width: 240, Height: 321})

	w.Validate(in, Invalidation{})
	a, _ := w.Entry("a")
	if a.Estimated {
		t.Fatal("measured height downgraded without a resize")
	}

	in.Viewport = geometry.Size{Width: 900, Height: 600}
	w.Validate(in, Invalidation{SizeChanged: true})
	a, _ = w.Entry("a")
	if a.Rect.Height != 321 {
		t.Errorf("height = %g, want 321 (kept across resize)", a.Rect.Height)
	}
	if !a.Estimated {
		t.Error("Estimated = false after resize, want true")
	}
}

func TestWaterfallEntriesOrder(t *testing.T) {
	w := mustWaterfall(t, Config{})
	col := mustItems(t, bare("c"), bare("a"), bare("b"))
	w.Validate(Input{Collection: col, Viewport: geometry.Size{Width: 800, Height: 600}, Loading: true}, Invalidation{})

	got := w.Entries()
	want := []collection.Key{"c", "a", "b", KeyLoader}
	if len(got) != len(want) {
		t.Fatalf("len(Entries()) = %d, want %d", len(got), len(want))
	}
	for i, key := range want {
		if got[i].Key != key {
			t.Errorf("Entries()[%d].Key = %q, want %q", i, got[i].Key, key)
		}
	}
}

func TestWaterfallNilCollection(t *testing.T) {
	w := mustWaterfall(t, Config{})
	w.Validate(Input{Viewport: geometry.Size{Width: 800, Height: 600}}, Invalidation{})
	if _, ok := w.Entry(KeyPlaceholder); !ok {
		t.Error("placeholder missing for nil collection")
	}
	if got, want := w.ContentSize(), (geometry.Size{Width: 800, Height: 600}); got != want {
		t.Errorf("ContentSize() = %+v, want %+v", got, want)
	}
}

func TestWaterfallNavigator(t *testing.T) {
	w := mustWaterfall(t, Config{})
	col := mustItems(t, bare("a"), bare("b"), bare("c"), bare("d"))
	w.Validate(Input{Collection: col, Viewport: geometry.Size{Width: 800, Height: 600}}, Invalidation{})

	tests := []struct {
		name  string
		move  func(collection.Key) (collection.Key, bool)
		from  collection.Key
		want  collection.Key
		found bool
	}{
		{"right from first column", w.KeyRightOf, "a", "b", true},
		{"right from middle column", w.KeyRightOf, "b", "c", true},
		{"right from last column", w.KeyRightOf, "c", "", false},
		{"left from middle column", w.KeyLeftOf, "b", "a", true},
		{"left from last column", w.KeyLeftOf, "c", "b", true},
		{"left from first column", w.KeyLeftOf, "a", "", false},
		{"left from wrapped card", w.KeyLeftOf, "d", "", false},
		// d sits alone at the bottom of column 0; nothing overlaps its
		// rows to the right, so the full-height fallback finds b.
		{"right from wrapped card", w.KeyRightOf, "d", "b", true},
		{"unknown key", w.KeyRightOf, "nope", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := tt.move(tt.from)
			if found != tt.found || got != tt.want {
				t.Errorf("got (%q, %v), want (%q, %v)", got, found, tt.want, tt.found)
			}
		})
	}
}

func TestWaterfallNavigatorSkipsSynthetic(t *testing.T) {
	w := mustWaterfall(t, Config{})
	col := mustItems(t, bare("a"), bare("b"), bare("c"))
	w.Validate(Input{Collection: col, Viewport: geometry.Size{Width: 800, Height: 600}, Loading: true}, Invalidation{})

	// The loader spans the full width below the cards; it must never be
	// a navigation target.
	if got, ok := w.KeyRightOf("c"); ok {
		t.Errorf("KeyRightOf(c) = %q, want no match", got)
	}
}

func TestWaterfallNavigatorRTL(t *testing.T) {
	ltr := mustWaterfall(t, Config{})
	rtl := mustWaterfall(t, Config{})
	col := mustItems(t, bare("a"), bare("b"), bare("c"), bare("d"))
	in := Input{Collection: col, Viewport: geometry.Size{Width: 800, Height: 600}}

	ltr.Validate(in, Invalidation{})
	in.Direction = DirectionRTL
	rtl.Validate(in, Invalidation{})

	// RTL mirrors the traversal: visual right is reading-order left.
	for _, key := range []collection.Key{"a", "b", "c", "d"} {
		wantKey, wantOK := ltr.KeyLeftOf(key)
		gotKey, gotOK := rtl.KeyRightOf(key)
		if gotKey != wantKey || gotOK != wantOK {
			t.Errorf("rtl.KeyRightOf(%q) = (%q, %v), want ltr.KeyLeftOf = (%q, %v)", key, gotKey, gotOK, wantKey, wantOK)
		}

		wantKey, wantOK = ltr.KeyRightOf(key)
		gotKey, gotOK = rtl.KeyLeftOf(key)
		if gotKey != wantKey || gotOK != wantOK {
			t.Errorf("rtl.KeyLeftOf(%q) = (%q, %v), want ltr.KeyRightOf = (%q, %v)", key, gotKey, gotOK, wantKey, wantOK)
		}
	}
}

// Two candidates at the same distance resolve to the smaller key.
func TestWaterfallNavigatorTieBreak(t *testing.T) {
	w := mustWaterfall(t, Config{})
	err := w.Restore(snapshot.Snapshot{
		Engine:            snapshot.EngineWaterfall,
		NumColumns:        2,
		ItemWidth:         240,
		HorizontalSpacing: 16,
		ContentSize:       snapshot.Size{Width: 800, Height: 600},
		Entries: []snapshot.Entry{
			{Key: "s", X: 24, Y: 100, Width: 240, Height: 100},
			{Key: "b", X: 280, Y: 150, Width: 240, Height: 100},
			{Key: "a", X: 280, Y: 50, Width: 240, Height: 100},
		},
	})
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}

	// a and b are equidistant from s (same |dx|, |dy| = 50 both ways).
	got, ok := w.KeyRightOf("s")
	if !ok || got != "a" {
		t.Errorf("KeyRightOf(s) = (%q, %v), want (a, true)", got, ok)
	}
}

func TestWaterfallExportRestore(t *testing.T) {
	w := mustWaterfall(t, Config{})
	col := mustItems(t, sized("a", 400, 300), bare("b"), bare("c"), bare("d"))
	in := Input{Collection: col, Viewport: geometry.Size{Width: 800, Height: 600}, Direction: DirectionRTL}
	w.Validate(in, Invalidation{})
	w.UpdateItemSize("b", geometry.Size{Width: 240, Height: 199})

	snap := w.Export()
	if snap.Engine != snapshot.EngineWaterfall {
		t.Fatalf("Engine = %q, want %q", snap.Engine, snapshot.EngineWaterfall)
	}

	restored := mustWaterfall(t, Config{})
	if err := restored.Restore(snap); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if !reflect.DeepEqual(restored.Entries(), w.Entries()) {
		t.Errorf("restored entries differ:\n%+v\n%+v", restored.Entries(), w.Entries())
	}
	if restored.ContentSize() != w.ContentSize() {
		t.Errorf("ContentSize() = %+v, want %+v", restored.ContentSize(), w.ContentSize())
	}
	if !reflect.DeepEqual(restored.Export(), snap) {
		t.Error("export after restore does not round-trip")
	}

	// A rebuild on the restored engine must keep the measured height.
	restored.Validate(in, Invalidation{})
	b, _ := restored.Entry("b")
	if b.Rect.Height != 199 || b.Estimated {
		t.Errorf("b = %+v, want measured height 199", b)
	}
}

func TestWaterfallRestoreRejectsOtherEngines(t *testing.T) {
	w := mustWaterfall(t, Config{})
	err := w.Restore(snapshot.Snapshot{Engine: snapshot.EngineGrid})
	if err == nil {
		t.Fatal("Restore accepted a grid snapshot")
	}
	if !errors.Is(err, errors.ErrCodeInvalidEngine) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidEngine)
	}
}
