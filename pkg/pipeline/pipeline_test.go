package pipeline

import (
	"context"
	"reflect"
	"testing"

	"github.com/matzehuels/cardwall/pkg/cache"
	"github.com/matzehuels/cardwall/pkg/collection"
	"github.com/matzehuels/cardwall/pkg/geometry"
	"github.com/matzehuels/cardwall/pkg/layout"
	"github.com/matzehuels/cardwall/pkg/snapshot"
)

func mustItems(t *testing.T, keys ...string) *collection.List {
	t.Helper()
	items := make([]collection.Item, len(keys))
	for i, k := range keys {
		items[i] = collection.Item{Key: collection.Key(k)}
	}
	col, err := collection.NewList(items...)
	if err != nil {
		t.Fatalf("NewList: %v", err)
	}
	return col
}

func TestValidateEngine(t *testing.T) {
	tests := []struct {
		engine  string
		wantErr bool
	}{
		{"waterfall", false},
		{"grid", false},
		{"list", false},
		{"invalid", true},
		{"WATERFALL", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateEngine(tt.engine)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateEngine(%q) error = %v, wantErr %v", tt.engine, err, tt.wantErr)
		}
	}
}

func TestValidateDirection(t *testing.T) {
	tests := []struct {
		direction string
		wantErr   bool
	}{
		{"", false},
		{"ltr", false},
		{"rtl", false},
		{"invalid", true},
		{"RTL", true}, // case-sensitive
	}

	for _, tt := range tests {
		err := ValidateDirection(tt.direction)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateDirection(%q) error = %v, wantErr %v", tt.direction, err, tt.wantErr)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}
	opts.SetLayoutDefaults()

	if opts.Engine != DefaultEngine {
		t.Errorf("Engine should be %s, got %s", DefaultEngine, opts.Engine)
	}
	if opts.Width != DefaultWidth {
		t.Errorf("Width should be %f, got %f", DefaultWidth, opts.Width)
	}
	if opts.Height != DefaultHeight {
		t.Errorf("Height should be %f, got %f", DefaultHeight, opts.Height)
	}
	if opts.Logger == nil {
		t.Error("Logger should be set")
	}
}

func TestOptionsValidateForLayout(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateForLayout(); err != nil {
		t.Errorf("Empty options should pass: %v", err)
	}
	if opts.Engine != DefaultEngine {
		t.Errorf("Engine should default to %s, got %s", DefaultEngine, opts.Engine)
	}

	opts = Options{Engine: "pyramid"}
	if err := opts.ValidateForLayout(); err == nil {
		t.Error("Invalid engine should fail")
	}

	opts = Options{Direction: "up"}
	if err := opts.ValidateForLayout(); err == nil {
		t.Error("Invalid direction should fail")
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{}

	// First call
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	originalEngine := opts.Engine
	originalWidth := opts.Width

	// Second call should be idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if opts.Engine != originalEngine {
		t.Error("Engine changed on second call")
	}
	if opts.Width != originalWidth {
		t.Error("Width changed on second call")
	}
}

func TestOptionsIsWaterfall(t *testing.T) {
	opts := Options{}
	if !opts.IsWaterfall() {
		t.Error("Empty engine should be waterfall")
	}

	opts.Engine = "waterfall"
	if !opts.IsWaterfall() {
		t.Error("waterfall engine should be waterfall")
	}

	opts.Engine = "grid"
	if opts.IsWaterfall() {
		t.Error("grid engine should not be waterfall")
	}
}

func TestOptionsLayoutConfig(t *testing.T) {
	opts := Options{
		MinItemWidth:  100,
		MinItemHeight: 80,
		MaxItemWidth:  400,
		MaxItemHeight: 600,
		SpaceWidth:    12,
		SpaceHeight:   16,
		MaxColumns:    5,
		ItemPadding:   40,
	}

	want := layout.Config{
		MinItemSize: geometry.Size{Width: 100, Height: 80},
		MaxItemSize: geometry.Size{Width: 400, Height: 600},
		MinSpace:    geometry.Size{Width: 12, Height: 16},
		MaxColumns:  5,
		ItemPadding: 40,
	}
	if got := opts.LayoutConfig(); got != want {
		t.Errorf("LayoutConfig() = %+v, want %+v", got, want)
	}
}

func TestOptionsNewEngine(t *testing.T) {
	tests := []struct {
		engine   string
		wantKind string
	}{
		{"", snapshot.EngineWaterfall},
		{"waterfall", snapshot.EngineWaterfall},
		{"grid", snapshot.EngineGrid},
		{"list", snapshot.EngineList},
	}

	for _, tt := range tests {
		opts := Options{Engine: tt.engine}
		eng, err := opts.NewEngine()
		if err != nil {
			t.Errorf("NewEngine(%q) error: %v", tt.engine, err)
			continue
		}
		if eng.Kind() != tt.wantKind {
			t.Errorf("NewEngine(%q).Kind() = %q, want %q", tt.engine, eng.Kind(), tt.wantKind)
		}
	}

	opts := Options{Engine: "pyramid"}
	if _, err := opts.NewEngine(); err == nil {
		t.Error("NewEngine with invalid engine should fail")
	}
}

func TestOptionsSnapshotKeyOpts(t *testing.T) {
	opts := Options{
		Engine:        "grid",
		Width:         1280,
		Height:        720,
		Direction:     "rtl",
		Loading:       true,
		MinItemWidth:  100,
		MinItemHeight: 80,
		MaxItemWidth:  400,
		MaxItemHeight: 600,
		SpaceWidth:    12,
		SpaceHeight:   16,
		MaxColumns:    5,
		ItemPadding:   40,
	}

	want := cache.SnapshotKeyOpts{
		Engine:        "grid",
		Width:         1280,
		Height:        720,
		Direction:     "rtl",
		Loading:       true,
		MinItemWidth:  100,
		MinItemHeight: 80,
		MaxItemWidth:  400,
		MaxItemHeight: 600,
		SpaceWidth:    12,
		SpaceHeight:   16,
		MaxColumns:    5,
		ItemPadding:   40,
	}
	if got := opts.SnapshotKeyOpts(); got != want {
		t.Errorf("SnapshotKeyOpts() = %+v, want %+v", got, want)
	}
}

func TestItemsHash(t *testing.T) {
	a := mustItems(t, "a", "b", "c")
	b := mustItems(t, "a", "b", "c")

	if ItemsHash(a) == "" {
		t.Fatal("hash should not be empty")
	}
	if ItemsHash(a) != ItemsHash(b) {
		t.Error("identical collections should hash identically")
	}

	// Order matters.
	if ItemsHash(a) == ItemsHash(mustItems(t, "c", "b", "a")) {
		t.Error("reordered collections should hash differently")
	}

	// Intrinsic sizes matter.
	sized, err := collection.NewList(
		collection.Item{Key: "a", Size: &geometry.Size{Width: 400, Height: 300}},
		collection.Item{Key: "b"},
		collection.Item{Key: "c"},
	)
	if err != nil {
		t.Fatalf("NewList: %v", err)
	}
	if ItemsHash(a) == ItemsHash(sized) {
		t.Error("sized collections should hash differently")
	}
}

func TestRunnerBuildSnapshot(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil, nil)

	snap, err := runner.BuildSnapshot(ctx, mustItems(t, "a", "b", "c"), Options{Width: 800})
	if err != nil {
		t.Fatalf("BuildSnapshot() error: %v", err)
	}

	if snap.Engine != snapshot.EngineWaterfall {
		t.Errorf("Engine = %q, want waterfall", snap.Engine)
	}
	if snap.NumColumns != 3 {
		t.Errorf("NumColumns = %d, want 3", snap.NumColumns)
	}
	if snap.ItemWidth != 240 {
		t.Errorf("ItemWidth = %v, want 240", snap.ItemWidth)
	}
	if len(snap.Entries) != 3 {
		t.Errorf("len(Entries) = %d, want 3", len(snap.Entries))
	}
}

func TestRunnerBuildSnapshotCaching(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	col := mustItems(t, "a", "b", "c", "d")
	opts := Options{Width: 800}

	first, hit, err := runner.BuildSnapshotWithCacheInfo(ctx, col, opts)
	if err != nil {
		t.Fatalf("first build error: %v", err)
	}
	if hit {
		t.Error("first build should miss the cache")
	}

	second, hit, err := runner.BuildSnapshotWithCacheInfo(ctx, col, opts)
	if err != nil {
		t.Fatalf("second build error: %v", err)
	}
	if !hit {
		t.Error("second build should hit the cache")
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("cached snapshot differs:\nfirst:  %+v\nsecond: %+v", first, second)
	}

	// Refresh bypasses the cache.
	opts.Refresh = true
	_, hit, err = runner.BuildSnapshotWithCacheInfo(ctx, col, opts)
	if err != nil {
		t.Fatalf("refresh build error: %v", err)
	}
	if hit {
		t.Error("refresh build should bypass the cache")
	}
}

func TestRunnerExecute(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil, nil)

	result, err := runner.Execute(ctx, mustItems(t, "a", "b", "c", "d", "e"), Options{Width: 800})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if result.ItemsHash == "" {
		t.Error("ItemsHash should not be empty")
	}
	if result.Stats.ItemCount != 5 {
		t.Errorf("ItemCount = %d, want 5", result.Stats.ItemCount)
	}
	if result.Stats.EntryCount != 5 {
		t.Errorf("EntryCount = %d, want 5", result.Stats.EntryCount)
	}
	if result.Stats.Columns != 3 {
		t.Errorf("Columns = %d, want 3", result.Stats.Columns)
	}
	if result.CacheInfo.SnapshotHit {
		t.Error("NullCache should never hit")
	}
}

func TestRunnerExecuteInvalidOptions(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil, nil)

	if _, err := runner.Execute(ctx, mustItems(t, "a"), Options{Engine: "pyramid"}); err == nil {
		t.Error("Execute with invalid engine should fail")
	}
}

func TestNewRunnerNilDefaults(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	if runner.Cache == nil {
		t.Error("Cache should default to NullCache")
	}
	if runner.Keyer == nil {
		t.Error("Keyer should default to DefaultKeyer")
	}
	if runner.Logger == nil {
		t.Error("Logger should default to the package logger")
	}
}
