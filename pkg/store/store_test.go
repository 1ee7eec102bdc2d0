package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matzehuels/cardwall/pkg/collection"
	"github.com/matzehuels/cardwall/pkg/geometry"
	"github.com/matzehuels/cardwall/pkg/layout"
	"github.com/matzehuels/cardwall/pkg/snapshot"
)

func TestNewSession(t *testing.T) {
	cfg := layout.Config{MaxColumns: 4}

	a := New(snapshot.EngineWaterfall, cfg, time.Hour)
	b := New(snapshot.EngineWaterfall, cfg, time.Hour)

	if a.ID == "" {
		t.Fatal("session ID should not be empty")
	}
	if a.ID == b.ID {
		t.Errorf("session IDs should be unique, both %q", a.ID)
	}
	if a.Engine != snapshot.EngineWaterfall {
		t.Errorf("Engine = %q, want %q", a.Engine, snapshot.EngineWaterfall)
	}
	if a.Config.MaxColumns != 4 {
		t.Errorf("Config.MaxColumns = %d, want 4", a.Config.MaxColumns)
	}
	if !a.CreatedAt.Equal(a.UpdatedAt) {
		t.Errorf("CreatedAt %v != UpdatedAt %v", a.CreatedAt, a.UpdatedAt)
	}
	if a.IsExpired() {
		t.Error("fresh session should not be expired")
	}

	want := a.CreatedAt.Add(time.Hour)
	if !a.ExpiresAt.Equal(want) {
		t.Errorf("ExpiresAt = %v, want %v", a.ExpiresAt, want)
	}
}

func TestSessionIsExpired(t *testing.T) {
	sess := New(snapshot.EngineGrid, layout.Config{}, time.Hour)
	if sess.IsExpired() {
		t.Error("session with future expiry should not be expired")
	}

	sess.ExpiresAt = time.Now().Add(-time.Minute)
	if !sess.IsExpired() {
		t.Error("session with past expiry should be expired")
	}
}

func TestSessionTouch(t *testing.T) {
	sess := New(snapshot.EngineList, layout.Config{}, time.Hour)
	sess.UpdatedAt = time.Now().Add(-time.Hour)
	sess.ExpiresAt = time.Now().Add(time.Minute)

	before := time.Now()
	sess.Touch(DefaultTTL)

	if sess.UpdatedAt.Before(before) {
		t.Errorf("Touch should refresh UpdatedAt, got %v", sess.UpdatedAt)
	}
	if sess.ExpiresAt.Before(before.Add(DefaultTTL)) {
		t.Errorf("Touch should extend ExpiresAt, got %v", sess.ExpiresAt)
	}
}

func TestSessionCollection(t *testing.T) {
	sess := New(snapshot.EngineWaterfall, layout.Config{}, time.Hour)
	sess.Items = []collection.Item{
		{Key: "a", Size: &geometry.Size{Width: 400, Height: 300}},
		{Key: "b"},
	}

	col, err := sess.Collection()
	if err != nil {
		t.Fatalf("Collection() error: %v", err)
	}
	if col.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", col.Len())
	}
	it, ok := col.Item("a")
	if !ok || !it.HasSize() {
		t.Errorf("item a = %+v, %v, want sized item", it, ok)
	}

	sess.Items = append(sess.Items, collection.Item{Key: "a"})
	if _, err := sess.Collection(); !errors.Is(err, collection.ErrDuplicateKey) {
		t.Errorf("Collection() with duplicate keys = %v, want ErrDuplicateKey", err)
	}
}

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	defer st.Close()

	// Missing session is a nil, nil miss.
	got, err := st.Get(ctx, "nope")
	if err != nil || got != nil {
		t.Fatalf("Get(missing) = %v, %v, want nil, nil", got, err)
	}

	sess := New(snapshot.EngineWaterfall, layout.Config{}, time.Hour)
	sess.Items = []collection.Item{{Key: "a"}, {Key: "b"}}
	if err := st.Set(ctx, sess); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	got, err = st.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got == nil || got.ID != sess.ID || len(got.Items) != 2 {
		t.Fatalf("Get() = %+v, want stored session", got)
	}

	// The returned session is a copy: mutating it must not leak back.
	got.Engine = snapshot.EngineGrid
	again, err := st.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if again.Engine != snapshot.EngineWaterfall {
		t.Errorf("stored engine = %q, want %q", again.Engine, snapshot.EngineWaterfall)
	}

	if err := st.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	got, err = st.Get(ctx, sess.ID)
	if err != nil || got != nil {
		t.Errorf("Get(deleted) = %v, %v, want nil, nil", got, err)
	}

	// Deleting twice is fine.
	if err := st.Delete(ctx, sess.ID); err != nil {
		t.Errorf("second Delete() error: %v", err)
	}
}

func TestMemoryStoreExpired(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	defer st.Close()

	sess := New(snapshot.EngineWaterfall, layout.Config{}, -time.Minute)
	if err := st.Set(ctx, sess); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	got, err := st.Get(ctx, sess.ID)
	if !errors.Is(err, ErrExpired) {
		t.Fatalf("Get(expired) error = %v, want ErrExpired", err)
	}
	if got != nil {
		t.Fatalf("Get(expired) = %+v, want nil", got)
	}

	// The expired session was removed on first access.
	got, err = st.Get(ctx, sess.ID)
	if err != nil || got != nil {
		t.Errorf("second Get() = %v, %v, want nil, nil", got, err)
	}
}

func TestMemoryStoreCleanup(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	defer st.Close()

	live := New(snapshot.EngineWaterfall, layout.Config{}, time.Hour)
	lapsed := New(snapshot.EngineWaterfall, layout.Config{}, -time.Minute)
	st.Set(ctx, live)
	st.Set(ctx, lapsed)

	if st.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", st.Len())
	}

	if err := st.Cleanup(ctx); err != nil {
		t.Fatalf("Cleanup() error: %v", err)
	}

	if st.Len() != 1 {
		t.Errorf("Len() after cleanup = %d, want 1", st.Len())
	}
	got, err := st.Get(ctx, live.ID)
	if err != nil || got == nil {
		t.Errorf("live session should survive cleanup, got %v, %v", got, err)
	}
}
