// Package snapshot defines the serialized form of a computed layout.
//
// A snapshot is the wire and storage format shared by the CLI, the HTTP
// API, and the session store: flat structs that marshal to JSON for files
// and responses and to BSON for MongoDB-backed sessions. The layout
// engines convert to and from this format; nothing here computes
// geometry.
package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Engine Discriminators
// =============================================================================

// Engine kinds. Check Snapshot.Engine to determine which engine produced
// a snapshot and which fields are meaningful.
const (
	// EngineWaterfall is the column-balancing layout, the default.
	EngineWaterfall = "waterfall"
	// EngineGrid is the uniform-cell layout.
	EngineGrid = "grid"
	// EngineList is the single-column layout.
	EngineList = "list"
)

// ValidEngine reports whether kind names a known engine.
func ValidEngine(kind string) bool {
	switch kind {
	case EngineWaterfall, EngineGrid, EngineList:
		return true
	}
	return false
}

// =============================================================================
// Snapshot - Serialized Layout
// =============================================================================

// Snapshot is one computed layout frozen for transport or storage.
//
// Column fields (NumColumns, ItemWidth, HorizontalSpacing) describe the
// geometry all engines share; for list layouts NumColumns is 1, ItemWidth
// is the row width and HorizontalSpacing is 0. Entries hold every cell in
// display order, synthetic loader and placeholder entries last.
type Snapshot struct {
	// Discriminator
	Engine string `json:"engine" bson:"engine"`

	// Build inputs worth replaying
	Direction string `json:"direction,omitempty" bson:"direction,omitempty"`
	Viewport  Size   `json:"viewport" bson:"viewport"`
	Loading   bool   `json:"loading,omitempty" bson:"loading,omitempty"`

	// Computed geometry
	NumColumns        int     `json:"num_columns" bson:"num_columns"`
	ItemWidth         float64 `json:"item_width" bson:"item_width"`
	HorizontalSpacing float64 `json:"horizontal_spacing" bson:"horizontal_spacing"`
	ContentSize       Size    `json:"content_size" bson:"content_size"`

	Entries []Entry `json:"entries" bson:"entries"`
}

// Size is a width/height pair, mirrored from the geometry package so the
// format stays self-contained.
type Size struct {
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// Entry is one positioned cell.
type Entry struct {
	Key       string  `json:"key" bson:"key"`
	X         float64 `json:"x" bson:"x"`
	Y         float64 `json:"y" bson:"y"`
	Width     float64 `json:"width" bson:"width"`
	Height    float64 `json:"height" bson:"height"`
	Estimated bool    `json:"estimated,omitempty" bson:"estimated,omitempty"`
}

// =============================================================================
// Snapshot Serialization API
// =============================================================================

// MarshalSnapshot serializes a Snapshot to pretty-printed JSON bytes.
func MarshalSnapshot(s Snapshot) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// UnmarshalSnapshot deserializes JSON bytes into a Snapshot. An empty
// engine defaults to waterfall; an unknown one is rejected.
func UnmarshalSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	if s.Engine == "" {
		s.Engine = EngineWaterfall
	}
	if !ValidEngine(s.Engine) {
		return Snapshot{}, fmt.Errorf("unknown engine %q", s.Engine)
	}

	return s, nil
}

// ReadSnapshot reads a JSON snapshot from r.
func ReadSnapshot(r io.Reader) (Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}
	return UnmarshalSnapshot(data)
}

// WriteSnapshotFile writes a Snapshot to a JSON file.
func WriteSnapshotFile(s Snapshot, path string) error {
	data, err := MarshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadSnapshotFile reads a Snapshot from a JSON file.
func ReadSnapshotFile(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalSnapshot(data)
}
