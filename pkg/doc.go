// Package pkg provides the core libraries for Cardwall layout computation.
//
// # Overview
//
// Cardwall computes waterfall grid layouts: variable-height cards balanced
// across columns, the way photo walls and masonry feeds arrange their
// content. The pkg directory is organized into four main areas:
//
//  1. [collection], [geometry] - Domain inputs (ordered item sets, rects)
//  2. [layout] - Layout engines (waterfall, grid, list)
//  3. [snapshot], [cache], [pipeline] - Serialization, caching, orchestration
//  4. [store], [profile] - Session persistence and TOML configuration
//
// # Architecture
//
// The typical data flow through Cardwall:
//
//	Item Collection (JSON, API request, generator)
//	         ↓
//	    [collection] package (ordered items with stable keys)
//	         ↓
//	    [layout] package (engine build: estimate, place, balance)
//	         ↓
//	    [snapshot] package (serialized entries + column geometry)
//	         ↓
//	    JSON file / HTTP response / session store
//
// # Quick Start
//
// Build a waterfall layout and export the snapshot:
//
//	import (
//	    "github.com/matzehuels/cardwall/pkg/collection"
//	    "github.com/matzehuels/cardwall/pkg/geometry"
//	    "github.com/matzehuels/cardwall/pkg/layout"
//	)
//
//	// 1. Assemble the collection
//	col, _ := collection.NewList(
//	    collection.Item{Key: "a", Size: &geometry.Size{Width: 400, Height: 300}},
//	    collection.Item{Key: "b"},
//	)
//
//	// 2. Build the layout
//	eng, _ := layout.NewWaterfall(layout.Config{})
//	eng.Validate(layout.Input{
//	    Collection: col,
//	    Viewport:   geometry.Size{Width: 800, Height: 600},
//	}, layout.Invalidation{})
//
//	// 3. Export the snapshot
//	snap := eng.Export()
//
// # Main Packages
//
// ## Domain Inputs
//
// [collection] - Ordered item sets with stable keys. Items optionally carry
// an intrinsic size used for height estimation and an opaque metadata
// payload. JSON import/export for file-based workflows.
//
// [geometry] - Points, sizes, and rectangles in content coordinates, plus
// the intersection test viewport culling is built on.
//
// ## Layout Engines
//
// [layout] - The three engines behind one contract: Waterfall balances
// variable-height cards across columns, Grid places uniform cells in rows,
// List stacks full-width rows. Engines cache entries between builds,
// reconcile removed items, accept measured sizes through UpdateItemSize,
// and answer directional navigation queries.
//
// ## Serialization & Orchestration
//
// [snapshot] - The serialized form of a computed layout, shared by files,
// HTTP responses, and stored sessions.
//
// [cache] - Content-addressed snapshot caching with file, memory, and null
// backends, plus the keyer that scopes cache namespaces.
//
// [pipeline] - The items → layout → snapshot pipeline used by CLI and API.
// A Runner wires a cache and logger to the engines and reports cache hits
// and build stats.
//
// ## Persistence & Configuration
//
// [store] - Layout sessions keyed by ID with memory, Redis, and MongoDB
// backends. Sessions carry the collection, viewport, and latest snapshot
// so measurement corrections survive between requests.
//
// [profile] - TOML layout profiles bundling an engine choice with sizing
// options.
//
// ## Ambient
//
// [errors] - Coded errors shared by the API and validation helpers.
//
// [observability] - Pluggable hooks for pipeline, cache, store, and HTTP
// instrumentation.
//
// [buildinfo] - Version metadata injected at build time.
//
// # Common Workflows
//
// Correct an estimated height after measurement:
//
//	if changed := eng.UpdateItemSize("a", geometry.Size{Width: 240, Height: 480}); changed {
//	    eng.Validate(in, layout.Invalidation{})
//	}
//
// Navigate between columns:
//
//	if key, ok := eng.KeyRightOf("a"); ok {
//	    focus(key)
//	}
//
// Run the cached pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, _ := runner.Execute(ctx, col, pipeline.Options{Width: 1280, Height: 800})
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/layout/...       # Specific package
//	go test -run Example           # Examples only
//
// [collection]: https://pkg.go.dev/github.com/matzehuels/cardwall/pkg/collection
// [geometry]: https://pkg.go.dev/github.com/matzehuels/cardwall/pkg/geometry
// [layout]: https://pkg.go.dev/github.com/matzehuels/cardwall/pkg/layout
// [snapshot]: https://pkg.go.dev/github.com/matzehuels/cardwall/pkg/snapshot
// [cache]: https://pkg.go.dev/github.com/matzehuels/cardwall/pkg/cache
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/cardwall/pkg/pipeline
// [store]: https://pkg.go.dev/github.com/matzehuels/cardwall/pkg/store
// [profile]: https://pkg.go.dev/github.com/matzehuels/cardwall/pkg/profile
// [errors]: https://pkg.go.dev/github.com/matzehuels/cardwall/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/cardwall/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/cardwall/pkg/buildinfo
package pkg
