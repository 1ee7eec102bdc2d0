package api

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/cardwall/pkg/buildinfo"
	"github.com/matzehuels/cardwall/pkg/collection"
	apperrors "github.com/matzehuels/cardwall/pkg/errors"
	"github.com/matzehuels/cardwall/pkg/geometry"
	"github.com/matzehuels/cardwall/pkg/layout"
	"github.com/matzehuels/cardwall/pkg/observability"
	"github.com/matzehuels/cardwall/pkg/pipeline"
	"github.com/matzehuels/cardwall/pkg/snapshot"
	"github.com/matzehuels/cardwall/pkg/store"
)

// =============================================================================
// Request / Response Types
// =============================================================================

type layoutRequest struct {
	Items   []collection.Item `json:"items"`
	Options pipeline.Options  `json:"options"`
}

type layoutResponse struct {
	Snapshot  snapshot.Snapshot `json:"snapshot"`
	ItemsHash string            `json:"items_hash"`
	CacheHit  bool              `json:"cache_hit"`
	Stats     layoutStats       `json:"stats"`
}

type layoutStats struct {
	ItemCount  int   `json:"item_count"`
	EntryCount int   `json:"entry_count"`
	Columns    int   `json:"columns"`
	BuildMS    int64 `json:"build_ms"`
}

type viewportRequest struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type sizeRequest struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type measureResponse struct {
	Changed  bool               `json:"changed"`
	Snapshot *snapshot.Snapshot `json:"snapshot,omitempty"`
}

type neighborsResponse struct {
	Key   string `json:"key"`
	Left  string `json:"left,omitempty"`
	Right string `json:"right,omitempty"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Version: buildinfo.Version,
	})
}

// handleLayout runs a stateless one-shot build.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := validateOptions(&req.Options); err != nil {
		s.respondError(w, r, err)
		return
	}
	col, err := newCollection(req.Items)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), col, req.Options)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, layoutResponse{
		Snapshot:  result.Snapshot,
		ItemsHash: result.ItemsHash,
		CacheHit:  result.CacheInfo.SnapshotHit,
		Stats: layoutStats{
			ItemCount:  result.Stats.ItemCount,
			EntryCount: result.Stats.EntryCount,
			Columns:    result.Stats.Columns,
			BuildMS:    result.Stats.BuildTime.Milliseconds(),
		},
	})
}

// handleCreateSession creates a session and runs its first build.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := validateOptions(&req.Options); err != nil {
		s.respondError(w, r, err)
		return
	}
	col, err := newCollection(req.Items)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	snap, err := s.runner.BuildSnapshot(r.Context(), col, req.Options)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	sess := store.New(req.Options.Engine, req.Options.LayoutConfig(), store.DefaultTTL)
	sess.Direction = req.Options.Direction
	sess.Loading = req.Options.Loading
	sess.Viewport = geometry.Size{Width: req.Options.Width, Height: req.Options.Height}
	sess.Items = col.Items()
	sess.Snapshot = &snap

	if err := s.store.Set(r.Context(), sess); err != nil {
		s.respondError(w, r, apperrors.Wrap(apperrors.ErrCodeStoreUnavailable, err, "save session"))
		return
	}

	s.respondJSON(w, http.StatusCreated, sess)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.loadSession(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, sess)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if err := apperrors.ValidateSessionID(id); err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.respondError(w, r, apperrors.Wrap(apperrors.ErrCodeStoreUnavailable, err, "delete session %s", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleUpdateViewport resizes the session viewport and rebuilds. A size
// change downgrades measured heights to estimates, so clients re-measure.
func (s *Server) handleUpdateViewport(w http.ResponseWriter, r *http.Request) {
	sess, err := s.loadSession(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	var req viewportRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	if !isFinite(req.Width) || !isFinite(req.Height) || req.Width < 0 || req.Height < 0 {
		s.respondError(w, r, apperrors.New(apperrors.ErrCodeInvalidViewport,
			"viewport dimensions must be finite and non-negative"))
		return
	}

	eng, err := s.engineForSession(sess)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	next := geometry.Size{Width: req.Width, Height: req.Height}
	inv := layout.Invalidation{SizeChanged: next != sess.Viewport}
	sess.Viewport = next

	if err := s.rebuildSession(r.Context(), sess, eng, inv); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, sess)
}

// handleUpdateItemSize records a measured item size and re-flows the
// layout when the height actually changed.
func (s *Server) handleUpdateItemSize(w http.ResponseWriter, r *http.Request) {
	sess, err := s.loadSession(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	key := chi.URLParam(r, "key")
	if err := apperrors.ValidateItemKey(key); err != nil {
		s.respondError(w, r, err)
		return
	}
	if !sessionHasItem(sess, collection.Key(key)) {
		s.respondError(w, r, apperrors.New(apperrors.ErrCodeItemNotFound, "item %s not found", key))
		return
	}

	var req sizeRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	if !isFinite(req.Width) || !isFinite(req.Height) || req.Width <= 0 || req.Height <= 0 {
		s.respondError(w, r, apperrors.New(apperrors.ErrCodeInvalidInput,
			"measured size must be finite and positive"))
		return
	}

	eng, err := s.engineForSession(sess)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	m, ok := eng.(layout.Measurer)
	if !ok {
		s.respondError(w, r, apperrors.New(apperrors.ErrCodeUnsupported,
			"engine %s does not support measurement", sess.Engine))
		return
	}

	changed := m.UpdateItemSize(collection.Key(key), geometry.Size{Width: req.Width, Height: req.Height})
	observability.Pipeline().OnMeasure(r.Context(), key, changed)

	if changed {
		if err := s.rebuildSession(r.Context(), sess, eng, layout.Invalidation{}); err != nil {
			s.respondError(w, r, err)
			return
		}
	}

	s.respondJSON(w, http.StatusOK, measureResponse{
		Changed:  changed,
		Snapshot: sess.Snapshot,
	})
}

// handleNeighbors answers spatial navigation queries against the session's
// current layout.
func (s *Server) handleNeighbors(w http.ResponseWriter, r *http.Request) {
	sess, err := s.loadSession(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	key := chi.URLParam(r, "key")
	if err := apperrors.ValidateItemKey(key); err != nil {
		s.respondError(w, r, err)
		return
	}

	eng, err := s.engineForSession(sess)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	nav, ok := eng.(layout.Navigator)
	if !ok {
		s.respondError(w, r, apperrors.New(apperrors.ErrCodeUnsupported,
			"engine %s does not support navigation", sess.Engine))
		return
	}
	if _, ok := eng.Entry(collection.Key(key)); !ok {
		s.respondError(w, r, apperrors.New(apperrors.ErrCodeItemNotFound, "item %s not found", key))
		return
	}

	resp := neighborsResponse{Key: key}
	if right, ok := nav.KeyRightOf(collection.Key(key)); ok {
		resp.Right = string(right)
	}
	if left, ok := nav.KeyLeftOf(collection.Key(key)); ok {
		resp.Left = string(left)
	}
	s.respondJSON(w, http.StatusOK, resp)
}

// =============================================================================
// Helpers
// =============================================================================

// decodeJSON decodes the request body into v.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "invalid request body: %s", err)
	}
	return nil
}

// validateOptions applies defaults and maps validation failures to coded
// errors.
func validateOptions(opts *pipeline.Options) error {
	opts.SetLayoutDefaults()
	if err := pipeline.ValidateEngine(opts.Engine); err != nil {
		return apperrors.New(apperrors.ErrCodeInvalidEngine, "%s", err)
	}
	if err := pipeline.ValidateDirection(opts.Direction); err != nil {
		return apperrors.New(apperrors.ErrCodeInvalidDirection, "%s", err)
	}
	return nil
}

// newCollection validates item keys and builds the collection.
func newCollection(items []collection.Item) (*collection.List, error) {
	for _, it := range items {
		if err := apperrors.ValidateItemKey(string(it.Key)); err != nil {
			return nil, err
		}
	}
	col, err := collection.NewList(items...)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrCodeInvalidItems, "%s", err)
	}
	return col, nil
}

// loadSession resolves the session named in the request path.
func (s *Server) loadSession(r *http.Request) (*store.Session, error) {
	id := chi.URLParam(r, "sessionID")
	if err := apperrors.ValidateSessionID(id); err != nil {
		return nil, err
	}

	sess, err := s.store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrExpired) {
			return nil, apperrors.New(apperrors.ErrCodeSessionExpired, "session %s has expired", id)
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeStoreUnavailable, err, "load session %s", id)
	}
	if sess == nil {
		return nil, apperrors.New(apperrors.ErrCodeSessionNotFound, "session %s not found", id)
	}
	return sess, nil
}

// sessionOptions maps a stored session back onto pipeline options.
func sessionOptions(sess *store.Session) pipeline.Options {
	cfg := sess.Config
	return pipeline.Options{
		Engine:        sess.Engine,
		Width:         sess.Viewport.Width,
		Height:        sess.Viewport.Height,
		Direction:     sess.Direction,
		Loading:       sess.Loading,
		MinItemWidth:  cfg.MinItemSize.Width,
		MinItemHeight: cfg.MinItemSize.Height,
		MaxItemWidth:  cfg.MaxItemSize.Width,
		MaxItemHeight: cfg.MaxItemSize.Height,
		SpaceWidth:    cfg.MinSpace.Width,
		SpaceHeight:   cfg.MinSpace.Height,
		MaxColumns:    cfg.MaxColumns,
		ItemPadding:   cfg.ItemPadding,
	}
}

// engineForSession rebuilds the session's engine, restoring the previous
// snapshot so measured heights survive across requests.
func (s *Server) engineForSession(sess *store.Session) (pipeline.Engine, error) {
	opts := sessionOptions(sess)
	eng, err := opts.NewEngine()
	if err != nil {
		return nil, err
	}
	if sess.Snapshot != nil {
		if err := eng.Restore(*sess.Snapshot); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "restore session %s", sess.ID)
		}
	}
	return eng, nil
}

// rebuildSession runs a layout pass over the session's items and persists
// the refreshed snapshot.
func (s *Server) rebuildSession(ctx context.Context, sess *store.Session, eng pipeline.Engine, inv layout.Invalidation) error {
	col, err := sess.Collection()
	if err != nil {
		return apperrors.New(apperrors.ErrCodeInvalidItems, "%s", err)
	}

	eng.Validate(layout.Input{
		Collection: col,
		Viewport:   sess.Viewport,
		Loading:    sess.Loading,
		Direction:  layout.Direction(sess.Direction),
	}, inv)

	snap := eng.Export()
	sess.Snapshot = &snap
	sess.Touch(store.DefaultTTL)

	if err := s.store.Set(ctx, sess); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeStoreUnavailable, err, "save session %s", sess.ID)
	}
	return nil
}

func sessionHasItem(sess *store.Session, key collection.Key) bool {
	for _, it := range sess.Items {
		if it.Key == key {
			return true
		}
	}
	return false
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
