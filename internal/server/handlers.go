package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/KaramelBytes/vizprofile-cli/internal/aggregate"
	"github.com/KaramelBytes/vizprofile-cli/internal/charts"
	"github.com/KaramelBytes/vizprofile-cli/internal/parser"
	"github.com/KaramelBytes/vizprofile-cli/internal/profile"
	"github.com/KaramelBytes/vizprofile-cli/internal/snapshot"
	"github.com/KaramelBytes/vizprofile-cli/internal/table"
)

// Options tunes handler behavior.
type Options struct {
	// Palette is returned by /api/charts when the request names none.
	Palette string
	// DefaultBins is used by the histogram endpoint when bins is omitted.
	DefaultBins int
	// MaxBodyBytes caps request bodies; 0 means 32 MiB.
	MaxBodyBytes int64
	// MaxRows caps records decoded from a request; 0 means unlimited.
	MaxRows int
}

// Handler serves the API. Store may be nil, which disables snapshot routes.
type Handler struct {
	Profiler *profile.Profiler
	Store    *snapshot.Store
	opts     Options
}

// NewHandler builds a handler around a shared profiler.
func NewHandler(p *profile.Profiler, store *snapshot.Store, opts Options) *Handler {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBody
	}
	if opts.DefaultBins <= 0 {
		opts.DefaultBins = aggregate.DefaultBins
	}
	if opts.Palette == "" {
		opts.Palette = charts.DefaultPalette
	}
	return &Handler{Profiler: p, Store: store, opts: opts}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.HealthCheck)
	r.Get("/api/status", h.Status)
	r.Get("/api/charts", h.Charts)
	r.Post("/api/charts/validate", h.ValidateChart)
	r.Post("/api/profile", h.Profile)
	r.Post("/api/aggregate/histogram", h.Histogram)
	r.Post("/api/aggregate/rollup", h.Rollup)

	r.Get("/api/snapshots", h.ListSnapshots)
	r.Get("/api/snapshots/{id}", h.GetSnapshot)
	r.Delete("/api/snapshots/{id}", h.DeleteSnapshot)
}

// ============================================================================
// Health
// ============================================================================

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"server":    "vizprofile",
		"version":   Version,
	})
}

func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]any{
		"server":  "vizprofile",
		"version": Version,
		"endpoints": map[string]string{
			"profile":   "/api/profile",
			"histogram": "/api/aggregate/histogram",
			"rollup":    "/api/aggregate/rollup",
			"charts":    "/api/charts",
			"validate":  "/api/charts/validate",
			"snapshots": "/api/snapshots",
		},
		"snapshots_enabled": h.Store != nil,
	})
}

// ============================================================================
// Charts
// ============================================================================

func (h *Handler) Charts(w http.ResponseWriter, r *http.Request) {
	cat := h.Profiler.Catalog
	name := r.URL.Query().Get("palette")
	if name == "" {
		name = h.opts.Palette
	}
	okResponse(w, map[string]any{
		"charts":   cat.Charts(),
		"palette":  cat.Palette(name),
		"palettes": cat.PaletteNames(),
	})
}

type validateRequest struct {
	ChartType string          `json:"chart_type"`
	Records   json.RawMessage `json:"records"`
}

// ValidateChart checks whether a chart type can be drawn from the posted
// records and proposes default axes.
func (h *Handler) ValidateChart(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	t, ok := h.decodeWithRecords(w, r, &req, &req.Records)
	if !ok {
		return
	}
	cat := h.Profiler.Catalog
	ct, err := cat.ParseChartType(req.ChartType)
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	p := h.Profiler.Profile(t)
	counts := charts.ColumnCounts{Numeric: len(p.NumericColumns), Categorical: len(p.CategoricalColumns)}
	okResponse(w, map[string]any{
		"chart_type": ct,
		"viability":  cat.Validate(ct, counts),
		"axes":       charts.SelectAxes(ct, p.ColumnSets()),
	})
}

// ============================================================================
// Profiling
// ============================================================================

// Profile accepts a JSON array of records (or an object wrapping one) and
// returns its profile. ?save=true also stores a snapshot.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r, h.opts.MaxBodyBytes)
	if err != nil {
		errorResponse(w, bodyStatus(err), err.Error())
		return
	}
	res, err := parser.DecodeJSON(bytes.NewReader(body), parser.Options{MaxRows: h.opts.MaxRows})
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	p := h.Profiler.Profile(res.Table)
	if save, _ := strconv.ParseBool(r.URL.Query().Get("save")); save {
		if h.Store == nil {
			errorResponse(w, http.StatusServiceUnavailable, "snapshot store is disabled")
			return
		}
		source := r.URL.Query().Get("source")
		if source == "" {
			source = "api"
		}
		snap := snapshot.New(source, p)
		if err := h.Store.Save(snap); err != nil {
			log.Printf("save snapshot: %v", err)
			errorResponse(w, http.StatusInternalServerError, "failed to save snapshot")
			return
		}
		w.Header().Set("X-Snapshot-Id", snap.ID)
	}
	okResponse(w, p)
}

// ============================================================================
// Aggregation
// ============================================================================

type histogramRequest struct {
	Column  string          `json:"column"`
	Bins    int             `json:"bins"`
	Records json.RawMessage `json:"records"`
}

func (h *Handler) Histogram(w http.ResponseWriter, r *http.Request) {
	var req histogramRequest
	t, ok := h.decodeWithRecords(w, r, &req, &req.Records)
	if !ok {
		return
	}
	if req.Column == "" {
		errorResponse(w, http.StatusBadRequest, "column is required")
		return
	}
	bins := req.Bins
	if bins > aggregate.MaxBins {
		errorResponse(w, http.StatusBadRequest, fmt.Sprintf("bins must be at most %d", aggregate.MaxBins))
		return
	}
	if bins <= 0 {
		bins = h.opts.DefaultBins
	}
	okResponse(w, aggregate.Histogram(t, req.Column, bins))
}

type rollupRequest struct {
	Category string          `json:"category"`
	Value    string          `json:"value"`
	Records  json.RawMessage `json:"records"`
}

func (h *Handler) Rollup(w http.ResponseWriter, r *http.Request) {
	var req rollupRequest
	t, ok := h.decodeWithRecords(w, r, &req, &req.Records)
	if !ok {
		return
	}
	if req.Category == "" || req.Value == "" {
		errorResponse(w, http.StatusBadRequest, "category and value are required")
		return
	}
	okResponse(w, aggregate.Rollup(t, req.Category, req.Value))
}

// decodeWithRecords decodes an envelope into req and the raw records field
// into a table, writing the error response itself on failure.
func (h *Handler) decodeWithRecords(w http.ResponseWriter, r *http.Request, req any, raw *json.RawMessage) (table.Table, bool) {
	body, err := readBody(w, r, h.opts.MaxBodyBytes)
	if err != nil {
		errorResponse(w, bodyStatus(err), err.Error())
		return nil, false
	}
	if err := json.Unmarshal(body, req); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return nil, false
	}
	if len(*raw) == 0 {
		errorResponse(w, http.StatusBadRequest, "records are required")
		return nil, false
	}
	res, err := parser.DecodeJSON(bytes.NewReader(*raw), parser.Options{MaxRows: h.opts.MaxRows})
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return res.Table, true
}

// ============================================================================
// Snapshots
// ============================================================================

func (h *Handler) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	if !h.storeEnabled(w) {
		return
	}
	list, err := h.Store.List()
	if err != nil {
		log.Printf("list snapshots: %v", err)
		errorResponse(w, http.StatusInternalServerError, "failed to list snapshots")
		return
	}
	okResponse(w, list)
}

func (h *Handler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	if !h.storeEnabled(w) {
		return
	}
	s, err := h.Store.Load(chi.URLParam(r, "id"))
	if err != nil {
		snapshotError(w, err)
		return
	}
	okResponse(w, s)
}

func (h *Handler) DeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	if !h.storeEnabled(w) {
		return
	}
	if err := h.Store.Delete(chi.URLParam(r, "id")); err != nil {
		snapshotError(w, err)
		return
	}
	okResponse(w, map[string]string{"deleted": chi.URLParam(r, "id")})
}

func (h *Handler) storeEnabled(w http.ResponseWriter) bool {
	if h.Store == nil {
		errorResponse(w, http.StatusServiceUnavailable, "snapshot store is disabled")
		return false
	}
	return true
}

func snapshotError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, snapshot.ErrNotFound):
		errorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, snapshot.ErrAmbiguous):
		errorResponse(w, http.StatusConflict, err.Error())
	default:
		log.Printf("snapshot: %v", err)
		errorResponse(w, http.StatusInternalServerError, "snapshot store error")
	}
}
