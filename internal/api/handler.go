// Package api exposes the dashboard's REST surface: Security Lake status,
// sources, and tables lookups, the query catalog, and query execution.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"lakewatch/internal/domain"
)

// queryService is the query surface the handler needs. Satisfied by
// *query.QueryService.
type queryService interface {
	List() []domain.QueryDefinition
	Run(ctx context.Context, queryID string) (*domain.QueryResult, error)
}

// lakeService is the lake lookup surface. Satisfied by *lake.LakeService.
type lakeService interface {
	Status(ctx context.Context) (*domain.LakeStatus, error)
	Sources(ctx context.Context) ([]domain.LogSource, error)
	Tables(ctx context.Context) (*domain.TableListing, error)
}

// Handler serves the dashboard API.
type Handler struct {
	queries   queryService
	lake      lakeService
	logger    *slog.Logger
	startTime time.Time
}

// NewHandler creates a Handler over the query and lake services.
func NewHandler(queries queryService, lake lakeService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		queries:   queries,
		lake:      lake,
		logger:    logger.With("component", "api"),
		startTime: time.Now(),
	}
}

// GetStatus handles GET /api/securitylake/status.
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.lake.Status(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// GetSources handles GET /api/securitylake/sources.
func (h *Handler) GetSources(w http.ResponseWriter, r *http.Request) {
	sources, err := h.lake.Sources(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"sources": sources})
}

// GetTables handles GET /api/securitylake/tables.
func (h *Handler) GetTables(w http.ResponseWriter, r *http.Request) {
	listing, err := h.lake.Tables(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

// ListQueries handles GET /api/securitylake/queries. SQL text is not part of
// the listing; clients run queries by id, never by submitting SQL.
func (h *Handler) ListQueries(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"queries": h.queries.List()})
}

// RunQuery handles POST /api/securitylake/query.
func (h *Handler) RunQuery(w http.ResponseWriter, r *http.Request) {
	var req struct {
		QueryID string `json:"queryId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, domain.ErrValidation("invalid JSON body"))
		return
	}
	if strings.TrimSpace(req.QueryID) == "" {
		h.writeError(w, r, domain.ErrValidation("queryId is required"))
		return
	}

	result, err := h.queries.Run(r.Context(), req.QueryID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Healthz handles GET /healthz.
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "ok",
		"uptime_seconds": int(time.Since(h.startTime).Seconds()),
	})
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := httpStatusFromDomainError(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		h.logger.Warn("request rejected", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
