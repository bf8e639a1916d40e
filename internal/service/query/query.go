// Package query orchestrates one dashboard query run: catalog lookup,
// submission, bounded polling, and result fetch.
package query

import (
	"context"
	"log/slog"
	"time"

	"lakewatch/internal/catalog"
	"lakewatch/internal/domain"
	"lakewatch/internal/engine"
)

// Executor is the query-engine surface the service needs. Satisfied by
// *engine.Engine; tests substitute a fake.
type Executor interface {
	Submit(ctx context.Context, sql string) (string, error)
	AwaitCompletion(ctx context.Context, executionID string) (*engine.Execution, error)
	FetchResults(ctx context.Context, executionID string) (*engine.ResultSet, error)
}

// QueryService runs pre-canned queries to completion. Each Run call is
// independent; the service holds no mutable state across requests.
//
//nolint:revive // Name chosen for clarity across package boundaries
type QueryService struct {
	catalog *catalog.Catalog
	engine  Executor
	logger  *slog.Logger
}

// NewQueryService creates a QueryService.
func NewQueryService(cat *catalog.Catalog, eng Executor, logger *slog.Logger) *QueryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &QueryService{catalog: cat, engine: eng, logger: logger.With("component", "query-service")}
}

// List returns the catalog's query definitions in declaration order.
func (s *QueryService) List() []domain.QueryDefinition {
	return s.catalog.List()
}

// Run executes the named query as one blocking call, bounded by the engine's
// poll budget. The returned result is scoped to this call:
//
//   - unknown id fails with NotFoundError before anything is submitted
//   - a terminal succeeded execution carries columns, rows, and stats
//   - failed and cancelled executions carry the service's reason in Error
//     and are never fetched
//   - a still-running execution is reported with status running, not an
//     error; the caller re-invokes (which starts a fresh execution)
func (s *QueryService) Run(ctx context.Context, queryID string) (*domain.QueryResult, error) {
	def, err := s.catalog.Get(queryID)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	executionID, err := s.engine.Submit(ctx, def.SQL)
	if err != nil {
		s.logger.Error("submission failed", "query_id", queryID, "error", err)
		return nil, err
	}
	s.logger.Info("query started", "query_id", queryID, "execution_id", executionID)

	exec, err := s.engine.AwaitCompletion(ctx, executionID)
	if err != nil {
		return nil, err
	}

	result := &domain.QueryResult{
		QueryID:          queryID,
		ExecutionID:      executionID,
		Status:           exec.Status,
		ExecutionTimeMs:  exec.ExecutionTimeMs,
		DataScannedBytes: exec.DataScannedBytes,
	}

	switch exec.Status {
	case domain.StatusSucceeded:
		rs, err := s.engine.FetchResults(ctx, executionID)
		if err != nil {
			return nil, err
		}
		result.Columns = rs.Columns
		result.Rows = rs.Rows
		result.RowCount = len(rs.Rows)
		s.logger.Info("query succeeded",
			"query_id", queryID, "execution_id", executionID,
			"rows", result.RowCount, "elapsed", time.Since(start))

	case domain.StatusFailed, domain.StatusCancelled:
		result.Error = exec.Reason
		if result.Error == "" {
			result.Error = "Unknown error"
		}
		s.logger.Warn("query did not succeed",
			"query_id", queryID, "execution_id", executionID,
			"status", exec.Status, "reason", exec.Reason)

	default:
		// Poll budget exhausted. The execution keeps running server-side;
		// the client is expected to re-request.
		result.Status = domain.StatusRunning
		result.Message = "Query still running. Use executionId to check status."
	}

	return result, nil
}
