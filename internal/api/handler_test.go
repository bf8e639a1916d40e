package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lakewatch/internal/domain"
)

type fakeQueryService struct {
	listFn func() []domain.QueryDefinition
	runFn  func(ctx context.Context, queryID string) (*domain.QueryResult, error)
}

func (f *fakeQueryService) List() []domain.QueryDefinition {
	if f.listFn != nil {
		return f.listFn()
	}
	return nil
}

func (f *fakeQueryService) Run(ctx context.Context, queryID string) (*domain.QueryResult, error) {
	return f.runFn(ctx, queryID)
}

type fakeLakeService struct {
	statusFn  func(ctx context.Context) (*domain.LakeStatus, error)
	sourcesFn func(ctx context.Context) ([]domain.LogSource, error)
	tablesFn  func(ctx context.Context) (*domain.TableListing, error)
}

func (f *fakeLakeService) Status(ctx context.Context) (*domain.LakeStatus, error) {
	return f.statusFn(ctx)
}

func (f *fakeLakeService) Sources(ctx context.Context) ([]domain.LogSource, error) {
	return f.sourcesFn(ctx)
}

func (f *fakeLakeService) Tables(ctx context.Context) (*domain.TableListing, error) {
	return f.tablesFn(ctx)
}

func newTestHandler(q *fakeQueryService, l *fakeLakeService) *Handler {
	return NewHandler(q, l, nil)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestGetStatus(t *testing.T) {
	days := int32(365)
	h := newTestHandler(nil, &fakeLakeService{
		statusFn: func(ctx context.Context) (*domain.LakeStatus, error) {
			return &domain.LakeStatus{
				Enabled:        true,
				CreateStatus:   "COMPLETED",
				Region:         "us-east-1",
				RetentionDays:  &days,
				S3BucketArn:    "arn:aws:s3:::aws-security-data-lake",
				EncryptionType: "S3_MANAGED_KEY",
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/securitylake/status", nil)
	rec := httptest.NewRecorder()
	h.GetStatus(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["enabled"])
	assert.Equal(t, "COMPLETED", body["createStatus"])
	assert.Equal(t, float64(365), body["retentionDays"])
}

func TestGetStatusError(t *testing.T) {
	h := newTestHandler(nil, &fakeLakeService{
		statusFn: func(ctx context.Context) (*domain.LakeStatus, error) {
			return nil, domain.ErrFetch(assertErr("ListDataLakes failed"))
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/securitylake/status", nil)
	rec := httptest.NewRecorder()
	h.GetStatus(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body["error"], "ListDataLakes failed")
}

func TestGetSources(t *testing.T) {
	h := newTestHandler(nil, &fakeLakeService{
		sourcesFn: func(ctx context.Context) ([]domain.LogSource, error) {
			return []domain.LogSource{
				{AccountID: "111111111111", Region: "us-east-1", SourceName: "CLOUD_TRAIL_MGMT", SourceVersion: "2.0"},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/securitylake/sources", nil)
	rec := httptest.NewRecorder()
	h.GetSources(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	sources, ok := body["sources"].([]interface{})
	require.True(t, ok)
	require.Len(t, sources, 1)
	first := sources[0].(map[string]interface{})
	assert.Equal(t, "CLOUD_TRAIL_MGMT", first["sourceName"])
}

func TestGetSourcesEmptyIsNotError(t *testing.T) {
	h := newTestHandler(nil, &fakeLakeService{
		sourcesFn: func(ctx context.Context) ([]domain.LogSource, error) {
			return []domain.LogSource{}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/securitylake/sources", nil)
	rec := httptest.NewRecorder()
	h.GetSources(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetTables(t *testing.T) {
	created := "2026-08-01T12:00:00Z"
	h := newTestHandler(nil, &fakeLakeService{
		tablesFn: func(ctx context.Context) (*domain.TableListing, error) {
			return &domain.TableListing{
				Database: "amazon_security_lake_glue_db_us_east_1",
				Tables: []domain.GlueTable{
					{Name: "amazon_security_lake_table_us_east_1_cloud_trail_mgmt_2_0", CreateTime: &created, TableType: "EXTERNAL_TABLE"},
				},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/securitylake/tables", nil)
	rec := httptest.NewRecorder()
	h.GetTables(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "amazon_security_lake_glue_db_us_east_1", body["database"])
}

func TestListQueries(t *testing.T) {
	h := newTestHandler(&fakeQueryService{
		listFn: func() []domain.QueryDefinition {
			return []domain.QueryDefinition{
				{ID: "cloudtrail-event-count", Name: "CloudTrail Event Count", Description: "Event counts by type", SQL: "SELECT 1"},
			}
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/securitylake/queries", nil)
	rec := httptest.NewRecorder()
	h.ListQueries(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "SELECT 1")
	body := decodeBody(t, rec)
	queries, ok := body["queries"].([]interface{})
	require.True(t, ok)
	require.Len(t, queries, 1)
	first := queries[0].(map[string]interface{})
	assert.Equal(t, "cloudtrail-event-count", first["id"])
}

func TestRunQuerySuccess(t *testing.T) {
	val := "42"
	h := newTestHandler(&fakeQueryService{
		runFn: func(ctx context.Context, queryID string) (*domain.QueryResult, error) {
			assert.Equal(t, "cloudtrail-event-count", queryID)
			return &domain.QueryResult{
				QueryID:     queryID,
				ExecutionID: "exec-1",
				Status:      domain.StatusSucceeded,
				Columns:     []string{"event_count"},
				Rows:        []domain.Row{{"event_count": &val}},
				RowCount:    1,
			}, nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/securitylake/query",
		strings.NewReader(`{"queryId":"cloudtrail-event-count"}`))
	rec := httptest.NewRecorder()
	h.RunQuery(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "succeeded", body["status"])
	assert.Equal(t, "exec-1", body["executionId"])
	assert.Equal(t, float64(1), body["rowCount"])
}

func TestRunQueryInvalidJSON(t *testing.T) {
	h := newTestHandler(&fakeQueryService{
		runFn: func(ctx context.Context, queryID string) (*domain.QueryResult, error) {
			t.Fatal("Run should not be called")
			return nil, nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/securitylake/query", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()
	h.RunQuery(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body["error"], "invalid JSON body")
}

func TestRunQueryMissingID(t *testing.T) {
	h := newTestHandler(&fakeQueryService{
		runFn: func(ctx context.Context, queryID string) (*domain.QueryResult, error) {
			t.Fatal("Run should not be called")
			return nil, nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/securitylake/query", strings.NewReader(`{"queryId":"  "}`))
	rec := httptest.NewRecorder()
	h.RunQuery(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body["error"], "queryId is required")
}

func TestRunQueryUnknownID(t *testing.T) {
	h := newTestHandler(&fakeQueryService{
		runFn: func(ctx context.Context, queryID string) (*domain.QueryResult, error) {
			return nil, domain.ErrNotFound("unknown query id: %s", queryID)
		},
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/securitylake/query", strings.NewReader(`{"queryId":"nope"}`))
	rec := httptest.NewRecorder()
	h.RunQuery(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body["error"], "unknown query id: nope")
}

func TestRunQueryAccessDeniedSurfacesVerbatim(t *testing.T) {
	const msg = "User: arn:aws:iam::111111111111:role/dashboard is not authorized to perform: athena:StartQueryExecution"
	h := newTestHandler(&fakeQueryService{
		runFn: func(ctx context.Context, queryID string) (*domain.QueryResult, error) {
			return nil, domain.ErrAccessDenied(msg)
		},
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/securitylake/query", strings.NewReader(`{"queryId":"cloudtrail-event-count"}`))
	rec := httptest.NewRecorder()
	h.RunQuery(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body["error"], msg)
}

func TestRunQueryStillRunning(t *testing.T) {
	h := newTestHandler(&fakeQueryService{
		runFn: func(ctx context.Context, queryID string) (*domain.QueryResult, error) {
			return &domain.QueryResult{
				QueryID:     queryID,
				ExecutionID: "exec-2",
				Status:      domain.StatusRunning,
				Message:     "Query still running. Use executionId to check status.",
			}, nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/securitylake/query", strings.NewReader(`{"queryId":"data-freshness"}`))
	rec := httptest.NewRecorder()
	h.RunQuery(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "running", body["status"])
}

func TestHealthz(t *testing.T) {
	h := newTestHandler(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.Healthz(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "ok", body["status"])
}

// assertErr is a minimal error for wrapping tests.
type assertErr string

func (e assertErr) Error() string { return string(e) }
