package query

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lakewatch/internal/catalog"
	"lakewatch/internal/domain"
	"lakewatch/internal/engine"
)

// fakeExecutor scripts the engine surface and counts calls.
type fakeExecutor struct {
	submitErr  error
	execution  *engine.Execution
	awaitErr   error
	results    *engine.ResultSet
	fetchErr   error
	submitted  []string
	awaitCalls int
	fetchCalls int
}

func (f *fakeExecutor) Submit(_ context.Context, sql string) (string, error) {
	f.submitted = append(f.submitted, sql)
	if f.submitErr != nil {
		return "", f.submitErr
	}
	return "exec-1", nil
}

func (f *fakeExecutor) AwaitCompletion(_ context.Context, executionID string) (*engine.Execution, error) {
	f.awaitCalls++
	if f.awaitErr != nil {
		return nil, f.awaitErr
	}
	exec := *f.execution
	exec.ID = executionID
	return &exec, nil
}

func (f *fakeExecutor) FetchResults(_ context.Context, _ string) (*engine.ResultSet, error) {
	f.fetchCalls++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.results, nil
}

func strp(s string) *string { return &s }

func testService(exec *fakeExecutor) *QueryService {
	cat := catalog.New(catalog.Params{
		Database: "amazon_security_lake_glue_db_us_east_1",
		Region:   "us-east-1",
	})
	return NewQueryService(cat, exec, nil)
}

func TestRun_Succeeded(t *testing.T) {
	fake := &fakeExecutor{
		execution: &engine.Execution{
			Status:           domain.StatusSucceeded,
			ExecutionTimeMs:  aws.Int64(900),
			DataScannedBytes: aws.Int64(4096),
		},
		results: &engine.ResultSet{
			Columns: []string{"event_date", "event_count"},
			Rows: []domain.Row{
				{"event_date": strp("2026-08-30"), "event_count": strp("120")},
				{"event_date": strp("2026-08-29"), "event_count": strp("98")},
				{"event_date": strp("2026-08-28"), "event_count": strp("134")},
			},
		},
	}
	svc := testService(fake)

	result, err := svc.Run(context.Background(), "cloudtrail-event-count")
	require.NoError(t, err)

	assert.Equal(t, "cloudtrail-event-count", result.QueryID)
	assert.Equal(t, "exec-1", result.ExecutionID)
	assert.Equal(t, domain.StatusSucceeded, result.Status)
	assert.Equal(t, []string{"event_date", "event_count"}, result.Columns)
	assert.Equal(t, 3, result.RowCount)
	assert.Len(t, result.Rows, result.RowCount)
	assert.Empty(t, result.Error)
	require.NotNil(t, result.ExecutionTimeMs)
	assert.EqualValues(t, 900, *result.ExecutionTimeMs)

	// The catalog SQL, not the query id, is what gets submitted.
	require.Len(t, fake.submitted, 1)
	assert.Contains(t, fake.submitted[0], "COUNT(*) as event_count")
}

func TestRun_UnknownIDFailsBeforeSubmission(t *testing.T) {
	fake := &fakeExecutor{}
	svc := testService(fake)

	_, err := svc.Run(context.Background(), "unknown-id")
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)

	assert.Empty(t, fake.submitted)
	assert.Zero(t, fake.awaitCalls)
	assert.Zero(t, fake.fetchCalls)
}

func TestRun_FailedCarriesReasonAndSkipsFetch(t *testing.T) {
	fake := &fakeExecutor{
		execution: &engine.Execution{
			Status: domain.StatusFailed,
			Reason: "SYNTAX_ERROR: line 3:5: Column 'nope' cannot be resolved",
		},
	}
	svc := testService(fake)

	result, err := svc.Run(context.Background(), "iam-activity")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailed, result.Status)
	assert.Equal(t, "SYNTAX_ERROR: line 3:5: Column 'nope' cannot be resolved", result.Error)
	assert.Empty(t, result.Rows)
	assert.Zero(t, fake.fetchCalls)
}

func TestRun_FailedWithoutReasonGetsPlaceholder(t *testing.T) {
	fake := &fakeExecutor{execution: &engine.Execution{Status: domain.StatusFailed}}
	svc := testService(fake)

	result, err := svc.Run(context.Background(), "iam-activity")
	require.NoError(t, err)
	assert.Equal(t, "Unknown error", result.Error)
}

func TestRun_CancelledReportedDistinctly(t *testing.T) {
	fake := &fakeExecutor{
		execution: &engine.Execution{
			Status: domain.StatusCancelled,
			Reason: "Query cancelled by user",
		},
	}
	svc := testService(fake)

	result, err := svc.Run(context.Background(), "failed-records")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, result.Status)
	assert.Equal(t, "Query cancelled by user", result.Error)
	assert.Zero(t, fake.fetchCalls)
}

func TestRun_StillRunningIsNotAnError(t *testing.T) {
	fake := &fakeExecutor{execution: &engine.Execution{Status: domain.StatusRunning}}
	svc := testService(fake)

	result, err := svc.Run(context.Background(), "data-freshness")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRunning, result.Status)
	assert.Equal(t, "exec-1", result.ExecutionID)
	assert.NotEmpty(t, result.Message)
	assert.Zero(t, fake.fetchCalls)
}

func TestRun_SubmissionErrorPropagates(t *testing.T) {
	fake := &fakeExecutor{
		submitErr: domain.ErrAccessDenied("Insufficient Lake Formation permission(s)"),
	}
	svc := testService(fake)

	_, err := svc.Run(context.Background(), "cloudtrail-event-count")
	var denied *domain.AccessDeniedError
	require.ErrorAs(t, err, &denied)
	assert.Zero(t, fake.awaitCalls)
}

func TestRun_FetchErrorPropagates(t *testing.T) {
	fake := &fakeExecutor{
		execution: &engine.Execution{Status: domain.StatusSucceeded},
		fetchErr:  domain.ErrFetch(context.DeadlineExceeded),
	}
	svc := testService(fake)

	_, err := svc.Run(context.Background(), "cloudtrail-event-count")
	var fetchErr *domain.FetchError
	require.ErrorAs(t, err, &fetchErr)
}

// End-to-end timing through the real engine: a poller that never reaches a
// terminal state must come back within roughly the poll budget.
func TestRun_TimeoutBoundedByMaxWait(t *testing.T) {
	fake := &neverTerminalAthena{}
	eng := engine.New(fake, engine.Options{
		Database:       "db",
		OutputLocation: "s3://results/",
		PollInterval:   100 * time.Millisecond,
		MaxWait:        500 * time.Millisecond,
	})
	cat := catalog.New(catalog.Params{Database: "db", Region: "us-east-1"})
	svc := NewQueryService(cat, eng, nil)

	start := time.Now()
	result, err := svc.Run(context.Background(), "cloudtrail-event-count")
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusRunning, result.Status)
	assert.GreaterOrEqual(t, elapsed, 500*time.Millisecond)
	assert.Less(t, elapsed, 800*time.Millisecond)
}
