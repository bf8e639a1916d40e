package engine

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/athena"
	"github.com/aws/aws-sdk-go-v2/service/athena/types"

	"lakewatch/internal/domain"
)

// Execution is the observed state of one Athena execution after polling.
// Reason carries the service's StateChangeReason verbatim for failed and
// cancelled executions. The statistics are only present once terminal.
type Execution struct {
	ID               string
	Status           domain.ExecutionStatus
	Reason           string
	ExecutionTimeMs  *int64
	DataScannedBytes *int64
}

// AwaitCompletion polls the execution status on a fixed interval until a
// terminal state is observed or the engine's poll budget elapses. Exhausting
// the budget is not an error: the returned execution reports status running
// and the caller is expected to answer its own client with "still running".
// The budget bounds only this loop — the underlying Athena execution keeps
// running (and billing) past it.
func (e *Engine) AwaitCompletion(ctx context.Context, executionID string) (*Execution, error) {
	deadline := time.Now().Add(e.maxWait)

	for {
		out, err := e.client.GetQueryExecution(ctx, &athena.GetQueryExecutionInput{
			QueryExecutionId: aws.String(executionID),
		})
		if err != nil {
			return nil, classify(err, func(err error) error { return domain.ErrFetch(err) })
		}

		exec := executionFromOutput(executionID, out)
		if exec.Status.Terminal() {
			e.logger.Info("query terminal", "execution_id", executionID, "status", exec.Status)
			return exec, nil
		}

		if !time.Now().Before(deadline) {
			e.logger.Info("poll budget exhausted", "execution_id", executionID, "max_wait", e.maxWait)
			exec.Status = domain.StatusRunning
			return exec, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(e.pollInterval):
		}
	}
}

func executionFromOutput(executionID string, out *athena.GetQueryExecutionOutput) *Execution {
	exec := &Execution{ID: executionID, Status: domain.StatusQueued}
	qe := out.QueryExecution
	if qe == nil || qe.Status == nil {
		return exec
	}

	switch qe.Status.State {
	case types.QueryExecutionStateQueued:
		exec.Status = domain.StatusQueued
	case types.QueryExecutionStateRunning:
		exec.Status = domain.StatusRunning
	case types.QueryExecutionStateSucceeded:
		exec.Status = domain.StatusSucceeded
	case types.QueryExecutionStateFailed:
		exec.Status = domain.StatusFailed
	case types.QueryExecutionStateCancelled:
		exec.Status = domain.StatusCancelled
	}

	if reason := aws.ToString(qe.Status.StateChangeReason); reason != "" {
		exec.Reason = reason
	}
	if stats := qe.Statistics; stats != nil {
		exec.ExecutionTimeMs = stats.TotalExecutionTimeInMillis
		exec.DataScannedBytes = stats.DataScannedInBytes
	}
	return exec
}
