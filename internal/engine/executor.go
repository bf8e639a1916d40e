package engine

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/athena"
	"github.com/aws/aws-sdk-go-v2/service/athena/types"

	"lakewatch/internal/domain"
)

// Submit starts an Athena execution for sql and returns the execution id the
// service assigned. Submission is never retried; a rejection (malformed SQL,
// missing catalog, permission denied) is surfaced verbatim. Re-submitting the
// same SQL always produces a new execution — there is no deduplication.
func (e *Engine) Submit(ctx context.Context, sql string) (string, error) {
	input := &athena.StartQueryExecutionInput{
		QueryString: aws.String(sql),
		QueryExecutionContext: &types.QueryExecutionContext{
			Database: aws.String(e.database),
		},
		ResultConfiguration: &types.ResultConfiguration{
			OutputLocation: aws.String(e.output),
		},
	}
	if e.workgroup != "" {
		input.WorkGroup = aws.String(e.workgroup)
	}

	out, err := e.client.StartQueryExecution(ctx, input)
	if err != nil {
		return "", classify(err, func(err error) error { return domain.ErrSubmission(err) })
	}

	executionID := aws.ToString(out.QueryExecutionId)
	e.logger.Info("query submitted", "execution_id", executionID, "database", e.database)
	return executionID, nil
}
