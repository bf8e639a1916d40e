// Package engine wraps the Athena query execution service behind a small
// adapter boundary. Only this package touches the Athena wire types: the
// continuation-token pagination loop and the duplicate-header-row quirk of
// the row-oriented result format stay here, so a different query backend
// could be substituted by replacing this package alone.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/athena"
	"github.com/aws/smithy-go"

	"lakewatch/internal/domain"
)

// AthenaAPI is the subset of the Athena client the engine uses.
type AthenaAPI interface {
	StartQueryExecution(ctx context.Context, params *athena.StartQueryExecutionInput, optFns ...func(*athena.Options)) (*athena.StartQueryExecutionOutput, error)
	GetQueryExecution(ctx context.Context, params *athena.GetQueryExecutionInput, optFns ...func(*athena.Options)) (*athena.GetQueryExecutionOutput, error)
	GetQueryResults(ctx context.Context, params *athena.GetQueryResultsInput, optFns ...func(*athena.Options)) (*athena.GetQueryResultsOutput, error)
}

// Options configures an Engine.
type Options struct {
	Database       string        // target Glue database (or resource link)
	OutputLocation string        // s3:// scratch location for results
	Workgroup      string        // optional Athena workgroup
	PollInterval   time.Duration // status-check interval
	MaxWait        time.Duration // synchronous poll budget per call
	Logger         *slog.Logger
}

// Engine submits queries to Athena, polls executions to a terminal state,
// and fetches paginated results. Each method call is independent; the engine
// holds no mutable state.
type Engine struct {
	client       AthenaAPI
	database     string
	output       string
	workgroup    string
	pollInterval time.Duration
	maxWait      time.Duration
	logger       *slog.Logger
}

// New creates an Engine. PollInterval and MaxWait fall back to 1s/30s.
func New(client AthenaAPI, opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	pollInterval := opts.PollInterval
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	maxWait := opts.MaxWait
	if maxWait <= 0 {
		maxWait = 30 * time.Second
	}
	return &Engine{
		client:       client,
		database:     opts.Database,
		output:       opts.OutputLocation,
		workgroup:    opts.Workgroup,
		pollInterval: pollInterval,
		maxWait:      maxWait,
		logger:       logger.With("component", "engine"),
	}
}

// classify maps an AWS error to the domain taxonomy. Permission failures are
// reported distinctly so the caller can surface the grant problem as-is.
func classify(err error, wrap func(error) error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		if code == "AccessDeniedException" || strings.Contains(code, "AccessDenied") {
			return domain.ErrAccessDenied("%s", apiErr.ErrorMessage())
		}
	}
	return wrap(err)
}
