package domain

// ExecutionStatus represents the lifecycle state of an Athena query execution.
type ExecutionStatus string

// Query execution lifecycle statuses. The first two are non-terminal; the
// rest are terminal. Wire values are lowercase.
const (
	StatusQueued    ExecutionStatus = "queued"
	StatusRunning   ExecutionStatus = "running"
	StatusSucceeded ExecutionStatus = "succeeded"
	StatusFailed    ExecutionStatus = "failed"
	StatusCancelled ExecutionStatus = "cancelled"
)

// Terminal reports whether the status is a terminal state.
func (s ExecutionStatus) Terminal() bool {
	switch s {
	case StatusSucceeded, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// QueryDefinition describes one pre-canned query. Definitions are built once
// at startup and are read-only for the process lifetime.
type QueryDefinition struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	SQL         string `json:"-"`
}

// Row maps column name to a nullable cell value. A nil cell is SQL NULL;
// an empty string is a real empty string, never a stand-in for NULL.
type Row map[string]*string

// QueryResult is the outcome of one query run, scoped to a single HTTP
// response. Rows is nil unless Status is succeeded.
type QueryResult struct {
	QueryID          string          `json:"queryId"`
	ExecutionID      string          `json:"executionId"`
	Status           ExecutionStatus `json:"status"`
	Columns          []string        `json:"columns,omitempty"`
	Rows             []Row           `json:"rows,omitempty"`
	RowCount         int             `json:"rowCount"`
	ExecutionTimeMs  *int64          `json:"executionTimeMs,omitempty"`
	DataScannedBytes *int64          `json:"dataScannedBytes,omitempty"`
	Error            string          `json:"error,omitempty"`
	Message          string          `json:"message,omitempty"`
}
