package engine

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/athena"
	"github.com/aws/aws-sdk-go-v2/service/athena/types"

	"lakewatch/internal/domain"
)

const resultsPageSize = 1000

// ResultSet is the uniform tabular shape built from the paginated Athena
// result. Row cells are nullable strings: a nil cell is SQL NULL, never an
// empty string standing in for one.
type ResultSet struct {
	Columns []string
	Rows    []domain.Row
}

// FetchResults retrieves all result pages for a succeeded execution,
// concatenating rows in page order. The column set comes from the first
// page's metadata; Athena guarantees it is stable across pages. The first
// row of the first page duplicates the column names for row-oriented result
// formats — when present it is skipped, not emitted as a data row.
//
// Any pagination failure (network error, expired execution) returns a
// FetchError and discards rows fetched so far; a partial result is never
// returned.
func (e *Engine) FetchResults(ctx context.Context, executionID string) (*ResultSet, error) {
	rs := &ResultSet{}
	var nextToken *string
	firstPage := true

	for {
		out, err := e.client.GetQueryResults(ctx, &athena.GetQueryResultsInput{
			QueryExecutionId: aws.String(executionID),
			MaxResults:       aws.Int32(resultsPageSize),
			NextToken:        nextToken,
		})
		if err != nil {
			return nil, classify(err, func(err error) error { return domain.ErrFetch(err) })
		}

		result := out.ResultSet
		if result != nil {
			rows := result.Rows
			if firstPage {
				rs.Columns = columnNames(result.ResultSetMetadata)
				if len(rows) > 0 && isHeaderRow(rows[0], rs.Columns) {
					rows = rows[1:]
				}
			}
			for _, row := range rows {
				rs.Rows = append(rs.Rows, mapRow(row, rs.Columns))
			}
		}
		firstPage = false

		nextToken = out.NextToken
		if nextToken == nil {
			break
		}
	}

	e.logger.Info("results fetched", "execution_id", executionID, "rows", len(rs.Rows))
	return rs, nil
}

func columnNames(meta *types.ResultSetMetadata) []string {
	if meta == nil {
		return nil
	}
	names := make([]string, len(meta.ColumnInfo))
	for i, col := range meta.ColumnInfo {
		names[i] = aws.ToString(col.Name)
	}
	return names
}

// isHeaderRow reports whether row duplicates the column names exactly.
func isHeaderRow(row types.Row, columns []string) bool {
	if len(columns) == 0 || len(row.Data) != len(columns) {
		return false
	}
	for i, cell := range row.Data {
		if cell.VarCharValue == nil || *cell.VarCharValue != columns[i] {
			return false
		}
	}
	return true
}

// mapRow converts one wire row into the column-name keyed shape. Cells the
// service omitted (trailing NULLs) map to nil.
func mapRow(row types.Row, columns []string) domain.Row {
	out := make(domain.Row, len(columns))
	for i, col := range columns {
		if i < len(row.Data) && row.Data[i].VarCharValue != nil {
			v := *row.Data[i].VarCharValue
			out[col] = &v
		} else {
			out[col] = nil
		}
	}
	return out
}
