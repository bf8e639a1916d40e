// Package catalog holds the static set of pre-canned Athena queries the
// dashboard can run. The catalog is built once at startup with the target
// database and table names interpolated into fixed SQL text; it is read-only
// for the process lifetime.
package catalog

import (
	"strings"

	"lakewatch/internal/domain"
)

// Params identifies the Glue database and region the query SQL targets.
// Database may be a resource-link database for cross-account deployments.
type Params struct {
	Database string
	Region   string
}

// Catalog is an immutable, declaration-ordered query lookup table.
type Catalog struct {
	queries []domain.QueryDefinition
	byID    map[string]domain.QueryDefinition
}

// New builds the catalog for the given database and region. Security Lake
// table names embed the region with dashes replaced by underscores.
func New(p Params) *Catalog {
	region := strings.ReplaceAll(p.Region, "-", "_")
	cloudtrail := quoted(p.Database, "amazon_security_lake_table_"+region+"_cloud_trail_mgmt_2_0")
	securityhub := quoted(p.Database, "amazon_security_lake_table_"+region+"_sh_findings_2_0")

	queries := definitions(cloudtrail, securityhub)
	byID := make(map[string]domain.QueryDefinition, len(queries))
	for _, q := range queries {
		byID[q.ID] = q
	}
	return &Catalog{queries: queries, byID: byID}
}

// List returns all query definitions in declaration order.
func (c *Catalog) List() []domain.QueryDefinition {
	out := make([]domain.QueryDefinition, len(c.queries))
	copy(out, c.queries)
	return out
}

// Get returns the query definition for id, or a NotFoundError.
func (c *Catalog) Get(id string) (domain.QueryDefinition, error) {
	q, ok := c.byID[id]
	if !ok {
		return domain.QueryDefinition{}, domain.ErrNotFound("query %q not found", id)
	}
	return q, nil
}

func quoted(database, table string) string {
	return `"` + database + `"."` + table + `"`
}
