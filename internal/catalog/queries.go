package catalog

import "lakewatch/internal/domain"

// definitions returns the pre-canned query set. SQL follows the Security Lake
// OCSF 1.1.0 (source version 2) subscriber query examples; cloudtrail and
// securityhub are already-quoted "database"."table" references.
func definitions(cloudtrail, securityhub string) []domain.QueryDefinition {
	return []domain.QueryDefinition{
		{
			ID:          "cloudtrail-event-count",
			Name:        "CloudTrail Event Count by Day",
			Description: "Verify CloudTrail data is flowing - shows event counts per day",
			SQL: `SELECT
    DATE(time_dt) as event_date,
    COUNT(*) as event_count
FROM ` + cloudtrail + `
WHERE time_dt BETWEEN CURRENT_TIMESTAMP - INTERVAL '7' DAY AND CURRENT_TIMESTAMP
GROUP BY DATE(time_dt)
ORDER BY event_date DESC`,
		},
		{
			ID:          "unauthorized-attempts",
			Name:        "Unauthorized Attempts (7 days)",
			Description: "Access denied and unauthorized operation errors",
			SQL: `SELECT
    time_dt,
    api.service.name as service,
    api.operation,
    api.response.error as error,
    api.response.message as message,
    cloud.region,
    actor.user.uid as user_id,
    src_endpoint.ip as source_ip,
    http_request.user_agent
FROM ` + cloudtrail + `
WHERE time_dt BETWEEN CURRENT_TIMESTAMP - INTERVAL '7' DAY AND CURRENT_TIMESTAMP
AND api.response.error IN (
    'Client.UnauthorizedOperation',
    'Client.InvalidPermission.NotFound',
    'Client.OperationNotPermitted',
    'AccessDenied')
ORDER BY time_dt DESC
LIMIT 25`,
		},
		{
			ID:          "iam-activity",
			Name:        "IAM Activity (7 days)",
			Description: "All IAM service API calls",
			SQL: `SELECT
    time_dt,
    api.operation,
    actor.user.uid as user_id,
    src_endpoint.ip as source_ip,
    cloud.region,
    status
FROM ` + cloudtrail + `
WHERE time_dt BETWEEN CURRENT_TIMESTAMP - INTERVAL '7' DAY AND CURRENT_TIMESTAMP
AND api.service.name = 'iam.amazonaws.com'
ORDER BY time_dt DESC
LIMIT 25`,
		},
		{
			ID:          "failed-records",
			Name:        "Failed CloudTrail Records (7 days)",
			Description: "Operations that failed",
			SQL: `SELECT
    time_dt,
    api.service.name as service,
    api.operation,
    actor.user.uid as user_id,
    actor.user.account.uid as account_id,
    cloud.region,
    api.response.error as error
FROM ` + cloudtrail + `
WHERE status = 'Failure'
AND time_dt BETWEEN CURRENT_TIMESTAMP - INTERVAL '7' DAY AND CURRENT_TIMESTAMP
ORDER BY time_dt DESC
LIMIT 25`,
		},
		{
			ID:          "sh-medium-severity",
			Name:        "Security Hub Findings >= Medium (7 days)",
			Description: "New findings with severity Medium or higher",
			SQL: `SELECT
    time_dt,
    finding_info.title,
    severity,
    severity_id,
    status
FROM ` + securityhub + `
WHERE time_dt BETWEEN CURRENT_TIMESTAMP - INTERVAL '7' DAY AND CURRENT_TIMESTAMP
    AND severity_id >= 3
    AND status = 'New'
ORDER BY time_dt DESC
LIMIT 25`,
		},
		{
			ID:          "sh-products-count",
			Name:        "Security Hub Products Sending Findings",
			Description: "Count of findings by product source",
			SQL: `SELECT
    metadata.product.name as product_name,
    COUNT(*) as finding_count
FROM ` + securityhub + `
WHERE time_dt BETWEEN CURRENT_TIMESTAMP - INTERVAL '7' DAY AND CURRENT_TIMESTAMP
GROUP BY metadata.product.name
ORDER BY finding_count DESC
LIMIT 25`,
		},
		{
			ID:          "data-freshness",
			Name:        "Data Freshness Check",
			Description: "Most recent event timestamp per source",
			SQL: `SELECT 'CloudTrail' as source, MAX(time_dt) as latest_event
FROM ` + cloudtrail + `
WHERE time_dt BETWEEN CURRENT_TIMESTAMP - INTERVAL '1' DAY AND CURRENT_TIMESTAMP
UNION ALL
SELECT 'Security Hub' as source, MAX(time_dt) as latest_event
FROM ` + securityhub + `
WHERE time_dt BETWEEN CURRENT_TIMESTAMP - INTERVAL '1' DAY AND CURRENT_TIMESTAMP`,
		},
	}
}
