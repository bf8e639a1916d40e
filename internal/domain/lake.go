package domain

// LakeStatus is a read-only projection of the Security Lake data-lake
// configuration for one region.
type LakeStatus struct {
	Enabled        bool   `json:"enabled"`
	CreateStatus   string `json:"createStatus,omitempty"`
	Region         string `json:"region,omitempty"`
	RetentionDays  *int32 `json:"retentionDays,omitempty"`
	S3BucketArn    string `json:"s3BucketArn,omitempty"`
	EncryptionType string `json:"encryptionType,omitempty"`
	Message        string `json:"message,omitempty"`
}

// LogSource is one configured AWS-native log source, flattened from the
// per-account nesting the service returns.
type LogSource struct {
	AccountID     string `json:"accountId"`
	Region        string `json:"region"`
	SourceName    string `json:"sourceName"`
	SourceVersion string `json:"sourceVersion"`
}

// GlueTable is a read-only projection of one Glue catalog table.
type GlueTable struct {
	Name       string  `json:"name"`
	CreateTime *string `json:"createTime"`
	UpdateTime *string `json:"updateTime"`
	TableType  string  `json:"tableType"`
}

// TableListing is the catalog-table view for the configured database.
// Database is empty when the Security Lake Glue database does not exist.
type TableListing struct {
	Database string      `json:"database"`
	Tables   []GlueTable `json:"tables"`
	Message  string      `json:"message,omitempty"`
}
