// Package lake provides read-through projections of the Security Lake and
// Glue Data Catalog configuration. Nothing here mutates external state.
package lake

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/glue"
	gluetypes "github.com/aws/aws-sdk-go-v2/service/glue/types"
	"github.com/aws/aws-sdk-go-v2/service/securitylake"
	sltypes "github.com/aws/aws-sdk-go-v2/service/securitylake/types"

	"lakewatch/internal/domain"
)

// SecurityLakeAPI is the subset of the Security Lake client the service uses.
type SecurityLakeAPI interface {
	ListDataLakes(ctx context.Context, params *securitylake.ListDataLakesInput, optFns ...func(*securitylake.Options)) (*securitylake.ListDataLakesOutput, error)
	ListLogSources(ctx context.Context, params *securitylake.ListLogSourcesInput, optFns ...func(*securitylake.Options)) (*securitylake.ListLogSourcesOutput, error)
}

// GlueAPI is the subset of the Glue client the service uses.
type GlueAPI interface {
	GetTables(ctx context.Context, params *glue.GetTablesInput, optFns ...func(*glue.Options)) (*glue.GetTablesOutput, error)
}

// LakeService answers the dashboard's status, sources, and tables lookups.
//
//nolint:revive // Name chosen for clarity across package boundaries
type LakeService struct {
	securitylake SecurityLakeAPI
	glue         GlueAPI
	region       string
	database     string
	logger       *slog.Logger
}

// NewLakeService creates a LakeService for one region and Glue database.
func NewLakeService(sl SecurityLakeAPI, gl GlueAPI, region, database string, logger *slog.Logger) *LakeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LakeService{
		securitylake: sl,
		glue:         gl,
		region:       region,
		database:     database,
		logger:       logger.With("component", "lake-service"),
	}
}

// Status reports whether Security Lake is configured in the region and, if
// so, the lake's creation status, retention, bucket, and encryption mode.
func (s *LakeService) Status(ctx context.Context) (*domain.LakeStatus, error) {
	out, err := s.securitylake.ListDataLakes(ctx, &securitylake.ListDataLakesInput{
		Regions: []string{s.region},
	})
	if err != nil {
		return nil, err
	}

	if len(out.DataLakes) == 0 {
		return &domain.LakeStatus{
			Enabled: false,
			Message: "Security Lake not configured in this region",
		}, nil
	}

	lake := out.DataLakes[0]
	status := &domain.LakeStatus{
		Enabled:        true,
		CreateStatus:   string(lake.CreateStatus),
		Region:         aws.ToString(lake.Region),
		S3BucketArn:    aws.ToString(lake.S3BucketArn),
		EncryptionType: "S3_MANAGED_KEY",
	}
	if enc := lake.EncryptionConfiguration; enc != nil && aws.ToString(enc.KmsKeyId) != "" {
		status.EncryptionType = aws.ToString(enc.KmsKeyId)
	}
	if lc := lake.LifecycleConfiguration; lc != nil && lc.Expiration != nil {
		status.RetentionDays = lc.Expiration.Days
	}
	return status, nil
}

// Sources lists the configured AWS-native log sources, flattened from the
// per-account, per-region nesting the service returns. Custom log sources
// are not part of the dashboard and are skipped.
func (s *LakeService) Sources(ctx context.Context) ([]domain.LogSource, error) {
	sources := []domain.LogSource{}
	var nextToken *string

	for {
		out, err := s.securitylake.ListLogSources(ctx, &securitylake.ListLogSourcesInput{
			Regions:   []string{s.region},
			NextToken: nextToken,
		})
		if err != nil {
			return nil, err
		}

		for _, accountSources := range out.Sources {
			for _, src := range accountSources.Sources {
				awsSource, ok := src.(*sltypes.LogSourceResourceMemberAwsLogSource)
				if !ok {
					continue
				}
				sources = append(sources, domain.LogSource{
					AccountID:     aws.ToString(accountSources.Account),
					Region:        aws.ToString(accountSources.Region),
					SourceName:    string(awsSource.Value.SourceName),
					SourceVersion: aws.ToString(awsSource.Value.SourceVersion),
				})
			}
		}

		nextToken = out.NextToken
		if nextToken == nil {
			return sources, nil
		}
	}
}

// Tables lists the Glue tables of the Security Lake database. A missing
// database is not an error — the listing comes back empty with a message,
// matching what the dashboard shows before the lake is configured.
func (s *LakeService) Tables(ctx context.Context) (*domain.TableListing, error) {
	listing := &domain.TableListing{Database: s.database, Tables: []domain.GlueTable{}}
	var nextToken *string

	for {
		out, err := s.glue.GetTables(ctx, &glue.GetTablesInput{
			DatabaseName: aws.String(s.database),
			NextToken:    nextToken,
		})
		if err != nil {
			var notFound *gluetypes.EntityNotFoundException
			if errors.As(err, &notFound) {
				s.logger.Info("glue database not found", "database", s.database)
				return &domain.TableListing{
					Tables:  []domain.GlueTable{},
					Message: "Security Lake Glue database not found",
				}, nil
			}
			return nil, err
		}

		for _, table := range out.TableList {
			listing.Tables = append(listing.Tables, domain.GlueTable{
				Name:       aws.ToString(table.Name),
				CreateTime: isoTime(table.CreateTime),
				UpdateTime: isoTime(table.UpdateTime),
				TableType:  aws.ToString(table.TableType),
			})
		}

		nextToken = out.NextToken
		if nextToken == nil {
			return listing, nil
		}
	}
}

func isoTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
