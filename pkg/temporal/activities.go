package temporal

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"go.temporal.io/sdk/activity"

	"github.com/leowmjw/go-sea-norm/pkg/sea"
)

// Activities interface defines all the activities used by workflows
type Activities interface {
	LoadDatasetActivity(ctx context.Context, datasetID string) ([]byte, error)
	RunAnalysisActivity(ctx context.Context, csvData []byte, request AnalysisRequest) (*AnalysisResult, error)
	ComputeStatisticActivity(ctx context.Context, csvData []byte, request AnalysisRequest, statName string) (*AnalysisResult, error)
	ProfileDatasetActivity(ctx context.Context, csvData []byte, cols []string) ([]sea.ColumnProfile, error)
}

// StorageService defines the interface for durable dataset storage. A
// dataset is one CSV document: a time column followed by numeric columns.
type StorageService interface {
	LoadDataset(ctx context.Context, datasetID string) ([]byte, error)
}

// ActivitiesImpl implements the Activities interface
type ActivitiesImpl struct {
	logger  *slog.Logger
	storage StorageService
}

// NewActivitiesImpl creates a new activities implementation
func NewActivitiesImpl(logger *slog.Logger, storage StorageService) *ActivitiesImpl {
	return &ActivitiesImpl{
		logger:  logger,
		storage: storage,
	}
}

// LoadDatasetActivity loads the raw dataset document from storage
func (a *ActivitiesImpl) LoadDatasetActivity(ctx context.Context, datasetID string) ([]byte, error) {
	a.logger.Info("Loading dataset", "datasetID", datasetID)

	data, err := a.storage.LoadDataset(ctx, datasetID)
	if err != nil {
		a.logger.Error("Failed to load dataset", "datasetID", datasetID, "error", err)
		return nil, fmt.Errorf("failed to load dataset %q: %w", datasetID, err)
	}

	a.logger.Info("Successfully loaded dataset", "datasetID", datasetID, "bytes", len(data))
	return data, nil
}

// RunAnalysisActivity runs the full superposed epoch analysis over the
// dataset for every requested statistic.
func (a *ActivitiesImpl) RunAnalysisActivity(ctx context.Context, csvData []byte, request AnalysisRequest) (*AnalysisResult, error) {
	return a.analyze(ctx, csvData, request, request.Statistics)
}

// ComputeStatisticActivity runs the analysis for a single statistic. Used by
// the per-statistic processing mode; results across statistics are
// independent, so fan-out cannot change any value.
func (a *ActivitiesImpl) ComputeStatisticActivity(ctx context.Context, csvData []byte, request AnalysisRequest, statName string) (*AnalysisResult, error) {
	return a.analyze(ctx, csvData, request, []string{statName})
}

func (a *ActivitiesImpl) analyze(ctx context.Context, csvData []byte, request AnalysisRequest, statNames []string) (*AnalysisResult, error) {
	frame, err := sea.LoadCSVFromReader(bytes.NewReader(csvData), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}

	events, err := ParseEvents(request.Events)
	if err != nil {
		return nil, err
	}

	statistics, err := sea.ResolveStatistics(statNames)
	if err != nil {
		return nil, err
	}

	a.logger.Info("Running analysis",
		"datasetID", request.DatasetID,
		"rows", frame.Len(),
		"events", len(events),
		"statistics", len(statistics),
	)
	if activity.IsActivity(ctx) {
		activity.RecordHeartbeat(ctx, AnalysisProgress{
			DatasetID: request.DatasetID,
			Rows:      frame.Len(),
			Events:    len(events),
		})
	}

	result, err := sea.Analyze(frame, events, sea.Options{
		XDimensions: request.XDimensions,
		Cols:        request.Cols,
		Statistics:  statistics,
		YCol:        request.YCol,
		YDimensions: request.YDimensions,
		Logger:      a.logger,
	})
	if err != nil {
		a.logger.Error("Analysis failed", "datasetID", request.DatasetID, "error", err)
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	a.logger.Info("Analysis completed",
		"datasetID", request.DatasetID,
		"rows", result.Table.Len(),
		"columns", len(result.Table.Names),
	)
	return &AnalysisResult{Table: result.Table, Meta: result.Meta}, nil
}

// ProfileDatasetActivity summarizes dataset columns for pre-analysis
// data-quality checks.
func (a *ActivitiesImpl) ProfileDatasetActivity(ctx context.Context, csvData []byte, cols []string) ([]sea.ColumnProfile, error) {
	frame, err := sea.LoadCSVFromReader(bytes.NewReader(csvData), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}

	profiles, err := sea.ProfileFrame(frame, cols)
	if err != nil {
		return nil, fmt.Errorf("failed to profile dataset: %w", err)
	}

	a.logger.Info("Profiled dataset", "rows", frame.Len(), "columns", len(profiles))
	return profiles, nil
}
