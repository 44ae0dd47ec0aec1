package temporal

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/leowmjw/go-sea-norm/pkg/sea"
)

const (
	// TaskQueue is the queue workers poll and clients submit to
	TaskQueue = "sea-task-queue"

	// Workflow IDs
	AnalysisWorkflowIDPrefix = "sea-"
	ProfileWorkflowIDPrefix  = "profile-"

	// Activity names
	LoadDatasetActivityName      = "load-dataset"
	RunAnalysisActivityName      = "run-analysis"
	ComputeStatisticActivityName = "compute-statistic"
	ProfileDatasetActivityName   = "profile-dataset"

	// Processing modes
	ProcessingModeSingle       = "single"
	ProcessingModePerStatistic = "per-statistic"
)

// AnalysisWorkflow loads a dataset and runs a superposed epoch analysis
// over it. The analysis itself is pure and synchronous; the workflow only
// adds durable retries around storage and computation.
func AnalysisWorkflow(ctx workflow.Context, request AnalysisRequest) (*AnalysisResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting analysis workflow", "datasetID", request.DatasetID, "events", len(request.Events))

	ao := workflow.ActivityOptions{
		ScheduleToCloseTimeout: 5 * time.Minute,
		HeartbeatTimeout:       time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	// Step 1: load the raw dataset from storage
	var csvData []byte
	err := workflow.ExecuteActivity(ctx, LoadDatasetActivityName, request.DatasetID).Get(ctx, &csvData)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	// Step 2: run the analysis
	switch request.ProcessingMode {
	case ProcessingModePerStatistic:
		logger.Info("Using per-statistic processing", "statistics", len(request.Statistics))
		return runPerStatistic(ctx, csvData, request)
	default:
		var result *AnalysisResult
		err = workflow.ExecuteActivity(ctx, RunAnalysisActivityName, csvData, request).Get(ctx, &result)
		if err != nil {
			return nil, fmt.Errorf("failed to run analysis: %w", err)
		}
		logger.Info("Analysis workflow completed", "rows", result.Table.Len())
		return result, nil
	}
}

// runPerStatistic fans the analysis out into one activity per statistic and
// reassembles the partial tables in request order. Statistics are computed
// over the same pooled samples independently, so the assembled table is
// identical to the single-activity result.
func runPerStatistic(ctx workflow.Context, csvData []byte, request AnalysisRequest) (*AnalysisResult, error) {
	logger := workflow.GetLogger(ctx)

	statNames := request.Statistics
	if len(statNames) == 0 {
		for _, s := range sea.DefaultStatistics() {
			statNames = append(statNames, s.Name)
		}
	}

	// Start all statistic activities before blocking on any of them
	futures := make([]workflow.Future, len(statNames))
	for i, name := range statNames {
		futures[i] = workflow.ExecuteActivity(ctx, ComputeStatisticActivityName, csvData, request, name)
	}

	partials := make([]*AnalysisResult, len(statNames))
	for i, future := range futures {
		if err := future.Get(ctx, &partials[i]); err != nil {
			return nil, fmt.Errorf("statistic %q failed: %w", statNames[i], err)
		}
	}

	result := assembleStatisticResults(partials)
	logger.Info("Per-statistic analysis completed", "statistics", len(statNames), "columns", len(result.Table.Names))
	return result, nil
}

// assembleStatisticResults merges per-statistic partial results into one
// table. Partials share the same axis and analyzed columns; their table
// columns and metadata statistics concatenate in fan-out order.
func assembleStatisticResults(partials []*AnalysisResult) *AnalysisResult {
	first := partials[0]

	merged := &AnalysisResult{
		Table: &sea.Table{
			Index:   first.Table.Index,
			Columns: make(map[string][]float64),
		},
		Meta: sea.Meta{
			Cols: first.Meta.Cols,
			Y:    first.Meta.Y,
		},
	}

	for _, partial := range partials {
		for _, name := range partial.Table.Names {
			merged.Table.Names = append(merged.Table.Names, name)
			merged.Table.Columns[name] = partial.Table.Columns[name]
		}
		merged.Meta.Statistics = append(merged.Meta.Statistics, partial.Meta.Statistics...)
	}
	return merged
}

// ProfileWorkflow loads a dataset and returns descriptive column profiles
func ProfileWorkflow(ctx workflow.Context, request ProfileRequest) ([]sea.ColumnProfile, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting profile workflow", "datasetID", request.DatasetID)

	ao := workflow.ActivityOptions{
		ScheduleToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	var csvData []byte
	err := workflow.ExecuteActivity(ctx, LoadDatasetActivityName, request.DatasetID).Get(ctx, &csvData)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	var profiles []sea.ColumnProfile
	err = workflow.ExecuteActivity(ctx, ProfileDatasetActivityName, csvData, request.Cols).Get(ctx, &profiles)
	if err != nil {
		return nil, fmt.Errorf("failed to profile dataset: %w", err)
	}
	return profiles, nil
}

// Utility functions for workflow IDs

// GenerateAnalysisWorkflowID creates a unique workflow ID for one analysis run
func GenerateAnalysisWorkflowID(datasetID string) string {
	return fmt.Sprintf("%s%s-%s", AnalysisWorkflowIDPrefix, datasetID, uuid.NewString())
}

// GenerateProfileWorkflowID creates a unique workflow ID for one profile run
func GenerateProfileWorkflowID(datasetID string) string {
	return fmt.Sprintf("%s%s-%s", ProfileWorkflowIDPrefix, datasetID, uuid.NewString())
}
