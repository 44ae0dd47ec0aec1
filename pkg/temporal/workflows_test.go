package temporal

import (
	"strings"
	"testing"
)

func TestGenerateAnalysisWorkflowID(t *testing.T) {
	workflowID := GenerateAnalysisWorkflowID("dataset-123")

	if !strings.HasPrefix(workflowID, AnalysisWorkflowIDPrefix+"dataset-123-") {
		t.Errorf("Analysis workflow ID should contain prefix and dataset ID, got '%s'", workflowID)
	}

	// Each run gets a distinct ID
	if workflowID == GenerateAnalysisWorkflowID("dataset-123") {
		t.Error("Expected unique workflow IDs for successive runs")
	}
}

func TestGenerateProfileWorkflowID(t *testing.T) {
	workflowID := GenerateProfileWorkflowID("dataset-123")

	if !strings.HasPrefix(workflowID, ProfileWorkflowIDPrefix+"dataset-123-") {
		t.Errorf("Profile workflow ID should contain prefix and dataset ID, got '%s'", workflowID)
	}
}

func TestParseEvents(t *testing.T) {
	specs := []EventSpec{
		{Start: "2025-01-01T12:00:00Z", Epoch: "2025-01-01T12:01:00Z", End: "2025-01-01T12:03:00Z"},
	}

	events, err := ParseEvents(specs)
	if err != nil {
		t.Fatalf("ParseEvents failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(events))
	}
	if !events[0].Epoch.After(events[0].Start) || !events[0].End.After(events[0].Epoch) {
		t.Errorf("Parsed event out of order: %+v", events[0])
	}
}

func TestParseEvents_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		specs []EventSpec
	}{
		{
			name:  "malformed timestamp",
			specs: []EventSpec{{Start: "noon", Epoch: "2025-01-01T12:01:00Z", End: "2025-01-01T12:03:00Z"}},
		},
		{
			name:  "epoch before start",
			specs: []EventSpec{{Start: "2025-01-01T12:01:00Z", Epoch: "2025-01-01T12:00:00Z", End: "2025-01-01T12:03:00Z"}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseEvents(tc.specs); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestAssembleStatisticResults(t *testing.T) {
	partials := []*AnalysisResult{
		analysisResultFixture("v_mean", []float64{3, 4, 4, 5.5}, "mean"),
		analysisResultFixture("v_cnt", []float64{2, 2, 2, 4}, "cnt"),
	}

	merged := assembleStatisticResults(partials)

	if len(merged.Table.Names) != 2 {
		t.Fatalf("Expected 2 merged columns, got %v", merged.Table.Names)
	}
	if merged.Table.Names[0] != "v_mean" || merged.Table.Names[1] != "v_cnt" {
		t.Errorf("Merged columns out of order: %v", merged.Table.Names)
	}
	if len(merged.Meta.Statistics) != 2 || merged.Meta.Statistics[1].Name != "cnt" {
		t.Errorf("Merged statistics out of order: %v", merged.Meta.Statistics)
	}
	if cnt, ok := merged.Table.Column("v_cnt"); !ok || cnt[3] != 4 {
		t.Errorf("Merged table lost column values")
	}
}
