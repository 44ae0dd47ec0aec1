package temporal

import (
	"fmt"
	"time"

	"github.com/leowmjw/go-sea-norm/pkg/sea"
)

// EventSpec is the wire form of one event: three RFC3339 timestamps bounding
// its two phases.
type EventSpec struct {
	Start string `json:"start"`
	Epoch string `json:"epoch"`
	End   string `json:"end"`
}

// Parse converts the wire form to an engine event
func (e EventSpec) Parse() (sea.Event, error) {
	start, err := time.Parse(time.RFC3339, e.Start)
	if err != nil {
		return sea.Event{}, fmt.Errorf("invalid start time %q: %w", e.Start, err)
	}
	epoch, err := time.Parse(time.RFC3339, e.Epoch)
	if err != nil {
		return sea.Event{}, fmt.Errorf("invalid epoch time %q: %w", e.Epoch, err)
	}
	end, err := time.Parse(time.RFC3339, e.End)
	if err != nil {
		return sea.Event{}, fmt.Errorf("invalid end time %q: %w", e.End, err)
	}
	if epoch.Before(start) || end.Before(epoch) {
		return sea.Event{}, fmt.Errorf("event times out of order: start %s, epoch %s, end %s", e.Start, e.Epoch, e.End)
	}
	return sea.Event{Start: start, Epoch: epoch, End: end}, nil
}

// ParseEvents converts a full event list, surfacing the index of the first
// malformed spec.
func ParseEvents(specs []EventSpec) ([]sea.Event, error) {
	events := make([]sea.Event, len(specs))
	for i, spec := range specs {
		event, err := spec.Parse()
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		events[i] = event
	}
	return events, nil
}

// AnalysisRequest is a superposed epoch analysis request against a stored
// dataset.
type AnalysisRequest struct {
	DatasetID   string           `json:"dataset_id"`
	Events      []EventSpec      `json:"events"`
	XDimensions [2]int           `json:"x_dimensions"`
	Cols        []string         `json:"cols,omitempty"`
	Statistics  []string         `json:"stats,omitempty"`
	YCol        string           `json:"y_col,omitempty"`
	YDimensions *sea.YDimensions `json:"y_dimensions,omitempty"`

	// ProcessingMode selects "single" (one activity runs the whole
	// analysis) or "per-statistic" (one activity per statistic, assembled
	// in request order). Empty means single.
	ProcessingMode string `json:"processing_mode,omitempty"`
}

// AnalysisProgress is the heartbeat payload an analysis activity records
// before the compute step
type AnalysisProgress struct {
	DatasetID string `json:"dataset_id"`
	Rows      int    `json:"rows"`
	Events    int    `json:"events"`
}

// AnalysisResult is the outcome of one analysis run
type AnalysisResult struct {
	Table *sea.Table `json:"table"`
	Meta  sea.Meta   `json:"meta"`
}

// ProfileRequest asks for descriptive column profiles of a stored dataset
type ProfileRequest struct {
	DatasetID string   `json:"dataset_id"`
	Cols      []string `json:"cols,omitempty"`
}
