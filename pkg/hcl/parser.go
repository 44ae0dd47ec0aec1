package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"

	"github.com/leowmjw/go-sea-norm/pkg/sea"
	"github.com/leowmjw/go-sea-norm/pkg/temporal"
)

// HCLAnalysisRequest represents the HCL analysis request structure
type HCLAnalysisRequest struct {
	DatasetID      string     `hcl:"dataset_id"`
	XDimensions    []int      `hcl:"x_dimensions"`
	Cols           []string   `hcl:"cols,optional"`
	Stats          []string   `hcl:"stats,optional"`
	ProcessingMode *string    `hcl:"processing_mode,optional"`
	Events         []HCLEvent `hcl:"event,block"`
	YAxis          *HCLYAxis  `hcl:"y_axis,block"`
}

// HCLEvent is one event block: three timestamps bounding its two phases
type HCLEvent struct {
	Start string `hcl:"start"`
	Epoch string `hcl:"epoch"`
	End   string `hcl:"end"`
}

// HCLYAxis is the optional second binning axis. Its presence switches the
// analysis to 2D mode.
type HCLYAxis struct {
	Col     string  `hcl:"col"`
	Min     float64 `hcl:"min"`
	Max     float64 `hcl:"max"`
	Spacing float64 `hcl:"spacing"`
}

// HCLProfileRequest represents a dataset profile request in HCL
type HCLProfileRequest struct {
	DatasetID string   `hcl:"dataset_id"`
	Cols      []string `hcl:"cols,optional"`
}

// newEvalContext builds the evaluation context shared by all request kinds
func newEvalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{},
		Functions: map[string]function.Function{
			"timestamp": function.New(&function.Spec{
				Params: []function.Parameter{
					{
						Name: "timestamp",
						Type: cty.String,
					},
				},
				Type: function.StaticReturnType(cty.String),
				Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
					return args[0], nil
				},
			}),
		},
	}
}

// ParseAnalysisRequest parses HCL content and converts it to a
// temporal.AnalysisRequest
func ParseAnalysisRequest(hclContent string) (*temporal.AnalysisRequest, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL([]byte(hclContent), "analysis.hcl")
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}

	var hclReq HCLAnalysisRequest
	diags = gohcl.DecodeBody(file.Body, newEvalContext(), &hclReq)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL body: %s", diags.Error())
	}

	if len(hclReq.XDimensions) != 2 {
		return nil, fmt.Errorf("x_dimensions must have exactly 2 entries, got %d", len(hclReq.XDimensions))
	}
	if len(hclReq.Events) == 0 {
		return nil, fmt.Errorf("analysis request must include at least one event block")
	}

	request := &temporal.AnalysisRequest{
		DatasetID:   hclReq.DatasetID,
		XDimensions: [2]int{hclReq.XDimensions[0], hclReq.XDimensions[1]},
		Cols:        hclReq.Cols,
		Statistics:  hclReq.Stats,
		Events:      make([]temporal.EventSpec, 0, len(hclReq.Events)),
	}

	for _, hclEvent := range hclReq.Events {
		request.Events = append(request.Events, temporal.EventSpec{
			Start: hclEvent.Start,
			Epoch: hclEvent.Epoch,
			End:   hclEvent.End,
		})
	}

	if hclReq.YAxis != nil {
		request.YCol = hclReq.YAxis.Col
		request.YDimensions = &sea.YDimensions{
			Min:     hclReq.YAxis.Min,
			Max:     hclReq.YAxis.Max,
			Spacing: hclReq.YAxis.Spacing,
		}
	}

	if hclReq.ProcessingMode != nil {
		request.ProcessingMode = *hclReq.ProcessingMode
	}

	return request, nil
}

// ParseProfileRequest parses HCL content and converts it to a
// temporal.ProfileRequest
func ParseProfileRequest(hclContent string) (*temporal.ProfileRequest, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL([]byte(hclContent), "profile.hcl")
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}

	var hclReq HCLProfileRequest
	diags = gohcl.DecodeBody(file.Body, newEvalContext(), &hclReq)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL body: %s", diags.Error())
	}

	return &temporal.ProfileRequest{
		DatasetID: hclReq.DatasetID,
		Cols:      hclReq.Cols,
	}, nil
}

// IsHCL attempts to detect if the given content is in HCL format
func IsHCL(content []byte) bool {
	_, err := hclsyntax.ParseConfig(content, "", hcl.Pos{Line: 1, Column: 1})
	return err == nil
}
