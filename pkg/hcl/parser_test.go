package hcl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnalysisRequest(t *testing.T) {
	hclContent := `
	# Superposed epoch analysis over a stored dataset
	dataset_id = "storms-2020"

	x_dimensions = [4, 4]
	cols         = ["density", "speed"]
	stats        = ["mean", "cnt"]

	event {
		start = "2020-01-01T00:00:00Z"
		epoch = "2020-01-02T00:00:00Z"
		end   = "2020-01-04T00:00:00Z"
	}

	event {
		start = timestamp("2020-02-10T00:00:00Z")
		epoch = timestamp("2020-02-11T00:00:00Z")
		end   = timestamp("2020-02-13T00:00:00Z")
	}
	`

	request, err := ParseAnalysisRequest(hclContent)
	require.NoError(t, err)
	require.NotNil(t, request)

	assert.Equal(t, "storms-2020", request.DatasetID)
	assert.Equal(t, [2]int{4, 4}, request.XDimensions)
	assert.Equal(t, []string{"density", "speed"}, request.Cols)
	assert.Equal(t, []string{"mean", "cnt"}, request.Statistics)
	assert.Empty(t, request.ProcessingMode)

	require.Len(t, request.Events, 2)
	assert.Equal(t, "2020-01-01T00:00:00Z", request.Events[0].Start)
	assert.Equal(t, "2020-02-11T00:00:00Z", request.Events[1].Epoch)

	// No y_axis block means 1D mode
	assert.Empty(t, request.YCol)
	assert.Nil(t, request.YDimensions)
}

func TestParseAnalysisRequest_TwoDimensional(t *testing.T) {
	hclContent := `
	dataset_id   = "storms-2020"
	x_dimensions = [3, 3]

	processing_mode = "per-statistic"

	event {
		start = "2020-01-01T00:00:00Z"
		epoch = "2020-01-02T00:00:00Z"
		end   = "2020-01-04T00:00:00Z"
	}

	y_axis {
		col     = "bz"
		min     = -10
		max     = 10
		spacing = 2
	}
	`

	request, err := ParseAnalysisRequest(hclContent)
	require.NoError(t, err)

	assert.Equal(t, "per-statistic", request.ProcessingMode)
	assert.Equal(t, "bz", request.YCol)
	require.NotNil(t, request.YDimensions)
	assert.Equal(t, -10.0, request.YDimensions.Min)
	assert.Equal(t, 10.0, request.YDimensions.Max)
	assert.Equal(t, 2.0, request.YDimensions.Spacing)
}

func TestParseAnalysisRequest_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "not hcl at all",
			content: `{{{{`,
		},
		{
			name: "missing dataset_id",
			content: `
			x_dimensions = [4, 4]
			event {
				start = "2020-01-01T00:00:00Z"
				epoch = "2020-01-02T00:00:00Z"
				end   = "2020-01-04T00:00:00Z"
			}
			`,
		},
		{
			name: "wrong x_dimensions length",
			content: `
			dataset_id   = "storms-2020"
			x_dimensions = [4]
			event {
				start = "2020-01-01T00:00:00Z"
				epoch = "2020-01-02T00:00:00Z"
				end   = "2020-01-04T00:00:00Z"
			}
			`,
		},
		{
			name: "no events",
			content: `
			dataset_id   = "storms-2020"
			x_dimensions = [4, 4]
			`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseAnalysisRequest(tc.content)
			assert.Error(t, err)
		})
	}
}

func TestParseProfileRequest(t *testing.T) {
	hclContent := `
	dataset_id = "storms-2020"
	cols       = ["density"]
	`

	request, err := ParseProfileRequest(hclContent)
	require.NoError(t, err)
	assert.Equal(t, "storms-2020", request.DatasetID)
	assert.Equal(t, []string{"density"}, request.Cols)
}

func TestIsHCL(t *testing.T) {
	assert.True(t, IsHCL([]byte(`dataset_id = "storms-2020"`)))
	assert.False(t, IsHCL([]byte(`{{{{`)))
}
