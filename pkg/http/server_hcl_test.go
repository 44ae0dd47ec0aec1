package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	sdkMocks "go.temporal.io/sdk/mocks"

	"github.com/leowmjw/go-sea-norm/pkg/hcl"
	"github.com/leowmjw/go-sea-norm/pkg/sea"
	"github.com/leowmjw/go-sea-norm/pkg/temporal"
)

const hclAnalysisBody = `
dataset_id   = "ignored-by-path"
x_dimensions = [4, 4]
cols         = ["density"]

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

func TestServer_handleAnalyze_HCLBody(t *testing.T) {
	server, mockClient := newTestServer(t)

	mockRun := &sdkMocks.WorkflowRun{}
	mockRun.On("Get", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		ptr := args.Get(1).(**temporal.AnalysisResult)
		*ptr = &temporal.AnalysisResult{Table: &sea.Table{}}
	}).Return(nil).Once()

	mockClient.On("ExecuteWorkflow",
		mock.Anything,
		mock.Anything,
		mock.Anything,
		mock.MatchedBy(func(request temporal.AnalysisRequest) bool {
			// The path segment overrides the body's dataset_id
			return request.DatasetID == "storms-2020" &&
				request.XDimensions == [2]int{4, 4} &&
				request.YCol == "bz" &&
				request.YDimensions != nil &&
				request.YDimensions.Spacing == 2
		}),
	).Return(mockRun, nil).Once()

	req := httptest.NewRequest("POST", "/datasets/storms-2020/analyze", bytes.NewBufferString(hclAnalysisBody))
	req.Header.Set("Content-Type", hcl.ContentTypeHCL)
	rr := httptest.NewRecorder()
	analyzeMux(server).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	mockClient.AssertExpectations(t)
	mockRun.AssertExpectations(t)
}

// HCL request bodies are detected by content even without a Content-Type
// header
func TestServer_handleAnalyze_HCLSniffed(t *testing.T) {
	server, mockClient := newTestServer(t)

	mockRun := &sdkMocks.WorkflowRun{}
	mockRun.On("Get", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		ptr := args.Get(1).(**temporal.AnalysisResult)
		*ptr = &temporal.AnalysisResult{Table: &sea.Table{}}
	}).Return(nil).Once()

	mockClient.On("ExecuteWorkflow",
		mock.Anything,
		mock.Anything,
		mock.Anything,
		mock.MatchedBy(func(request temporal.AnalysisRequest) bool {
			return request.DatasetID == "storms-2020" && len(request.Events) == 1
		}),
	).Return(mockRun, nil).Once()

	req := httptest.NewRequest("POST", "/datasets/storms-2020/analyze", bytes.NewBufferString(hclAnalysisBody))
	rr := httptest.NewRecorder()
	analyzeMux(server).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	mockClient.AssertExpectations(t)
}

func TestServer_handleAnalyze_InvalidHCL(t *testing.T) {
	server, _ := newTestServer(t)

	body := `dataset_id = "storms-2020"` // no x_dimensions, no events

	req := httptest.NewRequest("POST", "/datasets/storms-2020/analyze", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", hcl.ContentTypeHCL)
	rr := httptest.NewRecorder()
	analyzeMux(server).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestServer_handleProfile_HCLBody(t *testing.T) {
	server, mockClient := newTestServer(t)

	mockRun := &sdkMocks.WorkflowRun{}
	mockRun.On("Get", mock.Anything, mock.Anything).Return(nil).Once()
	mockClient.On("ExecuteWorkflow",
		mock.Anything,
		mock.Anything,
		mock.Anything,
		mock.MatchedBy(func(request temporal.ProfileRequest) bool {
			return request.DatasetID == "storms-2020" && len(request.Cols) == 1
		}),
	).Return(mockRun, nil).Once()

	body := `
	dataset_id = "storms-2020"
	cols       = ["density"]
	`
	req := httptest.NewRequest("POST", "/datasets/storms-2020/profile", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()
	analyzeMux(server).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	mockClient.AssertExpectations(t)
}
