package hcl

import (
	"bytes"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectContentType_Header(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		expected    string
	}{
		{
			name:        "explicit hcl header",
			contentType: ContentTypeHCL,
			body:        `dataset_id = "storms-2020"`,
			expected:    ContentTypeHCL,
		},
		{
			name:        "explicit json header",
			contentType: ContentTypeJSON,
			body:        `{"dataset_id":"storms-2020"}`,
			expected:    ContentTypeJSON,
		},
		{
			name:        "no header, json body",
			contentType: "",
			body:        `{"dataset_id":"storms-2020"}`,
			expected:    ContentTypeJSON,
		},
		{
			name:        "no header, hcl body",
			contentType: "",
			body:        `dataset_id = "storms-2020"`,
			expected:    ContentTypeHCL,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/datasets/storms-2020/analyze", bytes.NewBufferString(tc.body))
			if tc.contentType != "" {
				req.Header.Set("Content-Type", tc.contentType)
			}

			detected, err := DetectContentType(req)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, detected)
		})
	}
}

// Content sniffing must leave the body readable for the handler
func TestDetectContentType_BodyPreserved(t *testing.T) {
	body := `dataset_id = "storms-2020"`
	req := httptest.NewRequest("POST", "/datasets/storms-2020/analyze", bytes.NewBufferString(body))

	_, err := DetectContentType(req)
	require.NoError(t, err)

	replayed, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	assert.Equal(t, body, string(replayed))
}

func TestIsHCLBasedOnExtension(t *testing.T) {
	assert.True(t, IsHCLBasedOnExtension("analysis.hcl"))
	assert.False(t, IsHCLBasedOnExtension("analysis.json"))
}
