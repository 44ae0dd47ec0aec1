package temporal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// MockStorageService implements StorageService for testing
type MockStorageService struct {
	mu       sync.RWMutex
	datasets map[string][]byte // datasetID -> CSV document
}

// NewMockStorageService creates a new mock storage service
func NewMockStorageService() *MockStorageService {
	return &MockStorageService{
		datasets: make(map[string][]byte),
	}
}

// PutDataset stores a dataset document under the given ID
func (m *MockStorageService) PutDataset(datasetID string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.datasets[datasetID] = data
}

// LoadDataset loads a dataset document from the mock storage
func (m *MockStorageService) LoadDataset(ctx context.Context, datasetID string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, exists := m.datasets[datasetID]
	if !exists {
		return nil, fmt.Errorf("dataset %q not found", datasetID)
	}
	return data, nil
}

// DirectoryStorageService serves datasets from CSV files in a local
// directory. The dataset ID maps to <root>/<id>.csv.
type DirectoryStorageService struct {
	root string
}

// NewDirectoryStorageService creates a storage service rooted at dir
func NewDirectoryStorageService(dir string) *DirectoryStorageService {
	return &DirectoryStorageService{root: dir}
}

// LoadDataset reads the CSV file for the given dataset ID
func (d *DirectoryStorageService) LoadDataset(ctx context.Context, datasetID string) ([]byte, error) {
	if strings.ContainsAny(datasetID, `/\`) || datasetID == "" {
		return nil, fmt.Errorf("invalid dataset ID %q", datasetID)
	}

	path := filepath.Join(d.root, datasetID+".csv")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("dataset %q not found", datasetID)
		}
		return nil, fmt.Errorf("failed to read dataset %q: %w", datasetID, err)
	}
	return data, nil
}
