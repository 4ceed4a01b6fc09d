package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ecomart/backend/internal/domain"
)

// FileSource loads catalog rows from a JSON file: either a bare array of
// products or an object with a "products" key (catalog export format).
type FileSource struct {
	path string
}

// NewFileSource creates a file-backed product source.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Path returns the catalog file path being read.
func (f *FileSource) Path() string {
	return f.path
}

// LoadProducts reads and decodes the catalog file.
func (f *FileSource) LoadProducts(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var products []domain.Product
	if err := json.Unmarshal(data, &products); err == nil {
		return products, nil
	}

	var wrapped struct {
		Products []domain.Product `json:"products"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("decode catalog file %s: %w", f.path, err)
	}
	return wrapped.Products, nil
}
