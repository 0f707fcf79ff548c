package contract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Renderer stores a populated contract body as a document and returns the
// URL the document can be fetched from later.
type Renderer interface {
	Render(ctx context.Context, fileName, content string) (string, error)
}

// FileRenderer writes contract documents as plain text files under a base
// directory. The returned URL is the file path.
type FileRenderer struct {
	dir string
}

// NewFileRenderer constructs a renderer rooted at dir.
func NewFileRenderer(dir string) *FileRenderer {
	return &FileRenderer{dir: dir}
}

// Render writes the document, creating the base directory on first use.
func (r *FileRenderer) Render(_ context.Context, fileName, content string) (string, error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("contract: create documents dir: %w", err)
	}
	path := filepath.Join(r.dir, fileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("contract: write document: %w", err)
	}
	return path, nil
}
