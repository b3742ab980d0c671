package ingest

import (
	"context"
	"fmt"
	"os"
)

// FileSource reads a CSV table from disk.
type FileSource struct {
	Path string
}

func (f *FileSource) Name() string { return f.Path }

func (f *FileSource) Fetch(_ context.Context) ([][]string, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer file.Close()
	return parseCSV(file)
}
