package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Source fetches an income table as tabular text split into records.
type Source interface {
	Fetch(ctx context.Context) ([][]string, error)
	Name() string
}

// NewSource picks a source from a location string: "" or "builtin" means no
// external source (nil), http(s) URLs use HTTPSource, anything else is a file.
func NewSource(location, proxyURL string) Source {
	loc := strings.TrimSpace(location)
	switch {
	case loc == "" || strings.EqualFold(loc, "builtin"):
		return nil
	case strings.HasPrefix(loc, "http://") || strings.HasPrefix(loc, "https://"):
		return NewHTTPSource(loc, proxyURL)
	default:
		return &FileSource{Path: loc}
	}
}

// StaticSource returns fixed records; useful for tests and embedded tables.
type StaticSource struct {
	Label   string
	Records [][]string
	Err     error
}

func (s *StaticSource) Name() string {
	if s.Label == "" {
		return "static"
	}
	return s.Label
}

func (s *StaticSource) Fetch(_ context.Context) ([][]string, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Records, nil
}

// parseCSV splits comma-separated text into records. Rows may have differing
// field counts; the table loader decides what is usable.
func parseCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], "\ufeff")
	}
	return records, nil
}
