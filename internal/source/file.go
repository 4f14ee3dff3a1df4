package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/oldg9516/ai-agents-stats/internal/model"
)

// FileSource reads reviewed records from a JSON snapshot: a top-level array
// of records, the shape produced by the dashboard's export.
type FileSource struct {
	path string
}

// NewFileSource creates a file-backed record source.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Fetch loads the snapshot and applies the query filters in memory. A
// top-level value that is not an array is an input-shape error.
func (s *FileSource) Fetch(ctx context.Context, q Query) ([]model.ClassificationRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", s.path, err)
	}

	var records []model.ClassificationRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", s.path, err)
	}

	return filterPage(records, q), nil
}

// Close is a no-op for file snapshots.
func (s *FileSource) Close() error { return nil }

func filterPage(records []model.ClassificationRecord, q Query) []model.ClassificationRecord {
	filtered := make([]model.ClassificationRecord, 0, len(records))
	for _, r := range records {
		if !q.From.IsZero() && r.CreatedAt.Before(q.From) {
			continue
		}
		if !q.To.IsZero() && !r.CreatedAt.Before(q.To) {
			continue
		}
		if q.Category != "" && (r.Category == nil || *r.Category != q.Category) {
			continue
		}
		filtered = append(filtered, r)
	}

	if q.Offset > 0 {
		if q.Offset >= len(filtered) {
			return []model.ClassificationRecord{}
		}
		filtered = filtered[q.Offset:]
	}
	if q.Limit > 0 && q.Limit < len(filtered) {
		filtered = filtered[:q.Limit]
	}
	return filtered
}
