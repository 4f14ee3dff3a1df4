// Package source provides the record sources that feed the aggregation
// engine. The engine's only contract with a source is "a list of
// classification records in"; date filtering, pagination, and retries all
// live here, never in the fold.
package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oldg9516/ai-agents-stats/internal/model"
)

// ErrUnknownDriver is returned for an unrecognized source driver name.
var ErrUnknownDriver = errors.New("unknown source driver")

// Query bounds one paginated read of reviewed records.
type Query struct {
	// From and To bound CreatedAt. Zero values leave the bound open.
	From time.Time
	To   time.Time

	// Category restricts the read to one raw category value. Empty means
	// all categories. Note this matches the stored value, not the
	// normalized key; "Unknown" rows are reachable only without a filter.
	Category string

	// Limit and Offset page the read. Limit <= 0 means the source default.
	Limit  int
	Offset int
}

// Source is a paginated reader of reviewed records.
type Source interface {
	// Fetch returns one page of records matching the query.
	Fetch(ctx context.Context, q Query) ([]model.ClassificationRecord, error)

	// Close releases the source's resources.
	Close() error
}

// Open builds a source from configuration.
func Open(ctx context.Context, cfg model.SourceConfig) (Source, error) {
	switch cfg.Driver {
	case "file":
		return NewFileSource(cfg.Path), nil
	case "sqlite":
		return OpenSQLite(cfg.Path, cfg.PageSize)
	case "postgres":
		return OpenPostgres(ctx, cfg.DSN, cfg.PageSize)
	default:
		return nil, fmt.Errorf("%w: %q (supported: file, sqlite, postgres)", ErrUnknownDriver, cfg.Driver)
	}
}

// key returns a stable cache-key fragment for the query.
func (q Query) Key() string {
	return fmt.Sprintf("%d:%d:%s:%d:%d", q.From.Unix(), q.To.Unix(), q.Category, q.Limit, q.Offset)
}
