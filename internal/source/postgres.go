package source

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oldg9516/ai-agents-stats/internal/model"
	"github.com/oldg9516/ai-agents-stats/internal/taxonomy"
)

// PostgresSource reads reviewed records from the hosted relational backend.
// Same encoding conventions as the sqlite snapshot: verification presence is
// a non-NULL primary_judgment_correct, correction NULL means accepted.
type PostgresSource struct {
	pool     *pgxpool.Pool
	pageSize int
}

// OpenPostgres connects a pooled reader to the backend.
func OpenPostgres(ctx context.Context, dsn string, pageSize int) (*PostgresSource, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if pageSize <= 0 {
		pageSize = 5000
	}
	return &PostgresSource{pool: pool, pageSize: pageSize}, nil
}

// Fetch returns one page of records ordered by creation time.
func (s *PostgresSource) Fetch(ctx context.Context, q Query) ([]model.ClassificationRecord, error) {
	var (
		conds []string
		args  []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if !q.From.IsZero() {
		conds = append(conds, "created_at >= "+arg(q.From.UTC()))
	}
	if !q.To.IsZero() {
		conds = append(conds, "created_at < "+arg(q.To.UTC()))
	}
	if q.Category != "" {
		conds = append(conds, "category = "+arg(q.Category))
	}

	query := `SELECT id, category, sub_category, ai_predicted_types,
		primary_judgment_correct, correction, classification, created_at
		FROM reviewed_records`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	limit := q.Limit
	if limit <= 0 {
		limit = s.pageSize
	}
	query += " ORDER BY created_at, id LIMIT " + arg(limit) + " OFFSET " + arg(q.Offset)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reviewed_records: %w", err)
	}
	defer rows.Close()

	var records []model.ClassificationRecord
	for rows.Next() {
		var (
			rec            model.ClassificationRecord
			predicted      []byte
			primaryCorrect *bool
			correction     []byte
			classification string
			createdAt      time.Time
		)
		if err := rows.Scan(&rec.ID, &rec.Category, &rec.SubCategory, &predicted,
			&primaryCorrect, &correction, &classification, &createdAt); err != nil {
			return nil, fmt.Errorf("scan reviewed_records row: %w", err)
		}
		if len(predicted) > 0 {
			if err := json.Unmarshal(predicted, &rec.AIPredictedTypes); err != nil {
				return nil, fmt.Errorf("record %s: decode ai_predicted_types: %w", rec.ID, err)
			}
		}
		if primaryCorrect != nil {
			v := &model.Verification{PrimaryJudgmentCorrect: *primaryCorrect}
			if correction != nil {
				if err := json.Unmarshal(correction, &v.Correction); err != nil {
					return nil, fmt.Errorf("record %s: decode correction: %w", rec.ID, err)
				}
				if v.Correction == nil {
					v.Correction = []taxonomy.ClassificationType{}
				}
			}
			rec.Verification = v
		}
		rec.Classification = taxonomy.ClassificationType(classification)
		rec.CreatedAt = createdAt
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviewed_records: %w", err)
	}
	return records, nil
}

// Close releases the connection pool.
func (s *PostgresSource) Close() error {
	s.pool.Close()
	return nil
}
