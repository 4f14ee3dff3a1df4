package source

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/oldg9516/ai-agents-stats/internal/model"
	"github.com/oldg9516/ai-agents-stats/internal/taxonomy"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS reviewed_records (
	id                       TEXT PRIMARY KEY,
	category                 TEXT,
	sub_category             TEXT,
	ai_predicted_types       TEXT NOT NULL DEFAULT '[]',
	primary_judgment_correct INTEGER,
	correction               TEXT,
	classification           TEXT NOT NULL DEFAULT '',
	created_at               TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reviewed_records_created_at
	ON reviewed_records (created_at);
CREATE INDEX IF NOT EXISTS idx_reviewed_records_category
	ON reviewed_records (category);
`

// SQLiteSource reads reviewed records from a local snapshot database.
// Verification presence is encoded by primary_judgment_correct being non-NULL;
// the null-vs-empty correction distinction is encoded as NULL vs '[]'.
type SQLiteSource struct {
	db       *sqlx.DB
	pageSize int
}

// OpenSQLite opens (and if needed bootstraps) a snapshot database.
func OpenSQLite(path string, pageSize int) (*SQLiteSource, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("bootstrap sqlite schema: %w", err)
	}
	if pageSize <= 0 {
		pageSize = 5000
	}
	return &SQLiteSource{db: db, pageSize: pageSize}, nil
}

type sqliteRow struct {
	ID                     string         `db:"id"`
	Category               sql.NullString `db:"category"`
	SubCategory            sql.NullString `db:"sub_category"`
	AIPredictedTypes       string         `db:"ai_predicted_types"`
	PrimaryJudgmentCorrect sql.NullBool   `db:"primary_judgment_correct"`
	Correction             sql.NullString `db:"correction"`
	Classification         string         `db:"classification"`
	CreatedAt              string         `db:"created_at"`
}

// Fetch returns one page of records ordered by creation time.
func (s *SQLiteSource) Fetch(ctx context.Context, q Query) ([]model.ClassificationRecord, error) {
	var (
		conds []string
		args  []interface{}
	)
	if !q.From.IsZero() {
		conds = append(conds, "created_at >= ?")
		args = append(args, q.From.UTC().Format(time.RFC3339Nano))
	}
	if !q.To.IsZero() {
		conds = append(conds, "created_at < ?")
		args = append(args, q.To.UTC().Format(time.RFC3339Nano))
	}
	if q.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, q.Category)
	}

	query := "SELECT id, category, sub_category, ai_predicted_types, primary_judgment_correct, correction, classification, created_at FROM reviewed_records"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	limit := q.Limit
	if limit <= 0 {
		limit = s.pageSize
	}
	query += " ORDER BY created_at, id LIMIT ? OFFSET ?"
	args = append(args, limit, q.Offset)

	var rows []sqliteRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query reviewed_records: %w", err)
	}

	records := make([]model.ClassificationRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := row.toRecord()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func (r sqliteRow) toRecord() (model.ClassificationRecord, error) {
	rec := model.ClassificationRecord{
		ID:             r.ID,
		Classification: taxonomy.ClassificationType(r.Classification),
	}
	if r.Category.Valid {
		rec.Category = &r.Category.String
	}
	if r.SubCategory.Valid {
		rec.SubCategory = &r.SubCategory.String
	}
	if err := json.Unmarshal([]byte(r.AIPredictedTypes), &rec.AIPredictedTypes); err != nil {
		return rec, fmt.Errorf("record %s: decode ai_predicted_types: %w", r.ID, err)
	}
	if r.PrimaryJudgmentCorrect.Valid {
		v := &model.Verification{PrimaryJudgmentCorrect: r.PrimaryJudgmentCorrect.Bool}
		if r.Correction.Valid {
			if err := json.Unmarshal([]byte(r.Correction.String), &v.Correction); err != nil {
				return rec, fmt.Errorf("record %s: decode correction: %w", r.ID, err)
			}
			if v.Correction == nil {
				v.Correction = []taxonomy.ClassificationType{}
			}
		}
		rec.Verification = v
	}
	if t, err := time.Parse(time.RFC3339Nano, r.CreatedAt); err == nil {
		rec.CreatedAt = t
	}
	return rec, nil
}

// Insert writes one record into the snapshot. Used by snapshot tooling and
// tests; the aggregation engine itself never writes.
func (s *SQLiteSource) Insert(ctx context.Context, rec model.ClassificationRecord) error {
	types, err := json.Marshal(rec.AIPredictedTypes)
	if err != nil {
		return fmt.Errorf("encode ai_predicted_types: %w", err)
	}

	var primary sql.NullBool
	var correction sql.NullString
	if v := rec.Verification; v != nil {
		primary = sql.NullBool{Bool: v.PrimaryJudgmentCorrect, Valid: true}
		if v.Corrected() {
			data, err := json.Marshal(v.Correction)
			if err != nil {
				return fmt.Errorf("encode correction: %w", err)
			}
			correction = sql.NullString{String: string(data), Valid: true}
		}
	}

	var category, subCategory sql.NullString
	if rec.Category != nil {
		category = sql.NullString{String: *rec.Category, Valid: true}
	}
	if rec.SubCategory != nil {
		subCategory = sql.NullString{String: *rec.SubCategory, Valid: true}
	}

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO reviewed_records
			(id, category, sub_category, ai_predicted_types, primary_judgment_correct, correction, classification, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, category, subCategory, string(types), primary, correction,
		string(rec.Classification), createdAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert record %s: %w", rec.ID, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteSource) Close() error { return s.db.Close() }
