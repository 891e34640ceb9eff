package catalog

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/helmcode/healthai/pkg/model"
)

//go:embed schema.sql
var schemaSQL string

// Querier is the read side of a pgx pool or connection.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// TxBeginner opens transactions; *pgxpool.Pool satisfies it.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

const (
	symptomCols   = `name, category, tags, specialists, severity, description, precautions, tests`
	conditionCols = `symptoms, name, urgency, description, outcomes`
	labCols       = `name, keywords, min_value, unit, indication, suggestions, specialist`
)

// LoadPostgres reads the catalog tables, each ordered by position, and validates
// them exactly like a file-backed catalog.
func LoadPostgres(ctx context.Context, q Querier) (*Store, error) {
	symptoms, err := querySymptoms(ctx, q)
	if err != nil {
		return nil, err
	}
	conditions, err := queryConditions(ctx, q)
	if err != nil {
		return nil, err
	}
	labs, err := queryLabs(ctx, q)
	if err != nil {
		return nil, err
	}
	return New(symptoms, conditions, labs)
}

func querySymptoms(ctx context.Context, q Querier) ([]model.SymptomRecord, error) {
	rows, err := q.Query(ctx, `SELECT `+symptomCols+` FROM symptom ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query symptoms: %w", err)
	}
	defer rows.Close()

	var out []model.SymptomRecord
	for rows.Next() {
		var s model.SymptomRecord
		var severity string
		if err := rows.Scan(&s.Name, &s.Category, &s.Tags, &s.Specialists, &severity,
			&s.Description, &s.Precautions, &s.Tests); err != nil {
			return nil, fmt.Errorf("scan symptom: %w", err)
		}
		s.Severity = model.Severity(severity)
		out = append(out, s)
	}
	return out, rows.Err()
}

func queryConditions(ctx context.Context, q Querier) ([]model.ConditionPattern, error) {
	rows, err := q.Query(ctx, `SELECT `+conditionCols+` FROM condition_pattern ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query condition patterns: %w", err)
	}
	defer rows.Close()

	var out []model.ConditionPattern
	for rows.Next() {
		var c model.ConditionPattern
		var urgency string
		if err := rows.Scan(&c.Symptoms, &c.Name, &urgency, &c.Description, &c.Outcomes); err != nil {
			return nil, fmt.Errorf("scan condition pattern: %w", err)
		}
		c.Urgency = model.Severity(urgency)
		out = append(out, c)
	}
	return out, rows.Err()
}

func queryLabs(ctx context.Context, q Querier) ([]model.LabReferenceEntry, error) {
	rows, err := q.Query(ctx, `SELECT `+labCols+` FROM lab_reference ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query lab references: %w", err)
	}
	defer rows.Close()

	var out []model.LabReferenceEntry
	for rows.Next() {
		var l model.LabReferenceEntry
		if err := rows.Scan(&l.Name, &l.Keywords, &l.Min, &l.Unit, &l.Indication,
			&l.Suggestions, &l.Specialist); err != nil {
			return nil, fmt.Errorf("scan lab reference: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// SyncPostgres replaces the contents of the catalog tables with s in a single
// transaction, creating the tables first when needed.
func SyncPostgres(ctx context.Context, db TxBeginner, s *Store) (err error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin catalog sync: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err = tx.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create catalog schema: %w", err)
	}
	for _, table := range []string{"symptom", "condition_pattern", "lab_reference"} {
		if _, err = tx.Exec(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for i, sym := range s.symptoms {
		if err = execInsert(ctx, tx, `INSERT INTO symptom (position, `+symptomCols+`)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
			i, sym.Name, sym.Category, sym.Tags, sym.Specialists, string(sym.Severity),
			sym.Description, sym.Precautions, sym.Tests); err != nil {
			return fmt.Errorf("insert symptom %q: %w", sym.Name, err)
		}
	}
	for i, c := range s.conditions {
		if err = execInsert(ctx, tx, `INSERT INTO condition_pattern (position, `+conditionCols+`)
			VALUES ($1,$2,$3,$4,$5,$6)`,
			i, c.Symptoms, c.Name, string(c.Urgency), c.Description, c.Outcomes); err != nil {
			return fmt.Errorf("insert condition pattern %q: %w", c.Name, err)
		}
	}
	for i, l := range s.labs {
		if err = execInsert(ctx, tx, `INSERT INTO lab_reference (position, `+labCols+`)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
			i, l.Name, l.Keywords, l.Min, l.Unit, l.Indication, l.Suggestions, l.Specialist); err != nil {
			return fmt.Errorf("insert lab reference %q: %w", l.Name, err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit catalog sync: %w", err)
	}
	return nil
}

func execInsert(ctx context.Context, tx pgx.Tx, sql string, args ...any) error {
	tag, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return fmt.Errorf("expected 1 row affected, got %d", tag.RowsAffected())
	}
	return nil
}
