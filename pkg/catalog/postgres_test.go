package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ── Fakes ──

type fakeRows struct {
	data [][]any
	pos  int
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }
func (r *fakeRows) Values() ([]any, error)                       { return r.data[r.pos-1], nil }

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.data) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.data[r.pos-1]
	if len(dest) != len(row) {
		return fmt.Errorf("expected %d destinations, got %d", len(row), len(dest))
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = row[i].(string)
		case *[]string:
			*p = row[i].([]string)
		case *float64:
			*p = row[i].(float64)
		default:
			return fmt.Errorf("unsupported destination %T", d)
		}
	}
	return nil
}

type fakeQuerier struct {
	tables map[string][][]any
	fail   string
}

func (q *fakeQuerier) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	for table, rows := range q.tables {
		if strings.Contains(sql, "FROM "+table+" ") {
			if table == q.fail {
				return nil, errors.New("relation does not exist")
			}
			return &fakeRows{data: rows}, nil
		}
	}
	return &fakeRows{}, nil
}

type fakeTx struct {
	pgx.Tx
	execs      []string
	committed  bool
	rolledBack bool
	failOn     string
}

// Exec rejects nil []string arguments the way PostgreSQL rejects NULL in the
// catalog's NOT NULL array columns.
func (tx *fakeTx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx.failOn != "" && strings.Contains(sql, tx.failOn) {
		return pgconn.CommandTag{}, errors.New("exec failed")
	}
	for i, arg := range args {
		if list, ok := arg.([]string); ok && list == nil {
			return pgconn.CommandTag{}, fmt.Errorf("argument $%d: null value violates not-null constraint", i+1)
		}
	}
	tx.execs = append(tx.execs, sql)
	if strings.HasPrefix(strings.TrimSpace(sql), "INSERT") {
		return pgconn.NewCommandTag("INSERT 0 1"), nil
	}
	return pgconn.NewCommandTag("DELETE 0"), nil
}

func (tx *fakeTx) Commit(context.Context) error   { tx.committed = true; return nil }
func (tx *fakeTx) Rollback(context.Context) error { tx.rolledBack = true; return nil }

type fakeBeginner struct{ tx *fakeTx }

func (b *fakeBeginner) Begin(context.Context) (pgx.Tx, error) { return b.tx, nil }

func sampleTables() map[string][][]any {
	return map[string][][]any{
		"symptom": {
			{"Fever", "General", []string{"hot"}, []string{"General Physician"}, "moderate",
				"High temperature.", []string{"Rest"}, []string{"CBC"}},
			{"Cough", "Respiratory", []string{}, []string{"Pulmonologist"}, "low",
				"", []string{"Steam"}, []string{"Chest X-Ray"}},
		},
		"condition_pattern": {
			{[]string{"Fever", "Cough"}, "Cold", "low", "", []string{"Rest"}},
		},
		"lab_reference": {
			{"Ferritin", []string{"ferritin"}, 30.0, "ng/mL", "Low Iron Stores", []string{"Iron"}, "Hematologist"},
		},
	}
}

// ── Tests ──

func TestLoadPostgres(t *testing.T) {
	s, err := LoadPostgres(context.Background(), &fakeQuerier{tables: sampleTables()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	names := s.SymptomNames()
	if len(names) != 2 || names[0] != "Fever" || names[1] != "Cough" {
		t.Errorf("expected [Fever Cough], got %v", names)
	}
	fever, _ := s.Symptom("Fever")
	if fever.Severity != "moderate" {
		t.Errorf("expected moderate, got %s", fever.Severity)
	}
	if c := s.Conditions(); len(c) != 1 || c[0].Urgency != "low" {
		t.Errorf("unexpected conditions: %+v", c)
	}
	if l := s.LabReferences(); len(l) != 1 || l[0].Min != 30 {
		t.Errorf("unexpected lab references: %+v", l)
	}
}

func TestLoadPostgres_ValidatesRows(t *testing.T) {
	tables := sampleTables()
	tables["lab_reference"] = [][]any{
		{"Ferritin", []string{}, 30.0, "", "", []string{}, ""},
	}
	_, err := LoadPostgres(context.Background(), &fakeQuerier{tables: tables})
	if !errors.Is(err, ErrInvalidCatalog) {
		t.Fatalf("expected ErrInvalidCatalog, got %v", err)
	}
}

func TestLoadPostgres_QueryError(t *testing.T) {
	_, err := LoadPostgres(context.Background(), &fakeQuerier{tables: sampleTables(), fail: "condition_pattern"})
	if err == nil || !strings.Contains(err.Error(), "query condition patterns") {
		t.Fatalf("expected query error, got %v", err)
	}
}

func TestSyncPostgres(t *testing.T) {
	s, err := LoadPostgres(context.Background(), &fakeQuerier{tables: sampleTables()})
	if err != nil {
		t.Fatal(err)
	}
	tx := &fakeTx{}
	if err := SyncPostgres(context.Background(), &fakeBeginner{tx: tx}, s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tx.committed {
		t.Error("expected commit")
	}
	// schema + 3 deletes + 2 symptoms + 1 condition + 1 lab
	if len(tx.execs) != 8 {
		t.Errorf("expected 8 statements, got %d", len(tx.execs))
	}
}

func TestSyncPostgres_RollsBackOnError(t *testing.T) {
	s, err := LoadPostgres(context.Background(), &fakeQuerier{tables: sampleTables()})
	if err != nil {
		t.Fatal(err)
	}
	tx := &fakeTx{failOn: "INSERT INTO condition_pattern"}
	if err := SyncPostgres(context.Background(), &fakeBeginner{tx: tx}, s); err == nil {
		t.Fatal("expected error")
	}
	if tx.committed {
		t.Error("expected no commit")
	}
	if !tx.rolledBack {
		t.Error("expected rollback")
	}
}

func TestSyncPostgres_OmittedListsAreEmptyArrays(t *testing.T) {
	s, err := Parse([]byte(`
symptoms:
  - name: Fever
    category: General
    severity: low
conditions:
  - name: Cold
    symptoms: [Fever, Cough]
    urgency: low
lab_references:
  - name: Ferritin
    keywords: [ferritin]
    min: 30
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	tx := &fakeTx{}
	if err := SyncPostgres(context.Background(), &fakeBeginner{tx: tx}, s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tx.committed {
		t.Error("expected commit")
	}
}
