package archive

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JonMunkholm/candidates/internal/core"
)

// fakeTx records what Archive does. Unused pgx.Tx methods panic via the
// nil embedded interface.
type fakeTx struct {
	pgx.Tx

	execSQL     []string
	table       pgx.Identifier
	columns     []string
	rows        [][]any
	copyErr     error
	committed   bool
	rolledBack  bool
	hadDeadline bool
}

func (f *fakeTx) Exec(ctx context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	f.execSQL = append(f.execSQL, sql)
	_, f.hadDeadline = ctx.Deadline()
	return pgconn.NewCommandTag("CREATE TABLE"), nil
}

func (f *fakeTx) CopyFrom(_ context.Context, table pgx.Identifier, columns []string, src pgx.CopyFromSource) (int64, error) {
	if f.copyErr != nil {
		return 0, f.copyErr
	}
	f.table = table
	f.columns = columns
	for src.Next() {
		values, err := src.Values()
		if err != nil {
			return 0, err
		}
		f.rows = append(f.rows, values)
	}
	return int64(len(f.rows)), src.Err()
}

func (f *fakeTx) Commit(context.Context) error {
	f.committed = true
	return nil
}

func (f *fakeTx) Rollback(context.Context) error {
	f.rolledBack = true
	return nil
}

type fakeDB struct {
	tx       *fakeTx
	beginErr error
}

func (f *fakeDB) Begin(context.Context) (pgx.Tx, error) {
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	return f.tx, nil
}

var records = []core.Record{
	{Name: "Beto", Job: "QA", Age: "30 anos", Region: "SP"},
	{Name: "Ana", Job: "Android", Age: "24 anos", Region: "RJ"},
}

func TestArchive_CopiesRecordsInOrder(t *testing.T) {
	tx := &fakeTx{}
	store := newStore(&fakeDB{tx: tx}, "candidate_archive", time.Minute)
	runID := uuid.New()

	n, err := store.Archive(context.Background(), runID.String(), records)
	if err != nil {
		t.Fatalf("Archive() error = %v", err)
	}
	if n != 2 {
		t.Errorf("Archive() = %d, want 2", n)
	}

	if !tx.committed {
		t.Error("transaction not committed")
	}
	if !tx.hadDeadline {
		t.Error("archive context has no deadline")
	}
	if len(tx.execSQL) != 1 || !strings.Contains(tx.execSQL[0], `CREATE TABLE IF NOT EXISTS "candidate_archive"`) {
		t.Errorf("exec SQL = %q, want create table", tx.execSQL)
	}
	if diff := cmp.Diff(pgx.Identifier{"candidate_archive"}, tx.table); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Columns, tx.columns); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}

	pgID := pgtype.UUID{Bytes: runID, Valid: true}
	want := [][]any{
		{pgID, int32(1), "Beto", "QA", "30 anos", "SP"},
		{pgID, int32(2), "Ana", "Android", "24 anos", "RJ"},
	}
	if diff := cmp.Diff(want, tx.rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestArchive_InvalidRunID(t *testing.T) {
	tx := &fakeTx{}
	store := newStore(&fakeDB{tx: tx}, "candidate_archive", 0)

	if _, err := store.Archive(context.Background(), "not-a-uuid", records); err == nil {
		t.Fatal("Archive() expected error for invalid run id")
	}
	if tx.execSQL != nil {
		t.Error("no statements should run for an invalid run id")
	}
}

func TestArchive_BeginError(t *testing.T) {
	boom := errors.New("connection refused")
	store := newStore(&fakeDB{beginErr: boom}, "candidate_archive", 0)

	_, err := store.Archive(context.Background(), uuid.NewString(), records)
	if !errors.Is(err, boom) {
		t.Errorf("Archive() error = %v, want %v", err, boom)
	}
}

func TestArchive_CopyErrorRollsBack(t *testing.T) {
	boom := errors.New("copy failed")
	tx := &fakeTx{copyErr: boom}
	store := newStore(&fakeDB{tx: tx}, "candidate_archive", 0)

	_, err := store.Archive(context.Background(), uuid.NewString(), records)
	if !errors.Is(err, boom) {
		t.Errorf("Archive() error = %v, want %v", err, boom)
	}
	if tx.committed {
		t.Error("transaction committed after copy failure")
	}
	if !tx.rolledBack {
		t.Error("transaction not rolled back")
	}
}

func TestNew_DoesNotConnect(t *testing.T) {
	// Nothing listens on port 1; New must not notice
	store, err := New(Options{URL: "postgres://report@127.0.0.1:1/candidates", MaxConns: 2, Table: "candidate_archive"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer store.Close()

	if store.db != nil || store.pool != nil {
		t.Error("New() opened a database handle before Archive")
	}
}

func TestNew_InvalidURL(t *testing.T) {
	if _, err := New(Options{URL: "postgres://report@127.0.0.1:notaport/candidates"}); err == nil {
		t.Fatal("New() expected error for an invalid URL")
	}
}

func TestArchive_ConnectsOnFirstUse(t *testing.T) {
	tx := &fakeTx{}
	store := newStore(nil, "candidate_archive", 0)
	var connects int
	store.connect = func(context.Context) (beginner, error) {
		connects++
		return &fakeDB{tx: tx}, nil
	}

	if connects != 0 {
		t.Fatalf("connected %d times before Archive", connects)
	}
	for i := 0; i < 2; i++ {
		if _, err := store.Archive(context.Background(), uuid.NewString(), records); err != nil {
			t.Fatalf("Archive() error = %v", err)
		}
	}
	if connects != 1 {
		t.Errorf("connected %d times, want 1", connects)
	}
}

func TestArchive_ConnectError(t *testing.T) {
	boom := errors.New("ping database: connection refused")
	store := newStore(nil, "candidate_archive", time.Second)
	var hadDeadline bool
	store.connect = func(ctx context.Context) (beginner, error) {
		_, hadDeadline = ctx.Deadline()
		return nil, boom
	}

	_, err := store.Archive(context.Background(), uuid.NewString(), records)
	if !errors.Is(err, boom) {
		t.Errorf("Archive() error = %v, want %v", err, boom)
	}
	if !hadDeadline {
		t.Error("connect should run under the archive timeout")
	}
}

func TestCreateTableSQL_KeysRunAndPosition(t *testing.T) {
	sql := createTableSQL("candidate_archive")
	for _, want := range []string{"position    integer", "PRIMARY KEY (run_id, position)"} {
		if !strings.Contains(sql, want) {
			t.Errorf("createTableSQL() missing %q:\n%s", want, sql)
		}
	}
}

func TestCreateTableSQL_QuotesIdentifier(t *testing.T) {
	sql := createTableSQL(`odd"name`)
	if !strings.Contains(sql, `"odd""name"`) {
		t.Errorf("createTableSQL() = %q, want sanitized identifier", sql)
	}
}

// TestArchive_Postgres runs against a real database when TEST_DATABASE_URL is set.
func TestArchive_Postgres(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	table := "candidate_archive_test"
	store, err := New(Options{URL: url, MaxConns: 2, Table: table, Timeout: 10 * time.Second})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer store.Close()

	runID := uuid.NewString()
	n, err := store.Archive(ctx, runID, records)
	if err != nil {
		t.Fatalf("Archive() error = %v", err)
	}
	if n != int64(len(records)) {
		t.Errorf("Archive() = %d, want %d", n, len(records))
	}

	var count int
	row := store.pool.QueryRow(ctx,
		"SELECT count(*) FROM "+pgx.Identifier{table}.Sanitize()+" WHERE run_id = $1", runID)
	if err := row.Scan(&count); err != nil {
		t.Fatalf("count query: %v", err)
	}
	if count != len(records) {
		t.Errorf("archived rows = %d, want %d", count, len(records))
	}

	if _, err := store.pool.Exec(ctx, "DROP TABLE "+pgx.Identifier{table}.Sanitize()); err != nil {
		t.Logf("cleanup: %v", err)
	}
}
