package pgsql

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingTx captures the statements nextEntryNumberTx issues so the number
// assignment can be verified without a live database.
type recordingTx struct {
	maxSeq       int
	ops          []string
	execSQL      []string
	execArgs     [][]any
	queryRowSQL  []string
	queryRowArgs [][]any
}

var _ pgx.Tx = (*recordingTx)(nil)

func (t *recordingTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	t.ops = append(t.ops, "exec")
	t.execSQL = append(t.execSQL, sql)
	t.execArgs = append(t.execArgs, arguments)
	return pgconn.CommandTag{}, nil
}

func (t *recordingTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	t.ops = append(t.ops, "queryRow")
	t.queryRowSQL = append(t.queryRowSQL, sql)
	t.queryRowArgs = append(t.queryRowArgs, args)
	return seqRow{seq: t.maxSeq}
}

type seqRow struct{ seq int }

func (r seqRow) Scan(dest ...any) error {
	*(dest[0].(*int)) = r.seq
	return nil
}

func (t *recordingTx) Begin(ctx context.Context) (pgx.Tx, error) { panic("not implemented") }
func (t *recordingTx) Commit(ctx context.Context) error          { panic("not implemented") }
func (t *recordingTx) Rollback(ctx context.Context) error        { panic("not implemented") }
func (t *recordingTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	panic("not implemented")
}
func (t *recordingTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	panic("not implemented")
}
func (t *recordingTx) LargeObjects() pgx.LargeObjects { panic("not implemented") }
func (t *recordingTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	panic("not implemented")
}
func (t *recordingTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	panic("not implemented")
}
func (t *recordingTx) Conn() *pgx.Conn { panic("not implemented") }

func TestNextEntryNumberUsesAssignmentYear(t *testing.T) {
	tx := &recordingTx{maxSeq: 41}
	now := time.Date(2026, 12, 31, 23, 0, 0, 0, time.UTC)

	number, err := nextEntryNumberTx(context.Background(), tx, now)

	require.NoError(t, err)
	// A backdated or future-dated entry still joins the assignment year's
	// sequence: only the clock passed in decides the prefix.
	assert.Equal(t, "JE-2026-00042", number)

	require.Len(t, tx.queryRowArgs, 1)
	assert.Equal(t, []any{"JE-2026-%"}, tx.queryRowArgs[0])
}

func TestNextEntryNumberLocksYearBeforeReadingMax(t *testing.T) {
	tx := &recordingTx{maxSeq: 0}
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	number, err := nextEntryNumberTx(context.Background(), tx, now)

	require.NoError(t, err)
	assert.Equal(t, "JE-2025-00001", number)

	// The advisory lock must be taken before MAX is computed, keyed on the
	// same year, so concurrent inserts serialize and never share a sequence.
	require.Equal(t, []string{"exec", "queryRow"}, tx.ops)
	require.Len(t, tx.execSQL, 1)
	assert.Contains(t, tx.execSQL[0], "pg_advisory_xact_lock")
	assert.Equal(t, []any{entryNumberLockClass, 2025}, tx.execArgs[0])
}
