package store

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/cardscan-cli/internal/model"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	s := &PostgresStore{pool: mock}
	return s, mock
}

func TestPostgresStore_CreateRun(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO scan_runs`).
		WithArgs(pgxmock.AnyArg(), "sheet-001", "/scans/sheet-001.png", pgxmock.AnyArg(), "queued", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	run, err := s.CreateRun(context.Background(), "sheet-001", "/scans/sheet-001.png", map[string]string{"set": "1989 Topps"})
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, model.RunStatusQueued, run.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetRun_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT id, sheet_id, image_path, metadata, status, summary, output_path, error, created_at, updated_at FROM scan_runs WHERE id = \$1`).
		WithArgs("nonexistent-run").
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetRun(context.Background(), "nonexistent-run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetRun(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	now := time.Now().UTC()

	rows := pgxmock.NewRows([]string{"id", "sheet_id", "image_path", "metadata", "status", "summary", "output_path", "error", "created_at", "updated_at"}).
		AddRow("run-1", "sheet-001", "/scans/sheet-001.png", []byte(`{"set":"1989 Topps"}`), "complete",
			[]byte(`{"total_cards":9,"cards_with_prices":3,"cards_with_stats":2,"cards_with_grades":9}`),
			"/outputs/sheet-001_final.json", "", now, now)

	mock.ExpectQuery(`SELECT id, sheet_id, image_path, metadata, status, summary, output_path, error, created_at, updated_at FROM scan_runs WHERE id = \$1`).
		WithArgs("run-1").
		WillReturnRows(rows)

	run, err := s.GetRun(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, "sheet-001", run.SheetID)
	assert.Equal(t, model.RunStatusComplete, run.Status)
	require.NotNil(t, run.Summary)
	assert.Equal(t, 9, run.Summary.TotalCards)
	assert.Equal(t, map[string]string{"set": "1989 Topps"}, run.SheetMetadata)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpdateRunStatus_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`UPDATE scan_runs SET status`).
		WithArgs("extracting", pgxmock.AnyArg(), "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := s.UpdateRunStatus(context.Background(), "missing", model.RunStatusExtracting)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CompleteRun(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`UPDATE scan_runs SET summary`).
		WithArgs(pgxmock.AnyArg(), "/outputs/sheet-001_final.json", "complete", pgxmock.AnyArg(), "run-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	summary := &model.Summary{TotalCards: 9}
	err := s.CompleteRun(context.Background(), "run-1", summary, "/outputs/sheet-001_final.json")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_FailRun(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`UPDATE scan_runs SET error`).
		WithArgs("ocr: tesseract exited", "failed", pgxmock.AnyArg(), "run-2").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := s.FailRun(context.Background(), "run-2", "ocr: tesseract exited")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListRuns(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	now := time.Now().UTC()

	rows := pgxmock.NewRows([]string{"id", "sheet_id", "image_path", "metadata", "status", "summary", "output_path", "error", "created_at", "updated_at"}).
		AddRow("run-1", "sheet-a", "/scans/a.png", []byte(`{}`), "failed", []byte(nil), "", "boom", now, now)

	mock.ExpectQuery(`SELECT .* FROM scan_runs WHERE 1=1 AND status = \$1`).
		WithArgs("failed", 100).
		WillReturnRows(rows)

	runs, err := s.ListRuns(context.Background(), RunFilter{Status: model.RunStatusFailed})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "sheet-a", runs[0].SheetID)
	assert.Equal(t, "boom", runs[0].Error)
	assert.Nil(t, runs[0].Summary)
	assert.NoError(t, mock.ExpectationsWereMet())
}
