package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archiveweb/internal/model"
	"archiveweb/internal/repository"
)

var columns = []string{"key", "document_id", "document_title", "reason", "description", "reporter", "created_at"}

func newMock(t *testing.T) (*ReportPostgres, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewReportPostgres(db), mock
}

func sampleReport() *model.Report {
	return &model.Report{
		Key:           "report_7_1700000000000",
		DocumentID:    7,
		DocumentTitle: "title",
		Reason:        "spam",
		Description:   "ad content",
		Reporter:      "Anonymous",
		CreatedAt:     time.UnixMilli(1700000000000).UTC(),
	}
}

func TestReportPostgres_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("inserted", func(t *testing.T) {
		repo, mock := newMock(t)
		r := sampleReport()
		mock.ExpectQuery("INSERT INTO reports (.+) ON CONFLICT \\(key\\) DO NOTHING").
			WithArgs(r.Key, r.DocumentID, r.DocumentTitle, r.Reason, r.Description, r.Reporter, r.CreatedAt).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(r.Key, r.DocumentID, r.DocumentTitle, r.Reason, r.Description, r.Reporter, r.CreatedAt))

		got, err := repo.Create(ctx, r)
		require.NoError(t, err)
		assert.Equal(t, r, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("key conflict", func(t *testing.T) {
		repo, mock := newMock(t)
		r := sampleReport()
		mock.ExpectQuery("INSERT INTO reports").WillReturnRows(sqlmock.NewRows(columns))

		_, err := repo.Create(ctx, r)
		assert.ErrorIs(t, err, repository.ErrKeyExists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectQuery("INSERT INTO reports").WillReturnError(errors.New("conn reset"))

		_, err := repo.Create(ctx, sampleReport())
		assert.EqualError(t, err, "conn reset")
	})
}

func TestReportPostgres_FindByKey(t *testing.T) {
	ctx := context.Background()
	repo, mock := newMock(t)
	r := sampleReport()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM reports WHERE key = \\$1").
			WithArgs(r.Key).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(r.Key, r.DocumentID, r.DocumentTitle, r.Reason, r.Description, r.Reporter, r.CreatedAt))

		got, err := repo.FindByKey(ctx, r.Key)
		require.NoError(t, err)
		assert.Equal(t, "spam", got.Reason)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM reports WHERE key = \\$1").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(columns))

		_, err := repo.FindByKey(ctx, "missing")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportPostgres_ListByDocument(t *testing.T) {
	ctx := context.Background()
	repo, mock := newMock(t)
	r := sampleReport()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM reports WHERE document_id = \\$1").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery("SELECT (.+) FROM reports WHERE document_id = \\$1 ORDER BY created_at DESC").
		WithArgs(int64(7), 10, 0).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(r.Key, r.DocumentID, r.DocumentTitle, r.Reason, r.Description, r.Reporter, r.CreatedAt).
			AddRow("report_7_1", r.DocumentID, r.DocumentTitle, "other", "x", r.Reporter, r.CreatedAt))

	page, err := repo.ListByDocument(ctx, 7, repository.PageQuery{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	assert.Len(t, page.Items, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportPostgres_ListByDocumentWithoutLimit(t *testing.T) {
	ctx := context.Background()
	repo, mock := newMock(t)
	r := sampleReport()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM reports WHERE document_id = \\$1").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT (.+) FROM reports WHERE document_id = \\$1 ORDER BY created_at DESC").
		WithArgs(int64(7), nil, 0).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(r.Key, r.DocumentID, r.DocumentTitle, r.Reason, r.Description, r.Reporter, r.CreatedAt))

	page, err := repo.ListByDocument(ctx, 7, repository.PageQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	assert.Len(t, page.Items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
