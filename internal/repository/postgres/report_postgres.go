package postgres

import (
	"context"
	"database/sql"
	"errors"

	"archiveweb/internal/model"
	"archiveweb/internal/repository"
)

// ReportPostgres is a PostgreSQL implementation of repository.ReportRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type ReportPostgres struct {
	db *sql.DB
}

func NewReportPostgres(db *sql.DB) *ReportPostgres {
	return &ReportPostgres{db: db}
}

var _ repository.ReportRepository = (*ReportPostgres)(nil)

const reportColumns = `key, document_id, document_title, reason, description, reporter, created_at`

func scanReport(s interface{ Scan(...any) error }) (*model.Report, error) {
	var r model.Report
	if err := s.Scan(
		&r.Key,
		&r.DocumentID,
		&r.DocumentTitle,
		&r.Reason,
		&r.Description,
		&r.Reporter,
		&r.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &r, nil
}

// Create inserts a report row. A key conflict inserts nothing and yields ErrKeyExists.
func (p *ReportPostgres) Create(ctx context.Context, r *model.Report) (*model.Report, error) {
	const q = `
		INSERT INTO reports (` + reportColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (key) DO NOTHING
		RETURNING ` + reportColumns
	row := p.db.QueryRowContext(ctx, q,
		r.Key,
		r.DocumentID,
		r.DocumentTitle,
		r.Reason,
		r.Description,
		r.Reporter,
		r.CreatedAt,
	)
	out, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrKeyExists
	}
	return out, err
}

func (p *ReportPostgres) FindByKey(ctx context.Context, key string) (*model.Report, error) {
	const q = `SELECT ` + reportColumns + ` FROM reports WHERE key = $1`
	out, err := scanReport(p.db.QueryRowContext(ctx, q, key))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return out, err
}

// ListByDocument uses LIMIT/OFFSET pagination and a separate count.
func (p *ReportPostgres) ListByDocument(ctx context.Context, documentID int64, pq repository.PageQuery) (*repository.PageResult[model.Report], error) {
	const qCount = `SELECT COUNT(*) FROM reports WHERE document_id = $1`
	var total int
	if err := p.db.QueryRowContext(ctx, qCount, documentID).Scan(&total); err != nil {
		return nil, err
	}

	// A zero Limit returns every row from Offset on, as the memory store does.
	const qList = `
		SELECT ` + reportColumns + `
		FROM reports
		WHERE document_id = $1
		ORDER BY created_at DESC, key DESC
		LIMIT $2 OFFSET $3
	`
	var limit any
	if pq.Limit > 0 {
		limit = pq.Limit
	}
	rows, err := p.db.QueryContext(ctx, qList, documentID, limit, max(pq.Offset, 0))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Report, 0)
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Report]{Items: items, Total: total}, nil
}
