package repository

import (
	"context"

	"archiveweb/internal/model"
)

// ReportRepository stores document reports. Persistence only, no validation.
type ReportRepository interface {
	// Create inserts a report under r.Key. It returns ErrKeyExists if the key is taken.
	Create(ctx context.Context, r *model.Report) (*model.Report, error)

	// FindByKey returns ErrNotFound when no report has key.
	FindByKey(ctx context.Context, key string) (*model.Report, error)

	// ListByDocument returns reports for one document, newest first, with the total count.
	ListByDocument(ctx context.Context, documentID int64, pq PageQuery) (*PageResult[model.Report], error)
}
