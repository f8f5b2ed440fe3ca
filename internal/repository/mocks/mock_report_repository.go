package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"archiveweb/internal/model"
	"archiveweb/internal/repository"
)

type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) Create(ctx context.Context, r *model.Report) (*model.Report, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Report), args.Error(1)
}

func (m *MockReportRepository) FindByKey(ctx context.Context, key string) (*model.Report, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Report), args.Error(1)
}

func (m *MockReportRepository) ListByDocument(ctx context.Context, documentID int64, pq repository.PageQuery) (*repository.PageResult[model.Report], error) {
	args := m.Called(ctx, documentID, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Report]), args.Error(1)
}
