package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"archiveweb/internal/model"
	"archiveweb/internal/repository"
	"archiveweb/internal/service"
)

type MockDocumentService struct {
	mock.Mock
}

var _ service.DocumentService = (*MockDocumentService)(nil)

func (m *MockDocumentService) Detail(ctx context.Context, id int64) (*model.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) Download(ctx context.Context, id int64) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentService) Delete(ctx context.Context, user *model.User, token string, id int64) error {
	args := m.Called(ctx, user, token, id)
	return args.Error(0)
}

func (m *MockDocumentService) Recent(ctx context.Context, limit int) ([]model.Document, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

type MockUploadService struct {
	mock.Mock
}

var _ service.UploadService = (*MockUploadService)(nil)

func (m *MockUploadService) LoadForEdit(ctx context.Context, id int64) (*service.UploadForm, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UploadForm), args.Error(1)
}

func (m *MockUploadService) Submit(ctx context.Context, token string, editID int64, form service.UploadForm) (*model.Document, error) {
	args := m.Called(ctx, token, editID, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

type MockReportService struct {
	mock.Mock
}

var _ service.ReportService = (*MockReportService)(nil)

func (m *MockReportService) Submit(ctx context.Context, doc *model.Document, form service.ReportForm) (*model.Report, error) {
	args := m.Called(ctx, doc, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Report), args.Error(1)
}

func (m *MockReportService) Receipt(ctx context.Context, key string) (*model.Report, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Report), args.Error(1)
}

func (m *MockReportService) ForDocument(ctx context.Context, documentID int64, limit int) (*repository.PageResult[model.Report], error) {
	args := m.Called(ctx, documentID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Report]), args.Error(1)
}

type MockAccountService struct {
	mock.Mock
}

var _ service.AccountService = (*MockAccountService)(nil)

func (m *MockAccountService) Login(ctx context.Context, form service.LoginForm) (string, error) {
	args := m.Called(ctx, form)
	return args.String(0), args.Error(1)
}

func (m *MockAccountService) Register(ctx context.Context, form service.RegisterForm) (*model.User, error) {
	args := m.Called(ctx, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
