package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"archiveweb/internal/apiclient"
	"archiveweb/internal/model"
)

type MockAPI struct {
	mock.Mock
}

var _ apiclient.API = (*MockAPI)(nil)

func (m *MockAPI) ListDocuments(ctx context.Context, p apiclient.ListParams) (*model.DocumentPage, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentPage), args.Error(1)
}

func (m *MockAPI) GetDocument(ctx context.Context, id int64) (*model.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockAPI) IncrementViews(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAPI) IncrementDownloads(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAPI) CreateDocument(ctx context.Context, token string, p apiclient.UploadPayload) (*model.Document, error) {
	args := m.Called(ctx, token, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockAPI) UpdateDocument(ctx context.Context, token string, id int64, p apiclient.UploadPayload) (*model.Document, error) {
	args := m.Called(ctx, token, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockAPI) DeleteDocument(ctx context.Context, token string, id int64) error {
	args := m.Called(ctx, token, id)
	return args.Error(0)
}

func (m *MockAPI) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *MockAPI) Register(ctx context.Context, r apiclient.RegisterRequest) (*model.User, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAPI) CurrentUser(ctx context.Context, token string) (*model.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
