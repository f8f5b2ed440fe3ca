package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"archiveweb/internal/storage"
)

type MockFileStore struct {
	mock.Mock
}

func (m *MockFileStore) Get(ctx context.Context, name string) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(ctx, name)
	var rc io.ReadCloser
	if v := args.Get(0); v != nil {
		rc = v.(io.ReadCloser)
	}
	return rc, args.Get(1).(storage.ObjectInfo), args.Error(2)
}
