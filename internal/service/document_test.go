package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"archiveweb/internal/apiclient"
	apiMocks "archiveweb/internal/apiclient/mocks"
	"archiveweb/internal/background"
	"archiveweb/internal/model"
)

func strPtr(s string) *string { return &s }

func newDocumentService(api *apiMocks.MockAPI) (DocumentService, *background.Runner, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)
	runner := background.NewRunner(logger, 0)
	return NewDocumentService(api, runner, logger), runner, logs
}

func TestDocumentService_Detail(t *testing.T) {
	ctx := context.Background()

	t.Run("counts a view after loading", func(t *testing.T) {
		api := new(apiMocks.MockAPI)
		svc, runner, _ := newDocumentService(api)
		api.On("GetDocument", mock.Anything, int64(3)).Return(&model.Document{ID: 3, Title: "t"}, nil).Once()
		api.On("IncrementViews", mock.Anything, int64(3)).Return(nil).Once()

		doc, err := svc.Detail(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, "t", doc.Title)

		runner.Wait()
		api.AssertExpectations(t)
	})

	t.Run("view increment failure is only logged", func(t *testing.T) {
		api := new(apiMocks.MockAPI)
		svc, runner, logs := newDocumentService(api)
		api.On("GetDocument", mock.Anything, int64(3)).Return(&model.Document{ID: 3}, nil).Once()
		api.On("IncrementViews", mock.Anything, int64(3)).Return(errors.New("backend down")).Once()

		_, err := svc.Detail(ctx, 3)
		require.NoError(t, err)

		runner.Wait()
		assert.Equal(t, 1, logs.FilterMessage("background task failed").Len())
	})

	t.Run("load failure skips the view", func(t *testing.T) {
		api := new(apiMocks.MockAPI)
		svc, runner, _ := newDocumentService(api)
		api.On("GetDocument", mock.Anything, int64(9)).Return(nil, apiclient.ErrNotFound).Once()

		_, err := svc.Detail(ctx, 9)
		assert.ErrorIs(t, err, apiclient.ErrNotFound)

		runner.Wait()
		api.AssertNotCalled(t, "IncrementViews", mock.Anything, mock.Anything)
	})
}

func TestDocumentService_Download(t *testing.T) {
	ctx := context.Background()

	t.Run("file", func(t *testing.T) {
		api := new(apiMocks.MockAPI)
		svc, runner, _ := newDocumentService(api)
		api.On("GetDocument", mock.Anything, int64(1)).Return(&model.Document{ID: 1, FilePath: strPtr("my report.pdf")}, nil).Once()
		api.On("IncrementDownloads", mock.Anything, int64(1)).Return(nil).Once()

		target, err := svc.Download(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "/uploads/my%20report.pdf?download=1", target)

		runner.Wait()
		api.AssertExpectations(t)
	})

	t.Run("no file", func(t *testing.T) {
		api := new(apiMocks.MockAPI)
		svc, runner, _ := newDocumentService(api)
		api.On("GetDocument", mock.Anything, int64(2)).Return(&model.Document{ID: 2, Content: strPtr("text")}, nil).Once()

		_, err := svc.Download(ctx, 2)
		assert.ErrorIs(t, err, ErrNoFile)

		runner.Wait()
		api.AssertNotCalled(t, "IncrementDownloads", mock.Anything, mock.Anything)
	})
}

func TestDocumentService_Delete(t *testing.T) {
	ctx := context.Background()
	author := &model.User{Name: "kim"}

	t.Run("author", func(t *testing.T) {
		api := new(apiMocks.MockAPI)
		svc, _, _ := newDocumentService(api)
		api.On("GetDocument", mock.Anything, int64(5)).Return(&model.Document{ID: 5, Author: "kim"}, nil).Once()
		api.On("DeleteDocument", mock.Anything, "tok", int64(5)).Return(nil).Once()

		require.NoError(t, svc.Delete(ctx, author, "tok", 5))
		api.AssertExpectations(t)
	})

	t.Run("not the author", func(t *testing.T) {
		api := new(apiMocks.MockAPI)
		svc, _, _ := newDocumentService(api)
		api.On("GetDocument", mock.Anything, int64(5)).Return(&model.Document{ID: 5, Author: "lee"}, nil).Once()

		assert.ErrorIs(t, svc.Delete(ctx, author, "tok", 5), ErrForbidden)
		api.AssertNotCalled(t, "DeleteDocument", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("logged out", func(t *testing.T) {
		api := new(apiMocks.MockAPI)
		svc, _, _ := newDocumentService(api)

		assert.ErrorIs(t, svc.Delete(ctx, nil, "", 5), ErrAuthRequired)
		api.AssertNotCalled(t, "GetDocument", mock.Anything, mock.Anything)
	})

	t.Run("backend refuses", func(t *testing.T) {
		api := new(apiMocks.MockAPI)
		svc, _, _ := newDocumentService(api)
		api.On("GetDocument", mock.Anything, int64(5)).Return(&model.Document{ID: 5, Author: "kim"}, nil).Once()
		api.On("DeleteDocument", mock.Anything, "tok", int64(5)).
			Return(&apiclient.Error{Op: "delete_document", StatusCode: 403, Message: "이 문서를 삭제할 권한이 없습니다."}).Once()

		err := svc.Delete(ctx, author, "tok", 5)
		assert.ErrorIs(t, err, apiclient.ErrForbidden)
		assert.Equal(t, "이 문서를 삭제할 권한이 없습니다.", apiclient.Message(err))
	})
}

func TestDocumentService_Recent(t *testing.T) {
	api := new(apiMocks.MockAPI)
	svc, _, _ := newDocumentService(api)
	api.On("ListDocuments", mock.Anything, apiclient.ListParams{Page: 1, PerPage: 6, SortBy: "latest"}).
		Return(&model.DocumentPage{Documents: []model.Document{{ID: 1}, {ID: 2}}}, nil).Once()

	docs, err := svc.Recent(context.Background(), 6)
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}
