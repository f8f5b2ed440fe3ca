package service

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"archiveweb/internal/apiclient"
	"archiveweb/internal/background"
	"archiveweb/internal/model"
	"archiveweb/internal/session"
	"archiveweb/internal/viewer"
)

const tracerName = "archiveweb/internal/service"

// DocumentService covers the detail page use cases: viewing, downloading and deleting a document.
type DocumentService interface {
	// Detail fetches a document and, on success, counts a view without waiting for it.
	Detail(ctx context.Context, id int64) (*model.Document, error)

	// Download counts a download without waiting for it and returns the same-origin download URL.
	// It returns ErrNoFile when the document has nothing to download.
	Download(ctx context.Context, id int64) (string, error)

	// Delete removes the document when user is its author.
	Delete(ctx context.Context, user *model.User, token string, id int64) error

	// Recent returns the newest documents for the home page.
	Recent(ctx context.Context, limit int) ([]model.Document, error)
}

type documentService struct {
	api    apiclient.API
	runner *background.Runner
	logger *zap.Logger
	tracer trace.Tracer
}

// NewDocumentService constructs a DocumentService. Counter increments run on runner.
func NewDocumentService(api apiclient.API, runner *background.Runner, logger *zap.Logger) DocumentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &documentService{api: api, runner: runner, logger: logger, tracer: otel.Tracer(tracerName)}
}

func (s *documentService) startSpan(ctx context.Context, name string, id int64) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(attribute.Int64("document.id", id)))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (s *documentService) Detail(ctx context.Context, id int64) (doc *model.Document, err error) {
	ctx, span := s.startSpan(ctx, "document.detail", id)
	defer func() { endSpan(span, err) }()

	doc, err = s.api.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	s.runner.Go("increment_views", func(ctx context.Context) error {
		return s.api.IncrementViews(ctx, id)
	})
	return doc, nil
}

func (s *documentService) Download(ctx context.Context, id int64) (target string, err error) {
	ctx, span := s.startSpan(ctx, "document.download", id)
	defer func() { endSpan(span, err) }()

	doc, err := s.api.GetDocument(ctx, id)
	if err != nil {
		return "", err
	}
	name := doc.File()
	if name == "" {
		return "", ErrNoFile
	}
	s.runner.Go("increment_downloads", func(ctx context.Context) error {
		return s.api.IncrementDownloads(ctx, id)
	})
	return viewer.FileURL(name) + "?download=1", nil
}

func (s *documentService) Delete(ctx context.Context, user *model.User, token string, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "document.delete", id)
	defer func() { endSpan(span, err) }()

	if user == nil || token == "" {
		return ErrAuthRequired
	}
	doc, err := s.api.GetDocument(ctx, id)
	if err != nil {
		return err
	}
	if !session.CanModify(user, doc) {
		return ErrForbidden
	}
	if err := s.api.DeleteDocument(ctx, token, id); err != nil {
		return fmt.Errorf("delete document %d: %w", id, err)
	}
	s.logger.Info("document deleted", zap.Int64("document_id", id), zap.String("author", user.Name))
	return nil
}

func (s *documentService) Recent(ctx context.Context, limit int) ([]model.Document, error) {
	page, err := s.api.ListDocuments(ctx, apiclient.ListParams{Page: 1, PerPage: limit, SortBy: "latest"})
	if err != nil {
		return nil, err
	}
	return page.Documents, nil
}
