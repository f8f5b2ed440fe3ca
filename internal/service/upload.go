package service

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"archiveweb/internal/apiclient"
	"archiveweb/internal/model"
)

const (
	msgUploadFieldsRequired = "제목, 카테고리, 설명을 모두 입력해주세요."
	msgUploadFileRequired   = "새 자료를 업로드하려면 파일이 필요합니다."
	msgUploadCategory       = "올바른 카테고리를 선택해주세요."
)

// UploadForm is the state of the upload/edit form.
type UploadForm struct {
	Title       string              `json:"title"`
	Category    string              `json:"category"`
	Description string              `json:"description"`
	File        *apiclient.FilePart `json:"file"`
}

// SetFile stores f as the form's file, replacing any earlier one. A nil f is ignored.
func (f *UploadForm) SetFile(file *apiclient.FilePart) {
	if file != nil {
		f.File = file
	}
}

// Validate checks the form without touching the network. A file is required only when creating.
func (f UploadForm) Validate(editing bool) error {
	err := validation.ValidateStruct(&f,
		validation.Field(&f.Title, validation.Required.Error(msgUploadFieldsRequired)),
		validation.Field(&f.Category,
			validation.Required.Error(msgUploadFieldsRequired),
			validation.In(stringsToAny(model.UploadCategories)...).Error(msgUploadCategory),
		),
		validation.Field(&f.Description, validation.Required.Error(msgUploadFieldsRequired)),
		validation.Field(&f.File, validation.When(!editing, validation.Required.Error(msgUploadFileRequired))),
	)
	return firstViolation(err, "title", "category", "description", "file")
}

func (f UploadForm) payload() apiclient.UploadPayload {
	return apiclient.UploadPayload{
		Title:       f.Title,
		Category:    f.Category,
		Description: f.Description,
		File:        f.File,
	}
}

// UploadService creates and edits documents.
type UploadService interface {
	// LoadForEdit pre-populates a form from an existing document. The file is never pre-populated.
	LoadForEdit(ctx context.Context, id int64) (*UploadForm, error)

	// Submit validates form and creates a document (editID == 0) or updates editID.
	// Nothing is sent when validation fails.
	Submit(ctx context.Context, token string, editID int64, form UploadForm) (*model.Document, error)
}

type uploadService struct {
	api    apiclient.API
	logger *zap.Logger
	tracer trace.Tracer
}

func NewUploadService(api apiclient.API, logger *zap.Logger) UploadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &uploadService{api: api, logger: logger, tracer: otel.Tracer(tracerName)}
}

func (s *uploadService) LoadForEdit(ctx context.Context, id int64) (*UploadForm, error) {
	doc, err := s.api.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	return &UploadForm{Title: doc.Title, Category: doc.Category, Description: doc.Description}, nil
}

func (s *uploadService) Submit(ctx context.Context, token string, editID int64, form UploadForm) (doc *model.Document, err error) {
	editing := editID != 0
	if err := form.Validate(editing); err != nil {
		return nil, err
	}
	if token == "" {
		return nil, ErrAuthRequired
	}

	ctx, span := s.tracer.Start(ctx, "document.submit", trace.WithAttributes(
		attribute.Bool("document.editing", editing),
		attribute.Bool("document.has_file", form.File != nil),
	))
	defer func() { endSpan(span, err) }()

	if editing {
		doc, err = s.api.UpdateDocument(ctx, token, editID, form.payload())
	} else {
		doc, err = s.api.CreateDocument(ctx, token, form.payload())
	}
	if err != nil {
		return nil, err
	}
	s.logger.Info("document saved", zap.Int64("document_id", doc.ID), zap.Bool("editing", editing))
	return doc, nil
}
