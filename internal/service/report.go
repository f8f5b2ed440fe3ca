package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"

	"archiveweb/internal/model"
	"archiveweb/internal/repository"
)

const (
	msgReportRequired = "신고 사유와 상세 내용을 모두 입력해주세요."
	anonymousReporter = "Anonymous"
	maxKeyAttempts    = 100
)

// ReportForm is a complaint about a document.
type ReportForm struct {
	Reason      string `json:"reason"`
	Description string `json:"description"`
}

func reasonValues() []any {
	out := make([]any, len(model.ReportReasons))
	for i, r := range model.ReportReasons {
		out[i] = r.Value
	}
	return out
}

// Validate requires a known reason and a non-blank description.
func (f ReportForm) Validate() error {
	f.Description = strings.TrimSpace(f.Description)
	err := validation.ValidateStruct(&f,
		validation.Field(&f.Reason, validation.Required.Error(msgReportRequired), validation.In(reasonValues()...).Error(msgReportRequired)),
		validation.Field(&f.Description, validation.Required.Error(msgReportRequired)),
	)
	return firstViolation(err, "reason", "description")
}

// ReportService records reports in the local store. Reports are never sent to the backend API.
type ReportService interface {
	Submit(ctx context.Context, doc *model.Document, form ReportForm) (*model.Report, error)

	// Receipt returns the report stored under key, or repository.ErrNotFound.
	Receipt(ctx context.Context, key string) (*model.Report, error)

	// ForDocument returns the newest reports on a document, at most limit, with the total count.
	ForDocument(ctx context.Context, documentID int64, limit int) (*repository.PageResult[model.Report], error)
}

type reportService struct {
	repo   repository.ReportRepository
	now    func() time.Time
	logger *zap.Logger
}

func NewReportService(repo repository.ReportRepository, logger *zap.Logger) ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &reportService{repo: repo, now: time.Now, logger: logger}
}

// ReportKey is the storage key of a report on documentID made at t.
func ReportKey(documentID int64, t time.Time) string {
	return fmt.Sprintf("report_%d_%d", documentID, t.UnixMilli())
}

// Submit writes exactly one record. When the millisecond key is taken, the timestamp is bumped until a free key is found.
func (s *reportService) Submit(ctx context.Context, doc *model.Document, form ReportForm) (*model.Report, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, errors.New("report: document is required")
	}

	created := s.now().UTC().Truncate(time.Millisecond)
	r := &model.Report{
		DocumentID:    doc.ID,
		DocumentTitle: doc.Title,
		Reason:        form.Reason,
		Description:   strings.TrimSpace(form.Description),
		Reporter:      anonymousReporter,
	}

	for attempt := 0; attempt < maxKeyAttempts; attempt++ {
		r.CreatedAt = created.Add(time.Duration(attempt) * time.Millisecond)
		r.Key = ReportKey(doc.ID, r.CreatedAt)

		saved, err := s.repo.Create(ctx, r)
		if errors.Is(err, repository.ErrKeyExists) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("save report: %w", err)
		}
		s.logger.Info("report received",
			zap.String("key", saved.Key),
			zap.Int64("document_id", saved.DocumentID),
			zap.String("reason", saved.Reason),
		)
		return saved, nil
	}
	return nil, fmt.Errorf("save report: no free key after %d attempts", maxKeyAttempts)
}

func (s *reportService) Receipt(ctx context.Context, key string) (*model.Report, error) {
	if key == "" {
		return nil, repository.ErrNotFound
	}
	return s.repo.FindByKey(ctx, key)
}

func (s *reportService) ForDocument(ctx context.Context, documentID int64, limit int) (*repository.PageResult[model.Report], error) {
	page, err := s.repo.ListByDocument(ctx, documentID, repository.PageQuery{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return page, nil
}
