package handler

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"archiveweb/internal/apiclient"
	"archiveweb/internal/config"
	"archiveweb/internal/http/middleware"
	"archiveweb/internal/model"
	"archiveweb/internal/service"
)

type uploadData struct {
	Form       service.UploadForm
	EditID     int64
	Categories []string
	MaxMB      int
	Error      string
}

// UploadHandlers serves the create and edit form.
type UploadHandlers struct {
	uploads service.UploadService
	cfg     config.UploadConfig
	logger  *zap.Logger
}

func NewUploadHandlers(uploads service.UploadService, cfg config.UploadConfig, logger *zap.Logger) *UploadHandlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UploadHandlers{uploads: uploads, cfg: cfg, logger: logger}
}

// editID reads the edit query parameter; 0 means create mode.
func editID(c *fiber.Ctx) (int64, error) {
	raw := c.Query("edit")
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fiber.ErrNotFound
	}
	return id, nil
}

func (h *UploadHandlers) renderForm(c *fiber.Ctx, status int, id int64, form service.UploadForm, msg string) error {
	title := "자료 업로드"
	if id != 0 {
		title = "자료 수정"
	}
	form.File = nil
	return render(c, status, "upload", title, uploadData{
		Form:       form,
		EditID:     id,
		Categories: model.UploadCategories,
		MaxMB:      h.cfg.MaxMB,
		Error:      msg,
	})
}

// Form shows an empty form, or the document's current fields in edit mode.
func (h *UploadHandlers) Form(c *fiber.Ctx) error {
	if !middleware.SessionFrom(c).IsAuthenticated() {
		return redirectToLogin(c)
	}
	id, err := editID(c)
	if err != nil {
		return err
	}
	if id == 0 {
		return h.renderForm(c, fiber.StatusOK, 0, service.UploadForm{}, "")
	}

	form, err := h.uploads.LoadForEdit(c.UserContext(), id)
	if err != nil {
		return h.renderForm(c, statusFor(err), id, service.UploadForm{}, messageFor(err))
	}
	return h.renderForm(c, fiber.StatusOK, id, *form, "")
}

// Submit sends the form to the backend and shows a success page that moves on to the document.
func (h *UploadHandlers) Submit(c *fiber.Ctx) error {
	sess := middleware.SessionFrom(c)
	if !sess.IsAuthenticated() {
		return redirectToLogin(c)
	}
	id, err := editID(c)
	if err != nil {
		return err
	}

	form := service.UploadForm{
		Title:       c.FormValue("title"),
		Category:    c.FormValue("category"),
		Description: c.FormValue("description"),
	}
	if fh, err := c.FormFile("file"); err == nil && fh.Filename != "" {
		f, err := fh.Open()
		if err != nil {
			return fmt.Errorf("open uploaded file: %w", err)
		}
		defer f.Close()
		form.SetFile(&apiclient.FilePart{
			Name:        fh.Filename,
			ContentType: fh.Header.Get(fiber.HeaderContentType),
			Reader:      f,
		})
	}

	doc, err := h.uploads.Submit(c.UserContext(), sess.Token(), id, form)
	switch {
	case errors.Is(err, service.ErrAuthRequired):
		return redirectToLogin(c)
	case err != nil:
		if service.UserMessage(err) == "" {
			h.logger.Warn("submit document", zap.Int64("edit_id", id), zap.Error(err))
		}
		return h.renderForm(c, statusFor(err), id, form, messageFor(err))
	}

	message := "자료가 성공적으로 업로드되었습니다."
	if id != 0 {
		message = "자료가 성공적으로 수정되었습니다."
	}
	return renderSuccess(c, "성공", message+" 잠시 후 상세 페이지로 이동합니다.", detailPath(doc.ID), h.cfg.RedirectDelaySec)
}
