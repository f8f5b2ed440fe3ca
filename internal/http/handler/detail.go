package handler

import (
	"errors"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"

	"archiveweb/internal/apiclient"
	"archiveweb/internal/http/middleware"
	"archiveweb/internal/model"
	"archiveweb/internal/service"
	"archiveweb/internal/session"
	"archiveweb/internal/viewer"
)

type detailData struct {
	Doc           *model.Document
	View          viewer.View
	CanModify     bool
	ShareURL      string
	Reasons       []model.ReportReason
	Report        service.ReportForm
	Receipt       *model.Report
	ReportError   string
	// Complaints is the author's summary of reports on the document.
	Complaints    *complaintSummary
	DownloadError string
	Error         string
}

type complaintSummary struct {
	Total  int
	Recent []model.Report
}

// complaintsShown is how many recent reports the author sees.
const complaintsShown = 3

type deleteData struct {
	Doc   *model.Document
	Error string
}

// DetailHandlers serves the document page and its actions.
type DetailHandlers struct {
	api     apiclient.API
	docs    service.DocumentService
	reports service.ReportService
	appHost string
	logger  *zap.Logger
}

// NewDetailHandlers builds the detail routes. appHost is the public host (or base URL) used in share
// links; when empty the request's own base URL is used.
func NewDetailHandlers(api apiclient.API, docs service.DocumentService, reports service.ReportService, appHost string, logger *zap.Logger) *DetailHandlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DetailHandlers{api: api, docs: docs, reports: reports, appHost: appHost, logger: logger}
}

func (h *DetailHandlers) baseURL(c *fiber.Ctx) string {
	switch {
	case h.appHost == "":
		return c.BaseURL()
	case strings.Contains(h.appHost, "://"):
		return strings.TrimRight(h.appHost, "/")
	}
	return c.Protocol() + "://" + strings.TrimRight(h.appHost, "/")
}

func (h *DetailHandlers) renderDoc(c *fiber.Ctx, status int, doc *model.Document, data detailData) error {
	data.Doc = doc
	data.View = viewer.Select(doc)
	data.CanModify = session.CanModify(middleware.SessionFrom(c).User(), doc)
	data.ShareURL = h.baseURL(c) + detailPath(doc.ID)
	data.Reasons = model.ReportReasons
	if data.CanModify {
		data.Complaints = h.complaints(c, doc.ID)
	}
	return render(c, status, "detail", doc.Title, data)
}

// complaints loads the report summary for the author. A failed lookup hides the summary.
func (h *DetailHandlers) complaints(c *fiber.Ctx, id int64) *complaintSummary {
	page, err := h.reports.ForDocument(c.UserContext(), id, complaintsShown)
	if err != nil {
		h.logger.Warn("list reports", zap.Int64("document_id", id), zap.Error(err))
		return nil
	}
	return &complaintSummary{Total: page.Total, Recent: page.Items}
}

// receipt resolves the reported query parameter to the report just stored on id.
func (h *DetailHandlers) receipt(c *fiber.Ctx, id int64) *model.Report {
	key := c.Query("reported")
	if key == "" {
		return nil
	}
	r, err := h.reports.Receipt(c.UserContext(), key)
	if err != nil || r.DocumentID != id {
		return nil
	}
	return r
}

func (h *DetailHandlers) renderFailure(c *fiber.Ctx, err error) error {
	msg := messageFor(err)
	if errors.Is(err, apiclient.ErrNotFound) {
		msg = "문서를 찾을 수 없습니다."
	}
	return render(c, statusFor(err), "detail", "에러", detailData{Error: msg})
}

// refetch loads the document for re-rendering after a failed action, without counting a view.
func (h *DetailHandlers) refetch(c *fiber.Ctx, id int64, status int, data detailData) error {
	doc, err := h.api.GetDocument(c.UserContext(), id)
	if err != nil {
		return h.renderFailure(c, err)
	}
	return h.renderDoc(c, status, doc, data)
}

// Show renders the document and counts a view in the background.
// The redirect after a report lands here too; that visit is not counted.
func (h *DetailHandlers) Show(c *fiber.Ctx) error {
	id, err := documentID(c)
	if err != nil {
		return err
	}
	if c.Query("reported") != "" {
		return h.refetch(c, id, fiber.StatusOK, detailData{Receipt: h.receipt(c, id)})
	}
	doc, err := h.docs.Detail(c.UserContext(), id)
	if err != nil {
		return h.renderFailure(c, err)
	}
	return h.renderDoc(c, fiber.StatusOK, doc, detailData{})
}

// Download counts a download in the background and sends the browser to the file.
func (h *DetailHandlers) Download(c *fiber.Ctx) error {
	id, err := documentID(c)
	if err != nil {
		return err
	}
	target, err := h.docs.Download(c.UserContext(), id)
	switch {
	case errors.Is(err, service.ErrNoFile):
		return h.refetch(c, id, fiber.StatusNotFound, detailData{DownloadError: messageFor(err)})
	case err != nil:
		return h.renderFailure(c, err)
	}
	return seeOther(c, target)
}

// Report stores a complaint about the document locally.
func (h *DetailHandlers) Report(c *fiber.Ctx) error {
	id, err := documentID(c)
	if err != nil {
		return err
	}
	// The report outlives the request, so its fields must not alias fiber's buffers.
	form := service.ReportForm{
		Reason:      utils.CopyString(c.FormValue("reason")),
		Description: utils.CopyString(c.FormValue("description")),
	}
	if err := form.Validate(); err != nil {
		return h.refetch(c, id, fiber.StatusUnprocessableEntity, detailData{Report: form, ReportError: messageFor(err)})
	}

	doc, err := h.api.GetDocument(c.UserContext(), id)
	if err != nil {
		return h.renderFailure(c, err)
	}
	saved, err := h.reports.Submit(c.UserContext(), doc, form)
	if err != nil {
		h.logger.Error("store report", zap.Int64("document_id", id), zap.Error(err))
		return h.renderDoc(c, statusFor(err), doc, detailData{Report: form, ReportError: "신고 접수에 실패했습니다."})
	}
	return seeOther(c, detailPath(id)+"?reported="+url.QueryEscape(saved.Key)+"#report")
}

// ConfirmDelete asks the author to confirm the deletion.
func (h *DetailHandlers) ConfirmDelete(c *fiber.Ctx) error {
	id, err := documentID(c)
	if err != nil {
		return err
	}
	sess := middleware.SessionFrom(c)
	if !sess.IsAuthenticated() {
		return redirectToLogin(c)
	}
	doc, err := h.api.GetDocument(c.UserContext(), id)
	if err != nil {
		return h.renderFailure(c, err)
	}
	if !session.CanModify(sess.User(), doc) {
		return render(c, fiber.StatusForbidden, "error", "에러", errorData{Status: fiber.StatusForbidden, Message: messageFor(service.ErrForbidden)})
	}
	return render(c, fiber.StatusOK, "delete", "자료 삭제", deleteData{Doc: doc})
}

// Delete removes the document after confirmation and returns to the listing.
func (h *DetailHandlers) Delete(c *fiber.Ctx) error {
	id, err := documentID(c)
	if err != nil {
		return err
	}
	if c.FormValue("confirm") != "yes" {
		return seeOther(c, detailPath(id))
	}

	sess := middleware.SessionFrom(c)
	err = h.docs.Delete(c.UserContext(), sess.User(), sess.Token(), id)
	switch {
	case err == nil:
		return seeOther(c, "/archive")
	case errors.Is(err, service.ErrAuthRequired):
		return redirectToLogin(c)
	case errors.Is(err, service.ErrForbidden):
		return render(c, fiber.StatusForbidden, "error", "에러", errorData{Status: fiber.StatusForbidden, Message: messageFor(err)})
	}

	h.logger.Warn("delete document", zap.Int64("document_id", id), zap.Error(err))
	doc, ferr := h.api.GetDocument(c.UserContext(), id)
	if ferr != nil {
		return h.renderFailure(c, err)
	}
	return render(c, statusFor(err), "delete", "자료 삭제", deleteData{Doc: doc, Error: messageFor(err)})
}
