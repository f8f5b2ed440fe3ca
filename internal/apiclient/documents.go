package apiclient

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"

	"archiveweb/internal/model"
)

// ListParams selects one page of the document listing.
// Empty Category, Search and SortBy are omitted from the query.
type ListParams struct {
	Page     int
	PerPage  int
	Category string
	Search   string
	SortBy   string
}

func (p ListParams) values() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(p.PerPage))
	}
	if p.Category != "" {
		q.Set("category", p.Category)
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.SortBy != "" {
		q.Set("sort_by", p.SortBy)
	}
	return q
}

// FilePart is an attachment streamed into a multipart body.
type FilePart struct {
	Name        string
	ContentType string
	Reader      io.Reader
}

// UploadPayload is the multipart form sent on create and update.
type UploadPayload struct {
	Title       string
	Category    string
	Description string
	File        *FilePart
}

func documentPath(id int64) string {
	return "/api/documents/" + strconv.FormatInt(id, 10)
}

func (c *Client) ListDocuments(ctx context.Context, p ListParams) (*model.DocumentPage, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/documents", p.values(), nil)
	if err != nil {
		return nil, err
	}
	var page model.DocumentPage
	if err := c.call("list_documents", req, "백엔드에서 데이터를 가져오는 데 실패했습니다.", &page); err != nil {
		return nil, err
	}
	if page.Documents == nil {
		page.Documents = []model.Document{}
	}
	return &page, nil
}

func (c *Client) GetDocument(ctx context.Context, id int64) (*model.Document, error) {
	req, err := c.newRequest(ctx, http.MethodGet, documentPath(id), nil, nil)
	if err != nil {
		return nil, err
	}
	var doc model.Document
	if err := c.call("get_document", req, "문서 정보를 가져오는 데 실패했습니다.", &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *Client) IncrementViews(ctx context.Context, id int64) error {
	req, err := c.newRequest(ctx, http.MethodPut, documentPath(id)+"/view", nil, nil)
	if err != nil {
		return err
	}
	return c.call("increment_views", req, "조회수 증가에 실패했습니다.", nil)
}

func (c *Client) IncrementDownloads(ctx context.Context, id int64) error {
	req, err := c.newRequest(ctx, http.MethodPut, documentPath(id)+"/download", nil, nil)
	if err != nil {
		return err
	}
	return c.call("increment_downloads", req, "다운로드 수 증가에 실패했습니다.", nil)
}

func (c *Client) CreateDocument(ctx context.Context, token string, p UploadPayload) (*model.Document, error) {
	return c.sendDocument(ctx, "create_document", http.MethodPost, "/api/documents", token, p, "자료 업로드에 실패했습니다.")
}

func (c *Client) UpdateDocument(ctx context.Context, token string, id int64, p UploadPayload) (*model.Document, error) {
	return c.sendDocument(ctx, "update_document", http.MethodPut, documentPath(id), token, p, "자료 수정에 실패했습니다.")
}

func (c *Client) DeleteDocument(ctx context.Context, token string, id int64) error {
	req, err := c.newRequest(ctx, http.MethodDelete, documentPath(id), nil, nil)
	if err != nil {
		return err
	}
	bearer(req, token)
	return c.call("delete_document", req, "삭제에 실패했습니다.", nil)
}

func (c *Client) sendDocument(ctx context.Context, op, method, path, token string, p UploadPayload, fallback string) (*model.Document, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	written := make(chan struct{})
	go func() {
		defer close(written)
		pw.CloseWithError(writeUpload(mw, p))
	}()
	// The caller closes p.File after return; the writer must be stopped by then.
	defer func() {
		pr.Close()
		<-written
	}()

	req, err := c.newRequest(ctx, method, path, nil, pr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	bearer(req, token)

	var doc model.Document
	if err := c.call(op, req, fallback, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// writeUpload writes the form fields and, when present, the file part.
// The file part keeps its own Content-Type; the backend stores text/plain uploads as inline content.
func writeUpload(mw *multipart.Writer, p UploadPayload) error {
	fields := [][2]string{
		{"title", p.Title},
		{"category", p.Category},
		{"description", p.Description},
	}
	for _, f := range fields {
		if err := mw.WriteField(f[0], f[1]); err != nil {
			return fmt.Errorf("write field %s: %w", f[0], err)
		}
	}

	if p.File != nil && p.File.Reader != nil {
		contentType := p.File.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(p.File.Name)))
		h.Set("Content-Type", contentType)
		part, err := mw.CreatePart(h)
		if err != nil {
			return fmt.Errorf("create file part: %w", err)
		}
		if _, err := io.Copy(part, p.File.Reader); err != nil {
			return fmt.Errorf("copy file part: %w", err)
		}
	}
	return mw.Close()
}
