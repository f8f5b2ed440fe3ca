package handler

import (
	"errors"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"archiveweb/internal/storage"
)

// Files streams a stored document file from store.
// download=1 marks the response as an attachment so the browser saves it.
func Files(store storage.FileStore, logger *zap.Logger) fiber.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *fiber.Ctx) error {
		name, err := url.PathUnescape(c.Params("name"))
		if err != nil {
			return fiber.ErrNotFound
		}

		body, info, err := store.Get(c.UserContext(), name)
		switch {
		case errors.Is(err, storage.ErrNotFound), errors.Is(err, storage.ErrInvalidName):
			return fiber.ErrNotFound
		case err != nil:
			logger.Error("read stored file", zap.String("name", name), zap.Error(err))
			return fiber.ErrBadGateway
		}

		if c.Query("download") == "1" {
			c.Attachment(path.Base(name))
		} else {
			c.Type(path.Ext(name))
		}
		if info.ContentType != "" {
			c.Set(fiber.HeaderContentType, info.ContentType)
		}
		if info.ETag != "" {
			c.Set(fiber.HeaderETag, quoteETag(info.ETag))
		}
		if !info.LastModified.IsZero() {
			c.Set(fiber.HeaderLastModified, info.LastModified.UTC().Format(http.TimeFormat))
		}

		size := -1
		if info.Size > 0 {
			size = int(info.Size)
		}
		c.Response().SetBodyStream(body, size)
		return nil
	}
}

// quoteETag leaves tags from HTTP sources as they are and quotes bare object store tags.
func quoteETag(tag string) string {
	if strings.HasPrefix(tag, `"`) || strings.HasPrefix(tag, "W/") {
		return tag
	}
	return strconv.Quote(tag)
}
