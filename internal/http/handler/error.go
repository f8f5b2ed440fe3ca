package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"archiveweb/internal/apiclient"
	"archiveweb/internal/http/middleware"
	"archiveweb/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "NOT_FOUND", "SERVICE_UNAVAILABLE")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: middleware.RequestIDFrom(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

type errorData struct {
	Status  int
	Message string
}

var statusMessages = map[int]struct{ code, text string }{
	fiber.StatusBadRequest:            {"BAD_REQUEST", "잘못된 요청입니다."},
	fiber.StatusForbidden:             {"FORBIDDEN", "권한이 없습니다."},
	fiber.StatusNotFound:              {"NOT_FOUND", "페이지를 찾을 수 없습니다."},
	fiber.StatusMethodNotAllowed:      {"METHOD_NOT_ALLOWED", "허용되지 않은 요청입니다."},
	fiber.StatusRequestEntityTooLarge: {"PAYLOAD_TOO_LARGE", "업로드 가능한 파일 크기를 초과했습니다."},
	fiber.StatusBadGateway:            {"BAD_GATEWAY", "서버에 연결할 수 없습니다."},
}

// ErrorHandler returns a Fiber global error handler.
// Browsers get the error page; clients asking for JSON get the standard envelope.
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		msg, ok := statusMessages[status]
		if !ok {
			msg.code, msg.text = "INTERNAL_ERROR", "알 수 없는 오류가 발생했습니다."
		}
		if status >= fiber.StatusInternalServerError {
			logger.Error("request failed", zap.String("request_id", middleware.RequestIDFrom(c)), zap.Error(err))
		}

		if strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMEApplicationJSON) {
			return writeError(c, status, msg.code, msg.text)
		}
		if rerr := render(c, status, "error", "에러", errorData{Status: status, Message: msg.text}); rerr != nil {
			logger.Error("render error page", zap.Error(rerr))
			return c.Status(status).SendString(msg.text)
		}
		return nil
	}
}

// statusFor maps a service or backend error to the status of the page that reports it.
func statusFor(err error) int {
	var apiErr *apiclient.Error
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, service.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, service.ErrNoFile):
		return fiber.StatusNotFound
	case errors.As(err, &apiErr):
		if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			return apiErr.StatusCode
		}
	}
	return fiber.StatusBadGateway
}

// messageFor is the inline text shown for err.
func messageFor(err error) string {
	if msg := service.UserMessage(err); msg != "" {
		return msg
	}
	switch {
	case errors.Is(err, service.ErrForbidden):
		return "이 문서를 삭제할 권한이 없습니다."
	case errors.Is(err, service.ErrNoFile):
		return "다운로드할 파일이 없습니다."
	}
	return apiclient.Message(err)
}
