// Package handler serves the archive's pages over fiber.
package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"archiveweb/internal/http/middleware"
	"archiveweb/internal/http/view"
)

const loginPath = "/login"

// render writes view name inside the layout with the request's session and request id.
func render(c *fiber.Ctx, status int, name, title string, data any) error {
	return c.Status(status).Render(name, view.Page{
		Title:     title,
		User:      middleware.SessionFrom(c).User(),
		RequestID: middleware.RequestIDFrom(c),
		Data:      data,
	})
}

type successData struct {
	Heading string
	Message string
	Target  string
	Delay   int
}

// renderSuccess shows message and moves the browser to target after delay seconds.
func renderSuccess(c *fiber.Ctx, heading, message, target string, delay int) error {
	return render(c, fiber.StatusOK, "success", heading, successData{
		Heading: heading,
		Message: message,
		Target:  target,
		Delay:   delay,
	})
}

// seeOther answers a form post with a redirect the browser follows with GET.
func seeOther(c *fiber.Ctx, target string) error {
	return c.Redirect(target, fiber.StatusSeeOther)
}

func redirectToLogin(c *fiber.Ctx) error {
	return c.Redirect(loginPath, fiber.StatusFound)
}

// documentID parses the :id route parameter. Anything but a positive integer is a 404.
func documentID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, fiber.ErrNotFound
	}
	return id, nil
}

func detailPath(id int64) string {
	return "/archive/detail/" + strconv.FormatInt(id, 10)
}
