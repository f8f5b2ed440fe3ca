package handler

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"archiveweb/internal/archive"
	"archiveweb/internal/http/middleware"
	"archiveweb/internal/model"
	"archiveweb/internal/service"
)

// recentLimit is the number of documents on the home page.
const recentLimit = 8

type homeData struct {
	Documents []model.Document
	Error     string
}

// Home lists the newest documents. A failed fetch is shown in place of the list.
func Home(docs service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := docs.Recent(c.UserContext(), recentLimit)
		if err != nil {
			return render(c, fiber.StatusOK, "home", "", homeData{Error: messageFor(err)})
		}
		return render(c, fiber.StatusOK, "home", "", homeData{Documents: items})
	}
}

// Static renders a page that needs no data.
func Static(name, title string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return render(c, fiber.StatusOK, name, title, nil)
	}
}

// Search is the header search box: a non-blank query opens the listing filtered by it.
func Search() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := strings.TrimSpace(c.Query("q"))
		if q == "" {
			return c.Redirect(archive.Path, fiber.StatusFound)
		}
		return c.Redirect(archive.Path+"?search="+url.QueryEscape(q), fiber.StatusFound)
	}
}

// Logout drops the session token and returns home.
func Logout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		middleware.SessionFrom(c).Logout()
		return seeOther(c, "/")
	}
}
