package handler

import (
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"archiveweb/internal/archive"
	"archiveweb/internal/model"
)

type archiveData struct {
	State      archive.State
	Categories []string
	Sorts      []archive.SortOption
}

// navRecorder keeps the last URL the controller pushed.
type navRecorder struct {
	target string
}

func (n *navRecorder) Push(u string) {
	n.target = u
}

func rawQuery(c *fiber.Ctx) (string, url.Values) {
	raw := string(c.Request().URI().QueryString())
	v, err := url.ParseQuery(raw)
	if err != nil {
		v = url.Values{}
	}
	return raw, v
}

// Archive renders the listing for the URL's query state.
// Partial or reordered query strings are redirected to the canonical four-parameter form first.
func Archive(api archive.Lister, perPage int, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, values := rawQuery(c)
		if !archive.IsCanonical(raw) {
			return c.Redirect(archive.ParseQuery(values).URL(), fiber.StatusFound)
		}

		ctrl := archive.NewController(c.UserContext(), api, nil, perPage, logger)
		defer ctrl.Dispose()

		ctrl.Mount(values)
		ctrl.Sync(c.UserContext())

		return render(c, fiber.StatusOK, "archive", "자료실", archiveData{
			State:      ctrl.State(),
			Categories: model.ListingCategories,
			Sorts:      archive.SortOptions,
		})
	}
}

// ArchiveAction applies one listing control to the state posted in the hidden fields and
// redirects to the URL the controller pushed.
func ArchiveAction(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		state := url.Values{}
		for _, key := range []string{"page", "category", "search", "sort_by"} {
			state.Set(key, c.FormValue(key))
		}

		nav := &navRecorder{}
		ctrl := archive.NewController(c.UserContext(), nil, nav, 0, logger)
		defer ctrl.Dispose()
		ctrl.Mount(state)

		switch {
		case c.FormValue("submit_search") != "":
			ctrl.SetDraft(c.FormValue("draft"))
			ctrl.SubmitSearch()
		case c.FormValue("set_category") != "":
			ctrl.SelectCategory(c.FormValue("set_category"))
		case c.FormValue("set_sort_by") != "":
			ctrl.SelectSort(c.FormValue("set_sort_by"))
		case c.FormValue("goto_page") != "":
			if page, err := strconv.Atoi(c.FormValue("goto_page")); err == nil {
				ctrl.GoToPage(page)
			}
		}

		target := nav.target
		if target == "" {
			target = ctrl.State().Query.URL()
		}
		return seeOther(c, target)
	}
}
