package handler

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"go.uber.org/zap"

	"archiveweb/internal/apiclient"
	"archiveweb/internal/archive"
	"archiveweb/internal/config"
	"archiveweb/internal/http/middleware"
	"archiveweb/internal/http/view"
	"archiveweb/internal/service"
	"archiveweb/internal/storage"
)

// Deps are the collaborators the routes are built from.
type Deps struct {
	API       apiclient.API
	Documents service.DocumentService
	Uploads   service.UploadService
	Reports   service.ReportService
	Accounts  service.AccountService
	Files     storage.FileStore
	Config    *config.AppConfig
	Logger    *zap.Logger
	// Health are probed by /health.
	Health []Pinger
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Only page routes resolve the session; assets, files and probes never call the backend for it.
func RegisterRoutes(app *fiber.App, d Deps) {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	app.Use("/static", filesystem.New(filesystem.Config{
		Root:   http.FS(view.Static()),
		MaxAge: 3600,
	}))
	app.Get("/health", HealthCheck(d.Health...))
	app.Get("/healthz", LivenessProbe())
	app.Get("/uploads/:name", Files(d.Files, logger))

	sess := middleware.Session(d.API, d.Config.Session, logger)

	app.Get("/", sess, Home(d.Documents))
	app.Get("/introduction", sess, Static("introduction", "소개"))
	app.Get("/terms", sess, Static("terms", "이용약관"))
	app.Get("/search", Search())
	app.Post("/logout", middleware.SessionWithoutValidation(d.Config.Session), Logout())

	app.Get(archive.Path, sess, Archive(d.API, d.Config.API.PerPage, logger))
	app.Post(archive.Path, ArchiveAction(logger))

	detail := NewDetailHandlers(d.API, d.Documents, d.Reports, d.Config.AppHost, logger)
	app.Get("/archive/detail/:id", sess, detail.Show)
	app.Post("/archive/detail/:id/download", sess, detail.Download)
	app.Post("/archive/detail/:id/report", sess, detail.Report)
	app.Get("/archive/detail/:id/delete", sess, detail.ConfirmDelete)
	app.Post("/archive/detail/:id/delete", sess, detail.Delete)

	upload := NewUploadHandlers(d.Uploads, d.Config.Upload, logger)
	app.Get("/upload", sess, upload.Form)
	app.Post("/upload", sess, upload.Submit)

	account := NewAccountHandlers(d.Accounts, d.Config.Upload.RedirectDelaySec, logger)
	app.Get("/login", sess, account.LoginForm)
	app.Post("/login", sess, account.Login)
	app.Get("/register", sess, account.RegisterForm)
	app.Post("/register", sess, account.Register)
	app.Get("/mypage", sess, account.MyPage)
}
