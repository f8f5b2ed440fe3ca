package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"archiveweb/internal/config"
	"archiveweb/internal/session"
)

// SessionLocalKey is the locals key holding the request's *session.Context.
const SessionLocalKey = "session"

// cookieStore keeps the bearer token in an HTTP-only cookie.
// Writes are visible to later reads within the same request.
type cookieStore struct {
	c     *fiber.Ctx
	cfg   config.SessionConfig
	token string
}

func newCookieStore(c *fiber.Ctx, cfg config.SessionConfig) *cookieStore {
	return &cookieStore{c: c, cfg: cfg, token: c.Cookies(cfg.CookieName)}
}

func (s *cookieStore) Token() string {
	return s.token
}

func (s *cookieStore) SetToken(token string) {
	s.token = token
	s.c.Cookie(&fiber.Cookie{
		Name:     s.cfg.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   s.cfg.CookieMaxAgeSec,
		Secure:   s.cfg.CookieSecure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (s *cookieStore) ClearToken() {
	had := s.token != "" || s.c.Cookies(s.cfg.CookieName) != ""
	s.token = ""
	if !had {
		return
	}
	s.c.Cookie(&fiber.Cookie{
		Name:     s.cfg.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Secure:   s.cfg.CookieSecure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// Session builds and initialises one session.Context per request from the token cookie.
func Session(users session.UserFetcher, cfg config.SessionConfig, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := session.New(newCookieStore(c, cfg), users, logger.With(zap.String("request_id", RequestIDFrom(c))))
		sess.Init(c.UserContext())
		c.Locals(SessionLocalKey, sess)
		return c.Next()
	}
}

// SessionWithoutValidation stores a session over the token cookie without contacting the backend.
// It serves handlers that only drop the token.
func SessionWithoutValidation(cfg config.SessionConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(SessionLocalKey, session.New(newCookieStore(c, cfg), nil, nil))
		return c.Next()
	}
}

// SessionFrom returns the request's session. Handlers mounted without Session get a logged-out context.
func SessionFrom(c *fiber.Ctx) *session.Context {
	if sess, ok := c.Locals(SessionLocalKey).(*session.Context); ok {
		return sess
	}
	sess := session.New(&session.MemoryStore{}, nil, nil)
	sess.Init(c.UserContext())
	return sess
}
