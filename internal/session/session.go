// Package session holds the authentication state of one browser session.
package session

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"archiveweb/internal/model"
)

// ErrNoToken is returned by Login when called with an empty token.
var ErrNoToken = errors.New("session token is empty")

// TokenStore persists the bearer token between requests.
type TokenStore interface {
	Token() string
	SetToken(token string)
	ClearToken()
}

// UserFetcher validates a token by resolving it to a user.
type UserFetcher interface {
	CurrentUser(ctx context.Context, token string) (*model.User, error)
}

// Context is the auth state consumers receive explicitly.
// It starts in the loading state; Init, Login and Logout move it between logged-in and logged-out.
type Context struct {
	mu      sync.RWMutex
	store   TokenStore
	users   UserFetcher
	logger  *zap.Logger
	user    *model.User
	err     error
	loading bool
}

func New(store TokenStore, users UserFetcher, logger *zap.Logger) *Context {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Context{store: store, users: users, logger: logger, loading: true}
}

// Init validates a stored token, if any. A token that fails validation is discarded.
func (c *Context) Init(ctx context.Context) {
	token := c.store.Token()
	if token == "" {
		c.mu.Lock()
		c.user = nil
		c.err = nil
		c.loading = false
		c.mu.Unlock()
		return
	}
	_ = c.validate(ctx, token)
}

// Login persists token and validates it. The validation error is returned so the caller can show it.
func (c *Context) Login(ctx context.Context, token string) error {
	if token == "" {
		return ErrNoToken
	}
	c.store.SetToken(token)
	return c.validate(ctx, token)
}

// Logout clears the token and state without contacting the backend.
func (c *Context) Logout() {
	c.store.ClearToken()
	c.mu.Lock()
	c.user = nil
	c.err = nil
	c.loading = false
	c.mu.Unlock()
}

func (c *Context) validate(ctx context.Context, token string) error {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	user, err := c.users.CurrentUser(ctx, token)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.logger.Info("session token rejected", zap.Error(err))
		c.store.ClearToken()
		c.user = nil
		c.err = err
		return err
	}
	c.user = user
	c.err = nil
	return nil
}

func (c *Context) IsAuthenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user != nil
}

// User returns the validated user, or nil when logged out.
func (c *Context) User() *model.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user
}

// Err returns why the last token validation failed, or nil.
func (c *Context) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

func (c *Context) IsLoading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// Token returns the stored bearer token, which may be empty.
func (c *Context) Token() string {
	return c.store.Token()
}

// CanModify reports whether user may be offered edit and delete for doc.
// The backend re-checks ownership on every mutation.
func CanModify(user *model.User, doc *model.Document) bool {
	if user == nil || doc == nil {
		return false
	}
	return user.Name != "" && user.Name == doc.Author
}

// MemoryStore is a TokenStore held in memory.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

func (m *MemoryStore) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *MemoryStore) SetToken(token string) {
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
}

func (m *MemoryStore) ClearToken() {
	m.SetToken("")
}
