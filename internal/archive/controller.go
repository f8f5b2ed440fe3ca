package archive

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"go.uber.org/zap"

	"archiveweb/internal/apiclient"
	"archiveweb/internal/model"
)

// Lister fetches one page of the listing.
type Lister interface {
	ListDocuments(ctx context.Context, p apiclient.ListParams) (*model.DocumentPage, error)
}

// Navigator receives the URL of every state change.
type Navigator interface {
	Push(url string)
}

// State is a snapshot of the controller for rendering.
type State struct {
	Query          Query
	Draft          string
	Documents      []model.Document
	TotalPages     int
	TotalDocuments int
	Loading        bool
	Err            error
	Pages          []int
}

// ErrorMessage is the user-facing text of Err.
func (s State) ErrorMessage() string {
	return apiclient.Message(s.Err)
}

// Controller drives the listing for the lifetime of one page.
// Control actions update the query and push its URL; Sync fetches when the query changed.
type Controller struct {
	mu     sync.Mutex
	api    Lister
	nav    Navigator
	logger *zap.Logger

	perPage int

	life   context.Context
	cancel context.CancelFunc

	query   Query
	draft   string
	fetched *Query
	gen     uint64

	docs     []model.Document
	pages    int
	total    int
	loading  bool
	err      error
	disposed bool
}

// NewController returns a controller bound to parent; cancelling parent has the same effect as Dispose.
func NewController(parent context.Context, api Lister, nav Navigator, perPage int, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	life, cancel := context.WithCancel(parent)
	return &Controller{
		api:     api,
		nav:     nav,
		logger:  logger,
		perPage: perPage,
		life:    life,
		cancel:  cancel,
		query:   DefaultQuery(),
	}
}

// Mount seeds the state from URL parameters without pushing a URL.
func (c *Controller) Mount(v url.Values) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query = ParseQuery(v)
	c.draft = c.query.Search
}

func (c *Controller) SelectCategory(category string) {
	c.apply(func(q Query) (Query, bool) { return q.WithCategory(category), true })
}

// SelectSort ignores orders the backend does not know.
func (c *Controller) SelectSort(sortBy string) {
	c.apply(func(q Query) (Query, bool) {
		if !ValidSort(sortBy) {
			return q, false
		}
		return q.WithSort(sortBy), true
	})
}

// GoToPage ignores pages below 1 or beyond a known total.
func (c *Controller) GoToPage(page int) {
	c.apply(func(q Query) (Query, bool) {
		if page < 1 || (c.fetched != nil && c.pages > 0 && page > c.pages) {
			return q, false
		}
		return q.WithPage(page), true
	})
}

// SetDraft updates the search box text only.
func (c *Controller) SetDraft(s string) {
	c.mu.Lock()
	c.draft = s
	c.mu.Unlock()
}

// SubmitSearch commits the draft as the search term.
func (c *Controller) SubmitSearch() {
	c.apply(func(q Query) (Query, bool) {
		c.draft = strings.TrimSpace(c.draft)
		return q.WithSearch(c.draft), true
	})
}

func (c *Controller) apply(change func(Query) (Query, bool)) {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	next, ok := change(c.query)
	if !ok {
		c.mu.Unlock()
		return
	}
	c.query = next
	if next.Search != c.draft {
		c.draft = next.Search
	}
	target := next.URL()
	c.mu.Unlock()

	if c.nav != nil {
		c.nav.Push(target)
	}
}

// Sync fetches the listing if the query changed since the last fetch.
// Failures are kept in the state. Results arriving after Dispose or after a newer Sync are dropped.
func (c *Controller) Sync(ctx context.Context) {
	c.mu.Lock()
	if c.disposed || (c.fetched != nil && *c.fetched == c.query) {
		c.mu.Unlock()
		return
	}
	c.gen++
	gen := c.gen
	q := c.query
	c.loading = true
	c.err = nil
	c.mu.Unlock()

	fetchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(c.life, cancel)
	defer stop()

	page, err := c.api.ListDocuments(fetchCtx, q.Params(c.perPage))

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed || gen != c.gen {
		c.logger.Debug("discarding stale listing result", zap.Uint64("generation", gen))
		return
	}
	c.loading = false
	if err != nil {
		c.logger.Warn("listing fetch failed", zap.String("query", q.Encode()), zap.Error(err))
		c.err = err
		c.docs = nil
		c.pages = 0
		c.total = 0
		c.fetched = &q
		return
	}

	c.docs = page.Documents
	c.pages = page.TotalPages
	c.total = page.TotalDocuments
	if page.CurrentPage > 0 && page.CurrentPage != q.Page && c.query == q {
		c.query.Page = page.CurrentPage
		q.Page = page.CurrentPage
	}
	c.fetched = &q
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	docs := make([]model.Document, len(c.docs))
	copy(docs, c.docs)
	return State{
		Query:          c.query,
		Draft:          c.draft,
		Documents:      docs,
		TotalPages:     c.pages,
		TotalDocuments: c.total,
		Loading:        c.loading,
		Err:            c.err,
		Pages:          PageWindow(c.query.Page, c.pages),
	}
}

// Dispose cancels any in-flight fetch and freezes the state.
func (c *Controller) Dispose() {
	c.mu.Lock()
	c.disposed = true
	c.mu.Unlock()
	c.cancel()
}
