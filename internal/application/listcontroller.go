package application

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/ericfisherdev/trainerpanel/internal/domain/model"
)

// ListController owns the records currently shown in the list view and the
// pending-deletion slot. The cache is only ever replaced wholesale by a
// list fetch; filtering reads it without changing it.
//
// HTTP handlers call the controller concurrently, so all state is guarded by
// mu. Store calls are made without holding the lock.
type ListController struct {
	store *StoreClient

	mu       sync.Mutex
	records  []model.Entity
	pending  *int64
	fallback bool
	listErr  error
}

// NewListController creates a controller with an empty cache and no pending
// deletion.
func NewListController(store *StoreClient) *ListController {
	return &ListController{
		store:   store,
		records: []model.Entity{},
	}
}

// Refresh fetches the full collection, replaces the cache and returns a copy
// of the new contents.
func (c *ListController) Refresh(ctx context.Context) []model.Entity {
	result := c.store.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.records = result.Entities
	c.fallback = result.Fallback
	c.listErr = result.Err

	return slices.Clone(c.records)
}

// Records returns a copy of the cached records.
func (c *ListController) Records() []model.Entity {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.records)
}

// ShowingSamples reports whether the cache holds the sample dataset because
// the last fetch failed.
func (c *ListController) ShowingSamples() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fallback
}

// ListError returns the failure of the last fetch when it was not masked by
// the sample dataset, or nil.
func (c *ListController) ListError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.listErr
}

// Lookup returns the cached record with the given id.
func (c *ListController) Lookup(id int64) (model.Entity, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range c.records {
		if e.ID == id {
			return e, true
		}
	}
	return model.Entity{}, false
}

// Filter returns the cached records whose name contains query, ignoring case.
// An empty query returns every cached record. The cache is never refetched
// or modified.
func (c *ListController) Filter(query string) []model.Entity {
	c.mu.Lock()
	defer c.mu.Unlock()
	return FilterByName(c.records, query)
}

// FilterByName returns the records whose Name contains query, ignoring case,
// preserving their order. The input slice is not modified.
func FilterByName(records []model.Entity, query string) []model.Entity {
	needle := strings.ToLower(query)

	out := make([]model.Entity, 0, len(records))
	for _, e := range records {
		if strings.Contains(strings.ToLower(e.Name), needle) {
			out = append(out, e)
		}
	}
	return out
}

// RequestDelete stages id for deletion. A previously staged id is discarded.
func (c *ListController) RequestDelete(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = &id
}

// Pending returns the staged id, if any.
func (c *ListController) Pending() (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending == nil {
		return 0, false
	}
	return *c.pending, true
}

// CancelDelete clears the pending-deletion slot without deleting anything.
func (c *ListController) CancelDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = nil
}

// ConfirmDelete deletes the staged record and clears the slot. On success
// the full list is fetched again before returning. With nothing staged it
// does nothing and returns a zero Feedback.
func (c *ListController) ConfirmDelete(ctx context.Context) Feedback {
	c.mu.Lock()
	if c.pending == nil {
		c.mu.Unlock()
		return Feedback{}
	}
	id := *c.pending
	c.pending = nil
	c.mu.Unlock()

	fb := c.store.Delete(ctx, id)
	if !fb.Failed {
		c.Refresh(ctx)
	}
	return fb
}

// Create submits a new entity.
func (c *ListController) Create(ctx context.Context, draft model.Draft) Feedback {
	return c.store.Create(ctx, draft)
}

// Update submits changes to an existing entity.
func (c *ListController) Update(ctx context.Context, id int64, draft model.Draft) Feedback {
	return c.store.Update(ctx, id, draft)
}
