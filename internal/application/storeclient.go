// Package application contains use-case orchestration services.
package application

import (
	"context"
	"log/slog"

	"github.com/ericfisherdev/trainerpanel/internal/domain/model"
	"github.com/ericfisherdev/trainerpanel/internal/domain/port/driven"
)

// User-facing messages for store operations.
const (
	MsgCreated      = "Entity created successfully!"
	MsgCreateFailed = "Failed to create entity. Please try again."
	MsgUpdated      = "Entity updated successfully!"
	MsgUpdateFailed = "Failed to update entity. Please try again."
	MsgDeleted      = "Entity deleted successfully!"
	MsgDeleteFailed = "Failed to delete entity. Please try again."
)

// Feedback is the user-visible outcome of a mutating operation. A zero
// Feedback means nothing happened and nothing should be shown.
type Feedback struct {
	Message        string
	Failed         bool
	NavigateToList bool
}

// IsZero reports whether f carries no message.
func (f Feedback) IsZero() bool { return f.Message == "" }

// ListResult is the outcome of a list call. Err is set only when the fetch
// failed and the sample fallback is disabled; with the fallback enabled a
// failure yields the sample dataset with Fallback set and a nil Err.
type ListResult struct {
	Entities []model.Entity
	Fallback bool
	Err      error
}

// StoreClient maps the four collection operations onto the EntityStore port
// and turns their outcomes into data for the view.
type StoreClient struct {
	store          driven.EntityStore
	sampleFallback bool
	logger         *slog.Logger
}

// NewStoreClient creates a StoreClient. When sampleFallback is true a failed
// list call returns model.SampleEntities instead of an error.
func NewStoreClient(store driven.EntityStore, sampleFallback bool, logger *slog.Logger) *StoreClient {
	return &StoreClient{
		store:          store,
		sampleFallback: sampleFallback,
		logger:         logger,
	}
}

// List fetches all entities. Failures are logged and never returned to the
// caller as a bare error; see ListResult.
func (s *StoreClient) List(ctx context.Context) ListResult {
	entities, err := s.store.List(ctx)
	if err == nil {
		if entities == nil {
			entities = []model.Entity{}
		}
		return ListResult{Entities: entities}
	}

	if s.sampleFallback {
		s.logger.Warn("error fetching entities, serving sample dataset", "error", err)
		return ListResult{Entities: model.SampleEntities(), Fallback: true}
	}

	s.logger.Error("error fetching entities", "error", err)
	return ListResult{Entities: []model.Entity{}, Err: err}
}

// Create submits a new entity. On success the view should navigate back to
// the list.
func (s *StoreClient) Create(ctx context.Context, draft model.Draft) Feedback {
	if err := s.store.Create(ctx, draft); err != nil {
		s.logger.Error("error creating entity", "error", err)
		return Feedback{Message: MsgCreateFailed, Failed: true}
	}
	return Feedback{Message: MsgCreated, NavigateToList: true}
}

// Update replaces the entity with the given id. On success the view should
// navigate back to the list.
func (s *StoreClient) Update(ctx context.Context, id int64, draft model.Draft) Feedback {
	if err := s.store.Update(ctx, id, draft); err != nil {
		s.logger.Error("error updating entity", "id", id, "error", err)
		return Feedback{Message: MsgUpdateFailed, Failed: true}
	}
	return Feedback{Message: MsgUpdated, NavigateToList: true}
}

// Delete removes the entity with the given id. Refreshing the list after a
// successful delete is the caller's job.
func (s *StoreClient) Delete(ctx context.Context, id int64) Feedback {
	if err := s.store.Delete(ctx, id); err != nil {
		s.logger.Error("error deleting entity", "id", id, "error", err)
		return Feedback{Message: MsgDeleteFailed, Failed: true}
	}
	return Feedback{Message: MsgDeleted}
}
