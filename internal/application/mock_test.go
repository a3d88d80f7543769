package application_test

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ericfisherdev/trainerpanel/internal/application"
	"github.com/ericfisherdev/trainerpanel/internal/domain/model"
	"github.com/ericfisherdev/trainerpanel/internal/domain/port/driven"
)

// --- Mock implementations ---

type deleteCall struct {
	ID int64
}

type updateCall struct {
	ID    int64
	Draft model.Draft
}

// mockEntityStore records calls and returns canned results.
type mockEntityStore struct {
	mu sync.Mutex

	entities  []model.Entity
	listErr   error
	createErr error
	updateErr error
	deleteErr error

	listCalls int
	creates   []model.Draft
	updates   []updateCall
	deletes   []deleteCall
}

func (m *mockEntityStore) List(_ context.Context) ([]model.Entity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]model.Entity, len(m.entities))
	copy(out, m.entities)
	return out, nil
}

func (m *mockEntityStore) Create(_ context.Context, draft model.Draft) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates = append(m.creates, draft)
	return m.createErr
}

func (m *mockEntityStore) Update(_ context.Context, id int64, draft model.Draft) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates = append(m.updates, updateCall{ID: id, Draft: draft})
	return m.updateErr
}

func (m *mockEntityStore) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes = append(m.deletes, deleteCall{ID: id})
	if m.deleteErr != nil {
		return m.deleteErr
	}
	// Mirror the backend: the record is gone on the next list.
	kept := m.entities[:0]
	for _, e := range m.entities {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	m.entities = kept
	return nil
}

var scenarioEntities = []model.Entity{
	{ID: 1, Name: "Ann", Contact: "a@x.com", Secret: "p1"},
	{ID: 2, Name: "Bo", Contact: "b@x.com", Secret: "p2"},
	{ID: 3, Name: "Cy", Contact: "c@x.com", Secret: "p3"},
}

func newScenarioStore() *mockEntityStore {
	entities := make([]model.Entity, len(scenarioEntities))
	copy(entities, scenarioEntities)
	return &mockEntityStore{entities: entities}
}

func newController(store driven.EntityStore, fallback bool) *application.ListController {
	return application.NewListController(application.NewStoreClient(store, fallback, slog.Default()))
}

var errServer = &driven.TransportError{Op: "list entities", StatusCode: 500}
