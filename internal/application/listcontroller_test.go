package application_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/trainerpanel/internal/application"
	"github.com/ericfisherdev/trainerpanel/internal/domain/model"
	"github.com/ericfisherdev/trainerpanel/internal/domain/port/driven"
)

func ids(entities []model.Entity) []int64 {
	out := make([]int64, 0, len(entities))
	for _, e := range entities {
		out = append(out, e.ID)
	}
	return out
}

func TestListController_RefreshReplacesCache(t *testing.T) {
	store := newScenarioStore()
	ctrl := newController(store, true)

	got := ctrl.Refresh(context.Background())
	assert.Equal(t, []int64{1, 2, 3}, ids(got))

	store.entities = []model.Entity{{ID: 9, Name: "Zed", Contact: "z@x.com"}}
	got = ctrl.Refresh(context.Background())

	assert.Equal(t, []int64{9}, ids(got))
	assert.Equal(t, []int64{9}, ids(ctrl.Records()), "cache replaced, not merged")
}

func TestListController_RecordsIsCopy(t *testing.T) {
	ctrl := newController(newScenarioStore(), true)
	ctrl.Refresh(context.Background())

	records := ctrl.Records()
	records[0].Name = "mutated"

	assert.Equal(t, "Ann", ctrl.Records()[0].Name)
}

func TestListController_FilterScenario(t *testing.T) {
	store := newScenarioStore()
	ctrl := newController(store, true)
	ctrl.Refresh(context.Background())

	assert.Len(t, ctrl.Filter(""), 3)

	filtered := ctrl.Filter("an")
	require.Len(t, filtered, 1)
	assert.Equal(t, int64(1), filtered[0].ID)

	assert.Equal(t, []int64{1, 2, 3}, ids(ctrl.Filter("")))
	assert.Equal(t, 1, store.listCalls, "filtering never refetches")
}

func TestListController_FilterIsCaseInsensitiveOnNameOnly(t *testing.T) {
	ctrl := newController(newScenarioStore(), true)
	ctrl.Refresh(context.Background())

	assert.Equal(t, []int64{2}, ids(ctrl.Filter("BO")))
	assert.Empty(t, ctrl.Filter("x.com"), "contact is not searched")
	assert.Empty(t, ctrl.Filter("p1"), "secret is not searched")
}

func TestFilterByName_DoesNotModifyInput(t *testing.T) {
	input := []model.Entity{{ID: 1, Name: "Ann"}, {ID: 2, Name: "Bo"}}

	out := application.FilterByName(input, "bo")

	assert.Equal(t, []int64{2}, ids(out))
	assert.Equal(t, []int64{1, 2}, ids(input))
}

func TestListController_ListFailureServesSamples(t *testing.T) {
	store := &mockEntityStore{listErr: errServer}
	ctrl := newController(store, true)

	got := ctrl.Refresh(context.Background())

	assert.Equal(t, model.SampleEntities(), got)
	assert.True(t, ctrl.ShowingSamples())
	assert.NoError(t, ctrl.ListError())
}

func TestListController_ListFailureWithoutFallbackIsReported(t *testing.T) {
	store := &mockEntityStore{listErr: errServer}
	ctrl := newController(store, false)

	got := ctrl.Refresh(context.Background())

	assert.Empty(t, got)
	assert.False(t, ctrl.ShowingSamples())
	assert.ErrorIs(t, ctrl.ListError(), driven.ErrTransport)

	store.mu.Lock()
	store.listErr = nil
	store.entities = newScenarioStore().entities
	store.mu.Unlock()

	ctrl.Refresh(context.Background())
	assert.NoError(t, ctrl.ListError())
}

func TestListController_PendingSlotLastSelectionWins(t *testing.T) {
	ctrl := newController(newScenarioStore(), true)

	_, ok := ctrl.Pending()
	assert.False(t, ok, "starts idle")

	ctrl.RequestDelete(1)
	ctrl.RequestDelete(2)

	id, ok := ctrl.Pending()
	require.True(t, ok)
	assert.Equal(t, int64(2), id)
}

func TestListController_CancelDeleteHasNoSideEffect(t *testing.T) {
	store := newScenarioStore()
	ctrl := newController(store, true)
	ctrl.Refresh(context.Background())

	ctrl.RequestDelete(1)
	ctrl.CancelDelete()

	_, ok := ctrl.Pending()
	assert.False(t, ok)
	assert.Empty(t, store.deletes)
	assert.Equal(t, 1, store.listCalls)
}

func TestListController_ConfirmDeleteRefetches(t *testing.T) {
	store := newScenarioStore()
	ctrl := newController(store, true)
	ctrl.Refresh(context.Background())

	ctrl.RequestDelete(1)
	ctrl.RequestDelete(2)
	fb := ctrl.ConfirmDelete(context.Background())

	assert.Equal(t, application.MsgDeleted, fb.Message)
	assert.False(t, fb.NavigateToList)
	assert.Equal(t, []deleteCall{{ID: 2}}, store.deletes, "only the last selection is deleted")
	assert.Equal(t, 2, store.listCalls, "a fresh list follows a successful delete")
	assert.Equal(t, []int64{1, 3}, ids(ctrl.Records()))

	_, ok := ctrl.Pending()
	assert.False(t, ok)
}

func TestListController_ConfirmDeleteFailureKeepsCache(t *testing.T) {
	store := newScenarioStore()
	ctrl := newController(store, true)
	ctrl.Refresh(context.Background())

	store.deleteErr = errors.New("network unreachable")
	ctrl.RequestDelete(3)
	fb := ctrl.ConfirmDelete(context.Background())

	assert.True(t, fb.Failed)
	assert.Equal(t, application.MsgDeleteFailed, fb.Message)
	assert.False(t, fb.NavigateToList)
	assert.Equal(t, 1, store.listCalls, "no refetch on failure")
	assert.Equal(t, scenarioEntities, ctrl.Records())

	_, ok := ctrl.Pending()
	assert.False(t, ok, "slot cleared even when the delete fails")
}

func TestListController_ConfirmWithoutPendingIsNoop(t *testing.T) {
	store := newScenarioStore()
	ctrl := newController(store, true)

	fb := ctrl.ConfirmDelete(context.Background())

	assert.True(t, fb.IsZero())
	assert.Empty(t, store.deletes)
}

func TestListController_Lookup(t *testing.T) {
	ctrl := newController(newScenarioStore(), true)
	ctrl.Refresh(context.Background())

	e, ok := ctrl.Lookup(3)
	require.True(t, ok)
	assert.Equal(t, "p3", e.Secret)

	_, ok = ctrl.Lookup(42)
	assert.False(t, ok)
}

func TestListController_CreateAndUpdateDelegate(t *testing.T) {
	store := newScenarioStore()
	ctrl := newController(store, true)
	draft := model.Draft{Name: "Dee", Contact: "d@x.com", Secret: "p4"}

	assert.True(t, ctrl.Create(context.Background(), draft).NavigateToList)
	assert.True(t, ctrl.Update(context.Background(), 1, draft).NavigateToList)
	assert.Equal(t, []model.Draft{draft}, store.creates)
	assert.Equal(t, []updateCall{{ID: 1, Draft: draft}}, store.updates)
}

func TestListController_ConcurrentAccess(t *testing.T) {
	ctrl := newController(newScenarioStore(), true)

	const goroutines = 50
	var wg sync.WaitGroup
	wg.Add(goroutines * 3)

	for i := range goroutines {
		go func() {
			defer wg.Done()
			ctrl.Refresh(context.Background())
		}()
		go func() {
			defer wg.Done()
			_ = ctrl.Filter("a")
		}()
		go func() {
			defer wg.Done()
			ctrl.RequestDelete(int64(i))
		}()
	}

	wg.Wait()

	_, ok := ctrl.Pending()
	assert.True(t, ok)
	assert.Len(t, ctrl.Records(), 3)
}
