package application_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/trainerpanel/internal/application"
	"github.com/ericfisherdev/trainerpanel/internal/domain/model"
	"github.com/ericfisherdev/trainerpanel/internal/domain/port/driven"
)

func TestStoreClient_ListSuccess(t *testing.T) {
	store := newScenarioStore()
	client := application.NewStoreClient(store, true, slog.Default())

	result := client.List(context.Background())

	require.NoError(t, result.Err)
	assert.False(t, result.Fallback)
	assert.Equal(t, scenarioEntities, result.Entities)
}

func TestStoreClient_ListNilBecomesEmpty(t *testing.T) {
	client := application.NewStoreClient(&mockEntityStore{}, true, slog.Default())

	result := client.List(context.Background())

	assert.NotNil(t, result.Entities)
	assert.Empty(t, result.Entities)
}

func TestStoreClient_ListFailureFallsBackToSamples(t *testing.T) {
	store := &mockEntityStore{listErr: errServer}
	client := application.NewStoreClient(store, true, slog.Default())

	result := client.List(context.Background())

	assert.NoError(t, result.Err)
	assert.True(t, result.Fallback)
	assert.Equal(t, model.SampleEntities(), result.Entities)
}

func TestStoreClient_ListFailureWithoutFallback(t *testing.T) {
	store := &mockEntityStore{listErr: errServer}
	client := application.NewStoreClient(store, false, slog.Default())

	result := client.List(context.Background())

	assert.ErrorIs(t, result.Err, driven.ErrTransport)
	assert.False(t, result.Fallback)
	assert.Empty(t, result.Entities)
}

func TestStoreClient_CreateFeedback(t *testing.T) {
	draft := model.Draft{Name: "Dee", Contact: "d@x.com", Secret: "p4"}

	t.Run("success navigates to list", func(t *testing.T) {
		store := &mockEntityStore{}
		fb := application.NewStoreClient(store, true, slog.Default()).Create(context.Background(), draft)

		assert.Equal(t, application.Feedback{Message: application.MsgCreated, NavigateToList: true}, fb)
		assert.Equal(t, []model.Draft{draft}, store.creates)
	})

	t.Run("failure alerts without navigation", func(t *testing.T) {
		store := &mockEntityStore{createErr: errors.New("unreachable")}
		fb := application.NewStoreClient(store, true, slog.Default()).Create(context.Background(), draft)

		assert.True(t, fb.Failed)
		assert.False(t, fb.NavigateToList)
		assert.Equal(t, application.MsgCreateFailed, fb.Message)
		assert.Len(t, store.creates, 1, "no retry")
	})
}

func TestStoreClient_UpdateFeedback(t *testing.T) {
	draft := model.Draft{Name: "Ann B", Contact: "a@x.com", Secret: "p1"}

	store := &mockEntityStore{}
	fb := application.NewStoreClient(store, true, slog.Default()).Update(context.Background(), 1, draft)
	assert.True(t, fb.NavigateToList)
	assert.Equal(t, application.MsgUpdated, fb.Message)
	assert.Equal(t, []updateCall{{ID: 1, Draft: draft}}, store.updates)

	store = &mockEntityStore{updateErr: errServer}
	fb = application.NewStoreClient(store, true, slog.Default()).Update(context.Background(), 1, draft)
	assert.True(t, fb.Failed)
	assert.False(t, fb.NavigateToList)
	assert.Equal(t, application.MsgUpdateFailed, fb.Message)
}

func TestStoreClient_DeleteFeedback(t *testing.T) {
	fb := application.NewStoreClient(newScenarioStore(), true, slog.Default()).Delete(context.Background(), 2)
	assert.Equal(t, application.Feedback{Message: application.MsgDeleted}, fb)

	fb = application.NewStoreClient(&mockEntityStore{deleteErr: errServer}, true, slog.Default()).Delete(context.Background(), 2)
	assert.Equal(t, application.Feedback{Message: application.MsgDeleteFailed, Failed: true}, fb)
}
