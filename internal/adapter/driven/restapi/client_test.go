package restapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gregjones/httpcache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/trainerpanel/internal/adapter/driven/restapi"
	"github.com/ericfisherdev/trainerpanel/internal/domain/model"
	"github.com/ericfisherdev/trainerpanel/internal/domain/port/driven"
)

const basePath = "/APIRestTrainer/trainer"

// newTestClient creates a Client backed by the given httptest handler.
func newTestClient(t *testing.T, handler http.Handler) *restapi.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := restapi.NewClientWithHTTPClient(server.Client(), server.URL+basePath, slog.Default())
	require.NoError(t, err)

	return client
}

type entityJSON struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Secret  string `json:"secret"`
}

func TestList_DecodesInOrder(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, basePath, r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]entityJSON{
			{ID: 1, Name: "Ann", Contact: "a@x.com", Secret: "p1"},
			{ID: 2, Name: "Bo", Contact: "b@x.com", Secret: "p2"},
			{ID: 3, Name: "Cy", Contact: "c@x.com", Secret: "p3"},
		})
	})

	client := newTestClient(t, handler)
	got, err := client.List(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, model.Entity{ID: 1, Name: "Ann", Contact: "a@x.com", Secret: "p1"}, got[0])
	assert.Equal(t, int64(2), got[1].ID)
	assert.Equal(t, "Cy", got[2].Name)
}

func TestList_EmptyArray(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[]`))
	})

	client := newTestClient(t, handler)
	got, err := client.List(context.Background())

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestList_ServerErrorIsTransportFailure(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	client := newTestClient(t, handler)
	_, err := client.List(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, driven.ErrTransport)

	var te *driven.TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, http.StatusInternalServerError, te.StatusCode)
}

func TestList_MalformedBody(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"not":"an array"}`))
	})

	client := newTestClient(t, handler)
	_, err := client.List(context.Background())

	assert.ErrorIs(t, err, driven.ErrTransport)
}

func TestList_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL + basePath
	server.Close()

	client, err := restapi.NewClientWithHTTPClient(&http.Client{}, url, slog.Default())
	require.NoError(t, err)

	_, err = client.List(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, driven.ErrTransport)

	var te *driven.TransportError
	require.True(t, errors.As(err, &te))
	assert.Zero(t, te.StatusCode)
}

func TestList_RevalidatesWithETag(t *testing.T) {
	var calls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+basePath, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.Header.Get("If-None-Match") == `"v1"` {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", `"v1"`)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"name":"Ann","contact":"a@x.com","secret":"p1"}]`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	httpClient := &http.Client{Transport: httpcache.NewMemoryCacheTransport()}
	client, err := restapi.NewClientWithHTTPClient(httpClient, server.URL+basePath, slog.Default())
	require.NoError(t, err)

	first, err := client.List(context.Background())
	require.NoError(t, err)

	second, err := client.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(2), calls.Load(), "every list must reach the backend")
	assert.Equal(t, first, second)
}

func TestCreate_PostsDraftWithoutID(t *testing.T) {
	var got map[string]any

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, basePath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(http.StatusCreated)
	})

	client := newTestClient(t, handler)
	err := client.Create(context.Background(), model.Draft{Name: "Ann", Contact: "a@x.com", Secret: "p1"})

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "Ann", "contact": "a@x.com", "secret": "p1"}, got)
}

func TestCreate_RejectedByBackend(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	client := newTestClient(t, handler)
	err := client.Create(context.Background(), model.Draft{})

	assert.ErrorIs(t, err, driven.ErrTransport)
}

func TestUpdate_PutsToEntityPath(t *testing.T) {
	var got entityJSON

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, basePath+"/42", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	})

	client := newTestClient(t, handler)
	err := client.Update(context.Background(), 42, model.Draft{Name: "Bo", Contact: "b@x.com", Secret: "p2"})

	require.NoError(t, err)
	assert.Equal(t, entityJSON{ID: 42, Name: "Bo", Contact: "b@x.com", Secret: "p2"}, got)
}

func TestDelete_SendsNoBody(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, basePath+"/3", r.URL.Path)

		body, _ := io.ReadAll(r.Body)
		assert.Empty(t, body)
		w.WriteHeader(http.StatusNoContent)
	})

	client := newTestClient(t, handler)
	require.NoError(t, client.Delete(context.Background(), 3))
}

func TestDelete_NotFoundIsTransportFailure(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	client := newTestClient(t, handler)
	err := client.Delete(context.Background(), 9)

	var te *driven.TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, http.StatusNotFound, te.StatusCode)
}

func TestNewClientWithHTTPClient_RejectsBadScheme(t *testing.T) {
	_, err := restapi.NewClientWithHTTPClient(&http.Client{}, "ftp://example.com/x", slog.Default())
	assert.Error(t, err)
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, basePath+"/5", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := restapi.NewClientWithHTTPClient(server.Client(), server.URL+basePath+"/", slog.Default())
	require.NoError(t, err)
	require.NoError(t, client.Delete(context.Background(), 5))
}
