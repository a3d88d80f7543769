// Package httphandler serves the trainer collection endpoint as a JSON API
// backed by an EntityRepo, plus the health check shared by both binaries.
package httphandler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ericfisherdev/trainerpanel/internal/domain/model"
	"github.com/ericfisherdev/trainerpanel/internal/domain/port/driven"
)

// maxRequestBytes caps JSON request bodies.
const maxRequestBytes = 1 << 20

// Handler is the HTTP driving adapter that serves the entity collection.
type Handler struct {
	repo   driven.EntityRepo
	logger *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(repo driven.EntityRepo, logger *slog.Logger) *Handler {
	return &Handler{
		repo:   repo,
		logger: logger,
	}
}

// NewServeMux creates an http.Handler with the collection routes mounted
// under basePath and the health check at /healthz, wrapped with logging and
// recovery middleware.
func NewServeMux(h *Handler, basePath string, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	RegisterRoutes(mux, h, basePath)
	mux.HandleFunc("GET /healthz", Health)

	return ApplyMiddleware(mux, logger)
}

// RegisterRoutes mounts the collection endpoint on mux at basePath.
func RegisterRoutes(mux *http.ServeMux, h *Handler, basePath string) {
	basePath = strings.TrimSuffix(basePath, "/")

	mux.HandleFunc("GET "+basePath, h.List)
	mux.HandleFunc("POST "+basePath, h.Create)
	mux.HandleFunc("PUT "+basePath+"/{id}", h.Update)
	mux.HandleFunc("DELETE "+basePath+"/{id}", h.Delete)
}

// List returns every stored entity in id order.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	entities, err := h.repo.ListAll(r.Context())
	if err != nil {
		h.logger.Error("failed to list entities", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := make([]EntityResponse, 0, len(entities))
	for _, e := range entities {
		resp = append(resp, toEntityResponse(e))
	}

	writeJSON(w, http.StatusOK, resp)
}

// Create stores a new entity. Any id in the body is ignored.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.decodeDraft(w, r)
	if !ok {
		return
	}

	entity, err := h.repo.Insert(r.Context(), draft)
	if err != nil {
		h.logger.Error("failed to create entity", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("entity created", "id", entity.ID)
	writeJSON(w, http.StatusCreated, toEntityResponse(entity))
}

// Update replaces the entity identified by the path id. The path id wins over
// any id in the body.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	draft, ok := h.decodeDraft(w, r)
	if !ok {
		return
	}

	entity := draft.WithID(id)
	if err := h.repo.Update(r.Context(), entity); err != nil {
		if errors.Is(err, driven.ErrEntityNotFound) {
			writeError(w, http.StatusNotFound, "entity not found")
			return
		}
		h.logger.Error("failed to update entity", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("entity updated", "id", id)
	writeJSON(w, http.StatusOK, toEntityResponse(entity))
}

// Delete removes the entity identified by the path id.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, driven.ErrEntityNotFound) {
			writeError(w, http.StatusNotFound, "entity not found")
			return
		}
		h.logger.Error("failed to delete entity", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("entity deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// Health returns a simple health check response.
func Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// decodeDraft reads an EntityRequest from the body and requires a non-empty
// name and contact. It writes the 400 response itself when ok is false.
func (h *Handler) decodeDraft(w http.ResponseWriter, r *http.Request) (model.Draft, bool) {
	var req EntityRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return model.Draft{}, false
	}

	draft := model.Draft{
		Name:    strings.TrimSpace(req.Name),
		Contact: strings.TrimSpace(req.Contact),
		Secret:  req.Secret,
	}

	if draft.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return model.Draft{}, false
	}
	if draft.Contact == "" {
		writeError(w, http.StatusBadRequest, "contact is required")
		return model.Draft{}, false
	}

	return draft, true
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid entity id")
		return 0, false
	}
	return id, true
}
