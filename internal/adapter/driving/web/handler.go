// Package web implements the HTML GUI driving adapter using templ components.
package web

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/a-h/templ"

	vm "github.com/ericfisherdev/trainerpanel/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/trainerpanel/internal/adapter/driving/web/templates"
	"github.com/ericfisherdev/trainerpanel/internal/adapter/driving/web/templates/components"
	"github.com/ericfisherdev/trainerpanel/internal/adapter/driving/web/templates/pages"
	"github.com/ericfisherdev/trainerpanel/internal/application"
	"github.com/ericfisherdev/trainerpanel/internal/domain/model"
)

const appTitle = "Trainer Panel"

// Alerts that do not come from a store operation.
const (
	msgEntityNotFound = "Entity not found"
	msgSessionExpired = "This edit link has expired. Please select the entity again."
	msgInvalidCSRF    = "Your session has expired. Please reload the page and try again."
	msgListFailed     = "Could not load entities. Please try again later."
)

// Handler is the web GUI driving adapter that serves HTML via templ components.
type Handler struct {
	controller *application.ListController
	sessions   *application.EditSessions
	logger     *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	controller *application.ListController,
	sessions *application.EditSessions,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		controller: controller,
		sessions:   sessions,
		logger:     logger,
	}
}

// ListPage fetches the collection afresh and renders the list view. A q query
// parameter pre-filters the rows from the fresh cache.
func (h *Handler) ListPage(w http.ResponseWriter, r *http.Request) {
	records := h.controller.Refresh(r.Context())

	query := r.URL.Query().Get("q")
	if query != "" {
		records = h.controller.Filter(query)
	}

	h.renderList(w, r, http.StatusOK, records, query, popFlash(w, r))
}

// Rows renders only the table rows for the cached records matching q. It
// never fetches from the backend.
func (h *Handler) Rows(w http.ResponseWriter, r *http.Request) {
	records := h.controller.Filter(r.URL.Query().Get("q"))
	component := components.EntityRows(toEntityRowViewModels(records), csrfToken(w, r))

	h.render(w, r, http.StatusOK, component, "rows")
}

// NewForm renders the create form.
func (h *Handler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, createForm(model.Draft{}, popFlash(w, r)))
}

// Create submits the create form. Success sets a flash alert and redirects
// to the list; failure re-renders the form with the entered values.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if !h.checkCSRF(w, r) {
		return
	}

	draft := draftFromForm(r)
	fb := h.controller.Create(r.Context(), draft)
	if fb.NavigateToList {
		h.redirectWithFlash(w, r, "/", toAlertViewModel(fb))
		return
	}

	h.renderForm(w, r, http.StatusBadGateway, createForm(draft, toAlertViewModel(fb)))
}

// BeginEdit opens an edit session for a cached record and redirects to the
// update form.
func (h *Handler) BeginEdit(w http.ResponseWriter, r *http.Request) {
	if !h.checkCSRF(w, r) {
		return
	}

	id, ok := parseID(r)
	if !ok {
		h.redirectWithFlash(w, r, "/", vm.AlertViewModel{Message: msgEntityNotFound, IsError: true})
		return
	}

	entity, ok := h.controller.Lookup(id)
	if !ok {
		h.redirectWithFlash(w, r, "/", vm.AlertViewModel{Message: msgEntityNotFound, IsError: true})
		return
	}

	token := h.sessions.Begin(entity)
	http.Redirect(w, r, "/edit/"+token, http.StatusSeeOther)
}

// EditForm renders the update form for an edit session.
func (h *Handler) EditForm(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")

	entity, ok := h.sessions.Lookup(token)
	if !ok {
		h.redirectWithFlash(w, r, "/", vm.AlertViewModel{Message: msgSessionExpired, IsError: true})
		return
	}

	h.renderForm(w, r, http.StatusOK, updateForm(token, entity.ID, entity.Draft(), popFlash(w, r)))
}

// Update submits the update form for an edit session. The record id comes
// from the session, never from the request.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	if !h.checkCSRF(w, r) {
		return
	}

	token := r.PathValue("token")
	entity, ok := h.sessions.Lookup(token)
	if !ok {
		h.redirectWithFlash(w, r, "/", vm.AlertViewModel{Message: msgSessionExpired, IsError: true})
		return
	}

	draft := draftFromForm(r)
	fb := h.controller.Update(r.Context(), entity.ID, draft)
	if fb.NavigateToList {
		h.sessions.End(token)
		h.redirectWithFlash(w, r, "/", toAlertViewModel(fb))
		return
	}

	h.renderForm(w, r, http.StatusBadGateway, updateForm(token, entity.ID, draft, toAlertViewModel(fb)))
}

// RequestDelete stages a record for deletion and shows the confirmation
// overlay over the cached list.
func (h *Handler) RequestDelete(w http.ResponseWriter, r *http.Request) {
	if !h.checkCSRF(w, r) {
		return
	}

	id, ok := parseID(r)
	if !ok {
		http.Error(w, "invalid entity id", http.StatusBadRequest)
		return
	}

	h.controller.RequestDelete(id)
	h.renderList(w, r, http.StatusOK, h.controller.Records(), "", vm.AlertViewModel{})
}

// ConfirmDelete deletes the staged record and renders the list with the
// outcome. The list is refetched by the controller on success only.
func (h *Handler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	if !h.checkCSRF(w, r) {
		return
	}

	fb := h.controller.ConfirmDelete(r.Context())
	h.renderList(w, r, http.StatusOK, h.controller.Records(), "", toAlertViewModel(fb))
}

// CancelDelete clears the staged record without deleting it.
func (h *Handler) CancelDelete(w http.ResponseWriter, r *http.Request) {
	if !h.checkCSRF(w, r) {
		return
	}

	h.controller.CancelDelete()
	h.renderList(w, r, http.StatusOK, h.controller.Records(), "", vm.AlertViewModel{})
}

// renderList renders the full list page for records. The delete overlay is
// shown whenever the controller holds a pending deletion.
func (h *Handler) renderList(w http.ResponseWriter, r *http.Request, status int, records []model.Entity, query string, alert vm.AlertViewModel) {
	page := vm.ListPageViewModel{
		Rows:           toEntityRowViewModels(records),
		Query:          query,
		Alert:          alert,
		ShowingSamples: h.controller.ShowingSamples(),
		CSRFToken:      csrfToken(w, r),
	}

	if h.controller.ListError() != nil {
		page.LoadError = vm.AlertViewModel{Message: msgListFailed, IsError: true}
	}

	if id, ok := h.controller.Pending(); ok {
		entity, _ := h.controller.Lookup(id)
		page.DeletePrompt = toDeletePromptViewModel(id, entity.Name)
	}

	h.render(w, r, status, templates.Layout(appTitle, pages.List(page)), "list")
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, status int, form vm.FormViewModel) {
	form.CSRFToken = csrfToken(w, r)
	h.render(w, r, status, templates.Layout(appTitle+" - "+form.Title, pages.EntityForm(form)), "form")
}

// render writes component with the given status. Once the header is sent a
// render error can only be logged.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, component templ.Component, name string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if err := component.Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render "+name, "error", err)
	}
}

func (h *Handler) redirectWithFlash(w http.ResponseWriter, r *http.Request, target string, alert vm.AlertViewModel) {
	setFlash(w, alert)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// checkCSRF rejects the request with 403 when the CSRF token is missing or
// does not match. It returns false when the request was rejected.
func (h *Handler) checkCSRF(w http.ResponseWriter, r *http.Request) bool {
	if validateCSRF(r) {
		return true
	}
	h.logger.Warn("csrf validation failed", "path", r.URL.Path)
	setFlash(w, vm.AlertViewModel{Message: msgInvalidCSRF, IsError: true})
	http.Error(w, "invalid csrf token", http.StatusForbidden)
	return false
}

func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func draftFromForm(r *http.Request) model.Draft {
	return model.Draft{
		Name:    r.PostFormValue("name"),
		Contact: r.PostFormValue("contact"),
		Secret:  r.PostFormValue("secret"),
	}
}

func createForm(draft model.Draft, alert vm.AlertViewModel) vm.FormViewModel {
	return vm.FormViewModel{
		Title:       "Create Entity",
		Action:      "/entities",
		SubmitLabel: "Create",
		Name:        draft.Name,
		Contact:     draft.Contact,
		Secret:      draft.Secret,
		Alert:       alert,
	}
}

func updateForm(token string, id int64, draft model.Draft, alert vm.AlertViewModel) vm.FormViewModel {
	return vm.FormViewModel{
		Title:       "Update Entity",
		Action:      "/edit/" + token,
		SubmitLabel: "Update",
		EntityID:    id,
		Name:        draft.Name,
		Contact:     draft.Contact,
		Secret:      draft.Secret,
		Alert:       alert,
	}
}
