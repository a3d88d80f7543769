package web

import (
	"io/fs"
	"net/http"
)

// RegisterRoutes registers all web GUI routes on the provided mux.
// Static assets are served from the embedded filesystem at /static/*.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Static assets (embedded via go:embed).
	staticFS, _ := fs.Sub(StaticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticFS)))

	// Page routes.
	mux.HandleFunc("GET /{$}", h.ListPage)
	mux.HandleFunc("GET /entities/rows", h.Rows)
	mux.HandleFunc("GET /entities/new", h.NewForm)
	mux.HandleFunc("POST /entities", h.Create)
	mux.HandleFunc("POST /entities/{id}/edit", h.BeginEdit)
	mux.HandleFunc("GET /edit/{token}", h.EditForm)
	mux.HandleFunc("POST /edit/{token}", h.Update)

	// Two-step delete.
	mux.HandleFunc("POST /entities/{id}/delete", h.RequestDelete)
	mux.HandleFunc("POST /entities/delete/confirm", h.ConfirmDelete)
	mux.HandleFunc("POST /entities/delete/cancel", h.CancelDelete)
}
