package httphandler

import (
	"encoding/json"
	"net/http"

	"github.com/ericfisherdev/trainerpanel/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	data, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

type errorResponse struct {
	Error string `json:"error"`
}

// EntityResponse is the JSON representation of a stored entity.
type EntityResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Secret  string `json:"secret"`
}

// EntityRequest is the JSON body accepted by create and update.
type EntityRequest struct {
	ID      int64  `json:"id,omitempty"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Secret  string `json:"secret"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

func toEntityResponse(e model.Entity) EntityResponse {
	return EntityResponse{
		ID:      e.ID,
		Name:    e.Name,
		Contact: e.Contact,
		Secret:  e.Secret,
	}
}
