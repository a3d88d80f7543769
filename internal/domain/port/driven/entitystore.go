package driven

import (
	"context"
	"errors"
	"fmt"

	"github.com/ericfisherdev/trainerpanel/internal/domain/model"
)

// ErrTransport is the only error kind the remote store recognises. Network
// failures and every non-2xx status (validation, not-found, server errors)
// collapse into it.
var ErrTransport = errors.New("transport failure")

// TransportError describes a failed request against the collection endpoint.
// StatusCode is zero when no response was received.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *TransportError) Unwrap() error { return e.Err }

// Is makes every TransportError match ErrTransport.
func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// EntityStore defines the driven port for the remote entity collection.
// All methods return a *TransportError on failure.
type EntityStore interface {
	List(ctx context.Context) ([]model.Entity, error)
	Create(ctx context.Context, draft model.Draft) error
	Update(ctx context.Context, id int64, draft model.Draft) error
	Delete(ctx context.Context, id int64) error
}
