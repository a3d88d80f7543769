package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/trainerpanel/internal/domain/model"
)

// ErrEntityNotFound indicates the requested entity does not exist.
var ErrEntityNotFound = errors.New("entity not found")

// EntityRepo defines the driven port for entity persistence in the sandbox
// backend. Update and Delete return ErrEntityNotFound for unknown ids.
type EntityRepo interface {
	Insert(ctx context.Context, draft model.Draft) (model.Entity, error)
	Update(ctx context.Context, entity model.Entity) error
	Delete(ctx context.Context, id int64) error
	ListAll(ctx context.Context) ([]model.Entity, error)
	Count(ctx context.Context) (int, error)
}
