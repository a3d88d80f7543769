package sqlite

import (
	"context"
	"fmt"

	"github.com/ericfisherdev/trainerpanel/internal/domain/model"
	"github.com/ericfisherdev/trainerpanel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.EntityRepo = (*EntityRepo)(nil)

// EntityRepo is the SQLite implementation of the EntityRepo port interface.
type EntityRepo struct {
	db *DB
}

// NewEntityRepo creates a new EntityRepo backed by the given DB.
func NewEntityRepo(db *DB) *EntityRepo {
	return &EntityRepo{db: db}
}

// Insert stores a new entity and returns it with its assigned id.
func (r *EntityRepo) Insert(ctx context.Context, draft model.Draft) (model.Entity, error) {
	const query = `INSERT INTO entities (name, contact, secret) VALUES (?, ?, ?)`

	result, err := r.db.Writer.ExecContext(ctx, query, draft.Name, draft.Contact, draft.Secret)
	if err != nil {
		return model.Entity{}, fmt.Errorf("insert entity: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return model.Entity{}, fmt.Errorf("read inserted id: %w", err)
	}

	return draft.WithID(id), nil
}

// Update replaces the editable fields of an existing entity. Returns
// ErrEntityNotFound if no row has the entity's id.
func (r *EntityRepo) Update(ctx context.Context, entity model.Entity) error {
	const query = `UPDATE entities
		SET name = ?, contact = ?, secret = ?, updated_at = strftime('%Y-%m-%dT%H:%M:%SZ', 'now')
		WHERE id = ?`

	result, err := r.db.Writer.ExecContext(ctx, query, entity.Name, entity.Contact, entity.Secret, entity.ID)
	if err != nil {
		return fmt.Errorf("update entity %d: %w", entity.ID, err)
	}

	return requireAffected(result, fmt.Sprintf("update entity %d", entity.ID))
}

// Delete removes an entity by id. Returns ErrEntityNotFound if it does not exist.
func (r *EntityRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM entities WHERE id = ?`

	result, err := r.db.Writer.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete entity %d: %w", id, err)
	}

	return requireAffected(result, fmt.Sprintf("delete entity %d", id))
}

// ListAll returns all entities ordered by id.
func (r *EntityRepo) ListAll(ctx context.Context) ([]model.Entity, error) {
	const query = `SELECT id, name, contact, secret FROM entities ORDER BY id`

	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list entities: %w", err)
	}
	defer rows.Close()

	entities := []model.Entity{}
	for rows.Next() {
		var e model.Entity
		if err := rows.Scan(&e.ID, &e.Name, &e.Contact, &e.Secret); err != nil {
			return nil, fmt.Errorf("scan entity: %w", err)
		}
		entities = append(entities, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entities: %w", err)
	}

	return entities, nil
}

// Count returns the number of stored entities.
func (r *EntityRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.Reader.QueryRowContext(ctx, `SELECT COUNT(*) FROM entities`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count entities: %w", err)
	}
	return n, nil
}

// rowsAffected is satisfied by sql.Result.
type rowsAffected interface {
	RowsAffected() (int64, error)
}

func requireAffected(result rowsAffected, op string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, driven.ErrEntityNotFound)
	}
	return nil
}
