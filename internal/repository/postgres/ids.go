package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// existingIDs returns the ids present in table, preserving input order and dropping duplicates
func (db *DB) existingIDs(ctx context.Context, table string, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return []uuid.UUID{}, nil
	}

	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}

	var found []uuid.UUID
	query := fmt.Sprintf("SELECT id FROM %s WHERE id = ANY($1::uuid[])", table)
	if err := db.conn(ctx).SelectContext(ctx, &found, query, pq.StringArray(raw)); err != nil {
		return nil, fmt.Errorf("failed to resolve %s ids: %w", table, err)
	}

	present := make(map[uuid.UUID]bool, len(found))
	for _, id := range found {
		present[id] = true
	}

	out := make([]uuid.UUID, 0, len(found))
	for _, id := range ids {
		if present[id] {
			out = append(out, id)
			delete(present, id)
		}
	}
	return out, nil
}
