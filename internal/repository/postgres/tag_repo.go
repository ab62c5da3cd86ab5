package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rohit/cms-editorial/internal/domain/models"
)

// TagRepository implements repository.TagRepository for PostgreSQL
type TagRepository struct {
	db *DB
}

// NewTagRepository creates a new TagRepository
func NewTagRepository(db *DB) *TagRepository {
	return &TagRepository{db: db}
}

// Create inserts a new tag
func (r *TagRepository) Create(ctx context.Context, tag *models.Tag) error {
	if tag.ID == uuid.Nil {
		tag.ID = uuid.New()
	}
	now := time.Now().UTC()
	tag.CreatedAt, tag.UpdatedAt = now, now

	_, err := r.db.conn(ctx).ExecContext(ctx, `
		INSERT INTO tags (id, name, slug, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, tag.ID, tag.Name, tag.Slug, tag.Description, tag.CreatedAt, tag.UpdatedAt)
	if err != nil {
		return writeError("failed to create tag", err)
	}
	return nil
}

// List returns all tags ordered by name
func (r *TagRepository) List(ctx context.Context) ([]*models.Tag, error) {
	var tags []*models.Tag
	if err := r.db.conn(ctx).SelectContext(ctx, &tags, "SELECT * FROM tags ORDER BY name ASC"); err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// NameOrSlugExists checks whether either unique key is taken
func (r *TagRepository) NameOrSlugExists(ctx context.Context, name, slug string) (bool, error) {
	var exists bool
	err := r.db.conn(ctx).GetContext(ctx, &exists,
		"SELECT EXISTS(SELECT 1 FROM tags WHERE name = $1 OR slug = $2)", name, slug)
	return exists, err
}

// ExistingIDs filters ids down to existing tags
func (r *TagRepository) ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	return r.db.existingIDs(ctx, "tags", ids)
}
