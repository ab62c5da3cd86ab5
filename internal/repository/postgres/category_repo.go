package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rohit/cms-editorial/internal/domain/models"
)

// CategoryRepository implements repository.CategoryRepository for PostgreSQL
type CategoryRepository struct {
	db *DB
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create inserts a new category
func (r *CategoryRepository) Create(ctx context.Context, c *models.Category) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now

	query := `
		INSERT INTO categories (id, name, slug, type, parent_id, is_active, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.conn(ctx).ExecContext(ctx, query,
		c.ID, c.Name, c.Slug, c.Type, c.ParentID, c.IsActive, c.Order, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return writeError("failed to create category", err)
	}
	return nil
}

// GetByID retrieves a category by ID
func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var c models.Category
	err := r.db.conn(ctx).GetContext(ctx, &c, "SELECT * FROM categories WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &c, nil
}

// SlugExists checks whether a category slug is taken
func (r *CategoryRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.conn(ctx).GetContext(ctx, &exists,
		"SELECT EXISTS(SELECT 1 FROM categories WHERE slug = $1)", slug)
	return exists, err
}

// ListOrdered returns all categories ordered for tree building
func (r *CategoryRepository) ListOrdered(ctx context.Context) ([]*models.Category, error) {
	var categories []*models.Category
	err := r.db.conn(ctx).SelectContext(ctx, &categories,
		"SELECT * FROM categories ORDER BY sort_order ASC, name ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// UpdateParent reparents a category; nil detaches it to the root
func (r *CategoryRepository) UpdateParent(ctx context.Context, id uuid.UUID, parentID *uuid.UUID) error {
	_, err := r.db.conn(ctx).ExecContext(ctx,
		"UPDATE categories SET parent_id = $2, updated_at = $3 WHERE id = $1",
		id, parentID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to move category: %w", err)
	}
	return nil
}

// HasChildren reports whether any category references id as parent
func (r *CategoryRepository) HasChildren(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.conn(ctx).GetContext(ctx, &exists,
		"SELECT EXISTS(SELECT 1 FROM categories WHERE parent_id = $1)", id)
	return exists, err
}

// Delete deletes a category by ID
func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.conn(ctx).ExecContext(ctx, "DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

// ExistingIDs filters ids down to existing categories
func (r *CategoryRepository) ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	return r.db.existingIDs(ctx, "categories", ids)
}
