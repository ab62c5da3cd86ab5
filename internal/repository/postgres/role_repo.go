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

// RoleRepository implements repository.RoleRepository for PostgreSQL
type RoleRepository struct {
	db *DB
}

// NewRoleRepository creates a new RoleRepository
func NewRoleRepository(db *DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// GetByID retrieves a role by ID
func (r *RoleRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Role, error) {
	return r.get(ctx, "SELECT * FROM roles WHERE id = $1", id)
}

// GetByName retrieves a role by name
func (r *RoleRepository) GetByName(ctx context.Context, name string) (*models.Role, error) {
	return r.get(ctx, "SELECT * FROM roles WHERE name = $1", name)
}

func (r *RoleRepository) get(ctx context.Context, query string, arg interface{}) (*models.Role, error) {
	var role models.Role
	err := r.db.conn(ctx).GetContext(ctx, &role, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get role: %w", err)
	}
	return &role, nil
}

// CreateIfMissing inserts the role unless the name is already taken
func (r *RoleRepository) CreateIfMissing(ctx context.Context, role *models.Role) error {
	if role.ID == uuid.Nil {
		role.ID = uuid.New()
	}
	now := time.Now().UTC()
	role.CreatedAt, role.UpdatedAt = now, now
	if len(role.Permissions) == 0 {
		role.Permissions = []byte("{}")
	}

	_, err := r.db.conn(ctx).ExecContext(ctx, `
		INSERT INTO roles (id, name, description, permissions, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (name) DO NOTHING
	`, role.ID, role.Name, role.Description, string(role.Permissions), role.CreatedAt, role.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to seed role %s: %w", role.Name, err)
	}
	return nil
}
