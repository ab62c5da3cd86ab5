package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rohit/cms-editorial/internal/domain/models"
)

// Missing rows are reported as (nil, nil) by every Get/Find method.

// ErrDuplicate is wrapped by writes rejected by a unique constraint
var ErrDuplicate = errors.New("duplicate key")

// ArticleRepository defines operations for article data access
type ArticleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Article, error)
	FindBySlug(ctx context.Context, slug string) (*models.Article, error)
	// FindByIDWithRelations loads the article with its categories and tags resolved
	FindByIDWithRelations(ctx context.Context, id uuid.UUID) (*models.Article, error)
	// Save inserts the article when its ID is new and fully overwrites the row otherwise
	Save(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, id uuid.UUID) error
	SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error)
	DeleteJoinRowsForArticle(ctx context.Context, kind models.JoinKind, articleID uuid.UUID) error
	InsertJoinRow(ctx context.Context, kind models.JoinKind, articleID, targetID uuid.UUID) error
}

// CategoryRepository defines operations for category data access
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	// ListOrdered returns every category ordered by sort order, then name
	ListOrdered(ctx context.Context) ([]*models.Category, error)
	UpdateParent(ctx context.Context, id uuid.UUID, parentID *uuid.UUID) error
	HasChildren(ctx context.Context, id uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// ExistingIDs returns the subset of ids that resolve to a category, in input order
	ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
}

// TagRepository defines operations for tag data access
type TagRepository interface {
	Create(ctx context.Context, tag *models.Tag) error
	List(ctx context.Context) ([]*models.Tag, error)
	NameOrSlugExists(ctx context.Context, name, slug string) (bool, error)
	// ExistingIDs returns the subset of ids that resolve to a tag, in input order
	ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
}

// RoleRepository defines operations for role data access
type RoleRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Role, error)
	GetByName(ctx context.Context, name string) (*models.Role, error)
	// CreateIfMissing inserts the role unless one with the same name exists
	CreateIfMissing(ctx context.Context, role *models.Role) error
}

// UserRepository defines operations for user data access
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// AuditRepository persists audit events
type AuditRepository interface {
	Create(ctx context.Context, event *models.AuditEvent) error
}

// Transactor runs fn inside one transaction. Repositories invoked with the
// ctx passed to fn participate in that transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
