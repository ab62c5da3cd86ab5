// Package category manages the category forest and the flat tag list.
package category

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rohit/cms-editorial/internal/audit"
	"github.com/rohit/cms-editorial/internal/auth"
	apperrors "github.com/rohit/cms-editorial/internal/domain/errors"
	"github.com/rohit/cms-editorial/internal/domain/models"
	"github.com/rohit/cms-editorial/internal/metrics"
	"github.com/rohit/cms-editorial/internal/permission"
	"github.com/rohit/cms-editorial/internal/repository"
	"github.com/rohit/cms-editorial/internal/service/content"
	"github.com/rohit/cms-editorial/internal/service/validation"
	"github.com/rohit/cms-editorial/pkg/logger"
	"github.com/rs/zerolog"
)

// Service handles category and tag operations
type Service struct {
	categories repository.CategoryRepository
	tags       repository.TagRepository
	tx         repository.Transactor
	validator  *validation.Validator
	recorder   audit.Recorder
	metrics    *metrics.Collector
	logger     zerolog.Logger
	now        func() time.Time
}

// NewService creates a new category service. recorder and metricsCollector may be nil.
func NewService(
	categories repository.CategoryRepository,
	tags repository.TagRepository,
	tx repository.Transactor,
	recorder audit.Recorder,
	metricsCollector *metrics.Collector,
	log zerolog.Logger,
) *Service {
	if recorder == nil {
		recorder = audit.Nop{}
	}
	return &Service{
		categories: categories,
		tags:       tags,
		tx:         tx,
		validator:  validation.NewValidator(),
		recorder:   recorder,
		metrics:    metricsCollector,
		logger:     logger.WithModule(log, permission.ModuleCategories),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// authorize requires an identity holding module:action
func authorize(actor *auth.Identity, module, action string) error {
	if actor == nil {
		return apperrors.ErrUnauthorized("authentication required")
	}
	if !actor.Can(module, action) {
		return apperrors.ErrForbidden("missing permission " + permission.Ref(module, action))
	}
	return nil
}

// track emits metrics and an audit event for a finished mutation
func (s *Service) track(ctx context.Context, op, resource, module string, actor *auth.Identity, meta map[string]interface{}, err error, start time.Time) {
	entry := audit.Entry{
		Verb:       op,
		Resource:   resource,
		Module:     module,
		StatusCode: http.StatusOK,
		Level:      models.AuditLevelInfo,
		Message:    resource + " " + op + " succeeded",
		Metadata:   meta,
	}
	if op == "create" {
		entry.StatusCode = http.StatusCreated
	}
	if actor != nil {
		uid := actor.UserID
		entry.UserID = &uid
	}

	result := "success"
	if err != nil {
		appErr := apperrors.AsAppError(err)
		entry.StatusCode = appErr.StatusCode
		entry.Message = appErr.Message
		entry.Level = models.AuditLevelWarn
		meta["errorCode"] = appErr.Code
		result = strings.ToLower(appErr.Code)
		if apperrors.IsInternal(err) {
			entry.Level = models.AuditLevelError
			result = "error"
			s.logger.Error().Err(err).Str("operation", op).Str("resource", resource).Msg("Operation failed")
		}
	}

	if s.metrics != nil {
		s.metrics.RecordOperation(resource+"_"+op, result, time.Since(start).Seconds())
	}
	s.recorder.Record(audit.NewEvent(ctx, entry))
}

// Create adds a category. The slug is derived from the name when absent.
func (s *Service) Create(ctx context.Context, actor *auth.Identity, req *models.CreateCategoryRequest) (c *models.Category, err error) {
	start := time.Now()
	meta := map[string]interface{}{"name": req.Name}
	defer func() { s.track(ctx, "create", "category", permission.ModuleCategories, actor, meta, err, start) }()

	if err := authorize(actor, permission.ModuleCategories, permission.ActionCreate); err != nil {
		return nil, err
	}
	if req.Type == 0 {
		req.Type = models.CategoryTypeOther
	}
	if err := validation.First(s.validator.Category.ValidateCreate(req)); err != nil {
		return nil, err
	}

	category := &models.Category{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(req.Name),
		Slug:     req.Slug,
		Type:     req.Type,
		ParentID: req.ParentID,
		IsActive: true,
		Order:    req.Order,
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	if category.Slug == "" {
		category.Slug = content.Slugify(category.Name)
	}
	if category.Slug == "" {
		category.Slug = "category-" + strings.ReplaceAll(category.ID.String(), "-", "")[:8]
	}
	meta["categoryId"] = category.ID.String()
	meta["slug"] = category.Slug

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		taken, err := s.categories.SlugExists(ctx, category.Slug)
		if err != nil {
			return apperrors.ErrInternal("failed to check slug", err)
		}
		if taken {
			return apperrors.ErrValidation(apperrors.ErrCodeDuplicateSlug, "slug", "Slug already exists")
		}
		if category.ParentID != nil {
			parent, err := s.categories.GetByID(ctx, *category.ParentID)
			if err != nil {
				return apperrors.ErrInternal("failed to load parent", err)
			}
			if parent == nil {
				return apperrors.ErrValidation(apperrors.ErrCodeInvalidParent, "parentId", "Parent category does not exist")
			}
		}

		now := s.now()
		category.CreatedAt = now
		category.UpdatedAt = now
		if err := s.categories.Create(ctx, category); err != nil {
			if stderrors.Is(err, repository.ErrDuplicate) {
				return apperrors.ErrValidation(apperrors.ErrCodeDuplicateSlug, "slug", "Slug already exists")
			}
			return apperrors.ErrInternal("failed to create category", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

// Move reparents a category. A nil parent detaches it to the root.
// The new parent must exist and must not be the category or one of its descendants.
func (s *Service) Move(ctx context.Context, actor *auth.Identity, id uuid.UUID, req *models.MoveCategoryRequest) (c *models.Category, err error) {
	start := time.Now()
	meta := map[string]interface{}{"categoryId": id.String()}
	if req.ParentID != nil {
		meta["parentId"] = req.ParentID.String()
	}
	defer func() { s.track(ctx, "move", "category", permission.ModuleCategories, actor, meta, err, start) }()

	if err := authorize(actor, permission.ModuleCategories, permission.ActionUpdate); err != nil {
		return nil, err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		category, err := s.categories.GetByID(ctx, id)
		if err != nil {
			return apperrors.ErrInternal("failed to load category", err)
		}
		if category == nil {
			return apperrors.ErrNotFound("category")
		}
		if req.ParentID != nil {
			if err := s.checkParent(ctx, id, *req.ParentID); err != nil {
				return err
			}
		}
		if err := s.categories.UpdateParent(ctx, id, req.ParentID); err != nil {
			return apperrors.ErrInternal("failed to move category", err)
		}
		category.ParentID = req.ParentID
		category.UpdatedAt = s.now()
		c = category
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// checkParent walks up from parentID and fails if it reaches id
func (s *Service) checkParent(ctx context.Context, id, parentID uuid.UUID) error {
	cycle := apperrors.ErrValidation(apperrors.ErrCodeInvalidParent, "parentId", "Category cannot be moved under itself or its descendants")
	if parentID == id {
		return cycle
	}

	seen := map[uuid.UUID]bool{}
	current := &parentID
	first := true
	for current != nil {
		if *current == id {
			return cycle
		}
		if seen[*current] {
			// existing data already loops; it does not pass through id
			return nil
		}
		seen[*current] = true

		node, err := s.categories.GetByID(ctx, *current)
		if err != nil {
			return apperrors.ErrInternal("failed to load category", err)
		}
		if node == nil {
			if first {
				return apperrors.ErrValidation(apperrors.ErrCodeInvalidParent, "parentId", "Parent category does not exist")
			}
			return nil
		}
		first = false
		current = node.ParentID
	}
	return nil
}

// Delete removes a category without children
func (s *Service) Delete(ctx context.Context, actor *auth.Identity, id uuid.UUID) (err error) {
	start := time.Now()
	meta := map[string]interface{}{"categoryId": id.String()}
	defer func() { s.track(ctx, "delete", "category", permission.ModuleCategories, actor, meta, err, start) }()

	if err := authorize(actor, permission.ModuleCategories, permission.ActionDelete); err != nil {
		return err
	}

	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		category, err := s.categories.GetByID(ctx, id)
		if err != nil {
			return apperrors.ErrInternal("failed to load category", err)
		}
		if category == nil {
			return apperrors.ErrNotFound("category")
		}
		meta["slug"] = category.Slug

		hasChildren, err := s.categories.HasChildren(ctx, id)
		if err != nil {
			return apperrors.ErrInternal("failed to check children", err)
		}
		if hasChildren {
			return apperrors.ErrConflict(apperrors.ErrCodeCategoryHasChild, "category has children; move or delete them first")
		}
		if err := s.categories.Delete(ctx, id); err != nil {
			return apperrors.ErrInternal("failed to delete category", err)
		}
		return nil
	})
}

// Tree returns the category forest ordered by sort order, then name
func (s *Service) Tree(ctx context.Context, actor *auth.Identity) ([]*Node, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthorized("authentication required")
	}
	categories, err := s.categories.ListOrdered(ctx)
	if err != nil {
		return nil, apperrors.ErrInternal("failed to list categories", err)
	}
	return Build(categories), nil
}
