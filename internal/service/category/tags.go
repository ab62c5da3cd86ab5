package category

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rohit/cms-editorial/internal/auth"
	apperrors "github.com/rohit/cms-editorial/internal/domain/errors"
	"github.com/rohit/cms-editorial/internal/domain/models"
	"github.com/rohit/cms-editorial/internal/permission"
	"github.com/rohit/cms-editorial/internal/repository"
	"github.com/rohit/cms-editorial/internal/service/content"
	"github.com/rohit/cms-editorial/internal/service/validation"
)

// CreateTag adds a tag. Name and slug must both be unused.
func (s *Service) CreateTag(ctx context.Context, actor *auth.Identity, req *models.CreateTagRequest) (t *models.Tag, err error) {
	start := time.Now()
	meta := map[string]interface{}{"name": req.Name}
	defer func() { s.track(ctx, "create", "tag", permission.ModuleTags, actor, meta, err, start) }()

	if err := authorize(actor, permission.ModuleTags, permission.ActionCreate); err != nil {
		return nil, err
	}
	if err := validation.First(s.validator.Tag.ValidateCreate(req)); err != nil {
		return nil, err
	}

	now := s.now()
	tag := &models.Tag{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(req.Name),
		Slug:        req.Slug,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if tag.Slug == "" {
		tag.Slug = content.Slugify(tag.Name)
	}
	if tag.Slug == "" {
		tag.Slug = "tag-" + strings.ReplaceAll(tag.ID.String(), "-", "")[:8]
	}
	meta["tagId"] = tag.ID.String()
	meta["slug"] = tag.Slug

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		taken, err := s.tags.NameOrSlugExists(ctx, tag.Name, tag.Slug)
		if err != nil {
			return apperrors.ErrInternal("failed to check tag", err)
		}
		if taken {
			return apperrors.ErrValidation(apperrors.ErrCodeDuplicateName, "name", "A tag with this name or slug already exists")
		}
		if err := s.tags.Create(ctx, tag); err != nil {
			if stderrors.Is(err, repository.ErrDuplicate) {
				return apperrors.ErrValidation(apperrors.ErrCodeDuplicateName, "name", "A tag with this name or slug already exists")
			}
			return apperrors.ErrInternal("failed to create tag", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tag, nil
}

// ListTags returns every tag ordered by name
func (s *Service) ListTags(ctx context.Context, actor *auth.Identity) ([]*models.Tag, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthorized("authentication required")
	}
	tags, err := s.tags.List(ctx)
	if err != nil {
		return nil, apperrors.ErrInternal("failed to list tags", err)
	}
	return tags, nil
}
