package workflow

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rohit/cms-editorial/internal/auth"
	apperrors "github.com/rohit/cms-editorial/internal/domain/errors"
	"github.com/rohit/cms-editorial/internal/domain/models"
	"github.com/rohit/cms-editorial/internal/service/content"
	"github.com/rohit/cms-editorial/internal/service/validation"
)

const defaultVisibility = "web"

// Create stores a new Draft article authored by the caller
func (s *Service) Create(ctx context.Context, actor *auth.Identity, req *models.CreateArticleRequest) (*models.Article, error) {
	return s.execute(ctx, OpCreate, actor, uuid.Nil, func(ctx context.Context, meta map[string]interface{}) (*models.Article, error) {
		if err := validation.First(s.validator.ValidateCreate(req)); err != nil {
			return nil, err
		}

		id := uuid.New()
		meta["articleId"] = id.String()

		slug := req.Slug
		if slug == "" {
			slug = fallbackSlug(content.Slugify(req.Title), id)
		}
		taken, err := s.articles.SlugExists(ctx, slug, nil)
		if err != nil {
			return nil, apperrors.ErrInternal("failed to check slug", err)
		}
		if taken {
			return nil, apperrors.ErrValidation(apperrors.ErrCodeDuplicateSlug, "slug", "Slug already exists")
		}

		now := s.now()
		stats := content.Compute(req.Content)
		article := &models.Article{
			ID:             id,
			Title:          strings.TrimSpace(req.Title),
			Subtitle:       req.Subtitle,
			Slug:           slug,
			Excerpt:        req.Excerpt,
			Content:        req.Content,
			ContentHTML:    s.sanitizer.Sanitize(req.ContentHTML),
			Status:         models.ArticleStatusDraft,
			AuthorID:       actor.UserID,
			FeaturedImage:  req.FeaturedImage,
			SeoTitle:       req.SeoTitle,
			SeoDescription: req.SeoDescription,
			SeoKeywords:    req.SeoKeywords,
			IsFeatured:     req.IsFeatured,
			IsBreakingNews: req.IsBreakingNews,
			AllowComments:  true,
			Visibility:     req.Visibility,
			ScheduledAt:    req.ScheduledAt,
			WordCount:      stats.WordCount,
			CharacterCount: stats.CharacterCount,
			ReadingTime:    stats.ReadingTime,
			CreatedAt:      now,
		}
		if req.AllowComments != nil {
			article.AllowComments = *req.AllowComments
		}
		if article.Visibility == "" {
			article.Visibility = defaultVisibility
		}

		article.UpdatedAt = now
		if err := s.save(ctx, article); err != nil {
			return nil, err
		}
		if err := s.replaceAssociations(ctx, article.ID, req.CategoryIDs, req.TagIDs); err != nil {
			return nil, err
		}
		return s.reload(ctx, article.ID)
	})
}

// Update applies the supplied fields. Non-privileged callers must be the author
// and the article must still be Draft or Submitted.
func (s *Service) Update(ctx context.Context, actor *auth.Identity, id uuid.UUID, req *models.UpdateArticleRequest) (*models.Article, error) {
	return s.execute(ctx, OpUpdate, actor, id, func(ctx context.Context, meta map[string]interface{}) (*models.Article, error) {
		article, err := s.load(ctx, id)
		if err != nil {
			return nil, err
		}
		if !actor.AdminEquivalent {
			if !article.IsAuthor(actor.UserID) {
				return nil, apperrors.ErrForbidden("only the author can edit this article")
			}
			if article.Status != models.ArticleStatusDraft && article.Status != models.ArticleStatusSubmitted {
				return nil, apperrors.ErrConflict(apperrors.ErrCodeInvalidStatus,
					"article cannot be edited while "+article.Status.String())
			}
		}
		if err := validation.First(s.validator.ValidateUpdate(req)); err != nil {
			return nil, err
		}

		if err := s.applySlug(ctx, article, req); err != nil {
			return nil, err
		}
		applyFields(article, req)
		if req.ContentHTML != nil {
			article.ContentHTML = s.sanitizer.Sanitize(req.ContentHTML)
		}
		if req.Content != nil {
			stats := content.Compute(req.Content)
			article.Content = req.Content
			article.WordCount = stats.WordCount
			article.CharacterCount = stats.CharacterCount
			article.ReadingTime = stats.ReadingTime
		}

		article.UpdatedAt = s.now()
		if err := s.save(ctx, article); err != nil {
			return nil, err
		}
		if err := s.replaceAssociations(ctx, article.ID, req.CategoryIDs, req.TagIDs); err != nil {
			return nil, err
		}
		return s.reload(ctx, article.ID)
	})
}

// applySlug handles an explicit slug change and title-driven re-slugging.
// Slugs never change once the article is published.
func (s *Service) applySlug(ctx context.Context, article *models.Article, req *models.UpdateArticleRequest) error {
	published := article.Status == models.ArticleStatusPublished

	if req.Slug != nil && *req.Slug != article.Slug {
		if published {
			return apperrors.ErrConflict(apperrors.ErrCodeSlugImmutable, "slug cannot change after publication")
		}
		taken, err := s.articles.SlugExists(ctx, *req.Slug, &article.ID)
		if err != nil {
			return apperrors.ErrInternal("failed to check slug", err)
		}
		if taken {
			return apperrors.ErrValidation(apperrors.ErrCodeDuplicateSlug, "slug", "Slug already exists")
		}
		article.Slug = *req.Slug
		return nil
	}

	if req.Title == nil || req.Slug != nil || published {
		return nil
	}
	title := strings.TrimSpace(*req.Title)
	if title == article.Title {
		return nil
	}
	candidate := content.Slugify(title)
	if candidate == "" || candidate == article.Slug {
		return nil
	}
	taken, err := s.articles.SlugExists(ctx, candidate, &article.ID)
	if err != nil {
		return apperrors.ErrInternal("failed to check slug", err)
	}
	if taken {
		// the old slug stays
		s.logger.Debug().Str("article_id", article.ID.String()).Str("slug", candidate).
			Msg("Derived slug taken, keeping current slug")
		return nil
	}
	article.Slug = candidate
	return nil
}

func applyFields(a *models.Article, req *models.UpdateArticleRequest) {
	if req.Title != nil {
		a.Title = strings.TrimSpace(*req.Title)
	}
	if req.Subtitle != nil {
		a.Subtitle = req.Subtitle
	}
	if req.Excerpt != nil {
		a.Excerpt = req.Excerpt
	}
	if req.FeaturedImage != nil {
		a.FeaturedImage = req.FeaturedImage
	}
	if req.SeoTitle != nil {
		a.SeoTitle = req.SeoTitle
	}
	if req.SeoDescription != nil {
		a.SeoDescription = req.SeoDescription
	}
	if req.SeoKeywords != nil {
		a.SeoKeywords = req.SeoKeywords
	}
	if req.IsFeatured != nil {
		a.IsFeatured = *req.IsFeatured
	}
	if req.IsBreakingNews != nil {
		a.IsBreakingNews = *req.IsBreakingNews
	}
	if req.AllowComments != nil {
		a.AllowComments = *req.AllowComments
	}
	if req.Visibility != nil {
		a.Visibility = *req.Visibility
	}
	if req.ScheduledAt != nil {
		a.ScheduledAt = req.ScheduledAt
	}
}

// fallbackSlug returns slug, or an id-based slug when nothing survived slugification
func fallbackSlug(slug string, id uuid.UUID) string {
	if slug != "" {
		return slug
	}
	return "article-" + strings.ReplaceAll(id.String(), "-", "")[:8]
}

// Get returns an article with its relations. Articles that are not yet
// approved are visible only to their author and admin-equivalent callers.
func (s *Service) Get(ctx context.Context, actor *auth.Identity, id uuid.UUID) (*models.Article, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthorized("authentication required")
	}
	article, err := s.articles.FindByIDWithRelations(ctx, id)
	if err != nil {
		return nil, apperrors.ErrInternal("failed to load article", err)
	}
	return visibleTo(actor, article)
}

// GetBySlug is Get keyed by slug
func (s *Service) GetBySlug(ctx context.Context, actor *auth.Identity, slug string) (*models.Article, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthorized("authentication required")
	}
	found, err := s.articles.FindBySlug(ctx, slug)
	if err != nil {
		return nil, apperrors.ErrInternal("failed to load article", err)
	}
	if found == nil {
		return nil, apperrors.ErrNotFound("article")
	}
	article, err := s.articles.FindByIDWithRelations(ctx, found.ID)
	if err != nil {
		return nil, apperrors.ErrInternal("failed to load article", err)
	}
	return visibleTo(actor, article)
}

func visibleTo(actor *auth.Identity, article *models.Article) (*models.Article, error) {
	if article == nil {
		return nil, apperrors.ErrNotFound("article")
	}
	switch article.Status {
	case models.ArticleStatusApproved, models.ArticleStatusPublished:
		return article, nil
	}
	if actor.AdminEquivalent || article.IsAuthor(actor.UserID) {
		return article, nil
	}
	return nil, apperrors.ErrForbidden("article is not visible to this user")
}

// Delete removes an article. Authors may delete their own drafts;
// admin-equivalent callers may delete any article. Join rows cascade.
func (s *Service) Delete(ctx context.Context, actor *auth.Identity, id uuid.UUID) error {
	_, err := s.execute(ctx, OpDelete, actor, id, func(ctx context.Context, meta map[string]interface{}) (*models.Article, error) {
		article, err := s.load(ctx, id)
		if err != nil {
			return nil, err
		}
		meta["slug"] = article.Slug
		meta["previousStatus"] = article.Status.String()
		if !actor.AdminEquivalent {
			if !article.IsAuthor(actor.UserID) {
				return nil, apperrors.ErrForbidden("only the author can delete this article")
			}
			if article.Status != models.ArticleStatusDraft {
				return nil, apperrors.ErrConflict(apperrors.ErrCodeInvalidStatus, "only draft articles can be deleted by their author")
			}
		}
		if err := s.articles.Delete(ctx, id); err != nil {
			return nil, apperrors.ErrInternal("failed to delete article", err)
		}
		return nil, nil
	})
	return err
}
