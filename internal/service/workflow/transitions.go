package workflow

import (
	"context"

	"github.com/google/uuid"
	"github.com/rohit/cms-editorial/internal/auth"
	apperrors "github.com/rohit/cms-editorial/internal/domain/errors"
	"github.com/rohit/cms-editorial/internal/domain/models"
)

// Submit moves the caller's own Draft article to Submitted
func (s *Service) Submit(ctx context.Context, actor *auth.Identity, id uuid.UUID) (*models.Article, error) {
	return s.transition(ctx, OpSubmit, actor, id, func(article *models.Article) error {
		if !article.IsAuthor(actor.UserID) {
			return apperrors.ErrForbidden("only the author can submit this article")
		}
		if article.Status != models.ArticleStatusDraft {
			return invalidTransition(OpSubmit, article.Status)
		}
		article.Status = models.ArticleStatusSubmitted
		return nil
	})
}

// Approve marks a reviewable article Approved
func (s *Service) Approve(ctx context.Context, actor *auth.Identity, id uuid.UUID, req *models.ReviewRequest) (*models.Article, error) {
	return s.review(ctx, OpApprove, models.ArticleStatusApproved, actor, id, req)
}

// Reject marks a reviewable article Rejected
func (s *Service) Reject(ctx context.Context, actor *auth.Identity, id uuid.UUID, req *models.ReviewRequest) (*models.Article, error) {
	return s.review(ctx, OpReject, models.ArticleStatusRejected, actor, id, req)
}

func (s *Service) review(ctx context.Context, op string, to models.ArticleStatus, actor *auth.Identity, id uuid.UUID, req *models.ReviewRequest) (*models.Article, error) {
	return s.transition(ctx, op, actor, id, func(article *models.Article) error {
		if !actor.AdminEquivalent {
			return apperrors.ErrForbidden("only reviewers can " + op + " articles")
		}
		if !article.Status.Reviewable() {
			return invalidTransition(op, article.Status)
		}
		article.Status = to
		if req != nil && req.ReviewNotes != nil {
			article.ReviewNotes = req.ReviewNotes
		}
		return nil
	})
}

// Publish marks an article Published and stamps publishedAt. Authors may
// publish their own Approved articles; admin-equivalent callers may publish
// from any status.
func (s *Service) Publish(ctx context.Context, actor *auth.Identity, id uuid.UUID) (*models.Article, error) {
	return s.transition(ctx, OpPublish, actor, id, func(article *models.Article) error {
		if !actor.AdminEquivalent {
			if !article.IsAuthor(actor.UserID) {
				return apperrors.ErrForbidden("only the author can publish this article")
			}
			if article.Status != models.ArticleStatusApproved {
				return apperrors.ErrForbidden("article must be approved before the author can publish it")
			}
		}
		now := s.now()
		article.Status = models.ArticleStatusPublished
		article.PublishedAt = &now
		return nil
	})
}

// transition loads the article, lets apply check and mutate it, then persists and reloads
func (s *Service) transition(ctx context.Context, op string, actor *auth.Identity, id uuid.UUID, apply func(*models.Article) error) (*models.Article, error) {
	return s.execute(ctx, op, actor, id, func(ctx context.Context, meta map[string]interface{}) (*models.Article, error) {
		article, err := s.load(ctx, id)
		if err != nil {
			return nil, err
		}
		meta["previousStatus"] = article.Status.String()
		if err := apply(article); err != nil {
			return nil, err
		}
		return s.persist(ctx, article)
	})
}

func invalidTransition(op string, from models.ArticleStatus) error {
	return apperrors.ErrConflict(apperrors.ErrCodeInvalidTransition,
		"cannot "+op+" an article in status "+from.String())
}
