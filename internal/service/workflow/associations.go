package workflow

import (
	"context"

	"github.com/google/uuid"
	apperrors "github.com/rohit/cms-editorial/internal/domain/errors"
	"github.com/rohit/cms-editorial/internal/domain/models"
)

// replaceAssociations replaces the category and tag join rows of an article.
// A nil list leaves that kind untouched. Ids that do not resolve are skipped.
func (s *Service) replaceAssociations(ctx context.Context, articleID uuid.UUID, categoryIDs, tagIDs []uuid.UUID) error {
	if categoryIDs != nil {
		existing, err := s.categories.ExistingIDs(ctx, categoryIDs)
		if err != nil {
			return apperrors.ErrInternal("failed to resolve categories", err)
		}
		if err := s.replaceJoinRows(ctx, models.JoinCategories, articleID, existing); err != nil {
			return err
		}
	}
	if tagIDs != nil {
		existing, err := s.tags.ExistingIDs(ctx, tagIDs)
		if err != nil {
			return apperrors.ErrInternal("failed to resolve tags", err)
		}
		if err := s.replaceJoinRows(ctx, models.JoinTags, articleID, existing); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) replaceJoinRows(ctx context.Context, kind models.JoinKind, articleID uuid.UUID, ids []uuid.UUID) error {
	if err := s.articles.DeleteJoinRowsForArticle(ctx, kind, articleID); err != nil {
		return apperrors.ErrInternal("failed to clear "+string(kind), err)
	}
	for _, id := range ids {
		if err := s.articles.InsertJoinRow(ctx, kind, articleID, id); err != nil {
			return apperrors.ErrInternal("failed to link "+string(kind), err)
		}
	}
	return nil
}
