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

// ArticleRepository implements repository.ArticleRepository for PostgreSQL
type ArticleRepository struct {
	db *DB
}

// NewArticleRepository creates a new ArticleRepository
func NewArticleRepository(db *DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// FindByID retrieves an article by ID without relations
func (r *ArticleRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	var article models.Article
	err := r.db.conn(ctx).GetContext(ctx, &article, "SELECT * FROM articles WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get article: %w", err)
	}
	return &article, nil
}

// FindBySlug retrieves an article by slug without relations
func (r *ArticleRepository) FindBySlug(ctx context.Context, slug string) (*models.Article, error) {
	var article models.Article
	err := r.db.conn(ctx).GetContext(ctx, &article, "SELECT * FROM articles WHERE slug = $1", slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get article by slug: %w", err)
	}
	return &article, nil
}

// FindByIDWithRelations retrieves an article with its categories and tags
func (r *ArticleRepository) FindByIDWithRelations(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	defer r.db.observe("article_load", time.Now())

	article, err := r.FindByID(ctx, id)
	if err != nil || article == nil {
		return article, err
	}

	q := r.db.conn(ctx)

	article.Categories = []models.Category{}
	err = q.SelectContext(ctx, &article.Categories, `
		SELECT c.* FROM categories c
		JOIN article_categories ac ON ac.category_id = c.id
		WHERE ac.article_id = $1
		ORDER BY c.sort_order ASC, c.name ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load article categories: %w", err)
	}

	article.Tags = []models.Tag{}
	err = q.SelectContext(ctx, &article.Tags, `
		SELECT t.* FROM tags t
		JOIN article_tags atg ON atg.tag_id = t.id
		WHERE atg.article_id = $1
		ORDER BY t.name ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load article tags: %w", err)
	}

	return article, nil
}

// Save inserts or fully overwrites an article row. Zero timestamps are stamped with the current time.
func (r *ArticleRepository) Save(ctx context.Context, article *models.Article) error {
	defer r.db.observe("article_save", time.Now())

	if article.ID == uuid.Nil {
		article.ID = uuid.New()
	}
	now := time.Now().UTC()
	if article.CreatedAt.IsZero() {
		article.CreatedAt = now
	}
	if article.UpdatedAt.IsZero() {
		article.UpdatedAt = now
	}

	query := `
		INSERT INTO articles (
			id, title, subtitle, slug, excerpt, content, content_html, status, author_id,
			featured_image, seo_title, seo_description, seo_keywords,
			is_featured, is_breaking_news, allow_comments, visibility,
			scheduled_at, published_at, review_notes,
			word_count, character_count, reading_time, views, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9,
			$10, $11, $12, $13,
			$14, $15, $16, $17,
			$18, $19, $20,
			$21, $22, $23, $24, $25, $26
		)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			subtitle = EXCLUDED.subtitle,
			slug = EXCLUDED.slug,
			excerpt = EXCLUDED.excerpt,
			content = EXCLUDED.content,
			content_html = EXCLUDED.content_html,
			status = EXCLUDED.status,
			author_id = EXCLUDED.author_id,
			featured_image = EXCLUDED.featured_image,
			seo_title = EXCLUDED.seo_title,
			seo_description = EXCLUDED.seo_description,
			seo_keywords = EXCLUDED.seo_keywords,
			is_featured = EXCLUDED.is_featured,
			is_breaking_news = EXCLUDED.is_breaking_news,
			allow_comments = EXCLUDED.allow_comments,
			visibility = EXCLUDED.visibility,
			scheduled_at = EXCLUDED.scheduled_at,
			published_at = EXCLUDED.published_at,
			review_notes = EXCLUDED.review_notes,
			word_count = EXCLUDED.word_count,
			character_count = EXCLUDED.character_count,
			reading_time = EXCLUDED.reading_time,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.conn(ctx).ExecContext(ctx, query,
		article.ID, article.Title, article.Subtitle, article.Slug, article.Excerpt,
		string(article.Content), article.ContentHTML, article.Status, article.AuthorID,
		article.FeaturedImage, article.SeoTitle, article.SeoDescription, article.SeoKeywords,
		article.IsFeatured, article.IsBreakingNews, article.AllowComments, article.Visibility,
		article.ScheduledAt, article.PublishedAt, article.ReviewNotes,
		article.WordCount, article.CharacterCount, article.ReadingTime, article.Views,
		article.CreatedAt, article.UpdatedAt)
	if err != nil {
		return writeError("failed to save article", err)
	}
	return nil
}

// Delete deletes an article by ID. Join rows cascade.
func (r *ArticleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.conn(ctx).ExecContext(ctx, "DELETE FROM articles WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}
	return nil
}

// SlugExists checks if a slug exists, optionally excluding a specific article
func (r *ArticleRepository) SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	var exists bool
	var err error
	if excludeID != nil {
		err = r.db.conn(ctx).GetContext(ctx, &exists,
			"SELECT EXISTS(SELECT 1 FROM articles WHERE slug = $1 AND id != $2)", slug, *excludeID)
	} else {
		err = r.db.conn(ctx).GetContext(ctx, &exists,
			"SELECT EXISTS(SELECT 1 FROM articles WHERE slug = $1)", slug)
	}
	return exists, err
}

func joinColumn(kind models.JoinKind) (string, error) {
	switch kind {
	case models.JoinCategories:
		return "category_id", nil
	case models.JoinTags:
		return "tag_id", nil
	default:
		return "", fmt.Errorf("unknown join kind %q", kind)
	}
}

// DeleteJoinRowsForArticle removes every association of the given kind for an article
func (r *ArticleRepository) DeleteJoinRowsForArticle(ctx context.Context, kind models.JoinKind, articleID uuid.UUID) error {
	if _, err := joinColumn(kind); err != nil {
		return err
	}
	query := fmt.Sprintf("DELETE FROM %s WHERE article_id = $1", kind)
	if _, err := r.db.conn(ctx).ExecContext(ctx, query, articleID); err != nil {
		return fmt.Errorf("failed to clear %s: %w", kind, err)
	}
	return nil
}

// InsertJoinRow adds one association; an existing pair is left as is
func (r *ArticleRepository) InsertJoinRow(ctx context.Context, kind models.JoinKind, articleID, targetID uuid.UUID) error {
	column, err := joinColumn(kind)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(
		"INSERT INTO %s (article_id, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING", kind, column)
	if _, err := r.db.conn(ctx).ExecContext(ctx, query, articleID, targetID); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", kind, err)
	}
	return nil
}
