package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ArticleStatus is the editorial state of an article
type ArticleStatus uint8

const (
	ArticleStatusDraft ArticleStatus = iota + 1
	ArticleStatusSubmitted
	ArticleStatusUnderReview
	ArticleStatusApproved
	ArticleStatusRejected
	ArticleStatusPublished
)

var articleStatuses = newEnumTable("article status", map[ArticleStatus]string{
	ArticleStatusDraft:       "draft",
	ArticleStatusSubmitted:   "submitted",
	ArticleStatusUnderReview: "under_review",
	ArticleStatusApproved:    "approved",
	ArticleStatusRejected:    "rejected",
	ArticleStatusPublished:   "published",
})

// ParseArticleStatus converts a stored or wire name into an ArticleStatus
func ParseArticleStatus(s string) (ArticleStatus, error) {
	return articleStatuses.parse(s)
}

func (s ArticleStatus) String() string {
	if n, ok := articleStatuses.name(s); ok {
		return n
	}
	return "unknown"
}

// Reviewable reports whether Approve/Reject may be applied
func (s ArticleStatus) Reviewable() bool {
	return s == ArticleStatusSubmitted || s == ArticleStatusUnderReview
}

func (s ArticleStatus) MarshalText() ([]byte, error) {
	n, err := articleStatuses.value(s)
	if err != nil {
		return nil, err
	}
	return []byte(n.(string)), nil
}

func (s *ArticleStatus) UnmarshalText(b []byte) error {
	v, err := articleStatuses.parse(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func (s *ArticleStatus) Scan(src interface{}) error {
	v, err := articleStatuses.scan(src)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func (s ArticleStatus) Value() (driver.Value, error) {
	return articleStatuses.value(s)
}

// Article represents an article entity
type Article struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	Title          string          `json:"title" db:"title"`
	Subtitle       *string         `json:"subtitle,omitempty" db:"subtitle"`
	Slug           string          `json:"slug" db:"slug"`
	Excerpt        *string         `json:"excerpt,omitempty" db:"excerpt"`
	Content        json.RawMessage `json:"content" db:"content"`
	ContentHTML    *string         `json:"contentHtml,omitempty" db:"content_html"`
	Status         ArticleStatus   `json:"status" db:"status"`
	AuthorID       uuid.UUID       `json:"authorId" db:"author_id"`
	FeaturedImage  *string         `json:"featuredImage,omitempty" db:"featured_image"`
	SeoTitle       *string         `json:"seoTitle,omitempty" db:"seo_title"`
	SeoDescription *string         `json:"seoDescription,omitempty" db:"seo_description"`
	SeoKeywords    *string         `json:"seoKeywords,omitempty" db:"seo_keywords"`
	IsFeatured     bool            `json:"isFeatured" db:"is_featured"`
	IsBreakingNews bool            `json:"isBreakingNews" db:"is_breaking_news"`
	AllowComments  bool            `json:"allowComments" db:"allow_comments"`
	Visibility     string          `json:"visibility" db:"visibility"`
	ScheduledAt    *time.Time      `json:"scheduledAt,omitempty" db:"scheduled_at"`
	PublishedAt    *time.Time      `json:"publishedAt,omitempty" db:"published_at"`
	ReviewNotes    *string         `json:"reviewNotes,omitempty" db:"review_notes"`
	WordCount      int             `json:"wordCount" db:"word_count"`
	CharacterCount int             `json:"characterCount" db:"character_count"`
	ReadingTime    int             `json:"readingTime" db:"reading_time"`
	Views          int64           `json:"views" db:"views"`
	CreatedAt      time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time       `json:"updatedAt" db:"updated_at"`

	// Resolved by the repository on read-with-relations
	Categories []Category `json:"categories" db:"-"`
	Tags       []Tag      `json:"tags" db:"-"`
}

// IsAuthor reports whether userID owns the article
func (a *Article) IsAuthor(userID uuid.UUID) bool {
	return a.AuthorID == userID
}

// ArticleCategory is a join row between an article and a category
type ArticleCategory struct {
	ArticleID  uuid.UUID `db:"article_id"`
	CategoryID uuid.UUID `db:"category_id"`
}

// ArticleTag is a join row between an article and a tag
type ArticleTag struct {
	ArticleID uuid.UUID `db:"article_id"`
	TagID     uuid.UUID `db:"tag_id"`
}

// JoinKind selects which join table an association operation targets
type JoinKind string

const (
	JoinCategories JoinKind = "article_categories"
	JoinTags       JoinKind = "article_tags"
)

// CreateArticleRequest is the payload of the Create operation
type CreateArticleRequest struct {
	Title          string          `json:"title"`
	Subtitle       *string         `json:"subtitle,omitempty"`
	Slug           string          `json:"slug,omitempty"`
	Excerpt        *string         `json:"excerpt,omitempty"`
	Content        json.RawMessage `json:"content"`
	ContentHTML    *string         `json:"contentHtml,omitempty"`
	FeaturedImage  *string         `json:"featuredImage,omitempty"`
	SeoTitle       *string         `json:"seoTitle,omitempty"`
	SeoDescription *string         `json:"seoDescription,omitempty"`
	SeoKeywords    *string         `json:"seoKeywords,omitempty"`
	IsFeatured     bool            `json:"isFeatured"`
	IsBreakingNews bool            `json:"isBreakingNews"`
	AllowComments  *bool           `json:"allowComments,omitempty"`
	Visibility     string          `json:"visibility,omitempty"`
	ScheduledAt    *time.Time      `json:"scheduledAt,omitempty"`
	// A nil slice leaves associations untouched; an empty slice clears them.
	CategoryIDs []uuid.UUID `json:"categoryIds,omitempty"`
	TagIDs      []uuid.UUID `json:"tagIds,omitempty"`
}

// UpdateArticleRequest is the payload of the Update operation.
// Nil fields are left unchanged.
type UpdateArticleRequest struct {
	Title          *string         `json:"title,omitempty"`
	Subtitle       *string         `json:"subtitle,omitempty"`
	Slug           *string         `json:"slug,omitempty"`
	Excerpt        *string         `json:"excerpt,omitempty"`
	Content        json.RawMessage `json:"content,omitempty"`
	ContentHTML    *string         `json:"contentHtml,omitempty"`
	FeaturedImage  *string         `json:"featuredImage,omitempty"`
	SeoTitle       *string         `json:"seoTitle,omitempty"`
	SeoDescription *string         `json:"seoDescription,omitempty"`
	SeoKeywords    *string         `json:"seoKeywords,omitempty"`
	IsFeatured     *bool           `json:"isFeatured,omitempty"`
	IsBreakingNews *bool           `json:"isBreakingNews,omitempty"`
	AllowComments  *bool           `json:"allowComments,omitempty"`
	Visibility     *string         `json:"visibility,omitempty"`
	ScheduledAt    *time.Time      `json:"scheduledAt,omitempty"`
	CategoryIDs    []uuid.UUID     `json:"categoryIds"`
	TagIDs         []uuid.UUID     `json:"tagIds"`
}

// ReviewRequest is the payload of Approve and Reject
type ReviewRequest struct {
	ReviewNotes *string `json:"reviewNotes,omitempty"`
}
