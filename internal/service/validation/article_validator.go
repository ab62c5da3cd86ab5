package validation

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rohit/cms-editorial/internal/domain/errors"
	"github.com/rohit/cms-editorial/internal/domain/models"
	"github.com/rohit/cms-editorial/internal/service/content"
)

const (
	maxTitleLen          = 500
	maxSlugLen           = 255
	maxSubtitleLen       = 500
	maxSeoTitleLen       = 255
	maxSeoDescriptionLen = 500
	maxVisibilityLen     = 255
)

// ArticleValidator validates article payloads
type ArticleValidator struct{}

// NewArticleValidator creates a new ArticleValidator
func NewArticleValidator() *ArticleValidator {
	return &ArticleValidator{}
}

// Kebab-case slug pattern
var slugRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// IsValidSlug checks if a string is a valid kebab-case slug
func IsValidSlug(slug string) bool {
	if slug == "" {
		return false
	}
	return slugRegex.MatchString(slug)
}

// IsValidSlug checks if a string is a valid kebab-case slug
func (v *ArticleValidator) IsValidSlug(slug string) bool {
	return IsValidSlug(slug)
}

// ValidateCreate validates a create payload. An empty slug is allowed; it is derived later.
func (v *ArticleValidator) ValidateCreate(req *models.CreateArticleRequest) []*errors.AppError {
	var errs []*errors.AppError

	errs = append(errs, validateTitle(req.Title)...)

	errs = append(errs, validateContent(req.Content)...)

	if req.Slug != "" {
		errs = append(errs, validateSlug(req.Slug)...)
	}

	errs = append(errs, validateOptional(req.Subtitle, "subtitle", maxSubtitleLen)...)
	errs = append(errs, validateOptional(req.SeoTitle, "seoTitle", maxSeoTitleLen)...)
	errs = append(errs, validateOptional(req.SeoDescription, "seoDescription", maxSeoDescriptionLen)...)
	if utf8.RuneCountInString(req.Visibility) > maxVisibilityLen {
		errs = append(errs, tooLong("visibility", maxVisibilityLen))
	}

	return errs
}

// ValidateUpdate validates the supplied fields of an update payload
func (v *ArticleValidator) ValidateUpdate(req *models.UpdateArticleRequest) []*errors.AppError {
	var errs []*errors.AppError

	if req.Title != nil {
		errs = append(errs, validateTitle(*req.Title)...)
	}
	if req.Slug != nil {
		errs = append(errs, validateSlug(*req.Slug)...)
	}
	// A nil Content leaves the document unchanged; an explicit null is rejected.
	if req.Content != nil {
		errs = append(errs, validateContent(req.Content)...)
	}

	errs = append(errs, validateOptional(req.Subtitle, "subtitle", maxSubtitleLen)...)
	errs = append(errs, validateOptional(req.SeoTitle, "seoTitle", maxSeoTitleLen)...)
	errs = append(errs, validateOptional(req.SeoDescription, "seoDescription", maxSeoDescriptionLen)...)
	errs = append(errs, validateOptional(req.Visibility, "visibility", maxVisibilityLen)...)

	return errs
}

func validateContent(raw []byte) []*errors.AppError {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return []*errors.AppError{errors.ErrValidation(errors.ErrCodeMissingField, "content", "Content is required")}
	}
	if !content.Valid(raw) {
		return []*errors.AppError{errors.ErrValidation(errors.ErrCodeInvalidContent, "content", "Content must be a structured document")}
	}
	return nil
}

func validateTitle(title string) []*errors.AppError {
	title = strings.TrimSpace(title)
	if title == "" {
		return []*errors.AppError{errors.ErrValidation(errors.ErrCodeMissingField, "title", "Title is required")}
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return []*errors.AppError{errors.ErrValidation(errors.ErrCodeInvalidTitle, "title", "Title must be at most 500 characters")}
	}
	return nil
}

func validateSlug(slug string) []*errors.AppError {
	if !IsValidSlug(slug) {
		return []*errors.AppError{errors.ErrValidation(errors.ErrCodeInvalidSlug, "slug", "Slug must be in kebab-case format (lowercase letters, numbers, and hyphens only)")}
	}
	if len(slug) > maxSlugLen {
		return []*errors.AppError{errors.ErrValidation(errors.ErrCodeInvalidSlug, "slug", "Slug must be at most 255 characters")}
	}
	return nil
}

func validateOptional(value *string, field string, max int) []*errors.AppError {
	if value != nil && utf8.RuneCountInString(*value) > max {
		return []*errors.AppError{tooLong(field, max)}
	}
	return nil
}

func tooLong(field string, max int) *errors.AppError {
	return errors.ErrValidation(errors.ErrCodeFieldTooLong, field, field+" exceeds the maximum length of "+strconv.Itoa(max))
}
