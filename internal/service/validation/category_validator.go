package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/rohit/cms-editorial/internal/domain/errors"
	"github.com/rohit/cms-editorial/internal/domain/models"
)

const maxNameLen = 255

// CategoryValidator validates category payloads
type CategoryValidator struct{}

// NewCategoryValidator creates a new CategoryValidator
func NewCategoryValidator() *CategoryValidator {
	return &CategoryValidator{}
}

// ValidateCreate validates a create payload
func (v *CategoryValidator) ValidateCreate(req *models.CreateCategoryRequest) []*errors.AppError {
	var errs []*errors.AppError

	errs = append(errs, validateName(req.Name)...)

	if req.Slug != "" {
		errs = append(errs, validateSlug(req.Slug)...)
	}

	if req.Type.String() == "unknown" {
		errs = append(errs, errors.ErrValidation(errors.ErrCodeInvalidType, "type", "Type must be one of: event, news_article_type, other"))
	}

	if req.Order < 0 {
		errs = append(errs, errors.ErrValidation(errors.ErrCodeInvalidRequest, "order", "Order must not be negative"))
	}

	return errs
}

func validateName(name string) []*errors.AppError {
	name = strings.TrimSpace(name)
	if name == "" {
		return []*errors.AppError{errors.ErrValidation(errors.ErrCodeMissingField, "name", "Name is required")}
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return []*errors.AppError{errors.ErrValidation(errors.ErrCodeInvalidName, "name", "Name must be at most 255 characters")}
	}
	return nil
}
