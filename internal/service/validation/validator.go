package validation

import (
	"github.com/rohit/cms-editorial/internal/domain/errors"
)

// Validator aggregates all entity validators
type Validator struct {
	Article  *ArticleValidator
	Category *CategoryValidator
	Tag      *TagValidator
}

// NewValidator creates a new Validator with all entity validators
func NewValidator() *Validator {
	return &Validator{
		Article:  NewArticleValidator(),
		Category: NewCategoryValidator(),
		Tag:      NewTagValidator(),
	}
}

// First returns the first error of errs, or nil
func First(errs []*errors.AppError) error {
	if len(errs) == 0 {
		return nil
	}
	return errs[0]
}
