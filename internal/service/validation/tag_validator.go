package validation

import (
	"github.com/rohit/cms-editorial/internal/domain/errors"
	"github.com/rohit/cms-editorial/internal/domain/models"
)

const maxDescriptionLen = 1000

// TagValidator validates tag payloads
type TagValidator struct{}

// NewTagValidator creates a new TagValidator
func NewTagValidator() *TagValidator {
	return &TagValidator{}
}

// ValidateCreate validates a create payload
func (v *TagValidator) ValidateCreate(req *models.CreateTagRequest) []*errors.AppError {
	var errs []*errors.AppError

	errs = append(errs, validateName(req.Name)...)
	if req.Slug != "" {
		errs = append(errs, validateSlug(req.Slug)...)
	}
	errs = append(errs, validateOptional(req.Description, "description", maxDescriptionLen)...)

	return errs
}
