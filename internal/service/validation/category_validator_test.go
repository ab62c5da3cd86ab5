package validation

import (
	"strings"
	"testing"

	"github.com/rohit/cms-editorial/internal/domain/models"
)

func TestCategoryValidator_ValidateCreate(t *testing.T) {
	validator := NewCategoryValidator()

	tests := []struct {
		name        string
		req         *models.CreateCategoryRequest
		wantErrCode string
	}{
		{"valid", &models.CreateCategoryRequest{Name: "World", Type: models.CategoryTypeNewsArticleType}, ""},
		{"missing name", &models.CreateCategoryRequest{Type: models.CategoryTypeEvent}, "MISSING_FIELD"},
		{"name too long", &models.CreateCategoryRequest{Name: strings.Repeat("n", 256), Type: models.CategoryTypeEvent}, "INVALID_NAME"},
		{"unknown type", &models.CreateCategoryRequest{Name: "World", Type: models.CategoryType(42)}, "INVALID_TYPE"},
		{"bad slug", &models.CreateCategoryRequest{Name: "World", Slug: "World!", Type: models.CategoryTypeOther}, "INVALID_SLUG"},
		{"negative order", &models.CreateCategoryRequest{Name: "World", Type: models.CategoryTypeOther, Order: -1}, "INVALID_REQUEST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validator.ValidateCreate(tt.req)
			if tt.wantErrCode == "" {
				if len(errs) > 0 {
					t.Errorf("ValidateCreate() expected valid, got %v", errs)
				}
				return
			}
			if len(errs) == 0 || errs[0].Code != tt.wantErrCode {
				t.Errorf("ValidateCreate() expected %s, got %v", tt.wantErrCode, errs)
			}
		})
	}
}

func TestTagValidator_ValidateCreate(t *testing.T) {
	validator := NewTagValidator()

	if errs := validator.ValidateCreate(&models.CreateTagRequest{Name: "golang"}); len(errs) != 0 {
		t.Errorf("expected valid tag, got %v", errs)
	}
	if errs := validator.ValidateCreate(&models.CreateTagRequest{Name: ""}); len(errs) == 0 {
		t.Errorf("expected missing name error")
	}
	long := strings.Repeat("d", 1001)
	if errs := validator.ValidateCreate(&models.CreateTagRequest{Name: "go", Description: &long}); len(errs) == 0 || errs[0].Code != "FIELD_TOO_LONG" {
		t.Errorf("expected FIELD_TOO_LONG, got %v", errs)
	}
}

func TestFirst(t *testing.T) {
	if First(nil) != nil {
		t.Errorf("First(nil) should be nil")
	}
	errs := NewValidator().Tag.ValidateCreate(&models.CreateTagRequest{})
	if First(errs) == nil {
		t.Errorf("First should return the first error")
	}
}
