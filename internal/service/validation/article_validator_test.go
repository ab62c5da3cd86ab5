package validation

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/rohit/cms-editorial/internal/domain/models"
)

var helloDoc = json.RawMessage(`{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"hello world"}]}]}`)

func strPtr(s string) *string { return &s }

func TestArticleValidator_ValidateCreate(t *testing.T) {
	validator := NewArticleValidator()

	tests := []struct {
		name        string
		req         *models.CreateArticleRequest
		wantValid   bool
		wantErrCode string
	}{
		{
			name:      "valid article without slug",
			req:       &models.CreateArticleRequest{Title: "Hello", Content: helloDoc},
			wantValid: true,
		},
		{
			name:      "valid article with explicit slug",
			req:       &models.CreateArticleRequest{Title: "Hello", Slug: "hello-there", Content: helloDoc},
			wantValid: true,
		},
		{
			name:        "blank title",
			req:         &models.CreateArticleRequest{Title: "   ", Content: helloDoc},
			wantErrCode: "MISSING_FIELD",
		},
		{
			name:        "title too long",
			req:         &models.CreateArticleRequest{Title: strings.Repeat("a", 501), Content: helloDoc},
			wantErrCode: "INVALID_TITLE",
		},
		{
			name:        "missing content",
			req:         &models.CreateArticleRequest{Title: "Hello"},
			wantErrCode: "MISSING_FIELD",
		},
		{
			name:        "null content",
			req:         &models.CreateArticleRequest{Title: "Hello", Content: json.RawMessage(`null`)},
			wantErrCode: "MISSING_FIELD",
		},
		{
			name:        "content is not a document",
			req:         &models.CreateArticleRequest{Title: "Hello", Content: json.RawMessage(`[1,2,3]`)},
			wantErrCode: "INVALID_CONTENT",
		},
		{
			name:        "invalid slug - uppercase",
			req:         &models.CreateArticleRequest{Title: "Hello", Slug: "Hello-World", Content: helloDoc},
			wantErrCode: "INVALID_SLUG",
		},
		{
			name:        "seo title too long",
			req:         &models.CreateArticleRequest{Title: "Hello", Content: helloDoc, SeoTitle: strPtr(strings.Repeat("s", 256))},
			wantErrCode: "FIELD_TOO_LONG",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validator.ValidateCreate(tt.req)

			if tt.wantValid && len(errs) > 0 {
				t.Errorf("ValidateCreate() expected valid, got errors: %v", errs)
			}

			if !tt.wantValid {
				if len(errs) == 0 {
					t.Errorf("ValidateCreate() expected errors, got none")
					return
				}
				found := false
				for _, err := range errs {
					if err.Code == tt.wantErrCode {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("ValidateCreate() expected error code %s, got codes:", tt.wantErrCode)
					for _, err := range errs {
						t.Logf("  - %s: %s", err.Code, err.Message)
					}
				}
			}
		})
	}
}

func TestArticleValidator_ValidateUpdate(t *testing.T) {
	validator := NewArticleValidator()

	if errs := validator.ValidateUpdate(&models.UpdateArticleRequest{}); len(errs) != 0 {
		t.Errorf("empty update should be valid, got %v", errs)
	}

	empty := ""
	if errs := validator.ValidateUpdate(&models.UpdateArticleRequest{Title: &empty}); len(errs) == 0 || errs[0].Field != "title" {
		t.Errorf("blank title on update should fail on title, got %v", errs)
	}

	bad := "not a slug"
	if errs := validator.ValidateUpdate(&models.UpdateArticleRequest{Slug: &bad}); len(errs) == 0 || errs[0].Code != "INVALID_SLUG" {
		t.Errorf("bad slug on update should fail with INVALID_SLUG, got %v", errs)
	}

	if errs := validator.ValidateUpdate(&models.UpdateArticleRequest{Content: json.RawMessage(`"{broken"`)}); len(errs) == 0 {
		t.Errorf("broken content on update should fail")
	}

	for _, raw := range []string{"null", " null ", "  "} {
		errs := validator.ValidateUpdate(&models.UpdateArticleRequest{Content: json.RawMessage(raw)})
		if len(errs) == 0 || errs[0].Code != "MISSING_FIELD" || errs[0].Field != "content" {
			t.Errorf("content %q on update should fail with MISSING_FIELD, got %v", raw, errs)
		}
	}
}

func TestArticleValidator_IsValidSlug(t *testing.T) {
	validator := NewArticleValidator()

	validSlugs := []string{
		"hello-world",
		"my-article-title",
		"test123",
		"a-b-c",
		"single",
	}

	invalidSlugs := []string{
		"Hello World",
		"hello world",
		"UPPERCASE",
		"has_underscore",
		"has.dot",
		"-leading",
		"trailing-",
		"double--hyphen",
		"",
	}

	for _, slug := range validSlugs {
		if !validator.IsValidSlug(slug) {
			t.Errorf("IsValidSlug(%q) = false, want true", slug)
		}
	}

	for _, slug := range invalidSlugs {
		if validator.IsValidSlug(slug) {
			t.Errorf("IsValidSlug(%q) = true, want false", slug)
		}
	}
}
