package models

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
)

// CategoryType classifies a category
type CategoryType uint8

const (
	CategoryTypeEvent CategoryType = iota + 1
	CategoryTypeNewsArticleType
	CategoryTypeOther
)

var categoryTypes = newEnumTable("category type", map[CategoryType]string{
	CategoryTypeEvent:           "event",
	CategoryTypeNewsArticleType: "news_article_type",
	CategoryTypeOther:           "other",
})

// ParseCategoryType converts a stored or wire name into a CategoryType
func ParseCategoryType(s string) (CategoryType, error) {
	return categoryTypes.parse(s)
}

func (t CategoryType) String() string {
	if n, ok := categoryTypes.name(t); ok {
		return n
	}
	return "unknown"
}

func (t CategoryType) MarshalText() ([]byte, error) {
	n, err := categoryTypes.value(t)
	if err != nil {
		return nil, err
	}
	return []byte(n.(string)), nil
}

func (t *CategoryType) UnmarshalText(b []byte) error {
	v, err := categoryTypes.parse(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func (t *CategoryType) Scan(src interface{}) error {
	v, err := categoryTypes.scan(src)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func (t CategoryType) Value() (driver.Value, error) {
	return categoryTypes.value(t)
}

// Category represents a node of the category forest
type Category struct {
	ID        uuid.UUID    `json:"id" db:"id"`
	Name      string       `json:"name" db:"name"`
	Slug      string       `json:"slug" db:"slug"`
	Type      CategoryType `json:"type" db:"type"`
	ParentID  *uuid.UUID   `json:"parentId,omitempty" db:"parent_id"`
	IsActive  bool         `json:"isActive" db:"is_active"`
	Order     int          `json:"order" db:"sort_order"`
	CreatedAt time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time    `json:"updatedAt" db:"updated_at"`
}

// CreateCategoryRequest is the payload for creating a category
type CreateCategoryRequest struct {
	Name     string       `json:"name"`
	Slug     string       `json:"slug,omitempty"`
	Type     CategoryType `json:"type"`
	ParentID *uuid.UUID   `json:"parentId,omitempty"`
	IsActive *bool        `json:"isActive,omitempty"`
	Order    int          `json:"order"`
}

// MoveCategoryRequest reparents a category; a nil ParentID detaches it to the root
type MoveCategoryRequest struct {
	ParentID *uuid.UUID `json:"parentId"`
}
