package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rohit/cms-editorial/internal/domain/models"
	"github.com/rohit/cms-editorial/internal/permission"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests run against a real database when CMS_TEST_DATABASE_DSN is set,
// e.g. "host=localhost user=postgres password=postgres dbname=cms_test sslmode=disable".
func testDB(t *testing.T) *DB {
	t.Helper()
	dsn := os.Getenv("CMS_TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("CMS_TEST_DATABASE_DSN not set")
	}
	conn, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err)
	db := &DB{DB: conn}
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.RunMigrations(zerolog.Nop()))
	return db
}

// seedAuthor inserts a role and an active user and returns the user id
func seedAuthor(t *testing.T, db *DB) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	roles := NewRoleRepository(db)

	role := &models.Role{Name: "it-" + uuid.NewString()[:8], Permissions: permission.DefaultRoles()[1].Permissions.JSON()}
	require.NoError(t, roles.CreateIfMissing(ctx, role))
	stored, err := roles.GetByName(ctx, role.Name)
	require.NoError(t, err)
	require.NotNil(t, stored)

	userID := uuid.New()
	_, err = db.ExecContext(ctx,
		"INSERT INTO users (id, email, name, role_id) VALUES ($1, $2, $3, $4)",
		userID, userID.String()+"@example.com", "Integration Author", stored.ID)
	require.NoError(t, err)
	return userID
}

func TestArticleRepositoryRoundTrip(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	articles := NewArticleRepository(db)
	categories := NewCategoryRepository(db)
	tags := NewTagRepository(db)
	authorID := seedAuthor(t, db)

	suffix := uuid.NewString()[:8]
	cat := &models.Category{Name: "World " + suffix, Slug: "world-" + suffix, Type: models.CategoryTypeNewsArticleType, IsActive: true}
	require.NoError(t, categories.Create(ctx, cat))
	tag := &models.Tag{Name: "Economy " + suffix, Slug: "economy-" + suffix}
	require.NoError(t, tags.Create(ctx, tag))

	article := &models.Article{
		ID:         uuid.New(),
		Title:      "Integration",
		Slug:       "integration-" + suffix,
		Content:    json.RawMessage(`{"type":"doc","content":[]}`),
		Status:     models.ArticleStatusDraft,
		AuthorID:   authorID,
		Visibility: "web",
		WordCount:  3,
	}
	require.NoError(t, articles.Save(ctx, article))
	require.NoError(t, articles.InsertJoinRow(ctx, models.JoinCategories, article.ID, cat.ID))
	require.NoError(t, articles.InsertJoinRow(ctx, models.JoinCategories, article.ID, cat.ID))
	require.NoError(t, articles.InsertJoinRow(ctx, models.JoinTags, article.ID, tag.ID))

	loaded, err := articles.FindByIDWithRelations(ctx, article.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, models.ArticleStatusDraft, loaded.Status)
	assert.Equal(t, 3, loaded.WordCount)
	require.Len(t, loaded.Categories, 1)
	assert.Equal(t, cat.ID, loaded.Categories[0].ID)
	require.Len(t, loaded.Tags, 1)

	loaded.Status = models.ArticleStatusSubmitted
	loaded.UpdatedAt = time.Time{}
	require.NoError(t, articles.Save(ctx, loaded))
	again, err := articles.FindBySlug(ctx, article.Slug)
	require.NoError(t, err)
	assert.Equal(t, models.ArticleStatusSubmitted, again.Status)

	exists, err := articles.SlugExists(ctx, article.Slug, &article.ID)
	require.NoError(t, err)
	assert.False(t, exists)
	exists, err = articles.SlugExists(ctx, article.Slug, nil)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, articles.DeleteJoinRowsForArticle(ctx, models.JoinTags, article.ID))
	loaded, err = articles.FindByIDWithRelations(ctx, article.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded.Tags)
	assert.Len(t, loaded.Categories, 1)

	require.NoError(t, articles.Delete(ctx, article.ID))
	missing, err := articles.FindByID(ctx, article.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestExistingIDsPreservesOrder(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	tags := NewTagRepository(db)

	suffix := uuid.NewString()[:8]
	a := &models.Tag{Name: "a " + suffix, Slug: "a-" + suffix}
	b := &models.Tag{Name: "b " + suffix, Slug: "b-" + suffix}
	require.NoError(t, tags.Create(ctx, a))
	require.NoError(t, tags.Create(ctx, b))

	got, err := tags.ExistingIDs(ctx, []uuid.UUID{b.ID, uuid.New(), a.ID, b.ID})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{b.ID, a.ID}, got)

	err = tags.Create(ctx, &models.Tag{Name: a.Name, Slug: "other-" + suffix})
	assert.True(t, IsUniqueViolation(err))
}

func TestWithinTxRollsBack(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	categories := NewCategoryRepository(db)

	slug := "rollback-" + uuid.NewString()[:8]
	boom := errors.New("boom")
	err := db.WithinTx(ctx, func(ctx context.Context) error {
		if err := categories.Create(ctx, &models.Category{Name: slug, Slug: slug, Type: models.CategoryTypeOther}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	exists, err := categories.SlugExists(ctx, slug)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCategoryHierarchy(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	categories := NewCategoryRepository(db)

	suffix := uuid.NewString()[:8]
	parent := &models.Category{Name: "Parent " + suffix, Slug: "parent-" + suffix, Type: models.CategoryTypeEvent}
	require.NoError(t, categories.Create(ctx, parent))
	child := &models.Category{Name: "Child " + suffix, Slug: "child-" + suffix, Type: models.CategoryTypeEvent, ParentID: &parent.ID}
	require.NoError(t, categories.Create(ctx, child))

	has, err := categories.HasChildren(ctx, parent.ID)
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, categories.UpdateParent(ctx, child.ID, nil))
	moved, err := categories.GetByID(ctx, child.ID)
	require.NoError(t, err)
	assert.Nil(t, moved.ParentID)

	require.NoError(t, categories.Delete(ctx, parent.ID))
	require.NoError(t, categories.Delete(ctx, child.ID))
}

func TestAuditRepositoryCreate(t *testing.T) {
	db := testDB(t)
	audits := NewAuditRepository(db)

	event := &models.AuditEvent{
		ID:        uuid.New(),
		Action:    "CREATE_ARTICLE",
		Module:    "articles",
		Level:     models.AuditLevelInfo,
		Metadata:  json.RawMessage(`{"slug":"x"}`),
		Timestamp: time.Now().UTC(),
	}
	require.NoError(t, audits.Create(context.Background(), event))
}
