package category

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/rohit/cms-editorial/internal/auth"
	apperrors "github.com/rohit/cms-editorial/internal/domain/errors"
	"github.com/rohit/cms-editorial/internal/domain/models"
	"github.com/rohit/cms-editorial/internal/mocks"
	"github.com/rohit/cms-editorial/internal/permission"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc        *Service
	categories *mocks.MockCategoryRepository
	tags       *mocks.MockTagRepository
	recorder   *mocks.RecordingRecorder
	editor     *auth.Identity
	writer     *auth.Identity
}

func newFixture() *fixture {
	f := &fixture{
		categories: mocks.NewMockCategoryRepository(),
		tags:       mocks.NewMockTagRepository(),
		recorder:   mocks.NewRecordingRecorder(),
	}
	f.svc = NewService(f.categories, f.tags, &mocks.MockTransactor{}, f.recorder, nil, zerolog.Nop())

	var admin, user permission.Set
	for _, seed := range permission.DefaultRoles() {
		switch seed.Name {
		case "admin":
			admin = seed.Permissions
		case "user":
			user = seed.Permissions
		}
	}
	f.editor = &auth.Identity{UserID: uuid.New(), RoleName: "admin", Permissions: admin, AdminEquivalent: true}
	f.writer = &auth.Identity{UserID: uuid.New(), RoleName: "user", Permissions: user}
	return f
}

func (f *fixture) create(t *testing.T, name string, parent *models.Category, order int) *models.Category {
	t.Helper()
	req := &models.CreateCategoryRequest{Name: name, Type: models.CategoryTypeNewsArticleType, Order: order}
	if parent != nil {
		req.ParentID = &parent.ID
	}
	c, err := f.svc.Create(context.Background(), f.editor, req)
	require.NoError(t, err)
	return c
}

func status(err error) int {
	return apperrors.AsAppError(err).StatusCode
}

func TestCreateCategory(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	c, err := f.svc.Create(ctx, f.editor, &models.CreateCategoryRequest{Name: "Thể thao"})
	require.NoError(t, err)
	assert.Equal(t, "the-thao", c.Slug)
	assert.Equal(t, models.CategoryTypeOther, c.Type)
	assert.True(t, c.IsActive)
	assert.Equal(t, "CREATE_CATEGORY", f.recorder.Last().Action)

	_, err = f.svc.Create(ctx, f.editor, &models.CreateCategoryRequest{Name: "The Thao"})
	assert.Equal(t, http.StatusUnprocessableEntity, status(err))
	assert.Equal(t, apperrors.ErrCodeDuplicateSlug, apperrors.AsAppError(err).Code)

	missing := uuid.New()
	_, err = f.svc.Create(ctx, f.editor, &models.CreateCategoryRequest{Name: "Orphan", ParentID: &missing})
	assert.Equal(t, apperrors.ErrCodeInvalidParent, apperrors.AsAppError(err).Code)

	_, err = f.svc.Create(ctx, f.writer, &models.CreateCategoryRequest{Name: "Nope"})
	assert.Equal(t, http.StatusForbidden, status(err))
	assert.Equal(t, models.AuditLevelWarn, f.recorder.Last().Level)

	_, err = f.svc.Create(ctx, nil, &models.CreateCategoryRequest{Name: "Anon"})
	assert.Equal(t, http.StatusUnauthorized, status(err))
}

func TestTree(t *testing.T) {
	f := newFixture()
	a := f.create(t, "A", nil, 0)
	f.create(t, "C", a, 2)
	f.create(t, "B", a, 1)
	z := f.create(t, "Z", nil, 0)

	roots, err := f.svc.Tree(context.Background(), f.writer)
	require.NoError(t, err)
	require.Len(t, roots, 2)
	assert.Equal(t, a.ID, roots[0].ID)
	assert.Equal(t, z.ID, roots[1].ID)
	require.Len(t, roots[0].Children, 2)
	assert.Equal(t, "B", roots[0].Children[0].Name)
	assert.Equal(t, "C", roots[0].Children[1].Name)
}

func TestMove(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a := f.create(t, "A", nil, 0)
	b := f.create(t, "B", a, 0)
	c := f.create(t, "C", b, 0)
	d := f.create(t, "D", nil, 0)

	moved, err := f.svc.Move(ctx, f.editor, d.ID, &models.MoveCategoryRequest{ParentID: &c.ID})
	require.NoError(t, err)
	assert.Equal(t, c.ID, *moved.ParentID)

	// a under its own grandchild
	_, err = f.svc.Move(ctx, f.editor, a.ID, &models.MoveCategoryRequest{ParentID: &c.ID})
	assert.Equal(t, apperrors.ErrCodeInvalidParent, apperrors.AsAppError(err).Code)
	_, err = f.svc.Move(ctx, f.editor, a.ID, &models.MoveCategoryRequest{ParentID: &a.ID})
	assert.Equal(t, apperrors.ErrCodeInvalidParent, apperrors.AsAppError(err).Code)
	got, _ := f.categories.GetByID(ctx, a.ID)
	assert.Nil(t, got.ParentID)

	missing := uuid.New()
	_, err = f.svc.Move(ctx, f.editor, b.ID, &models.MoveCategoryRequest{ParentID: &missing})
	assert.Equal(t, apperrors.ErrCodeInvalidParent, apperrors.AsAppError(err).Code)

	detached, err := f.svc.Move(ctx, f.editor, b.ID, &models.MoveCategoryRequest{})
	require.NoError(t, err)
	assert.Nil(t, detached.ParentID)

	_, err = f.svc.Move(ctx, f.editor, uuid.New(), &models.MoveCategoryRequest{})
	assert.Equal(t, http.StatusNotFound, status(err))
	_, err = f.svc.Move(ctx, f.writer, b.ID, &models.MoveCategoryRequest{})
	assert.Equal(t, http.StatusForbidden, status(err))
}

func TestDeleteCategory(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a := f.create(t, "A", nil, 0)
	b := f.create(t, "B", a, 0)

	err := f.svc.Delete(ctx, f.editor, a.ID)
	assert.Equal(t, http.StatusConflict, status(err))
	assert.Equal(t, apperrors.ErrCodeCategoryHasChild, apperrors.AsAppError(err).Code)

	require.NoError(t, f.svc.Delete(ctx, f.editor, b.ID))
	require.NoError(t, f.svc.Delete(ctx, f.editor, a.ID))
	assert.Equal(t, http.StatusNotFound, status(f.svc.Delete(ctx, f.editor, a.ID)))
	assert.Equal(t, "DELETE_CATEGORY", f.recorder.Last().Action)
}

func TestTags(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	tag, err := f.svc.CreateTag(ctx, f.editor, &models.CreateTagRequest{Name: "Golang"})
	require.NoError(t, err)
	assert.Equal(t, "golang", tag.Slug)
	assert.Equal(t, "CREATE_TAG", f.recorder.Last().Action)

	_, err = f.svc.CreateTag(ctx, f.editor, &models.CreateTagRequest{Name: "Go lang", Slug: "golang"})
	assert.Equal(t, apperrors.ErrCodeDuplicateName, apperrors.AsAppError(err).Code)

	_, err = f.svc.CreateTag(ctx, f.writer, &models.CreateTagRequest{Name: "Rust"})
	assert.Equal(t, http.StatusForbidden, status(err))

	_, err = f.svc.CreateTag(ctx, f.editor, &models.CreateTagRequest{Name: "Algorithms"})
	require.NoError(t, err)

	tags, err := f.svc.ListTags(ctx, f.writer)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "Algorithms", tags[0].Name)
	assert.Equal(t, "Golang", tags[1].Name)
}
