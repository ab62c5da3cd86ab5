package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/rohit/cms-editorial/internal/domain/models"
)

// MockArticleRepository is an in-memory ArticleRepository.
// Rows are copied on the way in and out, like a real store.
type MockArticleRepository struct {
	mu         sync.Mutex
	Articles   map[uuid.UUID]*models.Article
	Joins      map[models.JoinKind]map[uuid.UUID][]uuid.UUID
	Categories *MockCategoryRepository
	Tags       *MockTagRepository
	SaveError  error
	FindError  error
	SaveCalls  int
}

func NewMockArticleRepository(categories *MockCategoryRepository, tags *MockTagRepository) *MockArticleRepository {
	return &MockArticleRepository{
		Articles: make(map[uuid.UUID]*models.Article),
		Joins: map[models.JoinKind]map[uuid.UUID][]uuid.UUID{
			models.JoinCategories: {},
			models.JoinTags:       {},
		},
		Categories: categories,
		Tags:       tags,
	}
}

func copyArticle(a *models.Article) *models.Article {
	c := *a
	c.Content = append([]byte(nil), a.Content...)
	c.Categories = nil
	c.Tags = nil
	return &c
}

// Put stores an article directly, bypassing Save bookkeeping
func (m *MockArticleRepository) Put(a *models.Article) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Articles[a.ID] = copyArticle(a)
}

// Get returns the stored row for assertions
func (m *MockArticleRepository) Get(id uuid.UUID) *models.Article {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.Articles[id]; ok {
		return copyArticle(a)
	}
	return nil
}

func (m *MockArticleRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	if m.FindError != nil {
		return nil, m.FindError
	}
	return m.Get(id), nil
}

func (m *MockArticleRepository) FindBySlug(ctx context.Context, slug string) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.Articles {
		if a.Slug == slug {
			return copyArticle(a), nil
		}
	}
	return nil, nil
}

func (m *MockArticleRepository) FindByIDWithRelations(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	article, err := m.FindByID(ctx, id)
	if err != nil || article == nil {
		return article, err
	}

	m.mu.Lock()
	categoryIDs := append([]uuid.UUID(nil), m.Joins[models.JoinCategories][id]...)
	tagIDs := append([]uuid.UUID(nil), m.Joins[models.JoinTags][id]...)
	m.mu.Unlock()

	article.Categories = []models.Category{}
	for _, cid := range categoryIDs {
		if c := m.Categories.lookup(cid); c != nil {
			article.Categories = append(article.Categories, *c)
		}
	}
	article.Tags = []models.Tag{}
	for _, tid := range tagIDs {
		if t := m.Tags.lookup(tid); t != nil {
			article.Tags = append(article.Tags, *t)
		}
	}
	return article, nil
}

func (m *MockArticleRepository) Save(ctx context.Context, article *models.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls++
	if m.SaveError != nil {
		return m.SaveError
	}
	if article.ID == uuid.Nil {
		article.ID = uuid.New()
	}
	m.Articles[article.ID] = copyArticle(article)
	return nil
}

func (m *MockArticleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Articles, id)
	for _, joins := range m.Joins {
		delete(joins, id)
	}
	return nil
}

func (m *MockArticleRepository) SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, a := range m.Articles {
		if a.Slug == slug && (excludeID == nil || id != *excludeID) {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockArticleRepository) DeleteJoinRowsForArticle(ctx context.Context, kind models.JoinKind, articleID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Joins[kind], articleID)
	return nil
}

func (m *MockArticleRepository) InsertJoinRow(ctx context.Context, kind models.JoinKind, articleID, targetID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.Joins[kind][articleID] {
		if existing == targetID {
			return nil
		}
	}
	m.Joins[kind][articleID] = append(m.Joins[kind][articleID], targetID)
	return nil
}

// JoinIDs returns the associated ids of the given kind for assertions
func (m *MockArticleRepository) JoinIDs(kind models.JoinKind, articleID uuid.UUID) []uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]uuid.UUID{}, m.Joins[kind][articleID]...)
}

// MockCategoryRepository is an in-memory CategoryRepository
type MockCategoryRepository struct {
	mu         sync.Mutex
	Categories map[uuid.UUID]*models.Category
	order      []uuid.UUID
}

func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{Categories: make(map[uuid.UUID]*models.Category)}
}

func (m *MockCategoryRepository) lookup(id uuid.UUID) *models.Category {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.Categories[id]; ok {
		cp := *c
		return &cp
	}
	return nil
}

func (m *MockCategoryRepository) Create(ctx context.Context, c *models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cp := *c
	if _, exists := m.Categories[c.ID]; !exists {
		m.order = append(m.order, c.ID)
	}
	m.Categories[c.ID] = &cp
	return nil
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	return m.lookup(id), nil
}

func (m *MockCategoryRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.Categories {
		if c.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

// ListOrdered sorts by order then name, matching the SQL implementation
func (m *MockCategoryRepository) ListOrdered(ctx context.Context) ([]*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.Category, 0, len(m.order))
	for _, id := range m.order {
		if c, ok := m.Categories[id]; ok {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (m *MockCategoryRepository) UpdateParent(ctx context.Context, id uuid.UUID, parentID *uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.Categories[id]; ok {
		c.ParentID = parentID
	}
	return nil
}

func (m *MockCategoryRepository) HasChildren(ctx context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.Categories {
		if c.ParentID != nil && *c.ParentID == id {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Categories, id)
	return nil
}

func (m *MockCategoryRepository) ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return filterExisting(ids, func(id uuid.UUID) bool { _, ok := m.Categories[id]; return ok }), nil
}

// MockTagRepository is an in-memory TagRepository
type MockTagRepository struct {
	mu   sync.Mutex
	Tags map[uuid.UUID]*models.Tag
}

func NewMockTagRepository() *MockTagRepository {
	return &MockTagRepository{Tags: make(map[uuid.UUID]*models.Tag)}
}

func (m *MockTagRepository) lookup(id uuid.UUID) *models.Tag {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.Tags[id]; ok {
		cp := *t
		return &cp
	}
	return nil
}

func (m *MockTagRepository) Create(ctx context.Context, tag *models.Tag) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if tag.ID == uuid.Nil {
		tag.ID = uuid.New()
	}
	cp := *tag
	m.Tags[tag.ID] = &cp
	return nil
}

func (m *MockTagRepository) List(ctx context.Context) ([]*models.Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.Tag, 0, len(m.Tags))
	for _, t := range m.Tags {
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MockTagRepository) NameOrSlugExists(ctx context.Context, name, slug string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.Tags {
		if t.Name == name || t.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockTagRepository) ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return filterExisting(ids, func(id uuid.UUID) bool { _, ok := m.Tags[id]; return ok }), nil
}

func filterExisting(ids []uuid.UUID, exists func(uuid.UUID) bool) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if !seen[id] && exists(id) {
			out = append(out, id)
		}
		seen[id] = true
	}
	return out
}

// MockRoleRepository is an in-memory RoleRepository
type MockRoleRepository struct {
	mu    sync.Mutex
	Roles map[uuid.UUID]*models.Role
}

func NewMockRoleRepository() *MockRoleRepository {
	return &MockRoleRepository{Roles: make(map[uuid.UUID]*models.Role)}
}

func (m *MockRoleRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.Roles[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

func (m *MockRoleRepository) GetByName(ctx context.Context, name string) (*models.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.Roles {
		if r.Name == name {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MockRoleRepository) CreateIfMissing(ctx context.Context, role *models.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.Roles {
		if r.Name == role.Name {
			return nil
		}
	}
	if role.ID == uuid.Nil {
		role.ID = uuid.New()
	}
	cp := *role
	m.Roles[role.ID] = &cp
	return nil
}

// MockUserRepository is an in-memory UserRepository
type MockUserRepository struct {
	mu    sync.Mutex
	Users map[uuid.UUID]*models.User
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{Users: make(map[uuid.UUID]*models.User)}
}

func (m *MockUserRepository) Add(u *models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.Users[u.ID] = &cp
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.Users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

// MockAuditRepository collects persisted audit events
type MockAuditRepository struct {
	mu          sync.Mutex
	Events      []models.AuditEvent
	CreateError error
}

func NewMockAuditRepository() *MockAuditRepository {
	return &MockAuditRepository{}
}

func (m *MockAuditRepository) Create(ctx context.Context, e *models.AuditEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateError != nil {
		return m.CreateError
	}
	m.Events = append(m.Events, *e)
	return nil
}

func (m *MockAuditRepository) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Events)
}

// MockTransactor runs fn directly; it counts calls for assertions
type MockTransactor struct {
	mu    sync.Mutex
	Calls int
}

func (m *MockTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()
	return fn(ctx)
}
