package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rohit/cms-editorial/internal/auth"
	"github.com/rohit/cms-editorial/internal/config"
	"github.com/rohit/cms-editorial/internal/domain/models"
	"github.com/rohit/cms-editorial/internal/metrics"
	"github.com/rohit/cms-editorial/internal/mocks"
	"github.com/rohit/cms-editorial/internal/permission"
	"github.com/rohit/cms-editorial/internal/service/category"
	"github.com/rohit/cms-editorial/internal/service/workflow"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct{ err error }

func (p stubPinger) PingContext(ctx context.Context) error { return p.err }

type testServer struct {
	engine      *gin.Engine
	recorder    *mocks.RecordingRecorder
	authorToken string
	adminToken  string
}

func newTestServer(t *testing.T, db stubPinger) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	cfg := &config.Config{
		App:  config.AppConfig{Env: "test"},
		Auth: config.AuthConfig{JWTSecret: "test-secret", Issuer: "cms-editorial", TokenTTL: time.Hour, AdminRoles: []string{"admin"}},
	}

	roles := mocks.NewMockRoleRepository()
	for _, seed := range permission.DefaultRoles() {
		require.NoError(t, roles.CreateIfMissing(ctx, &models.Role{Name: seed.Name, Permissions: seed.Permissions.JSON()}))
	}
	users := mocks.NewMockUserRepository()
	tokens := auth.NewTokenService(cfg.Auth)

	issue := func(roleName string) string {
		role, err := roles.GetByName(ctx, roleName)
		require.NoError(t, err)
		require.NotNil(t, role)
		u := &models.User{ID: uuid.New(), Email: roleName + "@example.com", RoleID: role.ID, Active: true}
		users.Add(u)
		token, _, err := tokens.Issue(u.ID, role.ID)
		require.NoError(t, err)
		return token
	}

	categories := mocks.NewMockCategoryRepository()
	tags := mocks.NewMockTagRepository()
	articles := mocks.NewMockArticleRepository(categories, tags)
	tx := &mocks.MockTransactor{}
	recorder := mocks.NewRecordingRecorder()
	collector := metrics.NewCollector(prometheus.NewRegistry())

	workflowSvc := workflow.NewService(articles, categories, tags, tx, recorder, collector, zerolog.Nop())
	categorySvc := category.NewService(categories, tags, tx, recorder, collector, zerolog.Nop())
	authenticator := auth.NewAuthenticator(tokens, users, roles, cfg.Auth.AdminRoles)

	router := NewRouter(db, authenticator, workflowSvc, categorySvc, nil, collector, zerolog.Nop(), cfg)

	return &testServer{
		engine:      router.Engine(),
		recorder:    recorder,
		authorToken: issue("user"),
		adminToken:  issue("admin"),
	}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	body := decode(t, w)
	e, ok := body["error"].(map[string]interface{})
	require.True(t, ok, w.Body.String())
	return e["code"].(string)
}

var articleBody = map[string]interface{}{
	"title":   "Việt Nam hợp tác",
	"content": json.RawMessage(`{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"hello world"}]}]}`),
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t, stubPinger{})

	w := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decode(t, w)["status"])

	w = s.do(t, http.MethodGet, "/live", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	down := newTestServer(t, stubPinger{err: errors.New("connection refused")})
	w = down.do(t, http.MethodGet, "/ready", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAuthRequired(t *testing.T) {
	s := newTestServer(t, stubPinger{})

	w := s.do(t, http.MethodGet, "/v1/tags", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, w))

	w = s.do(t, http.MethodGet, "/v1/tags", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/v1/tags", s.authorToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestArticleLifecycle(t *testing.T) {
	s := newTestServer(t, stubPinger{})

	w := s.do(t, http.MethodPost, "/v1/articles", s.authorToken, articleBody)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	assert.Equal(t, "viet-nam-hop-tac", created["slug"])
	assert.Equal(t, "draft", created["status"])
	assert.EqualValues(t, 2, created["wordCount"])
	id := created["id"].(string)

	w = s.do(t, http.MethodGet, "/v1/articles/slug/viet-nam-hop-tac", s.authorToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPost, "/v1/articles/"+id+"/approve", s.adminToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "INVALID_TRANSITION", errorCode(t, w))

	w = s.do(t, http.MethodPost, "/v1/articles/"+id+"/submit", s.authorToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "submitted", decode(t, w)["status"])

	w = s.do(t, http.MethodPost, "/v1/articles/"+id+"/approve", s.authorToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPost, "/v1/articles/"+id+"/approve", s.adminToken,
		map[string]string{"reviewNotes": "ok"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	approved := decode(t, w)
	assert.Equal(t, "approved", approved["status"])
	assert.Equal(t, "ok", approved["reviewNotes"])

	w = s.do(t, http.MethodPost, "/v1/articles/"+id+"/publish", s.authorToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	published := decode(t, w)
	assert.Equal(t, "published", published["status"])
	assert.NotNil(t, published["publishedAt"])

	w = s.do(t, http.MethodPut, "/v1/articles/"+id, s.adminToken, map[string]string{"slug": "renamed"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "SLUG_IMMUTABLE", errorCode(t, w))

	w = s.do(t, http.MethodDelete, "/v1/articles/"+id, s.adminToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodGet, "/v1/articles/"+id, s.adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	last := s.recorder.Last()
	assert.Equal(t, "/v1/articles/:id", last.Endpoint)
	assert.Equal(t, http.MethodDelete, last.Method)
	assert.Contains(t, string(last.Metadata), "requestId")
}

func TestArticleBadInput(t *testing.T) {
	s := newTestServer(t, stubPinger{})

	w := s.do(t, http.MethodGet, "/v1/articles/not-a-uuid", s.authorToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", errorCode(t, w))

	req := httptest.NewRequest(http.MethodPost, "/v1/articles", bytes.NewBufferString("{not json"))
	req.Header.Set("Authorization", "Bearer "+s.authorToken)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	w = s.do(t, http.MethodPost, "/v1/articles", s.authorToken, map[string]string{"title": "No content"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decode(t, w)
	assert.Equal(t, "content", body["error"].(map[string]interface{})["field"])
}

func TestCategoryRoutes(t *testing.T) {
	s := newTestServer(t, stubPinger{})

	w := s.do(t, http.MethodPost, "/v1/categories", s.authorToken, map[string]string{"name": "News"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPost, "/v1/categories", s.adminToken, map[string]interface{}{"name": "News", "type": "news_article_type"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	parent := decode(t, w)
	assert.Equal(t, "news_article_type", parent["type"])
	parentID := parent["id"].(string)

	w = s.do(t, http.MethodPost, "/v1/categories", s.adminToken, map[string]interface{}{"name": "World", "parentId": parentID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	childID := decode(t, w)["id"].(string)

	w = s.do(t, http.MethodPut, "/v1/categories/"+parentID+"/parent", s.adminToken, map[string]string{"parentId": childID})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "INVALID_PARENT", errorCode(t, w))

	w = s.do(t, http.MethodGet, "/v1/categories/tree", s.authorToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	roots := decode(t, w)["data"].([]interface{})
	require.Len(t, roots, 1)
	children := roots[0].(map[string]interface{})["children"].([]interface{})
	assert.Len(t, children, 1)

	w = s.do(t, http.MethodDelete, "/v1/categories/"+parentID, s.adminToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CATEGORY_HAS_CHILDREN", errorCode(t, w))

	w = s.do(t, http.MethodPut, "/v1/categories/"+childID+"/parent", s.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Nil(t, decode(t, w)["parentId"])

	w = s.do(t, http.MethodDelete, "/v1/categories/"+parentID, s.adminToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestTagRoutes(t *testing.T) {
	s := newTestServer(t, stubPinger{})

	w := s.do(t, http.MethodPost, "/v1/tags", s.adminToken, map[string]string{"name": "Kinh tế"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "kinh-te", decode(t, w)["slug"])

	w = s.do(t, http.MethodPost, "/v1/tags", s.adminToken, map[string]string{"name": "Kinh tế"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "DUPLICATE_NAME", errorCode(t, w))

	w = s.do(t, http.MethodGet, "/v1/tags", s.authorToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["data"].([]interface{}), 1)
}
