package admin

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"yatube-backend/internal/cache"
	"yatube-backend/internal/errors"
	"yatube-backend/internal/model"
	"yatube-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockGroupService struct {
	mock.Mock
}

func (m *MockGroupService) CreateGroup(ctx context.Context, form *service.GroupForm) (*model.Group, error) {
	args := m.Called(ctx, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Group), args.Error(1)
}

func (m *MockGroupService) ListGroups(ctx context.Context) ([]*model.Group, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*model.Group), args.Error(1)
}

func (m *MockGroupService) DeleteGroup(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}

type stubStats map[errors.ErrorCode]int

func (s stubStats) GetErrorCounts() map[errors.ErrorCode]int {
	return s
}

func newRouter(h *AdminHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/groups", h.GetGroups)
	router.POST("/groups", h.CreateGroup)
	router.DELETE("/groups/:slug", h.DeleteGroup)
	router.POST("/cache/clear", h.ClearPageCache)
	router.GET("/errors", h.GetErrorStats)
	return router
}

func serve(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateGroup(t *testing.T) {
	groups := new(MockGroupService)
	router := newRouter(NewAdminHandler(groups, nil, nil, nil, nil))

	groups.On("CreateGroup", mock.Anything, &service.GroupForm{Title: "Cats", Slug: "cats", Description: "about cats"}).
		Return(&model.Group{ID: 1, Title: "Cats", Slug: "cats"}, nil)
	groups.On("CreateGroup", mock.Anything, &service.GroupForm{Title: "Cats", Slug: "cats", Description: "again"}).
		Return(nil, errors.New(errors.ErrGroupExists, "分组已存在"))

	w := serve(router, http.MethodPost, "/groups", `{"title":"Cats","slug":"cats","description":"about cats"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = serve(router, http.MethodPost, "/groups", `{"title":"Cats","slug":"cats","description":"again"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDeleteGroupNotFound(t *testing.T) {
	groups := new(MockGroupService)
	router := newRouter(NewAdminHandler(groups, nil, nil, nil, nil))
	groups.On("DeleteGroup", mock.Anything, "dogs").Return(errors.New(errors.ErrGroupNotFound, "分组不存在"))

	w := serve(router, http.MethodDelete, "/groups/dogs", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClearPageCache(t *testing.T) {
	store := cache.NewMemoryStore(8, time.Minute)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "GET /api/posts|0", &cache.Entry{Status: 200}))

	router := newRouter(NewAdminHandler(nil, nil, nil, store, nil))
	w := serve(router, http.MethodPost, "/cache/clear", "")
	assert.Equal(t, http.StatusOK, w.Code)

	_, ok, _ := store.Get(ctx, "GET /api/posts|0")
	assert.False(t, ok)
}

func TestGetErrorStats(t *testing.T) {
	router := newRouter(NewAdminHandler(nil, nil, nil, nil, stubStats{errors.ErrPostNotFound: 3}))

	w := serve(router, http.MethodGet, "/errors", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"code":200,"data":{"4003":3}}`, w.Body.String())
}
