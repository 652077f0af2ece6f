package router

import (
	"net/http"
	"net/http/httptest"
	"os"
	"sort"
	"testing"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authhandler "prep_tracker/internal/feature/auth/transport/handler"
	dashboardhandler "prep_tracker/internal/feature/dashboard/transport/handler"
	trackerhandler "prep_tracker/internal/feature/tracker/transport/handler"
	platformhandler "prep_tracker/internal/platform/http/handler"
)

type noopResource struct{}

func (noopResource) List(c *gin.Context)   { c.Status(http.StatusOK) }
func (noopResource) Create(c *gin.Context) { c.Status(http.StatusCreated) }
func (noopResource) Update(c *gin.Context) { c.Status(http.StatusOK) }
func (noopResource) Delete(c *gin.Context) { c.Status(http.StatusNoContent) }

func testHandlers() Handlers {
	resources := map[string]ResourceHandler{}
	for _, r := range Routes {
		resources[r.Name] = noopResource{}
	}
	return Handlers{
		Health:    platformhandler.NewHealthHandler(nil),
		Auth:      authhandler.NewAuthHandler(nil),
		Dashboard: dashboardhandler.NewDashboardHandler(nil),
		Topics:    trackerhandler.NewTopicHandler(nil),
		Resources: resources,
	}
}

func testOptions() Options {
	return Options{JWTSecret: "secret", CORS: cors.Config{AllowAllOrigins: true, AllowMethods: []string{"GET"}}}
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func TestNewRouter_RouteTable(t *testing.T) {
	t.Parallel()

	r, err := NewRouter(testHandlers(), testOptions())
	require.NoError(t, err)

	var got []string
	for _, ri := range r.Routes() {
		got = append(got, ri.Method+" "+ri.Path)
	}
	sort.Strings(got)

	want := []string{
		"DELETE /api/mocks/:id",
		"DELETE /api/projects/:id",
		"DELETE /api/sections/:id",
		"DELETE /api/topics/:id",
		"GET /api/cs",
		"GET /api/dashboard",
		"GET /api/dsa",
		"GET /api/logs",
		"GET /api/mocks",
		"GET /api/projects",
		"GET /api/sections",
		"GET /api/sections/:id/topics",
		"GET /api/user",
		"GET /healthz",
		"HEAD /healthz",
		"PATCH /api/cs/:id",
		"PATCH /api/dsa/:id",
		"PATCH /api/logs/:id",
		"PATCH /api/projects/:id",
		"PATCH /api/sections/:id",
		"PATCH /api/topics/:id",
		"POST /api/cs",
		"POST /api/dsa",
		"POST /api/login",
		"POST /api/logout",
		"POST /api/logs",
		"POST /api/mocks",
		"POST /api/projects",
		"POST /api/register",
		"POST /api/sections",
		"POST /api/sections/:id/topics",
	}
	assert.Equal(t, want, got)
}

func TestNewRouter_MissingResourceHandler(t *testing.T) {
	t.Parallel()

	h := testHandlers()
	delete(h.Resources, "mocks")

	_, err := NewRouter(h, testOptions())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "mocks")
}

func TestNewRouter_AuthBoundary(t *testing.T) {
	t.Parallel()

	r, err := NewRouter(testHandlers(), testOptions())
	require.NoError(t, err)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodGet, "/api/dsa", http.StatusUnauthorized},
		{http.MethodGet, "/api/dashboard", http.StatusUnauthorized},
		{http.MethodPost, "/api/logout", http.StatusUnauthorized},
		{http.MethodDelete, "/api/dsa/1", http.StatusNotFound},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
		assert.Equal(t, tt.want, w.Code, tt.method+" "+tt.path)
	}
}

func TestOp_Has(t *testing.T) {
	t.Parallel()

	ops := OpList | OpDelete
	assert.True(t, ops.Has(OpList))
	assert.True(t, ops.Has(OpDelete))
	assert.False(t, ops.Has(OpUpdate))
	assert.True(t, OpAll.Has(ops))
}
