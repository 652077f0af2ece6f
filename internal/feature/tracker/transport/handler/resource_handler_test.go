package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prep_tracker/internal/feature/tracker/domain/entity"
	jwtmw "prep_tracker/internal/platform/jwt"
	"prep_tracker/internal/shared/scoped"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// mockStore is a hand-written scoped.Store whose behaviour is set per test.
type mockStore[M, C, P any] struct {
	ListFunc   func(ctx context.Context, ownerID uint) ([]M, error)
	CreateFunc func(ctx context.Context, ownerID uint, in C) (M, error)
	UpdateFunc func(ctx context.Context, id, ownerID uint, patch P) (M, error)
	DeleteFunc func(ctx context.Context, id, ownerID uint) error
}

func (m *mockStore[M, C, P]) List(ctx context.Context, ownerID uint) ([]M, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, ownerID)
	}
	return []M{}, nil
}

func (m *mockStore[M, C, P]) Create(ctx context.Context, ownerID uint, in C) (M, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, ownerID, in)
	}
	var zero M
	return zero, nil
}

func (m *mockStore[M, C, P]) Update(ctx context.Context, id, ownerID uint, patch P) (M, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, ownerID, patch)
	}
	var zero M
	return zero, nil
}

func (m *mockStore[M, C, P]) Delete(ctx context.Context, id, ownerID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id, ownerID)
	}
	return nil
}

type dsaMock = mockStore[entity.DSATopic, entity.DSATopicInput, entity.DSATopicPatch]

const testUserID uint = 7

// asUser stands in for the JWT middleware.
func asUser(id uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(jwtmw.ContextUserID, id)
		c.Next()
	}
}

func newDSARouter(store *dsaMock) *gin.Engine {
	h := NewResourceHandler[entity.DSATopic, entity.DSATopicInput, entity.DSATopicPatch]("dsa", store)
	r := gin.New()
	g := r.Group("/api", asUser(testUserID))
	g.GET("/dsa", h.List)
	g.POST("/dsa", h.Create)
	g.PATCH("/dsa/:id", h.Update)
	g.DELETE("/dsa/:id", h.Delete)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	if body != "" {
		buf = bytes.NewBufferString(body)
	} else {
		buf = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestResourceHandler_List(t *testing.T) {
	t.Parallel()

	t.Run("success: rows of the caller", func(t *testing.T) {
		t.Parallel()
		store := &dsaMock{ListFunc: func(_ context.Context, ownerID uint) ([]entity.DSATopic, error) {
			assert.Equal(t, testUserID, ownerID)
			return []entity.DSATopic{{ID: 1, UserID: ownerID, Topic: "Two Sum", Category: "Arrays", Status: entity.StatusCompleted}}, nil
		}}

		w := do(newDSARouter(store), http.MethodGet, "/api/dsa", "")

		require.Equal(t, http.StatusOK, w.Code)
		var got []map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "Two Sum", got[0]["topic"])
		assert.Equal(t, "completed", got[0]["status"])
	})

	t.Run("success: empty list is an empty array", func(t *testing.T) {
		t.Parallel()
		w := do(newDSARouter(&dsaMock{}), http.MethodGet, "/api/dsa", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("failure: store error is opaque", func(t *testing.T) {
		t.Parallel()
		store := &dsaMock{ListFunc: func(context.Context, uint) ([]entity.DSATopic, error) {
			return nil, errors.New("connection reset by peer")
		}}

		w := do(newDSARouter(store), http.MethodGet, "/api/dsa", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
	})
}

func TestResourceHandler_Create(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		createFunc func(ctx context.Context, ownerID uint, in entity.DSATopicInput) (entity.DSATopic, error)
		wantStatus int
		wantBody   string
	}{
		{
			name: "success: created with owner from the token",
			body: `{"topic":"Two Sum","category":"Arrays","user_id":99}`,
			createFunc: func(_ context.Context, ownerID uint, in entity.DSATopicInput) (entity.DSATopic, error) {
				return entity.DSATopic{ID: 5, UserID: ownerID, Topic: in.Topic, Category: in.Category, Status: entity.StatusNotStarted}, nil
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "failure: malformed json",
			body:       `{"topic":`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"invalid request body"}`,
		},
		{
			name: "failure: validation error lists fields",
			body: `{"topic":"","category":"Arrays"}`,
			createFunc: func(_ context.Context, _ uint, _ entity.DSATopicInput) (entity.DSATopic, error) {
				return entity.DSATopic{}, scoped.NewValidationError("topic", "is required")
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"validation failed","fields":[{"field":"topic","message":"is required"}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := do(newDSARouter(&dsaMock{CreateFunc: tt.createFunc}), http.MethodPost, "/api/dsa", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, w.Body.String())
				return
			}
			var got entity.DSATopic
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, testUserID, got.UserID)
			assert.Equal(t, uint(5), got.ID)
		})
	}
}

func TestResourceHandler_WrongFieldType(t *testing.T) {
	t.Parallel()

	mocks := NewResourceHandler[entity.MockInterview, entity.MockInterviewInput, entity.MockInterviewPatch](
		"mocks", &mockStore[entity.MockInterview, entity.MockInterviewInput, entity.MockInterviewPatch]{})
	logs := NewResourceHandler[entity.DailyLog, entity.DailyLogInput, entity.DailyLogPatch](
		"logs", &mockStore[entity.DailyLog, entity.DailyLogInput, entity.DailyLogPatch]{})
	r := gin.New()
	g := r.Group("/api", asUser(testUserID))
	g.POST("/mocks", mocks.Create)
	g.PATCH("/mocks/:id", mocks.Update)
	g.POST("/logs", logs.Create)

	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		wantBody string
	}{
		{
			name:     "rating sent as a string",
			method:   http.MethodPost,
			path:     "/api/mocks",
			body:     `{"date":"2024-03-01T10:00:00Z","topics_covered":"DSA","self_rating":"7"}`,
			wantBody: `{"error":"validation failed","fields":[{"field":"self_rating","message":"must be of type int"}]}`,
		},
		{
			name:     "fractional rating",
			method:   http.MethodPost,
			path:     "/api/mocks",
			body:     `{"date":"2024-03-01T10:00:00Z","topics_covered":"DSA","self_rating":7.5}`,
			wantBody: `{"error":"validation failed","fields":[{"field":"self_rating","message":"must be of type int"}]}`,
		},
		{
			name:     "fractional rating in a patch",
			method:   http.MethodPatch,
			path:     "/api/mocks/4",
			body:     `{"self_rating":7.5}`,
			wantBody: `{"error":"validation failed","fields":[{"field":"self_rating","message":"must be of type int"}]}`,
		},
		{
			name:     "fractional hours",
			method:   http.MethodPost,
			path:     "/api/logs",
			body:     `{"content":"graphs","hours_spent":1.5}`,
			wantBody: `{"error":"validation failed","fields":[{"field":"hours_spent","message":"must be of type int"}]}`,
		},
		{
			name:     "body is not an object",
			method:   http.MethodPost,
			path:     "/api/logs",
			body:     `[1,2]`,
			wantBody: `{"error":"invalid request body"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := do(r, tt.method, tt.path, tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestResourceHandler_Update(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		path       string
		body       string
		updateFunc func(ctx context.Context, id, ownerID uint, patch entity.DSATopicPatch) (entity.DSATopic, error)
		wantStatus int
		wantBody   string
	}{
		{
			name: "success: patch forwarded with id and owner",
			path: "/api/dsa/12",
			body: `{"status":"completed"}`,
			updateFunc: func(_ context.Context, id, ownerID uint, patch entity.DSATopicPatch) (entity.DSATopic, error) {
				require.NotNil(t, patch.Status)
				assert.Nil(t, patch.Topic)
				return entity.DSATopic{ID: id, UserID: ownerID, Topic: "Two Sum", Category: "Arrays", Status: *patch.Status}, nil
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "failure: non-numeric id",
			path:       "/api/dsa/abc",
			body:       `{"status":"completed"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"invalid id"}`,
		},
		{
			name:       "failure: zero id",
			path:       "/api/dsa/0",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"invalid id"}`,
		},
		{
			name: "failure: not owned",
			path: "/api/dsa/12",
			body: `{"status":"completed"}`,
			updateFunc: func(context.Context, uint, uint, entity.DSATopicPatch) (entity.DSATopic, error) {
				return entity.DSATopic{}, scoped.ErrNotFound
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"not found"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := do(newDSARouter(&dsaMock{UpdateFunc: tt.updateFunc}), http.MethodPatch, tt.path, tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, w.Body.String())
				return
			}
			var got entity.DSATopic
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, uint(12), got.ID)
			assert.Equal(t, entity.StatusCompleted, got.Status)
		})
	}
}

func TestResourceHandler_Delete(t *testing.T) {
	t.Parallel()

	var gotID, gotOwner uint
	store := &dsaMock{DeleteFunc: func(_ context.Context, id, ownerID uint) error {
		gotID, gotOwner = id, ownerID
		return nil
	}}
	r := newDSARouter(store)

	w := do(r, http.MethodDelete, "/api/dsa/3", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, uint(3), gotID)
	assert.Equal(t, testUserID, gotOwner)

	w = do(r, http.MethodDelete, "/api/dsa/x1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResourceHandler_RequiresPrincipal(t *testing.T) {
	t.Parallel()

	h := NewResourceHandler[entity.DSATopic, entity.DSATopicInput, entity.DSATopicPatch]("dsa", &dsaMock{})
	r := gin.New()
	r.GET("/api/dsa", h.List)

	w := do(r, http.MethodGet, "/api/dsa", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
