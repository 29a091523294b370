package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirpyerre/blog-api/internal/api/middleware"
	"github.com/sirpyerre/blog-api/internal/core/domain"
)

func TestCommentHandler_Create(t *testing.T) {
	e := newTestEcho()
	h := NewCommentHandler(&stubBlogService{t: t, addCommentFn: func(ctx context.Context, actor *domain.User, postID int64, text string) (*domain.Comment, error) {
		if actor != bob || postID != 7 || text != "nice" {
			t.Fatalf("unexpected args: %+v %d %q", actor, postID, text)
		}
		return &domain.Comment{ID: 1, PostID: postID, AuthorID: actor.ID, Text: text, CreatedAt: time.Now()}, nil
	}})

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/v1/posts/7/comments", `{"text":"nice"}`), rec)
	c.SetParamNames("id")
	c.SetParamValues("7")
	c.Set(middleware.UserKey, bob)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated || !strings.Contains(rec.Body.String(), `"author_id":2`) {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}

func TestCommentHandler_Create_Anonymous(t *testing.T) {
	e := newTestEcho()
	h := NewCommentHandler(&stubBlogService{t: t})

	for _, body := range []string{`{"text":"anon"}`, `{}`} {
		rec := httptest.NewRecorder()
		c := e.NewContext(jsonRequest(http.MethodPost, "/v1/posts/7/comments", body), rec)
		c.SetParamNames("id")
		c.SetParamValues("7")

		if err := h.Create(c); !errors.Is(err, domain.ErrUnauthenticated) {
			t.Fatalf("expected ErrUnauthenticated, got %v", err)
		}
	}
}

func TestCommentHandler_Create_EmptyText(t *testing.T) {
	e := newTestEcho()
	h := NewCommentHandler(&stubBlogService{t: t})

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/v1/posts/7/comments", `{"text":""}`), rec)
	c.SetParamNames("id")
	c.SetParamValues("7")
	c.Set(middleware.UserKey, bob)

	if code := httpStatus(t, h.Create(c)); code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", code)
	}
}

func TestCommentHandler_List(t *testing.T) {
	e := newTestEcho()
	h := NewCommentHandler(&stubBlogService{t: t, commentsFn: func(ctx context.Context, postID int64) ([]*domain.Comment, error) {
		if postID == 404 {
			return nil, domain.ErrPostNotFound
		}
		return []*domain.Comment{{ID: 1, PostID: postID, AuthorID: 2, Text: "a"}, {ID: 2, PostID: postID, AuthorID: 1, Text: "b"}}, nil
	}})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/posts/7/comments", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("7")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"count":2`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/posts/404/comments", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("404")
	if err := h.List(c); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}
