package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirpyerre/blog-api/internal/api/middleware"
	"github.com/sirpyerre/blog-api/internal/core/domain"
	"github.com/sirpyerre/blog-api/internal/core/ports"
)

// stubBlogService implements ports.BlogService with overridable functions.
// Unset functions fail the test when called.
type stubBlogService struct {
	t            *testing.T
	createFn     func(ctx context.Context, actor *domain.User, in ports.CreatePostInput) (*domain.Post, error)
	updateFn     func(ctx context.Context, actor *domain.User, id int64, patch domain.PostPatch) (*domain.Post, error)
	deleteFn     func(ctx context.Context, actor *domain.User, id int64) error
	detailFn     func(ctx context.Context, id int64) (*domain.PostDetail, error)
	listFn       func(ctx context.Context) ([]*domain.Post, error)
	byAuthorFn   func(ctx context.Context, authorID int64) ([]*domain.Post, error)
	addCommentFn func(ctx context.Context, actor *domain.User, postID int64, text string) (*domain.Comment, error)
	commentsFn   func(ctx context.Context, postID int64) ([]*domain.Comment, error)
	userFn       func(ctx context.Context, id int64) (*domain.User, error)
}

func (s *stubBlogService) unexpected(name string) {
	s.t.Helper()
	s.t.Fatalf("unexpected call to %s", name)
}

func (s *stubBlogService) CreatePost(ctx context.Context, actor *domain.User, in ports.CreatePostInput) (*domain.Post, error) {
	if s.createFn == nil {
		s.unexpected("CreatePost")
	}
	return s.createFn(ctx, actor, in)
}

func (s *stubBlogService) UpdatePost(ctx context.Context, actor *domain.User, id int64, patch domain.PostPatch) (*domain.Post, error) {
	if s.updateFn == nil {
		s.unexpected("UpdatePost")
	}
	return s.updateFn(ctx, actor, id, patch)
}

func (s *stubBlogService) DeletePost(ctx context.Context, actor *domain.User, id int64) error {
	if s.deleteFn == nil {
		s.unexpected("DeletePost")
	}
	return s.deleteFn(ctx, actor, id)
}

func (s *stubBlogService) GetPost(ctx context.Context, id int64) (*domain.Post, error) {
	s.unexpected("GetPost")
	return nil, nil
}

func (s *stubBlogService) GetPostDetail(ctx context.Context, id int64) (*domain.PostDetail, error) {
	if s.detailFn == nil {
		s.unexpected("GetPostDetail")
	}
	return s.detailFn(ctx, id)
}

func (s *stubBlogService) ListPosts(ctx context.Context) ([]*domain.Post, error) {
	if s.listFn == nil {
		s.unexpected("ListPosts")
	}
	return s.listFn(ctx)
}

func (s *stubBlogService) ListPostsByAuthor(ctx context.Context, authorID int64) ([]*domain.Post, error) {
	if s.byAuthorFn == nil {
		s.unexpected("ListPostsByAuthor")
	}
	return s.byAuthorFn(ctx, authorID)
}

func (s *stubBlogService) AddComment(ctx context.Context, actor *domain.User, postID int64, text string) (*domain.Comment, error) {
	if s.addCommentFn == nil {
		s.unexpected("AddComment")
	}
	return s.addCommentFn(ctx, actor, postID, text)
}

func (s *stubBlogService) ListComments(ctx context.Context, postID int64) ([]*domain.Comment, error) {
	if s.commentsFn == nil {
		s.unexpected("ListComments")
	}
	return s.commentsFn(ctx, postID)
}

func (s *stubBlogService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	if s.userFn == nil {
		s.unexpected("GetUser")
	}
	return s.userFn(ctx, id)
}

var (
	alice = &domain.User{ID: 1, Email: "a@x.com", Name: "Alice", Role: domain.RoleAdmin}
	bob   = &domain.User{ID: 2, Email: "b@x.com", Name: "Bob", Role: domain.RoleMember}
)

func samplePost() *domain.Post {
	return &domain.Post{ID: 7, AuthorID: 1, Title: "T", Subtitle: "S", Date: "April 03, 2025", Body: "B", ImgURL: "http://i"}
}

func TestPostHandler_Create(t *testing.T) {
	e := newTestEcho()
	stub := &stubBlogService{t: t, createFn: func(ctx context.Context, actor *domain.User, in ports.CreatePostInput) (*domain.Post, error) {
		if actor != alice {
			t.Fatalf("expected session user to be passed through")
		}
		if in.Title != "T" || in.ImgURL != "http://i" {
			t.Fatalf("unexpected input: %+v", in)
		}
		return samplePost(), nil
	}}
	h := NewPostHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/v1/posts", `{"title":"T","subtitle":"S","body":"B","img_url":"http://i"}`), rec)
	c.Set(middleware.UserKey, alice)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/v1/posts/7" {
		t.Fatalf("unexpected location %q", loc)
	}

	var resp postResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.ID != 7 || resp.Date != "April 03, 2025" || resp.Links.Comments != "/v1/posts/7/comments" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestPostHandler_Create_Validation(t *testing.T) {
	e := newTestEcho()
	h := NewPostHandler(&stubBlogService{t: t})

	cases := []string{
		`{"subtitle":"S","body":"B","img_url":"http://i"}`,
		`{"title":"T","subtitle":"S","body":"B","img_url":"not a url"}`,
		`{"title":"` + strings.Repeat("x", 251) + `","subtitle":"S","body":"B","img_url":"http://i"}`,
	}
	for _, body := range cases {
		rec := httptest.NewRecorder()
		c := e.NewContext(jsonRequest(http.MethodPost, "/v1/posts", body), rec)
		c.Set(middleware.UserKey, alice)

		if code := httpStatus(t, h.Create(c)); code != http.StatusUnprocessableEntity {
			t.Fatalf("body %s: expected 422, got %d", body, code)
		}
	}
}

func TestPostHandler_Create_PropagatesServiceErrors(t *testing.T) {
	for _, want := range []error{domain.ErrForbidden, domain.ErrDuplicateTitle, domain.ErrUnauthenticated} {
		e := newTestEcho()
		h := NewPostHandler(&stubBlogService{t: t, createFn: func(context.Context, *domain.User, ports.CreatePostInput) (*domain.Post, error) {
			return nil, want
		}})

		rec := httptest.NewRecorder()
		c := e.NewContext(jsonRequest(http.MethodPost, "/v1/posts", `{"title":"T","subtitle":"S","body":"B","img_url":"http://i"}`), rec)
		c.Set(middleware.UserKey, bob)

		if err := h.Create(c); !errors.Is(err, want) {
			t.Fatalf("expected %v, got %v", want, err)
		}
	}
}

func TestPostHandler_Update_PartialPatch(t *testing.T) {
	e := newTestEcho()
	h := NewPostHandler(&stubBlogService{t: t, updateFn: func(ctx context.Context, actor *domain.User, id int64, patch domain.PostPatch) (*domain.Post, error) {
		if id != 7 {
			t.Fatalf("unexpected id %d", id)
		}
		if patch.Title == nil || *patch.Title != "T2" || patch.Body != nil || patch.Subtitle != nil || patch.ImgURL != nil {
			t.Fatalf("unexpected patch: %+v", patch)
		}
		p := samplePost()
		patch.Apply(p)
		return p, nil
	}})

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPatch, "/v1/posts/7", `{"title":"T2"}`), rec)
	c.SetParamNames("id")
	c.SetParamValues("7")
	c.Set(middleware.UserKey, alice)

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"title":"T2"`) {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}

func TestPostHandler_InvalidID(t *testing.T) {
	e := newTestEcho()
	h := NewPostHandler(&stubBlogService{t: t})

	for _, raw := range []string{"abc", "0", "-3"} {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/posts/"+raw, nil), rec)
		c.SetParamNames("id")
		c.SetParamValues(raw)

		if code := httpStatus(t, h.Get(c)); code != http.StatusBadRequest {
			t.Fatalf("id %q: expected 400, got %d", raw, code)
		}
	}
}

func TestPostHandler_Delete(t *testing.T) {
	e := newTestEcho()
	var deleted int64
	h := NewPostHandler(&stubBlogService{t: t, deleteFn: func(ctx context.Context, actor *domain.User, id int64) error {
		deleted = id
		return nil
	}})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/v1/posts/7", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("7")
	c.Set(middleware.UserKey, alice)

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent || deleted != 7 {
		t.Fatalf("expected 204 for post 7, got %d %d", rec.Code, deleted)
	}
}

func TestPostHandler_Get(t *testing.T) {
	e := newTestEcho()
	h := NewPostHandler(&stubBlogService{t: t, detailFn: func(ctx context.Context, id int64) (*domain.PostDetail, error) {
		return &domain.PostDetail{
			Post:   *samplePost(),
			Author: alice,
			Comments: []domain.CommentView{
				{Comment: domain.Comment{ID: 1, PostID: 7, AuthorID: 2, Text: "nice", CreatedAt: time.Now()}, Author: bob},
			},
		}, nil
	}})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/posts/7", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("7")

	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp struct {
		ID       int64 `json:"id"`
		Author   struct{ Name string } `json:"author"`
		Comments []struct {
			Text   string `json:"text"`
			Author struct{ Name string } `json:"author"`
		} `json:"comments"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.ID != 7 || resp.Author.Name != "Alice" || len(resp.Comments) != 1 || resp.Comments[0].Author.Name != "Bob" {
		t.Fatalf("unexpected detail: %+v", resp)
	}
	if strings.Contains(rec.Body.String(), "a@x.com") {
		t.Fatalf("author email must not be exposed: %s", rec.Body.String())
	}
}

func TestPostHandler_List(t *testing.T) {
	e := newTestEcho()
	h := NewPostHandler(&stubBlogService{t: t, listFn: func(context.Context) ([]*domain.Post, error) {
		return []*domain.Post{samplePost()}, nil
	}})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/posts", nil), rec)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp postListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Count != 1 || resp.Posts[0].Title != "T" {
		t.Fatalf("unexpected list: %+v", resp)
	}
}

func TestPostHandler_ListByAuthor_UnknownUser(t *testing.T) {
	e := newTestEcho()
	h := NewPostHandler(&stubBlogService{t: t, byAuthorFn: func(context.Context, int64) ([]*domain.Post, error) {
		return nil, domain.ErrUserNotFound
	}})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/users/9/posts", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("9")

	if err := h.ListByAuthor(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
