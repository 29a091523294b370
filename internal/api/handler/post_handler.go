package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/blog-api/internal/api/metrics"
	"github.com/sirpyerre/blog-api/internal/core/ports"
)

// PostHandler handles HTTP requests for blog posts.
type PostHandler struct {
	service ports.BlogService
}

func NewPostHandler(service ports.BlogService) *PostHandler {
	return &PostHandler{service: service}
}

// List handles GET /v1/posts.
//
// @Summary      List all posts
// @Tags         posts
// @Produce      json
// @Success      200  {object}  postListResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/posts [get]
func (h *PostHandler) List(c echo.Context) error {
	posts, err := h.service.ListPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostListResponse(posts))
}

// Get handles GET /v1/posts/:id and returns the post with author and comments.
//
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Param        id   path      int  true  "Post id"
// @Success      200  {object}  postDetailResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/posts/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.service.GetPostDetail(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostDetailResponse(detail))
}

// Create handles POST /v1/posts.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPostRequest  true  "Post content"
// @Success      201   {object}  postResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	var req createPostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.service.CreatePost(c.Request().Context(), actor(c), toCreatePostInput(req))
	metrics.PostMutationsTotal.WithLabelValues("create", metrics.Outcome(err)).Inc()
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderLocation, toPostResponse(post).Links.Self)
	return c.JSON(http.StatusCreated, toPostResponse(post))
}

// Update handles PATCH /v1/posts/:id. Author and date are never changed.
//
// @Summary      Edit a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "Post id"
// @Param        body  body      updatePostRequest  true  "Fields to change"
// @Success      200   {object}  postResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/posts/{id} [patch]
func (h *PostHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req updatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.service.UpdatePost(c.Request().Context(), actor(c), id, toPostPatch(req))
	metrics.PostMutationsTotal.WithLabelValues("update", metrics.Outcome(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponse(post))
}

// Delete handles DELETE /v1/posts/:id. The post's comments go with it.
//
// @Summary      Delete a post
// @Tags         posts
// @Security     BearerAuth
// @Param        id   path  int  true  "Post id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	err = h.service.DeletePost(c.Request().Context(), actor(c), id)
	metrics.PostMutationsTotal.WithLabelValues("delete", metrics.Outcome(err)).Inc()
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListByAuthor handles GET /v1/users/:id/posts.
//
// @Summary      List a user's posts
// @Tags         posts
// @Produce      json
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  postListResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/users/{id}/posts [get]
func (h *PostHandler) ListByAuthor(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	posts, err := h.service.ListPostsByAuthor(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostListResponse(posts))
}

// GetUser handles GET /v1/users/:id.
//
// @Summary      Get a user's public profile
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  authorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/users/{id} [get]
func (h *PostHandler) GetUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.service.GetUser(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAuthorResponse(user))
}
