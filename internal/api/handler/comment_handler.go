package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/blog-api/internal/api/metrics"
	"github.com/sirpyerre/blog-api/internal/core/domain"
	"github.com/sirpyerre/blog-api/internal/core/ports"
)

// CommentHandler handles comment listing and submission.
type CommentHandler struct {
	service ports.BlogService
}

// NewCommentHandler creates a CommentHandler backed by the given service.
func NewCommentHandler(service ports.BlogService) *CommentHandler {
	return &CommentHandler{service: service}
}

// List handles GET /v1/posts/:id/comments.
//
// @Summary      List a post's comments
// @Tags         comments
// @Produce      json
// @Param        id   path      int  true  "Post id"
// @Success      200  {object}  commentListResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/posts/{id}/comments [get]
func (h *CommentHandler) List(c echo.Context) error {
	postID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	comments, err := h.service.ListComments(c.Request().Context(), postID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCommentListResponse(comments))
}

// Create handles POST /v1/posts/:id/comments. Anonymous callers get 401.
//
// @Summary      Comment on a post
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Post id"
// @Param        body  body      createCommentRequest  true  "Comment"
// @Success      201   {object}  commentResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/posts/{id}/comments [post]
func (h *CommentHandler) Create(c echo.Context) error {
	postID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if actor(c) == nil {
		metrics.CommentsTotal.WithLabelValues(metrics.Outcome(domain.ErrUnauthenticated)).Inc()
		return domain.ErrUnauthenticated
	}
	var req createCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.service.AddComment(c.Request().Context(), actor(c), postID, req.Text)
	metrics.CommentsTotal.WithLabelValues(metrics.Outcome(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toCommentResponse(comment))
}
