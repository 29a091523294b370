package handler

import (
	"strconv"

	"github.com/sirpyerre/blog-api/internal/core/domain"
	"github.com/sirpyerre/blog-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreatePostInput(req createPostRequest) ports.CreatePostInput {
	return ports.CreatePostInput{
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Body:     req.Body,
		ImgURL:   req.ImgURL,
	}
}

func toPostPatch(req updatePostRequest) domain.PostPatch {
	return domain.PostPatch{
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Body:     req.Body,
		ImgURL:   req.ImgURL,
	}
}

// --- Domain → Response ---

func toUserResponse(u *domain.User) *userResponse {
	if u == nil {
		return nil
	}
	return &userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

func toAuthorResponse(u *domain.User) *authorResponse {
	if u == nil {
		return nil
	}
	return &authorResponse{ID: u.ID, Name: u.Name}
}

func toPostResponse(p *domain.Post) postResponse {
	self := "/v1/posts/" + strconv.FormatInt(p.ID, 10)
	return postResponse{
		ID:       p.ID,
		AuthorID: p.AuthorID,
		Title:    p.Title,
		Subtitle: p.Subtitle,
		Date:     p.Date,
		Body:     p.Body,
		ImgURL:   p.ImgURL,
		Links: postLinks{
			Self:     self,
			Comments: self + "/comments",
		},
	}
}

func toPostListResponse(posts []*domain.Post) postListResponse {
	out := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostResponse(p))
	}
	return postListResponse{Posts: out, Count: len(out)}
}

func toPostDetailResponse(d *domain.PostDetail) postDetailResponse {
	comments := make([]commentResponse, 0, len(d.Comments))
	for _, cv := range d.Comments {
		resp := toCommentResponse(&cv.Comment)
		resp.Author = toAuthorResponse(cv.Author)
		comments = append(comments, resp)
	}
	return postDetailResponse{
		postResponse: toPostResponse(&d.Post),
		Author:       toAuthorResponse(d.Author),
		Comments:     comments,
	}
}

func toCommentResponse(c *domain.Comment) commentResponse {
	return commentResponse{
		ID:        c.ID,
		PostID:    c.PostID,
		AuthorID:  c.AuthorID,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
	}
}

func toCommentListResponse(comments []*domain.Comment) commentListResponse {
	out := make([]commentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, toCommentResponse(c))
	}
	return commentListResponse{Comments: out, Count: len(out)}
}
