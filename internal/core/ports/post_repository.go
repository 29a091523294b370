package ports

import (
	"context"

	"github.com/sirpyerre/blog-api/internal/core/domain"
)

// PostRepository defines persistence for blog posts.
type PostRepository interface {
	// Create assigns post.ID. Returns domain.ErrDuplicateTitle when the title is taken.
	Create(ctx context.Context, post *domain.Post) error
	FindByID(ctx context.Context, id int64) (*domain.Post, error)
	// List returns every post in ascending id order.
	List(ctx context.Context) ([]*domain.Post, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]*domain.Post, error)
	// Update writes title, subtitle, body and img_url only.
	Update(ctx context.Context, post *domain.Post) error
	// Delete removes the post and its comments atomically.
	Delete(ctx context.Context, id int64) error
}

// CommentRepository defines persistence for comments.
type CommentRepository interface {
	// Create assigns comment.ID. Returns domain.ErrPostNotFound when the post is gone.
	Create(ctx context.Context, comment *domain.Comment) error
	// ListByPost returns the post's comments in ascending id order.
	ListByPost(ctx context.Context, postID int64) ([]*domain.Comment, error)
}

// Pinger is implemented by stores that can report their connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}
