package ports

import (
	"context"

	"github.com/sirpyerre/blog-api/internal/core/domain"
)

// CreatePostInput carries the fields of a new post.
type CreatePostInput struct {
	Title    string
	Subtitle string
	Body     string
	ImgURL   string
}

// BlogService defines the post and comment use cases. Every post mutation
// takes the acting user and checks domain.IsAdmin before touching the store.
type BlogService interface {
	CreatePost(ctx context.Context, actor *domain.User, input CreatePostInput) (*domain.Post, error)
	UpdatePost(ctx context.Context, actor *domain.User, id int64, patch domain.PostPatch) (*domain.Post, error)
	DeletePost(ctx context.Context, actor *domain.User, id int64) error

	GetPost(ctx context.Context, id int64) (*domain.Post, error)
	GetPostDetail(ctx context.Context, id int64) (*domain.PostDetail, error)
	ListPosts(ctx context.Context) ([]*domain.Post, error)
	ListPostsByAuthor(ctx context.Context, authorID int64) ([]*domain.Post, error)

	AddComment(ctx context.Context, actor *domain.User, postID int64, text string) (*domain.Comment, error)
	ListComments(ctx context.Context, postID int64) ([]*domain.Comment, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
}

// EventPublisher hands committed changes to the outside world. Publish must
// not block the caller on delivery.
type EventPublisher interface {
	Publish(event domain.BlogEvent)
}
