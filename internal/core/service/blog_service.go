package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/blog-api/internal/core/domain"
	"github.com/sirpyerre/blog-api/internal/core/ports"
)

// BlogService implements ports.BlogService on top of the three repositories.
type BlogService struct {
	users    ports.UserRepository
	posts    ports.PostRepository
	comments ports.CommentRepository
	events   ports.EventPublisher
	log      zerolog.Logger
	now      func() time.Time
}

func NewBlogService(
	users ports.UserRepository,
	posts ports.PostRepository,
	comments ports.CommentRepository,
	events ports.EventPublisher,
	log zerolog.Logger,
) *BlogService {
	return &BlogService{
		users:    users,
		posts:    posts,
		comments: comments,
		events:   events,
		log:      log,
		now:      time.Now,
	}
}

// requireAdmin runs before every post mutation, whatever the caller asked for.
func requireAdmin(actor *domain.User) error {
	if actor == nil {
		return domain.ErrUnauthenticated
	}
	if !domain.IsAdmin(actor) {
		return domain.ErrForbidden
	}
	return nil
}

// CreatePost stores a new post authored by actor and stamps today's date.
func (s *BlogService) CreatePost(ctx context.Context, actor *domain.User, in ports.CreatePostInput) (*domain.Post, error) {
	if err := requireAdmin(actor); err != nil {
		s.log.Warn().Int64("user_id", actorID(actor)).Msg("create post denied")
		return nil, err
	}
	if err := validatePostFields(in.Title, in.Subtitle, in.Body, in.ImgURL); err != nil {
		return nil, err
	}

	post := &domain.Post{
		AuthorID: actor.ID,
		Title:    in.Title,
		Subtitle: in.Subtitle,
		Body:     in.Body,
		ImgURL:   in.ImgURL,
		Date:     domain.FormatPostDate(s.now()),
	}
	if err := s.posts.Create(ctx, post); err != nil {
		if errors.Is(err, domain.ErrDuplicateTitle) {
			return nil, err
		}
		s.log.Error().Err(err).Msg("failed to create post")
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.log.Info().Int64("post_id", post.ID).Int64("author_id", post.AuthorID).Msg("post created")
	s.publish(domain.BlogEvent{Type: domain.EventPostCreated, PostID: post.ID, UserID: actor.ID, Title: post.Title})
	return post, nil
}

// UpdatePost applies a partial update. Author and date are never touched.
func (s *BlogService) UpdatePost(ctx context.Context, actor *domain.User, id int64, patch domain.PostPatch) (*domain.Post, error) {
	if err := requireAdmin(actor); err != nil {
		s.log.Warn().Int64("user_id", actorID(actor)).Int64("post_id", id).Msg("update post denied")
		return nil, err
	}

	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return post, nil
	}

	patch.Apply(post)
	if err := validatePostFields(post.Title, post.Subtitle, post.Body, post.ImgURL); err != nil {
		return nil, err
	}
	if err := s.posts.Update(ctx, post); err != nil {
		if errors.Is(err, domain.ErrDuplicateTitle) || errors.Is(err, domain.ErrPostNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update post: %w", err)
	}

	s.log.Info().Int64("post_id", post.ID).Msg("post updated")
	s.publish(domain.BlogEvent{Type: domain.EventPostUpdated, PostID: post.ID, UserID: actor.ID, Title: post.Title})
	return post, nil
}

// DeletePost removes the post together with its comments.
func (s *BlogService) DeletePost(ctx context.Context, actor *domain.User, id int64) error {
	if err := requireAdmin(actor); err != nil {
		s.log.Warn().Int64("user_id", actorID(actor)).Int64("post_id", id).Msg("delete post denied")
		return err
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			return err
		}
		return fmt.Errorf("delete post: %w", err)
	}

	s.log.Info().Int64("post_id", id).Msg("post deleted")
	s.publish(domain.BlogEvent{Type: domain.EventPostDeleted, PostID: id, UserID: actor.ID})
	return nil
}

func (s *BlogService) GetPost(ctx context.Context, id int64) (*domain.Post, error) {
	return s.posts.FindByID(ctx, id)
}

// GetPostDetail loads a post with its author and comments, resolving every
// author through one batched lookup.
func (s *BlogService) GetPostDetail(ctx context.Context, id int64) (*domain.PostDetail, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByPost(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("post detail: %w", err)
	}

	ids := []int64{post.AuthorID}
	for _, c := range comments {
		ids = append(ids, c.AuthorID)
	}
	authors, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("post detail: %w", err)
	}

	detail := &domain.PostDetail{
		Post:     *post,
		Author:   authors[post.AuthorID],
		Comments: make([]domain.CommentView, 0, len(comments)),
	}
	for _, c := range comments {
		detail.Comments = append(detail.Comments, domain.CommentView{Comment: *c, Author: authors[c.AuthorID]})
	}
	return detail, nil
}

func (s *BlogService) ListPosts(ctx context.Context) ([]*domain.Post, error) {
	return s.posts.List(ctx)
}

func (s *BlogService) ListPostsByAuthor(ctx context.Context, authorID int64) ([]*domain.Post, error) {
	if _, err := s.users.FindByID(ctx, authorID); err != nil {
		return nil, err
	}
	return s.posts.ListByAuthor(ctx, authorID)
}

// AddComment attaches text to a post. Anonymous callers never reach the store.
func (s *BlogService) AddComment(ctx context.Context, actor *domain.User, postID int64, text string) (*domain.Comment, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text is required", domain.ErrValidation)
	}

	comment := &domain.Comment{
		PostID:    postID,
		AuthorID:  actor.ID,
		Text:      text,
		CreatedAt: s.now().UTC(),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("add comment: %w", err)
	}

	s.log.Info().Int64("comment_id", comment.ID).Int64("post_id", postID).Int64("author_id", actor.ID).Msg("comment added")
	s.publish(domain.BlogEvent{Type: domain.EventCommentAdded, PostID: postID, UserID: actor.ID, CommentID: comment.ID})
	return comment, nil
}

func (s *BlogService) ListComments(ctx context.Context, postID int64) ([]*domain.Comment, error) {
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.comments.ListByPost(ctx, postID)
}

func (s *BlogService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *BlogService) publish(e domain.BlogEvent) {
	if s.events == nil {
		return
	}
	e.OccurredAt = s.now().UTC()
	s.events.Publish(e)
}

func actorID(u *domain.User) int64 {
	if u == nil {
		return 0
	}
	return u.ID
}

func validatePostFields(title, subtitle, body, imgURL string) error {
	switch {
	case strings.TrimSpace(title) == "":
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	case len(title) > domain.MaxTitleLen:
		return fmt.Errorf("%w: title exceeds %d characters", domain.ErrValidation, domain.MaxTitleLen)
	case strings.TrimSpace(subtitle) == "":
		return fmt.Errorf("%w: subtitle is required", domain.ErrValidation)
	case len(subtitle) > domain.MaxSubtitleLen:
		return fmt.Errorf("%w: subtitle exceeds %d characters", domain.ErrValidation, domain.MaxSubtitleLen)
	case strings.TrimSpace(body) == "":
		return fmt.Errorf("%w: body is required", domain.ErrValidation)
	case strings.TrimSpace(imgURL) == "":
		return fmt.Errorf("%w: img_url is required", domain.ErrValidation)
	case len(imgURL) > domain.MaxImgURLLen:
		return fmt.Errorf("%w: img_url exceeds %d characters", domain.ErrValidation, domain.MaxImgURLLen)
	}
	return nil
}
