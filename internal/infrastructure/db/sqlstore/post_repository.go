package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sirpyerre/blog-api/internal/core/domain"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	m := toPostModel(post)
	m.ID = 0
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateTitle
		}
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("insert post: %w", err)
	}
	post.ID = m.ID
	return nil
}

func (r *PostRepository) FindByID(ctx context.Context, id int64) (*domain.Post, error) {
	var m postModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return m.toDomain(), nil
}

func (r *PostRepository) List(ctx context.Context) ([]*domain.Post, error) {
	return r.list(r.db.WithContext(ctx))
}

func (r *PostRepository) ListByAuthor(ctx context.Context, authorID int64) ([]*domain.Post, error) {
	return r.list(r.db.WithContext(ctx).Where("author_id = ?", authorID))
}

func (r *PostRepository) list(q *gorm.DB) ([]*domain.Post, error) {
	var models []postModel
	if err := q.Order("id ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	posts := make([]*domain.Post, 0, len(models))
	for _, m := range models {
		posts = append(posts, m.toDomain())
	}
	return posts, nil
}

// Update writes the editable columns only; author_id and date stay as created.
func (r *PostRepository) Update(ctx context.Context, post *domain.Post) error {
	res := r.db.WithContext(ctx).Model(&postModel{}).Where("id = ?", post.ID).Updates(map[string]any{
		"title":    post.Title,
		"subtitle": post.Subtitle,
		"body":     post.Body,
		"img_url":  post.ImgURL,
	})
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return domain.ErrDuplicateTitle
		}
		return fmt.Errorf("update post: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// Delete removes the post and its comments in one transaction. The explicit
// comment delete keeps the cascade intact on databases opened without
// foreign key enforcement.
func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&commentModel{}).Error; err != nil {
			return fmt.Errorf("delete comments: %w", err)
		}
		res := tx.Where("id = ?", id).Delete(&postModel{})
		if res.Error != nil {
			return fmt.Errorf("delete post: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrPostNotFound
		}
		return nil
	})
}
