package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sirpyerre/blog-api/internal/core/domain"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create inserts the comment after confirming the post exists inside the same
// transaction, so a concurrent delete surfaces as ErrPostNotFound.
func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	m := commentModel{
		Text:      comment.Text,
		AuthorID:  comment.AuthorID,
		PostID:    comment.PostID,
		CreatedAt: comment.CreatedAt,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post postModel
		if err := tx.Select("id").Where("id = ?", comment.PostID).Take(&post).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrPostNotFound
			}
			return err
		}
		return tx.Omit(clause.Associations).Create(&m).Error
	})
	if err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			return err
		}
		if isForeignKeyViolation(err) {
			return r.missingReference(ctx, comment)
		}
		return fmt.Errorf("insert comment: %w", err)
	}

	comment.ID = m.ID
	return nil
}

// missingReference names the row a rejected insert pointed at. The post may
// have been deleted after the check above, otherwise the author is unknown.
func (r *CommentRepository) missingReference(ctx context.Context, comment *domain.Comment) error {
	var n int64
	if err := r.db.WithContext(ctx).Model(&postModel{}).Where("id = ?", comment.PostID).Count(&n).Error; err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	if n == 0 {
		return domain.ErrPostNotFound
	}
	return domain.ErrUserNotFound
}

func (r *CommentRepository) ListByPost(ctx context.Context, postID int64) ([]*domain.Comment, error) {
	var models []commentModel
	if err := r.db.WithContext(ctx).Where("post_id = ?", postID).Order("id ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	comments := make([]*domain.Comment, 0, len(models))
	for _, m := range models {
		comments = append(comments, m.toDomain())
	}
	return comments, nil
}
