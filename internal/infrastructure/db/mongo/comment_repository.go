package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sirpyerre/blog-api/internal/core/domain"
)

// CommentRepository implements ports.CommentRepository using MongoDB.
type CommentRepository struct {
	col   *mongo.Collection
	posts *mongo.Collection
	ids   *sequence
}

// NewCommentRepository creates a new CommentRepository.
func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{
		col:   db.Collection(collectionComments),
		posts: db.Collection(collectionPosts),
		ids:   newSequence(db, collectionComments),
	}
}

type commentDoc struct {
	ID        int64     `bson:"_id"`
	PostID    int64     `bson:"post_id"`
	AuthorID  int64     `bson:"author_id"`
	Text      string    `bson:"text"`
	CreatedAt time.Time `bson:"created_at"`
}

// Create inserts the comment if its post still exists.
func (r *CommentRepository) Create(ctx context.Context, c *domain.Comment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.posts.CountDocuments(ctx, bson.M{"_id": c.PostID}, options.Count().SetLimit(1))
	if err != nil {
		return fmt.Errorf("check post: %w", err)
	}
	if n == 0 {
		return domain.ErrPostNotFound
	}

	id, err := r.ids.next(ctx)
	if err != nil {
		return err
	}
	doc := commentDoc{
		ID:        id,
		PostID:    c.PostID,
		AuthorID:  c.AuthorID,
		Text:      c.Text,
		CreatedAt: c.CreatedAt.UTC().Truncate(time.Millisecond),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	c.ID = id
	return nil
}

// ListByPost returns the post's comments oldest first.
func (r *CommentRepository) ListByPost(ctx context.Context, postID int64) ([]*domain.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"post_id": postID}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	var docs []commentDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode comments: %w", err)
	}
	comments := make([]*domain.Comment, 0, len(docs))
	for _, d := range docs {
		comments = append(comments, &domain.Comment{
			ID:        d.ID,
			PostID:    d.PostID,
			AuthorID:  d.AuthorID,
			Text:      d.Text,
			CreatedAt: d.CreatedAt.UTC(),
		})
	}
	return comments, nil
}
