package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sirpyerre/blog-api/internal/core/domain"
)

type PostRepository struct {
	col      *mongo.Collection
	comments *mongo.Collection
	ids      *sequence
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{
		col:      db.Collection(collectionPosts),
		comments: db.Collection(collectionComments),
		ids:      newSequence(db, collectionPosts),
	}
}

type postDoc struct {
	ID       int64  `bson:"_id"`
	AuthorID int64  `bson:"author_id"`
	Title    string `bson:"title"`
	Subtitle string `bson:"subtitle"`
	Date     string `bson:"date"`
	Body     string `bson:"body"`
	ImgURL   string `bson:"img_url"`
}

func (d postDoc) toDomain() *domain.Post {
	return &domain.Post{
		ID:       d.ID,
		AuthorID: d.AuthorID,
		Title:    d.Title,
		Subtitle: d.Subtitle,
		Date:     d.Date,
		Body:     d.Body,
		ImgURL:   d.ImgURL,
	}
}

// Create inserts a new post document. The unique title index rejects a
// duplicate even when two requests race.
func (r *PostRepository) Create(ctx context.Context, p *domain.Post) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.ids.next(ctx)
	if err != nil {
		return err
	}
	doc := postDoc{
		ID:       id,
		AuthorID: p.AuthorID,
		Title:    p.Title,
		Subtitle: p.Subtitle,
		Date:     p.Date,
		Body:     p.Body,
		ImgURL:   p.ImgURL,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateTitle
		}
		return fmt.Errorf("insert post: %w", err)
	}
	p.ID = id
	return nil
}

func (r *PostRepository) FindByID(ctx context.Context, id int64) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc postDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PostRepository) List(ctx context.Context) ([]*domain.Post, error) {
	return r.find(ctx, bson.M{})
}

func (r *PostRepository) ListByAuthor(ctx context.Context, authorID int64) ([]*domain.Post, error) {
	return r.find(ctx, bson.M{"author_id": authorID})
}

func (r *PostRepository) find(ctx context.Context, filter bson.M) ([]*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	var docs []postDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	posts := make([]*domain.Post, 0, len(docs))
	for _, d := range docs {
		posts = append(posts, d.toDomain())
	}
	return posts, nil
}

func (r *PostRepository) Update(ctx context.Context, p *domain.Post) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": p.ID}, bson.M{"$set": bson.M{
		"title":    p.Title,
		"subtitle": p.Subtitle,
		"body":     p.Body,
		"img_url":  p.ImgURL,
	}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateTitle
		}
		return fmt.Errorf("update post: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// Delete removes the post first and its comments second. A standalone server
// has no multi-document transactions; once the post is gone new comments are
// refused, so the sweep leaves nothing behind.
func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	if _, err := r.comments.DeleteMany(ctx, bson.M{"post_id": id}); err != nil {
		return fmt.Errorf("delete comments: %w", err)
	}
	return nil
}
