package domain

import "time"

// Comment is a reader's note attached to exactly one post and one author.
type Comment struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post_id"`
	AuthorID  int64     `json:"author_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentView pairs a comment with its resolved author.
type CommentView struct {
	Comment
	Author *User `json:"author"`
}

// PostDetail is everything the post page shows.
type PostDetail struct {
	Post     Post          `json:"post"`
	Author   *User         `json:"author"`
	Comments []CommentView `json:"comments"`
}
