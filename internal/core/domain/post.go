package domain

import "time"

// DateLayout renders the publication date the way the blog always has,
// e.g. "April 03, 2025".
const DateLayout = "January 02, 2006"

// Column limits shared by every store.
const (
	MaxTitleLen    = 250
	MaxSubtitleLen = 250
	MaxImgURLLen   = 250
	MaxEmailLen    = 100
	MaxNameLen     = 100
)

// Post is a blog entry. Date and AuthorID never change after creation.
type Post struct {
	ID       int64  `json:"id"`
	AuthorID int64  `json:"author_id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Date     string `json:"date"`
	Body     string `json:"body"`
	ImgURL   string `json:"img_url"`
}

// PostPatch carries a partial update. Nil fields are left untouched.
type PostPatch struct {
	Title    *string
	Subtitle *string
	Body     *string
	ImgURL   *string
}

// Empty reports whether the patch changes nothing.
func (p PostPatch) Empty() bool {
	return p.Title == nil && p.Subtitle == nil && p.Body == nil && p.ImgURL == nil
}

// Apply copies the set fields onto post.
func (p PostPatch) Apply(post *Post) {
	if p.Title != nil {
		post.Title = *p.Title
	}
	if p.Subtitle != nil {
		post.Subtitle = *p.Subtitle
	}
	if p.Body != nil {
		post.Body = *p.Body
	}
	if p.ImgURL != nil {
		post.ImgURL = *p.ImgURL
	}
}

// FormatPostDate stamps t using DateLayout.
func FormatPostDate(t time.Time) string {
	return t.Format(DateLayout)
}
