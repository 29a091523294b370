package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email,max=100"`
	Name     string `json:"name"     validate:"required,max=100"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type authorResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type authResponse struct {
	Token string        `json:"token,omitempty"`
	User  *userResponse `json:"user,omitempty"`
}

// --- Posts ---

type createPostRequest struct {
	Title    string `json:"title"     validate:"required,max=250"`
	Subtitle string `json:"subtitle"  validate:"required,max=250"`
	Body     string `json:"body"      validate:"required"`
	ImgURL   string `json:"img_url"   validate:"required,url,max=250"`
}

// updatePostRequest is a partial update; omitted fields keep their value.
type updatePostRequest struct {
	Title    *string `json:"title"     validate:"omitempty,min=1,max=250"`
	Subtitle *string `json:"subtitle"  validate:"omitempty,min=1,max=250"`
	Body     *string `json:"body"      validate:"omitempty,min=1"`
	ImgURL   *string `json:"img_url"   validate:"omitempty,url,max=250"`
}

type postLinks struct {
	Self     string `json:"self"`
	Comments string `json:"comments"`
}

type postResponse struct {
	ID       int64     `json:"id"`
	AuthorID int64     `json:"author_id"`
	Title    string    `json:"title"`
	Subtitle string    `json:"subtitle"`
	Date     string    `json:"date"`
	Body     string    `json:"body"`
	ImgURL   string    `json:"img_url"`
	Links    postLinks `json:"_links"`
}

type postListResponse struct {
	Posts []postResponse `json:"posts"`
	Count int            `json:"count"`
}

type postDetailResponse struct {
	postResponse
	Author   *authorResponse   `json:"author"`
	Comments []commentResponse `json:"comments"`
}

// --- Comments ---

type createCommentRequest struct {
	Text string `json:"text" validate:"required"`
}

type commentResponse struct {
	ID        int64           `json:"id"`
	PostID    int64           `json:"post_id"`
	AuthorID  int64           `json:"author_id"`
	Author    *authorResponse `json:"author,omitempty"`
	Text      string          `json:"text"`
	CreatedAt time.Time       `json:"created_at"`
}

type commentListResponse struct {
	Comments []commentResponse `json:"comments"`
	Count    int               `json:"count"`
}
