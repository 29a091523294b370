package sqlstore

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/sirpyerre/blog-api/internal/core/domain"
)

type userModel struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	Email        string    `gorm:"size:100;not null;uniqueIndex"`
	PasswordHash string    `gorm:"size:250;not null"`
	Name         string    `gorm:"size:100;not null"`
	Role         string    `gorm:"size:16;not null;default:member"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (userModel) TableName() string { return "users" }

type postModel struct {
	ID       int64          `gorm:"primaryKey;autoIncrement"`
	AuthorID int64          `gorm:"not null;index"`
	Author   userModel      `gorm:"foreignKey:AuthorID;constraint:OnDelete:RESTRICT"`
	Title    string         `gorm:"size:250;not null;uniqueIndex"`
	Subtitle string         `gorm:"size:250;not null"`
	Date     string         `gorm:"size:250;not null"`
	Body     string         `gorm:"type:text;not null"`
	ImgURL   string         `gorm:"column:img_url;size:250;not null"`
	Comments []commentModel `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

func (postModel) TableName() string { return "blog_posts" }

type commentModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Text      string    `gorm:"type:text;not null"`
	AuthorID  int64     `gorm:"not null;index"`
	Author    userModel `gorm:"foreignKey:AuthorID;constraint:OnDelete:RESTRICT"`
	PostID    int64     `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"not null"`
}

func (commentModel) TableName() string { return "comments" }

func toUserModel(u *domain.User) userModel {
	return userModel{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Name:         u.Name,
		Role:         string(u.Role),
		CreatedAt:    u.CreatedAt,
	}
}

func (m userModel) toDomain() *domain.User {
	return &domain.User{
		ID:           m.ID,
		Email:        m.Email,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		Role:         domain.Role(m.Role),
		CreatedAt:    m.CreatedAt.UTC(),
	}
}

func toPostModel(p *domain.Post) postModel {
	return postModel{
		ID:       p.ID,
		AuthorID: p.AuthorID,
		Title:    p.Title,
		Subtitle: p.Subtitle,
		Date:     p.Date,
		Body:     p.Body,
		ImgURL:   p.ImgURL,
	}
}

func (m postModel) toDomain() *domain.Post {
	return &domain.Post{
		ID:       m.ID,
		AuthorID: m.AuthorID,
		Title:    m.Title,
		Subtitle: m.Subtitle,
		Date:     m.Date,
		Body:     m.Body,
		ImgURL:   m.ImgURL,
	}
}

func (m commentModel) toDomain() *domain.Comment {
	return &domain.Comment{
		ID:        m.ID,
		PostID:    m.PostID,
		AuthorID:  m.AuthorID,
		Text:      m.Text,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

// isUniqueViolation covers drivers whose errors gorm does not translate.
func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyViolation(err error) bool {
	return errors.Is(err, gorm.ErrForeignKeyViolated) ||
		strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
