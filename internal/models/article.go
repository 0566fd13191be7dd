package models

import "time"

// Article is a long-form post authored by a user
type Article struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	AuthorID  uint      `json:"author_id" gorm:"index"`
	Title     string    `json:"title" gorm:"size:255"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// ArticleView is an article with author info and viewer-specific like state
type ArticleView struct {
	Article
	AuthorName           string `json:"author_name"`
	AuthorJobRole        string `json:"author_job_role"`
	LikeCount            int64  `json:"like_count" gorm:"-"`
	IsLikedByCurrentUser bool   `json:"is_liked_by_current_user" gorm:"-"`
}

// CreateArticleRequest defines the request body for publishing an article
type CreateArticleRequest struct {
	ActorID uint   `json:"actorId" validate:"required"`
	Title   string `json:"title" validate:"required,min=1,max=255"`
	Content string `json:"content" validate:"max=20000"`
}
