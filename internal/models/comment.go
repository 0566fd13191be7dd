package models

import "time"

// Comment represents a comment on an article
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ArticleID uint      `json:"article_id" gorm:"index"`
	AuthorID  uint      `json:"author_id" gorm:"index"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentView is a comment with author info and viewer-specific like state
type CommentView struct {
	Comment
	AuthorName           string `json:"author_name"`
	AuthorJobRole        string `json:"author_job_role"`
	LikeCount            int64  `json:"like_count" gorm:"-"`
	IsLikedByCurrentUser bool   `json:"is_liked_by_current_user" gorm:"-"`
}

// CreateCommentRequest defines the request body for creating a new comment.
// EntityID is the commented article.
type CreateCommentRequest struct {
	ActorID  uint   `json:"actorId" validate:"required"`
	EntityID uint   `json:"entityId" validate:"required"`
	Content  string `json:"content" validate:"required,min=1,max=500"`
}
