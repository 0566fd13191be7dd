package models

import "time"

// Like represents a like on an article or a comment
type Like struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	UserID     uint       `json:"user_id" gorm:"index;uniqueIndex:idx_like_user_entity"`
	EntityID   uint       `json:"entity_id" gorm:"uniqueIndex:idx_like_user_entity;index:idx_like_entity"`
	EntityType EntityType `json:"entity_type" gorm:"size:20;uniqueIndex:idx_like_user_entity;index:idx_like_entity"`
	CreatedAt  time.Time  `json:"created_at"`
}

// LikeStat aggregates the likes of one entity for a viewer
type LikeStat struct {
	EntityID      uint
	LikeCount     int64
	LikedByViewer bool
}

// LikeState is the like button state of a single entity
type LikeState struct {
	EntityType           EntityType `json:"entity_type"`
	EntityID             uint       `json:"entity_id"`
	LikeCount            int64      `json:"like_count"`
	IsLikedByCurrentUser bool       `json:"is_liked_by_current_user"`
}
