package models

import "time"

// EventKind discriminates engagement events and the notifications they produce.
type EventKind string

const (
	EventFollow     EventKind = "FOLLOW"
	EventNewArticle EventKind = "NEW_ARTICLE"
	EventNewJob     EventKind = "NEW_JOB"
	EventNewComment EventKind = "NEW_COMMENT"
	EventNewLike    EventKind = "NEW_LIKE"
)

// EntityType names the kind of entity a notification or like points at.
type EntityType string

const (
	EntityUser    EntityType = "user"
	EntityPost    EntityType = "post" // articles keep the "post" wire name
	EntityComment EntityType = "comment"
	EntityJob     EntityType = "job"
)

// Notification represents a user notification (PostgreSQL)
type Notification struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	RecipientID uint       `json:"recipient_id" gorm:"index;index:idx_notification_unread,priority:1"`
	ActorID     uint       `json:"actor_id" gorm:"index"`
	EventType   EventKind  `json:"event_type" gorm:"size:30;index"`
	EntityID    string     `json:"entity_id" gorm:"size:64"` // article ID, comment ID, job ObjectID hex, user ID
	EntityType  EntityType `json:"entity_type" gorm:"size:20"`
	Content     string     `json:"content"`
	IsRead      bool       `json:"is_read" gorm:"default:false;index:idx_notification_unread,priority:2"`
	CreatedAt   time.Time  `json:"created_at" gorm:"index"`
}

// NotificationView is a notification joined with its actor's display name.
// It is also the payload of the new_notification push.
type NotificationView struct {
	Notification
	ActorName string `json:"actor_name"`
}
