package notifier

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/anonto42/content-hub/backend/internal/models"
	"github.com/go-playground/validator/v10"
)

// ErrInvalidEvent is returned for a known event kind with missing or
// malformed fields.
var ErrInvalidEvent = errors.New("invalid event")

var validate = validator.New()

// Event is one engagement event. The set of variants is closed: FollowEvent,
// LikeEvent, ArticleEvent, JobEvent, CommentEvent and UnknownEvent.
type Event interface {
	Kind() models.EventKind
	isEvent()
}

// FollowEvent toggles actor following recipient.
type FollowEvent struct {
	ActorID     uint `json:"actorId" validate:"required"`
	RecipientID uint `json:"recipientId" validate:"required"`
}

// LikeEvent toggles actor liking an article ("post") or a comment.
type LikeEvent struct {
	ActorID    uint              `json:"actorId" validate:"required"`
	EntityID   uint              `json:"entityId" validate:"required"`
	EntityType models.EntityType `json:"entityType" validate:"required,oneof=post comment"`
}

// ArticleEvent announces a newly published article to the actor's followers.
type ArticleEvent struct {
	ActorID      uint   `json:"actorId" validate:"required"`
	ArticleID    uint   `json:"articleId" validate:"required"`
	ArticleTitle string `json:"articleTitle" validate:"required"`
}

// JobEvent announces a newly posted job to the actor's followers.
type JobEvent struct {
	ActorID  uint   `json:"actorId" validate:"required"`
	JobID    string `json:"jobId" validate:"required"`
	JobTitle string `json:"jobTitle" validate:"required"`
}

// CommentEvent notifies the author of article EntityID about a new comment.
type CommentEvent struct {
	ActorID  uint `json:"actorId" validate:"required"`
	EntityID uint `json:"entityId" validate:"required"`
}

// UnknownEvent carries a kind this engine does not handle.
type UnknownEvent struct {
	RawKind string
}

func (FollowEvent) Kind() models.EventKind    { return models.EventFollow }
func (LikeEvent) Kind() models.EventKind      { return models.EventNewLike }
func (ArticleEvent) Kind() models.EventKind   { return models.EventNewArticle }
func (JobEvent) Kind() models.EventKind       { return models.EventNewJob }
func (CommentEvent) Kind() models.EventKind   { return models.EventNewComment }
func (e UnknownEvent) Kind() models.EventKind { return models.EventKind(e.RawKind) }

func (FollowEvent) isEvent()  {}
func (LikeEvent) isEvent()    {}
func (ArticleEvent) isEvent() {}
func (JobEvent) isEvent()     {}
func (CommentEvent) isEvent() {}
func (UnknownEvent) isEvent() {}

// envelope reads the discriminator. eventType is the legacy key name.
type envelope struct {
	Kind      string `json:"kind"`
	EventType string `json:"eventType"`
}

// DecodeEvent parses a kind-discriminated JSON record. Unknown kinds decode to
// UnknownEvent rather than failing; known kinds with missing required fields
// return ErrInvalidEvent.
func DecodeEvent(data []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	kind := env.Kind
	if kind == "" {
		kind = env.EventType
	}

	switch models.EventKind(kind) {
	case models.EventFollow:
		return decodeAs[FollowEvent](data)
	case models.EventNewLike:
		return decodeAs[LikeEvent](data)
	case models.EventNewArticle:
		return decodeAs[ArticleEvent](data)
	case models.EventNewJob:
		return decodeAs[JobEvent](data)
	case models.EventNewComment:
		return decodeAs[CommentEvent](data)
	default:
		return UnknownEvent{RawKind: kind}, nil
	}
}

func decodeAs[T Event](data []byte) (Event, error) {
	var ev T
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	if err := Validate(ev); err != nil {
		return nil, err
	}
	return ev, nil
}

// Validate checks the required fields of a known event.
func Validate(ev Event) error {
	if _, ok := ev.(UnknownEvent); ok {
		return nil
	}
	if err := validate.Struct(ev); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	return nil
}
