// Package notifier is the event processing and notification fan-out engine.
//
// Every engagement event enters through Engine.Process, which routes it to
// the toggle resolver (follow, like) or to fan-out (new article, new job,
// new comment). State changes and notification rows are persisted first;
// live pushes are attempted afterwards and are best effort.
package notifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/anonto42/content-hub/backend/internal/models"
	"github.com/anonto42/content-hub/backend/internal/realtime"
	"github.com/anonto42/content-hub/backend/internal/repositories"
)

// DefaultFanoutLimit caps how many followers are notified per publish event.
const DefaultFanoutLimit = 5

// Status values returned by Process.
const (
	StatusFollowed                    = "followed"
	StatusUnfollowed                  = "unfollowed"
	StatusLiked                       = "liked"
	StatusUnliked                     = "unliked"
	StatusArticleNotificationsCreated = "article_notifications_created"
	StatusJobNotificationsCreated     = "job_notifications_created"
	StatusCommentNotificationCreated  = "comment_notification_created"
	StatusUnknownEvent                = "unknown_event"
)

// ErrNotFound is returned when the actor or the target entity of an event
// does not exist.
var ErrNotFound = errors.New("not found")

// Result describes the outcome of one processed event.
type Result struct {
	Status string `json:"status"`
}

// Pusher delivers a payload to a user's live connection if there is one.
type Pusher interface {
	Push(userID uint, event string, payload any)
}

// Store groups the repositories the engine reads and writes.
type Store struct {
	Users         repositories.UserRepository
	Articles      repositories.ArticleRepository
	Comments      repositories.CommentRepository
	Follows       repositories.FollowRepository
	Likes         repositories.LikeRepository
	Notifications repositories.NotificationRepository
}

// Engine classifies events and applies them.
type Engine struct {
	store       Store
	pusher      Pusher
	fanoutLimit int
	logger      *slog.Logger
}

// NewEngine creates an Engine. A non-positive fanoutLimit falls back to
// DefaultFanoutLimit.
func NewEngine(store Store, pusher Pusher, fanoutLimit int, logger *slog.Logger) *Engine {
	if fanoutLimit <= 0 {
		fanoutLimit = DefaultFanoutLimit
	}
	return &Engine{
		store:       store,
		pusher:      pusher,
		fanoutLimit: fanoutLimit,
		logger:      logger,
	}
}

// Process applies ev and reports what happened. Unknown kinds are not an
// error. Storage and lookup failures are returned as is; nothing written
// before the failure is rolled back outside the toggle transaction.
func (e *Engine) Process(ctx context.Context, ev Event) (Result, error) {
	if err := Validate(ev); err != nil {
		return Result{}, err
	}

	switch ev := ev.(type) {
	case FollowEvent:
		return e.toggleFollow(ctx, ev)
	case LikeEvent:
		return e.toggleLike(ctx, ev)
	case ArticleEvent:
		if _, err := e.fanOutArticle(ctx, ev); err != nil {
			return Result{}, err
		}
		return Result{Status: StatusArticleNotificationsCreated}, nil
	case JobEvent:
		if _, err := e.fanOutJob(ctx, ev); err != nil {
			return Result{}, err
		}
		return Result{Status: StatusJobNotificationsCreated}, nil
	case CommentEvent:
		if err := e.notifyArticleAuthor(ctx, ev); err != nil {
			return Result{}, err
		}
		return Result{Status: StatusCommentNotificationCreated}, nil
	default:
		e.logger.Warn("unknown event kind", "kind", ev.Kind())
		return Result{Status: StatusUnknownEvent}, nil
	}
}

func (e *Engine) resolveUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := e.store.Users.GetUserByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load user %d: %w", id, err)
	}
	return user, nil
}

// push delivers a persisted notification to its recipient.
func (e *Engine) push(n *models.Notification, actorName string) {
	if e.pusher == nil {
		return
	}
	e.pusher.Push(n.RecipientID, realtime.EventNewNotification, models.NotificationView{
		Notification: *n,
		ActorName:    actorName,
	})
}
