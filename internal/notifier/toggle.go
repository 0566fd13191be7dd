package notifier

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/anonto42/content-hub/backend/internal/models"
	"github.com/anonto42/content-hub/backend/internal/repositories"
)

// toggleFollow follows recipient if actor does not follow them yet, and
// unfollows otherwise. The flip itself is a single storage transaction, so
// concurrent duplicates cannot leave two follow rows or two notifications.
func (e *Engine) toggleFollow(ctx context.Context, ev FollowEvent) (Result, error) {
	if ev.ActorID == ev.RecipientID {
		return Result{}, fmt.Errorf("%w: cannot follow yourself", ErrInvalidEvent)
	}
	actor, err := e.resolveUser(ctx, ev.ActorID)
	if err != nil {
		return Result{}, err
	}
	if _, err := e.resolveUser(ctx, ev.RecipientID); err != nil {
		return Result{}, err
	}

	notification := &models.Notification{
		RecipientID: ev.RecipientID,
		ActorID:     ev.ActorID,
		EventType:   models.EventFollow,
		EntityID:    strconv.FormatUint(uint64(ev.ActorID), 10),
		EntityType:  models.EntityUser,
		Content:     followContent(actor.Name),
	}
	res, err := e.store.Follows.Toggle(ctx, ev.ActorID, ev.RecipientID, notification)
	if err != nil {
		return Result{}, fmt.Errorf("toggle follow %d->%d: %w", ev.ActorID, ev.RecipientID, err)
	}

	if !res.Active {
		e.logger.Info("unfollowed", "actor_id", ev.ActorID, "recipient_id", ev.RecipientID)
		return Result{Status: StatusUnfollowed}, nil
	}
	e.logger.Info("followed", "actor_id", ev.ActorID, "recipient_id", ev.RecipientID)
	if res.Notification != nil {
		e.push(res.Notification, actor.Name)
	}
	return Result{Status: StatusFollowed}, nil
}

// likeTarget is the owner of a likeable entity and the text describing it.
type likeTarget struct {
	ownerID uint
	content string
}

func (e *Engine) resolveLikeTarget(ctx context.Context, ev LikeEvent, actorName string) (likeTarget, error) {
	switch ev.EntityType {
	case models.EntityPost:
		article, err := e.store.Articles.GetArticleByID(ctx, ev.EntityID)
		if err != nil {
			return likeTarget{}, entityErr(err, "article", ev.EntityID)
		}
		return likeTarget{ownerID: article.AuthorID, content: likeArticleContent(actorName, article.Title)}, nil
	case models.EntityComment:
		comment, err := e.store.Comments.GetCommentByID(ctx, ev.EntityID)
		if err != nil {
			return likeTarget{}, entityErr(err, "comment", ev.EntityID)
		}
		return likeTarget{ownerID: comment.AuthorID, content: likeCommentContent(actorName, comment.Content)}, nil
	default:
		return likeTarget{}, fmt.Errorf("%w: unsupported entity type %q", ErrInvalidEvent, ev.EntityType)
	}
}

// toggleLike likes or unlikes an entity. Liking your own content stores the
// like but creates no notification.
func (e *Engine) toggleLike(ctx context.Context, ev LikeEvent) (Result, error) {
	actor, err := e.resolveUser(ctx, ev.ActorID)
	if err != nil {
		return Result{}, err
	}
	target, err := e.resolveLikeTarget(ctx, ev, actor.Name)
	if err != nil {
		return Result{}, err
	}

	var notification *models.Notification
	if target.ownerID != ev.ActorID {
		notification = &models.Notification{
			RecipientID: target.ownerID,
			ActorID:     ev.ActorID,
			EventType:   models.EventNewLike,
			EntityID:    strconv.FormatUint(uint64(ev.EntityID), 10),
			EntityType:  ev.EntityType,
			Content:     target.content,
		}
	}

	like := &models.Like{UserID: ev.ActorID, EntityID: ev.EntityID, EntityType: ev.EntityType}
	res, err := e.store.Likes.Toggle(ctx, like, notification)
	if err != nil {
		return Result{}, fmt.Errorf("toggle like %s %d: %w", ev.EntityType, ev.EntityID, err)
	}

	if !res.Active {
		e.logger.Info("unliked", "actor_id", ev.ActorID, "entity_id", ev.EntityID, "entity_type", ev.EntityType)
		return Result{Status: StatusUnliked}, nil
	}
	e.logger.Info("liked", "actor_id", ev.ActorID, "entity_id", ev.EntityID, "entity_type", ev.EntityType)
	if res.Notification != nil {
		e.push(res.Notification, actor.Name)
	}
	return Result{Status: StatusLiked}, nil
}

func entityErr(err error, what string, id uint) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("%w: %s %d", ErrNotFound, what, id)
	}
	return fmt.Errorf("load %s %d: %w", what, id, err)
}
