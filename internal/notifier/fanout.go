package notifier

import (
	"context"
	"fmt"
	"strconv"

	"github.com/anonto42/content-hub/backend/internal/models"
)

func (e *Engine) fanOutArticle(ctx context.Context, ev ArticleEvent) (int, error) {
	actor, err := e.resolveUser(ctx, ev.ActorID)
	if err != nil {
		return 0, err
	}
	return e.fanOut(ctx, actor, models.EventNewArticle,
		strconv.FormatUint(uint64(ev.ArticleID), 10), models.EntityPost,
		articleContent(actor.Name, ev.ArticleTitle))
}

func (e *Engine) fanOutJob(ctx context.Context, ev JobEvent) (int, error) {
	actor, err := e.resolveUser(ctx, ev.ActorID)
	if err != nil {
		return 0, err
	}
	return e.fanOut(ctx, actor, models.EventNewJob, ev.JobID, models.EntityJob,
		jobContent(actor.Name, ev.JobTitle))
}

// fanOut notifies the actor's followers, at most fanoutLimit of them, in the
// order they started following. Followers past the cap get no notification
// for this event.
func (e *Engine) fanOut(ctx context.Context, actor *models.User, kind models.EventKind, entityID string, entityType models.EntityType, content string) (int, error) {
	followers, err := e.store.Follows.GetFollowerIDs(ctx, actor.ID, e.fanoutLimit)
	if err != nil {
		return 0, fmt.Errorf("load followers of %d: %w", actor.ID, err)
	}
	if len(followers) == 0 {
		e.logger.Debug("no followers to notify", "actor_id", actor.ID, "kind", kind)
		return 0, nil
	}

	notifications := make([]*models.Notification, 0, len(followers))
	for _, followerID := range followers {
		notifications = append(notifications, &models.Notification{
			RecipientID: followerID,
			ActorID:     actor.ID,
			EventType:   kind,
			EntityID:    entityID,
			EntityType:  entityType,
			Content:     content,
		})
	}
	if err := e.store.Notifications.CreateNotifications(ctx, notifications); err != nil {
		return 0, fmt.Errorf("create %s notifications: %w", kind, err)
	}

	for _, n := range notifications {
		e.push(n, actor.Name)
	}
	e.logger.Info("fan-out complete", "actor_id", actor.ID, "kind", kind, "entity_id", entityID, "notified", len(notifications))
	return len(notifications), nil
}

// notifyArticleAuthor tells an article's author about a new comment, unless
// they commented on their own article.
func (e *Engine) notifyArticleAuthor(ctx context.Context, ev CommentEvent) error {
	actor, err := e.resolveUser(ctx, ev.ActorID)
	if err != nil {
		return err
	}
	article, err := e.store.Articles.GetArticleByID(ctx, ev.EntityID)
	if err != nil {
		return entityErr(err, "article", ev.EntityID)
	}
	if article.AuthorID == ev.ActorID {
		e.logger.Debug("self comment, no notification", "actor_id", ev.ActorID, "article_id", article.ID)
		return nil
	}

	n := &models.Notification{
		RecipientID: article.AuthorID,
		ActorID:     ev.ActorID,
		EventType:   models.EventNewComment,
		EntityID:    strconv.FormatUint(uint64(article.ID), 10),
		EntityType:  models.EntityPost,
		Content:     commentContent(actor.Name, article.Title),
	}
	if err := e.store.Notifications.CreateNotifications(ctx, []*models.Notification{n}); err != nil {
		return fmt.Errorf("create comment notification: %w", err)
	}
	e.push(n, actor.Name)
	return nil
}
