package repositories

import (
	"context"
	"strconv"

	"github.com/anonto42/content-hub/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	Toggle(ctx context.Context, like *models.Like, notification *models.Notification) (ToggleResult, error)
	HasLiked(ctx context.Context, userID, entityID uint, entityType models.EntityType) (bool, error)
	CountLikes(ctx context.Context, entityID uint, entityType models.EntityType) (int64, error)
	Stats(ctx context.Context, entityType models.EntityType, entityIDs []uint, viewerID uint) (map[uint]models.LikeStat, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// Toggle likes or unlikes an entity. The reverse notification delete matches
// actor, entity id and entity type together: unliking comment 7 never removes
// the notification for a like on article 7.
func (r *PostgresLikeRepository) Toggle(ctx context.Context, like *models.Like, notification *models.Notification) (ToggleResult, error) {
	userID, entityID, entityType := like.UserID, like.EntityID, like.EntityType
	return toggle(ctx, r.db, toggleOp{
		name:  "like",
		row:   like,
		model: &models.Like{},
		match: func(db *gorm.DB) *gorm.DB {
			return db.Where("user_id = ? AND entity_id = ? AND entity_type = ?", userID, entityID, entityType)
		},
		reverse: func(db *gorm.DB) *gorm.DB {
			return db.Where("actor_id = ? AND entity_id = ? AND entity_type = ? AND event_type = ?",
				userID, strconv.FormatUint(uint64(entityID), 10), entityType, models.EventNewLike)
		},
		notification: notification,
	})
}

// HasLiked checks if a user has liked a specific entity
func (r *PostgresLikeRepository) HasLiked(ctx context.Context, userID, entityID uint, entityType models.EntityType) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND entity_id = ? AND entity_type = ?", userID, entityID, entityType).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountLikes retrieves the number of likes of a specific entity
func (r *PostgresLikeRepository) CountLikes(ctx context.Context, entityID uint, entityType models.EntityType) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("entity_id = ? AND entity_type = ?", entityID, entityType).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Stats returns like counts for a batch of entities in a single query, plus
// whether viewerID is among the likers. Entities without likes are absent
// from the map.
func (r *PostgresLikeRepository) Stats(ctx context.Context, entityType models.EntityType, entityIDs []uint, viewerID uint) (map[uint]models.LikeStat, error) {
	stats := make(map[uint]models.LikeStat)
	if len(entityIDs) == 0 {
		return stats, nil
	}

	var rows []struct {
		EntityID  uint
		LikeCount int64
		Liked     int64
	}
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Select("entity_id, COUNT(*) AS like_count, MAX(CASE WHEN user_id = ? THEN 1 ELSE 0 END) AS liked", viewerID).
		Where("entity_type = ? AND entity_id IN ?", entityType, entityIDs).
		Group("entity_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		stats[row.EntityID] = models.LikeStat{
			EntityID:      row.EntityID,
			LikeCount:     row.LikeCount,
			LikedByViewer: viewerID != 0 && row.Liked > 0,
		}
	}
	return stats, nil
}
