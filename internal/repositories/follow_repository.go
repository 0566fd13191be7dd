package repositories

import (
	"context"

	"github.com/anonto42/content-hub/backend/internal/models"
	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow data operations
type FollowRepository interface {
	Toggle(ctx context.Context, followerID, followingID uint, notification *models.Notification) (ToggleResult, error)
	IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error)
	GetFollowerIDs(ctx context.Context, userID uint, limit int) ([]uint, error)
	GetFollowersCount(ctx context.Context, userID uint) (int64, error)
	GetFollowingCount(ctx context.Context, userID uint) (int64, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// Toggle follows or unfollows. Unfollowing also removes the FOLLOW
// notification the follow produced.
func (r *PostgresFollowRepository) Toggle(ctx context.Context, followerID, followingID uint, notification *models.Notification) (ToggleResult, error) {
	return toggle(ctx, r.db, toggleOp{
		name:  "follow",
		row:   &models.Follow{FollowerID: followerID, FollowingID: followingID},
		model: &models.Follow{},
		match: func(db *gorm.DB) *gorm.DB {
			return db.Where("follower_id = ? AND following_id = ?", followerID, followingID)
		},
		reverse: func(db *gorm.DB) *gorm.DB {
			return db.Where("recipient_id = ? AND actor_id = ? AND event_type = ?", followingID, followerID, models.EventFollow)
		},
		notification: notification,
	})
}

func (r *PostgresFollowRepository) IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("follower_id = ? AND following_id = ?", followerID, followingID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetFollowerIDs returns the followers of userID in the order they followed.
// A non-positive limit returns all of them.
func (r *PostgresFollowRepository) GetFollowerIDs(ctx context.Context, userID uint, limit int) ([]uint, error) {
	var ids []uint
	q := r.db.WithContext(ctx).Model(&models.Follow{}).Where("following_id = ?", userID).Order("id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Pluck("follower_id", &ids).Error
	return ids, err
}

func (r *PostgresFollowRepository) GetFollowersCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("following_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *PostgresFollowRepository) GetFollowingCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&count).Error
	return count, err
}
