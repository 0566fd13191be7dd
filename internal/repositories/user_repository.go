package repositories

import (
	"context"

	"github.com/anonto42/content-hub/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations. Users are
// only read here.
type UserRepository interface {
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []uint) (map[uint]models.User, error)
	GetUsers(ctx context.Context) ([]models.User, error)
	GetUsersWithFollowState(ctx context.Context, viewerID uint) ([]models.UserWithFollowState, error)
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// GetUserByID retrieves a user by ID from PostgreSQL
func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// GetUserByFirebaseUID retrieves a user by Firebase UID from PostgreSQL
func (r *PostgresUserRepository) GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("firebase_uid = ?", firebaseUID).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// GetUsersByIDs loads a batch of users keyed by ID. Unknown IDs are skipped.
func (r *PostgresUserRepository) GetUsersByIDs(ctx context.Context, ids []uint) (map[uint]models.User, error) {
	users := make(map[uint]models.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}
	var found []models.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}
	for _, u := range found {
		users[u.ID] = u
	}
	return users, nil
}

// GetUsers retrieves all users from PostgreSQL
func (r *PostgresUserRepository) GetUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// GetUsersWithFollowState lists every user except the viewer, flagging the
// ones the viewer already follows.
func (r *PostgresUserRepository) GetUsersWithFollowState(ctx context.Context, viewerID uint) ([]models.UserWithFollowState, error) {
	var users []models.UserWithFollowState
	err := r.db.WithContext(ctx).Table("users AS u").
		Select("u.*, CASE WHEN f.follower_id IS NOT NULL THEN 1 ELSE 0 END AS is_following").
		Joins("LEFT JOIN follows AS f ON u.id = f.following_id AND f.follower_id = ?", viewerID).
		Where("u.id <> ?", viewerID).
		Order("u.id ASC").
		Scan(&users).Error
	return users, err
}
