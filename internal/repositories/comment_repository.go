package repositories

import (
	"context"

	"github.com/anonto42/content-hub/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByArticle(ctx context.Context, articleID uint) ([]models.CommentView, error)
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateComment creates a new comment in PostgreSQL
func (r *PostgresCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// GetCommentByID retrieves a comment by ID from PostgreSQL
func (r *PostgresCommentRepository) GetCommentByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, translate(err)
	}
	return &comment, nil
}

// ListByArticle retrieves the comments of an article, oldest first
func (r *PostgresCommentRepository) ListByArticle(ctx context.Context, articleID uint) ([]models.CommentView, error) {
	var comments []models.CommentView
	err := r.db.WithContext(ctx).Table("comments AS c").
		Select("c.*, COALESCE(u.name, '') AS author_name, COALESCE(u.job_role, '') AS author_job_role").
		Joins("LEFT JOIN users AS u ON c.author_id = u.id").
		Where("c.article_id = ?", articleID).
		Order("c.created_at ASC, c.id ASC").
		Scan(&comments).Error
	return comments, err
}
