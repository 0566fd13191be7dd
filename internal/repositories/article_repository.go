package repositories

import (
	"context"

	"github.com/anonto42/content-hub/backend/internal/models"
	"gorm.io/gorm"
)

// ArticleFilter narrows article listings. Zero values mean no filter.
type ArticleFilter struct {
	AuthorID uint
}

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	CreateArticle(ctx context.Context, article *models.Article) error
	GetArticleByID(ctx context.Context, id uint) (*models.Article, error)
	ListArticles(ctx context.Context, filter ArticleFilter) ([]models.ArticleView, error)
}

// PostgresArticleRepository implements ArticleRepository for PostgreSQL
type PostgresArticleRepository struct {
	db *gorm.DB
}

// NewPostgresArticleRepository creates a new PostgresArticleRepository
func NewPostgresArticleRepository(db *gorm.DB) *PostgresArticleRepository {
	return &PostgresArticleRepository{db: db}
}

func (r *PostgresArticleRepository) CreateArticle(ctx context.Context, article *models.Article) error {
	return r.db.WithContext(ctx).Create(article).Error
}

func (r *PostgresArticleRepository) GetArticleByID(ctx context.Context, id uint) (*models.Article, error) {
	var article models.Article
	if err := r.db.WithContext(ctx).First(&article, id).Error; err != nil {
		return nil, translate(err)
	}
	return &article, nil
}

// ListArticles returns articles newest first, joined with their authors.
func (r *PostgresArticleRepository) ListArticles(ctx context.Context, filter ArticleFilter) ([]models.ArticleView, error) {
	var articles []models.ArticleView
	q := r.db.WithContext(ctx).Table("articles AS a").
		Select("a.*, COALESCE(u.name, '') AS author_name, COALESCE(u.job_role, '') AS author_job_role").
		Joins("LEFT JOIN users AS u ON a.author_id = u.id")
	if filter.AuthorID != 0 {
		q = q.Where("a.author_id = ?", filter.AuthorID)
	}
	err := q.Order("a.created_at DESC, a.id DESC").Scan(&articles).Error
	return articles, err
}
