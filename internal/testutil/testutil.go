// Package testutil provides in-memory stores for tests.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/anonto42/content-hub/backend/internal/models"
	"github.com/anonto42/content-hub/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a migrated in-memory SQLite database that lives as long as t.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// every pooled connection would get its own empty :memory: database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := repositories.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// Logger discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// CreateUser inserts a user with the given display name.
func CreateUser(t testing.TB, db *gorm.DB, name string) *models.User {
	t.Helper()
	u := &models.User{Name: name, Email: name + "@example.com", JobRole: "Engineer"}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return u
}

// CreateArticle inserts an article by author.
func CreateArticle(t testing.TB, db *gorm.DB, authorID uint, title string) *models.Article {
	t.Helper()
	a := &models.Article{AuthorID: authorID, Title: title, Content: title + " body"}
	if err := db.Create(a).Error; err != nil {
		t.Fatalf("create article %q: %v", title, err)
	}
	return a
}

// CreateComment inserts a comment on an article.
func CreateComment(t testing.TB, db *gorm.DB, articleID, authorID uint, content string) *models.Comment {
	t.Helper()
	c := &models.Comment{ArticleID: articleID, AuthorID: authorID, Content: content}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("create comment: %v", err)
	}
	return c
}

// Follow inserts a follow row directly.
func Follow(t testing.TB, db *gorm.DB, followerID, followingID uint) {
	t.Helper()
	if err := db.Create(&models.Follow{FollowerID: followerID, FollowingID: followingID}).Error; err != nil {
		t.Fatalf("follow %d->%d: %v", followerID, followingID, err)
	}
}

// Count returns the number of rows of model.
func Count(t testing.TB, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

// JobStore is an in-memory repositories.JobRepository.
type JobStore struct {
	mu   sync.Mutex
	jobs []models.Job
	// Err, when set, is returned by every call.
	Err error
}

func NewJobStore() *JobStore {
	return &JobStore{}
}

func (s *JobStore) CreateJob(_ context.Context, job *models.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if job.ID.IsZero() {
		job.ID = primitive.NewObjectID()
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}
	s.jobs = append(s.jobs, *job)
	return nil
}

func (s *JobStore) ListJobs(_ context.Context, filter repositories.JobFilter) ([]models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	jobs := []models.Job{}
	for _, j := range s.jobs {
		if filter.AuthorID == 0 || j.AuthorID == filter.AuthorID {
			jobs = append(jobs, j)
		}
	}
	sort.SliceStable(jobs, func(i, k int) bool {
		return jobs[i].CreatedAt.After(jobs[k].CreatedAt)
	})
	return jobs, nil
}
