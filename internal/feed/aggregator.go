package feed

import (
	"context"
	"fmt"

	"github.com/anonto42/content-hub/backend/internal/models"
	"github.com/anonto42/content-hub/backend/internal/repositories"
	"golang.org/x/sync/errgroup"
)

// Aggregator reads articles and jobs from their stores and merges them.
// It has no write-side effects.
type Aggregator struct {
	articles repositories.ArticleRepository
	jobs     repositories.JobRepository
	likes    repositories.LikeRepository
	users    repositories.UserRepository
}

// NewAggregator creates an Aggregator
func NewAggregator(articles repositories.ArticleRepository, jobs repositories.JobRepository, likes repositories.LikeRepository, users repositories.UserRepository) *Aggregator {
	return &Aggregator{
		articles: articles,
		jobs:     jobs,
		likes:    likes,
		users:    users,
	}
}

// Combined returns every article and job, newest first. viewerID (0 for an
// anonymous viewer) drives the per-article liked flag.
func (a *Aggregator) Combined(ctx context.Context, viewerID uint) ([]Item, error) {
	return a.collect(ctx, 0, viewerID)
}

// ByAuthor returns the articles and jobs of one author, newest first.
func (a *Aggregator) ByAuthor(ctx context.Context, authorID, viewerID uint) ([]Item, error) {
	return a.collect(ctx, authorID, viewerID)
}

func (a *Aggregator) collect(ctx context.Context, authorID, viewerID uint) ([]Item, error) {
	var articles []models.ArticleView
	var jobs []models.JobView

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		articles, err = a.Articles(gctx, repositories.ArticleFilter{AuthorID: authorID}, viewerID)
		return err
	})
	g.Go(func() error {
		var err error
		jobs, err = a.Jobs(gctx, repositories.JobFilter{AuthorID: authorID})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return Merge(articles, jobs), nil
}

// Articles lists articles newest first with their like count and whether
// viewerID liked them.
func (a *Aggregator) Articles(ctx context.Context, filter repositories.ArticleFilter, viewerID uint) ([]models.ArticleView, error) {
	articles, err := a.articles.ListArticles(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	if len(articles) == 0 {
		return []models.ArticleView{}, nil
	}

	ids := make([]uint, len(articles))
	for i, article := range articles {
		ids[i] = article.ID
	}
	stats, err := a.likes.Stats(ctx, models.EntityPost, ids, viewerID)
	if err != nil {
		return nil, fmt.Errorf("article like stats: %w", err)
	}
	for i := range articles {
		if s, ok := stats[articles[i].ID]; ok {
			articles[i].LikeCount = s.LikeCount
			articles[i].IsLikedByCurrentUser = s.LikedByViewer
		}
	}
	return articles, nil
}

// Jobs lists jobs newest first with their author's profile fields.
func (a *Aggregator) Jobs(ctx context.Context, filter repositories.JobFilter) ([]models.JobView, error) {
	jobs, err := a.jobs.ListJobs(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}

	authorIDs := make([]uint, 0, len(jobs))
	seen := make(map[uint]bool)
	for _, j := range jobs {
		if !seen[j.AuthorID] {
			seen[j.AuthorID] = true
			authorIDs = append(authorIDs, j.AuthorID)
		}
	}
	authors, err := a.users.GetUsersByIDs(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("load job authors: %w", err)
	}

	views := make([]models.JobView, len(jobs))
	for i, j := range jobs {
		views[i] = models.JobView{Job: j}
		if u, ok := authors[j.AuthorID]; ok {
			views[i].AuthorName = u.Name
			views[i].AuthorJobRole = u.JobRole
		}
	}
	return views, nil
}
