package feed

import (
	"context"
	"errors"
	"testing"

	"github.com/anonto42/content-hub/backend/internal/models"
	"github.com/anonto42/content-hub/backend/internal/repositories"
	"github.com/anonto42/content-hub/backend/internal/testutil"
)

type fakeArticles struct {
	repositories.ArticleRepository
	articles []models.ArticleView
	err      error
}

func (f fakeArticles) ListArticles(_ context.Context, filter repositories.ArticleFilter) ([]models.ArticleView, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.ArticleView
	for _, a := range f.articles {
		if filter.AuthorID == 0 || a.AuthorID == filter.AuthorID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeLikes struct {
	repositories.LikeRepository
	stats map[uint]models.LikeStat
}

func (f fakeLikes) Stats(_ context.Context, _ models.EntityType, ids []uint, viewerID uint) (map[uint]models.LikeStat, error) {
	out := make(map[uint]models.LikeStat)
	for _, id := range ids {
		if s, ok := f.stats[id]; ok {
			s.LikedByViewer = s.LikedByViewer && viewerID != 0
			out[id] = s
		}
	}
	return out, nil
}

type fakeUsers struct {
	repositories.UserRepository
	users map[uint]models.User
}

func (f fakeUsers) GetUsersByIDs(_ context.Context, ids []uint) (map[uint]models.User, error) {
	out := make(map[uint]models.User)
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func newAggregator(t *testing.T, articlesErr error) (*Aggregator, *testutil.JobStore) {
	t.Helper()

	articles := fakeArticles{
		articles: []models.ArticleView{
			{Article: models.Article{ID: 2, AuthorID: 1, CreatedAt: at("09:30")}, AuthorName: "Alice"},
			{Article: models.Article{ID: 1, AuthorID: 2, CreatedAt: at("09:00")}, AuthorName: "Bob"},
		},
		err: articlesErr,
	}
	likes := fakeLikes{stats: map[uint]models.LikeStat{
		2: {EntityID: 2, LikeCount: 3, LikedByViewer: true},
	}}
	users := fakeUsers{users: map[uint]models.User{
		1: {ID: 1, Name: "Alice", JobRole: "Recruiter"},
	}}

	jobs := testutil.NewJobStore()
	if err := jobs.CreateJob(t.Context(), &models.Job{AuthorID: 1, Title: "Gopher", CreatedAt: at("10:00")}); err != nil {
		t.Fatalf("create job: %v", err)
	}
	return NewAggregator(articles, jobs, likes, users), jobs
}

func TestCombinedFeed(t *testing.T) {
	t.Parallel()

	agg, _ := newAggregator(t, nil)
	items, err := agg.Combined(t.Context(), 5)
	if err != nil {
		t.Fatalf("Combined: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].Type != TypeJob || items[0].Job.AuthorName != "Alice" || items[0].Job.AuthorJobRole != "Recruiter" {
		t.Fatalf("expected the decorated job first, got %+v", items[0])
	}
	liked := items[1].Article
	if liked == nil || liked.ID != 2 || liked.LikeCount != 3 || !liked.IsLikedByCurrentUser {
		t.Fatalf("expected article 2 with like stats, got %+v", items[1])
	}
	if other := items[2].Article; other.LikeCount != 0 || other.IsLikedByCurrentUser {
		t.Fatalf("article without likes should have zero stats, got %+v", other)
	}
}

func TestCombinedFeedAnonymousViewer(t *testing.T) {
	t.Parallel()

	agg, _ := newAggregator(t, nil)
	items, err := agg.Combined(t.Context(), 0)
	if err != nil {
		t.Fatalf("Combined: %v", err)
	}
	if items[1].Article.LikeCount != 3 || items[1].Article.IsLikedByCurrentUser {
		t.Fatalf("anonymous viewer sees counts but no liked flag, got %+v", items[1].Article)
	}
}

func TestByAuthorFeed(t *testing.T) {
	t.Parallel()

	agg, _ := newAggregator(t, nil)
	items, err := agg.ByAuthor(t.Context(), 2, 0)
	if err != nil {
		t.Fatalf("ByAuthor: %v", err)
	}
	if len(items) != 1 || items[0].Type != TypeArticle || items[0].Article.AuthorID != 2 {
		t.Fatalf("expected only Bob's article, got %+v", items)
	}
}

func TestFeedPropagatesStoreErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection refused")

	agg, _ := newAggregator(t, boom)
	if _, err := agg.Combined(t.Context(), 0); !errors.Is(err, boom) {
		t.Fatalf("expected article store error, got %v", err)
	}

	agg, jobs := newAggregator(t, nil)
	jobs.Err = boom
	if _, err := agg.Combined(t.Context(), 0); !errors.Is(err, boom) {
		t.Fatalf("expected job store error, got %v", err)
	}
}
