// Package feed builds the combined, newest-first article and job feed.
package feed

import (
	"sort"
	"strconv"
	"time"

	"github.com/anonto42/content-hub/backend/internal/models"
)

// Item types.
const (
	TypeArticle = "article"
	TypeJob     = "job"
)

// Item is one entry of the combined feed. Exactly one of Article and Job is set.
type Item struct {
	Type      string              `json:"type"`
	ID        string              `json:"id"`
	CreatedAt time.Time           `json:"created_at"`
	Article   *models.ArticleView `json:"article,omitempty"`
	Job       *models.JobView     `json:"job,omitempty"`
}

// Merge tags articles and jobs with their type and orders the union by
// creation time, newest first. Equal timestamps are ordered by descending
// ID so the result does not depend on fetch order.
func Merge(articles []models.ArticleView, jobs []models.JobView) []Item {
	items := make([]Item, 0, len(articles)+len(jobs))
	for i := range articles {
		a := &articles[i]
		items = append(items, Item{
			Type:      TypeArticle,
			ID:        strconv.FormatUint(uint64(a.ID), 10),
			CreatedAt: a.CreatedAt,
			Article:   a,
		})
	}
	for i := range jobs {
		j := &jobs[i]
		items = append(items, Item{
			Type:      TypeJob,
			ID:        j.ID.Hex(),
			CreatedAt: j.CreatedAt,
			Job:       j,
		})
	}

	sort.SliceStable(items, func(i, k int) bool {
		a, b := items[i], items[k]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return idAfter(a.ID, b.ID)
	})
	return items
}

// idAfter compares decimal and hex IDs numerically: a longer ID is larger,
// equal lengths compare lexically.
func idAfter(a, b string) bool {
	if len(a) != len(b) {
		return len(a) > len(b)
	}
	return a > b
}
