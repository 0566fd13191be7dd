package repositories_test

import (
	"errors"
	"testing"

	"github.com/anonto42/content-hub/backend/internal/models"
	"github.com/anonto42/content-hub/backend/internal/repositories"
	"github.com/anonto42/content-hub/backend/internal/testutil"
)

func TestFollowToggle(t *testing.T) {
	t.Parallel()

	db := testutil.NewDB(t)
	repo := repositories.NewPostgresFollowRepository(db)
	alice := testutil.CreateUser(t, db, "Alice")
	bob := testutil.CreateUser(t, db, "Bob")

	note := &models.Notification{RecipientID: bob.ID, ActorID: alice.ID, EventType: models.EventFollow, EntityType: models.EntityUser, Content: "Alice started following you."}
	res, err := repo.Toggle(t.Context(), alice.ID, bob.ID, note)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !res.Active || res.Notification == nil || res.Notification.ID == 0 {
		t.Fatalf("expected active with a stored notification, got %+v", res)
	}
	following, err := repo.IsFollowing(t.Context(), alice.ID, bob.ID)
	if err != nil || !following {
		t.Fatalf("expected Alice to follow Bob (%v)", err)
	}

	res, err = repo.Toggle(t.Context(), alice.ID, bob.ID, &models.Notification{RecipientID: bob.ID, ActorID: alice.ID, EventType: models.EventFollow})
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if res.Active || res.Notification != nil {
		t.Fatalf("expected inactive without notification, got %+v", res)
	}
	if n := testutil.Count(t, db, &models.Notification{}); n != 0 {
		t.Fatalf("expected follow notification to be deleted, got %d", n)
	}
}

func TestLikeToggleWithoutNotification(t *testing.T) {
	t.Parallel()

	db := testutil.NewDB(t)
	repo := repositories.NewPostgresLikeRepository(db)

	like := &models.Like{UserID: 1, EntityID: 4, EntityType: models.EntityPost}
	res, err := repo.Toggle(t.Context(), like, nil)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !res.Active || res.Notification != nil {
		t.Fatalf("expected active without notification, got %+v", res)
	}

	liked, err := repo.HasLiked(t.Context(), 1, 4, models.EntityPost)
	if err != nil || !liked {
		t.Fatalf("expected like to exist (%v)", err)
	}
	if liked, _ := repo.HasLiked(t.Context(), 1, 4, models.EntityComment); liked {
		t.Fatal("like on a post must not count for a comment with the same id")
	}
}

func TestLikeUniqueIndex(t *testing.T) {
	t.Parallel()

	db := testutil.NewDB(t)
	if err := db.Create(&models.Like{UserID: 1, EntityID: 4, EntityType: models.EntityPost}).Error; err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if err := db.Create(&models.Like{UserID: 1, EntityID: 4, EntityType: models.EntityPost}).Error; err == nil {
		t.Fatal("expected duplicate like to violate the unique index")
	}
}

func TestLikeStats(t *testing.T) {
	t.Parallel()

	db := testutil.NewDB(t)
	repo := repositories.NewPostgresLikeRepository(db)
	for _, l := range []models.Like{
		{UserID: 1, EntityID: 10, EntityType: models.EntityPost},
		{UserID: 2, EntityID: 10, EntityType: models.EntityPost},
		{UserID: 2, EntityID: 11, EntityType: models.EntityPost},
		{UserID: 1, EntityID: 11, EntityType: models.EntityComment},
	} {
		if err := db.Create(&l).Error; err != nil {
			t.Fatalf("create like: %v", err)
		}
	}

	stats, err := repo.Stats(t.Context(), models.EntityPost, []uint{10, 11, 12}, 1)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if s := stats[10]; s.LikeCount != 2 || !s.LikedByViewer {
		t.Fatalf("entity 10: unexpected %+v", s)
	}
	if s := stats[11]; s.LikeCount != 1 || s.LikedByViewer {
		t.Fatalf("entity 11: unexpected %+v", s)
	}
	if _, ok := stats[12]; ok {
		t.Fatal("entity without likes should be absent")
	}

	count, err := repo.CountLikes(t.Context(), 11, models.EntityComment)
	if err != nil || count != 1 {
		t.Fatalf("expected 1 comment like, got %d (%v)", count, err)
	}

	empty, err := repo.Stats(t.Context(), models.EntityPost, nil, 1)
	if err != nil || len(empty) != 0 {
		t.Fatalf("expected empty stats, got %v (%v)", empty, err)
	}
}

func TestGetFollowerIDsInFollowOrder(t *testing.T) {
	t.Parallel()

	db := testutil.NewDB(t)
	repo := repositories.NewPostgresFollowRepository(db)
	for _, follower := range []uint{30, 10, 20} {
		testutil.Follow(t, db, follower, 1)
	}
	testutil.Follow(t, db, 1, 30)

	ids, err := repo.GetFollowerIDs(t.Context(), 1, 2)
	if err != nil {
		t.Fatalf("GetFollowerIDs: %v", err)
	}
	if len(ids) != 2 || ids[0] != 30 || ids[1] != 10 {
		t.Fatalf("expected [30 10], got %v", ids)
	}

	all, err := repo.GetFollowerIDs(t.Context(), 1, 0)
	if err != nil || len(all) != 3 {
		t.Fatalf("expected all 3 followers, got %v (%v)", all, err)
	}

	followers, _ := repo.GetFollowersCount(t.Context(), 1)
	following, _ := repo.GetFollowingCount(t.Context(), 1)
	if followers != 3 || following != 1 {
		t.Fatalf("expected 3 followers and 1 following, got %d and %d", followers, following)
	}
}

func TestNotificationInbox(t *testing.T) {
	t.Parallel()

	db := testutil.NewDB(t)
	repo := repositories.NewPostgresNotificationRepository(db)
	alice := testutil.CreateUser(t, db, "Alice")
	bob := testutil.CreateUser(t, db, "Bob")

	for _, content := range []string{"first", "second", "third"} {
		n := &models.Notification{RecipientID: bob.ID, ActorID: alice.ID, EventType: models.EventNewArticle, Content: content}
		if err := repo.CreateNotifications(t.Context(), []*models.Notification{n}); err != nil {
			t.Fatalf("CreateNotifications: %v", err)
		}
	}

	page, total, err := repo.GetByRecipientID(t.Context(), bob.ID, 1, 2)
	if err != nil {
		t.Fatalf("GetByRecipientID: %v", err)
	}
	if total != 3 || len(page) != 2 {
		t.Fatalf("expected 2 of 3, got %d of %d", len(page), total)
	}
	if page[0].Content != "third" || page[1].Content != "second" {
		t.Fatalf("expected newest first, got %q, %q", page[0].Content, page[1].Content)
	}
	if page[0].ActorName != "Alice" {
		t.Fatalf("expected actor name, got %q", page[0].ActorName)
	}

	unread, _ := repo.GetUnreadCount(t.Context(), bob.ID)
	if unread != 3 {
		t.Fatalf("expected 3 unread, got %d", unread)
	}

	if err := repo.MarkAsRead(t.Context(), page[0].ID, alice.ID); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("marking someone else's notification: expected ErrNotFound, got %v", err)
	}
	if err := repo.MarkAsRead(t.Context(), page[0].ID, bob.ID); err != nil {
		t.Fatalf("MarkAsRead: %v", err)
	}
	updated, err := repo.MarkAllAsRead(t.Context(), bob.ID)
	if err != nil || updated != 2 {
		t.Fatalf("expected 2 updated, got %d (%v)", updated, err)
	}
	if unread, _ := repo.GetUnreadCount(t.Context(), bob.ID); unread != 0 {
		t.Fatalf("expected 0 unread, got %d", unread)
	}
}

func TestUserLookups(t *testing.T) {
	t.Parallel()

	db := testutil.NewDB(t)
	repo := repositories.NewPostgresUserRepository(db)
	alice := testutil.CreateUser(t, db, "Alice")
	bob := testutil.CreateUser(t, db, "Bob")
	carol := testutil.CreateUser(t, db, "Carol")
	testutil.Follow(t, db, alice.ID, carol.ID)

	if _, err := repo.GetUserByID(t.Context(), 999); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.GetUserByFirebaseUID(t.Context(), "nope"); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	users, err := repo.GetUsersWithFollowState(t.Context(), alice.ID)
	if err != nil {
		t.Fatalf("GetUsersWithFollowState: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("viewer must be excluded, got %d users", len(users))
	}
	if users[0].ID != bob.ID || users[0].IsFollowing {
		t.Fatalf("expected Bob not followed, got %+v", users[0])
	}
	if users[1].ID != carol.ID || !users[1].IsFollowing {
		t.Fatalf("expected Carol followed, got %+v", users[1])
	}

	byID, err := repo.GetUsersByIDs(t.Context(), []uint{bob.ID, 999})
	if err != nil || len(byID) != 1 || byID[bob.ID].Name != "Bob" {
		t.Fatalf("unexpected batch lookup %v (%v)", byID, err)
	}
}

func TestArticlesAndComments(t *testing.T) {
	t.Parallel()

	db := testutil.NewDB(t)
	articles := repositories.NewPostgresArticleRepository(db)
	comments := repositories.NewPostgresCommentRepository(db)
	alice := testutil.CreateUser(t, db, "Alice")
	bob := testutil.CreateUser(t, db, "Bob")

	first := testutil.CreateArticle(t, db, alice.ID, "First")
	testutil.CreateArticle(t, db, bob.ID, "Second")

	list, err := articles.ListArticles(t.Context(), repositories.ArticleFilter{AuthorID: alice.ID})
	if err != nil {
		t.Fatalf("ListArticles: %v", err)
	}
	if len(list) != 1 || list[0].Title != "First" || list[0].AuthorName != "Alice" {
		t.Fatalf("unexpected filtered list %+v", list)
	}
	all, err := articles.ListArticles(t.Context(), repositories.ArticleFilter{})
	if err != nil || len(all) != 2 {
		t.Fatalf("expected 2 articles, got %d (%v)", len(all), err)
	}

	testutil.CreateComment(t, db, first.ID, bob.ID, "one")
	testutil.CreateComment(t, db, first.ID, alice.ID, "two")
	thread, err := comments.ListByArticle(t.Context(), first.ID)
	if err != nil {
		t.Fatalf("ListByArticle: %v", err)
	}
	if len(thread) != 2 || thread[0].Content != "one" || thread[0].AuthorName != "Bob" {
		t.Fatalf("expected oldest first with author names, got %+v", thread)
	}

	if _, err := articles.GetArticleByID(t.Context(), 999); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := comments.GetCommentByID(t.Context(), 999); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
