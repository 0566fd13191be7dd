package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/anonto42/content-hub/backend/internal/feed"
	"github.com/anonto42/content-hub/backend/internal/models"
	"github.com/anonto42/content-hub/backend/internal/notifier"
	"github.com/anonto42/content-hub/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// ContentHandler handles article, job and comment requests
type ContentHandler struct {
	articleRepository repositories.ArticleRepository
	jobRepository     repositories.JobRepository
	commentRepository repositories.CommentRepository
	likeRepository    repositories.LikeRepository
	userRepository    repositories.UserRepository
	aggregator        *feed.Aggregator
	engine            EventProcessor
	logger            *slog.Logger
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler(
	articleRepo repositories.ArticleRepository,
	jobRepo repositories.JobRepository,
	commentRepo repositories.CommentRepository,
	likeRepo repositories.LikeRepository,
	userRepo repositories.UserRepository,
	aggregator *feed.Aggregator,
	engine EventProcessor,
	logger *slog.Logger,
) *ContentHandler {
	return &ContentHandler{
		articleRepository: articleRepo,
		jobRepository:     jobRepo,
		commentRepository: commentRepo,
		likeRepository:    likeRepo,
		userRepository:    userRepo,
		aggregator:        aggregator,
		engine:            engine,
		logger:            logger,
	}
}

// RegisterContentRoutes registers content routes
func (h *ContentHandler) RegisterContentRoutes(g *echo.Group) {
	g.POST("/posts", h.CreateArticle)
	g.POST("/jobs", h.CreateJob)
	g.POST("/comments", h.CreateComment)
	g.GET("/articles", h.GetArticles)
	g.GET("/jobs", h.GetJobs)
	g.GET("/articles/:articleId/comments", h.GetArticleComments)
	g.GET("/likes/:entityType/:entityId", h.GetLikeState)
}

// CreateArticle publishes an article and notifies the author's followers
func (h *ContentHandler) CreateArticle(c echo.Context) error {
	var req models.CreateArticleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	ctx := c.Request().Context()

	if err := h.requireUser(c, req.ActorID); err != nil {
		return err
	}

	article := &models.Article{AuthorID: req.ActorID, Title: req.Title, Content: req.Content}
	if err := h.articleRepository.CreateArticle(ctx, article); err != nil {
		h.logger.Error("Error creating post", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create post.")
	}

	h.dispatch(c, notifier.ArticleEvent{ActorID: article.AuthorID, ArticleID: article.ID, ArticleTitle: article.Title})
	return c.JSON(http.StatusCreated, article)
}

// CreateJob posts a job and notifies the author's followers
func (h *ContentHandler) CreateJob(c echo.Context) error {
	var req models.CreateJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	ctx := c.Request().Context()

	if err := h.requireUser(c, req.ActorID); err != nil {
		return err
	}

	job := &models.Job{AuthorID: req.ActorID, Title: req.Title, CompanyName: req.CompanyName, Location: req.Location}
	if err := h.jobRepository.CreateJob(ctx, job); err != nil {
		h.logger.Error("Error creating job", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create job.")
	}

	h.dispatch(c, notifier.JobEvent{ActorID: job.AuthorID, JobID: job.ID.Hex(), JobTitle: job.Title})
	return c.JSON(http.StatusCreated, job)
}

// CreateComment comments on an article and notifies its author
func (h *ContentHandler) CreateComment(c echo.Context) error {
	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	ctx := c.Request().Context()

	if err := h.requireUser(c, req.ActorID); err != nil {
		return err
	}
	if _, err := h.articleRepository.GetArticleByID(ctx, req.EntityID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Article not found")
		}
		h.logger.Error("Error loading article", "article_id", req.EntityID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create comment.")
	}

	comment := &models.Comment{ArticleID: req.EntityID, AuthorID: req.ActorID, Content: req.Content}
	if err := h.commentRepository.CreateComment(ctx, comment); err != nil {
		h.logger.Error("Error creating comment", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create comment.")
	}

	h.dispatch(c, notifier.CommentEvent{ActorID: comment.AuthorID, EntityID: comment.ArticleID})
	return c.JSON(http.StatusCreated, comment)
}

// GetArticles lists articles, optionally by authorId, with like state for currentUserId
func (h *ContentHandler) GetArticles(c echo.Context) error {
	filter := repositories.ArticleFilter{AuthorID: queryID(c, "authorId")}
	articles, err := h.aggregator.Articles(c.Request().Context(), filter, queryID(c, "currentUserId"))
	if err != nil {
		h.logger.Error("Error fetching articles", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch articles.")
	}
	return c.JSON(http.StatusOK, articles)
}

// GetJobs lists jobs, optionally by authorId
func (h *ContentHandler) GetJobs(c echo.Context) error {
	filter := repositories.JobFilter{AuthorID: queryID(c, "authorId")}
	jobs, err := h.aggregator.Jobs(c.Request().Context(), filter)
	if err != nil {
		h.logger.Error("Error fetching jobs", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch jobs.")
	}
	return c.JSON(http.StatusOK, jobs)
}

// GetArticleComments lists the comments of an article, oldest first
func (h *ContentHandler) GetArticleComments(c echo.Context) error {
	articleID, err := paramID(c, "articleId")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	comments, err := h.commentRepository.ListByArticle(ctx, articleID)
	if err != nil {
		h.logger.Error("Error fetching comments", "article_id", articleID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch comments.")
	}
	if comments == nil {
		comments = []models.CommentView{}
	}

	ids := make([]uint, len(comments))
	for i, comment := range comments {
		ids[i] = comment.ID
	}
	stats, err := h.likeRepository.Stats(ctx, models.EntityComment, ids, queryID(c, "currentUserId"))
	if err != nil {
		h.logger.Error("Error fetching comment likes", "article_id", articleID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch comments.")
	}
	for i := range comments {
		if s, ok := stats[comments[i].ID]; ok {
			comments[i].LikeCount = s.LikeCount
			comments[i].IsLikedByCurrentUser = s.LikedByViewer
		}
	}
	return c.JSON(http.StatusOK, comments)
}

// GetLikeState reports the like count of one article or comment, and whether
// currentUserId likes it
func (h *ContentHandler) GetLikeState(c echo.Context) error {
	entityType := models.EntityType(c.Param("entityType"))
	if entityType != models.EntityPost && entityType != models.EntityComment {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid entityType")
	}
	entityID, err := paramID(c, "entityId")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	state := models.LikeState{EntityType: entityType, EntityID: entityID}
	state.LikeCount, err = h.likeRepository.CountLikes(ctx, entityID, entityType)
	if err != nil {
		h.logger.Error("Error counting likes", "entity_type", entityType, "entity_id", entityID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch likes.")
	}
	if viewerID := queryID(c, "currentUserId"); viewerID != 0 && state.LikeCount > 0 {
		state.IsLikedByCurrentUser, err = h.likeRepository.HasLiked(ctx, viewerID, entityID, entityType)
		if err != nil {
			h.logger.Error("Error checking like", "entity_type", entityType, "entity_id", entityID, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch likes.")
		}
	}
	return c.JSON(http.StatusOK, state)
}

func (h *ContentHandler) requireUser(c echo.Context, id uint) error {
	if _, err := h.userRepository.GetUserByID(c.Request().Context(), id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		h.logger.Error("Error loading user", "user_id", id, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load user")
	}
	return nil
}

// dispatch runs the follow-up event of a content write. The content is
// already stored, so a failure here is logged and not reported to the client.
func (h *ContentHandler) dispatch(c echo.Context, ev notifier.Event) {
	result, err := h.engine.Process(c.Request().Context(), ev)
	if err != nil {
		h.logger.Error("Error dispatching content event", "kind", ev.Kind(), "error", err)
		return
	}
	h.logger.Debug("content event dispatched", "kind", ev.Kind(), "status", result.Status)
}
