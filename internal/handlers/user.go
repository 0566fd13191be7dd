package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/anonto42/content-hub/backend/internal/models"
	"github.com/anonto42/content-hub/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// UserHandler handles HTTP requests related to users
type UserHandler struct {
	userRepository   repositories.UserRepository
	followRepository repositories.FollowRepository
	logger           *slog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, followRepo repositories.FollowRepository, logger *slog.Logger) *UserHandler {
	return &UserHandler{userRepository: userRepo, followRepository: followRepo, logger: logger}
}

// RegisterUserRoutes registers user-related routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users", h.GetUsers)
	g.GET("/users/:userId", h.GetUser)
}

// GetUsers lists users. With currentUserId the viewer is left out and each
// user carries is_following.
func (h *UserHandler) GetUsers(c echo.Context) error {
	ctx := c.Request().Context()
	viewerID := queryID(c, "currentUserId")

	if viewerID == 0 {
		users, err := h.userRepository.GetUsers(ctx)
		if err != nil {
			h.logger.Error("Error fetching users", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch users.")
		}
		if users == nil {
			users = []models.User{}
		}
		return c.JSON(http.StatusOK, users)
	}

	users, err := h.userRepository.GetUsersWithFollowState(ctx, viewerID)
	if err != nil {
		h.logger.Error("Error fetching users", "viewer_id", viewerID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch users.")
	}
	if users == nil {
		users = []models.UserWithFollowState{}
	}
	return c.JSON(http.StatusOK, users)
}

type userProfile struct {
	*models.User
	FollowersCount int64 `json:"followers_count"`
	FollowingCount int64 `json:"following_count"`
	IsFollowing    *bool `json:"is_following,omitempty"`
}

// GetUser returns one user's profile with follow counters
func (h *UserHandler) GetUser(c echo.Context) error {
	userID, err := paramID(c, "userId")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	user, err := h.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		h.logger.Error("Error fetching user", "user_id", userID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch user.")
	}

	profile := userProfile{User: user}
	if profile.FollowersCount, err = h.followRepository.GetFollowersCount(ctx, userID); err != nil {
		h.logger.Error("Error counting followers", "user_id", userID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch user.")
	}
	if profile.FollowingCount, err = h.followRepository.GetFollowingCount(ctx, userID); err != nil {
		h.logger.Error("Error counting following", "user_id", userID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch user.")
	}

	if viewerID := queryID(c, "currentUserId"); viewerID != 0 && viewerID != userID {
		following, err := h.followRepository.IsFollowing(ctx, viewerID, userID)
		if err != nil {
			h.logger.Error("Error checking follow state", "user_id", userID, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch user.")
		}
		profile.IsFollowing = &following
	}
	return c.JSON(http.StatusOK, profile)
}
