package handlers

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/anonto42/content-hub/backend/internal/models"
	"github.com/anonto42/content-hub/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
	logger                 *slog.Logger
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifRepo repositories.NotificationRepository, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationRepository: notifRepo,
		logger:                 logger,
	}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications/:userId", h.GetNotifications)
	g.GET("/notifications/:userId/unread-count", h.GetUnreadCount)
	g.POST("/notifications/:userId/mark-read", h.MarkAllAsRead)
	g.PUT("/notifications/:userId/:id/read", h.MarkAsRead)
}

// GetNotifications returns a user's notifications, newest first
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	userID, err := paramID(c, "userId")
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}

	notifications, total, err := h.notificationRepository.GetByRecipientID(c.Request().Context(), userID, page, limit)
	if err != nil {
		h.logger.Error("Error fetching notifications", "user_id", userID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch notifications.")
	}
	if notifications == nil {
		notifications = []models.NotificationView{}
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"notifications": notifications,
		},
		"meta": echo.Map{
			"currentPage":     page,
			"totalPages":      totalPages,
			"totalItems":      total,
			"itemsPerPage":    limit,
			"hasNextPage":     page < totalPages,
			"hasPreviousPage": page > 1,
		},
	})
}

// GetUnreadCount returns the unread notification count
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	userID, err := paramID(c, "userId")
	if err != nil {
		return err
	}

	count, err := h.notificationRepository.GetUnreadCount(c.Request().Context(), userID)
	if err != nil {
		h.logger.Error("Error counting notifications", "user_id", userID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to count notifications.")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"count": count}})
}

// MarkAsRead marks one notification of the user as read
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	userID, err := paramID(c, "userId")
	if err != nil {
		return err
	}
	notifID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.notificationRepository.MarkAsRead(c.Request().Context(), notifID, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Notification not found")
		}
		h.logger.Error("Error marking notification read", "id", notifID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update notification.")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"success": true}})
}

// MarkAllAsRead marks all of the user's notifications as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	userID, err := paramID(c, "userId")
	if err != nil {
		return err
	}

	updated, err := h.notificationRepository.MarkAllAsRead(c.Request().Context(), userID)
	if err != nil {
		h.logger.Error("Error marking notifications read", "user_id", userID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update notifications.")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"updated": updated}})
}
