package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"home-service-server/database"
	"home-service-server/middleware"
	"home-service-server/models"
)

// RegisterNotificationRoutes registers the notification inbox routes
func RegisterNotificationRoutes(router *gin.RouterGroup) {
	router.GET("/notifications/", listNotifications)
	router.GET("/notifications/unread-count/", unreadCount)
	router.POST("/notifications/mark-read/:id/", markNotificationRead)
	router.POST("/notifications/mark-all-read/", markAllNotificationsRead)
}

// listNotifications returns the authenticated user's inbox, newest first
func listNotifications(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var notifications []models.Notification
	if err := database.DB.
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to load notifications",
			"message": "Could not load your notifications",
		})
		return
	}

	c.JSON(http.StatusOK, notifications)
}

// unreadCount returns how many notifications are still unread
func unreadCount(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var count int64
	if err := database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", user.ID, false).
		Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to count notifications",
			"message": "Could not count unread notifications",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}

// markNotificationRead marks one of the user's notifications as read
func markNotificationRead(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var notification models.Notification
	if err := database.DB.
		Where("id = ? AND user_id = ?", c.Param("id"), user.ID).
		First(&notification).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Notification not found",
			"message": "No notification with that id exists",
		})
		return
	}

	if err := database.DB.Model(&notification).Update("is_read", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Update failed",
			"message": "Failed to mark notification as read",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// markAllNotificationsRead marks the whole inbox as read
func markAllNotificationsRead(c *gin.Context) {
	user := middleware.CurrentUser(c)

	if err := database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", user.ID, false).
		Update("is_read", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Update failed",
			"message": "Failed to mark notifications as read",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}
