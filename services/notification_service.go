package services

import (
	"log"
	"time"

	"home-service-server/database"
	"home-service-server/models"
	ws "home-service-server/websocket"
)

var notificationHub *ws.Hub

// SetNotificationHub wires the WebSocket hub used for push delivery.
// Called once from main; notifications still land in the inbox table
// whether or not the recipient is connected.
func SetNotificationHub(hub *ws.Hub) {
	notificationHub = hub
}

// Notify stores a notification for a user and pushes it to their open
// WebSocket connection if there is one.
func Notify(userID uint, title, message string, notificationType models.NotificationType) {
	notification := models.Notification{
		UserID:           userID,
		Title:            title,
		Message:          message,
		NotificationType: notificationType,
	}

	if err := database.DB.Create(&notification).Error; err != nil {
		log.Printf("❌ Failed to create notification for user %d: %v", userID, err)
		return
	}

	if notificationHub != nil {
		notificationHub.SendToUser(userID, &ws.Message{
			Type:      "notification",
			Data:      notification,
			Timestamp: time.Now(),
		})
	}
}

// NotifyAdmins sends the same notification to every admin account
func NotifyAdmins(title, message string, notificationType models.NotificationType) {
	var admins []models.User
	if err := database.DB.Where("role = ?", models.RoleAdmin).Find(&admins).Error; err != nil {
		log.Printf("❌ Failed to load admin users: %v", err)
		return
	}

	for _, admin := range admins {
		Notify(admin.ID, title, message, notificationType)
	}
}
