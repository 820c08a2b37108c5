package routes

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"home-service-server/database"
	"home-service-server/models"
	"home-service-server/services"
)

// RegisterAdminRoutes registers routes restricted to admin accounts
func RegisterAdminRoutes(router *gin.RouterGroup) {
	router.GET("/admin/users/", adminListUsers)
	router.GET("/admin/workers/", adminListWorkers)
	router.POST("/admin/workers/:id/approval/", adminWorkerApproval)
	router.GET("/admin/bookings/", adminListBookings)
	router.GET("/admin/bookings/:id/eligible-workers/", adminEligibleWorkers)
	router.POST("/admin/bookings/:id/assign-worker/", adminAssignWorker)
	router.POST("/bookings/:id/suggest-delayed/", adminSuggestDelayed)
	router.GET("/admin/ratings/", adminListRatings)
}

// adminListUsers lists customer accounts
func adminListUsers(c *gin.Context) {
	var users []models.User
	if err := database.DB.Where("role = ?", models.RoleUser).Order("id").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to load users",
			"message": "Could not load user accounts",
		})
		return
	}

	response := make([]gin.H, 0, len(users))
	for i := range users {
		response = append(response, profileResponse(&users[i]))
	}

	c.JSON(http.StatusOK, response)
}

func workerSummary(worker *models.User) gin.H {
	serviceNames := make([]string, 0, len(worker.Services))
	for _, s := range worker.Services {
		serviceNames = append(serviceNames, s.Name)
	}

	return gin.H{
		"id":           worker.ID,
		"username":     worker.Username,
		"email":        worker.Email,
		"phone_number": worker.PhoneNumber,
		"specialty":    worker.Specialty,
		"is_approved":  worker.IsApproved,
		"services":     serviceNames,
	}
}

// adminListWorkers lists worker accounts with their capability sets
func adminListWorkers(c *gin.Context) {
	var workers []models.User
	if err := database.DB.Preload("Services").
		Where("role = ?", models.RoleWorker).Order("id").
		Find(&workers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to load workers",
			"message": "Could not load worker accounts",
		})
		return
	}

	response := make([]gin.H, 0, len(workers))
	for i := range workers {
		response = append(response, workerSummary(&workers[i]))
	}

	c.JSON(http.StatusOK, response)
}

// adminWorkerApproval approves or rejects a worker account. Rejection
// deletes the account so the username can be reused.
func adminWorkerApproval(c *gin.Context) {
	var worker models.User
	if err := database.DB.Where("id = ? AND role = ?", c.Param("id"), models.RoleWorker).
		First(&worker).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Worker not found",
			"message": "No worker with that id exists",
		})
		return
	}

	var req struct {
		Action string `json:"action" binding:"required,oneof=approve reject"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid action. Must be either \"approve\" or \"reject\"",
			"message": err.Error(),
		})
		return
	}

	switch req.Action {
	case "approve":
		if err := database.DB.Model(&worker).Update("is_approved", true).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Update failed",
				"message": "Failed to approve worker",
			})
			return
		}

		services.Notify(worker.ID,
			"Account Approved",
			"Your worker account has been approved. You can now log in and receive assignments.",
			models.NotificationSystem)

		c.JSON(http.StatusOK, gin.H{
			"message":   fmt.Sprintf("Worker %s approved successfully", worker.Username),
			"worker_id": worker.ID,
		})

	case "reject":
		if err := database.DB.Select("Services").Delete(&worker).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Update failed",
				"message": "Failed to reject worker",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Worker %s rejected and removed", worker.Username),
		})
	}
}

// adminListBookings lists every booking with payment info
func adminListBookings(c *gin.Context) {
	var bookings []models.Booking
	if err := database.DB.
		Preload("Service").Preload("User").Preload("Worker").Preload("Payment").
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to load bookings",
			"message": "Could not load bookings",
		})
		return
	}

	response := make([]gin.H, 0, len(bookings))
	for i := range bookings {
		response = append(response, bookingResponse(&bookings[i]))
	}

	c.JSON(http.StatusOK, response)
}

// adminEligibleWorkers lists approved workers able to serve a booking's service
func adminEligibleWorkers(c *gin.Context) {
	var booking models.Booking
	if err := database.DB.Preload("Service").First(&booking, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Booking not found",
			"message": "No booking with that id exists",
		})
		return
	}

	workers, err := services.ListEligibleWorkers(booking.Service.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to load workers",
			"message": "Could not load eligible workers",
		})
		return
	}

	response := make([]gin.H, 0, len(workers))
	for i := range workers {
		response = append(response, workerSummary(&workers[i]))
	}

	c.JSON(http.StatusOK, response)
}

// adminAssignWorker assigns an eligible worker to a pending booking
func adminAssignWorker(c *gin.Context) {
	var booking models.Booking
	if err := database.DB.Preload("Service").Preload("User").
		First(&booking, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Booking not found",
			"message": "No booking with that id exists",
		})
		return
	}

	if booking.Status != models.BookingStatusPending {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   fmt.Sprintf("Cannot assign worker to booking with status %s", booking.Status),
			"message": "Only pending bookings can be assigned",
		})
		return
	}

	var req struct {
		WorkerID uint `json:"worker_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Worker ID is required",
			"message": err.Error(),
		})
		return
	}

	var worker models.User
	if err := database.DB.Preload("Services").
		Where("id = ? AND role = ?", req.WorkerID, models.RoleWorker).
		First(&worker).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Worker not found",
			"message": "No worker with that id exists",
		})
		return
	}

	if !worker.IsApproved || !worker.CanProvide(booking.Service.Name) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Worker is not eligible for this booking",
			"message": "The worker must be approved and provide this service",
		})
		return
	}

	if err := setBookingStatus(&booking, models.BookingStatusAssigned,
		map[string]interface{}{"worker_id": worker.ID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Assignment failed",
			"message": "Failed to assign worker",
		})
		return
	}
	booking.WorkerID = &worker.ID

	services.Notify(worker.ID,
		"New Booking Assigned",
		fmt.Sprintf("You have been assigned booking #%d for %s on %s at %s.",
			booking.ID, booking.Service.Name, booking.Date.Format(dateLayout), booking.TimeSlot),
		models.NotificationAssignment)
	services.Notify(booking.UserID,
		"Worker Assigned",
		fmt.Sprintf("Worker %s has been assigned to your booking #%d (%s).", worker.Username, booking.ID, booking.Service.Name),
		models.NotificationBookingStatus)

	c.JSON(http.StatusOK, gin.H{
		"message":    "Worker assigned successfully",
		"booking_id": booking.ID,
		"worker_id":  worker.ID,
		"status":     booking.Status,
	})
}

// adminSuggestDelayed proposes a new slot for an active booking. The
// original slot stays in place until the user responds.
func adminSuggestDelayed(c *gin.Context) {
	var booking models.Booking
	if err := database.DB.Preload("Service").Preload("User").Preload("Worker").
		First(&booking, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Booking not found",
			"message": "No booking with that id exists",
		})
		return
	}

	if !booking.Status.CanSuggestDelay() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   fmt.Sprintf("Cannot suggest a delay for booking with status %s", booking.Status),
			"message": "Only assigned, confirmed, reached or delayed bookings can be rescheduled",
		})
		return
	}

	var req struct {
		SuggestedDate string `json:"suggested_date" binding:"required"` // YYYY-MM-DD
		SuggestedTime string `json:"suggested_time" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Suggested date and time are required",
			"message": err.Error(),
		})
		return
	}

	suggestedDate, err := time.Parse(dateLayout, req.SuggestedDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid date",
			"message": "Suggested date must be in YYYY-MM-DD format",
		})
		return
	}

	if err := setBookingStatus(&booking, models.BookingStatusDelayed, map[string]interface{}{
		"suggested_date": suggestedDate,
		"suggested_time": req.SuggestedTime,
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Update failed",
			"message": "Failed to record the suggestion",
		})
		return
	}
	booking.SuggestedDate = &suggestedDate
	booking.SuggestedTime = &req.SuggestedTime

	services.Notify(booking.UserID,
		"Service Delayed - New Time Suggested",
		fmt.Sprintf("Your booking #%d (%s) has been delayed. New suggested time: %s at %s. Please accept or cancel.",
			booking.ID, booking.Service.Name, req.SuggestedDate, req.SuggestedTime),
		models.NotificationBookingStatus)
	if booking.Worker != nil {
		services.Notify(booking.Worker.ID,
			"Booking Delayed",
			fmt.Sprintf("Booking #%d (%s) has been marked as delayed pending the customer's response.", booking.ID, booking.Service.Name),
			models.NotificationBookingStatus)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Delay suggestion sent to the user",
		"booking_id":     booking.ID,
		"status":         booking.Status,
		"suggested_date": req.SuggestedDate,
		"suggested_time": req.SuggestedTime,
	})
}

// adminListRatings lists every rating on the platform
func adminListRatings(c *gin.Context) {
	var ratings []models.RatingReview
	if err := database.DB.
		Preload("User").Preload("Worker").Preload("Service").
		Preload("Booking").Preload("Booking.Service").
		Order("created_at DESC").
		Find(&ratings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to load ratings",
			"message": "Could not load ratings",
		})
		return
	}

	c.JSON(http.StatusOK, ratingResponses(ratings))
}
