package routes

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"home-service-server/database"
	"home-service-server/middleware"
	"home-service-server/models"
	"home-service-server/services"
)

// RegisterWorkerRoutes registers routes for approved workers
func RegisterWorkerRoutes(router *gin.RouterGroup) {
	router.GET("/workers/bookings/", workerBookings)
	router.POST("/workers/bookings/:id/decision/", workerDecision)
	router.POST("/bookings/:id/mark-reached/", markReached)
	router.POST("/workers/bookings/:id/generate-otp/", generateOTP)
	router.POST("/workers/verify-otp/", verifyOTP)
	router.GET("/workers/me/ratings/", workerRatings)
}

// workerBookings lists the bookings assigned to the authenticated worker
func workerBookings(c *gin.Context) {
	worker := middleware.CurrentUser(c)

	var bookings []models.Booking
	if err := database.DB.
		Preload("Service").Preload("User").Preload("Worker").Preload("Payment").
		Where("worker_id = ?", worker.ID).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to load bookings",
			"message": "Could not load your assigned bookings",
		})
		return
	}

	response := make([]gin.H, 0, len(bookings))
	for i := range bookings {
		response = append(response, bookingResponse(&bookings[i]))
	}

	c.JSON(http.StatusOK, response)
}

// workerDecision lets a worker accept or reject an assignment. Accepting
// confirms the booking; rejecting returns it to the assignment pool.
func workerDecision(c *gin.Context) {
	worker := middleware.CurrentUser(c)

	var booking models.Booking
	if err := database.DB.Preload("Service").Preload("User").
		Where("id = ? AND worker_id = ?", c.Param("id"), worker.ID).
		First(&booking).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Booking not found",
			"message": "No assigned booking with that id exists",
		})
		return
	}

	if booking.Status != models.BookingStatusAssigned {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   fmt.Sprintf("Cannot respond to booking with status %s", booking.Status),
			"message": "Only newly assigned bookings can be accepted or rejected",
		})
		return
	}

	var req struct {
		Action string `json:"action" binding:"required,oneof=accept reject"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid action. Must be either \"accept\" or \"reject\"",
			"message": err.Error(),
		})
		return
	}

	switch req.Action {
	case "accept":
		if err := setBookingStatus(&booking, models.BookingStatusConfirmed, nil); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Update failed",
				"message": "Failed to confirm booking",
			})
			return
		}

		services.Notify(booking.UserID,
			"Booking Confirmed",
			fmt.Sprintf("Worker %s has accepted your booking #%d for %s.", worker.Username, booking.ID, booking.Service.Name),
			models.NotificationBookingStatus)
		services.NotifyAdmins(
			"Worker Accepted Booking",
			fmt.Sprintf("Worker %s accepted booking #%d for %s.", worker.Username, booking.ID, booking.Service.Name),
			models.NotificationBookingStatus)

		c.JSON(http.StatusOK, gin.H{
			"message":    "Booking accepted successfully",
			"booking_id": booking.ID,
			"status":     booking.Status,
		})

	case "reject":
		// Unassign and put the booking back in the pool for the admin
		if err := setBookingStatus(&booking, models.BookingStatusPending,
			map[string]interface{}{"worker_id": nil}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Update failed",
				"message": "Failed to reject booking",
			})
			return
		}
		booking.WorkerID = nil

		services.NotifyAdmins(
			"Worker Rejected Booking",
			fmt.Sprintf("Worker %s rejected booking #%d for %s. Please assign another worker.", worker.Username, booking.ID, booking.Service.Name),
			models.NotificationBookingRejection)

		c.JSON(http.StatusOK, gin.H{
			"message":    "Booking rejected successfully",
			"booking_id": booking.ID,
			"status":     booking.Status,
		})
	}
}

// markReached records that the worker arrived on site
func markReached(c *gin.Context) {
	worker := middleware.CurrentUser(c)

	var booking models.Booking
	if err := database.DB.Preload("Service").Preload("User").
		Where("id = ? AND worker_id = ?", c.Param("id"), worker.ID).
		First(&booking).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Booking not found",
			"message": "No assigned booking with that id exists",
		})
		return
	}

	if booking.Status != models.BookingStatusConfirmed {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   fmt.Sprintf("Cannot mark reached from status %s", booking.Status),
			"message": "The booking must be confirmed before marking reached",
		})
		return
	}

	now := time.Now()
	if err := setBookingStatus(&booking, models.BookingStatusReached,
		map[string]interface{}{"reached_at": now}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Update failed",
			"message": "Failed to update booking",
		})
		return
	}
	booking.ReachedAt = &now

	services.Notify(booking.UserID,
		"Worker Has Arrived",
		fmt.Sprintf("Worker %s has reached your location for booking #%d (%s).", worker.Username, booking.ID, booking.Service.Name),
		models.NotificationBookingStatus)
	services.NotifyAdmins(
		"Worker Reached Location",
		fmt.Sprintf("Worker %s has reached the location for booking #%d (%s).", worker.Username, booking.ID, booking.Service.Name),
		models.NotificationBookingStatus)

	c.JSON(http.StatusOK, gin.H{
		"message":    "Marked as reached successfully",
		"booking_id": booking.ID,
		"status":     booking.Status,
		"reached_at": booking.ReachedAt,
	})
}

// generateOTP issues a start-of-work code for a reached booking. The code is
// delivered to the customer, never to the worker.
func generateOTP(c *gin.Context) {
	worker := middleware.CurrentUser(c)

	var booking models.Booking
	if err := database.DB.Preload("Service").Preload("User").
		Where("id = ? AND worker_id = ?", c.Param("id"), worker.ID).
		First(&booking).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Booking not found",
			"message": "No assigned booking with that id exists",
		})
		return
	}

	if booking.Status != models.BookingStatusReached {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "OTP can only be generated after reaching the location",
			"message": "Mark the booking as reached first",
		})
		return
	}

	otp, err := services.IssueOTP(&booking)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "OTP generation failed",
			"message": "Failed to generate OTP",
		})
		return
	}

	services.Notify(booking.UserID,
		"Service Start OTP",
		fmt.Sprintf("Your OTP for booking #%d (%s) is %s. Share it with the worker to start the service.", booking.ID, booking.Service.Name, otp.Code),
		models.NotificationOTP)

	c.JSON(http.StatusOK, gin.H{
		"message":    "OTP generated and sent to the customer",
		"booking_id": booking.ID,
		"expires_at": otp.ExpiresAt,
	})
}

// verifyOTP checks the code the worker collected from the customer and
// starts the service
func verifyOTP(c *gin.Context) {
	worker := middleware.CurrentUser(c)

	var req struct {
		BookingID uint   `json:"booking_id" binding:"required"`
		OTP       string `json:"otp" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Booking ID and OTP are required",
			"message": err.Error(),
		})
		return
	}

	booking, err := services.VerifyOTP(worker.ID, req.BookingID, req.OTP)
	if err != nil {
		// One generic failure for every cause
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "OTP verification failed",
			"message": "The OTP could not be verified",
		})
		return
	}

	services.Notify(booking.UserID,
		"Service Started",
		fmt.Sprintf("Work on your booking #%d (%s) has started.", booking.ID, booking.Service.Name),
		models.NotificationBookingStatus)
	services.NotifyAdmins(
		"Service In Progress",
		fmt.Sprintf("Worker %s started work on booking #%d (%s).", worker.Username, booking.ID, booking.Service.Name),
		models.NotificationBookingStatus)

	c.JSON(http.StatusOK, gin.H{
		"message":    "OTP verified successfully. Service is now in progress",
		"booking_id": booking.ID,
		"status":     booking.Status,
	})
}

// workerRatings returns ratings left for the authenticated worker
func workerRatings(c *gin.Context) {
	worker := middleware.CurrentUser(c)

	var ratings []models.RatingReview
	if err := database.DB.
		Preload("User").Preload("Worker").Preload("Service").
		Preload("Booking").Preload("Booking.Service").
		Where("worker_id = ?", worker.ID).
		Order("created_at DESC").
		Find(&ratings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to load ratings",
			"message": "Could not load your ratings",
		})
		return
	}

	var average float64
	database.DB.Raw(`SELECT COALESCE(AVG(rating), 0) FROM rating_reviews WHERE worker_id = ?`, worker.ID).Scan(&average)

	c.JSON(http.StatusOK, gin.H{
		"average_rating": average,
		"total_ratings":  len(ratings),
		"ratings":        ratingResponses(ratings),
	})
}
