package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"home-service-server/database"
	"home-service-server/middleware"
	"home-service-server/models"
)

// RegisterRatingRoutes registers rating routes for authenticated users
func RegisterRatingRoutes(router *gin.RouterGroup) {
	router.GET("/ratings/", listRatings)
	router.POST("/ratings/", createRating)
}

func ratingResponse(r *models.RatingReview) models.RatingResponse {
	var workerUsername *string
	if r.Worker != nil {
		workerUsername = &r.Worker.Username
	}

	var serviceName *string
	if r.Service != nil {
		serviceName = &r.Service.Name
	} else if r.Booking != nil && r.Booking.Service.ID != 0 {
		serviceName = &r.Booking.Service.Name
	}

	return models.RatingResponse{
		ID:             r.ID,
		BookingID:      r.BookingID,
		UserUsername:   r.User.Username,
		WorkerUsername: workerUsername,
		ServiceName:    serviceName,
		Rating:         r.Rating,
		Review:         r.Review,
		CreatedAt:      r.CreatedAt,
	}
}

func ratingResponses(ratings []models.RatingReview) []models.RatingResponse {
	response := make([]models.RatingResponse, 0, len(ratings))
	for i := range ratings {
		response = append(response, ratingResponse(&ratings[i]))
	}
	return response
}

// listRatings returns the authenticated user's own ratings
func listRatings(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var ratings []models.RatingReview
	if err := database.DB.
		Preload("User").Preload("Worker").Preload("Service").
		Preload("Booking").Preload("Booking.Service").
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&ratings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to load ratings",
			"message": "Could not load your ratings",
		})
		return
	}

	c.JSON(http.StatusOK, ratingResponses(ratings))
}

// createRating records a rating, either for a completed and paid booking or
// directly for a catalog service
func createRating(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req models.RatingCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	if req.Booking == nil && req.Service == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Either booking or service is required",
			"message": "A rating must target a booking or a service",
		})
		return
	}

	rating := models.RatingReview{
		UserID: user.ID,
		Rating: req.Rating,
		Review: req.Review,
	}

	if req.Booking != nil {
		var booking models.Booking
		if err := database.DB.Preload("Payment").
			Where("id = ? AND user_id = ?", *req.Booking, user.ID).
			First(&booking).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Booking not found",
				"message": "No booking with that id exists for you",
			})
			return
		}

		if booking.Status != models.BookingStatusCompleted {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "You can only rate completed bookings",
				"message": "The booking must be completed before rating",
			})
			return
		}

		if booking.Payment == nil || booking.Payment.PaymentStatus != models.PaymentStatusSuccess {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Payment must be completed before rating",
				"message": "Please complete the payment before rating this booking",
			})
			return
		}

		if booking.IsRated {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "You have already rated this booking",
				"message": "Each booking can only be rated once",
			})
			return
		}

		rating.BookingID = &booking.ID
		rating.ServiceID = &booking.ServiceID
		rating.WorkerID = booking.WorkerID

		if err := database.DB.Create(&rating).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Rating creation failed",
				"message": "Failed to save rating",
			})
			return
		}

		database.DB.Model(&booking).Update("is_rated", true)
	} else {
		var service models.Service
		if err := database.DB.First(&service, *req.Service).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Service not found",
				"message": "No service with that id exists",
			})
			return
		}

		rating.ServiceID = &service.ID

		if err := database.DB.Create(&rating).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Rating creation failed",
				"message": "Failed to save rating",
			})
			return
		}
	}

	database.DB.
		Preload("User").Preload("Worker").Preload("Service").
		Preload("Booking").Preload("Booking.Service").
		First(&rating, rating.ID)

	c.JSON(http.StatusCreated, ratingResponse(&rating))
}
