package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"

	"home-service-server/database"
	"home-service-server/models"
)

// RegisterServiceRoutes registers public catalog routes
func RegisterServiceRoutes(router *gin.RouterGroup) {
	router.GET("/services/", listServices)
	router.GET("/service-details/:id/", getServiceDetails)
	router.GET("/services/:id/ratings/", getServiceRatings)
}

// RegisterServiceAdminRoutes registers catalog mutation routes (admin only)
func RegisterServiceAdminRoutes(router *gin.RouterGroup) {
	router.POST("/services/", createService)
	router.DELETE("/services/", deleteService)
}

// serviceAverageRating averages ratings linked to the service directly or
// through its bookings
func serviceAverageRating(serviceID uint) float64 {
	var avg float64
	database.DB.Raw(`
		SELECT COALESCE(AVG(r.rating), 0)
		FROM rating_reviews r
		LEFT JOIN bookings b ON r.booking_id = b.id
		WHERE r.service_id = ? OR b.service_id = ?`,
		serviceID, serviceID).Scan(&avg)
	return avg
}

func serviceResponse(service *models.Service) models.ServiceResponse {
	return models.ServiceResponse{
		ID:                service.ID,
		Name:              service.Name,
		Description:       service.Description,
		Price:             service.Price,
		EstimatedDuration: service.EstimatedDuration,
		Category:          service.Category,
		IncludedItems:     []string(service.IncludedItems),
		AverageRating:     serviceAverageRating(service.ID),
	}
}

// listServices returns the full service catalog
func listServices(c *gin.Context) {
	var services []models.Service
	if err := database.DB.Order("id").Find(&services).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to load services",
			"message": "Could not load the service catalog",
		})
		return
	}

	response := make([]models.ServiceResponse, 0, len(services))
	for i := range services {
		response = append(response, serviceResponse(&services[i]))
	}

	c.JSON(http.StatusOK, response)
}

// getServiceDetails returns a single catalog service
func getServiceDetails(c *gin.Context) {
	var service models.Service
	if err := database.DB.First(&service, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Service not found",
			"message": "No service with that id exists",
		})
		return
	}

	c.JSON(http.StatusOK, serviceResponse(&service))
}

// getServiceRatings returns ratings for a service, including ones left via
// bookings of that service
func getServiceRatings(c *gin.Context) {
	var service models.Service
	if err := database.DB.First(&service, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Service not found",
			"message": "No service with that id exists",
		})
		return
	}

	var ratings []models.RatingReview
	if err := database.DB.
		Preload("User").Preload("Worker").Preload("Service").
		Preload("Booking").Preload("Booking.Service").
		Joins("LEFT JOIN bookings ON rating_reviews.booking_id = bookings.id").
		Where("rating_reviews.service_id = ? OR bookings.service_id = ?", service.ID, service.ID).
		Order("rating_reviews.created_at DESC").
		Find(&ratings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to load ratings",
			"message": "Could not load ratings for this service",
		})
		return
	}

	c.JSON(http.StatusOK, ratingResponses(ratings))
}

// createService adds a service to the catalog
func createService(c *gin.Context) {
	var req models.ServiceCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	category := models.CategoryOther
	if req.Category != "" {
		if !models.ValidCategory(req.Category) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid category",
				"message": "Unknown service category",
			})
			return
		}
		category = models.ServiceCategory(req.Category)
	}

	service := models.Service{
		Name:              req.Name,
		Description:       req.Description,
		Price:             req.Price,
		EstimatedDuration: req.EstimatedDuration,
		Category:          category,
		IncludedItems:     pq.StringArray(req.IncludedItems),
	}

	if err := database.DB.Create(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Service creation failed",
			"message": "Failed to create service",
		})
		return
	}

	c.JSON(http.StatusCreated, serviceResponse(&service))
}

// deleteService removes a service from the catalog
func deleteService(c *gin.Context) {
	var req struct {
		ServiceID uint `json:"service_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Service ID is required",
			"message": err.Error(),
		})
		return
	}

	var service models.Service
	if err := database.DB.First(&service, req.ServiceID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Service not found",
			"message": "No service with that id exists",
		})
		return
	}

	if err := database.DB.Delete(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Service deletion failed",
			"message": "Failed to delete service",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Service \"" + service.Name + "\" deleted successfully",
	})
}
