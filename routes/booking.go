package routes

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"home-service-server/database"
	"home-service-server/middleware"
	"home-service-server/models"
	"home-service-server/services"
)

const dateLayout = "2006-01-02"

var errIllegalTransition = errors.New("illegal booking status transition")

// setBookingStatus is the single gate for booking status changes: it checks
// the transition table before persisting the new status together with any
// extra column updates, and keeps the in-memory struct in sync.
func setBookingStatus(booking *models.Booking, to models.BookingStatus, extra map[string]interface{}) error {
	if !models.CanTransition(booking.Status, to) {
		return fmt.Errorf("%w: %s -> %s", errIllegalTransition, booking.Status, to)
	}

	updates := map[string]interface{}{"status": to}
	for column, value := range extra {
		updates[column] = value
	}

	if err := database.DB.Model(booking).Updates(updates).Error; err != nil {
		return err
	}

	booking.Status = to
	return nil
}

// RegisterBookingRoutes registers the customer-facing booking routes
func RegisterBookingRoutes(router *gin.RouterGroup) {
	router.POST("/bookings/", createBooking)
	// /bookings/my/ is served through the :id route below; gin's router
	// cannot register a static segment next to a wildcard sibling
	router.GET("/bookings/:id/", getBooking)
	router.PUT("/bookings/:id/cancel/", cancelBooking)
	router.POST("/bookings/:id/payment/", processPayment)
	router.GET("/bookings/:id/payment/details/", getPaymentDetails)
	router.POST("/bookings/:id/respond-to-delayed/", respondToDelayed)
}

func paymentInfo(p *models.Payment) gin.H {
	if p == nil {
		return nil
	}
	return gin.H{
		"id":               p.ID,
		"total_amount":     fmt.Sprintf("%.2f", p.TotalAmount),
		"admin_commission": fmt.Sprintf("%.2f", p.AdminCommission),
		"provider_amount":  fmt.Sprintf("%.2f", p.ProviderAmount),
		"payment_status":   p.PaymentStatus,
		"payment_method":   p.PaymentMethod,
		"transaction_id":   p.TransactionID,
		"created_at":       p.CreatedAt,
	}
}

func bookingResponse(b *models.Booking) gin.H {
	var workerUsername *string
	if b.Worker != nil {
		workerUsername = &b.Worker.Username
	}

	var suggestedDate *string
	if b.SuggestedDate != nil {
		s := b.SuggestedDate.Format(dateLayout)
		suggestedDate = &s
	}

	return gin.H{
		"id": b.ID,
		"service_detail": gin.H{
			"id":          b.Service.ID,
			"name":        b.Service.Name,
			"description": b.Service.Description,
			"price":       b.Service.Price,
		},
		"service_name":    b.Service.Name,
		"user_username":   b.User.Username,
		"worker_username": workerUsername,
		"status":          b.Status,
		"scheduled_date":  b.Date.Format(dateLayout),
		"scheduled_time":  b.TimeSlot,
		"suggested_date":  suggestedDate,
		"suggested_time":  b.SuggestedTime,
		"address":         b.Address,
		"is_rated":        b.IsRated,
		"created_at":      b.CreatedAt,
		"payment":         paymentInfo(b.Payment),
	}
}

// createBooking creates a PENDING booking for the authenticated user
func createBooking(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req models.BookingCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	var service models.Service
	if err := database.DB.First(&service, req.Service).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Service not found",
			"message": "No service with that id exists",
		})
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid date",
			"message": "Date must be in YYYY-MM-DD format",
		})
		return
	}

	address := req.Address
	if address == "" {
		address = user.Address
	}

	booking := models.Booking{
		UserID:    user.ID,
		ServiceID: service.ID,
		Date:      date,
		TimeSlot:  req.TimeSlot,
		Address:   address,
		Status:    models.BookingStatusPending,
	}

	if err := database.DB.Create(&booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Booking creation failed",
			"message": "Failed to create booking",
		})
		return
	}

	booking.User = *user
	booking.Service = service

	c.JSON(http.StatusCreated, bookingResponse(&booking))
}

// myBookings returns the authenticated user's bookings
func myBookings(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var bookings []models.Booking
	if err := database.DB.
		Preload("Service").Preload("User").Preload("Worker").Preload("Payment").
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to load bookings",
			"message": "Could not load your bookings",
		})
		return
	}

	response := make([]gin.H, 0, len(bookings))
	for i := range bookings {
		response = append(response, bookingResponse(&bookings[i]))
	}

	c.JSON(http.StatusOK, response)
}

// getBooking returns one booking, visible to its owner, its worker, or an
// admin. The "my" pseudo-id lists the caller's own bookings instead.
func getBooking(c *gin.Context) {
	if c.Param("id") == "my" {
		myBookings(c)
		return
	}

	user := middleware.CurrentUser(c)

	var booking models.Booking
	if err := database.DB.
		Preload("Service").Preload("User").Preload("Worker").Preload("Payment").
		First(&booking, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Booking not found",
			"message": "No booking with that id exists",
		})
		return
	}

	isOwner := booking.UserID == user.ID
	isAssignedWorker := booking.WorkerID != nil && *booking.WorkerID == user.ID
	if !isOwner && !isAssignedWorker && !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Permission denied",
			"message": "You cannot view this booking",
		})
		return
	}

	c.JSON(http.StatusOK, bookingResponse(&booking))
}

// cancelBooking cancels one of the user's own bookings. Only PENDING and
// ASSIGNED bookings can be cancelled.
func cancelBooking(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var booking models.Booking
	if err := database.DB.Preload("Service").Preload("Worker").
		First(&booking, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Booking not found",
			"message": "No booking with that id exists",
		})
		return
	}

	if booking.UserID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Permission denied",
			"message": "You can only cancel your own bookings",
		})
		return
	}

	if !booking.Status.CanCancel() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   fmt.Sprintf("Cannot cancel booking with status %s", booking.Status),
			"message": "Only pending or assigned bookings can be cancelled",
		})
		return
	}

	if err := setBookingStatus(&booking, models.BookingStatusCancelled, nil); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Cancellation failed",
			"message": "Failed to cancel booking",
		})
		return
	}

	if booking.Worker != nil {
		services.Notify(booking.Worker.ID,
			"Booking Cancelled",
			fmt.Sprintf("Booking #%d for %s has been cancelled by %s.", booking.ID, booking.Service.Name, user.Username),
			models.NotificationBookingStatus)
	}
	services.NotifyAdmins(
		"Booking Cancelled by User",
		fmt.Sprintf("Booking #%d for %s has been cancelled by %s.", booking.ID, booking.Service.Name, user.Username),
		models.NotificationBookingStatus)

	c.JSON(http.StatusOK, gin.H{
		"message":    "Booking cancelled successfully",
		"booking_id": booking.ID,
	})
}

// processPayment records a simulated payment for the user's booking and
// completes it. The 20/80 split is computed server-side.
func processPayment(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var booking models.Booking
	if err := database.DB.Preload("Service").Preload("Worker").Preload("Payment").
		Where("id = ? AND user_id = ?", c.Param("id"), user.ID).
		First(&booking).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Booking not found",
			"message": "No booking with that id exists",
		})
		return
	}

	if booking.Payment != nil && booking.Payment.PaymentStatus == models.PaymentStatusSuccess {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Payment already processed for this booking",
			"message": "This booking has already been paid",
		})
		return
	}

	// Payment settles a job in progress; a successful payment on an
	// IN_PROGRESS booking is what completes it
	if booking.Status != models.BookingStatusInProgress && booking.Status != models.BookingStatusCompleted {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Cannot process payment for this booking status",
			"message": "Payment is only possible once the job is in progress",
		})
		return
	}

	var req struct {
		PaymentMethod string `json:"payment_method"`
		TransactionID string `json:"transaction_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	method := req.PaymentMethod
	if method == "" {
		method = string(models.PaymentMethodCard)
	}
	if !models.ValidPaymentMethod(method) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid payment method",
			"message": "Unknown payment method",
		})
		return
	}

	transactionID := req.TransactionID
	if transactionID == "" {
		transactionID = services.NewTransactionID()
	}

	totalAmount := booking.Service.Price
	adminCommission, providerAmount := services.ComputeSplit(totalAmount)

	payment := models.Payment{
		BookingID:       booking.ID,
		TotalAmount:     totalAmount,
		AdminCommission: adminCommission,
		ProviderAmount:  providerAmount,
		PaymentStatus:   models.PaymentStatusSuccess,
		PaymentMethod:   models.PaymentMethod(method),
		TransactionID:   &transactionID,
	}

	if err := database.DB.Create(&payment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Payment failed",
			"message": "Failed to record payment",
		})
		return
	}

	if booking.Status == models.BookingStatusInProgress {
		if err := setBookingStatus(&booking, models.BookingStatusCompleted, nil); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Payment failed",
				"message": "Failed to complete booking",
			})
			return
		}
	}

	services.Notify(user.ID,
		"Payment Successful",
		fmt.Sprintf("Payment of %.2f processed successfully for booking #%d.", totalAmount, booking.ID),
		models.NotificationPayment)
	if booking.Worker != nil {
		services.Notify(booking.Worker.ID,
			fmt.Sprintf("Payment Received for Booking #%d", booking.ID),
			fmt.Sprintf("Payment of %.2f has been processed for your service.", providerAmount),
			models.NotificationPayment)
	}
	services.NotifyAdmins(
		fmt.Sprintf("Payment Received for Booking #%d", booking.ID),
		fmt.Sprintf("Payment of %.2f has been processed for booking #%d (%s). Admin commission: %.2f, Provider amount: %.2f.",
			totalAmount, booking.ID, booking.Service.Name, adminCommission, providerAmount),
		models.NotificationPayment)

	c.JSON(http.StatusOK, gin.H{
		"message":          "Payment processed successfully",
		"booking_id":       booking.ID,
		"total_amount":     fmt.Sprintf("%.2f", totalAmount),
		"admin_commission": fmt.Sprintf("%.2f", adminCommission),
		"provider_amount":  fmt.Sprintf("%.2f", providerAmount),
		"payment_status":   payment.PaymentStatus,
		"transaction_id":   transactionID,
		"booking_status":   booking.Status,
	})
}

// getPaymentDetails returns the payment recorded for the user's booking
func getPaymentDetails(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var booking models.Booking
	if err := database.DB.Preload("Payment").
		Where("id = ? AND user_id = ?", c.Param("id"), user.ID).
		First(&booking).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Booking not found",
			"message": "No booking with that id exists",
		})
		return
	}

	if booking.Payment == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "No payment found for this booking",
			"message": "This booking has not been paid yet",
		})
		return
	}

	response := paymentInfo(booking.Payment)
	response["booking_id"] = booking.ID
	c.JSON(http.StatusOK, response)
}

// respondToDelayed lets the user accept or cancel a pending delay suggestion
func respondToDelayed(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var booking models.Booking
	if err := database.DB.Preload("Service").Preload("Worker").
		Where("id = ? AND user_id = ?", c.Param("id"), user.ID).
		First(&booking).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Booking not found",
			"message": "No booking with that id exists",
		})
		return
	}

	if !booking.HasSuggestion() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "No delayed service suggestion found for this booking",
			"message": "There is no pending suggestion to respond to",
		})
		return
	}

	var req struct {
		Action string `json:"action" binding:"required,oneof=accept cancel"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid action. Must be either \"accept\" or \"cancel\"",
			"message": err.Error(),
		})
		return
	}

	switch req.Action {
	case "accept":
		if !models.CanTransition(booking.Status, models.BookingStatusAssigned) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   fmt.Sprintf("Cannot accept a new time from status %s", booking.Status),
				"message": "The booking is no longer waiting on a delay response",
			})
			return
		}

		booking.AcceptSuggestion()
		if err := database.DB.Save(&booking).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Update failed",
				"message": "Failed to apply the new schedule",
			})
			return
		}

		services.NotifyAdmins(
			"User Accepted New Service Time",
			fmt.Sprintf("User %s accepted the new date/time for booking #%d (%s). Updated to %s at %s.",
				user.Username, booking.ID, booking.Service.Name, booking.Date.Format(dateLayout), booking.TimeSlot),
			models.NotificationBookingStatus)
		if booking.Worker != nil {
			services.Notify(booking.Worker.ID,
				"Service Time Updated",
				fmt.Sprintf("The service time for booking #%d (%s) has been updated to %s at %s.",
					booking.ID, booking.Service.Name, booking.Date.Format(dateLayout), booking.TimeSlot),
				models.NotificationBookingStatus)
		}

		c.JSON(http.StatusOK, gin.H{
			"message":    "New date and time accepted successfully",
			"booking_id": booking.ID,
			"new_date":   booking.Date.Format(dateLayout),
			"new_time":   booking.TimeSlot,
		})

	case "cancel":
		if !models.CanTransition(booking.Status, models.BookingStatusCancelled) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   fmt.Sprintf("Cannot cancel from status %s", booking.Status),
				"message": "The booking is no longer waiting on a delay response",
			})
			return
		}

		booking.ClearSuggestion()
		booking.Status = models.BookingStatusCancelled
		if err := database.DB.Save(&booking).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Update failed",
				"message": "Failed to cancel the booking",
			})
			return
		}

		services.NotifyAdmins(
			"User Cancelled Delayed Service",
			fmt.Sprintf("User %s cancelled the delayed service for booking #%d (%s).", user.Username, booking.ID, booking.Service.Name),
			models.NotificationBookingStatus)
		if booking.Worker != nil {
			services.Notify(booking.Worker.ID,
				"Service Cancelled",
				fmt.Sprintf("The service for booking #%d (%s) has been cancelled by the user.", booking.ID, booking.Service.Name),
				models.NotificationBookingStatus)
		}

		c.JSON(http.StatusOK, gin.H{
			"message":    "Service cancelled successfully",
			"booking_id": booking.ID,
		})
	}
}
