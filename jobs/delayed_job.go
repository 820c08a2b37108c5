package jobs

import (
	"fmt"
	"log"
	"strings"
	"time"

	"home-service-server/database"
	"home-service-server/models"
	"home-service-server/services"
)

const (
	// DelayGracePeriod is how long past the slot start a booking may sit
	// without progress before it is flagged as delayed
	DelayGracePeriod = 15 * time.Minute

	checkInterval = 1 * time.Minute
)

// DelayedBookingJob periodically flags overdue bookings as DELAYED and
// purges expired OTP codes
type DelayedBookingJob struct {
	stopChan chan struct{}
	running  bool
}

// NewDelayedBookingJob creates a new delayed booking job
func NewDelayedBookingJob() *DelayedBookingJob {
	return &DelayedBookingJob{
		stopChan: make(chan struct{}),
	}
}

// Start begins the periodic sweep
func (j *DelayedBookingJob) Start() {
	if j.running {
		return
	}
	j.running = true

	log.Println("🕐 Starting delayed booking job (runs every 1 minute)")

	go func() {
		ticker := time.NewTicker(checkInterval)
		defer ticker.Stop()

		// Run once on boot to catch bookings missed during downtime
		j.sweep()

		for {
			select {
			case <-ticker.C:
				j.sweep()
			case <-j.stopChan:
				log.Println("🛑 Delayed booking job stopped")
				return
			}
		}
	}()
}

// Stop halts the periodic sweep
func (j *DelayedBookingJob) Stop() {
	if !j.running {
		return
	}
	j.running = false
	close(j.stopChan)
}

func (j *DelayedBookingJob) sweep() {
	j.markOverdueBookings()

	if err := services.PurgeExpiredOTPs(); err != nil {
		log.Printf("❌ Failed to purge expired OTPs: %v", err)
	}
}

// markOverdueBookings flags ASSIGNED and CONFIRMED bookings whose slot
// started more than the grace period ago
func (j *DelayedBookingJob) markOverdueBookings() {
	now := time.Now()

	var bookings []models.Booking
	err := database.DB.Preload("Service").Preload("User").
		Where("status IN ? AND date <= ?",
			[]models.BookingStatus{models.BookingStatusAssigned, models.BookingStatusConfirmed},
			now.Format("2006-01-02")).
		Find(&bookings).Error
	if err != nil {
		log.Printf("❌ Failed to load bookings for delay check: %v", err)
		return
	}

	for i := range bookings {
		booking := &bookings[i]

		slotStart, err := SlotStartTime(booking.Date, booking.TimeSlot)
		if err != nil {
			continue
		}

		if now.Before(slotStart.Add(DelayGracePeriod)) {
			continue
		}

		if !models.CanTransition(booking.Status, models.BookingStatusDelayed) {
			continue
		}

		if err := database.DB.Model(booking).
			Update("status", models.BookingStatusDelayed).Error; err != nil {
			log.Printf("❌ Failed to mark booking %d as delayed: %v", booking.ID, err)
			continue
		}

		log.Printf("⏰ Booking %d marked as DELAYED (slot started %s)", booking.ID, slotStart.Format(time.RFC3339))

		services.NotifyAdmins(
			"Booking Delayed",
			fmt.Sprintf("Booking #%d (%s) for %s passed its scheduled start time without progress and has been marked as delayed. Please suggest a new time.",
				booking.ID, booking.Service.Name, booking.User.Username),
			models.NotificationBookingStatus)
	}
}

// SlotStartTime combines a booking date with the start of its time slot.
// Slots look like "9:00 AM - 11:00 AM"; only the first part matters here.
func SlotStartTime(date time.Time, timeSlot string) (time.Time, error) {
	start := timeSlot
	if idx := strings.Index(timeSlot, "-"); idx >= 0 {
		start = timeSlot[:idx]
	}
	start = strings.TrimSpace(start)

	parsed, err := time.Parse("3:04 PM", start)
	if err != nil {
		return time.Time{}, fmt.Errorf("unparseable time slot %q: %w", timeSlot, err)
	}

	return time.Date(date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, time.Local), nil
}
