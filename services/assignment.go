package services

import (
	"home-service-server/database"
	"home-service-server/models"
)

// FilterEligibleWorkers returns the workers who may be assigned a booking
// for the named service: approved workers whose capability set contains the
// service name. Matching is by name, the same rule the admin screen has
// always applied.
func FilterEligibleWorkers(workers []models.User, serviceName string) []models.User {
	eligible := make([]models.User, 0)
	for _, w := range workers {
		if !w.IsWorker() || !w.IsApproved {
			continue
		}
		if w.CanProvide(serviceName) {
			eligible = append(eligible, w)
		}
	}
	return eligible
}

// ListEligibleWorkers loads all workers with their capability sets and
// filters them for the given service name.
func ListEligibleWorkers(serviceName string) ([]models.User, error) {
	var workers []models.User
	if err := database.DB.Preload("Services").
		Where("role = ?", models.RoleWorker).
		Find(&workers).Error; err != nil {
		return nil, err
	}
	return FilterEligibleWorkers(workers, serviceName), nil
}
