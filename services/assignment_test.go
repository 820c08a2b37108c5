package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"home-service-server/models"
)

func worker(username string, approved bool, serviceNames ...string) models.User {
	services := make([]models.Service, 0, len(serviceNames))
	for i, name := range serviceNames {
		services = append(services, models.Service{ID: uint(i + 1), Name: name})
	}
	return models.User{
		Username:   username,
		Role:       models.RoleWorker,
		IsApproved: approved,
		Services:   services,
	}
}

func TestFilterEligibleWorkers(t *testing.T) {
	workers := []models.User{
		worker("w1", true, "Plumbing Service", "Electrical Repair"),
		worker("w2", true, "Home Deep Cleaning"),
		worker("w3", false, "Plumbing Service"), // not approved
		{Username: "u1", Role: models.RoleUser}, // not a worker
	}

	eligible := FilterEligibleWorkers(workers, "Plumbing Service")
	assert.Len(t, eligible, 1)
	assert.Equal(t, "w1", eligible[0].Username)
}

func TestFilterEligibleWorkersNoMatch(t *testing.T) {
	workers := []models.User{
		worker("w1", true, "Home Deep Cleaning"),
	}

	assert.Empty(t, FilterEligibleWorkers(workers, "Wall Painting"))
	assert.Empty(t, FilterEligibleWorkers(nil, "Wall Painting"))
}

func TestFilterEligibleWorkersMatchesByName(t *testing.T) {
	// Eligibility keys on the service name, so a worker attached to any
	// service with the same name qualifies for all of them
	w := models.User{
		Username:   "w1",
		Role:       models.RoleWorker,
		IsApproved: true,
		Services:   []models.Service{{ID: 7, Name: "Plumbing Service"}},
	}

	eligible := FilterEligibleWorkers([]models.User{w}, "Plumbing Service")
	assert.Len(t, eligible, 1)
}
