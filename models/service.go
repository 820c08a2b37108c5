package models

import (
	"time"

	"github.com/lib/pq"
)

// ServiceCategory represents the category of a catalog service
type ServiceCategory string

const (
	CategoryCleaning    ServiceCategory = "CLEANING"
	CategoryElectrician ServiceCategory = "ELECTRICIAN"
	CategoryPlumbing    ServiceCategory = "PLUMBING"
	CategoryCarpentry   ServiceCategory = "CARPENTRY"
	CategoryPainting    ServiceCategory = "PAINTING"
	CategoryOther       ServiceCategory = "OTHER"
)

// Service represents a bookable service in the catalog
type Service struct {
	ID                uint            `json:"id" gorm:"primaryKey"`
	Name              string          `json:"name" gorm:"size:100;not null"`
	Description       string          `json:"description" gorm:"type:text"`
	Price             float64         `json:"price" gorm:"type:decimal(10,2);not null"`
	EstimatedDuration string          `json:"estimated_duration" gorm:"size:50"` // e.g. "1 hour", "2-3 hours"
	Category          ServiceCategory `json:"category" gorm:"type:varchar(20);not null;default:'OTHER'"`
	IncludedItems     pq.StringArray  `json:"included_items" gorm:"type:text[]"` // items included in the service
	CreatedAt         time.Time       `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for the Service model
func (Service) TableName() string {
	return "services"
}

// ServiceCreateRequest represents the request structure for creating a service
type ServiceCreateRequest struct {
	Name              string   `json:"name" binding:"required"`
	Description       string   `json:"description" binding:"required"`
	Price             float64  `json:"price" binding:"required,gt=0"`
	EstimatedDuration string   `json:"estimated_duration" binding:"required"`
	Category          string   `json:"category"`
	IncludedItems     []string `json:"included_items"`
}

// ServiceResponse represents the response structure for catalog services
type ServiceResponse struct {
	ID                uint            `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Price             float64         `json:"price"`
	EstimatedDuration string          `json:"estimated_duration"`
	Category          ServiceCategory `json:"category"`
	IncludedItems     []string        `json:"included_items"`
	AverageRating     float64         `json:"average_rating"`
}

// ValidCategory checks whether the given category name is a known one
func ValidCategory(category string) bool {
	switch ServiceCategory(category) {
	case CategoryCleaning, CategoryElectrician, CategoryPlumbing,
		CategoryCarpentry, CategoryPainting, CategoryOther:
		return true
	default:
		return false
	}
}
