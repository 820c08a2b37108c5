package models

import (
	"time"
)

type UserRole string

const (
	RoleUser   UserRole = "USER"
	RoleWorker UserRole = "WORKER"
	RoleAdmin  UserRole = "ADMIN"
)

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:150;uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"`
	PhoneNumber  string    `json:"phone_number" gorm:"size:15;not null"`
	Address      string    `json:"address" gorm:"type:text"`
	Specialty    *string   `json:"specialty" gorm:"size:100"`
	Role         UserRole  `json:"role" gorm:"type:varchar(10);not null;default:'USER';check:role IN ('USER','WORKER','ADMIN')"`
	IsApproved   bool      `json:"is_approved" gorm:"default:false"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Services []Service `json:"services,omitempty" gorm:"many2many:worker_services;"`
	Bookings []Booking `json:"bookings,omitempty" gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// IsValidRole checks if the user role is valid
func (u *User) IsValidRole() bool {
	switch u.Role {
	case RoleUser, RoleWorker, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsAdmin checks if the user is an admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsWorker checks if the user is a worker
func (u *User) IsWorker() bool {
	return u.Role == RoleWorker
}

// CanProvide reports whether the worker's capability set contains the named
// service. Matching is by service name, which is how the assignment screen
// has always filtered workers.
func (u *User) CanProvide(serviceName string) bool {
	for _, s := range u.Services {
		if s.Name == serviceName {
			return true
		}
	}
	return false
}
