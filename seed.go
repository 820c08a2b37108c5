package main

import (
	"log"

	"github.com/lib/pq"

	"home-service-server/config"
	"home-service-server/database"
	"home-service-server/models"
	"home-service-server/utils"
)

// seedData creates the initial admin account and a default service catalog
// on first boot. Both are no-ops once data exists.
func seedData() {
	seedAdmin()
	seedServices()
}

func seedAdmin() {
	admin := config.AppConfig.Admin
	if admin.Password == "" {
		log.Println("⚠️  ADMIN_PASSWORD not set, skipping admin seeding")
		return
	}

	var count int64
	database.DB.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count > 0 {
		return
	}

	hashedPassword, err := utils.HashPassword(admin.Password)
	if err != nil {
		log.Printf("❌ Failed to hash admin password: %v", err)
		return
	}

	user := models.User{
		Username:     admin.Username,
		Email:        admin.Email,
		PasswordHash: hashedPassword,
		Role:         models.RoleAdmin,
		IsApproved:   true,
	}

	if err := database.DB.Create(&user).Error; err != nil {
		log.Printf("❌ Failed to seed admin account: %v", err)
		return
	}

	log.Printf("✅ Seeded admin account %q", admin.Username)
}

func seedServices() {
	var count int64
	database.DB.Model(&models.Service{}).Count(&count)
	if count > 0 {
		return
	}

	defaults := []models.Service{
		{
			Name:              "Home Deep Cleaning",
			Description:       "Full home deep cleaning including kitchen, bathrooms and floors",
			Price:             120.00,
			EstimatedDuration: "3-4 hours",
			Category:          models.CategoryCleaning,
			IncludedItems:     pq.StringArray{"Kitchen cleaning", "Bathroom cleaning", "Floor mopping", "Dusting"},
		},
		{
			Name:              "Electrical Repair",
			Description:       "Diagnosis and repair of household electrical faults",
			Price:             80.00,
			EstimatedDuration: "1-2 hours",
			Category:          models.CategoryElectrician,
			IncludedItems:     pq.StringArray{"Fault diagnosis", "Switch and socket repair", "Wiring check"},
		},
		{
			Name:              "Plumbing Service",
			Description:       "Leak fixing, tap replacement and drain unclogging",
			Price:             75.00,
			EstimatedDuration: "1-2 hours",
			Category:          models.CategoryPlumbing,
			IncludedItems:     pq.StringArray{"Leak repair", "Tap replacement", "Drain cleaning"},
		},
		{
			Name:              "Furniture Assembly",
			Description:       "Assembly and repair of home furniture",
			Price:             60.00,
			EstimatedDuration: "1-3 hours",
			Category:          models.CategoryCarpentry,
			IncludedItems:     pq.StringArray{"Furniture assembly", "Hinge repair", "Minor carpentry"},
		},
		{
			Name:              "Wall Painting",
			Description:       "Interior wall painting, per room",
			Price:             150.00,
			EstimatedDuration: "4-6 hours",
			Category:          models.CategoryPainting,
			IncludedItems:     pq.StringArray{"Surface preparation", "Two coats of paint", "Cleanup"},
		},
	}

	if err := database.DB.Create(&defaults).Error; err != nil {
		log.Printf("❌ Failed to seed service catalog: %v", err)
		return
	}

	log.Printf("✅ Seeded %d catalog services", len(defaults))
}
