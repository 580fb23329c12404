package migrations

import (
	"log"
	"time"

	"food_ordering/internal/models"
	"food_ordering/internal/repository"
	"food_ordering/internal/services"

	"gorm.io/gorm"
)

// RunMigrations creates the schema and seeds default data.
func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderLine{},
	)
	if err != nil {
		return err
	}

	if err := createDefaultData(db); err != nil {
		log.Printf("Warning: Failed to create default data: %v", err)
	}

	log.Println("Database migrations completed successfully!")
	return nil
}

// createDefaultData creates the default admin account and a starter menu.
func createDefaultData(db *gorm.DB) error {
	log.Println("Creating default data...")

	userRepo := repository.NewUserRepository(db)
	userService := services.NewUserService(userRepo, "unused-seed-secret", time.Hour)

	// Check if admin already exists
	if existing, err := userRepo.GetByUsername("admin"); err == nil && existing != nil {
		log.Println("Admin user already exists")
		return nil
	}

	log.Println("Creating admin user...")
	admin, err := userService.Register("admin", "admin@foodcourt.local", "99999999", "admin123")
	if err != nil {
		log.Printf("Warning: Failed to create admin user: %v", err)
	} else {
		admin.Role = string(models.RoleAdmin)
		admin.Status = string(models.UserApproved)
		if err := userRepo.Update(admin); err != nil {
			log.Printf("Warning: Failed to promote admin user: %v", err)
		} else {
			log.Println("Admin user created successfully")
			log.Println("Username: admin")
			log.Println("Password: admin123")
		}
	}

	log.Println("Creating starter menu...")
	menuRepo := repository.NewMenuRepository(db)
	starterMenu := []models.MenuItem{
		{Name: "Plain Naan", Price: 3.50, Stock: 40, Category: "Breads", Enabled: true},
		{Name: "Garlic Naan", Price: 4.00, Stock: 40, Category: "Breads", Enabled: true},
		{Name: "Butter Chicken", Price: 12.50, Stock: 25, Category: "Curries", Enabled: true},
		{Name: "Chana Masala", Price: 9.00, Stock: 25, Category: "Curries", Enabled: true},
		{Name: "Steamed Rice", Price: 3.00, Stock: models.UnlimitedStock, Category: "Rice", Enabled: true},
		{Name: "Mango Chutney", Price: 1.50, Stock: models.UnlimitedStock, Category: "Condiments", Enabled: true},
	}
	for i := range starterMenu {
		if err := menuRepo.Create(&starterMenu[i]); err != nil {
			log.Printf("Warning: Failed to seed menu item %q: %v", starterMenu[i].Name, err)
		}
	}

	log.Println("Default data created successfully!")
	return nil
}
