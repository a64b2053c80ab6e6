package main

import (
	"context"
	"log"

	"gorm.io/gorm"

	"csemotors/internal/auth"
	"csemotors/internal/config"
	"csemotors/internal/db"
	"csemotors/internal/model"
	"csemotors/internal/repository"
)

// Seeds the database with the starter classifications, a few vehicles,
// and one admin account so the management views are reachable.
func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.Account{},
		&model.Classification{},
		&model.Vehicle{},
		&model.Review{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()

	classifications := seedClassifications(ctx, gormDB)
	seedVehicles(ctx, gormDB, classifications)
	seedAdmin(ctx, gormDB)

	log.Println("Seed complete")
}

func seedClassifications(ctx context.Context, gormDB *gorm.DB) map[string]uint {
	names := []string{"Custom", "Sedan", "SUV", "Truck", "Sport"}
	ids := make(map[string]uint, len(names))

	for _, name := range names {
		var classification model.Classification
		err := gormDB.WithContext(ctx).Where("name = ?", name).First(&classification).Error
		if err == gorm.ErrRecordNotFound {
			classification = model.Classification{Name: name}
			if err := gormDB.WithContext(ctx).Create(&classification).Error; err != nil {
				log.Fatalf("Failed to create classification %s: %v", name, err)
			}
			log.Printf("Created classification %s", name)
		} else if err != nil {
			log.Fatalf("Failed to check classification %s: %v", name, err)
		}
		ids[name] = classification.ID
	}
	return ids
}

func seedVehicles(ctx context.Context, gormDB *gorm.DB, classifications map[string]uint) {
	vehicles := []model.Vehicle{
		{
			ClassificationID: classifications["Custom"],
			Make:             "DMC", Model: "DeLorean", Year: 1981,
			Description: "Stainless steel body, gull-wing doors, occasional time travel.",
			Image:       "/images/vehicles/delorean.jpg", Thumbnail: "/images/vehicles/delorean-tn.jpg",
			Price: 65000, Miles: 12000, Color: "Silver",
		},
		{
			ClassificationID: classifications["SUV"],
			Make:             "Jeep", Model: "Wrangler", Year: 2019,
			Description: "Trail rated with removable doors and roof.",
			Image:       "/images/vehicles/wrangler.jpg", Thumbnail: "/images/vehicles/wrangler-tn.jpg",
			Price: 28045, Miles: 41205, Color: "Yellow",
		},
		{
			ClassificationID: classifications["Truck"],
			Make:             "Ford", Model: "Model T", Year: 1927,
			Description: "A true classic, still runs.",
			Image:       "/images/vehicles/model-t.jpg", Thumbnail: "/images/vehicles/model-t-tn.jpg",
			Price: 30000, Miles: 26357, Color: "Black",
		},
	}

	for _, vehicle := range vehicles {
		var existing model.Vehicle
		err := gormDB.WithContext(ctx).
			Where("make = ? AND model = ?", vehicle.Make, vehicle.Model).
			First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			if err := gormDB.WithContext(ctx).Create(&vehicle).Error; err != nil {
				log.Fatalf("Failed to create vehicle %s %s: %v", vehicle.Make, vehicle.Model, err)
			}
			log.Printf("Created vehicle %s %s", vehicle.Make, vehicle.Model)
		} else if err != nil {
			log.Fatalf("Failed to check vehicle %s %s: %v", vehicle.Make, vehicle.Model, err)
		}
	}
}

func seedAdmin(ctx context.Context, gormDB *gorm.DB) {
	accounts := repository.NewAccountRepository(gormDB)

	const adminEmail = "admin@csemotors.local"
	if _, err := accounts.FindByEmail(ctx, adminEmail); err == nil {
		log.Println("Admin account already present")
		return
	} else if err != gorm.ErrRecordNotFound {
		log.Fatalf("Failed to check admin account: %v", err)
	}

	hash, err := auth.HashPassword("ChangeMe!Now2024")
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	admin := &model.Account{
		FirstName:    "Site",
		LastName:     "Admin",
		Email:        adminEmail,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}
	if err := accounts.Create(ctx, admin); err != nil {
		log.Fatalf("Failed to create admin account: %v", err)
	}
	log.Printf("Created admin account %s", adminEmail)
}
