package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/rentora/rentora-backend/internal/adapters/database"
	"github.com/rentora/rentora-backend/internal/domain/entities"
	"github.com/rentora/rentora-backend/internal/infrastructure/clients/postgres"
	"github.com/rentora/rentora-backend/pkg/config"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()

	// Run from the repo root: go run scripts/seed.go
	schema, err := os.ReadFile("migrations/001_initial_schema.sql")
	if err != nil {
		log.Fatalf("Failed to read migration file: %v", err)
	}
	if _, err := pgClient.DB().ExecContext(ctx, string(schema)); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}
	log.Println("Schema ensured")

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				bookings,
				reviews,
				properties,
				users
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	userRepo := database.NewUserAdapter(pgClient)
	propertyRepo := database.NewPropertyAdapter(pgClient)
	bookingRepo := database.NewBookingAdapter(pgClient)
	reviewRepo := database.NewReviewAdapter(pgClient)

	now := time.Now().UTC()

	hash := func(password string) string {
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		return string(h)
	}

	// 1. Seed accounts: one owner with an active plan, one tenant

	owner := entities.User{
		ID:                 uuid.New().String(),
		Name:               "Priya Sharma",
		Username:           "priya",
		Email:              "priya.sharma@rentora.example",
		Phone:              "+91 98200 11001",
		Location:           "Mumbai",
		Role:               entities.RoleOwner,
		ActivePlan:         entities.PlanStandard,
		IsFirstMonth:       true,
		SubscriptionStatus: entities.SubscriptionFreeTrial,
		PasswordHash:       hash("owner-demo-password"),
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	tenant := entities.User{
		ID:           uuid.New().String(),
		Name:         "Arjun Mehta",
		Username:     "arjun",
		Email:        "arjun.mehta@rentora.example",
		Phone:        "+91 98200 22002",
		Location:     "Bangalore",
		Role:         entities.RoleUser,
		ActivePlan:   entities.PlanSimple,
		IsFirstMonth: true,
		PasswordHash: hash("tenant-demo-password"),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	for _, u := range []entities.User{owner, tenant} {
		if err := userRepo.Create(ctx, &u); err != nil {
			log.Printf("Failed to create user %s: %v", u.Email, err)
		}
	}

	// 2. Seed a couple of owner-listed properties alongside the built-in
	// catalog

	properties := []entities.Property{
		{
			ID:           uuid.New().String(),
			Name:         "Bandra West Loft",
			Description:  "Sunlit two-bedroom loft a short walk from Carter Road.",
			City:         "Mumbai",
			Location:     "Bandra West",
			Price:        110000,
			Bedrooms:     2,
			Bathrooms:    2,
			AreaSqFt:     1150,
			PropertyType: entities.PropertyTypeApartment,
			Amenities:    []string{"AC", "WiFi", "Parking", "Gym"},
			Images:       []string{"https://images.rentora.example/bandra-loft-1.jpg"},
			Owner: entities.Owner{
				Name:  owner.Name,
				Email: owner.Email,
				Phone: owner.Phone,
			},
			Rating:        4.6,
			ReviewCount:   12,
			IsPremium:     true,
			AvailableFrom: now,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			ID:           uuid.New().String(),
			Name:         "Whitefield Row House",
			Description:  "Quiet three-bedroom row house near the tech corridor.",
			City:         "Bangalore",
			Location:     "Whitefield",
			Price:        72000,
			Bedrooms:     3,
			Bathrooms:    3,
			AreaSqFt:     1680,
			PropertyType: entities.PropertyTypeHouse,
			Amenities:    []string{"WiFi", "Parking", "Garden"},
			Images:       []string{"https://images.rentora.example/whitefield-row-1.jpg"},
			Owner: entities.Owner{
				Name:  owner.Name,
				Email: owner.Email,
				Phone: owner.Phone,
			},
			Rating:        4.3,
			ReviewCount:   7,
			AvailableFrom: now.AddDate(0, 1, 0),
			CreatedAt:     now,
			UpdatedAt:     now,
		},
	}

	for _, p := range properties {
		if err := propertyRepo.Upsert(ctx, &p); err != nil {
			log.Printf("Failed to create property %s: %v", p.Name, err)
		}
	}

	// 3. Seed a pending booking from the tenant

	total := 3 * properties[0].Price
	booking := entities.Booking{
		ID:         uuid.New().String(),
		PropertyID: properties[0].ID,
		UserID:     tenant.ID,
		CheckIn:    now.AddDate(0, 0, 14),
		CheckOut:   now.AddDate(0, 0, 17),
		Phone:      tenant.Phone,
		IsWhatsApp: true,
		Notes:      "Arriving late evening",
		Status:     entities.BookingStatusPending,
		TotalPrice: &total,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := bookingRepo.Create(ctx, &booking); err != nil {
		log.Printf("Failed to create booking: %v", err)
	}

	// 4. Seed testimonials

	reviews := []entities.Review{
		{
			ID:        uuid.New().String(),
			UserName:  "Sneha Rao",
			Rating:    5,
			Text:      "Found a verified flat within a week. The owner chat made everything painless.",
			Location:  "Pune",
			CreatedAt: now.AddDate(0, 0, -20),
		},
		{
			ID:        uuid.New().String(),
			UserName:  "Vikram Nair",
			Rating:    4,
			Text:      "Listing quality is far better than the classifieds sites I tried before.",
			Location:  "Hyderabad",
			CreatedAt: now.AddDate(0, 0, -9),
		},
	}
	for _, r := range reviews {
		if err := reviewRepo.Create(ctx, &r); err != nil {
			log.Printf("Failed to create review by %s: %v", r.UserName, err)
		}
	}

	log.Println("Seeding complete")
	log.Printf("Owner login:  %s / owner-demo-password", owner.Email)
	log.Printf("Tenant login: %s / tenant-demo-password", tenant.Email)
}
