package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"shareit/internal/database"
	"shareit/internal/domain"
)

// Seeds a development database with a couple of users, items and bookings
// so the API has something to show right away.
func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "shareit.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// wipe in FK-safe order
	for _, table := range []string{"comments", "bookings", "items", "item_requests", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatal("cleanup failed:", err)
		}
	}

	alice := domain.User{Name: "Alice", Email: "alice@example.com"}
	bob := domain.User{Name: "Bob", Email: "bob@example.com"}
	for _, u := range []*domain.User{&alice, &bob} {
		if err := db.Create(u).Error; err != nil {
			log.Fatal("seed user failed:", err)
		}
	}

	drill := domain.Item{Name: "Drill", Description: "Cordless drill, two batteries", Available: true, OwnerID: alice.ID}
	ladder := domain.Item{Name: "Ladder", Description: "3m aluminium ladder", Available: true, OwnerID: alice.ID}
	tent := domain.Item{Name: "Tent", Description: "2-person hiking tent", Available: false, OwnerID: bob.ID}
	for _, i := range []*domain.Item{&drill, &ladder, &tent} {
		if err := db.Create(i).Error; err != nil {
			log.Fatal("seed item failed:", err)
		}
	}

	now := time.Now()
	past := domain.Booking{
		ItemID:   drill.ID,
		BookerID: bob.ID,
		Start:    now.AddDate(0, 0, -10),
		End:      now.AddDate(0, 0, -7),
		Status:   domain.BookingApproved,
	}
	upcoming := domain.Booking{
		ItemID:   ladder.ID,
		BookerID: bob.ID,
		Start:    now.AddDate(0, 0, 3),
		End:      now.AddDate(0, 0, 5),
		Status:   domain.BookingWaiting,
	}
	for _, b := range []*domain.Booking{&past, &upcoming} {
		if err := db.Create(b).Error; err != nil {
			log.Fatal("seed booking failed:", err)
		}
	}

	comment := domain.Comment{
		ItemID:   drill.ID,
		AuthorID: bob.ID,
		Text:     "Great drill, holds charge well",
		Created:  now,
	}
	if err := db.Create(&comment).Error; err != nil {
		log.Fatal("seed comment failed:", err)
	}

	log.Println("seed complete")
}
