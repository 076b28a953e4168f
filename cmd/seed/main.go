package main

import (
	"fmt"
	"log"
	"os"

	"clubfloor/internal/database"
	"clubfloor/internal/domain"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "file:clubfloor.db?cache=shared"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM orders")
	db.Exec("DELETE FROM session_guests")
	db.Exec("DELETE FROM sessions")
	db.Exec("DELETE FROM reservations")
	db.Exec("DELETE FROM menu_items")
	db.Exec("DELETE FROM casts")
	db.Exec("DELETE FROM guests")
	db.Exec("DELETE FROM tables")
	db.Exec("DELETE FROM bill_settings")
	db.Exec("DELETE FROM pricing_policies")
	db.Exec("DELETE FROM users")
	db.Exec("DELETE FROM venues")

	// ================== VENUE ==================
	log.Println("Creating venue...")
	venue := domain.Venue{
		Name:    "Club Aria",
		Address: "Namba 3-chome, Osaka",
		Phone:   "+81 6-1234-5678",
	}
	db.Create(&venue)

	// ================== STAFF ==================
	log.Println("Creating staff accounts...")
	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		VenueID:      venue.ID,
		Email:        "admin@clubaria.jp",
		PasswordHash: string(adminHash),
		Name:         "Manager",
		Role:         domain.RoleAdmin,
	}
	db.Create(&admin)
	log.Println("Admin created: admin@clubaria.jp / admin123")

	staffHash, _ := bcrypt.GenerateFromPassword([]byte("staff123"), bcrypt.DefaultCost)
	staff := domain.User{
		VenueID:      venue.ID,
		Email:        "floor@clubaria.jp",
		PasswordHash: string(staffHash),
		Name:         "Floor Staff",
		Role:         domain.RoleStaff,
	}
	db.Create(&staff)
	log.Println("Staff created: floor@clubaria.jp / staff123")

	// ================== PRICING ==================
	log.Println("Creating pricing policy and bill settings...")
	policy := domain.PricingPolicy{
		VenueID:           venue.ID,
		Name:              "Standard",
		TableFee:          5000,
		TableSetMinutes:   60,
		ExtensionFee:      1000,
		ExtensionMinutes:  15,
		NominationFee:     3000,
		NominationMinutes: 60,
		CompanionFee:      2000,
		CompanionMinutes:  30,
		EscortFee:         1500,
		EscortMinutes:     30,
		IsDefault:         true,
	}
	db.Create(&policy)

	settings := domain.BillSettings{
		VenueID:           venue.ID,
		ServiceChargeRate: 0.10,
		TaxRate:           0.10,
		RoundingEnabled:   true,
		RoundingUnit:      100,
		RoundingMode:      domain.RoundUp,
	}
	db.Create(&settings)

	// ================== TABLES ==================
	log.Println("Creating tables...")
	for i := 1; i <= 8; i++ {
		capacity := 4
		if i > 6 {
			capacity = 8 // VIP booths
		}
		db.Create(&domain.Table{
			VenueID:  venue.ID,
			Name:     fmt.Sprintf("T%d", i),
			Capacity: capacity,
		})
	}

	// ================== CASTS ==================
	log.Println("Creating casts...")
	for _, name := range []string{"Rina", "Yua", "Miyu", "Airi", "Karen", "Nana"} {
		db.Create(&domain.Cast{
			VenueID: venue.ID,
			Name:    name,
			Active:  true,
		})
	}

	// ================== GUESTS ==================
	log.Println("Creating guest profiles...")
	guests := []domain.Guest{
		{VenueID: venue.ID, Name: "Tanaka", Phone: "+81 90-1111-2222", Notes: "Prefers booth seating"},
		{VenueID: venue.ID, Name: "Suzuki", Phone: "+81 90-3333-4444"},
		{VenueID: venue.ID, Name: "Watanabe", Phone: "+81 90-5555-6666", Notes: "Bottle keep: Yamazaki 12"},
	}
	for i := range guests {
		db.Create(&guests[i])
	}

	// ================== MENU ==================
	log.Println("Creating menu items...")
	menu := []domain.MenuItem{
		{VenueID: venue.ID, Name: "Beer", Price: 1000, Category: "drink", Available: true},
		{VenueID: venue.ID, Name: "Shochu bottle", Price: 8000, Category: "bottle", Available: true},
		{VenueID: venue.ID, Name: "Champagne", Price: 30000, Category: "bottle", Available: true},
		{VenueID: venue.ID, Name: "Cast drink", Price: 1500, Category: "drink", Available: true},
		{VenueID: venue.ID, Name: "Fruit platter", Price: 3000, Category: "food", Available: true},
		{VenueID: venue.ID, Name: "Karaoke", Price: 500, Category: "service", Available: true},
	}
	for i := range menu {
		db.Create(&menu[i])
	}

	log.Println("Seed complete.")
}
