package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Standalone dev helper: seeds a local SQLite database with demo users
// and listings so the front-end has something to browse.

type User struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"uniqueIndex;not null"`
	Name      string
	Photo     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type FoodItem struct {
	ID            uint `gorm:"primaryKey"`
	Name          string
	Price         float64
	Image         string
	Description   string
	Quantity      int
	PurchaseCount int
	Popularity    int
	AddedByEmail  string `gorm:"column:added_by_email"`
	AddedByName   string `gorm:"column:added_by_name"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func main() {
	dbPath := flag.String("db", "bitemanager.sqlite", "Path to the SQLite database")
	quantity := flag.Int("quantity", 20, "Initial stock for each demo listing")
	flag.Parse()

	db, err := gorm.Open(sqlite.Open(*dbPath), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := db.AutoMigrate(&User{}, &FoodItem{}); err != nil {
		log.Fatal("Failed to migrate schema:", err)
	}

	owner := User{Email: "demo@bitemanager.app", Name: "Demo Seller"}
	if err := db.Where("email = ?", owner.Email).FirstOrCreate(&owner).Error; err != nil {
		log.Fatal("Failed to create demo user:", err)
	}

	listings := []FoodItem{
		{Name: "Shakshuka", Price: 7.50, Description: "Eggs poached in spiced tomato sauce"},
		{Name: "Pad Thai", Price: 10.00, Description: "Rice noodles, tamarind, peanuts"},
		{Name: "Falafel Wrap", Price: 6.25, Description: "Crispy falafel, tahini, pickles"},
		{Name: "Beef Pho", Price: 11.50, Description: "Slow-simmered broth, rice noodles"},
	}
	for _, item := range listings {
		item.Quantity = *quantity
		item.AddedByEmail = owner.Email
		item.AddedByName = owner.Name
		if err := db.Where("name = ? AND added_by_email = ?", item.Name, owner.Email).
			FirstOrCreate(&item).Error; err != nil {
			log.Fatal("Failed to create demo listing:", err)
		}
	}

	fmt.Printf("Seeded %d demo listings for %s in %s\n", len(listings), owner.Email, *dbPath)
}
