package main

import (
	"context"
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"shoplist/internal/config"
	"shoplist/internal/db"
	"shoplist/internal/model"
	"shoplist/internal/repository"
)

const (
	demoEmail    = "demo@shoplist.local"
	demoPassword = "demo-password"
)

// seedList pairs a list with the item names to create under it.
type seedList struct {
	name        string
	description string
	items       []string
}

var demoLists = []seedList{
	{
		name:        "Groceries",
		description: "Weekly grocery run",
		items:       []string{"Milk", "Eggs", "Bread", "Coffee"},
	},
	{
		name:        "Hardware store",
		description: "Shelf project",
		items:       []string{"Wood screws", "Sandpaper", "Wall anchors"},
	},
	{
		name:        "Birthday party",
		description: "",
		items:       []string{"Balloons", "Cake mix"},
	},
}

func main() {
	log.Println("Starting seed script...")

	// Load configuration
	cfg := config.Load()

	// Connect to database
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.ShoppingList{},
		&model.ShoppingListItem{},
		&model.RevokedToken{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	users := repository.NewUserRepository(gormDB)
	lists := repository.NewListRepository(gormDB)
	items := repository.NewItemRepository(gormDB)

	if _, err := users.FindByEmail(ctx, demoEmail); err == nil {
		log.Printf("Demo user %s already exists, nothing to do", demoEmail)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("Failed to look up demo user: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}

	user := &model.User{Email: demoEmail, PasswordHash: string(hash)}
	if err := users.Create(ctx, user); err != nil {
		log.Fatalf("Failed to create demo user: %v", err)
	}
	log.Printf("Created demo user %s (id=%d)", demoEmail, user.ID)

	created := 0
	for _, sl := range demoLists {
		list := &model.ShoppingList{
			Name:        sl.name,
			Description: sl.description,
			UserID:      user.ID,
		}
		if err := lists.Create(ctx, list); err != nil {
			log.Fatalf("Failed to create list %q: %v", sl.name, err)
		}
		for _, itemName := range sl.items {
			item := &model.ShoppingListItem{
				Name:           itemName,
				ShoppingListID: list.ID,
			}
			if err := items.Create(ctx, item); err != nil {
				log.Fatalf("Failed to create item %q: %v", itemName, err)
			}
			created++
		}
	}

	log.Printf("Seed completed: %d lists, %d items. Log in with %s / %s",
		len(demoLists), created, demoEmail, demoPassword)
}
