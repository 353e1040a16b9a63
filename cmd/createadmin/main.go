// Command createadmin seeds an administrator account so the first admin
// doesn't have to be promoted by hand in the database.
package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/careerlens/backend/config"
	"github.com/careerlens/backend/internal/database"
	"github.com/careerlens/backend/internal/service"
)

func main() {
	name := flag.String("name", "Admin", "display name for the admin user")
	email := flag.String("email", "", "email for the admin user (required)")
	password := flag.String("password", "", "password for the admin user (required)")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("both -email and -password are required")
	}

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Database error: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration error: %v", err)
	}

	auth := service.NewAuthService(db)
	user, err := auth.CreateAdmin(*name, *email, *password)
	if err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}
	log.Printf("Created admin user %d (%s)", user.ID, user.Email)
}
