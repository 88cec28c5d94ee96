package main

import (
	"log"
	"os"

	"go-topup-store/internal/model"
	"go-topup-store/pkg/database"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Resets an operator's password directly in the database. Intended for the
// locked-out-operator case; both values come from the environment so no
// credential ever lives in the source tree.
func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	email := os.Getenv("RESET_EMAIL")
	newPassword := os.Getenv("RESET_PASSWORD")
	if email == "" || newPassword == "" {
		log.Fatal("RESET_EMAIL and RESET_PASSWORD must be set")
	}

	// 2. Setup Database
	db := database.ConnectDB()

	// 3. Find Operator
	var user model.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		log.Fatalf("User %s not found in database: %v", email, err)
	}

	// 4. Hash new password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	// 5. Update
	if err := db.Model(&user).Update("password", string(hashedPassword)).Error; err != nil {
		log.Fatalf("Failed to update password in DB: %v", err)
	}

	log.Printf("Password for %s has been reset", email)
}
