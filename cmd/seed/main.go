package main

import (
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/sahilchouksey/academic-records-api/config"
	"github.com/sahilchouksey/academic-records-api/database"
	"gorm.io/gorm"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	// Make sure the target database exists before GORM connects to it
	if err := ensureDatabase(); err != nil {
		log.Fatalf("Failed to ensure database exists: %v", err)
	}

	// Initialize database connection using GORM
	store, err := database.StartGORM()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := store.Init(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	gormDB := store.GetDB().(*gorm.DB)

	// Run seeds
	separator := strings.Repeat("=", 60)
	fmt.Println(separator)
	fmt.Println("Academic Records - Database Seeding")
	fmt.Println(separator)
	fmt.Println()

	if err := database.RunSeeds(gormDB); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	fmt.Println()
	fmt.Println(separator)
	fmt.Println("🎉 Seeding completed successfully!")
	fmt.Println(separator)
	fmt.Println()
	fmt.Println("Admin user created from ADMIN_EMAIL and ADMIN_PASSWORD environment variables.")
	fmt.Println("If not set, admin user creation is skipped.")
	fmt.Println()
}

// ensureDatabase connects to the postgres maintenance database and creates
// the application database if it does not exist yet.
func ensureDatabase() error {
	env, err := config.Get()
	if err != nil {
		return err
	}
	if env.DB_NAME == "" {
		return fmt.Errorf("DB_NAME environment variable is not set")
	}

	connectStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=postgres sslmode=%s",
		env.DB_HOST, env.DB_PORT, env.DB_USER_NAME, env.DB_PASSWORD, env.DB_SSL_MODE,
	)

	db, err := sql.Open("postgres", connectStr)
	if err != nil {
		return err
	}
	defer db.Close()

	var exists bool
	err = db.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", env.DB_NAME).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	// CREATE DATABASE cannot take a bind parameter
	if _, err := db.Exec(fmt.Sprintf("CREATE DATABASE %q", env.DB_NAME)); err != nil {
		return err
	}

	log.Printf("Created database %s", env.DB_NAME)
	return nil
}
