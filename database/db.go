package database

import (
	"fmt"
	"log"
	"os"
	"strings"

	"pos-backend/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func envDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func Connect() {
	// .env is optional outside local development.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded:", err)
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		envDefault("DB_HOST", "db"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		envDefault("DB_PORT", "5432"))

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Println(err)
		panic("Could not connect to database")
	}
}

// AutoMigrate migrates the public (cross-tenant) tables.
func AutoMigrate() {
	DB.AutoMigrate(&models.User{}, &models.Company{})
}

// TenantSession returns a fresh session with search_path pinned to the
// given tenant schema. Use GetTenantDB(c) inside request handlers; this
// is for out-of-request work such as seeding a freshly created tenant.
func TenantSession(schema string) (*gorm.DB, error) {
	schema = strings.TrimSpace(schema)
	if schema == "" {
		return nil, fmt.Errorf("empty schema name")
	}

	sess := DB.Session(&gorm.Session{NewDB: true})
	if err := sess.Exec(`SET search_path = "` + schema + `", public`).Error; err != nil {
		return nil, err
	}
	return sess, nil
}
