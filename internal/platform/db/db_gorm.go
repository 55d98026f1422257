package db

import (
	"fmt"
	"log"
	"os"
	"time"

	gmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"account_backend/internal/feature/account/adapters"
	"account_backend/internal/feature/account/domain/entity"
)

// mysqlDSN builds the MySQL DSN from the environment, preferring a Cloud SQL
// unix socket when INSTANCE_CONNECTION_NAME is set.
func mysqlDSN() string {
	user := os.Getenv("DB_USER")
	pass := os.Getenv("DB_PASSWORD")
	name := os.Getenv("DB_NAME")

	if instance := os.Getenv("INSTANCE_CONNECTION_NAME"); instance != "" {
		return fmt.Sprintf("%s:%s@unix(/cloudsql/%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
			user, pass, instance, name)
	}
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
		user, pass, host, port, name)
}

// postgresDSN builds the Postgres DSN from the environment.
func postgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		os.Getenv("DB_HOST"), os.Getenv("DB_PORT"), os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"), os.Getenv("DB_NAME"))
}

// dialector picks the gorm driver from DB_DRIVER.
// Supported values: "mysql" (default), "postgres", "sqlite".
func dialector() gorm.Dialector {
	switch os.Getenv("DB_DRIVER") {
	case "postgres":
		return postgres.Open(postgresDSN())
	case "sqlite":
		name := os.Getenv("DB_NAME")
		if name == "" {
			name = "users.db"
		}
		return sqlite.Open(name)
	default:
		return gmysql.Open(mysqlDSN())
	}
}

func OpenDB() *gorm.DB {
	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = gorm.Open(dialector(), &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		// マイグレーション（User, Session）
		if err := db.AutoMigrate(
			&entity.User{},
			&adapters.SessionModel{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
