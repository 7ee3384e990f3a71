package database

import (
	"fmt"
	"log"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"tutorku_backend/internals/configs"
)

var DB *gorm.DB

// ConnectDB opens the shared GORM handle. DB_DRIVER=sqlite selects the
// embedded file database (demo / single-host deployments); anything else
// means Postgres.
func ConnectDB() {
	var (
		db  *gorm.DB
		err error
	)

	if configs.GetEnv("DB_DRIVER", "postgres") == "sqlite" {
		path := configs.GetEnv("SQLITE_PATH", "./school.db")
		db, err = gorm.Open(sqlite.Open(path), &gorm.Config{
			Logger: configs.NewGormLogger(),
		})
		if err != nil {
			log.Fatalf("❌ Failed to open sqlite database: %v", err)
		}
		log.Println("✅ SQLite database connected:", path)
	} else {
		dsn := fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
			configs.GetEnv("DB_USER"),
			configs.GetEnv("DB_PASSWORD"),
			configs.GetEnv("DB_HOST"),
			configs.GetEnv("DB_PORT", "5432"),
			configs.GetEnv("DB_NAME"),
			configs.GetEnv("DB_SSLMODE", "require"),
		)

		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true, // avoid prepared-statement cache on poolers
		}), &gorm.Config{
			Logger: configs.NewGormLogger(),
		})
		if err != nil {
			log.Fatalf("❌ Failed to connect to Postgres: %v", err)
		}
		log.Println("✅ Postgres database connected")
	}

	DB = db
}

// TunePool keeps the pool small; every handler is a short read-then-write.
func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Println("[ERROR] getting sql.DB for pool tuning:", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
}
