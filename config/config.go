package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pulizieapp/cleaning-planner/models"
)

// InitDB opens the database connection. MySQL when DB_HOST is set, otherwise
// a local sqlite file so the app runs with zero setup in development.
func InitDB() (*gorm.DB, error) {
	host := os.Getenv("DB_HOST")
	if host == "" {
		path := os.Getenv("SQLITE_PATH")
		if path == "" {
			path = "cleaning-planner.db"
		}
		return gorm.Open(sqlite.Open(path), &gorm.Config{})
	}

	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "3306"
	}
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		os.Getenv("DB_USER"), os.Getenv("DB_PASS"), host, port, os.Getenv("DB_NAME"))

	return gorm.Open(mysql.Open(dsn), &gorm.Config{})
}

// InitRedis connects to Redis for sessions and the calendar cache. Returns
// (nil, nil) when REDIS_ADDR is unset; callers fall back to in-memory stores.
func InitRedis() (*redis.Client, error) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil, nil
	}

	dbNum := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB %q: %w", v, err)
		}
		dbNum = n
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       dbNum,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// Migrate registers the assignments join table and runs AutoMigrate. Shared
// with the test suite, which runs it against in-memory sqlite.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.Order{}, "Employees", &models.Assignment{}); err != nil {
		return err
	}
	if err := db.SetupJoinTable(&models.Client{}, "Orders", &models.Assignment{}); err != nil {
		return err
	}
	return db.AutoMigrate(
		&models.Account{},
		&models.Client{},
		&models.Order{},
	)
}
