package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/wicaksana/reportportal/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter int64

// setupTestDB opens a fresh in-memory database with the schema applied.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	n := atomic.AddInt64(&testDBCounter, 1)
	dsn := fmt.Sprintf("file:services_test_%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// setupSeededDB is setupTestDB plus the default account and sample projects.
func setupSeededDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := setupTestDB(t)
	if err := models.SeedData(db); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return db
}
