package models

import (
	"fmt"

	"github.com/wicaksana/reportportal/internal/config"
	"github.com/wicaksana/reportportal/internal/utils"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func InitDB(cfg *config.DatabaseConfig) error {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}

	DB = db
	return nil
}

// Migrate applies the schema to the given connection. Tests pass their
// own in-memory database here.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Project{},
		&Issue{},
		&SystemLog{},
	)
}

func AutoMigrate() error {
	return Migrate(DB)
}

func GetDB() *gorm.DB {
	return DB
}

// SeedDefaultData populates the default account and sample projects
// when the database is empty.
func SeedDefaultData() error {
	return SeedData(DB)
}

func SeedData(db *gorm.DB) error {
	var userCount int64
	db.Model(&User{}).Count(&userCount)
	if userCount == 0 {
		hash, err := utils.HashPassword("123")
		if err != nil {
			return err
		}
		if err := db.Create(&User{Username: "user", Password: hash, Role: "user"}).Error; err != nil {
			return err
		}
	}

	var projectCount int64
	db.Model(&Project{}).Count(&projectCount)
	if projectCount > 0 {
		return nil
	}

	correction1 := "Rolled back authentication library version"
	closed1 := "2023-10-26"
	correction2 := "Added responsive padding css"
	correction3 := "Added distinct clause to query"
	closed3 := "2023-11-02"

	seed := []Project{
		{
			Name:      "E-Commerce Mobile App Revamp",
			Owner:     "user",
			Category:  CategoryPMO,
			Status:    ProjectStatusProgress,
			Progress:  65,
			StartDate: "2023-10-20",
			Issues: []Issue{
				{
					Date:           "2023-10-25",
					CaseNumber:     "TC-001",
					TestCase:       "Login Functionality",
					Description:    "Login page crashes on iOS 14 devices",
					ActualResult:   "App crashes immediately upon clicking login button",
					ExpectedResult: "User should be redirected to dashboard",
					Correction:     &correction1,
					Status:         IssueStatusClosed,
					DateClosed:     &closed1,
				},
				{
					Date:           "2023-10-26",
					CaseNumber:     "TC-045",
					TestCase:       "Checkout UI",
					Description:    "Checkout button misaligned on small screens",
					ActualResult:   "Button overlaps with footer",
					ExpectedResult: "Button should be floating above footer",
					Correction:     &correction2,
					Status:         IssueStatusInProgress,
				},
				{
					Date:           "2023-10-27",
					CaseNumber:     "TC-088",
					TestCase:       "API Load Test",
					Description:    "API timeout during high load",
					ActualResult:   "504 Gateway Timeout after 30s",
					ExpectedResult: "Response within 200ms",
					Status:         IssueStatusOpen,
				},
			},
		},
		{
			Name:      "Internal HR Portal v2",
			Owner:     "user",
			Category:  CategorySDA,
			Status:    ProjectStatusPengujianDone,
			Progress:  90,
			StartDate: "2023-11-01",
			Issues: []Issue{
				{
					Date:           "2023-11-01",
					CaseNumber:     "TC-102",
					TestCase:       "Employee Search",
					Description:    "Employee search returns duplicate results",
					ActualResult:   "Search for \"John\" returns 2 identical records",
					ExpectedResult: "Should return unique records only",
					Correction:     &correction3,
					Status:         IssueStatusClosed,
					DateClosed:     &closed3,
				},
				{
					Date:           "2023-11-05",
					CaseNumber:     "TC-205",
					TestCase:       "Email Notifications",
					Description:    "Leave request notification email not sending",
					ActualResult:   "No email received in inbox",
					ExpectedResult: "Email received within 1 minute",
					Status:         IssueStatusOpen,
				},
			},
		},
		{
			Name:      "Legacy System Migration",
			Owner:     "user",
			Category:  CategoryPMO,
			Status:    ProjectStatusHold,
			Progress:  45,
			StartDate: "2023-09-15",
		},
		{
			Name:      "API Gateway Upgrade",
			Owner:     "user",
			Category:  CategorySDA,
			Status:    ProjectStatusProjectDone,
			Progress:  100,
			StartDate: "2025-07-28",
		},
	}

	for i := range seed {
		if err := db.Create(&seed[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
