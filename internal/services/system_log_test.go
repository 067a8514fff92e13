package services

import (
	"testing"
	"time"

	"github.com/wicaksana/reportportal/internal/models"
)

func TestSystemLogList(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSystemLogService(db)

	userID := uint(1)
	entries := []models.SystemLog{
		{Level: "info", Module: "auth", Action: "login", Message: "user logged in", UserID: &userID},
		{Level: "warning", Module: "auth", Action: "login_failed", Message: "bad captcha"},
		{Level: "info", Module: "project", Action: "create", Message: "project created"},
	}
	for i := range entries {
		entries[i].CreatedAt = time.Now()
		if err := db.Create(&entries[i]).Error; err != nil {
			t.Fatalf("create log: %v", err)
		}
	}

	resp, err := svc.List(&SystemLogListRequest{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if resp.Total != 3 {
		t.Errorf("total = %d, expected 3", resp.Total)
	}

	resp, _ = svc.List(&SystemLogListRequest{Module: "auth"})
	if resp.Total != 2 {
		t.Errorf("auth filter total = %d, expected 2", resp.Total)
	}

	resp, _ = svc.List(&SystemLogListRequest{Level: "warning"})
	if resp.Total != 1 {
		t.Errorf("warning filter total = %d, expected 1", resp.Total)
	}

	resp, _ = svc.List(&SystemLogListRequest{Search: "captcha"})
	if resp.Total != 1 {
		t.Errorf("search total = %d, expected 1", resp.Total)
	}
}

func TestSystemLogCleanup(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSystemLogService(db)

	old := models.SystemLog{Level: "info", Module: "auth", Action: "login", Message: "stale"}
	old.CreatedAt = time.Now().AddDate(0, 0, -60)
	db.Create(&old)

	fresh := models.SystemLog{Level: "info", Module: "auth", Action: "login", Message: "fresh"}
	fresh.CreatedAt = time.Now()
	db.Create(&fresh)

	deleted, err := svc.CleanupOldLogs(30)
	if err != nil {
		t.Fatalf("CleanupOldLogs() error = %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, expected 1", deleted)
	}

	// retention <= 0 disables cleanup
	deleted, err = svc.CleanupOldLogs(0)
	if err != nil || deleted != 0 {
		t.Errorf("disabled cleanup returned %d, %v", deleted, err)
	}
}

func TestWriteLogHelpers(t *testing.T) {
	db := setupTestDB(t)
	InitSystemLogger(db)

	LogInfo("auth", "login", "ok", nil, "127.0.0.1", "go-test")
	LogWarning("auth", "login_failed", "bad captcha", nil, "127.0.0.1", "go-test")
	LogError("analysis", "generate", "provider down", nil, "", "")

	var count int64
	db.Model(&models.SystemLog{}).Count(&count)
	if count != 3 {
		t.Errorf("expected 3 log rows, got %d", count)
	}

	var warn models.SystemLog
	db.Where("level = ?", "warning").First(&warn)
	if warn.Action != "login_failed" {
		t.Errorf("warning action = %q", warn.Action)
	}
}
