package services

import (
	"context"
	"testing"
	"time"

	"github.com/wicaksana/reportportal/internal/config"
)

func TestSyncQueue_Enqueue(t *testing.T) {
	queue := NewSyncQueue()

	done := make(chan *AnalysisTask, 1)
	queue.SetProcessor(func(ctx context.Context, task *AnalysisTask) error {
		done <- task
		return nil
	})

	if queue.IsAsync() {
		t.Error("sync queue should report IsAsync() == false")
	}

	if err := queue.Enqueue(&AnalysisTask{ProjectID: 7, Username: "user"}); err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}

	select {
	case task := <-done:
		if task.ProjectID != 7 || task.Username != "user" {
			t.Errorf("processor received %+v", task)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("processor was not invoked")
	}
}

func TestSyncQueue_NoProcessor(t *testing.T) {
	queue := NewSyncQueue()
	// without a processor the task is dropped, not an error
	if err := queue.Enqueue(&AnalysisTask{ProjectID: 1}); err != nil {
		t.Errorf("Enqueue() without processor error = %v", err)
	}
	if err := queue.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestNewWorker_DisabledRedis(t *testing.T) {
	w := NewWorker(&config.RedisConfig{Enabled: false})
	if w != nil {
		t.Error("worker should be nil when redis is disabled")
	}
}
