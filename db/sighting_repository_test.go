package db

import (
	"testing"
	"time"

	"robot/models"
)

func TestRecordSightingNeverBlocksCaller(t *testing.T) {
	repo := NewSightingRepository()

	done := make(chan struct{})
	go func() {
		repo.RecordSighting(models.PersonRecord{
			Name: "Ana", LastRoom: "kitchen", ObservedAt: time.Now(),
		})
		repo.RecordSighting(models.PersonRecord{Name: "  "})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RecordSighting blocked the caller")
	}
}
