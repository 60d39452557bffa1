package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	apperrors "teamops.com/teamops/internal/errors"
	model "teamops.com/teamops/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&model.Task{}, &model.User{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	return db
}

func newTask() *model.Task {
	return &model.Task{
		Title:       "Budget review",
		Description: "Review the Q3 budget",
		AssignedTo:  []string{"u1", "u2"},
		CreatedBy:   "u1",
		DueDate:     time.Now().UTC().Add(24 * time.Hour),
		Priority:    model.PriorityMedium,
		Status:      model.StatusPending,
	}
}

func TestUpdateDetectsStaleVersion(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))
	ctx := context.Background()

	task := newTask()
	if err := repo.Create(ctx, task); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	copy1, err := repo.FindByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	copy2, err := repo.FindByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}

	copy1.Progress = 30
	if err := repo.Update(ctx, copy1); err != nil {
		t.Fatalf("first update failed: %v", err)
	}
	if copy1.Version != 2 {
		t.Errorf("expected version bump to 2, got %d", copy1.Version)
	}

	copy2.Progress = 60
	if err := repo.Update(ctx, copy2); !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("expected conflict for stale version, got %v", err)
	}

	final, err := repo.FindByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if final.Progress != 30 {
		t.Errorf("stale writer must not win, got progress %d", final.Progress)
	}
}

func TestUpdateRoundTripsEmbeddedCollections(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))
	ctx := context.Background()

	task := newTask()
	if err := repo.Create(ctx, task); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	task.Notes = append(task.Notes, model.Note{ID: "n1", Text: "first", AddedBy: "u1", AddedAt: time.Now().UTC()})
	task.Votes.Toggle(model.VoteRedo, "u2")
	if err := repo.Update(ctx, task); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	loaded, err := repo.FindByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if len(loaded.Notes) != 1 || loaded.Notes[0].Text != "first" {
		t.Errorf("notes did not survive the round trip: %+v", loaded.Notes)
	}
	if !loaded.Votes.Has(model.VoteRedo, "u2") {
		t.Error("votes did not survive the round trip")
	}
	if len(loaded.AssignedTo) != 2 {
		t.Errorf("assignees did not survive the round trip: %+v", loaded.AssignedTo)
	}
}

func TestDeleteDetectsStaleVersion(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))
	ctx := context.Background()

	task := newTask()
	if err := repo.Create(ctx, task); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	stale, err := repo.FindByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}

	task.Progress = 10
	if err := repo.Update(ctx, task); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if err := repo.Delete(ctx, stale); !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("expected conflict deleting with stale version, got %v", err)
	}

	if err := repo.Delete(ctx, task); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := repo.FindByID(ctx, task.ID); !errors.Is(err, apperrors.ErrTaskNotFound) {
		t.Errorf("expected not found after delete, got %v", err)
	}
}
