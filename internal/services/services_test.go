package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	model "teamops.com/teamops/internal/models"
	repository "teamops.com/teamops/internal/repositories"
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

type fixture struct {
	tasks       *repository.TaskRepository
	users       *repository.UserRepository
	lifecycle   *LifecycleService
	votes       *VoteService
	leaderboard *LeaderboardService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := setupTestDB(t)
	tasks := repository.NewTaskRepository(db)
	users := repository.NewUserRepository(db)

	return &fixture{
		tasks:       tasks,
		users:       users,
		lifecycle:   NewLifecycleService(tasks, users),
		votes:       NewVoteService(tasks),
		leaderboard: NewLeaderboardService(tasks, users),
	}
}

func (f *fixture) createUser(t *testing.T, username, fullName string, role model.Role) model.User {
	t.Helper()

	user := model.User{
		Username: username,
		FullName: fullName,
		Role:     role,
		Email:    username + "@example.com",
	}
	if err := f.users.Create(context.Background(), &user); err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

func identityOf(u model.User) model.Identity {
	return model.Identity{UserID: u.ID, FullName: u.FullName, Role: u.Role}
}

func (f *fixture) createTask(t *testing.T, creator model.User, assignees ...model.User) *model.Task {
	t.Helper()

	ids := make([]string, 0, len(assignees))
	for _, u := range assignees {
		ids = append(ids, u.ID)
	}

	task, err := f.lifecycle.CreateTask(context.Background(), identityOf(creator), CreateTaskInput{
		Title:       "Quarterly report",
		Description: "Prepare the quarterly report",
		AssignedTo:  ids,
		DueDate:     time.Now().UTC().Add(72 * time.Hour),
		Priority:    model.PriorityHigh,
	})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	return task
}
