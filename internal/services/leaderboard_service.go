package services

import (
	"context"
	"sort"

	model "teamops.com/teamops/internal/models"
	repository "teamops.com/teamops/internal/repositories"
)

// LeaderboardService derives per-user completion counts from the task
// corpus on every call. Nothing is persisted.
type LeaderboardService struct {
	tasks *repository.TaskRepository
	users *repository.UserRepository
}

func NewLeaderboardService(tasks *repository.TaskRepository, users *repository.UserRepository) *LeaderboardService {
	return &LeaderboardService{tasks: tasks, users: users}
}

func (s *LeaderboardService) Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	// Every known user appears, so zero completions still rank.
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	tasks, err := s.tasks.ListByStatuses(ctx, model.StatusCompleted, model.StatusPending)
	if err != nil {
		return nil, err
	}

	entries := make([]model.LeaderboardEntry, 0, len(users))
	index := make(map[string]int, len(users))
	for i, u := range users {
		entries = append(entries, model.LeaderboardEntry{
			ID:       u.ID,
			FullName: u.FullName,
			Role:     u.Role,
		})
		index[u.ID] = i
	}

	for _, t := range tasks {
		if t.Status == model.StatusCompleted && t.CompletedBy != nil {
			if i, ok := index[*t.CompletedBy]; ok {
				entries[i].TasksCompleted++
			}
		}

		// Correction for tasks voted back to pending while still carrying
		// completion provenance. Vote resolution clears CompletedBy, so
		// this only fires on records reset by older code paths.
		if t.Status == model.StatusPending && t.Votes.Count(model.VoteRedo) >= voteThreshold && t.CompletedBy != nil {
			if i, ok := index[*t.CompletedBy]; ok && entries[i].TasksCompleted > 0 {
				entries[i].TasksCompleted--
			}
		}
	}

	// Descending by count; ties keep user creation order.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TasksCompleted > entries[j].TasksCompleted
	})

	return entries, nil
}
