package services

import (
	"context"
	"errors"

	"github.com/go-pkgz/lgr"

	apperrors "teamops.com/teamops/internal/errors"
	model "teamops.com/teamops/internal/models"
	repository "teamops.com/teamops/internal/repositories"
)

// voteThreshold is the number of distinct votes that triggers resolution.
const voteThreshold = 2

type voteEffect int

const (
	effectNone voteEffect = iota
	effectDelete
	effectReset
)

// resolveVotes maps the vote-set state to the side effect it demands.
// Delete wins when both thresholds are crossed.
func resolveVotes(v model.Votes) voteEffect {
	if v.Count(model.VoteDelete) >= voteThreshold {
		return effectDelete
	}
	if v.Count(model.VoteRedo) >= voteThreshold {
		return effectReset
	}
	return effectNone
}

// resetLifecycle returns a task to pending, dropping execution provenance
// and both vote sets.
func resetLifecycle(t *model.Task) {
	t.Status = model.StatusPending
	t.InProgressBy = nil
	t.StartedAt = nil
	t.CompletedBy = nil
	t.CompletedAt = nil
	t.Votes = model.Votes{}
}

type VoteService struct {
	tasks *repository.TaskRepository
}

func NewVoteService(tasks *repository.TaskRepository) *VoteService {
	return &VoteService{tasks: tasks}
}

// CastVote toggles the actor's vote of the given kind and evaluates
// resolution. It reports deleted=true when the vote crossed the delete
// threshold, in which case the task no longer exists.
func (s *VoteService) CastVote(ctx context.Context, actorID, taskID string, kind model.VoteKind) (*model.Task, bool, error) {
	if !model.ValidVoteKind(kind) {
		return nil, false, apperrors.ErrInvalidVoteKind
	}

	var lastErr error
	for attempt := 0; attempt < updateRetries; attempt++ {
		task, err := s.tasks.FindByID(ctx, taskID)
		if err != nil {
			return nil, false, err
		}

		task.Votes.Toggle(kind, actorID)

		switch resolveVotes(task.Votes) {
		case effectDelete:
			if err := s.tasks.Delete(ctx, task); err != nil {
				if errors.Is(err, apperrors.ErrConflict) {
					lastErr = err
					continue
				}
				return nil, false, err
			}
			lgr.Printf("[INFO] task %s deleted by vote", taskID)
			return nil, true, nil

		case effectReset:
			resetLifecycle(task)
			if err := s.tasks.Update(ctx, task); err != nil {
				if errors.Is(err, apperrors.ErrConflict) {
					lastErr = err
					continue
				}
				return nil, false, err
			}
			lgr.Printf("[INFO] task %s reset to pending by vote", taskID)
			return task, false, nil

		default:
			if err := s.tasks.Update(ctx, task); err != nil {
				if errors.Is(err, apperrors.ErrConflict) {
					lastErr = err
					continue
				}
				return nil, false, err
			}
			return task, false, nil
		}
	}
	return nil, false, lastErr
}
