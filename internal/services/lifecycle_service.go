package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"

	apperrors "teamops.com/teamops/internal/errors"
	model "teamops.com/teamops/internal/models"
	repository "teamops.com/teamops/internal/repositories"
)

// updateRetries bounds how many times a read-modify-write is replayed
// after a version conflict before giving up with ErrConflict.
const updateRetries = 3

const maxTextLen = 2000

type LifecycleService struct {
	tasks *repository.TaskRepository
	users *repository.UserRepository
}

func NewLifecycleService(tasks *repository.TaskRepository, users *repository.UserRepository) *LifecycleService {
	return &LifecycleService{tasks: tasks, users: users}
}

type CreateTaskInput struct {
	Title       string
	Description string
	AssignedTo  []string
	DueDate     time.Time
	Priority    model.Priority
}

func (s *LifecycleService) CreateTask(ctx context.Context, actor model.Identity, in CreateTaskInput) (*model.Task, error) {
	if in.Title == "" {
		return nil, apperrors.ErrTitleRequired
	}
	if in.Description == "" {
		return nil, apperrors.ErrDescriptionRequired
	}
	if len(in.AssignedTo) == 0 {
		return nil, apperrors.ErrAssigneesRequired
	}
	if in.Priority == "" {
		in.Priority = model.PriorityMedium
	}
	if !model.ValidPriority(in.Priority) {
		return nil, apperrors.ErrInvalidPriority
	}

	// Assignees must resolve to known users, as in task creation against
	// the user directory.
	for _, id := range in.AssignedTo {
		if _, err := s.users.FindByID(ctx, id); err != nil {
			return nil, err
		}
	}

	task := &model.Task{
		Title:       in.Title,
		Description: in.Description,
		AssignedTo:  in.AssignedTo,
		CreatedBy:   actor.UserID,
		DueDate:     in.DueDate,
		Priority:    in.Priority,
		Status:      model.StatusPending,
		Notes:       []model.Note{},
		Remarks:     []model.Remark{},
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	lgr.Printf("[DEBUG] task %s created by %s", task.ID, actor.UserID)
	return task, nil
}

// Transition applies a direct state-machine action. The raw action token
// is normalized through the lookup table before the machine sees it;
// unknown tokens are rejected outright.
func (s *LifecycleService) Transition(ctx context.Context, actor model.Identity, taskID, rawAction string) (*model.Task, error) {
	act, ok := normalizeAction(rawAction)
	if !ok {
		return nil, apperrors.InvalidTransition(rawAction, `"start" or "complete"`)
	}

	task, err := s.mutate(ctx, taskID, func(t *model.Task) error {
		if !t.IsAssigned(actor.UserID) {
			return apperrors.ErrNotAssigned
		}

		now := time.Now().UTC()
		switch act {
		case actionStart:
			if t.Status != model.StatusPending {
				return apperrors.InvalidTransition(rawAction, allowedActionFor(t.Status))
			}
			t.Status = model.StatusInProgress
			t.InProgressBy = &actor.UserID
			t.StartedAt = &now
			appendNote(t, actor.UserID, fmt.Sprintf("%s has started working on this task", actor.FullName))
		case actionComplete:
			if t.Status != model.StatusInProgress {
				return apperrors.InvalidTransition(rawAction, allowedActionFor(t.Status))
			}
			t.Status = model.StatusCompleted
			t.CompletedBy = &actor.UserID
			t.CompletedAt = &now
			t.Progress = 100
			appendNote(t, actor.UserID, fmt.Sprintf("%s has completed this task", actor.FullName))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	lgr.Printf("[INFO] task %s moved to %s by %s", task.ID, task.Status, actor.UserID)
	return task, nil
}

// SetProgress is deliberately permissive: any caller, any status.
func (s *LifecycleService) SetProgress(ctx context.Context, taskID string, progress int) (*model.Task, error) {
	if progress < 0 || progress > 100 {
		return nil, apperrors.ErrProgressOutOfRange
	}
	return s.mutate(ctx, taskID, func(t *model.Task) error {
		t.Progress = progress
		return nil
	})
}

func (s *LifecycleService) AddNote(ctx context.Context, actor model.Identity, taskID, text string) (*model.Task, error) {
	if err := validateText(text); err != nil {
		return nil, err
	}
	return s.mutate(ctx, taskID, func(t *model.Task) error {
		appendNote(t, actor.UserID, text)
		return nil
	})
}

func (s *LifecycleService) AddRemark(ctx context.Context, actor model.Identity, taskID, text string) (*model.Task, error) {
	if err := validateText(text); err != nil {
		return nil, err
	}
	return s.mutate(ctx, taskID, func(t *model.Task) error {
		t.Remarks = append(t.Remarks, model.Remark{
			ID:      uuid.NewString(),
			Text:    text,
			AddedBy: actor.UserID,
			AddedAt: time.Now().UTC(),
			Status:  model.RemarkPending,
		})
		return nil
	})
}

func (s *LifecycleService) SetRemarkStatus(ctx context.Context, taskID, remarkID string, status model.RemarkStatus) (*model.Task, error) {
	if status != model.RemarkPending && status != model.RemarkAddressed {
		return nil, apperrors.ErrInvalidRemarkStatus
	}
	return s.mutate(ctx, taskID, func(t *model.Task) error {
		for i := range t.Remarks {
			if t.Remarks[i].ID == remarkID {
				t.Remarks[i].Status = status
				return nil
			}
		}
		return apperrors.ErrRemarkNotFound
	})
}

// ClearAll irreversibly empties the task corpus. Restricted by the role
// policy, not by assignment.
func (s *LifecycleService) ClearAll(ctx context.Context, actor model.Identity) error {
	if err := Authorize(actor.Role, OpClearTasks); err != nil {
		return err
	}
	if err := s.tasks.DeleteAll(ctx); err != nil {
		return err
	}
	lgr.Printf("[INFO] all tasks cleared by %s (%s)", actor.UserID, actor.Role)
	return nil
}

func (s *LifecycleService) GetTask(ctx context.Context, actorID, taskID string) (*model.TaskView, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	view := model.NewTaskView(*task, actorID)
	return &view, nil
}

func (s *LifecycleService) ListTasks(ctx context.Context, actorID string) ([]model.TaskView, error) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]model.TaskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, model.NewTaskView(t, actorID))
	}
	return views, nil
}

// mutate runs a read-modify-write against one task, replaying it on
// version conflicts so concurrent writers cannot silently overwrite each
// other.
func (s *LifecycleService) mutate(ctx context.Context, taskID string, fn func(*model.Task) error) (*model.Task, error) {
	var lastErr error
	for attempt := 0; attempt < updateRetries; attempt++ {
		task, err := s.tasks.FindByID(ctx, taskID)
		if err != nil {
			return nil, err
		}
		if err := fn(task); err != nil {
			return nil, err
		}
		if err := s.tasks.Update(ctx, task); err != nil {
			if errors.Is(err, apperrors.ErrConflict) {
				lastErr = err
				continue
			}
			return nil, err
		}
		return task, nil
	}
	return nil, lastErr
}

func appendNote(t *model.Task, addedBy, text string) {
	t.Notes = append(t.Notes, model.Note{
		ID:      uuid.NewString(),
		Text:    text,
		AddedBy: addedBy,
		AddedAt: time.Now().UTC(),
	})
}

func validateText(text string) error {
	if text == "" {
		return apperrors.ErrTextRequired
	}
	if len(text) > maxTextLen {
		return apperrors.ErrTextTooLong
	}
	return nil
}
