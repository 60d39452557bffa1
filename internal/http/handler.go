package http

import (
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"

	dto "teamops.com/teamops/internal/data_models"
	apperrors "teamops.com/teamops/internal/errors"
	middleware "teamops.com/teamops/internal/http/middlewares"
	"teamops.com/teamops/internal/http/validators"
	model "teamops.com/teamops/internal/models"
	"teamops.com/teamops/internal/presence"
	repository "teamops.com/teamops/internal/repositories"
	"teamops.com/teamops/internal/services"
)

type Handler struct {
	lifecycle   *services.LifecycleService
	votes       *services.VoteService
	leaderboard *services.LeaderboardService
	users       *repository.UserRepository
	tracker     *presence.Tracker
}

func NewHandler(
	lifecycle *services.LifecycleService,
	votes *services.VoteService,
	leaderboard *services.LeaderboardService,
	users *repository.UserRepository,
	tracker *presence.Tracker,
) *Handler {
	return &Handler{
		lifecycle:   lifecycle,
		votes:       votes,
		leaderboard: leaderboard,
		users:       users,
		tracker:     tracker,
	}
}

// fail renders a domain error with its own status, code and message.
// Anything that is not an Exception surfaces as a plain 500.
func fail(c echo.Context, err error) error {
	return c.JSON(apperrors.StatusCode(err), echo.Map{
		"code":    apperrors.CodeOf(err),
		"message": err.Error(),
	})
}

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateCreateTaskRequest(&req); err != nil {
		return err
	}

	actor := middleware.CurrentIdentity(c)
	task, err := h.lifecycle.CreateTask(c.Request().Context(), actor, services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		DueDate:     req.DueDate,
		Priority:    model.Priority(req.Priority),
	})
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusCreated, model.NewTaskView(*task, actor.UserID))
}

func (h *Handler) ListTasks(c echo.Context) error {
	actor := middleware.CurrentIdentity(c)
	tasks, err := h.lifecycle.ListTasks(c.Request().Context(), actor.UserID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count": len(tasks),
		"tasks": tasks,
	})
}

func (h *Handler) GetTask(c echo.Context) error {
	actor := middleware.CurrentIdentity(c)
	task, err := h.lifecycle.GetTask(c.Request().Context(), actor.UserID, c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

func (h *Handler) UpdateStatus(c echo.Context) error {
	var req dto.ActionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	actor := middleware.CurrentIdentity(c)
	task, err := h.lifecycle.Transition(c.Request().Context(), actor, c.Param("id"), req.Action)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, model.NewTaskView(*task, actor.UserID))
}

func (h *Handler) UpdateProgress(c echo.Context) error {
	var req dto.ProgressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if req.Progress == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "progress is required")
	}

	actor := middleware.CurrentIdentity(c)
	task, err := h.lifecycle.SetProgress(c.Request().Context(), c.Param("id"), *req.Progress)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, model.NewTaskView(*task, actor.UserID))
}

func (h *Handler) AddNote(c echo.Context) error {
	var req dto.TextRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	actor := middleware.CurrentIdentity(c)
	task, err := h.lifecycle.AddNote(c.Request().Context(), actor, c.Param("id"), req.Text)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, model.NewTaskView(*task, actor.UserID))
}

func (h *Handler) AddRemark(c echo.Context) error {
	var req dto.TextRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	actor := middleware.CurrentIdentity(c)
	task, err := h.lifecycle.AddRemark(c.Request().Context(), actor, c.Param("id"), req.Text)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, model.NewTaskView(*task, actor.UserID))
}

func (h *Handler) UpdateRemarkStatus(c echo.Context) error {
	var req dto.RemarkStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	actor := middleware.CurrentIdentity(c)
	task, err := h.lifecycle.SetRemarkStatus(
		c.Request().Context(),
		c.Param("id"),
		c.Param("remarkId"),
		model.RemarkStatus(req.Status),
	)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, model.NewTaskView(*task, actor.UserID))
}

func (h *Handler) Vote(c echo.Context) error {
	var req dto.VoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	actor := middleware.CurrentIdentity(c)
	task, deleted, err := h.votes.CastVote(
		c.Request().Context(),
		actor.UserID,
		c.Param("id"),
		model.VoteKind(req.VoteType),
	)
	if err != nil {
		return fail(c, err)
	}
	if deleted {
		return c.JSON(http.StatusOK, echo.Map{"message": "task deleted"})
	}
	return c.JSON(http.StatusOK, model.NewTaskView(*task, actor.UserID))
}

func (h *Handler) ClearTasks(c echo.Context) error {
	actor := middleware.CurrentIdentity(c)
	if err := h.lifecycle.ClearAll(c.Request().Context(), actor); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "all tasks cleared"})
}

func (h *Handler) Leaderboard(c echo.Context) error {
	entries, err := h.leaderboard.Leaderboard(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, entries)
}

func (h *Handler) UsersStatus(c echo.Context) error {
	ctx := c.Request().Context()
	users, err := h.users.List(ctx)
	if err != nil {
		return fail(c, err)
	}

	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	online, err := h.tracker.Online(ctx, ids)
	if err != nil {
		return fail(c, err)
	}

	statuses := make([]model.UserStatus, 0, len(users))
	for _, u := range users {
		statuses = append(statuses, model.UserStatus{User: u, IsOnline: online[u.ID]})
	}
	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].FullName < statuses[j].FullName
	})

	return c.JSON(http.StatusOK, statuses)
}

func (h *Handler) TouchActive(c echo.Context) error {
	actor := middleware.CurrentIdentity(c)
	if err := h.tracker.Touch(c.Request().Context(), actor.UserID); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "active status updated"})
}
