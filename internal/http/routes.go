package http

import (
	"time"

	"github.com/labstack/echo/v4"

	middleware "teamops.com/teamops/internal/http/middlewares"
	"teamops.com/teamops/internal/presence"
	repository "teamops.com/teamops/internal/repositories"
)

func Register(
	e *echo.Echo,
	h *Handler,
	users *repository.UserRepository,
	tracker *presence.Tracker,
	rateLimitPerMinute int,
) {
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute))

	auth := middleware.Identity(users, tracker)

	tasks := e.Group("/tasks", auth)
	tasks.POST("", h.CreateTask)
	tasks.GET("", h.ListTasks)
	tasks.GET("/leaderboard", h.Leaderboard)
	tasks.DELETE("/clear", h.ClearTasks)
	tasks.GET("/:id", h.GetTask)
	tasks.PATCH("/:id/status", h.UpdateStatus)
	tasks.PATCH("/:id/progress", h.UpdateProgress)
	tasks.POST("/:id/notes", h.AddNote)
	tasks.POST("/:id/remarks", h.AddRemark)
	tasks.PATCH("/:id/remarks/:remarkId", h.UpdateRemarkStatus)
	tasks.POST("/:id/vote", h.Vote)

	usersGroup := e.Group("/users", auth)
	usersGroup.GET("/status", h.UsersStatus)
	usersGroup.POST("/active", h.TouchActive)
}
