package validators

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "teamops.com/teamops/internal/data_models"
)

func ValidateCreateTaskRequest(r *dto.CreateTaskRequest) error {
	if r.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}
	if r.Description == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "description is required")
	}
	if len(r.AssignedTo) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "assignedTo must not be empty")
	}
	if r.DueDate.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "dueDate is required")
	}
	return nil
}
