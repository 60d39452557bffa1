package middleware

import (
	"net/http"

	"github.com/go-pkgz/lgr"
	"github.com/labstack/echo/v4"

	model "teamops.com/teamops/internal/models"
	"teamops.com/teamops/internal/presence"
	repository "teamops.com/teamops/internal/repositories"
)

const identityKey = "identity"

// Identity resolves the trusted X-User-ID header (set by the upstream
// auth collaborator) against the user directory and injects the caller's
// identity into the request context. It also refreshes the caller's
// presence; tracking failures are logged, not surfaced.
func Identity(users *repository.UserRepository, tracker *presence.Tracker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID := c.Request().Header.Get("X-User-ID")
			if userID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			ctx := c.Request().Context()
			user, err := users.FindByID(ctx, userID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "unknown user")
			}

			c.Set(identityKey, model.Identity{
				UserID:   user.ID,
				FullName: user.FullName,
				Role:     user.Role,
			})

			if err := tracker.Touch(ctx, user.ID); err != nil {
				lgr.Printf("[WARN] presence refresh failed for %s: %v", user.ID, err)
			}

			return next(c)
		}
	}
}

func CurrentIdentity(c echo.Context) model.Identity {
	ident, _ := c.Get(identityKey).(model.Identity)
	return ident
}
