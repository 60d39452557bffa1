package services

import (
	apperrors "teamops.com/teamops/internal/errors"
	model "teamops.com/teamops/internal/models"
)

type Operation string

const (
	OpClearTasks Operation = "tasks.clear"
)

// rolePolicy is the single place role checks live. Operations absent
// from the map are open to every authenticated identity.
var rolePolicy = map[Operation][]model.Role{
	OpClearTasks: {model.RoleCEO},
}

func Authorize(role model.Role, op Operation) error {
	allowed, restricted := rolePolicy[op]
	if !restricted {
		return nil
	}
	for _, r := range allowed {
		if r == role {
			return nil
		}
	}
	return apperrors.ErrRoleForbidden
}
