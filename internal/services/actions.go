package services

import (
	"strings"

	model "teamops.com/teamops/internal/models"
)

type taskAction string

const (
	actionStart    taskAction = "start"
	actionComplete taskAction = "complete"
)

// actionTokens maps every accepted request token to its canonical
// action. Unrecognized tokens are rejected at the boundary, never
// guessed from the task's current status.
var actionTokens = map[string]taskAction{
	"start":    actionStart,
	"working":  actionStart,
	"accept":   actionStart,
	"complete": actionComplete,
	"done":     actionComplete,
	"finish":   actionComplete,
}

func normalizeAction(raw string) (taskAction, bool) {
	a, ok := actionTokens[strings.ToLower(strings.TrimSpace(raw))]
	return a, ok
}

// allowedActionFor names the only action legal from the given status,
// used to build precise rejection messages.
func allowedActionFor(status model.TaskStatus) string {
	switch status {
	case model.StatusPending:
		return `"start"`
	case model.StatusInProgress:
		return `"complete"`
	default:
		return "none (task is completed)"
	}
}
