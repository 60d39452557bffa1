package services

import (
	"context"
	"errors"
	"testing"

	apperrors "teamops.com/teamops/internal/errors"
	model "teamops.com/teamops/internal/models"
)

func TestResolveVotes(t *testing.T) {
	cases := []struct {
		name  string
		votes model.Votes
		want  voteEffect
	}{
		{"empty", model.Votes{}, effectNone},
		{"one delete", model.Votes{Delete: []string{"a"}}, effectNone},
		{"one redo", model.Votes{Redo: []string{"a"}}, effectNone},
		{"two deletes", model.Votes{Delete: []string{"a", "b"}}, effectDelete},
		{"two redos", model.Votes{Redo: []string{"a", "b"}}, effectReset},
		{"delete wins over redo", model.Votes{Delete: []string{"a", "b"}, Redo: []string{"c", "d"}}, effectDelete},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := resolveVotes(tc.votes); got != tc.want {
				t.Errorf("resolveVotes(%+v) = %v, want %v", tc.votes, got, tc.want)
			}
		})
	}
}

func TestVoteToggleIsItsOwnInverse(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, "alice", "Alice Smith", model.RoleCTO)
	carol := f.createUser(t, "carol", "Carol White", model.RoleCFO)
	task := f.createTask(t, alice, alice)

	ctx := context.Background()

	voted, _, err := f.votes.CastVote(ctx, carol.ID, task.ID, model.VoteDelete)
	if err != nil {
		t.Fatalf("vote failed: %v", err)
	}
	if !voted.Votes.Has(model.VoteDelete, carol.ID) {
		t.Fatal("expected the vote to be recorded")
	}

	retracted, _, err := f.votes.CastVote(ctx, carol.ID, task.ID, model.VoteDelete)
	if err != nil {
		t.Fatalf("retract failed: %v", err)
	}
	if retracted.Votes.Count(model.VoteDelete) != 0 || retracted.Votes.Count(model.VoteRedo) != 0 {
		t.Error("expected the second identical vote to restore the original membership")
	}
}

func TestDeleteVoteThreshold(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, "alice", "Alice Smith", model.RoleCTO)
	carol := f.createUser(t, "carol", "Carol White", model.RoleCFO)
	dave := f.createUser(t, "dave", "Dave Brown", model.RoleCOO)
	task := f.createTask(t, alice, alice)

	ctx := context.Background()

	// Voting is open to non-assignees.
	if _, deleted, err := f.votes.CastVote(ctx, carol.ID, task.ID, model.VoteDelete); err != nil || deleted {
		t.Fatalf("first vote should not resolve, deleted=%v err=%v", deleted, err)
	}

	_, deleted, err := f.votes.CastVote(ctx, dave.ID, task.ID, model.VoteDelete)
	if err != nil {
		t.Fatalf("second vote failed: %v", err)
	}
	if !deleted {
		t.Fatal("expected the second distinct delete vote to remove the task")
	}

	if _, err := f.tasks.FindByID(ctx, task.ID); !errors.Is(err, apperrors.ErrTaskNotFound) {
		t.Errorf("expected the task to be gone, got %v", err)
	}

	// A further vote on the deleted task reports not found.
	if _, _, err := f.votes.CastVote(ctx, alice.ID, task.ID, model.VoteDelete); !errors.Is(err, apperrors.ErrTaskNotFound) {
		t.Errorf("expected not found, got %v", err)
	}

	views, err := f.lifecycle.ListTasks(ctx, alice.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(views) != 0 {
		t.Errorf("deleted task must be unreachable by listing, got %d", len(views))
	}
}

func TestRedoVoteResetsLifecycle(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, "alice", "Alice Smith", model.RoleCTO)
	bob := f.createUser(t, "bob", "Bob Jones", model.RoleCOO)
	task := f.createTask(t, alice, alice, bob)

	ctx := context.Background()
	if _, err := f.lifecycle.Transition(ctx, identityOf(alice), task.ID, "start"); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if _, err := f.lifecycle.Transition(ctx, identityOf(alice), task.ID, "complete"); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	if _, _, err := f.votes.CastVote(ctx, alice.ID, task.ID, model.VoteRedo); err != nil {
		t.Fatalf("first redo vote failed: %v", err)
	}
	reset, deleted, err := f.votes.CastVote(ctx, bob.ID, task.ID, model.VoteRedo)
	if err != nil {
		t.Fatalf("second redo vote failed: %v", err)
	}
	if deleted {
		t.Fatal("redo resolution must not delete the task")
	}

	if reset.Status != model.StatusPending {
		t.Errorf("expected status pending after reset, got %s", reset.Status)
	}
	if reset.CompletedBy != nil || reset.CompletedAt != nil || reset.InProgressBy != nil || reset.StartedAt != nil {
		t.Error("expected execution provenance to be cleared")
	}
	if reset.Votes.Count(model.VoteDelete) != 0 || reset.Votes.Count(model.VoteRedo) != 0 {
		t.Error("expected both vote sets to be emptied")
	}

	// Notes are append-only and survive the reset.
	if len(reset.Notes) != 2 {
		t.Errorf("expected the audit trail to survive, got %d notes", len(reset.Notes))
	}
}

func TestCastVoteRejectsUnknownKind(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, "alice", "Alice Smith", model.RoleCTO)
	task := f.createTask(t, alice, alice)

	_, _, err := f.votes.CastVote(context.Background(), alice.ID, task.ID, "purge")
	if !errors.Is(err, apperrors.ErrInvalidVoteKind) {
		t.Fatalf("expected vote kind validation, got %v", err)
	}
}
