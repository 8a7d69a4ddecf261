package workflow

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/socialgit/socialgit-api/internal/models"
	"github.com/socialgit/socialgit-api/internal/repository"
)

// Engine interprets a workflow's component list against a post. Each
// action commits on its own; an error aborts the remaining components
// without undoing the ones already applied.
type Engine struct {
	users     repository.UserRepository
	clients   repository.ClientRepository
	posts     repository.PostRepository
	approvals repository.ApprovalRepository
}

func NewEngine(
	users repository.UserRepository,
	clients repository.ClientRepository,
	posts repository.PostRepository,
	approvals repository.ApprovalRepository) *Engine {
	return &Engine{
		users:     users,
		clients:   clients,
		posts:     posts,
		approvals: approvals,
	}
}

// Apply runs wf's action components against post, in order. A nil
// workflow is a no-op. The post struct is updated in place so later
// components see earlier mutations.
func (e *Engine) Apply(ctx context.Context, post *models.Post, wf *models.Workflow) error {
	if wf == nil {
		slog.Info("no active workflow for post", "post_id", post.ID)
		return nil
	}

	components, err := Decode([]byte(wf.Components))
	if err != nil {
		return err
	}

	slog.Info("applying workflow", "workflow_id", wf.ID, "post_id", post.ID, "components", len(components))

	for _, comp := range components {
		if comp.Type != TypeAction {
			continue
		}
		switch comp.Name {
		case ActionAssignApprovers:
			if len(comp.Options) == 0 {
				continue
			}
			value, _ := comp.Option("approvers")
			if err := e.assignApprovers(ctx, post, value.Strings()); err != nil {
				return err
			}
		case ActionSetDeadline:
			if len(comp.Options) == 0 {
				continue
			}
			if err := e.setDeadline(ctx, post, comp); err != nil {
				return err
			}
		case ActionQueuePost:
			if err := e.setStatus(ctx, post, models.PostStatusQueued); err != nil {
				return err
			}
		case ActionPostNow:
			// Simulated transmission, nothing leaves the system.
			if err := e.setStatus(ctx, post, models.PostStatusPosted); err != nil {
				return err
			}
		}
	}
	return nil
}

// assignApprovers grows the client approver set and creates a pending
// approval per resolved username. Unknown usernames are skipped, and
// re-running with the same list never creates a second approval row.
func (e *Engine) assignApprovers(ctx context.Context, post *models.Post, usernames []string) error {
	for _, username := range usernames {
		user, found, err := e.users.GetByUsername(ctx, username)
		if err != nil {
			return err
		}
		if !found {
			slog.Info("skipping unknown approver", "username", username)
			continue
		}

		isApprover, err := e.clients.HasApprover(ctx, post.ClientID, user.ID)
		if err != nil {
			return err
		}
		if !isApprover {
			if err := e.clients.AddApprover(ctx, post.ClientID, user.ID); err != nil {
				return err
			}
		}

		_, exists, err := e.approvals.GetByPostAndUser(ctx, post.ID, user.ID)
		if err != nil {
			return err
		}
		if !exists {
			approval := models.Approval{
				PostID: post.ID,
				UserID: user.ID,
				Status: models.ApprovalStatusPending,
			}
			if _, err := e.approvals.Create(ctx, nil, &approval); err != nil {
				return err
			}
			slog.Info("added approval", "post_id", post.ID, "username", username)
		}
	}
	return nil
}

func (e *Engine) setDeadline(ctx context.Context, post *models.Post, comp Component) error {
	days := models.DefaultDeadlineDays
	if value, ok := comp.Option("days"); ok && value.String() != "" {
		parsed, err := strconv.Atoi(value.String())
		if err != nil {
			return fmt.Errorf("%w: days option %q is not a number", ErrMalformed, value.String())
		}
		days = parsed
	}

	d := post.CreatedAt.AddDate(0, 0, days)
	deadline := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)

	scheduleDate := sql.NullTime{Time: deadline, Valid: true}
	if err := e.posts.UpdateScheduleDate(ctx, post.ID, scheduleDate); err != nil {
		return err
	}
	post.ScheduleDate = scheduleDate
	return nil
}

func (e *Engine) setStatus(ctx context.Context, post *models.Post, status string) error {
	if err := e.posts.UpdateStatus(ctx, status, post.ID); err != nil {
		return err
	}
	post.Status = status
	return nil
}
