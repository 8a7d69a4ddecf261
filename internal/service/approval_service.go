package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/socialgit/socialgit-api/internal/models"
	"github.com/socialgit/socialgit-api/internal/repository"
	"github.com/socialgit/socialgit-api/internal/workflow"
)

const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

type ApprovalService interface {
	Record(ctx context.Context, postID string, approverID int64, decision string) error
	ListByPost(ctx context.Context, postID string) ([]*models.Approval, error)
}

type approvalService struct {
	ar     repository.ApprovalRepository
	pr     repository.PostRepository
	cr     repository.ClientRepository
	wr     repository.WorkflowRepository
	engine *workflow.Engine
}

func NewApprovalService(
	ar repository.ApprovalRepository,
	pr repository.PostRepository,
	cr repository.ClientRepository,
	wr repository.WorkflowRepository,
	engine *workflow.Engine) ApprovalService {
	return &approvalService{
		ar:     ar,
		pr:     pr,
		cr:     cr,
		wr:     wr,
		engine: engine,
	}
}

// Record stores one approver's verdict, then recomputes the post
// status. The recompute only ever promotes: once every approval row
// reads approved the post becomes approved, and a rejection arriving
// after that leaves the post status alone.
func (s *approvalService) Record(ctx context.Context, postID string, approverID int64, decision string) error {
	var status string
	switch decision {
	case DecisionApprove:
		status = models.ApprovalStatusApproved
	case DecisionReject:
		status = models.ApprovalStatusRejected
	default:
		err := fmt.Errorf("unknown decision %q", decision)
		slog.Info(err.Error())
		return err
	}

	post, found, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}

	approval, found, err := s.ar.GetByPostAndUser(ctx, postID, approverID)
	if err != nil {
		return err
	}
	if !found {
		slog.Info("decision refused, no approval row", "post_id", postID, "user_id", approverID)
		return ErrNotAnApprover
	}

	if err := s.ar.UpdateStatus(ctx, approval.ID, status); err != nil {
		return err
	}

	approvals, err := s.ar.ListByPostID(ctx, postID)
	if err != nil {
		return err
	}
	for _, a := range approvals {
		if a.Status != models.ApprovalStatusApproved {
			return nil
		}
	}

	// All approvals resolved to approved. Promote, never demote.
	if post.Status != models.PostStatusPending && post.Status != models.PostStatusDraft {
		return nil
	}
	if err := s.pr.UpdateStatus(ctx, models.PostStatusApproved, postID); err != nil {
		return err
	}
	post.Status = models.PostStatusApproved

	client, found, err := s.cr.GetByID(ctx, post.ClientID)
	if err != nil {
		return err
	}
	if !found || !client.ActiveWorkflowID.Valid {
		return nil
	}

	wf, found, err := s.wr.GetByID(ctx, client.ActiveWorkflowID.Int64)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}

	components, err := workflow.Decode([]byte(wf.Components))
	if err != nil {
		return err
	}
	if workflow.HasComponent(components, workflow.TriggerPostApproved) {
		return s.engine.Apply(ctx, post, wf)
	}
	return nil
}

func (s *approvalService) ListByPost(ctx context.Context, postID string) ([]*models.Approval, error) {
	approvals, err := s.ar.ListByPostID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("error listing approvals: %w", err)
	}
	return approvals, nil
}
