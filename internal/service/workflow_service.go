package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/socialgit/socialgit-api/internal/models"
	"github.com/socialgit/socialgit-api/internal/repository"
	"github.com/socialgit/socialgit-api/internal/transfer"
	"github.com/socialgit/socialgit-api/internal/workflow"
)

type WorkflowService interface {
	Save(ctx context.Context, ownerID, clientID int64, ws *transfer.WorkflowSave) (int64, error)
	Load(ctx context.Context, ownerID, workflowID int64) (*transfer.WorkflowDocument, error)
	ListByClient(ctx context.Context, ownerID, clientID int64) ([]*models.Workflow, error)
}

type workflowService struct {
	wr repository.WorkflowRepository
	cr repository.ClientRepository
}

func NewWorkflowService(wr repository.WorkflowRepository, cr repository.ClientRepository) WorkflowService {
	return &workflowService{
		wr: wr,
		cr: cr,
	}
}

// Save validates the component list before storing it, so a workflow on
// disk always decodes.
func (s *workflowService) Save(ctx context.Context, ownerID, clientID int64, ws *transfer.WorkflowSave) (int64, error) {
	if ws.Name == "" {
		err := fmt.Errorf("workflow name cannot be empty")
		slog.Info(err.Error())
		return 0, err
	}

	if err := s.checkOwner(ctx, clientID, ownerID); err != nil {
		return 0, err
	}

	components, err := workflow.Decode(ws.Components)
	if err != nil {
		return 0, err
	}
	encoded, err := workflow.Encode(components)
	if err != nil {
		return 0, err
	}

	id, err := s.wr.Create(ctx, nil, &models.Workflow{
		ClientID:   clientID,
		Name:       ws.Name,
		Components: encoded,
	})
	if err != nil {
		return 0, fmt.Errorf("error saving workflow: %w", err)
	}
	return id, nil
}

func (s *workflowService) Load(ctx context.Context, ownerID, workflowID int64) (*transfer.WorkflowDocument, error) {
	wf, found, err := s.wr.GetByID(ctx, workflowID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}

	if err := s.checkOwner(ctx, wf.ClientID, ownerID); err != nil {
		return nil, err
	}

	components, err := workflow.Decode([]byte(wf.Components))
	if err != nil {
		return nil, err
	}

	return &transfer.WorkflowDocument{
		Name:       wf.Name,
		Components: components,
	}, nil
}

func (s *workflowService) ListByClient(ctx context.Context, ownerID, clientID int64) ([]*models.Workflow, error) {
	if err := s.checkOwner(ctx, clientID, ownerID); err != nil {
		return nil, err
	}
	return s.wr.ListByClientID(ctx, clientID)
}

func (s *workflowService) checkOwner(ctx context.Context, clientID, userID int64) error {
	client, found, err := s.cr.GetByID(ctx, clientID)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	if client.OwnerID != userID {
		slog.Info("workflow access refused", "client_id", clientID, "user_id", userID)
		return ErrUnauthorized
	}
	return nil
}
