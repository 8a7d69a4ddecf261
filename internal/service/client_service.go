package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/socialgit/socialgit-api/internal/models"
	"github.com/socialgit/socialgit-api/internal/repository"
	"github.com/socialgit/socialgit-api/internal/transfer"
)

type ClientService interface {
	Create(ctx context.Context, ownerID int64, cc *transfer.ClientCreation) (int64, error)
	ListForOwner(ctx context.Context, ownerID int64) ([]*models.Client, error)
	Info(ctx context.Context, clientID, ownerID int64) (*models.Client, error)
	Approvers(ctx context.Context, clientID, ownerID int64) ([]*models.User, error)
	SetActiveWorkflow(ctx context.Context, ownerID, clientID, workflowID int64) error
}

type clientService struct {
	c repository.ClientRepository
	u repository.UserRepository
	w repository.WorkflowRepository
}

func NewClientService(
	c repository.ClientRepository,
	u repository.UserRepository,
	w repository.WorkflowRepository) ClientService {
	return &clientService{
		c: c,
		u: u,
		w: w,
	}
}

func (s *clientService) Create(ctx context.Context, ownerID int64, cc *transfer.ClientCreation) (int64, error) {
	if cc.Name == "" {
		err := fmt.Errorf("client name cannot be empty")
		slog.Info(err.Error())
		return 0, err
	}

	taken, err := s.c.ExistsByName(ctx, cc.Name)
	if err != nil {
		return 0, err
	}
	if taken {
		slog.Info("client name taken", "name", cc.Name)
		return 0, ErrDuplicateClient
	}

	deadlineDays := cc.DeadlineDays
	if deadlineDays <= 0 {
		deadlineDays = models.DefaultDeadlineDays
	}

	clientID, err := s.c.Create(ctx, nil, &models.Client{
		OwnerID:      ownerID,
		Name:         cc.Name,
		DeadlineDays: deadlineDays,
	})
	if err != nil {
		return 0, fmt.Errorf("error creating client: %w", err)
	}

	// Unknown approver ids are skipped without failing the create.
	for _, approverID := range cc.ApproverIDs {
		_, found, err := s.u.GetByID(ctx, approverID)
		if err != nil {
			return 0, err
		}
		if !found {
			slog.Info("skipping unknown approver id", "user_id", approverID)
			continue
		}
		if err := s.c.AddApprover(ctx, clientID, approverID); err != nil {
			return 0, err
		}
	}

	return clientID, nil
}

func (s *clientService) ListForOwner(ctx context.Context, ownerID int64) ([]*models.Client, error) {
	clients, err := s.c.ListByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing clients: %w", err)
	}
	return clients, nil
}

// Info returns the client only to its owner.
func (s *clientService) Info(ctx context.Context, clientID, ownerID int64) (*models.Client, error) {
	client, found, err := s.c.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	if client.OwnerID != ownerID {
		slog.Info("client access refused", "client_id", clientID, "user_id", ownerID)
		return nil, ErrUnauthorized
	}
	return client, nil
}

func (s *clientService) Approvers(ctx context.Context, clientID, ownerID int64) ([]*models.User, error) {
	if _, err := s.Info(ctx, clientID, ownerID); err != nil {
		return nil, err
	}
	return s.c.ListApprovers(ctx, clientID)
}

// SetActiveWorkflow wires one of the client's saved workflows to run on
// post creation and approval. workflowID 0 clears the active workflow.
func (s *clientService) SetActiveWorkflow(ctx context.Context, ownerID, clientID, workflowID int64) error {
	if _, err := s.Info(ctx, clientID, ownerID); err != nil {
		return err
	}

	if workflowID == 0 {
		return s.c.SetActiveWorkflow(ctx, clientID, sql.NullInt64{})
	}

	wf, found, err := s.w.GetByID(ctx, workflowID)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	if wf.ClientID != clientID {
		slog.Info("workflow does not belong to client", "workflow_id", workflowID, "client_id", clientID)
		return ErrUnauthorized
	}

	return s.c.SetActiveWorkflow(ctx, clientID, sql.NullInt64{Int64: workflowID, Valid: true})
}
