package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/socialgit/socialgit-api/internal/models"
)

type WorkflowRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Workflow, bool, error)
	Create(ctx context.Context, tx *sql.Tx, workflow *models.Workflow) (int64, error)
	ListByClientID(ctx context.Context, clientID int64) ([]*models.Workflow, error)
}

type workflowRepository struct {
	db *sql.DB
}

func NewWorkflowRepository(db *sql.DB) WorkflowRepository {
	return &workflowRepository{db: db}
}

func (r *workflowRepository) GetByID(ctx context.Context, id int64) (*models.Workflow, bool, error) {
	var workflow models.Workflow
	query := "SELECT id, client_id, name, components, created_at FROM workflows WHERE id = $1"
	err := r.db.QueryRowContext(ctx, query, id).Scan(&workflow.ID, &workflow.ClientID, &workflow.Name, &workflow.Components, &workflow.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return &workflow, true, nil
}

func (r *workflowRepository) Create(ctx context.Context, tx *sql.Tx, workflow *models.Workflow) (int64, error) {
	query := `
		INSERT INTO workflows (client_id, name, components)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int64
	var err error

	if tx != nil {
		err = tx.QueryRowContext(ctx, query, workflow.ClientID, workflow.Name, workflow.Components).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, query, workflow.ClientID, workflow.Name, workflow.Components).Scan(&id)
	}
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *workflowRepository) ListByClientID(ctx context.Context, clientID int64) ([]*models.Workflow, error) {
	query := "SELECT id, client_id, name, components, created_at FROM workflows WHERE client_id = $1 ORDER BY id"
	rows, err := r.db.QueryContext(ctx, query, clientID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var workflows []*models.Workflow
	for rows.Next() {
		var workflow models.Workflow
		err := rows.Scan(&workflow.ID, &workflow.ClientID, &workflow.Name, &workflow.Components, &workflow.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		workflows = append(workflows, &workflow)
	}
	return workflows, nil
}
