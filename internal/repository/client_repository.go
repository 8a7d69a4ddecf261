package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/socialgit/socialgit-api/internal/models"
)

type ClientRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Client, bool, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, tx *sql.Tx, client *models.Client) (int64, error)
	ListByOwnerID(ctx context.Context, ownerID int64) ([]*models.Client, error)
	SetActiveWorkflow(ctx context.Context, clientID int64, workflowID sql.NullInt64) error
	ListApprovers(ctx context.Context, clientID int64) ([]*models.User, error)
	HasApprover(ctx context.Context, clientID, userID int64) (bool, error)
	AddApprover(ctx context.Context, clientID, userID int64) error
}

type clientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) GetByID(ctx context.Context, id int64) (*models.Client, bool, error) {
	var client models.Client
	query := "SELECT id, owner_id, name, deadline_days, active_workflow_id, created_at FROM clients WHERE id = $1"
	err := r.db.QueryRowContext(ctx, query, id).Scan(&client.ID, &client.OwnerID, &client.Name, &client.DeadlineDays, &client.ActiveWorkflowID, &client.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return &client, true, nil
}

func (r *clientRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	query := "SELECT 1 FROM clients WHERE name = $1"

	var result int
	err := r.db.QueryRowContext(ctx, query, name).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}
	return result == 1, nil
}

func (r *clientRepository) Create(ctx context.Context, tx *sql.Tx, client *models.Client) (int64, error) {
	query := `
		INSERT INTO clients (owner_id, name, deadline_days)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int64
	var err error

	if tx != nil {
		err = tx.QueryRowContext(ctx, query, client.OwnerID, client.Name, client.DeadlineDays).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, query, client.OwnerID, client.Name, client.DeadlineDays).Scan(&id)
	}
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *clientRepository) ListByOwnerID(ctx context.Context, ownerID int64) ([]*models.Client, error) {
	query := "SELECT id, owner_id, name, deadline_days, active_workflow_id, created_at FROM clients WHERE owner_id = $1 ORDER BY name"
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var clients []*models.Client
	for rows.Next() {
		var client models.Client
		err := rows.Scan(&client.ID, &client.OwnerID, &client.Name, &client.DeadlineDays, &client.ActiveWorkflowID, &client.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		clients = append(clients, &client)
	}
	return clients, nil
}

func (r *clientRepository) SetActiveWorkflow(ctx context.Context, clientID int64, workflowID sql.NullInt64) error {
	query := "UPDATE clients SET active_workflow_id = $1, updated_at = $2 WHERE id = $3"
	_, err := r.db.ExecContext(ctx, query, workflowID, time.Now(), clientID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *clientRepository) ListApprovers(ctx context.Context, clientID int64) ([]*models.User, error) {
	query := `
		SELECT u.id, u.username, u.password_hash, u.is_admin, u.created_at
		FROM users u
		JOIN client_approvers ca ON ca.user_id = u.id
		WHERE ca.client_id = $1
		ORDER BY u.username
	`
	rows, err := r.db.QueryContext(ctx, query, clientID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		err := rows.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.IsAdmin, &user.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		users = append(users, &user)
	}
	return users, nil
}

func (r *clientRepository) HasApprover(ctx context.Context, clientID, userID int64) (bool, error) {
	query := "SELECT 1 FROM client_approvers WHERE client_id = $1 AND user_id = $2"

	var result int
	err := r.db.QueryRowContext(ctx, query, clientID, userID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}
	return result == 1, nil
}

func (r *clientRepository) AddApprover(ctx context.Context, clientID, userID int64) error {
	query := `
		INSERT INTO client_approvers (client_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (client_id, user_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, clientID, userID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
