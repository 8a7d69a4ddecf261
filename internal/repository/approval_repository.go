package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/socialgit/socialgit-api/internal/models"
)

type ApprovalRepository interface {
	GetByPostAndUser(ctx context.Context, postID string, userID int64) (*models.Approval, bool, error)
	Create(ctx context.Context, tx *sql.Tx, approval *models.Approval) (int64, error)
	ListByPostID(ctx context.Context, postID string) ([]*models.Approval, error)
	UpdateStatus(ctx context.Context, approvalID int64, status string) error
}

type approvalRepository struct {
	db *sql.DB
}

func NewApprovalRepository(db *sql.DB) ApprovalRepository {
	return &approvalRepository{db: db}
}

func (r *approvalRepository) GetByPostAndUser(ctx context.Context, postID string, userID int64) (*models.Approval, bool, error) {
	var approval models.Approval
	query := "SELECT id, post_id, user_id, status, created_at FROM approvals WHERE post_id = $1 AND user_id = $2"
	err := r.db.QueryRowContext(ctx, query, postID, userID).Scan(&approval.ID, &approval.PostID, &approval.UserID, &approval.Status, &approval.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return &approval, true, nil
}

func (r *approvalRepository) Create(ctx context.Context, tx *sql.Tx, approval *models.Approval) (int64, error) {
	query := `
		INSERT INTO approvals (post_id, user_id, status)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int64
	var err error

	if tx != nil {
		err = tx.QueryRowContext(ctx, query, approval.PostID, approval.UserID, approval.Status).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, query, approval.PostID, approval.UserID, approval.Status).Scan(&id)
	}
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *approvalRepository) ListByPostID(ctx context.Context, postID string) ([]*models.Approval, error) {
	query := "SELECT id, post_id, user_id, status, created_at FROM approvals WHERE post_id = $1 ORDER BY id"
	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var approvals []*models.Approval
	for rows.Next() {
		var approval models.Approval
		err := rows.Scan(&approval.ID, &approval.PostID, &approval.UserID, &approval.Status, &approval.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		approvals = append(approvals, &approval)
	}
	return approvals, nil
}

func (r *approvalRepository) UpdateStatus(ctx context.Context, approvalID int64, status string) error {
	query := "UPDATE approvals SET status = $1, updated_at = $2 WHERE id = $3"
	_, err := r.db.ExecContext(ctx, query, status, time.Now(), approvalID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
