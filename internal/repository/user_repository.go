package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/socialgit/socialgit-api/internal/models"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*models.User, bool, error)
	GetByUsername(ctx context.Context, username string) (*models.User, bool, error)
	Create(ctx context.Context, tx *sql.Tx, user *models.User) (int64, error)
	List(ctx context.Context) ([]*models.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, bool, error) {
	var user models.User
	query := "SELECT id, username, password_hash, is_admin, created_at FROM users WHERE id = $1"
	err := r.db.QueryRowContext(ctx, query, id).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.IsAdmin, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return &user, true, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, bool, error) {
	var user models.User
	query := "SELECT id, username, password_hash, is_admin, created_at FROM users WHERE username = $1"
	err := r.db.QueryRowContext(ctx, query, username).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.IsAdmin, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return &user, true, nil
}

func (r *userRepository) Create(ctx context.Context, tx *sql.Tx, user *models.User) (int64, error) {
	query := "INSERT INTO users (username, password_hash, is_admin) VALUES ($1, $2, $3) RETURNING id"

	var err error
	var id int64

	if tx != nil {
		err = tx.QueryRowContext(ctx, query, user.Username, user.PasswordHash, user.IsAdmin).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, query, user.Username, user.PasswordHash, user.IsAdmin).Scan(&id)
	}
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *userRepository) List(ctx context.Context) ([]*models.User, error) {
	query := "SELECT id, username, password_hash, is_admin, created_at FROM users ORDER BY username"
	rows, err := r.db.QueryContext(ctx, query)
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

func (r *userRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	query := "UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3"
	_, err := r.db.ExecContext(ctx, query, passwordHash, time.Now(), id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
