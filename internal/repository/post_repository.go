package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/socialgit/socialgit-api/internal/models"
)

type PostRepository interface {
	GetByID(ctx context.Context, id string) (*models.Post, bool, error)
	Create(ctx context.Context, tx *sql.Tx, post *models.Post) error
	ListByClientID(ctx context.Context, clientID int64) ([]*models.Post, error)
	ListByStatus(ctx context.Context, status string) ([]*models.Post, error)
	UpdateStatus(ctx context.Context, status string, postID string) error
	UpdateFields(ctx context.Context, post *models.Post) error
	UpdateScheduleDate(ctx context.Context, postID string, scheduleDate sql.NullTime) error
	Remove(ctx context.Context, id string) error
}

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) PostRepository {
	return &postRepository{db: db}
}

const postColumns = "id, client_id, content, caption, media_path, schedule_date, status, created_at, updated_at"

func scanPost(row interface{ Scan(...any) error }) (*models.Post, error) {
	var post models.Post
	err := row.Scan(&post.ID, &post.ClientID, &post.Content, &post.Caption, &post.MediaPath, &post.ScheduleDate, &post.Status, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*models.Post, bool, error) {
	query := "SELECT " + postColumns + " FROM posts WHERE id = $1"
	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return post, true, nil
}

func (r *postRepository) Create(ctx context.Context, tx *sql.Tx, post *models.Post) error {
	query := `
		INSERT INTO posts (id, client_id, content, caption, media_path, schedule_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, post.ID, post.ClientID, post.Content, post.Caption, post.MediaPath, post.ScheduleDate, post.Status)
	} else {
		_, err = r.db.ExecContext(ctx, query, post.ID, post.ClientID, post.Content, post.Caption, post.MediaPath, post.ScheduleDate, post.Status)
	}
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) ListByClientID(ctx context.Context, clientID int64) ([]*models.Post, error) {
	query := "SELECT " + postColumns + " FROM posts WHERE client_id = $1 ORDER BY created_at DESC"
	return r.list(ctx, query, clientID)
}

func (r *postRepository) ListByStatus(ctx context.Context, status string) ([]*models.Post, error) {
	query := "SELECT " + postColumns + " FROM posts WHERE status = $1 ORDER BY created_at DESC"
	return r.list(ctx, query, status)
}

func (r *postRepository) list(ctx context.Context, query string, arg any) ([]*models.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (r *postRepository) UpdateStatus(ctx context.Context, status string, postID string) error {
	query := `
		UPDATE posts
		SET status = $1,
			updated_at = $2
		WHERE id = $3
	`
	_, err := r.db.ExecContext(ctx, query, status, time.Now(), postID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) UpdateFields(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts
		SET content = $1,
			caption = $2,
			media_path = $3,
			schedule_date = $4,
			updated_at = $5
		WHERE id = $6
	`
	_, err := r.db.ExecContext(ctx, query, post.Content, post.Caption, post.MediaPath, post.ScheduleDate, time.Now(), post.ID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) UpdateScheduleDate(ctx context.Context, postID string, scheduleDate sql.NullTime) error {
	query := "UPDATE posts SET schedule_date = $1, updated_at = $2 WHERE id = $3"
	_, err := r.db.ExecContext(ctx, query, scheduleDate, time.Now(), postID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) Remove(ctx context.Context, id string) error {
	query := "DELETE FROM posts WHERE id = $1"
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
