package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/socialgit/socialgit-api/internal/models"
)

// Revisions are append-only. There is deliberately no update or delete;
// rows disappear only through the posts cascade.
type RevisionRepository interface {
	Create(ctx context.Context, tx *sql.Tx, revision *models.PostRevision) (int64, error)
	ListByPostID(ctx context.Context, postID string) ([]*models.PostRevision, error)
}

type revisionRepository struct {
	db *sql.DB
}

func NewRevisionRepository(db *sql.DB) RevisionRepository {
	return &revisionRepository{db: db}
}

func (r *revisionRepository) Create(ctx context.Context, tx *sql.Tx, revision *models.PostRevision) (int64, error) {
	query := `
		INSERT INTO post_revisions (post_id, content, caption, media_path, schedule_date, revised_by_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	var err error

	if tx != nil {
		err = tx.QueryRowContext(ctx, query, revision.PostID, revision.Content, revision.Caption, revision.MediaPath, revision.ScheduleDate, revision.RevisedByID).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, query, revision.PostID, revision.Content, revision.Caption, revision.MediaPath, revision.ScheduleDate, revision.RevisedByID).Scan(&id)
	}
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *revisionRepository) ListByPostID(ctx context.Context, postID string) ([]*models.PostRevision, error) {
	query := `
		SELECT id, post_id, content, caption, media_path, schedule_date, revised_at, revised_by_id
		FROM post_revisions
		WHERE post_id = $1
		ORDER BY revised_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var revisions []*models.PostRevision
	for rows.Next() {
		var rev models.PostRevision
		err := rows.Scan(&rev.ID, &rev.PostID, &rev.Content, &rev.Caption, &rev.MediaPath, &rev.ScheduleDate, &rev.RevisedAt, &rev.RevisedByID)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		revisions = append(revisions, &rev)
	}
	return revisions, nil
}
