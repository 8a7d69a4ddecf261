package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/socialgit/socialgit-api/internal/models"
	"github.com/socialgit/socialgit-api/internal/repository"
)

// QueueService is the operator-facing queue stage. The queue is a
// status value on the post row; nothing runs in the background.
type QueueService interface {
	Queue(ctx context.Context, postID string) error
	PostNow(ctx context.Context, postID string) error
	ListApproved(ctx context.Context) ([]*models.Post, error)
	ListQueued(ctx context.Context) ([]*models.Post, error)
}

type queueService struct {
	pr repository.PostRepository
}

func NewQueueService(pr repository.PostRepository) QueueService {
	return &queueService{pr: pr}
}

func (s *queueService) Queue(ctx context.Context, postID string) error {
	post, found, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}

	if post.Status != models.PostStatusApproved {
		slog.Info("queue refused", "post_id", postID, "status", post.Status)
		return ErrNotApproved
	}

	if post.ScheduleDate.Valid {
		if post.ScheduleDate.Time.Before(today()) {
			slog.Info("queue refused, deadline passed", "post_id", postID, "schedule_date", post.ScheduleDate.Time)
			return ErrDeadlinePassed
		}
	}

	return s.pr.UpdateStatus(ctx, models.PostStatusQueued, postID)
}

// PostNow flips the post to posted. Transmission is simulated, nothing
// is sent anywhere.
func (s *queueService) PostNow(ctx context.Context, postID string) error {
	post, found, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}

	if post.Status != models.PostStatusQueued {
		slog.Info("post refused", "post_id", postID, "status", post.Status)
		return ErrNotQueued
	}

	return s.pr.UpdateStatus(ctx, models.PostStatusPosted, postID)
}

func (s *queueService) ListApproved(ctx context.Context) ([]*models.Post, error) {
	return s.pr.ListByStatus(ctx, models.PostStatusApproved)
}

func (s *queueService) ListQueued(ctx context.Context) ([]*models.Post, error) {
	return s.pr.ListByStatus(ctx, models.PostStatusQueued)
}

func today() time.Time {
	n := time.Now().UTC()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}
