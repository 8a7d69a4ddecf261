package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/socialgit/socialgit-api/internal/models"
	"github.com/socialgit/socialgit-api/internal/repository"
	"github.com/socialgit/socialgit-api/internal/transfer"
	"github.com/socialgit/socialgit-api/internal/workflow"
)

const scheduleDateLayout = "2006-01-02"

type PostService interface {
	Create(ctx context.Context, ownerID, clientID int64, pc *transfer.PostCreation, file *multipart.FileHeader) (string, error)
	Edit(ctx context.Context, editorID int64, postID string, pe *transfer.PostEdit, file *multipart.FileHeader) error
	Info(ctx context.Context, postID string) (*models.Post, error)
	ListByClient(ctx context.Context, ownerID, clientID int64) ([]*models.Post, error)
	Revisions(ctx context.Context, postID string) ([]*models.PostRevision, error)
	Remove(ctx context.Context, ownerID int64, postID string) error
}

type postService struct {
	pr     repository.PostRepository
	cr     repository.ClientRepository
	rr     repository.RevisionRepository
	ar     repository.ApprovalRepository
	wr     repository.WorkflowRepository
	media  MediaService
	engine *workflow.Engine
}

func NewPostService(
	pr repository.PostRepository,
	cr repository.ClientRepository,
	rr repository.RevisionRepository,
	ar repository.ApprovalRepository,
	wr repository.WorkflowRepository,
	media MediaService,
	engine *workflow.Engine) PostService {
	return &postService{
		pr:     pr,
		cr:     cr,
		rr:     rr,
		ar:     ar,
		wr:     wr,
		media:  media,
		engine: engine,
	}
}

// Create inserts the post as pending, then either applies the client's
// active workflow or falls back to one pending approval per current
// client approver.
func (s *postService) Create(ctx context.Context, ownerID, clientID int64, pc *transfer.PostCreation, file *multipart.FileHeader) (string, error) {
	if pc == nil || pc.Content == "" {
		err := errors.New("post content cannot be empty")
		slog.Info(err.Error())
		return "", err
	}

	client, err := s.ownedClient(ctx, clientID, ownerID)
	if err != nil {
		return "", err
	}

	scheduleDate, err := parseScheduleDate(pc.ScheduleDate)
	if err != nil {
		return "", err
	}

	var mediaPath string
	if file != nil {
		mediaPath, err = s.media.Upload(ctx, file)
		if err != nil {
			return "", err
		}
	}

	id, err := gonanoid.New()
	if err != nil {
		return "", err
	}

	post := models.Post{
		ID:           id,
		ClientID:     clientID,
		Content:      pc.Content,
		Caption:      pc.Caption,
		MediaPath:    mediaPath,
		ScheduleDate: scheduleDate,
		Status:       models.PostStatusPending,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.pr.Create(ctx, nil, &post); err != nil {
		return "", fmt.Errorf("error creating post: %w", err)
	}

	if client.ActiveWorkflowID.Valid {
		wf, found, err := s.wr.GetByID(ctx, client.ActiveWorkflowID.Int64)
		if err != nil {
			return "", err
		}
		if !found {
			return "", ErrNotFound
		}
		if err := s.engine.Apply(ctx, &post, wf); err != nil {
			return "", err
		}
		return id, nil
	}

	approvers, err := s.cr.ListApprovers(ctx, clientID)
	if err != nil {
		return "", err
	}
	for _, approver := range approvers {
		approval := models.Approval{
			PostID: id,
			UserID: approver.ID,
			Status: models.ApprovalStatusPending,
		}
		if _, err := s.ar.Create(ctx, nil, &approval); err != nil {
			return "", err
		}
	}

	return id, nil
}

// Edit snapshots the current field values into a revision before
// touching anything. The snapshot commits first, so an edit that then
// fails validation still leaves the revision behind.
func (s *postService) Edit(ctx context.Context, editorID int64, postID string, pe *transfer.PostEdit, file *multipart.FileHeader) error {
	post, found, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}

	if _, err := s.ownedClient(ctx, post.ClientID, editorID); err != nil {
		return err
	}

	revision := models.PostRevision{
		PostID:       post.ID,
		Content:      post.Content,
		Caption:      post.Caption,
		MediaPath:    post.MediaPath,
		ScheduleDate: post.ScheduleDate,
		RevisedByID:  editorID,
	}
	if _, err := s.rr.Create(ctx, nil, &revision); err != nil {
		return fmt.Errorf("error saving revision: %w", err)
	}

	if pe.Content != "" {
		post.Content = pe.Content
	}
	if pe.Caption != "" {
		post.Caption = pe.Caption
	}

	if pe.ScheduleDate != "" {
		scheduleDate, err := parseScheduleDate(pe.ScheduleDate)
		if err != nil {
			return err
		}
		post.ScheduleDate = scheduleDate
	} else {
		post.ScheduleDate = sql.NullTime{}
	}

	if file != nil {
		mediaPath, err := s.media.Upload(ctx, file)
		if err != nil {
			return err
		}
		post.MediaPath = mediaPath
	}

	if err := s.pr.UpdateFields(ctx, post); err != nil {
		return fmt.Errorf("error updating post: %w", err)
	}
	return nil
}

func (s *postService) Info(ctx context.Context, postID string) (*models.Post, error) {
	post, found, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !found {
		slog.Info("post not found", "post_id", postID)
		return nil, ErrNotFound
	}
	return post, nil
}

func (s *postService) ListByClient(ctx context.Context, ownerID, clientID int64) ([]*models.Post, error) {
	if _, err := s.ownedClient(ctx, clientID, ownerID); err != nil {
		return nil, err
	}
	return s.pr.ListByClientID(ctx, clientID)
}

func (s *postService) Revisions(ctx context.Context, postID string) ([]*models.PostRevision, error) {
	if _, err := s.Info(ctx, postID); err != nil {
		return nil, err
	}
	return s.rr.ListByPostID(ctx, postID)
}

func (s *postService) Remove(ctx context.Context, ownerID int64, postID string) error {
	post, err := s.Info(ctx, postID)
	if err != nil {
		return err
	}
	if _, err := s.ownedClient(ctx, post.ClientID, ownerID); err != nil {
		return err
	}
	return s.pr.Remove(ctx, postID)
}

func (s *postService) ownedClient(ctx context.Context, clientID, userID int64) (*models.Client, error) {
	client, found, err := s.cr.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	if client.OwnerID != userID {
		slog.Info("client access refused", "client_id", clientID, "user_id", userID)
		return nil, ErrUnauthorized
	}
	return client, nil
}

func parseScheduleDate(value string) (sql.NullTime, error) {
	if value == "" {
		return sql.NullTime{}, nil
	}
	parsed, err := time.Parse(scheduleDateLayout, value)
	if err != nil {
		slog.Info("bad schedule date", "value", value)
		return sql.NullTime{}, ErrInvalidDate
	}
	return sql.NullTime{Time: parsed, Valid: true}, nil
}
