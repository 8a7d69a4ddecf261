package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"
	"time"

	"github.com/socialgit/socialgit-api/internal/models"
	"github.com/socialgit/socialgit-api/internal/service"
	"github.com/socialgit/socialgit-api/internal/transfer"
)

func TestCreatePostFallbackApprovers(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.users.Add("owner")
	clientID := e.newClient(t, owner.ID, "Acme", "bob", "carol")

	postID := e.newPost(t, owner.ID, clientID, "launch day")

	if got := e.post(t, postID).Status; got != models.PostStatusPending {
		t.Errorf("status = %q, want pending", got)
	}

	approvals, _ := e.approvals.ListByPostID(ctx, postID)
	if len(approvals) != 2 {
		t.Fatalf("got %d approval rows, want 2", len(approvals))
	}
	for _, approval := range approvals {
		if approval.Status != models.ApprovalStatusPending {
			t.Errorf("approval %d status = %q, want pending", approval.UserID, approval.Status)
		}
	}
}

func TestCreatePostAppliesActiveWorkflow(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.users.Add("owner")
	e.users.Add("bob")
	clientID := e.newClient(t, owner.ID, "Acme")

	e.activateWorkflow(t, owner.ID, clientID, `[
		{"type": "action", "name": "Assign Approvers", "options": [{"name": "approvers", "value": ["bob"]}]},
		{"type": "action", "name": "Set Deadline", "options": [{"name": "days", "value": "3"}]}
	]`)

	postID := e.newPost(t, owner.ID, clientID, "launch day")

	approvals, _ := e.approvals.ListByPostID(ctx, postID)
	if len(approvals) != 1 {
		t.Fatalf("got %d approval rows, want 1", len(approvals))
	}

	post := e.post(t, postID)
	created := post.CreatedAt.AddDate(0, 0, 3)
	want := time.Date(created.Year(), created.Month(), created.Day(), 0, 0, 0, 0, time.UTC)
	if !post.ScheduleDate.Valid || !post.ScheduleDate.Time.Equal(want) {
		t.Errorf("schedule date = %v, want %v", post.ScheduleDate, want)
	}
}

func TestCreatePostChecks(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.users.Add("owner")
	intruder := e.users.Add("intruder")
	clientID := e.newClient(t, owner.ID, "Acme")

	if _, err := e.postSvc.Create(ctx, owner.ID, 999, &transfer.PostCreation{Content: "x"}, nil); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("missing client: got %v, want ErrNotFound", err)
	}
	if _, err := e.postSvc.Create(ctx, intruder.ID, clientID, &transfer.PostCreation{Content: "x"}, nil); !errors.Is(err, service.ErrUnauthorized) {
		t.Errorf("foreign client: got %v, want ErrUnauthorized", err)
	}
	if _, err := e.postSvc.Create(ctx, owner.ID, clientID, &transfer.PostCreation{Content: "x", ScheduleDate: "01/02/2024"}, nil); !errors.Is(err, service.ErrInvalidDate) {
		t.Errorf("bad date: got %v, want ErrInvalidDate", err)
	}
}

func TestEditPostSnapshotsRevision(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.users.Add("owner")
	clientID := e.newClient(t, owner.ID, "Acme")
	postID := e.newPost(t, owner.ID, clientID, "first draft")

	err := e.postSvc.Edit(ctx, owner.ID, postID, &transfer.PostEdit{Content: "second draft", ScheduleDate: "2030-06-15"}, nil)
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}

	post := e.post(t, postID)
	if post.Content != "second draft" {
		t.Errorf("content = %q", post.Content)
	}
	if !post.ScheduleDate.Valid || post.ScheduleDate.Time.Format("2006-01-02") != "2030-06-15" {
		t.Errorf("schedule date = %v", post.ScheduleDate)
	}

	revisions, _ := e.revisions.ListByPostID(ctx, postID)
	if len(revisions) != 1 {
		t.Fatalf("got %d revisions, want 1", len(revisions))
	}
	if revisions[0].Content != "first draft" || revisions[0].RevisedByID != owner.ID {
		t.Errorf("revision = %+v", revisions[0])
	}
}

// An edit that fails date validation still leaves its revision behind:
// the snapshot commits before the fields are validated.
func TestEditPostBadDateKeepsRevision(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.users.Add("owner")
	clientID := e.newClient(t, owner.ID, "Acme")
	postID := e.newPost(t, owner.ID, clientID, "first draft")

	err := e.postSvc.Edit(ctx, owner.ID, postID, &transfer.PostEdit{Content: "second draft", ScheduleDate: "not-a-date"}, nil)
	if !errors.Is(err, service.ErrInvalidDate) {
		t.Fatalf("got %v, want ErrInvalidDate", err)
	}

	if got := e.post(t, postID).Content; got != "first draft" {
		t.Errorf("content = %q, post should be unchanged", got)
	}

	revisions, _ := e.revisions.ListByPostID(ctx, postID)
	if len(revisions) != 1 {
		t.Errorf("got %d revisions, want 1", len(revisions))
	}
}

func TestEditPostInvalidFileType(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.users.Add("owner")
	clientID := e.newClient(t, owner.ID, "Acme")
	postID := e.newPost(t, owner.ID, clientID, "first draft")

	e.media.err = service.ErrInvalidFileType
	file := &multipart.FileHeader{Filename: "notes.txt"}
	err := e.postSvc.Edit(ctx, owner.ID, postID, &transfer.PostEdit{Content: "second draft"}, file)
	if !errors.Is(err, service.ErrInvalidFileType) {
		t.Fatalf("got %v, want ErrInvalidFileType", err)
	}

	post := e.post(t, postID)
	if post.Content != "first draft" || post.MediaPath != "" {
		t.Errorf("post changed: %+v", post)
	}
}

func TestRemovePost(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.users.Add("owner")
	intruder := e.users.Add("intruder")
	clientID := e.newClient(t, owner.ID, "Acme")
	postID := e.newPost(t, owner.ID, clientID, "x")

	if err := e.postSvc.Remove(ctx, intruder.ID, postID); !errors.Is(err, service.ErrUnauthorized) {
		t.Errorf("foreign remove: got %v, want ErrUnauthorized", err)
	}
	if err := e.postSvc.Remove(ctx, owner.ID, postID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := e.postSvc.Info(ctx, postID); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound after remove", err)
	}
}
