package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/socialgit/socialgit-api/internal/models"
	"github.com/socialgit/socialgit-api/internal/service"
)

// approvedPost creates a post and walks it to approved through its
// single approver.
func (e *env) approvedPost(t *testing.T, ownerID, clientID int64) string {
	t.Helper()
	postID := e.newPost(t, ownerID, clientID, "ready")
	bob := e.approverID(t, "bob")
	if err := e.approvalSvc.Record(context.Background(), postID, bob, service.DecisionApprove); err != nil {
		t.Fatalf("approve: %v", err)
	}
	return postID
}

func (e *env) setScheduleDate(t *testing.T, postID string, date time.Time) {
	t.Helper()
	if err := e.posts.UpdateScheduleDate(context.Background(), postID, sql.NullTime{Time: date, Valid: true}); err != nil {
		t.Fatalf("set schedule date: %v", err)
	}
}

func TestQueueRequiresApproval(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.users.Add("owner")
	clientID := e.newClient(t, owner.ID, "Acme", "bob")
	postID := e.newPost(t, owner.ID, clientID, "x")

	if err := e.queueSvc.Queue(ctx, postID); !errors.Is(err, service.ErrNotApproved) {
		t.Errorf("pending post: got %v, want ErrNotApproved", err)
	}
	if err := e.queueSvc.Queue(ctx, "no-such-post"); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("missing post: got %v, want ErrNotFound", err)
	}
}

func TestQueueDeadlinePassed(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.users.Add("owner")
	clientID := e.newClient(t, owner.ID, "Acme", "bob")
	postID := e.approvedPost(t, owner.ID, clientID)
	e.setScheduleDate(t, postID, time.Now().UTC().AddDate(0, 0, -1))

	if err := e.queueSvc.Queue(ctx, postID); !errors.Is(err, service.ErrDeadlinePassed) {
		t.Errorf("got %v, want ErrDeadlinePassed", err)
	}
	if got := e.post(t, postID).Status; got != models.PostStatusApproved {
		t.Errorf("status = %q, want approved", got)
	}
}

func TestQueueApprovedPost(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.users.Add("owner")
	clientID := e.newClient(t, owner.ID, "Acme", "bob")

	// no schedule date at all
	bare := e.approvedPost(t, owner.ID, clientID)
	if got := e.post(t, bare).ScheduleDate; got.Valid {
		t.Fatalf("schedule date = %v, want unset", got.Time)
	}
	if err := e.queueSvc.Queue(ctx, bare); err != nil {
		t.Fatalf("Queue: %v", err)
	}
	if got := e.post(t, bare).Status; got != models.PostStatusQueued {
		t.Errorf("status = %q, want queued", got)
	}

	// deadline still ahead
	future := e.approvedPost(t, owner.ID, clientID)
	e.setScheduleDate(t, future, time.Now().UTC().AddDate(0, 0, 2))
	if err := e.queueSvc.Queue(ctx, future); err != nil {
		t.Fatalf("Queue: %v", err)
	}

	queued, err := e.queueSvc.ListQueued(ctx)
	if err != nil {
		t.Fatalf("ListQueued: %v", err)
	}
	if len(queued) != 2 {
		t.Errorf("got %d queued posts, want 2", len(queued))
	}
}

func TestPostNow(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.users.Add("owner")
	clientID := e.newClient(t, owner.ID, "Acme", "bob")
	postID := e.approvedPost(t, owner.ID, clientID)

	if err := e.queueSvc.PostNow(ctx, postID); !errors.Is(err, service.ErrNotQueued) {
		t.Errorf("approved post: got %v, want ErrNotQueued", err)
	}

	if err := e.queueSvc.Queue(ctx, postID); err != nil {
		t.Fatalf("Queue: %v", err)
	}
	if err := e.queueSvc.PostNow(ctx, postID); err != nil {
		t.Fatalf("PostNow: %v", err)
	}
	if got := e.post(t, postID).Status; got != models.PostStatusPosted {
		t.Errorf("status = %q, want posted", got)
	}
}
