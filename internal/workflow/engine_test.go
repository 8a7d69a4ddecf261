package workflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/socialgit/socialgit-api/internal/models"
	"github.com/socialgit/socialgit-api/internal/repository/repositorytest"
)

type fixture struct {
	users     *repositorytest.Users
	clients   *repositorytest.Clients
	posts     *repositorytest.Posts
	approvals *repositorytest.Approvals
	engine    *Engine
}

func newFixture() *fixture {
	users := repositorytest.NewUsers()
	clients := repositorytest.NewClients(users)
	posts := repositorytest.NewPosts()
	approvals := repositorytest.NewApprovals()
	return &fixture{
		users:     users,
		clients:   clients,
		posts:     posts,
		approvals: approvals,
		engine:    NewEngine(users, clients, posts, approvals),
	}
}

func (f *fixture) newPost(t *testing.T, clientID int64, createdAt time.Time) *models.Post {
	t.Helper()
	post := &models.Post{
		ID:        "post-1",
		ClientID:  clientID,
		Content:   "hello",
		Status:    models.PostStatusPending,
		CreatedAt: createdAt,
	}
	if err := f.posts.Create(context.Background(), nil, post); err != nil {
		t.Fatalf("Create post: %v", err)
	}
	return post
}

func wfWith(components string) *models.Workflow {
	return &models.Workflow{ID: 1, ClientID: 1, Name: "wf", Components: components}
}

func TestApplyNilWorkflow(t *testing.T) {
	f := newFixture()
	post := f.newPost(t, 1, time.Now())

	if err := f.engine.Apply(context.Background(), post, nil); err != nil {
		t.Fatalf("Apply(nil): %v", err)
	}
	if post.Status != models.PostStatusPending {
		t.Errorf("status = %q, want pending", post.Status)
	}
}

func TestAssignApproversIdempotent(t *testing.T) {
	f := newFixture()
	bob := f.users.Add("bob")
	post := f.newPost(t, 1, time.Now())

	wf := wfWith(`[{"type": "action", "name": "Assign Approvers", "options": [{"name": "approvers", "value": ["bob", "ghost"]}]}]`)

	for i := 0; i < 2; i++ {
		if err := f.engine.Apply(context.Background(), post, wf); err != nil {
			t.Fatalf("Apply #%d: %v", i+1, err)
		}
	}

	approvals, _ := f.approvals.ListByPostID(context.Background(), post.ID)
	if len(approvals) != 1 {
		t.Fatalf("got %d approval rows, want 1", len(approvals))
	}
	if approvals[0].UserID != bob.ID || approvals[0].Status != models.ApprovalStatusPending {
		t.Errorf("approval = %+v", approvals[0])
	}

	isApprover, _ := f.clients.HasApprover(context.Background(), 1, bob.ID)
	if !isApprover {
		t.Error("bob should be a client approver")
	}
}

func TestSetDeadline(t *testing.T) {
	f := newFixture()
	created := time.Date(2024, 1, 1, 15, 30, 0, 0, time.UTC)
	post := f.newPost(t, 1, created)

	wf := wfWith(`[{"type": "action", "name": "Set Deadline", "options": [{"name": "days", "value": "3"}]}]`)
	if err := f.engine.Apply(context.Background(), post, wf); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	want := time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)
	if !post.ScheduleDate.Valid || !post.ScheduleDate.Time.Equal(want) {
		t.Errorf("schedule date = %v, want %v", post.ScheduleDate, want)
	}

	stored, _, _ := f.posts.GetByID(context.Background(), post.ID)
	if !stored.ScheduleDate.Valid || !stored.ScheduleDate.Time.Equal(want) {
		t.Errorf("stored schedule date = %v, want %v", stored.ScheduleDate, want)
	}
}

func TestSetDeadlineDefaultDays(t *testing.T) {
	f := newFixture()
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	post := f.newPost(t, 1, created)

	wf := wfWith(`[{"type": "action", "name": "Set Deadline", "options": [{"name": "days", "value": ""}]}]`)
	if err := f.engine.Apply(context.Background(), post, wf); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	want := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	if !post.ScheduleDate.Valid || !post.ScheduleDate.Time.Equal(want) {
		t.Errorf("schedule date = %v, want %v", post.ScheduleDate, want)
	}
}

func TestSetDeadlineBadDays(t *testing.T) {
	f := newFixture()
	post := f.newPost(t, 1, time.Now())

	wf := wfWith(`[{"type": "action", "name": "Set Deadline", "options": [{"name": "days", "value": "soon"}]}]`)
	if err := f.engine.Apply(context.Background(), post, wf); !errors.Is(err, ErrMalformed) {
		t.Errorf("got %v, want ErrMalformed", err)
	}
}

func TestQueueAndPostNow(t *testing.T) {
	f := newFixture()
	post := f.newPost(t, 1, time.Now())

	wf := wfWith(`[{"type": "action", "name": "Queue Post"}]`)
	if err := f.engine.Apply(context.Background(), post, wf); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if post.Status != models.PostStatusQueued {
		t.Errorf("status = %q, want queued", post.Status)
	}

	wf = wfWith(`[{"type": "action", "name": "Post Now"}]`)
	if err := f.engine.Apply(context.Background(), post, wf); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if post.Status != models.PostStatusPosted {
		t.Errorf("status = %q, want posted", post.Status)
	}
}

func TestUnknownActionIsNoOp(t *testing.T) {
	f := newFixture()
	post := f.newPost(t, 1, time.Now())

	wf := wfWith(`[
		{"type": "action", "name": "Ring The Bell"},
		{"type": "trigger", "name": "Queue Post"}
	]`)
	if err := f.engine.Apply(context.Background(), post, wf); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	// The unknown action does nothing, and Queue Post with a
	// non-action type is skipped too.
	if post.Status != models.PostStatusPending {
		t.Errorf("status = %q, want pending", post.Status)
	}
}

func TestApplyMalformedComponents(t *testing.T) {
	f := newFixture()
	post := f.newPost(t, 1, time.Now())

	wf := wfWith(`{"oops": true}`)
	if err := f.engine.Apply(context.Background(), post, wf); !errors.Is(err, ErrMalformed) {
		t.Errorf("got %v, want ErrMalformed", err)
	}
}

func TestOrderedApplication(t *testing.T) {
	f := newFixture()
	f.users.Add("bob")
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	post := f.newPost(t, 1, created)

	wf := wfWith(`[
		{"type": "action", "name": "Assign Approvers", "options": [{"name": "approvers", "value": ["bob"]}]},
		{"type": "action", "name": "Set Deadline", "options": [{"name": "days", "value": "3"}]},
		{"type": "action", "name": "Queue Post"}
	]`)
	if err := f.engine.Apply(context.Background(), post, wf); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	approvals, _ := f.approvals.ListByPostID(context.Background(), post.ID)
	if len(approvals) != 1 {
		t.Errorf("got %d approval rows, want 1", len(approvals))
	}
	want := time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)
	if !post.ScheduleDate.Valid || !post.ScheduleDate.Time.Equal(want) {
		t.Errorf("schedule date = %v, want %v", post.ScheduleDate, want)
	}
	if post.Status != models.PostStatusQueued {
		t.Errorf("status = %q, want queued", post.Status)
	}
}
