// Package repositorytest provides in-memory repository implementations
// for tests.
package repositorytest

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/socialgit/socialgit-api/internal/models"
	"github.com/socialgit/socialgit-api/internal/repository"
)

type Users struct {
	seq  int64
	byID map[int64]models.User
}

func NewUsers() *Users {
	return &Users{byID: make(map[int64]models.User)}
}

// Add is a test convenience around Create.
func (f *Users) Add(username string) *models.User {
	id, _ := f.Create(context.Background(), nil, &models.User{Username: username, PasswordHash: "x"})
	user := f.byID[id]
	return &user
}

func (f *Users) GetByID(ctx context.Context, id int64) (*models.User, bool, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, false, nil
	}
	return &user, true, nil
}

func (f *Users) GetByUsername(ctx context.Context, username string) (*models.User, bool, error) {
	for _, user := range f.byID {
		if user.Username == username {
			u := user
			return &u, true, nil
		}
	}
	return nil, false, nil
}

func (f *Users) Create(ctx context.Context, tx *sql.Tx, user *models.User) (int64, error) {
	f.seq++
	stored := *user
	stored.ID = f.seq
	stored.CreatedAt = time.Now()
	f.byID[stored.ID] = stored
	return stored.ID, nil
}

func (f *Users) List(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	for id := range f.byID {
		user := f.byID[id]
		users = append(users, &user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

func (f *Users) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	user, ok := f.byID[id]
	if !ok {
		return nil
	}
	user.PasswordHash = passwordHash
	f.byID[id] = user
	return nil
}

type Clients struct {
	seq       int64
	byID      map[int64]models.Client
	approvers map[int64][]int64
	users     *Users
}

func NewClients(users *Users) *Clients {
	return &Clients{
		byID:      make(map[int64]models.Client),
		approvers: make(map[int64][]int64),
		users:     users,
	}
}

func (f *Clients) GetByID(ctx context.Context, id int64) (*models.Client, bool, error) {
	client, ok := f.byID[id]
	if !ok {
		return nil, false, nil
	}
	return &client, true, nil
}

func (f *Clients) ExistsByName(ctx context.Context, name string) (bool, error) {
	for _, client := range f.byID {
		if client.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (f *Clients) Create(ctx context.Context, tx *sql.Tx, client *models.Client) (int64, error) {
	f.seq++
	stored := *client
	stored.ID = f.seq
	stored.CreatedAt = time.Now()
	f.byID[stored.ID] = stored
	return stored.ID, nil
}

func (f *Clients) ListByOwnerID(ctx context.Context, ownerID int64) ([]*models.Client, error) {
	var clients []*models.Client
	for id := range f.byID {
		if f.byID[id].OwnerID == ownerID {
			client := f.byID[id]
			clients = append(clients, &client)
		}
	}
	sort.Slice(clients, func(i, j int) bool { return clients[i].Name < clients[j].Name })
	return clients, nil
}

func (f *Clients) SetActiveWorkflow(ctx context.Context, clientID int64, workflowID sql.NullInt64) error {
	client, ok := f.byID[clientID]
	if !ok {
		return nil
	}
	client.ActiveWorkflowID = workflowID
	f.byID[clientID] = client
	return nil
}

func (f *Clients) ListApprovers(ctx context.Context, clientID int64) ([]*models.User, error) {
	var users []*models.User
	for _, userID := range f.approvers[clientID] {
		user, ok, err := f.users.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if ok {
			users = append(users, user)
		}
	}
	return users, nil
}

func (f *Clients) HasApprover(ctx context.Context, clientID, userID int64) (bool, error) {
	for _, id := range f.approvers[clientID] {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *Clients) AddApprover(ctx context.Context, clientID, userID int64) error {
	has, _ := f.HasApprover(ctx, clientID, userID)
	if !has {
		f.approvers[clientID] = append(f.approvers[clientID], userID)
	}
	return nil
}

type Posts struct {
	byID map[string]models.Post
}

func NewPosts() *Posts {
	return &Posts{byID: make(map[string]models.Post)}
}

func (f *Posts) GetByID(ctx context.Context, id string) (*models.Post, bool, error) {
	post, ok := f.byID[id]
	if !ok {
		return nil, false, nil
	}
	return &post, true, nil
}

func (f *Posts) Create(ctx context.Context, tx *sql.Tx, post *models.Post) error {
	f.byID[post.ID] = *post
	return nil
}

func (f *Posts) ListByClientID(ctx context.Context, clientID int64) ([]*models.Post, error) {
	var posts []*models.Post
	for id := range f.byID {
		if f.byID[id].ClientID == clientID {
			post := f.byID[id]
			posts = append(posts, &post)
		}
	}
	return posts, nil
}

func (f *Posts) ListByStatus(ctx context.Context, status string) ([]*models.Post, error) {
	var posts []*models.Post
	for id := range f.byID {
		if f.byID[id].Status == status {
			post := f.byID[id]
			posts = append(posts, &post)
		}
	}
	return posts, nil
}

func (f *Posts) UpdateStatus(ctx context.Context, status string, postID string) error {
	post, ok := f.byID[postID]
	if !ok {
		return nil
	}
	post.Status = status
	f.byID[postID] = post
	return nil
}

func (f *Posts) UpdateFields(ctx context.Context, updated *models.Post) error {
	post, ok := f.byID[updated.ID]
	if !ok {
		return nil
	}
	post.Content = updated.Content
	post.Caption = updated.Caption
	post.MediaPath = updated.MediaPath
	post.ScheduleDate = updated.ScheduleDate
	f.byID[updated.ID] = post
	return nil
}

func (f *Posts) UpdateScheduleDate(ctx context.Context, postID string, scheduleDate sql.NullTime) error {
	post, ok := f.byID[postID]
	if !ok {
		return nil
	}
	post.ScheduleDate = scheduleDate
	f.byID[postID] = post
	return nil
}

func (f *Posts) Remove(ctx context.Context, id string) error {
	delete(f.byID, id)
	return nil
}

type Approvals struct {
	seq  int64
	rows []models.Approval
}

func NewApprovals() *Approvals {
	return &Approvals{}
}

func (f *Approvals) GetByPostAndUser(ctx context.Context, postID string, userID int64) (*models.Approval, bool, error) {
	for i := range f.rows {
		if f.rows[i].PostID == postID && f.rows[i].UserID == userID {
			approval := f.rows[i]
			return &approval, true, nil
		}
	}
	return nil, false, nil
}

func (f *Approvals) Create(ctx context.Context, tx *sql.Tx, approval *models.Approval) (int64, error) {
	f.seq++
	stored := *approval
	stored.ID = f.seq
	stored.CreatedAt = time.Now()
	f.rows = append(f.rows, stored)
	return stored.ID, nil
}

func (f *Approvals) ListByPostID(ctx context.Context, postID string) ([]*models.Approval, error) {
	var approvals []*models.Approval
	for i := range f.rows {
		if f.rows[i].PostID == postID {
			approval := f.rows[i]
			approvals = append(approvals, &approval)
		}
	}
	return approvals, nil
}

func (f *Approvals) UpdateStatus(ctx context.Context, approvalID int64, status string) error {
	for i := range f.rows {
		if f.rows[i].ID == approvalID {
			f.rows[i].Status = status
		}
	}
	return nil
}

type Revisions struct {
	seq  int64
	rows []models.PostRevision
}

func NewRevisions() *Revisions {
	return &Revisions{}
}

func (f *Revisions) Create(ctx context.Context, tx *sql.Tx, revision *models.PostRevision) (int64, error) {
	f.seq++
	stored := *revision
	stored.ID = f.seq
	stored.RevisedAt = time.Now()
	f.rows = append(f.rows, stored)
	return stored.ID, nil
}

func (f *Revisions) ListByPostID(ctx context.Context, postID string) ([]*models.PostRevision, error) {
	var revisions []*models.PostRevision
	for i := len(f.rows) - 1; i >= 0; i-- {
		if f.rows[i].PostID == postID {
			revision := f.rows[i]
			revisions = append(revisions, &revision)
		}
	}
	return revisions, nil
}

type Workflows struct {
	seq  int64
	byID map[int64]models.Workflow
}

func NewWorkflows() *Workflows {
	return &Workflows{byID: make(map[int64]models.Workflow)}
}

func (f *Workflows) GetByID(ctx context.Context, id int64) (*models.Workflow, bool, error) {
	workflow, ok := f.byID[id]
	if !ok {
		return nil, false, nil
	}
	return &workflow, true, nil
}

func (f *Workflows) Create(ctx context.Context, tx *sql.Tx, workflow *models.Workflow) (int64, error) {
	f.seq++
	stored := *workflow
	stored.ID = f.seq
	stored.CreatedAt = time.Now()
	f.byID[stored.ID] = stored
	return stored.ID, nil
}

func (f *Workflows) ListByClientID(ctx context.Context, clientID int64) ([]*models.Workflow, error) {
	var workflows []*models.Workflow
	for id := range f.byID {
		if f.byID[id].ClientID == clientID {
			workflow := f.byID[id]
			workflows = append(workflows, &workflow)
		}
	}
	sort.Slice(workflows, func(i, j int) bool { return workflows[i].ID < workflows[j].ID })
	return workflows, nil
}

// Interface checks.
var (
	_ repository.UserRepository     = (*Users)(nil)
	_ repository.ClientRepository   = (*Clients)(nil)
	_ repository.PostRepository     = (*Posts)(nil)
	_ repository.ApprovalRepository = (*Approvals)(nil)
	_ repository.RevisionRepository = (*Revisions)(nil)
	_ repository.WorkflowRepository = (*Workflows)(nil)
)
