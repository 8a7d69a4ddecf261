package service_test

import (
	"context"
	"mime/multipart"
	"testing"

	config "github.com/socialgit/socialgit-api/configs"
	"github.com/socialgit/socialgit-api/internal/models"
	"github.com/socialgit/socialgit-api/internal/repository/repositorytest"
	"github.com/socialgit/socialgit-api/internal/service"
	"github.com/socialgit/socialgit-api/internal/transfer"
	"github.com/socialgit/socialgit-api/internal/workflow"
)

type fakeMedia struct {
	path string
	err  error
}

func (m *fakeMedia) Upload(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.path, nil
}

type env struct {
	users     *repositorytest.Users
	clients   *repositorytest.Clients
	posts     *repositorytest.Posts
	approvals *repositorytest.Approvals
	revisions *repositorytest.Revisions
	workflows *repositorytest.Workflows
	media     *fakeMedia

	authSvc     service.AuthService
	clientSvc   service.ClientService
	postSvc     service.PostService
	approvalSvc service.ApprovalService
	workflowSvc service.WorkflowService
	queueSvc    service.QueueService
}

func newEnv() *env {
	users := repositorytest.NewUsers()
	clients := repositorytest.NewClients(users)
	posts := repositorytest.NewPosts()
	approvals := repositorytest.NewApprovals()
	revisions := repositorytest.NewRevisions()
	workflows := repositorytest.NewWorkflows()
	media := &fakeMedia{path: "uploads/test.png"}

	engine := workflow.NewEngine(users, clients, posts, approvals)

	return &env{
		users:     users,
		clients:   clients,
		posts:     posts,
		approvals: approvals,
		revisions: revisions,
		workflows: workflows,
		media:     media,

		authSvc:     service.NewAuthService(config.Config{}, users),
		clientSvc:   service.NewClientService(clients, users, workflows),
		postSvc:     service.NewPostService(posts, clients, revisions, approvals, workflows, media, engine),
		approvalSvc: service.NewApprovalService(approvals, posts, clients, workflows, engine),
		workflowSvc: service.NewWorkflowService(workflows, clients),
		queueSvc:    service.NewQueueService(posts),
	}
}

// newClient creates an owner-owned client with the named users as
// approvers, creating those users on the way.
func (e *env) newClient(t *testing.T, ownerID int64, name string, approverNames ...string) int64 {
	t.Helper()
	var approverIDs []int64
	for _, username := range approverNames {
		user := e.users.Add(username)
		approverIDs = append(approverIDs, user.ID)
	}
	clientID, err := e.clientSvc.Create(context.Background(), ownerID, &transfer.ClientCreation{
		Name:        name,
		ApproverIDs: approverIDs,
	})
	if err != nil {
		t.Fatalf("create client %s: %v", name, err)
	}
	return clientID
}

func (e *env) newPost(t *testing.T, ownerID, clientID int64, content string) string {
	t.Helper()
	postID, err := e.postSvc.Create(context.Background(), ownerID, clientID, &transfer.PostCreation{Content: content}, nil)
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	return postID
}

func (e *env) post(t *testing.T, postID string) *models.Post {
	t.Helper()
	post, found, err := e.posts.GetByID(context.Background(), postID)
	if err != nil || !found {
		t.Fatalf("post %s not found", postID)
	}
	return post
}

// activateWorkflow saves the component list for the client and wires it
// as the active workflow.
func (e *env) activateWorkflow(t *testing.T, ownerID, clientID int64, components string) int64 {
	t.Helper()
	workflowID, err := e.workflowSvc.Save(context.Background(), ownerID, clientID, &transfer.WorkflowSave{
		Name:       "flow",
		Components: []byte(components),
	})
	if err != nil {
		t.Fatalf("save workflow: %v", err)
	}
	if err := e.clientSvc.SetActiveWorkflow(context.Background(), ownerID, clientID, workflowID); err != nil {
		t.Fatalf("set active workflow: %v", err)
	}
	return workflowID
}
