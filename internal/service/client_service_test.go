package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/socialgit/socialgit-api/internal/service"
	"github.com/socialgit/socialgit-api/internal/transfer"
)

func TestCreateClientDuplicateName(t *testing.T) {
	e := newEnv()
	owner := e.users.Add("owner")

	e.newClient(t, owner.ID, "Acme")
	_, err := e.clientSvc.Create(context.Background(), owner.ID, &transfer.ClientCreation{Name: "Acme"})
	if !errors.Is(err, service.ErrDuplicateClient) {
		t.Errorf("got %v, want ErrDuplicateClient", err)
	}
}

func TestCreateClientSkipsUnknownApprovers(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.users.Add("owner")
	bob := e.users.Add("bob")

	clientID, err := e.clientSvc.Create(ctx, owner.ID, &transfer.ClientCreation{
		Name:        "Acme",
		ApproverIDs: []int64{bob.ID, 999},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	approvers, err := e.clientSvc.Approvers(ctx, clientID, owner.ID)
	if err != nil {
		t.Fatalf("Approvers: %v", err)
	}
	if len(approvers) != 1 || approvers[0].ID != bob.ID {
		t.Errorf("approvers = %+v, want just bob", approvers)
	}
}

func TestClientInfoOwnership(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.users.Add("owner")
	intruder := e.users.Add("intruder")
	clientID := e.newClient(t, owner.ID, "Acme")

	if _, err := e.clientSvc.Info(ctx, clientID, intruder.ID); !errors.Is(err, service.ErrUnauthorized) {
		t.Errorf("foreign access: got %v, want ErrUnauthorized", err)
	}
	if _, err := e.clientSvc.Info(ctx, 999, owner.ID); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("missing client: got %v, want ErrNotFound", err)
	}
}

func TestSetActiveWorkflow(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.users.Add("owner")
	clientID := e.newClient(t, owner.ID, "Acme")
	otherClientID := e.newClient(t, owner.ID, "Globex")

	workflowID, err := e.workflowSvc.Save(ctx, owner.ID, clientID, &transfer.WorkflowSave{
		Name:       "flow",
		Components: []byte(`[{"type": "action", "name": "Queue Post"}]`),
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	// A workflow can only be activated on its own client.
	if err := e.clientSvc.SetActiveWorkflow(ctx, owner.ID, otherClientID, workflowID); !errors.Is(err, service.ErrUnauthorized) {
		t.Errorf("foreign workflow: got %v, want ErrUnauthorized", err)
	}

	if err := e.clientSvc.SetActiveWorkflow(ctx, owner.ID, clientID, workflowID); err != nil {
		t.Fatalf("SetActiveWorkflow: %v", err)
	}
	client, _ := e.clientSvc.Info(ctx, clientID, owner.ID)
	if !client.ActiveWorkflowID.Valid || client.ActiveWorkflowID.Int64 != workflowID {
		t.Errorf("active workflow = %+v, want %d", client.ActiveWorkflowID, workflowID)
	}

	// Zero clears.
	if err := e.clientSvc.SetActiveWorkflow(ctx, owner.ID, clientID, 0); err != nil {
		t.Fatalf("clear active workflow: %v", err)
	}
	client, _ = e.clientSvc.Info(ctx, clientID, owner.ID)
	if client.ActiveWorkflowID.Valid {
		t.Errorf("active workflow still set: %+v", client.ActiveWorkflowID)
	}
}
