package transfer

import (
	"encoding/json"

	"github.com/socialgit/socialgit-api/internal/workflow"
)

type WorkflowSave struct {
	Name       string          `json:"name"`
	Components json.RawMessage `json:"components"`
}

type WorkflowDocument struct {
	Name       string               `json:"name"`
	Components []workflow.Component `json:"components"`
}
