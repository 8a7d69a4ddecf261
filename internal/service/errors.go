package service

import (
	"errors"

	"github.com/socialgit/socialgit-api/internal/workflow"
)

// User-visible failures. Handlers branch on these to pick a status
// code; none of them is fatal to the process.
var (
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrDuplicateClient    = errors.New("client already exists")
	ErrNotAnApprover      = errors.New("you are not an approver for this post")
	ErrNotApproved        = errors.New("post not approved")
	ErrDeadlinePassed     = errors.New("deadline passed")
	ErrNotQueued          = errors.New("post not queued")
	ErrInvalidDate        = errors.New("invalid schedule date format, use YYYY-MM-DD")
	ErrInvalidFileType    = errors.New("invalid file type, allowed types: png, jpg, jpeg, gif, mp4")
	ErrNotFound           = errors.New("not found")

	ErrWorkflowMalformed = workflow.ErrMalformed
)
