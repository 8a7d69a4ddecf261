package models

import "time"

// Workflow is a client-scoped automation rule set. Components holds the
// ordered component list as JSON text; internal/workflow decodes it.
type Workflow struct {
	ID         int64     `db:"id" json:"id"`
	ClientID   int64     `db:"client_id" json:"client_id"`
	Name       string    `db:"name" json:"name"`
	Components string    `db:"components" json:"-"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
