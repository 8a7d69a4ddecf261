package models

import (
	"database/sql"
	"time"
)

type Client struct {
	ID               int64         `db:"id" json:"id"`
	OwnerID          int64         `db:"owner_id" json:"owner_id"`
	Name             string        `db:"name" json:"name"`
	DeadlineDays     int           `db:"deadline_days" json:"deadline_days"`
	ActiveWorkflowID sql.NullInt64 `db:"active_workflow_id" json:"active_workflow_id"`
	CreatedAt        time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time     `db:"updated_at" json:"updated_at"`
}

const DefaultDeadlineDays = 7
