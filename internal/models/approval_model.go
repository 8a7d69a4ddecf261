package models

import "time"

// Approval is one approver's verdict on one post. There is at most one
// row per (post, user) pair; the services check for an existing row
// before inserting.
type Approval struct {
	ID        int64     `db:"id" json:"id"`
	PostID    string    `db:"post_id" json:"post_id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Status    string    `db:"status" json:"status"` // pending, approved, rejected
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

const (
	ApprovalStatusPending  = "pending"
	ApprovalStatusApproved = "approved"
	ApprovalStatusRejected = "rejected"
)
