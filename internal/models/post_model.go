package models

import (
	"database/sql"
	"time"
)

type Post struct {
	ID           string       `db:"id" json:"id"`
	ClientID     int64        `db:"client_id" json:"client_id"`
	Content      string       `db:"content" json:"content"`
	Caption      string       `db:"caption" json:"caption"`
	MediaPath    string       `db:"media_path" json:"media_path"`
	ScheduleDate sql.NullTime `db:"schedule_date" json:"schedule_date"`
	Status       string       `db:"status" json:"status"` // draft, pending, approved, queued, posted
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updated_at"`
}

type PostRevision struct {
	ID           int64        `db:"id" json:"id"`
	PostID       string       `db:"post_id" json:"post_id"`
	Content      string       `db:"content" json:"content"`
	Caption      string       `db:"caption" json:"caption"`
	MediaPath    string       `db:"media_path" json:"media_path"`
	ScheduleDate sql.NullTime `db:"schedule_date" json:"schedule_date"`
	RevisedAt    time.Time    `db:"revised_at" json:"revised_at"`
	RevisedByID  int64        `db:"revised_by_id" json:"revised_by_id"`
}

const (
	PostStatusDraft    = "draft"
	PostStatusPending  = "pending"
	PostStatusApproved = "approved"
	PostStatusQueued   = "queued"
	PostStatusPosted   = "posted"
)
