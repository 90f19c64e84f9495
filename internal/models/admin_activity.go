package models

import "time"

type ActivityAction string

const (
	ActionLogin        ActivityAction = "login"
	ActionJobCreated   ActivityAction = "job_created"
	ActionJobUpdated   ActivityAction = "job_updated"
	ActionFollowupDone ActivityAction = "followup_done"
	ActionUserLocked   ActivityAction = "user_locked"
	ActionUserUnlocked ActivityAction = "user_unlocked"
)

// AdminActivity is an append-only audit log entry. Entries are never
// updated or deleted.
type AdminActivity struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	UserID    uint64         `gorm:"not null;index" json:"user_id"`
	Action    ActivityAction `gorm:"type:varchar(50);not null" json:"action"`
	JobID     *uint64        `json:"job_id"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Job  *Job `gorm:"foreignKey:JobID;constraint:OnDelete:SET NULL" json:"job,omitempty"`
}
