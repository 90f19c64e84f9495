package models

import (
	"time"

	"gorm.io/gorm"
)

type JobStatus string

const (
	StatusApplied   JobStatus = "applied"
	StatusInterview JobStatus = "interview"
	StatusOffered   JobStatus = "offered"
	StatusRejected  JobStatus = "rejected"
)

// ValidJobStatus reports whether s is one of the four pipeline statuses.
func ValidJobStatus(s string) bool {
	switch JobStatus(s) {
	case StatusApplied, StatusInterview, StatusOffered, StatusRejected:
		return true
	}
	return false
}

type JobPriority string

const (
	PriorityHigh   JobPriority = "high"
	PriorityMedium JobPriority = "medium"
	PriorityLow    JobPriority = "low"
)

// ValidJobPriority reports whether p is a known priority value.
func ValidJobPriority(p string) bool {
	switch JobPriority(p) {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// PriorityRank maps priorities to their sort rank (high first).
func PriorityRank(p JobPriority) int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	default:
		return 3
	}
}

type Job struct {
	ID              uint64         `gorm:"primarykey" json:"id"`
	UserID          uint64         `gorm:"not null;index" json:"user_id"`
	Title           string         `gorm:"type:varchar(200);not null" json:"title"`
	Company         string         `gorm:"type:varchar(200);not null" json:"company"`
	Status          JobStatus      `gorm:"type:varchar(50);not null;index" json:"status"`
	Priority        JobPriority    `gorm:"type:varchar(10);not null;default:'medium'" json:"priority"`
	ApplyDate       time.Time      `gorm:"not null;index" json:"apply_date"`
	FollowUpDate    *time.Time     `gorm:"index" json:"follow_up_date"`
	FollowUpDone    bool           `gorm:"not null;default:false" json:"follow_up_done"`
	Notes           string         `gorm:"type:text" json:"notes"`
	RejectionReason string         `gorm:"type:text" json:"rejection_reason"`
	NextStep        string         `gorm:"type:varchar(255)" json:"next_step"`
	ContactName     string         `gorm:"type:varchar(200)" json:"contact_name"`
	ContactEmail    string         `gorm:"type:varchar(255)" json:"contact_email"`
	ContactPhone    string         `gorm:"type:varchar(50)" json:"contact_phone"`
	JobURL          string         `gorm:"type:varchar(500)" json:"job_url"`
	Source          string         `gorm:"type:varchar(50)" json:"source"`
	SalaryMin       *int           `json:"salary_min"`
	SalaryMax       *int           `json:"salary_max"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// BeforeSave keeps the follow-up invariant: a job is never both done and
// holding a pending date.
func (j *Job) BeforeSave(tx *gorm.DB) error {
	if j.FollowUpDone {
		j.FollowUpDate = nil
	}
	return nil
}
