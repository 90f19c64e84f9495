package models

import "time"

// FollowupState is the display state derived from a job's follow-up
// fields. It is computed per request and never persisted.
type FollowupState string

const (
	FollowupDone    FollowupState = "done"
	FollowupOverdue FollowupState = "overdue"
	FollowupToday   FollowupState = "today"
	FollowupFuture  FollowupState = "future"
	FollowupNone    FollowupState = "none"
)

// ClassifyFollowup derives the follow-up state of a job for a given day.
// The done flag wins over any date; a missing date means none; otherwise
// the date is compared against today.
func ClassifyFollowup(done bool, date *time.Time, today time.Time) FollowupState {
	if done {
		return FollowupDone
	}
	if date == nil {
		return FollowupNone
	}
	switch {
	case date.Before(today):
		return FollowupOverdue
	case date.Equal(today):
		return FollowupToday
	default:
		return FollowupFuture
	}
}
