package constants

import "time"

// Session
const (
	SessionCookieName = "jobtrack_session"
	ContextKeyUserID  = "user_id"
)

// Request context keys set by middleware
const (
	ContextKeyClientAddr = "client_addr"
)

// Auth
const (
	MinPasswordLength = 8
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// JobPageSize is the fixed page size for job listings.
	JobPageSize = 10
)

// Login rate limiting
const (
	MaxLoginAttempts = 5
	LoginBlockWindow = 180 * time.Second
)

// Admin dashboard
const (
	TopCompaniesLimit    = 5
	ActiveUserWindowDays = 30
)
