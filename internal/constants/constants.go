package constants

import "time"

// Context keys
const (
	ContextKeyUserID    = "user_id"
	ContextKeyPrincipal = "principal"
)

// Session cookie
const (
	RefreshCookieName = "refreshToken"
	RefreshCookiePath = "/"
)

// Token lifetimes
const (
	DefaultAccessTokenTTL  = 10 * time.Minute
	DefaultRefreshTokenTTL = 5 * 24 * time.Hour
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Search results are capped the same way for users and projects.
const MaxSearchResults = 10

// Defaults applied when a project or task is created without dates.
const (
	DefaultProjectDuration = 3 * 365 * 24 * time.Hour
	DefaultTaskDuration    = 14 * 24 * time.Hour
)

// DateLayout is the wire format for dates in responses.
const DateLayout = "2006-01-02"

const (
	DefaultBcryptCost   = 10
	MaxAIGeneratedTasks = 20
)
