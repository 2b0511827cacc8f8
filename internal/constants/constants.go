package constants

const (
	// Session
	SessionCookieName = "quest_session"
	ContextKeyUserID  = "user_id"
	ContextKeyUser    = "user"
	ContextKeyTask    = "task"

	// Pagination
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// Leaderboard
	DefaultLeaderboardLimit = 10
	MaxLeaderboardLimit     = 100

	// Task validation
	MinTaskTitleLength       = 5
	MinTaskDescriptionLength = 20

	// Profile
	MaxProfileCompletion = 100
)
