package constants

const (
	AppName            = "streakly"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/streakly"
	DefaultConfigPath  = "~/.config/streakly/streakly.db"
	DefaultConfigFile  = "~/.config/streakly/config.yaml"
	Version            = "v0.1.0"

	// MemoryTarget selects the in-memory storage backend
	MemoryTarget = ":memory:"

	// Persistence keys
	UserNameKey = "userName"
	HabitsKey   = "habits"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// LongDateFormat is used for the today header ("October 19, 2026")
	LongDateFormat = "January 02, 2006"

	// ShortDateFormat is used for the week range ("Mon, Oct 19")
	ShortDateFormat = "Mon, Jan 02"

	// Environment variables
	EnvConnection = "STREAKLY_DB_CONNECTION"
)
