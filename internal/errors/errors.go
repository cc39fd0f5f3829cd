package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/streakly/internal/logger"
	"github.com/julianstephens/streakly/internal/storage"
	"github.com/julianstephens/streakly/internal/storage/postgres"
	"github.com/julianstephens/streakly/internal/tracker"
)

// hints maps well-known failures to a follow-up line for the user
var hints = []struct {
	target error
	hint   string
}{
	{storage.ErrNotInitialized, "run 'streakly init' first"},
	{storage.ErrAlreadyInitialized, "use 'streakly init --force' to start over"},
	{postgres.ErrEmbeddedCredentials, "store the full connection string with 'streakly config set-connection' or STREAKLY_DB_CONNECTION, or use .pgpass"},
	{tracker.ErrHabitNotFound, "run 'streakly habit list' to see habit IDs"},
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if hint := Hint(err); hint != "" {
		msg += "\nHint: " + hint
	}
	return msg
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Hint returns a remediation for known errors, or "" if there is none
func Hint(err error) string {
	for _, h := range hints {
		if stderrors.Is(err, h.target) {
			return h.hint
		}
	}
	return ""
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
