package panics

import (
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/donatenet/donated/infrastructure/logger"
)

const exitHandlerTimeout = 5 * time.Second

// HandlePanic recovers panics, logs them together with the stack trace and
// exits the process. It must be deferred directly.
func HandlePanic(log *logger.Logger) {
	err := recover()
	if err == nil {
		return
	}

	reason := fmt.Sprintf("Fatal error: %+v", err)
	exit(log, reason, debug.Stack())
}

// Exit prints the given reason to log and exits the process.
func Exit(log *logger.Logger, reason string) {
	exit(log, reason, nil)
}

// exit prints the given reason and stack trace (if not nil), waits for the
// log to finish writing, and exits.
func exit(log *logger.Logger, reason string, stackTrace []byte) {
	// A silenced subsystem still has to report why the process died.
	if log.Level() > logger.LevelCritical {
		fmt.Fprintf(os.Stderr, "Exiting: %s\n", reason)
	}

	exitHandlerDone := make(chan struct{})
	go func() {
		log.Criticalf("Exiting: %s", reason)
		if stackTrace != nil {
			log.Criticalf("Stack trace: %s", stackTrace)
		}
		log.Backend().Close()
		close(exitHandlerDone)
	}()

	select {
	case <-time.After(exitHandlerTimeout):
		fmt.Fprintln(os.Stderr, "Couldn't exit gracefully.")
	case <-exitHandlerDone:
	}
	os.Exit(1)
}
