package utils

import (
	"runtime/debug"

	log "github.com/sirupsen/logrus"
)

// StackTraceFromPanic logs stack trace
func StackTraceFromPanic(logger *log.Entry) {
	if r := recover(); r != nil {
		logger.Errorf("stacktrace from panic: %s", string(debug.Stack()))
		logger.Panic(r)
	}
}
