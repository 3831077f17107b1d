package logging

import (
	"runtime"
	"runtime/debug"

	"github.com/rs/zerolog"
)

// LogPanic logs a value obtained from recover() together with the stack of
// the current goroutine. Call it from the deferred function that recovered.
func LogPanic(log *zerolog.Logger, r any, msg string) {
	log.Error().
		Interface("panic", r).
		Str("go_version", runtime.Version()).
		Str("os", runtime.GOOS).
		Str("arch", runtime.GOARCH).
		Str("stack", string(debug.Stack())).
		Msg(msg)
}
