package log

// CustomLogHook intercepts a log event before it is written. Returning true
// consumes the event and nothing is written to the sub logger output.
type CustomLogHook func(header, subLoggerName string, a ...any) bool

var customLogHook CustomLogHook

// SetCustomLogHook installs a hook that is consulted for every log event.
// Passing nil removes it.
func SetCustomLogHook(hook CustomLogHook) {
	mu.Lock()
	customLogHook = hook
	mu.Unlock()
}
