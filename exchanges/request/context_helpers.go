package request

import "context"

type contextFlag uint8

const (
	verboseFlag contextFlag = iota + 1
	httpDebuggingFlag
)

// WithVerbose marks every request sent with ctx as verbose, regardless of the
// item setting
func WithVerbose(ctx context.Context) context.Context {
	return context.WithValue(ctx, verboseFlag, true)
}

// IsVerbose reports whether the item or ctx asks for verbose logging
func IsVerbose(ctx context.Context, verbose bool) bool {
	return verbose || flagSet(ctx, verboseFlag)
}

// WithHTTPDebugging marks every request sent with ctx for full request and
// response dumps
func WithHTTPDebugging(ctx context.Context) context.Context {
	return context.WithValue(ctx, httpDebuggingFlag, true)
}

// IsHTTPDebugging reports whether the item or ctx asks for request and
// response dumps
func IsHTTPDebugging(ctx context.Context, debugging bool) bool {
	return debugging || flagSet(ctx, httpDebuggingFlag)
}

func flagSet(ctx context.Context, f contextFlag) bool {
	set, _ := ctx.Value(f).(bool)
	return set
}
