package request

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextFlags(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	for _, tc := range []struct {
		name  string
		with  func(context.Context) context.Context
		is    func(context.Context, bool) bool
		other func(context.Context, bool) bool
	}{
		{"verbose", WithVerbose, IsVerbose, IsHTTPDebugging},
		{"httpDebugging", WithHTTPDebugging, IsHTTPDebugging, IsVerbose},
	} {
		assert.False(t, tc.is(ctx, false), tc.name)
		assert.True(t, tc.is(ctx, true), tc.name)
		assert.True(t, tc.is(tc.with(ctx), false), tc.name)
		assert.False(t, tc.other(tc.with(ctx), false), "%s must not set the other flag", tc.name)
	}
	assert.False(t, IsVerbose(context.WithValue(ctx, verboseFlag, "yes"), false), "non bool values should be ignored")
}
