package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDefault_ReadsLogLevel(t *testing.T) {
	cases := map[string]Level{
		"ERROR": LevelError,
		"WARN":  LevelWarn,
		"DEBUG": LevelDebug,
		"TRACE": LevelTrace,
		"":      LevelInfo,
		"bogus": LevelInfo,
	}

	for env, want := range cases {
		t.Setenv("LOG_LEVEL", env)
		assert.Equal(t, want, NewDefault().Level(), "LOG_LEVEL=%q", env)
	}
}
