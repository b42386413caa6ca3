package shell

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/sdk-ci/ci-report/model"
)

func newTestExecutor() *Executor {
	e := New(zerolog.Nop())
	e.WaitDelay = 100 * time.Millisecond
	return e
}

func TestRun(t *testing.T) {
	tests := []struct {
		name           string
		command        string
		wantStatus     model.Status
		wantReturnCode int
		wantOutput     string
		wantException  string
	}{
		{
			name:           "exit zero",
			command:        "echo hello",
			wantStatus:     model.StatusPassed,
			wantReturnCode: 0,
			wantOutput:     "hello\n",
		},
		{
			name:           "non-zero exit",
			command:        "echo broken; exit 3",
			wantStatus:     model.StatusFailed,
			wantReturnCode: 3,
			wantOutput:     "broken\n",
			wantException:  "Command 'echo broken; exit 3' returned non-zero exit status 3.",
		},
		{
			name:           "false",
			command:        "false",
			wantStatus:     model.StatusFailed,
			wantReturnCode: 1,
			wantOutput:     "",
			wantException:  "Command false returned non-zero exit status 1.",
		},
		{
			name:           "stderr is captured",
			command:        "echo oops 1>&2",
			wantStatus:     model.StatusPassed,
			wantReturnCode: 0,
			wantOutput:     "oops\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, err := newTestExecutor().Run(context.Background(), tt.command)
			require.NoError(t, err)
			require.Equal(t, tt.wantStatus, outcome.Status)
			require.Equal(t, tt.wantReturnCode, outcome.ReturnCode)
			require.Equal(t, tt.wantOutput, outcome.Output)
			require.Equal(t, tt.wantException, outcome.Exception)
			require.Equal(t, tt.wantStatus == model.StatusPassed, outcome.Passed())
			require.False(t, outcome.End.Before(outcome.Start))
		})
	}
}

func TestRunCombinedOutput(t *testing.T) {
	outcome, err := newTestExecutor().Run(context.Background(), "echo out; echo err 1>&2; echo out2")
	require.NoError(t, err)
	require.Equal(t, "out\nerr\nout2\n", outcome.Output)
}

func TestRunTimeout(t *testing.T) {
	e := newTestExecutor()
	e.Timeout = 300 * time.Millisecond

	outcome, err := e.Run(context.Background(), "echo partial; sleep 5")
	require.NoError(t, err)
	require.Equal(t, model.StatusTimeout, outcome.Status)
	require.Equal(t, 1, outcome.ReturnCode)
	require.False(t, outcome.Passed())
	require.Contains(t, outcome.Output, "partial")
	require.Equal(t, "Command 'echo partial; sleep 5' timed out after 0.3 seconds", outcome.Exception)
	require.Less(t, outcome.End.Sub(outcome.Start), 5*time.Second)
}

func TestRunShellNotFound(t *testing.T) {
	e := newTestExecutor()
	e.Shell = "/nonexistent/sh"

	_, err := e.Run(context.Background(), "true")
	require.Error(t, err)
}

func TestNewDefaults(t *testing.T) {
	e := New(zerolog.Nop())
	require.Equal(t, DefaultTimeout, e.Timeout)
	require.Equal(t, 1200*time.Second, e.Timeout)
	require.Equal(t, "/bin/sh", e.Shell)
}
