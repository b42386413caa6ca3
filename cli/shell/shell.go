package shell

// shell.go runs a single shell command with a bounded wall-clock time and
// classifies how it ended.

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"al.essio.dev/pkg/shellescape"
	"github.com/rs/zerolog"

	"github.com/sdk-ci/ci-report/model"
)

// DefaultTimeout is the upper bound on a command's execution time.
const DefaultTimeout = 1200 * time.Second

// timeoutReturnCode is reported in place of an exit status for commands
// that were killed after exceeding the timeout.
const timeoutReturnCode = 1

// Outcome is the result of one command execution.
type Outcome struct {
	Status model.Status
	// Exit code, or 1 when the command timed out
	ReturnCode int
	// Description of the failure, empty on success
	Exception string
	// Combined stdout and stderr, including partial output on timeout
	Output string
	Start  time.Time
	End    time.Time
}

// Passed reports whether the command exited with status zero.
func (o Outcome) Passed() bool {
	return o.Status == model.StatusPassed
}

// Executor runs commands through a shell.
type Executor struct {
	logger zerolog.Logger
	// Shell binary, invoked as "<Shell> -c <command>"
	Shell string
	// Timeout bounds the execution, DefaultTimeout when zero
	Timeout time.Duration
	// WaitDelay bounds how long output pipes held open by
	// grandchildren may delay the return after the command was killed
	WaitDelay time.Duration
}

// New returns an Executor using /bin/sh and DefaultTimeout.
func New(logger zerolog.Logger) *Executor {
	return &Executor{
		logger:    logger,
		Shell:     "/bin/sh",
		Timeout:   DefaultTimeout,
		WaitDelay: 5 * time.Second,
	}
}

// Run executes command synchronously. A command that fails or times out is
// not an error; an error is only returned when the shell cannot be started.
func (e *Executor) Run(ctx context.Context, command string) (Outcome, error) {
	timeout := e.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, e.Shell, "-c", command)
	cmd.WaitDelay = e.WaitDelay

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	e.logger.Debug().
		Str("shell", e.Shell).
		Str("command", shellescape.Quote(command)).
		Dur("timeout", timeout).
		Msg("Starting command")

	outcome := Outcome{Start: time.Now()}
	err := cmd.Run()
	outcome.End = time.Now()
	outcome.Output = output.String()

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		outcome.Status = model.StatusTimeout
		outcome.ReturnCode = timeoutReturnCode
		outcome.Exception = fmt.Sprintf("Command %s timed out after %g seconds", shellescape.Quote(command), timeout.Seconds())
		e.logger.Info().
			Dur("timeout", timeout).
			Msg("Command timed out")
	case err == nil:
		outcome.Status = model.StatusPassed
		outcome.ReturnCode = 0
		e.logger.Info().Msg("Command completed successfully")
	default:
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return Outcome{}, fmt.Errorf("failed to execute command: %w", err)
		}
		outcome.Status = model.StatusFailed
		outcome.ReturnCode = exitErr.ExitCode()
		outcome.Exception = fmt.Sprintf("Command %s returned non-zero exit status %d.", shellescape.Quote(command), exitErr.ExitCode())
		e.logger.Info().
			Int("exit_code", exitErr.ExitCode()).
			Msg("Command completed with failures")
	}

	e.logger.Debug().
		Str("status", string(outcome.Status)).
		Dur("duration", outcome.End.Sub(outcome.Start)).
		Msg("Command finished")

	return outcome, nil
}
