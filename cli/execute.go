package cli

// This file contains the command mode: executing the command under test
// and turning its outcome into a report.

import (
	"fmt"
	"io"

	"al.essio.dev/pkg/shellescape"
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/sdk-ci/ci-report/cli/shell"
	"github.com/sdk-ci/ci-report/config"
	"github.com/sdk-ci/ci-report/model"
	"github.com/sdk-ci/ci-report/report"
)

func (a *App) runCommand(ctx *cli.Context, cfg config.Config, proc report.Process, inv invocation) (model.Report, error) {
	a.logger.Info().
		Str("name", inv.name).
		Str("command", shellescape.Quote(inv.command)).
		Msg("Executing test command")

	outcome, err := a.executor.Run(ctx.Context, inv.command)
	if err != nil {
		a.logger.Error().Err(err).Msg("Failed to execute test command")
		return model.Report{}, err
	}

	printOutcome(ctx.App.Writer, inv.name, outcome)

	return report.Command(cfg, proc, inv.name, outcome, inv.embedStdout), nil
}

// printOutcome writes a status line followed by the captured output.
func printOutcome(w io.Writer, name string, outcome shell.Outcome) {
	var (
		c    *color.Color
		verb string
	)
	switch outcome.Status {
	case model.StatusPassed:
		c, verb = color.New(color.FgGreen), "succeeded"
	case model.StatusTimeout:
		c, verb = color.New(color.FgYellow), "timed out"
	default:
		c, verb = color.New(color.FgRed), "failed"
	}

	_, _ = c.Fprintf(w, "Test: %s %s.\n", name, verb)
	_, _ = fmt.Fprint(w, outcome.Output)
}
