package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/sdk-ci/ci-report/cli/shell"
	"github.com/sdk-ci/ci-report/cli/transport"
	"github.com/sdk-ci/ci-report/config"
	"github.com/sdk-ci/ci-report/model"
	"github.com/sdk-ci/ci-report/report"
)

const AppName = "ci-report"

type App struct {
	logger    zerolog.Logger
	cli       *cli.App
	startTime time.Time

	executor         *shell.Executor
	transportOptions transport.Options
}

func New() *App {

	// Set default log level to info
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	logger :=
		log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339Nano,
		})

	app := &App{
		logger:           logger,
		startTime:        time.Now(),
		executor:         shell.New(logger),
		transportOptions: transport.LegacyOptions(),
	}
	app.cli = &cli.App{
		Name:            AppName,
		Usage:           "Runs SDK tests by passing in shell commands and reports the results",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "command",
				Aliases: []string{"c"},
				Usage:   "The command to test",
			},
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "The name of the test (default: first word of the command)",
			},
			&cli.BoolFlag{
				Name:    "start",
				Aliases: []string{"s"},
				Usage:   "Start a series of test runs with the same id",
			},
			&cli.BoolFlag{
				Name:    "end",
				Aliases: []string{"e"},
				Usage:   "End a series of test runs with the same id",
			},
			&cli.BoolFlag{
				Name:  "stdout",
				Usage: "Add the output of the test to the result",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Load environment variables from a dotenv file before reading the configuration",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose (debug) logging",
			},
		},
		Before: func(ctx *cli.Context) error {
			if ctx.Bool("verbose") {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			return nil
		},
		Action: app.run,
		// Exit codes are handled by the caller of Run
		ExitErrHandler: func(*cli.Context, error) {},
	}
	return app
}

func (a *App) Run(args []string) error {
	return a.cli.Run(args)
}

// SetVersion sets the version information for the CLI application
func (a *App) SetVersion(version, commit, date string) {
	a.cli.Version = version
	if commit != "none" && commit != "" {
		if len(commit) > 8 {
			commit = commit[:8]
		}
		a.cli.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
	}
}

func (a *App) run(ctx *cli.Context) error {
	inv, err := resolveInvocation(ctx)
	if err != nil {
		return err
	}

	cfg, err := config.Load(ctx.String("env-file"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	proc := report.Process{
		StartTime: a.startTime,
	}
	if commit, err := a.getGitCommit(); err == nil {
		proc.GitCommit = commit
	} else {
		a.logger.Debug().Err(err).Msg("No git commit available")
	}

	var r model.Report
	switch inv.mode {
	case modeStart:
		a.logger.Info().Str("run_id", cfg.RunID).Msg("Reporting start of run")
		r = report.Start(cfg, proc)
	case modeEnd:
		a.logger.Info().Str("run_id", cfg.RunID).Msg("Reporting end of run")
		r = report.End(cfg, proc)
	case modeCommand:
		r, err = a.runCommand(ctx, cfg, proc, inv)
		if err != nil {
			return err
		}
	}

	sender := transport.New(a.logger, a.transportOptions)
	if err := sender.Send(ctx.Context, cfg.URL, report.Wrap(cfg, r)); err != nil {
		return err
	}

	a.logger.Info().
		Str("test", r.TestName).
		Str("location", cfg.Location).
		Msg("Report submitted")
	return nil
}
