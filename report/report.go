package report

// This file builds the reports sent to the reporting endpoint. Every
// builder returns a fresh model.Report; nothing is shared between calls.

import (
	"time"

	"github.com/sdk-ci/ci-report/cli/shell"
	"github.com/sdk-ci/ci-report/config"
	"github.com/sdk-ci/ci-report/model"
)

// Key is the static submission key expected by the reporting endpoint.
const Key = "42"

const (
	bookendTestName = "Set Environment"
	bookendFunction = "_discover_environment"
	startModule     = "_conftest"
	endModule       = "_end"
	commandModule   = "Sanity Checks"
)

// Process holds metadata gathered once when the reporter starts.
type Process struct {
	StartTime time.Time
	// HEAD commit of the working directory, empty if unknown
	GitCommit string
}

// FormatTime formats t the way every timestamp in a report is formatted.
func FormatTime(t time.Time) string {
	return t.Format(model.TimeLayout)
}

// Start builds the report for the bookend call that opens a run.
func Start(cfg config.Config, proc Process) model.Report {
	return bookend(cfg, proc, startModule)
}

// End builds the report for the bookend call that closes a run.
func End(cfg config.Config, proc Process) model.Report {
	return bookend(cfg, proc, endModule)
}

func bookend(cfg config.Config, proc Process, module string) model.Report {
	start := time.Now()
	end := time.Now()
	return model.Report{
		RunID:         cfg.RunID,
		Branch:        cfg.Branch,
		TestName:      bookendTestName,
		Module:        module,
		Function:      bookendFunction,
		Results:       map[string]model.Result{},
		Extras:        extras(cfg, proc, nil),
		TestStartTime: FormatTime(start),
		TestEndTime:   FormatTime(end),
	}
}

// Command builds the report for an executed command. The captured output
// is embedded only when embedStdout is set.
func Command(cfg config.Config, proc Process, name string, outcome shell.Outcome, embedStdout bool) model.Report {
	result := model.Result{
		Passed: outcome.Passed(),
		Status: outcome.Status,
		Report: "",
	}
	if outcome.Exception != "" {
		exception := outcome.Exception
		result.Exception = &exception
	}

	returnCode := outcome.ReturnCode
	r := model.Report{
		RunID:         cfg.RunID,
		Branch:        cfg.Branch,
		TestName:      name,
		Module:        commandModule,
		Function:      name,
		Results:       map[string]model.Result{name: result},
		Extras:        extras(cfg, proc, &returnCode),
		TestStartTime: FormatTime(outcome.Start),
		TestEndTime:   FormatTime(outcome.End),
	}
	if embedStdout {
		output := outcome.Output
		r.Stdout = &output
	}
	return r
}

// Wrap puts r into the envelope addressed to cfg.Location.
func Wrap(cfg config.Config, r model.Report) model.Envelope {
	return model.Envelope{
		ID:   cfg.Location,
		Key:  Key,
		Data: r,
	}
}

func extras(cfg config.Config, proc Process, returnCode *int) model.Extras {
	return model.Extras{
		Config: model.Maintainer{
			Email:    cfg.MaintainerEmail,
			IMNumber: cfg.IMNumber,
		},
		Test:       cfg.Test,
		GitBranch:  cfg.Branch,
		GitCommit:  proc.GitCommit,
		StartTime:  FormatTime(proc.StartTime),
		ReturnCode: returnCode,
	}
}
