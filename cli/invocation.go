package cli

// This file contains argument processing for selecting exactly one
// reporting mode per invocation.

import (
	"strings"

	"github.com/urfave/cli/v2"
)

type mode int

const (
	modeCommand mode = iota + 1
	modeStart
	modeEnd
)

type invocation struct {
	mode        mode
	command     string
	name        string
	embedStdout bool
}

func resolveInvocation(ctx *cli.Context) (invocation, error) {
	var selected []string
	if ctx.IsSet("command") {
		selected = append(selected, "--command")
	}
	if ctx.Bool("start") {
		selected = append(selected, "--start")
	}
	if ctx.Bool("end") {
		selected = append(selected, "--end")
	}

	switch len(selected) {
	case 0:
		return invocation{}, cli.Exit("No viable option called, Exiting", 1)
	case 1:
	default:
		return invocation{}, cli.Exit("only one of --command, --start or --end may be given, got "+strings.Join(selected, ", "), 1)
	}

	switch {
	case ctx.Bool("start"):
		return invocation{mode: modeStart}, nil
	case ctx.Bool("end"):
		return invocation{mode: modeEnd}, nil
	}

	command := ctx.String("command")
	if strings.TrimSpace(command) == "" {
		return invocation{}, cli.Exit("the command to test must not be empty", 1)
	}
	name := ctx.String("name")
	if name == "" {
		name = defaultName(command)
	}

	return invocation{
		mode:        modeCommand,
		command:     command,
		name:        name,
		embedStdout: ctx.Bool("stdout"),
	}, nil
}

// defaultName returns the first whitespace-delimited word of command.
func defaultName(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
