package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	urfavecli "github.com/urfave/cli/v2"

	"github.com/sdk-ci/ci-report/cli"
)

// Version information, set by goreleaser via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	c := cli.New()
	c.SetVersion(version, commit, date)
	err := c.Run(os.Args)
	if err != nil {
		var exitErr urfavecli.ExitCoder
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Error())
			os.Exit(exitErr.ExitCode())
		}
		log.Fatal(err)
	}
}
