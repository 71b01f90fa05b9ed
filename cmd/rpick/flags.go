package main

import (
	"github.com/kk-code-lab/rpick/internal/config"
	urfavecli "github.com/urfave/cli/v2"
)

// globalFlags returns all flags. --version is provided by urfave/cli via
// App.Version.
func globalFlags() []urfavecli.Flag {
	return []urfavecli.Flag{
		&urfavecli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file (default " + config.DefaultPath() + ")",
		},
		&urfavecli.StringFlag{
			Name:  "debug-log",
			Usage: "Path to debug log file",
		},
		&urfavecli.BoolFlag{
			Name:    "print",
			Aliases: []string{"p"},
			Usage:   "Print the chosen path to stdout instead of opening it",
		},
		&urfavecli.BoolFlag{
			Name:  "no-watch",
			Usage: "Do not re-list the directory when it changes on disk",
		},
	}
}
