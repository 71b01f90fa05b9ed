// Package main is the entry point for rpick.
package main

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	apppkg "github.com/kk-code-lab/rpick/internal/app"
	"github.com/kk-code-lab/rpick/internal/config"
	fsutil "github.com/kk-code-lab/rpick/internal/fs"
	"github.com/kk-code-lab/rpick/internal/log"
	urfavecli "github.com/urfave/cli/v2"
)

var version = "dev"

func main() {
	// Set UTF-8 as fallback encoding for maximum compatibility
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	cliApp := &urfavecli.App{
		Name:      "rpick",
		Usage:     "Browse directories by recency and open files with a few keystrokes",
		UsageText: "rpick [options] [DIR]",
		Version:   version,
		Flags:     globalFlags(),
		Action:    runTUI,
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// runTUI is the default action: browse, then open or print the selection.
func runTUI(c *urfavecli.Context) error {
	if c.NArg() > 1 {
		return fmt.Errorf("expected at most one directory, got %d arguments", c.NArg())
	}

	// Set up debug logging before loading config
	if debugLog := c.String("debug-log"); debugLog != "" {
		setLogFile(debugLog)
	}

	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		_ = log.Close()
		return fmt.Errorf("load config: %w", err)
	}

	if c.String("debug-log") == "" {
		// An empty path discards anything buffered so far.
		setLogFile(cfg.DebugLog)
	}
	defer func() {
		_ = log.Close()
	}()

	if c.Bool("no-watch") {
		watch := false
		cfg.Watch = &watch
	}

	startDir, err := resolveStartDir(c.Args().First(), cfg)
	if err != nil {
		return err
	}
	log.Printf("rpick %s starting in %s", version, startDir)

	app, err := apppkg.NewApplication(apppkg.Options{
		StartDir:  startDir,
		Config:    cfg,
		PrintOnly: c.Bool("print"),
		Output:    os.Stdout,
	})
	if err != nil {
		return fmt.Errorf("initialize terminal: %w", err)
	}
	defer func() {
		_ = app.Close()
	}()

	app.Run()
	return app.Finish()
}

// resolveStartDir picks the positional argument, then the configured
// start_dir, then the working directory, and canonicalizes the result.
func resolveStartDir(arg string, cfg *config.AppConfig) (string, error) {
	dir := arg
	if dir == "" {
		dir = cfg.StartDir
	}
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		dir = cwd
	}
	expanded, err := config.ExpandPath(dir)
	if err != nil {
		return "", err
	}
	return fsutil.Canonicalize(expanded)
}

func setLogFile(path string) {
	if path != "" {
		if expanded, err := config.ExpandPath(path); err == nil {
			path = expanded
		}
	}
	if err := log.SetFile(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error opening debug log file %q: %v\n", path, err)
	}
}
