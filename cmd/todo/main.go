package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todo-cli/internal/cli"
	"github.com/idilsaglam/todo-cli/internal/config"
	"github.com/idilsaglam/todo-cli/internal/logging"
	"github.com/idilsaglam/todo-cli/internal/store/jsonstore"
	"github.com/idilsaglam/todo-cli/internal/ui"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	// Root flags (apply to every subcommand)
	fs := flag.NewFlagSet("todo", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() { cli.PrintHelp(os.Stderr) }
	configPath := fs.String("config", "", "settings file (default ~/.todo-cli.toml)")
	theme := fs.String("theme", "", "classic, neon or mono")
	noColor := fs.Bool("no-color", false, "disable colored output")
	debug := fs.Bool("debug", false, "log store activity to stderr")
	if err := fs.Parse(argv); err != nil {
		if err == flag.ErrHelp {
			return cli.ExitOK
		}
		return cli.ExitUsage
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		ui.NewPrinter(os.Stdout, os.Stderr, ui.ColorAuto, ui.ThemeByName("")).Fail(err.Error())
		return cli.ExitUsage
	}
	if *theme != "" {
		cfg.Theme = *theme
	}
	if *noColor {
		cfg.Color = config.ColorNever
	}
	printer := ui.NewPrinter(os.Stdout, os.Stderr, cfg.Color, ui.ThemeByName(cfg.Theme))

	opts := logging.DefaultOptions()
	if opts.Level, err = logging.ParseLevel(cfg.LogLevel); err != nil {
		printer.Fail(err.Error())
		return cli.ExitUsage
	}
	if *debug {
		opts.Level = log.DebugLevel
	}
	logger := logging.New(os.Stderr, opts)

	path, err := jsonstore.DefaultPath()
	if err != nil {
		printer.Fail(fmt.Sprintf("resolve store path: %v", err))
		return cli.ExitError
	}
	logger.Debug("resolved store", "path", path)

	return cli.Run(fs.Args(), cli.Options{
		Store:  jsonstore.New(path).WithLogger(logger),
		UI:     printer,
		Logger: logger,
	})
}

// loadConfig reads the explicit path, or the default one when it resolves.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return config.Default(), nil
		}
		path = p
	}
	return config.Load(path)
}
