package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/five82/lantern/internal/app"
)

const (
	exitRuntime = 1
	exitStartup = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var opts app.Options

	flagSet := pflag.NewFlagSet("lantern", pflag.ContinueOnError)
	flagSet.StringVar(&opts.BaseDir, "dir", ".", "server directory holding logs/, the transcript and console.toml")
	flagSet.StringVar(&opts.ConfigPath, "config", "", "config file (default <dir>/console.toml)")
	flagSet.StringVar(&opts.DebugLog, "debug-log", "", "write diagnostics to this file")
	flagSet.BoolVar(&opts.Debug, "debug", false, "include debug diagnostics")
	flagSet.StringVar(&opts.Backend, "backend", "", "terminal backend: tcell or bubbletea")
	flagSet.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage:\n  lantern [flags]\n\nFlags:\n%s", flagSet.FlagUsages())
	}

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "lantern: %v\n", err)
		return exitStartup
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		fmt.Fprintf(os.Stderr, "lantern: unexpected argument: %s\n", rest[0])
		return exitStartup
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "lantern: %v\n", err)
		var startup *app.StartupError
		if errors.As(err, &startup) {
			return exitStartup
		}
		return exitRuntime
	}
	return 0
}
