// navgrid runs grid path queries from the command line.
//
// Usage:
//
//	navgrid find   -map maps/demo.yaml -from 0,0 -to 15,7 [-algo jps] [-png out.png]
//	navgrid batch  -map maps/demo.yaml -queries maps/queries.yaml
//	navgrid render -map maps/demo.yaml -png out.png
//	navgrid import -map maps/demo.yaml [-name demo]
//	navgrid maps
//	navgrid delete -name demo
//	navgrid watch  -map maps/demo.yaml -from 0,0 -to 15,7
//
// Commands that take -map also accept -db <name> to read a stored map.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/udisondev/navgrid/internal/config"
)

const ConfigPath = "config/navgrid.yaml"

var errUsage = errors.New("usage")

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

// env is what every command receives.
type env struct {
	cfg    config.NavGrid
	logger *slog.Logger
	out    io.Writer
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		printUsage(stderr)
		return errUsage
	}
	cmd, ok := lookupCommand(args[0])
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
		printUsage(stderr)
		return errUsage
	}

	fs := flag.NewFlagSet(cmd.name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", "", "config file (default $NAVGRID_CONFIG or "+ConfigPath+")")
	exec := cmd.setup(fs)
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	path := *cfgPath
	if path == "" {
		path = ConfigPath
		if p := os.Getenv("NAVGRID_CONFIG"); p != "" {
			path = p
		}
	}
	cfg, err := config.LoadNavGrid(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	slog.Debug("config loaded", "path", path, "algo", cfg.Algorithm, "heuristic", cfg.Heuristic)

	return exec(ctx, env{cfg: cfg, logger: logger, out: stdout})
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: navgrid <command> [flags]")
	fmt.Fprintln(w)
	for _, c := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", c.name, c.desc)
	}
}
