package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/hamed0406/edgedebug/internal/collector"
	"github.com/hamed0406/edgedebug/internal/config"
	"github.com/hamed0406/edgedebug/internal/encode"
	"github.com/hamed0406/edgedebug/internal/logging"
	"github.com/hamed0406/edgedebug/internal/probe"
	"github.com/hamed0406/edgedebug/internal/sink"
	"github.com/hamed0406/edgedebug/internal/version"
)

const (
	exitOK        = 0
	exitError     = 1
	exitInvariant = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := pflag.NewFlagSet("edgedebug", pflag.ContinueOnError)
	out := flags.StringP("out", "o", "", "write the artifact to this file instead of stdout")
	quiet := flags.BoolP("quiet", "q", false, "with --out, skip the stdout copy")
	debug := flags.BoolP("debug", "D", false, "log probe activity to stderr")
	b64 := flags.BoolP("encode", "e", false, "emit the urlsafe-base64 transport form")
	showVersion := flags.BoolP("version", "v", false, "print version and exit")
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: edgedebug [flags]\n\nCollects CDN edge connectivity diagnostics and prints the shareable artifact.\n\n")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitError
	}
	if *showVersion {
		fmt.Println("edgedebug " + version.String)
		return exitOK
	}

	// Optional overrides; a missing .env is the normal case.
	_ = godotenv.Load()
	cfg := config.FromEnv()

	logger, err := logging.New(*debug, cfg.LogDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "edgedebug:", err)
		return exitError
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	coll := collector.New(logger, probe.Registry(cfg), cfg.ProbeTimeout, cfg.Concurrency)
	rec, err := coll.Collect(ctx)
	if err != nil {
		// Cancelled mid-run: emit nothing, per the one-artifact-or-nothing rule.
		fmt.Fprintln(os.Stderr, "edgedebug: collection aborted:", err)
		return exitError
	}

	artifact, err := encode.Encode(rec)
	if err != nil {
		fmt.Fprintln(os.Stderr, "edgedebug: encoding invariant violated:", err)
		return exitInvariant
	}

	text := artifact.Text
	if *b64 {
		text = artifact.Transport() + "\n"
	}

	if *out != "" {
		if err := sink.Write(text, *out); err != nil {
			fmt.Fprintln(os.Stderr, "edgedebug:", err)
			return exitError
		}
		logger.Info("artifact_written", zap.String("path", *out), zap.String("digest", artifact.Digest))
		if *quiet {
			return exitOK
		}
	}
	if err := sink.Write(text, ""); err != nil {
		fmt.Fprintln(os.Stderr, "edgedebug:", err)
		return exitError
	}
	return exitOK
}
