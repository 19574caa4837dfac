// reflector reads a type database dumped by the header parser and emits
// the C++ type-info units of the engine module.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// options holds the command line flags.
type options struct {
	db        string
	config    string
	target    string
	module    string
	features  string
	workers   int
	logLevel  string
	logFormat string
	watch     bool
	verify    bool
}

func main() {
	var opts options
	flag.StringVar(&opts.db, "db", "", "The path to the type database (YAML or JSON).")
	flag.StringVar(&opts.config, "config", "", "The path to an optional YAML configuration file.")
	flag.StringVar(&opts.target, "target", "", "The directory where the generated units are placed. Overrides the configuration file.")
	flag.StringVar(&opts.module, "module", "", "The engine module name. Overrides the configuration file and the database.")
	flag.StringVar(&opts.features, "features", "", "Comma separated list of features to enable, e.g. incremental,go-manifest.")
	flag.IntVar(&opts.workers, "workers", 0, "The number of parallel generation workers. Default: GOMAXPROCS")
	flag.StringVar(&opts.logLevel, "log-level", "info", "The log level: debug, info, warn or error.")
	flag.StringVar(&opts.logFormat, "log-format", "text", "The log format: text or json.")
	flag.BoolVar(&opts.watch, "watch", false, "Regenerate whenever the database or the configuration changes.")
	flag.BoolVar(&opts.verify, "verify", false, "Register the database in the Go runtime and instantiate every concrete type after generation.")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "Generates C++ reflection type-info from a type database.")
		flag.PrintDefaults()
	}
	flag.Parse()

	log, err := newLogger(opts.logLevel, opts.logFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if opts.db == "" {
		log.Fatal("missing -db flag")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	entry := log.WithField("run", uuid.NewString())
	if opts.watch {
		err = watch(ctx, entry, opts)
	} else {
		err = run(ctx, entry, opts)
	}
	if err != nil {
		entry.WithError(err).Error("reflector failed")
		stop()
		os.Exit(1)
	}
}

// newLogger returns a logger writing to stderr with the given level and
// format.
func newLogger(level, format string) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid -log-level: %w", err)
	}
	log.SetLevel(lvl)
	switch strings.ToLower(format) {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05"})
	case "text", "":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("invalid -log-format %q", format)
	}
	return log, nil
}
