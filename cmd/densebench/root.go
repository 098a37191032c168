package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type rootCommand struct {
	ctx     context.Context
	logger  *logrus.Logger
	lookup  func(string) (string, bool)
	cmd     *cobra.Command
	logFmt  string
	verbose bool
}

func newRootCommand(ctx context.Context, logger *logrus.Logger, lookup func(string) (string, bool)) *rootCommand {
	c := &rootCommand{
		ctx:    ctx,
		logger: logger,
		lookup: lookup,
	}
	c.cmd = &cobra.Command{
		Use:               "densebench",
		Short:             "compare densemap lookups and iteration with other maps",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.persistentPreRunE,
	}
	c.cmd.PersistentFlags().AddFlagSet(c.rootCmdPersistentFlagSet())
	c.cmd.AddCommand(getRunCmd(c), getListCmd())
	return c
}

func (c *rootCommand) rootCmdPersistentFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("", pflag.ContinueOnError)
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&c.logFmt, "log-format", "text", "log output format: text or json")
	return flags
}

func (c *rootCommand) persistentPreRunE(cmd *cobra.Command, args []string) error {
	if !cmd.Flags().Changed("log-format") {
		if v, ok := c.lookup("DENSEBENCH_LOG_FORMAT"); ok {
			c.logFmt = v
		}
	}
	switch strings.ToLower(c.logFmt) {
	case "json":
		c.logger.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		c.logger.SetFormatter(&logrus.TextFormatter{})
	default:
		return fmt.Errorf("unsupported log format %q", c.logFmt)
	}

	level := logrus.InfoLevel
	if v, ok := c.lookup("DENSEBENCH_LOG_LEVEL"); ok && !cmd.Flags().Changed("verbose") {
		l, err := logrus.ParseLevel(v)
		if err != nil {
			return fmt.Errorf("DENSEBENCH_LOG_LEVEL: %w", err)
		}
		level = l
	}
	if c.verbose {
		level = logrus.DebugLevel
	}
	c.logger.SetLevel(level)
	return nil
}

func newLogger(out io.Writer) *logrus.Logger {
	return &logrus.Logger{
		Out:       out,
		Formatter: new(logrus.TextFormatter),
		Hooks:     make(logrus.LevelHooks),
		Level:     logrus.InfoLevel,
	}
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	logger := newLogger(os.Stderr)
	c := newRootCommand(ctx, logger, os.LookupEnv)
	if err := c.cmd.ExecuteContext(ctx); err != nil {
		logger.WithError(err).Error("densebench failed")
		cancel()
		os.Exit(1) //nolint:gocritic
	}
}
