package main

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/mstoykov/envconfig"
	"github.com/spf13/pflag"

	"github.com/jrhy/densemap/bench"
	"github.com/jrhy/densemap/persist"
	"github.com/jrhy/densemap/persist/file"
	s3Persist "github.com/jrhy/densemap/persist/s3"
)

// Config holds the settings of the run subcommand. Defaults are
// overridden by DENSEBENCH_* environment variables, which are overridden
// by flags given on the command line.
type Config struct {
	Scenarios       []string `envconfig:"DENSEBENCH_SCENARIOS"`
	Implementations []string `envconfig:"DENSEBENCH_IMPLEMENTATIONS"`
	Scale           int      `envconfig:"DENSEBENCH_SCALE"`
	Repeats         int      `envconfig:"DENSEBENCH_REPEATS"`
	Format          string   `envconfig:"DENSEBENCH_FORMAT"`
	// Out is where reports are stored: a directory, file://dir, or
	// s3://bucket/prefix. Empty means only print the report.
	Out        string `envconfig:"DENSEBENCH_OUT"`
	S3Endpoint string `envconfig:"DENSEBENCH_S3_ENDPOINT"`
	S3Region   string `envconfig:"DENSEBENCH_S3_REGION"`
}

func defaultConfig() Config {
	return Config{
		Scale:    1,
		Format:   bench.FormatJSON,
		S3Region: "us-east-1",
	}
}

func runCmdFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("", pflag.ContinueOnError)
	flags.StringSlice("scenario", nil, "scenario to run, repeatable (default all)")
	flags.StringSlice("impl", nil, "implementation to run, repeatable (default all)")
	flags.Int("scale", 1, "multiply each scenario's repeats")
	flags.Int("repeats", 0, "replace each scenario's repeats before scaling")
	flags.StringP("format", "f", bench.FormatJSON, "report format: "+strings.Join(bench.Formats(), ", "))
	flags.StringP("out", "o", "", "store the report in a directory or s3://bucket/prefix")
	flags.String("s3-endpoint", "", "S3 endpoint URL, for S3-compatible stores")
	flags.String("s3-region", "us-east-1", "S3 region")
	return flags
}

// getConsolidatedConfig layers defaults, environment and changed flags.
func getConsolidatedConfig(flags *pflag.FlagSet, lookup func(string) (string, bool)) (Config, error) {
	conf := defaultConfig()

	var envConf Config
	if err := envconfig.Process("", &envConf, lookup); err != nil {
		return conf, fmt.Errorf("environment: %w", err)
	}
	conf = conf.Apply(envConf)

	flagConf, err := configFromFlags(flags)
	if err != nil {
		return conf, err
	}
	conf = conf.Apply(flagConf)

	if err := conf.Validate(); err != nil {
		return conf, err
	}
	return conf, nil
}

func configFromFlags(flags *pflag.FlagSet) (Config, error) {
	var conf Config
	var err error
	if flags.Changed("scenario") {
		if conf.Scenarios, err = flags.GetStringSlice("scenario"); err != nil {
			return conf, err
		}
	}
	if flags.Changed("impl") {
		if conf.Implementations, err = flags.GetStringSlice("impl"); err != nil {
			return conf, err
		}
	}
	if flags.Changed("scale") {
		if conf.Scale, err = flags.GetInt("scale"); err != nil {
			return conf, err
		}
	}
	if flags.Changed("repeats") {
		if conf.Repeats, err = flags.GetInt("repeats"); err != nil {
			return conf, err
		}
	}
	for name, dst := range map[string]*string{
		"format":      &conf.Format,
		"out":         &conf.Out,
		"s3-endpoint": &conf.S3Endpoint,
		"s3-region":   &conf.S3Region,
	} {
		if !flags.Changed(name) {
			continue
		}
		if *dst, err = flags.GetString(name); err != nil {
			return conf, err
		}
	}
	return conf, nil
}

// Apply returns c with every non-zero field of other copied over it.
func (c Config) Apply(other Config) Config {
	if len(other.Scenarios) > 0 {
		c.Scenarios = other.Scenarios
	}
	if len(other.Implementations) > 0 {
		c.Implementations = other.Implementations
	}
	if other.Scale != 0 {
		c.Scale = other.Scale
	}
	if other.Repeats != 0 {
		c.Repeats = other.Repeats
	}
	if other.Format != "" {
		c.Format = other.Format
	}
	if other.Out != "" {
		c.Out = other.Out
	}
	if other.S3Endpoint != "" {
		c.S3Endpoint = other.S3Endpoint
	}
	if other.S3Region != "" {
		c.S3Region = other.S3Region
	}
	return c
}

func (c Config) Validate() error {
	if err := c.benchConfig().Validate(); err != nil {
		return err
	}
	for _, f := range bench.Formats() {
		if c.Format == f {
			return nil
		}
	}
	return fmt.Errorf("format %q: %w", c.Format, bench.ErrUnknownFormat)
}

func (c Config) benchConfig() bench.Config {
	return bench.Config{
		Scenarios:       c.Scenarios,
		Implementations: c.Implementations,
		Scale:           c.Scale,
		Repeats:         c.Repeats,
	}
}

// persister returns where reports go, or nil if they are only printed.
func (c Config) persister() (persist.Persist, error) {
	if c.Out == "" {
		return nil, nil
	}
	u, err := url.Parse(c.Out)
	if err != nil || u.Scheme == "" {
		return file.NewPersistForPath(c.Out), nil
	}
	switch u.Scheme {
	case "file":
		// file://reports parses with "reports" as the host.
		return file.NewPersistForPath(filepath.Join(u.Host, u.Path)), nil
	case "s3":
		awsConf := aws.Config{Region: aws.String(c.S3Region)}
		if c.S3Endpoint != "" {
			awsConf.Endpoint = aws.String(c.S3Endpoint)
			awsConf.S3ForcePathStyle = aws.Bool(true)
		}
		sess, err := session.NewSession(&awsConf)
		if err != nil {
			return nil, fmt.Errorf("aws session: %w", err)
		}
		prefix := strings.TrimPrefix(u.Path, "/")
		if prefix != "" && !strings.HasSuffix(prefix, "/") {
			prefix += "/"
		}
		return s3Persist.NewPersist(s3.New(sess), u.Host, prefix), nil
	}
	return nil, fmt.Errorf("unsupported output %q", c.Out)
}
