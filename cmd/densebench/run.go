package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jrhy/densemap/bench"
)

func getRunCmd(root *rootCommand) *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run benchmark scenarios",
		Long: `Run benchmark scenarios against every implementation, check that they
agree, and print the report. With --out the report is also stored under
its content hash.`,
		Example: `
  # Run everything once.
  densebench run

  # Only the dense lookup scenario, ten times longer, as YAML.
  densebench run --scenario lookup-dense --scale 10 -f yaml

  # Keep the report in a bucket.
  densebench run -o s3://reports/densemap`[1:],
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := getConsolidatedConfig(cmd.Flags(), root.lookup)
			if err != nil {
				return err
			}
			p, err := conf.persister()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			report, err := bench.Run(ctx, conf.benchConfig(), root.logger)
			if err != nil {
				return err
			}
			b, err := report.Encode(conf.Format)
			if err != nil {
				return err
			}
			if _, err := cmd.OutOrStdout().Write(b); err != nil {
				return err
			}
			if p == nil {
				return nil
			}
			name, err := report.Save(ctx, p, conf.Format)
			if err != nil {
				return err
			}
			root.logger.WithFields(logrus.Fields{
				"out":  conf.Out,
				"name": name,
			}).Info("stored report")
			return nil
		},
	}
	runCmd.Flags().SortFlags = false
	runCmd.Flags().AddFlagSet(runCmdFlagSet())
	return runCmd
}
