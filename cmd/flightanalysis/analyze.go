package main

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mattermost/flight-analysis/analysis"
	"github.com/mattermost/flight-analysis/cmdlog"
	"github.com/mattermost/flight-analysis/config"
	"github.com/mattermost/flight-analysis/loader"
	"github.com/mattermost/flight-analysis/report"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "flightanalysis <path-to-json-file>",
		Short:         "Reports the minimum flight time per carrier and the mean/median price gap on one route",
		Long:          "Reads a JSON or YAML document of tickets and reports, for the configured route, the minimum flight time of each carrier and the difference between the mean and the median ticket price.",
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.ReadConfig()
		},
		RunE: analyzeCmd,
	}

	flags := rootCmd.Flags()
	config.SetStringFlag(flags, "origin", "o", "origin code to analyze", "Route.Origin", config.DefaultOrigin)
	config.SetStringFlag(flags, "origin-name", "", "origin city name, also accepted as the origin", "Route.OriginName", "")
	config.SetStringFlag(flags, "destination", "d", "destination code to analyze", "Route.Destination", config.DefaultDestination)
	config.SetStringFlag(flags, "destination-name", "", "destination city name, also accepted as the destination", "Route.DestinationName", "")
	config.SetStringFlag(flags, "display", "", "one of 'text' or 'markdown'", "Display", config.DisplayText)
	config.SetBoolFlag(flags, "json-logs", "", "log to stderr as json", "LogSettings.ConsoleJson", false)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "make output more verbose")

	return rootCmd
}

func analyzeCmd(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return cmd.Usage()
	}

	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if err := cmdlog.Configure(cfg.LogSettings, verbose); err != nil {
		return err
	}
	if file := config.GetUsedConfigFile(); file != "" {
		logrus.Debugf("using configuration file %s", file)
	}

	return analyzeFile(args[0], cfg, cmd.OutOrStdout())
}

// analyzeFile writes nothing to output unless the whole analysis succeeds.
func analyzeFile(path string, cfg *config.AnalysisConfig, output io.Writer) error {
	tickets, err := loader.LoadFile(path)
	if err != nil {
		return err
	}

	result, err := analysis.Analyze(tickets, cfg.Route.Route(), analysis.ScheduleResolver{})
	if err != nil {
		return errors.Wrapf(err, "failed to analyze %s", path)
	}

	var buffer bytes.Buffer
	if err := report.Render(result, cfg.Display, &buffer); err != nil {
		return errors.Wrap(err, "failed to render report")
	}

	_, err = buffer.WriteTo(output)
	return err
}
