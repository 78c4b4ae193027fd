package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mattermost/flight-analysis/generator"
	"github.com/mattermost/flight-analysis/loader"
	"github.com/mattermost/flight-analysis/ticket"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ticketgen",
		Short:         "Generates sample ticket documents for flightanalysis",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
		RunE: generateCmd,
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "make output more verbose")
	rootCmd.Flags().IntP("count", "n", 100, "number of tickets to generate")
	rootCmd.Flags().StringP("schema", "s", generator.SchemaWallClock, "one of 'wallclock' or 'instants'")
	rootCmd.Flags().StringP("out", "f", "", "file to write, .yaml or .yml for yaml output, stdout when empty")
	rootCmd.Flags().String("origin", "VVO", "origin of the main route")
	rootCmd.Flags().String("destination", "TLV", "destination of the main route")
	rootCmd.Flags().Int("noise", 20, "percent of tickets on other routes")
	rootCmd.Flags().String("carriers", "", "weighted carriers, e.g. 'SU:40,TK:20'")
	rootCmd.Flags().Int("random-carriers", 0, "number of extra carriers named after random companies")

	return rootCmd
}

func generateCmd(cmd *cobra.Command, args []string) error {
	var config generator.Config
	config.Count, _ = cmd.Flags().GetInt("count")
	config.Schema, _ = cmd.Flags().GetString("schema")
	config.NoisePercent, _ = cmd.Flags().GetInt("noise")
	config.RandomCarriers, _ = cmd.Flags().GetInt("random-carriers")
	origin, _ := cmd.Flags().GetString("origin")
	destination, _ := cmd.Flags().GetString("destination")
	config.Route = ticket.Route{Origin: origin, Destination: destination}

	if carriers, _ := cmd.Flags().GetString("carriers"); carriers != "" {
		choices, err := generator.ParseCarriers(carriers)
		if err != nil {
			return err
		}
		config.Carriers = choices
	}

	document, err := generator.Generate(config)
	if err != nil {
		return errors.Wrap(err, "failed to generate tickets")
	}

	out, _ := cmd.Flags().GetString("out")
	var output io.Writer
	format := loader.FormatJSON
	if out == "" {
		output = cmd.OutOrStdout()
	} else {
		file, err := os.Create(out)
		if err != nil {
			return errors.Wrap(err, "failed to create output file")
		}
		defer file.Close()
		output = file
		format = loader.FormatForPath(out)
	}

	if err := document.Write(output, format); err != nil {
		return err
	}

	if out != "" {
		logrus.Infof("wrote %s to %s", document, out)
	}

	return nil
}
