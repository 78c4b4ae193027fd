// Copyright (c) 2016 Mattermost, Inc. All Rights Reserved.
// See License.txt for license information.

package cmdlog

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/mattermost/flight-analysis/config"
)

// Configure points the standard logrus logger at stderr, leaving stdout for
// the report, and applies the level and formatter from the settings.
func Configure(settings config.LoggerSettings, verbose bool) error {
	return ConfigureOutput(os.Stderr, settings, verbose)
}

func ConfigureOutput(output io.Writer, settings config.LoggerSettings, verbose bool) error {
	level := logrus.InfoLevel
	if settings.ConsoleLevel != "" {
		parsed, err := logrus.ParseLevel(strings.ToLower(settings.ConsoleLevel))
		if err != nil {
			return errors.Wrap(err, "invalid console log level")
		}
		level = parsed
	}
	if verbose {
		level = logrus.DebugLevel
	}

	logrus.SetOutput(output)
	logrus.SetLevel(level)
	if settings.ConsoleJson {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}

	return nil
}
