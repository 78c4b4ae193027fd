// Copyright (c) 2019-present Mattermost, Inc. All Rights Reserved.
// See License.txt for license information

package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mattermost/flight-analysis/ticket"
)

type AnalysisConfig struct {
	Route       RouteSettings
	Display     string
	LogSettings LoggerSettings
}

type RouteSettings struct {
	Origin          string
	OriginName      string
	Destination     string
	DestinationName string
}

type LoggerSettings struct {
	ConsoleLevel string
	ConsoleJson  bool
}

// Route builds the filter route. An end left at its default code without a
// name also matches the default city name.
func (s RouteSettings) Route() ticket.Route {
	route := ticket.Route{
		Origin:          s.Origin,
		OriginName:      s.OriginName,
		Destination:     s.Destination,
		DestinationName: s.DestinationName,
	}
	if route.OriginName == "" && route.Origin == DefaultOrigin {
		route.OriginName = DefaultOriginName
	}
	if route.DestinationName == "" && route.Destination == DefaultDestination {
		route.DestinationName = DefaultDestinationName
	}
	return route
}

const (
	DisplayText     = "text"
	DisplayMarkdown = "markdown"

	DefaultOrigin          = "VVO"
	DefaultOriginName      = "Владивосток"
	DefaultDestination     = "TLV"
	DefaultDestinationName = "Тель-Авив"
)

// ReadConfig sets the defaults and reads the optional flightanalysis config
// file. A missing file is not an error.
func ReadConfig() error {
	viper.SetConfigName("flightanalysis")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config/")
	viper.SetEnvPrefix("flightanalysis")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("Route.Origin", DefaultOrigin)
	viper.SetDefault("Route.OriginName", "")
	viper.SetDefault("Route.Destination", DefaultDestination)
	viper.SetDefault("Route.DestinationName", "")
	viper.SetDefault("Display", DisplayText)
	viper.SetDefault("LogSettings.ConsoleLevel", "info")
	viper.SetDefault("LogSettings.ConsoleJson", false)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return errors.Wrap(err, "unable to read configuration file")
	}

	return nil
}

func GetUsedConfigFile() string {
	return viper.ConfigFileUsed()
}

func GetConfig() (*AnalysisConfig, error) {
	var cfg *AnalysisConfig

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unable to decode configuration")
	}

	switch cfg.Display {
	case DisplayText, DisplayMarkdown:
	default:
		return nil, errors.Errorf("unexpected display %q, expected %q or %q", cfg.Display, DisplayText, DisplayMarkdown)
	}

	return cfg, nil
}

func SetStringFlag(flags *pflag.FlagSet, full, short, helpText, configFileSetting string, defaultValue string) {
	flags.StringP(full, short, defaultValue, helpText)
	viper.SetDefault(configFileSetting, defaultValue)
	viper.BindPFlag(configFileSetting, flags.Lookup(full))
}

func SetBoolFlag(flags *pflag.FlagSet, full, short, helpText, configFileSetting string, defaultValue bool) {
	flags.BoolP(full, short, defaultValue, helpText)
	viper.SetDefault(configFileSetting, defaultValue)
	viper.BindPFlag(configFileSetting, flags.Lookup(full))
}
