// Package main implements the sdf command, a small toolbox for
// inspecting EPOCH SDF output: file and block inventory, variable
// statistics, and conversion to NetCDF.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// cfg holds the active configuration, loaded by the root command before
// any subcommand runs.
var cfg = &config{}

func main() {
	if err := rootCommand().Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	var cfgPath string
	var verbose bool

	root := &cobra.Command{
		Use:           "sdf",
		Short:         "Inspect EPOCH SDF files and convert them to NetCDF",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}
			cfg = loaded
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "TOML configuration file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(infoCommand())
	root.AddCommand(dumpCommand())
	root.AddCommand(convertCommand())
	return root
}
