// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package cmd implements the disklayout commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/siderolabs/go-disklayout/layout"
)

var rootCmdFlags struct {
	output            string
	maxIndex          uint32
	initialBufferSize int
	geometry          bool
	debug             bool
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:           "disklayout",
	Short:         "List physical disks and their partition layout",
	Long:          ``,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runList(cmd)
	},
}

// Execute runs the root command, errors are printed to stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
	}

	return err
}

func newLogger() (*zap.Logger, error) {
	if rootCmdFlags.debug {
		return zap.NewDevelopment()
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return config.Build()
}

func init() {
	flags := rootCmd.PersistentFlags()

	flags.StringVarP(&rootCmdFlags.output, "output", "o", outputTable, "output format (table, json)")
	flags.Uint32Var(&rootCmdFlags.maxIndex, "max-index", layout.DefaultMaxIndex, "number of disk indices to probe")
	flags.IntVar(&rootCmdFlags.initialBufferSize, "initial-buffer-size", 0, "size of the first device control buffer in bytes (0 for default)")
	flags.BoolVar(&rootCmdFlags.geometry, "geometry", false, "read disk size and sector size")
	flags.BoolVar(&rootCmdFlags.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(listCmd)
}
