package main

import (
	"fmt"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"strings"
)

type options struct {
	configPath string
	initialize bool
}

func RootCmd() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:   "charlcd",
		Short: "Drive a character LCD",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if cmd.Flags().Lookup("debug").Changed {
				log.SetLevel(log.DebugLevel)
			}
		},
	}

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newWriteCmd(opts))
	rootCmd.AddCommand(newClearCmd(opts))
	rootCmd.AddCommand(newServeCmd(opts))
	rootCmd.PersistentFlags().Bool("debug", false, "Turn on debug logging.")
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "config.yaml", "Configuration file.")
	rootCmd.PersistentFlags().BoolVar(&opts.initialize, "init", false, "Run the controller initialization sequence first.")

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Prints the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), versionString())
		},
	}
}

func newWriteCmd(opts *options) *cobra.Command {
	clearFirst := false
	cmd := cobra.Command{
		Use:   "write <text>...",
		Short: "Write text on the current line. Text longer than the display is cut off.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, closer, err := openDisplay(opts)
			if err != nil {
				return err
			}
			defer closer()

			if clearFirst {
				if err := d.Cls(); err != nil {
					return err
				}
			}
			return d.Write(strings.Join(args, " "))
		},
	}

	cmd.Flags().BoolVar(&clearFirst, "clear", false, "Clear the display before writing.")

	return &cmd
}

func newClearCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the display",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, closer, err := openDisplay(opts)
			if err != nil {
				return err
			}
			defer closer()

			return d.Cls()
		},
	}
}

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve a web form for showing messages. The button clears the display.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(opts)
		},
	}
}
