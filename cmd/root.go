package cmd

import (
	logger "github.com/kete-vault/kete/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	RootCmd = &cobra.Command{
		Use:   "kete",
		Short: "Kete - a local vault for named credentials, encrypted at rest.",
		Long: `Kete is a small terminal vault. It stores named credentials encrypted
with your master key and lets you generate, retrieve, rotate, and delete
them from an interactive menu.

Running kete with no arguments starts the authenticated session. If the
vault has never been set up, the setup wizard runs first.

Usage:
  kete          Start the interactive session
  kete init     Set up (or re-create) the master config
  kete log      View the vault's operation history

Run 'kete help init' for details on setup.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing kete with verbose=%t, debug=%t", verbose, debug)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession()
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	RootCmd.AddCommand(initCmd)
	RootCmd.AddCommand(logCmd)
}
