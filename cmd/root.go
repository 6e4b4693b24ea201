package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:           "vrcswitch",
		Short:         "vrcswitch: VRChat session, presence, and launch helper",
		Long:          "vrcswitch authenticates against the VRChat web API, keeps a reusable session on disk, watches which instance you are in, and launches the companion executable with the right VR/desktop arguments.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")
	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		if logLevel != "" {
			app.logLevel.Set(parseLogLevel(logLevel))
		}
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newLoginCmd(app),
		newLogoutCmd(app),
		newStatusCmd(app),
		newWatchCmd(app),
		newLaunchCmd(app),
		newInitCmd(app),
	)

	return rootCmd
}
