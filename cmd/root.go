package cmd

import (
	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree. Without a subcommand it starts the TUI.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "voicechat",
		Short: "AI 의사와 진료 대화를 연습하는 터미널 클라이언트",
		Long: "voicechat: practice a medical consultation with an AI doctor, " +
			"review the graded feedback, retry with quests and take home a script.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.String("api", "", "Backend base URL (overrides VOICECHAT_API_BASE_URL)")
	flags.String("db", "", "Path to SQLite database file (overrides VOICECHAT_DB)")
	flags.Bool("debug", false, "Log at debug level")
	flags.String("log-file", "", "Path of the rotating log file (overrides VOICECHAT_LOG_FILE)")

	root.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newLogsCmd(),
		newFeedbackCmd(),
		newQuestsCmd(),
		newCheatsheetCmd(),
		newClearCmd(),
		newDoctorCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}
