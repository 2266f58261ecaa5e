package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "beelearn",
	Short: "Micro-lessons with Mrs. Been",
	Long:  "BeeLearn — bite-size quiz lessons on Bitcoin, RWAs, AI, VR/AR, EI and Decentralization, with a streak to keep you buzzing.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A missing .env is fine; explicit env vars win either way.
		_ = godotenv.Load()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLearn(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(learnCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// newLogger builds the process logger. Verbose runs get development output
// with debug level.
func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
