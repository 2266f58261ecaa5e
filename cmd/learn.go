package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bravedhq/beelearn/internal/app"
)

var learnCmd = &cobra.Command{
	Use:   "learn",
	Short: "Start a lesson in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLearn(cmd)
	},
}

func runLearn(_ *cobra.Command) error {
	return app.Run()
}
