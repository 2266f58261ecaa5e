package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bravedhq/beelearn/internal/lesson"
	"github.com/bravedhq/beelearn/internal/llm"
	"github.com/bravedhq/beelearn/internal/progress"
	"github.com/bravedhq/beelearn/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "LLM provider tooling",
}

var llmCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the configured provider by generating one sample lesson",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger(cmd)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer log.Sync()

		ctx := cmd.Context()
		provider, err := llm.NewProviderFromEnv(ctx, log)
		if err != nil {
			return err
		}

		topic, _ := cmd.Flags().GetString("topic")
		fmt.Printf("Model: %s\nGenerating a sample %s lesson...\n\n", provider.ModelID(), topic)

		engine := progress.NewEngine(store.NewMemoryStore(), nil, log)
		gen := lesson.NewGenerator(provider, engine, lesson.DefaultConfig(), log)

		start := time.Now()
		l := gen.Generate(ctx, "llm-check", []string{topic})

		out, err := json.MarshalIndent(l, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, string(out))
		fmt.Printf("\nDone in %s.\n", time.Since(start).Round(time.Millisecond))

		if lesson.IsFallback(l) {
			fmt.Println("Warning: got the fallback lesson; the provider call likely failed. Re-run with --verbose for details.")
		}
		return nil
	},
}

func init() {
	llmCheckCmd.Flags().String("topic", "Bitcoin", "Topic for the sample lesson")
	llmCmd.AddCommand(llmCheckCmd)
}
