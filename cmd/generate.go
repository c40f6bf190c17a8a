package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate fresh placement-test questions (admin only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := newSession(cmd)
		if err != nil {
			return err
		}

		language, _ := cmd.Flags().GetString("language")
		num, _ := cmd.Flags().GetInt("num-questions")
		if num < 1 || num > 50 {
			return fmt.Errorf("num-questions must be between 1 and 50")
		}

		questions, err := session.Client().GenerateTest(cmd.Context(), language, num)
		if err != nil {
			return fmt.Errorf("generate questions: %w", err)
		}

		fmt.Printf("Generated %d question(s) for %s:\n", len(questions), language)
		for i, q := range questions {
			fmt.Printf("%3d. %s\n", i+1, q.Prompt)
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().String("language", "Spanish", "Target language")
	generateCmd.Flags().Int("num-questions", 10, "Number of questions to generate (1-50)")
}
