package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sahana/lingo/internal/history"
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "List past placement-test results",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		hist, err := history.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open history store: %w", err)
		}
		defer hist.Close()

		records, err := hist.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No placement tests taken yet.")
			return nil
		}

		fmt.Printf("%-12s %-14s %7s  %-10s\n", "LANGUAGE", "LEVEL", "SCORE", "DATE")
		for _, r := range records {
			note := ""
			if !r.Saved {
				note = "  (not synced)"
			}
			fmt.Printf("%-12s %-14s %6.0f%%  %-10s%s\n",
				r.Language, r.Level, r.Grade, r.TakenAt.Local().Format("2006-01-02"), note)
		}
		return nil
	},
}
