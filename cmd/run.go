package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sahana/lingo/internal/app"
	"github.com/sahana/lingo/internal/history"
)

// runApp launches the interactive TUI.
func runApp(cmd *cobra.Command) error {
	session, err := newSession(cmd)
	if err != nil {
		return fmt.Errorf("build session: %w", err)
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	hist, err := history.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer hist.Close()

	return app.Run(app.Options{
		Session: session,
		History: hist,
	})
}
