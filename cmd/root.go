package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sahana/lingo/internal/api"
	"github.com/sahana/lingo/internal/auth"
	"github.com/sahana/lingo/internal/history"
)

var rootCmd = &cobra.Command{
	Use:   "lingo",
	Short: "Language-learning client with placement testing",
	Long:  "Lingo — terminal client for the Lingo language-learning service: sign in, take a placement test, track your level.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("server", "", "Backend server URL (overrides LINGO_SERVER env var)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LINGO_DB env var)")

	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveServer returns the backend URL using --server (highest priority),
// then the LINGO_SERVER env var, then the default.
func resolveServer(cmd *cobra.Command) string {
	if s, _ := cmd.Flags().GetString("server"); s != "" {
		return s
	}
	if s := os.Getenv("LINGO_SERVER"); s != "" {
		return s
	}
	return api.DefaultBaseURL
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then LINGO_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, history.EnsureDir(p)
	}
	return history.DefaultDBPath()
}

// newSession builds the session controller shared by all commands.
func newSession(cmd *cobra.Command) (*auth.Session, error) {
	credPath, err := auth.DefaultCredentialsPath()
	if err != nil {
		return nil, err
	}
	store := auth.NewFileStore(credPath)
	return auth.NewSession(resolveServer(cmd), store), nil
}
