package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/abhisek/practicekit/internal/config"
	"github.com/abhisek/practicekit/internal/store"
)

var (
	cfg *config.Config
	log *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "practicekit",
	Short: "Randomized math practice papers for grades 1-5 and SAT",
	Long: `practicekit generates math practice questions, papers and quizzes,
checks answers, and serves the same through a JSON API.

Run without a subcommand to start a practice session in the terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		c, err := config.Load(path)
		if err != nil {
			return err
		}
		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			c.Log.Level = lvl
		}
		l, err := config.NewLogger(c.Log)
		if err != nil {
			return err
		}
		cfg, log = c, l
		return nil
	},
	RunE: runPractice,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default practicekit.yaml)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides db.path and PRACTICEKIT_DB)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (overrides log.level)")

	addPracticeFlags(rootCmd)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(paperCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(puzzleCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path: --db flag, then db.path from
// the config, then PRACTICEKIT_DB or the default data directory.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.DB.Path != "" {
		return cfg.DB.Path, store.EnsureDir(cfg.DB.Path)
	}
	return store.DefaultDBPath()
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}
