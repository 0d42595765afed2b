package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"library-catalog/config"
	"library-catalog/library"
	"library-catalog/output"
)

var (
	cfg config.Config

	dataDir  string
	dbPath   string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "library",
	Short: "Library catalog manager",
	Long: `Manage books, users, loans and reservations, plus the editorial and
genre catalogs. Without a subcommand an interactive console is started.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.SetupLogger(logLevel)
		if cmd.Flags().Changed("data-dir") {
			cfg = cfg.WithDataDir(dataDir)
			if !cmd.Flags().Changed("db") {
				dbPath = cfg.DBPath
			}
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := openManager()
		if err != nil {
			return err
		}
		defer closeManager(mgr)
		runConsole(os.Stdin, mgr)
		return nil
	},
}

var editorialsCmd = &cobra.Command{
	Use:   "editorials",
	Short: "List editorials in name order",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := openManager()
		if err != nil {
			return err
		}
		defer closeManager(mgr)
		printEditorials(mgr.Catalog().ListEditorials())
		return nil
	},
}

var genresCmd = &cobra.Command{
	Use:   "genres",
	Short: "List genres in name order",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := openManager()
		if err != nil {
			return err
		}
		defer closeManager(mgr)
		printGenres(mgr.Catalog().ListGenres())
		return nil
	},
}

var booksCmd = &cobra.Command{
	Use:   "books",
	Short: "List books in ISBN order",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := openManager()
		if err != nil {
			return err
		}
		defer closeManager(mgr)
		printBooks(mgr.GetAllBooks())
		return nil
	},
}

func init() {
	config.SetupLogger("")
	cfg = config.Load()

	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", cfg.DataDir, "Directory holding the database and catalog files")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", cfg.DBPath, "SQLite database file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	rootCmd.AddCommand(editorialsCmd, genresCmd, booksCmd)
}

func openManager() (*library.LibraryManager, error) {
	mgr, err := library.NewLibraryManager(library.Paths{
		DB:         dbPath,
		Editorials: cfg.EditorialsFile,
		Genres:     cfg.GenresFile,
	}, library.WithDefaultLoanDays(cfg.LoanDays))
	if err != nil {
		return nil, fmt.Errorf("open library: %w", err)
	}
	return mgr, nil
}

func closeManager(mgr *library.LibraryManager) {
	if err := mgr.Close(); err != nil {
		log.Error().Err(err).Msg("closing library")
		output.Error("Could not save library state: %v", err)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
