// Command import_catalog seeds a library from a JSON file holding books,
// users, editorials and genres.
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"library-catalog/config"
	"library-catalog/library"
	"library-catalog/output"
)

// seedBook lets a seed leave available_copies out, meaning every copy is on
// the shelf. An explicit 0 is kept.
type seedBook struct {
	library.Book
	AvailableCopies *int `json:"available_copies"`
}

func (sb seedBook) book() library.Book {
	b := sb.Book
	b.AvailableCopies = b.TotalCopies
	if sb.AvailableCopies != nil {
		b.AvailableCopies = *sb.AvailableCopies
	}
	return b
}

type seedFile struct {
	Books      []seedBook          `json:"books"`
	Users      []library.User      `json:"users"`
	Editorials []library.Editorial `json:"editorials"`
	Genres     []library.Genre     `json:"genres"`
}

type counts struct {
	ok, failed int
}

type report struct {
	books, users, editorials, genres counts
}

var (
	cfg     config.Config
	dataDir string
	reset   bool
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:          "import_catalog <seed.json>",
	Short:        "Load books, users, editorials and genres from a seed file",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		level := cfg.LogLevel
		if verbose {
			level = zerolog.LevelDebugValue
		}
		config.SetupLogger(level)
		if cmd.Flags().Changed("data-dir") {
			cfg = cfg.WithDataDir(dataDir)
		}
		return run(args[0])
	},
}

func init() {
	config.SetupLogger("")
	cfg = config.Load()

	rootCmd.Flags().StringVar(&dataDir, "data-dir", cfg.DataDir, "Directory holding the database and catalog files")
	rootCmd.Flags().BoolVar(&reset, "reset", false, "Remove existing data files before importing")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func parseSeed(raw []byte) (seedFile, error) {
	var seed seedFile
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(raw, &seed); err != nil {
		return seed, fmt.Errorf("parse seed file: %w", err)
	}
	return seed, nil
}

func run(seedPath string) error {
	raw, err := os.ReadFile(seedPath)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	seed, err := parseSeed(raw)
	if err != nil {
		return err
	}

	paths := library.Paths{
		DB:         cfg.DBPath,
		Editorials: cfg.EditorialsFile,
		Genres:     cfg.GenresFile,
	}
	if reset {
		fmt.Println("Cleaning up existing data files...")
		for _, f := range []string{paths.DB, paths.DB + "-shm", paths.DB + "-wal", paths.Editorials, paths.Genres} {
			if err := os.Remove(f); err != nil && !errors.Is(err, os.ErrNotExist) {
				output.Warning("Could not remove %s: %v", f, err)
			}
		}
	}

	mgr, err := library.NewLibraryManager(paths, library.WithDefaultLoanDays(cfg.LoanDays))
	if err != nil {
		return fmt.Errorf("open library: %w", err)
	}
	rep := importSeed(mgr, seed)
	if err := mgr.Close(); err != nil {
		return fmt.Errorf("save library: %w", err)
	}

	fmt.Println("\nImport complete!")
	rows := [][]string{}
	for _, row := range []struct {
		kind string
		c    counts
	}{{"books", rep.books}, {"users", rep.users}, {"editorials", rep.editorials}, {"genres", rep.genres}} {
		rows = append(rows, []string{row.kind, strconv.Itoa(row.c.ok), strconv.Itoa(row.c.failed)})
	}
	output.Table([]string{"Kind", "OK", "Errors"}, rows)
	return nil
}

// importSeed adds every seed entry through mgr. Rejected entries are reported
// and counted; they do not stop the import.
func importSeed(mgr *library.LibraryManager, seed seedFile) report {
	var rep report
	for _, sb := range seed.Books {
		b := sb.book()
		tally(&rep.books, fmt.Sprintf("book %s", b.ISBN), mgr.AddBook(&b))
	}
	for i := range seed.Users {
		u := seed.Users[i]
		tally(&rep.users, fmt.Sprintf("user %s", u.ID), mgr.AddUser(&u))
	}
	for i := range seed.Editorials {
		e := seed.Editorials[i]
		tally(&rep.editorials, fmt.Sprintf("editorial %q", e.Name), mgr.Catalog().InsertEditorial(&e))
	}
	for i := range seed.Genres {
		g := seed.Genres[i]
		tally(&rep.genres, fmt.Sprintf("genre %q", g.Name), mgr.Catalog().InsertGenre(&g))
	}
	return rep
}

func tally(c *counts, what string, err error) {
	if err != nil {
		output.Error("%s: %v", what, err)
		c.failed++
		return
	}
	log.Debug().Str("item", what).Msg("imported")
	c.ok++
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
