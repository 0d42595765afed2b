package library

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Paths tells the manager where its stores live.
type Paths struct {
	DB         string
	Editorials string
	Genres     string
}

// LibraryManager is a thin façade over the inventory, the catalog and the
// database, keeping CLI code simple.
type LibraryManager struct {
	db        *Database
	inventory *Inventory
	catalog   *Catalog
}

// NewLibraryManager opens the SQLite database and JSON catalog files and
// restores the last saved state.
func NewLibraryManager(paths Paths, opts ...InventoryOption) (*LibraryManager, error) {
	db, err := NewDatabase(paths.DB)
	if err != nil {
		return nil, err
	}
	snap, err := db.LoadInventory()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("load inventory: %w", err)
	}

	lm := &LibraryManager{
		db:        db,
		inventory: RestoreInventory(snap, opts...),
		catalog:   LoadCatalog(paths.Editorials, paths.Genres),
	}
	log.Info().
		Int("books", len(snap.Books)).
		Int("users", len(snap.Users)).
		Int("loans", len(snap.Loans)).
		Int("editorials", len(lm.catalog.ListEditorials())).
		Int("genres", len(lm.catalog.ListGenres())).
		Msg("library loaded")
	return lm, nil
}

// Save writes the inventory to the database.
func (lm *LibraryManager) Save() error {
	start := time.Now()
	if err := lm.db.SaveInventory(lm.inventory.Snapshot()); err != nil {
		return fmt.Errorf("save inventory: %w", err)
	}
	log.Debug().Dur("took", time.Since(start)).Msg("inventory saved")
	return nil
}

// Close saves the inventory and closes the underlying database.
func (lm *LibraryManager) Close() error {
	saveErr := lm.Save()
	if err := lm.db.Close(); err != nil && saveErr == nil {
		return err
	}
	return saveErr
}

func (lm *LibraryManager) Inventory() *Inventory { return lm.inventory }
func (lm *LibraryManager) Catalog() *Catalog     { return lm.catalog }

// ------------------ Book helpers ------------------

func (lm *LibraryManager) AddBook(b *Book) error { return lm.inventory.AddBook(b) }
func (lm *LibraryManager) GetBook(isbn string) (*Book, bool) {
	return lm.inventory.Book(isbn)
}
func (lm *LibraryManager) GetAllBooks() []*Book { return lm.inventory.Books() }

func (lm *LibraryManager) UpdateBook(isbn string, changes BookChanges) error {
	return lm.inventory.UpdateBook(isbn, changes)
}

func (lm *LibraryManager) DeleteBook(isbn string) error { return lm.inventory.DeleteBook(isbn) }

// ------------------ User helpers ------------------

func (lm *LibraryManager) AddUser(u *User) error           { return lm.inventory.RegisterUser(u) }
func (lm *LibraryManager) GetUser(id string) (*User, bool) { return lm.inventory.User(id) }
func (lm *LibraryManager) GetAllUsers() []*User            { return lm.inventory.Users() }
func (lm *LibraryManager) DeleteUser(id string) error      { return lm.inventory.DeleteUser(id) }

func (lm *LibraryManager) GetReservations(isbn string) []string {
	return lm.inventory.Reservations(isbn)
}

// ------------------ Circulation ------------------

func (lm *LibraryManager) Borrow(isbn, userID string, days int) (BorrowResult, error) {
	return lm.inventory.Borrow(isbn, userID, days)
}

func (lm *LibraryManager) ReturnLoan(loanID string) (ReturnResult, error) {
	return lm.inventory.ReturnLoan(loanID)
}

func (lm *LibraryManager) ReserveBook(isbn, userID string) error {
	return lm.inventory.Reserve(isbn, userID)
}

func (lm *LibraryManager) CancelReservation(isbn, userID string) error {
	return lm.inventory.CancelReservation(isbn, userID)
}

func (lm *LibraryManager) ActiveLoans() []*Loan { return lm.inventory.ActiveLoans() }

// LastOperation returns the most recent inventory operation tag.
func (lm *LibraryManager) LastOperation() (string, bool) { return lm.inventory.LastOperation() }

// ------------------ Utilities ------------------

// PrettyBook formats a book for lists.
func PrettyBook(b *Book) string {
	reserved := "No"
	if b.HasReservations {
		reserved = "Yes"
	}
	return fmt.Sprintf("%-15s %-30s %-25s %-6d %3d/%-3d %s",
		b.ISBN, truncate(b.Title, 30), truncate(b.Author, 25), b.PublicationYear,
		b.AvailableCopies, b.TotalCopies, reserved)
}

// PrettyLoan formats a loan for lists.
func PrettyLoan(l *Loan) string {
	return fmt.Sprintf("%-8s %-12s %-15s %s  due %s",
		l.ID, l.UserID, l.ISBN, l.LoanDate.Format(time.DateOnly), l.DueDate.Format(time.DateOnly))
}

// truncate shortens s to maxLength characters, counting runes so accented
// titles are never cut inside a character.
func truncate(s string, maxLength int) string {
	r := []rune(s)
	if len(r) <= maxLength {
		return s
	}
	return string(r[:maxLength-3]) + "..."
}
