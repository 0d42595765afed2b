package library

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Database stores inventory snapshots in a SQLite file.
type Database struct {
	db *sql.DB
}

// NewDatabase opens (or creates) the SQLite database at dbPath and applies
// schema migrations.
func NewDatabase(dbPath string) (*Database, error) {
	// Ensure directory exists so first-run succeeds.
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=1", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := applyMigrations(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Database{db: db}, nil
}

// Close closes the DB.
func (d *Database) Close() error { return d.db.Close() }

// ---------------------------------------------------------------------------
// Schema migration
// ---------------------------------------------------------------------------

const schemaVersion = 1

func applyMigrations(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return fmt.Errorf("enable WAL: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);`); err != nil {
		return err
	}

	var current int
	_ = db.QueryRow(`SELECT value FROM meta WHERE key='schema_version';`).Scan(&current)
	if current >= schemaVersion {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS books (
            isbn TEXT PRIMARY KEY,
            title TEXT NOT NULL,
            author TEXT NOT NULL,
            publication_year INTEGER NOT NULL,
            total_copies INTEGER NOT NULL,
            available_copies INTEGER NOT NULL,
            has_reservations BOOLEAN NOT NULL DEFAULT 0,
            CHECK (available_copies >= 0 AND available_copies <= total_copies)
        );`,
		`CREATE TABLE IF NOT EXISTS users (
            user_id TEXT PRIMARY KEY,
            full_name TEXT NOT NULL,
            email TEXT NOT NULL,
            position INTEGER NOT NULL
        );`,
		// loans keep plain references: books and users may be deleted while
		// their loans stay on record.
		`CREATE TABLE IF NOT EXISTS loans (
            loan_id TEXT PRIMARY KEY,
            user_id TEXT NOT NULL,
            isbn TEXT NOT NULL,
            loan_date TEXT NOT NULL,
            due_date TEXT NOT NULL,
            return_date TEXT,
            returned BOOLEAN NOT NULL DEFAULT 0
        );`,
		`CREATE TABLE IF NOT EXISTS reservations (
            isbn TEXT NOT NULL REFERENCES books(isbn) ON DELETE CASCADE,
            position INTEGER NOT NULL,
            user_id TEXT NOT NULL,
            PRIMARY KEY (isbn, position)
        );`,
		`CREATE TABLE IF NOT EXISTS history (
            position INTEGER PRIMARY KEY,
            operation TEXT NOT NULL
        );`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}
	if _, err := tx.Exec(`INSERT INTO meta(key,value) VALUES('schema_version',?)
        ON CONFLICT(key) DO UPDATE SET value=excluded.value;`, schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}

	return tx.Commit()
}

// ---------------------------------------------------------------------------
// Snapshots
// ---------------------------------------------------------------------------

const dateLayout = time.RFC3339

// SaveInventory replaces the stored state with snap in one transaction.
func (d *Database) SaveInventory(snap InventorySnapshot) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"reservations", "history", "loans", "users", "books"} {
		if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, b := range snap.Books {
		if _, err := tx.Exec(`INSERT INTO books(isbn,title,author,publication_year,total_copies,available_copies,has_reservations) VALUES(?,?,?,?,?,?,?)`,
			b.ISBN, b.Title, b.Author, b.PublicationYear, b.TotalCopies, b.AvailableCopies, b.HasReservations); err != nil {
			return fmt.Errorf("save book %s: %w", b.ISBN, err)
		}
	}
	for i, u := range snap.Users {
		if _, err := tx.Exec(`INSERT INTO users(user_id,full_name,email,position) VALUES(?,?,?,?)`,
			u.ID, u.FullName, u.Email, i); err != nil {
			return fmt.Errorf("save user %s: %w", u.ID, err)
		}
	}
	for _, l := range snap.Loans {
		var returnDate sql.NullString
		if l.ReturnDate != nil {
			returnDate = sql.NullString{String: l.ReturnDate.Format(dateLayout), Valid: true}
		}
		if _, err := tx.Exec(`INSERT INTO loans(loan_id,user_id,isbn,loan_date,due_date,return_date,returned) VALUES(?,?,?,?,?,?,?)`,
			l.ID, l.UserID, l.ISBN, l.LoanDate.Format(dateLayout), l.DueDate.Format(dateLayout), returnDate, l.Returned); err != nil {
			return fmt.Errorf("save loan %s: %w", l.ID, err)
		}
	}
	for isbn, ids := range snap.Reservations {
		for pos, id := range ids {
			if _, err := tx.Exec(`INSERT INTO reservations(isbn,position,user_id) VALUES(?,?,?)`, isbn, pos, id); err != nil {
				return fmt.Errorf("save reservation %s: %w", isbn, err)
			}
		}
	}
	for pos, op := range snap.History {
		if _, err := tx.Exec(`INSERT INTO history(position,operation) VALUES(?,?)`, pos, op); err != nil {
			return fmt.Errorf("save history: %w", err)
		}
	}
	if _, err := tx.Exec(`INSERT INTO meta(key,value) VALUES('loan_seq',?)
        ON CONFLICT(key) DO UPDATE SET value=excluded.value;`, snap.LoanSeq); err != nil {
		return fmt.Errorf("save loan sequence: %w", err)
	}

	return tx.Commit()
}

// LoadInventory reads the stored state. An empty database yields an empty
// snapshot.
func (d *Database) LoadInventory() (InventorySnapshot, error) {
	snap := InventorySnapshot{Reservations: map[string][]string{}}

	rows, err := d.db.Query(`SELECT isbn,title,author,publication_year,total_copies,available_copies,has_reservations FROM books ORDER BY isbn`)
	if err != nil {
		return snap, err
	}
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ISBN, &b.Title, &b.Author, &b.PublicationYear, &b.TotalCopies, &b.AvailableCopies, &b.HasReservations); err != nil {
			rows.Close()
			return snap, err
		}
		snap.Books = append(snap.Books, b)
	}
	rows.Close()

	rows, err = d.db.Query(`SELECT user_id,full_name,email FROM users ORDER BY position`)
	if err != nil {
		return snap, err
	}
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.FullName, &u.Email); err != nil {
			rows.Close()
			return snap, err
		}
		snap.Users = append(snap.Users, u)
	}
	rows.Close()

	if err := d.loadLoans(&snap); err != nil {
		return snap, err
	}

	rows, err = d.db.Query(`SELECT isbn,user_id FROM reservations ORDER BY isbn, position`)
	if err != nil {
		return snap, err
	}
	for rows.Next() {
		var isbn, id string
		if err := rows.Scan(&isbn, &id); err != nil {
			rows.Close()
			return snap, err
		}
		snap.Reservations[isbn] = append(snap.Reservations[isbn], id)
	}
	rows.Close()

	rows, err = d.db.Query(`SELECT operation FROM history ORDER BY position`)
	if err != nil {
		return snap, err
	}
	for rows.Next() {
		var op string
		if err := rows.Scan(&op); err != nil {
			rows.Close()
			return snap, err
		}
		snap.History = append(snap.History, op)
	}
	rows.Close()

	var seq int
	err = d.db.QueryRow(`SELECT value FROM meta WHERE key='loan_seq'`).Scan(&seq)
	if err != nil && err != sql.ErrNoRows {
		return snap, err
	}
	snap.LoanSeq = seq
	return snap, nil
}

func (d *Database) loadLoans(snap *InventorySnapshot) error {
	rows, err := d.db.Query(`SELECT loan_id,user_id,isbn,loan_date,due_date,return_date,returned FROM loans ORDER BY length(loan_id), loan_id`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			l                 Loan
			loanDate, dueDate string
			returnDate        sql.NullString
		)
		if err := rows.Scan(&l.ID, &l.UserID, &l.ISBN, &loanDate, &dueDate, &returnDate, &l.Returned); err != nil {
			return err
		}
		if l.LoanDate, err = time.Parse(dateLayout, loanDate); err != nil {
			return fmt.Errorf("loan %s date: %w", l.ID, err)
		}
		if l.DueDate, err = time.Parse(dateLayout, dueDate); err != nil {
			return fmt.Errorf("loan %s due date: %w", l.ID, err)
		}
		if returnDate.Valid {
			t, err := time.Parse(dateLayout, returnDate.String)
			if err != nil {
				return fmt.Errorf("loan %s return date: %w", l.ID, err)
			}
			l.ReturnDate = &t
		}
		snap.Loans = append(snap.Loans, l)
	}
	return rows.Err()
}
