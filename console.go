package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"library-catalog/library"
	"library-catalog/output"
)

// console reads commands line by line. Prompts are only printed when the
// input is a terminal so piped scripts produce clean output.
type console struct {
	sc          *bufio.Scanner
	mgr         *library.LibraryManager
	interactive bool
}

func runConsole(in *os.File, mgr *library.LibraryManager) {
	c := &console{
		sc:          bufio.NewScanner(in),
		mgr:         mgr,
		interactive: term.IsTerminal(int(in.Fd())),
	}
	output.SetPlain(!c.interactive)

	if c.interactive {
		fmt.Println("Welcome to the Library Catalog Manager!")
		fmt.Println("Available commands:")
		fmt.Println("  Books: add book, list books, search book, update book, delete book")
		fmt.Println("  Users: add user, list users, search user, delete user")
		fmt.Println("  Circulation: borrow, return, reserve, cancel reservation, list reservations, list loans")
		fmt.Println("  Catalog: add editorial, list editorials, search editorial, update editorial,")
		fmt.Println("           add genre, list genres, search genre, update genre")
		fmt.Println("  System: last action, save, exit")
	}

	for {
		if c.interactive {
			fmt.Print("\n> ")
		}
		if !c.sc.Scan() {
			break
		}
		cmd := strings.TrimSpace(c.sc.Text())

		switch cmd {
		case "":
			continue
		case "add book":
			c.handleAddBook()
		case "list books":
			printBooks(c.mgr.GetAllBooks())
		case "search book":
			c.handleSearchBook()
		case "update book":
			c.handleUpdateBook()
		case "delete book":
			c.handleDeleteBook()
		case "add user":
			c.handleAddUser()
		case "list users":
			printUsers(c.mgr.GetAllUsers())
		case "search user":
			c.handleSearchUser()
		case "delete user":
			c.handleDeleteUser()
		case "borrow":
			c.handleBorrow()
		case "return":
			c.handleReturn()
		case "reserve":
			c.handleReserve()
		case "cancel reservation":
			c.handleCancelReservation()
		case "list reservations":
			c.handleListReservations()
		case "list loans":
			printLoans(c.mgr.ActiveLoans())
		case "add editorial":
			c.handleAddEditorial()
		case "list editorials":
			printEditorials(c.mgr.Catalog().ListEditorials())
		case "search editorial":
			c.handleSearchEditorial()
		case "update editorial":
			c.handleUpdateEditorial()
		case "add genre":
			c.handleAddGenre()
		case "list genres":
			printGenres(c.mgr.Catalog().ListGenres())
		case "search genre":
			c.handleSearchGenre()
		case "update genre":
			c.handleUpdateGenre()
		case "last action":
			if op, ok := c.mgr.LastOperation(); ok {
				output.Info("Last action: %s", op)
			} else {
				output.Muted("History is empty.")
			}
		case "save":
			if err := c.mgr.Save(); err != nil {
				output.Error("Error saving: %v", err)
			} else {
				output.Success("Library state saved.")
			}
		case "exit":
			fmt.Println("Goodbye!")
			return
		default:
			output.Warning("Unknown command %q. Type one of the available commands listed above.", cmd)
		}
	}
}

// ask prints label (when interactive) and reads one trimmed line.
func (c *console) ask(label string) (string, bool) {
	if c.interactive {
		fmt.Print(label + ": ")
	}
	if !c.sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.sc.Text()), true
}

// askInt reads an integer; an empty answer yields def.
func (c *console) askInt(label string, def int) (int, bool) {
	s, ok := c.ask(label)
	if !ok {
		return 0, false
	}
	if s == "" {
		return def, true
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		output.Error("Invalid number: %s", s)
		return 0, false
	}
	return n, true
}

// askOptional reads a line and returns nil when it is blank.
func (c *console) askOptional(label string) (*string, bool) {
	s, ok := c.ask(label)
	if !ok || s == "" {
		return nil, ok
	}
	return &s, true
}

func (c *console) askOptionalInt(label string) (*int, bool) {
	s, ok := c.ask(label)
	if !ok || s == "" {
		return nil, ok
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		output.Error("Invalid number: %s", s)
		return nil, false
	}
	return &n, true
}

// ------------------ Books ------------------

func (c *console) handleAddBook() {
	isbn, ok := c.ask("ISBN")
	if !ok {
		return
	}
	title, ok := c.ask("Title")
	if !ok {
		return
	}
	author, ok := c.ask("Author")
	if !ok {
		return
	}
	year, ok := c.askInt("Publication year", 0)
	if !ok {
		return
	}
	total, ok := c.askInt("Total copies", 1)
	if !ok {
		return
	}
	available, ok := c.askInt(fmt.Sprintf("Available copies (default %d)", total), total)
	if !ok {
		return
	}

	err := c.mgr.AddBook(&library.Book{
		ISBN: isbn, Title: title, Author: author, PublicationYear: year,
		TotalCopies: total, AvailableCopies: available,
	})
	if err != nil {
		output.Error("Error adding book: %v", err)
		return
	}
	output.Success("Book %s registered.", isbn)
}

func (c *console) handleSearchBook() {
	isbn, ok := c.ask("ISBN")
	if !ok {
		return
	}
	b, found := c.mgr.GetBook(isbn)
	if !found {
		output.Warning("No book with ISBN %s.", isbn)
		return
	}
	printBooks([]*library.Book{b})
	if q := c.mgr.GetReservations(isbn); len(q) > 0 {
		fmt.Printf("Reservation queue: %s\n", strings.Join(q, ", "))
	}
}

func (c *console) handleUpdateBook() {
	isbn, ok := c.ask("ISBN of the book to update")
	if !ok {
		return
	}
	if c.interactive {
		fmt.Println("Leave a field blank to keep it.")
	}
	var changes library.BookChanges
	if changes.Title, ok = c.askOptional("New title"); !ok {
		return
	}
	if changes.Author, ok = c.askOptional("New author"); !ok {
		return
	}
	if changes.PublicationYear, ok = c.askOptionalInt("New publication year"); !ok {
		return
	}
	if changes.TotalCopies, ok = c.askOptionalInt("New total copies"); !ok {
		return
	}
	if changes.AvailableCopies, ok = c.askOptionalInt("New available copies"); !ok {
		return
	}
	if err := c.mgr.UpdateBook(isbn, changes); err != nil {
		output.Error("Error updating book: %v", err)
		return
	}
	output.Success("Book %s updated.", isbn)
}

func (c *console) handleDeleteBook() {
	isbn, ok := c.ask("ISBN to delete")
	if !ok {
		return
	}
	if err := c.mgr.DeleteBook(isbn); err != nil {
		output.Error("Error deleting book: %v", err)
		return
	}
	output.Success("Book %s deleted.", isbn)
}

// ------------------ Users ------------------

func (c *console) handleAddUser() {
	id, ok := c.ask("User ID")
	if !ok {
		return
	}
	name, ok := c.ask("Full name")
	if !ok {
		return
	}
	email, ok := c.ask("Email")
	if !ok {
		return
	}
	if err := c.mgr.AddUser(&library.User{ID: id, FullName: name, Email: email}); err != nil {
		output.Error("Error: %v", err)
		return
	}
	output.Success("User %s registered.", id)
}

func (c *console) handleSearchUser() {
	id, ok := c.ask("User ID")
	if !ok {
		return
	}
	u, found := c.mgr.GetUser(id)
	if !found {
		output.Warning("No user with ID %s.", id)
		return
	}
	printUsers([]*library.User{u})
}

func (c *console) handleDeleteUser() {
	id, ok := c.ask("User ID to delete")
	if !ok {
		return
	}
	if err := c.mgr.DeleteUser(id); err != nil {
		output.Error("Error deleting user: %v", err)
		return
	}
	output.Success("User %s deleted.", id)
}

// ------------------ Circulation ------------------

func (c *console) handleBorrow() {
	isbn, ok := c.ask("ISBN")
	if !ok {
		return
	}
	userID, ok := c.ask("User ID")
	if !ok {
		return
	}
	days, ok := c.askInt("Days (blank for default)", 0)
	if !ok {
		return
	}

	res, err := c.mgr.Borrow(isbn, userID, days)
	if err != nil {
		output.Error("Error borrowing: %v", err)
		return
	}
	switch res.Status {
	case library.BorrowLoaned:
		output.Success("Loan created. ID: %s", res.LoanID)
	case library.BorrowQueued:
		q := c.mgr.GetReservations(isbn)
		output.Warning("No copies available. %s was added to the reservation queue (position %d).", userID, len(q))
	}
}

func (c *console) handleReturn() {
	loanID, ok := c.ask("Loan ID")
	if !ok {
		return
	}
	res, err := c.mgr.ReturnLoan(loanID)
	if err != nil {
		output.Error("Error returning: %v", err)
		return
	}
	output.Success("Loan %s returned.", loanID)
	if res.Promoted != nil {
		output.Info("Book automatically lent to %s (next in reservation queue), loan %s.", res.Promoted.UserID, res.Promoted.ID)
	}
}

func (c *console) handleReserve() {
	isbn, ok := c.ask("ISBN")
	if !ok {
		return
	}
	userID, ok := c.ask("User ID")
	if !ok {
		return
	}
	if err := c.mgr.ReserveBook(isbn, userID); err != nil {
		output.Error("Error reserving: %v", err)
		return
	}
	output.Success("Reservation created. Position in queue: %d", len(c.mgr.GetReservations(isbn)))
}

func (c *console) handleCancelReservation() {
	isbn, ok := c.ask("ISBN")
	if !ok {
		return
	}
	userID, ok := c.ask("User ID")
	if !ok {
		return
	}
	err := c.mgr.CancelReservation(isbn, userID)
	if errors.Is(err, library.ErrReservationNotFound) {
		output.Warning("%s has no reservation for %s.", userID, isbn)
		return
	}
	if err != nil {
		output.Error("Error cancelling reservation: %v", err)
		return
	}
	output.Success("Reservation for %s cancelled for %s.", isbn, userID)
}

func (c *console) handleListReservations() {
	isbn, ok := c.ask("ISBN (or press Enter for all books)")
	if !ok {
		return
	}
	books := c.mgr.GetAllBooks()
	if isbn != "" {
		b, found := c.mgr.GetBook(isbn)
		if !found {
			output.Warning("No book with ISBN %s.", isbn)
			return
		}
		books = []*library.Book{b}
	}

	var rows [][]string
	for _, b := range books {
		q := c.mgr.GetReservations(b.ISBN)
		if len(q) == 0 {
			continue
		}
		entries := make([]string, len(q))
		for i, id := range q {
			entries[i] = fmt.Sprintf("%d.%s", i+1, id)
		}
		rows = append(rows, []string{b.ISBN, b.Title, strings.Join(entries, ", ")})
	}
	if len(rows) == 0 {
		output.Muted("No active reservations.")
		return
	}
	output.Table([]string{"ISBN", "Title", "Queue"}, rows)
}

// ------------------ Catalog ------------------

func (c *console) handleAddEditorial() {
	name, ok := c.ask("Name")
	if !ok {
		return
	}
	country, ok := c.ask("Country")
	if !ok {
		return
	}
	year, ok := c.askInt("Founding year", 0)
	if !ok {
		return
	}
	if err := c.mgr.Catalog().InsertEditorial(library.NewEditorial(name, country, year)); err != nil {
		output.Error("Error adding editorial: %v", err)
		return
	}
	output.Success("Editorial %q added.", name)
}

func (c *console) handleSearchEditorial() {
	name, ok := c.ask("Name")
	if !ok {
		return
	}
	e, found := c.mgr.Catalog().SearchEditorial(name)
	if !found {
		output.Warning("No editorial named %q.", name)
		return
	}
	printEditorials([]*library.Editorial{e})
}

func (c *console) handleUpdateEditorial() {
	original, ok := c.ask("Current name")
	if !ok {
		return
	}
	if c.interactive {
		fmt.Println("Leave a field blank to keep it.")
	}
	var changes library.EditorialChanges
	if changes.Name, ok = c.askOptional("New name"); !ok {
		return
	}
	if changes.Country, ok = c.askOptional("New country"); !ok {
		return
	}
	if changes.FoundedYear, ok = c.askOptionalInt("New founding year"); !ok {
		return
	}
	if err := c.mgr.Catalog().UpdateEditorial(original, changes); err != nil {
		output.Error("Error updating editorial: %v", err)
		return
	}
	output.Success("Editorial %q updated.", original)
}

func (c *console) handleAddGenre() {
	name, ok := c.ask("Name")
	if !ok {
		return
	}
	desc, ok := c.ask("Description")
	if !ok {
		return
	}
	if err := c.mgr.Catalog().InsertGenre(library.NewGenre(name, desc)); err != nil {
		output.Error("Error adding genre: %v", err)
		return
	}
	output.Success("Genre %q added.", name)
}

func (c *console) handleSearchGenre() {
	name, ok := c.ask("Name")
	if !ok {
		return
	}
	g, found := c.mgr.Catalog().SearchGenre(name)
	if !found {
		output.Warning("No genre named %q.", name)
		return
	}
	printGenres([]*library.Genre{g})
}

func (c *console) handleUpdateGenre() {
	original, ok := c.ask("Current name")
	if !ok {
		return
	}
	if c.interactive {
		fmt.Println("Leave a field blank to keep it.")
	}
	var changes library.GenreChanges
	if changes.Name, ok = c.askOptional("New name"); !ok {
		return
	}
	if changes.Description, ok = c.askOptional("New description"); !ok {
		return
	}
	if err := c.mgr.Catalog().UpdateGenre(original, changes); err != nil {
		output.Error("Error updating genre: %v", err)
		return
	}
	output.Success("Genre %q updated.", original)
}

// ------------------ Listings ------------------

func printBooks(books []*library.Book) {
	if len(books) == 0 {
		output.Muted("No books registered.")
		return
	}
	output.Header("%-15s %-30s %-25s %-6s %-7s %s", "ISBN", "Title", "Author", "Year", "Avail", "Reserved")
	for _, b := range books {
		fmt.Println(library.PrettyBook(b))
	}
}

func printUsers(users []*library.User) {
	if len(users) == 0 {
		output.Muted("No users registered.")
		return
	}
	rows := make([][]string, len(users))
	for i, u := range users {
		rows[i] = []string{u.ID, u.FullName, u.Email}
	}
	output.Table([]string{"ID", "Name", "Email"}, rows)
}

func printLoans(loans []*library.Loan) {
	if len(loans) == 0 {
		output.Muted("No active loans.")
		return
	}
	output.Header("%-8s %-12s %-15s %s", "Loan", "User", "ISBN", "Dates")
	for _, l := range loans {
		fmt.Println(library.PrettyLoan(l))
	}
}

func printEditorials(es []*library.Editorial) {
	if len(es) == 0 {
		output.Muted("No editorials registered.")
		return
	}
	rows := make([][]string, len(es))
	for i, e := range es {
		rows[i] = []string{e.Name, e.Country, strconv.Itoa(e.FoundedYear)}
	}
	output.Table([]string{"Name", "Country", "Founded"}, rows)
}

func printGenres(gs []*library.Genre) {
	if len(gs) == 0 {
		output.Muted("No genres registered.")
		return
	}
	rows := make([][]string, len(gs))
	for i, g := range gs {
		rows[i] = []string{g.Name, g.Description}
	}
	output.Table([]string{"Name", "Description"}, rows)
}
