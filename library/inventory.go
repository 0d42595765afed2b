package library

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"library-catalog/collections"
)

const (
	// DefaultLoanDays is the loan term used when none is requested.
	DefaultLoanDays = 7

	// promotedLoanDays is the term of loans created from a reservation queue.
	promotedLoanDays = 7
)

// BorrowStatus tells the caller what a Borrow call did.
type BorrowStatus int

const (
	// BorrowLoaned means a copy was lent and a loan created.
	BorrowLoaned BorrowStatus = iota
	// BorrowQueued means no copy was available and the user was queued.
	BorrowQueued
)

func (s BorrowStatus) String() string {
	switch s {
	case BorrowLoaned:
		return "loaned"
	case BorrowQueued:
		return "queued"
	default:
		return fmt.Sprintf("BorrowStatus(%d)", int(s))
	}
}

// BorrowResult is the outcome of a successful Borrow call.
type BorrowResult struct {
	Status BorrowStatus
	LoanID string
}

// ReturnResult is the outcome of a successful ReturnLoan call. Promoted is
// set when the return handed the copy to the head of the reservation queue.
type ReturnResult struct {
	Returned *Loan
	Promoted *Loan
}

// Inventory owns books, users, loans, reservation queues and the operation
// history, and enforces the borrow/return/reserve rules.
//
// An Inventory is not safe for concurrent use.
type Inventory struct {
	books        *collections.ArrayList[*Book, string]
	users        *collections.LinkedList[*User]
	loans        *collections.ArrayList[*Loan, int]
	reservations map[string]*collections.Queue[string]
	history      *collections.Stack[string]
	loanSeq      int

	now         func() time.Time
	defaultDays int
}

// InventoryOption customises an Inventory.
type InventoryOption func(*Inventory)

// WithClock replaces time.Now as the source of "today".
func WithClock(now func() time.Time) InventoryOption {
	return func(inv *Inventory) { inv.now = now }
}

// WithDefaultLoanDays sets the term used when Borrow gets a non-positive one.
func WithDefaultLoanDays(days int) InventoryOption {
	return func(inv *Inventory) {
		if days > 0 {
			inv.defaultDays = days
		}
	}
}

// NewInventory returns an empty inventory.
func NewInventory(opts ...InventoryOption) *Inventory {
	inv := &Inventory{
		books:        collections.NewArrayList(func(b *Book) string { return b.ISBN }),
		users:        collections.NewLinkedList[*User](),
		loans:        collections.NewArrayList(func(l *Loan) int { return l.seq }),
		reservations: make(map[string]*collections.Queue[string]),
		history:      collections.NewStack[string](),
		now:          time.Now,
		defaultDays:  DefaultLoanDays,
	}
	for _, opt := range opts {
		opt(inv)
	}
	return inv
}

func (inv *Inventory) today() time.Time {
	t := inv.now()
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func (inv *Inventory) record(format string, args ...any) {
	inv.history.Push(fmt.Sprintf(format, args...))
}

// ------------------ Books ------------------

// AddBook registers b and keeps the book list ordered by ISBN.
func (inv *Inventory) AddBook(b *Book) error {
	if b.AvailableCopies < 0 || b.AvailableCopies > b.TotalCopies {
		return fmt.Errorf("add book %s: %w", b.ISBN, ErrInvalidStock)
	}
	if inv.books.BinarySearch(b.ISBN) != -1 {
		return fmt.Errorf("add book %s: %w", b.ISBN, ErrDuplicateISBN)
	}
	inv.books.Append(b)
	inv.books.SortInPlace()
	inv.record("ADD_BOOK %s", b.ISBN)
	log.Debug().Str("isbn", b.ISBN).Int("copies", b.TotalCopies).Msg("book added")
	return nil
}

// Book looks a book up by ISBN.
func (inv *Inventory) Book(isbn string) (*Book, bool) {
	idx := inv.books.BinarySearch(isbn)
	if idx == -1 {
		return nil, false
	}
	return inv.books.Get(idx), true
}

// Books returns every book in ISBN order.
func (inv *Inventory) Books() []*Book { return inv.books.Values() }

// UpdateBook applies changes to the book with the given ISBN. The stock
// invariant is checked against the resulting values before anything is
// written.
func (inv *Inventory) UpdateBook(isbn string, changes BookChanges) error {
	b, ok := inv.Book(isbn)
	if !ok {
		return fmt.Errorf("update book %s: %w", isbn, ErrBookNotFound)
	}

	total, available := b.TotalCopies, b.AvailableCopies
	if changes.TotalCopies != nil {
		total = *changes.TotalCopies
	}
	if changes.AvailableCopies != nil {
		available = *changes.AvailableCopies
	}
	if available < 0 || available > total {
		return fmt.Errorf("update book %s: %w", isbn, ErrInvalidStock)
	}

	if changes.Title != nil {
		b.Title = *changes.Title
	}
	if changes.Author != nil {
		b.Author = *changes.Author
	}
	if changes.PublicationYear != nil {
		b.PublicationYear = *changes.PublicationYear
	}
	b.TotalCopies, b.AvailableCopies = total, available
	inv.record("UPDATE_BOOK %s", isbn)
	return nil
}

// DeleteBook removes the book and its reservation queue. Loans that refer to
// it are kept.
func (inv *Inventory) DeleteBook(isbn string) error {
	idx := inv.books.BinarySearch(isbn)
	if idx == -1 {
		return fmt.Errorf("delete book %s: %w", isbn, ErrBookNotFound)
	}
	inv.books.RemoveAt(idx)
	delete(inv.reservations, isbn)
	inv.record("DELETE_BOOK %s", isbn)
	log.Debug().Str("isbn", isbn).Msg("book deleted")
	return nil
}

// ------------------ Users ------------------

// RegisterUser adds u at the head of the user list.
func (inv *Inventory) RegisterUser(u *User) error {
	if _, ok := inv.User(u.ID); ok {
		return fmt.Errorf("register user %s: %w", u.ID, ErrDuplicateUser)
	}
	inv.users.PushFront(u)
	inv.record("ADD_USER %s", u.ID)
	return nil
}

func (inv *Inventory) User(id string) (*User, bool) {
	return inv.users.FindFirst(func(u *User) bool { return u.ID == id })
}

// Users returns users most recently registered first.
func (inv *Inventory) Users() []*User { return inv.users.Values() }

// DeleteUser removes the user. Their loans and queued reservations stay.
func (inv *Inventory) DeleteUser(id string) error {
	if _, ok := inv.users.RemoveFirst(func(u *User) bool { return u.ID == id }); !ok {
		return fmt.Errorf("delete user %s: %w", id, ErrUserNotFound)
	}
	inv.record("DELETE_USER %s", id)
	return nil
}

// ------------------ Reservations ------------------

func (inv *Inventory) queueFor(isbn string) *collections.Queue[string] {
	q, ok := inv.reservations[isbn]
	if !ok {
		q = collections.NewQueue[string]()
		inv.reservations[isbn] = q
	}
	return q
}

// Reserve queues userID for the book whatever its current stock.
func (inv *Inventory) Reserve(isbn, userID string) error {
	b, ok := inv.Book(isbn)
	if !ok {
		return fmt.Errorf("reserve %s: %w", isbn, ErrBookNotFound)
	}
	if _, ok := inv.User(userID); !ok {
		return fmt.Errorf("reserve %s: %w", isbn, ErrUserNotFound)
	}
	inv.queueFor(isbn).Enqueue(userID)
	b.HasReservations = true
	inv.record("RESERVE %s by %s", isbn, userID)
	log.Debug().Str("isbn", isbn).Str("user", userID).Msg("reservation queued")
	return nil
}

// CancelReservation removes the first queued entry of userID for the book.
func (inv *Inventory) CancelReservation(isbn, userID string) error {
	b, ok := inv.Book(isbn)
	if !ok {
		return fmt.Errorf("cancel reservation %s: %w", isbn, ErrBookNotFound)
	}
	q, ok := inv.reservations[isbn]
	if !ok {
		return fmt.Errorf("cancel reservation %s for %s: %w", isbn, userID, ErrReservationNotFound)
	}
	if _, ok := q.RemoveFirst(func(id string) bool { return id == userID }); !ok {
		return fmt.Errorf("cancel reservation %s for %s: %w", isbn, userID, ErrReservationNotFound)
	}
	b.HasReservations = !q.IsEmpty()
	inv.record("CANCEL_RESERVATION %s by %s", isbn, userID)
	return nil
}

// Reservations returns the user ids queued for a book, front first.
func (inv *Inventory) Reservations(isbn string) []string {
	q, ok := inv.reservations[isbn]
	if !ok {
		return nil
	}
	return q.Values()
}

// ------------------ Loans ------------------

const loanIDPrefix = "L"

func formatLoanID(seq int) string { return fmt.Sprintf("%s%05d", loanIDPrefix, seq) }

// parseLoanID returns the sequence number encoded in a loan id.
func parseLoanID(id string) (int, bool) {
	digits, ok := strings.CutPrefix(id, loanIDPrefix)
	if !ok || digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// lend takes one copy of b and records a loan for userID.
func (inv *Inventory) lend(b *Book, userID string, days int) *Loan {
	b.AvailableCopies--
	today := inv.today()
	inv.loanSeq++
	loan := &Loan{
		ID:       formatLoanID(inv.loanSeq),
		seq:      inv.loanSeq,
		UserID:   userID,
		ISBN:     b.ISBN,
		LoanDate: today,
		DueDate:  today.AddDate(0, 0, days),
	}
	inv.loans.Append(loan)
	return loan
}

// Borrow lends a copy of the book to the user for the given number of days.
// When no copy is left the user is queued instead and the result status is
// BorrowQueued; that is not an error.
func (inv *Inventory) Borrow(isbn, userID string, days int) (BorrowResult, error) {
	b, ok := inv.Book(isbn)
	if !ok {
		return BorrowResult{}, fmt.Errorf("borrow %s: %w", isbn, ErrBookNotFound)
	}
	if _, ok := inv.User(userID); !ok {
		return BorrowResult{}, fmt.Errorf("borrow %s: %w", isbn, ErrUserNotFound)
	}

	if b.AvailableCopies <= 0 {
		if err := inv.Reserve(isbn, userID); err != nil {
			return BorrowResult{}, err
		}
		return BorrowResult{Status: BorrowQueued}, nil
	}

	if days <= 0 {
		days = inv.defaultDays
	}
	loan := inv.lend(b, userID, days)
	inv.record("LOAN %s", loan.ID)
	log.Info().Str("loan", loan.ID).Str("isbn", isbn).Str("user", userID).Msg("book lent")
	return BorrowResult{Status: BorrowLoaned, LoanID: loan.ID}, nil
}

// ReturnLoan closes a loan and gives the copy back to stock. If users are
// queued for the book, the head of the queue immediately gets a new loan.
func (inv *Inventory) ReturnLoan(loanID string) (ReturnResult, error) {
	loan, ok := inv.Loan(loanID)
	if !ok {
		return ReturnResult{}, fmt.Errorf("return %s: %w", loanID, ErrLoanNotFound)
	}
	if loan.Returned {
		return ReturnResult{}, fmt.Errorf("return %s: %w", loanID, ErrLoanAlreadyReturned)
	}
	loan.markReturned(inv.today())
	res := ReturnResult{Returned: loan}

	if b, ok := inv.Book(loan.ISBN); ok {
		b.AvailableCopies++
		q := inv.queueFor(b.ISBN)
		if !q.IsEmpty() {
			next, _ := q.Dequeue()
			if b.AvailableCopies > 0 {
				res.Promoted = inv.lend(b, next, promotedLoanDays)
				inv.record("AUTO_LOAN_FROM_QUEUE %s", res.Promoted.ID)
				log.Info().Str("loan", res.Promoted.ID).Str("isbn", b.ISBN).Str("user", next).
					Msg("reservation promoted to loan")
			}
		}
		b.HasReservations = !q.IsEmpty()
	}

	inv.record("RETURN %s", loanID)
	log.Info().Str("loan", loanID).Msg("loan returned")
	return res, nil
}

// Loan looks a loan up by id. Loans are appended in sequence order, so the
// list stays sorted by the numeric part of the id whatever its width.
func (inv *Inventory) Loan(id string) (*Loan, bool) {
	seq, ok := parseLoanID(id)
	if !ok {
		return nil, false
	}
	idx := inv.loans.BinarySearch(seq)
	if idx == -1 || inv.loans.Get(idx).ID != id {
		return nil, false
	}
	return inv.loans.Get(idx), true
}

// Loans returns every loan ever created, oldest first.
func (inv *Inventory) Loans() []*Loan { return inv.loans.Values() }

// ActiveLoans returns the loans that have not been returned, oldest first.
func (inv *Inventory) ActiveLoans() []*Loan {
	var active []*Loan
	for _, l := range inv.loans.Values() {
		if l.Active() {
			active = append(active, l)
		}
	}
	return active
}

// ------------------ History ------------------

// LastOperation returns the most recent history tag.
func (inv *Inventory) LastOperation() (string, bool) {
	op, err := inv.history.Peek()
	if err != nil {
		return "", false
	}
	return op, true
}
