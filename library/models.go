package library

import "time"

// Book is a catalogued title and its stock. ISBN is the identity key and
// never changes after registration.
type Book struct {
	ISBN            string `json:"isbn"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	PublicationYear int    `json:"publication_year"`
	TotalCopies     int    `json:"total_copies"`
	AvailableCopies int    `json:"available_copies"`
	HasReservations bool   `json:"has_reservations"`
}

// User is a registered library patron.
type User struct {
	ID       string `json:"user_id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// Loan records one copy of a book lent to a user. Once Returned is set the
// loan is never modified again.
type Loan struct {
	ID         string     `json:"loan_id"`
	UserID     string     `json:"user_id"`
	ISBN       string     `json:"isbn"`
	LoanDate   time.Time  `json:"loan_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date"`
	Returned   bool       `json:"returned"`

	seq int // numeric part of ID, the ordering key of the loan list
}

// Active reports whether the copy is still out.
func (l *Loan) Active() bool { return !l.Returned }

func (l *Loan) markReturned(on time.Time) {
	l.Returned = true
	l.ReturnDate = &on
}

// Editorial is a publishing house, unique by case-insensitive name.
type Editorial struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Country     string `json:"country"`
	FoundedYear int    `json:"founded_year"`
}

// Genre is a literary genre, unique by case-insensitive name.
type Genre struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// BookChanges lists the book fields to overwrite; nil fields are kept.
type BookChanges struct {
	Title           *string
	Author          *string
	PublicationYear *int
	TotalCopies     *int
	AvailableCopies *int
}

// EditorialChanges lists the editorial fields to overwrite; nil fields are kept.
type EditorialChanges struct {
	Name        *string
	Country     *string
	FoundedYear *int
}

// GenreChanges lists the genre fields to overwrite; nil fields are kept.
type GenreChanges struct {
	Name        *string
	Description *string
}
