package library

import "errors"

var (
	// ErrBookNotFound is returned when no book has the given ISBN.
	ErrBookNotFound = errors.New("book not found")

	// ErrUserNotFound is returned when no user has the given id.
	ErrUserNotFound = errors.New("user not found")

	// ErrLoanNotFound is returned when no loan has the given id.
	ErrLoanNotFound = errors.New("loan not found")

	// ErrLoanAlreadyReturned is returned when a loan is returned twice.
	ErrLoanAlreadyReturned = errors.New("loan already returned")

	// ErrReservationNotFound is returned when a user is not queued for a book.
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrDuplicateISBN is returned when a book with the same ISBN exists.
	ErrDuplicateISBN = errors.New("duplicate isbn")

	// ErrDuplicateUser is returned when a user with the same id exists.
	ErrDuplicateUser = errors.New("duplicate user id")

	// ErrInvalidStock is returned when available copies fall outside [0, total].
	ErrInvalidStock = errors.New("available copies must be between 0 and total copies")

	// ErrNameNotFound is returned when no catalog entry has the given name.
	ErrNameNotFound = errors.New("catalog entry not found")

	// ErrDuplicateName is returned when a catalog name is already taken,
	// ignoring case.
	ErrDuplicateName = errors.New("catalog name already exists")
)
