package library

import "github.com/rs/zerolog/log"

// InventorySnapshot is a detached copy of the whole inventory state, used to
// move it in and out of durable storage.
type InventorySnapshot struct {
	Books        []Book
	Users        []User // most recently registered first
	Loans        []Loan
	Reservations map[string][]string // isbn -> queued user ids, front first
	History      []string            // oldest first
	LoanSeq      int
}

// Snapshot copies the current state. Mutating the snapshot does not affect
// the inventory.
func (inv *Inventory) Snapshot() InventorySnapshot {
	snap := InventorySnapshot{
		Reservations: make(map[string][]string, len(inv.reservations)),
		History:      inv.history.Values(),
		LoanSeq:      inv.loanSeq,
	}
	for _, b := range inv.books.Values() {
		snap.Books = append(snap.Books, *b)
	}
	for _, u := range inv.users.Values() {
		snap.Users = append(snap.Users, *u)
	}
	for _, l := range inv.loans.Values() {
		c := *l
		if l.ReturnDate != nil {
			d := *l.ReturnDate
			c.ReturnDate = &d
		}
		snap.Loans = append(snap.Loans, c)
	}
	for isbn, q := range inv.reservations {
		if !q.IsEmpty() {
			snap.Reservations[isbn] = q.Values()
		}
	}
	return snap
}

// RestoreInventory rebuilds an inventory from a snapshot. Nothing is pushed
// onto the history besides the restored entries.
func RestoreInventory(snap InventorySnapshot, opts ...InventoryOption) *Inventory {
	inv := NewInventory(opts...)
	for i := range snap.Books {
		b := snap.Books[i]
		inv.books.Append(&b)
	}
	inv.books.SortInPlace()

	// PushFront reverses, so walk from the oldest user.
	for i := len(snap.Users) - 1; i >= 0; i-- {
		u := snap.Users[i]
		inv.users.PushFront(&u)
	}

	for i := range snap.Loans {
		l := snap.Loans[i]
		if seq, ok := parseLoanID(l.ID); ok {
			l.seq = seq
		} else {
			log.Warn().Str("loan", l.ID).Msg("loan id has no sequence number, lookups by id will miss it")
		}
		inv.loans.Append(&l)
		inv.loanSeq = max(inv.loanSeq, l.seq)
	}
	inv.loans.SortInPlace()

	for isbn, ids := range snap.Reservations {
		q := inv.queueFor(isbn)
		for _, id := range ids {
			q.Enqueue(id)
		}
	}
	for _, op := range snap.History {
		inv.history.Push(op)
	}

	inv.loanSeq = max(inv.loanSeq, snap.LoanSeq, len(snap.Loans))
	return inv
}
