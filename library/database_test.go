package library

import (
	"path/filepath"
	"testing"
	"time"
)

func tempDB(t *testing.T) *Database {
	t.Helper()
	dir := t.TempDir()
	db, err := NewDatabase(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("new db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestEmptyDatabaseLoadsEmptySnapshot(t *testing.T) {
	db := tempDB(t)
	snap, err := db.LoadInventory()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(snap.Books) != 0 || len(snap.Users) != 0 || len(snap.Loans) != 0 || snap.LoanSeq != 0 {
		t.Fatalf("expected empty snapshot, got %+v", snap)
	}
}

func TestReopenKeepsSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "lib.db")
	db, err := NewDatabase(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	db.Close()

	db, err = NewDatabase(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer db.Close()
	if _, err := db.LoadInventory(); err != nil {
		t.Fatalf("load after reopen: %v", err)
	}
}

func TestInventoryRoundTrip(t *testing.T) {
	db := tempDB(t)
	inv := NewInventory(WithClock(func() time.Time { return fixedToday }))

	if err := inv.AddBook(&Book{ISBN: "978-2", Title: "Algoritmos", Author: "Fritelli", PublicationYear: 2020, TotalCopies: 1, AvailableCopies: 1}); err != nil {
		t.Fatalf("add book: %v", err)
	}
	if err := inv.AddBook(&Book{ISBN: "978-1", Title: "Estructuras", Author: "Ayala", PublicationYear: 2019, TotalCopies: 2, AvailableCopies: 2}); err != nil {
		t.Fatalf("add book: %v", err)
	}
	for _, u := range []*User{{ID: "U1", FullName: "Ana"}, {ID: "U2", FullName: "Luis"}, {ID: "U3", FullName: "Eva"}} {
		if err := inv.RegisterUser(u); err != nil {
			t.Fatalf("register: %v", err)
		}
	}

	first, _ := inv.Borrow("978-2", "U1", 10)
	inv.Borrow("978-2", "U2", 10)
	inv.Borrow("978-2", "U3", 10)
	other, _ := inv.Borrow("978-1", "U3", 3)
	if _, err := inv.ReturnLoan(other.LoanID); err != nil {
		t.Fatalf("return: %v", err)
	}

	want := inv.Snapshot()
	if err := db.SaveInventory(want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := db.LoadInventory()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(got.Books) != 2 || got.Books[0].ISBN != "978-1" || got.Books[1].AvailableCopies != 0 || !got.Books[1].HasReservations {
		t.Fatalf("books not restored: %+v", got.Books)
	}
	if len(got.Users) != 3 || got.Users[0].ID != "U3" || got.Users[2].ID != "U1" {
		t.Fatalf("user order not restored: %+v", got.Users)
	}
	if len(got.Loans) != 2 {
		t.Fatalf("want 2 loans, got %d", len(got.Loans))
	}
	if !got.Loans[0].LoanDate.Equal(want.Loans[0].LoanDate) || !got.Loans[0].DueDate.Equal(want.Loans[0].DueDate) {
		t.Fatalf("loan dates changed: %+v vs %+v", got.Loans[0], want.Loans[0])
	}
	if got.Loans[0].ReturnDate != nil {
		t.Fatalf("active loan got a return date")
	}
	if !got.Loans[1].Returned || got.Loans[1].ReturnDate == nil || !got.Loans[1].ReturnDate.Equal(*want.Loans[1].ReturnDate) {
		t.Fatalf("returned loan not restored: %+v", got.Loans[1])
	}
	q := got.Reservations["978-2"]
	if len(q) != 2 || q[0] != "U2" || q[1] != "U3" {
		t.Fatalf("queue order incorrect: %v", q)
	}
	if len(got.History) != len(want.History) || got.History[len(got.History)-1] != "RETURN L00002" {
		t.Fatalf("history not restored: %v", got.History)
	}
	if got.LoanSeq != 2 {
		t.Fatalf("want loan seq 2, got %d", got.LoanSeq)
	}

	// Restored inventory promotes the queue head on return.
	restored := RestoreInventory(got, WithClock(func() time.Time { return fixedToday }))
	ret, err := restored.ReturnLoan(first.LoanID)
	if err != nil {
		t.Fatalf("return after restore: %v", err)
	}
	if ret.Promoted == nil || ret.Promoted.UserID != "U2" || ret.Promoted.ID != "L00003" {
		t.Fatalf("unexpected promotion: %+v", ret.Promoted)
	}
}

func TestLoansLoadInSequenceOrder(t *testing.T) {
	db := tempDB(t)
	inv := NewInventory(WithClock(func() time.Time { return fixedToday }))
	if err := inv.AddBook(&Book{ISBN: "978-1", TotalCopies: 5, AvailableCopies: 5}); err != nil {
		t.Fatalf("add book: %v", err)
	}
	if err := inv.RegisterUser(&User{ID: "U1"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	inv.loanSeq = 99998
	for i := 0; i < 4; i++ {
		if _, err := inv.Borrow("978-1", "U1", 7); err != nil {
			t.Fatalf("borrow: %v", err)
		}
	}
	if err := db.SaveInventory(inv.Snapshot()); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := db.LoadInventory()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := []string{"L99999", "L100000", "L100001", "L100002"}
	if len(got.Loans) != len(want) {
		t.Fatalf("want %d loans, got %d", len(want), len(got.Loans))
	}
	for i, id := range want {
		if got.Loans[i].ID != id {
			t.Fatalf("loan %d: want %s, got %s", i, id, got.Loans[i].ID)
		}
	}

	restored := RestoreInventory(got, WithClock(func() time.Time { return fixedToday }))
	for _, id := range want {
		if _, ok := restored.Loan(id); !ok {
			t.Fatalf("loan %s not found after restore", id)
		}
	}
	res, err := restored.Borrow("978-1", "U1", 7)
	if err != nil {
		t.Fatalf("borrow after restore: %v", err)
	}
	if res.LoanID != "L100003" {
		t.Fatalf("want L100003, got %s", res.LoanID)
	}
}

func TestSaveReplacesPreviousSnapshot(t *testing.T) {
	db := tempDB(t)
	inv := NewInventory()
	inv.AddBook(&Book{ISBN: "1", TotalCopies: 1, AvailableCopies: 1})
	inv.AddBook(&Book{ISBN: "2", TotalCopies: 1, AvailableCopies: 1})
	if err := db.SaveInventory(inv.Snapshot()); err != nil {
		t.Fatalf("save: %v", err)
	}

	inv.DeleteBook("1")
	if err := db.SaveInventory(inv.Snapshot()); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := db.LoadInventory()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Books) != 1 || got.Books[0].ISBN != "2" {
		t.Fatalf("expected only book 2, got %+v", got.Books)
	}
}
