package library

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"library-catalog/collections"
)

// foldName is the index key of a catalog entry.
func foldName(name string) string { return strings.ToLower(name) }

// nameIndex keeps one kind of catalog entry in an OrderedIndex keyed on the
// folded name and writes the whole collection to path after every change.
// An empty path keeps the index in memory only.
type nameIndex[T any] struct {
	kind   string
	path   string
	tree   *collections.OrderedIndex[string, *T]
	idOf   func(*T) string
	nameOf func(*T) string
}

func newNameIndex[T any](kind, path string, idOf, nameOf func(*T) string) *nameIndex[T] {
	return &nameIndex[T]{
		kind:   kind,
		path:   path,
		tree:   collections.NewOrderedIndex[string, *T](),
		idOf:   idOf,
		nameOf: nameOf,
	}
}

func (x *nameIndex[T]) search(name string) (*T, bool) {
	return x.tree.Find(foldName(name))
}

func (x *nameIndex[T]) list() []*T { return x.tree.InOrder() }

// bulkLoad inserts entries without writing them back. Entries whose name is
// already taken are skipped.
func (x *nameIndex[T]) bulkLoad(entries []*T) {
	for _, e := range entries {
		if _, ok := x.search(x.nameOf(e)); ok {
			log.Warn().Str("kind", x.kind).Str("name", x.nameOf(e)).Msg("duplicate name on load, skipped")
			continue
		}
		x.tree.Insert(foldName(x.nameOf(e)), e)
	}
}

func (x *nameIndex[T]) insert(e *T) error {
	if _, ok := x.search(x.nameOf(e)); ok {
		return fmt.Errorf("insert %s %q: %w", x.kind, x.nameOf(e), ErrDuplicateName)
	}
	x.tree.Insert(foldName(x.nameOf(e)), e)
	log.Debug().Str("kind", x.kind).Str("name", x.nameOf(e)).Msg("catalog entry inserted")
	return x.persist()
}

// update finds the entry named originalName, checks that newName (if any) is
// free, then runs apply on the entry. A change of folded name rebuilds the
// tree, since keys are fixed at insertion time.
func (x *nameIndex[T]) update(originalName string, newName *string, apply func(*T)) error {
	e, ok := x.search(originalName)
	if !ok {
		return fmt.Errorf("update %s %q: %w", x.kind, originalName, ErrNameNotFound)
	}

	renamed := newName != nil && foldName(*newName) != foldName(originalName)
	if renamed {
		if other, taken := x.search(*newName); taken && x.idOf(other) != x.idOf(e) {
			return fmt.Errorf("rename %s %q to %q: %w", x.kind, originalName, *newName, ErrDuplicateName)
		}
	}

	apply(e)

	if renamed {
		survivors := make([]*T, 0, x.tree.Len())
		for _, other := range x.tree.InOrder() {
			if x.idOf(other) != x.idOf(e) {
				survivors = append(survivors, other)
			}
		}
		x.tree = collections.NewOrderedIndex[string, *T]()
		for _, other := range append(survivors, e) {
			x.tree.Insert(foldName(x.nameOf(other)), other)
		}
		log.Debug().Str("kind", x.kind).Str("from", originalName).Str("to", *newName).Msg("catalog index rebuilt")
	}
	return x.persist()
}

func (x *nameIndex[T]) persist() error {
	if x.path == "" {
		return nil
	}
	if err := SaveJSON(x.list(), x.path); err != nil {
		log.Error().Err(err).Str("kind", x.kind).Str("path", x.path).Msg("catalog write-through failed")
		return fmt.Errorf("persist %s catalog: %w", x.kind, err)
	}
	return nil
}

// Catalog indexes editorials and genres by case-insensitive name.
//
// A Catalog is not safe for concurrent use.
type Catalog struct {
	editorials *nameIndex[Editorial]
	genres     *nameIndex[Genre]
}

// NewCatalog returns an empty catalog that writes editorials and genres to
// the given JSON files. Empty paths disable persistence.
func NewCatalog(editorialsPath, genresPath string) *Catalog {
	return &Catalog{
		editorials: newNameIndex("editorial", editorialsPath,
			func(e *Editorial) string { return e.ID },
			func(e *Editorial) string { return e.Name }),
		genres: newNameIndex("genre", genresPath,
			func(g *Genre) string { return g.ID },
			func(g *Genre) string { return g.Name }),
	}
}

// LoadCatalog fills a new catalog from its JSON files.
func LoadCatalog(editorialsPath, genresPath string) *Catalog {
	c := NewCatalog(editorialsPath, genresPath)
	if editorialsPath != "" {
		c.LoadEditorials(toPointers(LoadJSON[Editorial](editorialsPath)))
	}
	if genresPath != "" {
		c.LoadGenres(toPointers(LoadJSON[Genre](genresPath)))
	}
	return c
}

func toPointers[T any](items []T) []*T {
	out := make([]*T, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out
}

// NewEditorial builds an editorial with a fresh id.
func NewEditorial(name, country string, foundedYear int) *Editorial {
	return &Editorial{ID: uuid.NewString(), Name: name, Country: country, FoundedYear: foundedYear}
}

// NewGenre builds a genre with a fresh id.
func NewGenre(name, description string) *Genre {
	return &Genre{ID: uuid.NewString(), Name: name, Description: description}
}

// LoadEditorials bulk-inserts editorials without writing the file.
func (c *Catalog) LoadEditorials(es []*Editorial) { c.editorials.bulkLoad(es) }

// LoadGenres bulk-inserts genres without writing the file.
func (c *Catalog) LoadGenres(gs []*Genre) { c.genres.bulkLoad(gs) }

// InsertEditorial adds e unless its name is taken, then saves all editorials.
func (c *Catalog) InsertEditorial(e *Editorial) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return c.editorials.insert(e)
}

// InsertGenre adds g unless its name is taken, then saves all genres.
func (c *Catalog) InsertGenre(g *Genre) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return c.genres.insert(g)
}

func (c *Catalog) SearchEditorial(name string) (*Editorial, bool) { return c.editorials.search(name) }
func (c *Catalog) SearchGenre(name string) (*Genre, bool)         { return c.genres.search(name) }

// ListEditorials returns editorials in ascending name order.
func (c *Catalog) ListEditorials() []*Editorial { return c.editorials.list() }

// ListGenres returns genres in ascending name order.
func (c *Catalog) ListGenres() []*Genre { return c.genres.list() }

// UpdateEditorial changes the editorial currently named originalName.
// Nothing is modified if the new name belongs to another editorial.
func (c *Catalog) UpdateEditorial(originalName string, changes EditorialChanges) error {
	return c.editorials.update(originalName, changes.Name, func(e *Editorial) {
		if changes.Name != nil {
			e.Name = *changes.Name
		}
		if changes.Country != nil {
			e.Country = *changes.Country
		}
		if changes.FoundedYear != nil {
			e.FoundedYear = *changes.FoundedYear
		}
	})
}

// UpdateGenre changes the genre currently named originalName.
// Nothing is modified if the new name belongs to another genre.
func (c *Catalog) UpdateGenre(originalName string, changes GenreChanges) error {
	return c.genres.update(originalName, changes.Name, func(g *Genre) {
		if changes.Name != nil {
			g.Name = *changes.Name
		}
		if changes.Description != nil {
			g.Description = *changes.Description
		}
	})
}
