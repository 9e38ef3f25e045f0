package lookup

import (
	"context"

	"github.com/lkarjala/curator/internal/providers/openlibrary"
)

// bookFetcher is the slice of the OpenLibrary client the book strategy needs.
type bookFetcher interface {
	FetchByBibkey(ctx context.Context, kind, value string) (*openlibrary.Book, error)
}

// BookStrategy resolves book identifiers through OpenLibrary.
type BookStrategy struct {
	supportSet
	books bookFetcher
}

// NewBookStrategy builds a book strategy on top of an OpenLibrary client.
func NewBookStrategy(books bookFetcher) *BookStrategy {
	return &BookStrategy{
		supportSet: supportSet{IdentifierISBN, IdentifierLCCN, IdentifierOCLC, IdentifierOLID},
		books:      books,
	}
}

// Entity returns the entity type this strategy serves.
func (s *BookStrategy) Entity() EntityType {
	return EntityBook
}

var bibkeyKinds = map[IdentifierType]string{
	IdentifierISBN: openlibrary.KeyISBN,
	IdentifierLCCN: openlibrary.KeyLCCN,
	IdentifierOCLC: openlibrary.KeyOCLC,
	IdentifierOLID: openlibrary.KeyOLID,
}

// Lookup fetches the edition for the identifier and maps it to the canonical
// book record.
func (s *BookStrategy) Lookup(ctx context.Context, id IdentifierType, value string) (*Response, error) {
	book, err := s.books.FetchByBibkey(ctx, bibkeyKinds[id], value)
	if err != nil {
		return nil, err
	}

	result := &BookResult{
		Title:       book.Title,
		Subtitle:    book.Subtitle,
		Authors:     names(book.Authors),
		ReleaseDate: book.PublishDate,
		Pages:       book.NumberOfPages,
		Genres:      names(book.Subjects),
		CoverURL:    bestCover(book.Cover),
	}
	if len(book.Publishers) > 0 {
		result.Publisher = book.Publishers[0].Name
	}

	return &Response{Entity: EntityBook, Book: result}, nil
}

func names(ns []openlibrary.Name) []string {
	if len(ns) == 0 {
		return nil
	}
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = n.Name
	}
	return out
}

func bestCover(c openlibrary.Cover) string {
	switch {
	case c.Large != "":
		return c.Large
	case c.Medium != "":
		return c.Medium
	default:
		return c.Small
	}
}
