package lookup

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lkarjala/curator/internal/errors"
	"github.com/lkarjala/curator/internal/providers/openlibrary"
)

type stubStrategy struct {
	supportSet
	entity EntityType
	resp   *Response
	err    error

	gotID    IdentifierType
	gotValue string
}

func (s *stubStrategy) Entity() EntityType { return s.entity }

func (s *stubStrategy) Lookup(ctx context.Context, id IdentifierType, value string) (*Response, error) {
	s.gotID = id
	s.gotValue = value
	return s.resp, s.err
}

func TestDispatcherRoutesToStrategy(t *testing.T) {
	stub := &stubStrategy{
		supportSet: supportSet{IdentifierISBN},
		entity:     EntityBook,
		resp:       &Response{Entity: EntityBook, Book: &BookResult{Title: "Dune"}},
	}
	d := NewDispatcher(stub)

	resp, err := d.Lookup(context.Background(), "book", "isbn", "9780441172719")
	require.NoError(t, err)
	assert.Equal(t, "Dune", resp.Book.Title)
	assert.Equal(t, IdentifierISBN, stub.gotID)
	assert.Equal(t, "9780441172719", stub.gotValue)
}

func TestDispatcherCaseInsensitiveAndPluralEntity(t *testing.T) {
	stub := &stubStrategy{
		supportSet: supportSet{IdentifierISBN},
		entity:     EntityBook,
		resp:       &Response{Entity: EntityBook, Book: &BookResult{}},
	}
	d := NewDispatcher(stub)

	for _, entity := range []string{"Book", "BOOK", "Books", "books"} {
		_, err := d.Lookup(context.Background(), entity, "ISBN", "9780441172719")
		assert.NoError(t, err, "entity %q", entity)
	}
}

func TestDispatcherRejectsUnsupportedIdentifierType(t *testing.T) {
	stub := &stubStrategy{
		supportSet: supportSet{IdentifierISBN, IdentifierLCCN, IdentifierOCLC, IdentifierOLID},
		entity:     EntityBook,
	}
	d := NewDispatcher(stub)

	_, err := d.Lookup(context.Background(), "Books", "upc", "036000291452")
	require.Error(t, err)

	var vErr *errors.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "identifierType", vErr.Field)
	assert.Equal(t, []string{"isbn", "lccn", "oclc", "olid"}, vErr.ValidValues)
}

func TestDispatcherRejectsUnknownEntity(t *testing.T) {
	d := NewDispatcher()

	_, err := d.Lookup(context.Background(), "comic", "upc", "036000291452")
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestDispatcherRejectsUnknownIdentifierType(t *testing.T) {
	stub := &stubStrategy{supportSet: supportSet{IdentifierUPC}, entity: EntityMovie}
	d := NewDispatcher(stub)

	_, err := d.Lookup(context.Background(), "movie", "asin", "B000123")
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestDispatcherRejectsEmptyValue(t *testing.T) {
	stub := &stubStrategy{supportSet: supportSet{IdentifierUPC}, entity: EntityMovie}
	d := NewDispatcher(stub)

	_, err := d.Lookup(context.Background(), "movie", "upc", "   ")
	require.Error(t, err)

	var vErr *errors.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "identifierValue", vErr.Field)
}

func TestDispatcherUnregisteredEntityListsRegistered(t *testing.T) {
	stub := &stubStrategy{supportSet: supportSet{IdentifierISBN}, entity: EntityBook}
	d := NewDispatcher(stub)

	_, err := d.Lookup(context.Background(), "movie", "upc", "036000291452")
	require.Error(t, err)

	var vErr *errors.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"book"}, vErr.ValidValues)
}

type fakeBookFetcher struct {
	gotKind  string
	gotValue string
	book     *openlibrary.Book
	err      error
}

func (f *fakeBookFetcher) FetchByBibkey(ctx context.Context, kind, value string) (*openlibrary.Book, error) {
	f.gotKind = kind
	f.gotValue = value
	return f.book, f.err
}

func TestBookStrategyMapsEdition(t *testing.T) {
	fetcher := &fakeBookFetcher{
		book: &openlibrary.Book{
			Title:         "Fantastic Mr Fox",
			Authors:       []openlibrary.Name{{Name: "Roald Dahl"}},
			Publishers:    []openlibrary.Name{{Name: "Puffin"}},
			PublishDate:   "October 1, 1988",
			NumberOfPages: 96,
			Subjects:      []openlibrary.Name{{Name: "Foxes"}, {Name: "Fiction"}},
			Cover:         openlibrary.Cover{Medium: "https://covers.openlibrary.org/b/id/8739161-M.jpg"},
		},
	}
	strategy := NewBookStrategy(fetcher)

	resp, err := strategy.Lookup(context.Background(), IdentifierISBN, "9780140328721")
	require.NoError(t, err)
	require.NotNil(t, resp.Book)

	assert.Equal(t, EntityBook, resp.Entity)
	assert.Equal(t, "Fantastic Mr Fox", resp.Book.Title)
	assert.Equal(t, []string{"Roald Dahl"}, resp.Book.Authors)
	assert.Equal(t, "Puffin", resp.Book.Publisher)
	assert.Equal(t, 96, resp.Book.Pages)
	assert.Equal(t, []string{"Foxes", "Fiction"}, resp.Book.Genres)
	assert.Equal(t, "https://covers.openlibrary.org/b/id/8739161-M.jpg", resp.Book.CoverURL)

	assert.Equal(t, openlibrary.KeyISBN, fetcher.gotKind)
	assert.Equal(t, "9780140328721", fetcher.gotValue)
}

func TestBookStrategyBibkeyKinds(t *testing.T) {
	tests := []struct {
		id   IdentifierType
		kind string
	}{
		{IdentifierISBN, openlibrary.KeyISBN},
		{IdentifierLCCN, openlibrary.KeyLCCN},
		{IdentifierOCLC, openlibrary.KeyOCLC},
		{IdentifierOLID, openlibrary.KeyOLID},
	}
	for _, tt := range tests {
		fetcher := &fakeBookFetcher{book: &openlibrary.Book{Title: "x"}}
		strategy := NewBookStrategy(fetcher)

		_, err := strategy.Lookup(context.Background(), tt.id, "value")
		require.NoError(t, err)
		assert.Equal(t, tt.kind, fetcher.gotKind)
	}
}

func TestBookStrategyPropagatesNotFound(t *testing.T) {
	fetcher := &fakeBookFetcher{err: errors.NewNotFoundError("openlibrary", "ISBN:0000000000000")}
	strategy := NewBookStrategy(fetcher)

	_, err := strategy.Lookup(context.Background(), IdentifierISBN, "0000000000000")
	assert.True(t, errors.IsNotFoundError(err))
}
