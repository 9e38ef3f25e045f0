package lookup

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lkarjala/curator/internal/errors"
	"github.com/lkarjala/curator/internal/providers/tmdb"
	"github.com/lkarjala/curator/internal/providers/upcitemdb"
)

type fakeBarcodeResolver struct {
	gotCode string
	product *upcitemdb.Product
	err     error
}

func (f *fakeBarcodeResolver) FetchByCode(ctx context.Context, code string) (*upcitemdb.Product, error) {
	f.gotCode = code
	return f.product, f.err
}

type fakeMovieSearcher struct {
	gotTitle  string
	gotYear   int
	movies    []tmdb.Movie
	searchErr error
	genreErr  error
	searched  int
}

func (f *fakeMovieSearcher) SearchMovies(ctx context.Context, title string, year int) ([]tmdb.Movie, error) {
	f.searched++
	f.gotTitle = title
	f.gotYear = year
	return f.movies, f.searchErr
}

func (f *fakeMovieSearcher) ResolveGenres(ctx context.Context, ids []int) ([]string, error) {
	if f.genreErr != nil {
		return nil, f.genreErr
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = fmt.Sprintf("genre-%d", id)
	}
	return out, nil
}

func (f *fakeMovieSearcher) ImageURL(path string) string {
	if path == "" {
		return ""
	}
	return "https://image.tmdb.org/t/p/w500" + path
}

func TestMovieStrategyChainsProviders(t *testing.T) {
	barcodes := &fakeBarcodeResolver{
		product: &upcitemdb.Product{Title: "The Matrix (Blu-ray) (1999)", Category: "Media > Movies"},
	}
	movies := &fakeMovieSearcher{
		movies: []tmdb.Movie{{
			ID:          603,
			Title:       "The Matrix",
			ReleaseDate: "1999-03-31",
			GenreIDs:    []int{28, 878},
			VoteAverage: 8.2,
			PosterPath:  "/matrix.jpg",
			Overview:    "A hacker learns the truth.",
		}},
	}
	strategy := NewMovieStrategy(barcodes, movies)

	resp, err := strategy.Lookup(context.Background(), IdentifierUPC, "085391189626")
	require.NoError(t, err)
	require.NotNil(t, resp.Movie)

	assert.Equal(t, "085391189626", barcodes.gotCode)
	assert.Equal(t, "The Matrix", movies.gotTitle)
	assert.Equal(t, 1999, movies.gotYear)

	assert.Equal(t, EntityMovie, resp.Entity)
	assert.Equal(t, "The Matrix", resp.Movie.Title)
	assert.Equal(t, 1999, resp.Movie.Year)
	assert.Equal(t, "1999-03-31", resp.Movie.ReleaseDate)
	assert.Equal(t, []string{"genre-28", "genre-878"}, resp.Movie.Genres)
	assert.InDelta(t, 8.2, resp.Movie.Rating, 0.001)
	assert.Equal(t, "Blu-ray", resp.Movie.Format)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/matrix.jpg", resp.Movie.CoverURL)
}

func TestMovieStrategyBarcodeFailureSkipsSearch(t *testing.T) {
	barcodes := &fakeBarcodeResolver{err: errors.NewNotFoundError("upcitemdb", "000000000000")}
	movies := &fakeMovieSearcher{}
	strategy := NewMovieStrategy(barcodes, movies)

	_, err := strategy.Lookup(context.Background(), IdentifierUPC, "000000000000")
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
	assert.Zero(t, movies.searched, "search must not run when barcode resolution fails")
}

func TestMovieStrategyNoSearchResults(t *testing.T) {
	barcodes := &fakeBarcodeResolver{product: &upcitemdb.Product{Title: "Obscure Film (DVD)"}}
	movies := &fakeMovieSearcher{}
	strategy := NewMovieStrategy(barcodes, movies)

	_, err := strategy.Lookup(context.Background(), IdentifierUPC, "036000291452")
	assert.True(t, errors.IsNotFoundError(err))
}

func TestMovieStrategyGenreFailureIsNotFatal(t *testing.T) {
	barcodes := &fakeBarcodeResolver{product: &upcitemdb.Product{Title: "Heat (1995)"}}
	movies := &fakeMovieSearcher{
		movies:   []tmdb.Movie{{Title: "Heat", ReleaseDate: "1995-12-15", GenreIDs: []int{80}}},
		genreErr: fmt.Errorf("genre endpoint down"),
	}
	strategy := NewMovieStrategy(barcodes, movies)

	resp, err := strategy.Lookup(context.Background(), IdentifierUPC, "036000291452")
	require.NoError(t, err)
	assert.Equal(t, "Heat", resp.Movie.Title)
	assert.Empty(t, resp.Movie.Genres)
}

func TestReleaseYear(t *testing.T) {
	assert.Equal(t, 1999, releaseYear("1999-03-31"))
	assert.Equal(t, 0, releaseYear(""))
	assert.Equal(t, 0, releaseYear("n/a"))
}
