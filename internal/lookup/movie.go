package lookup

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/lkarjala/curator/internal/errors"
	"github.com/lkarjala/curator/internal/providers/tmdb"
	"github.com/lkarjala/curator/internal/providers/upcitemdb"
)

// barcodeResolver is the slice of the UPCitemdb client the chained
// strategies need.
type barcodeResolver interface {
	FetchByCode(ctx context.Context, code string) (*upcitemdb.Product, error)
}

// movieSearcher is the slice of the TMDB client the movie strategy needs.
type movieSearcher interface {
	SearchMovies(ctx context.Context, title string, year int) ([]tmdb.Movie, error)
	ResolveGenres(ctx context.Context, ids []int) ([]string, error)
	ImageURL(path string) string
}

// MovieStrategy resolves movie barcodes through the UPCitemdb → TMDB chain:
// the barcode yields a retail product title, which after normalization is
// searched on TMDB.
type MovieStrategy struct {
	supportSet
	barcodes barcodeResolver
	movies   movieSearcher
}

// NewMovieStrategy builds a movie strategy on top of the barcode and movie
// metadata clients.
func NewMovieStrategy(barcodes barcodeResolver, movies movieSearcher) *MovieStrategy {
	return &MovieStrategy{
		supportSet: supportSet{IdentifierUPC, IdentifierEAN},
		barcodes:   barcodes,
		movies:     movies,
	}
}

// Entity returns the entity type this strategy serves.
func (s *MovieStrategy) Entity() EntityType {
	return EntityMovie
}

// Lookup resolves the barcode to a product, normalizes its retail title and
// searches TMDB for the film. The barcode resolution is a hard prerequisite:
// when it fails the TMDB call is not attempted.
func (s *MovieStrategy) Lookup(ctx context.Context, id IdentifierType, value string) (*Response, error) {
	product, err := s.barcodes.FetchByCode(ctx, value)
	if err != nil {
		return nil, err
	}

	title, year := NormalizeTitle(product.Title)
	slog.Debug("resolved barcode to product", "barcode", value, "product", product.Title, "title", title, "year", year)

	movies, err := s.movies.SearchMovies(ctx, title, year)
	if err != nil {
		return nil, err
	}
	if len(movies) == 0 {
		return nil, errors.NewNotFoundError("tmdb", title)
	}
	movie := movies[0]

	genres, err := s.movies.ResolveGenres(ctx, movie.GenreIDs)
	if err != nil {
		// Genre names are decoration, not a reason to fail the lookup.
		slog.Warn("genre resolution failed", "error", err)
		genres = nil
	}

	result := &MovieResult{
		Title:       movie.Title,
		Year:        releaseYear(movie.ReleaseDate),
		ReleaseDate: movie.ReleaseDate,
		Genres:      genres,
		Rating:      movie.VoteAverage,
		Format:      InferFormat(product.Title + " " + product.Category),
		Overview:    movie.Overview,
		CoverURL:    s.movies.ImageURL(movie.PosterPath),
	}

	return &Response{Entity: EntityMovie, Movie: result}, nil
}

func releaseYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}
