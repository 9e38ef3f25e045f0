package lookup

import (
	"context"
	"log/slog"
	"time"

	"github.com/lkarjala/curator/internal/barcode"
	"github.com/lkarjala/curator/internal/errors"
	"github.com/lkarjala/curator/internal/providers/giantbomb"
	"github.com/lkarjala/curator/internal/providers/igdb"
)

// gameFinder is the slice of the IGDB client the game strategy needs.
type gameFinder interface {
	FindByBarcode(ctx context.Context, code string) ([]igdb.Game, error)
}

// gameSearcher is the slice of the GiantBomb client used as fallback.
type gameSearcher interface {
	SearchByName(ctx context.Context, name string) ([]giantbomb.Game, error)
}

// GameStrategy resolves game barcodes on IGDB first, falling back to the
// UPCitemdb → GiantBomb title chain when IGDB has no external-store entry
// for the code.
type GameStrategy struct {
	supportSet
	games    gameFinder
	barcodes barcodeResolver
	fallback gameSearcher
}

// NewGameStrategy builds a game strategy. The barcode resolver and fallback
// searcher may be nil, which disables the fallback chain.
func NewGameStrategy(games gameFinder, barcodes barcodeResolver, fallback gameSearcher) *GameStrategy {
	return &GameStrategy{
		supportSet: supportSet{IdentifierUPC, IdentifierEAN},
		games:      games,
		barcodes:   barcodes,
		fallback:   fallback,
	}
}

// Entity returns the entity type this strategy serves.
func (s *GameStrategy) Entity() EntityType {
	return EntityGame
}

// Lookup tries IGDB's external-store index for the barcode and falls back to
// resolving the product title and searching GiantBomb. An IGDB failure does
// not abort the fallback chain.
func (s *GameStrategy) Lookup(ctx context.Context, id IdentifierType, value string) (*Response, error) {
	code, err := barcode.Normalize(value)
	if err != nil {
		return nil, err
	}

	games, err := s.games.FindByBarcode(ctx, code)
	if err == nil && len(games) > 0 {
		return gameResponse(games[0]), nil
	}
	if err != nil && !errors.IsNotFoundError(err) {
		slog.Warn("barcode search failed, trying fallback", "provider", "igdb", "error", err)
	}

	if s.barcodes == nil || s.fallback == nil {
		if err != nil {
			return nil, err
		}
		return nil, errors.NewNotFoundError("igdb", code)
	}

	product, perr := s.barcodes.FetchByCode(ctx, code)
	if perr != nil {
		return nil, perr
	}
	title, _ := NormalizeTitle(product.Title)

	results, serr := s.fallback.SearchByName(ctx, title)
	if serr != nil {
		return nil, serr
	}
	return fallbackGameResponse(results[0]), nil
}

func gameResponse(g igdb.Game) *Response {
	result := &GameResult{
		Title:    g.Name,
		Rating:   g.TotalRating,
		Summary:  g.Summary,
		CoverURL: coverURL(g.Cover.URL),
	}
	if g.FirstReleaseDate > 0 {
		result.ReleaseDate = time.Unix(g.FirstReleaseDate, 0).UTC().Format("2006-01-02")
	}
	for _, p := range g.Platforms {
		result.Platforms = append(result.Platforms, p.Name)
	}
	for _, genre := range g.Genres {
		result.Genres = append(result.Genres, genre.Name)
	}
	for _, ic := range g.InvolvedCompanies {
		if ic.Developer {
			result.Developers = append(result.Developers, ic.Company.Name)
		}
	}
	return &Response{Entity: EntityGame, Game: result}
}

func fallbackGameResponse(g giantbomb.Game) *Response {
	result := &GameResult{
		Title:       g.Name,
		ReleaseDate: g.OriginalReleaseDate,
		Summary:     g.Deck,
		CoverURL:    g.Image.MediumURL,
	}
	for _, p := range g.Platforms {
		result.Platforms = append(result.Platforms, p.Name)
	}
	return &Response{Entity: EntityGame, Game: result}
}

// IGDB serves image URLs protocol-relative ("//images.igdb.com/...").
func coverURL(u string) string {
	if len(u) >= 2 && u[:2] == "//" {
		return "https:" + u
	}
	return u
}
