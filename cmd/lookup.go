package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lkarjala/curator/internal/cache"
	"github.com/lkarjala/curator/internal/config"
	"github.com/lkarjala/curator/internal/lookup"
	"github.com/lkarjala/curator/internal/providers/giantbomb"
	"github.com/lkarjala/curator/internal/providers/igdb"
	"github.com/lkarjala/curator/internal/providers/musicbrainz"
	"github.com/lkarjala/curator/internal/providers/openlibrary"
	"github.com/lkarjala/curator/internal/providers/tmdb"
	"github.com/lkarjala/curator/internal/providers/upcitemdb"
	"github.com/lkarjala/curator/internal/ratelimit"
)

// LookupCmd resolves one identifier into a canonical record.
type LookupCmd struct {
	Entity         string `arg:"" help:"Entity type: book, movie, game or music"`
	IdentifierType string `arg:"" help:"Identifier type: isbn, lccn, oclc, olid, upc or ean"`
	Value          string `arg:"" help:"Identifier value"`
	Format         string `help:"Output format" enum:"json,yaml" default:"json"`
}

func (l *LookupCmd) Run() error {
	store, err := cache.Open(config.CachePath())
	if err != nil {
		return fmt.Errorf("opening cache: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Warn("closing cache failed", "error", err)
		}
	}()

	dispatcher, err := buildDispatcher(store)
	if err != nil {
		return err
	}

	resp, err := dispatcher.Lookup(context.Background(), l.Entity, l.IdentifierType, l.Value)
	if err != nil {
		return err
	}

	return writeResponse(os.Stdout, l.Format, resp)
}

// buildDispatcher assembles the provider clients behind their rate gates and
// registers one strategy per entity type.
func buildDispatcher(store cache.Store) (*lookup.Dispatcher, error) {
	httpClient := &http.Client{Timeout: config.HTTPTimeout()}

	gates := make(map[string]*ratelimit.Gate)
	for _, name := range []string{"openlibrary", "upcitemdb", "tmdb", "igdb", "giantbomb", "musicbrainz"} {
		gate, err := ratelimit.NewGate(name, config.ProviderLimit(name))
		if err != nil {
			return nil, fmt.Errorf("building %s rate gate: %w", name, err)
		}
		gates[name] = gate
	}

	books := openlibrary.NewClient(gates["openlibrary"],
		openlibrary.WithHTTPClient(httpClient))
	barcodes := upcitemdb.NewClient(config.UPCItemDBAPIKey, gates["upcitemdb"],
		upcitemdb.WithHTTPClient(httpClient))
	movies := tmdb.NewClient(config.TMDBAPIKey, gates["tmdb"],
		tmdb.WithHTTPClient(httpClient),
		tmdb.WithStore(store, config.CacheTTL()))
	games := igdb.NewClient(config.IGDBClientID, config.IGDBClientSecret, gates["igdb"], store,
		igdb.WithHTTPClient(httpClient))
	gamesFallback := giantbomb.NewClient(config.GiantBombAPIKey, gates["giantbomb"],
		giantbomb.WithHTTPClient(httpClient))
	releases := musicbrainz.NewClient(gates["musicbrainz"],
		musicbrainz.WithHTTPClient(httpClient))

	return lookup.NewDispatcher(
		lookup.NewBookStrategy(books),
		lookup.NewMovieStrategy(barcodes, movies),
		lookup.NewGameStrategy(games, barcodes, gamesFallback),
		lookup.NewMusicStrategy(releases),
	), nil
}

func writeResponse(w io.Writer, format string, resp *lookup.Response) error {
	switch format {
	case "yaml":
		out, err := yaml.Marshal(resp)
		if err != nil {
			return fmt.Errorf("encoding response: %w", err)
		}
		_, err = w.Write(out)
		return err
	default:
		out, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding response: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	}
}
