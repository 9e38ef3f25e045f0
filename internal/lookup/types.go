// Package lookup resolves a scanned or typed identifier into a canonical
// catalog entry by dispatching to per-entity strategies over the provider
// clients.
package lookup

import (
	"slices"
	"strings"

	"github.com/lkarjala/curator/internal/errors"
)

// EntityType is the kind of collection item being looked up.
type EntityType string

// Supported entity types.
const (
	EntityBook  EntityType = "book"
	EntityMovie EntityType = "movie"
	EntityGame  EntityType = "game"
	EntityMusic EntityType = "music"
)

var entityTypes = []EntityType{EntityBook, EntityMovie, EntityGame, EntityMusic}

// ParseEntityType parses a caller-supplied entity type case-insensitively.
// Plural forms ("Books") are accepted alongside the singular.
func ParseEntityType(s string) (EntityType, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.TrimSuffix(normalized, "s")
	for _, e := range entityTypes {
		if normalized == strings.TrimSuffix(string(e), "s") {
			return e, nil
		}
	}
	return "", errors.NewValidationError("entityType", s, entityTypeStrings()...)
}

func entityTypeStrings() []string {
	out := make([]string, len(entityTypes))
	for i, e := range entityTypes {
		out[i] = string(e)
	}
	return out
}

// IdentifierType is the kind of identifier supplied for a lookup.
type IdentifierType string

// Supported identifier types. Each strategy accepts its own subset.
const (
	IdentifierISBN IdentifierType = "isbn"
	IdentifierLCCN IdentifierType = "lccn"
	IdentifierOCLC IdentifierType = "oclc"
	IdentifierOLID IdentifierType = "olid"
	IdentifierUPC  IdentifierType = "upc"
	IdentifierEAN  IdentifierType = "ean"
)

var identifierTypes = []IdentifierType{
	IdentifierISBN, IdentifierLCCN, IdentifierOCLC, IdentifierOLID, IdentifierUPC, IdentifierEAN,
}

// ParseIdentifierType parses a caller-supplied identifier type
// case-insensitively ("ISBN", "isbn" and "IsBn" are all accepted).
func ParseIdentifierType(s string) (IdentifierType, error) {
	normalized := IdentifierType(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(identifierTypes, normalized) {
		return normalized, nil
	}
	return "", errors.NewValidationError("identifierType", s, identifierTypeStrings(identifierTypes)...)
}

func identifierTypeStrings(ids []IdentifierType) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

// Response is the canonical lookup result. Exactly one of the per-entity
// records is set, matching Entity. It carries no provider-specific fields.
type Response struct {
	Entity EntityType   `json:"entity" yaml:"entity"`
	Book   *BookResult  `json:"book,omitempty" yaml:"book,omitempty"`
	Movie  *MovieResult `json:"movie,omitempty" yaml:"movie,omitempty"`
	Game   *GameResult  `json:"game,omitempty" yaml:"game,omitempty"`
	Music  *MusicResult `json:"music,omitempty" yaml:"music,omitempty"`
}

// BookResult is the canonical book record.
type BookResult struct {
	Title       string   `json:"title" yaml:"title"`
	Subtitle    string   `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Authors     []string `json:"authors,omitempty" yaml:"authors,omitempty"`
	Publisher   string   `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	ReleaseDate string   `json:"release_date,omitempty" yaml:"release_date,omitempty"`
	Pages       int      `json:"pages,omitempty" yaml:"pages,omitempty"`
	Genres      []string `json:"genres,omitempty" yaml:"genres,omitempty"`
	CoverURL    string   `json:"cover_url,omitempty" yaml:"cover_url,omitempty"`
}

// MovieResult is the canonical movie record.
type MovieResult struct {
	Title       string   `json:"title" yaml:"title"`
	Year        int      `json:"year,omitempty" yaml:"year,omitempty"`
	ReleaseDate string   `json:"release_date,omitempty" yaml:"release_date,omitempty"`
	Genres      []string `json:"genres,omitempty" yaml:"genres,omitempty"`
	Rating      float64  `json:"rating,omitempty" yaml:"rating,omitempty"`
	Format      string   `json:"format,omitempty" yaml:"format,omitempty"`
	Overview    string   `json:"overview,omitempty" yaml:"overview,omitempty"`
	CoverURL    string   `json:"cover_url,omitempty" yaml:"cover_url,omitempty"`
}

// GameResult is the canonical game record.
type GameResult struct {
	Title       string   `json:"title" yaml:"title"`
	ReleaseDate string   `json:"release_date,omitempty" yaml:"release_date,omitempty"`
	Platforms   []string `json:"platforms,omitempty" yaml:"platforms,omitempty"`
	Genres      []string `json:"genres,omitempty" yaml:"genres,omitempty"`
	Developers  []string `json:"developers,omitempty" yaml:"developers,omitempty"`
	Rating      float64  `json:"rating,omitempty" yaml:"rating,omitempty"`
	Summary     string   `json:"summary,omitempty" yaml:"summary,omitempty"`
	CoverURL    string   `json:"cover_url,omitempty" yaml:"cover_url,omitempty"`
}

// MusicResult is the canonical music release record.
type MusicResult struct {
	Title       string   `json:"title" yaml:"title"`
	Artists     []string `json:"artists,omitempty" yaml:"artists,omitempty"`
	ReleaseDate string   `json:"release_date,omitempty" yaml:"release_date,omitempty"`
	Country     string   `json:"country,omitempty" yaml:"country,omitempty"`
	Format      string   `json:"format,omitempty" yaml:"format,omitempty"`
	TrackCount  int      `json:"track_count,omitempty" yaml:"track_count,omitempty"`
	Type        string   `json:"type,omitempty" yaml:"type,omitempty"`
	CoverURL    string   `json:"cover_url,omitempty" yaml:"cover_url,omitempty"`
}

// supportSet implements the identifier capability checks strategies embed.
type supportSet []IdentifierType

// SupportedIdentifierTypes lists the identifier types the strategy accepts.
func (s supportSet) SupportedIdentifierTypes() []IdentifierType {
	return s
}

// SupportsIdentifierType reports whether the strategy accepts the identifier type.
func (s supportSet) SupportsIdentifierType(id IdentifierType) bool {
	return slices.Contains(s, id)
}
