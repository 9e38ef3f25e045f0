package lookup

import (
	"context"

	"github.com/lkarjala/curator/internal/providers/musicbrainz"
)

// releaseFinder is the slice of the MusicBrainz client the music strategy needs.
type releaseFinder interface {
	FindReleaseByBarcode(ctx context.Context, code string) (*musicbrainz.Release, error)
}

// MusicStrategy resolves music release barcodes through MusicBrainz.
type MusicStrategy struct {
	supportSet
	releases releaseFinder
}

// NewMusicStrategy builds a music strategy on top of a MusicBrainz client.
func NewMusicStrategy(releases releaseFinder) *MusicStrategy {
	return &MusicStrategy{
		supportSet: supportSet{IdentifierUPC, IdentifierEAN},
		releases:   releases,
	}
}

// Entity returns the entity type this strategy serves.
func (s *MusicStrategy) Entity() EntityType {
	return EntityMusic
}

// Lookup finds the release carrying the barcode and maps it to the canonical
// music record. Cover art comes from the Cover Art Archive by release ID.
func (s *MusicStrategy) Lookup(ctx context.Context, id IdentifierType, value string) (*Response, error) {
	release, err := s.releases.FindReleaseByBarcode(ctx, value)
	if err != nil {
		return nil, err
	}

	result := &MusicResult{
		Title:       release.Title,
		ReleaseDate: release.Date,
		Country:     release.Country,
		Type:        release.ReleaseGroup.PrimaryType,
		CoverURL:    musicbrainz.CoverArtURL(release.ID),
	}
	for _, artist := range release.ArtistCredit {
		result.Artists = append(result.Artists, artist.Name)
	}
	if len(release.Media) > 0 {
		result.Format = release.Media[0].Format
		for _, m := range release.Media {
			result.TrackCount += m.TrackCount
		}
	}

	return &Response{Entity: EntityMusic, Music: result}, nil
}
