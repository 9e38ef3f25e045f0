package musicbrainz

// Release mirrors one entry of the MusicBrainz release search response.
type Release struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Date         string         `json:"date"`
	Country      string         `json:"country"`
	Barcode      string         `json:"barcode"`
	ArtistCredit []ArtistCredit `json:"artist-credit"`
	Media        []Media        `json:"media"`
	ReleaseGroup ReleaseGroup   `json:"release-group"`
}

// ArtistCredit is one credited artist on a release.
type ArtistCredit struct {
	Name string `json:"name"`
}

// Media is one physical medium of a release (CD, vinyl, ...).
type Media struct {
	Format     string `json:"format"`
	TrackCount int    `json:"track-count"`
}

// ReleaseGroup carries the primary type of the release (album, single, ...).
type ReleaseGroup struct {
	PrimaryType string `json:"primary-type"`
}

type searchResponse struct {
	Count    int       `json:"count"`
	Releases []Release `json:"releases"`
}
