package giantbomb

// Game mirrors one entry of the GiantBomb search response.
type Game struct {
	ID                  int        `json:"id"`
	Name                string     `json:"name"`
	Deck                string     `json:"deck"`
	OriginalReleaseDate string     `json:"original_release_date"`
	Image               Image      `json:"image"`
	Platforms           []Platform `json:"platforms"`
}

// Image holds the game's artwork URLs.
type Image struct {
	MediumURL string `json:"medium_url"`
}

// Platform is one platform a game was released on.
type Platform struct {
	Name string `json:"name"`
}

type searchResponse struct {
	StatusCode int    `json:"status_code"`
	Error      string `json:"error"`
	Results    []Game `json:"results"`
}
