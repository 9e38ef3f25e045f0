package igdb

// Game mirrors the fields requested from the IGDB games endpoint.
type Game struct {
	ID                int               `json:"id"`
	Name              string            `json:"name"`
	FirstReleaseDate  int64             `json:"first_release_date"`
	Summary           string            `json:"summary"`
	TotalRating       float64           `json:"total_rating"`
	Genres            []Named           `json:"genres"`
	Platforms         []Named           `json:"platforms"`
	Cover             Cover             `json:"cover"`
	InvolvedCompanies []InvolvedCompany `json:"involved_companies"`
}

// Named is IGDB's {id, name} reference shape.
type Named struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Cover holds a game's cover image reference.
type Cover struct {
	ID  int    `json:"id"`
	URL string `json:"url"`
}

// InvolvedCompany links a company to a game with its role flags.
type InvolvedCompany struct {
	Company   Named `json:"company"`
	Developer bool  `json:"developer"`
}
