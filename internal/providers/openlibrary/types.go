package openlibrary

// Book mirrors the jscmd=data shape of the OpenLibrary books endpoint.
type Book struct {
	Title         string     `json:"title"`
	Subtitle      string     `json:"subtitle"`
	Authors       []Name     `json:"authors"`
	Publishers    []Name     `json:"publishers"`
	PublishDate   string     `json:"publish_date"`
	NumberOfPages int        `json:"number_of_pages"`
	Subjects      []Name     `json:"subjects"`
	Cover         Cover      `json:"cover"`
	Identifiers   Identifier `json:"identifiers"`
}

// Name is OpenLibrary's {name, url} pair used for authors, publishers and subjects.
type Name struct {
	Name string `json:"name"`
}

// Cover holds the cover image URLs in three sizes.
type Cover struct {
	Small  string `json:"small"`
	Medium string `json:"medium"`
	Large  string `json:"large"`
}

// Identifier lists the known identifiers of an edition.
type Identifier struct {
	ISBN13 []string `json:"isbn_13"`
	ISBN10 []string `json:"isbn_10"`
}
