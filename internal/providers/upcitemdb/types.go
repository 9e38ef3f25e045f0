package upcitemdb

// Product is the provider-specific result of a barcode lookup.
type Product struct {
	Title    string
	Brand    string
	Category string
	UPC      string
	ImageURL string
}

// lookupResponse mirrors the UPCitemdb lookup endpoint payload.
type lookupResponse struct {
	Code  string `json:"code"`
	Total int    `json:"total"`
	Items []item `json:"items"`
}

type item struct {
	Title    string   `json:"title"`
	Brand    string   `json:"brand"`
	Category string   `json:"category"`
	UPC      string   `json:"upc"`
	EAN      string   `json:"ean"`
	Images   []string `json:"images"`
}
