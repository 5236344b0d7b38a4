package models

// ScrapeRequest is the payload for POST /scrape on the backend.
type ScrapeRequest struct {
	// URL is the product page whose reviews should be scraped.
	URL string `json:"url"`

	// Website is the value of the site selector, e.g. "flipkart" or "amazon".
	Website string `json:"website"`

	// MaxReviews is sent exactly as typed into the form; the backend
	// converts it to an integer.
	MaxReviews string `json:"max_reviews"`
}

// ExportRequest is the payload for POST /export on the backend.
type ExportRequest struct {
	Website string `json:"website"`
}
