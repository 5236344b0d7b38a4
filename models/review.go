package models

// Review is one scraped product review.
type Review struct {
	Product string  `json:"product"`
	User    string  `json:"user"`
	Rating  float64 `json:"rating"` // 0-5, may be fractional
	Title   string  `json:"title"`
	Comment string  `json:"comment"`
	Date    string  `json:"date"`

	// Website is echoed by the backend; it is not rendered.
	Website string `json:"website,omitempty"`
}
