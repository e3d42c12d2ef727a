package models

// Template is a pre-built character definition shipped as a JSON file,
// optionally paired with a same-named image file.
type Template struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Data     Character `json:"data"`
	ImageURL string    `json:"imageUrl,omitempty"`
}
