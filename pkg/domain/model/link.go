package model

// Link is a navigation entry shown by the UI layer.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
	Order int    `json:"-"`
}
