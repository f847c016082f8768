package domain

import "time"

// Resource curated reference material (guidelines, webinars, reports)
// surfaced on the resources page.
type Resource struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Type        string    `json:"type"` // document, webinar, guide, ...
	URL         string    `json:"url"`
	Description string    `json:"description,omitempty"`
	PublishedAt time.Time `json:"publishedAt"`
}

// NewResource insert payload
type NewResource struct {
	Title       string    `json:"title"`
	Type        string    `json:"type"`
	URL         string    `json:"url"`
	Description string    `json:"description,omitempty"`
	PublishedAt time.Time `json:"publishedAt"`
}
