package model

import "time"

// Content is a single displayable record. Products and services share
// this shape but live in separate collections.
type Content struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
}

// Content kind labels, used in routes and error messages.
const (
	KindProduct = "Product"
	KindService = "Service"
)
