package client

import "time"

// Client is a customer site with a registered location. Immutable for the
// check-in core.
type Client struct {
	ID        string
	Name      string
	Latitude  float64
	Longitude float64
	CreatedAt time.Time
	UpdatedAt time.Time
}
