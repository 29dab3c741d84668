// Package public serves the storefront API consumed by the mini-app.
package public

import "github.com/kitestore-next/internal/provider"

// Handler is the public storefront handler group.
type Handler struct {
	*provider.Container
}

// New creates the public handler group.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
