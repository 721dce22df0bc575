// package services defines interface Service for interacting with remote
// playlist providers over HTTP
package services

import (
	"context"

	"github.com/cratesync/cratesync/internal/models"
)

// Service defines the interface for remote playlist providers the sync
// pipeline fetches from.
type Service interface {
	// Authenticate acquires an API token for the service. It is called
	// once per run; fetch methods fail until it has succeeded.
	Authenticate(ctx context.Context) error

	// PlaylistItems retrieves every item on a playlist in playlist order,
	// following pagination until the provider reports no further page.
	PlaylistItems(ctx context.Context, playlistID string) ([]models.RemoteItem, error)

	// Name returns the name of the service (e.g., "Spotify")
	Name() string
}
