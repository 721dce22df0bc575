package models

// RemoteItem is one playlist entry from a provider. Track is nil when the
// provider returned a placeholder for a removed or unavailable entry.
type RemoteItem struct {
	Track *RemoteTrack
}

// RemoteTrack carries the track fields the sheet pipeline reads. Values are
// copied from the provider response untouched; normalization happens in the
// tasks package.
type RemoteTrack struct {
	ID      string
	Title   string
	Artists []string
	Local   bool
	Album   RemoteAlbum
}

// RemoteAlbum carries the album half of a playlist entry.
type RemoteAlbum struct {
	ID          string
	Title       string
	Artists     []string
	ReleaseDate string
	Covers      []string // image URLs in provider order, largest first
}
