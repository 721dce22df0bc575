package models

import (
	"fmt"
)

// Columns is the fixed sheet header. The published sheets are consumed by
// name, so order and spelling never change between syncs.
var Columns = []string{
	"title",
	"artist",
	"year_spotify",
	"year_override",
	"title_override",
	"spotifyId",
	"type",
	"embed",
	"cover",
	"playlist_url",
}

// Row is one sheet line: canonical fields rebuilt from Spotify on every sync,
// plus the two override columns owned by the sheet's curator.
type Row struct {
	Title         string
	Artist        string
	YearSpotify   string
	YearOverride  string
	TitleOverride string
	SpotifyID     string
	Type          string
	Embed         string
	Cover         string
	PlaylistURL   string
}

// Strings returns the row's fields in [Columns] order.
func (r Row) Strings() []string {
	return []string{
		r.Title,
		r.Artist,
		r.YearSpotify,
		r.YearOverride,
		r.TitleOverride,
		r.SpotifyID,
		r.Type,
		r.Embed,
		r.Cover,
		r.PlaylistURL,
	}
}

// CollectionType selects how a playlist's items map to sheet rows.
type CollectionType string

const (
	// Tracks writes one row per song on the playlist.
	Tracks CollectionType = "tracks"
	// Albums writes one row per distinct source album.
	Albums CollectionType = "albums"
)

// Valid reports whether c names a known collection type.
func (c CollectionType) Valid() bool {
	return c == Tracks || c == Albums
}

// Target is one configured playlist to sync into a sheet.
type Target struct {
	ID          string         `toml:"id" json:"id"`
	PlaylistURL string         `toml:"playlist_url" json:"playlist_url"`
	Type        CollectionType `toml:"type,omitempty" json:"type,omitempty"`
}

// Collection returns the target's collection type, defaulting to [Tracks]
// when the targets file leaves it unset.
func (t Target) Collection() CollectionType {
	if t.Type == "" {
		return Tracks
	}
	return t.Type
}

// Validate checks that the target carries everything a sync needs.
func (t Target) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("target id is required")
	}
	if t.PlaylistURL == "" {
		return fmt.Errorf("target %q has no playlist_url", t.ID)
	}
	if t.Type != "" && !t.Type.Valid() {
		return fmt.Errorf("target %q has unknown type %q", t.ID, t.Type)
	}
	return nil
}

// Override carries the curator-owned columns for one spotifyId.
type Override struct {
	Year  string
	Title string
}

// OverrideSet maps a row's spotifyId to the overrides preserved for it.
type OverrideSet map[string]Override
