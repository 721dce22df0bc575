package tasks

import (
	"strings"

	"github.com/cratesync/cratesync/internal/models"
)

// BuildRows converts fetched playlist items into sheet rows for the target.
// Placeholder and local-file items are skipped. When the same id appears
// more than once the first occurrence wins. Album targets produce one row
// per distinct source album instead of one per track.
func BuildRows(items []models.RemoteItem, target models.Target) []models.Row {
	rows := make([]models.Row, 0, len(items))
	seen := make(map[string]bool, len(items))

	albums := target.Collection() == models.Albums
	for _, item := range items {
		var row *models.Row
		if albums {
			row = albumRow(item, target.PlaylistURL)
		} else {
			row = trackRow(item, target.PlaylistURL)
		}
		if row == nil {
			continue
		}
		if seen[row.SpotifyID] {
			continue
		}
		seen[row.SpotifyID] = true
		rows = append(rows, *row)
	}

	return rows
}

func trackRow(item models.RemoteItem, playlistURL string) *models.Row {
	track := item.Track
	if track == nil || track.Local {
		return nil
	}

	return &models.Row{
		Title:       track.Title,
		Artist:      strings.Join(track.Artists, ", "),
		YearSpotify: releaseYear(track.Album.ReleaseDate),
		SpotifyID:   track.ID,
		Type:        "track",
		Embed:       "true",
		Cover:       firstCover(track.Album.Covers),
		PlaylistURL: playlistURL,
	}
}

func albumRow(item models.RemoteItem, playlistURL string) *models.Row {
	track := item.Track
	if track == nil || track.Local {
		return nil
	}

	album := track.Album
	return &models.Row{
		Title:       album.Title,
		Artist:      strings.Join(album.Artists, ", "),
		YearSpotify: releaseYear(album.ReleaseDate),
		SpotifyID:   album.ID,
		Type:        "album",
		Embed:       "true",
		Cover:       firstCover(album.Covers),
		PlaylistURL: playlistURL,
	}
}

// releaseYear keeps the year prefix of a release date, which the provider
// returns with day, month, or year precision.
func releaseYear(date string) string {
	if len(date) > 4 {
		return date[:4]
	}
	return date
}

func firstCover(covers []string) string {
	if len(covers) == 0 {
		return ""
	}
	return covers[0]
}

// MergeOverrides applies preserved override values onto matching rows in
// place and reports how many rows matched. Canonical columns stay as built;
// rows whose id has no entry keep empty overrides.
func MergeOverrides(rows []models.Row, overrides models.OverrideSet) int {
	if len(overrides) == 0 {
		return 0
	}

	matched := 0
	for i := range rows {
		if override, ok := overrides[rows[i].SpotifyID]; ok {
			rows[i].YearOverride = override.Year
			rows[i].TitleOverride = override.Title
			matched++
		}
	}
	return matched
}
