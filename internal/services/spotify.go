// Spotify API implementation of [Service]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"

	"github.com/cratesync/cratesync/internal/models"
	"github.com/cratesync/cratesync/internal/shared"
)

const (
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"

	// playlistPageLimit is the page size requested from the playlist tracks
	// endpoint, the maximum Spotify allows.
	playlistPageLimit = 100
)

// SpotifyImage represents an image resource.
type SpotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SpotifyAlbum represents a Spotify album.
type SpotifyAlbum struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Artists     []SpotifyArtist `json:"artists"`
	ReleaseDate string          `json:"release_date"`
	Images      []SpotifyImage  `json:"images"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Artists []SpotifyArtist `json:"artists"`
	Album   SpotifyAlbum    `json:"album"`
	IsLocal bool            `json:"is_local"`
}

// SpotifyPlaylistItem represents a track entry within a playlist. Track is
// null in the API response for removed or unavailable entries.
type SpotifyPlaylistItem struct {
	Track *SpotifyTrack `json:"track"`
}

// SpotifyPlaylistPage represents one page of a playlist's tracks.
type SpotifyPlaylistPage struct {
	Items []SpotifyPlaylistItem `json:"items"`
	Next  *string               `json:"next"`
}

// Remote converts the API item into the provider-neutral form the pipeline
// consumes. Fields are copied as-is; normalization happens downstream.
func (i SpotifyPlaylistItem) Remote() models.RemoteItem {
	if i.Track == nil {
		return models.RemoteItem{}
	}

	return models.RemoteItem{Track: &models.RemoteTrack{
		ID:      i.Track.ID,
		Title:   i.Track.Name,
		Artists: artistNames(i.Track.Artists),
		Local:   i.Track.IsLocal,
		Album: models.RemoteAlbum{
			ID:          i.Track.Album.ID,
			Title:       i.Track.Album.Name,
			Artists:     artistNames(i.Track.Album.Artists),
			ReleaseDate: i.Track.Album.ReleaseDate,
			Covers:      imageURLs(i.Track.Album.Images),
		},
	}}
}

func artistNames(artists []SpotifyArtist) []string {
	if len(artists) == 0 {
		return nil
	}
	names := make([]string, len(artists))
	for i, artist := range artists {
		names[i] = artist.Name
	}
	return names
}

func imageURLs(images []SpotifyImage) []string {
	if len(images) == 0 {
		return nil
	}
	urls := make([]string, len(images))
	for i, image := range images {
		urls[i] = image.URL
	}
	return urls
}

var (
	playlistURLPattern = regexp.MustCompile(`playlist/([A-Za-z0-9]+)`)
	playlistIDPattern  = regexp.MustCompile(`^[A-Za-z0-9]+$`)
)

// ParsePlaylistRef extracts a playlist ID from a share URL, or returns a
// bare alphanumeric ID unchanged. Anything else is an invalid reference.
func ParsePlaylistRef(ref string) (string, error) {
	ref = strings.TrimSpace(ref)

	if match := playlistURLPattern.FindStringSubmatch(ref); len(match) > 1 {
		return match[1], nil
	}
	if playlistIDPattern.MatchString(ref) {
		return ref, nil
	}

	return "", fmt.Errorf("%w: %q", shared.ErrInvalidPlaylistRef, ref)
}

// SpotifyOpts tunes the HTTP client the service talks through. The zero
// value gives production defaults.
type SpotifyOpts struct {
	Timeout   time.Duration // per-request timeout, default 10s
	RateLimit float64       // max requests per second, 0 disables pacing
	BaseURL   string        // API root override, default api.spotify.com
	TokenURL  string        // token endpoint override
}

// SpotifyService implements the Service interface for the Spotify Web API.
// Authentication uses the client credentials grant; the token is fetched
// once per run and reused for every request, never refreshed mid-run.
type SpotifyService struct {
	config     *clientcredentials.Config
	token      *oauth2.Token
	httpClient *http.Client
	baseURL    string
}

// NewSpotifyService creates a Spotify service from API credentials.
func NewSpotifyService(clientID, clientSecret string, opts *SpotifyOpts) (*SpotifyService, error) {
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("%w: spotify client id and secret", shared.ErrMissingCredentials)
	}

	if opts == nil {
		opts = &SpotifyOpts{}
	}

	tokenURL := opts.TokenURL
	if tokenURL == "" {
		tokenURL = spotifyTokenURL
	}
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = spotifyBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	var transport http.RoundTripper = http.DefaultTransport
	if opts.RateLimit > 0 {
		transport = &throttledTransport{
			base:    transport,
			limiter: rate.NewLimiter(rate.Limit(opts.RateLimit), 1),
		}
	}

	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}

	return &SpotifyService{
		config:     config,
		httpClient: &http.Client{Timeout: timeout, Transport: transport},
		baseURL:    baseURL,
	}, nil
}

// throttledTransport paces outgoing requests with a token bucket. Requests
// are spaced out, never retried.
type throttledTransport struct {
	base    http.RoundTripper
	limiter *rate.Limiter
}

func (t *throttledTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.base.RoundTrip(req)
}

// Authenticate fetches an access token through the client credentials grant.
func (s *SpotifyService) Authenticate(ctx context.Context) error {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)

	token, err := s.config.Token(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	s.token = token
	return nil
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// doRequest performs an authenticated GET against the Spotify API and
// decodes the JSON response into result. endpoint is either a path under
// the API root or an absolute pagination URL.
func (s *SpotifyService) doRequest(ctx context.Context, endpoint string, result any) error {
	if s.token == nil {
		return fmt.Errorf("%w: call Authenticate first", shared.ErrNotAuthenticated)
	}

	apiURL := endpoint
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		apiURL = s.baseURL + endpoint
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.token.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
			return fmt.Errorf("%w: %v", shared.ErrTimeout, err)
		}
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: status %d", shared.ErrPlaylistNotFound, resp.StatusCode)
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: status %d", shared.ErrServiceUnavailable, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// PlaylistItems retrieves every item on a playlist in playlist order,
// following the next link until the API reports no further page.
func (s *SpotifyService) PlaylistItems(ctx context.Context, playlistID string) ([]models.RemoteItem, error) {
	endpoint := fmt.Sprintf("/playlists/%s/tracks?limit=%d&fields=%s",
		url.PathEscape(playlistID), playlistPageLimit, url.QueryEscape("items,next"))

	var items []models.RemoteItem
	for {
		var page SpotifyPlaylistPage
		if err := s.doRequest(ctx, endpoint, &page); err != nil {
			return nil, err
		}

		for _, item := range page.Items {
			items = append(items, item.Remote())
		}

		if page.Next == nil || *page.Next == "" {
			break
		}
		endpoint = *page.Next
	}

	return items, nil
}
