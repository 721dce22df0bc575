// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/cratesync/cratesync/internal/models"
)

// MockService is a test double for the provider interface. Responses are
// configured per playlist ID; calls are recorded for assertions.
type MockService struct {
	AuthErr  error
	ItemsErr error
	Items    map[string][]models.RemoteItem

	AuthCalls int
	Fetched   []string
}

func (m *MockService) Authenticate(ctx context.Context) error {
	m.AuthCalls++
	return m.AuthErr
}

func (m *MockService) PlaylistItems(ctx context.Context, playlistID string) ([]models.RemoteItem, error) {
	m.Fetched = append(m.Fetched, playlistID)
	if m.ItemsErr != nil {
		return nil, m.ItemsErr
	}
	return m.Items[playlistID], nil
}

func (m *MockService) Name() string { return "mock" }

// TrackItem builds a playlist entry with the fields sheet rows read.
func TrackItem(id, title, artist, releaseDate, cover string) models.RemoteItem {
	track := &models.RemoteTrack{
		ID:      id,
		Title:   title,
		Artists: []string{artist},
		Album: models.RemoteAlbum{
			ID:          "alb_" + id,
			Title:       title + " LP",
			Artists:     []string{artist},
			ReleaseDate: releaseDate,
		},
	}
	if cover != "" {
		track.Album.Covers = []string{cover}
	}
	return models.RemoteItem{Track: track}
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
