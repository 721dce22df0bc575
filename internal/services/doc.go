// Package services defines the [Service] interface for remote playlist
// providers and implements it for Spotify.
//
// # Service Interface
//
// A provider authenticates once per run and fetches playlist items; the rest
// of the pipeline only sees the provider-neutral [RemoteItem] form.
//
// # Spotify Implementation
//
// [SpotifyService] authenticates with the client credentials grant via
// [clientcredentials.Config]. The token is acquired by a single Authenticate
// call before any fetching starts and is reused for the whole run; there is
// no mid-run refresh. Requests go through a shared HTTP client with a
// per-request timeout and, when configured, a token-bucket rate limiter that
// spaces calls out without retrying them.
//
// [ParsePlaylistRef] resolves the playlist references found in config files:
// share URLs contribute their playlist path segment, bare alphanumeric IDs
// pass through unchanged.
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrNotAuthenticated] : Authenticate() not called
//   - [shared.ErrAuthFailed] : token exchange rejected
//   - [shared.ErrAPIRequest] : HTTP request failed
//   - [shared.ErrPlaylistNotFound] : playlist ID not found
//   - [shared.ErrServiceUnavailable] : provider returned a 5xx
//   - [shared.ErrTimeout] : request hit the client timeout
//
// # API Mappings
//
// Spotify JSON responses decode into Spotify* types and convert to
// [RemoteItem] via [SpotifyPlaylistItem.Remote]. The conversion copies
// fields without interpreting them; normalization into sheet rows happens in
// the tasks package.
package services
