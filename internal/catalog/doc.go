// Package catalog is the HTTP client for the CineVault catalog API.
//
// # Overview
//
// Every page of the client is built from one or more GETs against a fixed set
// of /api endpoints. Client wraps those endpoints, raises *HTTPError for any
// status outside 2xx and hands back view models rather than raw JSON.
//
// # Two Schemas
//
// The backend serves either a local IMDb-derived catalog or a TMDB-backed one.
// They disagree on field names and scalar types:
//
//   - title / primary_title / name
//   - rating / average_rating / vote_average
//   - votes / num_votes / vote_count
//   - year / start_year / release_date prefix
//   - id / tconst / nconst
//   - poster / poster_path / poster_url
//   - episode_number / ep_num
//
// Aliases are resolved once, when a payload is decoded. Numbers that arrive as
// strings (and the reverse) are accepted. Relative TMDB image paths are
// prefixed with the configured image base and a size bucket. Renderers only
// ever see the normalized types in types.go.
//
// # Ordering
//
// Home sections, filmography categories and crew departments can arrive as a
// JSON object. Their key order is significant for display, so those objects
// are decoded member by member from the token stream.
//
// # Failure Model
//
// There are no retries. A request fails with the transport error, an
// *HTTPError or a decode error, and the caller decides what to show. Pacing
// through golang.org/x/time/rate is available but off by default.
package catalog
