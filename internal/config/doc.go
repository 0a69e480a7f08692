// Package config loads the CineVault client configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/cinevault/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing or empty, use defaults
//
// Command-line flags are applied by the caller after Load.
//
// # TOML Format
//
//	api_url = "http://localhost:5000"
//	image_base = "https://image.tmdb.org/t/p"
//	locale = "en-US"
//	theme = "Dracula"
//	search_debounce_ms = 350
//	hero_interval_seconds = 6
//	request_timeout_seconds = 0   # 0 uses the platform default
//	max_requests_per_second = 0   # 0 is unlimited
//	episode_route = "query"       # or "path" for /season/{n}
//
//	[log]
//	file = "~/.local/share/cinevault/cinevault.log"   # "" discards logs
//	level = "info"
//	max_size_mb = 10
//	max_backups = 3
//	compress = true
//
// Paths starting with ~ are expanded to the user's home directory.
package config
