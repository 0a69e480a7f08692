// Package app is the composition root of CineVault.
//
// Run loads the TOML config, opens the rotating log, builds the catalog
// client, renderers, page loaders, content store and router, probes the
// backend once and hands everything to the terminal UI. Render performs the
// same wiring but loads a single fragment and prints it as plain text.
//
//	Run()
//	  ├─> config.Load()          read ~/.config/cinevault/config.toml
//	  ├─> logging.New()          logrus over lumberjack
//	  ├─> Build()                client, renderer, pages, store, router
//	  ├─> ensureCatalogAvailable GET /api/health (warning only)
//	  └─> ui.Run()               Bubble Tea program (blocks)
//
// Fatal errors are configuration, logging and client setup failures. An
// unreachable backend is not fatal: every page shows the error panel and the
// status line reports the failure.
package app
