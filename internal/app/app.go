package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/five82/cinevault/internal/catalog"
	"github.com/five82/cinevault/internal/config"
	"github.com/five82/cinevault/internal/logging"
	"github.com/five82/cinevault/internal/pages"
	"github.com/five82/cinevault/internal/render"
	"github.com/five82/cinevault/internal/router"
	"github.com/five82/cinevault/internal/state"
	"github.com/five82/cinevault/internal/ui"
	"github.com/five82/cinevault/internal/view"
)

// Options configure the CineVault application.
type Options struct {
	ConfigPath string
	APIURL     string // overrides api_url when set
	Start      string // initial fragment; empty opens home
}

// Services are the wired components behind the UI.
type Services struct {
	Config   config.Config
	Log      *logrus.Entry
	Client   *catalog.Client
	Renderer *render.Renderer
	Store    *state.Store
	Router   *router.Router
}

// Build wires the catalog client, renderers, page loaders and router.
func Build(cfg config.Config, log *logrus.Entry) (*Services, error) {
	style := catalog.EpisodesQuery
	if cfg.EpisodeRoute == "path" {
		style = catalog.EpisodesPath
	}
	client, err := catalog.NewClient(catalog.Options{
		BaseURL:           cfg.APIURL,
		ImageBase:         cfg.ImageBase,
		Timeout:           cfg.RequestTimeout,
		RequestsPerSecond: cfg.RequestsPerSec,
		EpisodeStyle:      style,
		Logger:            log,
	})
	if err != nil {
		return nil, fmt.Errorf("init catalog client: %w", err)
	}

	rend, err := render.NewRenderer(cfg.Locale)
	if err != nil {
		return nil, fmt.Errorf("init renderer: %w", err)
	}

	store := &state.Store{}
	rt := router.New(store, pages.NewSet(client, rend, log), log)

	return &Services{
		Config:   cfg,
		Log:      log.WithField("session", rt.Session()),
		Client:   client,
		Renderer: rend,
		Store:    store,
		Router:   rt,
	}, nil
}

// Genres lists the genre choices for the filter panel.
func (s *Services) Genres(ctx context.Context) ([]view.Option, error) {
	genres, err := s.Client.Genres(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch genres: %w", err)
	}
	markup, err := s.Renderer.GenreOptions(genres)
	if err != nil {
		return nil, fmt.Errorf("render genres: %w", err)
	}
	return view.ParseOptions(markup)
}

// RenderOnce loads fragment and writes the page as plain text.
func (s *Services) RenderOnce(ctx context.Context, fragment string, w io.Writer) error {
	out := s.Router.Navigate(ctx, fragment)
	snap := s.Store.Snapshot()
	doc, err := view.Parse(snap.Markup)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, doc.Render(view.Options{}).Plain()); err != nil {
		return fmt.Errorf("write page: %w", err)
	}
	return out.Err
}

// LoadConfig reads the config file and applies option overrides.
func LoadConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if api := strings.TrimSpace(opts.APIURL); api != "" {
		cfg.APIURL = strings.TrimRight(api, "/")
		if err := cfg.Validate(); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}

// Run boots the CineVault TUI until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logger.Close() }()

	svc, err := Build(cfg, logrus.NewEntry(logger.Logger))
	if err != nil {
		return err
	}
	svc.Log.WithField("api", cfg.APIURL).Info("cinevault starting")

	// A dead backend is reported in the log and on the first page; the UI
	// still starts.
	if err := ensureCatalogAvailable(ctx, svc.Client); err != nil {
		svc.Log.WithError(err).Warn("catalog backend unavailable")
	}

	return ui.Run(ui.Options{
		Context:      ctx,
		Router:       svc.Router,
		Store:        svc.Store,
		Genres:       svc.Genres,
		ThemeName:    cfg.Theme,
		Debounce:     cfg.SearchDebounce,
		HeroInterval: cfg.HeroInterval,
		Start:        opts.Start,
		Log:          svc.Log,
	})
}

// Render loads one fragment and prints it to w without starting the TUI.
func Render(ctx context.Context, opts Options, w io.Writer) error {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logger.Close() }()

	svc, err := Build(cfg, logrus.NewEntry(logger.Logger))
	if err != nil {
		return err
	}
	return svc.RenderOnce(ctx, opts.Start, w)
}
