package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/cinevault/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional, defaults to ~/.config/cinevault/config.toml)")
	apiURL := flag.String("api", "", "override the catalog backend URL (optional)")
	renderFragment := flag.String("render", "", "print one page, e.g. '#title?id=tt0113277', and exit")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{ConfigPath: *configPath, APIURL: *apiURL}
	if start := flag.Arg(0); start != "" {
		opts.Start = start
	}

	if *renderFragment != "" {
		opts.Start = *renderFragment
		if err := app.Render(ctx, opts, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "cinevault: %v\n", err)
			return 1
		}
		return 0
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "cinevault: %v\n", err)
		return 1
	}
	return 0
}
