package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/five82/cinevault/internal/fixture"
	"github.com/five82/cinevault/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	addr := flag.String("addr", "127.0.0.1:5000", "listen address")
	delay := flag.Duration("delay", 0, "latency added to every response, e.g. 400ms")
	level := flag.String("log-level", "info", "debug, info, warn or error")
	flag.Parse()

	log := logrus.New()
	lvl, err := logging.ParseLevel(*level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "catalog-fixtures: %v\n", err)
		return 2
	}
	log.SetLevel(lvl)

	data, err := fixture.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "catalog-fixtures: %v\n", err)
		return 1
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv := &http.Server{
		Addr:              *addr,
		Handler:           fixture.NewServer(data, fixture.Options{Delay: *delay, Log: logrus.NewEntry(log)}),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.WithFields(logrus.Fields{"addr": *addr, "titles": len(data.Titles)}).Info("serving fixture catalog")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintf(os.Stderr, "catalog-fixtures: %v\n", err)
		return 1
	}
	return 0
}
