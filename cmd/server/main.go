package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/captal-web/internal/config"
	"github.com/jrsteele09/captal-web/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := config.Load(".env"); err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	c := config.New()
	setupLogging(c.GetEnv())

	for {
		if err := run(c); err != nil {
			log.Error().Err(err).Msg("Error running server")
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Info().Msg("Server stopped")
}

func setupLogging(env string) {
	zerolog.TimeFieldFormat = time.RFC3339
	if env == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func run(c config.Config) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	displayAppname(c.GetAppName())

	handler, err := server.Bootstrap(c)
	if err != nil {
		return fmt.Errorf("server.Bootstrap: %w", err)
	}

	srv := &http.Server{
		Addr:              c.GetPort(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() { serveErr <- listenAndServe(srv) }()

	select {
	case err := <-serveErr:
		return err
	case <-waitForStopSignal():
	}
	return shutdown(srv)
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
