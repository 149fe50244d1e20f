/*
 * Copyright 2025 Meshworks.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/meshworks/meshcoord/pkg/bridge/natsbridge"
	"github.com/meshworks/meshcoord/pkg/config"
	"github.com/meshworks/meshcoord/pkg/connections"
	"github.com/meshworks/meshcoord/pkg/dispatcher"
	"github.com/meshworks/meshcoord/pkg/graphsync"
	"github.com/meshworks/meshcoord/pkg/logger"
	"github.com/meshworks/meshcoord/pkg/persist"
	"github.com/meshworks/meshcoord/pkg/requests"
	"github.com/meshworks/meshcoord/pkg/state"
)

var errFailedToLoadConfig = fmt.Errorf("failed to load config")

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", "/etc/meshcoord/meshcoordd.json", "Path to coordinator config file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadFromFile(ctx, *configPath)
	if err != nil {
		return fmt.Errorf("%w: %w", errFailedToLoadConfig, err)
	}

	logConfig := cfg.Logging
	if logConfig == nil {
		logConfig = &logger.Config{
			Level:  "info",
			Output: "stdout",
		}
	}

	coordLogger, err := logger.New(logConfig, "meshcoordd")
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	store, err := newPersistStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			coordLogger.Warn().Err(err).Msg("Failed to close persistence")
		}
	}()

	client, err := natsbridge.New(&cfg.Bridge, coordLogger)
	if err != nil {
		return fmt.Errorf("failed to connect to bridge: %w", err)
	}
	defer client.Close()

	domain := state.NewStore(coordLogger)
	registry := connections.NewRegistry(coordLogger)
	tracker := requests.NewTracker(coordLogger)

	disp := dispatcher.New(dispatcher.Config{
		Client:   client,
		Events:   client,
		Store:    domain,
		Registry: registry,
		Tracker:  tracker,
		Persist:  store,
		Logger:   coordLogger,
	})

	graphSync := graphsync.New(client, domain, tracker, coordLogger)

	if err := disp.InitializeApplication(ctx); err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	if cfg.AutoConnect {
		if err := disp.AutoConnect(ctx); err != nil {
			coordLogger.Warn().Err(err).Msg("Autoconnect failed")
		}
	}

	if err := graphSync.FetchGraph(ctx); err != nil {
		coordLogger.Warn().Err(err).Msg("Initial topology fetch failed")
	}

	coordLogger.Info().Msg("Coordinator running")

	<-ctx.Done()

	shutdownCtx := context.Background()

	if err := disp.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown incomplete: %w", err)
	}

	return nil
}

func newPersistStore(ctx context.Context, cfg *config.CoordConfig) (persist.Store, error) {
	switch cfg.Persistence.Mode {
	case config.PersistNats:
		return persist.NewNatsStore(ctx, cfg.Persistence.Nats)
	default:
		return persist.NewFileStore(cfg.Persistence.Path)
	}
}
