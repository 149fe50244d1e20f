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

// Package graphsync keeps the cached mesh topology and its derived
// algorithm results coherent. Topology refreshes always replace the
// whole snapshot and invalidate every cached result; algorithm runs
// write back only the outputs they were asked to compute.
package graphsync

import (
	"context"
	"fmt"

	"github.com/meshworks/meshcoord/pkg/bridge"
	"github.com/meshworks/meshcoord/pkg/logger"
	"github.com/meshworks/meshcoord/pkg/models"
	"github.com/meshworks/meshcoord/pkg/requests"
	"github.com/meshworks/meshcoord/pkg/state"
)

// Ledger operation names for graph synchronization.
const (
	OpFetchGraph    = "graph.fetch"
	OpRunAlgorithms = "graph.run_algorithms"
)

// Synchronizer mediates between the bridge's graph endpoints and the
// domain state store.
type Synchronizer struct {
	client  bridge.Client
	store   *state.Store
	tracker *requests.Tracker
	logger  logger.Logger
}

// New creates a graph synchronizer over the given bridge client.
func New(client bridge.Client, store *state.Store, tracker *requests.Tracker, log logger.Logger) *Synchronizer {
	return &Synchronizer{
		client:  client,
		store:   store,
		tracker: tracker,
		logger:  log,
	}
}

// FetchGraph pulls the current topology from the backend and installs it
// as the new snapshot. Installing a snapshot of any content, including
// one identical to the previous, drops all cached algorithm results.
func (s *Synchronizer) FetchGraph(ctx context.Context) error {
	return s.tracker.Track(ctx, OpFetchGraph, func(ctx context.Context) error {
		graph, err := s.client.GetGraphState(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch graph state: %w", err)
		}

		s.store.ApplyGraphSnapshot(graph)

		nodes, edges := 0, 0
		if graph != nil {
			nodes, edges = len(graph.Nodes), len(graph.Edges)
		}

		s.logger.Debug().
			Int("nodes", nodes).
			Int("edges", edges).
			Msg("Installed topology snapshot")

		return nil
	})
}

// RunAlgorithms asks the backend to compute the flagged algorithms and
// merges the outputs into the cached results. Results for algorithms
// outside the flag set are left exactly as they were.
func (s *Synchronizer) RunAlgorithms(ctx context.Context, flags models.AlgorithmFlags) error {
	return s.tracker.Track(ctx, OpRunAlgorithms, func(ctx context.Context) error {
		results, err := s.client.RunAlgorithms(ctx, flags)
		if err != nil {
			return fmt.Errorf("failed to run graph algorithms: %w", err)
		}

		if results == nil {
			results = &models.AlgorithmResults{}
		}

		s.store.ApplyAlgorithmResults(flags, *results)

		return nil
	})
}
