package state

import (
	"github.com/meshworks/meshcoord/pkg/models"
)

// ApplyGraphSnapshot replaces the cached topology wholesale and drops
// every cached algorithm result in the same critical section. No reader
// can observe the new graph paired with results computed on the old one.
func (s *Store) ApplyGraphSnapshot(graph *models.GraphSnapshot) {
	var cloned *models.GraphSnapshot
	if graph != nil {
		cloned = cloneGraph(graph)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.graph = cloned
	s.algorithms = models.AlgorithmResults{}
}

// Graph returns a deep copy of the cached topology, nil when none has
// been fetched yet.
func (s *Store) Graph() *models.GraphSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.graph == nil {
		return nil
	}

	return cloneGraph(s.graph)
}

// ApplyAlgorithmResults overwrites only the result fields whose flag was
// set in the request. Fields for algorithms that did not run keep their
// previous value, including nil.
func (s *Store) ApplyAlgorithmResults(flags models.AlgorithmFlags, results models.AlgorithmResults) {
	cloned := cloneAlgorithmResults(&results)

	s.mu.Lock()
	defer s.mu.Unlock()

	if flags.ArticulationPoint {
		s.algorithms.ArticulationPoints = cloned.ArticulationPoints
	}

	if flags.GlobalMincut {
		s.algorithms.Mincut = cloned.Mincut
	}

	if flags.DiffusionCentrality {
		s.algorithms.Diffusion = cloned.Diffusion
	}

	if flags.MostSimilarTimeline {
		s.algorithms.MostSimilarTimeline = cloned.MostSimilarTimeline
	}

	if flags.PredictedState {
		s.algorithms.PredictedState = cloned.PredictedState
	}
}

// AlgorithmResults returns a deep copy of the cached results. Nil fields
// mean the algorithm has not run since the last topology refresh.
func (s *Store) AlgorithmResults() models.AlgorithmResults {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return *cloneAlgorithmResults(&s.algorithms)
}
