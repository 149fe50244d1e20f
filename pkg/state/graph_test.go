package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshworks/meshcoord/pkg/models"
)

func sampleGraph() *models.GraphSnapshot {
	return &models.GraphSnapshot{
		EdgeProperty: models.EdgeUndirected,
		Nodes: []models.GraphNode{
			{Num: 1}, {Num: 2}, {Num: 3},
		},
		Edges: []models.GraphEdge{
			{From: 1, To: 2, Weight: 0.8},
			{From: 2, To: 3, Weight: 0.4},
		},
	}
}

func TestApplyGraphSnapshotInvalidatesAllResults(t *testing.T) {
	store := newTestStore(t)

	store.ApplyGraphSnapshot(sampleGraph())
	store.ApplyAlgorithmResults(
		models.AlgorithmFlags{ArticulationPoint: true, GlobalMincut: true},
		models.AlgorithmResults{
			ArticulationPoints: []uint32{2},
			Mincut:             [][2]uint32{{1, 2}},
		},
	)

	require.NotNil(t, store.AlgorithmResults().ArticulationPoints)

	// Even an identical snapshot drops every cached result.
	store.ApplyGraphSnapshot(sampleGraph())

	results := store.AlgorithmResults()
	assert.Nil(t, results.ArticulationPoints)
	assert.Nil(t, results.Mincut)
	assert.Nil(t, results.Diffusion)
	assert.Nil(t, results.MostSimilarTimeline)
	assert.Nil(t, results.PredictedState)
}

func TestApplyAlgorithmResultsOnlyFlaggedFields(t *testing.T) {
	store := newTestStore(t)

	store.ApplyGraphSnapshot(sampleGraph())
	store.ApplyAlgorithmResults(
		models.AlgorithmFlags{ArticulationPoint: true},
		models.AlgorithmResults{ArticulationPoints: []uint32{2}},
	)

	// A second run for mincut only must not disturb the earlier result.
	store.ApplyAlgorithmResults(
		models.AlgorithmFlags{GlobalMincut: true},
		models.AlgorithmResults{Mincut: [][2]uint32{{1, 2}}},
	)

	results := store.AlgorithmResults()
	assert.Equal(t, []uint32{2}, results.ArticulationPoints)
	assert.Equal(t, [][2]uint32{{1, 2}}, results.Mincut)
	assert.Nil(t, results.Diffusion)
}

func TestGraphReadsAreDetached(t *testing.T) {
	store := newTestStore(t)

	store.ApplyGraphSnapshot(sampleGraph())

	graph := store.Graph()
	require.NotNil(t, graph)
	graph.Nodes[0].Num = 999

	fresh := store.Graph()
	assert.Equal(t, uint32(1), fresh.Nodes[0].Num)
}

func TestGraphNilUntilFetched(t *testing.T) {
	store := newTestStore(t)

	assert.Nil(t, store.Graph())
}
