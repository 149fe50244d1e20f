package state

import (
	"github.com/meshworks/meshcoord/pkg/models"
)

// Deep copy helpers. Everything handed out of the store is detached so
// callers can never mutate shared state through an aliased pointer.

func cloneUint32Ptr(p *uint32) *uint32 {
	if p == nil {
		return nil
	}

	v := *p

	return &v
}

func cloneUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}

	cloned := *u

	return &cloned
}

func clonePosition(p *models.Position) *models.Position {
	if p == nil {
		return nil
	}

	cloned := *p

	return &cloned
}

func cloneNode(n *models.MeshNode) *models.MeshNode {
	if n == nil {
		return nil
	}

	cloned := *n
	cloned.User = cloneUser(n.User)
	cloned.Position = clonePosition(n.Position)

	return &cloned
}

func cloneWaypoint(w *models.NormalizedWaypoint) *models.NormalizedWaypoint {
	if w == nil {
		return nil
	}

	cloned := *w

	return &cloned
}

func cloneChannel(c *models.MeshChannel) *models.MeshChannel {
	if c == nil {
		return nil
	}

	cloned := *c
	cloned.Messages = make([]models.ChannelMessage, len(c.Messages))
	copy(cloned.Messages, c.Messages)

	return &cloned
}

func cloneDevice(d *models.MeshDevice) *models.MeshDevice {
	cloned := *d
	cloned.User = cloneUser(d.User)
	cloned.Position = clonePosition(d.Position)

	cloned.Nodes = make(map[uint32]*models.MeshNode, len(d.Nodes))
	for num, node := range d.Nodes {
		cloned.Nodes[num] = cloneNode(node)
	}

	cloned.Channels = make(map[int32]*models.MeshChannel, len(d.Channels))
	for index, channel := range d.Channels {
		cloned.Channels[index] = cloneChannel(channel)
	}

	cloned.Waypoints = make(map[uint32]*models.NormalizedWaypoint, len(d.Waypoints))
	for id, waypoint := range d.Waypoints {
		cloned.Waypoints[id] = cloneWaypoint(waypoint)
	}

	cloned.Messages = make(map[int32][]models.ChannelMessage, len(d.Messages))
	for index, messages := range d.Messages {
		copied := make([]models.ChannelMessage, len(messages))
		copy(copied, messages)
		cloned.Messages[index] = copied
	}

	return &cloned
}

func cloneGraph(g *models.GraphSnapshot) *models.GraphSnapshot {
	cloned := &models.GraphSnapshot{
		EdgeProperty: g.EdgeProperty,
		Nodes:        make([]models.GraphNode, len(g.Nodes)),
		Edges:        make([]models.GraphEdge, len(g.Edges)),
	}

	copy(cloned.Nodes, g.Nodes)
	copy(cloned.Edges, g.Edges)

	return cloned
}

func cloneDiffusion(d models.DiffusionCentrality) models.DiffusionCentrality {
	if d == nil {
		return nil
	}

	out := make(models.DiffusionCentrality, len(d))
	for a, inner := range d {
		copiedInner := make(map[uint32]map[uint32]float64, len(inner))
		for b, scores := range inner {
			copiedScores := make(map[uint32]float64, len(scores))
			for c, score := range scores {
				copiedScores[c] = score
			}
			copiedInner[b] = copiedScores
		}
		out[a] = copiedInner
	}

	return out
}

func cloneAlgorithmResults(r *models.AlgorithmResults) *models.AlgorithmResults {
	cloned := &models.AlgorithmResults{
		Diffusion: cloneDiffusion(r.Diffusion),
	}

	if r.ArticulationPoints != nil {
		cloned.ArticulationPoints = make([]uint32, len(r.ArticulationPoints))
		copy(cloned.ArticulationPoints, r.ArticulationPoints)
	}

	if r.Mincut != nil {
		cloned.Mincut = make([][2]uint32, len(r.Mincut))
		copy(cloned.Mincut, r.Mincut)
	}

	if r.MostSimilarTimeline != nil {
		cloned.MostSimilarTimeline = make([]uint32, len(r.MostSimilarTimeline))
		copy(cloned.MostSimilarTimeline, r.MostSimilarTimeline)
	}

	if r.PredictedState != nil {
		cloned.PredictedState = make([]models.GraphEdge, len(r.PredictedState))
		copy(cloned.PredictedState, r.PredictedState)
	}

	return cloned
}
