package models

// EdgeProperty declares whether a topology snapshot's edges are directed.
type EdgeProperty string

const (
	EdgeDirected   EdgeProperty = "directed"
	EdgeUndirected EdgeProperty = "undirected"
)

// GraphNode is one mesh node in a topology snapshot.
type GraphNode struct {
	Num       uint32  `json:"num"`
	Name      string  `json:"name,omitempty"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
	Weight    float64 `json:"optimalWeightedDegree,omitempty"`
}

// GraphEdge is a radio link between two nodes in a topology snapshot.
type GraphEdge struct {
	From   uint32  `json:"from"`
	To     uint32  `json:"to"`
	Weight float64 `json:"weight"`
}

// GraphSnapshot is a complete replacement value of the mesh topology.
// Snapshots are never patched incrementally; a newer snapshot always
// supersedes the whole previous one.
type GraphSnapshot struct {
	Nodes        []GraphNode  `json:"nodes"`
	Edges        []GraphEdge  `json:"edges"`
	EdgeProperty EdgeProperty `json:"edge_property"`
}

// AlgorithmFlags selects which graph algorithms a run should compute.
type AlgorithmFlags struct {
	ArticulationPoint   bool `json:"articulationPoint,omitempty"`
	DiffusionCentrality bool `json:"diffusionCentrality,omitempty"`
	GlobalMincut        bool `json:"globalMincut,omitempty"`
	MostSimilarTimeline bool `json:"mostSimilarTimeline,omitempty"`
	PredictedState      bool `json:"predictedState,omitempty"`
}

// DiffusionCentrality maps node -> node -> node -> score, keyed the way
// the backend reports it.
type DiffusionCentrality map[uint32]map[uint32]map[uint32]float64

// AlgorithmResults carries the outputs of one algorithm run. Only the
// fields selected by the run's flags are populated; nil means the
// algorithm was not requested.
type AlgorithmResults struct {
	ArticulationPoints  []uint32            `json:"apResult,omitempty"`
	Mincut              [][2]uint32         `json:"mincutResult,omitempty"`
	Diffusion           DiffusionCentrality `json:"diffcenResult,omitempty"`
	MostSimilarTimeline []uint32            `json:"mostSimTimelineResult,omitempty"`
	PredictedState      []GraphEdge         `json:"predictedStateResult,omitempty"`
}
