package aggregates

// ViewNode is a display-ready graph node
type ViewNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

// ViewEdge is a display-ready graph edge
type ViewEdge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label"`
}

// EdgeID derives a deterministic edge identifier. The discriminator separates
// parallel relations of different kinds between the same pair of nodes.
func EdgeID(source, target, discriminator string) string {
	id := source + "->" + target
	if discriminator != "" {
		id += "#" + discriminator
	}
	return id
}

// NodeLabel renders the two-line label shown by the front-end: the display name, then the id
func NodeLabel(displayName, id string) string {
	return displayName + "\n(" + id + ")"
}

// NodeRegistry deduplicates view nodes by entity identifier for the lifetime of one request.
//
// Put is first-writer-wins: once an id is registered, later calls are no-ops even when
// they carry a different label or type. Callers register seed entities before
// secondary ones so the seed's labeling is the one that sticks.
type NodeRegistry struct {
	index map[string]int
	nodes []ViewNode
}

// NewNodeRegistry creates an empty registry
func NewNodeRegistry() *NodeRegistry {
	return &NodeRegistry{index: make(map[string]int)}
}

// Put registers a node if its id is not present yet and reports whether it was inserted.
// Empty ids are ignored.
func (r *NodeRegistry) Put(id, label, nodeType string) bool {
	if id == "" {
		return false
	}
	if _, exists := r.index[id]; exists {
		return false
	}
	r.index[id] = len(r.nodes)
	r.nodes = append(r.nodes, ViewNode{ID: id, Label: label, Type: nodeType})
	return true
}

// Len returns the number of registered nodes
func (r *NodeRegistry) Len() int {
	return len(r.nodes)
}

// Nodes returns the registered nodes in insertion order
func (r *NodeRegistry) Nodes() []ViewNode {
	out := make([]ViewNode, len(r.nodes))
	copy(out, r.nodes)
	return out
}

// EdgeList accumulates view edges, dropping repeats of an edge id
type EdgeList struct {
	seen  map[string]struct{}
	edges []ViewEdge
}

// NewEdgeList creates an empty edge list
func NewEdgeList() *EdgeList {
	return &EdgeList{seen: make(map[string]struct{})}
}

// Add appends the edge unless an edge with the same id was already added
func (l *EdgeList) Add(edge ViewEdge) bool {
	if _, exists := l.seen[edge.ID]; exists {
		return false
	}
	l.seen[edge.ID] = struct{}{}
	l.edges = append(l.edges, edge)
	return true
}

// Len returns the number of edges
func (l *EdgeList) Len() int {
	return len(l.edges)
}

// Edges returns the edges in insertion order
func (l *EdgeList) Edges() []ViewEdge {
	out := make([]ViewEdge, len(l.edges))
	copy(out, l.edges)
	return out
}

// GraphView is the node set plus edge set of one rendered view
type GraphView struct {
	Nodes []ViewNode
	Edges []ViewEdge
}

// NewGraphView snapshots a registry and an edge list
func NewGraphView(nodes *NodeRegistry, edges *EdgeList) GraphView {
	return GraphView{Nodes: nodes.Nodes(), Edges: edges.Edges()}
}

// CytoscapeNode wraps a node as a Cytoscape element
type CytoscapeNode struct {
	Data ViewNode `json:"data"`
}

// CytoscapeEdge wraps an edge as a Cytoscape element
type CytoscapeEdge struct {
	Data ViewEdge `json:"data"`
}

// CytoscapeGraph is the wire shape of ownership and governance views
type CytoscapeGraph struct {
	Nodes []CytoscapeNode `json:"nodes"`
	Edges []CytoscapeEdge `json:"edges"`
}

// Cytoscape converts the view to Cytoscape elements; empty lists encode as []
func (g GraphView) Cytoscape() CytoscapeGraph {
	out := CytoscapeGraph{
		Nodes: make([]CytoscapeNode, 0, len(g.Nodes)),
		Edges: make([]CytoscapeEdge, 0, len(g.Edges)),
	}
	for _, n := range g.Nodes {
		out.Nodes = append(out.Nodes, CytoscapeNode{Data: n})
	}
	for _, e := range g.Edges {
		out.Edges = append(out.Edges, CytoscapeEdge{Data: e})
	}
	return out
}
