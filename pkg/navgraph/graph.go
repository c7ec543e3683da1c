// Package navgraph builds visibility graphs around buffered polygonal
// obstacles and searches them for shortest paths.
package navgraph

import (
	"sort"

	"github.com/lao-tseu-is-alive/go-obstacle-navigation/pkg/geometry"
	golog "github.com/tochemey/goakt/v3/log"
)

// NodeKind tells corner nodes, generated from obstacles, from query nodes
// inserted for a path request.
type NodeKind uint8

const (
	KindCorner NodeKind = iota
	KindQuery
)

func (k NodeKind) String() string {
	if k == KindQuery {
		return "query"
	}
	return "corner"
}

// InsidePolicy decides what Connect does with a point lying strictly inside
// a buffered obstacle.
type InsidePolicy uint8

const (
	// PolicySnap moves the point to the nearest outline point that no
	// buffered obstacle covers, then a few Epsilon further out.
	PolicySnap InsidePolicy = iota
	// PolicyReject inserts the node without any edge, so no path reaches it.
	PolicyReject
)

// Node is a graph vertex. Corner nodes live as long as the graph; query
// nodes are transient.
type Node struct {
	ID   int
	Pos  geometry.Vector2D
	Kind NodeKind

	// Obstacle is the index of the obstacle a corner node was generated
	// from, -1 for query nodes.
	Obstacle int

	// Requested is the point given to Connect; it differs from Pos when the
	// node was snapped out of an obstacle.
	Requested geometry.Vector2D
	Snapped   bool
	Rejected  bool
}

// Edge is one direction of an undirected connection.
type Edge struct {
	From   *Node
	To     *Node
	Weight float64
}

// Option configures a Graph.
type Option func(*Graph)

// WithInsidePolicy sets how query points inside obstacles are handled.
func WithInsidePolicy(p InsidePolicy) Option {
	return func(g *Graph) {
		g.policy = p
	}
}

// WithLogger routes build warnings to logger.
func WithLogger(logger golog.Logger) Option {
	return func(g *Graph) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// Graph is a visibility graph: an edge joins two nodes iff the straight
// segment between them does not pass through any buffered obstacle.
type Graph struct {
	obstacles []geometry.Polygon
	radius    float64

	nodes  []*Node
	byID   map[int]*Node
	adj    map[int][]Edge
	nextID int

	policy InsidePolicy
	logger golog.Logger
}

func newGraph(radius float64, opts ...Option) *Graph {
	g := &Graph{
		radius: radius,
		byID:   make(map[int]*Node),
		adj:    make(map[int][]Edge),
		logger: golog.DiscardLogger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Build buffers every obstacle outward by bufferRadius, adds one corner node
// per buffered vertex and connects every pair of mutually visible nodes.
// Degenerate obstacles are skipped. With no obstacles the graph is empty and
// any two query nodes connect directly.
func Build(obstacles []geometry.Polygon, bufferRadius float64, opts ...Option) *Graph {
	if bufferRadius < 0 {
		bufferRadius = 0
	}
	g := newGraph(bufferRadius, opts...)

	sources := make([]int, 0, len(obstacles))
	for i, o := range obstacles {
		if o.Len() < 3 {
			g.logger.Warnf("navgraph: skipping degenerate obstacle %d", i)
			continue
		}
		g.obstacles = append(g.obstacles, o.Buffer(bufferRadius))
		sources = append(sources, i)
	}

	for k, b := range g.obstacles {
		for _, v := range b.Points() {
			if g.insideOther(v, k) {
				continue
			}
			if g.findCorner(v) != nil {
				continue
			}
			g.addNode(&Node{Pos: v, Requested: v, Kind: KindCorner, Obstacle: sources[k]})
		}
	}

	for i, a := range g.nodes {
		for _, b := range g.nodes[i+1:] {
			if g.Visible(a.Pos, b.Pos) {
				g.link(a, b)
			}
		}
	}

	g.logger.Debugf("navgraph: built %d nodes, %d edges from %d obstacles", len(g.nodes), len(g.Edges()), len(g.obstacles))
	return g
}

// BuildFromRects is Build for rectangular scene bounds. Empty rectangles are
// skipped.
func BuildFromRects(rects []geometry.Rect, bufferRadius float64, opts ...Option) *Graph {
	obstacles := make([]geometry.Polygon, 0, len(rects))
	for _, r := range rects {
		p, err := r.Polygon()
		if err != nil {
			obstacles = append(obstacles, geometry.Polygon{})
			continue
		}
		obstacles = append(obstacles, p)
	}
	return Build(obstacles, bufferRadius, opts...)
}

// Connect inserts a query node at p and links it to every node it can see.
func (g *Graph) Connect(p geometry.Vector2D) *Node {
	n := &Node{Pos: p, Requested: p, Kind: KindQuery, Obstacle: -1}

	if k := g.containing(p); k >= 0 {
		switch g.policy {
		case PolicyReject:
			n.Rejected = true
			g.addNode(n)
			g.logger.Debugf("navgraph: rejected query point %s inside obstacle %d", p, k)
			return n
		default:
			q, ok := g.escape(p)
			if !ok {
				n.Rejected = true
				g.addNode(n)
				g.logger.Warnf("navgraph: no free point around %s inside obstacle %d", p, k)
				return n
			}
			n.Pos = q
			n.Snapped = true
			g.logger.Debugf("navgraph: snapped query point %s to %s", p, n.Pos)
		}
	}

	g.addNode(n)
	for _, other := range g.nodes {
		if other == n || other.Rejected {
			continue
		}
		if g.Visible(n.Pos, other.Pos) {
			g.link(n, other)
		}
	}
	return n
}

// Disconnect removes a query node and its edges. Corner nodes are never
// removed; it reports whether n was removed.
func (g *Graph) Disconnect(n *Node) bool {
	if n == nil || n.Kind != KindQuery || g.byID[n.ID] != n {
		return false
	}
	for _, e := range g.adj[n.ID] {
		g.unlink(e.To, n)
	}
	delete(g.adj, n.ID)
	delete(g.byID, n.ID)
	for i, m := range g.nodes {
		if m == n {
			g.nodes = append(g.nodes[:i], g.nodes[i+1:]...)
			break
		}
	}
	return true
}

// Visible reports whether the segment a-b avoids every buffered obstacle.
func (g *Graph) Visible(a, b geometry.Vector2D) bool {
	s := geometry.NewSegment(a, b)
	for _, o := range g.obstacles {
		if o.BlocksSegment(s) {
			return false
		}
	}
	return true
}

// Nodes returns the nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	return append([]*Node(nil), g.nodes...)
}

// Node returns the node with the given id.
func (g *Graph) Node(id int) (*Node, bool) {
	n, ok := g.byID[id]
	return n, ok
}

// Neighbors returns the edges leaving n in the order they were added.
func (g *Graph) Neighbors(n *Node) []Edge {
	if n == nil {
		return nil
	}
	return append([]Edge(nil), g.adj[n.ID]...)
}

// Edges returns every undirected edge once, From having the lower id.
func (g *Graph) Edges() []Edge {
	var out []Edge
	for _, n := range g.nodes {
		for _, e := range g.adj[n.ID] {
			if e.From.ID < e.To.ID {
				out = append(out, e)
			}
		}
	}
	return out
}

// Obstacles returns the buffered obstacles.
func (g *Graph) Obstacles() []geometry.Polygon {
	return append([]geometry.Polygon(nil), g.obstacles...)
}

// BufferRadius returns the radius obstacles were grown by.
func (g *Graph) BufferRadius() float64 {
	return g.radius
}

func (g *Graph) addNode(n *Node) {
	g.nextID++
	n.ID = g.nextID
	g.nodes = append(g.nodes, n)
	g.byID[n.ID] = n
}

func (g *Graph) link(a, b *Node) {
	w := a.Pos.DistanceTo(b.Pos)
	g.adj[a.ID] = append(g.adj[a.ID], Edge{From: a, To: b, Weight: w})
	g.adj[b.ID] = append(g.adj[b.ID], Edge{From: b, To: a, Weight: w})
}

func (g *Graph) unlink(from, to *Node) {
	edges := g.adj[from.ID]
	for i, e := range edges {
		if e.To == to {
			g.adj[from.ID] = append(edges[:i], edges[i+1:]...)
			return
		}
	}
}

// findCorner returns the corner node at v, if any.
func (g *Graph) findCorner(v geometry.Vector2D) *Node {
	for _, n := range g.nodes {
		if n.Kind == KindCorner && n.Pos.Eq(v) {
			return n
		}
	}
	return nil
}

// insideOther reports whether v is strictly inside a buffered obstacle other
// than skip. Such corners can never be reached.
func (g *Graph) insideOther(v geometry.Vector2D, skip int) bool {
	for k, o := range g.obstacles {
		if k != skip && o.ContainsStrict(v) {
			return true
		}
	}
	return false
}

// snapPush is how far a snapped point is moved past the outline it was
// projected on.
const snapPush = 8 * geometry.Epsilon

// escape finds the point nearest to p on the outline of the buffered
// obstacles that no obstacle covers. Overlapping buffers hide part of each
// other's outline, so besides the projections onto every edge the corners
// where two outlines cross are candidates too.
func (g *Graph) escape(p geometry.Vector2D) (geometry.Vector2D, bool) {
	var candidates []geometry.Vector2D
	for k, o := range g.obstacles {
		for _, e := range o.Edges() {
			candidates = append(candidates, e.ClosestPoint(p), e.A)
			for _, other := range g.obstacles[k+1:] {
				for _, f := range other.Edges() {
					if x, ok := e.Intersection(f); ok {
						candidates = append(candidates, x)
					}
				}
			}
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].DistanceSquaredTo(p) < candidates[j].DistanceSquaredTo(p)
	})

	for _, c := range candidates {
		out := c.Sub(p).Normalize()
		if out.IsZero() {
			continue
		}
		q := c.Add(out.Mul(snapPush))
		if g.containing(q) < 0 {
			return q, true
		}
	}
	return p, false
}

// containing returns the index of the first buffered obstacle strictly
// containing p, or -1.
func (g *Graph) containing(p geometry.Vector2D) int {
	for k, o := range g.obstacles {
		if o.ContainsStrict(p) {
			return k
		}
	}
	return -1
}
