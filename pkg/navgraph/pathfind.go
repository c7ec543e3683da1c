package navgraph

import (
	"container/heap"

	"github.com/lao-tseu-is-alive/go-obstacle-navigation/pkg/geometry"
)

// Path is an ordered list of nodes from start to goal. An empty Path means
// no route exists; callers treat it as "stay put".
type Path struct {
	nodes []*Node
}

// Empty reports whether no route was found.
func (p Path) Empty() bool {
	return len(p.nodes) == 0
}

// Len returns the number of nodes, turning waypoints included.
func (p Path) Len() int {
	return len(p.nodes)
}

// Nodes returns a copy of the node sequence.
func (p Path) Nodes() []*Node {
	return append([]*Node(nil), p.nodes...)
}

// Points returns the node positions in order.
func (p Path) Points() []geometry.Vector2D {
	pts := make([]geometry.Vector2D, len(p.nodes))
	for i, n := range p.nodes {
		pts[i] = n.Pos
	}
	return pts
}

// Length returns the summed edge weight.
func (p Path) Length() float64 {
	total := 0.0
	for i := 1; i < len(p.nodes); i++ {
		total += p.nodes[i-1].Pos.DistanceTo(p.nodes[i].Pos)
	}
	return total
}

// FindPath is the package level form of (*Graph).FindPath.
func FindPath(g *Graph, start, goal *Node) Path {
	if g == nil {
		return Path{}
	}
	return g.FindPath(start, goal)
}

// FindPath runs A* from start to goal using the straight line distance to the
// goal as heuristic. Nodes with equal priority are expanded in the order they
// were pushed, so identical inputs always give the identical path.
func (g *Graph) FindPath(start, goal *Node) Path {
	if start == nil || goal == nil || g.byID[start.ID] != start || g.byID[goal.ID] != goal {
		return Path{}
	}
	if start == goal {
		return Path{nodes: []*Node{start}}
	}

	open := &openSet{}
	heap.Init(open)

	gScore := map[int]float64{start.ID: 0}
	cameFrom := make(map[int]*Node)
	closed := make(map[int]bool)
	seq := 0

	heap.Push(open, &openItem{node: start, f: start.Pos.DistanceTo(goal.Pos), seq: seq})
	for open.Len() > 0 {
		current := heap.Pop(open).(*openItem)
		cur := current.node
		if closed[cur.ID] {
			continue
		}
		if cur == goal {
			return Path{nodes: reconstructPath(cameFrom, start, goal)}
		}
		closed[cur.ID] = true

		for _, e := range g.adj[cur.ID] {
			next := e.To
			if closed[next.ID] {
				continue
			}
			tentative := gScore[cur.ID] + e.Weight
			if prev, seen := gScore[next.ID]; seen && tentative >= prev {
				continue
			}
			gScore[next.ID] = tentative
			cameFrom[next.ID] = cur
			seq++
			heap.Push(open, &openItem{node: next, f: tentative + next.Pos.DistanceTo(goal.Pos), seq: seq})
		}
	}
	return Path{}
}

// Route connects from and to, searches, and removes both query nodes again.
func (g *Graph) Route(from, to geometry.Vector2D) Path {
	start := g.Connect(from)
	defer g.Disconnect(start)
	goal := g.Connect(to)
	defer g.Disconnect(goal)
	return g.FindPath(start, goal)
}

func reconstructPath(cameFrom map[int]*Node, start, goal *Node) []*Node {
	path := []*Node{goal}
	for cur := goal; cur != start; {
		prev, ok := cameFrom[cur.ID]
		if !ok {
			return nil
		}
		path = append(path, prev)
		cur = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

type openItem struct {
	node  *Node
	f     float64
	seq   int
	index int
}

type openSet []*openItem

func (o openSet) Len() int { return len(o) }
func (o openSet) Less(i, j int) bool {
	if o[i].f != o[j].f {
		return o[i].f < o[j].f
	}
	return o[i].seq < o[j].seq
}
func (o openSet) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].index = i
	o[j].index = j
}
func (o *openSet) Push(x any) {
	item := x.(*openItem)
	item.index = len(*o)
	*o = append(*o, item)
}
func (o *openSet) Pop() any {
	old := *o
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*o = old[:n-1]
	return item
}
