package dependency

import (
	"slices"
)

// NodeID is the unique identifier for a node, the plugin name.
type NodeID string

// Node is a plugin together with the plugins it requires.
type Node struct {
	ID        NodeID
	DependsOn []NodeID
}

// Graph answers requirement queries. Nodes are kept in insertion order so
// every query result is deterministic.
type Graph struct {
	nodes map[NodeID]*Node
	order []NodeID
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{nodes: make(map[NodeID]*Node)}
}

// AddNode adds (or replaces) a node in the graph.
func (g *Graph) AddNode(n Node) {
	if g.nodes == nil {
		g.nodes = make(map[NodeID]*Node)
	}
	if _, exists := g.nodes[n.ID]; !exists {
		g.order = append(g.order, n.ID)
	}
	copied := n
	copied.DependsOn = slices.Clone(n.DependsOn)
	g.nodes[n.ID] = &copied
}

// Get returns the stored node or nil if it does not exist.
func (g *Graph) Get(id NodeID) *Node {
	return g.nodes[id]
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Dependencies returns the immediate requirements of id.
func (g *Graph) Dependencies(id NodeID) []NodeID {
	if n, ok := g.nodes[id]; ok {
		return slices.Clone(n.DependsOn)
	}
	return nil
}

// Missing returns the requirements of id that are not nodes of the graph.
func (g *Graph) Missing(id NodeID) []NodeID {
	var missing []NodeID
	for _, dep := range g.Dependencies(id) {
		if _, ok := g.nodes[dep]; !ok {
			missing = append(missing, dep)
		}
	}
	return missing
}

// Dependents returns the nodes that directly require id, in insertion order.
func (g *Graph) Dependents(id NodeID) []NodeID {
	var res []NodeID
	for _, nid := range g.order {
		if slices.Contains(g.nodes[nid].DependsOn, id) {
			res = append(res, nid)
		}
	}
	return res
}

// TransitiveDependents returns every node that requires id directly or
// through other nodes, breadth first. id itself is never included.
func (g *Graph) TransitiveDependents(id NodeID) []NodeID {
	seen := map[NodeID]bool{id: true}
	queue := []NodeID{id}
	var res []NodeID
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, dep := range g.Dependents(current) {
			if seen[dep] {
				continue
			}
			seen[dep] = true
			res = append(res, dep)
			queue = append(queue, dep)
		}
	}
	return res
}

// Cyclic returns the nodes that lie on a requirement cycle, in insertion
// order.
func (g *Graph) Cyclic() []NodeID {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[NodeID]int, len(g.nodes))
	onCycle := make(map[NodeID]bool)
	var stack []NodeID

	var visit func(id NodeID)
	visit = func(id NodeID) {
		state[id] = visiting
		stack = append(stack, id)
		for _, dep := range g.nodes[id].DependsOn {
			if _, ok := g.nodes[dep]; !ok {
				continue
			}
			switch state[dep] {
			case unvisited:
				visit(dep)
			case visiting:
				for i := len(stack) - 1; i >= 0; i-- {
					onCycle[stack[i]] = true
					if stack[i] == dep {
						break
					}
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[id] = done
	}

	for _, id := range g.order {
		if state[id] == unvisited {
			visit(id)
		}
	}

	var res []NodeID
	for _, id := range g.order {
		if onCycle[id] {
			res = append(res, id)
		}
	}
	return res
}
