package dependency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func chain(ids ...NodeID) *Graph {
	g := New()
	for i, id := range ids {
		n := Node{ID: id}
		if i > 0 {
			n.DependsOn = []NodeID{ids[i-1]}
		}
		g.AddNode(n)
	}
	return g
}

func TestNew(t *testing.T) {
	g := New()
	assert.NotNil(t, g)
	assert.Equal(t, 0, g.Len())
}

func TestAddNode_ReplaceKeepsOrder(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "a"})
	g.AddNode(Node{ID: "b", DependsOn: []NodeID{"a"}})
	g.AddNode(Node{ID: "a", DependsOn: []NodeID{"c"}})

	assert.Equal(t, 2, g.Len())
	assert.Equal(t, []NodeID{"c"}, g.Dependencies("a"))
	assert.Equal(t, []NodeID{"b"}, g.Dependents("a"))
}

func TestAddNode_CopiesInput(t *testing.T) {
	deps := []NodeID{"a"}
	g := New()
	g.AddNode(Node{ID: "b", DependsOn: deps})
	deps[0] = "changed"

	assert.Equal(t, []NodeID{"a"}, g.Dependencies("b"))

	got := g.Dependencies("b")
	got[0] = "mutated"
	assert.Equal(t, []NodeID{"a"}, g.Dependencies("b"))
}

func TestGet(t *testing.T) {
	g := chain("a", "b")
	assert.Equal(t, NodeID("b"), g.Get("b").ID)
	assert.Nil(t, g.Get("missing"))
	assert.Nil(t, g.Dependencies("missing"))
}

func TestMissing(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "a"})
	g.AddNode(Node{ID: "b", DependsOn: []NodeID{"a", "ghost", "phantom"}})

	assert.Equal(t, []NodeID{"ghost", "phantom"}, g.Missing("b"))
	assert.Empty(t, g.Missing("a"))
}

func TestDependents(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "core"})
	g.AddNode(Node{ID: "zeta", DependsOn: []NodeID{"core"}})
	g.AddNode(Node{ID: "alpha", DependsOn: []NodeID{"core"}})
	g.AddNode(Node{ID: "other"})

	assert.Equal(t, []NodeID{"zeta", "alpha"}, g.Dependents("core"))
	assert.Empty(t, g.Dependents("other"))
}

func TestTransitiveDependents(t *testing.T) {
	g := chain("a", "b", "c", "d")
	g.AddNode(Node{ID: "e", DependsOn: []NodeID{"b"}})

	assert.Equal(t, []NodeID{"b", "c", "e", "d"}, g.TransitiveDependents("a"))
	assert.Equal(t, []NodeID{"d"}, g.TransitiveDependents("c"))
	assert.Empty(t, g.TransitiveDependents("d"))
}

func TestTransitiveDependents_Cycle(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "a", DependsOn: []NodeID{"b"}})
	g.AddNode(Node{ID: "b", DependsOn: []NodeID{"a"}})

	assert.Equal(t, []NodeID{"b"}, g.TransitiveDependents("a"))
}

func TestCyclic(t *testing.T) {
	tests := []struct {
		name  string
		nodes []Node
		want  []NodeID
	}{
		{
			name:  "acyclic",
			nodes: []Node{{ID: "a"}, {ID: "b", DependsOn: []NodeID{"a"}}},
			want:  nil,
		},
		{
			name:  "self",
			nodes: []Node{{ID: "a", DependsOn: []NodeID{"a"}}, {ID: "b"}},
			want:  []NodeID{"a"},
		},
		{
			name: "three node cycle with tail",
			nodes: []Node{
				{ID: "tail", DependsOn: []NodeID{"x"}},
				{ID: "x", DependsOn: []NodeID{"y"}},
				{ID: "y", DependsOn: []NodeID{"z"}},
				{ID: "z", DependsOn: []NodeID{"x"}},
			},
			want: []NodeID{"x", "y", "z"},
		},
		{
			name:  "missing dependency is ignored",
			nodes: []Node{{ID: "a", DependsOn: []NodeID{"ghost"}}},
			want:  nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			for _, n := range tt.nodes {
				g.AddNode(n)
			}
			assert.Equal(t, tt.want, g.Cyclic())
		})
	}
}
