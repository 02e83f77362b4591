// Package dependency provides a small directed graph for plugin requirements.
//
// Each node is a plugin and each edge points from a plugin to a plugin it
// requires. The plugin manager uses the graph to refuse plugins that take
// part in a requirement cycle and to cascade a failure: when a plugin cannot
// be loaded, every plugin that requires it, directly or transitively, is not
// loaded either.
//
// # Usage Example
//
//	g := dependency.New()
//	g.AddNode(dependency.Node{ID: "core"})
//	g.AddNode(dependency.Node{ID: "ui", DependsOn: []dependency.NodeID{"core"}})
//
//	g.TransitiveDependents("core") // ["ui"]
//
// The graph is not safe for concurrent writes; callers synchronise.
package dependency
