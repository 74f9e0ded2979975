package entities

import (
	logger "github.com/sirupsen/logrus"
)

// visitState tracks a node during one ResolveDependencies call.
type visitState int

const (
	unvisited visitState = iota
	inProgress
	resolvedRequired
	resolvedNotRequired
)

// DependencyGraph is the assembly reference graph built from project descriptors.
// Nodes keep the order in which the descriptors were scanned.
type DependencyGraph struct {
	nodes []AssemblyDescriptor
	index map[string]int
}

// NewDependencyGraph builds a graph keyed by assembly name. When two
// descriptors declare the same name the first one wins.
func NewDependencyGraph(descriptors []AssemblyDescriptor) *DependencyGraph {
	graph := &DependencyGraph{
		nodes: make([]AssemblyDescriptor, 0, len(descriptors)),
		index: make(map[string]int, len(descriptors)),
	}
	for _, descriptor := range descriptors {
		if _, exists := graph.index[descriptor.Name]; exists {
			logger.Warnf("Duplicate assembly %q ignored", descriptor.Name)
			continue
		}
		graph.index[descriptor.Name] = len(graph.nodes)
		graph.nodes = append(graph.nodes, descriptor)
	}
	return graph
}

// Len returns the number of assemblies in the graph.
func (g *DependencyGraph) Len() int {
	return len(g.nodes)
}

// Assemblies returns the graph nodes in scan order.
func (g *DependencyGraph) Assemblies() []AssemblyDescriptor {
	return g.nodes
}

// Lookup returns the descriptor registered under name.
func (g *DependencyGraph) Lookup(name string) (AssemblyDescriptor, bool) {
	i, ok := g.index[name]
	if !ok {
		return AssemblyDescriptor{}, false
	}
	return g.nodes[i], true
}

// ResolveDependencies returns every assembly that is one of targets or
// references one of them, directly or transitively, as "name+extension".
//
// References to assemblies outside the graph are leaves and never propagate.
// A node is marked in progress before its references are followed, so a
// reference cycle terminates: re-entering a node that is still in progress
// counts as "not required" for that path.
func (g *DependencyGraph) ResolveDependencies(targets []string) ReleaseTargetSet {
	wanted := make(map[string]struct{}, len(targets))
	for _, target := range targets {
		wanted[target] = struct{}{}
	}

	states := make(map[string]visitState, len(g.nodes))
	result := ReleaseTargetSet{}
	for _, node := range g.nodes {
		if g.needsRelease(node.Name, wanted, states) {
			result = append(result, node.FileName())
		}
	}
	return result
}

func (g *DependencyGraph) needsRelease(
	name string,
	wanted map[string]struct{},
	states map[string]visitState,
) bool {
	switch states[name] {
	case resolvedRequired:
		return true
	case inProgress, resolvedNotRequired:
		return false
	case unvisited:
	}

	states[name] = inProgress

	if _, ok := wanted[name]; ok {
		logger.Debugf("%s is a release target", name)
		states[name] = resolvedRequired
		return true
	}

	node := g.nodes[g.index[name]]
	for _, ref := range node.References {
		if _, known := g.index[ref]; !known {
			continue // external assembly, e.g. a framework library
		}
		if g.needsRelease(ref, wanted, states) {
			logger.Debugf("%s references %s and must be released", name, ref)
			states[name] = resolvedRequired
			return true
		}
	}

	states[name] = resolvedNotRequired
	return false
}
