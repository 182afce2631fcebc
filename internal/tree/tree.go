// Package tree reconstructs the nested process view from the flat relation.
package tree

import (
	"strings"

	"github.com/groblegark/procmap/internal/model"
)

// Assemble builds a forest of ProcessNode trees from a flat list of process
// records. Children preserve the relative order of the input, so callers
// must pre-sort by sibling order to get a correctly ordered tree.
//
// A record whose ParentID does not resolve to any known id is dropped from
// the output entirely; referential integrity is enforced at write time, so
// orphans only appear if the caller hands in a partial record set.
func Assemble(processes []*model.Process) []*model.ProcessNode {
	nodes := make(map[string]*model.ProcessNode, len(processes))
	for _, p := range processes {
		nodes[p.ID] = &model.ProcessNode{Process: *p, Children: []*model.ProcessNode{}}
	}

	roots := []*model.ProcessNode{}
	for _, p := range processes {
		node := nodes[p.ID]
		if p.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		if parent, ok := nodes[*p.ParentID]; ok {
			parent.Children = append(parent.Children, node)
		}
	}

	return roots
}

// Flatten walks the forest pre-order and returns the underlying process
// records. It is the inverse of Assemble for well-formed input.
func Flatten(forest []*model.ProcessNode) []*model.Process {
	var out []*model.Process
	var walk func(nodes []*model.ProcessNode)
	walk = func(nodes []*model.ProcessNode) {
		for _, n := range nodes {
			p := n.Process
			out = append(out, &p)
			walk(n.Children)
		}
	}
	walk(forest)
	return out
}

// Filter prunes the forest to nodes whose name contains query
// (case-insensitive) or that have a matching descendant. Matching nodes keep
// only their matching subtree. An empty query returns the forest unchanged.
func Filter(forest []*model.ProcessNode, query string) []*model.ProcessNode {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return forest
	}

	var filtered []*model.ProcessNode
	for _, n := range forest {
		children := Filter(n.Children, query)
		if strings.Contains(strings.ToLower(n.Name), query) || len(children) > 0 {
			clone := *n
			clone.Children = children
			filtered = append(filtered, &clone)
		}
	}
	return filtered
}
