package category

import (
	"github.com/google/uuid"
	"github.com/rohit/cms-editorial/internal/domain/models"
)

// Node is a category with its children resolved
type Node struct {
	models.Category
	Children []*Node `json:"children"`
}

// Build assembles a forest from a flat list. Sibling order follows input
// order. A node whose parent is absent or not in the list becomes a root.
// Nodes on a parent cycle, including a node that is its own parent, are never
// reachable from a root and are not returned.
func Build(categories []*models.Category) []*Node {
	nodes := make(map[uuid.UUID]*Node, len(categories))
	for _, c := range categories {
		nodes[c.ID] = &Node{Category: *c, Children: []*Node{}}
	}

	roots := []*Node{}
	for _, c := range categories {
		node := nodes[c.ID]
		if c.ParentID != nil {
			if parent, ok := nodes[*c.ParentID]; ok {
				// a self-parented node is a one-element cycle
				if parent != node {
					parent.Children = append(parent.Children, node)
				}
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}
