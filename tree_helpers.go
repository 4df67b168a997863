package deepstack

// IsLeaf returns true if this node has no children in the tree.
// Note that a chance node at the end of a street-limited tree is a leaf
// but not Terminal().
func IsLeaf(node PublicNode) bool {
	return node.NumChildren() == 0
}

// Visit calls visitor on every node of the tree in depth-first preorder.
func Visit(root PublicNode, visitor func(node PublicNode)) {
	visitor(root)
	for i := 0; i < root.NumChildren(); i++ {
		child := root.GetChild(i)
		Visit(child, visitor)
	}
}

func CountNodes(root PublicNode) int {
	total := 0
	Visit(root, func(node PublicNode) { total++ })
	return total
}

func CountTerminalNodes(root PublicNode) int {
	total := 0
	Visit(root, func(node PublicNode) {
		if node.Terminal() {
			total++
		}
	})

	return total
}

// Layers groups the nodes of the tree by depth, breadth first.
// Children of terminal nodes are not expanded.
func Layers(root PublicNode) [][]PublicNode {
	var result [][]PublicNode
	layer := []PublicNode{root}
	for len(layer) > 0 {
		result = append(result, layer)
		var next []PublicNode
		for _, node := range layer {
			if node.Terminal() {
				continue
			}

			for i := 0; i < node.NumChildren(); i++ {
				next = append(next, node.GetChild(i))
			}
		}

		layer = next
	}

	return result
}
