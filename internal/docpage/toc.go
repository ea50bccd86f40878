package docpage

// TOCNode is a heading with its nested subheadings.
type TOCNode struct {
	Value    string
	ID       string
	Level    int
	Children []*TOCNode
}

// NestTOC turns a flat heading list into a tree by level. A heading becomes a
// child of the closest preceding heading with a smaller level.
func NestTOC(items []TOCItem) []*TOCNode {
	var roots []*TOCNode
	var stack []*TOCNode
	for _, item := range items {
		node := &TOCNode{Value: item.Value, ID: item.ID, Level: item.Level}
		for len(stack) > 0 && stack[len(stack)-1].Level >= item.Level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			roots = append(roots, node)
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, node)
		}
		stack = append(stack, node)
	}
	return roots
}
