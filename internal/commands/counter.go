package commands

import "github.com/temirov/ctxtree/internal/types"

// CountTree totals the files and directories of nodes.
// An ignored directory counts once and contributes nothing below it.
func CountTree(nodes []*types.TreeNode) types.TreeCounts {
	var counts types.TreeCounts
	for _, node := range nodes {
		if node == nil {
			continue
		}
		if !node.IsDirectory {
			counts.Files++
			continue
		}
		counts.Directories++
		if !node.IsIgnored {
			counts = counts.Add(CountTree(node.Children))
		}
	}
	return counts
}
