// Package commands contains the core logic for data collection for each command.
package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/ctxtree/internal/ignore"
	"github.com/temirov/ctxtree/internal/imports"
	"github.com/temirov/ctxtree/internal/types"
	"github.com/temirov/ctxtree/internal/utils"
)

const (
	// logMessageSkipDirectory is used when a directory cannot be enumerated.
	logMessageSkipDirectory = "treating unreadable directory as empty"
	// logMessageIgnoredDirectory is used when a rule stops descent into a directory.
	logMessageIgnoredDirectory = "ignoring directory"

	// errorAbsolutePathFormat is used when the absolute path cannot be determined.
	errorAbsolutePathFormat = "getting absolute path for %s: %w"
	// errorRootNotDirectoryFormat is used when the root path is not a directory.
	errorRootNotDirectoryFormat = "%s is not a directory"
	// errorStatRootFormat is used when the root path cannot be inspected.
	errorStatRootFormat = "inspecting %s: %w"
)

// TreeBuilder walks a repository and assembles annotated tree nodes.
// The zero value lists every entry without ignore rules or import annotations.
type TreeBuilder struct {
	Matcher                ignore.Matcher
	Extractor              *imports.Extractor
	IgnoreDisabled         bool
	ImportTrackingDisabled bool
	// Concurrency bounds how many top-level subdirectories are walked at once; values below two walk sequentially.
	Concurrency int
	Logger      *zap.Logger
}

// GetTreeData builds the root node for rootDirectoryPath with its walked children.
func (treeBuilder *TreeBuilder) GetTreeData(ctx context.Context, rootDirectoryPath string) (*types.TreeNode, error) {
	absoluteRootDirPath, absolutePathError := filepath.Abs(rootDirectoryPath)
	if absolutePathError != nil {
		return nil, fmt.Errorf(errorAbsolutePathFormat, rootDirectoryPath, absolutePathError)
	}
	rootInfo, rootStatError := os.Stat(absoluteRootDirPath)
	if rootStatError != nil {
		return nil, fmt.Errorf(errorStatRootFormat, absoluteRootDirPath, rootStatError)
	}
	if !rootInfo.IsDir() {
		return nil, fmt.Errorf(errorRootNotDirectoryFormat, absoluteRootDirPath)
	}

	children, walkError := treeBuilder.Walk(ctx, absoluteRootDirPath)
	if walkError != nil {
		return nil, walkError
	}
	return &types.TreeNode{
		Name:        filepath.Base(absoluteRootDirPath),
		Path:        ".",
		IsDirectory: true,
		Children:    children,
	}, nil
}

// Walk returns the annotated children of rootDirectoryPath sorted by name.
// Unreadable directories contribute no children; the only error is context cancellation.
func (treeBuilder *TreeBuilder) Walk(ctx context.Context, rootDirectoryPath string) ([]*types.TreeNode, error) {
	if treeBuilder.Concurrency < 2 {
		return treeBuilder.buildTreeNodes(ctx, rootDirectoryPath, "")
	}
	return treeBuilder.buildTreeNodesConcurrently(ctx, rootDirectoryPath)
}

// buildTreeNodes recursively builds child nodes for the directory tree.
func (treeBuilder *TreeBuilder) buildTreeNodes(ctx context.Context, currentDirectoryPath string, relativeDirectoryPath string) ([]*types.TreeNode, error) {
	if contextError := ctx.Err(); contextError != nil {
		return nil, contextError
	}
	nodes := treeBuilder.listEntries(currentDirectoryPath, relativeDirectoryPath)
	for _, node := range nodes {
		if !node.IsDirectory || node.IsIgnored {
			continue
		}
		childNodes, buildError := treeBuilder.buildTreeNodes(ctx, filepath.Join(currentDirectoryPath, node.Name), node.Path)
		if buildError != nil {
			return nil, buildError
		}
		node.Children = childNodes
	}
	return nodes, nil
}

// buildTreeNodesConcurrently walks each top-level subdirectory in its own goroutine.
// Every subtree writes only to its own node, so the enumeration order is preserved.
func (treeBuilder *TreeBuilder) buildTreeNodesConcurrently(ctx context.Context, rootDirectoryPath string) ([]*types.TreeNode, error) {
	nodes := treeBuilder.listEntries(rootDirectoryPath, "")
	group, groupContext := errgroup.WithContext(ctx)
	group.SetLimit(treeBuilder.Concurrency)
	for _, node := range nodes {
		if !node.IsDirectory || node.IsIgnored {
			continue
		}
		directoryNode := node
		group.Go(func() error {
			childNodes, buildError := treeBuilder.buildTreeNodes(groupContext, filepath.Join(rootDirectoryPath, directoryNode.Name), directoryNode.Path)
			if buildError != nil {
				return buildError
			}
			directoryNode.Children = childNodes
			return nil
		})
	}
	if waitError := group.Wait(); waitError != nil {
		return nil, waitError
	}
	return nodes, nil
}

// listEntries creates the nodes of one directory without descending into it.
func (treeBuilder *TreeBuilder) listEntries(currentDirectoryPath string, relativeDirectoryPath string) []*types.TreeNode {
	logger := utils.LoggerOrNop(treeBuilder.Logger)

	directoryEntries, readDirectoryError := os.ReadDir(currentDirectoryPath)
	if readDirectoryError != nil {
		logger.Debug(logMessageSkipDirectory, zap.String("path", currentDirectoryPath), zap.Error(readDirectoryError))
		return nil
	}
	sort.Slice(directoryEntries, func(leftIndex, rightIndex int) bool {
		return directoryEntries[leftIndex].Name() < directoryEntries[rightIndex].Name()
	})

	nodes := make([]*types.TreeNode, 0, len(directoryEntries))
	for _, directoryEntry := range directoryEntries {
		entryName := directoryEntry.Name()
		if entryName == utils.GitDirectoryName {
			continue
		}
		node := &types.TreeNode{
			Name:        entryName,
			Path:        utils.JoinRelativePath(relativeDirectoryPath, entryName),
			IsDirectory: directoryEntry.IsDir(),
		}

		if node.IsDirectory {
			if treeBuilder.matchIgnored(node) {
				logger.Debug(logMessageIgnoredDirectory, zap.String("path", node.Path), zap.String("annotation", node.Annotation))
			}
		} else if !treeBuilder.ImportTrackingDisabled && treeBuilder.Extractor.Supports(filepath.Ext(entryName)) {
			node.Annotation = treeBuilder.Extractor.AnnotateFile(filepath.Join(currentDirectoryPath, entryName))
		}
		nodes = append(nodes, node)
	}
	return nodes
}

// matchIgnored marks a directory node ignored when a rule matches it.
func (treeBuilder *TreeBuilder) matchIgnored(node *types.TreeNode) bool {
	if treeBuilder.IgnoreDisabled || treeBuilder.Matcher == nil {
		return false
	}
	matchResult := treeBuilder.Matcher.Match(ignore.Entry{
		Name:         node.Name,
		RelativePath: node.Path,
		IsDirectory:  true,
	})
	if !matchResult.Ignored {
		return false
	}
	node.IsIgnored = true
	node.Annotation = matchResult.Annotation
	if node.Annotation == "" {
		node.Annotation = types.IgnoredMarker
	}
	return true
}
