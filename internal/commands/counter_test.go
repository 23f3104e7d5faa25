package commands_test

import (
	"context"
	"testing"

	"github.com/temirov/ctxtree/internal/commands"
	"github.com/temirov/ctxtree/internal/types"
)

// TestCountTreeFixture verifies counts with and without ignore processing.
func TestCountTreeFixture(testingHandle *testing.T) {
	rootDirectory := createFixtureRepository(testingHandle)

	testCases := []struct {
		name           string
		ignoreDisabled bool
		expected       types.TreeCounts
	}{
		{name: "rules applied", expected: types.TreeCounts{Files: 7, Directories: 4}},
		{name: "rules disabled", ignoreDisabled: true, expected: types.TreeCounts{Files: 10, Directories: 5}},
	}
	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(testingHandle *testing.T) {
			treeBuilder := newFixtureBuilder(testingHandle, rootDirectory)
			treeBuilder.IgnoreDisabled = testCase.ignoreDisabled
			nodes, walkError := treeBuilder.Walk(context.Background(), rootDirectory)
			if walkError != nil {
				testingHandle.Fatalf("Walk failed: %v", walkError)
			}
			counts := commands.CountTree(nodes)
			if counts != testCase.expected {
				testingHandle.Fatalf("unexpected counts: got %+v want %+v", counts, testCase.expected)
			}
			if again := commands.CountTree(nodes); again != counts {
				testingHandle.Fatalf("CountTree is not idempotent: %+v then %+v", counts, again)
			}
		})
	}
}

// TestCountTreeIgnoredDirectoryCountsOnce verifies that an ignored directory contributes only itself.
func TestCountTreeIgnoredDirectoryCountsOnce(testingHandle *testing.T) {
	nodes := []*types.TreeNode{
		{Name: "vendor", IsDirectory: true, IsIgnored: true},
		{Name: "main.go"},
		{Name: "pkg", IsDirectory: true, Children: []*types.TreeNode{
			{Name: "empty", IsDirectory: true},
			{Name: "pkg.go"},
		}},
		nil,
	}
	counts := commands.CountTree(nodes)
	expected := types.TreeCounts{Files: 2, Directories: 3}
	if counts != expected {
		testingHandle.Fatalf("unexpected counts: got %+v want %+v", counts, expected)
	}
	if empty := commands.CountTree(nil); empty != (types.TreeCounts{}) {
		testingHandle.Fatalf("unexpected counts for empty tree: %+v", empty)
	}
}
