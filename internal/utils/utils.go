// Package utils contains general helper functions used across the ctxtree tool.
package utils

import "strings"

// Repository layout constants used across the project.
const (
	// IgnoreFileName is the name of the rule file read from the repository root.
	IgnoreFileName = ".treeignore"
	// GitDirectoryName is the name of the Git repository directory; it is never listed.
	GitDirectoryName = ".git"
	// DefaultOutputFileName is where the report is written when no output path is given.
	DefaultOutputFileName = "repository_tree.md"
	// ConfigFileName is the name of the application configuration file.
	ConfigFileName = ".ctxtree.yaml"
	// GlobalConfigDirectoryName is the directory under the user's home holding the global configuration.
	GlobalConfigDirectoryName = ".ctxtree"
	// GlobalConfigFileName is the file name of the global configuration.
	GlobalConfigFileName = "config.yaml"
)

const pathSegmentSeparator = "/"

// DeduplicateStrings removes duplicate values from a slice while preserving order.
// The first occurrence of each unique value is kept.
func DeduplicateStrings(values []string) []string {
	encounteredValues := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, value := range values {
		if _, exists := encounteredValues[value]; !exists {
			encounteredValues[value] = struct{}{}
			result = append(result, value)
		}
	}
	return result
}

// NormalizeSlashes converts any backslash separators to forward slashes.
func NormalizeSlashes(path string) string {
	return strings.ReplaceAll(path, "\\", pathSegmentSeparator)
}

// JoinRelativePath appends name to a forward-slash relative directory path.
// The root directory is represented by an empty string or ".".
func JoinRelativePath(relativeDirectory string, name string) string {
	if relativeDirectory == "" || relativeDirectory == "." {
		return name
	}
	return relativeDirectory + pathSegmentSeparator + name
}
