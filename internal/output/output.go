// Package output renders the repository tree and writes the report to disk.
package output

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/ctxtree/internal/types"
)

const (
	indentPrefix = ""
	indentSpacer = "  "

	xmlHeader = xml.Header

	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "

	directorySuffix  = "/"
	annotationFormat = "%s  # %s"

	reportTitleFormat   = "# Repository tree: %s\n\n"
	reportCountsFormat  = "%d %s, %d %s\n\n"
	reportFenceOpening  = "```text\n"
	reportFenceClosing  = "```\n"
	singularFileLabel   = "file"
	pluralFileLabel     = "files"
	singularFolderLabel = "directory"
	pluralFolderLabel   = "directories"

	outputDirectoryPermissions = 0o755
	outputFilePermissions      = 0o644

	errorUnsupportedFormatFormat = "%w: %q"
	errorCreateOutputDirFormat   = "creating output directory %s: %w"
	errorWriteOutputFormat       = "writing report to %s: %w"
	errorOutputIsDirectoryFormat = "output path %s is a directory"
)

// ErrUnsupportedFormat reports an unknown output format.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// IsSupportedFormat reports whether the provided format is recognized.
func IsSupportedFormat(format string) bool {
	switch format {
	case types.FormatRaw, types.FormatJSON, types.FormatXML:
		return true
	default:
		return false
	}
}

// Render serialises report in the requested format.
func Render(format string, report types.TreeReport) (string, error) {
	switch strings.ToLower(format) {
	case types.FormatRaw:
		return RenderRaw(report), nil
	case types.FormatJSON:
		return RenderJSON(report)
	case types.FormatXML:
		return RenderXML(report)
	default:
		return "", fmt.Errorf(errorUnsupportedFormatFormat, ErrUnsupportedFormat, format)
	}
}

// RenderJSON marshals the report as indented JSON.
func RenderJSON(report types.TreeReport) (string, error) {
	encoded, jsonEncodeError := json.MarshalIndent(report, indentPrefix, indentSpacer)
	if jsonEncodeError != nil {
		return "", jsonEncodeError
	}
	return string(encoded) + "\n", nil
}

// RenderXML marshals the report as an XML document.
func RenderXML(report types.TreeReport) (string, error) {
	encoded, xmlMarshalError := xml.MarshalIndent(report, indentPrefix, indentSpacer)
	if xmlMarshalError != nil {
		return "", xmlMarshalError
	}
	return xmlHeader + string(encoded) + "\n", nil
}

// RenderRaw returns a Markdown document holding the counts and the drawn tree.
func RenderRaw(report types.TreeReport) string {
	var buffer bytes.Buffer
	rootName := ""
	if report.Root != nil {
		rootName = report.Root.Name
	}
	fmt.Fprintf(&buffer, reportTitleFormat, rootName)
	fmt.Fprintf(&buffer, reportCountsFormat,
		report.Counts.Files, pluralize(report.Counts.Files, singularFileLabel, pluralFileLabel),
		report.Counts.Directories, pluralize(report.Counts.Directories, singularFolderLabel, pluralFolderLabel),
	)
	buffer.WriteString(reportFenceOpening)
	WriteTreeRaw(&buffer, report.Root)
	buffer.WriteString(reportFenceClosing)
	return buffer.String()
}

func pluralize(count int, singular string, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}

// WriteTreeRaw draws node and its descendants, one line per entry.
// Ignored directories are drawn with their annotation and never expanded.
func WriteTreeRaw(writer io.Writer, node *types.TreeNode) {
	if node == nil {
		return
	}
	renderTreeNode(writer, node, "", true, true)
}

func treeNodeLinePrefix(prefix string, isRoot bool, isLast bool) (string, string) {
	if isRoot {
		return "", ""
	}
	connector := treeBranchConnector
	childPrefix := prefix + treeBranchPadding
	if isLast {
		connector = treeLastConnector
		childPrefix = prefix + treeLastPadding
	}
	return prefix + connector, childPrefix
}

func renderTreeNode(writer io.Writer, node *types.TreeNode, prefix string, isRoot bool, isLast bool) {
	linePrefix, childPrefix := treeNodeLinePrefix(prefix, isRoot, isLast)
	fmt.Fprintf(writer, "%s%s\n", linePrefix, nodeLabel(node))
	if !node.IsDirectory || node.IsIgnored {
		return
	}
	visibleChildren := make([]*types.TreeNode, 0, len(node.Children))
	for _, child := range node.Children {
		if child != nil {
			visibleChildren = append(visibleChildren, child)
		}
	}
	for index, child := range visibleChildren {
		renderTreeNode(writer, child, childPrefix, false, index == len(visibleChildren)-1)
	}
}

func nodeLabel(node *types.TreeNode) string {
	label := node.Name
	if node.IsDirectory {
		label += directorySuffix
	}
	if node.HasAnnotation() {
		label = fmt.Sprintf(annotationFormat, label, node.Annotation)
	}
	return label
}

// WriteReport writes content to outputPath, creating missing parent directories.
func WriteReport(outputPath string, content string) error {
	if outputInfo, statError := os.Stat(outputPath); statError == nil && outputInfo.IsDir() {
		return fmt.Errorf(errorOutputIsDirectoryFormat, outputPath)
	}
	outputDirectory := filepath.Dir(outputPath)
	if makeDirError := os.MkdirAll(outputDirectory, outputDirectoryPermissions); makeDirError != nil {
		return fmt.Errorf(errorCreateOutputDirFormat, outputDirectory, makeDirError)
	}
	if writeError := os.WriteFile(outputPath, []byte(content), outputFilePermissions); writeError != nil {
		return fmt.Errorf(errorWriteOutputFormat, outputPath, writeError)
	}
	return nil
}
