// Package types defines every cross‑package data structure used by the ctxtree CLI.
package types

import "encoding/xml"

const (
	FormatRaw  = "raw"
	FormatJSON = "json"
	FormatXML  = "xml"

	// IgnoredMarker annotates an ignored directory whose rule carries no comment.
	IgnoredMarker = "(ignored)"
)

// TreeNode is one entry of the repository tree.
// An ignored node never has children and a file node never has children.
type TreeNode struct {
	XMLName     xml.Name    `json:"-" xml:"node"`
	Name        string      `json:"name" xml:"name"`
	Path        string      `json:"path" xml:"path"`
	IsDirectory bool        `json:"isDirectory" xml:"isDirectory"`
	IsIgnored   bool        `json:"isIgnored,omitempty" xml:"isIgnored,omitempty"`
	Annotation  string      `json:"annotation,omitempty" xml:"annotation,omitempty"`
	Children    []*TreeNode `json:"children,omitempty" xml:"children>node,omitempty"`
}

// HasAnnotation reports whether the node carries an ignore or import annotation.
func (node *TreeNode) HasAnnotation() bool {
	return node != nil && node.Annotation != ""
}

// TreeCounts totals the files and directories of a tree.
type TreeCounts struct {
	Files       int `json:"files" xml:"files"`
	Directories int `json:"directories" xml:"directories"`
}

// Add returns the element-wise sum of both counts.
func (counts TreeCounts) Add(other TreeCounts) TreeCounts {
	return TreeCounts{
		Files:       counts.Files + other.Files,
		Directories: counts.Directories + other.Directories,
	}
}

// TreeReport is the serialisable result of one run.
type TreeReport struct {
	XMLName xml.Name   `json:"-" xml:"report"`
	Root    *TreeNode  `json:"root" xml:"root>node"`
	Counts  TreeCounts `json:"counts" xml:"counts"`
}
