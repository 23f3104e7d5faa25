package imports

import (
	"reflect"
	"testing"
)

// TestPythonScanner verifies token extraction from Python import lines.
func TestPythonScanner(testingHandle *testing.T) {
	testCases := []struct {
		name     string
		content  string
		expected []string
	}{
		{name: "single import", content: "import os", expected: []string{"os"}},
		{name: "comma separated", content: "import os, sys as system,  json", expected: []string{"os", "sys", "json"}},
		{name: "dotted module", content: "import os.path", expected: []string{"os.path"}},
		{name: "from import", content: "from .models import User", expected: []string{".models"}},
		{name: "from package import", content: "from . import views", expected: []string{"."}},
		{name: "indented import", content: "def f():\n    import helpers\n", expected: []string{"helpers"}},
		{name: "trailing comment", content: "import utils  # local", expected: []string{"utils"}},
		{name: "not an import", content: "important = 1\nprint('import x')", expected: nil},
		{name: "malformed", content: "import\nfrom x", expected: nil},
	}
	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(testingHandle *testing.T) {
			tokens := PythonScanner{}.Scan(testCase.content)
			if !reflect.DeepEqual(tokens, testCase.expected) {
				testingHandle.Fatalf("Scan(%q) = %v, want %v", testCase.content, tokens, testCase.expected)
			}
		})
	}
}

// TestECMAScriptScanner verifies token extraction from require calls and import declarations.
func TestECMAScriptScanner(testingHandle *testing.T) {
	testCases := []struct {
		name     string
		content  string
		expected []string
	}{
		{name: "require double quotes", content: `const a = require("./a")`, expected: []string{"./a"}},
		{name: "require single quotes", content: `let b = require( 'b' );`, expected: []string{"b"}},
		{name: "bare require ignored", content: `require("./side-effect")`, expected: nil},
		{name: "default import", content: `import x from "./x"`, expected: []string{"./x"}},
		{name: "named import", content: `import { a, b } from '../lib/ab';`, expected: []string{"../lib/ab"}},
		{name: "namespace import", content: `import * as path from "path"`, expected: []string{"path"}},
		{name: "side effect import ignored", content: `import "./styles.css"`, expected: nil},
	}
	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(testingHandle *testing.T) {
			tokens := ECMAScriptScanner{}.Scan(testCase.content)
			if !reflect.DeepEqual(tokens, testCase.expected) {
				testingHandle.Fatalf("Scan(%q) = %v, want %v", testCase.content, tokens, testCase.expected)
			}
		})
	}
}

// TestGoScannerIsLocal verifies module prefix resolution.
func TestGoScannerIsLocal(testingHandle *testing.T) {
	scanner := NewGoScanner("example.com/sample")
	testCases := map[string]bool{
		"example.com/sample":          true,
		"example.com/sample/internal": true,
		"example.com/samplex":         false,
		"fmt":                         false,
	}
	for token, expected := range testCases {
		if result := scanner.IsLocal(token, "main.go"); result != expected {
			testingHandle.Fatalf("IsLocal(%q) = %v, want %v", token, result, expected)
		}
	}
	if NewGoScanner("").IsLocal("fmt", "main.go") {
		testingHandle.Fatalf("scanner without module path reported a local import")
	}
}
