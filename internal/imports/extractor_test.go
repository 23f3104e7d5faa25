package imports

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const (
	relativeImportSource = "from .util import helper\n"
	externalImportSource = "import numpy\n"
	localGoModulePath    = "example.com/sample"
)

// writeTestFile creates a file with the specified content, failing the test on error.
func writeTestFile(testingHandle *testing.T, filePath string, content string) {
	testingHandle.Helper()
	if writeError := os.WriteFile(filePath, []byte(content), 0o644); writeError != nil {
		testingHandle.Fatalf("failed to write %s: %v", filePath, writeError)
	}
}

// TestAnnotateRelativePythonImport verifies that relative imports are local regardless of siblings.
func TestAnnotateRelativePythonImport(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	sourcePath := filepath.Join(rootDirectory, "a.py")
	writeTestFile(testingHandle, sourcePath, relativeImportSource)
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "util.py"), "def helper():\n    pass\n")

	extractor := NewExtractor(nil, PythonScanner{})
	annotation := extractor.AnnotateFile(sourcePath)
	if annotation != "references .util in imports" {
		testingHandle.Fatalf("unexpected annotation %q", annotation)
	}
}

// TestAnnotateExternalPythonImport verifies that library imports without a sibling file are dropped.
func TestAnnotateExternalPythonImport(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	sourcePath := filepath.Join(rootDirectory, "a.py")
	writeTestFile(testingHandle, sourcePath, externalImportSource)

	extractor := NewExtractor(nil, PythonScanner{})
	if annotation := extractor.AnnotateFile(sourcePath); annotation != "" {
		testingHandle.Fatalf("expected no annotation, got %q", annotation)
	}
}

// TestAnnotateSiblingResolution verifies that bare tokens resolve only to siblings with the same extension.
func TestAnnotateSiblingResolution(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	sourcePath := filepath.Join(rootDirectory, "main.py")
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "helpers.py"), "")
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "config.js"), "")
	if makeDirError := os.Mkdir(filepath.Join(rootDirectory, "models.py"), 0o755); makeDirError != nil {
		testingHandle.Fatalf("mkdir: %v", makeDirError)
	}

	extractor := NewExtractor(nil, PythonScanner{})
	content := "import os, helpers\nimport config\nimport models\nfrom helpers import thing\n"
	annotation := extractor.Annotate(sourcePath, ".py", content)
	if annotation != "references helpers in imports" {
		testingHandle.Fatalf("unexpected annotation %q", annotation)
	}
}

// TestAnnotateECMAScript verifies require and import-from detection for JavaScript sources.
func TestAnnotateECMAScript(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	sourcePath := filepath.Join(rootDirectory, "index.js")
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "store.js"), "")

	content := `const express = require("express");
const db = require('./db');
import { render } from "./view";
import store from 'store';
import React from "react";
`
	extractor := NewExtractor(nil, ECMAScriptScanner{})
	annotation := extractor.Annotate(sourcePath, ".js", content)
	if annotation != "references ./db, ./view, store in imports" {
		testingHandle.Fatalf("unexpected annotation %q", annotation)
	}
}

// TestAnnotateUnsupportedExtension verifies that unknown extensions yield no annotation.
func TestAnnotateUnsupportedExtension(testingHandle *testing.T) {
	extractor := NewExtractor(nil, PythonScanner{})
	if annotation := extractor.Annotate("notes.txt", ".txt", "import .local\n"); annotation != "" {
		testingHandle.Fatalf("expected no annotation, got %q", annotation)
	}
	if extractor.Supports(".txt") {
		testingHandle.Fatalf("unexpected support for .txt")
	}
}

// TestAnnotateFileUnreadable verifies that a missing file yields no annotation.
func TestAnnotateFileUnreadable(testingHandle *testing.T) {
	extractor := NewExtractor(nil, PythonScanner{})
	if annotation := extractor.AnnotateFile(filepath.Join(testingHandle.TempDir(), "gone.py")); annotation != "" {
		testingHandle.Fatalf("expected no annotation, got %q", annotation)
	}
}

// TestAnnotateFileSkipsBinaryContent covers transport-stream videos sharing the .ts extension.
func TestAnnotateFileSkipsBinaryContent(testingHandle *testing.T) {
	sourcePath := filepath.Join(testingHandle.TempDir(), "clip.ts")
	writeTestFile(testingHandle, sourcePath, "G\x00\x11\nimport x from \"./lib\"\n")
	extractor := NewExtractor(nil, ECMAScriptScanner{})
	if annotation := extractor.AnnotateFile(sourcePath); annotation != "" {
		testingHandle.Fatalf("expected no annotation for binary content, got %q", annotation)
	}
}

// TestLocalTokensDeduplicates verifies that repeated tokens are reported once in first-seen order.
func TestLocalTokensDeduplicates(testingHandle *testing.T) {
	extractor := NewExtractor(nil, PythonScanner{})
	content := "from .b import x\nfrom .a import y\nfrom .b import z\n"
	tokens := extractor.LocalTokens("pkg/mod.py", ".py", content)
	if !reflect.DeepEqual(tokens, []string{".b", ".a"}) {
		testingHandle.Fatalf("unexpected tokens %v", tokens)
	}
}

// TestAnnotateGoModuleImports verifies module-path resolution for Go sources.
func TestAnnotateGoModuleImports(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "go.mod"), "module "+localGoModulePath+"\n\ngo 1.24\n")

	content := `package main

import "fmt"

import (
	"os"

	cfg "example.com/sample/internal/config"
	"example.com/sample/internal/utils"
	"example.com/samplex/other"
)
`
	extractor := NewDefaultExtractor(rootDirectory, nil)
	annotation := extractor.Annotate(filepath.Join(rootDirectory, "main.go"), ".go", content)
	expected := "references example.com/sample/internal/config, example.com/sample/internal/utils in imports"
	if annotation != expected {
		testingHandle.Fatalf("unexpected annotation %q", annotation)
	}
}

// TestLoadModulePathMissing verifies that a repository without go.mod has no module path.
func TestLoadModulePathMissing(testingHandle *testing.T) {
	if modulePath := LoadModulePath(testingHandle.TempDir(), nil); modulePath != "" {
		testingHandle.Fatalf("expected empty module path, got %q", modulePath)
	}
}

// TestFormatAnnotation verifies annotation rendering.
func TestFormatAnnotation(testingHandle *testing.T) {
	if FormatAnnotation(nil) != "" {
		testingHandle.Fatalf("expected empty annotation for no tokens")
	}
	if result := FormatAnnotation([]string{".a", ".b"}); result != "references .a, .b in imports" {
		testingHandle.Fatalf("unexpected annotation %q", result)
	}
}
