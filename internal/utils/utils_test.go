package utils_test

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/temirov/ctxtree/internal/utils"
)

func TestDeduplicateStrings(testingInstance *testing.T) {
	testCases := []struct {
		name     string
		input    []string
		expected []string
	}{
		{name: "empty", input: nil, expected: []string{}},
		{name: "keeps_first_occurrence", input: []string{"b", "a", "b", "c", "a"}, expected: []string{"b", "a", "c"}},
		{name: "no_duplicates", input: []string{"x", "y"}, expected: []string{"x", "y"}},
	}
	for _, testCase := range testCases {
		testingInstance.Run(testCase.name, func(testingInstance *testing.T) {
			if result := utils.DeduplicateStrings(testCase.input); !reflect.DeepEqual(result, testCase.expected) {
				testingInstance.Fatalf("DeduplicateStrings(%v) = %v, expected %v", testCase.input, result, testCase.expected)
			}
		})
	}
}

func TestJoinRelativePath(testingInstance *testing.T) {
	testCases := []struct {
		directory string
		name      string
		expected  string
	}{
		{directory: "", name: "src", expected: "src"},
		{directory: ".", name: "src", expected: "src"},
		{directory: "src", name: "lib", expected: "src/lib"},
	}
	for _, testCase := range testCases {
		if result := utils.JoinRelativePath(testCase.directory, testCase.name); result != testCase.expected {
			testingInstance.Fatalf("JoinRelativePath(%q, %q) = %q, expected %q", testCase.directory, testCase.name, result, testCase.expected)
		}
	}
}

func TestNormalizeSlashes(testingInstance *testing.T) {
	if result := utils.NormalizeSlashes(`web\node_modules\pkg`); result != "web/node_modules/pkg" {
		testingInstance.Fatalf("unexpected normalized path %q", result)
	}
}

func TestLooksBinary(testingInstance *testing.T) {
	testCases := []struct {
		name     string
		content  []byte
		expected bool
	}{
		{name: "empty", content: nil, expected: false},
		{name: "text", content: []byte("import os\n"), expected: false},
		{name: "latin1_text", content: []byte{'c', 'a', 'f', 0xe9}, expected: false},
		{name: "nul_byte", content: []byte{0x47, 0x00, 0x11}, expected: true},
		{name: "nul_after_sample", content: append(bytes.Repeat([]byte("a"), 9000), 0), expected: false},
	}
	for _, testCase := range testCases {
		testingInstance.Run(testCase.name, func(testingInstance *testing.T) {
			if result := utils.LooksBinary(testCase.content); result != testCase.expected {
				testingInstance.Fatalf("LooksBinary = %t, expected %t", result, testCase.expected)
			}
		})
	}
}
