package ignore

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const sampleRuleFileContent = `# build artifacts
/dist/
node_modules

# generated
## documentation output

docs/_build
*.log
`

// TestParseRulesAnnotations verifies that comments annotate only the next pattern line.
func TestParseRulesAnnotations(testingHandle *testing.T) {
	rules, parseError := ParseRules(strings.NewReader(sampleRuleFileContent))
	if parseError != nil {
		testingHandle.Fatalf("ParseRules failed: %v", parseError)
	}
	expectedRules := []Rule{
		{Pattern: "/dist/", Annotation: "build artifacts"},
		{Pattern: "node_modules"},
		{Pattern: "docs/_build", Annotation: "documentation output"},
		{Pattern: "*.log"},
	}
	if !reflect.DeepEqual(rules, expectedRules) {
		testingHandle.Fatalf("unexpected rules: got %+v want %+v", rules, expectedRules)
	}
}

// TestParseRulesEmptyComment verifies that a bare hash yields an absent annotation.
func TestParseRulesEmptyComment(testingHandle *testing.T) {
	rules, parseError := ParseRules(strings.NewReader("#\n  \ttmp  \n"))
	if parseError != nil {
		testingHandle.Fatalf("ParseRules failed: %v", parseError)
	}
	if len(rules) != 1 || rules[0].Pattern != "tmp" || rules[0].Annotation != "" {
		testingHandle.Fatalf("unexpected rules: %+v", rules)
	}
}

// TestLoadRulesMissingFile verifies that a missing rule file produces an empty rule set.
func TestLoadRulesMissingFile(testingHandle *testing.T) {
	rules := LoadRules(filepath.Join(testingHandle.TempDir(), "absent"), nil)
	if len(rules) != 0 {
		testingHandle.Fatalf("expected no rules, got %+v", rules)
	}
}

// TestLoadRulesUnreadablePath verifies that a directory in place of the rule file is tolerated.
func TestLoadRulesUnreadablePath(testingHandle *testing.T) {
	rules := LoadRules(testingHandle.TempDir(), nil)
	if len(rules) != 0 {
		testingHandle.Fatalf("expected no rules, got %+v", rules)
	}
}

// TestLoadRulesFromFile verifies reading rules from disk.
func TestLoadRulesFromFile(testingHandle *testing.T) {
	ruleFilePath := filepath.Join(testingHandle.TempDir(), ".treeignore")
	if writeError := os.WriteFile(ruleFilePath, []byte(sampleRuleFileContent), 0o644); writeError != nil {
		testingHandle.Fatalf("failed to write rule file: %v", writeError)
	}
	rules := LoadRules(ruleFilePath, nil)
	if len(rules) != 4 {
		testingHandle.Fatalf("expected 4 rules, got %d", len(rules))
	}
	if rules[0].Annotation != "build artifacts" {
		testingHandle.Fatalf("unexpected first annotation %q", rules[0].Annotation)
	}
}
