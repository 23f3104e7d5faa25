package imports

import (
	"regexp"
	"strings"
)

var (
	requireAssignmentExpression = regexp.MustCompile(`=\s*require\(\s*["']([^"']+)["']\s*\)`)
	importFromExpression        = regexp.MustCompile(`^import\s.*\bfrom\s*["']([^"']+)["']`)
)

// ECMAScriptScanner recognises "x = require('m')" assignments and "import ... from 'm'" lines
// for JavaScript and TypeScript sources.
type ECMAScriptScanner struct{}

// Extensions implements Scanner.
func (ECMAScriptScanner) Extensions() []string {
	return []string{".js", ".jsx", ".mjs", ".cjs", ".ts", ".tsx"}
}

// Scan implements Scanner.
func (ECMAScriptScanner) Scan(content string) []string {
	var tokens []string
	for _, line := range strings.Split(content, "\n") {
		trimmedLine := strings.TrimSpace(line)
		if requireMatch := requireAssignmentExpression.FindStringSubmatch(trimmedLine); requireMatch != nil {
			tokens = append(tokens, requireMatch[1])
			continue
		}
		if importMatch := importFromExpression.FindStringSubmatch(trimmedLine); importMatch != nil {
			tokens = append(tokens, importMatch[1])
		}
	}
	return tokens
}
