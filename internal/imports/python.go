package imports

import (
	"regexp"
	"strings"
)

const pythonLineCommentPrefix = "#"

var (
	pythonImportExpression     = regexp.MustCompile(`^import\s+(.+)$`)
	pythonFromImportExpression = regexp.MustCompile(`^from\s+(\S+)\s+import\b`)
	pythonModuleExpression     = regexp.MustCompile(`^[A-Za-z_][\w.]*$`)
)

// PythonScanner recognises "import a, b.c as d" and "from module import name" lines.
type PythonScanner struct{}

// Extensions implements Scanner.
func (PythonScanner) Extensions() []string {
	return []string{".py"}
}

// Scan implements Scanner.
func (PythonScanner) Scan(content string) []string {
	var tokens []string
	for _, line := range strings.Split(content, "\n") {
		trimmedLine := strings.TrimSpace(line)
		if commentIndex := strings.Index(trimmedLine, pythonLineCommentPrefix); commentIndex >= 0 {
			trimmedLine = strings.TrimSpace(trimmedLine[:commentIndex])
		}
		if fromMatch := pythonFromImportExpression.FindStringSubmatch(trimmedLine); fromMatch != nil {
			tokens = append(tokens, fromMatch[1])
			continue
		}
		importMatch := pythonImportExpression.FindStringSubmatch(trimmedLine)
		if importMatch == nil {
			continue
		}
		for _, clause := range strings.Split(importMatch[1], ",") {
			fields := strings.Fields(clause)
			if len(fields) == 0 || !pythonModuleExpression.MatchString(fields[0]) {
				continue
			}
			tokens = append(tokens, fields[0])
		}
	}
	return tokens
}
