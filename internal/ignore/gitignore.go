package ignore

import (
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

const negationPrefix = "!"

// gitignoreRule delegates one pattern to go-git's gitignore implementation.
// Negated patterns compile but never report a match; precedence stays first-match-wins.
type gitignoreRule struct {
	source  Rule
	pattern gitignore.Pattern
}

func compileGitignoreRule(rule Rule) (*gitignoreRule, error) {
	pattern := strings.TrimSpace(rule.Pattern)
	if strings.Trim(strings.TrimPrefix(pattern, negationPrefix), patternSeparator) == "" {
		return nil, fmt.Errorf("%w: %q is empty after trimming separators", ErrInvalidPattern, rule.Pattern)
	}
	return &gitignoreRule{source: rule, pattern: gitignore.ParsePattern(pattern, nil)}, nil
}

func (rule *gitignoreRule) matches(entry Entry) bool {
	if entry.RelativePath == "" {
		return false
	}
	pathSegments := strings.Split(entry.RelativePath, patternSeparator)
	return rule.pattern.Match(pathSegments, entry.IsDirectory) == gitignore.Exclude
}

func (rule *gitignoreRule) rule() Rule {
	return rule.source
}
