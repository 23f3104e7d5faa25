package ignore

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	patternSeparator = "/"

	anyRunExpression     = ".*"
	singleRuneExpression = "."

	anchoredPrefixExpression         = "^"
	unanchoredPrefixExpression       = "(?:^|/)"
	selfOrDescendantSuffixExpression = "(?:/.*)?$"
	descendantSuffixExpression       = "/.*$"
	caseInsensitiveFlag              = "(?i)"

	errorCompilePatternFormat = "%w: compile %q: %v"
)

// globRule is the compiled form of one glob-style rule.
type globRule struct {
	source        Rule
	anchored      bool
	directoryOnly bool
	expression    *regexp.Regexp
	// descendantExpression is set for directory-only rules and matches paths strictly below the directory.
	descendantExpression *regexp.Regexp
}

// compileGlobRule converts rule into an anchored or unanchored expression over
// forward-slash paths relative to the repository root.
func compileGlobRule(rule Rule, caseInsensitive bool) (*globRule, error) {
	pattern := strings.TrimSpace(rule.Pattern)
	compiled := &globRule{
		source:        rule,
		anchored:      strings.HasPrefix(pattern, patternSeparator),
		directoryOnly: strings.HasSuffix(pattern, patternSeparator),
	}
	pattern = strings.Trim(pattern, patternSeparator)
	if pattern == "" {
		return nil, fmt.Errorf("%w: %q is empty after trimming separators", ErrInvalidPattern, rule.Pattern)
	}

	prefix := unanchoredPrefixExpression
	if compiled.anchored {
		prefix = anchoredPrefixExpression
	}
	if caseInsensitive {
		prefix = caseInsensitiveFlag + prefix
	}
	body := globBodyExpression(pattern)

	expression, compileError := regexp.Compile(prefix + body + selfOrDescendantSuffixExpression)
	if compileError != nil {
		return nil, fmt.Errorf(errorCompilePatternFormat, ErrInvalidPattern, rule.Pattern, compileError)
	}
	compiled.expression = expression

	if compiled.directoryOnly {
		descendantExpression, descendantCompileError := regexp.Compile(prefix + body + descendantSuffixExpression)
		if descendantCompileError != nil {
			return nil, fmt.Errorf(errorCompilePatternFormat, ErrInvalidPattern, rule.Pattern, descendantCompileError)
		}
		compiled.descendantExpression = descendantExpression
	}
	return compiled, nil
}

// globBodyExpression escapes every literal run of pattern and expands wildcard runs.
func globBodyExpression(pattern string) string {
	var builder strings.Builder
	runes := []rune(pattern)
	literalStart := 0
	for index := 0; index < len(runes); {
		if !isWildcard(runes[index]) {
			index++
			continue
		}
		builder.WriteString(regexp.QuoteMeta(string(runes[literalStart:index])))
		runEnd := index
		for runEnd < len(runes) && isWildcard(runes[runEnd]) {
			runEnd++
		}
		builder.WriteString(wildcardRunExpression(runes[index:runEnd]))
		index = runEnd
		literalStart = runEnd
	}
	builder.WriteString(regexp.QuoteMeta(string(runes[literalStart:])))
	return builder.String()
}

// wildcardRunExpression expands one run of consecutive wildcards.
// Any run containing "*" collapses into a single any-run token; a run made only
// of "?" matches exactly that many characters.
func wildcardRunExpression(run []rune) string {
	for _, wildcard := range run {
		if wildcard == '*' {
			return anyRunExpression
		}
	}
	return strings.Repeat(singleRuneExpression, len(run))
}

func isWildcard(character rune) bool {
	return character == '*' || character == '?'
}

// matches reports whether the rule covers the entry's relative path.
// Directory-only rules accept non-directory entries only when they lie below a matched directory.
func (rule *globRule) matches(entry Entry) bool {
	if rule.directoryOnly && !entry.IsDirectory {
		return rule.descendantExpression.MatchString(entry.RelativePath)
	}
	return rule.expression.MatchString(entry.RelativePath)
}

func (rule *globRule) rule() Rule {
	return rule.source
}
