package ignore

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/temirov/ctxtree/internal/utils"
)

// Semantics selects how rule patterns are interpreted. A run uses exactly one.
type Semantics string

const (
	// SemanticsGlob matches wildcard patterns against the path relative to the repository root.
	SemanticsGlob Semantics = "glob"
	// SemanticsDirectory matches bare directory names case-insensitively.
	SemanticsDirectory Semantics = "directory"
	// SemanticsGitignore interprets every rule with git's own pattern syntax.
	SemanticsGitignore Semantics = "gitignore"
)

const errorUnknownSemanticsFormat = "%w: %q (expected %s, %s or %s)"

// ParseSemantics resolves a semantics name; the empty string selects SemanticsGlob.
func ParseSemantics(value string) (Semantics, error) {
	normalized := Semantics(strings.ToLower(strings.TrimSpace(value)))
	switch normalized {
	case "":
		return SemanticsGlob, nil
	case SemanticsGlob, SemanticsDirectory, SemanticsGitignore:
		return normalized, nil
	default:
		return "", fmt.Errorf(errorUnknownSemanticsFormat, ErrUnknownSemantics, value, SemanticsGlob, SemanticsDirectory, SemanticsGitignore)
	}
}

// DefaultCaseInsensitive follows the host filesystem convention.
func DefaultCaseInsensitive() bool {
	return runtime.GOOS == "windows" || runtime.GOOS == "darwin"
}

// Options configures rule compilation.
type Options struct {
	Semantics       Semantics
	CaseInsensitive bool
}

// Entry describes one filesystem entry presented to a Matcher.
type Entry struct {
	Name         string
	RelativePath string
	IsDirectory  bool
}

// MatchResult is the outcome of matching an Entry.
type MatchResult struct {
	Ignored    bool
	Annotation string
}

// Matcher decides whether an entry is ignored.
type Matcher interface {
	Match(entry Entry) MatchResult
}

// rulePredicate is one compiled rule regardless of semantics.
type rulePredicate interface {
	matches(entry Entry) bool
	rule() Rule
}

// RuleMatcher tests compiled rules in file order; the first match wins.
type RuleMatcher struct {
	semantics  Semantics
	predicates []rulePredicate
}

// NewMatcher compiles rules with the requested semantics.
// Rules that fail to compile are skipped and reported through the joined error;
// the returned matcher is always usable.
func NewMatcher(rules []Rule, options Options) (*RuleMatcher, error) {
	semantics, semanticsError := ParseSemantics(string(options.Semantics))
	if semanticsError != nil {
		return nil, semanticsError
	}

	matcher := &RuleMatcher{semantics: semantics}
	var compileErrors []error
	for _, rule := range rules {
		predicate, compileError := compilePredicate(rule, semantics, options.CaseInsensitive)
		if compileError != nil {
			compileErrors = append(compileErrors, compileError)
			continue
		}
		matcher.predicates = append(matcher.predicates, predicate)
	}
	return matcher, errors.Join(compileErrors...)
}

func compilePredicate(rule Rule, semantics Semantics, caseInsensitive bool) (rulePredicate, error) {
	switch semantics {
	case SemanticsDirectory:
		return compileDirectoryRule(rule)
	case SemanticsGitignore:
		return compileGitignoreRule(rule)
	default:
		return compileGlobRule(rule, caseInsensitive)
	}
}

// Semantics returns the semantics the matcher was compiled with.
func (matcher *RuleMatcher) Semantics() string {
	if matcher == nil {
		return ""
	}
	return string(matcher.semantics)
}

// Len returns the number of compiled rules.
func (matcher *RuleMatcher) Len() int {
	if matcher == nil {
		return 0
	}
	return len(matcher.predicates)
}

// Match returns the outcome of the first rule covering entry.
func (matcher *RuleMatcher) Match(entry Entry) MatchResult {
	if matcher == nil {
		return MatchResult{}
	}
	entry.RelativePath = strings.TrimPrefix(utils.NormalizeSlashes(entry.RelativePath), "./")
	for _, predicate := range matcher.predicates {
		if predicate.matches(entry) {
			return MatchResult{Ignored: true, Annotation: predicate.rule().Annotation}
		}
	}
	return MatchResult{}
}
