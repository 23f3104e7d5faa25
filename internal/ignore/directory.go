package ignore

import (
	"fmt"
	"strings"
)

// directoryRule matches directory entries by bare name, ignoring case.
// Wildcards carry no meaning here and are compared literally.
type directoryRule struct {
	source        Rule
	directoryName string
}

func compileDirectoryRule(rule Rule) (*directoryRule, error) {
	directoryName := strings.Trim(strings.TrimSpace(rule.Pattern), patternSeparator)
	if directoryName == "" {
		return nil, fmt.Errorf("%w: %q names no directory", ErrInvalidPattern, rule.Pattern)
	}
	return &directoryRule{source: rule, directoryName: directoryName}, nil
}

func (rule *directoryRule) matches(entry Entry) bool {
	return entry.IsDirectory && strings.EqualFold(entry.Name, rule.directoryName)
}

func (rule *directoryRule) rule() Rule {
	return rule.source
}
