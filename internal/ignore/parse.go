// Package ignore compiles the repository rule file into a matcher that decides
// which directory entries are excluded from deep traversal.
//
// The rule file is read once from the repository root. Comment lines become the
// annotation of the next pattern line; rules are tested in file order and the
// first matching rule wins.
package ignore

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/ctxtree/internal/utils"
)

const (
	commentPrefix = "#"

	logMessageRuleFileUnreadable = "rule file unreadable, continuing without ignore rules"
	logMessageRuleFileLoaded     = "loaded ignore rules"

	errorScanRulesFormat = "scanning rules: %w"
)

// Rule is one pattern line of the rule file.
// An empty Annotation means the pattern had no preceding comment.
type Rule struct {
	Pattern    string
	Annotation string
}

// ParseRules reads rule lines from reader.
// A comment line stores its text as the pending annotation; blank lines keep it;
// the next pattern line consumes it.
func ParseRules(reader io.Reader) ([]Rule, error) {
	var rules []Rule
	pendingAnnotation := utils.EmptyString

	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" {
			continue
		}
		if strings.HasPrefix(trimmedLine, commentPrefix) {
			pendingAnnotation = strings.TrimSpace(strings.TrimLeft(trimmedLine, commentPrefix))
			continue
		}
		rules = append(rules, Rule{Pattern: trimmedLine, Annotation: pendingAnnotation})
		pendingAnnotation = utils.EmptyString
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, fmt.Errorf(errorScanRulesFormat, scanError)
	}
	return rules, nil
}

// LoadRules reads the rule file at ruleFilePath.
// A missing file yields no rules. An unreadable file is logged and also yields no rules.
//
// #nosec G304
func LoadRules(ruleFilePath string, logger *zap.Logger) []Rule {
	logger = utils.LoggerOrNop(logger)

	fileHandle, openFileError := os.Open(ruleFilePath)
	if openFileError != nil {
		if !os.IsNotExist(openFileError) {
			logger.Warn(logMessageRuleFileUnreadable, zap.String("path", ruleFilePath), zap.Error(openFileError))
		}
		return nil
	}
	defer func() {
		if closeError := fileHandle.Close(); closeError != nil {
			logger.Debug("failed to close rule file", zap.String("path", ruleFilePath), zap.Error(closeError))
		}
	}()

	rules, parseError := ParseRules(fileHandle)
	if parseError != nil {
		logger.Warn(logMessageRuleFileUnreadable, zap.String("path", ruleFilePath), zap.Error(parseError))
		return nil
	}
	logger.Debug(logMessageRuleFileLoaded, zap.String("path", ruleFilePath), zap.Int("rules", len(rules)))
	return rules
}
