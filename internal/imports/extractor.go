// Package imports detects the local modules a source file references.
//
// Detection is a line-pattern heuristic: each supported language contributes a
// Scanner that extracts candidate tokens, and the Extractor keeps only the tokens
// that resolve to files inside the repository.
package imports

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/ctxtree/internal/utils"
)

const (
	relativeTokenPrefix = "."
	tokenSeparator      = ", "

	annotationFormat = "references %s in imports"

	logMessageUnreadableSource = "skipping import tracking for unreadable file"
	logMessageBinarySource     = "skipping import tracking for binary file"
)

// Scanner extracts candidate module tokens from the content of one source file.
type Scanner interface {
	// Extensions lists the file extensions, with leading dot, the scanner handles.
	Extensions() []string
	// Scan returns the tokens referenced by content in order of appearance.
	Scan(content string) []string
}

// Resolver is implemented by scanners whose languages locate local modules
// differently from the sibling-file rule.
type Resolver interface {
	IsLocal(token string, sourcePath string) bool
}

// Extractor annotates source files with the local modules they import.
type Extractor struct {
	scanners map[string]Scanner
	logger   *zap.Logger
}

// NewExtractor registers scanners by extension. A later scanner replaces an earlier
// one registered for the same extension.
func NewExtractor(logger *zap.Logger, scanners ...Scanner) *Extractor {
	extractor := &Extractor{
		scanners: make(map[string]Scanner),
		logger:   utils.LoggerOrNop(logger),
	}
	for _, scanner := range scanners {
		for _, extension := range scanner.Extensions() {
			extractor.scanners[strings.ToLower(extension)] = scanner
		}
	}
	return extractor
}

// NewDefaultExtractor registers the Python, ECMAScript and Go scanners for a repository root.
func NewDefaultExtractor(rootDirectory string, logger *zap.Logger) *Extractor {
	return NewExtractor(
		logger,
		PythonScanner{},
		ECMAScriptScanner{},
		NewGoScanner(LoadModulePath(rootDirectory, logger)),
	)
}

// Supports reports whether a scanner is registered for extension.
func (extractor *Extractor) Supports(extension string) bool {
	if extractor == nil {
		return false
	}
	_, supported := extractor.scanners[strings.ToLower(extension)]
	return supported
}

// AnnotateFile reads filePath and returns its import annotation.
// Unreadable files and unsupported extensions yield an empty annotation.
//
// #nosec G304
func (extractor *Extractor) AnnotateFile(filePath string) string {
	extension := filepath.Ext(filePath)
	if !extractor.Supports(extension) {
		return utils.EmptyString
	}
	content, readError := os.ReadFile(filePath)
	if readError != nil {
		extractor.logger.Debug(logMessageUnreadableSource, zap.String("path", filePath), zap.Error(readError))
		return utils.EmptyString
	}
	if utils.LooksBinary(content) {
		extractor.logger.Debug(logMessageBinarySource, zap.String("path", filePath))
		return utils.EmptyString
	}
	return extractor.Annotate(filePath, extension, string(content))
}

// Annotate returns "references {tokens} in imports" for the local tokens found in
// content, or an empty string when there are none.
func (extractor *Extractor) Annotate(filePath string, extension string, content string) string {
	return FormatAnnotation(extractor.LocalTokens(filePath, extension, content))
}

// LocalTokens returns the deduplicated local tokens referenced by content.
func (extractor *Extractor) LocalTokens(filePath string, extension string, content string) []string {
	if extractor == nil {
		return nil
	}
	scanner, supported := extractor.scanners[strings.ToLower(extension)]
	if !supported {
		return nil
	}
	var localTokens []string
	for _, token := range utils.DeduplicateStrings(scanner.Scan(content)) {
		if isLocalToken(scanner, token, filePath, extension) {
			localTokens = append(localTokens, token)
		}
	}
	return localTokens
}

func isLocalToken(scanner Scanner, token string, sourcePath string, extension string) bool {
	if strings.HasPrefix(token, relativeTokenPrefix) {
		return true
	}
	if resolver, ok := scanner.(Resolver); ok {
		return resolver.IsLocal(token, sourcePath)
	}
	return siblingFileExists(token, sourcePath, extension)
}

// siblingFileExists reports whether <token><extension> is a regular file next to sourcePath.
func siblingFileExists(token string, sourcePath string, extension string) bool {
	candidatePath := filepath.Join(filepath.Dir(sourcePath), token+extension)
	fileInformation, statError := os.Stat(candidatePath)
	return statError == nil && fileInformation.Mode().IsRegular()
}

// FormatAnnotation renders the annotation for tokens; no tokens yields an empty string.
func FormatAnnotation(tokens []string) string {
	if len(tokens) == 0 {
		return utils.EmptyString
	}
	return fmt.Sprintf(annotationFormat, strings.Join(tokens, tokenSeparator))
}
