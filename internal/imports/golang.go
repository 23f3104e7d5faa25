package imports

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/mod/modfile"

	"github.com/temirov/ctxtree/internal/utils"
)

const (
	goModFileName       = "go.mod"
	goImportBlockOpen   = "import ("
	goImportBlockClose  = ")"
	goModulePathDivider = "/"
)

var (
	goSingleImportExpression = regexp.MustCompile(`^import\s+(?:[\w.]+\s+)?"([^"]+)"`)
	goBlockImportExpression  = regexp.MustCompile(`^(?:[\w.]+\s+)?"([^"]+)"`)
)

// GoScanner recognises single and grouped Go import declarations. Packages of the
// repository's own module are local.
type GoScanner struct {
	modulePath string
}

// NewGoScanner returns a scanner treating modulePath and its subpackages as local.
// An empty modulePath treats every import as external.
func NewGoScanner(modulePath string) GoScanner {
	return GoScanner{modulePath: strings.TrimSpace(modulePath)}
}

// Extensions implements Scanner.
func (GoScanner) Extensions() []string {
	return []string{".go"}
}

// Scan implements Scanner.
func (GoScanner) Scan(content string) []string {
	var tokens []string
	insideBlock := false
	for _, line := range strings.Split(content, "\n") {
		trimmedLine := strings.TrimSpace(line)
		if insideBlock {
			if strings.HasPrefix(trimmedLine, goImportBlockClose) {
				insideBlock = false
				continue
			}
			if blockMatch := goBlockImportExpression.FindStringSubmatch(trimmedLine); blockMatch != nil {
				tokens = append(tokens, blockMatch[1])
			}
			continue
		}
		if strings.HasPrefix(trimmedLine, goImportBlockOpen) {
			insideBlock = true
			continue
		}
		if singleMatch := goSingleImportExpression.FindStringSubmatch(trimmedLine); singleMatch != nil {
			tokens = append(tokens, singleMatch[1])
		}
	}
	return tokens
}

// IsLocal implements Resolver.
func (scanner GoScanner) IsLocal(token string, sourcePath string) bool {
	if scanner.modulePath == "" {
		return false
	}
	return token == scanner.modulePath || strings.HasPrefix(token, scanner.modulePath+goModulePathDivider)
}

// LoadModulePath returns the module path declared by go.mod in rootDirectory,
// or an empty string when there is none.
//
// #nosec G304
func LoadModulePath(rootDirectory string, logger *zap.Logger) string {
	goModPath := filepath.Join(rootDirectory, goModFileName)
	content, readError := os.ReadFile(goModPath)
	if readError != nil {
		if !os.IsNotExist(readError) {
			utils.LoggerOrNop(logger).Debug("unable to read go.mod", zap.String("path", goModPath), zap.Error(readError))
		}
		return utils.EmptyString
	}
	return modfile.ModulePath(content)
}
