package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/temirov/ctxtree/internal/config"
	"github.com/temirov/ctxtree/internal/ignore"
	"github.com/temirov/ctxtree/internal/output"
	"github.com/temirov/ctxtree/internal/tokenizer"
	"github.com/temirov/ctxtree/internal/types"
	"github.com/temirov/ctxtree/internal/utils"
)

const (
	defaultConcurrency = 1

	errorInvalidFormatFormat      = "invalid format value '%s'"
	errorInvalidConcurrencyFormat = "concurrency must be at least 1, got %d"
)

// flagValues holds the raw command-line values before configuration is applied.
type flagValues struct {
	configPath      string
	outputPath      string
	format          string
	ignoreFile      string
	semantics       string
	model           string
	concurrency     int
	noIgnore        bool
	noImports       bool
	verbose         bool
	toStdout        bool
	caseInsensitive bool
	tokens          bool
	copyReport      bool
	showVersion     bool
}

// runSettings is the fully resolved configuration of one run.
type runSettings struct {
	rootDirectory   string
	outputPath      string
	format          string
	ignoreFilePath  string
	semantics       ignore.Semantics
	caseInsensitive bool
	concurrency     int
	ignoreDisabled  bool
	importsDisabled bool
	verbose         bool
	toStdout        bool
	tokensEnabled   bool
	tokenModel      string
	copyReport      bool
}

// resolveSettings layers explicitly set flags over file configuration over built-in defaults.
func resolveSettings(command *cobra.Command, flags flagValues, rootDirectory string, configuration config.ApplicationConfiguration) (runSettings, error) {
	changed := command.Flags().Changed

	settings := runSettings{
		rootDirectory:   rootDirectory,
		outputPath:      pickString(changed(outputFlagName), flags.outputPath, configuration.Output, utils.DefaultOutputFileName),
		format:          pickString(changed(formatFlagName), flags.format, configuration.Format, types.FormatRaw),
		tokenModel:      pickString(changed(modelFlagName), flags.model, configuration.Tokens.Model, tokenizer.DefaultModel),
		ignoreDisabled:  !pickBool(changed(noIgnoreFlagName), !flags.noIgnore, configuration.Ignore.Enabled, true),
		importsDisabled: !pickBool(changed(noImportsFlagName), !flags.noImports, configuration.Imports.Enabled, true),
		caseInsensitive: pickBool(changed(caseInsensitiveFlagName), flags.caseInsensitive, configuration.Ignore.CaseInsensitive, ignore.DefaultCaseInsensitive()),
		tokensEnabled:   pickBool(changed(tokensFlagName), flags.tokens, configuration.Tokens.Enabled, false),
		copyReport:      pickBool(changed(copyFlagName), flags.copyReport, configuration.Copy, false),
		verbose:         flags.verbose,
		toStdout:        flags.toStdout,
	}

	if !output.IsSupportedFormat(settings.format) {
		return runSettings{}, fmt.Errorf(errorInvalidFormatFormat, settings.format)
	}

	semantics, semanticsError := ignore.ParseSemantics(pickString(changed(semanticsFlagName), flags.semantics, configuration.Ignore.Semantics, string(ignore.SemanticsGlob)))
	if semanticsError != nil {
		return runSettings{}, semanticsError
	}
	settings.semantics = semantics

	settings.concurrency = defaultConcurrency
	if changed(concurrencyFlagName) {
		settings.concurrency = flags.concurrency
	} else if configuration.Concurrency != nil {
		settings.concurrency = *configuration.Concurrency
	}
	if settings.concurrency < 1 {
		return runSettings{}, fmt.Errorf(errorInvalidConcurrencyFormat, settings.concurrency)
	}

	ignoreFile := pickString(changed(ignoreFileFlagName), flags.ignoreFile, configuration.Ignore.File, utils.IgnoreFileName)
	if !filepath.IsAbs(ignoreFile) {
		ignoreFile = filepath.Join(rootDirectory, ignoreFile)
	}
	settings.ignoreFilePath = ignoreFile
	return settings, nil
}

func pickString(flagChanged bool, flagValue string, configured string, fallback string) string {
	if flagChanged {
		return flagValue
	}
	if configured != "" {
		return configured
	}
	return fallback
}

func pickBool(flagChanged bool, flagValue bool, configured *bool, fallback bool) bool {
	if flagChanged {
		return flagValue
	}
	if configured != nil {
		return *configured
	}
	return fallback
}
