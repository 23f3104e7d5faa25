// Package cli provides the command line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/ctxtree/internal/commands"
	"github.com/temirov/ctxtree/internal/config"
	"github.com/temirov/ctxtree/internal/ignore"
	"github.com/temirov/ctxtree/internal/imports"
	"github.com/temirov/ctxtree/internal/output"
	"github.com/temirov/ctxtree/internal/services/clipboard"
	"github.com/temirov/ctxtree/internal/tokenizer"
	"github.com/temirov/ctxtree/internal/types"
	"github.com/temirov/ctxtree/internal/utils"
)

const (
	configFlagName          = "config"
	outputFlagName          = "output"
	stdoutFlagName          = "stdout"
	formatFlagName          = "format"
	ignoreFileFlagName      = "ignore-file"
	semanticsFlagName       = "semantics"
	caseInsensitiveFlagName = "case-insensitive"
	concurrencyFlagName     = "concurrency"
	noIgnoreFlagName        = "no-ignore"
	noImportsFlagName       = "no-imports"
	verboseFlagName         = "verbose"
	tokensFlagName          = "tokens"
	modelFlagName           = "model"
	copyFlagName            = "copy"
	versionFlagName         = "version"

	defaultPath          = "."
	versionTemplate      = "ctxtree version: %s\n"
	rootUse              = "ctxtree [path]"
	rootShortDescription = "render an annotated repository tree"
	rootLongDescription  = `ctxtree renders the directory tree of a repository for humans and language models.
Directories matched by the rules in .treeignore are listed with the rule's comment and not descended into.
Source files are annotated with the in-repository modules they import.
Use --format to select raw, json, or xml output and --stdout to print instead of writing a file.`
	rootUsageExample = `  # Write repository_tree.md for the current directory
  ctxtree

  # Print a JSON tree of another checkout using gitignore pattern semantics
  ctxtree ../service --format json --semantics gitignore --stdout`

	configFlagDescription          = "configuration file (defaults to ./.ctxtree.yaml over ~/.ctxtree/config.yaml)"
	outputFlagDescription          = "report file path"
	stdoutFlagDescription          = "print the report to standard output instead of writing a file"
	formatFlagDescription          = "output format: raw, json or xml"
	ignoreFileFlagDescription      = "rule file, relative to the repository root"
	semanticsFlagDescription       = "rule semantics: glob, directory or gitignore"
	caseInsensitiveFlagDescription = "match glob rules case-insensitively (defaults to the host convention)"
	concurrencyFlagDescription     = "number of top-level directories walked in parallel"
	noIgnoreFlagDescription        = "disable ignore rules"
	noImportsFlagDescription       = "disable import annotations"
	verboseFlagDescription         = "log debug messages"
	tokensFlagDescription          = "estimate the token count of the report"
	modelFlagDescription           = "tokenizer model used for --tokens"
	copyFlagDescription            = "copy the report to the system clipboard"
	versionFlagDescription         = "display application version"

	logMessageRuleErrors       = "some ignore rules were skipped"
	logMessageRulesCompiled    = "compiled ignore rules"
	logMessageReportWritten    = "wrote repository tree"
	logMessageReportPrinted    = "rendered repository tree"
	logMessageTokenEstimate    = "estimated report tokens"
	logMessageTokenUnavailable = "token estimate unavailable"
	logMessageCopied           = "copied report to clipboard"
	logMessageCopyFailed       = "clipboard copy failed"

	errorWorkingDirectoryFormat = "unable to determine working directory: %w"
	errorLoggerFormat           = "build logger: %w"
	errorLoadConfigFormat       = "load configuration: %w"
	errorBuildTreeFormat        = "build tree for %s: %w"
	errorPrintReportFormat      = "print report: %w"
)

// Dependencies are the process-level collaborators of a run.
type Dependencies struct {
	Stdout          io.Writer
	Clipboard       clipboard.Copier
	NewLogger       func(verbose bool) (*zap.Logger, error)
	NewTokenCounter func(model string) (tokenizer.Counter, error)
}

func (dependencies Dependencies) withDefaults() Dependencies {
	if dependencies.Stdout == nil {
		dependencies.Stdout = os.Stdout
	}
	if dependencies.Clipboard == nil {
		dependencies.Clipboard = clipboard.NewService()
	}
	if dependencies.NewLogger == nil {
		dependencies.NewLogger = utils.NewApplicationLogger
	}
	if dependencies.NewTokenCounter == nil {
		dependencies.NewTokenCounter = tokenizer.NewCounter
	}
	return dependencies
}

// Execute runs the ctxtree application.
func Execute() error {
	rootCommand := NewRootCommand(Dependencies{})
	rootCommand.SetArgs(normalizeSwitchArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// NewRootCommand builds the root Cobra command.
func NewRootCommand(dependencies Dependencies) *cobra.Command {
	dependencies = dependencies.withDefaults()
	var flags flagValues

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if flags.showVersion {
				_, printError := fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				return printError
			}
			rootDirectory := defaultPath
			if len(arguments) == 1 {
				rootDirectory = arguments[0]
			}
			return runTree(command, dependencies, flags, rootDirectory)
		},
	}

	flagSet := rootCommand.Flags()
	flagSet.StringVar(&flags.configPath, configFlagName, "", configFlagDescription)
	flagSet.StringVarP(&flags.outputPath, outputFlagName, "o", utils.DefaultOutputFileName, outputFlagDescription)
	flagSet.StringVar(&flags.format, formatFlagName, types.FormatRaw, formatFlagDescription)
	flagSet.StringVar(&flags.ignoreFile, ignoreFileFlagName, utils.IgnoreFileName, ignoreFileFlagDescription)
	flagSet.StringVar(&flags.semantics, semanticsFlagName, string(ignore.SemanticsGlob), semanticsFlagDescription)
	flagSet.IntVar(&flags.concurrency, concurrencyFlagName, defaultConcurrency, concurrencyFlagDescription)
	flagSet.StringVar(&flags.model, modelFlagName, tokenizer.DefaultModel, modelFlagDescription)
	registerSwitchFlag(flagSet, &flags.toStdout, stdoutFlagName, "", stdoutFlagDescription)
	registerSwitchFlag(flagSet, &flags.caseInsensitive, caseInsensitiveFlagName, "", caseInsensitiveFlagDescription)
	registerSwitchFlag(flagSet, &flags.noIgnore, noIgnoreFlagName, "", noIgnoreFlagDescription)
	registerSwitchFlag(flagSet, &flags.noImports, noImportsFlagName, "", noImportsFlagDescription)
	registerSwitchFlag(flagSet, &flags.verbose, verboseFlagName, "v", verboseFlagDescription)
	registerSwitchFlag(flagSet, &flags.tokens, tokensFlagName, "", tokensFlagDescription)
	registerSwitchFlag(flagSet, &flags.copyReport, copyFlagName, "", copyFlagDescription)
	flagSet.BoolVar(&flags.showVersion, versionFlagName, false, versionFlagDescription)

	rootCommand.AddCommand(createInitCommand())
	return rootCommand
}

// runTree resolves settings, walks the repository and delivers the rendered report.
func runTree(command *cobra.Command, dependencies Dependencies, flags flagValues, rootDirectory string) error {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return fmt.Errorf(errorWorkingDirectoryFormat, workingDirectoryError)
	}
	configuration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: flags.configPath,
	})
	if configurationError != nil {
		return fmt.Errorf(errorLoadConfigFormat, configurationError)
	}
	settings, settingsError := resolveSettings(command, flags, rootDirectory, configuration)
	if settingsError != nil {
		return settingsError
	}

	logger, loggerError := dependencies.NewLogger(settings.verbose)
	if loggerError != nil {
		return fmt.Errorf(errorLoggerFormat, loggerError)
	}
	defer func() {
		_ = logger.Sync()
	}()

	report, buildError := buildReport(command.Context(), settings, logger)
	if buildError != nil {
		return buildError
	}
	rendered, renderError := output.Render(settings.format, report)
	if renderError != nil {
		return renderError
	}

	countFields := []zap.Field{zap.Int("files", report.Counts.Files), zap.Int("directories", report.Counts.Directories)}
	if settings.toStdout {
		if _, printError := io.WriteString(dependencies.Stdout, rendered); printError != nil {
			return fmt.Errorf(errorPrintReportFormat, printError)
		}
		logger.Info(logMessageReportPrinted, countFields...)
	} else {
		if writeError := output.WriteReport(settings.outputPath, rendered); writeError != nil {
			return writeError
		}
		logger.Info(logMessageReportWritten, append([]zap.Field{zap.String("path", settings.outputPath)}, countFields...)...)
	}

	if settings.tokensEnabled {
		reportTokenEstimate(dependencies, settings.tokenModel, rendered, logger)
	}
	if settings.copyReport {
		if copyError := dependencies.Clipboard.Copy(rendered); copyError != nil {
			logger.Warn(logMessageCopyFailed, zap.Error(copyError))
		} else {
			logger.Info(logMessageCopied)
		}
	}
	return nil
}

// buildReport compiles the rule file, walks the repository and counts the result.
func buildReport(ctx context.Context, settings runSettings, logger *zap.Logger) (types.TreeReport, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	treeBuilder := commands.TreeBuilder{
		IgnoreDisabled:         settings.ignoreDisabled,
		ImportTrackingDisabled: settings.importsDisabled,
		Concurrency:            settings.concurrency,
		Logger:                 logger,
	}
	if !settings.ignoreDisabled {
		rules := ignore.LoadRules(settings.ignoreFilePath, logger)
		matcher, ruleErrors := ignore.NewMatcher(rules, ignore.Options{
			Semantics:       settings.semantics,
			CaseInsensitive: settings.caseInsensitive,
		})
		if ruleErrors != nil {
			logger.Warn(logMessageRuleErrors, zap.String("path", settings.ignoreFilePath), zap.Error(ruleErrors))
		}
		logger.Debug(logMessageRulesCompiled, zap.String("semantics", matcher.Semantics()), zap.Int("rules", matcher.Len()))
		treeBuilder.Matcher = matcher
	}
	if !settings.importsDisabled {
		absoluteRoot, absoluteError := filepath.Abs(settings.rootDirectory)
		if absoluteError != nil {
			absoluteRoot = settings.rootDirectory
		}
		treeBuilder.Extractor = imports.NewDefaultExtractor(absoluteRoot, logger)
	}

	rootNode, treeError := treeBuilder.GetTreeData(ctx, settings.rootDirectory)
	if treeError != nil {
		return types.TreeReport{}, fmt.Errorf(errorBuildTreeFormat, settings.rootDirectory, treeError)
	}
	return types.TreeReport{Root: rootNode, Counts: commands.CountTree(rootNode.Children)}, nil
}

func reportTokenEstimate(dependencies Dependencies, model string, rendered string, logger *zap.Logger) {
	counter, counterError := dependencies.NewTokenCounter(model)
	if counterError != nil {
		logger.Warn(logMessageTokenUnavailable, zap.Error(counterError))
		return
	}
	tokenCount, countError := counter.CountString(rendered)
	if countError != nil {
		logger.Warn(logMessageTokenUnavailable, zap.Error(countError))
		return
	}
	logger.Info(logMessageTokenEstimate, zap.String("model", counter.Name()), zap.Int("tokens", tokenCount))
}
