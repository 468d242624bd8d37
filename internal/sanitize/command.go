package sanitize

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/temirov/grit/internal/bfgcli"
	"github.com/temirov/grit/internal/execshell"
	"github.com/temirov/grit/internal/gitrepo"
	"github.com/temirov/grit/internal/lfs"
	"github.com/temirov/grit/internal/pipeline"
	"github.com/temirov/grit/internal/ui"
	"github.com/temirov/grit/internal/utils"
)

const (
	commandUseConstant              = "sanitize"
	commandShortDescriptionConstant = "Rewrite repository history to drop folders and migrate binaries to LFS"
	commandLongDescriptionConstant  = "sanitize mirrors the source repository into a scratch bare clone, deletes the configured directory names and converts the configured extensions to Git LFS pointers across the full history, compacts the object store, and materializes a verified working clone for inspection."

	commandExecutionErrorTemplateConstant = "sanitize failed: %w"

	sourceFlagNameConstant      = "source"
	sourceFlagUsageConstant     = "Source repository URL to sanitize"
	branchFlagNameConstant      = "branch"
	branchFlagUsageConstant     = "Branch checked out in the destination clone"
	directoryFlagNameConstant   = "directory"
	directoryFlagUsageConstant  = "Working directory receiving the scratch and destination clones"
	foldersFlagNameConstant     = "folders"
	foldersFlagUsageConstant    = "Directory name globs removed from every historical tree"
	extensionsFlagNameConstant  = "extensions"
	extensionsFlagUsageConstant = "File extensions converted to LFS pointers across history"

	repositoryManagerCreationErrorTemplate = "unable to construct repository manager: %w"
	historyRewriterCreationErrorTemplate   = "unable to construct history rewriter: %w"
	lfsClientCreationErrorTemplate         = "unable to construct lfs client: %w"
	payloadReconcilerCreationErrorTemplate = "unable to construct payload reconciler: %w"

	workflowCompletedMessageConstant    = "Sanitize workflow completed"
	summaryRenderFailedMessageConstant  = "Run summary rendering failed"
	logFieldStageCountConstant          = "stages"
	logFieldInitialStoreBytesConstant   = "initial_object_store_bytes"
	logFieldFinalStoreBytesConstant     = "final_object_store_bytes"
	logFieldCopiedPayloadCountConstant  = "copied_lfs_payloads"
	destinationNoteTemplateConstant     = "sanitized clone ready for inspection at %s"
	sanitizeWorkflowSummaryNameConstant = "sanitize"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandExecutor runs git, git-lfs, and bfg commands on behalf of the sanitize workflow.
type CommandExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
	ExecuteGitLFS(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
	ExecuteBFG(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// ServiceProvider constructs a sanitize executor from dependencies.
type ServiceProvider func(dependencies ServiceDependencies) (WorkflowExecutor, error)

type commandOptions struct {
	debugLoggingEnabled bool
	workflowOptions     WorkflowOptions
}

// CommandBuilder assembles the sanitize Cobra command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	Executor                     CommandExecutor
	ServiceProvider              ServiceProvider
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
	PathResolver                 execshell.CommandPathResolver
	FileSystem                   afero.Fs
	Clock                        pipeline.Clock
	SummaryWriter                io.Writer
}

// Build constructs the sanitize command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:           commandUseConstant,
		Short:         commandShortDescriptionConstant,
		Long:          commandLongDescriptionConstant,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE:          builder.runSanitize,
	}

	defaults := DefaultCommandConfiguration()
	command.Flags().String(sourceFlagNameConstant, "", sourceFlagUsageConstant)
	command.Flags().String(branchFlagNameConstant, defaults.SourceBranch, branchFlagUsageConstant)
	command.Flags().String(directoryFlagNameConstant, defaults.WorkingDirectory, directoryFlagUsageConstant)
	command.Flags().StringSlice(foldersFlagNameConstant, nil, foldersFlagUsageConstant)
	command.Flags().StringSlice(extensionsFlagNameConstant, defaults.Extensions, extensionsFlagUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) runSanitize(command *cobra.Command, arguments []string) error {
	options, optionsError := builder.parseOptions(command)
	if optionsError != nil {
		return optionsError
	}

	logger := builder.resolveLogger(options.debugLoggingEnabled)

	executor, executorError := builder.resolveExecutor(logger)
	if executorError != nil {
		return executorError
	}

	repositoryManager, managerError := gitrepo.NewRepositoryManager(executor)
	if managerError != nil {
		return fmt.Errorf(repositoryManagerCreationErrorTemplate, managerError)
	}

	historyRewriter, rewriterError := bfgcli.NewClient(executor)
	if rewriterError != nil {
		return fmt.Errorf(historyRewriterCreationErrorTemplate, rewriterError)
	}

	lfsClient, lfsClientError := lfs.NewClient(executor)
	if lfsClientError != nil {
		return fmt.Errorf(lfsClientCreationErrorTemplate, lfsClientError)
	}

	fileSystem := builder.resolveFileSystem()

	payloadReconciler, reconcilerError := lfs.NewPayloadReconciler(fileSystem)
	if reconcilerError != nil {
		return fmt.Errorf(payloadReconcilerCreationErrorTemplate, reconcilerError)
	}

	service, serviceError := builder.resolveService(ServiceDependencies{
		Logger:            logger,
		RepositoryManager: repositoryManager,
		HistoryRewriter:   historyRewriter,
		LFSClient:         lfsClient,
		PayloadReconciler: payloadReconciler,
		PathResolver:      builder.resolvePathResolver(),
		FileSystem:        fileSystem,
		Clock:             builder.Clock,
	})
	if serviceError != nil {
		return serviceError
	}

	result, executionError := service.Execute(command.Context(), options.workflowOptions)
	if executionError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, executionError)
	}

	builder.reportResult(logger, result)
	return nil
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command) (commandOptions, error) {
	configuration := builder.resolveConfiguration()

	debugEnabled := false
	if command != nil {
		contextAccessor := utils.NewCommandContextAccessor()
		if logLevel, available := contextAccessor.LogLevel(command.Context()); available {
			if strings.EqualFold(logLevel, string(utils.LogLevelDebug)) {
				debugEnabled = true
			}
		}
	}

	workflowOptions := WorkflowOptions{
		SourceURL:        configuration.SourceURL,
		SourceBranch:     configuration.SourceBranch,
		WorkingDirectory: configuration.WorkingDirectory,
		FolderGlobs:      configuration.FolderGlobs,
		Extensions:       configuration.Extensions,
	}

	extensionsExplicitlyCleared := false
	if command != nil {
		flags := command.Flags()
		if flags.Changed(sourceFlagNameConstant) {
			flagValue, _ := flags.GetString(sourceFlagNameConstant)
			workflowOptions.SourceURL = strings.TrimSpace(flagValue)
		}
		if flags.Changed(branchFlagNameConstant) {
			flagValue, _ := flags.GetString(branchFlagNameConstant)
			workflowOptions.SourceBranch = strings.TrimSpace(flagValue)
		}
		if flags.Changed(directoryFlagNameConstant) {
			flagValue, _ := flags.GetString(directoryFlagNameConstant)
			workflowOptions.WorkingDirectory = strings.TrimSpace(flagValue)
		}
		if flags.Changed(foldersFlagNameConstant) {
			flagValues, _ := flags.GetStringSlice(foldersFlagNameConstant)
			workflowOptions.FolderGlobs = compactListEntries(flagValues)
		}
		if flags.Changed(extensionsFlagNameConstant) {
			flagValues, _ := flags.GetStringSlice(extensionsFlagNameConstant)
			workflowOptions.Extensions = compactListEntries(flagValues)
			extensionsExplicitlyCleared = len(workflowOptions.Extensions) == 0
		}
	}

	if len(workflowOptions.SourceBranch) == 0 {
		workflowOptions.SourceBranch = defaultSourceBranchConstant
	}
	if len(workflowOptions.WorkingDirectory) == 0 {
		workflowOptions.WorkingDirectory = defaultWorkingDirectoryConstant
	}
	if len(workflowOptions.Extensions) == 0 && !extensionsExplicitlyCleared {
		workflowOptions.Extensions = DefaultExtensionSet()
	}

	return commandOptions{debugLoggingEnabled: debugEnabled, workflowOptions: workflowOptions}, nil
}

func (builder *CommandBuilder) resolveLogger(enableDebug bool) *zap.Logger {
	var logger *zap.Logger
	if builder.LoggerProvider != nil {
		logger = builder.LoggerProvider()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if enableDebug {
		logger = logger.WithOptions(zap.IncreaseLevel(zapcore.DebugLevel))
	}
	return logger
}

func (builder *CommandBuilder) resolveExecutor(logger *zap.Logger) (CommandExecutor, error) {
	if builder.Executor != nil {
		return builder.Executor, nil
	}

	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}

	shellExecutor, creationError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner(), humanReadableLogging)
	if creationError != nil {
		return nil, creationError
	}
	if humanReadableLogging {
		shellExecutor.SetCommandEventObserver(ui.NewConsoleCommandEventLogger(logger))
	}
	return shellExecutor, nil
}

func (builder *CommandBuilder) resolvePathResolver() execshell.CommandPathResolver {
	if builder.PathResolver != nil {
		return builder.PathResolver
	}
	return execshell.NewOSCommandPathResolver()
}

func (builder *CommandBuilder) resolveFileSystem() afero.Fs {
	if builder.FileSystem != nil {
		return builder.FileSystem
	}
	return afero.NewOsFs()
}

func (builder *CommandBuilder) resolveService(dependencies ServiceDependencies) (WorkflowExecutor, error) {
	if builder.ServiceProvider != nil {
		return builder.ServiceProvider(dependencies)
	}
	return NewService(dependencies)
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}

	provided := builder.ConfigurationProvider()
	return provided.Sanitize()
}

func (builder *CommandBuilder) resolveSummaryWriter() io.Writer {
	if builder.SummaryWriter != nil {
		return builder.SummaryWriter
	}
	return utils.NewFlushingWriter(os.Stdout)
}

func (builder *CommandBuilder) reportResult(logger *zap.Logger, result WorkflowResult) {
	if logger != nil {
		logger.Info(workflowCompletedMessageConstant,
			zap.String(logFieldRepositoryConstant, result.RepositoryName),
			zap.String(logFieldDestinationConstant, result.DestinationPath),
			zap.Int(logFieldStageCountConstant, len(result.StageOutcomes)),
			zap.Uint64(logFieldInitialStoreBytesConstant, result.InitialObjectStore.TotalSizeBytes()),
			zap.Uint64(logFieldFinalStoreBytesConstant, result.FinalObjectStore.TotalSizeBytes()),
			zap.Int(logFieldCopiedPayloadCountConstant, result.PayloadReport.CopiedObjectCount),
		)
	}

	if builder.HumanReadableLoggingProvider == nil || !builder.HumanReadableLoggingProvider() {
		return
	}

	renderer := ui.NewRunSummaryRenderer(builder.resolveSummaryWriter())
	if renderError := renderer.Render(buildRunSummary(result)); renderError != nil && logger != nil {
		logger.Warn(summaryRenderFailedMessageConstant, zap.Error(renderError))
	}
}

func buildRunSummary(result WorkflowResult) ui.RunSummary {
	stageSummaries := make([]ui.StageSummary, 0, len(result.StageOutcomes))
	for _, stageOutcome := range result.StageOutcomes {
		stageSummaries = append(stageSummaries, ui.StageSummary{StageName: stageOutcome.StageName, Duration: stageOutcome.Duration})
	}

	return ui.RunSummary{
		WorkflowName:   sanitizeWorkflowSummaryNameConstant,
		RepositoryName: result.RepositoryName,
		Stages:         stageSummaries,
		SizeChange: &ui.ObjectStoreSizeChange{
			InitialBytes: result.InitialObjectStore.TotalSizeBytes(),
			FinalBytes:   result.FinalObjectStore.TotalSizeBytes(),
		},
		Notes: []string{fmt.Sprintf(destinationNoteTemplateConstant, result.DestinationPath)},
	}
}
