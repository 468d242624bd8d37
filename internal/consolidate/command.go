package consolidate

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

	"github.com/temirov/grit/internal/execshell"
	"github.com/temirov/grit/internal/gitrepo"
	"github.com/temirov/grit/internal/lfs"
	"github.com/temirov/grit/internal/pipeline"
	"github.com/temirov/grit/internal/ui"
	"github.com/temirov/grit/internal/utils"
)

const (
	commandUseConstant              = "consolidate"
	commandShortDescriptionConstant = "Merge another repository's history into this one as a subdirectory"
	commandLongDescriptionConstant  = "consolidate fetches the source repository through a transient remote, relocates its entire tree into a subdirectory named after the import, and merges the relocated history into the target branch with an explicit merge commit. The repository in the working directory is mutated in place."

	commandExecutionErrorTemplateConstant = "consolidate failed: %w"

	nameFlagNameConstant       = "name"
	nameFlagUsageConstant      = "Import name used for the subdirectory, transient remote, and transient branch"
	sourceFlagNameConstant     = "source"
	sourceFlagUsageConstant    = "Source repository URL to consolidate"
	branchFlagNameConstant     = "branch"
	branchFlagUsageConstant    = "Branch fetched from the source repository"
	targetFlagNameConstant     = "target"
	targetFlagUsageConstant    = "Branch in the current repository receiving the merge"
	directoryFlagNameConstant  = "directory"
	directoryFlagUsageConstant = "Working directory holding the repository being consolidated into"

	repositoryManagerCreationErrorTemplate = "unable to construct repository manager: %w"
	lfsClientCreationErrorTemplate         = "unable to construct lfs client: %w"

	workflowCompletedMessageConstant       = "Consolidate workflow completed"
	summaryRenderFailedMessageConstant     = "Run summary rendering failed"
	logFieldOutcomeConstant                = "outcome"
	logFieldStateCountConstant             = "states"
	mergedNoteTemplateConstant             = "%s history merged into %s"
	manualActionNoteTemplateConstant       = "manual action required: reconcile submodule manifest %s before initializing submodules"
	submodulePathsNoteTemplateConstant     = "declared submodule paths: %s"
	submodulePathsSeparatorConstant        = ", "
	consolidateWorkflowSummaryNameConstant = "consolidate"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandExecutor runs git and git-lfs commands on behalf of the consolidate workflow.
type CommandExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
	ExecuteGitLFS(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// ServiceProvider constructs a consolidate executor from dependencies.
type ServiceProvider func(dependencies ServiceDependencies) (WorkflowExecutor, error)

type commandOptions struct {
	debugLoggingEnabled bool
	workflowOptions     WorkflowOptions
}

// CommandBuilder assembles the consolidate Cobra command.
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

// Build constructs the consolidate command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:           commandUseConstant,
		Short:         commandShortDescriptionConstant,
		Long:          commandLongDescriptionConstant,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE:          builder.runConsolidate,
	}

	defaults := DefaultCommandConfiguration()
	command.Flags().String(nameFlagNameConstant, "", nameFlagUsageConstant)
	command.Flags().String(sourceFlagNameConstant, "", sourceFlagUsageConstant)
	command.Flags().String(branchFlagNameConstant, defaults.SourceBranch, branchFlagUsageConstant)
	command.Flags().String(targetFlagNameConstant, defaults.TargetBranch, targetFlagUsageConstant)
	command.Flags().String(directoryFlagNameConstant, defaults.WorkingDirectory, directoryFlagUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) runConsolidate(command *cobra.Command, arguments []string) error {
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

	lfsClient, lfsClientError := lfs.NewClient(executor)
	if lfsClientError != nil {
		return fmt.Errorf(lfsClientCreationErrorTemplate, lfsClientError)
	}

	service, serviceError := builder.resolveService(ServiceDependencies{
		Logger:            logger,
		RepositoryManager: repositoryManager,
		LFSClient:         lfsClient,
		PathResolver:      builder.resolvePathResolver(),
		FileSystem:        builder.resolveFileSystem(),
		Clock:             builder.Clock,
	})
	if serviceError != nil {
		return serviceError
	}

	result, executionError := service.Execute(command.Context(), options.workflowOptions)
	if executionError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, executionError)
	}

	builder.reportResult(logger, options.workflowOptions, result)
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
		RepositoryName:   configuration.RepositoryName,
		SourceURL:        configuration.SourceURL,
		SourceBranch:     configuration.SourceBranch,
		TargetBranch:     configuration.TargetBranch,
		WorkingDirectory: configuration.WorkingDirectory,
	}

	if command != nil {
		flags := command.Flags()
		if flags.Changed(nameFlagNameConstant) {
			flagValue, _ := flags.GetString(nameFlagNameConstant)
			workflowOptions.RepositoryName = strings.TrimSpace(flagValue)
		}
		if flags.Changed(sourceFlagNameConstant) {
			flagValue, _ := flags.GetString(sourceFlagNameConstant)
			workflowOptions.SourceURL = strings.TrimSpace(flagValue)
		}
		if flags.Changed(branchFlagNameConstant) {
			flagValue, _ := flags.GetString(branchFlagNameConstant)
			workflowOptions.SourceBranch = strings.TrimSpace(flagValue)
		}
		if flags.Changed(targetFlagNameConstant) {
			flagValue, _ := flags.GetString(targetFlagNameConstant)
			workflowOptions.TargetBranch = strings.TrimSpace(flagValue)
		}
		if flags.Changed(directoryFlagNameConstant) {
			flagValue, _ := flags.GetString(directoryFlagNameConstant)
			workflowOptions.WorkingDirectory = strings.TrimSpace(flagValue)
		}
	}

	if len(workflowOptions.SourceBranch) == 0 {
		workflowOptions.SourceBranch = defaultSourceBranchConstant
	}
	if len(workflowOptions.TargetBranch) == 0 {
		workflowOptions.TargetBranch = defaultTargetBranchConstant
	}
	if len(workflowOptions.WorkingDirectory) == 0 {
		workflowOptions.WorkingDirectory = defaultWorkingDirectoryConstant
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

func (builder *CommandBuilder) reportResult(logger *zap.Logger, options WorkflowOptions, result WorkflowResult) {
	if logger != nil {
		completionFields := []zap.Field{
			zap.String(logFieldRepositoryConstant, result.RepositoryName),
			zap.String(logFieldTargetBranchConstant, options.TargetBranch),
			zap.String(logFieldOutcomeConstant, string(result.Outcome)),
			zap.Int(logFieldStateCountConstant, len(result.CompletedStates)),
		}
		if len(result.ManifestPath) > 0 {
			completionFields = append(completionFields, zap.String(logFieldManifestPathConstant, result.ManifestPath))
		}
		logger.Info(workflowCompletedMessageConstant, completionFields...)
	}

	if builder.HumanReadableLoggingProvider == nil || !builder.HumanReadableLoggingProvider() {
		return
	}

	renderer := ui.NewRunSummaryRenderer(builder.resolveSummaryWriter())
	if renderError := renderer.Render(buildRunSummary(options, result)); renderError != nil && logger != nil {
		logger.Warn(summaryRenderFailedMessageConstant, zap.Error(renderError))
	}
}

func buildRunSummary(options WorkflowOptions, result WorkflowResult) ui.RunSummary {
	stageSummaries := make([]ui.StageSummary, 0, len(result.StageOutcomes))
	for _, stageOutcome := range result.StageOutcomes {
		stageSummaries = append(stageSummaries, ui.StageSummary{StageName: stageOutcome.StageName, Duration: stageOutcome.Duration})
	}

	notes := []string{fmt.Sprintf(mergedNoteTemplateConstant, result.RepositoryName, options.TargetBranch)}
	if result.Outcome == OutcomeSubmoduleConflict {
		notes = append(notes, fmt.Sprintf(manualActionNoteTemplateConstant, result.ManifestPath))
		if len(result.SubmodulePaths) > 0 {
			notes = append(notes, fmt.Sprintf(submodulePathsNoteTemplateConstant, strings.Join(result.SubmodulePaths, submodulePathsSeparatorConstant)))
		}
	}

	return ui.RunSummary{
		WorkflowName:   consolidateWorkflowSummaryNameConstant,
		RepositoryName: result.RepositoryName,
		Stages:         stageSummaries,
		Notes:          notes,
	}
}
