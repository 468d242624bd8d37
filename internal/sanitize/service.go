package sanitize

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/temirov/grit/internal/bfgcli"
	"github.com/temirov/grit/internal/execshell"
	"github.com/temirov/grit/internal/gitrepo"
	"github.com/temirov/grit/internal/lfs"
	"github.com/temirov/grit/internal/pipeline"
)

const (
	sourceURLFieldNameConstant        = "source"
	sourceBranchFieldNameConstant     = "branch"
	workingDirectoryFieldNameConstant = "directory"
	requiredValueMessageConstant      = "value required"

	scratchCloneSuffixConstant = ".git"

	repositoryManagerMissingMessageConstant = "repository manager not configured"
	historyRewriterMissingMessageConstant   = "history rewriter not configured"
	lfsClientMissingMessageConstant         = "lfs client not configured"
	payloadReconcilerMissingMessageConstant = "lfs payload reconciler not configured"
	pathResolverMissingMessageConstant      = "command path resolver not configured"
	fileSystemMissingMessageConstant        = "filesystem not configured"
	nothingToFilterMessageConstant          = "folder globs and extensions are both empty"

	pathAlreadyExistsTemplateConstant   = "path already exists: %s"
	repositoryNameErrorTemplateConstant = "unable to derive repository name: %w"
	scratchRemovalErrorTemplateConstant = "unable to remove scratch clone: %w"

	workflowStartedMessageConstant = "Sanitize workflow starting"
	logFieldRepositoryConstant     = "repository"
	logFieldScratchCloneConstant   = "scratch_clone"
	logFieldDestinationConstant    = "destination"

	stageCloneScratchConstant           = "CloneScratch"
	stageMeasureInitialSizeConstant     = "MeasureInitialObjectStore"
	stageDeleteFoldersConstant          = "DeleteFolders"
	stageCompactAfterDeletionConstant   = "CompactAfterFolderDeletion"
	stageConvertExtensionsConstant      = "ConvertExtensionsToLFS"
	stageCompactAfterConversionConstant = "CompactAfterConversion"
	stageMeasureFinalSizeConstant       = "MeasureFinalObjectStore"
	stageCloneDestinationConstant       = "CloneDestination"
	stageReconcilePayloadsConstant      = "ReconcileLFSPayloads"
	stageVerifyCheckoutConstant         = "VerifyLFSCheckout"
	stageRemoveScratchConstant          = "RemoveScratchClone"
)

var (
	errRepositoryManagerMissing = errors.New(repositoryManagerMissingMessageConstant)
	errHistoryRewriterMissing   = errors.New(historyRewriterMissingMessageConstant)
	errLFSClientMissing         = errors.New(lfsClientMissingMessageConstant)
	errPayloadReconcilerMissing = errors.New(payloadReconcilerMissingMessageConstant)
	errPathResolverMissing      = errors.New(pathResolverMissingMessageConstant)
	errFileSystemMissing        = errors.New(fileSystemMissingMessageConstant)

	// ErrNothingToFilter reports a run with neither folder globs nor extensions configured.
	ErrNothingToFilter = errors.New(nothingToFilterMessageConstant)
)

// InvalidInputError describes sanitize option validation failures.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf("%s: %s", inputError.FieldName, inputError.Message)
}

// PathAlreadyExistsError reports a scratch or destination path that a run refuses to overwrite.
type PathAlreadyExistsError struct {
	Path string
}

// Error describes the occupied path.
func (pathError PathAlreadyExistsError) Error() string {
	return fmt.Sprintf(pathAlreadyExistsTemplateConstant, pathError.Path)
}

// WorkflowExecutor abstracts the sanitize service for command wiring and tests.
type WorkflowExecutor interface {
	Execute(executionContext context.Context, options WorkflowOptions) (WorkflowResult, error)
}

// ServiceDependencies describes required collaborators for the sanitize workflow.
type ServiceDependencies struct {
	Logger            *zap.Logger
	RepositoryManager *gitrepo.RepositoryManager
	HistoryRewriter   *bfgcli.Client
	LFSClient         *lfs.Client
	PayloadReconciler *lfs.PayloadReconciler
	PathResolver      execshell.CommandPathResolver
	FileSystem        afero.Fs
	Clock             pipeline.Clock
}

// WorkflowOptions configures a sanitize run.
type WorkflowOptions struct {
	SourceURL        string
	SourceBranch     string
	WorkingDirectory string
	FolderGlobs      []string
	Extensions       []string
}

// WorkflowResult captures the observable outcomes of a sanitize run.
type WorkflowResult struct {
	RepositoryName     string
	ScratchClonePath   string
	DestinationPath    string
	InitialObjectStore gitrepo.ObjectStoreReport
	FinalObjectStore   gitrepo.ObjectStoreReport
	PayloadReport      lfs.PayloadReconciliationReport
	StageOutcomes      []pipeline.StageOutcome
}

// Service orchestrates the sanitize workflow stages.
type Service struct {
	logger            *zap.Logger
	repositoryManager *gitrepo.RepositoryManager
	historyRewriter   *bfgcli.Client
	lfsClient         *lfs.Client
	payloadReconciler *lfs.PayloadReconciler
	pathResolver      execshell.CommandPathResolver
	fileSystem        afero.Fs
	stageExecutor     *pipeline.Executor
}

// NewService constructs a Service with the provided dependencies.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.RepositoryManager == nil {
		return nil, errRepositoryManagerMissing
	}
	if dependencies.HistoryRewriter == nil {
		return nil, errHistoryRewriterMissing
	}
	if dependencies.LFSClient == nil {
		return nil, errLFSClientMissing
	}
	if dependencies.PayloadReconciler == nil {
		return nil, errPayloadReconcilerMissing
	}
	if dependencies.PathResolver == nil {
		return nil, errPathResolverMissing
	}
	if dependencies.FileSystem == nil {
		return nil, errFileSystemMissing
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	service := &Service{
		logger:            logger,
		repositoryManager: dependencies.RepositoryManager,
		historyRewriter:   dependencies.HistoryRewriter,
		lfsClient:         dependencies.LFSClient,
		payloadReconciler: dependencies.PayloadReconciler,
		pathResolver:      dependencies.PathResolver,
		fileSystem:        dependencies.FileSystem,
		stageExecutor:     pipeline.NewExecutor(logger, dependencies.Clock),
	}

	return service, nil
}

// Execute performs the sanitize workflow.
//
// The scratch bare clone receives every history rewrite and is removed only
// after the destination clone passes large file storage verification.
func (service *Service) Execute(executionContext context.Context, options WorkflowOptions) (WorkflowResult, error) {
	if validationError := service.validateOptions(options); validationError != nil {
		return WorkflowResult{}, validationError
	}

	repositoryName, nameError := gitrepo.DeriveRepositoryName(options.SourceURL)
	if nameError != nil {
		return WorkflowResult{}, fmt.Errorf(repositoryNameErrorTemplateConstant, nameError)
	}

	result := WorkflowResult{
		RepositoryName:   repositoryName,
		ScratchClonePath: filepath.Join(options.WorkingDirectory, repositoryName+scratchCloneSuffixConstant),
		DestinationPath:  filepath.Join(options.WorkingDirectory, repositoryName),
	}

	if preflightError := service.resolveRequiredCommands(); preflightError != nil {
		return WorkflowResult{}, preflightError
	}

	if availabilityError := service.ensurePathsAvailable(result.ScratchClonePath, result.DestinationPath); availabilityError != nil {
		return WorkflowResult{}, availabilityError
	}

	service.logger.Info(workflowStartedMessageConstant,
		zap.String(logFieldRepositoryConstant, repositoryName),
		zap.String(logFieldScratchCloneConstant, result.ScratchClonePath),
		zap.String(logFieldDestinationConstant, result.DestinationPath),
	)

	stageOutcomes, pipelineError := service.stageExecutor.Run(executionContext, service.buildStages(options, &result))
	result.StageOutcomes = stageOutcomes
	if pipelineError != nil {
		return result, pipelineError
	}

	return result, nil
}

func (service *Service) validateOptions(options WorkflowOptions) error {
	if len(strings.TrimSpace(options.SourceURL)) == 0 {
		return InvalidInputError{FieldName: sourceURLFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if len(strings.TrimSpace(options.SourceBranch)) == 0 {
		return InvalidInputError{FieldName: sourceBranchFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if len(strings.TrimSpace(options.WorkingDirectory)) == 0 {
		return InvalidInputError{FieldName: workingDirectoryFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if len(options.FolderGlobs) == 0 && len(options.Extensions) == 0 {
		return ErrNothingToFilter
	}
	return nil
}

func (service *Service) resolveRequiredCommands() error {
	requiredCommands := []execshell.CommandName{execshell.CommandGit, execshell.CommandGitLFS, execshell.CommandBFG}
	for _, commandName := range requiredCommands {
		if _, resolveError := service.pathResolver.Resolve(commandName); resolveError != nil {
			return resolveError
		}
	}
	return nil
}

func (service *Service) ensurePathsAvailable(candidatePaths ...string) error {
	for _, candidatePath := range candidatePaths {
		pathExists, existenceError := afero.Exists(service.fileSystem, candidatePath)
		if existenceError != nil {
			return existenceError
		}
		if pathExists {
			return PathAlreadyExistsError{Path: candidatePath}
		}
	}
	return nil
}

func (service *Service) buildStages(options WorkflowOptions, result *WorkflowResult) []pipeline.Stage {
	stages := []pipeline.Stage{
		pipeline.NewStage(stageCloneScratchConstant, func(stageContext context.Context) error {
			return service.repositoryManager.CloneBare(stageContext, options.SourceURL, result.ScratchClonePath)
		}),
		pipeline.NewStage(stageMeasureInitialSizeConstant, func(stageContext context.Context) error {
			report, measureError := service.repositoryManager.CountObjects(stageContext, result.ScratchClonePath)
			if measureError != nil {
				return measureError
			}
			result.InitialObjectStore = report
			return nil
		}),
	}

	if len(options.FolderGlobs) > 0 {
		stages = append(stages,
			pipeline.NewStage(stageDeleteFoldersConstant, func(stageContext context.Context) error {
				return service.historyRewriter.DeleteFolders(stageContext, result.ScratchClonePath, options.FolderGlobs)
			}),
			pipeline.NewStage(stageCompactAfterDeletionConstant, func(stageContext context.Context) error {
				return service.compactRepository(stageContext, result.ScratchClonePath)
			}),
		)
	}

	if len(options.Extensions) > 0 {
		stages = append(stages,
			pipeline.NewStage(stageConvertExtensionsConstant, func(stageContext context.Context) error {
				return service.historyRewriter.ConvertToGitLFS(stageContext, result.ScratchClonePath, options.Extensions)
			}),
			pipeline.NewStage(stageCompactAfterConversionConstant, func(stageContext context.Context) error {
				return service.compactRepository(stageContext, result.ScratchClonePath)
			}),
		)
	}

	stages = append(stages,
		pipeline.NewStage(stageMeasureFinalSizeConstant, func(stageContext context.Context) error {
			report, measureError := service.repositoryManager.CountObjects(stageContext, result.ScratchClonePath)
			if measureError != nil {
				return measureError
			}
			result.FinalObjectStore = report
			return nil
		}),
		pipeline.NewStage(stageCloneDestinationConstant, func(stageContext context.Context) error {
			return service.repositoryManager.CloneBranch(stageContext, result.ScratchClonePath, options.SourceBranch, result.DestinationPath)
		}),
		pipeline.NewStage(stageReconcilePayloadsConstant, func(stageContext context.Context) error {
			payloadReport, reconcileError := service.payloadReconciler.ReconcilePayloads(result.ScratchClonePath, result.DestinationPath)
			if reconcileError != nil {
				return reconcileError
			}
			result.PayloadReport = payloadReport
			return nil
		}),
		pipeline.NewStage(stageVerifyCheckoutConstant, func(stageContext context.Context) error {
			return service.lfsClient.VerifyCheckout(stageContext, result.DestinationPath)
		}),
		pipeline.NewStage(stageRemoveScratchConstant, func(stageContext context.Context) error {
			if removalError := service.fileSystem.RemoveAll(result.ScratchClonePath); removalError != nil {
				return fmt.Errorf(scratchRemovalErrorTemplateConstant, removalError)
			}
			return nil
		}),
	)

	return stages
}

func (service *Service) compactRepository(executionContext context.Context, repositoryPath string) error {
	if expireError := service.repositoryManager.ExpireReflogEntries(executionContext, repositoryPath); expireError != nil {
		return expireError
	}
	return service.repositoryManager.RunGarbageCollection(executionContext, repositoryPath)
}
