package consolidate

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/temirov/grit/internal/execshell"
	"github.com/temirov/grit/internal/gitrepo"
	"github.com/temirov/grit/internal/lfs"
	"github.com/temirov/grit/internal/pipeline"
)

const (
	repositoryNameFieldNameConstant   = "name"
	sourceURLFieldNameConstant        = "source"
	sourceBranchFieldNameConstant     = "branch"
	targetBranchFieldNameConstant     = "target"
	workingDirectoryFieldNameConstant = "directory"
	requiredValueMessageConstant      = "value required"
	plainNameMessageConstant          = "must be a plain directory name"
	reservedNameMessageConstant       = "conflicts with repository metadata"

	importBranchSuffixConstant       = "-import"
	branchReferenceSeparatorConstant = "/"

	importCommitMessageTemplateConstant = "Relocate %s files into %s/"
	mergeCommitMessageTemplateConstant  = "Merge %s history into %s"

	repositoryManagerMissingMessageConstant = "repository manager not configured"
	lfsClientMissingMessageConstant         = "lfs client not configured"
	pathResolverMissingMessageConstant      = "command path resolver not configured"
	fileSystemMissingMessageConstant        = "filesystem not configured"

	submoduleInitializationErrorTemplateConstant = "unable to initialize submodules: %w"

	workflowStartedMessageConstant   = "Consolidate workflow starting"
	manifestSurvivedMessageConstant  = "Submodule manifest survived the merge"
	logFieldRepositoryConstant       = "repository"
	logFieldImportBranchConstant     = "import_branch"
	logFieldTargetBranchConstant     = "target_branch"
	logFieldWorkingDirectoryConstant = "working_directory"
	logFieldManifestPathConstant     = "manifest_path"
	logFieldSubmodulePathsConstant   = "submodule_paths"
)

// WorkflowState names a completed step of the consolidate state machine.
type WorkflowState string

// Consolidate workflow states in execution order.
const (
	StateClean                 WorkflowState = "Clean"
	StateRemoteAdded           WorkflowState = "RemoteAdded"
	StateFetched               WorkflowState = "Fetched"
	StateBranchCreated         WorkflowState = "BranchCreated"
	StateSubmodulesNeutralized WorkflowState = "SubmodulesNeutralized"
	StateCheckedOut            WorkflowState = "CheckedOut"
	StateLFSFetched            WorkflowState = "LFSFetched"
	StateCompacted             WorkflowState = "Compacted"
	StateEmptyDirsPruned       WorkflowState = "EmptyDirsPruned"
	StateRelocated             WorkflowState = "Relocated"
	StateCommitted             WorkflowState = "Committed"
	StateMerged                WorkflowState = "Merged"
	StateBranchRemoved         WorkflowState = "BranchRemoved"
	StateRemoteRemoved         WorkflowState = "RemoteRemoved"
)

// Outcome classifies how a completed consolidate run finished.
type Outcome string

const (
	// OutcomeDone reports a fully merged import with submodules initialized.
	OutcomeDone Outcome = "Done"
	// OutcomeSubmoduleConflict reports a merged import whose submodule manifest
	// requires manual reconciliation before initialization.
	OutcomeSubmoduleConflict Outcome = "SubmoduleConflict"
)

var (
	errRepositoryManagerMissing = errors.New(repositoryManagerMissingMessageConstant)
	errLFSClientMissing         = errors.New(lfsClientMissingMessageConstant)
	errPathResolverMissing      = errors.New(pathResolverMissingMessageConstant)
	errFileSystemMissing        = errors.New(fileSystemMissingMessageConstant)
)

// InvalidInputError describes consolidate option validation failures.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf("%s: %s", inputError.FieldName, inputError.Message)
}

// WorkflowExecutor abstracts the consolidate service for command wiring and tests.
type WorkflowExecutor interface {
	Execute(executionContext context.Context, options WorkflowOptions) (WorkflowResult, error)
}

// ServiceDependencies describes required collaborators for the consolidate workflow.
type ServiceDependencies struct {
	Logger            *zap.Logger
	RepositoryManager *gitrepo.RepositoryManager
	LFSClient         *lfs.Client
	PathResolver      execshell.CommandPathResolver
	FileSystem        afero.Fs
	Clock             pipeline.Clock
}

// WorkflowOptions configures a consolidate run.
type WorkflowOptions struct {
	RepositoryName   string
	SourceURL        string
	SourceBranch     string
	TargetBranch     string
	WorkingDirectory string
}

// WorkflowResult captures the observable outcomes of a consolidate run.
//
// Outcome stays empty while the state machine is interrupted; CompletedStates
// then names every state reached before the halt.
type WorkflowResult struct {
	RepositoryName    string
	ImportBranch      string
	RemoteName        string
	Outcome           Outcome
	ManifestPath      string
	SubmodulePaths    []string
	RelocatedEntries  []string
	PrunedDirectories []string
	CompletedStates   []WorkflowState
	StageOutcomes     []pipeline.StageOutcome
}

// Service orchestrates the consolidate workflow states.
type Service struct {
	logger               *zap.Logger
	repositoryManager    *gitrepo.RepositoryManager
	lfsClient            *lfs.Client
	pathResolver         execshell.CommandPathResolver
	fileSystem           afero.Fs
	relocator            *Relocator
	emptyDirectoryPruner *EmptyDirectoryPruner
	manifestScanner      *ManifestScanner
	stageExecutor        *pipeline.Executor
}

// NewService constructs a Service with the provided dependencies.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.RepositoryManager == nil {
		return nil, errRepositoryManagerMissing
	}
	if dependencies.LFSClient == nil {
		return nil, errLFSClientMissing
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

	relocator, relocatorError := NewRelocator(dependencies.FileSystem, dependencies.Clock)
	if relocatorError != nil {
		return nil, relocatorError
	}
	emptyDirectoryPruner, prunerError := NewEmptyDirectoryPruner(dependencies.FileSystem)
	if prunerError != nil {
		return nil, prunerError
	}
	manifestScanner, scannerError := NewManifestScanner(dependencies.FileSystem)
	if scannerError != nil {
		return nil, scannerError
	}

	service := &Service{
		logger:               logger,
		repositoryManager:    dependencies.RepositoryManager,
		lfsClient:            dependencies.LFSClient,
		pathResolver:         dependencies.PathResolver,
		fileSystem:           dependencies.FileSystem,
		relocator:            relocator,
		emptyDirectoryPruner: emptyDirectoryPruner,
		manifestScanner:      manifestScanner,
		stageExecutor:        pipeline.NewExecutor(logger, dependencies.Clock),
	}

	return service, nil
}

// Execute performs the consolidate workflow against the target repository in
// the configured working directory. A failed state leaves the repository in
// its partially transitioned form for manual inspection; nothing is rolled
// back automatically.
func (service *Service) Execute(executionContext context.Context, options WorkflowOptions) (WorkflowResult, error) {
	if validationError := service.validateOptions(options); validationError != nil {
		return WorkflowResult{}, validationError
	}

	if preflightError := service.resolveRequiredCommands(); preflightError != nil {
		return WorkflowResult{}, preflightError
	}

	result := WorkflowResult{
		RepositoryName: options.RepositoryName,
		ImportBranch:   options.RepositoryName + importBranchSuffixConstant,
		RemoteName:     options.RepositoryName,
	}

	service.logger.Info(workflowStartedMessageConstant,
		zap.String(logFieldRepositoryConstant, options.RepositoryName),
		zap.String(logFieldImportBranchConstant, result.ImportBranch),
		zap.String(logFieldTargetBranchConstant, options.TargetBranch),
		zap.String(logFieldWorkingDirectoryConstant, options.WorkingDirectory),
	)

	stageOutcomes, pipelineError := service.stageExecutor.Run(executionContext, service.buildStages(options, &result))
	result.StageOutcomes = stageOutcomes
	result.CompletedStates = completedStates(stageOutcomes)
	if pipelineError != nil {
		return result, pipelineError
	}

	if finalizeError := service.finalizeOutcome(executionContext, options, &result); finalizeError != nil {
		return result, finalizeError
	}

	return result, nil
}

func (service *Service) validateOptions(options WorkflowOptions) error {
	trimmedName := strings.TrimSpace(options.RepositoryName)
	if len(trimmedName) == 0 {
		return InvalidInputError{FieldName: repositoryNameFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if strings.ContainsAny(trimmedName, `/\`) || trimmedName == "." || trimmedName == ".." {
		return InvalidInputError{FieldName: repositoryNameFieldNameConstant, Message: plainNameMessageConstant}
	}
	if trimmedName == gitMetadataDirectoryNameConstant {
		return InvalidInputError{FieldName: repositoryNameFieldNameConstant, Message: reservedNameMessageConstant}
	}
	if len(strings.TrimSpace(options.SourceURL)) == 0 {
		return InvalidInputError{FieldName: sourceURLFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if len(strings.TrimSpace(options.SourceBranch)) == 0 {
		return InvalidInputError{FieldName: sourceBranchFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if len(strings.TrimSpace(options.TargetBranch)) == 0 {
		return InvalidInputError{FieldName: targetBranchFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if len(strings.TrimSpace(options.WorkingDirectory)) == 0 {
		return InvalidInputError{FieldName: workingDirectoryFieldNameConstant, Message: requiredValueMessageConstant}
	}
	return nil
}

func (service *Service) resolveRequiredCommands() error {
	requiredCommands := []execshell.CommandName{execshell.CommandGit, execshell.CommandGitLFS}
	for _, commandName := range requiredCommands {
		if _, resolveError := service.pathResolver.Resolve(commandName); resolveError != nil {
			return resolveError
		}
	}
	return nil
}

func (service *Service) buildStages(options WorkflowOptions, result *WorkflowResult) []pipeline.Stage {
	repositoryPath := options.WorkingDirectory
	importStartPoint := result.RemoteName + branchReferenceSeparatorConstant + options.SourceBranch

	return []pipeline.Stage{
		pipeline.NewStage(string(StateClean), func(stageContext context.Context) error {
			if discardError := service.repositoryManager.DiscardWorktreeChanges(stageContext, repositoryPath); discardError != nil {
				return discardError
			}
			return service.repositoryManager.RemoveUntrackedFiles(stageContext, repositoryPath)
		}),
		pipeline.NewStage(string(StateRemoteAdded), func(stageContext context.Context) error {
			return service.repositoryManager.AddRemote(stageContext, repositoryPath, result.RemoteName, options.SourceURL)
		}),
		pipeline.NewStage(string(StateFetched), func(stageContext context.Context) error {
			return service.repositoryManager.FetchBranch(stageContext, repositoryPath, result.RemoteName, options.SourceBranch)
		}),
		pipeline.NewStage(string(StateBranchCreated), func(stageContext context.Context) error {
			return service.repositoryManager.CreateBranchWithoutTracking(stageContext, repositoryPath, result.ImportBranch, importStartPoint)
		}),
		pipeline.NewStage(string(StateSubmodulesNeutralized), func(stageContext context.Context) error {
			return service.repositoryManager.DeinitializeSubmodules(stageContext, repositoryPath)
		}),
		pipeline.NewStage(string(StateCheckedOut), func(stageContext context.Context) error {
			return service.repositoryManager.CheckoutBranch(stageContext, repositoryPath, result.ImportBranch)
		}),
		pipeline.NewStage(string(StateLFSFetched), func(stageContext context.Context) error {
			return service.lfsClient.FetchFullHistory(stageContext, repositoryPath, result.RemoteName, options.SourceBranch)
		}),
		pipeline.NewStage(string(StateCompacted), func(stageContext context.Context) error {
			return service.compactRepository(stageContext, repositoryPath)
		}),
		pipeline.NewStage(string(StateEmptyDirsPruned), func(stageContext context.Context) error {
			prunedDirectories, pruneError := service.emptyDirectoryPruner.PruneEmptyDirectories(repositoryPath)
			if pruneError != nil {
				return pruneError
			}
			result.PrunedDirectories = prunedDirectories
			return nil
		}),
		pipeline.NewStage(string(StateRelocated), func(stageContext context.Context) error {
			relocationReport, relocationError := service.relocator.RelocateTopLevelEntries(repositoryPath, options.RepositoryName)
			if relocationError != nil {
				return relocationError
			}
			result.RelocatedEntries = relocationReport.RelocatedEntries
			return nil
		}),
		pipeline.NewStage(string(StateCommitted), func(stageContext context.Context) error {
			if stagingError := service.repositoryManager.StageAllChanges(stageContext, repositoryPath); stagingError != nil {
				return stagingError
			}
			commitMessage := fmt.Sprintf(importCommitMessageTemplateConstant, options.RepositoryName, options.RepositoryName)
			return service.repositoryManager.CreateCommit(stageContext, repositoryPath, commitMessage)
		}),
		pipeline.NewStage(string(StateMerged), func(stageContext context.Context) error {
			if checkoutError := service.repositoryManager.CheckoutExistingBranch(stageContext, repositoryPath, options.TargetBranch); checkoutError != nil {
				return checkoutError
			}
			mergeMessage := fmt.Sprintf(mergeCommitMessageTemplateConstant, options.RepositoryName, options.TargetBranch)
			return service.repositoryManager.MergeUnrelatedHistories(stageContext, repositoryPath, result.ImportBranch, mergeMessage)
		}),
		pipeline.NewStage(string(StateBranchRemoved), func(stageContext context.Context) error {
			return service.repositoryManager.ForceDeleteBranch(stageContext, repositoryPath, result.ImportBranch)
		}),
		pipeline.NewStage(string(StateRemoteRemoved), func(stageContext context.Context) error {
			return service.repositoryManager.RemoveRemote(stageContext, repositoryPath, result.RemoteName)
		}),
	}
}

func (service *Service) finalizeOutcome(executionContext context.Context, options WorkflowOptions, result *WorkflowResult) error {
	importedTreePath := filepath.Join(options.WorkingDirectory, options.RepositoryName)
	scanReport, scanError := service.manifestScanner.ScanTree(importedTreePath)
	if scanError != nil {
		return scanError
	}

	if scanReport.ManifestPresent {
		result.Outcome = OutcomeSubmoduleConflict
		result.ManifestPath = scanReport.ManifestPath
		result.SubmodulePaths = scanReport.SubmodulePaths
		service.logger.Warn(manifestSurvivedMessageConstant,
			zap.String(logFieldManifestPathConstant, scanReport.ManifestPath),
			zap.Strings(logFieldSubmodulePathsConstant, scanReport.SubmodulePaths),
		)
		return nil
	}

	if initializationError := service.repositoryManager.InitializeSubmodules(executionContext, options.WorkingDirectory); initializationError != nil {
		return fmt.Errorf(submoduleInitializationErrorTemplateConstant, initializationError)
	}

	result.Outcome = OutcomeDone
	return nil
}

func (service *Service) compactRepository(executionContext context.Context, repositoryPath string) error {
	if expireError := service.repositoryManager.ExpireReflogEntries(executionContext, repositoryPath); expireError != nil {
		return expireError
	}
	return service.repositoryManager.RunGarbageCollection(executionContext, repositoryPath)
}

func completedStates(stageOutcomes []pipeline.StageOutcome) []WorkflowState {
	states := make([]WorkflowState, 0, len(stageOutcomes))
	for _, stageOutcome := range stageOutcomes {
		states = append(states, WorkflowState(stageOutcome.StageName))
	}
	return states
}
