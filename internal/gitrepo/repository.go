package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/temirov/grit/internal/execshell"
)

const (
	cloneSubcommandConstant                 = "clone"
	bareFlagConstant                        = "--bare"
	branchSelectionFlagConstant             = "--branch"
	remoteSubcommandConstant                = "remote"
	remoteAddSubcommandConstant             = "add"
	remoteRemoveSubcommandConstant          = "remove"
	fetchSubcommandConstant                 = "fetch"
	branchSubcommandConstant                = "branch"
	noTrackFlagConstant                     = "--no-track"
	forceDeleteBranchFlagConstant           = "-D"
	checkoutSubcommandConstant              = "checkout"
	noGuessFlagConstant                     = "--no-guess"
	mergeSubcommandConstant                 = "merge"
	allowUnrelatedHistoriesFlagConstant     = "--allow-unrelated-histories"
	noFastForwardFlagConstant               = "--no-ff"
	commitMessageFlagConstant               = "-m"
	submoduleSubcommandConstant             = "submodule"
	submoduleDeinitSubcommandConstant       = "deinit"
	submoduleUpdateSubcommandConstant       = "update"
	allFlagConstant                         = "--all"
	forceFlagConstant                       = "--force"
	initFlagConstant                        = "--init"
	recursiveFlagConstant                   = "--recursive"
	resetSubcommandConstant                 = "reset"
	hardResetFlagConstant                   = "--hard"
	cleanSubcommandConstant                 = "clean"
	cleanForceAllFlagConstant               = "-ffdx"
	addSubcommandConstant                   = "add"
	commitSubcommandConstant                = "commit"
	reflogSubcommandConstant                = "reflog"
	reflogExpireSubcommandConstant          = "expire"
	expireNowFlagConstant                   = "--expire=now"
	gcSubcommandConstant                    = "gc"
	pruneNowFlagConstant                    = "--prune=now"
	aggressiveFlagConstant                  = "--aggressive"
	countObjectsSubcommandConstant          = "count-objects"
	verboseFlagConstant                     = "-v"
	repositoryPathFieldNameConstant         = "repository_path"
	sourceFieldNameConstant                 = "source"
	destinationFieldNameConstant            = "destination"
	remoteNameFieldNameConstant             = "remote_name"
	remoteURLFieldNameConstant              = "remote_url"
	branchNameFieldNameConstant             = "branch_name"
	startPointFieldNameConstant             = "start_point"
	commitMessageFieldNameConstant          = "commit_message"
	requiredValueMessageConstant            = "value required"
	executorNotConfiguredMessageConstant    = "git executor not configured"
	operationErrorMessageTemplateConstant   = "%s operation failed"
	operationErrorWithCauseTemplateConstant = "%s operation failed: %s"
	invalidInputErrorTemplateConstant       = "%s: %s"
	objectStoreRecordSeparatorConstant      = ":"
	looseObjectCountRecordKeyConstant       = "count"
	looseObjectSizeRecordKeyConstant        = "size"
	packedObjectSizeRecordKeyConstant       = "size-pack"
	kibibyteSizeConstant                    = 1024
	cloneBareOperationNameConstant          = OperationName("CloneBareRepository")
	cloneBranchOperationNameConstant        = OperationName("CloneBranch")
	expireReflogOperationNameConstant       = OperationName("ExpireReflogEntries")
	garbageCollectOperationNameConstant     = OperationName("RunGarbageCollection")
	countObjectsOperationNameConstant       = OperationName("CountObjects")
	discardChangesOperationNameConstant     = OperationName("DiscardWorktreeChanges")
	removeUntrackedOperationNameConstant    = OperationName("RemoveUntrackedFiles")
	addRemoteOperationNameConstant          = OperationName("AddRemote")
	removeRemoteOperationNameConstant       = OperationName("RemoveRemote")
	fetchBranchOperationNameConstant        = OperationName("FetchBranch")
	createBranchOperationNameConstant       = OperationName("CreateBranch")
	deleteBranchOperationNameConstant       = OperationName("DeleteBranch")
	checkoutBranchOperationNameConstant     = OperationName("CheckoutBranch")
	mergeBranchOperationNameConstant        = OperationName("MergeBranch")
	deinitSubmodulesOperationNameConstant   = OperationName("DeinitializeSubmodules")
	initSubmodulesOperationNameConstant     = OperationName("InitializeSubmodules")
	stageChangesOperationNameConstant       = OperationName("StageChanges")
	createCommitOperationNameConstant       = OperationName("CreateCommit")
)

// OperationName describes a named git workflow supported by the manager.
type OperationName string

// ObjectStoreReport captures the size measurements reported by git count-objects.
type ObjectStoreReport struct {
	LooseObjectCount           int64
	LooseObjectsSizeKibibytes  int64
	PackedObjectsSizeKibibytes int64
}

// TotalSizeBytes sums loose and packed object sizes in bytes.
func (report ObjectStoreReport) TotalSizeBytes() uint64 {
	totalKibibytes := report.LooseObjectsSizeKibibytes + report.PackedObjectsSizeKibibytes
	if totalKibibytes < 0 {
		return 0
	}
	return uint64(totalKibibytes) * kibibyteSizeConstant
}

// GitCommandExecutor is the minimal interface required from execshell.ShellExecutor.
type GitCommandExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryManager coordinates git invocations through execshell.
type RepositoryManager struct {
	executor GitCommandExecutor
}

var (
	// ErrExecutorNotConfigured indicates the manager was constructed without an executor.
	ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)
)

// InvalidInputError surfaces validation issues for operation inputs.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplateConstant, inputError.FieldName, inputError.Message)
}

// OperationError wraps execution issues for git operations.
type OperationError struct {
	Operation OperationName
	Cause     error
}

// Error describes the operation failure.
func (operationError OperationError) Error() string {
	if operationError.Cause == nil {
		return fmt.Sprintf(operationErrorMessageTemplateConstant, operationError.Operation)
	}
	return fmt.Sprintf(operationErrorWithCauseTemplateConstant, operationError.Operation, operationError.Cause)
}

// Unwrap exposes the underlying cause.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// NewRepositoryManager constructs a git repository manager.
func NewRepositoryManager(executor GitCommandExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// CloneBare mirrors the source repository into a bare clone at the destination path.
func (manager *RepositoryManager) CloneBare(executionContext context.Context, source string, destination string) error {
	trimmedSource := strings.TrimSpace(source)
	if len(trimmedSource) == 0 {
		return InvalidInputError{FieldName: sourceFieldNameConstant, Message: requiredValueMessageConstant}
	}
	trimmedDestination := strings.TrimSpace(destination)
	if len(trimmedDestination) == 0 {
		return InvalidInputError{FieldName: destinationFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{cloneSubcommandConstant, bareFlagConstant, trimmedSource, trimmedDestination},
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return OperationError{Operation: cloneBareOperationNameConstant, Cause: executionError}
	}
	return nil
}

// CloneBranch clones a single branch of the source repository into the destination path.
func (manager *RepositoryManager) CloneBranch(executionContext context.Context, source string, branchName string, destination string) error {
	trimmedSource := strings.TrimSpace(source)
	if len(trimmedSource) == 0 {
		return InvalidInputError{FieldName: sourceFieldNameConstant, Message: requiredValueMessageConstant}
	}
	trimmedBranchName := strings.TrimSpace(branchName)
	if len(trimmedBranchName) == 0 {
		return InvalidInputError{FieldName: branchNameFieldNameConstant, Message: requiredValueMessageConstant}
	}
	trimmedDestination := strings.TrimSpace(destination)
	if len(trimmedDestination) == 0 {
		return InvalidInputError{FieldName: destinationFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{cloneSubcommandConstant, branchSelectionFlagConstant, trimmedBranchName, trimmedSource, trimmedDestination},
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return OperationError{Operation: cloneBranchOperationNameConstant, Cause: executionError}
	}
	return nil
}

// ExpireReflogEntries discards every reflog entry so rewritten history loses its anchors.
func (manager *RepositoryManager) ExpireReflogEntries(executionContext context.Context, repositoryPath string) error {
	trimmedRepositoryPath := strings.TrimSpace(repositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return InvalidInputError{FieldName: repositoryPathFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments:        []string{reflogSubcommandConstant, reflogExpireSubcommandConstant, expireNowFlagConstant, allFlagConstant},
		WorkingDirectory: trimmedRepositoryPath,
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return OperationError{Operation: expireReflogOperationNameConstant, Cause: executionError}
	}
	return nil
}

// RunGarbageCollection repacks the object store aggressively and prunes unreachable objects.
func (manager *RepositoryManager) RunGarbageCollection(executionContext context.Context, repositoryPath string) error {
	trimmedRepositoryPath := strings.TrimSpace(repositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return InvalidInputError{FieldName: repositoryPathFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments:        []string{gcSubcommandConstant, pruneNowFlagConstant, aggressiveFlagConstant},
		WorkingDirectory: trimmedRepositoryPath,
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return OperationError{Operation: garbageCollectOperationNameConstant, Cause: executionError}
	}
	return nil
}

// CountObjects measures the repository object store using git count-objects.
func (manager *RepositoryManager) CountObjects(executionContext context.Context, repositoryPath string) (ObjectStoreReport, error) {
	trimmedRepositoryPath := strings.TrimSpace(repositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return ObjectStoreReport{}, InvalidInputError{FieldName: repositoryPathFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments:        []string{countObjectsSubcommandConstant, verboseFlagConstant},
		WorkingDirectory: trimmedRepositoryPath,
	}

	executionResult, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return ObjectStoreReport{}, OperationError{Operation: countObjectsOperationNameConstant, Cause: executionError}
	}

	return parseObjectStoreReport(executionResult.StandardOutput), nil
}

// DiscardWorktreeChanges resets tracked files to the current HEAD state.
func (manager *RepositoryManager) DiscardWorktreeChanges(executionContext context.Context, repositoryPath string) error {
	trimmedRepositoryPath := strings.TrimSpace(repositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return InvalidInputError{FieldName: repositoryPathFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments:        []string{resetSubcommandConstant, hardResetFlagConstant},
		WorkingDirectory: trimmedRepositoryPath,
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return OperationError{Operation: discardChangesOperationNameConstant, Cause: executionError}
	}
	return nil
}

// RemoveUntrackedFiles deletes untracked and ignored files, including nested repositories.
func (manager *RepositoryManager) RemoveUntrackedFiles(executionContext context.Context, repositoryPath string) error {
	trimmedRepositoryPath := strings.TrimSpace(repositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return InvalidInputError{FieldName: repositoryPathFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments:        []string{cleanSubcommandConstant, cleanForceAllFlagConstant},
		WorkingDirectory: trimmedRepositoryPath,
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return OperationError{Operation: removeUntrackedOperationNameConstant, Cause: executionError}
	}
	return nil
}

// AddRemote registers a named remote pointing at the provided URL.
func (manager *RepositoryManager) AddRemote(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) error {
	trimmedRepositoryPath := strings.TrimSpace(repositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return InvalidInputError{FieldName: repositoryPathFieldNameConstant, Message: requiredValueMessageConstant}
	}
	trimmedRemoteName := strings.TrimSpace(remoteName)
	if len(trimmedRemoteName) == 0 {
		return InvalidInputError{FieldName: remoteNameFieldNameConstant, Message: requiredValueMessageConstant}
	}
	trimmedRemoteURL := strings.TrimSpace(remoteURL)
	if len(trimmedRemoteURL) == 0 {
		return InvalidInputError{FieldName: remoteURLFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments:        []string{remoteSubcommandConstant, remoteAddSubcommandConstant, trimmedRemoteName, trimmedRemoteURL},
		WorkingDirectory: trimmedRepositoryPath,
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return OperationError{Operation: addRemoteOperationNameConstant, Cause: executionError}
	}
	return nil
}

// RemoveRemote deletes a named remote from the repository configuration.
func (manager *RepositoryManager) RemoveRemote(executionContext context.Context, repositoryPath string, remoteName string) error {
	trimmedRepositoryPath := strings.TrimSpace(repositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return InvalidInputError{FieldName: repositoryPathFieldNameConstant, Message: requiredValueMessageConstant}
	}
	trimmedRemoteName := strings.TrimSpace(remoteName)
	if len(trimmedRemoteName) == 0 {
		return InvalidInputError{FieldName: remoteNameFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments:        []string{remoteSubcommandConstant, remoteRemoveSubcommandConstant, trimmedRemoteName},
		WorkingDirectory: trimmedRepositoryPath,
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return OperationError{Operation: removeRemoteOperationNameConstant, Cause: executionError}
	}
	return nil
}

// FetchBranch retrieves a single branch from the named remote.
func (manager *RepositoryManager) FetchBranch(executionContext context.Context, repositoryPath string, remoteName string, branchName string) error {
	trimmedRepositoryPath := strings.TrimSpace(repositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return InvalidInputError{FieldName: repositoryPathFieldNameConstant, Message: requiredValueMessageConstant}
	}
	trimmedRemoteName := strings.TrimSpace(remoteName)
	if len(trimmedRemoteName) == 0 {
		return InvalidInputError{FieldName: remoteNameFieldNameConstant, Message: requiredValueMessageConstant}
	}
	trimmedBranchName := strings.TrimSpace(branchName)
	if len(trimmedBranchName) == 0 {
		return InvalidInputError{FieldName: branchNameFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments:        []string{fetchSubcommandConstant, trimmedRemoteName, trimmedBranchName},
		WorkingDirectory: trimmedRepositoryPath,
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return OperationError{Operation: fetchBranchOperationNameConstant, Cause: executionError}
	}
	return nil
}

// CreateBranchWithoutTracking creates a local branch from the start point without upstream tracking.
func (manager *RepositoryManager) CreateBranchWithoutTracking(executionContext context.Context, repositoryPath string, branchName string, startPoint string) error {
	trimmedRepositoryPath := strings.TrimSpace(repositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return InvalidInputError{FieldName: repositoryPathFieldNameConstant, Message: requiredValueMessageConstant}
	}
	trimmedBranchName := strings.TrimSpace(branchName)
	if len(trimmedBranchName) == 0 {
		return InvalidInputError{FieldName: branchNameFieldNameConstant, Message: requiredValueMessageConstant}
	}
	trimmedStartPoint := strings.TrimSpace(startPoint)
	if len(trimmedStartPoint) == 0 {
		return InvalidInputError{FieldName: startPointFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments:        []string{branchSubcommandConstant, noTrackFlagConstant, trimmedBranchName, trimmedStartPoint},
		WorkingDirectory: trimmedRepositoryPath,
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return OperationError{Operation: createBranchOperationNameConstant, Cause: executionError}
	}
	return nil
}

// ForceDeleteBranch removes a local branch regardless of its merge status.
func (manager *RepositoryManager) ForceDeleteBranch(executionContext context.Context, repositoryPath string, branchName string) error {
	trimmedRepositoryPath := strings.TrimSpace(repositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return InvalidInputError{FieldName: repositoryPathFieldNameConstant, Message: requiredValueMessageConstant}
	}
	trimmedBranchName := strings.TrimSpace(branchName)
	if len(trimmedBranchName) == 0 {
		return InvalidInputError{FieldName: branchNameFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments:        []string{branchSubcommandConstant, forceDeleteBranchFlagConstant, trimmedBranchName},
		WorkingDirectory: trimmedRepositoryPath,
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return OperationError{Operation: deleteBranchOperationNameConstant, Cause: executionError}
	}
	return nil
}

// CheckoutBranch switches the working tree to the named branch.
func (manager *RepositoryManager) CheckoutBranch(executionContext context.Context, repositoryPath string, branchName string) error {
	return manager.checkout(executionContext, repositoryPath, branchName, false)
}

// CheckoutExistingBranch switches to the named branch without remote branch guessing.
func (manager *RepositoryManager) CheckoutExistingBranch(executionContext context.Context, repositoryPath string, branchName string) error {
	return manager.checkout(executionContext, repositoryPath, branchName, true)
}

func (manager *RepositoryManager) checkout(executionContext context.Context, repositoryPath string, branchName string, disableGuessing bool) error {
	trimmedRepositoryPath := strings.TrimSpace(repositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return InvalidInputError{FieldName: repositoryPathFieldNameConstant, Message: requiredValueMessageConstant}
	}
	trimmedBranchName := strings.TrimSpace(branchName)
	if len(trimmedBranchName) == 0 {
		return InvalidInputError{FieldName: branchNameFieldNameConstant, Message: requiredValueMessageConstant}
	}

	arguments := []string{checkoutSubcommandConstant}
	if disableGuessing {
		arguments = append(arguments, noGuessFlagConstant)
	}
	arguments = append(arguments, trimmedBranchName)

	commandDetails := execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: trimmedRepositoryPath,
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return OperationError{Operation: checkoutBranchOperationNameConstant, Cause: executionError}
	}
	return nil
}

// MergeUnrelatedHistories merges the named branch into the current branch with a merge commit,
// accepting histories without a common ancestor.
func (manager *RepositoryManager) MergeUnrelatedHistories(executionContext context.Context, repositoryPath string, branchName string, commitMessage string) error {
	trimmedRepositoryPath := strings.TrimSpace(repositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return InvalidInputError{FieldName: repositoryPathFieldNameConstant, Message: requiredValueMessageConstant}
	}
	trimmedBranchName := strings.TrimSpace(branchName)
	if len(trimmedBranchName) == 0 {
		return InvalidInputError{FieldName: branchNameFieldNameConstant, Message: requiredValueMessageConstant}
	}
	trimmedCommitMessage := strings.TrimSpace(commitMessage)
	if len(trimmedCommitMessage) == 0 {
		return InvalidInputError{FieldName: commitMessageFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			mergeSubcommandConstant,
			allowUnrelatedHistoriesFlagConstant,
			noFastForwardFlagConstant,
			commitMessageFlagConstant,
			trimmedCommitMessage,
			trimmedBranchName,
		},
		WorkingDirectory: trimmedRepositoryPath,
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return OperationError{Operation: mergeBranchOperationNameConstant, Cause: executionError}
	}
	return nil
}

// DeinitializeSubmodules unregisters every submodule checkout in the working tree.
func (manager *RepositoryManager) DeinitializeSubmodules(executionContext context.Context, repositoryPath string) error {
	trimmedRepositoryPath := strings.TrimSpace(repositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return InvalidInputError{FieldName: repositoryPathFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments:        []string{submoduleSubcommandConstant, submoduleDeinitSubcommandConstant, allFlagConstant, forceFlagConstant},
		WorkingDirectory: trimmedRepositoryPath,
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return OperationError{Operation: deinitSubmodulesOperationNameConstant, Cause: executionError}
	}
	return nil
}

// InitializeSubmodules restores registered submodule checkouts recursively.
func (manager *RepositoryManager) InitializeSubmodules(executionContext context.Context, repositoryPath string) error {
	trimmedRepositoryPath := strings.TrimSpace(repositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return InvalidInputError{FieldName: repositoryPathFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments:        []string{submoduleSubcommandConstant, submoduleUpdateSubcommandConstant, initFlagConstant, recursiveFlagConstant},
		WorkingDirectory: trimmedRepositoryPath,
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return OperationError{Operation: initSubmodulesOperationNameConstant, Cause: executionError}
	}
	return nil
}

// StageAllChanges records every addition, modification, and deletion in the index.
func (manager *RepositoryManager) StageAllChanges(executionContext context.Context, repositoryPath string) error {
	trimmedRepositoryPath := strings.TrimSpace(repositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return InvalidInputError{FieldName: repositoryPathFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments:        []string{addSubcommandConstant, allFlagConstant},
		WorkingDirectory: trimmedRepositoryPath,
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return OperationError{Operation: stageChangesOperationNameConstant, Cause: executionError}
	}
	return nil
}

// CreateCommit commits the staged changes with the provided message.
func (manager *RepositoryManager) CreateCommit(executionContext context.Context, repositoryPath string, commitMessage string) error {
	trimmedRepositoryPath := strings.TrimSpace(repositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return InvalidInputError{FieldName: repositoryPathFieldNameConstant, Message: requiredValueMessageConstant}
	}
	trimmedCommitMessage := strings.TrimSpace(commitMessage)
	if len(trimmedCommitMessage) == 0 {
		return InvalidInputError{FieldName: commitMessageFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments:        []string{commitSubcommandConstant, commitMessageFlagConstant, trimmedCommitMessage},
		WorkingDirectory: trimmedRepositoryPath,
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return OperationError{Operation: createCommitOperationNameConstant, Cause: executionError}
	}
	return nil
}

func parseObjectStoreReport(standardOutput string) ObjectStoreReport {
	report := ObjectStoreReport{}
	for _, outputLine := range strings.Split(standardOutput, "\n") {
		recordParts := strings.SplitN(outputLine, objectStoreRecordSeparatorConstant, 2)
		if len(recordParts) != 2 {
			continue
		}
		recordKey := strings.TrimSpace(recordParts[0])
		recordValue, parseError := strconv.ParseInt(strings.TrimSpace(recordParts[1]), 10, 64)
		if parseError != nil {
			continue
		}
		switch recordKey {
		case looseObjectCountRecordKeyConstant:
			report.LooseObjectCount = recordValue
		case looseObjectSizeRecordKeyConstant:
			report.LooseObjectsSizeKibibytes = recordValue
		case packedObjectSizeRecordKeyConstant:
			report.PackedObjectsSizeKibibytes = recordValue
		}
	}
	return report
}
