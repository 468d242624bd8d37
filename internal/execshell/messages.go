package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
)

const (
	gitCloneSubcommandNameConstant        = "clone"
	gitBareFlagConstant                   = "--bare"
	gitBranchSelectionFlagConstant        = "--branch"
	gitRemoteSubcommandNameConstant       = "remote"
	gitRemoteAddSubcommandNameConstant    = "add"
	gitRemoteRemoveSubcommandNameConstant = "remove"
	gitFetchSubcommandNameConstant        = "fetch"
	gitBranchSubcommandNameConstant       = "branch"
	gitNoTrackFlagConstant                = "--no-track"
	gitDeleteFlagConstant                 = "--delete"
	gitForceFlagConstant                  = "--force"
	gitForceDeleteFlagConstant            = "-D"
	gitCheckoutSubcommandNameConstant     = "checkout"
	gitNoGuessFlagConstant                = "--no-guess"
	gitMergeSubcommandNameConstant        = "merge"
	gitSubmoduleSubcommandNameConstant    = "submodule"
	gitSubmoduleDeinitSubcommandConstant  = "deinit"
	gitSubmoduleUpdateSubcommandConstant  = "update"
	gitResetSubcommandNameConstant        = "reset"
	gitHardResetFlagConstant              = "--hard"
	gitCleanSubcommandNameConstant        = "clean"
	gitAddSubcommandNameConstant          = "add"
	gitAllChangesFlagConstant             = "--all"
	gitAllChangesShortFlagConstant        = "-A"
	gitCommitSubcommandNameConstant       = "commit"
	gitMessageFlagConstant                = "-m"
	gitReflogSubcommandNameConstant       = "reflog"
	gitReflogExpireSubcommandConstant     = "expire"
	gitGCSubcommandNameConstant           = "gc"
	gitCountObjectsSubcommandNameConstant = "count-objects"
)

const (
	gitCloneBareStartTemplateConstant                    = "Mirroring %s into %s"
	gitCloneBareSuccessTemplateConstant                  = "Mirrored %s into %s"
	gitCloneBareFailureTemplateConstant                  = "Failed to mirror %s into %s (exit code %d%s)"
	gitCloneBareExecutionFailureTemplateConstant         = "Unable to mirror %s into %s: %s"
	gitCloneBranchStartTemplateConstant                  = "Cloning branch %s from %s into %s"
	gitCloneBranchSuccessTemplateConstant                = "Cloned branch %s from %s into %s"
	gitCloneBranchFailureTemplateConstant                = "Failed to clone branch %s from %s into %s (exit code %d%s)"
	gitCloneBranchExecutionFailureTemplateConstant       = "Unable to clone branch %s from %s into %s: %s"
	gitCloneGenericStartTemplateConstant                 = "Cloning %s into %s"
	gitCloneGenericSuccessTemplateConstant               = "Cloned %s into %s"
	gitCloneGenericFailureTemplateConstant               = "Failed to clone %s into %s (exit code %d%s)"
	gitCloneGenericExecutionFailureTemplateConstant      = "Unable to clone %s into %s: %s"
	gitRemoteAddStartTemplateConstant                    = "Adding remote %s for %s in %s"
	gitRemoteAddSuccessTemplateConstant                  = "Added remote %s for %s in %s"
	gitRemoteAddFailureTemplateConstant                  = "Failed to add remote %s for %s in %s (exit code %d%s)"
	gitRemoteAddExecutionFailureTemplateConstant         = "Unable to add remote %s for %s in %s: %s"
	gitRemoteRemoveStartTemplateConstant                 = "Removing remote %s from %s"
	gitRemoteRemoveSuccessTemplateConstant               = "Removed remote %s from %s"
	gitRemoteRemoveFailureTemplateConstant               = "Failed to remove remote %s from %s (exit code %d%s)"
	gitRemoteRemoveExecutionFailureTemplateConstant      = "Unable to remove remote %s from %s: %s"
	gitRemoteGenericStartTemplateConstant                = "Updating remotes in %s"
	gitRemoteGenericSuccessTemplateConstant              = "Updated remotes in %s"
	gitRemoteGenericFailureTemplateConstant              = "Failed to update remotes in %s (exit code %d%s)"
	gitRemoteGenericExecutionFailureTemplateConstant     = "Unable to update remotes in %s: %s"
	gitFetchStartTemplateConstant                        = "Fetching %s from %s in %s"
	gitFetchWithoutRefsStartTemplateConstant             = "Fetching from %s in %s"
	gitFetchSuccessTemplateConstant                      = "Fetched %s from %s in %s"
	gitFetchWithoutRefsSuccessTemplateConstant           = "Fetched from %s in %s"
	gitFetchFailureTemplateConstant                      = "Failed to fetch %s from %s in %s (exit code %d%s)"
	gitFetchWithoutRefsFailureTemplateConstant           = "Failed to fetch from %s in %s (exit code %d%s)"
	gitFetchExecutionFailureTemplateConstant             = "Unable to fetch %s from %s in %s: %s"
	gitFetchWithoutRefsExecutionFailureTemplateConstant  = "Unable to fetch from %s in %s: %s"
	gitFetchAllRemotesLabelConstant                      = "all remotes"
	gitBranchDeletionStartTemplateConstant               = "Removing local branch %s in %s"
	gitBranchDeletionSuccessTemplateConstant             = "Removed local branch %s in %s"
	gitBranchDeletionFailureTemplateConstant             = "Failed to remove local branch %s in %s (exit code %d%s)"
	gitBranchDeletionExecutionFailureTemplateConstant    = "Unable to remove local branch %s in %s: %s"
	gitBranchCreationStartTemplateConstant               = "Creating branch %s in %s"
	gitBranchCreationFromStartTemplateConstant           = "Creating branch %s from %s in %s"
	gitBranchCreationSuccessTemplateConstant             = "Created branch %s in %s"
	gitBranchCreationFromSuccessTemplateConstant         = "Created branch %s from %s in %s"
	gitBranchCreationFailureTemplateConstant             = "Failed to create branch %s in %s (exit code %d%s)"
	gitBranchCreationFromFailureTemplateConstant         = "Failed to create branch %s from %s in %s (exit code %d%s)"
	gitBranchCreationExecutionFailureTemplateConstant    = "Unable to create branch %s in %s: %s"
	gitBranchCreationFromExecutionFailureTemplate        = "Unable to create branch %s from %s in %s: %s"
	gitCheckoutStartTemplateConstant                     = "Switching %s to branch %s"
	gitCheckoutSuccessTemplateConstant                   = "%s now on branch %s"
	gitCheckoutFailureTemplateConstant                   = "Failed to switch %s to branch %s (exit code %d%s)"
	gitCheckoutExecutionFailureTemplateConstant          = "Unable to switch %s to branch %s: %s"
	gitMergeStartTemplateConstant                        = "Merging %s into the current branch in %s"
	gitMergeSuccessTemplateConstant                      = "Merged %s into the current branch in %s"
	gitMergeFailureTemplateConstant                      = "Failed to merge %s in %s (exit code %d%s)"
	gitMergeExecutionFailureTemplateConstant             = "Unable to merge %s in %s: %s"
	gitSubmoduleDeinitStartTemplateConstant              = "Deinitializing submodule checkouts in %s"
	gitSubmoduleDeinitSuccessTemplateConstant            = "Deinitialized submodule checkouts in %s"
	gitSubmoduleDeinitFailureTemplateConstant            = "Failed to deinitialize submodule checkouts in %s (exit code %d%s)"
	gitSubmoduleDeinitExecutionFailureTemplateConstant   = "Unable to deinitialize submodule checkouts in %s: %s"
	gitSubmoduleUpdateStartTemplateConstant              = "Initializing embedded repositories in %s"
	gitSubmoduleUpdateSuccessTemplateConstant            = "Initialized embedded repositories in %s"
	gitSubmoduleUpdateFailureTemplateConstant            = "Failed to initialize embedded repositories in %s (exit code %d%s)"
	gitSubmoduleUpdateExecutionFailureTemplateConstant   = "Unable to initialize embedded repositories in %s: %s"
	gitSubmoduleGenericStartTemplateConstant             = "Updating submodules in %s"
	gitSubmoduleGenericSuccessTemplateConstant           = "Updated submodules in %s"
	gitSubmoduleGenericFailureTemplateConstant           = "Failed to update submodules in %s (exit code %d%s)"
	gitSubmoduleGenericExecutionFailureTemplateConstant  = "Unable to update submodules in %s: %s"
	gitResetHardStartTemplateConstant                    = "Discarding working tree changes in %s"
	gitResetHardSuccessTemplateConstant                  = "Discarded working tree changes in %s"
	gitResetHardFailureTemplateConstant                  = "Failed to discard working tree changes in %s (exit code %d%s)"
	gitResetHardExecutionFailureTemplateConstant         = "Unable to discard working tree changes in %s: %s"
	gitCleanStartTemplateConstant                        = "Removing untracked and ignored files from %s"
	gitCleanSuccessTemplateConstant                      = "Removed untracked and ignored files from %s"
	gitCleanFailureTemplateConstant                      = "Failed to remove untracked and ignored files from %s (exit code %d%s)"
	gitCleanExecutionFailureTemplateConstant             = "Unable to remove untracked and ignored files from %s: %s"
	gitAddAllStartTemplateConstant                       = "Staging all changes in %s"
	gitAddAllSuccessTemplateConstant                     = "Staged all changes in %s"
	gitAddAllFailureTemplateConstant                     = "Failed to stage all changes in %s (exit code %d%s)"
	gitAddAllExecutionFailureTemplateConstant            = "Unable to stage all changes in %s: %s"
	gitAddStartTemplateConstant                          = "Staging %s in %s"
	gitAddSuccessTemplateConstant                        = "Staged %s in %s"
	gitAddFailureTemplateConstant                        = "Failed to stage %s in %s (exit code %d%s)"
	gitAddExecutionFailureTemplateConstant               = "Unable to stage %s in %s: %s"
	gitCommitStartTemplateConstant                       = "Creating commit in %s with message %q"
	gitCommitSuccessTemplateConstant                     = "Created commit in %s with message %q"
	gitCommitFailureTemplateConstant                     = "Failed to create commit in %s with message %q (exit code %d%s)"
	gitCommitExecutionFailureTemplateConstant            = "Unable to create commit in %s with message %q: %s"
	gitReflogExpireStartTemplateConstant                 = "Expiring reflog entries in %s"
	gitReflogExpireSuccessTemplateConstant               = "Expired reflog entries in %s"
	gitReflogExpireFailureTemplateConstant               = "Failed to expire reflog entries in %s (exit code %d%s)"
	gitReflogExpireExecutionFailureTemplateConstant      = "Unable to expire reflog entries in %s: %s"
	gitGCStartTemplateConstant                           = "Compacting object store in %s"
	gitGCSuccessTemplateConstant                         = "Compacted object store in %s"
	gitGCFailureTemplateConstant                         = "Failed to compact object store in %s (exit code %d%s)"
	gitGCExecutionFailureTemplateConstant                = "Unable to compact object store in %s: %s"
	gitCountObjectsStartTemplateConstant                 = "Measuring object store in %s"
	gitCountObjectsSuccessTemplateConstant               = "Measured object store in %s"
	gitCountObjectsFailureTemplateConstant               = "Failed to measure object store in %s (exit code %d%s)"
	gitCountObjectsExecutionFailureTemplateConstant      = "Unable to measure object store in %s: %s"
	gitLFSFetchStartTemplateConstant                     = "Fetching complete LFS history of %s from %s in %s"
	gitLFSFetchSuccessTemplateConstant                   = "Fetched complete LFS history of %s from %s in %s"
	gitLFSFetchFailureTemplateConstant                   = "Failed to fetch LFS history of %s from %s in %s (exit code %d%s)"
	gitLFSFetchExecutionFailureTemplateConstant          = "Unable to fetch LFS history of %s from %s in %s: %s"
	gitLFSCheckoutStartTemplateConstant                  = "Materializing LFS payloads in %s"
	gitLFSCheckoutSuccessTemplateConstant                = "Materialized LFS payloads in %s"
	gitLFSCheckoutFailureTemplateConstant                = "Failed to materialize LFS payloads in %s (exit code %d%s)"
	gitLFSCheckoutExecutionFailureTemplateConstant       = "Unable to materialize LFS payloads in %s: %s"
	bfgDeleteFoldersStartTemplateConstant                = "Deleting directories named %s from the history of %s"
	bfgDeleteFoldersSuccessTemplateConstant              = "Deleted directories named %s from the history of %s"
	bfgDeleteFoldersFailureTemplateConstant              = "Failed to delete directories named %s from the history of %s (exit code %d%s)"
	bfgDeleteFoldersExecutionFailureTemplateConstant     = "Unable to delete directories named %s from the history of %s: %s"
	bfgConvertToLFSStartTemplateConstant                 = "Converting %s blobs to LFS pointers across the history of %s"
	bfgConvertToLFSSuccessTemplateConstant               = "Converted %s blobs to LFS pointers across the history of %s"
	bfgConvertToLFSFailureTemplateConstant               = "Failed to convert %s blobs to LFS pointers across the history of %s (exit code %d%s)"
	bfgConvertToLFSExecutionFailureTemplateConstant      = "Unable to convert %s blobs to LFS pointers across the history of %s: %s"
	gitLFSFetchSubcommandNameConstant                    = "fetch"
	gitLFSCheckoutSubcommandNameConstant                 = "checkout"
	gitLFSFetchAllHistoryFlagConstant                    = "--all"
	bfgDeleteFoldersOptionNameConstant                   = "--delete-folders"
	bfgConvertToGitLFSOptionNameConstant                 = "--convert-to-git-lfs"
	gitCloneIdentificationArgumentCountConstant          = 3
	gitRemoteOperationMinimumArgumentCountConstant       = 2
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

// ShouldLogStartMessage reports whether a start message adds value for the command.
func (formatter CommandMessageFormatter) ShouldLogStartMessage(command ShellCommand) bool {
	if command.Name != CommandGit {
		return true
	}
	if len(command.Details.Arguments) == 0 {
		return true
	}
	return strings.TrimSpace(command.Details.Arguments[0]) != gitCountObjectsSubcommandNameConstant
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	switch command.Name {
	case CommandGit:
		return formatter.describeGitMessage(command, result, failure, stage)
	case CommandGitLFS:
		return formatter.describeGitLFSMessage(command, result, failure, stage)
	case CommandBFG:
		return formatter.describeBFGMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	subcommand := strings.TrimSpace(command.Details.Arguments[0])
	switch subcommand {
	case gitCloneSubcommandNameConstant:
		return formatter.describeGitCloneMessage(command, result, failure, stage)
	case gitRemoteSubcommandNameConstant:
		return formatter.describeGitRemoteMessage(command, result, failure, stage)
	case gitFetchSubcommandNameConstant:
		return formatter.describeGitFetchMessage(command, result, failure, stage)
	case gitBranchSubcommandNameConstant:
		return formatter.describeGitBranchMessage(command, result, failure, stage)
	case gitCheckoutSubcommandNameConstant:
		return formatter.describeGitCheckoutMessage(command, result, failure, stage)
	case gitMergeSubcommandNameConstant:
		return formatter.describeGitMergeMessage(command, result, failure, stage)
	case gitSubmoduleSubcommandNameConstant:
		return formatter.describeGitSubmoduleMessage(command, result, failure, stage)
	case gitResetSubcommandNameConstant:
		return formatter.describeGitResetMessage(command, result, failure, stage)
	case gitCleanSubcommandNameConstant:
		return formatter.describeGitCleanMessage(command, result, failure, stage)
	case gitAddSubcommandNameConstant:
		return formatter.describeGitAddMessage(command, result, failure, stage)
	case gitCommitSubcommandNameConstant:
		return formatter.describeGitCommitMessage(command, result, failure, stage)
	case gitReflogSubcommandNameConstant:
		return formatter.describeGitReflogMessage(command, result, failure, stage)
	case gitGCSubcommandNameConstant:
		return formatter.describeGitGCMessage(command, result, failure, stage)
	case gitCountObjectsSubcommandNameConstant:
		return formatter.describeGitCountObjectsMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitCloneMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) < gitCloneIdentificationArgumentCountConstant {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	cloneSource := formatter.ensureValue(formatter.argumentAtIndex(arguments, len(arguments)-2))
	cloneDestination := formatter.ensureValue(formatter.argumentAtIndex(arguments, len(arguments)-1))

	if containsArgument(arguments, gitBareFlagConstant) {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitCloneBareStartTemplateConstant, cloneSource, cloneDestination)
		case messageStageSuccess:
			return fmt.Sprintf(gitCloneBareSuccessTemplateConstant, cloneSource, cloneDestination)
		case messageStageFailure:
			return fmt.Sprintf(gitCloneBareFailureTemplateConstant, cloneSource, cloneDestination, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitCloneBareExecutionFailureTemplateConstant, cloneSource, cloneDestination, formatter.describeFailure(failure))
		}
	}

	branchName := findFlagValue(arguments, gitBranchSelectionFlagConstant)
	if len(branchName) > 0 {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitCloneBranchStartTemplateConstant, branchName, cloneSource, cloneDestination)
		case messageStageSuccess:
			return fmt.Sprintf(gitCloneBranchSuccessTemplateConstant, branchName, cloneSource, cloneDestination)
		case messageStageFailure:
			return fmt.Sprintf(gitCloneBranchFailureTemplateConstant, branchName, cloneSource, cloneDestination, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitCloneBranchExecutionFailureTemplateConstant, branchName, cloneSource, cloneDestination, formatter.describeFailure(failure))
		}
	}

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitCloneGenericStartTemplateConstant, cloneSource, cloneDestination)
	case messageStageSuccess:
		return fmt.Sprintf(gitCloneGenericSuccessTemplateConstant, cloneSource, cloneDestination)
	case messageStageFailure:
		return fmt.Sprintf(gitCloneGenericFailureTemplateConstant, cloneSource, cloneDestination, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitCloneGenericExecutionFailureTemplateConstant, cloneSource, cloneDestination, formatter.describeFailure(failure))
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitRemoteMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)

	if len(arguments) < gitRemoteOperationMinimumArgumentCountConstant {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	remoteOperation := strings.TrimSpace(arguments[1])
	remoteName := formatter.ensureValue(formatter.argumentAtIndex(arguments, 2))

	switch remoteOperation {
	case gitRemoteAddSubcommandNameConstant:
		remoteURL := formatter.ensureValue(formatter.argumentAtIndex(arguments, 3))
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitRemoteAddStartTemplateConstant, remoteName, remoteURL, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitRemoteAddSuccessTemplateConstant, remoteName, remoteURL, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitRemoteAddFailureTemplateConstant, remoteName, remoteURL, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitRemoteAddExecutionFailureTemplateConstant, remoteName, remoteURL, workingDirectory, formatter.describeFailure(failure))
		}
	case gitRemoteRemoveSubcommandNameConstant:
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitRemoteRemoveStartTemplateConstant, remoteName, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitRemoteRemoveSuccessTemplateConstant, remoteName, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitRemoteRemoveFailureTemplateConstant, remoteName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitRemoteRemoveExecutionFailureTemplateConstant, remoteName, workingDirectory, formatter.describeFailure(failure))
		}
	}

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitRemoteGenericStartTemplateConstant, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitRemoteGenericSuccessTemplateConstant, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitRemoteGenericFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitRemoteGenericExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitFetchMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments[1:]
	workingDirectory := formatter.describeWorkingDirectory(command)
	remoteName, references := formatter.extractRemoteAndReferences(arguments)

	if len(remoteName) == 0 {
		remoteName = gitFetchAllRemotesLabelConstant
	}

	if len(references) == 0 {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitFetchWithoutRefsStartTemplateConstant, remoteName, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitFetchWithoutRefsSuccessTemplateConstant, remoteName, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitFetchWithoutRefsFailureTemplateConstant, remoteName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitFetchWithoutRefsExecutionFailureTemplateConstant, remoteName, workingDirectory, formatter.describeFailure(failure))
		}
	}

	referenceList := formatter.joinReferences(references)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitFetchStartTemplateConstant, referenceList, remoteName, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitFetchSuccessTemplateConstant, referenceList, remoteName, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitFetchFailureTemplateConstant, referenceList, remoteName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitFetchExecutionFailureTemplateConstant, referenceList, remoteName, workingDirectory, formatter.describeFailure(failure))
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitBranchMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments[1:]
	workingDirectory := formatter.describeWorkingDirectory(command)

	deletionRequested := containsArgument(arguments, gitForceDeleteFlagConstant) ||
		(containsArgument(arguments, gitDeleteFlagConstant) && containsArgument(arguments, gitForceFlagConstant))
	if deletionRequested {
		branchName := formatter.ensureValue(formatter.extractBranchName(arguments))
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitBranchDeletionStartTemplateConstant, branchName, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitBranchDeletionSuccessTemplateConstant, branchName, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitBranchDeletionFailureTemplateConstant, branchName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitBranchDeletionExecutionFailureTemplateConstant, branchName, workingDirectory, formatter.describeFailure(failure))
		}
	}

	branchName, branchStartPoint := formatter.extractBranchAndStartPoint(arguments)
	branchName = formatter.ensureValue(branchName)
	if len(branchStartPoint) > 0 {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitBranchCreationFromStartTemplateConstant, branchName, branchStartPoint, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitBranchCreationFromSuccessTemplateConstant, branchName, branchStartPoint, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitBranchCreationFromFailureTemplateConstant, branchName, branchStartPoint, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitBranchCreationFromExecutionFailureTemplate, branchName, branchStartPoint, workingDirectory, formatter.describeFailure(failure))
		}
	}

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitBranchCreationStartTemplateConstant, branchName, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitBranchCreationSuccessTemplateConstant, branchName, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitBranchCreationFailureTemplateConstant, branchName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitBranchCreationExecutionFailureTemplateConstant, branchName, workingDirectory, formatter.describeFailure(failure))
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitCheckoutMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments[1:]
	workingDirectory := formatter.describeWorkingDirectory(command)
	branchName := formatter.ensureValue(formatter.extractBranchName(arguments))

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitCheckoutStartTemplateConstant, workingDirectory, branchName)
	case messageStageSuccess:
		return fmt.Sprintf(gitCheckoutSuccessTemplateConstant, workingDirectory, branchName)
	case messageStageFailure:
		return fmt.Sprintf(gitCheckoutFailureTemplateConstant, workingDirectory, branchName, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitCheckoutExecutionFailureTemplateConstant, workingDirectory, branchName, formatter.describeFailure(failure))
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitMergeMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments[1:]
	workingDirectory := formatter.describeWorkingDirectory(command)
	mergeSource := formatter.ensureValue(formatter.extractBranchName(arguments))

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitMergeStartTemplateConstant, mergeSource, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitMergeSuccessTemplateConstant, mergeSource, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitMergeFailureTemplateConstant, mergeSource, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitMergeExecutionFailureTemplateConstant, mergeSource, workingDirectory, formatter.describeFailure(failure))
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitSubmoduleMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)
	submoduleOperation := strings.TrimSpace(formatter.argumentAtIndex(arguments, 1))

	switch submoduleOperation {
	case gitSubmoduleDeinitSubcommandConstant:
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitSubmoduleDeinitStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitSubmoduleDeinitSuccessTemplateConstant, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitSubmoduleDeinitFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitSubmoduleDeinitExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
		}
	case gitSubmoduleUpdateSubcommandConstant:
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitSubmoduleUpdateStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitSubmoduleUpdateSuccessTemplateConstant, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitSubmoduleUpdateFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitSubmoduleUpdateExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
		}
	}

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitSubmoduleGenericStartTemplateConstant, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitSubmoduleGenericSuccessTemplateConstant, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitSubmoduleGenericFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitSubmoduleGenericExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitResetMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if !containsArgument(command.Details.Arguments, gitHardResetFlagConstant) {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	workingDirectory := formatter.describeWorkingDirectory(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitResetHardStartTemplateConstant, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitResetHardSuccessTemplateConstant, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitResetHardFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitResetHardExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitCleanMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitCleanStartTemplateConstant, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitCleanSuccessTemplateConstant, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitCleanFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitCleanExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitAddMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments[1:]
	workingDirectory := formatter.describeWorkingDirectory(command)

	stagingAllChanges := containsArgument(arguments, gitAllChangesFlagConstant) || containsArgument(arguments, gitAllChangesShortFlagConstant)
	stagedTarget := formatter.extractFirstNonFlagArgument(arguments)
	if stagingAllChanges && len(stagedTarget) == 0 {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitAddAllStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitAddAllSuccessTemplateConstant, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitAddAllFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitAddAllExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
		}
	}

	stagedTarget = formatter.ensureValue(stagedTarget)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitAddStartTemplateConstant, stagedTarget, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitAddSuccessTemplateConstant, stagedTarget, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitAddFailureTemplateConstant, stagedTarget, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitAddExecutionFailureTemplateConstant, stagedTarget, workingDirectory, formatter.describeFailure(failure))
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitCommitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments[1:]
	workingDirectory := formatter.describeWorkingDirectory(command)
	commitMessage := formatter.extractCommitMessage(arguments)

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitCommitStartTemplateConstant, workingDirectory, commitMessage)
	case messageStageSuccess:
		return fmt.Sprintf(gitCommitSuccessTemplateConstant, workingDirectory, commitMessage)
	case messageStageFailure:
		return fmt.Sprintf(gitCommitFailureTemplateConstant, workingDirectory, commitMessage, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitCommitExecutionFailureTemplateConstant, workingDirectory, commitMessage, formatter.describeFailure(failure))
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitReflogMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if strings.TrimSpace(formatter.argumentAtIndex(arguments, 1)) != gitReflogExpireSubcommandConstant {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	workingDirectory := formatter.describeWorkingDirectory(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitReflogExpireStartTemplateConstant, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitReflogExpireSuccessTemplateConstant, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitReflogExpireFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitReflogExpireExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitGCMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitGCStartTemplateConstant, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitGCSuccessTemplateConstant, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitGCFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitGCExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitCountObjectsMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitCountObjectsStartTemplateConstant, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitCountObjectsSuccessTemplateConstant, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitCountObjectsFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitCountObjectsExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitLFSMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	workingDirectory := formatter.describeWorkingDirectory(command)
	subcommand := strings.TrimSpace(command.Details.Arguments[0])

	switch subcommand {
	case gitLFSFetchSubcommandNameConstant:
		remoteName, references := formatter.extractRemoteAndReferences(command.Details.Arguments[1:])
		remoteName = formatter.ensureValue(remoteName)
		referenceList := formatter.ensureValue(formatter.joinReferences(references))
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitLFSFetchStartTemplateConstant, referenceList, remoteName, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitLFSFetchSuccessTemplateConstant, referenceList, remoteName, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitLFSFetchFailureTemplateConstant, referenceList, remoteName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitLFSFetchExecutionFailureTemplateConstant, referenceList, remoteName, workingDirectory, formatter.describeFailure(failure))
		}
	case gitLFSCheckoutSubcommandNameConstant:
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitLFSCheckoutStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitLFSCheckoutSuccessTemplateConstant, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitLFSCheckoutFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitLFSCheckoutExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
		}
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeBFGMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	repositoryPath := formatter.ensureValue(formatter.extractLastNonFlagArgument(arguments))

	deleteFoldersGlob := findFlagValue(arguments, bfgDeleteFoldersOptionNameConstant)
	if len(deleteFoldersGlob) > 0 {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(bfgDeleteFoldersStartTemplateConstant, deleteFoldersGlob, repositoryPath)
		case messageStageSuccess:
			return fmt.Sprintf(bfgDeleteFoldersSuccessTemplateConstant, deleteFoldersGlob, repositoryPath)
		case messageStageFailure:
			return fmt.Sprintf(bfgDeleteFoldersFailureTemplateConstant, deleteFoldersGlob, repositoryPath, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(bfgDeleteFoldersExecutionFailureTemplateConstant, deleteFoldersGlob, repositoryPath, formatter.describeFailure(failure))
		}
	}

	conversionPattern := findFlagValue(arguments, bfgConvertToGitLFSOptionNameConstant)
	if len(conversionPattern) > 0 {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(bfgConvertToLFSStartTemplateConstant, conversionPattern, repositoryPath)
		case messageStageSuccess:
			return fmt.Sprintf(bfgConvertToLFSSuccessTemplateConstant, conversionPattern, repositoryPath)
		case messageStageFailure:
			return fmt.Sprintf(bfgConvertToLFSFailureTemplateConstant, conversionPattern, repositoryPath, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(bfgConvertToLFSExecutionFailureTemplateConstant, conversionPattern, repositoryPath, formatter.describeFailure(failure))
		}
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = fmt.Sprintf("%s %s", commandLabel, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	workingDirectorySuffix := formatter.formatWorkingDirectorySuffix(command)
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, workingDirectorySuffix)
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func containsArgument(arguments []string, value string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == value {
			return true
		}
	}
	return false
}

func (formatter CommandMessageFormatter) argumentAtIndex(arguments []string, index int) string {
	if index >= 0 && index < len(arguments) {
		return arguments[index]
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}

func (formatter CommandMessageFormatter) extractBranchName(arguments []string) string {
	for index := len(arguments) - 1; index >= 0; index-- {
		argument := strings.TrimSpace(arguments[index])
		if len(argument) == 0 {
			continue
		}
		if strings.HasPrefix(argument, "-") {
			continue
		}
		if index > 0 && strings.TrimSpace(arguments[index-1]) == gitMessageFlagConstant {
			continue
		}
		return argument
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) extractBranchAndStartPoint(arguments []string) (string, string) {
	positionalArguments := make([]string, 0, len(arguments))
	for _, argument := range arguments {
		trimmedArgument := strings.TrimSpace(argument)
		if len(trimmedArgument) == 0 || strings.HasPrefix(trimmedArgument, "-") {
			continue
		}
		positionalArguments = append(positionalArguments, trimmedArgument)
	}

	switch len(positionalArguments) {
	case 0:
		return emptyStringConstant, emptyStringConstant
	case 1:
		return positionalArguments[0], emptyStringConstant
	default:
		return positionalArguments[0], positionalArguments[1]
	}
}

func (formatter CommandMessageFormatter) extractRemoteAndReferences(arguments []string) (string, []string) {
	remoteName := emptyStringConstant
	references := []string{}
	for _, argument := range arguments {
		trimmedArgument := strings.TrimSpace(argument)
		if len(trimmedArgument) == 0 || strings.HasPrefix(trimmedArgument, "-") {
			continue
		}
		if len(remoteName) == 0 {
			remoteName = trimmedArgument
			continue
		}
		references = append(references, trimmedArgument)
	}
	return remoteName, references
}

func (formatter CommandMessageFormatter) joinReferences(references []string) string {
	return strings.Join(references, ", ")
}

func (formatter CommandMessageFormatter) extractFirstNonFlagArgument(arguments []string) string {
	for _, argument := range arguments {
		trimmedArgument := strings.TrimSpace(argument)
		if len(trimmedArgument) == 0 || strings.HasPrefix(trimmedArgument, "-") {
			continue
		}
		return trimmedArgument
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) extractLastNonFlagArgument(arguments []string) string {
	for index := len(arguments) - 1; index >= 0; index-- {
		trimmedArgument := strings.TrimSpace(arguments[index])
		if len(trimmedArgument) == 0 || strings.HasPrefix(trimmedArgument, "-") {
			continue
		}
		return trimmedArgument
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) extractCommitMessage(arguments []string) string {
	for index, argument := range arguments {
		if strings.TrimSpace(argument) != gitMessageFlagConstant {
			continue
		}
		if index+1 < len(arguments) {
			return arguments[index+1]
		}
	}
	return emptyStringConstant
}

func findFlagValue(arguments []string, flag string) string {
	for index, argument := range arguments {
		trimmedArgument := strings.TrimSpace(argument)
		if trimmedArgument == flag {
			if index+1 < len(arguments) {
				return strings.TrimSpace(arguments[index+1])
			}
			return emptyStringConstant
		}
		flagAssignmentPrefix := flag + "="
		if strings.HasPrefix(trimmedArgument, flagAssignmentPrefix) {
			return strings.TrimSpace(strings.TrimPrefix(trimmedArgument, flagAssignmentPrefix))
		}
	}
	return emptyStringConstant
}
