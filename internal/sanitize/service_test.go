package sanitize

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/temirov/grit/internal/bfgcli"
	"github.com/temirov/grit/internal/execshell"
	"github.com/temirov/grit/internal/gitrepo"
	"github.com/temirov/grit/internal/lfs"
	"github.com/temirov/grit/internal/pipeline"
)

const (
	testSourceURLConstant        = "https://example.com/team/widgets.git"
	testWorkingDirectoryConstant = "/workspace"
	testScratchClonePathConstant = "/workspace/widgets.git"
	testDestinationPathConstant  = "/workspace/widgets"
	testFolderGlobConstant       = "*-tmp"
	testExtensionConstant        = "png"
	testPayloadRelativeConstant  = "ab/cd/abcd1234"
	testPayloadContentConstant   = "payload-bytes"

	testInitialCountOutputConstant = "count: 12\nsize: 48\nin-pack: 3485\npacks: 1\nsize-pack: 20480\nprune-packable: 0\ngarbage: 0\nsize-garbage: 0\n"
	testFinalCountOutputConstant   = "count: 0\nsize: 0\nin-pack: 3485\npacks: 1\nsize-pack: 5120\nprune-packable: 0\ngarbage: 0\nsize-garbage: 0\n"
)

type recordingToolExecutor struct {
	fileSystem         afero.Fs
	executedCommands   []execshell.ShellCommand
	failingCommand     string
	failingError       error
	countObjectsOutput []string
	countObjectsCalls  int
	scratchPayloads    map[string]string
}

func (executor *recordingToolExecutor) run(command execshell.ShellCommand) (execshell.ExecutionResult, error) {
	executor.executedCommands = append(executor.executedCommands, command)

	if executor.failingError != nil && commandLabel(command) == executor.failingCommand {
		return execshell.ExecutionResult{}, executor.failingError
	}

	arguments := command.Details.Arguments
	if command.Name == execshell.CommandGit && len(arguments) > 0 {
		switch arguments[0] {
		case "count-objects":
			output := ""
			if executor.countObjectsCalls < len(executor.countObjectsOutput) {
				output = executor.countObjectsOutput[executor.countObjectsCalls]
			}
			executor.countObjectsCalls++
			return execshell.ExecutionResult{StandardOutput: output}, nil
		case "clone":
			if materializationError := executor.materializeClone(arguments); materializationError != nil {
				return execshell.ExecutionResult{}, materializationError
			}
		}
	}

	return execshell.ExecutionResult{}, nil
}

// materializeClone mimics the directories a real clone would create so the
// filesystem-backed stages have something to reconcile and remove.
func (executor *recordingToolExecutor) materializeClone(arguments []string) error {
	if executor.fileSystem == nil {
		return nil
	}

	clonePath := arguments[len(arguments)-1]
	if mkdirError := executor.fileSystem.MkdirAll(clonePath, 0o755); mkdirError != nil {
		return mkdirError
	}

	if arguments[1] == "--bare" {
		for relativePath, payloadContent := range executor.scratchPayloads {
			payloadPath := clonePath + "/lfs/objects/" + relativePath
			directoryPath := payloadPath[:strings.LastIndex(payloadPath, "/")]
			if mkdirError := executor.fileSystem.MkdirAll(directoryPath, 0o755); mkdirError != nil {
				return mkdirError
			}
			if writeError := afero.WriteFile(executor.fileSystem, payloadPath, []byte(payloadContent), 0o644); writeError != nil {
				return writeError
			}
		}
	}
	return nil
}

func (executor *recordingToolExecutor) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	return executor.run(execshell.ShellCommand{Name: execshell.CommandGit, Details: details})
}

func (executor *recordingToolExecutor) ExecuteGitLFS(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	return executor.run(execshell.ShellCommand{Name: execshell.CommandGitLFS, Details: details})
}

func (executor *recordingToolExecutor) ExecuteBFG(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	return executor.run(execshell.ShellCommand{Name: execshell.CommandBFG, Details: details})
}

func commandLabel(command execshell.ShellCommand) string {
	if len(command.Details.Arguments) == 0 {
		return string(command.Name)
	}
	return fmt.Sprintf("%s %s", command.Name, command.Details.Arguments[0])
}

type stubPathResolver struct {
	missingCommand execshell.CommandName
}

func (resolver stubPathResolver) Resolve(commandName execshell.CommandName) (string, error) {
	if len(resolver.missingCommand) > 0 && resolver.missingCommand == commandName {
		return "", execshell.CommandNotFoundError{Command: commandName, Cause: errors.New("executable file not found in $PATH")}
	}
	return "/usr/bin/" + string(commandName), nil
}

type incrementingClock struct {
	currentTime time.Time
	stepSize    time.Duration
}

func (clock *incrementingClock) Now() time.Time {
	clock.currentTime = clock.currentTime.Add(clock.stepSize)
	return clock.currentTime
}

func newServiceForTest(testInstance *testing.T, executor *recordingToolExecutor, fileSystem afero.Fs, resolver execshell.CommandPathResolver) *Service {
	testInstance.Helper()

	repositoryManager, managerError := gitrepo.NewRepositoryManager(executor)
	require.NoError(testInstance, managerError)

	historyRewriter, rewriterError := bfgcli.NewClient(executor)
	require.NoError(testInstance, rewriterError)

	lfsClient, lfsClientError := lfs.NewClient(executor)
	require.NoError(testInstance, lfsClientError)

	payloadReconciler, reconcilerError := lfs.NewPayloadReconciler(fileSystem)
	require.NoError(testInstance, reconcilerError)

	service, serviceError := NewService(ServiceDependencies{
		RepositoryManager: repositoryManager,
		HistoryRewriter:   historyRewriter,
		LFSClient:         lfsClient,
		PayloadReconciler: payloadReconciler,
		PathResolver:      resolver,
		FileSystem:        fileSystem,
		Clock:             &incrementingClock{currentTime: time.Unix(0, 0), stepSize: time.Second},
	})
	require.NoError(testInstance, serviceError)

	return service
}

func defaultWorkflowOptions() WorkflowOptions {
	return WorkflowOptions{
		SourceURL:        testSourceURLConstant,
		SourceBranch:     defaultSourceBranchConstant,
		WorkingDirectory: testWorkingDirectoryConstant,
		FolderGlobs:      []string{testFolderGlobConstant},
		Extensions:       []string{testExtensionConstant},
	}
}

func TestServiceExecutesStagesInRequiredOrder(testInstance *testing.T) {
	fileSystem := afero.NewMemMapFs()
	executor := &recordingToolExecutor{
		fileSystem:         fileSystem,
		countObjectsOutput: []string{testInitialCountOutputConstant, testFinalCountOutputConstant},
		scratchPayloads:    map[string]string{testPayloadRelativeConstant: testPayloadContentConstant},
	}

	service := newServiceForTest(testInstance, executor, fileSystem, stubPathResolver{})

	result, executionError := service.Execute(context.Background(), defaultWorkflowOptions())
	require.NoError(testInstance, executionError)

	expectedCommands := []struct {
		arguments        []string
		workingDirectory string
	}{
		{arguments: []string{"clone", "--bare", testSourceURLConstant, testScratchClonePathConstant}},
		{arguments: []string{"count-objects", "-v"}, workingDirectory: testScratchClonePathConstant},
		{arguments: []string{"--delete-folders", testFolderGlobConstant, "--no-blob-protection", testScratchClonePathConstant}},
		{arguments: []string{"reflog", "expire", "--expire=now", "--all"}, workingDirectory: testScratchClonePathConstant},
		{arguments: []string{"gc", "--prune=now", "--aggressive"}, workingDirectory: testScratchClonePathConstant},
		{arguments: []string{"--convert-to-git-lfs", "*.png", "--no-blob-protection", testScratchClonePathConstant}},
		{arguments: []string{"reflog", "expire", "--expire=now", "--all"}, workingDirectory: testScratchClonePathConstant},
		{arguments: []string{"gc", "--prune=now", "--aggressive"}, workingDirectory: testScratchClonePathConstant},
		{arguments: []string{"count-objects", "-v"}, workingDirectory: testScratchClonePathConstant},
		{arguments: []string{"clone", "--branch", defaultSourceBranchConstant, testScratchClonePathConstant, testDestinationPathConstant}},
		{arguments: []string{"checkout"}, workingDirectory: testDestinationPathConstant},
	}

	require.Len(testInstance, executor.executedCommands, len(expectedCommands))
	for commandIndex, expectedCommand := range expectedCommands {
		executedCommand := executor.executedCommands[commandIndex]
		require.Equal(testInstance, expectedCommand.arguments, executedCommand.Details.Arguments)
		require.Equal(testInstance, expectedCommand.workingDirectory, executedCommand.Details.WorkingDirectory)
	}

	require.Equal(testInstance, "widgets", result.RepositoryName)
	require.Equal(testInstance, testScratchClonePathConstant, result.ScratchClonePath)
	require.Equal(testInstance, testDestinationPathConstant, result.DestinationPath)
	require.Equal(testInstance, uint64((48+20480)*1024), result.InitialObjectStore.TotalSizeBytes())
	require.Equal(testInstance, uint64(5120*1024), result.FinalObjectStore.TotalSizeBytes())
	require.Equal(testInstance, 1, result.PayloadReport.CopiedObjectCount)
	require.Equal(testInstance, uint64(len(testPayloadContentConstant)), result.PayloadReport.CopiedBytes)
	require.Len(testInstance, result.StageOutcomes, 11)

	payloadCopied, payloadCheckError := afero.Exists(fileSystem, testDestinationPathConstant+"/.git/lfs/objects/"+testPayloadRelativeConstant)
	require.NoError(testInstance, payloadCheckError)
	require.True(testInstance, payloadCopied)

	scratchRemains, scratchCheckError := afero.DirExists(fileSystem, testScratchClonePathConstant)
	require.NoError(testInstance, scratchCheckError)
	require.False(testInstance, scratchRemains)
}

func TestServiceSkipsFilterStagesWithoutInputs(testInstance *testing.T) {
	testCases := []struct {
		name               string
		folderGlobs        []string
		extensions         []string
		forbiddenCommand   string
		expectedStageCount int
	}{
		{
			name:               "folders_only",
			folderGlobs:        []string{testFolderGlobConstant},
			forbiddenCommand:   "bfg --convert-to-git-lfs",
			expectedStageCount: 9,
		},
		{
			name:               "extensions_only",
			extensions:         []string{testExtensionConstant},
			forbiddenCommand:   "bfg --delete-folders",
			expectedStageCount: 9,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			fileSystem := afero.NewMemMapFs()
			executor := &recordingToolExecutor{fileSystem: fileSystem}
			service := newServiceForTest(testInstance, executor, fileSystem, stubPathResolver{})

			options := defaultWorkflowOptions()
			options.FolderGlobs = testCase.folderGlobs
			options.Extensions = testCase.extensions

			result, executionError := service.Execute(context.Background(), options)
			require.NoError(testInstance, executionError)
			require.Len(testInstance, result.StageOutcomes, testCase.expectedStageCount)

			for _, executedCommand := range executor.executedCommands {
				require.NotEqual(testInstance, testCase.forbiddenCommand, commandLabel(executedCommand))
			}
		})
	}
}

func TestServiceHaltsWhenVerificationFails(testInstance *testing.T) {
	fileSystem := afero.NewMemMapFs()
	executor := &recordingToolExecutor{
		fileSystem:      fileSystem,
		failingCommand:  "git-lfs checkout",
		failingError:    errors.New("pointer file missing payload"),
		scratchPayloads: map[string]string{testPayloadRelativeConstant: testPayloadContentConstant},
	}

	service := newServiceForTest(testInstance, executor, fileSystem, stubPathResolver{})

	result, executionError := service.Execute(context.Background(), defaultWorkflowOptions())
	require.Error(testInstance, executionError)

	var stageError pipeline.StageError
	require.ErrorAs(testInstance, executionError, &stageError)
	require.Equal(testInstance, stageVerifyCheckoutConstant, stageError.StageName)

	lastCommand := executor.executedCommands[len(executor.executedCommands)-1]
	require.Equal(testInstance, execshell.CommandGitLFS, lastCommand.Name)

	scratchRemains, scratchCheckError := afero.DirExists(fileSystem, testScratchClonePathConstant)
	require.NoError(testInstance, scratchCheckError)
	require.True(testInstance, scratchRemains)

	require.Len(testInstance, result.StageOutcomes, 9)
}

func TestServiceValidatesPreconditions(testInstance *testing.T) {
	testCases := []struct {
		name           string
		mutateOptions  func(options *WorkflowOptions)
		missingCommand execshell.CommandName
		seedPath       string
		verifyError    func(testInstance *testing.T, executionError error)
	}{
		{
			name: "missing_source",
			mutateOptions: func(options *WorkflowOptions) {
				options.SourceURL = "  "
			},
			verifyError: func(testInstance *testing.T, executionError error) {
				require.IsType(testInstance, InvalidInputError{}, executionError)
				require.Equal(testInstance, "source: value required", executionError.Error())
			},
		},
		{
			name: "nothing_to_filter",
			mutateOptions: func(options *WorkflowOptions) {
				options.FolderGlobs = nil
				options.Extensions = nil
			},
			verifyError: func(testInstance *testing.T, executionError error) {
				require.ErrorIs(testInstance, executionError, ErrNothingToFilter)
			},
		},
		{
			name:           "missing_history_rewrite_binary",
			missingCommand: execshell.CommandBFG,
			verifyError: func(testInstance *testing.T, executionError error) {
				var notFoundError execshell.CommandNotFoundError
				require.ErrorAs(testInstance, executionError, &notFoundError)
				require.Equal(testInstance, execshell.CommandBFG, notFoundError.Command)
			},
		},
		{
			name:     "scratch_path_occupied",
			seedPath: testScratchClonePathConstant,
			verifyError: func(testInstance *testing.T, executionError error) {
				require.IsType(testInstance, PathAlreadyExistsError{}, executionError)
				require.Equal(testInstance, "path already exists: "+testScratchClonePathConstant, executionError.Error())
			},
		},
		{
			name:     "destination_path_occupied",
			seedPath: testDestinationPathConstant,
			verifyError: func(testInstance *testing.T, executionError error) {
				require.IsType(testInstance, PathAlreadyExistsError{}, executionError)
				require.Equal(testInstance, "path already exists: "+testDestinationPathConstant, executionError.Error())
			},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			fileSystem := afero.NewMemMapFs()
			if len(testCase.seedPath) > 0 {
				require.NoError(testInstance, fileSystem.MkdirAll(testCase.seedPath, 0o755))
			}

			executor := &recordingToolExecutor{fileSystem: fileSystem}
			service := newServiceForTest(testInstance, executor, fileSystem, stubPathResolver{missingCommand: testCase.missingCommand})

			options := defaultWorkflowOptions()
			if testCase.mutateOptions != nil {
				testCase.mutateOptions(&options)
			}

			_, executionError := service.Execute(context.Background(), options)
			require.Error(testInstance, executionError)
			testCase.verifyError(testInstance, executionError)
			require.Empty(testInstance, executor.executedCommands)
		})
	}
}

func TestNewServiceValidatesDependencies(testInstance *testing.T) {
	fileSystem := afero.NewMemMapFs()
	executor := &recordingToolExecutor{fileSystem: fileSystem}

	repositoryManager, managerError := gitrepo.NewRepositoryManager(executor)
	require.NoError(testInstance, managerError)

	_, serviceError := NewService(ServiceDependencies{RepositoryManager: repositoryManager})
	require.ErrorIs(testInstance, serviceError, errHistoryRewriterMissing)

	_, serviceError = NewService(ServiceDependencies{})
	require.ErrorIs(testInstance, serviceError, errRepositoryManagerMissing)
}
