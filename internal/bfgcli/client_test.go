package bfgcli_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/grit/internal/bfgcli"
	"github.com/temirov/grit/internal/execshell"
)

const (
	testScratchRepositoryPathConstant          = "/workspace/widgets.git"
	testDeleteSingleFolderCaseNameConstant     = "delete_single_folder"
	testDeleteMultipleFoldersCaseNameConstant  = "delete_multiple_folders"
	testDeleteFolderValidationCaseNameConstant = "delete_folder_validation"
	testConvertSingleCaseNameConstant          = "convert_single_extension"
	testConvertMultipleCaseNameConstant        = "convert_multiple_extensions"
	testConvertValidationCaseNameConstant      = "convert_extension_validation"
	testConvertDottedCaseNameConstant          = "convert_dotted_extensions"
)

type stubHistoryRewriteExecutor struct {
	executeFunc     func(context.Context, execshell.CommandDetails) (execshell.ExecutionResult, error)
	recordedDetails []execshell.CommandDetails
}

func (executor *stubHistoryRewriteExecutor) ExecuteBFG(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recordedDetails = append(executor.recordedDetails, details)
	if executor.executeFunc != nil {
		return executor.executeFunc(executionContext, details)
	}
	return execshell.ExecutionResult{}, nil
}

func TestNewClientValidation(testInstance *testing.T) {
	testInstance.Run("nil_executor", func(testInstance *testing.T) {
		client, creationError := bfgcli.NewClient(nil)
		require.Error(testInstance, creationError)
		require.ErrorIs(testInstance, creationError, bfgcli.ErrExecutorNotConfigured)
		require.Nil(testInstance, client)
	})
}

func TestDeleteFolders(testInstance *testing.T) {
	testCases := []struct {
		name              string
		repositoryPath    string
		folderNames       []string
		expectError       bool
		expectedArguments []string
	}{
		{
			name:              testDeleteSingleFolderCaseNameConstant,
			repositoryPath:    testScratchRepositoryPathConstant,
			folderNames:       []string{"build"},
			expectedArguments: []string{"--delete-folders", "build", "--no-blob-protection", testScratchRepositoryPathConstant},
		},
		{
			name:              testDeleteMultipleFoldersCaseNameConstant,
			repositoryPath:    testScratchRepositoryPathConstant,
			folderNames:       []string{"build", "dist", "node_modules"},
			expectedArguments: []string{"--delete-folders", "{build,dist,node_modules}", "--no-blob-protection", testScratchRepositoryPathConstant},
		},
		{
			name:           testDeleteFolderValidationCaseNameConstant,
			repositoryPath: testScratchRepositoryPathConstant,
			folderNames:    []string{"  ", ""},
			expectError:    true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			stubExecutor := &stubHistoryRewriteExecutor{}
			client, creationError := bfgcli.NewClient(stubExecutor)
			require.NoError(testInstance, creationError)

			deletionError := client.DeleteFolders(context.Background(), testCase.repositoryPath, testCase.folderNames)
			if testCase.expectError {
				require.Error(testInstance, deletionError)
				require.IsType(testInstance, bfgcli.InvalidInputError{}, deletionError)
				require.Empty(testInstance, stubExecutor.recordedDetails)
				return
			}

			require.NoError(testInstance, deletionError)
			require.Len(testInstance, stubExecutor.recordedDetails, 1)
			require.Equal(testInstance, testCase.expectedArguments, stubExecutor.recordedDetails[0].Arguments)
		})
	}
}

func TestConvertToGitLFS(testInstance *testing.T) {
	testCases := []struct {
		name              string
		repositoryPath    string
		extensions        []string
		expectError       bool
		expectedArguments []string
	}{
		{
			name:              testConvertSingleCaseNameConstant,
			repositoryPath:    testScratchRepositoryPathConstant,
			extensions:        []string{"zip"},
			expectedArguments: []string{"--convert-to-git-lfs", "*.zip", "--no-blob-protection", testScratchRepositoryPathConstant},
		},
		{
			name:              testConvertMultipleCaseNameConstant,
			repositoryPath:    testScratchRepositoryPathConstant,
			extensions:        []string{"png", "zip", "pdf"},
			expectedArguments: []string{"--convert-to-git-lfs", "*.{png,zip,pdf}", "--no-blob-protection", testScratchRepositoryPathConstant},
		},
		{
			name:              testConvertDottedCaseNameConstant,
			repositoryPath:    testScratchRepositoryPathConstant,
			extensions:        []string{".png", "*.zip", "zip"},
			expectedArguments: []string{"--convert-to-git-lfs", "*.{png,zip}", "--no-blob-protection", testScratchRepositoryPathConstant},
		},
		{
			name:           testConvertValidationCaseNameConstant,
			repositoryPath: testScratchRepositoryPathConstant,
			extensions:     nil,
			expectError:    true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			stubExecutor := &stubHistoryRewriteExecutor{}
			client, creationError := bfgcli.NewClient(stubExecutor)
			require.NoError(testInstance, creationError)

			conversionError := client.ConvertToGitLFS(context.Background(), testCase.repositoryPath, testCase.extensions)
			if testCase.expectError {
				require.Error(testInstance, conversionError)
				require.IsType(testInstance, bfgcli.InvalidInputError{}, conversionError)
				require.Empty(testInstance, stubExecutor.recordedDetails)
				return
			}

			require.NoError(testInstance, conversionError)
			require.Len(testInstance, stubExecutor.recordedDetails, 1)
			require.Equal(testInstance, testCase.expectedArguments, stubExecutor.recordedDetails[0].Arguments)
		})
	}
}

func TestDeleteFoldersWrapsExecutionFailures(testInstance *testing.T) {
	stubExecutor := &stubHistoryRewriteExecutor{
		executeFunc: func(context.Context, execshell.CommandDetails) (execshell.ExecutionResult, error) {
			return execshell.ExecutionResult{}, execshell.CommandFailedError{
				Command: execshell.ShellCommand{Name: execshell.CommandBFG},
				Result:  execshell.ExecutionResult{ExitCode: 1},
			}
		},
	}

	client, creationError := bfgcli.NewClient(stubExecutor)
	require.NoError(testInstance, creationError)

	deletionError := client.DeleteFolders(context.Background(), testScratchRepositoryPathConstant, []string{"build"})
	require.Error(testInstance, deletionError)

	var operationError bfgcli.OperationError
	require.ErrorAs(testInstance, deletionError, &operationError)
	require.Equal(testInstance, bfgcli.OperationName("DeleteFolders"), operationError.Operation)
}
