package lfs_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/grit/internal/execshell"
	"github.com/temirov/grit/internal/lfs"
)

const (
	testWorkingClonePathConstant = "/workspace/widgets"
	testRemoteNameConstant       = "widgets"
	testBranchNameConstant       = "master"
)

type stubLFSExecutor struct {
	executeFunc     func(context.Context, execshell.CommandDetails) (execshell.ExecutionResult, error)
	recordedDetails []execshell.CommandDetails
}

func (executor *stubLFSExecutor) ExecuteGitLFS(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recordedDetails = append(executor.recordedDetails, details)
	if executor.executeFunc != nil {
		return executor.executeFunc(executionContext, details)
	}
	return execshell.ExecutionResult{}, nil
}

func TestNewClientValidation(testInstance *testing.T) {
	testInstance.Run("nil_executor", func(testInstance *testing.T) {
		client, creationError := lfs.NewClient(nil)
		require.Error(testInstance, creationError)
		require.ErrorIs(testInstance, creationError, lfs.ErrExecutorNotConfigured)
		require.Nil(testInstance, client)
	})
}

func TestFetchFullHistoryBuildsExpectedInvocation(testInstance *testing.T) {
	stubExecutor := &stubLFSExecutor{}
	client, creationError := lfs.NewClient(stubExecutor)
	require.NoError(testInstance, creationError)

	fetchError := client.FetchFullHistory(context.Background(), testWorkingClonePathConstant, testRemoteNameConstant, testBranchNameConstant)
	require.NoError(testInstance, fetchError)
	require.Len(testInstance, stubExecutor.recordedDetails, 1)
	require.Equal(testInstance, []string{"fetch", "--all", testRemoteNameConstant, testBranchNameConstant}, stubExecutor.recordedDetails[0].Arguments)
	require.Equal(testInstance, testWorkingClonePathConstant, stubExecutor.recordedDetails[0].WorkingDirectory)
}

func TestFetchFullHistoryValidatesInputs(testInstance *testing.T) {
	stubExecutor := &stubLFSExecutor{}
	client, creationError := lfs.NewClient(stubExecutor)
	require.NoError(testInstance, creationError)

	fetchError := client.FetchFullHistory(context.Background(), testWorkingClonePathConstant, "", testBranchNameConstant)
	require.Error(testInstance, fetchError)
	require.IsType(testInstance, lfs.InvalidInputError{}, fetchError)
	require.Empty(testInstance, stubExecutor.recordedDetails)
}

func TestVerifyCheckoutBuildsExpectedInvocation(testInstance *testing.T) {
	stubExecutor := &stubLFSExecutor{}
	client, creationError := lfs.NewClient(stubExecutor)
	require.NoError(testInstance, creationError)

	verificationError := client.VerifyCheckout(context.Background(), testWorkingClonePathConstant)
	require.NoError(testInstance, verificationError)
	require.Len(testInstance, stubExecutor.recordedDetails, 1)
	require.Equal(testInstance, []string{"checkout"}, stubExecutor.recordedDetails[0].Arguments)
	require.Equal(testInstance, testWorkingClonePathConstant, stubExecutor.recordedDetails[0].WorkingDirectory)
}

func TestVerifyCheckoutWrapsExecutionFailures(testInstance *testing.T) {
	stubExecutor := &stubLFSExecutor{
		executeFunc: func(context.Context, execshell.CommandDetails) (execshell.ExecutionResult, error) {
			return execshell.ExecutionResult{}, execshell.CommandFailedError{
				Command: execshell.ShellCommand{Name: execshell.CommandGitLFS},
				Result:  execshell.ExecutionResult{ExitCode: 2},
			}
		},
	}

	client, creationError := lfs.NewClient(stubExecutor)
	require.NoError(testInstance, creationError)

	verificationError := client.VerifyCheckout(context.Background(), testWorkingClonePathConstant)
	require.Error(testInstance, verificationError)

	var operationError lfs.OperationError
	require.ErrorAs(testInstance, verificationError, &operationError)
	require.Equal(testInstance, lfs.OperationName("VerifyCheckout"), operationError.Operation)

	var commandFailure execshell.CommandFailedError
	require.ErrorAs(testInstance, verificationError, &commandFailure)
	require.Equal(testInstance, 2, commandFailure.Result.ExitCode)
}
