package lfs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/grit/internal/execshell"
)

const (
	fetchSubcommandConstant                 = "fetch"
	checkoutSubcommandConstant              = "checkout"
	allHistoryFlagConstant                  = "--all"
	repositoryPathFieldNameConstant         = "repository_path"
	remoteNameFieldNameConstant             = "remote_name"
	branchNameFieldNameConstant             = "branch_name"
	requiredValueMessageConstant            = "value required"
	executorNotConfiguredMessageConstant    = "git-lfs executor not configured"
	operationErrorMessageTemplateConstant   = "%s operation failed"
	operationErrorWithCauseTemplateConstant = "%s operation failed: %s"
	invalidInputErrorTemplateConstant       = "%s: %s"
	fetchFullHistoryOperationNameConstant   = OperationName("FetchFullHistory")
	verifyCheckoutOperationNameConstant     = OperationName("VerifyCheckout")
)

// OperationName describes a named git-lfs workflow supported by the client.
type OperationName string

// LFSCommandExecutor is the minimal interface required from execshell.ShellExecutor.
type LFSCommandExecutor interface {
	ExecuteGitLFS(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Client coordinates git-lfs invocations through execshell.
type Client struct {
	executor LFSCommandExecutor
}

var (
	// ErrExecutorNotConfigured indicates the client was constructed without an executor.
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

// OperationError wraps execution issues for git-lfs operations.
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

// NewClient constructs a git-lfs client.
func NewClient(executor LFSCommandExecutor) (*Client, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &Client{executor: executor}, nil
}

// FetchFullHistory downloads every LFS object reachable from the branch on the named remote.
func (client *Client) FetchFullHistory(executionContext context.Context, repositoryPath string, remoteName string, branchName string) error {
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
		Arguments:        []string{fetchSubcommandConstant, allHistoryFlagConstant, trimmedRemoteName, trimmedBranchName},
		WorkingDirectory: trimmedRepositoryPath,
	}

	_, executionError := client.executor.ExecuteGitLFS(executionContext, commandDetails)
	if executionError != nil {
		return OperationError{Operation: fetchFullHistoryOperationNameConstant, Cause: executionError}
	}
	return nil
}

// VerifyCheckout materializes LFS pointers in the working tree, proving the payloads are present.
func (client *Client) VerifyCheckout(executionContext context.Context, repositoryPath string) error {
	trimmedRepositoryPath := strings.TrimSpace(repositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return InvalidInputError{FieldName: repositoryPathFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments:        []string{checkoutSubcommandConstant},
		WorkingDirectory: trimmedRepositoryPath,
	}

	_, executionError := client.executor.ExecuteGitLFS(executionContext, commandDetails)
	if executionError != nil {
		return OperationError{Operation: verifyCheckoutOperationNameConstant, Cause: executionError}
	}
	return nil
}
