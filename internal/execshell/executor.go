package execshell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	gitCommandNameConstant    = "git"
	gitLFSCommandNameConstant = "git-lfs"
	bfgCommandNameConstant    = "bfg"

	loggerNotConfiguredMessageConstant        = "logger not configured"
	commandRunnerNotConfiguredMessageConstant = "command runner not configured"

	commandFailedErrorTemplateConstant    = "%s command failed with exit code %d%s"
	commandExecutionErrorTemplateConstant = "unable to execute %s command: %s"
	commandFailureCauseUnknownConstant    = "unknown cause"

	logMessageCommandStartedConstant          = "Executing command"
	logMessageCommandCompletedConstant        = "Command completed"
	logMessageCommandExecutionFailureConstant = "Command execution failed"

	logFieldCommandNameConstant      = "command"
	logFieldCommandArgumentsConstant = "arguments"
	logFieldWorkingDirectoryConstant = "working_directory"
	logFieldExitCodeConstant         = "exit_code"
	logFieldStandardErrorConstant    = "standard_error"
)

// CommandName identifies a supported executable.
type CommandName string

// Supported executables.
const (
	CommandGit    CommandName = CommandName(gitCommandNameConstant)
	CommandGitLFS CommandName = CommandName(gitLFSCommandNameConstant)
	CommandBFG    CommandName = CommandName(bfgCommandNameConstant)
)

// CommandDetails describes a single invocation of an external tool.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
	StandardInput        []byte
}

// ShellCommand pairs an executable name with its invocation details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// ExecutionResult captures the observable results of executing a command.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CommandRunner represents the ability to run shell commands.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// Configuration errors reported by NewShellExecutor.
var (
	ErrLoggerNotConfigured        = errors.New(loggerNotConfiguredMessageConstant)
	ErrCommandRunnerNotConfigured = errors.New(commandRunnerNotConfiguredMessageConstant)
)

// CommandFailedError reports a command that completed with a non-zero exit code.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error describes the command failure including any captured standard error output.
func (failureError CommandFailedError) Error() string {
	standardErrorSuffix := ""
	trimmedStandardError := strings.TrimSpace(failureError.Result.StandardError)
	if len(trimmedStandardError) > 0 {
		standardErrorSuffix = ": " + trimmedStandardError
	}
	return fmt.Sprintf(commandFailedErrorTemplateConstant, string(failureError.Command.Name), failureError.Result.ExitCode, standardErrorSuffix)
}

// CommandExecutionError reports a command that could not be executed at all.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

// Error describes the execution failure.
func (executionError CommandExecutionError) Error() string {
	causeDescription := commandFailureCauseUnknownConstant
	if executionError.Cause != nil {
		causeDescription = executionError.Cause.Error()
	}
	return fmt.Sprintf(commandExecutionErrorTemplateConstant, string(executionError.Command.Name), causeDescription)
}

// Unwrap exposes the underlying execution failure.
func (executionError CommandExecutionError) Unwrap() error {
	return executionError.Cause
}

// ShellExecutor coordinates external tool execution with logging and lifecycle events.
type ShellExecutor struct {
	logger               *zap.Logger
	commandRunner        CommandRunner
	humanReadableLogging bool
	eventObserver        CommandEventObserver
}

// NewShellExecutor validates dependencies and constructs a ShellExecutor.
func NewShellExecutor(logger *zap.Logger, commandRunner CommandRunner, humanReadableLogging bool) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if commandRunner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}

	executor := &ShellExecutor{
		logger:               logger,
		commandRunner:        commandRunner,
		humanReadableLogging: humanReadableLogging,
		eventObserver:        noopCommandEventObserver{},
	}

	return executor, nil
}

// SetCommandEventObserver routes command lifecycle notifications to the provided observer.
func (executor *ShellExecutor) SetCommandEventObserver(observer CommandEventObserver) {
	if observer == nil {
		executor.eventObserver = noopCommandEventObserver{}
		return
	}
	executor.eventObserver = observer
}

// ExecuteGit runs git with the provided details.
func (executor *ShellExecutor) ExecuteGit(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: CommandGit, Details: details})
}

// ExecuteGitLFS runs the large file storage extension with the provided details.
func (executor *ShellExecutor) ExecuteGitLFS(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: CommandGitLFS, Details: details})
}

// ExecuteBFG runs the history rewrite tool with the provided details.
func (executor *ShellExecutor) ExecuteBFG(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: CommandBFG, Details: details})
}

// Execute runs the supplied command and requires a zero exit code for success.
func (executor *ShellExecutor) Execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	executor.eventObserver.CommandStarted(command)
	executor.logCommandStarted(command)

	executionResult, runError := executor.commandRunner.Run(executionContext, command)
	if runError != nil {
		executor.eventObserver.CommandExecutionFailed(command, runError)
		executor.logCommandExecutionFailure(command, runError)
		return ExecutionResult{}, CommandExecutionError{Command: command, Cause: runError}
	}

	executor.eventObserver.CommandCompleted(command, executionResult)
	executor.logCommandCompleted(command, executionResult)

	if executionResult.ExitCode != 0 {
		return executionResult, CommandFailedError{Command: command, Result: executionResult}
	}

	return executionResult, nil
}

func (executor *ShellExecutor) logCommandStarted(command ShellCommand) {
	logFields := executor.commandLogFields(command)
	if executor.humanReadableLogging {
		executor.logger.Debug(logMessageCommandStartedConstant, logFields...)
		return
	}
	executor.logger.Info(logMessageCommandStartedConstant, logFields...)
}

func (executor *ShellExecutor) logCommandCompleted(command ShellCommand, result ExecutionResult) {
	logFields := append(executor.commandLogFields(command), zap.Int(logFieldExitCodeConstant, result.ExitCode))
	if result.ExitCode != 0 {
		logFields = append(logFields, zap.String(logFieldStandardErrorConstant, strings.TrimSpace(result.StandardError)))
	}

	if executor.humanReadableLogging {
		executor.logger.Debug(logMessageCommandCompletedConstant, logFields...)
		return
	}
	if result.ExitCode != 0 {
		executor.logger.Error(logMessageCommandCompletedConstant, logFields...)
		return
	}
	executor.logger.Info(logMessageCommandCompletedConstant, logFields...)
}

func (executor *ShellExecutor) logCommandExecutionFailure(command ShellCommand, failure error) {
	logFields := append(executor.commandLogFields(command), zap.Error(failure))
	if executor.humanReadableLogging {
		executor.logger.Debug(logMessageCommandExecutionFailureConstant, logFields...)
		return
	}
	executor.logger.Error(logMessageCommandExecutionFailureConstant, logFields...)
}

func (executor *ShellExecutor) commandLogFields(command ShellCommand) []zap.Field {
	return []zap.Field{
		zap.String(logFieldCommandNameConstant, string(command.Name)),
		zap.Strings(logFieldCommandArgumentsConstant, command.Details.Arguments),
		zap.String(logFieldWorkingDirectoryConstant, command.Details.WorkingDirectory),
	}
}
