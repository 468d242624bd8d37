package execshell

import (
	"fmt"
	"os/exec"
)

const commandNotFoundErrorTemplateConstant = "required executable %s not found: %s"

// CommandPathResolver locates executables on the current system.
type CommandPathResolver interface {
	Resolve(commandName CommandName) (string, error)
}

// OSCommandPathResolver resolves executables through the system search path.
type OSCommandPathResolver struct{}

// NewOSCommandPathResolver constructs a resolver backed by exec.LookPath.
func NewOSCommandPathResolver() *OSCommandPathResolver {
	return &OSCommandPathResolver{}
}

// Resolve returns the filesystem path of the named executable.
func (resolver *OSCommandPathResolver) Resolve(commandName CommandName) (string, error) {
	resolvedPath, lookupError := exec.LookPath(string(commandName))
	if lookupError != nil {
		return "", CommandNotFoundError{Command: commandName, Cause: lookupError}
	}
	return resolvedPath, nil
}

// CommandNotFoundError reports an executable missing from the system search path.
type CommandNotFoundError struct {
	Command CommandName
	Cause   error
}

// Error describes the missing executable.
func (notFoundError CommandNotFoundError) Error() string {
	causeDescription := commandFailureCauseUnknownConstant
	if notFoundError.Cause != nil {
		causeDescription = notFoundError.Cause.Error()
	}
	return fmt.Sprintf(commandNotFoundErrorTemplateConstant, string(notFoundError.Command), causeDescription)
}

// Unwrap exposes the underlying lookup failure.
func (notFoundError CommandNotFoundError) Unwrap() error {
	return notFoundError.Cause
}
