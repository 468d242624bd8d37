package bfgcli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/grit/internal/execshell"
)

const (
	deleteFoldersOptionConstant             = "--delete-folders"
	convertToGitLFSOptionConstant           = "--convert-to-git-lfs"
	noBlobProtectionOptionConstant          = "--no-blob-protection"
	braceGroupOpenConstant                  = "{"
	braceGroupCloseConstant                 = "}"
	braceGroupSeparatorConstant             = ","
	extensionPatternPrefixConstant          = "*."
	extensionDotPrefixConstant              = "."
	repositoryPathFieldNameConstant         = "repository_path"
	folderNamesFieldNameConstant            = "folder_names"
	extensionsFieldNameConstant             = "extensions"
	requiredValueMessageConstant            = "value required"
	executorNotConfiguredMessageConstant    = "bfg executor not configured"
	operationErrorMessageTemplateConstant   = "%s operation failed"
	operationErrorWithCauseTemplateConstant = "%s operation failed: %s"
	invalidInputErrorTemplateConstant       = "%s: %s"
	deleteFoldersOperationNameConstant      = OperationName("DeleteFolders")
	convertToGitLFSOperationNameConstant    = OperationName("ConvertToGitLFS")
)

// OperationName describes a named history rewrite supported by the client.
type OperationName string

// HistoryRewriteExecutor is the minimal interface required from execshell.ShellExecutor.
type HistoryRewriteExecutor interface {
	ExecuteBFG(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Client coordinates BFG Repo-Cleaner invocations through execshell.
//
// Every rewrite disables blob protection so the filters apply to the latest
// commit as well as the rest of the history.
type Client struct {
	executor HistoryRewriteExecutor
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

// OperationError wraps execution issues for history rewrite operations.
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

// NewClient constructs a BFG Repo-Cleaner client.
func NewClient(executor HistoryRewriteExecutor) (*Client, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &Client{executor: executor}, nil
}

// DeleteFolders removes every directory matching one of the names from all history.
func (client *Client) DeleteFolders(executionContext context.Context, repositoryPath string, folderNames []string) error {
	trimmedRepositoryPath := strings.TrimSpace(repositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return InvalidInputError{FieldName: repositoryPathFieldNameConstant, Message: requiredValueMessageConstant}
	}

	folderGlob := BuildFolderGlob(folderNames)
	if len(folderGlob) == 0 {
		return InvalidInputError{FieldName: folderNamesFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{deleteFoldersOptionConstant, folderGlob, noBlobProtectionOptionConstant, trimmedRepositoryPath},
	}

	_, executionError := client.executor.ExecuteBFG(executionContext, commandDetails)
	if executionError != nil {
		return OperationError{Operation: deleteFoldersOperationNameConstant, Cause: executionError}
	}
	return nil
}

// ConvertToGitLFS rewrites blobs whose names match the extensions into LFS pointers across all history.
func (client *Client) ConvertToGitLFS(executionContext context.Context, repositoryPath string, extensions []string) error {
	trimmedRepositoryPath := strings.TrimSpace(repositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return InvalidInputError{FieldName: repositoryPathFieldNameConstant, Message: requiredValueMessageConstant}
	}

	conversionPattern := BuildExtensionPattern(extensions)
	if len(conversionPattern) == 0 {
		return InvalidInputError{FieldName: extensionsFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{convertToGitLFSOptionConstant, conversionPattern, noBlobProtectionOptionConstant, trimmedRepositoryPath},
	}

	_, executionError := client.executor.ExecuteBFG(executionContext, commandDetails)
	if executionError != nil {
		return OperationError{Operation: convertToGitLFSOperationNameConstant, Cause: executionError}
	}
	return nil
}

// BuildFolderGlob joins folder names into the brace glob accepted by --delete-folders.
//
// A single name is passed through unchanged; multiple names become {a,b,c}.
func BuildFolderGlob(folderNames []string) string {
	normalizedNames := normalizeEntries(folderNames, nil)
	switch len(normalizedNames) {
	case 0:
		return ""
	case 1:
		return normalizedNames[0]
	default:
		return braceGroupOpenConstant + strings.Join(normalizedNames, braceGroupSeparatorConstant) + braceGroupCloseConstant
	}
}

// BuildExtensionPattern joins file extensions into the blob name pattern accepted by --convert-to-git-lfs.
//
// Extensions may be given with or without a leading dot; *.png and png are
// both accepted. Multiple extensions become *.{png,zip}.
func BuildExtensionPattern(extensions []string) string {
	normalizedExtensions := normalizeEntries(extensions, normalizeExtension)
	switch len(normalizedExtensions) {
	case 0:
		return ""
	case 1:
		return extensionPatternPrefixConstant + normalizedExtensions[0]
	default:
		return extensionPatternPrefixConstant + braceGroupOpenConstant + strings.Join(normalizedExtensions, braceGroupSeparatorConstant) + braceGroupCloseConstant
	}
}

func normalizeExtension(extension string) string {
	normalized := strings.TrimPrefix(extension, extensionPatternPrefixConstant)
	normalized = strings.TrimPrefix(normalized, extensionDotPrefixConstant)
	return normalized
}

func normalizeEntries(entries []string, normalize func(string) string) []string {
	normalizedEntries := make([]string, 0, len(entries))
	seenEntries := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		trimmedEntry := strings.TrimSpace(entry)
		if normalize != nil {
			trimmedEntry = normalize(trimmedEntry)
		}
		if len(trimmedEntry) == 0 {
			continue
		}
		if _, alreadySeen := seenEntries[trimmedEntry]; alreadySeen {
			continue
		}
		normalizedEntries = append(normalizedEntries, trimmedEntry)
		seenEntries[trimmedEntry] = struct{}{}
	}
	return normalizedEntries
}
