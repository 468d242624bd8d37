package sanitize

import (
	"strings"

	pathutils "github.com/temirov/grit/internal/utils/path"
)

const (
	defaultSourceBranchConstant     = "master"
	defaultWorkingDirectoryConstant = "."

	configurationSourceKeyConstant     = "source"
	configurationBranchKeyConstant     = "branch"
	configurationDirectoryKeyConstant  = "directory"
	configurationFoldersKeyConstant    = "folders"
	configurationExtensionsKeyConstant = "extensions"
)

var sanitizeConfigurationHomeExpander = pathutils.NewHomeExpander()

// CommandConfiguration captures persisted configuration for the sanitize workflow.
type CommandConfiguration struct {
	SourceURL        string   `mapstructure:"source"`
	SourceBranch     string   `mapstructure:"branch"`
	WorkingDirectory string   `mapstructure:"directory"`
	FolderGlobs      []string `mapstructure:"folders"`
	Extensions       []string `mapstructure:"extensions"`
}

// DefaultCommandConfiguration returns baseline configuration values for the sanitize workflow.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		SourceBranch:     defaultSourceBranchConstant,
		WorkingDirectory: defaultWorkingDirectoryConstant,
		Extensions:       DefaultExtensionSet(),
	}
}

// DefaultConfigurationValues produces Viper defaults for the sanitize command.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + "." + configurationSourceKeyConstant:     defaults.SourceURL,
		rootKey + "." + configurationBranchKeyConstant:     defaults.SourceBranch,
		rootKey + "." + configurationDirectoryKeyConstant:  defaults.WorkingDirectory,
		rootKey + "." + configurationFoldersKeyConstant:    defaults.FolderGlobs,
		rootKey + "." + configurationExtensionsKeyConstant: defaults.Extensions,
	}
}

// DefaultExtensionSet returns the built-in binary, document, and image extensions
// migrated to large file storage when no explicit list is configured.
func DefaultExtensionSet() []string {
	return []string{
		"png", "jpg", "jpeg", "gif", "bmp", "tif", "tiff", "ico", "psd",
		"pdf", "doc", "docx", "xls", "xlsx", "ppt", "pptx",
		"zip", "gz", "tgz", "tar", "rar", "7z", "jar", "war",
		"exe", "dll", "so", "dylib", "bin", "iso",
		"mp3", "mp4", "mov", "avi",
	}
}

// Sanitize trims configured values, removes empty list entries, and expands home shortcuts.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.SourceURL = strings.TrimSpace(configuration.SourceURL)
	sanitized.SourceBranch = strings.TrimSpace(configuration.SourceBranch)
	sanitized.WorkingDirectory = sanitizeConfigurationHomeExpander.Expand(strings.TrimSpace(configuration.WorkingDirectory))
	sanitized.FolderGlobs = compactListEntries(configuration.FolderGlobs)
	sanitized.Extensions = compactListEntries(configuration.Extensions)
	return sanitized
}

func compactListEntries(entries []string) []string {
	compacted := make([]string, 0, len(entries))
	for _, entry := range entries {
		trimmedEntry := strings.TrimSpace(entry)
		if len(trimmedEntry) == 0 {
			continue
		}
		compacted = append(compacted, trimmedEntry)
	}
	if len(compacted) == 0 {
		return nil
	}
	return compacted
}
