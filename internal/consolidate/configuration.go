package consolidate

import (
	"strings"

	pathutils "github.com/temirov/grit/internal/utils/path"
)

const (
	defaultSourceBranchConstant     = "master"
	defaultTargetBranchConstant     = "develop"
	defaultWorkingDirectoryConstant = "."

	configurationNameKeyConstant      = "name"
	configurationSourceKeyConstant    = "source"
	configurationBranchKeyConstant    = "branch"
	configurationTargetKeyConstant    = "target"
	configurationDirectoryKeyConstant = "directory"
)

var consolidateConfigurationHomeExpander = pathutils.NewHomeExpander()

// CommandConfiguration captures persisted configuration for the consolidate workflow.
type CommandConfiguration struct {
	RepositoryName   string `mapstructure:"name"`
	SourceURL        string `mapstructure:"source"`
	SourceBranch     string `mapstructure:"branch"`
	TargetBranch     string `mapstructure:"target"`
	WorkingDirectory string `mapstructure:"directory"`
}

// DefaultCommandConfiguration returns baseline configuration values for the consolidate workflow.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		SourceBranch:     defaultSourceBranchConstant,
		TargetBranch:     defaultTargetBranchConstant,
		WorkingDirectory: defaultWorkingDirectoryConstant,
	}
}

// DefaultConfigurationValues produces Viper defaults for the consolidate command.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + "." + configurationNameKeyConstant:      defaults.RepositoryName,
		rootKey + "." + configurationSourceKeyConstant:    defaults.SourceURL,
		rootKey + "." + configurationBranchKeyConstant:    defaults.SourceBranch,
		rootKey + "." + configurationTargetKeyConstant:    defaults.TargetBranch,
		rootKey + "." + configurationDirectoryKeyConstant: defaults.WorkingDirectory,
	}
}

// Sanitize trims configured values and expands home shortcuts.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.RepositoryName = strings.TrimSpace(configuration.RepositoryName)
	sanitized.SourceURL = strings.TrimSpace(configuration.SourceURL)
	sanitized.SourceBranch = strings.TrimSpace(configuration.SourceBranch)
	sanitized.TargetBranch = strings.TrimSpace(configuration.TargetBranch)
	sanitized.WorkingDirectory = consolidateConfigurationHomeExpander.Expand(strings.TrimSpace(configuration.WorkingDirectory))
	return sanitized
}
