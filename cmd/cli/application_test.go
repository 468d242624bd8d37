package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/temirov/grit/cmd/cli"
	"github.com/temirov/grit/internal/consolidate"
	"github.com/temirov/grit/internal/sanitize"
	"github.com/temirov/grit/internal/utils"
)

const (
	testConfigurationFileNameConstant  = "config.yaml"
	testConfigurationContentConstant   = "common:\n  log_level: error\n  log_format: structured\ntools:\n  sanitize:\n    branch: trunk\n    directory: /srv/scratch\n  consolidate:\n    name: widgets\n    target: integration\n"
	testInvalidLogLevelContentConstant = "common:\n  log_level: verbose\n"
)

func TestEmbeddedDefaultConfigurationMatchesWorkflowDefaults(t *testing.T) {
	configurationData, configurationType := cli.EmbeddedDefaultConfiguration()

	viperInstance := viper.New()
	viperInstance.SetConfigType(configurationType)
	require.NoError(t, viperInstance.ReadConfig(bytes.NewReader(configurationData)))

	var configuration cli.ApplicationConfiguration
	require.NoError(t, viperInstance.Unmarshal(&configuration))

	require.Equal(t, string(utils.LogLevelInfo), configuration.Common.LogLevel)
	require.Equal(t, string(utils.LogFormatStructured), configuration.Common.LogFormat)

	sanitizeDefaults := sanitize.DefaultCommandConfiguration()
	require.Equal(t, sanitizeDefaults.SourceBranch, configuration.Tools.Sanitize.SourceBranch)
	require.Equal(t, sanitizeDefaults.WorkingDirectory, configuration.Tools.Sanitize.WorkingDirectory)
	require.Equal(t, sanitizeDefaults.Extensions, configuration.Tools.Sanitize.Extensions)
	require.Empty(t, configuration.Tools.Sanitize.SourceURL)
	require.Empty(t, configuration.Tools.Sanitize.FolderGlobs)

	consolidateDefaults := consolidate.DefaultCommandConfiguration()
	require.Equal(t, consolidateDefaults.SourceBranch, configuration.Tools.Consolidate.SourceBranch)
	require.Equal(t, consolidateDefaults.TargetBranch, configuration.Tools.Consolidate.TargetBranch)
	require.Equal(t, consolidateDefaults.WorkingDirectory, configuration.Tools.Consolidate.WorkingDirectory)
	require.Empty(t, configuration.Tools.Consolidate.RepositoryName)
	require.Empty(t, configuration.Tools.Consolidate.SourceURL)
}

func TestApplicationExecuteLoadsConfigurationFile(t *testing.T) {
	configurationPath := writeTestConfiguration(t, testConfigurationContentConstant)

	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()
	os.Args = []string{"grit", "--config", configurationPath}

	application := cli.NewApplication()
	require.NoError(t, application.Execute())
}

func TestApplicationExecuteRejectsUnknownLogLevel(t *testing.T) {
	configurationPath := writeTestConfiguration(t, testInvalidLogLevelContentConstant)

	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()
	os.Args = []string{"grit", "--config", configurationPath}

	application := cli.NewApplication()
	executionError := application.Execute()

	require.Error(t, executionError)
	require.ErrorContains(t, executionError, "unable to create logger")
	require.ErrorContains(t, executionError, "unsupported log level")
}

func writeTestConfiguration(t *testing.T, configurationContent string) string {
	t.Helper()

	configurationPath := filepath.Join(t.TempDir(), testConfigurationFileNameConstant)
	writeError := os.WriteFile(configurationPath, []byte(configurationContent), 0o600)
	require.NoError(t, writeError)
	return configurationPath
}
