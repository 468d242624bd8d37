package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/grit/internal/consolidate"
	"github.com/temirov/grit/internal/sanitize"
	"github.com/temirov/grit/internal/utils"
)

const (
	internalTestConfigurationFileNameConstant = "config.yaml"
	internalTestConfigurationContentConstant  = "common:\n  log_level: warn\n  log_format: console\ntools:\n  sanitize:\n    branch: trunk\n  consolidate:\n    target: release\n"
	internalTestSanitizeBranchConstant        = "trunk"
	internalTestConsolidateTargetConstant     = "release"
)

func TestNewApplicationRegistersWorkflowCommands(t *testing.T) {
	application := NewApplication()

	registeredCommandNames := make([]string, 0, len(application.rootCommand.Commands()))
	for _, registeredCommand := range application.rootCommand.Commands() {
		registeredCommandNames = append(registeredCommandNames, registeredCommand.Name())
	}

	require.Contains(t, registeredCommandNames, "sanitize")
	require.Contains(t, registeredCommandNames, "consolidate")
}

func TestRootCommandHelpListsWorkflowCommands(t *testing.T) {
	application := NewApplication()
	outputBuffer := &bytes.Buffer{}
	application.rootCommand.SetOut(outputBuffer)
	application.rootCommand.SetErr(outputBuffer)
	application.rootCommand.SetArgs([]string{})

	require.NoError(t, application.rootCommand.Execute())

	helpOutput := outputBuffer.String()
	require.Contains(t, helpOutput, "sanitize")
	require.Contains(t, helpOutput, "consolidate")
}

func TestInitializeConfigurationAppliesPersistentFlagOverrides(t *testing.T) {
	application := NewApplication()
	rootCommand := application.rootCommand
	rootCommand.SetContext(context.Background())

	require.NoError(t, rootCommand.PersistentFlags().Set(logLevelFlagNameConstant, string(utils.LogLevelDebug)))
	require.NoError(t, rootCommand.PersistentFlags().Set(logFormatFlagNameConstant, string(utils.LogFormatConsole)))

	require.NoError(t, application.initializeConfiguration(rootCommand))

	require.Equal(t, string(utils.LogLevelDebug), application.configuration.Common.LogLevel)
	require.Equal(t, string(utils.LogFormatConsole), application.configuration.Common.LogFormat)
	require.True(t, application.humanReadableLoggingEnabled())

	contextLogLevel, logLevelAvailable := application.commandContextAccessor.LogLevel(rootCommand.Context())
	require.True(t, logLevelAvailable)
	require.Equal(t, string(utils.LogLevelDebug), contextLogLevel)
}

func TestInitializeConfigurationLoadsConfigurationFile(t *testing.T) {
	temporaryDirectory := t.TempDir()
	configurationPath := filepath.Join(temporaryDirectory, internalTestConfigurationFileNameConstant)
	require.NoError(t, os.WriteFile(configurationPath, []byte(internalTestConfigurationContentConstant), 0o600))

	application := NewApplication()
	application.configurationFilePath = configurationPath

	require.NoError(t, application.initializeConfiguration(application.rootCommand))

	require.Equal(t, string(utils.LogLevelWarn), application.configuration.Common.LogLevel)
	require.True(t, application.humanReadableLoggingEnabled())
	require.Equal(t, internalTestSanitizeBranchConstant, application.configuration.Tools.Sanitize.SourceBranch)
	require.Equal(t, sanitize.DefaultExtensionSet(), application.configuration.Tools.Sanitize.Extensions)
	require.Equal(t, internalTestConsolidateTargetConstant, application.configuration.Tools.Consolidate.TargetBranch)
	require.Equal(t, consolidate.DefaultCommandConfiguration().SourceBranch, application.configuration.Tools.Consolidate.SourceBranch)

	configurationFileUsed, configurationFileAvailable := application.commandContextAccessor.ConfigurationFilePath(application.rootCommand.Context())
	require.True(t, configurationFileAvailable)
	require.Equal(t, configurationPath, configurationFileUsed)
}

func TestVersionRequested(t *testing.T) {
	testCases := []struct {
		name      string
		arguments []string
		expected  bool
	}{
		{name: "flag_present", arguments: []string{"--version"}, expected: true},
		{name: "flag_after_subcommand", arguments: []string{"sanitize", "--version"}, expected: true},
		{name: "flag_behind_terminator", arguments: []string{"--", "--version"}, expected: false},
		{name: "no_arguments", arguments: nil, expected: false},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			require.Equal(t, testCase.expected, versionRequested(testCase.arguments))
		})
	}
}

func TestResolveBuildVersionNormalizesDevelopmentBuilds(t *testing.T) {
	resolvedVersion := resolveBuildVersion(context.Background())

	require.NotEmpty(t, resolvedVersion)
	require.NotEqual(t, modulePseudoVersionConstant, resolvedVersion)
}
