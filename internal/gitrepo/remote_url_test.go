package gitrepo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/grit/internal/gitrepo"
)

func TestParseRemoteURL(testInstance *testing.T) {
	testCases := []struct {
		name           string
		remote         string
		expectedResult gitrepo.RemoteURL
		expectError    bool
	}{
		{
			name:   "https_remote",
			remote: "https://example.com/team/widgets.git",
			expectedResult: gitrepo.RemoteURL{
				Protocol:   gitrepo.RemoteProtocolHTTPS,
				Host:       "example.com",
				Owner:      "team",
				Repository: "widgets",
			},
		},
		{
			name:   "scp_style_ssh_remote",
			remote: "git@example.com:team/widgets.git",
			expectedResult: gitrepo.RemoteURL{
				Protocol:   gitrepo.RemoteProtocolSSH,
				Host:       "example.com",
				Owner:      "team",
				Repository: "widgets",
			},
		},
		{
			name:   "ssh_protocol_remote",
			remote: "ssh://git@example.com/team/widgets.git",
			expectedResult: gitrepo.RemoteURL{
				Protocol:   gitrepo.RemoteProtocolSSH,
				Host:       "example.com",
				Owner:      "team",
				Repository: "widgets",
			},
		},
		{
			name:        "unsupported_remote",
			remote:      "ftp://example.com/team/widgets.git",
			expectError: true,
		},
		{
			name:        "empty_remote",
			remote:      "   ",
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			parsedRemote, parseError := gitrepo.ParseRemoteURL(testCase.remote)
			if testCase.expectError {
				require.Error(testInstance, parseError)
				return
			}
			require.NoError(testInstance, parseError)
			require.Equal(testInstance, testCase.expectedResult, parsedRemote)
		})
	}
}

func TestDeriveRepositoryName(testInstance *testing.T) {
	testCases := []struct {
		name         string
		source       string
		expectedName string
		expectError  bool
	}{
		{
			name:         "https_remote",
			source:       "https://example.com/team/widgets.git",
			expectedName: "widgets",
		},
		{
			name:         "scp_style_remote_without_owner",
			source:       "git@example.com:widgets.git",
			expectedName: "widgets",
		},
		{
			name:         "local_path_with_trailing_separator",
			source:       "/srv/mirrors/widgets.git/",
			expectedName: "widgets",
		},
		{
			name:         "local_working_clone",
			source:       "/srv/checkouts/widgets",
			expectedName: "widgets",
		},
		{
			name:        "blank_source",
			source:      "  ",
			expectError: true,
		},
		{
			name:        "bare_git_suffix",
			source:      "/srv/mirrors/.git",
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			derivedName, derivationError := gitrepo.DeriveRepositoryName(testCase.source)
			if testCase.expectError {
				require.Error(testInstance, derivationError)
				return
			}
			require.NoError(testInstance, derivationError)
			require.Equal(testInstance, testCase.expectedName, derivedName)
		})
	}
}
