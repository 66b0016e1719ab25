package gitrepo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/mirrors/internal/gitrepo"
)

func TestParseRemoteURL(testInstance *testing.T) {
	testCases := []struct {
		name        string
		remote      string
		expected    gitrepo.RemoteURL
		expectError bool
	}{
		{
			name:   "https_with_git_suffix",
			remote: "https://github.com/origin-owner/widgets.git",
			expected: gitrepo.RemoteURL{
				Protocol:   gitrepo.RemoteProtocolHTTPS,
				Host:       "github.com",
				Owner:      "origin-owner",
				Repository: "widgets",
			},
		},
		{
			name:   "https_without_suffix",
			remote: "https://github.com/origin-owner/widgets",
			expected: gitrepo.RemoteURL{
				Protocol:   gitrepo.RemoteProtocolHTTPS,
				Host:       "github.com",
				Owner:      "origin-owner",
				Repository: "widgets",
			},
		},
		{
			name:   "scp_style_ssh",
			remote: "git@github.com:origin-owner/widgets.git",
			expected: gitrepo.RemoteURL{
				Protocol:   gitrepo.RemoteProtocolSSH,
				Host:       "github.com",
				Owner:      "origin-owner",
				Repository: "widgets",
			},
		},
		{
			name:   "ssh_protocol_prefix",
			remote: "ssh://git@github.com/origin-owner/widgets.git",
			expected: gitrepo.RemoteURL{
				Protocol:   gitrepo.RemoteProtocolSSH,
				Host:       "github.com",
				Owner:      "origin-owner",
				Repository: "widgets",
			},
		},
		{
			name:        "empty_remote",
			remote:      "  ",
			expectError: true,
		},
		{
			name:        "unsupported_protocol",
			remote:      "ftp://github.com/origin-owner/widgets.git",
			expectError: true,
		},
		{
			name:        "missing_owner_segment",
			remote:      "https://github.com/widgets.git",
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			parsed, parseError := gitrepo.ParseRemoteURL(testCase.remote)
			if testCase.expectError {
				require.Error(testInstance, parseError)
				return
			}
			require.NoError(testInstance, parseError)
			require.Equal(testInstance, testCase.expected, parsed)
		})
	}
}

func TestFormatRemoteURL(testInstance *testing.T) {
	testCases := []struct {
		name        string
		remote      gitrepo.RemoteURL
		expected    string
		expectError bool
	}{
		{
			name: "https_round_trip",
			remote: gitrepo.RemoteURL{
				Protocol:   gitrepo.RemoteProtocolHTTPS,
				Host:       "github.com",
				Owner:      "mirror-owner",
				Repository: "widgets",
			},
			expected: "https://github.com/mirror-owner/widgets.git",
		},
		{
			name: "ssh_round_trip",
			remote: gitrepo.RemoteURL{
				Protocol:   gitrepo.RemoteProtocolSSH,
				Host:       "github.com",
				Owner:      "mirror-owner",
				Repository: "widgets",
			},
			expected: "git@github.com:mirror-owner/widgets.git",
		},
		{
			name: "missing_repository",
			remote: gitrepo.RemoteURL{
				Protocol: gitrepo.RemoteProtocolHTTPS,
				Host:     "github.com",
				Owner:    "mirror-owner",
			},
			expectError: true,
		},
		{
			name: "unsupported_protocol",
			remote: gitrepo.RemoteURL{
				Protocol:   gitrepo.RemoteProtocol("ftp"),
				Host:       "github.com",
				Owner:      "mirror-owner",
				Repository: "widgets",
			},
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			formatted, formatError := gitrepo.FormatRemoteURL(testCase.remote)
			if testCase.expectError {
				require.Error(testInstance, formatError)
				return
			}
			require.NoError(testInstance, formatError)
			require.Equal(testInstance, testCase.expected, formatted)
		})
	}
}
