package execshell_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/mirrors/internal/execshell"
)

const (
	testCloneStartCaseNameConstant        = "clone_mirror_start"
	testFetchFailureCaseNameConstant      = "fetch_failure"
	testPushSuccessCaseNameConstant       = "push_mirror_success"
	testRemoteLookupCaseNameConstant      = "remote_lookup_success"
	testRemoteUpdateCaseNameConstant      = "remote_update_start"
	testRemoteAddCaseNameConstant         = "remote_add_start"
	testLSRemoteSymrefCaseNameConstant    = "ls_remote_symref_start"
	testSymbolicRefUpdateCaseNameConstant = "symbolic_ref_update_start"
	testRefDeletionCaseNameConstant       = "ref_deletion_start"
	testGitHubAPICaseNameConstant         = "github_api_start"
	testGenericFallbackCaseNameConstant   = "generic_fallback"
	testUpstreamURLConstant               = "https://github.com/origin-owner/widgets.git"
	testMirrorPathConstant                = "/srv/mirrors/widgets"
)

func TestCommandMessageFormatterDescriptions(testInstance *testing.T) {
	formatter := execshell.CommandMessageFormatter{}

	testCases := []struct {
		name            string
		buildMessage    func() string
		expectedMessage string
	}{
		{
			name: testCloneStartCaseNameConstant,
			buildMessage: func() string {
				return formatter.BuildStartedMessage(execshell.ShellCommand{
					Name: execshell.CommandGit,
					Details: execshell.CommandDetails{
						Arguments: []string{"clone", "--mirror", testUpstreamURLConstant, testMirrorPathConstant},
					},
				})
			},
			expectedMessage: "Creating mirror clone of " + testUpstreamURLConstant + " at " + testMirrorPathConstant,
		},
		{
			name: testFetchFailureCaseNameConstant,
			buildMessage: func() string {
				return formatter.BuildFailureMessage(execshell.ShellCommand{
					Name: execshell.CommandGit,
					Details: execshell.CommandDetails{
						Arguments:        []string{"fetch", "upstream", "--prune"},
						WorkingDirectory: testMirrorPathConstant,
					},
				}, execshell.ExecutionResult{ExitCode: 128, StandardError: "could not resolve host"})
			},
			expectedMessage: "Failed to fetch upstream in " + testMirrorPathConstant + " (exit code 128: could not resolve host)",
		},
		{
			name: testPushSuccessCaseNameConstant,
			buildMessage: func() string {
				return formatter.BuildSuccessMessage(execshell.ShellCommand{
					Name: execshell.CommandGit,
					Details: execshell.CommandDetails{
						Arguments:        []string{"push", "--mirror", "origin"},
						WorkingDirectory: testMirrorPathConstant,
					},
				})
			},
			expectedMessage: "Mirror-pushed to origin from " + testMirrorPathConstant,
		},
		{
			name: testRemoteLookupCaseNameConstant,
			buildMessage: func() string {
				return formatter.BuildStartedMessage(execshell.ShellCommand{
					Name: execshell.CommandGit,
					Details: execshell.CommandDetails{
						Arguments:        []string{"remote", "get-url", "origin"},
						WorkingDirectory: testMirrorPathConstant,
					},
				})
			},
			expectedMessage: "Checking origin remote for " + testMirrorPathConstant,
		},
		{
			name: testRemoteUpdateCaseNameConstant,
			buildMessage: func() string {
				return formatter.BuildStartedMessage(execshell.ShellCommand{
					Name: execshell.CommandGit,
					Details: execshell.CommandDetails{
						Arguments:        []string{"remote", "set-url", "--push", "upstream", "DISABLED"},
						WorkingDirectory: testMirrorPathConstant,
					},
				})
			},
			expectedMessage: "Updating upstream remote for " + testMirrorPathConstant + " to DISABLED",
		},
		{
			name: testRemoteAddCaseNameConstant,
			buildMessage: func() string {
				return formatter.BuildStartedMessage(execshell.ShellCommand{
					Name: execshell.CommandGit,
					Details: execshell.CommandDetails{
						Arguments:        []string{"remote", "add", "--mirror=fetch", "upstream", testUpstreamURLConstant},
						WorkingDirectory: testMirrorPathConstant,
					},
				})
			},
			expectedMessage: "Adding upstream remote for " + testMirrorPathConstant + " pointing to " + testUpstreamURLConstant,
		},
		{
			name: testLSRemoteSymrefCaseNameConstant,
			buildMessage: func() string {
				return formatter.BuildStartedMessage(execshell.ShellCommand{
					Name: execshell.CommandGit,
					Details: execshell.CommandDetails{
						Arguments:        []string{"ls-remote", "--symref", "upstream", "HEAD"},
						WorkingDirectory: testMirrorPathConstant,
					},
				})
			},
			expectedMessage: "Checking default branch on upstream from " + testMirrorPathConstant,
		},
		{
			name: testSymbolicRefUpdateCaseNameConstant,
			buildMessage: func() string {
				return formatter.BuildStartedMessage(execshell.ShellCommand{
					Name: execshell.CommandGit,
					Details: execshell.CommandDetails{
						Arguments:        []string{"symbolic-ref", "HEAD", "refs/heads/main"},
						WorkingDirectory: testMirrorPathConstant,
					},
				})
			},
			expectedMessage: "Pointing HEAD in " + testMirrorPathConstant + " at refs/heads/main",
		},
		{
			name: testRefDeletionCaseNameConstant,
			buildMessage: func() string {
				return formatter.BuildStartedMessage(execshell.ShellCommand{
					Name: execshell.CommandGit,
					Details: execshell.CommandDetails{
						Arguments:        []string{"update-ref", "-d", "refs/pull/42/head"},
						WorkingDirectory: testMirrorPathConstant,
					},
				})
			},
			expectedMessage: "Deleting ref refs/pull/42/head in " + testMirrorPathConstant,
		},
		{
			name: testGitHubAPICaseNameConstant,
			buildMessage: func() string {
				return formatter.BuildStartedMessage(execshell.ShellCommand{
					Name: execshell.CommandGitHub,
					Details: execshell.CommandDetails{
						Arguments: []string{"api", "user/repos", "-X", "POST", "--input", "-"},
					},
				})
			},
			expectedMessage: "Calling GitHub API POST user/repos",
		},
		{
			name: testGenericFallbackCaseNameConstant,
			buildMessage: func() string {
				return formatter.BuildStartedMessage(execshell.ShellCommand{
					Name: execshell.CommandGit,
					Details: execshell.CommandDetails{
						Arguments:        []string{"write-tree"},
						WorkingDirectory: testMirrorPathConstant,
					},
				})
			},
			expectedMessage: "Running git write-tree (in " + testMirrorPathConstant + ")",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedMessage, testCase.buildMessage())
		})
	}
}

func TestCommandFailedErrorIncludesExitCodeAndStandardError(testInstance *testing.T) {
	failure := execshell.CommandFailedError{
		Command: execshell.ShellCommand{
			Name:    execshell.CommandGit,
			Details: execshell.CommandDetails{Arguments: []string{"rev-parse", "HEAD"}, WorkingDirectory: testMirrorPathConstant},
		},
		Result: execshell.ExecutionResult{ExitCode: 128, StandardError: "fatal: not a git repository"},
	}

	require.Contains(testInstance, failure.Error(), "exit code 128")
	require.Contains(testInstance, failure.Error(), "fatal: not a git repository")
}
