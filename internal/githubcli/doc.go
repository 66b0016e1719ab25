// Package githubcli wraps the GitHub CLI for the mirror workflows.
//
// It layers typed request structures for gh api calls, exposes the hosting
// operations consumed by the mirror orchestrators, and integrates with
// execshell so interactions with GitHub can be mocked during testing.
package githubcli
