package mirror

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	remoteConfiguratorManagerMissingMessageConstant = "remote configurator requires a version control manager"
	remoteEnumerationFailureTemplateConstant        = "failed to enumerate remotes: %w"
	originConfigurationFailureTemplateConstant      = "failed to configure origin remote: %w"
	upstreamConfigurationFailureTemplateConstant    = "failed to configure upstream remote: %w"
	pushBlockFailureTemplateConstant                = "failed to block pushes to upstream: %w"
)

// ErrRemoteConfiguratorNotConfigured indicates the configurator was constructed without a manager.
var ErrRemoteConfiguratorNotConfigured = errors.New(remoteConfiguratorManagerMissingMessageConstant)

// RemoteConfigurator establishes and repairs the two-remote mirror topology.
type RemoteConfigurator struct {
	manager VersionControl
}

// NewRemoteConfigurator constructs a RemoteConfigurator around the provided manager.
func NewRemoteConfigurator(manager VersionControl) (*RemoteConfigurator, error) {
	if manager == nil {
		return nil, ErrRemoteConfiguratorNotConfigured
	}
	return &RemoteConfigurator{manager: manager}, nil
}

// EnsureMirrorRemotes makes origin point at the hosted mirror and upstream at
// the source with pushes blocked. Safe to call on an already-correct remote
// set; the push block is re-asserted on every invocation.
func (configurator *RemoteConfigurator) EnsureMirrorRemotes(executionContext context.Context, repositoryPath string, originURL string, upstreamURL string) error {
	remoteNames, enumerationError := configurator.manager.ListRemotes(executionContext, repositoryPath)
	if enumerationError != nil {
		return fmt.Errorf(remoteEnumerationFailureTemplateConstant, enumerationError)
	}

	if originConfigurationError := configurator.ensureRemote(executionContext, repositoryPath, remoteNames, OriginRemoteNameConstant, originURL, false); originConfigurationError != nil {
		return fmt.Errorf(originConfigurationFailureTemplateConstant, originConfigurationError)
	}

	if upstreamConfigurationError := configurator.ensureRemote(executionContext, repositoryPath, remoteNames, UpstreamRemoteNameConstant, upstreamURL, true); upstreamConfigurationError != nil {
		return fmt.Errorf(upstreamConfigurationFailureTemplateConstant, upstreamConfigurationError)
	}

	if pushBlockError := configurator.manager.SetRemotePushURL(executionContext, repositoryPath, UpstreamRemoteNameConstant, PushBlockSentinelConstant); pushBlockError != nil {
		return fmt.Errorf(pushBlockFailureTemplateConstant, pushBlockError)
	}

	return nil
}

// EnsurePushBlock re-asserts only the upstream push block.
func (configurator *RemoteConfigurator) EnsurePushBlock(executionContext context.Context, repositoryPath string) error {
	if pushBlockError := configurator.manager.SetRemotePushURL(executionContext, repositoryPath, UpstreamRemoteNameConstant, PushBlockSentinelConstant); pushBlockError != nil {
		return fmt.Errorf(pushBlockFailureTemplateConstant, pushBlockError)
	}
	return nil
}

func (configurator *RemoteConfigurator) ensureRemote(executionContext context.Context, repositoryPath string, existingRemoteNames []string, remoteName string, remoteURL string, mirrorFetch bool) error {
	if containsRemote(existingRemoteNames, remoteName) {
		return configurator.manager.SetRemoteURL(executionContext, repositoryPath, remoteName, remoteURL)
	}
	if mirrorFetch {
		return configurator.manager.AddMirrorFetchRemote(executionContext, repositoryPath, remoteName, remoteURL)
	}
	return configurator.manager.AddRemote(executionContext, repositoryPath, remoteName, remoteURL)
}

func containsRemote(remoteNames []string, candidate string) bool {
	for _, remoteName := range remoteNames {
		if strings.TrimSpace(remoteName) == candidate {
			return true
		}
	}
	return false
}
