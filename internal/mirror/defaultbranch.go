package mirror

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
)

const (
	// FallbackDefaultBranchConstant is used when the upstream HEAD advertisement cannot be resolved.
	FallbackDefaultBranchConstant = "main"

	resolverManagerMissingMessageConstant        = "default branch resolver requires a version control manager"
	symbolicHeadQueryWarningMessageConstant      = "unable to query upstream HEAD; using fallback branch"
	symbolicHeadUnresolvedWarningMessageConstant = "upstream HEAD advertisement did not name a branch; using fallback branch"
	symbolicHeadAdvertisementPrefixConstant      = "ref:"
	branchRefNamespacePrefixConstant             = "refs/heads/"
	headAdvertisementSuffixConstant              = "HEAD"
	logFieldRemoteNameConstant                   = "remote_name"
	logFieldFallbackBranchConstant               = "fallback_branch"
)

// ErrResolverNotConfigured indicates the resolver was constructed without a manager.
var ErrResolverNotConfigured = errors.New(resolverManagerMissingMessageConstant)

// DefaultBranchResolver determines which branch a remote's HEAD symbolically points to.
type DefaultBranchResolver struct {
	manager VersionControl
	logger  *zap.Logger
}

// NewDefaultBranchResolver constructs a DefaultBranchResolver around the provided manager.
func NewDefaultBranchResolver(manager VersionControl, logger *zap.Logger) (*DefaultBranchResolver, error) {
	if manager == nil {
		return nil, ErrResolverNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultBranchResolver{manager: manager, logger: logger}, nil
}

// Resolve returns the branch name the remote's HEAD points to, falling back
// to a fixed default when the advertisement is unavailable or unparsable.
// Resolution failures are a recoverable correctness risk, never fatal.
func (resolver *DefaultBranchResolver) Resolve(executionContext context.Context, repositoryPath string, remoteName string) string {
	advertisement, queryError := resolver.manager.QueryRemoteHead(executionContext, repositoryPath, remoteName)
	if queryError != nil {
		resolver.logger.Warn(symbolicHeadQueryWarningMessageConstant,
			zap.String(logFieldRepositoryPathConstant, repositoryPath),
			zap.String(logFieldRemoteNameConstant, remoteName),
			zap.String(logFieldFallbackBranchConstant, FallbackDefaultBranchConstant),
			zap.Error(queryError),
		)
		return FallbackDefaultBranchConstant
	}

	branchName := parseSymbolicHeadAdvertisement(advertisement)
	if len(branchName) == 0 {
		resolver.logger.Warn(symbolicHeadUnresolvedWarningMessageConstant,
			zap.String(logFieldRepositoryPathConstant, repositoryPath),
			zap.String(logFieldRemoteNameConstant, remoteName),
			zap.String(logFieldFallbackBranchConstant, FallbackDefaultBranchConstant),
		)
		return FallbackDefaultBranchConstant
	}

	return branchName
}

// parseSymbolicHeadAdvertisement extracts the branch name from a line of the
// form "ref: refs/heads/<name>\tHEAD" in the ls-remote --symref output.
func parseSymbolicHeadAdvertisement(advertisement string) string {
	for _, advertisementLine := range strings.Split(advertisement, "\n") {
		trimmedLine := strings.TrimSpace(advertisementLine)
		if !strings.HasPrefix(trimmedLine, symbolicHeadAdvertisementPrefixConstant) {
			continue
		}

		lineFields := strings.Fields(trimmedLine)
		if len(lineFields) < 3 {
			continue
		}
		if lineFields[2] != headAdvertisementSuffixConstant {
			continue
		}

		referenceName := lineFields[1]
		if !strings.HasPrefix(referenceName, branchRefNamespacePrefixConstant) {
			continue
		}

		branchName := strings.TrimPrefix(referenceName, branchRefNamespacePrefixConstant)
		if len(branchName) > 0 {
			return branchName
		}
	}

	return ""
}
