package mirror

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

const (
	refSanitizerManagerMissingMessageConstant = "ref sanitizer requires a version control manager"
	refEnumerationWarningMessageConstant      = "unable to enumerate pull-request refs"
	refDeletionDebugMessageConstant           = "unable to delete pull-request ref"
	refSanitizedDebugMessageConstant          = "deleted pull-request ref"
	logFieldRepositoryPathConstant            = "repository_path"
	logFieldRefNameConstant                   = "ref_name"
)

// ErrRefSanitizerNotConfigured indicates the sanitizer was constructed without a manager.
var ErrRefSanitizerNotConfigured = errors.New(refSanitizerManagerMissingMessageConstant)

// RefSanitizer strips refs under the reserved pull-request namespace before mirror pushes.
type RefSanitizer struct {
	manager VersionControl
	logger  *zap.Logger
}

// NewRefSanitizer constructs a RefSanitizer around the provided manager.
func NewRefSanitizer(manager VersionControl, logger *zap.Logger) (*RefSanitizer, error) {
	if manager == nil {
		return nil, ErrRefSanitizerNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RefSanitizer{manager: manager, logger: logger}, nil
}

// SanitizeRefs deletes every ref under the reserved prefix. Deletion is
// best-effort per ref and enumeration failures never fail the caller.
func (sanitizer *RefSanitizer) SanitizeRefs(executionContext context.Context, repositoryPath string) {
	reservedRefs, enumerationError := sanitizer.manager.ListRefs(executionContext, repositoryPath, ReservedRefPrefixConstant)
	if enumerationError != nil {
		sanitizer.logger.Warn(refEnumerationWarningMessageConstant,
			zap.String(logFieldRepositoryPathConstant, repositoryPath),
			zap.Error(enumerationError),
		)
		return
	}

	for _, refName := range reservedRefs {
		deletionError := sanitizer.manager.DeleteRef(executionContext, repositoryPath, refName)
		if deletionError != nil {
			sanitizer.logger.Debug(refDeletionDebugMessageConstant,
				zap.String(logFieldRepositoryPathConstant, repositoryPath),
				zap.String(logFieldRefNameConstant, refName),
				zap.Error(deletionError),
			)
			continue
		}
		sanitizer.logger.Debug(refSanitizedDebugMessageConstant,
			zap.String(logFieldRepositoryPathConstant, repositoryPath),
			zap.String(logFieldRefNameConstant, refName),
		)
	}
}
